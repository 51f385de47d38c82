package field

// Version identifies an ISO 8583 protocol revision.
type Version string

const (
	V1987 Version = "1987"
	V1993 Version = "1993"
	V2003 Version = "2003"
)

// versionTables holds per-revision deviations from the 1987 base table.
// The 1987 revision is the base itself and carries no overrides.
var versionTables = map[Version]map[int]Definition{
	V1993: {
		43: ll(99, "Card Acceptor Name/Location (1993)"),
		52: b(16, "PIN Data (1993)"),
		53: lll(48, "Security Related Control Information (1993)"),
		54: lll(255, "Additional Amounts (1993)"),
		55: lll(255, "ICC System Related Data (1993)"),
	},
	V2003: {
		43: ll(256, "Card Acceptor Name/Location (2003)"),
		52: b(32, "PIN Data (2003)"),
		53: lll(96, "Security Related Control Information (2003)"),
		54: lll(512, "Additional Amounts (2003)"),
		55: lll(999, "ICC System Related Data (2003)"),
		56: lll(999, "Original Data Elements (2003)"),
		57: lll(999, "Authorization Life Cycle Code (2003)"),
		58: lll(999, "Authorizing Agent Institution ID (2003)"),
		59: lll(999, "Transport Data (2003)"),
	},
}
