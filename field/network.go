package field

import "strings"

// Network identifies a card scheme whose dialect may override base field
// definitions.
type Network string

const (
	Visa       Network = "VISA"
	Mastercard Network = "MASTERCARD"
	Amex       Network = "AMEX"
	Discover   Network = "DISCOVER"
	JCB        Network = "JCB"
	UnionPay   Network = "UNIONPAY"
)

// Networks lists every known card network.
func Networks() []Network {
	return []Network{Visa, Mastercard, Amex, Discover, JCB, UnionPay}
}

// DetectNetwork guesses the card network from a PAN prefix.
//
// The result is a hint only: short or absent PANs make the heuristic
// unreliable, and callers must never let it silently alter build or
// validation behavior. It returns ("", false) when no prefix matches.
func DetectNetwork(pan string) (Network, bool) {
	switch {
	case pan == "":
		return "", false
	case strings.HasPrefix(pan, "4"):
		return Visa, true
	case hasPrefixInRange(pan, "51", "55"):
		return Mastercard, true
	case strings.HasPrefix(pan, "34") || strings.HasPrefix(pan, "37"):
		return Amex, true
	case strings.HasPrefix(pan, "6011") || strings.HasPrefix(pan, "65") || hasPrefixInRange(pan, "644", "649"):
		return Discover, true
	case strings.HasPrefix(pan, "35"):
		return JCB, true
	case strings.HasPrefix(pan, "62"):
		return UnionPay, true
	default:
		return "", false
	}
}

// hasPrefixInRange reports whether pan starts with a decimal prefix between
// lo and hi inclusive. lo and hi must have equal width.
func hasPrefixInRange(pan, lo, hi string) bool {
	if len(pan) < len(lo) {
		return false
	}
	p := pan[:len(lo)]
	return p >= lo && p <= hi
}

// networkTables holds the per-scheme dialect overrides shipped with the
// catalog. Schemes redefine mostly the private-use and network-management
// ranges; anything not listed here falls through to the version or base
// tier.
var networkTables = map[Network]map[int]Definition{
	Visa: {
		24:  n(3, "Function Code (VISA)"),
		44:  ll(99, "Additional Response Data (VISA)"),
		46:  lll(204, "Fee Amounts (VISA)"),
		47:  lll(999, "Additional Data - National (VISA)"),
		48:  lll(999, "Additional Data - Private (VISA Installments)"),
		60:  lll(999, "Advised Echo Data (VISA)"),
		62:  lll(999, "Card Issuer Data (VISA)"),
		63:  lll(999, "SMS Fields (VISA)"),
		66:  lll(204, "Settlement Code (VISA)"),
		67:  n(2, "Extended Payment Code (VISA)"),
		71:  n(8, "Message Number (VISA)"),
		72:  lll(999, "Data Record (VISA)"),
		73:  n(6, "Action Date (VISA)"),
		92:  n(3, "File Security Code (VISA)"),
		93:  n(6, "Transaction Identifier (VISA)"),
		104: lll(999, "Transaction Specific Data (VISA)"),
		120: lll(999, "Record Data (VISA)"),
		121: lll(999, "Issuer Authorization Data (VISA)"),
		123: lll(999, "Verification Data (VISA)"),
		124: lll(999, "Network Control Data (VISA)"),
		125: lll(999, "POS Configuration Data (VISA)"),
	},
	Mastercard: {
		24:  n(3, "Function Code (MC)"),
		34:  ll(28, "Extended PAN (MC)"),
		45:  ll(76, "Track 1 Data (MC Format)"),
		48:  lll(999, "Additional Data - Private (MC Format)"),
		51:  an(3, "PIN Security Type (MC)"),
		54:  lll(120, "Additional Amounts (MC Format)"),
		55:  lll(510, "ICC System Related Data (MC EMV Tags)"),
		56:  lll(4096, "Original Data Elements (MC)"),
		57:  lll(999, "Authorization Life Cycle Code (MC)"),
		58:  ll(11, "Authorizing Agent Institution ID (MC)"),
		59:  lll(999, "Transport Data (MC)"),
		63:  lll(999, "Network Data (MC)"),
		71:  n(8, "Message Number (MC)"),
		84:  lll(999, "Data - Private Use (MC)"),
		91:  an(1, "File Update Code (MC)"),
		92:  n(2, "File Security Code (MC)"),
		94:  an(7, "Service Indicator (MC)"),
		95:  b(28, "Card Issuer Reference Data (MC)"),
		105: lll(999, "MC Reserved"),
		122: lll(999, "Card Issuer Reference Data (MC)"),
		126: lll(999, "Switch Private Data (MC)"),
	},
	Amex: {
		23:  n(3, "Card Sequence Number (AMEX)"),
		44:  ll(99, "Additional Response Data (AMEX)"),
		47:  lll(999, "Additional Data - National (AMEX)"),
		48:  lll(999, "Transaction Level Data (AMEX)"),
		55:  lll(999, "ICC Data (AMEX Format)"),
		60:  lll(999, "Network Data (AMEX)"),
		61:  lll(999, "Other Terminal Data (AMEX)"),
		63:  lll(999, "Card Level Results (AMEX)"),
		76:  lll(999, "Confirmations/Authorizations (AMEX)"),
		112: lll(999, "Additional Data (AMEX)"),
		124: lll(999, "Sundry Data (AMEX)"),
		125: lll(999, "Extended Response Data (AMEX)"),
	},
	Discover: {
		44:  ll(99, "Additional Response Data (Discover)"),
		48:  lll(999, "Additional Data - Private (Discover)"),
		55:  lll(999, "ICC Data (Discover Format)"),
		62:  lll(999, "Network Specific Data (Discover)"),
		63:  lll(999, "Protocol Specific Data (Discover)"),
		95:  b(28, "Card Issuer Reference Data (Discover)"),
		111: lll(999, "Network Details (Discover)"),
	},
	JCB: {
		42:  an(15, "Card Acceptor ID Code (JCB)"),
		48:  lll(999, "Additional Data - Private (JCB)"),
		55:  lll(255, "ICC System Related Data (JCB)"),
		61:  lll(999, "Internal Data (JCB)"),
		62:  lll(999, "Private Data (JCB)"),
		63:  lll(999, "SMS Private Data (JCB)"),
		114: lll(999, "Regional Data (JCB)"),
	},
	UnionPay: {
		33:  ll(28, "Forwarding Institution ID (UnionPay)"),
		40:  n(3, "Service Restriction Code (UnionPay)"),
		41:  an(8, "Terminal ID (UnionPay Format)"),
		42:  an(15, "Merchant ID (UnionPay Format)"),
		48:  lll(999, "Additional Data - Private (UnionPay)"),
		55:  lll(999, "ICC Data (UnionPay Format)"),
		60:  lll(999, "Reserved National (UnionPay)"),
		63:  lll(999, "Additional Data (UnionPay)"),
		90:  n(42, "Original Data Elements (UnionPay)"),
		100: ll(11, "Receiving Institution ID (UnionPay)"),
		102: ll(28, "Account Identifier 1 (UnionPay)"),
		103: ll(28, "Account Identifier 2 (UnionPay)"),
		113: lll(999, "UnionPay Reserved"),
	},
}

// requiredFields lists the data elements a scheme demands on authorization
// and financial messages.
var requiredFields = map[Network][]int{
	Visa:       {2, 3, 4, 11, 14, 22, 24, 25},
	Mastercard: {2, 3, 4, 11, 22, 24, 25, 35},
	Amex:       {2, 3, 4, 11, 22, 25},
	Discover:   {2, 3, 4, 11, 22},
	JCB:        {2, 3, 4, 11, 22, 25},
	UnionPay:   {2, 3, 4, 11, 22, 25, 49},
}

// FormatCheck is a scheme-specific value constraint beyond the field's
// character class: a required literal prefix, a restricted alphabet, or a
// shape rule.
type FormatCheck struct {
	Prefix     string // value must start with this literal
	HexOnly    bool   // value must be hex
	Digits     bool   // value must be decimal digits
	EvenLength bool   // value must have an even number of characters
	Describe   string
}

var formatChecks = map[Network]map[int]FormatCheck{
	Visa: {
		44: {HexOnly: true, EvenLength: true, Describe: "even-length hex"},
		46: {Digits: true, Describe: "decimal digits"},
	},
	Mastercard: {
		48: {Prefix: "MC", Describe: "literal prefix MC"},
		55: {Prefix: "9F", HexOnly: true, Describe: "hex ICC data opening with tag 9F"},
	},
	Amex: {
		44:  {HexOnly: true, Describe: "hex"},
		112: {Prefix: "AX", Describe: "literal prefix AX"},
	},
}
