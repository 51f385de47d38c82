package emv

import (
	"encoding/hex"
	"strconv"
	"strings"
)

// tagNames maps the EMV tags commonly seen in field 55 payloads to their
// dictionary names.
var tagNames = map[string]string{
	"42":   "Issuer Identification Number (IIN)",
	"4F":   "Application Identifier (AID)",
	"50":   "Application Label",
	"57":   "Track 2 Equivalent Data",
	"5A":   "Application PAN",
	"5F20": "Cardholder Name",
	"5F24": "Application Expiration Date",
	"5F25": "Application Effective Date",
	"5F28": "Issuer Country Code",
	"5F2A": "Transaction Currency Code",
	"5F2D": "Language Preference",
	"5F34": "PAN Sequence Number",
	"70":   "EMV Proprietary Template",
	"71":   "Issuer Script Template 1",
	"72":   "Issuer Script Template 2",
	"77":   "Response Message Template Format 2",
	"80":   "Response Message Template Format 1",
	"82":   "Application Interchange Profile (AIP)",
	"84":   "Dedicated File (DF) Name",
	"87":   "Application Priority Indicator",
	"88":   "Short File Identifier (SFI)",
	"89":   "Authorization Code",
	"8A":   "Authorization Response Code",
	"8C":   "Card Risk Management Data Object List 1 (CDOL1)",
	"8D":   "Card Risk Management Data Object List 2 (CDOL2)",
	"8E":   "Cardholder Verification Method (CVM) List",
	"8F":   "Certification Authority Public Key Index",
	"90":   "Issuer Public Key Certificate",
	"91":   "Issuer Authentication Data",
	"92":   "Issuer Public Key Remainder",
	"93":   "Signed Static Application Data",
	"94":   "Application File Locator (AFL)",
	"95":   "Terminal Verification Results (TVR)",
	"97":   "Transaction Certificate Data Object List (TDOL)",
	"98":   "Transaction Certificate (TC) Hash Value",
	"99":   "Transaction PIN Data",
	"9A":   "Transaction Date",
	"9B":   "Transaction Status Information (TSI)",
	"9C":   "Transaction Type",
	"9F02": "Amount, Authorized (Numeric)",
	"9F03": "Amount, Other (Numeric)",
	"9F06": "Application Identifier (AID) - Terminal",
	"9F07": "Application Usage Control",
	"9F08": "Application Version Number - Card",
	"9F09": "Application Version Number - Terminal",
	"9F0D": "Issuer Action Code - Default",
	"9F0E": "Issuer Action Code - Denial",
	"9F0F": "Issuer Action Code - Online",
	"9F10": "Issuer Application Data",
	"9F12": "Application Preferred Name",
	"9F13": "Last Online ATC Register",
	"9F17": "PIN Try Counter",
	"9F1A": "Terminal Country Code",
	"9F1B": "Terminal Floor Limit",
	"9F1C": "Terminal Identification",
	"9F1E": "Interface Device (IFD) Serial Number",
	"9F21": "Transaction Time",
	"9F26": "Application Cryptogram",
	"9F27": "Cryptogram Information Data",
	"9F33": "Terminal Capabilities",
	"9F34": "Cardholder Verification Method (CVM) Results",
	"9F35": "Terminal Type",
	"9F36": "Application Transaction Counter (ATC)",
	"9F37": "Unpredictable Number",
	"9F38": "Processing Options Data Object List (PDOL)",
	"9F39": "POS Entry Mode",
	"9F41": "Transaction Sequence Counter",
	"9F45": "Data Authentication Code",
	"9F4C": "ICC Dynamic Number",
	"9F53": "Transaction Category Code",
	"9F5B": "Issuer Script Results",
	"9F66": "Terminal Transaction Qualifiers (TTQ)",
	"9F6C": "Card Transaction Qualifiers (CTQ)",
	"9F6E": "Form Factor Indicator",
	"DF01": "Proprietary Data Element",
}

// TagName returns the dictionary name of an EMV tag, or "Unknown" when the
// tag is not in the dictionary.
func TagName(tag string) string {
	if name, ok := tagNames[strings.ToUpper(tag)]; ok {
		return name
	}

	return "Unknown"
}

// tvrFlags lists the meaning of each set bit in the five TVR bytes.
var tvrFlags = [5][]struct {
	mask byte
	text string
}{
	{
		{0x80, "Offline data authentication not performed"},
		{0x40, "SDA failed"},
		{0x20, "ICC data missing"},
		{0x10, "Card appears on terminal exception file"},
		{0x08, "DDA failed"},
		{0x04, "CDA failed"},
	},
	{
		{0x80, "ICC and terminal have different application versions"},
		{0x40, "Expired application"},
		{0x20, "Application not yet effective"},
		{0x10, "Requested service not allowed for card product"},
		{0x08, "New card"},
	},
	{
		{0x80, "Cardholder verification was not successful"},
		{0x40, "Unrecognized CVM"},
		{0x20, "PIN Try Limit exceeded"},
		{0x10, "PIN entry required and PIN pad not present or not working"},
		{0x08, "PIN entry required, PIN pad present, but PIN was not entered"},
		{0x04, "Online PIN entered"},
	},
	{
		{0x80, "Transaction exceeds floor limit"},
		{0x40, "Lower consecutive offline limit exceeded"},
		{0x20, "Upper consecutive offline limit exceeded"},
		{0x10, "Transaction selected randomly for online processing"},
		{0x08, "Merchant forced transaction online"},
	},
	{
		{0x80, "Default TDOL used"},
		{0x40, "Issuer authentication failed"},
		{0x20, "Script processing failed before final GENERATE AC"},
		{0x10, "Script processing failed after final GENERATE AC"},
	},
}

// ExplainTVR lists the conditions flagged in a Terminal Verification
// Results value (tag 95), given as up to 10 hex characters. Shorter input
// is zero-extended on the right.
func ExplainTVR(tvrHex string) ([]string, error) {
	tvrHex = strings.ToUpper(tvrHex)
	if len(tvrHex) < 10 {
		tvrHex = tvrHex + strings.Repeat("0", 10-len(tvrHex))
	}

	raw, err := hex.DecodeString(tvrHex[:10])
	if err != nil {
		return nil, err
	}

	var out []string
	for i, flags := range tvrFlags {
		for _, f := range flags {
			if raw[i]&f.mask != 0 {
				out = append(out, f.text)
			}
		}
	}

	return out, nil
}

// ExplainCID describes the cryptogram type encoded in the top two bits of a
// Cryptogram Information Data value (tag 9F27).
func ExplainCID(cidHex string) string {
	v, err := strconv.ParseUint(cidHex, 16, 8)
	if err != nil {
		return "Unknown"
	}

	switch (v >> 6) & 0x03 {
	case 0:
		return "AAC (Application Authentication Cryptogram) - Transaction declined"
	case 1:
		return "TC (Transaction Certificate) - Transaction approved offline"
	case 2:
		return "ARQC (Authorization Request Cryptogram) - Online authorization requested"
	default:
		return "RFU (Reserved for Future Use)"
	}
}
