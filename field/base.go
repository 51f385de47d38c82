package field

// Constructors for table literals. Fixed-width families carry an implicit
// MinLength equal to MaxLength; variable-length families have none.

func n(max int, desc string) Definition {
	return Definition{Type: Numeric, MaxLength: max, MinLength: max, PadChar: '0', PadSide: PadLeft, Description: desc}
}

func an(max int, desc string) Definition {
	return Definition{Type: Alphanumeric, MaxLength: max, MinLength: max, PadChar: ' ', PadSide: PadRight, Description: desc}
}

func b(size int, desc string) Definition {
	return Definition{Type: Binary, MaxLength: size, MinLength: size, Description: desc}
}

func ll(max int, desc string) Definition {
	return Definition{Type: LLVar, MaxLength: max, Description: desc}
}

func lll(max int, desc string) Definition {
	return Definition{Type: LLLVar, MaxLength: max, Description: desc}
}

func z(max int, desc string) Definition {
	return Definition{Type: Track2, MaxLength: max, Description: desc}
}

// baseTable is the ISO 8583:1987 definition for every data element 0..128.
// Field 0 is the synthetic MTI slot; fields 1 and 65 are bitmap extension
// indicators and never carry transaction data.
var baseTable = map[int]Definition{
	0:   n(4, "Message Type Indicator (MTI)"),
	1:   b(8, "Bitmap, Secondary"),
	2:   ll(19, "Primary Account Number (PAN)"),
	3:   n(6, "Processing Code"),
	4:   n(12, "Amount, Transaction"),
	5:   n(12, "Amount, Settlement"),
	6:   n(12, "Amount, Cardholder Billing"),
	7:   n(10, "Transmission Date & Time (MMDDhhmmss)"),
	8:   n(8, "Amount, Cardholder Billing Fee"),
	9:   n(8, "Conversion Rate, Settlement"),
	10:  n(8, "Conversion Rate, Cardholder Billing"),
	11:  n(6, "Systems Trace Audit Number (STAN)"),
	12:  n(6, "Time, Local Transaction (hhmmss)"),
	13:  n(4, "Date, Local Transaction (MMDD)"),
	14:  n(4, "Date, Expiration (YYMM)"),
	15:  n(4, "Date, Settlement (MMDD)"),
	16:  n(4, "Date, Conversion (MMDD)"),
	17:  n(4, "Date, Capture (MMDD)"),
	18:  n(4, "Merchant Type/Merchant Category Code"),
	19:  n(3, "Acquiring Institution Country Code"),
	20:  n(3, "PAN Extended, Country Code"),
	21:  n(3, "Forwarding Institution Country Code"),
	22:  n(3, "Point of Service Entry Mode"),
	23:  n(3, "Card Sequence Number"),
	24:  n(3, "Function Code"),
	25:  n(2, "Point of Service Condition Code"),
	26:  n(2, "Point of Service PIN Capture Code"),
	27:  n(1, "Authorization ID Response Length"),
	28:  n(9, "Amount, Transaction Fee"),
	29:  n(9, "Amount, Settlement Fee"),
	30:  n(9, "Amount, Transaction Processing Fee"),
	31:  n(9, "Amount, Settlement Processing Fee"),
	32:  ll(11, "Acquiring Institution ID Code"),
	33:  ll(11, "Forwarding Institution ID Code"),
	34:  ll(28, "Primary Account Number, Extended"),
	35:  z(37, "Track 2 Data"),
	36:  lll(104, "Track 3 Data"),
	37:  an(12, "Retrieval Reference Number"),
	38:  an(6, "Authorization ID Response"),
	39:  n(2, "Response Code"),
	40:  n(3, "Service Restriction Code"),
	41:  an(8, "Card Acceptor Terminal ID"),
	42:  an(15, "Card Acceptor ID Code"),
	43:  an(40, "Card Acceptor Name/Location"),
	44:  ll(25, "Additional Response Data"),
	45:  ll(76, "Track 1 Data"),
	46:  lll(999, "Additional Data - ISO"),
	47:  lll(999, "Additional Data - National"),
	48:  lll(999, "Additional Data - Private"),
	49:  n(3, "Currency Code, Transaction"),
	50:  n(3, "Currency Code, Settlement"),
	51:  n(3, "Currency Code, Cardholder Billing"),
	52:  b(8, "Personal Identification Number (PIN) Data"),
	53:  n(16, "Security Related Control Information"),
	54:  lll(120, "Additional Amounts"),
	55:  lll(999, "ICC System Related Data"),
	56:  ll(35, "Reserved ISO"),
	57:  lll(999, "Reserved National"),
	58:  lll(999, "Reserved National"),
	59:  lll(999, "Reserved National"),
	60:  lll(999, "Reserved National"),
	61:  lll(999, "Reserved Private"),
	62:  lll(999, "Reserved Private"),
	63:  lll(999, "Reserved Private"),
	64:  b(8, "Message Authentication Code (MAC)"),
	65:  b(8, "Extended Bitmap Indicator"),
	66:  n(1, "Settlement Code"),
	67:  n(2, "Extended Payment Code"),
	68:  n(3, "Receiving Institution Country Code"),
	69:  n(3, "Settlement Institution Country Code"),
	70:  n(3, "Network Management Information Code"),
	71:  n(4, "Message Number"),
	72:  n(4, "Last Message Number"),
	73:  n(6, "Action Date (YYMMDD)"),
	74:  n(10, "Credits, Number"),
	75:  n(10, "Credits, Reversal Number"),
	76:  n(10, "Debits, Number"),
	77:  n(10, "Debits, Reversal Number"),
	78:  n(10, "Transfer, Number"),
	79:  n(10, "Transfer, Reversal Number"),
	80:  n(10, "Inquiries, Number"),
	81:  n(10, "Authorizations, Number"),
	82:  n(12, "Credits, Processing Fee Amount"),
	83:  n(12, "Credits, Transaction Fee Amount"),
	84:  n(12, "Debits, Processing Fee Amount"),
	85:  n(12, "Debits, Transaction Fee Amount"),
	86:  n(16, "Credits, Amount"),
	87:  n(16, "Credits, Reversal Amount"),
	88:  n(16, "Debits, Amount"),
	89:  n(16, "Debits, Reversal Amount"),
	90:  n(42, "Original Data Elements"),
	91:  an(1, "File Update Code"),
	92:  n(2, "File Security Code"),
	93:  n(5, "Response Indicator"),
	94:  an(7, "Service Indicator"),
	95:  an(42, "Replacement Amounts"),
	96:  b(8, "Message Security Code"),
	97:  b(17, "Amount, Net Settlement"),
	98:  an(25, "Payee"),
	99:  ll(11, "Settlement Institution ID Code"),
	100: ll(11, "Receiving Institution ID Code"),
	101: ll(17, "File Name"),
	102: ll(28, "Account Identification 1"),
	103: ll(28, "Account Identification 2"),
	104: lll(100, "Transaction Description"),
	105: lll(999, "Reserved for ISO Use"),
	106: lll(999, "Reserved for ISO Use"),
	107: lll(999, "Reserved for ISO Use"),
	108: lll(999, "Reserved for ISO Use"),
	109: lll(999, "Reserved for ISO Use"),
	110: lll(999, "Reserved for ISO Use"),
	111: lll(999, "Reserved for ISO Use"),
	112: lll(999, "Reserved for National Use"),
	113: lll(999, "Reserved for National Use"),
	114: lll(999, "Reserved for National Use"),
	115: lll(999, "Reserved for National Use"),
	116: lll(999, "Reserved for National Use"),
	117: lll(999, "Reserved for National Use"),
	118: lll(999, "Reserved for National Use"),
	119: lll(999, "Reserved for National Use"),
	120: lll(999, "Reserved for Private Use"),
	121: lll(999, "Reserved for Private Use"),
	122: lll(999, "Reserved for Private Use"),
	123: lll(999, "Reserved for Private Use"),
	124: lll(999, "Reserved for Private Use"),
	125: lll(999, "Reserved for Private Use"),
	126: lll(999, "Reserved for Private Use"),
	127: lll(999, "Reserved for Private Use"),
	128: b(8, "Message Authentication Code"),
}
