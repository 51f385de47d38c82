package iso8583

// The four MTI digits encode, in order: protocol version, message class,
// message function, and message origin.

// Message class digits (MTI position 2).
const (
	ClassAuthorization     = '1'
	ClassFinancial         = '2'
	ClassFileActions       = '3'
	ClassReversal          = '4'
	ClassReconciliation    = '5'
	ClassAdministrative    = '6'
	ClassFeeCollection     = '7'
	ClassNetworkManagement = '8'
)

// Message function digits (MTI position 3).
const (
	FunctionRequest         = '0'
	FunctionResponse        = '1'
	FunctionAdvice          = '2'
	FunctionAdviceResponse  = '3'
	FunctionNotification    = '4'
	FunctionNetworkRequest  = '8'
	FunctionNetworkResponse = '9'
)

// Message origin digits (MTI position 4).
const (
	OriginAcquirer       = '0'
	OriginAcquirerRepeat = '1'
	OriginIssuer         = '2'
	OriginIssuerRepeat   = '3'
	OriginOther          = '4'
	OriginOtherRepeat    = '5'
)

var (
	mtiVersionDigits  = digitSet("01")
	mtiClassDigits    = digitSet("12345678")
	mtiFunctionDigits = digitSet("0123489")
	mtiOriginDigits   = digitSet("012345")
)

func digitSet(digits string) [10]bool {
	var set [10]bool
	for i := 0; i < len(digits); i++ {
		set[digits[i]-'0'] = true
	}

	return set
}

func inDigitSet(set [10]bool, c byte) bool {
	return c >= '0' && c <= '9' && set[c-'0']
}
