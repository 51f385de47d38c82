package iso8583

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/paysim/go-iso8583/field"
	"github.com/paysim/go-iso8583/logger"
)

func TestBuilder_Build(t *testing.T) {
	require := require.New(t)

	b := NewBuilder()
	m := NewMessage("0200", map[int]string{
		2:  "4111111111111111",
		3:  "0",
		4:  "1000",
		11: "42",
	})

	raw, err := b.Build(m)
	require.NoError(err)
	require.True(strings.HasPrefix(raw, "0200"+"7020000000000000"))

	// numeric fields were canonicalized to full width in place
	v, _ := m.Field(3)
	require.Equal("000000", v)
	v, _ = m.Field(4)
	require.Equal("000000001000", v)
	v, _ = m.Field(11)
	require.Equal("000042", v)

	require.Equal(raw, m.Raw())
	require.Equal("7020000000000000", m.Bitmap())
}

func TestBuilder_ParseRoundtrip(t *testing.T) {
	require := require.New(t)

	b := NewBuilder()
	p := NewParser(WithLogger(logger.Nop()))

	m := NewMessage("0100", map[int]string{
		2:  "4111111111111111",
		3:  "000000",
		4:  "000000001000",
		11: "123456",
		35: "4111111111111111=25121015432112345678",
		37: "REF123456789",
		41: "TERM0001",
		42: "MERCHANT12345",
		52: "0123456789ABCDEF",
	})

	raw, err := b.Build(m)
	require.NoError(err)

	parsed, err := p.Parse(raw, "")
	require.NoError(err)
	require.Equal(m.MTI(), parsed.MTI())
	require.Equal(m.FieldNumbers(), parsed.FieldNumbers())
	for _, num := range m.FieldNumbers() {
		want, _ := m.Field(num)
		got, _ := parsed.Field(num)
		require.Equal(want, got, "field %d", num)
	}
}

func TestBuilder_SecondaryBitmapRoundtrip(t *testing.T) {
	require := require.New(t)

	b := NewBuilder()
	p := NewParser(WithLogger(logger.Nop()))

	m := NewMessage("0800", map[int]string{
		70: "301",
		96: "0123456789ABCDEF",
	})

	raw, err := b.Build(m)
	require.NoError(err)
	require.Len(m.Bitmap(), 32)

	parsed, err := p.Parse(raw, "")
	require.NoError(err)
	require.Equal([]int{70, 96}, parsed.FieldNumbers())
}

func TestBuilder_NetworkDialect(t *testing.T) {
	require := require.New(t)

	b := NewBuilder()
	m := NewMessage("0100", map[int]string{
		2:  "5105105105105100",
		3:  "000000",
		4:  "000000001000",
		11: "000001",
		22: "051",
		24: "100",
		25: "00",
		35: "5105105105105100=25121015432112345678",
		48: "MC" + strings.Repeat("0", 200),
	})
	m.SetNetwork(field.Mastercard)

	raw, err := b.Build(m)
	require.NoError(err)

	p := NewParser(WithLogger(logger.Nop()))
	parsed, err := p.Parse(raw, field.Mastercard)
	require.NoError(err)

	v, _ := parsed.Field(48)
	require.Len(v, 202)
}

func TestBuilder_ConfiguredVersion(t *testing.T) {
	require := require.New(t)

	// field 52 is 16 binary bytes under the 1993 revision
	pinData := strings.Repeat("AB", 16)

	b := NewBuilder(WithVersion(field.V1993))
	m := NewMessage("0200", map[int]string{52: pinData})

	raw, err := b.Build(m)
	require.NoError(err)
	require.Equal(field.V1993, m.Version())
	require.Contains(raw, pinData)

	// the same value under the 1987 default is twice the field's width
	m = NewMessage("0200", map[int]string{52: pinData})
	_, err = NewBuilder().Build(m)
	require.ErrorIs(err, ErrLengthExceedsMax)

	// an explicitly set message version wins over the builder's
	m = NewMessage("0200", map[int]string{52: pinData})
	m.SetVersion(field.V1987)
	_, err = b.Build(m)
	require.ErrorIs(err, ErrLengthExceedsMax)
	require.Equal(field.V1987, m.Version())
}

func TestBuilder_VariableLengthBounds(t *testing.T) {
	require := require.New(t)

	b := NewBuilder()

	// field 44 under the VISA dialect caps at 99 characters
	m := NewMessage("0800", map[int]string{44: strings.Repeat("A", 100)})
	m.SetNetwork(field.Visa)
	_, err := b.Build(m)
	require.ErrorIs(err, ErrLengthExceedsMax)

	// a full-length 19-digit PAN emits length prefix "19"
	pan := "6212345678901234567"
	m = NewMessage("0200", map[int]string{2: pan})
	raw, err := b.Build(m)
	require.NoError(err)
	require.Contains(raw, "19"+pan)
}

func TestBuilder_AuthorizationAndDetection(t *testing.T) {
	require := require.New(t)

	b := NewBuilder()
	m := NewMessage("0100", map[int]string{
		2:  "4111111111111111",
		3:  "000000",
		4:  "000000001000",
		11: "123456",
		41: "TERM0001",
		42: "MERCHANT12345  ",
	})

	raw, err := b.Build(m)
	require.NoError(err)
	require.True(strings.HasPrefix(raw, "0100"))
	require.Len(m.Bitmap(), 16) // no field above 64

	p := NewParser(WithLogger(logger.Nop()))
	parsed, err := p.Parse(raw, "")
	require.NoError(err)
	require.Equal([]int{2, 3, 4, 11, 41, 42}, parsed.FieldNumbers())

	hint, ok := parsed.DetectedNetwork()
	require.True(ok)
	require.Equal(field.Visa, hint)
}

func TestBuilder_ValidationFailures(t *testing.T) {
	require := require.New(t)

	b := NewBuilder()

	// non-numeric content in a numeric field
	m := NewMessage("0200", map[int]string{3: "ABC"})
	_, err := b.Build(m)
	require.ErrorIs(err, ErrInvalidValue)

	// value too long to pad
	m = NewMessage("0200", map[int]string{11: "1234567"})
	_, err = b.Build(m)
	require.ErrorIs(err, ErrLengthExceedsMax)

	// field number outside the catalog
	m = NewMessage("0200", map[int]string{3: "000000"})
	m.SetField(129, "X")
	_, err = b.Build(m)
	require.ErrorIs(err, ErrUnknownField)

	// malformed MTI is caught by whole-message validation
	m = NewMessage("0900", map[int]string{3: "000000"})
	_, err = b.Build(m)
	var berr *BuildError
	require.ErrorAs(err, &berr)
	require.Equal(-1, berr.Field)
	require.Contains(err.Error(), "validation failed")
}

func TestBuilder_RequiredFieldsEnforced(t *testing.T) {
	require := require.New(t)

	b := NewBuilder()
	m := NewMessage("0100", map[int]string{
		2: "4111111111111111",
		3: "000000",
	})
	m.SetNetwork(field.Visa)

	_, err := b.Build(m)
	require.Error(err)
	require.Contains(err.Error(), "required by VISA")
}

func TestBuilder_MastercardFormatRule(t *testing.T) {
	require := require.New(t)

	b := NewBuilder()
	m := NewMessage("0800", map[int]string{48: "XX00"})
	m.SetNetwork(field.Mastercard)

	_, err := b.Build(m)
	require.Error(err)
	require.Contains(err.Error(), "MC")
}

func TestBuilder_Response(t *testing.T) {
	require := require.New(t)

	b := NewBuilder()
	request := NewMessage("0100", map[int]string{
		2:  "4111111111111111",
		3:  "000000",
		4:  "000000001000",
		11: "123456",
		37: "REF123456789",
		41: "TERM0001",
		42: "MERCHANT12345",
	})

	resp, err := b.Response(request, map[int]string{
		39: "00",
		38: "AUTH01",
		2:  "9999999999999999", // must lose to the request's PAN
	})
	require.NoError(err)
	require.Equal("0110", resp.MTI())

	pan, _ := resp.Field(2)
	require.Equal("4111111111111111", pan)

	code, _ := resp.Field(39)
	require.Equal("00", code)

	// merchant id canonicalized to its 15-character width
	merchant, _ := resp.Field(42)
	require.Equal("MERCHANT12345  ", merchant)

	require.NotEmpty(resp.Raw())
}

func TestBuilder_Reversal(t *testing.T) {
	require := require.New(t)

	b := NewBuilder()
	b.now = func() time.Time {
		return time.Date(2026, 8, 30, 14, 30, 45, 0, time.UTC)
	}

	original := NewMessage("0100", map[int]string{
		2:  "4111111111111111",
		3:  "000000",
		4:  "000000001000",
		11: "123456",
		37: "REF123456789",
	})

	rev, err := b.Reversal(original, nil)
	require.NoError(err)
	require.Equal("0400", rev.MTI())

	ts, _ := rev.Field(7)
	require.Equal("0830143045", ts)

	code, _ := rev.Field(39)
	require.Equal("00", code)

	orig, _ := rev.Field(90)
	require.Equal("0100123456"+strings.Repeat("0", 32), orig)

	// original fields carry into the reversal
	amount, _ := rev.Field(4)
	require.Equal("000000001000", amount)
}

func TestBuilder_ReversalExtrasWin(t *testing.T) {
	require := require.New(t)

	b := NewBuilder()
	original := NewMessage("0200", map[int]string{
		4:  "000000001000",
		11: "000007",
	})

	rev, err := b.Reversal(original, map[int]string{39: "17", 4: "000000000500"})
	require.NoError(err)
	require.Equal("0400", rev.MTI())

	code, _ := rev.Field(39)
	require.Equal("17", code)

	amount, _ := rev.Field(4)
	require.Equal("000000000500", amount)

	orig, _ := rev.Field(90)
	require.True(strings.HasPrefix(orig, "0200000007"))
}

func TestBuilder_NetworkManagement(t *testing.T) {
	require := require.New(t)

	b := NewBuilder()

	m, err := b.NetworkManagement("301", field.Visa)
	require.NoError(err)
	require.Equal("0800", m.MTI())

	code, _ := m.Field(70)
	require.Equal("301", code)

	sec, _ := m.Field(53)
	require.Equal("0000000000000000", sec)

	echo, _ := m.Field(96)
	require.Equal("0123456789ABCDEF", echo)

	m, err = b.NetworkManagement("1", field.Mastercard)
	require.NoError(err)

	code, _ = m.Field(70)
	require.Equal("001", code)

	private, _ := m.Field(48)
	require.Equal("MC00", private)

	// no scheme: just the information code
	m, err = b.NetworkManagement("301", "")
	require.NoError(err)
	require.Equal([]int{70}, m.FieldNumbers())
}
