package emv

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParse_SingleTag(t *testing.T) {
	require := require.New(t)

	data, err := Parse("9F02060000000010" + "00")
	require.NoError(err)
	require.Len(data, 1)
	require.Equal("9F02", data[0].Tag)
	require.Equal("000000001000", data[0].Value)
}

func TestParse_MultipleTags(t *testing.T) {
	require := require.New(t)

	// 9F02 (amount), 82 (AIP), 95 (TVR)
	stream := "9F0206000000001000" + "82021980" + "9505008004E000"
	data, err := Parse(stream)
	require.NoError(err)
	require.Equal([]string{"9F02", "82", "95"}, data.Tags())

	amount, ok := data.Get("9F02")
	require.True(ok)
	require.Equal("000000001000", amount)

	tvr, ok := data.Get("95")
	require.True(ok)
	require.Equal("008004E000", tvr)
}

func TestParse_LongFormLengths(t *testing.T) {
	require := require.New(t)

	value81 := strings.Repeat("AB", 0x80)
	data, err := Parse("9F108180" + value81)
	require.NoError(err)
	require.Len(data, 1)
	require.Equal(value81, data[0].Value)

	value82 := strings.Repeat("CD", 0x100)
	data, err = Parse("71820100" + value82)
	require.NoError(err)
	require.Len(data, 1)
	require.Equal(value82, data[0].Value)
}

func TestParse_TruncatedValueIsLenient(t *testing.T) {
	require := require.New(t)

	// declared 6 bytes, only 3 present
	data, err := Parse("9F0206000000")
	require.NoError(err)
	require.Len(data, 1)
	require.Equal("9F02", data[0].Tag)
	require.Equal("000000", data[0].Value)
}

func TestParse_IncompleteTagStopsClean(t *testing.T) {
	require := require.New(t)

	// full entry followed by the first byte of a 2-byte tag
	data, err := Parse("820219809F")
	require.NoError(err)
	require.Len(data, 1)
	require.Equal("82", data[0].Tag)
}

func TestParse_Errors(t *testing.T) {
	require := require.New(t)

	_, err := Parse("9F020600000000100") // odd length
	require.Error(err)

	_, err = Parse("ZZ02AABB") // not hex
	require.Error(err)
}

func TestParse_LowercaseInput(t *testing.T) {
	require := require.New(t)

	data, err := Parse("9f0206000000001000")
	require.NoError(err)
	require.Len(data, 1)
	require.Equal("9F02", data[0].Tag)
	require.Equal("000000001000", data[0].Value)
}

func TestBuild_Roundtrip(t *testing.T) {
	require := require.New(t)

	data := Data{}.
		Set("9F02", "000000001000").
		Set("82", "1980").
		Set("95", "008004E000").
		Set("9F10", strings.Repeat("AB", 0x80))

	stream, err := Build(data)
	require.NoError(err)

	parsed, err := Parse(stream)
	require.NoError(err)
	require.Equal(data, parsed)
}

func TestBuild_PreservesOrder(t *testing.T) {
	require := require.New(t)

	data := Data{}.Set("95", "0000000000").Set("82", "1980")
	stream, err := Build(data)
	require.NoError(err)
	require.True(strings.HasPrefix(stream, "95"))

	sorted, err := BuildSorted(data)
	require.NoError(err)
	require.True(strings.HasPrefix(sorted, "82"))
}

func TestBuild_Errors(t *testing.T) {
	require := require.New(t)

	_, err := Build(Data{{Tag: "9F0200", Value: "00"}}) // 3-byte tag
	require.Error(err)

	_, err = Build(Data{{Tag: "9F02", Value: "ABC"}}) // odd value
	require.Error(err)

	_, err = Build(Data{{Tag: "GG", Value: "00"}}) // non-hex tag
	require.Error(err)
}

func TestData_SetReplacesInPlace(t *testing.T) {
	require := require.New(t)

	data := Data{}.Set("82", "1980").Set("95", "0000000000").Set("82", "3900")
	require.Equal([]string{"82", "95"}, data.Tags())

	v, ok := data.Get("82")
	require.True(ok)
	require.Equal("3900", v)

	_, ok = data.Get("9F02")
	require.False(ok)
}

func TestValidate(t *testing.T) {
	require := require.New(t)

	require.Empty(Validate("9F020600000000100082021980"))

	require.NotEmpty(Validate(""))
	require.NotEmpty(Validate("9F02060000000010001")) // odd length
	require.NotEmpty(Validate("ZZ021980"))            // not hex
	require.NotEmpty(Validate("9F0206000000"))        // truncated value
	require.NotEmpty(Validate("820219809F"))          // incomplete tag
	require.NotEmpty(Validate("9F0283"))              // unsupported length form
}

func TestTagName(t *testing.T) {
	require := require.New(t)

	require.Equal("Amount, Authorized (Numeric)", TagName("9F02"))
	require.Equal("Application Interchange Profile (AIP)", TagName("82"))
	require.Equal("Application PAN", TagName("5a"))
	require.Equal("Unknown", TagName("FFFF"))
}

func TestExplainTVR(t *testing.T) {
	require := require.New(t)

	// byte 1 bit 8: offline data authentication was not performed
	reasons, err := ExplainTVR("8000000000")
	require.NoError(err)
	require.Len(reasons, 1)

	reasons, err = ExplainTVR("0000000000")
	require.NoError(err)
	require.Empty(reasons)

	// short input is right-padded with zeros
	reasons, err = ExplainTVR("80")
	require.NoError(err)
	require.Len(reasons, 1)

	_, err = ExplainTVR("ZZ")
	require.Error(err)
}

func TestExplainCID(t *testing.T) {
	require := require.New(t)

	require.Contains(ExplainCID("00"), "AAC")
	require.Contains(ExplainCID("40"), "TC")
	require.Contains(ExplainCID("80"), "ARQC")
}
