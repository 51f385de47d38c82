package field

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCatalog_ResolveBase(t *testing.T) {
	require := require.New(t)

	c, err := NewCatalog()
	require.NoError(err)

	def, err := c.Resolve(2, "", V1987)
	require.NoError(err)
	require.Equal(LLVar, def.Type)
	require.Equal(19, def.MaxLength)

	def, err = c.Resolve(4, "", V1987)
	require.NoError(err)
	require.Equal(Numeric, def.Type)
	require.Equal(12, def.MaxLength)
	require.Equal(12, def.WireLength())

	def, err = c.Resolve(52, "", V1987)
	require.NoError(err)
	require.Equal(Binary, def.Type)
	require.Equal(8, def.MaxLength)
	require.Equal(16, def.WireLength())
}

func TestCatalog_ResolveFullBaseCoverage(t *testing.T) {
	require := require.New(t)

	c, err := NewCatalog()
	require.NoError(err)

	for num := MTIField; num <= MaxField; num++ {
		def, err := c.Resolve(num, "", "")
		require.NoError(err, "field %d", num)
		require.Positive(def.MaxLength, "field %d", num)
	}
}

func TestCatalog_ResolvePrecedence(t *testing.T) {
	require := require.New(t)

	c, err := NewCatalog()
	require.NoError(err)

	// base: field 44 is LLVAR 25
	def, err := c.Resolve(44, "", V1987)
	require.NoError(err)
	require.Equal(25, def.MaxLength)

	// network dialect wins over base
	def, err = c.Resolve(44, Visa, V1987)
	require.NoError(err)
	require.Equal(99, def.MaxLength)

	// version tier wins over base
	def, err = c.Resolve(52, "", V1993)
	require.NoError(err)
	require.Equal(16, def.MaxLength)

	def, err = c.Resolve(52, "", V2003)
	require.NoError(err)
	require.Equal(32, def.MaxLength)

	// network tier wins over version tier
	def, err = c.Resolve(55, Mastercard, V1993)
	require.NoError(err)
	require.Equal(510, def.MaxLength)

	// empty version defaults to 1987
	def, err = c.Resolve(55, "", "")
	require.NoError(err)
	base, err := c.Resolve(55, "", V1987)
	require.NoError(err)
	require.Equal(base, def)
}

func TestCatalog_ResolveNotFound(t *testing.T) {
	require := require.New(t)

	c, err := NewCatalog()
	require.NoError(err)

	_, err = c.Resolve(129, "", V1987)
	require.ErrorIs(err, ErrNotFound)

	_, err = c.Resolve(-1, Visa, V1993)
	require.ErrorIs(err, ErrNotFound)
}

func TestCatalog_ResolveCached(t *testing.T) {
	require := require.New(t)

	c, err := NewCatalog()
	require.NoError(err)

	first, err := c.Resolve(48, Mastercard, V1987)
	require.NoError(err)

	// second lookup hits the cache and must agree
	second, err := c.Resolve(48, Mastercard, V1987)
	require.NoError(err)
	require.Equal(first, second)
}

func TestCatalog_Overrides(t *testing.T) {
	require := require.New(t)

	c, err := NewCatalog(
		WithBaseOverride(127, lll(512, "Private Use")),
		WithNetworkOverride(JCB, 127, lll(64, "Private Use (JCB)")),
		WithRequiredFields(JCB, []int{2, 3, 4}),
	)
	require.NoError(err)

	def, err := c.Resolve(127, "", V1987)
	require.NoError(err)
	require.Equal(512, def.MaxLength)

	def, err = c.Resolve(127, JCB, V1987)
	require.NoError(err)
	require.Equal(64, def.MaxLength)

	require.Equal([]int{2, 3, 4}, c.RequiredFields(JCB))
}

func TestCatalog_VerifyRejectsBadDefinition(t *testing.T) {
	require := require.New(t)

	_, err := NewCatalog(WithBaseOverride(120, Definition{Type: LLLVar, MaxLength: 0}))
	require.Error(err)

	_, err = NewCatalog(WithBaseOverride(120, Definition{Type: LLVar, MaxLength: 5, MinLength: 9}))
	require.Error(err)
}

func TestCatalog_FormatChecks(t *testing.T) {
	require := require.New(t)

	c, err := NewCatalog()
	require.NoError(err)

	chk, ok := c.FormatCheck(Mastercard, 48)
	require.True(ok)
	require.Equal("MC", chk.Prefix)

	chk, ok = c.FormatCheck(Visa, 44)
	require.True(ok)
	require.True(chk.HexOnly)
	require.True(chk.EvenLength)

	chk, ok = c.FormatCheck(Visa, 46)
	require.True(ok)
	require.True(chk.Digits)

	chk, ok = c.FormatCheck(Mastercard, 55)
	require.True(ok)
	require.Equal("9F", chk.Prefix)

	_, ok = c.FormatCheck(Visa, 48)
	require.False(ok)
}

func TestCatalog_RequiredFields(t *testing.T) {
	require := require.New(t)

	c, err := NewCatalog()
	require.NoError(err)

	require.Equal([]int{2, 3, 4, 11, 14, 22, 24, 25}, c.RequiredFields(Visa))
	require.Equal([]int{2, 3, 4, 11, 22, 24, 25, 35}, c.RequiredFields(Mastercard))
	require.Empty(c.RequiredFields(""))
}

func TestDetectNetwork(t *testing.T) {
	require := require.New(t)

	tests := []struct {
		pan     string
		network Network
		ok      bool
	}{
		{"4111111111111111", Visa, true},
		{"5105105105105100", Mastercard, true},
		{"5500000000000004", Mastercard, true},
		{"340000000000009", Amex, true},
		{"370000000000002", Amex, true},
		{"6011000000000004", Discover, true},
		{"6445000000000000", Discover, true},
		{"6500000000000002", Discover, true},
		{"3530111333300000", JCB, true},
		{"6200000000000005", UnionPay, true},
		{"9999999999999999", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		network, ok := DetectNetwork(tt.pan)
		require.Equal(tt.ok, ok, "pan %q", tt.pan)
		require.Equal(tt.network, network, "pan %q", tt.pan)
	}
}

func TestDefinition_Variable(t *testing.T) {
	require := require.New(t)

	require.True(ll(19, "").Variable())
	require.True(lll(999, "").Variable())
	require.True(z(37, "").Variable())
	require.False(n(6, "").Variable())
	require.False(b(8, "").Variable())

	require.Equal(2, ll(19, "").PrefixDigits())
	require.Equal(2, z(37, "").PrefixDigits())
	require.Equal(3, lll(999, "").PrefixDigits())
	require.Equal(0, an(8, "").PrefixDigits())
}
