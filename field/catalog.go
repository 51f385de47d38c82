package field

import (
	"errors"
	"fmt"

	"github.com/puzpuzpuz/xsync/v3"
)

// ErrNotFound is returned by Catalog.Resolve when no tier defines the
// requested field.
var ErrNotFound = errors.New("field not defined in catalog")

type resolveKey struct {
	field   int
	network Network
	version Version
}

// Catalog resolves (field number, network, version) to a Definition through
// three tiers checked in order: network dialect, protocol revision, 1987
// base. A Catalog is built once, frozen, and safe for concurrent readers;
// overrides are registered as data through constructor options, never as
// code branches.
type Catalog struct {
	base     map[int]Definition
	versions map[Version]map[int]Definition
	networks map[Network]map[int]Definition
	required map[Network][]int
	formats  map[Network]map[int]FormatCheck

	cache *xsync.MapOf[resolveKey, Definition]
}

// CatalogOption customizes a Catalog during construction.
type CatalogOption func(*Catalog)

// WithNetworkOverride registers a scheme-specific definition for one field.
func WithNetworkOverride(network Network, fieldNum int, def Definition) CatalogOption {
	return func(c *Catalog) {
		tbl := c.networks[network]
		if tbl == nil {
			tbl = make(map[int]Definition)
			c.networks[network] = tbl
		}
		tbl[fieldNum] = def
	}
}

// WithVersionOverride registers a revision-specific definition for one field.
func WithVersionOverride(version Version, fieldNum int, def Definition) CatalogOption {
	return func(c *Catalog) {
		tbl := c.versions[version]
		if tbl == nil {
			tbl = make(map[int]Definition)
			c.versions[version] = tbl
		}
		tbl[fieldNum] = def
	}
}

// WithBaseOverride replaces the base definition for one field.
func WithBaseOverride(fieldNum int, def Definition) CatalogOption {
	return func(c *Catalog) {
		c.base[fieldNum] = def
	}
}

// WithRequiredFields replaces the required-field set for a scheme.
func WithRequiredFields(network Network, fields []int) CatalogOption {
	return func(c *Catalog) {
		c.required[network] = append([]int(nil), fields...)
	}
}

// NewCatalog builds a catalog from the standard tables plus any overrides.
// It returns an error if a registered definition is internally inconsistent.
func NewCatalog(opts ...CatalogOption) (*Catalog, error) {
	c := &Catalog{
		base:     make(map[int]Definition, len(baseTable)),
		versions: make(map[Version]map[int]Definition, len(versionTables)),
		networks: make(map[Network]map[int]Definition, len(networkTables)),
		required: make(map[Network][]int, len(requiredFields)),
		formats:  make(map[Network]map[int]FormatCheck, len(formatChecks)),
		cache:    xsync.NewMapOf[resolveKey, Definition](),
	}

	for num, def := range baseTable {
		c.base[num] = def
	}
	for ver, tbl := range versionTables {
		cp := make(map[int]Definition, len(tbl))
		for num, def := range tbl {
			cp[num] = def
		}
		c.versions[ver] = cp
	}
	for net, tbl := range networkTables {
		cp := make(map[int]Definition, len(tbl))
		for num, def := range tbl {
			cp[num] = def
		}
		c.networks[net] = cp
	}
	for net, fields := range requiredFields {
		c.required[net] = append([]int(nil), fields...)
	}
	for net, checks := range formatChecks {
		cp := make(map[int]FormatCheck, len(checks))
		for num, chk := range checks {
			cp[num] = chk
		}
		c.formats[net] = cp
	}

	for _, opt := range opts {
		opt(c)
	}

	if err := c.verify(); err != nil {
		return nil, err
	}

	return c, nil
}

func (c *Catalog) verify() error {
	check := func(num int, def Definition) error {
		if def.MaxLength <= 0 {
			return fmt.Errorf("field %d: max length %d is not positive", num, def.MaxLength)
		}
		if def.MinLength > def.MaxLength {
			return fmt.Errorf("field %d: min length %d exceeds max length %d", num, def.MinLength, def.MaxLength)
		}
		return nil
	}

	for num, def := range c.base {
		if err := check(num, def); err != nil {
			return err
		}
	}
	for _, tbl := range c.versions {
		for num, def := range tbl {
			if err := check(num, def); err != nil {
				return err
			}
		}
	}
	for _, tbl := range c.networks {
		for num, def := range tbl {
			if err := check(num, def); err != nil {
				return err
			}
		}
	}

	return nil
}

// Resolve returns the definition for a field number, checking the network
// dialect first, then the protocol revision, then the base table. An empty
// network means no dialect; an empty version defaults to 1987.
//
// Resolve is a pure function of its inputs and caches results, so repeated
// lookups under concurrent parsing are cheap.
func (c *Catalog) Resolve(fieldNum int, network Network, version Version) (Definition, error) {
	if version == "" {
		version = V1987
	}

	key := resolveKey{field: fieldNum, network: network, version: version}
	if def, ok := c.cache.Load(key); ok {
		return def, nil
	}

	def, ok := c.lookup(fieldNum, network, version)
	if !ok {
		return Definition{}, fmt.Errorf("%w: field %d (network=%q version=%q)", ErrNotFound, fieldNum, network, version)
	}

	c.cache.Store(key, def)

	return def, nil
}

func (c *Catalog) lookup(fieldNum int, network Network, version Version) (Definition, bool) {
	if network != "" {
		if def, ok := c.networks[network][fieldNum]; ok {
			return def, true
		}
	}
	if def, ok := c.versions[version][fieldNum]; ok {
		return def, true
	}
	def, ok := c.base[fieldNum]

	return def, ok
}

// RequiredFields returns the data elements a scheme demands on
// authorization and financial messages. The returned slice is a copy.
func (c *Catalog) RequiredFields(network Network) []int {
	return append([]int(nil), c.required[network]...)
}

// FormatCheck returns the scheme-specific value constraint for a field, if
// one is defined.
func (c *Catalog) FormatCheck(network Network, fieldNum int) (FormatCheck, bool) {
	chk, ok := c.formats[network][fieldNum]
	return chk, ok
}
