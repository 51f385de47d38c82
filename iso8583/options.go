package iso8583

import (
	"fmt"
	"sync"

	"github.com/paysim/go-iso8583/field"
	"github.com/paysim/go-iso8583/logger"
)

type config struct {
	version field.Version
	catalog *field.Catalog
	log     logger.Logger
	pool    *MessagePool
}

// Option configures a Parser or Builder.
type Option func(*config)

// WithVersion selects the ISO 8583 protocol revision. The default is 1987.
func WithVersion(v field.Version) Option {
	return func(c *config) { c.version = v }
}

// WithCatalog supplies a custom field catalog, typically one carrying
// overrides loaded from configuration at process start.
func WithCatalog(cat *field.Catalog) Option {
	return func(c *config) { c.catalog = cat }
}

// WithLogger supplies the logger used for non-fatal parse warnings. The
// default is the logger package's default logger; use logger.Nop() to
// silence.
func WithLogger(l logger.Logger) Option {
	return func(c *config) { c.log = l }
}

// WithPool makes the parser borrow Message shells from a pool instead of
// allocating. Callers are then responsible for releasing parsed messages.
func WithPool(p *MessagePool) Option {
	return func(c *config) { c.pool = p }
}

func newConfig(opts []Option) config {
	c := config{
		version: field.V1987,
		catalog: DefaultCatalog(),
		log:     logger.GetLogger(),
	}
	for _, opt := range opts {
		opt(&c)
	}

	return c
}

var defaultCatalog = sync.OnceValue(func() *field.Catalog {
	cat, err := field.NewCatalog()
	if err != nil {
		// the shipped tables are static; this cannot happen on a release build
		panic(fmt.Sprintf("iso8583: default catalog: %v", err))
	}

	return cat
})

// DefaultCatalog returns the shared catalog holding the standard field
// tables with no overrides.
func DefaultCatalog() *field.Catalog {
	return defaultCatalog()
}
