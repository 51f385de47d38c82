package iso8583

import (
	"bufio"
	"errors"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/paysim/go-iso8583/bitmap"
	"github.com/paysim/go-iso8583/field"
	"github.com/paysim/go-iso8583/internal/util"
	"github.com/paysim/go-iso8583/logger"
)

// maxLineSize bounds a single message line in batch parsing. A message
// with every LLLVAR field at its 999-character maximum stays well inside
// this; longer lines are skipped like any other bad line, never fatal.
const maxLineSize = 1 << 20

// Parser decodes raw ISO 8583 wire strings into Messages. A Parser is
// stateless across calls and safe for concurrent use, except that a
// configured MessagePool hands each parsed message to exactly one caller.
type Parser struct {
	version field.Version
	catalog *field.Catalog
	log     logger.Logger
	pool    *MessagePool
}

// NewParser creates a parser with the standard catalog and the 1987
// revision unless options say otherwise.
func NewParser(opts ...Option) *Parser {
	cfg := newConfig(opts)

	return &Parser{
		version: cfg.version,
		catalog: cfg.catalog,
		log:     cfg.log,
		pool:    cfg.pool,
	}
}

// Parse decodes one wire string. network is the declared card scheme, used
// to resolve dialect field definitions; pass the empty string to parse
// against the base tables, in which case the scheme is guessed from the
// PAN prefix and attached to the message as an advisory hint only.
//
// A failure anywhere aborts the whole parse; no partially filled message
// is returned.
func (p *Parser) Parse(raw string, network field.Network) (*Message, error) {
	cur := wireCursor{raw: raw}

	mti, err := cur.takeMTI()
	if err != nil {
		return nil, err
	}

	bmp, err := cur.takeBitmap()
	if err != nil {
		return nil, err
	}

	present, err := bitmap.Decode(bmp)
	if err != nil {
		return nil, newParseError(-1, err)
	}

	fields := make(map[int]string, len(present)+1)
	fields[field.MTIField] = mti

	for _, num := range present {
		if num == 65 {
			// tertiary bitmap flag, not a data element
			continue
		}

		def, err := p.catalog.Resolve(num, network, p.version)
		if err != nil {
			if errors.Is(err, field.ErrNotFound) {
				p.log.Warn("bitmap marks a field with no catalog definition, skipping", "field", num)
				continue
			}
			return nil, newParseError(num, err)
		}

		value, err := cur.takeField(num, def)
		if err != nil {
			return nil, err
		}
		fields[num] = value
	}

	var m *Message
	if p.pool != nil {
		m = p.pool.Acquire()
		for num, value := range fields {
			m.fields[num] = value
		}
		m.mti = mti
	} else {
		m = NewMessage(mti, fields)
	}

	m.version = p.version
	m.versionSet = true
	m.network = network
	m.raw = raw
	m.bitmap = bmp

	if network == "" {
		if hint, ok := field.DetectNetwork(fields[2]); ok {
			m.hint = hint
		}
	}

	return m, nil
}

// ParseFile reads one message per line from a file, isolating failures:
// unparseable lines are logged and skipped, and parsing continues. The
// returned error reflects only I/O problems.
func (p *Parser) ParseFile(path string) ([]*Message, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return p.ParseReader(f)
}

// ParseReader is ParseFile over any line-oriented reader.
func (p *Parser) ParseReader(r io.Reader) ([]*Message, error) {
	br := bufio.NewReaderSize(r, 64*1024)

	var msgs []*Message
	lineNum := 0
	for {
		line, tooLong, err := readLine(br)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return msgs, nil
			}
			return msgs, err
		}

		lineNum++
		if tooLong {
			p.log.Error("skipping oversized message line", "line", lineNum, "limit", maxLineSize)
			continue
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		m, err := p.Parse(line, "")
		if err != nil {
			p.log.Error("skipping unparseable message", "line", lineNum, "error", err)
			continue
		}
		msgs = append(msgs, m)
	}
}

// readLine assembles one line without its terminator. A line longer than
// maxLineSize is consumed to its end and reported as tooLong, so the next
// call resumes on the following line.
func readLine(br *bufio.Reader) (line string, tooLong bool, err error) {
	var buf []byte
	for {
		chunk, isPrefix, err := br.ReadLine()
		if err != nil {
			return string(buf), tooLong, err
		}
		if !tooLong {
			if len(buf)+len(chunk) > maxLineSize {
				tooLong = true
				buf = nil
			} else {
				buf = append(buf, chunk...)
			}
		}
		if !isPrefix {
			return string(buf), tooLong, nil
		}
	}
}

// wireCursor walks a wire string left to right.
type wireCursor struct {
	raw string
	pos int
}

func (c *wireCursor) take(fieldNum, n int, what string) (string, error) {
	if c.pos+n > len(c.raw) {
		return "", parseErrorf(fieldNum, "%w: need %d characters for %s, have %d",
			ErrMessageTooShort, n, what, len(c.raw)-c.pos)
	}
	v := c.raw[c.pos : c.pos+n]
	c.pos += n

	return v, nil
}

func (c *wireCursor) takeMTI() (string, error) {
	mti, err := c.take(-1, 4, "MTI")
	if err != nil {
		return "", err
	}
	if !util.IsDigits(mti) {
		return "", parseErrorf(-1, "%w: %q is not 4 decimal digits", ErrInvalidMTI, mti)
	}

	return mti, nil
}

func (c *wireCursor) takeBitmap() (string, error) {
	primary, err := c.take(-1, bitmap.PrimaryHexLen, "primary bitmap")
	if err != nil {
		return "", err
	}

	lead, convErr := strconv.ParseUint(primary[:1], 16, 8)
	if convErr != nil {
		return "", parseErrorf(-1, "%w: primary vector is not hex", bitmap.ErrMalformed)
	}

	if lead&0x8 == 0 {
		return primary, nil
	}

	secondary, err := c.take(-1, bitmap.PrimaryHexLen, "secondary bitmap")
	if err != nil {
		return "", err
	}

	return primary + secondary, nil
}

func (c *wireCursor) takeField(num int, def field.Definition) (string, error) {
	if def.Variable() {
		return c.takeVariable(num, def)
	}
	if def.Type == field.Binary {
		return c.takeBinary(num, def)
	}

	// fixed width; exact wire width is preserved, leading zeros included
	return c.take(num, def.MaxLength, "value")
}

func (c *wireCursor) takeVariable(num int, def field.Definition) (string, error) {
	digits := def.PrefixDigits()
	prefix, err := c.take(num, digits, "length prefix")
	if err != nil {
		return "", err
	}
	if !util.IsDigits(prefix) {
		return "", parseErrorf(num, "%w: %q", ErrInvalidLengthPrefix, prefix)
	}

	length, _ := strconv.Atoi(prefix)
	if length > def.MaxLength {
		return "", parseErrorf(num, "%w: declared %d, maximum %d", ErrLengthExceedsMax, length, def.MaxLength)
	}

	return c.take(num, length, "value")
}

func (c *wireCursor) takeBinary(num int, def field.Definition) (string, error) {
	v, err := c.take(num, def.WireLength(), "value")
	if err != nil {
		return "", err
	}
	if !util.IsHex(v) {
		return "", parseErrorf(num, "%w: %q", ErrInvalidHex, v)
	}

	return strings.ToUpper(v), nil
}
