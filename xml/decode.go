package xml

import (
	"bytes"
	"encoding/ascii85"
	"encoding/base64"
	"encoding/hex"
	stdxml "encoding/xml"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/llsd-format/go-llsd/ir"
)

const rootElement = "llsd"

// maxDepth bounds recursion so adversarial nesting is a decode error,
// not a stack overflow.
const maxDepth = 1000

// Decode parses an LLSD XML document: one <llsd> wrapper containing
// exactly one typed element.
func Decode(d []byte) (*ir.Node, error) {
	p := &parser{dec: stdxml.NewDecoder(bytes.NewReader(d))}

	var root *ir.Node
	inLLSD := false
	closed := false
	for {
		tok, err := p.dec.RawToken()
		if err == io.EOF {
			if inLLSD {
				return nil, fmt.Errorf("%w: <%s> still open at offset %d",
					ErrUnexpectedEOF, rootElement, p.pos())
			}
			if !closed {
				return nil, fmt.Errorf("%w: no <%s> element", ErrRoot, rootElement)
			}
			if root == nil {
				return nil, fmt.Errorf("%w: empty <%s> element", ErrRoot, rootElement)
			}
			return root, nil
		}
		if err != nil {
			return nil, p.syntax(err)
		}
		switch t := tok.(type) {
		case stdxml.StartElement:
			if !inLLSD {
				if t.Name.Local != rootElement {
					return nil, fmt.Errorf("%w: expected <%s>, found <%s> at offset %d",
						ErrRoot, rootElement, t.Name.Local, p.pos())
				}
				if closed {
					return nil, fmt.Errorf("%w: more than one <%s> block at offset %d",
						ErrRoot, rootElement, p.pos())
				}
				inLLSD = true
				continue
			}
			if root != nil {
				return nil, fmt.Errorf("%w: more than one root value at offset %d",
					ErrRoot, p.pos())
			}
			v, err := p.value(t, 0)
			if err != nil {
				return nil, err
			}
			root = v
		case stdxml.EndElement:
			if !inLLSD || t.Name.Local != rootElement {
				return nil, p.mismatch(rootElement, t.Name.Local)
			}
			inLLSD = false
			closed = true
		default:
			// declarations, comments and stray text between elements
		}
	}
}

type parser struct {
	dec *stdxml.Decoder
}

func (p *parser) pos() int64 {
	return p.dec.InputOffset()
}

func (p *parser) syntax(err error) error {
	return fmt.Errorf("%w at offset %d: %v", ErrSyntax, p.pos(), err)
}

func (p *parser) mismatch(open, close string) error {
	return fmt.Errorf("%w: <%s> closed by </%s> at offset %d",
		ErrTagMismatch, open, close, p.pos())
}

// token reads the next event while the element named open is still
// unclosed, converting reader errors into decode errors.
func (p *parser) token(open string) (stdxml.Token, error) {
	tok, err := p.dec.RawToken()
	if err == io.EOF {
		return nil, fmt.Errorf("%w: <%s> still open at offset %d",
			ErrUnexpectedEOF, open, p.pos())
	}
	if err != nil {
		return nil, p.syntax(err)
	}
	return tok, nil
}

// value parses one typed element. It is entered already holding the
// element's start tag.
func (p *parser) value(se stdxml.StartElement, depth int) (*ir.Node, error) {
	if depth > maxDepth {
		return nil, fmt.Errorf("%w (%d) at offset %d", ErrMaxDepth, maxDepth, p.pos())
	}
	switch se.Name.Local {
	case "undef", "boolean", "integer", "real", "uuid", "string", "uri", "binary", "date":
		return p.primitive(se)
	case "map":
		return p.decodeMap(depth)
	case "array":
		return p.decodeArray(depth)
	default:
		return nil, fmt.Errorf("%w: <%s> at offset %d",
			ErrUnknownElement, se.Name.Local, p.pos())
	}
}

// primitive accumulates text until the matching end tag, then converts.
// Comments interleaved with the text are ignored.
func (p *parser) primitive(se stdxml.StartElement) (*ir.Node, error) {
	name := se.Name.Local
	var text bytes.Buffer
	for {
		tok, err := p.token(name)
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case stdxml.CharData:
			text.Write(t)
		case stdxml.StartElement:
			return nil, fmt.Errorf("%w: unexpected <%s> inside <%s> at offset %d",
				ErrUnknownElement, t.Name.Local, name, p.pos())
		case stdxml.EndElement:
			if t.Name.Local != name {
				return nil, p.mismatch(name, t.Name.Local)
			}
			return p.convert(name, strings.TrimSpace(text.String()), se.Attr)
		}
	}
}

func (p *parser) convert(name, text string, attrs []stdxml.Attr) (*ir.Node, error) {
	switch name {
	case "undef":
		return ir.Undef(), nil
	case "boolean":
		switch text {
		case "0", "false":
			return ir.FromBool(false), nil
		case "1", "true":
			return ir.FromBool(true), nil
		}
		return nil, fmt.Errorf("%w: boolean %q at offset %d", ErrLiteral, text, p.pos())
	case "integer":
		i, err := strconv.ParseInt(text, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("%w: integer %q at offset %d: %v",
				ErrLiteral, text, p.pos(), err)
		}
		return ir.FromInt(int32(i)), nil
	case "real":
		if strings.EqualFold(text, "nan") {
			return ir.FromReal(math.NaN()), nil
		}
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: real %q at offset %d: %v",
				ErrLiteral, text, p.pos(), err)
		}
		return ir.FromReal(f), nil
	case "uuid":
		if text == "" {
			return ir.FromUUID(uuid.Nil), nil
		}
		u, err := uuid.Parse(text)
		if err != nil {
			return nil, fmt.Errorf("%w: uuid %q at offset %d: %v",
				ErrLiteral, text, p.pos(), err)
		}
		return ir.FromUUID(u), nil
	case "string":
		return ir.FromString(text), nil
	case "uri":
		return ir.FromURI(text), nil
	case "date":
		ts, err := time.Parse(time.RFC3339, text)
		if err != nil {
			return nil, fmt.Errorf("%w: date %q at offset %d: %v",
				ErrLiteral, text, p.pos(), err)
		}
		return ir.FromDate(ts.Unix()), nil
	case "binary":
		return p.convertBinary(text, attrs)
	}
	return nil, fmt.Errorf("%w: <%s> at offset %d", ErrUnknownElement, name, p.pos())
}

// convertBinary decodes a binary payload per the encoding attribute.
// A missing attribute defaults to base64.
func (p *parser) convertBinary(text string, attrs []stdxml.Attr) (*ir.Node, error) {
	enc := "base64"
	for _, a := range attrs {
		if a.Name.Local == "encoding" {
			enc = a.Value
		}
	}
	var d []byte
	var err error
	switch enc {
	case "base64":
		d, err = base64.StdEncoding.DecodeString(text)
	case "base16":
		d, err = hex.DecodeString(text)
	case "base85":
		dst := make([]byte, len(text))
		var n int
		n, _, err = ascii85.Decode(dst, []byte(text), true)
		d = dst[:n]
	default:
		return nil, fmt.Errorf("%w: unrecognized encoding %q at offset %d",
			ErrEncoding, enc, p.pos())
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s payload at offset %d: %v",
			ErrEncoding, enc, p.pos(), err)
	}
	return ir.FromBinary(d), nil
}

// decodeMap loops over <key>text</key> VALUE pairs until </map>.
func (p *parser) decodeMap(depth int) (*ir.Node, error) {
	node := ir.NewMap()
	for {
		tok, err := p.token("map")
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case stdxml.StartElement:
			if t.Name.Local != "key" {
				return nil, fmt.Errorf("%w: expected <key> in map, found <%s> at offset %d",
					ErrUnknownElement, t.Name.Local, p.pos())
			}
			key, err := p.keyText()
			if err != nil {
				return nil, err
			}
			val, err := p.entryValue(depth)
			if err != nil {
				return nil, err
			}
			// duplicate keys replace; last write wins
			node.Set(key, val)
		case stdxml.EndElement:
			if t.Name.Local != "map" {
				return nil, p.mismatch("map", t.Name.Local)
			}
			return node, nil
		default:
			// stray text and comments between entries
		}
	}
}

func (p *parser) keyText() (string, error) {
	var text bytes.Buffer
	for {
		tok, err := p.token("key")
		if err != nil {
			return "", err
		}
		switch t := tok.(type) {
		case stdxml.CharData:
			text.Write(t)
		case stdxml.StartElement:
			return "", fmt.Errorf("%w: unexpected <%s> inside <key> at offset %d",
				ErrUnknownElement, t.Name.Local, p.pos())
		case stdxml.EndElement:
			if t.Name.Local != "key" {
				return "", p.mismatch("key", t.Name.Local)
			}
			return strings.TrimSpace(text.String()), nil
		}
	}
}

// entryValue parses the one typed element that must follow a map key.
func (p *parser) entryValue(depth int) (*ir.Node, error) {
	for {
		tok, err := p.token("map")
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case stdxml.StartElement:
			return p.value(t, depth+1)
		case stdxml.EndElement:
			return nil, fmt.Errorf("%w: <key> without a value, closed by </%s> at offset %d",
				ErrUnknownElement, t.Name.Local, p.pos())
		default:
			// whitespace and comments between key and value
		}
	}
}

// decodeArray parses successive typed elements until </array>.
func (p *parser) decodeArray(depth int) (*ir.Node, error) {
	node := &ir.Node{Type: ir.ArrayType}
	for {
		tok, err := p.token("array")
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case stdxml.StartElement:
			v, err := p.value(t, depth+1)
			if err != nil {
				return nil, err
			}
			node.Values = append(node.Values, v)
		case stdxml.EndElement:
			if t.Name.Local != "array" {
				return nil, p.mismatch("array", t.Name.Local)
			}
			return node, nil
		default:
			// stray text and comments between elements
		}
	}
}
