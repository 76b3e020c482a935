package xml

import (
	"encoding/base64"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/llsd-format/go-llsd/ir"
)

const xmlDeclaration = `<?xml version="1.0" encoding="UTF-8"?>`

// EncState holds encoder configuration and indentation state.
type EncState struct {
	indent int
	depth  int
	colors *Colors
}

// Encode writes node as an LLSD XML document. The node is only read;
// encoding never mutates the tree. The default indent is 2 spaces;
// Indent(0) disables pretty-printing. Binary payloads are emitted as
// base64, the only encoding the generator produces.
func Encode(node *ir.Node, w io.Writer, opts ...EncodeOption) error {
	es := &EncState{indent: 2}
	for _, opt := range opts {
		opt(es)
	}
	if err := writeString(w, xmlDeclaration); err != nil {
		return err
	}
	if err := es.nl(w); err != nil {
		return err
	}
	if err := es.tag(w, rootElement, false); err != nil {
		return err
	}
	if err := es.nl(w); err != nil {
		return err
	}
	es.depth++
	if err := es.value(node, w); err != nil {
		return err
	}
	es.depth--
	if err := es.tag(w, rootElement, true); err != nil {
		return err
	}
	return writeString(w, "\n")
}

func (es *EncState) value(node *ir.Node, w io.Writer) error {
	if node == nil {
		return fmt.Errorf("cannot encode nil node")
	}
	switch node.Type {
	case ir.UndefType:
		if err := es.pad(w); err != nil {
			return err
		}
		if err := writeString(w, es.color("<undef/>", es.tagColor())); err != nil {
			return err
		}
		return es.nl(w)
	case ir.BoolType:
		return es.leaf(w, "boolean", strconv.FormatBool(node.Bool), node.Type)
	case ir.IntegerType:
		return es.leaf(w, "integer", strconv.FormatInt(int64(node.Int), 10), node.Type)
	case ir.RealType:
		return es.leaf(w, "real", formatReal(node.Real), node.Type)
	case ir.UUIDType:
		return es.leaf(w, "uuid", node.UUID.String(), node.Type)
	case ir.StringType:
		return es.leaf(w, "string", escape(node.String), node.Type)
	case ir.URIType:
		return es.leaf(w, "uri", escape(node.String), node.Type)
	case ir.DateType:
		return es.leaf(w, "date", formatDate(node.Date), node.Type)
	case ir.BinaryType:
		if err := es.pad(w); err != nil {
			return err
		}
		if err := writeString(w, es.color(`<binary encoding="base64">`, es.tagColor())); err != nil {
			return err
		}
		text := base64.StdEncoding.EncodeToString(node.Binary)
		if err := writeString(w, es.color(text, es.valueColor(node.Type))); err != nil {
			return err
		}
		if err := writeString(w, es.color("</binary>", es.tagColor())); err != nil {
			return err
		}
		return es.nl(w)
	case ir.MapType:
		return es.encodeMap(node, w)
	case ir.ArrayType:
		return es.encodeArray(node, w)
	default:
		return fmt.Errorf("cannot encode node of type %s", node.Type)
	}
}

func (es *EncState) encodeMap(node *ir.Node, w io.Writer) error {
	if err := es.open(w, "map"); err != nil {
		return err
	}
	for i, key := range node.Fields {
		if err := es.pad(w); err != nil {
			return err
		}
		if err := es.tag(w, "key", false); err != nil {
			return err
		}
		if err := writeString(w, es.color(escape(key), es.keyColor())); err != nil {
			return err
		}
		if err := es.tag(w, "key", true); err != nil {
			return err
		}
		if err := es.nl(w); err != nil {
			return err
		}
		if err := es.value(node.Values[i], w); err != nil {
			return err
		}
	}
	return es.close(w, "map")
}

func (es *EncState) encodeArray(node *ir.Node, w io.Writer) error {
	if err := es.open(w, "array"); err != nil {
		return err
	}
	for _, v := range node.Values {
		if err := es.value(v, w); err != nil {
			return err
		}
	}
	return es.close(w, "array")
}

// leaf writes one <name>text</name> element on a single line.
func (es *EncState) leaf(w io.Writer, name, text string, t ir.Type) error {
	if err := es.pad(w); err != nil {
		return err
	}
	if err := es.tag(w, name, false); err != nil {
		return err
	}
	if err := writeString(w, es.color(text, es.valueColor(t))); err != nil {
		return err
	}
	if err := es.tag(w, name, true); err != nil {
		return err
	}
	return es.nl(w)
}

func (es *EncState) open(w io.Writer, name string) error {
	if err := es.pad(w); err != nil {
		return err
	}
	if err := es.tag(w, name, false); err != nil {
		return err
	}
	es.depth++
	return es.nl(w)
}

func (es *EncState) close(w io.Writer, name string) error {
	es.depth--
	if err := es.pad(w); err != nil {
		return err
	}
	if err := es.tag(w, name, true); err != nil {
		return err
	}
	return es.nl(w)
}

func (es *EncState) tag(w io.Writer, name string, close bool) error {
	s := "<" + name + ">"
	if close {
		s = "</" + name + ">"
	}
	return writeString(w, es.color(s, es.tagColor()))
}

func (es *EncState) pad(w io.Writer) error {
	if es.indent <= 0 {
		return nil
	}
	return writeString(w, strings.Repeat(" ", es.indent*es.depth))
}

func (es *EncState) nl(w io.Writer) error {
	if es.indent <= 0 {
		return nil
	}
	return writeString(w, "\n")
}

func writeString(w io.Writer, s string) error {
	_, err := io.WriteString(w, s)
	return err
}

var escaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	"'", "&apos;",
	`"`, "&quot;",
)

func escape(s string) string {
	return escaper.Replace(s)
}

// formatReal uses the shortest decimal that round-trips the bit
// pattern, and the lowercase "nan" token for NaN.
func formatReal(v float64) string {
	if math.IsNaN(v) {
		return "nan"
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// formatDate emits RFC-3339 in UTC with second precision.
func formatDate(secs int64) string {
	return time.Unix(secs, 0).UTC().Format(time.RFC3339)
}
