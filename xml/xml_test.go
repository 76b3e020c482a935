package xml

import (
	"bytes"
	"encoding/ascii85"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"

	"github.com/llsd-format/go-llsd/ir"
)

func wrap(body string) []byte {
	return []byte(`<?xml version="1.0" encoding="UTF-8"?><llsd>` + body + `</llsd>`)
}

func decodeOne(t *testing.T, body string) *ir.Node {
	t.Helper()
	n, err := Decode(wrap(body))
	if err != nil {
		t.Fatalf("decode %q: %v", body, err)
	}
	return n
}

func TestDecodeScalars(t *testing.T) {
	cases := []struct {
		name string
		body string
		want *ir.Node
	}{
		{"undef", "<undef/>", ir.Undef()},
		{"undef explicit", "<undef></undef>", ir.Undef()},
		{"boolean true", "<boolean>true</boolean>", ir.FromBool(true)},
		{"boolean 1", "<boolean>1</boolean>", ir.FromBool(true)},
		{"boolean false", "<boolean>false</boolean>", ir.FromBool(false)},
		{"boolean 0", "<boolean>0</boolean>", ir.FromBool(false)},
		{"integer", "<integer>-42</integer>", ir.FromInt(-42)},
		{"integer padded", "<integer>\n  7 </integer>", ir.FromInt(7)},
		{"real", "<real>123.5</real>", ir.FromReal(123.5)},
		{"uuid", "<uuid>67153d5b-3659-afb4-8510-adda2c034649</uuid>",
			ir.FromUUID(uuid.MustParse("67153d5b-3659-afb4-8510-adda2c034649"))},
		{"empty uuid", "<uuid/>", ir.FromUUID(uuid.Nil)},
		{"string", "<string>Hello world</string>", ir.FromString("Hello world")},
		{"empty string", "<string/>", ir.FromString("")},
		{"string entities", "<string>&lt;a&gt; &amp; &quot;b&quot;</string>",
			ir.FromString(`<a> & "b"`)},
		{"uri", "<uri>http://example.com/</uri>", ir.FromURI("http://example.com/")},
		{"date", "<date>2006-02-01T14:29:53Z</date>", ir.FromDate(1138804193)},
		{"epoch date", "<date>1970-01-01T00:00:00Z</date>", ir.FromDate(0)},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := decodeOne(t, c.body)
			if !ir.Equal(got, c.want) {
				t.Fatalf("mismatch: %s", cmp.Diff(c.want, got))
			}
		})
	}
}

func TestDecodeNaN(t *testing.T) {
	for _, body := range []string{"<real>nan</real>", "<real>NaN</real>"} {
		got := decodeOne(t, body)
		if got.Type != ir.RealType || !math.IsNaN(got.Real) {
			t.Fatalf("%s: expected NaN, got %v", body, got)
		}
	}
}

func TestNaNRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	if err := Encode(ir.FromReal(math.NaN()), &buf); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "<real>nan</real>") {
		t.Fatalf("expected lowercase nan token:\n%s", buf.String())
	}
	back, err := Decode(buf.Bytes())
	if err != nil {
		t.Fatal(err)
	}
	if back.Type != ir.RealType || !math.IsNaN(back.Real) {
		t.Fatalf("expected NaN real, got %v", back)
	}
}

func TestDecodeBinary(t *testing.T) {
	var enc85 bytes.Buffer
	w := ascii85.NewEncoder(&enc85)
	w.Write([]byte("Hello world"))
	w.Close()

	cases := []struct {
		name string
		body string
		want []byte
	}{
		{"base64 default", "<binary>SGVsbG8gd29ybGQ=</binary>", []byte("Hello world")},
		{"base64 explicit", `<binary encoding="base64">SGVsbG8gd29ybGQ=</binary>`, []byte("Hello world")},
		{"base16", `<binary encoding="base16">0fa1</binary>`, []byte{0x0f, 0xa1}},
		{"base85", `<binary encoding="base85">` + enc85.String() + `</binary>`, []byte("Hello world")},
		{"empty", "<binary/>", []byte{}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := decodeOne(t, c.body)
			if got.Type != ir.BinaryType || !bytes.Equal(got.Binary, c.want) {
				t.Fatalf("got %v, want binary % x", got, c.want)
			}
		})
	}
}

func TestDecodeContainers(t *testing.T) {
	got := decodeOne(t, `
		<array>
			<real>123.5</real>
			<integer>42</integer>
			<map>
				<key>val1</key><real>456</real>
				<key>val2</key><integer>999</integer>
			</map>
			<string>Hello world</string>
		</array>`)
	want := ir.FromSlice([]*ir.Node{
		ir.FromReal(123.5),
		ir.FromInt(42),
		ir.NewMap().
			Set("val1", ir.FromReal(456.0)).
			Set("val2", ir.FromInt(999)),
		ir.FromString("Hello world"),
	})
	if !ir.Equal(got, want) {
		t.Fatalf("mismatch: %s", cmp.Diff(want, got))
	}
}

func TestDecodeDuplicateKeysLastWins(t *testing.T) {
	got := decodeOne(t, `<map>
		<key>a</key><integer>1</integer>
		<key>a</key><integer>2</integer>
	</map>`)
	if len(got.Fields) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(got.Fields))
	}
	if v := got.Get("a"); v == nil || v.Int != 2 {
		t.Fatalf("expected last value 2, got %v", v)
	}
}

func TestDecodeCommentsIgnored(t *testing.T) {
	got := decodeOne(t, `<!-- pre --><string>a<!-- mid -->b</string><!-- post -->`)
	if got.String != "ab" {
		t.Fatalf("expected %q, got %q", "ab", got.String)
	}
}

func TestDecodeErrors(t *testing.T) {
	cases := []struct {
		name string
		in   []byte
		want error
	}{
		{"empty input", []byte(""), ErrRoot},
		{"no llsd", []byte("<map></map>"), ErrRoot},
		{"empty llsd", []byte("<llsd></llsd>"), ErrRoot},
		{"two roots", wrap("<integer>1</integer><integer>2</integer>"), ErrRoot},
		{"two llsd blocks", []byte("<llsd><undef/></llsd><llsd><undef/></llsd>"), ErrRoot},
		{"unclosed llsd", []byte("<llsd><integer>2</integer>"), ErrUnexpectedEOF},
		{"unclosed leaf", []byte("<llsd><integer>2"), ErrUnexpectedEOF},
		{"tag mismatch", []byte("<llsd><integer>2</complex></llsd>"), ErrTagMismatch},
		{"map closed as array", wrap("<map></array>"), ErrTagMismatch},
		{"unknown element", wrap("<quantum>1</quantum>"), ErrUnknownElement},
		{"element inside leaf", wrap("<integer><b>2</b></integer>"), ErrUnknownElement},
		{"map entry without key", wrap("<map><integer>1</integer></map>"), ErrUnknownElement},
		{"key without value", wrap("<map><key>a</key></map>"), ErrUnknownElement},
		{"bad boolean", wrap("<boolean>yes</boolean>"), ErrLiteral},
		{"integer overflow", wrap("<integer>3000000000</integer>"), ErrLiteral},
		{"bad real", wrap("<real>fast</real>"), ErrLiteral},
		{"bad uuid", wrap("<uuid>not-a-uuid</uuid>"), ErrLiteral},
		{"bad date", wrap("<date>yesterday</date>"), ErrLiteral},
		{"unknown encoding", wrap(`<binary encoding="base32">MZXW6===</binary>`), ErrEncoding},
		{"bad base64 payload", wrap("<binary>@@@@</binary>"), ErrEncoding},
		{"bad base16 payload", wrap(`<binary encoding="base16">0g</binary>`), ErrEncoding},
		{"malformed xml", []byte("<llsd><string a</llsd>"), ErrSyntax},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := Decode(c.in)
			if !errors.Is(err, c.want) {
				t.Fatalf("expected %v, got %v", c.want, err)
			}
		})
	}
}

func TestDecodeMaxDepth(t *testing.T) {
	levels := maxDepth + 10
	var b strings.Builder
	b.WriteString("<llsd>")
	for i := 0; i < levels; i++ {
		b.WriteString("<array>")
	}
	for i := 0; i < levels; i++ {
		b.WriteString("</array>")
	}
	b.WriteString("</llsd>")
	_, err := Decode([]byte(b.String()))
	if !errors.Is(err, ErrMaxDepth) {
		t.Fatalf("expected ErrMaxDepth, got %v", err)
	}
}

func TestEncodeCompact(t *testing.T) {
	var buf bytes.Buffer
	if err := Encode(ir.FromInt(42), &buf, Indent(0)); err != nil {
		t.Fatal(err)
	}
	want := `<?xml version="1.0" encoding="UTF-8"?><llsd><integer>42</integer></llsd>` + "\n"
	if buf.String() != want {
		t.Fatalf("got %q, want %q", buf.String(), want)
	}
}

func TestEncodeIndented(t *testing.T) {
	var buf bytes.Buffer
	node := ir.NewMap().Set("a", ir.FromInt(1))
	if err := Encode(node, &buf); err != nil {
		t.Fatal(err)
	}
	want := `<?xml version="1.0" encoding="UTF-8"?>
<llsd>
  <map>
    <key>a</key>
    <integer>1</integer>
  </map>
</llsd>
`
	if buf.String() != want {
		t.Fatalf("got:\n%s\nwant:\n%s", buf.String(), want)
	}
}

func TestEncodeEscaping(t *testing.T) {
	s := `<tag> & "quoted" & 'single'`
	var buf bytes.Buffer
	node := ir.NewMap().Set(s, ir.FromString(s))
	if err := Encode(node, &buf); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(strings.TrimPrefix(buf.String(), xmlDeclaration), `"quoted"`) {
		t.Fatalf("unescaped quote in output:\n%s", buf.String())
	}
	back, err := Decode(buf.Bytes())
	if err != nil {
		t.Fatal(err)
	}
	if !ir.Equal(back, node) {
		t.Fatalf("escape round trip mismatch: %s", cmp.Diff(node, back))
	}
}

func TestRoundTrip(t *testing.T) {
	cases := []struct {
		name string
		node *ir.Node
	}{
		{"undef", ir.Undef()},
		{"boolean", ir.FromBool(true)},
		{"integer", ir.FromInt(math.MinInt32)},
		{"real", ir.FromReal(-1.25e-10)},
		{"uuid", ir.FromUUID(uuid.MustParse("d7f4aeca-88f1-42a1-b385-b97b18abb255"))},
		{"string", ir.FromString("multi\nline &<> text")},
		{"uri", ir.FromURI("https://example.com/?a=1&b=2")},
		{"date", ir.FromDate(1138804193)},
		{"binary", ir.FromBinary([]byte{0, 1, 2, 0xff})},
		{"empty map", ir.NewMap()},
		{"empty array", ir.FromSlice(nil)},
		{"nested", ir.NewMap().Set("xs", ir.FromSlice([]*ir.Node{
			ir.Undef(),
			ir.NewMap().Set("deep", ir.FromReal(456.0)),
		}))},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			for _, indent := range []int{0, 2, 4} {
				var buf bytes.Buffer
				if err := Encode(c.node, &buf, Indent(indent)); err != nil {
					t.Fatal(err)
				}
				back, err := Decode(buf.Bytes())
				if err != nil {
					t.Fatalf("indent %d: decode: %v\n%s", indent, err, buf.String())
				}
				if !ir.Equal(c.node, back) {
					t.Fatalf("indent %d: mismatch: %s", indent, cmp.Diff(c.node, back))
				}
			}
		})
	}
}

func TestDateRoundTripsText(t *testing.T) {
	const text = "2006-02-01T14:29:53Z"
	n := decodeOne(t, "<date>"+text+"</date>")
	out := MustString(n)
	if !strings.Contains(out, "<date>"+text+"</date>") {
		t.Fatalf("re-encoded date missing %q:\n%s", text, out)
	}
}

func TestMustString(t *testing.T) {
	out := MustString(ir.FromString("hi"))
	if !strings.HasSuffix(out, "</llsd>") {
		t.Fatalf("unexpected output %q", out)
	}
}
