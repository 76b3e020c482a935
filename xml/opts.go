package xml

type EncodeOption func(*EncState)

// Indent sets the number of spaces composite children are indented by.
// Zero disables pretty-printing entirely.
func Indent(n int) EncodeOption {
	return func(es *EncState) { es.indent = n }
}

// EncodeColors enables terminal colorization of the output. Colorized
// output is for display; the embedded escape sequences make it
// unsuitable as decoder input.
func EncodeColors(c *Colors) EncodeOption {
	return func(es *EncState) { es.colors = c }
}
