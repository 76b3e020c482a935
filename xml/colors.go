package xml

import (
	"github.com/fatih/color"

	"github.com/llsd-format/go-llsd/ir"
)

// ColorAttr selects which part of the output a color applies to.
type ColorAttr int

const (
	TagColor ColorAttr = iota
	KeyColor
	ValueColor
)

type Colorable struct {
	Type ir.Type
	Attr ColorAttr
}

type Colors struct {
	Default func(string, ...any) string
	Map     map[Colorable]func(string, ...any) string
}

func NewColors() *Colors {
	colors := &Colors{
		Default: colorDefault,
		Map:     map[Colorable]func(string, ...any) string{},
	}
	for _, t := range ir.Types() {
		able := Colorable{Type: t, Attr: TagColor}
		colors.Map[able] = color.RGB(74, 92, 138).SprintfFunc()
		able.Attr = KeyColor
		colors.Map[able] = color.RGB(196, 96, 16).SprintfFunc()
	}
	able := Colorable{Attr: ValueColor}

	able.Type = ir.IntegerType
	colors.Map[able] = color.RGB(128, 216, 236).SprintfFunc()
	able.Type = ir.RealType
	colors.Map[able] = color.RGB(128, 216, 236).SprintfFunc()
	able.Type = ir.DateType
	colors.Map[able] = color.RGB(128, 216, 236).SprintfFunc()

	able.Type = ir.UndefType
	colors.Map[able] = color.RGB(168, 0, 196).SprintfFunc()

	able.Type = ir.BoolType
	colors.Map[able] = color.CyanString

	able.Type = ir.StringType
	colors.Map[able] = color.RGB(8, 196, 16).SprintfFunc()
	able.Type = ir.URIType
	colors.Map[able] = color.RGB(8, 196, 16).SprintfFunc()

	able.Type = ir.UUIDType
	colors.Map[able] = color.RGB(196, 168, 128).SprintfFunc()
	able.Type = ir.BinaryType
	colors.Map[able] = color.RGB(96, 96, 96).SprintfFunc()
	return colors
}

func colorDefault(f string, args ...any) string {
	return color.WhiteString(f, args...)
}

func (c *Colors) Color(able Colorable, s string) string {
	f, ok := c.Map[able]
	if !ok {
		f = c.Default
	}
	return f("%s", s)
}

// color applies the configured color function, if any.
func (es *EncState) color(s string, able Colorable) string {
	if es.colors == nil {
		return s
	}
	return es.colors.Color(able, s)
}

func (es *EncState) tagColor() Colorable {
	return Colorable{Attr: TagColor}
}

func (es *EncState) keyColor() Colorable {
	return Colorable{Type: ir.MapType, Attr: KeyColor}
}

func (es *EncState) valueColor(t ir.Type) Colorable {
	return Colorable{Type: t, Attr: ValueColor}
}
