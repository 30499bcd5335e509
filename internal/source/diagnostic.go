package source

import "fmt"

// Category classifies a Diagnostic by error kind.
type Category string

const (
	CategoryLex        Category = "lex"
	CategoryParse      Category = "parse"
	CategoryName       Category = "name"
	CategoryType       Category = "type"
	CategoryRange      Category = "range"
	CategoryArithmetic Category = "arithmetic"
	CategoryModule     Category = "module"
	CategoryResource   Category = "resource"
	CategoryFatal      Category = "fatal"
)

// Diagnostic is a categorized, positioned error. It is the Area-aware
// counterpart of a categorized interpreter error: same shape (category +
// message + position), generalized to carry sub-areas so an operator
// adapter can point at exactly which operand was invalid rather than the
// whole expression.
type Diagnostic struct {
	Category Category
	Message  string
	Area     *Area // nil if no position is known (should not happen outside Fatal)
	SubArea  *Area // set when a specific operand, not the whole expression, is at fault
}

// Error implements the error interface so a Diagnostic can be threaded
// through ordinary Go error returns in the lexer and parser.
func (d *Diagnostic) Error() string {
	return d.Message
}

// Render formats d as "<file>:<line>:<col>: <category> error: <message>",
// preferring the sub-area when one is set, or as "<category>: <message>"
// when d carries no area at all.
func (d *Diagnostic) Render(files *Files) string {
	area := d.Area
	if d.SubArea != nil {
		area = d.SubArea
	}
	if area == nil {
		return fmt.Sprintf("%s: %s", d.Category, d.Message)
	}
	return fmt.Sprintf("%s: %s error: %s", area.String(files), d.Category, d.Message)
}

// New builds a Diagnostic with no sub-area.
func New(cat Category, area *Area, format string, args ...any) *Diagnostic {
	return &Diagnostic{Category: cat, Message: fmt.Sprintf(format, args...), Area: area}
}

// NewWithSubArea builds a Diagnostic that blames one operand of a
// multi-operand expression.
func NewWithSubArea(cat Category, area, subArea *Area, format string, args ...any) *Diagnostic {
	return &Diagnostic{Category: cat, Message: fmt.Sprintf(format, args...), Area: area, SubArea: subArea}
}
