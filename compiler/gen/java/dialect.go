// Package java implements the default dialect: class, interface and enum
// blocks in a Java-like syntax.
package java

import (
	"strings"

	"github.com/syssam/classflow/compiler/gen"
	"github.com/syssam/classflow/model"
)

// Dialect renders entities as Java-like source blocks.
type Dialect struct{}

// NewDialect returns the java dialect.
func NewDialect() *Dialect { return &Dialect{} }

// Compile-time check that Dialect implements gen.Dialect.
var _ gen.Dialect = (*Dialect)(nil)

// Name returns the dialect name.
func (*Dialect) Name() string { return "java" }

// Ext returns the file extension of generated files.
func (*Dialect) Ext() string { return ".java" }

// GenType renders the block of a single type:
//
//	class Car extends A implements B {
//	  private Engine Engine;
//
//	  public Car( Engine engine ){ this.engine = engine }
//	}
func (d *Dialect) GenType(t *gen.Type) (string, error) {
	var b strings.Builder
	header(&b, t.Header)
	block(&b, t)
	return b.String(), nil
}

// GenGraph renders all type blocks in entity order, separated by a
// blank line.
func (d *Dialect) GenGraph(g *gen.Graph) (string, error) {
	var b strings.Builder
	header(&b, g.Header)
	for i, t := range g.Nodes {
		if i > 0 {
			b.WriteString("\n\n")
		}
		block(&b, t)
	}
	return b.String(), nil
}

func header(b *strings.Builder, h string) {
	if h == "" {
		return
	}
	for line := range strings.SplitSeq(h, "\n") {
		b.WriteString("// ")
		b.WriteString(line)
		b.WriteByte('\n')
	}
}

func block(b *strings.Builder, t *gen.Type) {
	b.WriteString(t.Keyword())
	b.WriteByte(' ')
	b.WriteString(t.Name)
	if len(t.Extends) > 0 {
		b.WriteString(" extends ")
		b.WriteString(strings.Join(t.Extends, ", "))
	}
	if len(t.Implements) > 0 {
		b.WriteString(" implements ")
		b.WriteString(strings.Join(t.Implements, ", "))
	}
	b.WriteString(" {\n")
	for _, p := range t.Properties {
		property(b, p)
	}
	if len(t.Properties) > 0 && len(t.Methods) > 0 {
		b.WriteByte('\n')
	}
	for _, m := range t.Methods {
		method(b, t, m)
	}
	b.WriteByte('}')
}

func property(b *strings.Builder, p model.Property) {
	b.WriteString("  ")
	modifiers(b, p.IsStatic, p.IsFinal)
	b.WriteString(string(visibility(p.Visibility)))
	b.WriteByte(' ')
	b.WriteString(p.Type)
	b.WriteByte(' ')
	b.WriteString(p.Name)
	if p.InitialValue != "" {
		b.WriteString(" = ")
		b.WriteString(p.InitialValue)
	}
	b.WriteString(";\n")
}

func method(b *strings.Builder, t *gen.Type, m model.Method) {
	ctor := t.IsConstructor(m)
	b.WriteString("  ")
	if ctor {
		b.WriteString(string(visibility(m.Visibility)))
		b.WriteByte(' ')
	} else {
		modifiers(b, m.IsStatic, m.IsFinal)
		b.WriteString(string(visibility(m.Visibility)))
		b.WriteByte(' ')
		b.WriteString(m.ReturnType)
		b.WriteByte(' ')
	}
	b.WriteString(m.Name)
	b.WriteString(Params(m.Parameters))
	b.WriteString(Body(m, ctor))
	b.WriteByte('\n')
}

// Params renders a parameter list: "( T a, U b )", or "()" when empty.
func Params(params []model.Parameter) string {
	if len(params) == 0 {
		return "()"
	}
	list := make([]string, len(params))
	for i, p := range params {
		list[i] = p.Type + " " + p.Name
	}
	return "( " + strings.Join(list, ", ") + " )"
}

// Body renders a method body. Inside code is used verbatim when present,
// with the closing brace moved to its own line when the code ends in a line
// comment. Otherwise constructors assign each parameter to the field of the
// same name and other methods get an empty body.
func Body(m model.Method, ctor bool) string {
	switch {
	case m.InsideCode != "" && endsInLineComment(m.InsideCode):
		return "{ " + m.InsideCode + "\n  }"
	case m.InsideCode != "":
		return "{ " + m.InsideCode + " }"
	case ctor && len(m.Parameters) > 0:
		return "{ " + Assignments(m.Parameters) + " }"
	default:
		return "{ }"
	}
}

// endsInLineComment reports whether the last line of code holds a "//"
// comment outside string and character literals.
func endsInLineComment(code string) bool {
	if i := strings.LastIndexByte(code, '\n'); i >= 0 {
		code = code[i+1:]
	}
	var quote byte
	for i := 0; i < len(code); i++ {
		c := code[i]
		switch {
		case quote != 0:
			if c == '\\' {
				i++
			} else if c == quote {
				quote = 0
			}
		case c == '"' || c == '\'':
			quote = c
		case strings.HasPrefix(code[i:], "//"):
			return true
		}
	}
	return false
}

// Assignments renders the default constructor statements for params.
func Assignments(params []model.Parameter) string {
	stmts := make([]string, len(params))
	for i, p := range params {
		stmts[i] = "this." + p.Name + " = " + p.Name
	}
	return strings.Join(stmts, "; ")
}

func modifiers(b *strings.Builder, static, final bool) {
	if static {
		b.WriteString("static ")
	}
	if final {
		b.WriteString("final ")
	}
}

func visibility(v model.Visibility) model.Visibility {
	if v.Valid() {
		return v
	}
	return model.Public
}
