// Package golang implements a dialect rendering diagram entities as Go
// source with jennifer: classes become structs, interfaces become
// interface types and enums become string types with constants.
package golang

import (
	"bytes"
	"strings"

	"github.com/dave/jennifer/jen"

	"github.com/syssam/classflow/compiler/gen"
	"github.com/syssam/classflow/model"
)

// Dialect renders entities as Go source.
type Dialect struct{}

// NewDialect returns the golang dialect.
func NewDialect() *Dialect { return &Dialect{} }

// Compile-time check that Dialect implements gen.Dialect.
var _ gen.Dialect = (*Dialect)(nil)

// Name returns the dialect name.
func (*Dialect) Name() string { return "golang" }

// Ext returns the file extension of generated files.
func (*Dialect) Ext() string { return ".go" }

// GenType renders a complete Go file holding a single type.
func (d *Dialect) GenType(t *gen.Type) (string, error) {
	f := newFile(t.Config)
	genType(f, t)
	return render(f)
}

// GenGraph renders a single Go file holding every type in entity order.
func (d *Dialect) GenGraph(g *gen.Graph) (string, error) {
	f := newFile(g.Config)
	for _, t := range g.Nodes {
		genType(f, t)
	}
	return render(f)
}

// newFile creates a new Jennifer file with the header comment.
func newFile(c *gen.Config) *jen.File {
	pkg := c.Package
	if pkg == "" {
		pkg = "model"
	}
	f := jen.NewFile(pkg)
	for _, line := range strings.Split(c.Header, "\n") {
		if line != "" {
			f.HeaderComment(line)
		}
	}
	return f
}

func render(f *jen.File) (string, error) {
	var buf bytes.Buffer
	if err := f.Render(&buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func genType(f *jen.File, t *gen.Type) {
	switch t.Kind {
	case model.KindInterface:
		genInterface(f, t)
	case model.KindEnum:
		genEnum(f, t)
	default:
		genStruct(f, t)
	}
}

// genStruct renders a class: the struct, its static members as package
// level declarations, its constructor and its methods.
func genStruct(f *jen.File, t *gen.Type) {
	name := typeName(t.Name)
	f.Commentf("%s is the %s class.", name, t.Name)
	f.Type().Id(name).StructFunc(func(grp *jen.Group) {
		for _, s := range t.Supertypes() {
			grp.Id(typeName(s))
		}
		for _, p := range t.Properties {
			if !p.IsStatic {
				grp.Id(memberName(p.Name, p.Visibility)).Add(fieldType(t.Graph(), p.Type))
			}
		}
	})
	genStatics(f, t)
	genConstructor(f, t)
	for _, m := range t.Methods {
		if !t.IsConstructor(m) {
			genMethod(f, t, m, jen.Op("*").Id(name))
		}
	}
}

// genInterface renders an interface with its supertypes embedded and its
// instance methods as the method set. Properties have no place in a Go
// interface and are listed as comments.
func genInterface(f *jen.File, t *gen.Type) {
	name := typeName(t.Name)
	f.Commentf("%s is the %s interface.", name, t.Name)
	f.Type().Id(name).InterfaceFunc(func(grp *jen.Group) {
		for _, s := range t.Supertypes() {
			grp.Id(typeName(s))
		}
		for _, p := range t.Properties {
			grp.Commentf("%s %s", p.Name, p.Type)
		}
		for _, m := range t.Methods {
			if m.IsStatic || t.IsConstructor(m) {
				continue
			}
			grp.Id(exported(m.Name)).Params(params(t, m.Parameters)...).Add(goType(t.Graph(), m.ReturnType))
		}
	})
	for _, m := range t.Methods {
		if m.IsStatic {
			genMethod(f, t, m, nil)
		}
	}
}

// genEnum renders an enum as a string type with one constant per
// property. A quoted initial value overrides the constant value.
func genEnum(f *jen.File, t *gen.Type) {
	name := typeName(t.Name)
	f.Commentf("%s is the %s enum.", name, t.Name)
	f.Type().Id(name).String()
	if len(t.Properties) > 0 {
		f.Const().DefsFunc(func(grp *jen.Group) {
			for _, p := range t.Properties {
				value := p.Name
				if v, ok := unquote(p.InitialValue); ok {
					value = v
				}
				grp.Id(name + exported(p.Name)).Id(name).Op("=").Lit(value)
			}
		})
	}
	for _, m := range t.Methods {
		if !t.IsConstructor(m) {
			genMethod(f, t, m, jen.Id(name))
		}
	}
}

// genStatics renders static properties as package level variables, or
// constants when they are final with a literal initial value.
func genStatics(f *jen.File, t *gen.Type) {
	for _, p := range t.Properties {
		if !p.IsStatic {
			continue
		}
		id := staticName(t.Name, p.Name, p.Visibility)
		lit, ok := literal(p.InitialValue)
		switch {
		case ok && p.IsFinal:
			f.Const().Id(id).Add(fieldType(t.Graph(), p.Type)).Op("=").Add(lit)
		case ok:
			f.Var().Id(id).Add(fieldType(t.Graph(), p.Type)).Op("=").Add(lit)
		default:
			f.Var().Id(id).Add(fieldType(t.Graph(), p.Type))
		}
	}
}

// genConstructor renders New<Name>. Parameters are assigned to the fields
// whose names match them, and literal initial values are applied first.
func genConstructor(f *jen.File, t *gen.Type) {
	ctor, ok := t.Constructor()
	var inits []model.Property
	for _, p := range t.Properties {
		if _, lit := literal(p.InitialValue); lit && !p.IsStatic {
			inits = append(inits, p)
		}
	}
	if !ok && len(inits) == 0 {
		return
	}
	name := typeName(t.Name)
	recv := gen.Receiver(name)
	f.Commentf("New%s returns a new %s.", name, name)
	f.Func().Id("New"+name).Params(params(t, ctor.Parameters)...).Op("*").Id(name).BlockFunc(func(grp *jen.Group) {
		grp.Id(recv).Op(":=").Op("&").Id(name).Values()
		for _, p := range inits {
			lit, _ := literal(p.InitialValue)
			grp.Id(recv).Dot(memberName(p.Name, p.Visibility)).Op("=").Add(lit)
		}
		for i, param := range ctor.Parameters {
			for _, p := range t.Properties {
				if !p.IsStatic && strings.EqualFold(p.Name, param.Name) {
					grp.Id(recv).Dot(memberName(p.Name, p.Visibility)).Op("=").Id(paramName(param.Name, i))
					break
				}
			}
		}
		comments(grp, ctor.InsideCode)
		grp.Return(jen.Id(recv))
	})
}

// genMethod renders a method on the receiver type, or a package level
// function for static methods and a nil receiver.
func genMethod(f *jen.File, t *gen.Type, m model.Method, recvType jen.Code) {
	void := isVoid(m.ReturnType)
	var stmt *jen.Statement
	if m.IsStatic || recvType == nil {
		stmt = f.Func().Id(staticName(t.Name, m.Name, m.Visibility))
	} else {
		stmt = f.Func().Params(jen.Id(gen.Receiver(typeName(t.Name))).Add(recvType)).Id(memberName(m.Name, m.Visibility))
	}
	stmt.Params(params(t, m.Parameters)...).Add(goType(t.Graph(), m.ReturnType)).BlockFunc(func(grp *jen.Group) {
		comments(grp, m.InsideCode)
		if !void {
			grp.Panic(jen.Lit("unimplemented"))
		}
	})
}

func params(t *gen.Type, ps []model.Parameter) []jen.Code {
	out := make([]jen.Code, len(ps))
	for i, p := range ps {
		out[i] = jen.Id(paramName(p.Name, i)).Add(fieldType(t.Graph(), p.Type))
	}
	return out
}

// comments renders free-form body text as line comments.
func comments(grp *jen.Group, code string) {
	for _, line := range strings.Split(strings.TrimSpace(code), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			grp.Comment(line)
		}
	}
}
