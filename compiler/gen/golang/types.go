package golang

import (
	"go/token"
	"strconv"
	"strings"
	"unicode"

	"github.com/dave/jennifer/jen"

	"github.com/syssam/classflow/compiler/gen"
	"github.com/syssam/classflow/model"
)

// builtin maps declared member types to Go types.
var builtin = map[string]func() *jen.Statement{
	"String":  jen.String,
	"string":  jen.String,
	"char":    jen.Rune,
	"byte":    jen.Byte,
	"short":   jen.Int16,
	"int":     jen.Int,
	"Integer": jen.Int,
	"long":    jen.Int64,
	"Long":    jen.Int64,
	"float":   jen.Float32,
	"double":  jen.Float64,
	"Double":  jen.Float64,
	"boolean": jen.Bool,
	"Boolean": jen.Bool,
	"bool":    jen.Bool,
	"Object":  jen.Any,
	"any":     jen.Any,
	"error":   jen.Error,
}

// isVoid reports whether a return type declares no result.
func isVoid(typ string) bool {
	typ = strings.TrimSpace(typ)
	return typ == "" || typ == "void"
}

// goType maps a declared type to Go. References to classes of the graph
// become pointers; anything that is not a valid identifier becomes any.
// A void type renders nothing.
func goType(g *gen.Graph, typ string) jen.Code {
	typ = strings.TrimSpace(typ)
	if isVoid(typ) {
		return jen.Null()
	}
	return valueType(g, typ)
}

// fieldType is goType for declarations that require a type: a missing
// type becomes any.
func fieldType(g *gen.Graph, typ string) jen.Code {
	if isVoid(typ) {
		return jen.Any()
	}
	return valueType(g, typ)
}

func valueType(g *gen.Graph, typ string) *jen.Statement {
	typ = strings.TrimSpace(typ)
	if elem, ok := strings.CutSuffix(typ, "[]"); ok {
		return jen.Index().Add(valueType(g, elem))
	}
	if f, ok := builtin[typ]; ok {
		return f()
	}
	if g != nil {
		if t, ok := g.Named(typ); ok {
			if t.Kind == model.KindClass {
				return jen.Op("*").Id(typeName(t.Name))
			}
			return jen.Id(typeName(t.Name))
		}
	}
	if token.IsIdentifier(typ) && !token.IsKeyword(typ) {
		return jen.Id(typ)
	}
	return jen.Any()
}

// typeName returns the Go type name of an entity.
func typeName(name string) string {
	if id := gen.Pascal(ident(name)); id != "" {
		return ident(id)
	}
	return "T"
}

// exported returns the exported Go identifier of a member name.
func exported(name string) string {
	if id := gen.Pascal(ident(name)); id != "" {
		return ident(id)
	}
	return "X"
}

// memberName returns the Go name of a member, exported only when the
// member is public.
func memberName(name string, v model.Visibility) string {
	if v == model.Public || !v.Valid() {
		return exported(name)
	}
	return ident(gen.Unexport(ident(name)))
}

// staticName returns the package level name of a static member: the
// owner's type name followed by the member name.
func staticName(owner, member string, v model.Visibility) string {
	name := typeName(owner) + exported(member)
	if v == model.Public || !v.Valid() {
		return name
	}
	return ident(gen.Unexport(name))
}

func paramName(name string, i int) string {
	if strings.TrimSpace(name) == "" {
		return "p" + strconv.Itoa(i)
	}
	return ident(gen.Unexport(ident(name)))
}

// ident replaces the characters that cannot appear in a Go identifier
// and guards against keywords.
func ident(s string) string {
	s = strings.Map(func(r rune) rune {
		if r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}
		return '_'
	}, strings.TrimSpace(s))
	switch {
	case s == "":
		return "_"
	case unicode.IsDigit(rune(s[0])):
		s = "_" + s
	case token.IsKeyword(s):
		s += "_"
	}
	return s
}

// literal returns the Go literal of a declared initial value when it is
// a number, a boolean, a quoted string, a rune or null.
func literal(s string) (jen.Code, bool) {
	s = strings.TrimSpace(s)
	switch s {
	case "":
		return nil, false
	case "null":
		return jen.Nil(), true
	case "true", "false":
		return jen.Lit(s == "true"), true
	}
	if _, err := strconv.ParseInt(s, 0, 64); err == nil {
		return jen.Op(s), true
	}
	if _, err := strconv.ParseFloat(s, 64); err == nil && strings.IndexFunc(s, notDecimal) < 0 {
		return jen.Op(s), true
	}
	if v, ok := unquote(s); ok {
		return jen.Lit(v), true
	}
	if strings.HasPrefix(s, "'") {
		if _, err := strconv.Unquote(s); err == nil {
			return jen.Op(s), true
		}
	}
	return nil, false
}

func notDecimal(r rune) bool {
	return !unicode.IsDigit(r) && !strings.ContainsRune(".eE+-", r)
}

// unquote returns the value of a double-quoted string literal.
func unquote(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, `"`) {
		return "", false
	}
	v, err := strconv.Unquote(s)
	return v, err == nil
}
