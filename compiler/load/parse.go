package load

import (
	"regexp"
	"strings"

	"github.com/syssam/classflow"
	"github.com/syssam/classflow/compiler/gen/java"
	"github.com/syssam/classflow/model"
)

// Result holds what was recovered from source text.
type Result struct {
	// Entities are the declared types in source order. Their ids are
	// the declared names.
	Entities []model.ClassEntity `json:"entities"`
	// Relationships are the Implementation and Inheritance relationships
	// recovered from the declaration headers.
	Relationships []model.Relationship `json:"relationships"`
	// Failures collects the declarations that were skipped.
	Failures []error `json:"-"`
}

// Err returns the collected failures as a single error, or nil.
func (r *Result) Err() error {
	return classflow.NewAggregateError(r.Failures...)
}

// Diagram returns the result as a diagram.
func (r *Result) Diagram() model.Diagram {
	return model.Diagram{Entities: r.Entities, Relationships: r.Relationships}
}

var (
	spaces     = regexp.MustCompile(`\s+`)
	header     = regexp.MustCompile(`\b(class|interface|enum)\s+([A-Za-z_$][\w$]*)\s*(?:extends\s+([\w$\s,]+?)\s*)?(?:implements\s+([\w$\s,]+?)\s*)?\{`)
	identifier = regexp.MustCompile(`^[A-Za-z_$][\w$]*$`)
)

// Parse recovers entities and relationships from source text in the shape
// the java dialect emits. It never fails: declarations that cannot be
// matched are skipped and recorded on the result.
func Parse(src string) *Result {
	p := &parser{text: scan(src), res: &Result{}, names: make(map[string]struct{})}
	p.parse()
	p.link()
	return p.res
}

// text holds three views of the input that share offsets: the raw source,
// the source with comments blanked, and the source with comments and the
// contents of string and character literals blanked. Structure is read
// from mask, names and values from clean, and method bodies from raw.
type text struct {
	raw, clean, mask string
}

// scan builds the views of src. Literals end at their closing quote or at
// the end of the line.
func scan(src string) text {
	clean, mask := []byte(src), []byte(src)
	blank := func(from, to int) {
		for i := from; i < to; i++ {
			if src[i] != '\n' {
				clean[i], mask[i] = ' ', ' '
			}
		}
	}
	for i := 0; i < len(src); i++ {
		switch c := src[i]; {
		case strings.HasPrefix(src[i:], "//"):
			end := strings.IndexByte(src[i:], '\n')
			if end < 0 {
				end = len(src) - i
			}
			blank(i, i+end)
			i += end
		case strings.HasPrefix(src[i:], "/*"):
			end := len(src)
			if j := strings.Index(src[i+2:], "*/"); j >= 0 {
				end = i + 2 + j + 2
			}
			blank(i, end)
			i = end - 1
		case c == '"' || c == '\'':
			j := i + 1
			for ; j < len(src) && src[j] != c && src[j] != '\n'; j++ {
				if src[j] == '\\' && j+1 < len(src) {
					mask[j] = ' '
					j++
				}
				mask[j] = ' '
			}
			i = j
		}
	}
	return text{raw: src, clean: string(clean), mask: string(mask)}
}

// slice returns the views of src[from:to].
func (t text) slice(from, to int) text {
	return text{raw: t.raw[from:to], clean: t.clean[from:to], mask: t.mask[from:to]}
}

// snippet returns the text of a failure message.
func (t text) snippet() string {
	return strings.TrimSpace(spaces.ReplaceAllString(t.clean, " "))
}

type (
	parser struct {
		text  text
		res   *Result
		names map[string]struct{}
		decls []decl
	}

	// decl is a parsed declaration header.
	decl struct {
		name       string
		extends    []string
		implements []string
	}
)

func (p *parser) fail(t text, message string) {
	p.res.Failures = append(p.res.Failures, classflow.NewParseError(t.snippet(), message))
}

func (p *parser) parse() {
	mask := p.text.mask
	for pos := 0; pos < len(mask); {
		loc := header.FindStringSubmatchIndex(mask[pos:])
		if loc == nil {
			return
		}
		open := pos + loc[1] - 1
		end, ok := closing(mask, open)
		if !ok {
			p.fail(p.text.slice(pos+loc[0], len(mask)), "unterminated declaration")
			return
		}
		sub := func(i int) string {
			if loc[2*i] < 0 {
				return ""
			}
			return mask[pos+loc[2*i] : pos+loc[2*i+1]]
		}
		p.declare(sub(1), sub(2), sub(3), sub(4), p.text.slice(open+1, end))
		pos = end + 1
	}
}

func (p *parser) declare(keyword, name, extends, implements string, body text) {
	if _, dup := p.names[name]; dup {
		p.fail(text{clean: keyword + " " + name}, "duplicate declaration")
		return
	}
	kind, _ := model.ParseKind(keyword)
	p.names[name] = struct{}{}
	i := len(p.res.Entities)
	e := model.ClassEntity{
		ID:         name,
		Name:       name,
		Kind:       kind,
		Properties: []model.Property{},
		Methods:    []model.Method{},
		Position:   model.Position{X: float64(i * 300), Y: float64(i * 100)},
	}
	for _, span := range members(body.mask) {
		m := body.slice(span[0], span[1])
		if isMethod(m.mask) {
			if meth, ok := p.method(name, m); ok {
				e.Methods = append(e.Methods, meth)
			}
		} else if prop, ok := p.property(m); ok {
			e.Properties = append(e.Properties, prop)
		}
	}
	p.res.Entities = append(p.res.Entities, e)
	p.decls = append(p.decls, decl{name: name, extends: names(extends), implements: names(implements)})
}

// link resolves the header lists into relationships. Targets that were
// not declared in the input are dropped.
func (p *parser) link() {
	seen := make(map[model.Key]struct{})
	add := func(src, dst string, kind model.RelationshipKind) {
		if _, ok := p.names[dst]; !ok {
			p.fail(text{clean: src + " -> " + dst}, "unknown "+strings.ToLower(kind.String())+" target")
			return
		}
		r := model.NewRelationship(src, dst, kind)
		if _, dup := seen[r.Key()]; dup || src == dst {
			return
		}
		seen[r.Key()] = struct{}{}
		p.res.Relationships = append(p.res.Relationships, r)
	}
	for _, d := range p.decls {
		for _, t := range d.extends {
			add(d.name, t, model.Implementation)
		}
		for _, t := range d.implements {
			add(d.name, t, model.Inheritance)
		}
	}
}

// closing returns the index of the brace matching the one at open in a
// masked source.
func closing(mask string, open int) (int, bool) {
	depth := 0
	for i := open; i < len(mask); i++ {
		switch mask[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i, true
			}
		}
	}
	return 0, false
}

// members splits a masked body into the spans of its member declarations
// at brace depth zero. A declaration ends with a semicolon or with the
// brace closing its body. Spans exclude surrounding whitespace.
func members(mask string) [][2]int {
	var (
		out   [][2]int
		depth int
		start int
	)
	emit := func(end, next int) {
		from, to := start, end
		for from < to && isSpace(mask[from]) {
			from++
		}
		for to > from && isSpace(mask[to-1]) {
			to--
		}
		if from < to {
			out = append(out, [2]int{from, to})
		}
		start = next
	}
	for i := 0; i < len(mask); i++ {
		switch c := mask[i]; {
		case c == '{':
			depth++
		case c == '}':
			depth--
			switch {
			case depth == 0:
				emit(i+1, i+1)
			case depth < 0:
				depth = 0
			}
		case c == ';' && depth == 0:
			emit(i, i+1)
		}
	}
	if start < len(mask) {
		emit(len(mask), len(mask))
	}
	return out
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f' || c == '\v'
}

// isMethod reports whether a declaration has a parameter list before any
// initializer.
func isMethod(text string) bool {
	paren := strings.IndexByte(text, '(')
	if paren < 0 {
		return false
	}
	eq := strings.IndexByte(text, '=')
	return eq < 0 || paren < eq
}

var modifiers = map[string]struct{}{
	"public": {}, "private": {}, "protected": {},
	"static": {}, "final": {}, "abstract": {},
	"default": {}, "synchronized": {}, "native": {},
	"transient": {}, "volatile": {},
}

// flags holds the modifiers found ahead of a declaration.
type flags struct {
	visibility model.Visibility
	static     bool
	final      bool
}

// split consumes the leading modifiers of a declaration and returns the
// remaining tokens.
func split(text string) (flags, []string) {
	f := flags{visibility: model.Public}
	tokens := strings.Fields(text)
	for len(tokens) > 0 {
		tok := tokens[0]
		if _, ok := modifiers[tok]; !ok {
			break
		}
		switch tok {
		case "public", "private", "protected":
			f.visibility = model.ParseVisibility(tok)
		case "static":
			f.static = true
		case "final":
			f.final = true
		}
		tokens = tokens[1:]
	}
	return f, tokens
}

func (p *parser) property(m text) (model.Property, bool) {
	head, value := m.clean, ""
	if eq := strings.IndexByte(m.mask, '='); eq >= 0 {
		head, value = m.clean[:eq], m.clean[eq+1:]
	}
	f, tokens := split(head)
	if len(tokens) < 2 || !identifier.MatchString(tokens[len(tokens)-1]) {
		p.fail(m, "unrecognized property")
		return model.Property{}, false
	}
	return model.Property{
		Name:         tokens[len(tokens)-1],
		Type:         strings.Join(tokens[:len(tokens)-1], " "),
		Visibility:   f.visibility,
		IsStatic:     f.static,
		IsFinal:      f.final,
		InitialValue: strings.TrimSpace(value),
	}, true
}

func (p *parser) method(owner string, t text) (model.Method, bool) {
	open := strings.IndexByte(t.mask, '(')
	end := strings.LastIndexByte(t.mask, ')')
	if brace := strings.IndexByte(t.mask, '{'); brace >= 0 {
		end = strings.LastIndexByte(t.mask[:brace], ')')
	}
	if end < open {
		p.fail(t, "unrecognized method")
		return model.Method{}, false
	}
	f, tokens := split(t.clean[:open])
	if len(tokens) == 0 || !identifier.MatchString(tokens[len(tokens)-1]) {
		p.fail(t, "unrecognized method")
		return model.Method{}, false
	}
	params, ok := parameters(t.clean[open+1 : end])
	if !ok {
		p.fail(t, "unrecognized parameter list")
		return model.Method{}, false
	}
	m := model.Method{
		Name:       tokens[len(tokens)-1],
		ReturnType: strings.Join(tokens[:len(tokens)-1], " "),
		Parameters: params,
		Visibility: f.visibility,
		IsStatic:   f.static,
		IsFinal:    f.final,
	}
	rest := strings.TrimSpace(t.mask[end+1:])
	if strings.HasPrefix(rest, "{") && strings.HasSuffix(rest, "}") {
		lbrace := end + 1 + strings.IndexByte(t.mask[end+1:], '{')
		rbrace := strings.LastIndexByte(t.mask, '}')
		code := strings.TrimSpace(t.raw[lbrace+1 : rbrace])
		if collapse(code) != collapse(defaultBody(m, m.IsConstructorOf(owner))) {
			m.InsideCode = code
		}
	}
	return m, true
}

// defaultBody returns the inner text of the body the java dialect renders
// for a method without inside code.
func defaultBody(m model.Method, ctor bool) string {
	body := java.Body(model.Method{Parameters: m.Parameters}, ctor)
	return body[1 : len(body)-1]
}

func collapse(s string) string {
	return strings.TrimSpace(spaces.ReplaceAllString(s, " "))
}

// parameters parses "T a, U b". Commas inside angle brackets belong to
// the type.
func parameters(list string) ([]model.Parameter, bool) {
	params := []model.Parameter{}
	if strings.TrimSpace(list) == "" {
		return params, true
	}
	depth, start := 0, 0
	var parts []string
	for i, c := range list {
		switch c {
		case '<':
			depth++
		case '>':
			depth--
		case ',':
			if depth == 0 {
				parts = append(parts, list[start:i])
				start = i + 1
			}
		}
	}
	parts = append(parts, list[start:])
	for _, part := range parts {
		_, tokens := split(part)
		if len(tokens) < 2 || !identifier.MatchString(tokens[len(tokens)-1]) {
			return nil, false
		}
		params = append(params, model.Parameter{
			Name: tokens[len(tokens)-1],
			Type: strings.Join(tokens[:len(tokens)-1], " "),
		})
	}
	return params, true
}

// names splits a comma separated header list.
func names(list string) []string {
	var out []string
	for _, n := range strings.Split(list, ",") {
		if n = strings.TrimSpace(n); n != "" {
			out = append(out, n)
		}
	}
	return out
}
