package gen

import (
	"go/token"
	"strings"
	"unicode"

	"github.com/go-openapi/inflect"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	rules    = ruleset()
	acronyms = make(map[string]struct{})
)

func ruleset() *inflect.Ruleset {
	rules := inflect.NewDefaultRuleset()
	// Common initialisms from golint.
	for _, w := range []string{"ACL", "API", "ASCII", "CPU", "CSS", "DNS", "EOF", "GUID",
		"HTML", "HTTP", "HTTPS", "ID", "IP", "JSON", "LHS", "QPS", "RAM", "RHS",
		"RPC", "SLA", "SMTP", "SQL", "SSH", "TCP", "TLS", "TTL", "UDP", "UI",
		"UID", "URI", "URL", "UTF8", "UUID", "VM", "XML", "XMPP", "XSRF", "XSS",
	} {
		acronyms[w] = struct{}{}
		rules.AddAcronym(w)
	}
	return rules
}

// Snake converts the given name to snake case.
//
//	Snake("UserInfo")  // user_info
//	Snake("HTTPCode")  // http_code
//	Snake("UserIDs")   // user_ids
func Snake(s string) string {
	var (
		j int
		b strings.Builder
	)
	for i := 0; i < len(s); i++ {
		r := rune(s[i])
		// Put '_' if it is not a start or end of a word, current letter is
		// uppercase, and previous is lowercase ("UserInfo"), or next letter
		// is lowercase and previous letter is not "_".
		if i > 0 && i < len(s)-1 && unicode.IsUpper(r) {
			if unicode.IsLower(rune(s[i-1])) ||
				j != i-1 && unicode.IsLower(rune(s[i+1])) && unicode.IsLetter(rune(s[i-1])) {
				j = i
				b.WriteString("_")
			}
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}

// Camel converts the given name to camel case with a lower-case first
// letter. It names parameters synthesized after a type:
//
//	Camel("Engine")        // engine
//	Camel("DeliveryTruck") // deliveryTruck
func Camel(s string) string {
	if s == "" {
		return s
	}
	return rules.CamelizeDownFirst(s)
}

// Pascal converts the given name to an exported Go identifier, keeping
// common initialisms upper-cased.
//
//	Pascal("getId")     // GetID
//	Pascal("user_info") // UserInfo
func Pascal(s string) string {
	words := strings.FieldsFunc(Snake(s), isSeparator)
	title := cases.Title(language.Und, cases.NoLower)
	for i, w := range words {
		upper := strings.ToUpper(w)
		if _, ok := acronyms[upper]; ok {
			words[i] = upper
		} else {
			words[i] = title.String(w)
		}
	}
	return strings.Join(words, "")
}

// Unexport returns the name with its first word lower-cased, keeping the
// rest of the identifier as is.
//
//	Unexport("Engine") // engine
//	Unexport("ID")     // id
func Unexport(s string) string {
	if s == "" {
		return s
	}
	if _, ok := acronyms[strings.ToUpper(s)]; ok {
		return strings.ToLower(s)
	}
	return strings.ToLower(s[:1]) + s[1:]
}

// Receiver returns the receiver name of the given type.
//
//	Receiver("Car")           // c
//	Receiver("DeliveryTruck") // dt
func Receiver(s string) string {
	var b strings.Builder
	for _, w := range strings.FieldsFunc(Snake(s), isSeparator) {
		b.WriteByte(w[0])
	}
	r := strings.ToLower(b.String())
	switch {
	case r == "":
		return "_m"
	case token.IsKeyword(r):
		return "_" + r
	}
	return r
}

func isSeparator(r rune) bool {
	return r == '_' || r == '-' || unicode.IsSpace(r)
}
