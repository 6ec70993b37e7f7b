package rules

import (
	"errors"
	"fmt"
	"strings"

	"github.com/syssam/classflow"
	"github.com/syssam/classflow/model"
)

// Decision sentinel errors.
//
// Rules return one of these (possibly wrapped) to steer the evaluation of
// a policy. Use errors.Is() to check for them:
//
//	if errors.Is(err, rules.Deny) { ... }
var (
	// Allow terminates the evaluation with an allow decision.
	Allow = errors.New("rules: allow")

	// Deny terminates the evaluation with a deny decision.
	Deny = errors.New("rules: deny")

	// Skip continues the evaluation with the next rule in the chain.
	Skip = errors.New("rules: skip")
)

// Allowf returns a formatted wrapped Allow decision.
func Allowf(format string, a ...any) error {
	return fmt.Errorf(format+": %w", append(a, Allow)...)
}

// Denyf returns a formatted wrapped Deny decision.
// The returned error wraps Deny and can be checked with errors.Is(err, Deny).
func Denyf(format string, a ...any) error {
	return fmt.Errorf(format+": %w", append(a, Deny)...)
}

// Skipf returns a formatted wrapped Skip decision.
func Skipf(format string, a ...any) error {
	return fmt.Errorf(format+": %w", append(a, Skip)...)
}

// Reason returns the human-readable part of a wrapped decision, that is,
// the formatted message without the trailing sentinel text.
func Reason(decision error) string {
	if decision == nil {
		return ""
	}
	msg := decision.Error()
	for _, s := range []error{Deny, Allow, Skip} {
		if trimmed, ok := strings.CutSuffix(msg, ": "+s.Error()); ok {
			return trimmed
		}
		if msg == s.Error() {
			return ""
		}
	}
	return msg
}

// Request is the input of a rule: the two endpoints of a pending
// connection, the kind the user selected, and the diagram the
// relationship would be added to.
type Request struct {
	Source  model.ClassEntity
	Target  model.ClassEntity
	Kind    model.RelationshipKind
	Diagram model.Diagram
}

// Key returns the identity key the requested relationship would get.
func (r Request) Key() model.Key {
	return model.Key{Source: r.Source.ID, Target: r.Target.ID, Kind: r.Kind}
}

// HasEnum reports whether either endpoint is an enum.
func (r Request) HasEnum() bool {
	return r.Source.Kind == model.KindEnum || r.Target.Kind == model.KindEnum
}

// Between reports whether the request goes from an entity of kind src to
// an entity of kind dst.
func (r Request) Between(src, dst model.Kind) bool {
	return r.Source.Kind == src && r.Target.Kind == dst
}

type (
	// Rule decides whether a requested relationship is legal.
	Rule interface {
		Eval(Request) error
	}

	// RuleFunc is an adapter which allows the use of ordinary functions
	// as rules.
	RuleFunc func(Request) error

	// Policy combines multiple rules into an ordered chain.
	Policy []Rule
)

// Eval returns f(r).
func (f RuleFunc) Eval(r Request) error {
	return f(r)
}

// Eval evaluates the rules in order. It returns nil when a rule allows
// the request, the decision of the first rule that does neither allow
// nor skip, and Deny when every rule skips.
func (p Policy) Eval(r Request) error {
	for _, rule := range p {
		switch decision := rule.Eval(r); {
		case decision == nil || errors.Is(decision, Skip):
		case errors.Is(decision, Allow):
			return nil
		default:
			return decision
		}
	}
	return Denyf("rules: no rule allowed %s", r.Kind)
}

// Check evaluates the policy and converts a deny decision into a
// *classflow.RejectedRelationshipError carrying its reason.
func (p Policy) Check(r Request) error {
	decision := p.Eval(r)
	if decision == nil {
		return nil
	}
	return classflow.NewRejectedRelationshipError(r.Source.ID, r.Target.ID, string(r.Kind), Reason(decision), decision)
}

// AlwaysAllowRule returns a rule that always allows.
func AlwaysAllowRule() Rule {
	return fixedDecision{Allow}
}

// AlwaysDenyRule returns a rule that always denies.
func AlwaysDenyRule() Rule {
	return fixedDecision{Deny}
}

// OnKind evaluates the given rule only for requests of the given kind and
// skips all others.
func OnKind(rule Rule, kind model.RelationshipKind) Rule {
	return RuleFunc(func(r Request) error {
		if r.Kind == kind {
			return rule.Eval(r)
		}
		return Skip
	})
}

// Or allows when any of the given rules allows, and otherwise returns
// the decision of the last rule.
func Or(rules ...Rule) Rule {
	return RuleFunc(func(r Request) error {
		decision := error(Skip)
		for _, rule := range rules {
			decision = rule.Eval(r)
			if errors.Is(decision, Allow) {
				return decision
			}
		}
		return decision
	})
}

type fixedDecision struct {
	decision error
}

func (f fixedDecision) Eval(Request) error {
	return f.decision
}
