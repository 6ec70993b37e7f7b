package rules

import (
	"github.com/syssam/classflow/model"
)

// DefaultPolicy returns the relationship legality rules in evaluation
// order: self-loops, the enum restriction, duplicates and finally the
// per-kind table.
func DefaultPolicy() Policy {
	return Policy{
		DenySelfLoop(),
		EnumRestriction(),
		DenyDuplicate(),
		ByKind(KindRules()),
	}
}

// DenySelfLoop denies a relationship from an entity to itself.
func DenySelfLoop() Rule {
	return RuleFunc(func(r Request) error {
		if r.Source.ID == r.Target.ID {
			return Denyf("self-connection on %s", r.Source.Name)
		}
		return Skip
	})
}

// EnumRestriction denies every relationship with an enum endpoint other
// than Implementation from an enum to an interface, and Dependency.
func EnumRestriction() Rule {
	return RuleFunc(func(r Request) error {
		if !r.HasEnum() {
			return Skip
		}
		switch {
		case r.Kind == model.Dependency:
			return Skip
		case r.Kind == model.Implementation && r.Between(model.KindEnum, model.KindInterface):
			return Skip
		}
		return Denyf("enum restriction: %s not allowed between %s and %s", r.Kind, r.Source.Kind, r.Target.Kind)
	})
}

// DenyDuplicate denies a relationship whose key or reverse key already
// exists in the diagram, or whose canonical id is already taken.
func DenyDuplicate() Rule {
	return RuleFunc(func(r Request) error {
		k := r.Key()
		if r.Diagram.Has(k) || r.Diagram.Has(k.Reverse()) || r.Diagram.HasID(k.ID()) || r.Diagram.HasID(k.Reverse().ID()) {
			return Denyf("duplicate %s between %s and %s", r.Kind, r.Source.Name, r.Target.Name)
		}
		return Skip
	})
}

// ByKind dispatches to the rule registered for the requested kind. Kinds
// missing from the table are denied.
func ByKind(table map[model.RelationshipKind]Rule) Rule {
	return RuleFunc(func(r Request) error {
		rule, ok := table[r.Kind]
		if !ok {
			return Denyf("unsupported relationship kind %q", r.Kind)
		}
		return rule.Eval(r)
	})
}

// KindRules returns the per-kind legality table.
func KindRules() map[model.RelationshipKind]Rule {
	return map[model.RelationshipKind]Rule{
		model.Inheritance: RuleFunc(func(r Request) error {
			if r.Target.Kind == model.KindInterface && r.Source.Kind != model.KindInterface {
				return Allow
			}
			return Denyf("inheritance requires a non-interface source and an interface target")
		}),
		model.Implementation: Or(
			between(model.KindInterface, model.KindClass),
			between(model.KindEnum, model.KindInterface),
			denyKind("implementation requires an interface source and a class target"),
		),
		model.Composition: structural(model.Aggregation),
		model.Aggregation: structural(model.Composition),
		model.Dependency: RuleFunc(func(r Request) error {
			if r.Between(model.KindClass, model.KindClass) || r.HasEnum() {
				return Allow
			}
			return Denyf("dependency requires two classes")
		}),
	}
}

// structural allows a Composition or Aggregation between two classes
// unless the exclusive kind already exists on the same ordered pair.
func structural(exclusive model.RelationshipKind) Rule {
	return RuleFunc(func(r Request) error {
		if !r.Between(model.KindClass, model.KindClass) {
			return Denyf("%s requires two classes", r.Kind)
		}
		if r.Diagram.Has(r.Key().WithKind(exclusive)) {
			return Denyf("%s already exists between %s and %s", exclusive, r.Source.Name, r.Target.Name)
		}
		return Allow
	})
}

func between(src, dst model.Kind) Rule {
	return RuleFunc(func(r Request) error {
		if r.Between(src, dst) {
			return Allow
		}
		return Skip
	})
}

func denyKind(reason string) Rule {
	return RuleFunc(func(Request) error {
		return Denyf("%s", reason)
	})
}
