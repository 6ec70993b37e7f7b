// Package rules decides which relationships may be drawn between two
// diagram entities.
//
// # Rule Evaluation
//
// A Policy is an ordered chain of rules. Each rule returns one of three
// decisions:
//
//   - Allow: the relationship is legal and evaluation stops
//   - Deny: the relationship is rejected and evaluation stops
//   - Skip: the rule abstains and the next rule is evaluated
//
// If all rules return Skip, the request is denied.
//
// # Default Policy
//
//	rules.Policy{
//	    rules.DenySelfLoop(),
//	    rules.EnumRestriction(),
//	    rules.DenyDuplicate(),
//	    rules.ByKind(rules.KindRules()),
//	}
//
// KindRules holds one rule per model.RelationshipKind. Composition and
// Aggregation are mutually exclusive on the same ordered pair.
//
// Deny decisions carry a reason:
//
//	return rules.Denyf("duplicate %s", r.Kind)
//
// Policy.Check converts them into a *classflow.RejectedRelationshipError.
package rules
