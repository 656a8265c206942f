package access

import "context"

// Decision overrides permission checks for admin tools and tests.
//
// A Checker consults two layers: the decision set with WithDecision at
// construction, and, only when built with WithContextDecision, the decision
// carried by the context. Context decisions take precedence.
type Decision int

type decisionContextKey struct{}

var decisionKey = decisionContextKey{}

const (
	// DecisionUnset performs the normal permission check.
	DecisionUnset Decision = iota
	// DecisionAllow grants every check.
	DecisionAllow
	// DecisionDeny refuses every check.
	DecisionDeny
)

// WithDecisionContext returns a context carrying decision. Checkers ignore it
// unless built with WithContextDecision.
func WithDecisionContext(ctx context.Context, decision Decision) context.Context {
	return context.WithValue(ctx, decisionKey, decision)
}

// GetDecisionContext returns the decision carried by ctx, or DecisionUnset.
func GetDecisionContext(ctx context.Context) Decision {
	if decision, ok := ctx.Value(decisionKey).(Decision); ok {
		return decision
	}
	return DecisionUnset
}
