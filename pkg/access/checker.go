package access

import "context"

// Checker answers permission checks against access maps.
type Checker struct {
	decision           Decision
	useContextDecision bool
}

// Option configures a Checker.
type Option func(*Checker)

// WithDecision sets an override applied to every check.
func WithDecision(d Decision) Option {
	return func(c *Checker) {
		c.decision = d
	}
}

// WithContextDecision makes Check honour decisions set with
// WithDecisionContext.
//
// Precedence when enabled:
//  1. Context decision
//  2. Checker decision
//  3. The map's permission bits
func WithContextDecision() Option {
	return func(c *Checker) {
		c.useContextDecision = true
	}
}

// NewChecker returns a checker configured by opts.
func NewChecker(opts ...Option) *Checker {
	c := &Checker{}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Check reports whether m grants every bit of perm. A nil map grants
// nothing.
func (c *Checker) Check(ctx context.Context, m *Map, perm Permission) bool {
	if c.useContextDecision {
		if d := GetDecisionContext(ctx); d != DecisionUnset {
			return d == DecisionAllow
		}
	}
	if c.decision != DecisionUnset {
		return c.decision == DecisionAllow
	}
	if m == nil {
		return false
	}
	return m.Has(perm)
}
