package resource

import (
	"errors"
	"fmt"
)

// Directive selects create or update validation.
type Directive int

const (
	// CreateStructure requires every condition's value to be present unless
	// the condition lets null pass.
	CreateStructure Directive = 1
	// UpdateStructure lets null values pass; updates are partial.
	UpdateStructure Directive = 2
)

// ErrValidation is matched by every *ValidationError.
var ErrValidation = errors.New("strata: structure validation failed")

// Predicate tests a non-null value.
type Predicate func(value any) bool

// Is returns a Predicate with a precomputed outcome, for conditions whose
// check has already been evaluated.
func Is(ok bool) Predicate {
	return func(any) bool { return ok }
}

// ConditionOption modifies how a Condition treats null values.
type ConditionOption uint8

// NullPassesValidation lets a null value pass on create as well as update.
const NullPassesValidation ConditionOption = 1 << 0

// Condition is one structural validation rule.
type Condition struct {
	Field   string
	Value   any
	Check   Predicate
	Options ConditionOption
	// Failure is an optional tag identifying the failure to callers.
	Failure string
}

// NullPasses reports whether the NullPassesValidation option is set.
func (c Condition) NullPasses() bool {
	return c.Options&NullPassesValidation != 0
}

func (c Condition) evaluate() bool {
	if c.Check == nil {
		return true
	}
	return c.Check(c.Value)
}

// passes applies the null rules: a null value passes only on update or when
// the condition lets null pass; a present value must satisfy the test.
func (c Condition) passes(directive Directive) bool {
	if IsNull(c.Value) {
		return directive == UpdateStructure || c.NullPasses()
	}
	return c.evaluate()
}

// ValidationResult is the outcome of ValidateStructure. On failure Condition
// is the first condition that failed.
type ValidationResult struct {
	Passed    bool
	Condition *Condition
}

// Err returns nil when the validation passed, or a *ValidationError.
func (r ValidationResult) Err() error {
	if r.Passed {
		return nil
	}
	if r.Condition == nil {
		return &ValidationError{}
	}
	return &ValidationError{Field: r.Condition.Field, Failure: r.Condition.Failure}
}

// ValidationError reports the first failing condition.
type ValidationError struct {
	Field   string
	Failure string
}

func (e *ValidationError) Error() string {
	switch {
	case e.Field == "":
		return "structure validation failed"
	case e.Failure != "":
		return fmt.Sprintf("structure validation failed on %s: %s", e.Field, e.Failure)
	default:
		return fmt.Sprintf("structure validation failed on %s", e.Field)
	}
}

// Is reports whether target is ErrValidation.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// ValidateStructure checks conds in order and stops at the first failure.
func ValidateStructure(directive Directive, conds ...Condition) ValidationResult {
	for i := range conds {
		if !conds[i].passes(directive) {
			c := conds[i]
			return ValidationResult{Condition: &c}
		}
	}
	return ValidationResult{Passed: true}
}
