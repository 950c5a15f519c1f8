// Package secure implements the route pipeline every API endpoint goes
// through: declarative per-route input schemas and access policies, enforced
// in one place before any handler logic runs.
package secure

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/AkashAman27/cuddly-nest-blog/common"
)

// Kind is the declared type of an input field.
type Kind string

const (
	KindString  Kind = "string"
	KindNumber  Kind = "number"
	KindBoolean Kind = "boolean"
	KindArray   Kind = "array"
	KindObject  Kind = "object"
)

// Names of the rules a field can violate, reported in error details.
const (
	RuleRequired      = "required"
	RuleType          = "type"
	RulePattern       = "pattern"
	RuleAllowedValues = "allowedValues"
	RuleLength        = "length"
	RuleRange         = "range"
)

// FieldRule declares the contract for a single input field. Rules are built
// through the per-kind constructors below and are immutable after route
// registration.
type FieldRule struct {
	Name          string
	Kind          Kind
	Optional      bool
	Pattern       *regexp.Regexp
	AllowedValues []string
	MinLen        *int
	MaxLen        *int
	Min           *float64
	Max           *float64
}

// RuleOption configures a FieldRule. Options are kind-checked: supplying a
// constraint that is meaningless for the field's kind panics at registration
// time, so a bad route declaration fails at process start instead of
// silently at request time.
type RuleOption func(*FieldRule)

func String(name string, opts ...RuleOption) FieldRule  { return newRule(name, KindString, opts) }
func Number(name string, opts ...RuleOption) FieldRule  { return newRule(name, KindNumber, opts) }
func Boolean(name string, opts ...RuleOption) FieldRule { return newRule(name, KindBoolean, opts) }
func Array(name string, opts ...RuleOption) FieldRule   { return newRule(name, KindArray, opts) }
func Object(name string, opts ...RuleOption) FieldRule  { return newRule(name, KindObject, opts) }

func newRule(name string, kind Kind, opts []RuleOption) FieldRule {
	rule := FieldRule{Name: name, Kind: kind}
	for _, opt := range opts {
		opt(&rule)
	}
	return rule
}

// Optional marks the field as not required. Absent optional fields validate
// and are omitted from the request context.
func Optional() RuleOption {
	return func(r *FieldRule) { r.Optional = true }
}

// Pattern requires the whole value to match expr. String fields only.
func Pattern(expr string) RuleOption {
	re := regexp.MustCompile(`\A(?:` + expr + `)\z`)
	return func(r *FieldRule) {
		if r.Kind != KindString {
			panic(fmt.Sprintf("secure: pattern constraint is invalid for %s field %q", r.Kind, r.Name))
		}
		r.Pattern = re
	}
}

// Allowed restricts the value to a finite, case-sensitive set. String fields only.
func Allowed(values ...string) RuleOption {
	return func(r *FieldRule) {
		if r.Kind != KindString {
			panic(fmt.Sprintf("secure: allowedValues constraint is invalid for %s field %q", r.Kind, r.Name))
		}
		r.AllowedValues = values
	}
}

// MinLen bounds string or array length from below.
func MinLen(n int) RuleOption {
	return func(r *FieldRule) {
		if r.Kind != KindString && r.Kind != KindArray {
			panic(fmt.Sprintf("secure: minLength constraint is invalid for %s field %q", r.Kind, r.Name))
		}
		r.MinLen = &n
	}
}

// MaxLen bounds string or array length from above.
func MaxLen(n int) RuleOption {
	return func(r *FieldRule) {
		if r.Kind != KindString && r.Kind != KindArray {
			panic(fmt.Sprintf("secure: maxLength constraint is invalid for %s field %q", r.Kind, r.Name))
		}
		r.MaxLen = &n
	}
}

// Min bounds a numeric value from below.
func Min(v float64) RuleOption {
	return func(r *FieldRule) {
		if r.Kind != KindNumber {
			panic(fmt.Sprintf("secure: min constraint is invalid for %s field %q", r.Kind, r.Name))
		}
		r.Min = &v
	}
}

// Max bounds a numeric value from above.
func Max(v float64) RuleOption {
	return func(r *FieldRule) {
		if r.Kind != KindNumber {
			panic(fmt.Sprintf("secure: max constraint is invalid for %s field %q", r.Kind, r.Name))
		}
		r.Max = &v
	}
}

// Evaluate checks one raw value against the rule. The boolean reports whether
// the value should appear in the validated context; an absent optional field
// returns (nil, false, nil). Evaluate validates, it does not coerce: the
// value must already carry the declared kind's Go representation.
func (r FieldRule) Evaluate(section string, raw any, present bool) (any, bool, *common.ValidationFailure) {
	if !present {
		if r.Optional {
			return nil, false, nil
		}
		return nil, false, r.fail(section, RuleRequired, fmt.Sprintf("%s is required", r.Name))
	}

	switch r.Kind {
	case KindString:
		s, ok := raw.(string)
		if !ok {
			return nil, false, r.typeFailure(section)
		}
		if r.Pattern != nil && !r.Pattern.MatchString(s) {
			return nil, false, r.fail(section, RulePattern, fmt.Sprintf("%s does not match the required pattern", r.Name))
		}
		if len(r.AllowedValues) > 0 && !contains(r.AllowedValues, s) {
			msg := fmt.Sprintf("%s must be one of: %s", r.Name, strings.Join(r.AllowedValues, ", "))
			return nil, false, r.fail(section, RuleAllowedValues, msg)
		}
		if f := r.checkLength(section, utf8.RuneCountInString(s)); f != nil {
			return nil, false, f
		}
		return s, true, nil

	case KindNumber:
		n, ok := asNumber(raw)
		if !ok {
			return nil, false, r.typeFailure(section)
		}
		if r.Min != nil && n < *r.Min {
			return nil, false, r.fail(section, RuleRange, fmt.Sprintf("%s must be at least %v", r.Name, *r.Min))
		}
		if r.Max != nil && n > *r.Max {
			return nil, false, r.fail(section, RuleRange, fmt.Sprintf("%s must be at most %v", r.Name, *r.Max))
		}
		return n, true, nil

	case KindBoolean:
		b, ok := raw.(bool)
		if !ok {
			return nil, false, r.typeFailure(section)
		}
		return b, true, nil

	case KindArray:
		arr, ok := raw.([]any)
		if !ok {
			return nil, false, r.typeFailure(section)
		}
		if f := r.checkLength(section, len(arr)); f != nil {
			return nil, false, f
		}
		return arr, true, nil

	case KindObject:
		obj, ok := raw.(map[string]any)
		if !ok {
			return nil, false, r.typeFailure(section)
		}
		return obj, true, nil
	}

	return nil, false, r.typeFailure(section)
}

func (r FieldRule) checkLength(section string, n int) *common.ValidationFailure {
	if r.MinLen != nil && n < *r.MinLen {
		return r.fail(section, RuleLength, fmt.Sprintf("%s must have at least %d elements or characters", r.Name, *r.MinLen))
	}
	if r.MaxLen != nil && n > *r.MaxLen {
		return r.fail(section, RuleLength, fmt.Sprintf("%s must have at most %d elements or characters", r.Name, *r.MaxLen))
	}
	return nil
}

func (r FieldRule) typeFailure(section string) *common.ValidationFailure {
	return r.fail(section, RuleType, fmt.Sprintf("%s must be a %s", r.Name, r.Kind))
}

func (r FieldRule) fail(section, rule, message string) *common.ValidationFailure {
	return &common.ValidationFailure{
		Field:   r.Name,
		Section: section,
		Rule:    rule,
		Message: message,
	}
}

func asNumber(raw any) (float64, bool) {
	switch v := raw.(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	}
	return 0, false
}

func contains(values []string, s string) bool {
	for _, v := range values {
		if v == s {
			return true
		}
	}
	return false
}
