package secure

import (
	"strconv"

	"github.com/AkashAman27/cuddly-nest-blog/common"
)

// Request sections a rule can belong to.
const (
	SectionQuery  = "query"
	SectionBody   = "body"
	SectionParams = "params"
)

// Fields is an ordered list of field rules. Declaration order is evaluation
// order, so failure lists come out deterministic.
type Fields []FieldRule

// Schema groups the field rules of one route by request section. A nil
// section carries no constraints.
type Schema struct {
	Query  Fields
	Body   Fields
	Params Fields
}

// Sections holds the raw (or validated) values of one request, keyed by
// field name.
type Sections struct {
	Query  map[string]any
	Body   map[string]any
	Params map[string]any
}

// Validate evaluates every declared rule against the raw input, aggregating
// all failures across all sections rather than stopping at the first. On
// success the returned sections hold the typed values of evaluated fields
// plus any undeclared raw fields passed through untouched; handlers read
// extra body fields directly, so unknown input is deliberately not rejected.
func (s Schema) Validate(raw Sections) (Sections, []common.ValidationFailure) {
	var failures []common.ValidationFailure

	out := Sections{
		Query:  validateSection(SectionQuery, s.Query, raw.Query, &failures),
		Body:   validateSection(SectionBody, s.Body, raw.Body, &failures),
		Params: validateSection(SectionParams, s.Params, raw.Params, &failures),
	}

	if len(failures) > 0 {
		return Sections{}, failures
	}
	return out, nil
}

func validateSection(section string, rules Fields, raw map[string]any, failures *[]common.ValidationFailure) map[string]any {
	out := make(map[string]any, len(raw))
	for k, v := range raw {
		out[k] = v
	}

	for _, rule := range rules {
		value, present := raw[rule.Name]

		// Query strings and path params arrive as text; a number field gets
		// exactly one parse step before type checking. Everything else is
		// validated as-is.
		if present && rule.Kind == KindNumber && section != SectionBody {
			if s, ok := value.(string); ok {
				if n, err := strconv.ParseFloat(s, 64); err == nil {
					value = n
				}
			}
		}

		typed, keep, failure := rule.Evaluate(section, value, present)
		if failure != nil {
			*failures = append(*failures, *failure)
			continue
		}
		if keep {
			out[rule.Name] = typed
		} else {
			delete(out, rule.Name)
		}
	}

	return out
}
