package secure

// AuthRequirement is the access-control level a route demands.
type AuthRequirement int

const (
	// AuthNone lets any caller through.
	AuthNone AuthRequirement = iota
	// AuthRequired demands a valid principal of any role.
	AuthRequired
	// AuthAdmin demands a valid principal with the admin role.
	AuthAdmin
)

// RoutePolicy combines a route's access requirement, rate-limit class and
// input schema. Policies are built at registration time and never mutated.
type RoutePolicy struct {
	Auth      AuthRequirement
	RateClass string
	Schema    Schema
}

// Extend returns a copy of the policy with extra schema fields merged in.
// Per section, preset fields keep their order, extension fields override on
// name collision and new ones are appended. Auth and RateClass are trust
// boundaries and are always inherited from the preset.
func (p RoutePolicy) Extend(extra Schema) RoutePolicy {
	return RoutePolicy{
		Auth:      p.Auth,
		RateClass: p.RateClass,
		Schema: Schema{
			Query:  mergeFields(p.Schema.Query, extra.Query),
			Body:   mergeFields(p.Schema.Body, extra.Body),
			Params: mergeFields(p.Schema.Params, extra.Params),
		},
	}
}

func mergeFields(base, extra Fields) Fields {
	if len(extra) == 0 {
		return base
	}

	merged := make(Fields, 0, len(base)+len(extra))
	merged = append(merged, base...)

	for _, rule := range extra {
		replaced := false
		for i := range merged {
			if merged[i].Name == rule.Name {
				merged[i] = rule
				replaced = true
				break
			}
		}
		if !replaced {
			merged = append(merged, rule)
		}
	}
	return merged
}

// Presets is the catalog of named route policies. It is built once at startup
// and threaded through route registration; tests construct their own with
// whatever fixtures they need.
type Presets struct {
	// Admin routes require an admin JWT and share the admin rate class.
	Admin RoutePolicy
	// Public routes are open and share the public rate class.
	Public RoutePolicy
	// Auth covers credential endpoints: open, but tightly rate limited.
	Auth RoutePolicy
}

func DefaultPresets() Presets {
	return Presets{
		Admin:  RoutePolicy{Auth: AuthAdmin, RateClass: "admin"},
		Public: RoutePolicy{Auth: AuthNone, RateClass: "public"},
		Auth:   RoutePolicy{Auth: AuthNone, RateClass: "auth"},
	}
}
