package secure

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoutePolicy_ExtendMergesSchemas(t *testing.T) {
	preset := RoutePolicy{
		Auth:      AuthAdmin,
		RateClass: "admin",
		Schema: Schema{
			Query: Fields{
				String("status", Optional()),
				Number("page", Optional(), Min(1)),
			},
		},
	}

	extended := preset.Extend(Schema{
		Query: Fields{
			// Overrides the preset's rule for the same field.
			String("status", Optional(), Allowed("draft", "published")),
			Number("limit", Optional(), Max(100)),
		},
		Body: Fields{String("title")},
	})

	// Access level and rate class are never overridable per-route.
	assert.Equal(t, AuthAdmin, extended.Auth)
	assert.Equal(t, "admin", extended.RateClass)

	// Preset order kept, override applied in place, new fields appended.
	assert.Equal(t, []string{"status", "page", "limit"}, fieldNames(extended.Schema.Query))
	assert.Equal(t, []string{"draft", "published"}, extended.Schema.Query[0].AllowedValues)
	assert.Equal(t, []string{"title"}, fieldNames(extended.Schema.Body))

	// The preset itself is untouched.
	assert.Len(t, preset.Schema.Query, 2)
	assert.Empty(t, preset.Schema.Query[0].AllowedValues)
	assert.Empty(t, preset.Schema.Body)
}

func TestRoutePolicy_ExtendWithEmptySchema(t *testing.T) {
	preset := RoutePolicy{Auth: AuthNone, RateClass: "public", Schema: Schema{
		Query: Fields{Number("limit", Optional())},
	}}

	extended := preset.Extend(Schema{})

	assert.Equal(t, preset, extended)
}

func TestDefaultPresets(t *testing.T) {
	presets := DefaultPresets()

	assert.Equal(t, AuthAdmin, presets.Admin.Auth)
	assert.Equal(t, "admin", presets.Admin.RateClass)
	assert.Equal(t, AuthNone, presets.Public.Auth)
	assert.Equal(t, "public", presets.Public.RateClass)
	assert.Equal(t, AuthNone, presets.Auth.Auth)
	assert.Equal(t, "auth", presets.Auth.RateClass)
}

func fieldNames(fields Fields) []string {
	names := make([]string, 0, len(fields))
	for _, f := range fields {
		names = append(names, f.Name)
	}
	return names
}
