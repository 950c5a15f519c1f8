package router

import (
	"net/http"

	"github.com/AkashAman27/cuddly-nest-blog/handler"
	"github.com/AkashAman27/cuddly-nest-blog/secure"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "github.com/AkashAman27/cuddly-nest-blog/docs"
)

const uuidPattern = `[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}`
const slugPattern = `[a-z0-9]+(?:-[a-z0-9]+)*`

// Handlers bundles everything the router wires up.
type Handlers struct {
	Auth     *handler.AuthHandler
	Post     *handler.PostHandler
	Author   *handler.AuthorHandler
	Taxonomy *handler.TaxonomyHandler
	Section  *handler.SectionHandler
}

// NewRouter registers every route through the secure pipeline. Each route
// starts from a preset and extends its schema with route-specific field
// rules; access level and rate class always come from the preset.
func NewRouter(p *secure.Pipeline, presets secure.Presets, h Handlers) http.Handler {
	mux := http.NewServeMux()

	mux.Handle("GET /health", p.Wrap(handler.HealthCheck, presets.Public))
	mux.Handle("GET /swagger/", httpSwagger.Handler())

	mux.Handle("POST /api/auth/login", p.Wrap(h.Auth.Login, presets.Auth))

	// Public blog reads.
	mux.Handle("GET /api/posts", p.Wrap(h.Post.PublicList, presets.Public.Extend(secure.Schema{
		Query: secure.Fields{
			secure.Number("limit", secure.Optional(), secure.Min(1), secure.Max(50)),
		},
	})))
	mux.Handle("GET /api/posts/{slug}", p.Wrap(h.Post.PublicGet, presets.Public.Extend(secure.Schema{
		Params: secure.Fields{
			secure.String("slug", secure.Pattern(slugPattern)),
		},
	})))

	// Admin post management.
	mux.Handle("GET /api/admin/posts", p.Wrap(h.Post.List, presets.Admin.Extend(secure.Schema{
		Query: secure.Fields{
			secure.String("status", secure.Optional(), secure.Allowed("draft", "published", "archived", "all")),
			secure.String("search", secure.Optional(), secure.MaxLen(100)),
			secure.Number("page", secure.Optional(), secure.Min(1), secure.Max(1000)),
			secure.Number("limit", secure.Optional(), secure.Min(1), secure.Max(100)),
		},
	})))
	mux.Handle("POST /api/admin/posts", p.Wrap(h.Post.Create, presets.Admin.Extend(secure.Schema{
		Body: blogPostSchema(),
	})))
	mux.Handle("GET /api/admin/posts/{id}", p.Wrap(h.Post.Get, presets.Admin.Extend(secure.Schema{
		Params: secure.Fields{
			secure.String("id", secure.Pattern(uuidPattern)),
		},
	})))
	mux.Handle("PUT /api/admin/posts/{id}", p.Wrap(h.Post.Update, presets.Admin.Extend(secure.Schema{
		Params: secure.Fields{
			secure.String("id", secure.Pattern(uuidPattern)),
		},
		Body: blogPostSchema(),
	})))
	mux.Handle("DELETE /api/admin/posts/{id}", p.Wrap(h.Post.Delete, presets.Admin.Extend(secure.Schema{
		Params: secure.Fields{
			secure.String("id", secure.Pattern(uuidPattern)),
		},
	})))

	// Admin author and taxonomy reads.
	mux.Handle("GET /api/admin/authors", p.Wrap(h.Author.List, presets.Admin))
	mux.Handle("POST /api/admin/authors", p.Wrap(h.Author.Create, presets.Admin.Extend(secure.Schema{
		Body: secure.Fields{
			secure.String("display_name", secure.MaxLen(120)),
			secure.String("email", secure.Pattern(`[^@\s]+@[^@\s]+\.[^@\s]+`)),
		},
	})))
	mux.Handle("GET /api/admin/categories", p.Wrap(h.Taxonomy.Categories, presets.Admin))
	mux.Handle("GET /api/admin/tags", p.Wrap(h.Taxonomy.Tags, presets.Admin))

	// Admin post sections.
	mux.Handle("POST /api/admin/sections", p.Wrap(h.Section.Create, presets.Admin.Extend(secure.Schema{
		Body: secure.Fields{
			secure.String("post_id", secure.Pattern(uuidPattern)),
			secure.String("template_id"),
			secure.Object("data", secure.Optional()),
			secure.Number("position", secure.Optional(), secure.Min(0)),
			secure.Boolean("is_active", secure.Optional()),
		},
	})))
	mux.Handle("PUT /api/admin/sections/{id}", p.Wrap(h.Section.Update, presets.Admin.Extend(secure.Schema{
		Params: secure.Fields{
			secure.String("id", secure.Pattern(uuidPattern)),
		},
		Body: secure.Fields{
			secure.Number("position", secure.Optional(), secure.Min(0)),
			secure.Boolean("is_active", secure.Optional()),
			secure.Object("data", secure.Optional()),
		},
	})))
	mux.Handle("DELETE /api/admin/sections/{id}", p.Wrap(h.Section.Delete, presets.Admin.Extend(secure.Schema{
		Params: secure.Fields{
			secure.String("id", secure.Pattern(uuidPattern)),
		},
	})))

	return mux
}

// blogPostSchema is the shared body contract for creating and updating posts.
func blogPostSchema() secure.Fields {
	return secure.Fields{
		secure.String("title", secure.MaxLen(200)),
		secure.String("slug", secure.Pattern(slugPattern)),
		secure.String("excerpt", secure.Optional()),
		secure.String("content", secure.Optional()),
		secure.String("status", secure.Optional(), secure.Allowed("draft", "published", "archived")),
		secure.String("featured_image_url", secure.Optional()),
		secure.String("author_id", secure.Optional(), secure.Pattern(uuidPattern)),
		secure.String("seo_title", secure.Optional()),
		secure.String("seo_description", secure.Optional()),
		secure.Array("faq_items", secure.Optional()),
		secure.Array("internal_links", secure.Optional()),
		secure.Boolean("template_enabled", secure.Optional()),
		secure.String("template_type", secure.Optional()),
		secure.Array("categories", secure.Optional()),
		secure.Array("tags", secure.Optional()),
	}
}
