package model

import "time"

// Post statuses. "all" is only a list filter, never a stored value.
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
	StatusArchived  = "archived"
)

type Post struct {
	ID               string     `json:"id"`
	Title            string     `json:"title"`
	Slug             string     `json:"slug"`
	Excerpt          string     `json:"excerpt"`
	Content          string     `json:"content"`
	Status           string     `json:"status"`
	FeaturedImageURL *string    `json:"featured_image_url"`
	AuthorID         *string    `json:"author_id"`
	SEOTitle         string     `json:"seo_title"`
	SEODescription   string     `json:"seo_description"`
	FAQItems         JSONText   `json:"faq_items"`
	InternalLinks    JSONText   `json:"internal_links"`
	TemplateEnabled  bool       `json:"template_enabled"`
	TemplateType     *string    `json:"template_type"`
	PublishedAt      *time.Time `json:"published_at"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`

	// Populated on reads, not stored on the posts row itself.
	Author        *Author  `json:"author,omitempty"`
	Categories    []string `json:"categories"`
	Tags          []string `json:"tags"`
	SectionsCount int      `json:"sections_count"`
}

// Pagination describes one page of a post listing.
type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

type PostPage struct {
	Posts      []*Post    `json:"posts"`
	Pagination Pagination `json:"pagination"`
}
