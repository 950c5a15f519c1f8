package handler

import (
	"net/http"

	"github.com/AkashAman27/cuddly-nest-blog/logger"
	"github.com/AkashAman27/cuddly-nest-blog/secure"
	"github.com/AkashAman27/cuddly-nest-blog/service"
	"github.com/sirupsen/logrus"
)

type PostHandler struct {
	service *service.PostService
}

func NewPostHandler(service *service.PostService) *PostHandler {
	return &PostHandler{service: service}
}

// List handles the admin post listing with filters and pagination.
func (h *PostHandler) List(r *http.Request, rc *secure.RequestContext) (*secure.Response, error) {
	status := strField(rc.Query, "status")
	search := strField(rc.Query, "search")
	page := intField(rc.Query, "page", 1)
	limit := intField(rc.Query, "limit", 20)

	logger.Log.WithFields(logrus.Fields{
		"status": status,
		"search": search,
		"page":   page,
	}).Info("List posts request received")

	result, err := h.service.ListAdmin(status, search, page, limit)
	if err != nil {
		return nil, err
	}
	return &secure.Response{Body: result}, nil
}

// Create handles new post creation.
func (h *PostHandler) Create(r *http.Request, rc *secure.RequestContext) (*secure.Response, error) {
	input := postInputFromBody(rc.Body)

	logger.Log.WithFields(logrus.Fields{
		"slug":   input.Slug,
		"status": input.Status,
	}).Info("Create post request received")

	post, err := h.service.Create(input)
	if err != nil {
		return nil, err
	}
	return &secure.Response{Status: http.StatusCreated, Body: post}, nil
}

// Get returns one post by id for the admin editor.
func (h *PostHandler) Get(r *http.Request, rc *secure.RequestContext) (*secure.Response, error) {
	post, err := h.service.Get(strField(rc.Params, "id"))
	if err != nil {
		return nil, err
	}
	return &secure.Response{Body: post}, nil
}

// Update rewrites a post and resyncs submitted category/tag links.
func (h *PostHandler) Update(r *http.Request, rc *secure.RequestContext) (*secure.Response, error) {
	id := strField(rc.Params, "id")
	input := postInputFromBody(rc.Body)

	logger.Log.WithFields(logrus.Fields{
		"post_id": id,
		"slug":    input.Slug,
	}).Info("Update post request received")

	post, err := h.service.Update(id, input)
	if err != nil {
		return nil, err
	}
	return &secure.Response{Body: post}, nil
}

// Delete removes a post.
func (h *PostHandler) Delete(r *http.Request, rc *secure.RequestContext) (*secure.Response, error) {
	id := strField(rc.Params, "id")

	logger.Log.WithField("post_id", id).Info("Delete post request received")

	if err := h.service.Delete(id); err != nil {
		return nil, err
	}
	return &secure.Response{Body: map[string]bool{"success": true}}, nil
}

// PublicList serves the public blog's recent published posts.
func (h *PostHandler) PublicList(r *http.Request, rc *secure.RequestContext) (*secure.Response, error) {
	limit := intField(rc.Query, "limit", 12)

	posts, err := h.service.ListPublic(limit)
	if err != nil {
		return nil, err
	}
	return &secure.Response{Body: map[string]any{"posts": posts}}, nil
}

// PublicGet serves one published post by slug.
func (h *PostHandler) PublicGet(r *http.Request, rc *secure.RequestContext) (*secure.Response, error) {
	post, err := h.service.GetPublicBySlug(strField(rc.Params, "slug"))
	if err != nil {
		return nil, err
	}
	return &secure.Response{Body: post}, nil
}

func postInputFromBody(body map[string]any) service.PostInput {
	return service.PostInput{
		Title:            strField(body, "title"),
		Slug:             strField(body, "slug"),
		Excerpt:          strField(body, "excerpt"),
		Content:          strField(body, "content"),
		Status:           strField(body, "status"),
		FeaturedImageURL: strPtrField(body, "featured_image_url"),
		AuthorID:         strPtrField(body, "author_id"),
		SEOTitle:         strField(body, "seo_title"),
		SEODescription:   strField(body, "seo_description"),
		FAQItems:         jsonField(body, "faq_items"),
		InternalLinks:    jsonField(body, "internal_links"),
		TemplateEnabled:  boolField(body, "template_enabled", false),
		TemplateType:     strPtrField(body, "template_type"),
		Categories:       strSliceField(body, "categories"),
		Tags:             strSliceField(body, "tags"),
	}
}
