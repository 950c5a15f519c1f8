package handler

import (
	"net/http"

	"github.com/AkashAman27/cuddly-nest-blog/secure"
	"github.com/AkashAman27/cuddly-nest-blog/service"
)

type TaxonomyHandler struct {
	service *service.TaxonomyService
}

func NewTaxonomyHandler(service *service.TaxonomyService) *TaxonomyHandler {
	return &TaxonomyHandler{service: service}
}

func (h *TaxonomyHandler) Categories(r *http.Request, rc *secure.RequestContext) (*secure.Response, error) {
	categories, err := h.service.ListCategories()
	if err != nil {
		return nil, err
	}
	return &secure.Response{Body: map[string]any{"categories": categories}}, nil
}

func (h *TaxonomyHandler) Tags(r *http.Request, rc *secure.RequestContext) (*secure.Response, error) {
	tags, err := h.service.ListTags()
	if err != nil {
		return nil, err
	}
	return &secure.Response{Body: map[string]any{"tags": tags}}, nil
}
