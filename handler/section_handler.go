package handler

import (
	"net/http"

	"github.com/AkashAman27/cuddly-nest-blog/logger"
	"github.com/AkashAman27/cuddly-nest-blog/secure"
	"github.com/AkashAman27/cuddly-nest-blog/service"
	"github.com/sirupsen/logrus"
)

type SectionHandler struct {
	service *service.SectionService
}

func NewSectionHandler(service *service.SectionService) *SectionHandler {
	return &SectionHandler{service: service}
}

// Create attaches a templated section to a post.
func (h *SectionHandler) Create(r *http.Request, rc *secure.RequestContext) (*secure.Response, error) {
	input := service.SectionInput{
		PostID:     strField(rc.Body, "post_id"),
		TemplateID: strField(rc.Body, "template_id"),
		Position:   intPtrField(rc.Body, "position"),
		IsActive:   boolPtrField(rc.Body, "is_active"),
		Data:       mapField(rc.Body, "data"),
	}

	logger.Log.WithFields(logrus.Fields{
		"post_id":     input.PostID,
		"template_id": input.TemplateID,
	}).Info("Create section request received")

	section, err := h.service.Create(input)
	if err != nil {
		return nil, err
	}
	return &secure.Response{Status: http.StatusCreated, Body: section}, nil
}

// Update applies partial changes; submitted data keys merge over stored data.
func (h *SectionHandler) Update(r *http.Request, rc *secure.RequestContext) (*secure.Response, error) {
	id := strField(rc.Params, "id")
	input := service.SectionInput{
		Position: intPtrField(rc.Body, "position"),
		IsActive: boolPtrField(rc.Body, "is_active"),
		Data:     mapField(rc.Body, "data"),
	}

	section, err := h.service.Update(id, input)
	if err != nil {
		return nil, err
	}
	return &secure.Response{Body: section}, nil
}

func (h *SectionHandler) Delete(r *http.Request, rc *secure.RequestContext) (*secure.Response, error) {
	id := strField(rc.Params, "id")

	logger.Log.WithField("section_id", id).Info("Delete section request received")

	if err := h.service.Delete(id); err != nil {
		return nil, err
	}
	return &secure.Response{Body: map[string]bool{"success": true}}, nil
}
