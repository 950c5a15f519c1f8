package handler

import (
	"net/http"

	"github.com/AkashAman27/cuddly-nest-blog/logger"
	"github.com/AkashAman27/cuddly-nest-blog/secure"
	"github.com/AkashAman27/cuddly-nest-blog/service"
)

type AuthorHandler struct {
	service *service.AuthorService
}

func NewAuthorHandler(service *service.AuthorService) *AuthorHandler {
	return &AuthorHandler{service: service}
}

func (h *AuthorHandler) List(r *http.Request, rc *secure.RequestContext) (*secure.Response, error) {
	authors, err := h.service.List()
	if err != nil {
		return nil, err
	}
	return &secure.Response{Body: map[string]any{"authors": authors}}, nil
}

func (h *AuthorHandler) Create(r *http.Request, rc *secure.RequestContext) (*secure.Response, error) {
	displayName := strField(rc.Body, "display_name")
	email := strField(rc.Body, "email")

	logger.Log.WithField("email", email).Info("Create author request received")

	author, err := h.service.Create(displayName, email)
	if err != nil {
		return nil, err
	}
	return &secure.Response{Status: http.StatusCreated, Body: author}, nil
}
