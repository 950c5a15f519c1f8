package handler

import (
	"net/http"

	"github.com/AkashAman27/cuddly-nest-blog/common"
	"github.com/AkashAman27/cuddly-nest-blog/logger"
	"github.com/AkashAman27/cuddly-nest-blog/model"
	"github.com/AkashAman27/cuddly-nest-blog/secure"
	"github.com/AkashAman27/cuddly-nest-blog/service"
)

type AuthHandler struct {
	service *service.AuthService
}

func NewAuthHandler(service *service.AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

// Login godoc
// @Summary      Authenticate an admin user
// @Description  exchanges email and password for a bearer token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        credentials  body      model.LoginRequest  true  "Login credentials"
// @Success      200  {object}  model.TokenResponse
// @Failure      400  {object}  common.AppError
// @Failure      401  {object}  common.AppError
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(r *http.Request, rc *secure.RequestContext) (*secure.Response, error) {
	var req model.LoginRequest
	if appErr := common.BindAndValidate(rc.Body, &req); appErr != nil {
		return nil, appErr
	}

	logger.Log.WithField("email", req.Email).Info("Login request received")

	token, err := h.service.Login(req.Email, req.Password)
	if err != nil {
		return nil, err
	}

	return &secure.Response{Body: token}, nil
}
