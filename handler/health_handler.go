package handler

import (
	"net/http"

	"github.com/AkashAman27/cuddly-nest-blog/secure"
)

// HealthCheck godoc
// @Summary      Show the status of server
// @Description  get the status of server
// @Tags         health
// @Accept       json
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func HealthCheck(r *http.Request, rc *secure.RequestContext) (*secure.Response, error) {
	return &secure.Response{Body: map[string]string{"status": "API is healthy and running"}}, nil
}
