package secure

import (
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"

	"github.com/AkashAman27/cuddly-nest-blog/common"
	"github.com/AkashAman27/cuddly-nest-blog/model"
)

// Authenticator is the identity collaborator the pipeline delegates to.
// Authenticate returns (nil, nil) when the request carries no credentials and
// an error when it carries invalid ones; verification internals live behind
// this interface.
type Authenticator interface {
	Authenticate(r *http.Request) (*model.Principal, error)
	Authorize(p *model.Principal, required model.Role) bool
}

// RateLimiter is the counter collaborator. The pipeline only consumes the
// allow/deny decision; window algorithm and storage are the implementation's
// concern.
type RateLimiter interface {
	Allow(ctx context.Context, class, key string) (bool, error)
}

// RequestContext is the validated, typed view of one request handed to the
// handler. It is built after all pipeline stages pass and is not mutated
// afterwards.
type RequestContext struct {
	Query    map[string]any
	Body     map[string]any
	Params   map[string]any
	Identity *model.Principal
}

// Response is what a handler returns on success. A zero Status means 200; a
// nil Body writes no payload.
type Response struct {
	Status int
	Body   any
}

// HandlerFunc is the business-logic contract: the raw request for route
// metadata, the validated context for input. Returned errors go through the
// error normalizer; recognized domain errors keep their status, anything else
// becomes a 500.
type HandlerFunc func(r *http.Request, rc *RequestContext) (*Response, error)

// Pipeline wraps handlers with the fixed stage order:
// authenticate, rate limit, validate, invoke, catch. Stages 1-3 fail closed
// and never invoke the handler.
type Pipeline struct {
	auth    Authenticator
	limiter RateLimiter
}

func NewPipeline(auth Authenticator, limiter RateLimiter) *Pipeline {
	return &Pipeline{auth: auth, limiter: limiter}
}

// Wrap turns a handler plus its route policy into a plain http.HandlerFunc.
func (p *Pipeline) Wrap(h HandlerFunc, policy RoutePolicy) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		principal, appErr := p.authenticate(r, policy.Auth)
		if appErr != nil {
			appErr.Send(w)
			return
		}

		if appErr := p.checkRateLimit(r, policy.RateClass, principal); appErr != nil {
			appErr.Send(w)
			return
		}

		raw, appErr := readSections(r, policy.Schema)
		if appErr != nil {
			appErr.Send(w)
			return
		}

		validated, failures := policy.Schema.Validate(raw)
		if len(failures) > 0 {
			common.NewValidationError(failures).Send(w)
			return
		}

		rc := &RequestContext{
			Query:    validated.Query,
			Body:     validated.Body,
			Params:   validated.Params,
			Identity: principal,
		}

		resp, err := h(r, rc)
		if err != nil {
			common.Normalize(err).Send(w)
			return
		}

		writeResponse(w, resp)
	}
}

func (p *Pipeline) authenticate(r *http.Request, required AuthRequirement) (*model.Principal, *common.AppError) {
	principal, err := p.auth.Authenticate(r)

	if required == AuthNone {
		// Identity is optional here; a bad token on an open route is ignored
		// rather than rejected.
		if err != nil {
			return nil, nil
		}
		return principal, nil
	}

	if err != nil {
		return nil, common.NewAuthenticationError("Invalid or expired token", err)
	}
	if principal == nil {
		return nil, common.NewAuthenticationError("Authorization header is required", nil)
	}

	if required == AuthAdmin && !p.auth.Authorize(principal, model.RoleAdmin) {
		return nil, common.NewAuthorizationError("Access denied. Admin privileges required.")
	}

	return principal, nil
}

func (p *Pipeline) checkRateLimit(r *http.Request, class string, principal *model.Principal) *common.AppError {
	key := clientKey(r, principal)

	allowed, err := p.limiter.Allow(r.Context(), class, key)
	if err != nil {
		// The counter guards a trust boundary, so its failure denies too.
		return common.NewInternalError(err)
	}
	if !allowed {
		return common.NewRateLimitError()
	}
	return nil
}

// clientKey prefers the authenticated principal so one user cannot dodge the
// limit by rotating source addresses; anonymous callers are keyed by IP.
func clientKey(r *http.Request, principal *model.Principal) string {
	if principal != nil {
		return principal.ID
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func readSections(r *http.Request, schema Schema) (Sections, *common.AppError) {
	raw := Sections{
		Query:  make(map[string]any),
		Body:   make(map[string]any),
		Params: make(map[string]any),
	}

	for name, values := range r.URL.Query() {
		if len(values) > 0 {
			raw.Query[name] = values[0]
		}
	}

	for _, rule := range schema.Params {
		if v := r.PathValue(rule.Name); v != "" {
			raw.Params[rule.Name] = v
		}
	}

	if r.Body != nil {
		payload, err := io.ReadAll(r.Body)
		if err != nil {
			return Sections{}, common.NewAppError(http.StatusBadRequest, "Invalid request body", err)
		}
		if len(payload) > 0 {
			if err := json.Unmarshal(payload, &raw.Body); err != nil {
				return Sections{}, common.NewAppError(http.StatusBadRequest, "Invalid request body", err)
			}
		}
	}

	return raw, nil
}

func writeResponse(w http.ResponseWriter, resp *Response) {
	status := http.StatusOK
	var body any
	if resp != nil {
		if resp.Status != 0 {
			status = resp.Status
		}
		body = resp.Body
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if body != nil {
		json.NewEncoder(w).Encode(body)
	}
}
