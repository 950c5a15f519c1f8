package secure

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/AkashAman27/cuddly-nest-blog/common"
	"github.com/AkashAman27/cuddly-nest-blog/model"
)

type stubAuthenticator struct {
	principal *model.Principal
	err       error
}

func (s *stubAuthenticator) Authenticate(r *http.Request) (*model.Principal, error) {
	return s.principal, s.err
}

func (s *stubAuthenticator) Authorize(p *model.Principal, required model.Role) bool {
	return p != nil && p.Role == required
}

type limiterFunc func(class, key string) (bool, error)

func (f limiterFunc) Allow(ctx context.Context, class, key string) (bool, error) {
	return f(class, key)
}

func allowAll() RateLimiter {
	return limiterFunc(func(string, string) (bool, error) { return true, nil })
}

func denyAll() RateLimiter {
	return limiterFunc(func(string, string) (bool, error) { return false, nil })
}

type recordingHandler struct {
	calls int
	rc    *RequestContext
	resp  *Response
	err   error
}

func (h *recordingHandler) handle(r *http.Request, rc *RequestContext) (*Response, error) {
	h.calls++
	h.rc = rc
	return h.resp, h.err
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func serve(p *Pipeline, h HandlerFunc, policy RoutePolicy, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	p.Wrap(h, policy)(rec, req)
	return rec
}

func TestPipeline_MissingCredentials(t *testing.T) {
	p := NewPipeline(&stubAuthenticator{}, allowAll())
	handler := &recordingHandler{}

	req := httptest.NewRequest(http.MethodGet, "/api/admin/posts", nil)
	rec := serve(p, handler.handle, RoutePolicy{Auth: AuthRequired, RateClass: "admin"}, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, 0, handler.calls)

	body := decodeError(t, rec)
	assert.Equal(t, "Authorization header is required", body["error"])
	assert.Equal(t, common.CodeUnauthorized, body["code"])
	assert.NotContains(t, body, "details")
}

func TestPipeline_InvalidToken(t *testing.T) {
	p := NewPipeline(&stubAuthenticator{err: errors.New("token expired")}, allowAll())
	handler := &recordingHandler{}

	req := httptest.NewRequest(http.MethodGet, "/api/admin/posts", nil)
	req.Header.Set("Authorization", "Bearer bad")
	rec := serve(p, handler.handle, RoutePolicy{Auth: AuthRequired, RateClass: "admin"}, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, 0, handler.calls)
	assert.Equal(t, "Invalid or expired token", decodeError(t, rec)["error"])
}

func TestPipeline_AdminRequired(t *testing.T) {
	editor := &model.Principal{ID: "u-1", Email: "editor@example.com", Role: model.RoleEditor}
	p := NewPipeline(&stubAuthenticator{principal: editor}, allowAll())
	handler := &recordingHandler{}

	req := httptest.NewRequest(http.MethodDelete, "/api/admin/posts/abc", nil)
	rec := serve(p, handler.handle, RoutePolicy{Auth: AuthAdmin, RateClass: "admin"}, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, 0, handler.calls)

	body := decodeError(t, rec)
	assert.Equal(t, "Access denied. Admin privileges required.", body["error"])
	assert.Equal(t, common.CodeForbidden, body["code"])
}

func TestPipeline_OpenRouteIgnoresBadToken(t *testing.T) {
	p := NewPipeline(&stubAuthenticator{err: errors.New("garbage token")}, allowAll())
	handler := &recordingHandler{resp: &Response{Body: map[string]any{"ok": true}}}

	req := httptest.NewRequest(http.MethodGet, "/api/blog/posts", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	rec := serve(p, handler.handle, RoutePolicy{Auth: AuthNone, RateClass: "public"}, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, handler.calls)
	assert.Nil(t, handler.rc.Identity)
}

func TestPipeline_RateLimited(t *testing.T) {
	p := NewPipeline(&stubAuthenticator{}, denyAll())
	handler := &recordingHandler{}

	req := httptest.NewRequest(http.MethodGet, "/api/blog/posts", nil)
	rec := serve(p, handler.handle, RoutePolicy{Auth: AuthNone, RateClass: "public"}, req)

	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, 0, handler.calls)

	body := decodeError(t, rec)
	assert.Equal(t, "Too many requests", body["error"])
	assert.Equal(t, common.CodeRateLimited, body["code"])
}

func TestPipeline_LimiterFailureClosesRoute(t *testing.T) {
	p := NewPipeline(&stubAuthenticator{}, limiterFunc(func(class, key string) (bool, error) {
		return false, errors.New("redis: connection refused")
	}))
	handler := &recordingHandler{}

	req := httptest.NewRequest(http.MethodGet, "/api/blog/posts", nil)
	rec := serve(p, handler.handle, RoutePolicy{Auth: AuthNone, RateClass: "public"}, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, 0, handler.calls)

	body := decodeError(t, rec)
	assert.Equal(t, "Internal server error", body["error"])
	assert.NotContains(t, rec.Body.String(), "redis")
}

func TestPipeline_ParamValidation(t *testing.T) {
	p := NewPipeline(&stubAuthenticator{}, allowAll())
	handler := &recordingHandler{}

	policy := RoutePolicy{Auth: AuthNone, RateClass: "public", Schema: Schema{
		Params: Fields{String("id", Pattern(`[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}`))},
	}}

	req := httptest.NewRequest(http.MethodGet, "/api/admin/posts/not-a-uuid", nil)
	req.SetPathValue("id", "not-a-uuid")
	rec := serve(p, handler.handle, policy, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, 0, handler.calls)

	body := decodeError(t, rec)
	assert.Equal(t, common.CodeValidation, body["code"])
	details := body["details"].([]any)
	assert.Len(t, details, 1)
	failure := details[0].(map[string]any)
	assert.Equal(t, "id", failure["field"])
	assert.Equal(t, "params", failure["section"])
	assert.Equal(t, "pattern", failure["rule"])
}

func TestPipeline_BodyValidation(t *testing.T) {
	p := NewPipeline(&stubAuthenticator{}, allowAll())
	handler := &recordingHandler{}

	policy := RoutePolicy{Auth: AuthNone, RateClass: "public", Schema: Schema{
		Body: Fields{String("title"), String("slug", Pattern(`[a-z0-9]+(?:-[a-z0-9]+)*`))},
	}}

	req := httptest.NewRequest(http.MethodPost, "/api/admin/posts", strings.NewReader(`{"title":"Hello"}`))
	rec := serve(p, handler.handle, policy, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, 0, handler.calls)

	details := decodeError(t, rec)["details"].([]any)
	assert.Len(t, details, 1)
	failure := details[0].(map[string]any)
	assert.Equal(t, "slug", failure["field"])
	assert.Equal(t, "required", failure["rule"])
}

func TestPipeline_MalformedBody(t *testing.T) {
	p := NewPipeline(&stubAuthenticator{}, allowAll())
	handler := &recordingHandler{}

	req := httptest.NewRequest(http.MethodPost, "/api/admin/posts", strings.NewReader(`{"title":`))
	rec := serve(p, handler.handle, RoutePolicy{Auth: AuthNone, RateClass: "public"}, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, 0, handler.calls)
	assert.Equal(t, "Invalid request body", decodeError(t, rec)["error"])
}

func TestPipeline_HandlerReceivesValidatedInput(t *testing.T) {
	admin := &model.Principal{ID: "u-2", Email: "admin@example.com", Role: model.RoleAdmin}
	p := NewPipeline(&stubAuthenticator{principal: admin}, allowAll())
	handler := &recordingHandler{resp: &Response{Status: http.StatusCreated, Body: map[string]any{"id": "p-1"}}}

	policy := RoutePolicy{Auth: AuthAdmin, RateClass: "admin", Schema: Schema{
		Query: Fields{Number("page", Optional(), Min(1))},
		Body:  Fields{String("title"), Boolean("is_featured", Optional())},
	}}

	req := httptest.NewRequest(http.MethodPost, "/api/admin/posts?page=2", strings.NewReader(`{"title":"Hello","is_featured":true,"extra":"kept"}`))
	rec := serve(p, handler.handle, policy, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, 1, handler.calls)
	assert.Equal(t, admin, handler.rc.Identity)
	assert.Equal(t, float64(2), handler.rc.Query["page"])
	assert.Equal(t, "Hello", handler.rc.Body["title"])
	assert.Equal(t, true, handler.rc.Body["is_featured"])
	assert.Equal(t, "kept", handler.rc.Body["extra"])

	var resp map[string]any
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, map[string]any{"id": "p-1"}, resp)
}

func TestPipeline_DomainErrorKeepsStatus(t *testing.T) {
	p := NewPipeline(&stubAuthenticator{}, allowAll())
	handler := &recordingHandler{err: common.NewNotFoundError("Post not found")}

	req := httptest.NewRequest(http.MethodGet, "/api/blog/posts/missing", nil)
	rec := serve(p, handler.handle, RoutePolicy{Auth: AuthNone, RateClass: "public"}, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)

	body := decodeError(t, rec)
	assert.Equal(t, "Post not found", body["error"])
	assert.Equal(t, common.CodeNotFound, body["code"])
	assert.NotContains(t, body, "details")
}

func TestPipeline_UnrecognizedErrorBecomesInternal(t *testing.T) {
	p := NewPipeline(&stubAuthenticator{}, allowAll())
	handler := &recordingHandler{err: errors.New("pq: relation does not exist")}

	req := httptest.NewRequest(http.MethodGet, "/api/blog/posts", nil)
	rec := serve(p, handler.handle, RoutePolicy{Auth: AuthNone, RateClass: "public"}, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	body := decodeError(t, rec)
	assert.Equal(t, "Internal server error", body["error"])
	assert.Equal(t, common.CodeInternal, body["code"])
	assert.NotContains(t, rec.Body.String(), "pq:")
}

func TestClientKey(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "203.0.113.9:51234"

	assert.Equal(t, "203.0.113.9", clientKey(req, nil))
	assert.Equal(t, "u-9", clientKey(req, &model.Principal{ID: "u-9"}))
}
