package apidocs

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"content-gate/app/server/handlers"
	"content-gate/app/server/identity"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocument_Valid(t *testing.T) {
	doc := Document()
	require.NoError(t, doc.Validate(context.Background()))

	raw, err := doc.MarshalJSON()
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"/api/pdf/{id}"`)
}

func TestDocument_CoversRoutes(t *testing.T) {
	e := echo.New()
	handlers.RegisterHandlers(e, &handlers.App{}, identity.NewResolver(nil), handlers.RouteOptions{AuthRateLimit: 1})
	doc := Document()

	checked := 0
	for _, r := range e.Routes() {
		// 分组中间件可能注册的兜底路由
		if r.Path == "/api" || strings.HasSuffix(r.Path, "*") {
			continue
		}
		path := strings.ReplaceAll(r.Path, ":id", "{id}")
		item := doc.Paths.Value(path)
		if assert.NotNil(t, item, path) {
			assert.NotNil(t, item.GetOperation(r.Method), "%s %s", r.Method, path)
		}
		checked++
	}
	assert.Equal(t, 12, checked)
}

func serve(t *testing.T, mw echo.MiddlewareFunc, target string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	e.Pre(mw)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestDoc(t *testing.T) {
	mw := Doc("/api", []byte(`{"openapi":"3.0.3"}`))

	rec := serve(t, mw, "/api/apispec.json")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"openapi":"3.0.3"}`, rec.Body.String())

	rec = serve(t, mw, "/api/apidocs")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `data-url="/api/apispec.json"`)

	rec = serve(t, mw, "/api")
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/api/apidocs", rec.Header().Get(echo.HeaderLocation))

	denied := Doc("/api", []byte(`{}`), WithAuthorizer(func(*http.Request) bool { return false }))
	rec = serve(t, denied, "/api/apispec.json")
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
