package api_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swaggo/swag"

	"github.com/careerfair/jobfair-api/internal/api"
	"github.com/careerfair/jobfair-api/internal/cache"
	"github.com/careerfair/jobfair-api/internal/config"
	"github.com/careerfair/jobfair-api/internal/notify"
	"github.com/careerfair/jobfair-api/internal/testutil"
)

func newTestServer(t *testing.T) *api.Server {
	t.Helper()

	conf := &config.AppConfig{
		API: &config.APIConfig{
			JWTSigningKey:      "test-signing-key",
			AllowedCORSDomains: []string{"http://localhost:3000"},
		},
		Gin:        &config.GinConfig{Mode: "test"},
		Assignment: &config.AssignmentConfig{BulkBatchSize: 10},
	}

	s, err := api.NewServer(conf, testutil.NewTestDB(t), cache.Noop{}, notify.Noop{})
	require.NoError(t, err)
	return s
}

func TestServer_RoutesAreDocumented(t *testing.T) {
	s := newTestServer(t)

	raw, err := swag.ReadDoc()
	require.NoError(t, err)

	var doc struct {
		BasePath string                                `json:"basePath"`
		Paths    map[string]map[string]json.RawMessage `json:"paths"`
	}
	require.NoError(t, json.Unmarshal([]byte(raw), &doc))
	assert.Equal(t, "/api/v1", doc.BasePath)

	documented := 0
	for _, route := range s.Router.Routes() {
		if route.Path == "/metrics" || strings.HasPrefix(route.Path, "/swagger/") {
			continue
		}
		documented++

		path := strings.TrimPrefix(route.Path, "/api/v1")
		segments := strings.Split(path, "/")
		for i, segment := range segments {
			if strings.HasPrefix(segment, ":") {
				segments[i] = "{" + segment[1:] + "}"
			}
		}
		path = strings.Join(segments, "/")

		methods, ok := doc.Paths[path]
		if assert.True(t, ok, "undocumented path %s", path) {
			assert.Contains(t, methods, strings.ToLower(route.Method), "undocumented %s %s", route.Method, path)
		}
	}

	operations := 0
	for _, methods := range doc.Paths {
		operations += len(methods)
	}
	assert.Equal(t, documented, operations)
}

func TestServer_Healthcheck(t *testing.T) {
	s := newTestServer(t)

	w := httptest.NewRecorder()
	s.Router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
}
