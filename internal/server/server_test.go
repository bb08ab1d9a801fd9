package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/aved-sa/aved-web/internal/api/constants"
	"github.com/aved-sa/aved-web/internal/backend"
	"github.com/aved-sa/aved-web/internal/cache"
	"github.com/aved-sa/aved-web/internal/config"
	"github.com/aved-sa/aved-web/internal/metrics"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBackend struct {
	*httptest.Server
	submissions atomic.Int32
}

func newFakeBackend(t *testing.T) *fakeBackend {
	t.Helper()
	fb := &fakeBackend{}
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/contactUs/addContactUs", func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		var payload map[string]interface{}
		if json.Unmarshal(body, &payload) != nil || payload["email"] == nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		fb.submissions.Add(1)
		_, _ = w.Write([]byte(`{"responseCode":200,"responseMessage":"Thank you, we will be in touch."}`))
	})
	mux.HandleFunc("/api/v1/static/getStaticContentByType", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("contentType") != "about" {
			_, _ = w.Write([]byte(`{"responseCode":200,"result":{"docs":[]}}`))
			return
		}
		_, _ = w.Write([]byte(`{"responseCode":200,"result":{"docs":[{"_id":"a1","contentType":"about","title":"About AVED","title_ar":"عن أفيد","description":"<p>Since 2010</p>","description_ar":"<p>منذ 2010</p>"}]}}`))
	})
	mux.HandleFunc("/api/v1/property/viewProperty", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("_id") != "p1" {
			_, _ = w.Write([]byte(`{"responseCode":404,"responseMessage":"Property not found"}`))
			return
		}
		_, _ = w.Write([]byte(`{"responseCode":200,"result":{"_id":"p1","property_name":"Sky Tower","property_name_ar":"برج السماء"}}`))
	})
	fb.Server = httptest.NewServer(mux)
	t.Cleanup(fb.Close)
	return fb
}

func newTestServer(t *testing.T) (*Server, *fakeBackend) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	fb := newFakeBackend(t)
	cfg := &config.Config{
		Environment:      "test",
		ServiceName:      "aved-web",
		Port:             "0",
		PublicDir:        t.TempDir(),
		BackendBaseURL:   fb.URL + "/api/v1",
		BackendTimeout:   5 * time.Second,
		ContentCacheTTL:  time.Minute,
		SubmitGuardTTL:   time.Minute,
		ContactRateRPS:   100,
		ContactRateBurst: 100,
		Support: config.SupportConfig{
			Email:  "info@aved-sa.com",
			Phones: []string{"+966 56 658 9443"},
		},
	}

	m := metrics.New()
	srv, err := NewServer(cfg, Dependencies{
		Cache:   cache.NewMemoryStore(),
		Backend: backend.NewClient(cfg.BackendBaseURL, cfg.BackendTimeout, backend.WithMetrics(m)),
		Metrics: m,
	})
	require.NoError(t, err)
	return srv, fb
}

func do(srv *Server, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

func TestNewServer_RequiresDependencies(t *testing.T) {
	_, err := NewServer(&config.Config{}, Dependencies{})
	assert.Error(t, err)
}

func TestServer_Health(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := do(srv, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
	assert.NotEmpty(t, rec.Header().Get(constants.HeaderRequestID))
}

func TestServer_Pages(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := do(srv, httptest.NewRequest(http.MethodGet, "/about-us?lang=ar", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `dir="rtl"`)
	assert.Contains(t, body, "عن أفيد")
	assert.NotEmpty(t, rec.Header().Get("Content-Security-Policy"))

	rec = do(srv, httptest.NewRequest(http.MethodGet, "/property/p1", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Sky Tower")

	rec = do(srv, httptest.NewRequest(http.MethodGet, "/static/css/site.css", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(srv, httptest.NewRequest(http.MethodGet, "/no-such-page", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")

	rec = do(srv, httptest.NewRequest(http.MethodGet, "/api/v1/no-such-endpoint", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), `"code":"NOT_FOUND"`)
}

func TestServer_ContentAPI(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := do(srv, httptest.NewRequest(http.MethodGet, "/api/v1/content/about?lang=en", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"title":"About AVED"`)

	rec = do(srv, httptest.NewRequest(http.MethodGet, "/api/v1/content/privacyPolicy", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServer_SubmitContactAPI(t *testing.T) {
	srv, fb := newTestServer(t)

	body := `{"formId":"f-1","name":"Sara Ali","email":"sara@example.com","phone":"+966 56 658 9443","message":"I would like a viewing."}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/contact/submit", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := do(srv, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), "Thank you, we will be in touch.")
	assert.Equal(t, int32(1), fb.submissions.Load())

	rec = do(srv, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `aved_contact_submissions_total{outcome="success",source="api"} 1`)
}

func TestServer_ContactFormRequiresCSRF(t *testing.T) {
	srv, fb := newTestServer(t)

	rec := do(srv, httptest.NewRequest(http.MethodGet, "/contact-us", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var csrf *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == constants.CookieCSRF {
			csrf = c
		}
	}
	require.NotNil(t, csrf)
	assert.Contains(t, rec.Body.String(), csrf.Value, "token is embedded in the form")

	form := url.Values{
		"name":    {"Sara Ali"},
		"email":   {"sara@example.com"},
		"phone":   {"+966 56 658 9443"},
		"message": {"I would like a viewing."},
	}
	post := func(token string) *httptest.ResponseRecorder {
		values := url.Values{}
		for k, v := range form {
			values[k] = v
		}
		values.Set(constants.FormFieldCSRF, token)
		req := httptest.NewRequest(http.MethodPost, "/contact-us", strings.NewReader(values.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		req.AddCookie(csrf)
		return do(srv, req)
	}

	rec = post("forged")
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, int32(0), fb.submissions.Load())

	rec = post(csrf.Value)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Thank you, we will be in touch.")
	assert.Equal(t, int32(1), fb.submissions.Load())
}

func TestServer_ShutdownBeforeStart(t *testing.T) {
	srv, _ := newTestServer(t)
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	assert.NoError(t, srv.Shutdown(ctx))
}
