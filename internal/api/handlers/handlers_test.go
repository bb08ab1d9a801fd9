package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/aved-sa/aved-web/internal/api/constants"
	"github.com/aved-sa/aved-web/internal/api/middleware"
	"github.com/aved-sa/aved-web/internal/api/views"
	"github.com/aved-sa/aved-web/internal/backend"
	"github.com/aved-sa/aved-web/internal/cache"
	"github.com/aved-sa/aved-web/internal/contact"
	"github.com/aved-sa/aved-web/internal/content"
	"github.com/aved-sa/aved-web/internal/i18n"
	"github.com/aved-sa/aved-web/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeContent struct {
	pages       map[content.Type]*content.Page
	pageErr     error
	property    *content.Property
	propertyErr error
}

func (f *fakeContent) Page(_ context.Context, t content.Type, locale i18n.Locale) (*content.Page, error) {
	if f.pageErr != nil {
		return nil, f.pageErr
	}
	p, ok := f.pages[t]
	if !ok {
		return nil, fmt.Errorf("static content %q: %w", t, backend.ErrNotFound)
	}
	page := *p
	page.Locale = locale
	page.Dir = locale.Dir()
	return &page, nil
}

func (f *fakeContent) Property(_ context.Context, id string, locale i18n.Locale) (*content.Property, error) {
	if f.propertyErr != nil {
		return nil, f.propertyErr
	}
	if f.property == nil || f.property.ID != id {
		return nil, fmt.Errorf("property %q: %w", id, backend.ErrNotFound)
	}
	p := *f.property
	p.Locale = locale
	p.Name = i18n.Pick(locale, p.NameText)
	return &p, nil
}

type fakeSubmitter struct {
	mu       sync.Mutex
	payloads []contact.Request
	env      *backend.Envelope
	err      error
}

func (s *fakeSubmitter) AddContactUs(_ context.Context, payload interface{}) (*backend.Envelope, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.payloads = append(s.payloads, payload.(contact.Request))
	return s.env, s.err
}

func (s *fakeSubmitter) calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.payloads)
}

type fakeRecaptcha struct {
	err error
}

func (f fakeRecaptcha) Enabled() bool { return true }
func (f fakeRecaptcha) VerifyToken(context.Context, string, string) error {
	return f.err
}

type fakeLeads struct {
	leads chan contact.Request
}

func (f *fakeLeads) NotifyLead(_ context.Context, req contact.Request) error {
	f.leads <- req
	return nil
}

type fixture struct {
	router    *gin.Engine
	content   *fakeContent
	submitter *fakeSubmitter
	store     cache.Store
	leads     *fakeLeads
}

func newFixture(t *testing.T, recaptchaErr error) *fixture {
	t.Helper()

	f := &fixture{
		content: &fakeContent{
			pages: map[content.Type]*content.Page{
				content.About: {Type: content.About, Title: "About AVED", Body: template.HTML("<p>We build.</p>"), ImageURL: "/img/about.webp"},
			},
			property: &content.Property{
				ID:       "p1",
				NameText: i18n.Bilingual{Default: "Marina Tower", Arabic: "برج المارينا"},
			},
		},
		submitter: &fakeSubmitter{env: &backend.Envelope{ResponseCode: 200, ResponseMessage: "Thanks"}},
		store:     cache.NewMemoryStore(),
		leads:     &fakeLeads{leads: make(chan contact.Request, 4)},
	}

	site := Site{Support: views.Support{Email: "info@example.com", Phones: []string{"+966 50 000 0000"}}}
	pages := NewPageHandler(f.content, site)
	contactHandler := NewContactHandler(ContactDeps{
		Submitter: f.submitter,
		Content:   f.content,
		Guard:     service.NewSubmissionGuard(f.store, time.Minute),
		Recaptcha: fakeRecaptcha{err: recaptchaErr},
		Site:      site,
		Leads:     f.leads,
	})
	validation := middleware.NewValidationMiddleware()

	renderer, err := views.New()
	require.NoError(t, err)

	r := gin.New()
	r.HTMLRender = renderer
	r.Use(middleware.Locale(i18n.DefaultCatalog(), false))
	r.GET("/", pages.Home)
	r.GET("/about-us", pages.AboutUs)
	r.GET("/contact-us", pages.ContactUs)
	r.GET("/privacy-policy", pages.PrivacyPolicy)
	r.GET("/property/:id", pages.Property)
	r.POST("/contact-us", contactHandler.SubmitForm)
	r.POST("/property/:id/contact", contactHandler.SubmitPropertyForm)
	r.POST("/api/v1/contact/submit", validation.ValidateContactRequest(), contactHandler.Submit)
	r.POST("/api/v1/contact/validate", validation.ValidateFieldRequest(), contactHandler.Validate)
	r.GET("/api/v1/content/:type", NewContentHandler(f.content).Get)
	r.NoRoute(site.NotFound)
	f.router = r
	return f
}

func (f *fixture) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func jsonRequest(path string, body interface{}) *http.Request {
	data, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(string(data)))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func formRequest(path string, values url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string          `json:"code"`
		Message string          `json:"message"`
		Details json.RawMessage `json:"details"`
	} `json:"error"`
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return env
}

var validInquiry = map[string]string{
	"formId":  "form-1",
	"name":    "Sara Ali",
	"email":   "Sara@Example.com",
	"phone":   "+966 50 123 4567",
	"message": "Please call me back",
}

func TestSubmit_Success(t *testing.T) {
	f := newFixture(t, nil)

	rec := f.do(jsonRequest("/api/v1/contact/submit", validInquiry))

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.JSONEq(t, `{"success":true,"data":{"message":"Thanks","success":true,"formId":"form-1"}}`, rec.Body.String())
	require.Equal(t, 1, f.submitter.calls())
	assert.Equal(t, "sara@example.com", f.submitter.payloads[0].Email)
	assert.Empty(t, f.submitter.payloads[0].PropertyType)

	select {
	case lead := <-f.leads.leads:
		assert.Equal(t, "sara@example.com", lead.Email)
	case <-time.After(time.Second):
		t.Fatal("sales team was not notified")
	}
}

func TestSubmit_InvalidFieldsMakeNoCall(t *testing.T) {
	f := newFixture(t, nil)

	req := jsonRequest("/api/v1/contact/submit?lang=ar", map[string]string{"name": "S4ra", "email": "nope"})
	rec := f.do(req)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	env := decode(t, rec)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)

	var details []struct{ Field, Message string }
	require.NoError(t, json.Unmarshal(env.Error.Details, &details))
	require.Len(t, details, 4)
	assert.Equal(t, "name", details[0].Field)
	assert.Equal(t, "email", details[1].Field)
	assert.Equal(t, i18n.DefaultCatalog().T(i18n.Arabic, "contactSection.nameInvalid"), details[0].Message)
	assert.Zero(t, f.submitter.calls())
	assert.Empty(t, f.leads.leads)
}

func TestSubmit_RulesSeeInputAsTyped(t *testing.T) {
	f := newFixture(t, nil)

	body := map[string]string{}
	for k, v := range validInquiry {
		body[k] = v
	}
	body["name"] = " Sara"
	rec := f.do(jsonRequest("/api/v1/contact/submit", body))

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	var details []struct{ Field, Message string }
	require.NoError(t, json.Unmarshal(decode(t, rec).Error.Details, &details))
	require.Len(t, details, 1)
	assert.Equal(t, i18n.DefaultCatalog().T(i18n.English, "contactSection.nameInvalid"), details[0].Message)
	assert.Zero(t, f.submitter.calls())

	body["name"] = "Sara"
	body["message"] = "ab "
	rec = f.do(jsonRequest("/api/v1/contact/submit", body))

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.Equal(t, 1, f.submitter.calls())
	assert.Equal(t, "ab ", f.submitter.payloads[0].Message)
}

func TestValidate_AgreesWithSubmit(t *testing.T) {
	f := newFixture(t, nil)

	rec := f.do(jsonRequest("/api/v1/contact/validate", map[string]string{"field": "name", "value": "Sara  Ali"}))
	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Valid   bool   `json:"valid"`
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &resp))
	assert.False(t, resp.Valid)
	assert.Equal(t, i18n.DefaultCatalog().T(i18n.English, "contactSection.nameInvalid"), resp.Message)

	body := map[string]string{}
	for k, v := range validInquiry {
		body[k] = v
	}
	body["name"] = "Sara  Ali"
	rec = f.do(jsonRequest("/api/v1/contact/submit", body))
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	values := url.Values{"name": {"Sara  Ali"}, "email": {"sara@example.com"}, "phone": {"+966 50 123 4567"}, "message": {"Hello there"}}
	rec = f.do(formRequest("/contact-us", values))
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), i18n.DefaultCatalog().T(i18n.English, "contactSection.nameInvalid"))
	assert.Zero(t, f.submitter.calls())
}

func TestSubmit_MalformedBody(t *testing.T) {
	f := newFixture(t, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/contact/submit", strings.NewReader("{"))
	req.Header.Set("Content-Type", "application/json")
	rec := f.do(req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Zero(t, f.submitter.calls())
}

func TestSubmit_TowerWithProperty(t *testing.T) {
	f := newFixture(t, nil)

	body := map[string]string{
		"propertyId":   "p1",
		"propertyType": "tower",
		"unitNumber":   "12",
		"floorNumber":  "3",
	}
	for k, v := range validInquiry {
		body[k] = v
	}
	rec := f.do(jsonRequest("/api/v1/contact/submit?lang=ar", body))

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.Equal(t, 1, f.submitter.calls())
	payload := f.submitter.payloads[0]
	assert.Equal(t, "tower", payload.PropertyType)
	assert.Equal(t, "12", payload.UnitNumber)
	assert.Equal(t, "3", payload.FloorNumber)
	assert.Equal(t, "p1", payload.PropertyID)
	assert.Equal(t, "برج المارينا", payload.PropertyName)
}

func TestSubmit_VillaDropsTowerDetails(t *testing.T) {
	f := newFixture(t, nil)

	body := map[string]string{"propertyType": "villa", "unitNumber": "12", "floorNumber": "3"}
	for k, v := range validInquiry {
		body[k] = v
	}
	rec := f.do(jsonRequest("/api/v1/contact/submit", body))

	require.Equal(t, http.StatusOK, rec.Code)
	payload := f.submitter.payloads[0]
	assert.Equal(t, "villa", payload.PropertyType)
	assert.Empty(t, payload.UnitNumber)
	assert.Empty(t, payload.FloorNumber)
}

func TestSubmit_UnknownProperty(t *testing.T) {
	f := newFixture(t, nil)

	body := map[string]string{"propertyId": "missing"}
	for k, v := range validInquiry {
		body[k] = v
	}
	rec := f.do(jsonRequest("/api/v1/contact/submit", body))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Zero(t, f.submitter.calls())
}

func TestSubmit_BackendRejection(t *testing.T) {
	f := newFixture(t, nil)
	f.submitter.env = &backend.Envelope{ResponseCode: 400, ResponseMessage: "Duplicate inquiry"}

	rec := f.do(jsonRequest("/api/v1/contact/submit", validInquiry))

	require.Equal(t, http.StatusBadGateway, rec.Code)
	env := decode(t, rec)
	assert.Equal(t, "BAD_GATEWAY", env.Error.Code)
	assert.Equal(t, "Duplicate inquiry", env.Error.Message)
}

func TestSubmit_TransportErrorStaysPrivate(t *testing.T) {
	f := newFixture(t, nil)
	f.submitter.env = nil
	f.submitter.err = fmt.Errorf("%w: dial tcp 10.0.0.1:443: connection refused", backend.ErrTransport)

	rec := f.do(jsonRequest("/api/v1/contact/submit", validInquiry))

	require.Equal(t, http.StatusBadGateway, rec.Code)
	assert.NotContains(t, rec.Body.String(), "10.0.0.1")
	assert.Equal(t, i18n.DefaultCatalog().T(i18n.English, "contactSection.submitFailed"), decode(t, rec).Error.Message)
}

func TestSubmit_RecaptchaFailure(t *testing.T) {
	f := newFixture(t, fmt.Errorf("%w: score too low", service.ErrRecaptchaFailed))

	rec := f.do(jsonRequest("/api/v1/contact/submit", validInquiry))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Zero(t, f.submitter.calls())
}

func TestSubmit_HeldGuardConflicts(t *testing.T) {
	f := newFixture(t, nil)
	held, err := f.store.SetNX(context.Background(), cache.Key("submit", "form-1"), []byte("x"), time.Minute)
	require.NoError(t, err)
	require.True(t, held)

	rec := f.do(jsonRequest("/api/v1/contact/submit", validInquiry))

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "CONFLICT", decode(t, rec).Error.Code)
	assert.Zero(t, f.submitter.calls())
}

func TestSubmit_ReleasesGuard(t *testing.T) {
	f := newFixture(t, nil)

	require.Equal(t, http.StatusOK, f.do(jsonRequest("/api/v1/contact/submit", validInquiry)).Code)
	require.Equal(t, http.StatusOK, f.do(jsonRequest("/api/v1/contact/submit", validInquiry)).Code)
	assert.Equal(t, 2, f.submitter.calls())
}

func TestValidate(t *testing.T) {
	f := newFixture(t, nil)

	rec := f.do(jsonRequest("/api/v1/contact/validate?lang=ar", map[string]string{"field": "phone", "value": "12ab"}))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Field   string `json:"field"`
		Valid   bool   `json:"valid"`
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &resp))
	assert.Equal(t, "phone", resp.Field)
	assert.False(t, resp.Valid)
	assert.Equal(t, i18n.DefaultCatalog().T(i18n.Arabic, "contactSection.phoneInvalid"), resp.Message)

	rec = f.do(jsonRequest("/api/v1/contact/validate", map[string]string{"field": "unitNumber", "value": ""}))
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &resp))
	assert.True(t, resp.Valid)

	rec = f.do(jsonRequest("/api/v1/contact/validate", map[string]string{"field": "age", "value": "3"}))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestContent_Get(t *testing.T) {
	f := newFixture(t, nil)

	rec := f.do(httptest.NewRequest(http.MethodGet, "/api/v1/content/about?lang=ar", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var page content.Page
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &page))
	assert.Equal(t, "About AVED", page.Title)
	assert.Equal(t, i18n.Arabic, page.Locale)
	assert.Equal(t, i18n.RTL, page.Dir)

	assert.Equal(t, http.StatusNotFound, f.do(httptest.NewRequest(http.MethodGet, "/api/v1/content/blog", nil)).Code)
	assert.Equal(t, http.StatusNotFound, f.do(httptest.NewRequest(http.MethodGet, "/api/v1/content/privacyPolicy", nil)).Code)

	f.content.pageErr = fmt.Errorf("%w: timeout", backend.ErrTransport)
	assert.Equal(t, http.StatusBadGateway, f.do(httptest.NewRequest(http.MethodGet, "/api/v1/content/about", nil)).Code)
}

func TestPages_Render(t *testing.T) {
	f := newFixture(t, nil)

	rec := f.do(httptest.NewRequest(http.MethodGet, "/about-us?lang=ar", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `dir="rtl"`)
	assert.Contains(t, body, "<p>We build.</p>")
	assert.Contains(t, body, "/img/about.webp")

	rec = f.do(httptest.NewRequest(http.MethodGet, "/privacy-policy", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Privacy Policy")
	assert.Contains(t, rec.Body.String(), i18n.DefaultCatalog().T(i18n.English, "pages.contentUnavailable"))
}

func TestPages_ContentFailureUsesFallback(t *testing.T) {
	f := newFixture(t, nil)
	f.content.pageErr = errors.New("backend down")

	rec := f.do(httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), content.DefaultAboutImage)
}

func TestPages_ContactUsPrefillsReturningVisitor(t *testing.T) {
	f := newFixture(t, nil)

	// A successful submission stores the visitor profile
	values := url.Values{"form_id": {"form-9"}, "name": {"Sara Ali"}, "email": {"sara@example.com"}, "phone": {"+966 50 123 4567"}, "message": {"Hello there"}}
	rec := f.do(formRequest("/contact-us", values))
	require.Equal(t, http.StatusOK, rec.Code)

	var visitor *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == constants.CookieVisitor {
			visitor = c
		}
	}
	require.NotNil(t, visitor)
	assert.True(t, visitor.HttpOnly)

	req := httptest.NewRequest(http.MethodGet, "/contact-us", nil)
	req.AddCookie(visitor)
	rec = f.do(req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `value="Sara Ali"`)
	assert.Contains(t, rec.Body.String(), `value="sara@example.com"`)
	assert.Contains(t, rec.Body.String(), `name="form_id"`)
}

func TestSubmitForm_SuccessResetsForm(t *testing.T) {
	f := newFixture(t, nil)

	values := url.Values{"form_id": {"form-9"}, "name": {"Sara Ali"}, "email": {"sara@example.com"}, "phone": {"+966 50 123 4567"}, "message": {"Hello there"}}
	rec := f.do(formRequest("/contact-us", values))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "notice-success")
	assert.Contains(t, body, "Thanks")
	assert.NotContains(t, body, "Hello there")
	assert.NotContains(t, body, `value="form-9"`)
	assert.Equal(t, 1, f.submitter.calls())
}

func TestSubmitForm_InvalidKeepsValues(t *testing.T) {
	f := newFixture(t, nil)

	values := url.Values{"form_id": {"form-9"}, "name": {"Sara Ali"}, "email": {"bad"}, "message": {"Hello there"}, "propertyType": {"tower"}, "unitNumber": {"7"}}
	rec := f.do(formRequest("/contact-us", values))

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	body := rec.Body.String()
	catalog := i18n.DefaultCatalog()
	assert.Contains(t, body, catalog.T(i18n.English, "contactSection.emailInvalid"))
	assert.Contains(t, body, catalog.T(i18n.English, "contactSection.phoneRequired"))
	assert.Contains(t, body, "Hello there")
	assert.Contains(t, body, `value="form-9"`)
	assert.Contains(t, body, `value="7"`)
	assert.Contains(t, body, `<option value="tower" selected>`)
	assert.Zero(t, f.submitter.calls())
}

func TestSubmitForm_FailureKeepsValues(t *testing.T) {
	f := newFixture(t, nil)
	f.submitter.env = &backend.Envelope{ResponseCode: 500, ResponseMessage: "Try later"}

	values := url.Values{"form_id": {"form-9"}, "name": {"Sara Ali"}, "email": {"sara@example.com"}, "phone": {"+966 50 123 4567"}, "message": {"Hello there"}}
	rec := f.do(formRequest("/contact-us", values))

	require.Equal(t, http.StatusBadGateway, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "notice-error")
	assert.Contains(t, body, "Try later")
	assert.Contains(t, body, "Hello there")
}

func TestPropertyPage(t *testing.T) {
	f := newFixture(t, nil)

	rec := f.do(httptest.NewRequest(http.MethodGet, "/property/p1?lang=ar", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "برج المارينا")
	assert.Contains(t, body, `action="/property/p1/contact"`)

	rec = f.do(httptest.NewRequest(http.MethodGet, "/property/missing", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSubmitPropertyForm(t *testing.T) {
	f := newFixture(t, nil)

	values := url.Values{"form_id": {"form-3"}, "name": {"Sara Ali"}, "email": {"sara@example.com"}, "phone": {"+966 50 123 4567"}, "message": {"Hello there"}, "propertyType": {"tower"}, "unitNumber": {"12"}}
	rec := f.do(formRequest("/property/p1/contact", values))

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.Equal(t, 1, f.submitter.calls())
	payload := f.submitter.payloads[0]
	assert.Equal(t, "p1", payload.PropertyID)
	assert.Equal(t, "Marina Tower", payload.PropertyName)
	assert.Equal(t, "12", payload.UnitNumber)
	assert.Empty(t, payload.FloorNumber)
}

func TestNotFound(t *testing.T) {
	f := newFixture(t, nil)

	rec := f.do(httptest.NewRequest(http.MethodGet, "/api/v1/nothing", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "NOT_FOUND", decode(t, rec).Error.Code)

	rec = f.do(httptest.NewRequest(http.MethodGet, "/nothing", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), i18n.DefaultCatalog().T(i18n.English, "pages.notFound"))
}

type failingPinger struct{}

func (failingPinger) Ping(context.Context) error { return errors.New("connection refused") }

func TestHealth(t *testing.T) {
	r := gin.New()
	r.GET("/ok", NewHealthHandler(cache.NewMemoryStore()).Check)
	r.GET("/down", NewHealthHandler(failingPinger{}).Check)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ok", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/down", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"degraded"`)
}
