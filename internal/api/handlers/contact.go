package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"time"

	"github.com/aved-sa/aved-web/internal/api/constants"
	"github.com/aved-sa/aved-web/internal/api/dto/common"
	contactdto "github.com/aved-sa/aved-web/internal/api/dto/v1/contact"
	"github.com/aved-sa/aved-web/internal/api/middleware"
	"github.com/aved-sa/aved-web/internal/api/sanitization"
	"github.com/aved-sa/aved-web/internal/api/validation"
	"github.com/aved-sa/aved-web/internal/api/views"
	"github.com/aved-sa/aved-web/internal/backend"
	"github.com/aved-sa/aved-web/internal/contact"
	"github.com/aved-sa/aved-web/internal/content"
	"github.com/aved-sa/aved-web/internal/i18n"
	"github.com/aved-sa/aved-web/internal/logging"
	"github.com/aved-sa/aved-web/internal/metrics"
	"github.com/aved-sa/aved-web/internal/service"
	"github.com/aved-sa/aved-web/internal/utils"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const contactAction = "/contact-us"

const leadNotifyTimeout = 15 * time.Second

func propertyAction(id string) string {
	return "/property/" + url.PathEscape(id) + "/contact"
}

// Submission sources for metrics
const (
	sourceWeb = "web"
	sourceAPI = "api"
)

// SubmissionGuard admits one outstanding submission per form id.
// *service.SubmissionGuard implements it.
type SubmissionGuard interface {
	Acquire(ctx context.Context, formID string) (func(), error)
}

// LeadNotifier alerts the sales team about an accepted inquiry.
// *service.TelegramService implements it.
type LeadNotifier interface {
	NotifyLead(ctx context.Context, req contact.Request) error
}

// ContactDeps are the collaborators of ContactHandler
type ContactDeps struct {
	Submitter contact.Submitter
	Content   ContentSource
	Guard     SubmissionGuard
	Recaptcha service.RecaptchaVerifier
	Metrics   *metrics.Metrics
	Site      Site
	// Leads is told about accepted inquiries. Optional.
	Leads LeadNotifier
}

type ContactHandler struct {
	submitter contact.Submitter
	content   ContentSource
	guard     SubmissionGuard
	recaptcha service.RecaptchaVerifier
	metrics   *metrics.Metrics
	site      Site
	leads     LeadNotifier
	logger    *logging.Logger
}

func NewContactHandler(deps ContactDeps) *ContactHandler {
	return &ContactHandler{
		submitter: deps.Submitter,
		content:   deps.Content,
		guard:     deps.Guard,
		recaptcha: deps.Recaptcha,
		metrics:   deps.Metrics,
		site:      deps.Site,
		leads:     deps.Leads,
		logger:    logging.GetLogger(),
	}
}

type submission struct {
	formID         string
	inputs         map[contact.Field]string
	prefill        contact.Prefill
	property       *contact.PropertyRef
	recaptchaToken string
	source         string
}

// process runs one submission: fill a form, validate it, verify reCAPTCHA,
// claim the form id and hand over to the controller. The returned error is
// contact.ErrInvalidForm, service.ErrRecaptchaFailed or
// contact.ErrSubmissionInProgress when the backend was not called.
func (h *ContactHandler) process(c *gin.Context, s submission) (*contact.Controller, contact.Outcome, error) {
	ctx := c.Request.Context()
	l := middleware.GetLocalizer(c)

	form := contact.NewForm(s.prefill, contact.WithFormID(s.formID), contact.WithProperty(s.property))
	ctrl := contact.NewController(form, h.submitter,
		contact.WithLocalizer(l),
		contact.WithLogger(h.logger),
		contact.WithMetrics(h.metrics, s.source),
	)
	for _, f := range contact.Fields {
		if err := ctrl.Set(f, s.inputs[f]); err != nil {
			return ctrl, contact.Outcome{}, err
		}
	}

	violations, err := ctrl.Validate()
	if err != nil {
		return ctrl, contact.Outcome{}, err
	}
	if len(violations) > 0 {
		h.metrics.ObserveSubmission(s.source, metrics.OutcomeInvalid)
		return ctrl, contact.Outcome{State: contact.StateIdle, Errors: violations}, contact.ErrInvalidForm
	}

	if err := h.recaptcha.VerifyToken(ctx, s.recaptchaToken, utils.GetRealIP(c)); err != nil {
		h.logger.Warn("Contact submission %s rejected: %v", ctrl.FormID(), err)
		h.metrics.ObserveSubmission(s.source, metrics.OutcomeRejected)
		return ctrl, contact.Outcome{State: contact.StateIdle}, err
	}

	release, err := h.guard.Acquire(ctx, ctrl.FormID())
	switch {
	case errors.Is(err, contact.ErrSubmissionInProgress):
		h.metrics.ObserveSubmission(s.source, metrics.OutcomeDuplicate)
		return ctrl, contact.Outcome{State: contact.StateSubmitting}, err
	case err != nil:
		// The cache is down; the per-request controller still sends once.
		h.logger.Warn("Submitting form %s without guard: %v", ctrl.FormID(), err)
	default:
		defer release()
	}

	outcome, err := ctrl.Submit(ctx)
	trace.SpanFromContext(ctx).SetAttributes(
		attribute.String("contact.form_id", ctrl.FormID()),
		attribute.String("contact.source", s.source),
		attribute.String("contact.state", outcome.State.String()),
	)
	if outcome.State == contact.StateSuccess && outcome.Request != nil {
		h.notifyLead(ctx, ctrl.FormID(), *outcome.Request)
	}
	return ctrl, outcome, err
}

func (h *ContactHandler) notifyLead(ctx context.Context, formID string, req contact.Request) {
	if h.leads == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), leadNotifyTimeout)
	go func() {
		defer cancel()
		if err := h.leads.NotifyLead(ctx, req); err != nil {
			h.logger.Warn("Failed to notify sales about submission %s: %v", formID, err)
		}
	}()
}

// propertyRef resolves the listing a submission is about. Unknown ids yield
// backend.ErrNotFound; other lookup failures keep the id without a name.
func (h *ContactHandler) propertyRef(ctx context.Context, id string, locale i18n.Locale) (*content.Property, error) {
	property, err := h.content.Property(ctx, id, locale)
	if errors.Is(err, backend.ErrNotFound) {
		return nil, err
	}
	if err != nil {
		h.logger.Warn("Submitting inquiry for property %s without its name: %v", id, err)
		return &content.Property{ID: id, Locale: locale}, nil
	}
	return property, nil
}

func propertyRef(p *content.Property) *contact.PropertyRef {
	if p == nil {
		return nil
	}
	return &contact.PropertyRef{ID: p.ID, Name: p.NameText}
}

func propertyTitle(l i18n.Localizer, p *content.Property) string {
	if p.Name != "" {
		return p.Name
	}
	return l.T("pages.property")
}

func reserveTitle(l i18n.Localizer, p *content.Property) string {
	if p.Name == "" {
		return l.T("contactSection.generalTitle")
	}
	return l.T("contactSection.reserveUnit") + " " + p.Name
}

// Submit handles the JSON contact endpoint
func (h *ContactHandler) Submit(c *gin.Context) {
	// Get contact data from context (set by validation middleware)
	contactData, exists := c.Get(constants.ContextKeyContact)
	if !exists {
		utils.HandleAPIError(c, nil, http.StatusInternalServerError, common.ErrCodeInternalServer, "Contact data not found in context")
		return
	}
	req, ok := contactData.(*contactdto.ContactRequest)
	if !ok {
		utils.HandleAPIError(c, nil, http.StatusInternalServerError, common.ErrCodeInternalServer, "Invalid contact data format")
		return
	}

	l := middleware.GetLocalizer(c)

	var property *contact.PropertyRef
	if req.PropertyID != "" {
		p, err := h.propertyRef(c.Request.Context(), req.PropertyID, l.Locale())
		if err != nil {
			utils.HandleAPIError(c, nil, http.StatusNotFound, common.ErrCodeNotFound, l.T("pages.notFound"))
			return
		}
		property = propertyRef(p)
	}

	ctrl, outcome, err := h.process(c, submission{
		formID: req.FormID,
		inputs: map[contact.Field]string{
			contact.FieldName:         req.Name,
			contact.FieldEmail:        req.Email,
			contact.FieldPhone:        req.Phone,
			contact.FieldMessage:      req.Message,
			contact.FieldPropertyType: req.PropertyType,
			contact.FieldUnitNumber:   req.UnitNumber,
			contact.FieldFloorNumber:  req.FloorNumber,
		},
		property:       property,
		recaptchaToken: req.RecaptchaToken,
		source:         sourceAPI,
	})

	switch {
	case errors.Is(err, contact.ErrInvalidForm):
		utils.HandleValidationError(c, "Validation failed", validation.FormatViolations(outcome.Errors, l))
	case errors.Is(err, service.ErrRecaptchaFailed):
		utils.HandleAPIError(c, nil, http.StatusBadRequest, common.ErrCodeBadRequest, l.T("contactSection.recaptchaFailed"))
	case errors.Is(err, contact.ErrSubmissionInProgress):
		utils.HandleAPIError(c, nil, http.StatusConflict, common.ErrCodeConflict, l.T("contactSection.submitInProgress"))
	case err != nil:
		utils.HandleAPIError(c, err, http.StatusInternalServerError, common.ErrCodeInternalServer, "Failed to send message")
	case outcome.State != contact.StateSuccess:
		// Transport detail was logged by the controller and stays private.
		utils.HandleAPIError(c, nil, http.StatusBadGateway, common.ErrCodeBadGateway, outcome.Message)
	default:
		utils.HandleSuccess(c, contactdto.ContactResponse{
			Message: outcome.Message,
			Success: true,
			FormID:  ctrl.FormID(),
		})
	}
}

// Validate checks a single field, e.g. when the visitor leaves an input
func (h *ContactHandler) Validate(c *gin.Context) {
	data, exists := c.Get(constants.ContextKeyValidateField)
	if !exists {
		utils.HandleAPIError(c, nil, http.StatusInternalServerError, common.ErrCodeInternalServer, "Field data not found in context")
		return
	}
	req, ok := data.(*contactdto.ValidateFieldRequest)
	if !ok {
		utils.HandleAPIError(c, nil, http.StatusInternalServerError, common.ErrCodeInternalServer, "Invalid field data format")
		return
	}

	field, ok := contact.ParseField(req.Field)
	if !ok {
		utils.HandleAPIError(c, nil, http.StatusBadRequest, common.ErrCodeBadRequest, "Unknown field")
		return
	}

	resp := contactdto.ValidateFieldResponse{Field: req.Field, Valid: true}
	if v := contact.DefaultRules().Check(field, req.Value); v != nil {
		resp.Valid = false
		resp.Message = v.Message(middleware.GetLocalizer(c))
	}
	utils.HandleSuccess(c, resp)
}

// SubmitForm handles the contact page form post
func (h *ContactHandler) SubmitForm(c *gin.Context) {
	l := middleware.GetLocalizer(c)

	status, form := h.submitForm(c, nil)
	form.Title = l.T("contactSection.generalTitle")
	form.Action = contactAction
	c.HTML(status, views.PageContact, views.ContactPage{
		Layout: h.site.layout(c, l.T("nav.contactUs")),
		Form:   form,
	})
}

// SubmitPropertyForm handles the reservation form of a property page
func (h *ContactHandler) SubmitPropertyForm(c *gin.Context) {
	l := middleware.GetLocalizer(c)
	id := c.Param("id")

	property, err := h.propertyRef(c.Request.Context(), id, l.Locale())
	if err != nil {
		h.site.renderError(c, http.StatusNotFound, "pages.notFound", "")
		return
	}

	status, form := h.submitForm(c, property)
	form.Title = reserveTitle(l, property)
	form.Action = propertyAction(id)
	c.HTML(status, views.PageProperty, views.PropertyPage{
		Layout:   h.site.layout(c, propertyTitle(l, property)),
		Property: property,
		Form:     form,
	})
}

// submitForm runs an HTML submission and returns the status and form state
// to re-render the page with.
func (h *ContactHandler) submitForm(c *gin.Context, property *content.Property) (int, views.ContactForm) {
	l := middleware.GetLocalizer(c)
	prefill := readPrefill(c)

	inputs := make(map[contact.Field]string, len(contact.Fields))
	for _, f := range contact.Fields {
		inputs[f] = validation.CleanField(f, c.PostForm(string(f)))
	}

	ctrl, outcome, err := h.process(c, submission{
		formID:         sanitization.SanitizeString(c.PostForm(constants.FormFieldFormID)),
		inputs:         inputs,
		prefill:        prefill,
		property:       propertyRef(property),
		recaptchaToken: c.PostForm(constants.FormFieldRecaptcha),
		source:         sourceWeb,
	})

	status := http.StatusOK
	var notice *views.Notice
	switch {
	case errors.Is(err, contact.ErrInvalidForm):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, service.ErrRecaptchaFailed):
		status = http.StatusBadRequest
		notice = &views.Notice{Kind: views.NoticeError, Message: l.T("contactSection.recaptchaFailed")}
	case errors.Is(err, contact.ErrSubmissionInProgress):
		status = http.StatusConflict
		notice = &views.Notice{Kind: views.NoticeInfo, Message: l.T("contactSection.submitInProgress")}
	case err != nil:
		h.logger.Error("Contact form submission failed: %v", err)
		status = http.StatusInternalServerError
		notice = &views.Notice{Kind: views.NoticeError, Message: l.T("contactSection.submitFailed")}
	case outcome.State != contact.StateSuccess:
		status = http.StatusBadGateway
		notice = &views.Notice{Kind: views.NoticeError, Message: outcome.Message}
	default:
		// Remember the visitor and start a fresh form
		prefill = contact.Prefill{Name: outcome.Request.Name, Email: outcome.Request.Email}
		writePrefill(c, prefill, h.site.SecureCookies)
		ctrl = contact.NewController(contact.NewForm(prefill, contact.WithProperty(propertyRef(property))), nil)
		notice = &views.Notice{Kind: views.NoticeSuccess, Message: outcome.Message}
	}

	return status, views.NewContactForm(ctrl, l, "", "", notice)
}
