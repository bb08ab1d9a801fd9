package contact

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/aved-sa/aved-web/internal/backend"
	"github.com/aved-sa/aved-web/internal/i18n"
	"github.com/aved-sa/aved-web/internal/logging"
	"github.com/aved-sa/aved-web/internal/metrics"
)

var (
	// ErrSubmissionInProgress is returned by Submit while an earlier call is pending.
	ErrSubmissionInProgress = errors.New("submission already in progress")
	// ErrFormLocked is returned by Set and Blur while a submission is pending.
	ErrFormLocked = errors.New("form is locked while submitting")
	// ErrInvalidForm is returned by Submit when a required field fails validation.
	ErrInvalidForm = errors.New("contact form has invalid fields")
)

// State of the submission state machine.
type State int

const (
	StateIdle State = iota
	StateSubmitting
	StateSuccess
	StateFailure
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSubmitting:
		return "submitting"
	case StateSuccess:
		return "success"
	case StateFailure:
		return "failure"
	default:
		return "unknown"
	}
}

// Submitter delivers an inquiry. *backend.Client implements it.
type Submitter interface {
	AddContactUs(ctx context.Context, payload interface{}) (*backend.Envelope, error)
}

// Notifier shows the outcome of a submission to the visitor.
type Notifier interface {
	Success(message string)
	Error(message string)
}

type nopNotifier struct{}

func (nopNotifier) Success(string) {}
func (nopNotifier) Error(string)   {}

// Outcome describes how a Submit call ended. State is StateSuccess or
// StateFailure after a backend call and StateIdle when validation blocked it.
type Outcome struct {
	State   State
	Message string
	Errors  Violations
	Request *Request
	// Cause is the transport error behind a failure, for logs only.
	Cause error
}

// Controller runs the submission workflow of one form: validate, build the
// payload, submit once, report and reset. It is safe for concurrent use.
type Controller struct {
	mu    sync.Mutex
	form  *Form
	state State

	submitter Submitter
	notifier  Notifier
	localizer i18n.Localizer
	logger    *logging.Logger
	metrics   *metrics.Metrics
	source    string
}

// ControllerOption customizes a Controller.
type ControllerOption func(*Controller)

func WithNotifier(n Notifier) ControllerOption {
	return func(c *Controller) { c.notifier = n }
}

// WithLocalizer selects the language of notifications and the property name.
func WithLocalizer(l i18n.Localizer) ControllerOption {
	return func(c *Controller) { c.localizer = l }
}

func WithLogger(l *logging.Logger) ControllerOption {
	return func(c *Controller) { c.logger = l }
}

// WithMetrics records outcomes under source ("web", "api" or "cli").
func WithMetrics(m *metrics.Metrics, source string) ControllerOption {
	return func(c *Controller) {
		c.metrics = m
		c.source = source
	}
}

func NewController(form *Form, submitter Submitter, opts ...ControllerOption) *Controller {
	c := &Controller{
		form:      form,
		state:     StateIdle,
		submitter: submitter,
		notifier:  nopNotifier{},
		localizer: i18n.DefaultCatalog().Localizer(i18n.Default),
		logger:    logging.GetLogger(),
		source:    "web",
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Controller) FormID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.form.ID()
}

func (c *Controller) Values() Values {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.form.Values()
}

func (c *Controller) Errors() Violations {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.form.Errors()
}

// Visible reports whether field is currently rendered.
func (c *Controller) Visible(field Field) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.form.Visible(field)
}

// Set updates one input. Input is rejected while submitting.
func (c *Controller) Set(field Field, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == StateSubmitting {
		return ErrFormLocked
	}
	return c.form.Set(field, value)
}

// Blur validates one field as the visitor leaves it.
func (c *Controller) Blur(field Field) (*Violation, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == StateSubmitting {
		return nil, ErrFormLocked
	}
	return c.form.Blur(field), nil
}

// Validate checks every required field without submitting.
func (c *Controller) Validate() (Violations, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == StateSubmitting {
		return nil, ErrFormLocked
	}
	return c.form.Validate(), nil
}

// Property returns the listing the form belongs to, if any.
func (c *Controller) Property() *PropertyRef {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.form.Property()
}

// Submit validates the form and, when every required field passes, sends
// exactly one inquiry. A call made while another is pending returns
// ErrSubmissionInProgress without side effects. Backend and transport
// failures are reported through the Outcome, not the error.
func (c *Controller) Submit(ctx context.Context) (Outcome, error) {
	c.mu.Lock()
	if c.state == StateSubmitting {
		c.mu.Unlock()
		c.metrics.ObserveSubmission(c.source, metrics.OutcomeDuplicate)
		return Outcome{State: StateSubmitting}, ErrSubmissionInProgress
	}
	if violations := c.form.Validate(); len(violations) > 0 {
		c.mu.Unlock()
		c.metrics.ObserveSubmission(c.source, metrics.OutcomeInvalid)
		return Outcome{State: StateIdle, Errors: violations}, ErrInvalidForm
	}
	req := c.form.Request(c.localizer.Locale())
	formID := c.form.ID()
	c.state = StateSubmitting
	c.mu.Unlock()

	start := time.Now()
	env, err := c.submitter.AddContactUs(ctx, req)
	c.metrics.ObserveSubmissionDuration(time.Since(start))
	if err == nil && env == nil {
		err = errors.New("empty backend response")
	}

	outcome := Outcome{Request: &req}
	switch {
	case err != nil:
		c.logger.Error("Contact submission %s failed: %v", formID, err)
		outcome.State = StateFailure
		outcome.Message = c.localizer.T("contactSection.submitFailed")
		outcome.Cause = err
	case !env.OK():
		c.logger.Warn("Contact submission %s rejected with code %d: %s", formID, env.ResponseCode, env.ResponseMessage)
		outcome.State = StateFailure
		outcome.Message = env.ResponseMessage
		if outcome.Message == "" {
			outcome.Message = c.localizer.T("contactSection.submitFailed")
		}
	default:
		outcome.State = StateSuccess
		outcome.Message = env.ResponseMessage
		if outcome.Message == "" {
			outcome.Message = c.localizer.T("contactSection.submitSuccess")
		}
	}

	c.mu.Lock()
	c.state = outcome.State
	if outcome.State == StateSuccess {
		c.form.Reset()
	}
	c.mu.Unlock()

	if outcome.State == StateSuccess {
		c.metrics.ObserveSubmission(c.source, metrics.OutcomeSuccess)
		c.notifier.Success(outcome.Message)
	} else {
		c.metrics.ObserveSubmission(c.source, metrics.OutcomeFailure)
		c.notifier.Error(outcome.Message)
	}

	// The notification acknowledges the terminal state.
	c.mu.Lock()
	if c.state == outcome.State {
		c.state = StateIdle
	}
	c.mu.Unlock()

	return outcome, nil
}
