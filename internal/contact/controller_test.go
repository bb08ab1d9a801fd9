package contact

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/aved-sa/aved-web/internal/backend"
	"github.com/aved-sa/aved-web/internal/i18n"
	"github.com/aved-sa/aved-web/internal/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSubmitter struct {
	mu       sync.Mutex
	payloads []json.RawMessage
	env      *backend.Envelope
	err      error
	started  chan struct{}
	release  chan struct{}
}

func (s *fakeSubmitter) AddContactUs(_ context.Context, payload interface{}) (*backend.Envelope, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.payloads = append(s.payloads, data)
	s.mu.Unlock()

	if s.started != nil {
		s.started <- struct{}{}
	}
	if s.release != nil {
		<-s.release
	}
	return s.env, s.err
}

func (s *fakeSubmitter) calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.payloads)
}

func (s *fakeSubmitter) lastPayload(t *testing.T) map[string]interface{} {
	t.Helper()
	s.mu.Lock()
	defer s.mu.Unlock()
	require.NotEmpty(t, s.payloads)
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(s.payloads[len(s.payloads)-1], &out))
	return out
}

type recordingNotifier struct {
	successes []string
	errors    []string
}

func (n *recordingNotifier) Success(msg string) { n.successes = append(n.successes, msg) }
func (n *recordingNotifier) Error(msg string)   { n.errors = append(n.errors, msg) }

func newController(sub Submitter, n Notifier, locale i18n.Locale, opts ...FormOption) *Controller {
	return NewController(NewForm(Prefill{}, opts...), sub,
		WithNotifier(n),
		WithLocalizer(i18n.DefaultCatalog().Localizer(locale)),
		WithLogger(logging.Nop()),
	)
}

func fillValid(t *testing.T, c *Controller) {
	t.Helper()
	for field, value := range map[Field]string{
		FieldName:    "John Doe",
		FieldEmail:   "JOHN@EX.COM",
		FieldPhone:   "0501234567",
		FieldMessage: "Hello there",
	} {
		require.NoError(t, c.Set(field, value))
	}
}

func TestController_ScenarioA_PlainInquiry(t *testing.T) {
	sub := &fakeSubmitter{env: &backend.Envelope{ResponseCode: 200, ResponseMessage: "Thank you"}}
	notifier := &recordingNotifier{}
	c := newController(sub, notifier, i18n.English)
	fillValid(t, c)

	outcome, err := c.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StateSuccess, outcome.State)
	assert.Equal(t, "Thank you", outcome.Message)
	assert.Equal(t, []string{"Thank you"}, notifier.successes)

	payload := sub.lastPayload(t)
	assert.Equal(t, "john@ex.com", payload["email"])
	assert.Equal(t, "John Doe", payload["name"])
	for _, k := range []string{"propertyType", "unitNumber", "floorNumber"} {
		assert.NotContains(t, payload, k)
	}

	// Fields reset after success.
	assert.Equal(t, StateIdle, c.State())
	assert.Equal(t, Values{Selection: NoSelection{}}, c.Values())
}

func TestController_ScenarioB_TowerInquiry(t *testing.T) {
	sub := &fakeSubmitter{env: &backend.Envelope{ResponseCode: 200, ResponseMessage: "ok"}}
	c := newController(sub, &recordingNotifier{}, i18n.English)
	fillValid(t, c)
	require.NoError(t, c.Set(FieldPropertyType, "tower"))
	require.NoError(t, c.Set(FieldUnitNumber, "12"))
	require.NoError(t, c.Set(FieldFloorNumber, "3"))

	_, err := c.Submit(context.Background())
	require.NoError(t, err)

	payload := sub.lastPayload(t)
	assert.Equal(t, "tower", payload["propertyType"])
	assert.Equal(t, "12", payload["unitNumber"])
	assert.Equal(t, "3", payload["floorNumber"])
}

func TestController_ScenarioC_BackendFailureKeepsValues(t *testing.T) {
	sub := &fakeSubmitter{env: &backend.Envelope{ResponseCode: 500, ResponseMessage: "Server error"}}
	notifier := &recordingNotifier{}
	c := newController(sub, notifier, i18n.English)
	fillValid(t, c)
	before := c.Values()

	outcome, err := c.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StateFailure, outcome.State)
	assert.Equal(t, []string{"Server error"}, notifier.errors)
	assert.Empty(t, notifier.successes)
	assert.Equal(t, before, c.Values())
	assert.Equal(t, StateIdle, c.State())

	// A manual retry goes out again.
	sub.env = &backend.Envelope{ResponseCode: 200}
	outcome, err = c.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StateSuccess, outcome.State)
	assert.Equal(t, 2, sub.calls())
}

func TestController_ScenarioD_OneOutstandingSubmission(t *testing.T) {
	sub := &fakeSubmitter{
		env:     &backend.Envelope{ResponseCode: 200},
		started: make(chan struct{}, 1),
		release: make(chan struct{}),
	}
	c := newController(sub, &recordingNotifier{}, i18n.English)
	fillValid(t, c)

	done := make(chan Outcome, 1)
	go func() {
		outcome, err := c.Submit(context.Background())
		assert.NoError(t, err)
		done <- outcome
	}()

	select {
	case <-sub.started:
	case <-time.After(2 * time.Second):
		t.Fatal("first submission never reached the backend")
	}
	assert.Equal(t, StateSubmitting, c.State())

	_, err := c.Submit(context.Background())
	assert.ErrorIs(t, err, ErrSubmissionInProgress)
	assert.ErrorIs(t, c.Set(FieldName, "Someone Else"), ErrFormLocked)
	_, err = c.Blur(FieldName)
	assert.ErrorIs(t, err, ErrFormLocked)

	close(sub.release)
	select {
	case outcome := <-done:
		assert.Equal(t, StateSuccess, outcome.State)
	case <-time.After(2 * time.Second):
		t.Fatal("first submission never finished")
	}

	assert.Equal(t, 1, sub.calls())
	assert.Equal(t, StateIdle, c.State())
}

func TestController_TransportErrorShowsGenericMessage(t *testing.T) {
	sub := &fakeSubmitter{err: errors.New("dial tcp: connection refused")}
	notifier := &recordingNotifier{}
	c := newController(sub, notifier, i18n.Arabic)
	fillValid(t, c)

	outcome, err := c.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StateFailure, outcome.State)
	assert.Equal(t, "تعذر إرسال رسالتك. يرجى المحاولة مرة أخرى.", outcome.Message)
	assert.NotContains(t, outcome.Message, "connection refused")
	assert.Error(t, outcome.Cause)
	assert.Equal(t, "John Doe", c.Values().Name)
}

func TestController_FailureWithoutServerMessage(t *testing.T) {
	sub := &fakeSubmitter{env: &backend.Envelope{ResponseCode: 400}}
	c := newController(sub, &recordingNotifier{}, i18n.English)
	fillValid(t, c)

	outcome, err := c.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "We could not send your message. Please try again.", outcome.Message)
}

func TestController_InvalidFormMakesNoCall(t *testing.T) {
	sub := &fakeSubmitter{env: &backend.Envelope{ResponseCode: 200}}
	c := newController(sub, &recordingNotifier{}, i18n.English)
	require.NoError(t, c.Set(FieldName, "12345"))
	require.NoError(t, c.Set(FieldMessage, "hi"))

	outcome, err := c.Submit(context.Background())
	assert.ErrorIs(t, err, ErrInvalidForm)
	assert.Equal(t, StateIdle, outcome.State)
	assert.Equal(t, 0, sub.calls())
	assert.Equal(t, "contactSection.nameInvalid", outcome.Errors[FieldName].Key)
	assert.Equal(t, "contactSection.messageMin", outcome.Errors[FieldMessage].Key)
	assert.Contains(t, outcome.Errors, FieldEmail)
	assert.Contains(t, outcome.Errors, FieldPhone)
	assert.Equal(t, outcome.Errors, c.Errors())
}

func TestController_PropertyContext(t *testing.T) {
	sub := &fakeSubmitter{env: &backend.Envelope{ResponseCode: 200}}
	ref := &PropertyRef{ID: "p1", Name: i18n.Bilingual{Default: "Sky Tower", Arabic: "برج السماء"}}
	c := newController(sub, &recordingNotifier{}, i18n.Arabic, WithProperty(ref), WithFormID("form-1"))
	fillValid(t, c)

	outcome, err := c.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "تم إرسال رسالتك. سنتواصل معك قريباً.", outcome.Message)
	assert.Equal(t, "form-1", c.FormID())

	payload := sub.lastPayload(t)
	assert.Equal(t, "p1", payload["propertyId"])
	assert.Equal(t, "برج السماء", payload["propertyName"])
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "idle", StateIdle.String())
	assert.Equal(t, "submitting", StateSubmitting.String())
	assert.Equal(t, "success", StateSuccess.String())
	assert.Equal(t, "failure", StateFailure.String())
	assert.Equal(t, "unknown", State(42).String())
}

func TestController_ValidateWithoutSubmitting(t *testing.T) {
	sub := &fakeSubmitter{env: &backend.Envelope{ResponseCode: 200}}
	c := newController(sub, &recordingNotifier{}, i18n.English)

	violations, err := c.Validate()
	require.NoError(t, err)
	assert.Len(t, violations, len(RequiredFields))
	assert.Equal(t, violations, c.Errors())

	fillValid(t, c)
	violations, err = c.Validate()
	require.NoError(t, err)
	assert.Empty(t, violations)
	assert.Zero(t, sub.calls())
}
