package contact

import (
	"errors"
	"fmt"

	"github.com/aved-sa/aved-web/internal/i18n"

	"github.com/google/uuid"
)

// ErrUnknownField is returned when setting a field the form does not have.
var ErrUnknownField = errors.New("unknown contact field")

// Prefill holds the initial values injected into a new form, e.g. from a
// returning visitor's profile.
type Prefill struct {
	Name  string
	Email string
}

// PropertyRef identifies the property page a form was opened from.
type PropertyRef struct {
	ID   string
	Name i18n.Bilingual
}

// Values is a snapshot of the form inputs.
type Values struct {
	Name      string
	Email     string
	Phone     string
	Message   string
	Selection Selection
}

// Get returns the value of field as shown in the form.
func (v Values) Get(field Field) string {
	switch field {
	case FieldName:
		return v.Name
	case FieldEmail:
		return v.Email
	case FieldPhone:
		return v.Phone
	case FieldMessage:
		return v.Message
	case FieldPropertyType:
		return string(v.PropertyType())
	case FieldUnitNumber:
		if t, ok := v.Selection.(Tower); ok {
			return t.UnitNumber
		}
	case FieldFloorNumber:
		if t, ok := v.Selection.(Tower); ok {
			return t.FloorNumber
		}
	}
	return ""
}

func (v Values) PropertyType() PropertyType {
	if v.Selection == nil {
		return PropertyNone
	}
	return v.Selection.Type()
}

// Form is the field state of one contact form instance. It is not safe for
// concurrent use; Controller serializes access to it.
type Form struct {
	id       string
	initial  Values
	values   Values
	errors   Violations
	property *PropertyRef
	rules    *Rules
}

// FormOption customizes a Form.
type FormOption func(*Form)

// WithFormID restores the id of a form rendered earlier.
func WithFormID(id string) FormOption {
	return func(f *Form) {
		if id != "" {
			f.id = id
		}
	}
}

// WithProperty attaches the property the inquiry is about.
func WithProperty(p *PropertyRef) FormOption {
	return func(f *Form) { f.property = p }
}

func WithRules(r *Rules) FormOption {
	return func(f *Form) { f.rules = r }
}

// NewForm creates a form whose initial values come from prefill.
func NewForm(prefill Prefill, opts ...FormOption) *Form {
	f := &Form{
		id:     uuid.NewString(),
		errors: Violations{},
		rules:  DefaultRules(),
		initial: Values{
			Name:      prefill.Name,
			Email:     prefill.Email,
			Selection: NoSelection{},
		},
	}
	for _, opt := range opts {
		opt(f)
	}
	f.values = f.initial
	return f
}

// ID identifies this form instance across requests.
func (f *Form) ID() string {
	return f.id
}

func (f *Form) Property() *PropertyRef {
	return f.property
}

func (f *Form) Values() Values {
	return f.values
}

// Errors returns the violations recorded by Blur and Validate.
func (f *Form) Errors() Violations {
	out := make(Violations, len(f.errors))
	for k, v := range f.errors {
		out[k] = v
	}
	return out
}

// Visible reports whether field is currently rendered.
func (f *Form) Visible(field Field) bool {
	if field == FieldUnitNumber || field == FieldFloorNumber {
		return ShowsTowerFields(f.values.PropertyType())
	}
	_, ok := ParseField(string(field))
	return ok
}

// Set updates one input. Changing the property type resets the
// type-specific fields; unit and floor are ignored unless the type is tower.
func (f *Form) Set(field Field, value string) error {
	switch field {
	case FieldName:
		f.values.Name = value
	case FieldEmail:
		f.values.Email = value
	case FieldPhone:
		f.values.Phone = value
	case FieldMessage:
		f.values.Message = value
	case FieldPropertyType:
		t := ParsePropertyType(value)
		if t != f.values.PropertyType() {
			f.values.Selection = SelectionFor(t)
		}
	case FieldUnitNumber:
		if tower, ok := f.values.Selection.(Tower); ok {
			tower.UnitNumber = value
			f.values.Selection = tower
		}
	case FieldFloorNumber:
		if tower, ok := f.values.Selection.(Tower); ok {
			tower.FloorNumber = value
			f.values.Selection = tower
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	return nil
}

// Blur validates a single field the way leaving an input does and records
// or clears its violation.
func (f *Form) Blur(field Field) *Violation {
	v := f.rules.Check(field, f.values.Get(field))
	if v == nil {
		delete(f.errors, field)
		return nil
	}
	f.errors[field] = *v
	return v
}

// Validate checks every required field and replaces the recorded violations.
func (f *Form) Validate() Violations {
	f.errors = Violations{}
	for _, field := range RequiredFields {
		if v := f.rules.Check(field, f.values.Get(field)); v != nil {
			f.errors[field] = *v
		}
	}
	return f.Errors()
}

// Reset restores the initial values and clears recorded violations.
func (f *Form) Reset() {
	f.values = f.initial
	f.errors = Violations{}
}

// Request builds the outgoing payload from the current values.
func (f *Form) Request(locale i18n.Locale) Request {
	return BuildRequest(f.values, f.property, locale)
}
