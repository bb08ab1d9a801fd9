// Package contact implements the contact form workflow: per-field validation,
// the property-type dependent fields and the submission state machine.
package contact

import (
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/aved-sa/aved-web/internal/i18n"

	"github.com/go-playground/validator/v10"
)

// Field names a contact form input. The values double as JSON keys and
// HTML input names.
type Field string

const (
	FieldName         Field = "name"
	FieldEmail        Field = "email"
	FieldPhone        Field = "phone"
	FieldMessage      Field = "message"
	FieldPropertyType Field = "propertyType"
	FieldUnitNumber   Field = "unitNumber"
	FieldFloorNumber  Field = "floorNumber"
)

// Fields lists every input in display order.
var Fields = []Field{
	FieldName, FieldEmail, FieldPhone, FieldPropertyType,
	FieldUnitNumber, FieldFloorNumber, FieldMessage,
}

// RequiredFields must all be valid before a submission is sent.
var RequiredFields = []Field{FieldName, FieldEmail, FieldPhone, FieldMessage}

// ParseField maps an input name to a Field.
func ParseField(s string) (Field, bool) {
	for _, f := range Fields {
		if string(f) == s {
			return f, true
		}
	}
	return "", false
}

var (
	// Letters (Latin or Arabic block); each ' . , - or space must be followed by a letter.
	nameRegex  = regexp.MustCompile(`^[a-zA-Z\x{0600}-\x{06FF}]+(?:[',. \-][a-zA-Z\x{0600}-\x{06FF}]+)*$`)
	phoneRegex = regexp.MustCompile(`^[0-9+\s()\-]+$`)
)

// Custom validator tags
const (
	TagContactName  = "contactname"
	TagContactPhone = "contactphone"
)

// RegisterValidators registers the contact form tags on v.
func RegisterValidators(v *validator.Validate) error {
	if err := v.RegisterValidation(TagContactName, validateName); err != nil {
		return err
	}
	return v.RegisterValidation(TagContactPhone, validatePhone)
}

func validateName(fl validator.FieldLevel) bool {
	return nameRegex.MatchString(fl.Field().String())
}

func validatePhone(fl validator.FieldLevel) bool {
	return phoneRegex.MatchString(fl.Field().String())
}

type rule struct {
	tag string
	key string
}

// Rules are checked in order and the first failing one names the violation.
var fieldRules = map[Field][]rule{
	FieldName: {
		{"required", "contactSection.nameRequired"},
		{TagContactName, "contactSection.nameInvalid"},
		{"max=30", "contactSection.nameMax"},
	},
	FieldEmail: {
		{"required", "contactSection.emailRequired"},
		{"email", "contactSection.emailInvalid"},
		{"max=100", "contactSection.emailMax"},
	},
	FieldPhone: {
		{"required", "contactSection.phoneRequired"},
		{TagContactPhone, "contactSection.phoneInvalid"},
		{"min=10", "contactSection.phoneMin"},
	},
	FieldMessage: {
		{"required", "contactSection.messageRequired"},
		{"min=3", "contactSection.messageMin"},
		{"max=600", "contactSection.messageMax"},
	},
}

// Violation is the first rule a field value broke.
type Violation struct {
	Field Field  `json:"field"`
	Rule  string `json:"rule"`
	Key   string `json:"key"`
}

// Message renders the violation in the localizer's language.
func (v Violation) Message(l i18n.Localizer) string {
	return l.T(v.Key)
}

// Violations holds at most one violation per field.
type Violations map[Field]Violation

// Messages renders every violation keyed by field name.
func (vs Violations) Messages(l i18n.Localizer) map[string]string {
	out := make(map[string]string, len(vs))
	for f, v := range vs {
		out[string(f)] = v.Message(l)
	}
	return out
}

// Sorted returns the violations in display order.
func (vs Violations) Sorted() []Violation {
	out := make([]Violation, 0, len(vs))
	for _, v := range vs {
		out = append(out, v)
	}
	order := make(map[Field]int, len(Fields))
	for i, f := range Fields {
		order[f] = i
	}
	sort.Slice(out, func(i, j int) bool { return order[out[i].Field] < order[out[j].Field] })
	return out
}

// Rules validates contact form fields. It is safe for concurrent use.
type Rules struct {
	validate *validator.Validate
}

var (
	defaultRules     *Rules
	defaultRulesOnce sync.Once
)

// DefaultRules returns the shared rule set.
func DefaultRules() *Rules {
	defaultRulesOnce.Do(func() {
		defaultRules = NewRules()
	})
	return defaultRules
}

func NewRules() *Rules {
	v := validator.New()
	if err := RegisterValidators(v); err != nil {
		panic(err)
	}
	return &Rules{validate: v}
}

// Check validates one field value. It returns nil when the value is valid or
// the field carries no constraint.
func (r *Rules) Check(field Field, value string) *Violation {
	for _, rl := range fieldRules[field] {
		if err := r.validate.Var(value, rl.tag); err != nil {
			return &Violation{Field: field, Rule: ruleName(rl.tag), Key: rl.key}
		}
	}
	return nil
}

func ruleName(tag string) string {
	name, _, _ := strings.Cut(tag, "=")
	return name
}
