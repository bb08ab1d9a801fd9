package views

import (
	"html/template"

	"github.com/aved-sa/aved-web/internal/content"
	"github.com/aved-sa/aved-web/internal/contact"
	"github.com/aved-sa/aved-web/internal/i18n"
)

// Support holds the company contact channels.
type Support struct {
	Email    string
	Phones   []string
	Location string
	MapEmbed template.URL
}

// Layout is the data every page shares.
type Layout struct {
	L                i18n.Localizer
	Locale           i18n.Locale
	Dir              i18n.Direction
	Title            string
	Path             string
	CSRFToken        string
	RecaptchaSiteKey string
	Support          Support
}

// Notice kinds
const (
	NoticeSuccess = "success"
	NoticeError   = "error"
	NoticeInfo    = "info"
)

// Notice is the banner shown after a submission.
type Notice struct {
	Kind    string
	Message string
}

// Option is a <select> entry.
type Option struct {
	Value    string
	Label    string
	Selected bool
}

// ContactForm is the contact section of a page.
type ContactForm struct {
	Action          string
	FormID          string
	Title           string
	Values          map[string]string
	Errors          map[string]string
	ShowTowerFields bool
	PropertyTypes   []Option
	Notice          *Notice
}

// NewContactForm snapshots the controller state for rendering.
func NewContactForm(ctrl *contact.Controller, l i18n.Localizer, action, title string, notice *Notice) ContactForm {
	values := ctrl.Values()
	form := ContactForm{
		Action:          action,
		FormID:          ctrl.FormID(),
		Title:           title,
		Values:          make(map[string]string, len(contact.Fields)),
		Errors:          ctrl.Errors().Messages(l),
		ShowTowerFields: ctrl.Visible(contact.FieldUnitNumber),
		Notice:          notice,
	}
	for _, f := range contact.Fields {
		form.Values[string(f)] = values.Get(f)
	}

	selected := values.PropertyType()
	form.PropertyTypes = []Option{
		{Value: "", Label: l.T("contactSection.selectType"), Selected: selected == contact.PropertyNone},
		{Value: string(contact.PropertyVilla), Label: l.T("contactSection.villa"), Selected: selected == contact.PropertyVilla},
		{Value: string(contact.PropertyTower), Label: l.T("contactSection.tower"), Selected: selected == contact.PropertyTower},
	}
	return form
}

type HomePage struct {
	Layout
	About *content.Page
}

// ContentPage renders a static document (about, privacy policy, terms).
type ContentPage struct {
	Layout
	Page *content.Page
}

type ContactPage struct {
	Layout
	Form ContactForm
}

type PropertyPage struct {
	Layout
	Property *content.Property
	Form     ContactForm
}

type ErrorPage struct {
	Layout
	Message string
}
