package contact

import (
	"strings"

	"github.com/aved-sa/aved-web/internal/i18n"
)

// Request is the inquiry sent to the backend. Optional keys are omitted
// rather than sent empty.
type Request struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Message      string `json:"message"`
	PropertyType string `json:"propertyType,omitempty"`
	UnitNumber   string `json:"unitNumber,omitempty"`
	FloorNumber  string `json:"floorNumber,omitempty"`
	PropertyID   string `json:"propertyId,omitempty"`
	PropertyName string `json:"propertyName,omitempty"`
}

// BuildRequest assembles the payload. The email is lower-cased, unit and
// floor are only carried for towers, and the property name follows locale.
func BuildRequest(v Values, property *PropertyRef, locale i18n.Locale) Request {
	req := Request{
		Name:         v.Name,
		Email:        strings.ToLower(v.Email),
		Phone:        v.Phone,
		Message:      v.Message,
		PropertyType: string(v.PropertyType()),
	}
	if tower, ok := v.Selection.(Tower); ok {
		req.UnitNumber = tower.UnitNumber
		req.FloorNumber = tower.FloorNumber
	}
	if property != nil {
		req.PropertyID = property.ID
		req.PropertyName = i18n.Pick(locale, property.Name)
	}
	return req
}
