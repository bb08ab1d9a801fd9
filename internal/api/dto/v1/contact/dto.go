package contact

// ContactRequest represents a contact form submission. Field rules are
// applied by the contact workflow so violations come back localized; the
// binding tags only bound sizes.
type ContactRequest struct {
	FormID         string `json:"formId" binding:"omitempty,max=64"`
	Name           string `json:"name" binding:"max=256"`
	Email          string `json:"email" binding:"max=256"`
	Phone          string `json:"phone" binding:"max=64"`
	Message        string `json:"message" binding:"max=4096"`
	PropertyType   string `json:"propertyType" binding:"max=32"`
	UnitNumber     string `json:"unitNumber" binding:"max=64"`
	FloorNumber    string `json:"floorNumber" binding:"max=64"`
	PropertyID     string `json:"propertyId" binding:"omitempty,max=64"`
	RecaptchaToken string `json:"recaptcha_token" binding:"max=4096"`
}

// ContactResponse represents the response after submitting a contact form
type ContactResponse struct {
	Message string `json:"message"`
	Success bool   `json:"success"`
	FormID  string `json:"formId"`
}

// ValidateFieldRequest asks for the verdict on a single field, e.g. on blur
type ValidateFieldRequest struct {
	Field string `json:"field" binding:"required,oneof=name email phone message propertyType unitNumber floorNumber"`
	Value string `json:"value" binding:"max=4096"`
}

// ValidateFieldResponse is the verdict on a single field
type ValidateFieldResponse struct {
	Field   string `json:"field"`
	Valid   bool   `json:"valid"`
	Message string `json:"message,omitempty"`
}
