package backend

import "github.com/aved-sa/aved-web/internal/i18n"

// StaticContent is a CMS document addressed by content type.
type StaticContent struct {
	ID            string `json:"_id"`
	ContentType   string `json:"contentType"`
	Title         string `json:"title"`
	TitleAr       string `json:"title_ar"`
	Description   string `json:"description"`
	DescriptionAr string `json:"description_ar"`
	ImageURL      string `json:"imageUrl,omitempty"`
}

func (s *StaticContent) TitleText() i18n.Bilingual {
	return i18n.Bilingual{Default: s.Title, Arabic: s.TitleAr}
}

func (s *StaticContent) DescriptionHTML() i18n.Bilingual {
	return i18n.Bilingual{Default: s.Description, Arabic: s.DescriptionAr}
}

// Property is a listing shown on the property details page.
type Property struct {
	ID             string `json:"_id"`
	PropertyName   string `json:"property_name"`
	PropertyNameAr string `json:"property_name_ar"`
	Description    string `json:"description"`
	DescriptionAr  string `json:"description_ar"`
	ImageURL       string `json:"imageUrl,omitempty"`
}

func (p *Property) Name() i18n.Bilingual {
	return i18n.Bilingual{Default: p.PropertyName, Arabic: p.PropertyNameAr}
}

func (p *Property) DescriptionHTML() i18n.Bilingual {
	return i18n.Bilingual{Default: p.Description, Arabic: p.DescriptionAr}
}
