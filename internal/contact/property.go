package contact

import "strings"

// PropertyType is the optional category a visitor is asking about.
type PropertyType string

const (
	PropertyNone  PropertyType = ""
	PropertyVilla PropertyType = "villa"
	PropertyTower PropertyType = "tower"
)

// ParsePropertyType maps form input to a PropertyType. Unknown values are
// treated as no selection.
func ParsePropertyType(s string) PropertyType {
	switch t := PropertyType(strings.ToLower(strings.TrimSpace(s))); t {
	case PropertyVilla, PropertyTower:
		return t
	}
	return PropertyNone
}

// ShowsTowerFields reports whether the unit and floor inputs apply to t.
func ShowsTowerFields(t PropertyType) bool {
	return t == PropertyTower
}

// Selection is the property-type choice together with the fields that only
// exist for that choice: NoSelection, Villa or Tower.
type Selection interface {
	Type() PropertyType
	isSelection()
}

type NoSelection struct{}

func (NoSelection) Type() PropertyType { return PropertyNone }
func (NoSelection) isSelection()       {}

type Villa struct{}

func (Villa) Type() PropertyType { return PropertyVilla }
func (Villa) isSelection()       {}

// Tower carries the optional, free-form unit and floor numbers.
type Tower struct {
	UnitNumber  string
	FloorNumber string
}

func (Tower) Type() PropertyType { return PropertyTower }
func (Tower) isSelection()       {}

// SelectionFor returns the empty selection of type t. Switching type always
// starts from here, so tower details never outlive a switch away from tower.
func SelectionFor(t PropertyType) Selection {
	switch t {
	case PropertyVilla:
		return Villa{}
	case PropertyTower:
		return Tower{}
	default:
		return NoSelection{}
	}
}
