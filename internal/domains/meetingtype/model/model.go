package model

import "cadence/shared/model"

const (
	TableName  = "meeting_types"
	EntityName = "meeting_type"

	FieldID         = "id"
	FieldName       = "name"
	FieldIsPhysical = "is_physical"
	FieldIcon       = "icon"
	FieldColor      = "color"
	FieldActive     = "active"
)

// MeetingType classifies a booking. IsPhysical marks types that happen at a
// customer location and therefore require an address.
type MeetingType struct {
	ID         string `db:"id"`
	Name       string `db:"name"`
	IsPhysical bool   `db:"is_physical"`
	Icon       string `db:"icon"`
	Color      string `db:"color"`
	Active     bool   `db:"active"`
	model.Metadata
}
