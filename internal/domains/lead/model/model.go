package model

import "cadence/shared/model"

const (
	TableName  = "leads"
	EntityName = "lead"

	FieldID         = "id"
	FieldCampaignID = "campaign_id"
	FieldName       = "name"
	FieldCompany    = "company"
	FieldEmail      = "email"
	FieldPhone      = "phone"
	FieldStatus     = "status"
)

type Lead struct {
	ID         string  `db:"id"`
	CampaignID *string `db:"campaign_id"`
	Name       string  `db:"name"`
	Company    *string `db:"company"`
	Email      *string `db:"email"`
	Phone      *string `db:"phone"`
	Status     string  `db:"status"`
	model.Metadata
}
