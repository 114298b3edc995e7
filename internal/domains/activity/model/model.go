package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"

	"cadence/shared/model"
)

const (
	TableName  = "activity_logs"
	EntityName = "activity_log"

	FieldID        = "id"
	FieldLeadID    = "lead_id"
	FieldBookingID = "booking_id"
	FieldUserID    = "user_id"
	FieldType      = "type"
	FieldContent   = "content"
	FieldDetails   = "details"
)

// Details is the structured payload of a timeline entry, stored as JSONB.
type Details struct {
	BookingID       string `json:"booking_id,omitempty"`
	Title           string `json:"title,omitempty"`
	StartTime       string `json:"start_time,omitempty"`
	ApprovalStatus  string `json:"approval_status,omitempty"`
	RejectionReason string `json:"rejection_reason,omitempty"`
}

func (d Details) Value() (driver.Value, error) {
	return json.Marshal(d) //nolint:wrapcheck
}

func (d *Details) Scan(src any) error {
	if src == nil {
		return nil
	}

	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, d) //nolint:wrapcheck
	case string:
		return json.Unmarshal([]byte(v), d) //nolint:wrapcheck
	default:
		return fmt.Errorf("unsupported source type %T: %w", src, errors.ErrUnsupported)
	}
}

// ActivityLog is one timeline entry on a lead.
type ActivityLog struct {
	ID        string  `db:"id"`
	LeadID    string  `db:"lead_id"`
	BookingID *string `db:"booking_id"`
	UserID    string  `db:"user_id"`
	Type      string  `db:"type"`
	Content   string  `db:"content"`
	Details   Details `db:"details"`
	model.Metadata
}
