package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"cadence/shared/model"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID                 = "id"
	FieldUserID             = "user_id"
	FieldLeadID             = "lead_id"
	FieldMeetingTypeID      = "meeting_type_id"
	FieldTitle              = "title"
	FieldDescription        = "description"
	FieldStatus             = "status"
	FieldApprovalStatus     = "approval_status"
	FieldApprovedBy         = "approved_by"
	FieldApprovedAt         = "approved_at"
	FieldRejectionReason    = "rejection_reason"
	FieldStartTime          = "start_time"
	FieldEndTime            = "end_time"
	FieldAddress            = "address"
	FieldCity               = "city"
	FieldPostalCode         = "postal_code"
	FieldLatitude           = "latitude"
	FieldLongitude          = "longitude"
	FieldLocation           = "location"
	FieldContactName        = "contact_name"
	FieldContactEmail       = "contact_email"
	FieldContactPhone       = "contact_phone"
	FieldOnlineMeetingEmail = "online_meeting_email"
	FieldAttendees          = "attendees"
	FieldReminders          = "reminders"
)

// Meeting lifecycle. Independent axis from the approval status: a confirmed
// booking may still be awaiting approval, and a cancelled one keeps whatever
// approval state it had.
const (
	StatusScheduled = "scheduled"
	StatusConfirmed = "confirmed"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
	StatusNoShow    = "no_show"
)

const (
	ApprovalOnHold   = "on_hold"
	ApprovalApproved = "approved"
	ApprovalRejected = "rejected"
)

// ActiveStatuses are the lifecycle states that occupy a time slot.
var ActiveStatuses = []string{StatusScheduled, StatusConfirmed}

// Attendee is one participant on the meeting invite.
type Attendee struct {
	Name  string `json:"name"            validate:"required,max=100"`
	Email string `json:"email,omitempty" validate:"omitempty,email,max=100"`
}

// Reminder schedules a nudge relative to the meeting start.
type Reminder struct {
	Channel       string `json:"channel"        validate:"required,oneof=email sms push"`
	MinutesBefore int    `json:"minutes_before" validate:"required,gte=1,lte=10080"`
}

type Attendees []Attendee

type Reminders []Reminder

func (a Attendees) Value() (driver.Value, error) {
	if a == nil {
		return nil, nil
	}

	return json.Marshal(a) //nolint:wrapcheck
}

func (a *Attendees) Scan(src any) error {
	return scanJSON(src, a)
}

func (r Reminders) Value() (driver.Value, error) {
	if r == nil {
		return nil, nil
	}

	return json.Marshal(r) //nolint:wrapcheck
}

func (r *Reminders) Scan(src any) error {
	return scanJSON(src, r)
}

func scanJSON(src, dst any) error {
	if src == nil {
		return nil
	}

	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, dst) //nolint:wrapcheck
	case string:
		return json.Unmarshal([]byte(v), dst) //nolint:wrapcheck
	default:
		return fmt.Errorf("unsupported source type %T: %w", src, errors.ErrUnsupported)
	}
}

type Booking struct {
	ID                 string     `db:"id"`
	UserID             string     `db:"user_id"`
	LeadID             *string    `db:"lead_id"`
	MeetingTypeID      *string    `db:"meeting_type_id"`
	Title              string     `db:"title"`
	Description        *string    `db:"description"`
	Status             string     `db:"status"`
	ApprovalStatus     string     `db:"approval_status"`
	ApprovedBy         *string    `db:"approved_by"`
	ApprovedAt         *time.Time `db:"approved_at"`
	RejectionReason    *string    `db:"rejection_reason"`
	StartTime          time.Time  `db:"start_time"`
	EndTime            time.Time  `db:"end_time"`
	Address            *string    `db:"address"`
	City               *string    `db:"city"`
	PostalCode         *string    `db:"postal_code"`
	Latitude           *float64   `db:"latitude"`
	Longitude          *float64   `db:"longitude"`
	Location           *string    `db:"location"`
	ContactName        *string    `db:"contact_name"`
	ContactEmail       *string    `db:"contact_email"`
	ContactPhone       *string    `db:"contact_phone"`
	OnlineMeetingEmail *string    `db:"online_meeting_email"`
	Attendees          Attendees  `db:"attendees"`
	Reminders          Reminders  `db:"reminders"`
	model.Metadata
}

// Blocking reports whether the booking occupies its time slot for conflict
// purposes: active lifecycle state and not rejected.
func (b *Booking) Blocking() bool {
	if b.ApprovalStatus == ApprovalRejected {
		return false
	}

	for _, status := range ActiveStatuses {
		if b.Status == status {
			return true
		}
	}

	return false
}

// OverlapsRange reports whether the booking's half-open interval
// [StartTime, EndTime) shares at least one instant with [start, end).
func (b *Booking) OverlapsRange(start, end time.Time) bool {
	// candidate start falls inside the booking
	if !b.StartTime.After(start) && start.Before(b.EndTime) {
		return true
	}

	// candidate end falls inside the booking
	if b.StartTime.Before(end) && !end.After(b.EndTime) {
		return true
	}

	// candidate fully contains the booking
	if !start.After(b.StartTime) && !end.Before(b.EndTime) {
		return true
	}

	return false
}

// GetJoinQuery joins the lead so list filters can target lead columns such
// as the campaign.
func (b Booking) GetJoinQuery() string {
	return "LEFT JOIN leads ON leads.id = bookings.lead_id"
}

// HasCoordinates reports whether geocoded coordinates are stored.
func (b *Booking) HasCoordinates() bool {
	return b.Latitude != nil && b.Longitude != nil
}
