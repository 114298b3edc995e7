package dto

import (
	"time"

	"github.com/google/uuid"

	"cadence/internal/domains/booking/model"
	leadModel "cadence/internal/domains/lead/model"
	meetingTypeModel "cadence/internal/domains/meetingtype/model"
	"cadence/shared"
	"cadence/shared/constant"
	gDto "cadence/shared/dto"
	"cadence/shared/failure"
	gModel "cadence/shared/model"
	"cadence/shared/timezone"
)

type CreateBookingRequest struct {
	Title              string           `json:"title"                validate:"required,max=200"`
	StartTime          string           `json:"start_time"           validate:"required,rfc3339"`
	EndTime            string           `json:"end_time"             validate:"required,rfc3339"`
	LeadID             *string          `json:"lead_id"              validate:"omitempty,uuid"`
	MeetingTypeID      *string          `json:"meeting_type_id"      validate:"omitempty,uuid"`
	Description        *string          `json:"description"          validate:"omitempty,max=2000"`
	Location           *string          `json:"location"             validate:"omitempty,max=500"`
	Address            *string          `json:"address"              validate:"omitempty,max=500"`
	City               *string          `json:"city"                 validate:"omitempty,max=100"`
	PostalCode         *string          `json:"postal_code"          validate:"omitempty,max=20"`
	ContactName        *string          `json:"contact_name"         validate:"omitempty,max=100"`
	ContactEmail       *string          `json:"contact_email"        validate:"omitempty,email,max=100"`
	ContactPhone       *string          `json:"contact_phone"        validate:"omitempty,max=20"`
	OnlineMeetingEmail *string          `json:"online_meeting_email" validate:"omitempty,email,max=100"`
	Attendees          model.Attendees  `json:"attendees"            validate:"omitempty,dive"`
	Reminders          model.Reminders  `json:"reminders"            validate:"omitempty,dive"`
}

// ParseTimeRange parses and orders the requested interval.
func (c *CreateBookingRequest) ParseTimeRange() (start, end time.Time, err error) {
	start, err = time.Parse(constant.DateFormat, c.StartTime)
	if err != nil {
		return start, end, failure.BadRequestFromString("start_time must be an RFC3339 timestamp") //nolint:wrapcheck
	}

	end, err = time.Parse(constant.DateFormat, c.EndTime)
	if err != nil {
		return start, end, failure.BadRequestFromString("end_time must be an RFC3339 timestamp") //nolint:wrapcheck
	}

	if !start.Before(end) {
		return start, end, failure.BadRequestFromString("start time must be before end time") //nolint:wrapcheck
	}

	return start, end, nil
}

func (c *CreateBookingRequest) ToModel(user string, start, end time.Time) model.Booking {
	return model.Booking{
		ID:                 uuid.NewString(),
		UserID:             user,
		LeadID:             c.LeadID,
		MeetingTypeID:      c.MeetingTypeID,
		Title:              c.Title,
		Description:        c.Description,
		Status:             model.StatusScheduled,
		ApprovalStatus:     model.ApprovalOnHold,
		StartTime:          start,
		EndTime:            end,
		Address:            c.Address,
		City:               c.City,
		PostalCode:         c.PostalCode,
		Location:           c.Location,
		ContactName:        c.ContactName,
		ContactEmail:       c.ContactEmail,
		ContactPhone:       c.ContactPhone,
		OnlineMeetingEmail: c.OnlineMeetingEmail,
		Attendees:          c.Attendees,
		Reminders:          c.Reminders,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateBookingRequest struct {
	Title              string `db:"title"                json:"title"                validate:"omitempty,max=200"`
	Description        string `db:"description"          json:"description"          validate:"omitempty,max=2000"`
	Location           string `db:"location"             json:"location"             validate:"omitempty,max=500"`
	ContactName        string `db:"contact_name"         json:"contact_name"         validate:"omitempty,max=100"`
	ContactEmail       string `db:"contact_email"        json:"contact_email"        validate:"omitempty,email,max=100"`
	ContactPhone       string `db:"contact_phone"        json:"contact_phone"        validate:"omitempty,max=20"`
	OnlineMeetingEmail string `db:"online_meeting_email" json:"online_meeting_email" validate:"omitempty,email,max=100"`
}

type UpdateBookingStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=confirmed completed cancelled no_show"`
}

type RejectBookingRequest struct {
	Reason string `json:"reason" validate:"omitempty,max=500"`
}

type LeadSummary struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	CampaignID *string `json:"campaign_id,omitempty"`
}

func (l *LeadSummary) FromModel(mod leadModel.Lead) {
	l.ID = mod.ID
	l.Name = mod.Name
	l.CampaignID = mod.CampaignID
}

type MeetingTypeSummary struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	IsPhysical bool   `json:"is_physical"`
	Icon       string `json:"icon,omitempty"`
	Color      string `json:"color,omitempty"`
}

func (m *MeetingTypeSummary) FromModel(mod meetingTypeModel.MeetingType) {
	m.ID = mod.ID
	m.Name = mod.Name
	m.IsPhysical = mod.IsPhysical
	m.Icon = mod.Icon
	m.Color = mod.Color
}

type BookingResponse struct {
	ID                 string              `json:"id"`
	UserID             string              `json:"user_id"`
	LeadID             *string             `json:"lead_id,omitempty"`
	MeetingTypeID      *string             `json:"meeting_type_id,omitempty"`
	Title              string              `json:"title"`
	Description        *string             `json:"description,omitempty"`
	Status             string              `json:"status"`
	ApprovalStatus     string              `json:"approval_status"`
	ApprovedBy         *string             `json:"approved_by,omitempty"`
	ApprovedAt         *string             `json:"approved_at,omitempty"`
	RejectionReason    *string             `json:"rejection_reason,omitempty"`
	StartTime          string              `json:"start_time"`
	EndTime            string              `json:"end_time"`
	Address            *string             `json:"address,omitempty"`
	City               *string             `json:"city,omitempty"`
	PostalCode         *string             `json:"postal_code,omitempty"`
	Latitude           *float64            `json:"latitude,omitempty"`
	Longitude          *float64            `json:"longitude,omitempty"`
	Location           *string             `json:"location,omitempty"`
	ContactName        *string             `json:"contact_name,omitempty"`
	ContactEmail       *string             `json:"contact_email,omitempty"`
	ContactPhone       *string             `json:"contact_phone,omitempty"`
	OnlineMeetingEmail *string             `json:"online_meeting_email,omitempty"`
	Attendees          model.Attendees     `json:"attendees,omitempty"`
	Reminders          model.Reminders     `json:"reminders,omitempty"`
	DistanceKm         *float64            `json:"distance_km,omitempty"`
	Lead               *LeadSummary        `json:"lead,omitempty"`
	MeetingType        *MeetingTypeSummary `json:"meeting_type,omitempty"`
	gDto.Metadata
}

func (r *BookingResponse) FromModel(mod model.Booking) {
	r.ID = mod.ID
	r.UserID = mod.UserID
	r.LeadID = mod.LeadID
	r.MeetingTypeID = mod.MeetingTypeID
	r.Title = mod.Title
	r.Description = mod.Description
	r.Status = mod.Status
	r.ApprovalStatus = mod.ApprovalStatus
	r.ApprovedBy = mod.ApprovedBy
	r.RejectionReason = mod.RejectionReason
	r.StartTime = timezone.Format(mod.StartTime, constant.DateFormat)
	r.EndTime = timezone.Format(mod.EndTime, constant.DateFormat)
	r.Address = mod.Address
	r.City = mod.City
	r.PostalCode = mod.PostalCode
	r.Latitude = mod.Latitude
	r.Longitude = mod.Longitude
	r.Location = mod.Location
	r.ContactName = mod.ContactName
	r.ContactEmail = mod.ContactEmail
	r.ContactPhone = mod.ContactPhone
	r.OnlineMeetingEmail = mod.OnlineMeetingEmail
	r.Attendees = mod.Attendees
	r.Reminders = mod.Reminders

	if mod.ApprovedAt != nil {
		approvedAt := timezone.Format(*mod.ApprovedAt, constant.DateFormat)
		r.ApprovedAt = &approvedAt
	}

	r.Metadata.FromModel(mod.Metadata)
}

// ConflictingBookingResponse is the projection returned when a requested
// interval collides with existing bookings.
type ConflictingBookingResponse struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

func (r *ConflictingBookingResponse) FromModel(mod model.Booking) {
	r.ID = mod.ID
	r.Title = mod.Title
	r.StartTime = timezone.Format(mod.StartTime, constant.DateFormat)
	r.EndTime = timezone.Format(mod.EndTime, constant.DateFormat)
}

func ConflictsFromModels(models []model.Booking) []ConflictingBookingResponse {
	conflicts := make([]ConflictingBookingResponse, len(models))
	for i, mod := range models {
		conflicts[i].FromModel(mod)
	}

	return conflicts
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetBookingsResponse) FromModels(models []model.Booking, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Bookings = make([]BookingResponse, len(models))
	for i, mod := range models {
		r.Bookings[i].FromModel(mod)
	}
}

// GroupedBookingsResponse buckets bookings by calendar date or postal code.
type GroupedBookingsResponse struct {
	Groups    map[string][]BookingResponse `json:"groups"`
	TotalData int                          `json:"total_data"`
}
