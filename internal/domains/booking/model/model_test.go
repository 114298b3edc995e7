package model_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"cadence/internal/domains/booking/model"
)

func at(hour, minute int) time.Time {
	return time.Date(2026, 9, 10, hour, minute, 0, 0, time.UTC)
}

func interval(startHour, endHour int) model.Booking {
	return model.Booking{StartTime: at(startHour, 0), EndTime: at(endHour, 0)}
}

func TestBookingOverlapsRange(t *testing.T) {
	tests := []struct {
		name    string
		booking model.Booking
		start   time.Time
		end     time.Time
		want    bool
	}{
		{name: "identical intervals", booking: interval(9, 10), start: at(9, 0), end: at(10, 0), want: true},
		{name: "candidate starts inside", booking: interval(9, 11), start: at(10, 0), end: at(12, 0), want: true},
		{name: "candidate ends inside", booking: interval(9, 11), start: at(8, 0), end: at(10, 0), want: true},
		{name: "candidate contains booking", booking: interval(9, 10), start: at(8, 0), end: at(12, 0), want: true},
		{name: "candidate inside booking", booking: interval(8, 12), start: at(9, 0), end: at(10, 0), want: true},
		{name: "disjoint before", booking: interval(9, 10), start: at(7, 0), end: at(8, 0), want: false},
		{name: "disjoint after", booking: interval(9, 10), start: at(11, 0), end: at(12, 0), want: false},
		{name: "touching end to start does not overlap", booking: interval(9, 10), start: at(10, 0), end: at(11, 0), want: false},
		{name: "touching start to end does not overlap", booking: interval(10, 11), start: at(9, 0), end: at(10, 0), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.booking.OverlapsRange(tt.start, tt.end))

			// Overlap is symmetric: swapping the roles of the two
			// intervals must give the same answer.
			mirrored := model.Booking{StartTime: tt.start, EndTime: tt.end}
			assert.Equal(t, tt.want, mirrored.OverlapsRange(tt.booking.StartTime, tt.booking.EndTime))
		})
	}
}

func TestBookingBlocking(t *testing.T) {
	tests := []struct {
		name     string
		status   string
		approval string
		want     bool
	}{
		{name: "scheduled on hold blocks", status: model.StatusScheduled, approval: model.ApprovalOnHold, want: true},
		{name: "scheduled approved blocks", status: model.StatusScheduled, approval: model.ApprovalApproved, want: true},
		{name: "confirmed approved blocks", status: model.StatusConfirmed, approval: model.ApprovalApproved, want: true},
		{name: "rejected never blocks", status: model.StatusScheduled, approval: model.ApprovalRejected, want: false},
		{name: "cancelled never blocks", status: model.StatusCancelled, approval: model.ApprovalApproved, want: false},
		{name: "completed never blocks", status: model.StatusCompleted, approval: model.ApprovalApproved, want: false},
		{name: "no show never blocks", status: model.StatusNoShow, approval: model.ApprovalApproved, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			booking := model.Booking{Status: tt.status, ApprovalStatus: tt.approval}
			assert.Equal(t, tt.want, booking.Blocking())
		})
	}
}

func TestAttendeesRoundTrip(t *testing.T) {
	attendees := model.Attendees{{Name: "Ada", Email: "ada@example.com"}}

	value, err := attendees.Value()
	assert.NoError(t, err)

	var scanned model.Attendees
	assert.NoError(t, scanned.Scan(value))
	assert.Equal(t, attendees, scanned)
}
