package failure_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"cadence/shared/failure"
)

func TestFailure_Error(t *testing.T) {
	f := &failure.Failure{
		Code:    http.StatusBadRequest,
		Message: "test error message",
	}

	if f.Error() != "test error message" {
		t.Errorf("expected error message to be 'test error message', got %s", f.Error())
	}
}

func TestPredefinedFailures(t *testing.T) {
	tests := []struct {
		name    string
		failure *failure.Failure
		code    int
		message string
	}{
		{
			name:    "InvalidPageParam",
			failure: failure.InvalidPageParam,
			code:    http.StatusBadRequest,
			message: "invalid page parameter",
		},
		{
			name:    "InvalidLimitParam",
			failure: failure.InvalidLimitParam,
			code:    http.StatusBadRequest,
			message: "invalid limit parameter",
		},
		{
			name:    "ForbiddenError",
			failure: failure.ForbiddenError,
			code:    http.StatusForbidden,
			message: "You don't have the required permissions",
		},
		{
			name:    "ResourceRestrictedError",
			failure: failure.ResourceRestrictedError,
			code:    http.StatusForbidden,
			message: "You don't have permission to access this resource",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.failure.Code != tt.code {
				t.Errorf("expected code to be %d, got %d", tt.code, tt.failure.Code)
			}
			if tt.failure.Message != tt.message {
				t.Errorf("expected message to be %s, got %s", tt.message, tt.failure.Message)
			}
		})
	}
}

func TestConstructors(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		code    int
		message string
	}{
		{
			name:    "BadRequestFromString",
			err:     failure.BadRequestFromString("missing title"),
			code:    http.StatusBadRequest,
			message: "missing title",
		},
		{
			name:    "Unauthorized",
			err:     failure.Unauthorized("no session"),
			code:    http.StatusUnauthorized,
			message: "no session",
		},
		{
			name:    "NotFound",
			err:     failure.NotFound("booking not found"),
			code:    http.StatusNotFound,
			message: "booking not found",
		},
		{
			name:    "Conflict",
			err:     failure.Conflict("time slot already booked"),
			code:    http.StatusConflict,
			message: "time slot already booked",
		},
		{
			name:    "InvalidState",
			err:     failure.InvalidState("booking is not awaiting approval"),
			code:    http.StatusUnprocessableEntity,
			message: "booking is not awaiting approval",
		},
		{
			name:    "Forbidden",
			err:     failure.Forbidden("managers only"),
			code:    http.StatusForbidden,
			message: "managers only",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if code := failure.GetCode(tt.err); code != tt.code {
				t.Errorf("expected code to be %d, got %d", tt.code, code)
			}
			if tt.err.Error() != tt.message {
				t.Errorf("expected message to be %s, got %s", tt.message, tt.err.Error())
			}
		})
	}
}

func TestBadRequest(t *testing.T) {
	if err := failure.BadRequest(nil); err != nil {
		t.Errorf("expected nil, got %v", err)
	}

	err := failure.BadRequest(errors.New("validation failed"))
	if failure.GetCode(err) != http.StatusBadRequest {
		t.Errorf("expected code %d, got %d", http.StatusBadRequest, failure.GetCode(err))
	}
}

func TestConflictWithDetails(t *testing.T) {
	details := []string{"booking-1", "booking-2"}

	err := failure.ConflictWithDetails("time slot conflicts with existing bookings", details)

	if failure.GetCode(err) != http.StatusConflict {
		t.Errorf("expected code %d, got %d", http.StatusConflict, failure.GetCode(err))
	}

	got, ok := failure.GetDetails(err).([]string)
	if !ok || len(got) != 2 {
		t.Errorf("expected details to round-trip, got %v", failure.GetDetails(err))
	}
}

func TestGetCode_WrappedAndUnknown(t *testing.T) {
	wrapped := fmt.Errorf("outer: %w", failure.NotFound("lead not found"))
	if failure.GetCode(wrapped) != http.StatusNotFound {
		t.Errorf("expected wrapped failure to resolve to %d", http.StatusNotFound)
	}

	if failure.GetCode(errors.New("boom")) != http.StatusInternalServerError {
		t.Error("expected unknown error to resolve to 500")
	}

	if failure.GetDetails(errors.New("boom")) != nil {
		t.Error("expected nil details for non-failure error")
	}
}
