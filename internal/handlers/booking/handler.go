package booking

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"cadence/infras/otel"
	"cadence/internal/domains/booking/model"
	"cadence/internal/domains/booking/model/dto"
	"cadence/internal/domains/booking/service"
	leadModel "cadence/internal/domains/lead/model"
	"cadence/shared"
	"cadence/shared/constant"
	gDto "cadence/shared/dto"
	"cadence/shared/failure"
	"cadence/shared/validator"
	"cadence/transport/http/response"
)

type Handler struct {
	service service.Booking
	otel    otel.Otel
}

func New(service service.Booking, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/bookings", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateBooking)
		routerGroup.Get("/", handler.GetBookings)
		routerGroup.Get("/mybookings", handler.GetMyBookings)
		routerGroup.Get("/approval-queue", handler.GetApprovalQueue)
		routerGroup.Get("/conflicts", handler.GetConflicts)
		routerGroup.Get("/{id}", handler.GetBookingByID)
		routerGroup.Patch("/{id}", handler.UpdateBooking)
		routerGroup.Post("/{id}/approve", handler.ApproveBooking)
		routerGroup.Post("/{id}/reject", handler.RejectBooking)
		routerGroup.Patch("/{id}/status", handler.UpdateBookingStatus)
	})
}

// CreateBooking schedules a new meeting.
// @Summary Create a new booking
// @Description Schedule a meeting, checking the calendar for conflicts and geocoding the address of physical meetings.
// @Tags Booking
// @Accept json
// @Produce json
// @Param request body dto.CreateBookingRequest true "Create Booking Request"
// @Success 201 {object} response.Data[dto.BookingResponse] "Booking created successfully"
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error "Conflicting bookings, listed in details"
// @Failure 500 {object} response.Error
// @Router /v1/bookings [post]
// @Security BearerAuth
func (handler *Handler) CreateBooking(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateBooking")
	defer scope.End()

	req := dto.CreateBookingRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	booking, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create booking")

		response.WithError(writer, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Booking created successfully by user " + user)

	response.WithJSON(writer, http.StatusCreated, booking)
}

// GetBookings retrieves bookings with filtering, grouping and sorting.
// @Summary Get all bookings
// @Description Retrieve bookings with optional filters, grouped by date or postal code, or sorted by proximity to a point.
// @Tags Booking
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param lead_id query string false "Filter by lead ID"
// @Param campaign_id query string false "Filter by campaign ID"
// @Param status query string false "Filter by status (scheduled, confirmed, completed, cancelled, no_show)"
// @Param approval_status query string false "Filter by approval status (on_hold, approved, rejected)"
// @Param start_date query string false "Bookings starting on or after this date"
// @Param end_date query string false "Bookings starting on or before this date"
// @Param group_by query string false "Group results (date, postal_code)"
// @Param sort query string false "Sort order (proximity requires lat and lng)"
// @Param lat query number false "Reference latitude for proximity sort"
// @Param lng query number false "Reference longitude for proximity sort"
// @Success 200 {object} response.Data[dto.GetBookingsResponse] "List of bookings"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings [get]
// @Security BearerAuth
func (handler *Handler) GetBookings(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookings")
	defer scope.End()

	filterGroup := filtersFromQuery(r)

	opts := service.ListOptions{
		GroupBy: r.URL.Query().Get(constant.RequestParamGroupBy),
		Sort:    r.URL.Query().Get(constant.RequestParamSort),
		Lat:     shared.ConvertStringToFloat(r.URL.Query().Get(constant.RequestParamLat)),
		Lng:     shared.ConvertStringToFloat(r.URL.Query().Get(constant.RequestParamLng)),
	}

	if opts.Sort == constant.SortProximity && (opts.Lat == nil || opts.Lng == nil) {
		err := failure.BadRequestFromString("proximity sort requires lat and lng")
		scope.TraceError(err)

		response.WithError(w, err)

		return
	}

	if opts.GroupBy != "" {
		grouped, err := handler.service.GetGrouped(ctx, filterGroup, opts)
		if err != nil {
			scope.TraceError(err)
			log.Error().Err(err).Msg("failed to get grouped bookings")

			response.WithError(w, err)

			return
		}

		scope.AddEvent("Grouped bookings retrieved successfully")

		response.WithJSON(w, http.StatusOK, grouped)

		return
	}

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	bookings, err := handler.service.GetAll(ctx, queryParams, filterGroup, opts)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get bookings")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Bookings retrieved successfully")

	response.WithJSON(w, http.StatusOK, bookings)
}

// GetMyBookings retrieves the authenticated user's bookings.
// @Summary Get my bookings
// @Description Retrieve the bookings of the currently authenticated user.
// @Tags Booking
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param status query string false "Filter by status"
// @Success 200 {object} response.Data[dto.GetBookingsResponse] "List of user's bookings"
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/mybookings [get]
// @Security BearerAuth
func (handler *Handler) GetMyBookings(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetMyBookings")
	defer scope.End()

	userID, ok := ctx.Value(constant.ContextKeyUserID).(string)
	if !ok || userID == "" {
		err := failure.Unauthorized("unauthorized")
		scope.TraceError(err)
		log.Error().Msg("failed to get user ID from context")

		response.WithError(w, err)

		return
	}

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filterGroup := filtersFromQuery(r)
	filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
		Field:    model.FieldUserID,
		Operator: gDto.FilterOperatorEq,
		Value:    userID,
		Table:    model.TableName,
	})

	bookings, err := handler.service.GetAll(ctx, queryParams, filterGroup, service.ListOptions{})
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get user bookings")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("User bookings retrieved successfully for user " + userID)

	response.WithJSON(w, http.StatusOK, bookings)
}

// GetApprovalQueue lists bookings awaiting an approval decision.
// @Summary Get the approval queue
// @Description Retrieve bookings still on hold, oldest first.
// @Tags Booking
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Success 200 {object} response.Data[dto.GetBookingsResponse] "Bookings awaiting approval"
// @Failure 403 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/approval-queue [get]
// @Security BearerAuth
func (handler *Handler) GetApprovalQueue(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetApprovalQueue")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)
	queryParams.SortBy = constant.FieldCreatedAt
	queryParams.SortDir = constant.DefaultValueSortDir

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldApprovalStatus,
				Operator: gDto.FilterOperatorEq,
				Value:    model.ApprovalOnHold,
				Table:    model.TableName,
			},
		},
	}

	bookings, err := handler.service.GetAll(ctx, queryParams, filterGroup, service.ListOptions{})
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get approval queue")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Approval queue retrieved successfully")

	response.WithJSON(w, http.StatusOK, bookings)
}

// GetConflicts probes the caller's calendar for a candidate interval.
// @Summary Check for booking conflicts
// @Description List the caller's blocking bookings that overlap the given interval, without creating anything.
// @Tags Booking
// @Accept json
// @Produce json
// @Param start query string true "Interval start (RFC3339)"
// @Param end query string true "Interval end (RFC3339)"
// @Success 200 {object} response.Data[[]dto.ConflictingBookingResponse] "Overlapping bookings"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/conflicts [get]
// @Security BearerAuth
func (handler *Handler) GetConflicts(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetConflicts")
	defer scope.End()

	start, err := time.Parse(constant.DateFormat, r.URL.Query().Get(constant.RequestParamStart))
	if err != nil {
		scope.TraceError(err)

		response.WithError(w, failure.BadRequestFromString("start must be an RFC3339 timestamp"))

		return
	}

	end, err := time.Parse(constant.DateFormat, r.URL.Query().Get(constant.RequestParamEnd))
	if err != nil {
		scope.TraceError(err)

		response.WithError(w, failure.BadRequestFromString("end must be an RFC3339 timestamp"))

		return
	}

	conflicts, err := handler.service.Conflicts(ctx, start, end)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to probe booking conflicts")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Booking conflicts probed successfully")

	response.WithJSON(w, http.StatusOK, conflicts)
}

// GetBookingByID retrieves a booking by its ID.
// @Summary Get a booking by ID
// @Description Retrieve a booking by its unique identifier.
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} response.Data[dto.BookingResponse] "Booking details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetBookingByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookingByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	booking, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get booking by ID")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Booking retrieved successfully")

	response.WithJSON(w, http.StatusOK, booking)
}

// ApproveBooking approves a booking that is on hold.
// @Summary Approve a booking
// @Description Approve a booking awaiting review. Managers and admins only.
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} response.Message "Booking approved successfully"
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 422 {object} response.Error "Booking is not awaiting approval"
// @Failure 500 {object} response.Error
// @Router /v1/bookings/{id}/approve [post]
// @Security BearerAuth
func (handler *Handler) ApproveBooking(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ApproveBooking")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Approve(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to approve booking")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Booking approved successfully")

	response.WithMessage(w, http.StatusOK, "Booking approved successfully")
}

// RejectBooking rejects a booking that is on hold.
// @Summary Reject a booking
// @Description Reject a booking awaiting review with an optional reason. Managers and admins only.
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Param request body dto.RejectBookingRequest false "Rejection reason"
// @Success 200 {object} response.Message "Booking rejected successfully"
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 422 {object} response.Error "Booking is not awaiting approval"
// @Failure 500 {object} response.Error
// @Router /v1/bookings/{id}/reject [post]
// @Security BearerAuth
func (handler *Handler) RejectBooking(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".RejectBooking")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.RejectBookingRequest{}

	if r.Body != nil && r.ContentLength > 0 {
		if err := validator.Validate(r.Body, &req); err != nil {
			scope.TraceError(err)
			log.Error().Err(err).Msg("failed to validate request body")

			response.WithError(w, err)

			return
		}
	}

	if err := handler.service.Reject(ctx, id, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to reject booking")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Booking rejected successfully")

	response.WithMessage(w, http.StatusOK, "Booking rejected successfully")
}

// UpdateBookingStatus transitions a booking through its lifecycle.
// @Summary Update booking status
// @Description Move a booking to confirmed, completed, cancelled or no_show.
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Param request body dto.UpdateBookingStatusRequest true "Target status"
// @Success 200 {object} response.Message "Booking status updated successfully"
// @Failure 404 {object} response.Error
// @Failure 422 {object} response.Error "Transition not allowed"
// @Failure 500 {object} response.Error
// @Router /v1/bookings/{id}/status [patch]
// @Security BearerAuth
func (handler *Handler) UpdateBookingStatus(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateBookingStatus")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.UpdateBookingStatusRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.UpdateStatus(ctx, id, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update booking status")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Booking status updated successfully")

	response.WithMessage(w, http.StatusOK, "Booking status updated successfully")
}

// UpdateBooking updates the editable details of a booking.
// @Summary Update a booking by ID
// @Description Update the contact and description details of an existing booking.
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Param request body dto.UpdateBookingRequest true "Update Booking Request"
// @Success 200 {object} response.Message "Booking updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateBooking(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateBooking")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.UpdateBookingRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update booking")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Booking updated successfully")

	response.WithMessage(w, http.StatusOK, "Booking updated successfully")
}

// filtersFromQuery maps the supported query string filters onto a filter
// group. Only non-empty values are added.
func filtersFromQuery(r *http.Request) gDto.FilterGroup {
	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{},
	}

	query := r.URL.Query()

	if leadID := query.Get(constant.RequestParamLeadID); leadID != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldLeadID,
			Operator: gDto.FilterOperatorEq,
			Value:    leadID,
			Table:    model.TableName,
		})
	}

	if campaignID := query.Get(constant.RequestParamCampaign); campaignID != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    leadModel.FieldCampaignID,
			Operator: gDto.FilterOperatorEq,
			Value:    campaignID,
			Table:    leadModel.TableName,
		})
	}

	if status := query.Get(constant.RequestParamStatus); status != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldStatus,
			Operator: gDto.FilterOperatorEq,
			Value:    status,
			Table:    model.TableName,
		})
	}

	if approval := query.Get(constant.RequestParamApproval); approval != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldApprovalStatus,
			Operator: gDto.FilterOperatorEq,
			Value:    approval,
			Table:    model.TableName,
		})
	}

	if startDate := query.Get(constant.RequestParamStartDate); startDate != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldStartTime,
			Operator: gDto.FilterOperatorGreaterEq,
			Value:    startDate,
			Table:    model.TableName,
		})
	}

	if endDate := query.Get(constant.RequestParamEndDate); endDate != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldStartTime,
			Operator: gDto.FilterOperatorLessEq,
			Value:    endDate,
			Table:    model.TableName,
		})
	}

	return filterGroup
}
