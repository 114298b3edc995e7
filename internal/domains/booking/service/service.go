package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog/log"

	"cadence/config"
	"cadence/infras/geocoder"
	"cadence/infras/kafka"
	"cadence/infras/otel"
	activityModel "cadence/internal/domains/activity/model"
	activityRepo "cadence/internal/domains/activity/repository"
	"cadence/internal/domains/booking/model"
	"cadence/internal/domains/booking/model/dto"
	"cadence/internal/domains/booking/repository"
	leadModel "cadence/internal/domains/lead/model"
	leadRepo "cadence/internal/domains/lead/repository"
	meetingTypeModel "cadence/internal/domains/meetingtype/model"
	meetingTypeRepo "cadence/internal/domains/meetingtype/repository"
	"cadence/shared"
	"cadence/shared/cache"
	"cadence/shared/constant"
	gDto "cadence/shared/dto"
	"cadence/shared/failure"
	"cadence/shared/geo"
	gModel "cadence/shared/model"
	"cadence/shared/timezone"

	"github.com/google/uuid"
)

const (
	cacheGetBooking    = "booking:get"
	cacheGetAllBooking = "booking:gets"
	cacheCountBooking  = "booking:count"
)

// GroupKeyUnknown buckets bookings without a postal code.
const GroupKeyUnknown = "unknown"

// ListOptions carry the presentation knobs of the booking list endpoints.
type ListOptions struct {
	GroupBy string
	Sort    string
	Lat     *float64
	Lng     *float64
}

type bookingEvent struct {
	Event          string `json:"event"`
	BookingID      string `json:"booking_id"`
	UserID         string `json:"user_id"`
	Title          string `json:"title"`
	StartTime      string `json:"start_time"`
	EndTime        string `json:"end_time"`
	ApprovalStatus string `json:"approval_status"`
}

type Booking interface {
	Create(ctx context.Context, req dto.CreateBookingRequest) (dto.BookingResponse, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, opts ListOptions) (dto.GetBookingsResponse, error)
	GetGrouped(ctx context.Context, filter gDto.FilterGroup, opts ListOptions) (dto.GroupedBookingsResponse, error)
	Count(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.BookingResponse, error)
	Conflicts(ctx context.Context, start, end time.Time) ([]dto.ConflictingBookingResponse, error)
	Approve(ctx context.Context, id string) error
	Reject(ctx context.Context, id string, req dto.RejectBookingRequest) error
	UpdateStatus(ctx context.Context, id string, req dto.UpdateBookingStatusRequest) error
	Update(ctx context.Context, req dto.UpdateBookingRequest, id string) error
}

type serviceImpl struct {
	repo            repository.Booking
	leadRepo        leadRepo.Lead
	meetingTypeRepo meetingTypeRepo.MeetingType
	activityRepo    activityRepo.Activity
	geocoder        geocoder.Geocoder
	events          kafka.Client
	cfg             *config.Config
	cache           cache.RedisCache
	otel            otel.Otel
}

func New(
	repo repository.Booking,
	leadRepo leadRepo.Lead,
	meetingTypeRepo meetingTypeRepo.MeetingType,
	activityRepo activityRepo.Activity,
	geocoder geocoder.Geocoder,
	events kafka.Client,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Booking {
	return &serviceImpl{
		repo:            repo,
		leadRepo:        leadRepo,
		meetingTypeRepo: meetingTypeRepo,
		activityRepo:    activityRepo,
		geocoder:        geocoder,
		events:          events,
		cfg:             cfg,
		cache:           cache,
		otel:            otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CreateBooking")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)

	if req.Title == constant.Empty || req.StartTime == constant.Empty || req.EndTime == constant.Empty {
		return res, failure.BadRequestFromString("Title, start time, and end time are required") //nolint:wrapcheck
	}

	start, end, err := req.ParseTimeRange()
	if err != nil {
		return res, err
	}

	if req.LeadID != nil {
		leadExists, err := s.leadRepo.Exist(ctx, shared.FilterByID(*req.LeadID, leadModel.FieldID, leadModel.TableName))
		if err != nil {
			log.Error().Err(err).Msg("failed to check if lead exists")

			return res, fmt.Errorf("failed to check if lead exists: %w", err)
		}

		if !leadExists {
			return res, failure.BadRequestFromString("lead does not exist") //nolint:wrapcheck
		}
	}

	isPhysical, err := s.resolvePhysical(ctx, req.MeetingTypeID)
	if err != nil {
		return res, err
	}

	if isPhysical && (req.Address == nil || *req.Address == constant.Empty) {
		return res, failure.BadRequestFromString("Address is required for physical meetings") //nolint:wrapcheck
	}

	booking := req.ToModel(user, start, end)

	// Managers and admins schedule without review, everyone else waits
	// in the approval queue.
	if role == constant.RoleManager || role == constant.RoleAdmin {
		now := timezone.Now()
		booking.ApprovalStatus = model.ApprovalApproved
		booking.ApprovedBy = &user
		booking.ApprovedAt = &now
	}

	if isPhysical {
		s.geocodeBooking(ctx, &booking)
	}

	conflicts, err := s.repo.InsertWithConflictCheck(ctx, booking)
	if err != nil {
		log.Error().Err(err).Msg("failed to create booking")

		return res, fmt.Errorf("failed to create booking: %w", err)
	}

	if len(conflicts) > 0 {
		return res, failure.ConflictWithDetails("booking conflicts with existing bookings", dto.ConflictsFromModels(conflicts)) //nolint:wrapcheck
	}

	if booking.LeadID != nil {
		s.logLeadActivity(ctx, booking, user, fmt.Sprintf("Meeting scheduled: %s", booking.Title), constant.Empty)
	}

	s.publishEvent(ctx, constant.EventBookingCreated, booking)

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllBooking)
		shared.InvalidateCaches(c, s.cache, cacheCountBooking)
	}()

	res.FromModel(booking)

	return res, nil
}

// resolvePhysical looks up the referenced meeting type. Bookings without a
// meeting type are treated as virtual.
func (s *serviceImpl) resolvePhysical(ctx context.Context, meetingTypeID *string) (bool, error) {
	if meetingTypeID == nil {
		return false, nil
	}

	meetingType, err := s.meetingTypeRepo.Get(ctx, shared.FilterByID(*meetingTypeID, meetingTypeModel.FieldID, meetingTypeModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get meeting type")

		return false, fmt.Errorf("failed to get meeting type: %w", err)
	}

	if meetingType.ID == constant.Empty {
		return false, failure.BadRequestFromString("meeting type does not exist") //nolint:wrapcheck
	}

	return meetingType.IsPhysical, nil
}

// geocodeBooking resolves coordinates for the booking address. Geocoding is
// best effort: the booking is saved without coordinates when the lookup
// fails or returns nothing.
func (s *serviceImpl) geocodeBooking(ctx context.Context, booking *model.Booking) {
	if booking.Address == nil {
		return
	}

	result, err := s.geocoder.Geocode(ctx, *booking.Address)
	if err != nil {
		log.Warn().Err(err).Str("address", *booking.Address).Msg("geocoding failed, saving booking without coordinates")

		return
	}

	booking.Latitude = &result.Latitude
	booking.Longitude = &result.Longitude

	if booking.PostalCode == nil && result.PostalCode != constant.Empty {
		booking.PostalCode = &result.PostalCode
	}

	if booking.City == nil && result.City != constant.Empty {
		booking.City = &result.City
	}
}

func (s *serviceImpl) logLeadActivity(ctx context.Context, booking model.Booking, user, content, reason string) {
	activity := activityModel.ActivityLog{
		ID:        uuid.NewString(),
		LeadID:    *booking.LeadID,
		BookingID: &booking.ID,
		UserID:    user,
		Type:      constant.ActivityTypeNote,
		Content:   content,
		Details: activityModel.Details{
			BookingID:       booking.ID,
			Title:           booking.Title,
			StartTime:       timezone.Format(booking.StartTime, constant.DateFormat),
			ApprovalStatus:  booking.ApprovalStatus,
			RejectionReason: reason,
		},
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}

	if err := s.activityRepo.Insert(ctx, activity); err != nil {
		log.Error().Err(err).Str("lead_id", activity.LeadID).Msg("failed to log lead activity")
	}
}

func (s *serviceImpl) publishEvent(ctx context.Context, event string, booking model.Booking) {
	go func() {
		c := context.WithoutCancel(ctx)

		payload := bookingEvent{
			Event:          event,
			BookingID:      booking.ID,
			UserID:         booking.UserID,
			Title:          booking.Title,
			StartTime:      timezone.Format(booking.StartTime, constant.DateFormat),
			EndTime:        timezone.Format(booking.EndTime, constant.DateFormat),
			ApprovalStatus: booking.ApprovalStatus,
		}

		if err := s.events.SendMessages(c, constant.EventTopicBooking, kafka.Message{Key: booking.ID, Value: payload}); err != nil {
			log.Error().Err(err).Str("event", event).Msg("failed to publish booking event")
		}
	}()
}

// visibilityFilter narrows the filter to the caller's own bookings for
// business development users. Managers and admins see everything.
func visibilityFilter(ctx context.Context, filter gDto.FilterGroup) gDto.FilterGroup {
	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)
	if role != constant.RoleBD {
		return filter
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldUserID,
				Operator: gDto.FilterOperatorEq,
				Value:    user,
				Table:    model.TableName,
			},
			filter,
		},
	}
}

func (s *serviceImpl) GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, opts ListOptions) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAllBookings")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter = visibilityFilter(ctx, filter)

	if opts.Sort == constant.SortProximity && opts.Lat != nil && opts.Lng != nil {
		return s.getAllByProximity(ctx, params, filter, *opts.Lat, *opts.Lng)
	}

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllBooking, params, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for bookings")

		return res, nil
	}

	defer func() {
		if err != nil {
			return
		}

		response := res

		go func() {
			c := context.WithoutCancel(ctx)

			if err := s.cache.Save(c, cacheKey, response, s.cfg.Cache.TTL); err != nil {
				log.Error().Err(err).Msg("failed to save bookings to cache")
			}
		}()
	}()

	total, err := s.count(ctx, params, filter)
	if err != nil {
		return res, err
	}

	models, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	res.FromModels(models, total, params.Limit)

	return res, nil
}

// getAllByProximity ranks the whole filtered set by distance before
// paginating, so page boundaries follow distance order rather than the
// storage order. Proximity results bypass the list cache.
func (s *serviceImpl) getAllByProximity(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, lat, lng float64) (res dto.GetBookingsResponse, err error) {
	fetchParams := params
	fetchParams.Page = 0
	fetchParams.Limit = 0

	models, err := s.repo.GetAll(ctx, fetchParams, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	res.FromModels(models, len(models), params.Limit)
	sortByProximity(res.Bookings, lat, lng)
	res.Bookings = pageOf(res.Bookings, params.Page, params.Limit)

	return res, nil
}

func pageOf(bookings []dto.BookingResponse, page, limit int) []dto.BookingResponse {
	if page <= 0 || limit <= 0 {
		return bookings
	}

	offset := (page - 1) * limit
	if offset >= len(bookings) {
		return []dto.BookingResponse{}
	}

	if end := offset + limit; end < len(bookings) {
		return bookings[offset:end]
	}

	return bookings[offset:]
}

// sortByProximity orders bookings by haversine distance from the reference
// point. Bookings without coordinates keep their relative order at the end.
func sortByProximity(bookings []dto.BookingResponse, lat, lng float64) {
	for i := range bookings {
		if bookings[i].Latitude == nil || bookings[i].Longitude == nil {
			continue
		}

		distance := geo.Haversine(lat, lng, *bookings[i].Latitude, *bookings[i].Longitude)
		bookings[i].DistanceKm = &distance
	}

	sort.SliceStable(bookings, func(i, j int) bool {
		left, right := bookings[i].DistanceKm, bookings[j].DistanceKm

		if left == nil {
			return false
		}

		if right == nil {
			return true
		}

		return *left < *right
	})
}

func (s *serviceImpl) GetGrouped(ctx context.Context, filter gDto.FilterGroup, opts ListOptions) (res dto.GroupedBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetGroupedBookings")
	defer scope.End()
	defer scope.TraceIfError(err)

	if opts.GroupBy != constant.GroupByDate && opts.GroupBy != constant.GroupByPostalCode {
		return res, failure.BadRequestFromString("group_by must be date or postal_code") //nolint:wrapcheck
	}

	filter = visibilityFilter(ctx, filter)

	params := gDto.QueryParams{SortBy: constant.DefaultValueSortBy, SortDir: constant.DefaultValueSortDir}

	models, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings for grouping")

		return res, fmt.Errorf("failed to get bookings for grouping: %w", err)
	}

	res.Groups = make(map[string][]dto.BookingResponse)
	res.TotalData = len(models)

	for _, mod := range models {
		key := groupKey(mod, opts.GroupBy)

		var response dto.BookingResponse
		response.FromModel(mod)

		res.Groups[key] = append(res.Groups[key], response)
	}

	// Proximity is orthogonal to grouping: the buckets stay, their
	// members get ranked by distance.
	if opts.Sort == constant.SortProximity && opts.Lat != nil && opts.Lng != nil {
		for key := range res.Groups {
			sortByProximity(res.Groups[key], *opts.Lat, *opts.Lng)
		}
	}

	return res, nil
}

func groupKey(booking model.Booking, groupBy string) string {
	if groupBy == constant.GroupByDate {
		return timezone.Format(booking.StartTime, constant.CalendarDateFormat)
	}

	if booking.PostalCode == nil || *booking.PostalCode == constant.Empty {
		return GroupKeyUnknown
	}

	return *booking.PostalCode
}

func (s *serviceImpl) Count(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CountBookings")
	defer scope.End()
	defer scope.TraceIfError(err)

	return s.count(ctx, params, visibilityFilter(ctx, filter))
}

func (s *serviceImpl) count(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountBooking, params, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for booking count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetBooking")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetBooking, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for booking")

		return res, nil
	}

	booking, err := s.getBooking(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(booking)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) getBooking(ctx context.Context, id string) (model.Booking, error) {
	booking, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return booking, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return booking, failure.NotFound("booking not found") //nolint:wrapcheck
	}

	return booking, nil
}

// Conflicts probes the caller's calendar for blocking bookings overlapping
// the given interval without creating anything.
func (s *serviceImpl) Conflicts(ctx context.Context, start, end time.Time) (res []dto.ConflictingBookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".BookingConflicts")
	defer scope.End()
	defer scope.TraceIfError(err)

	if !start.Before(end) {
		return nil, failure.BadRequestFromString("start time must be before end time") //nolint:wrapcheck
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	conflicts, err := s.repo.FindOverlapping(ctx, user, start, end)
	if err != nil {
		log.Error().Err(err).Msg("failed to probe booking conflicts")

		return nil, fmt.Errorf("failed to probe booking conflicts: %w", err)
	}

	return dto.ConflictsFromModels(conflicts), nil
}

func (s *serviceImpl) Approve(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ApproveBooking")
	defer scope.End()
	defer scope.TraceIfError(err)

	return s.decide(ctx, id, model.ApprovalApproved, constant.Empty)
}

func (s *serviceImpl) Reject(ctx context.Context, id string, req dto.RejectBookingRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".RejectBooking")
	defer scope.End()
	defer scope.TraceIfError(err)

	return s.decide(ctx, id, model.ApprovalRejected, req.Reason)
}

// decide applies an approval decision. Only managers and admins may decide,
// and only bookings still on hold can be decided: approval states are
// terminal once left.
func (s *serviceImpl) decide(ctx context.Context, id, decision, reason string) error {
	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)

	if role != constant.RoleManager && role != constant.RoleAdmin {
		return failure.Forbidden("only managers and admins can decide on bookings") //nolint:wrapcheck
	}

	booking, err := s.getBooking(ctx, id)
	if err != nil {
		return err
	}

	if booking.ApprovalStatus != model.ApprovalOnHold {
		return failure.InvalidState("booking is not awaiting approval") //nolint:wrapcheck
	}

	now := timezone.Now()
	updatedFields := map[string]any{
		model.FieldApprovalStatus: decision,
		constant.FieldModifiedAt:  now,
		constant.FieldModifiedBy:  user,
	}

	event := constant.EventBookingRejected

	if decision == model.ApprovalApproved {
		event = constant.EventBookingApproved
		updatedFields[model.FieldApprovedBy] = user
		updatedFields[model.FieldApprovedAt] = now
	} else if reason != constant.Empty {
		updatedFields[model.FieldRejectionReason] = reason
	}

	// The filter re-checks the on-hold state inside the UPDATE itself, so a
	// concurrent decision that got there first leaves this one a no-op.
	filter := shared.FilterByID(id, model.FieldID, model.TableName)
	filter.Filters = append(filter.Filters, gDto.Filter{
		Field:    model.FieldApprovalStatus,
		Operator: gDto.FilterOperatorEq,
		Value:    model.ApprovalOnHold,
		Table:    model.TableName,
	})

	if err := s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update booking approval")

		return fmt.Errorf("failed to update booking approval: %w", err)
	}

	booking.ApprovalStatus = decision

	if decision == model.ApprovalRejected && booking.LeadID != nil {
		s.logLeadActivity(ctx, booking, user, fmt.Sprintf("Meeting rejected: %s", booking.Title), reason)
	}

	s.publishEvent(ctx, event, booking)
	s.invalidateBookingCaches(ctx, id)

	return nil
}

var allowedTransitions = map[string][]string{
	model.StatusScheduled: {model.StatusConfirmed, model.StatusCancelled},
	model.StatusConfirmed: {model.StatusCompleted, model.StatusCancelled, model.StatusNoShow},
}

func (s *serviceImpl) UpdateStatus(ctx context.Context, id string, req dto.UpdateBookingStatusRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateBookingStatus")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	booking, err := s.getBooking(ctx, id)
	if err != nil {
		return err
	}

	allowed := false

	for _, next := range allowedTransitions[booking.Status] {
		if next == req.Status {
			allowed = true

			break
		}
	}

	if !allowed {
		return failure.InvalidState(fmt.Sprintf("cannot transition booking from %s to %s", booking.Status, req.Status)) //nolint:wrapcheck
	}

	updatedFields := map[string]any{
		model.FieldStatus:        req.Status,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: user,
	}

	if err := s.repo.Update(ctx, updatedFields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to update booking status")

		return fmt.Errorf("failed to update booking status: %w", err)
	}

	s.invalidateBookingCaches(ctx, id)

	return nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateBookingRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateBooking")
	defer scope.End()
	defer scope.TraceIfError(err)

	if req == (dto.UpdateBookingRequest{}) {
		return failure.BadRequestFromString("update request cannot be empty") //nolint:wrapcheck
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	if _, err := s.getBooking(ctx, id); err != nil {
		return err
	}

	updatedFields := shared.TransformFields(req, user)
	if err := s.repo.Update(ctx, updatedFields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to update booking")

		return fmt.Errorf("failed to update booking: %w", err)
	}

	s.invalidateBookingCaches(ctx, id)

	return nil
}

func (s *serviceImpl) invalidateBookingCaches(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetBooking, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete booking from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllBooking)
		shared.InvalidateCaches(c, s.cache, cacheCountBooking)
	}()
}
