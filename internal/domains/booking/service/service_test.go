package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"cadence/config"
	geocoderPkg "cadence/infras/geocoder"
	geocoderMocks "cadence/infras/geocoder/mocks"
	kafkaMocks "cadence/infras/kafka/mocks"
	"cadence/infras/otel/mocks"
	activityMocks "cadence/internal/domains/activity/mocks"
	activityModel "cadence/internal/domains/activity/model"
	bookingMocks "cadence/internal/domains/booking/mocks"
	"cadence/internal/domains/booking/model"
	"cadence/internal/domains/booking/model/dto"
	"cadence/internal/domains/booking/service"
	leadMocks "cadence/internal/domains/lead/mocks"
	meetingTypeModel "cadence/internal/domains/meetingtype/model"
	meetingTypeMocks "cadence/internal/domains/meetingtype/mocks"
	cacheMocks "cadence/shared/cache/mocks"
	"cadence/shared/constant"
	gDto "cadence/shared/dto"
	"cadence/shared/failure"
)

type testDeps struct {
	repo            *bookingMocks.MockBooking
	leadRepo        *leadMocks.MockLead
	meetingTypeRepo *meetingTypeMocks.MockMeetingType
	activityRepo    *activityMocks.MockActivity
	geocoder        *geocoderMocks.MockGeocoder
	events          *kafkaMocks.MockClient
	cache           *cacheMocks.MockRedisCache
	svc             service.Booking
}

func newTestService(ctrl *gomock.Controller) testDeps {
	deps := testDeps{
		repo:            bookingMocks.NewMockBooking(ctrl),
		leadRepo:        leadMocks.NewMockLead(ctrl),
		meetingTypeRepo: meetingTypeMocks.NewMockMeetingType(ctrl),
		activityRepo:    activityMocks.NewMockActivity(ctrl),
		geocoder:        geocoderMocks.NewMockGeocoder(ctrl),
		events:          kafkaMocks.NewMockClient(ctrl),
		cache:           cacheMocks.NewMockRedisCache(ctrl),
	}

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	deps.svc = service.New(
		deps.repo,
		deps.leadRepo,
		deps.meetingTypeRepo,
		deps.activityRepo,
		deps.geocoder,
		deps.events,
		cfg,
		deps.cache,
		mocks.NewOtel(),
	)

	// Event publishing and cache maintenance run on detached goroutines
	// and are best effort, tests never depend on them.
	deps.events.EXPECT().SendMessages(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	deps.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	deps.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	deps.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	return deps
}

func userContext(userID, role string) context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, userID)

	return context.WithValue(ctx, constant.ContextKeyUserRole, role)
}

func validCreateRequest() dto.CreateBookingRequest {
	return dto.CreateBookingRequest{
		Title:     "Quarterly review",
		StartTime: "2026-09-10T09:00:00Z",
		EndTime:   "2026-09-10T10:00:00Z",
	}
}

func TestBookingService_Create_RequiredFields(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	deps := newTestService(ctrl)
	ctx := userContext("user-1", constant.RoleBD)

	tests := []struct {
		name string
		req  dto.CreateBookingRequest
	}{
		{name: "missing title", req: dto.CreateBookingRequest{StartTime: "2026-09-10T09:00:00Z", EndTime: "2026-09-10T10:00:00Z"}},
		{name: "missing start time", req: dto.CreateBookingRequest{Title: "Review", EndTime: "2026-09-10T10:00:00Z"}},
		{name: "missing end time", req: dto.CreateBookingRequest{Title: "Review", StartTime: "2026-09-10T09:00:00Z"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := deps.svc.Create(ctx, tt.req)

			require.Error(t, err)
			assert.Equal(t, "Title, start time, and end time are required", err.Error())
			assert.Equal(t, 400, failure.GetCode(err))
		})
	}
}

func TestBookingService_Create_InvalidTimeRange(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	deps := newTestService(ctrl)
	ctx := userContext("user-1", constant.RoleBD)

	req := validCreateRequest()
	req.StartTime = "2026-09-10T10:00:00Z"
	req.EndTime = "2026-09-10T09:00:00Z"

	_, err := deps.svc.Create(ctx, req)

	require.Error(t, err)
	assert.Equal(t, "start time must be before end time", err.Error())
}

func TestBookingService_Create_PhysicalMeetingRequiresAddress(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	deps := newTestService(ctrl)
	ctx := userContext("user-1", constant.RoleBD)

	meetingTypeID := "0b3e4e47-0a46-4a54-b385-5a92d1b0f2e1"
	req := validCreateRequest()
	req.MeetingTypeID = &meetingTypeID

	deps.meetingTypeRepo.EXPECT().
		Get(gomock.Any(), gomock.Any()).
		Return(meetingTypeModel.MeetingType{ID: meetingTypeID, IsPhysical: true}, nil)

	_, err := deps.svc.Create(ctx, req)

	require.Error(t, err)
	assert.Equal(t, "Address is required for physical meetings", err.Error())
	assert.Equal(t, 400, failure.GetCode(err))
}

func TestBookingService_Create_GeocodingFailureDegradesGracefully(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	deps := newTestService(ctrl)
	ctx := userContext("user-1", constant.RoleBD)

	meetingTypeID := "0b3e4e47-0a46-4a54-b385-5a92d1b0f2e1"
	address := "10 Rue de Rivoli, Paris"
	req := validCreateRequest()
	req.MeetingTypeID = &meetingTypeID
	req.Address = &address

	deps.meetingTypeRepo.EXPECT().
		Get(gomock.Any(), gomock.Any()).
		Return(meetingTypeModel.MeetingType{ID: meetingTypeID, IsPhysical: true}, nil)

	deps.geocoder.EXPECT().
		Geocode(gomock.Any(), address).
		Return(geocoderPkg.Result{}, errors.New("geocoder unavailable"))

	var inserted model.Booking

	deps.repo.EXPECT().
		InsertWithConflictCheck(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, booking model.Booking) ([]model.Booking, error) {
			inserted = booking

			return nil, nil
		})

	res, err := deps.svc.Create(ctx, req)

	require.NoError(t, err)
	assert.Nil(t, inserted.Latitude)
	assert.Nil(t, inserted.Longitude)
	assert.Equal(t, address, *res.Address)
}

func TestBookingService_Create_GeocodingFillsCoordinates(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	deps := newTestService(ctrl)
	ctx := userContext("user-1", constant.RoleBD)

	meetingTypeID := "0b3e4e47-0a46-4a54-b385-5a92d1b0f2e1"
	address := "10 Rue de Rivoli, Paris"
	req := validCreateRequest()
	req.MeetingTypeID = &meetingTypeID
	req.Address = &address

	deps.meetingTypeRepo.EXPECT().
		Get(gomock.Any(), gomock.Any()).
		Return(meetingTypeModel.MeetingType{ID: meetingTypeID, IsPhysical: true}, nil)

	deps.geocoder.EXPECT().
		Geocode(gomock.Any(), address).
		Return(geocoderPkg.Result{Latitude: 48.8556, Longitude: 2.3622, PostalCode: "75004", City: "Paris"}, nil)

	deps.repo.EXPECT().
		InsertWithConflictCheck(gomock.Any(), gomock.Any()).
		Return(nil, nil)

	res, err := deps.svc.Create(ctx, req)

	require.NoError(t, err)
	require.NotNil(t, res.Latitude)
	assert.InDelta(t, 48.8556, *res.Latitude, 0.0001)
	assert.Equal(t, "75004", *res.PostalCode)
	assert.Equal(t, "Paris", *res.City)
}

func TestBookingService_Create_Conflict(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	deps := newTestService(ctrl)
	ctx := userContext("user-1", constant.RoleBD)

	existing := model.Booking{
		ID:        "b-1",
		Title:     "Existing meeting",
		StartTime: time.Date(2026, 9, 10, 9, 30, 0, 0, time.UTC),
		EndTime:   time.Date(2026, 9, 10, 10, 30, 0, 0, time.UTC),
	}

	deps.repo.EXPECT().
		InsertWithConflictCheck(gomock.Any(), gomock.Any()).
		Return([]model.Booking{existing}, nil)

	_, err := deps.svc.Create(ctx, validCreateRequest())

	require.Error(t, err)
	assert.Equal(t, 409, failure.GetCode(err))

	details, ok := failure.GetDetails(err).([]dto.ConflictingBookingResponse)
	require.True(t, ok)
	require.Len(t, details, 1)
	assert.Equal(t, "b-1", details[0].ID)
	assert.Equal(t, "Existing meeting", details[0].Title)
}

func TestBookingService_Create_ApprovalDerivedFromRole(t *testing.T) {
	tests := []struct {
		name         string
		role         string
		wantApproval string
		wantApprover bool
	}{
		{name: "bd booking goes on hold", role: constant.RoleBD, wantApproval: model.ApprovalOnHold},
		{name: "developer booking goes on hold", role: constant.RoleDeveloper, wantApproval: model.ApprovalOnHold},
		{name: "manager booking is auto approved", role: constant.RoleManager, wantApproval: model.ApprovalApproved, wantApprover: true},
		{name: "admin booking is auto approved", role: constant.RoleAdmin, wantApproval: model.ApprovalApproved, wantApprover: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			deps := newTestService(ctrl)
			ctx := userContext("user-1", tt.role)

			var inserted model.Booking

			deps.repo.EXPECT().
				InsertWithConflictCheck(gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, booking model.Booking) ([]model.Booking, error) {
					inserted = booking

					return nil, nil
				})

			_, err := deps.svc.Create(ctx, validCreateRequest())

			require.NoError(t, err)
			assert.Equal(t, tt.wantApproval, inserted.ApprovalStatus)

			if tt.wantApprover {
				require.NotNil(t, inserted.ApprovedBy)
				assert.Equal(t, "user-1", *inserted.ApprovedBy)
				assert.NotNil(t, inserted.ApprovedAt)
			} else {
				assert.Nil(t, inserted.ApprovedBy)
				assert.Nil(t, inserted.ApprovedAt)
			}
		})
	}
}

func TestBookingService_Create_LeadActivityLogged(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	deps := newTestService(ctrl)
	ctx := userContext("user-1", constant.RoleBD)

	leadID := "6a0a1f9e-bd0c-4b3e-94a2-3e8f0a3a80d4"
	req := validCreateRequest()
	req.LeadID = &leadID

	deps.leadRepo.EXPECT().
		Exist(gomock.Any(), gomock.Any()).
		Return(true, nil)

	deps.repo.EXPECT().
		InsertWithConflictCheck(gomock.Any(), gomock.Any()).
		Return(nil, nil)

	var logged activityModel.ActivityLog

	deps.activityRepo.EXPECT().
		Insert(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, activity activityModel.ActivityLog) error {
			logged = activity

			return nil
		})

	res, err := deps.svc.Create(ctx, req)

	require.NoError(t, err)
	assert.Equal(t, leadID, logged.LeadID)
	require.NotNil(t, logged.BookingID)
	assert.Equal(t, res.ID, *logged.BookingID)
	assert.Equal(t, res.ID, logged.Details.BookingID)
	assert.Equal(t, "Quarterly review", logged.Details.Title)
	assert.Equal(t, model.ApprovalOnHold, logged.Details.ApprovalStatus)

	loggedStart, parseErr := time.Parse(constant.DateFormat, logged.Details.StartTime)
	require.NoError(t, parseErr)
	assert.True(t, loggedStart.Equal(time.Date(2026, 9, 10, 9, 0, 0, 0, time.UTC)))
}

func TestBookingService_Approve(t *testing.T) {
	onHold := model.Booking{ID: "b-1", Status: model.StatusScheduled, ApprovalStatus: model.ApprovalOnHold}

	tests := []struct {
		name      string
		role      string
		setupMock func(deps testDeps)
		wantErr   string
		wantCode  int
	}{
		{
			name:     "bd cannot approve",
			role:     constant.RoleBD,
			wantErr:  "only managers and admins can decide on bookings",
			wantCode: 403,
		},
		{
			name: "already approved booking cannot be decided again",
			role: constant.RoleManager,
			setupMock: func(deps testDeps) {
				approved := onHold
				approved.ApprovalStatus = model.ApprovalApproved

				deps.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss")).AnyTimes()
				deps.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(approved, nil)
			},
			wantErr:  "booking is not awaiting approval",
			wantCode: 422,
		},
		{
			name: "rejected booking cannot be approved",
			role: constant.RoleAdmin,
			setupMock: func(deps testDeps) {
				rejected := onHold
				rejected.ApprovalStatus = model.ApprovalRejected

				deps.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss")).AnyTimes()
				deps.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(rejected, nil)
			},
			wantErr:  "booking is not awaiting approval",
			wantCode: 422,
		},
		{
			name: "manager approves on hold booking",
			role: constant.RoleManager,
			setupMock: func(deps testDeps) {
				deps.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss")).AnyTimes()
				deps.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(onHold, nil)
				deps.repo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, filter gDto.FilterGroup) error {
						assert.Equal(t, model.ApprovalApproved, fields[model.FieldApprovalStatus])
						assert.Equal(t, "manager-1", fields[model.FieldApprovedBy])
						assert.NotNil(t, fields[model.FieldApprovedAt])

						// The update only lands while the booking is still
						// on hold, so concurrent decisions cannot both win.
						assert.Contains(t, filter.Filters, gDto.Filter{
							Field:    model.FieldApprovalStatus,
							Operator: gDto.FilterOperatorEq,
							Value:    model.ApprovalOnHold,
							Table:    model.TableName,
						})

						return nil
					})
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			deps := newTestService(ctrl)

			if tt.setupMock != nil {
				tt.setupMock(deps)
			}

			ctx := userContext("manager-1", tt.role)
			err := deps.svc.Approve(ctx, "b-1")

			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Equal(t, tt.wantErr, err.Error())
				assert.Equal(t, tt.wantCode, failure.GetCode(err))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestBookingService_Reject_StoresReason(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	deps := newTestService(ctrl)
	ctx := userContext("manager-1", constant.RoleManager)

	onHold := model.Booking{ID: "b-1", Status: model.StatusScheduled, ApprovalStatus: model.ApprovalOnHold}

	deps.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss")).AnyTimes()
	deps.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(onHold, nil)
	deps.repo.EXPECT().
		Update(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, fields map[string]any, _ any) error {
			assert.Equal(t, model.ApprovalRejected, fields[model.FieldApprovalStatus])
			assert.Equal(t, "double booked room", fields[model.FieldRejectionReason])
			assert.NotContains(t, fields, model.FieldApprovedBy)

			return nil
		})

	err := deps.svc.Reject(ctx, "b-1", dto.RejectBookingRequest{Reason: "double booked room"})

	assert.NoError(t, err)
}

func TestBookingService_Reject_EchoesToLeadActivity(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	deps := newTestService(ctrl)
	ctx := userContext("manager-1", constant.RoleManager)

	leadID := "6a0a1f9e-bd0c-4b3e-94a2-3e8f0a3a80d4"
	onHold := model.Booking{
		ID:             "b-1",
		LeadID:         &leadID,
		Title:          "Quarterly review",
		Status:         model.StatusScheduled,
		ApprovalStatus: model.ApprovalOnHold,
	}

	deps.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss")).AnyTimes()
	deps.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(onHold, nil)
	deps.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

	var logged activityModel.ActivityLog

	deps.activityRepo.EXPECT().
		Insert(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, activity activityModel.ActivityLog) error {
			logged = activity

			return nil
		})

	err := deps.svc.Reject(ctx, "b-1", dto.RejectBookingRequest{Reason: "client postponed"})

	require.NoError(t, err)
	assert.Equal(t, leadID, logged.LeadID)
	assert.Equal(t, "Meeting rejected: Quarterly review", logged.Content)
	assert.Equal(t, model.ApprovalRejected, logged.Details.ApprovalStatus)
	assert.Equal(t, "client postponed", logged.Details.RejectionReason)
}

func TestBookingService_GetGrouped(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	deps := newTestService(ctrl)
	ctx := userContext("manager-1", constant.RoleManager)

	postal := "75004"
	models := []model.Booking{
		{ID: "b-1", StartTime: time.Date(2026, 9, 10, 9, 0, 0, 0, time.UTC), EndTime: time.Date(2026, 9, 10, 10, 0, 0, 0, time.UTC), PostalCode: &postal},
		{ID: "b-2", StartTime: time.Date(2026, 9, 10, 14, 0, 0, 0, time.UTC), EndTime: time.Date(2026, 9, 10, 15, 0, 0, 0, time.UTC)},
		{ID: "b-3", StartTime: time.Date(2026, 9, 11, 9, 0, 0, 0, time.UTC), EndTime: time.Date(2026, 9, 11, 10, 0, 0, 0, time.UTC), PostalCode: &postal},
	}

	t.Run("group by date", func(t *testing.T) {
		deps.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(models, nil)

		res, err := deps.svc.GetGrouped(ctx, gModelFilter(), service.ListOptions{GroupBy: constant.GroupByDate})

		require.NoError(t, err)
		assert.Len(t, res.Groups["2026-09-10"], 2)
		assert.Len(t, res.Groups["2026-09-11"], 1)
		assert.Equal(t, 3, res.TotalData)
		assert.Equal(t, len(models), groupedSize(res))
	})

	t.Run("group by postal code with unknown bucket", func(t *testing.T) {
		deps.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(models, nil)

		res, err := deps.svc.GetGrouped(ctx, gModelFilter(), service.ListOptions{GroupBy: constant.GroupByPostalCode})

		require.NoError(t, err)
		assert.Len(t, res.Groups["75004"], 2)
		assert.Len(t, res.Groups[service.GroupKeyUnknown], 1)
		assert.Equal(t, len(models), groupedSize(res))
	})

	t.Run("invalid group key", func(t *testing.T) {
		_, err := deps.svc.GetGrouped(ctx, gModelFilter(), service.ListOptions{GroupBy: "city"})

		require.Error(t, err)
		assert.Equal(t, 400, failure.GetCode(err))
	})
}

func TestBookingService_GetGrouped_ProximityWithinBuckets(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	deps := newTestService(ctrl)
	ctx := userContext("manager-1", constant.RoleManager)

	parisLat, parisLng := 48.8566, 2.3522
	closeLat, closeLng := 48.86, 2.36
	farLat, farLng := 43.2965, 5.3698

	day := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
	models := []model.Booking{
		{ID: "far", StartTime: day.Add(9 * time.Hour), EndTime: day.Add(10 * time.Hour), Latitude: &farLat, Longitude: &farLng},
		{ID: "near", StartTime: day.Add(14 * time.Hour), EndTime: day.Add(15 * time.Hour), Latitude: &closeLat, Longitude: &closeLng},
	}

	deps.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(models, nil)

	res, err := deps.svc.GetGrouped(ctx, gModelFilter(), service.ListOptions{
		GroupBy: constant.GroupByDate,
		Sort:    constant.SortProximity,
		Lat:     &parisLat,
		Lng:     &parisLng,
	})

	require.NoError(t, err)
	group := res.Groups["2026-09-10"]
	require.Len(t, group, 2)
	assert.Equal(t, "near", group[0].ID)
	assert.Equal(t, "far", group[1].ID)
	require.NotNil(t, group[0].DistanceKm)
	require.NotNil(t, group[1].DistanceKm)
	assert.Less(t, *group[0].DistanceKm, *group[1].DistanceKm)
}

func gModelFilter() gDto.FilterGroup {
	return gDto.FilterGroup{}
}

func gDtoParams() gDto.QueryParams {
	return gDto.QueryParams{Page: 1, Limit: 10}
}

func groupedSize(res dto.GroupedBookingsResponse) (total int) {
	for _, group := range res.Groups {
		total += len(group)
	}

	return total
}

func TestBookingService_GetAll_ProximitySort(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	deps := newTestService(ctrl)
	ctx := userContext("manager-1", constant.RoleManager)

	paris := [2]float64{48.8566, 2.3522}
	closeLat, closeLng := 48.86, 2.36
	farLat, farLng := 43.2965, 5.3698

	models := []model.Booking{
		{ID: "far", Latitude: &farLat, Longitude: &farLng},
		{ID: "no-coords"},
		{ID: "near", Latitude: &closeLat, Longitude: &closeLng},
	}

	t.Run("full set ranked by distance", func(t *testing.T) {
		deps.repo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, params gDto.QueryParams, _ gDto.FilterGroup, _ ...string) ([]model.Booking, error) {
				// Ranking happens over the whole filtered set, so the fetch
				// itself must not be paginated.
				assert.Zero(t, params.Page)
				assert.Zero(t, params.Limit)

				return models, nil
			})

		res, err := deps.svc.GetAll(ctx, gDtoParams(), gModelFilter(), service.ListOptions{
			Sort: constant.SortProximity,
			Lat:  &paris[0],
			Lng:  &paris[1],
		})

		require.NoError(t, err)
		require.Len(t, res.Bookings, 3)
		assert.Equal(t, 3, res.TotalData)
		assert.Equal(t, "near", res.Bookings[0].ID)
		assert.Equal(t, "far", res.Bookings[1].ID)
		assert.Equal(t, "no-coords", res.Bookings[2].ID)

		require.NotNil(t, res.Bookings[0].DistanceKm)
		require.NotNil(t, res.Bookings[1].DistanceKm)
		assert.Nil(t, res.Bookings[2].DistanceKm)
		assert.Less(t, *res.Bookings[0].DistanceKm, *res.Bookings[1].DistanceKm)
	})

	t.Run("pages follow distance order", func(t *testing.T) {
		deps.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(models, nil).Times(2)

		opts := service.ListOptions{
			Sort: constant.SortProximity,
			Lat:  &paris[0],
			Lng:  &paris[1],
		}

		first, err := deps.svc.GetAll(ctx, gDto.QueryParams{Page: 1, Limit: 2}, gModelFilter(), opts)
		require.NoError(t, err)
		require.Len(t, first.Bookings, 2)
		assert.Equal(t, "near", first.Bookings[0].ID)
		assert.Equal(t, "far", first.Bookings[1].ID)

		second, err := deps.svc.GetAll(ctx, gDto.QueryParams{Page: 2, Limit: 2}, gModelFilter(), opts)
		require.NoError(t, err)
		require.Len(t, second.Bookings, 1)
		assert.Equal(t, "no-coords", second.Bookings[0].ID)
	})
}

func TestBookingService_Conflicts(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	deps := newTestService(ctrl)
	ctx := userContext("user-1", constant.RoleBD)

	start := time.Date(2026, 9, 10, 9, 0, 0, 0, time.UTC)
	end := time.Date(2026, 9, 10, 10, 0, 0, 0, time.UTC)

	t.Run("invalid range", func(t *testing.T) {
		_, err := deps.svc.Conflicts(ctx, end, start)

		require.Error(t, err)
		assert.Equal(t, 400, failure.GetCode(err))
	})

	t.Run("conflicts returned", func(t *testing.T) {
		deps.repo.EXPECT().
			FindOverlapping(gomock.Any(), "user-1", start, end).
			Return([]model.Booking{{ID: "b-1", Title: "Standup", StartTime: start, EndTime: end}}, nil)

		res, err := deps.svc.Conflicts(ctx, start, end)

		require.NoError(t, err)
		require.Len(t, res, 1)
		assert.Equal(t, "b-1", res[0].ID)
	})
}

func TestBookingService_UpdateStatus(t *testing.T) {
	tests := []struct {
		name    string
		current string
		next    string
		wantErr bool
	}{
		{name: "scheduled to confirmed", current: model.StatusScheduled, next: model.StatusConfirmed},
		{name: "scheduled to cancelled", current: model.StatusScheduled, next: model.StatusCancelled},
		{name: "confirmed to completed", current: model.StatusConfirmed, next: model.StatusCompleted},
		{name: "confirmed to no show", current: model.StatusConfirmed, next: model.StatusNoShow},
		{name: "completed is terminal", current: model.StatusCompleted, next: model.StatusCancelled, wantErr: true},
		{name: "cancelled is terminal", current: model.StatusCancelled, next: model.StatusConfirmed, wantErr: true},
		{name: "scheduled cannot complete directly", current: model.StatusScheduled, next: model.StatusCompleted, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			deps := newTestService(ctrl)
			ctx := userContext("user-1", constant.RoleBD)

			booking := model.Booking{ID: "b-1", Status: tt.current, ApprovalStatus: model.ApprovalApproved}

			deps.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss")).AnyTimes()
			deps.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking, nil)

			if !tt.wantErr {
				deps.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
			}

			err := deps.svc.UpdateStatus(ctx, "b-1", dto.UpdateBookingStatusRequest{Status: tt.next})

			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, 422, failure.GetCode(err))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestBookingService_Get_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	deps := newTestService(ctrl)
	ctx := userContext("user-1", constant.RoleBD)

	deps.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
	deps.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Booking{}, nil)

	_, err := deps.svc.Get(ctx, "missing")

	require.Error(t, err)
	assert.Equal(t, 404, failure.GetCode(err))
}
