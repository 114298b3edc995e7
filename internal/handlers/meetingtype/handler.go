package meetingtype

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"cadence/infras/otel"
	"cadence/internal/domains/meetingtype/service"
	"cadence/shared/constant"
	"cadence/transport/http/response"
)

type Handler struct {
	service service.MeetingType
	otel    otel.Otel
}

func New(service service.MeetingType, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/meeting-types", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetMeetingTypes)
	})
}

// GetMeetingTypes lists the active meeting types.
// @Summary Get meeting types
// @Description Retrieve the active meeting types for booking forms.
// @Tags MeetingType
// @Accept json
// @Produce json
// @Success 200 {object} response.Data[dto.GetMeetingTypesResponse] "List of meeting types"
// @Failure 500 {object} response.Error
// @Router /v1/meeting-types [get]
// @Security BearerAuth
func (handler *Handler) GetMeetingTypes(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetMeetingTypes")
	defer scope.End()

	meetingTypes, err := handler.service.GetAll(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get meeting types")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Meeting types retrieved successfully")

	response.WithJSON(w, http.StatusOK, meetingTypes)
}
