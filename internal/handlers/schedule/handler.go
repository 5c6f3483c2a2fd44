package schedule

import (
	"net/http"
	"pomade/infras/otel"
	"pomade/internal/domains/schedule/model/dto"
	"pomade/internal/domains/schedule/service"
	"pomade/shared/constant"
	"pomade/shared/validator"
	"pomade/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Schedule
	otel    otel.Otel
}

func New(service service.Schedule, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/staff/{staff_id}/schedule", func(routerGroup chi.Router) {
		routerGroup.Get("/template", handler.GetTemplate)
		routerGroup.Put("/template", handler.UpdateTemplate)
		routerGroup.Get("/month/{day}", handler.GetMonthSchedule)
		routerGroup.Put("/month/{day}", handler.ApplyMonthSchedule)
		routerGroup.Get("/{day}", handler.GetDaySchedule)
		routerGroup.Put("/{day}", handler.ApplyDaySchedule)
		routerGroup.Delete("/{day}", handler.RestoreDefault)
	})
}

// GetTemplate retrieves a staff member's default weekly slot template.
// @Summary Get a staff member's schedule template
// @Description Retrieve the default slot template a staff member works when no per-date override exists.
// @Tags Schedule
// @Accept json
// @Produce json
// @Param staff_id path string true "Staff ID"
// @Success 200 {object} response.Data[dto.TemplateResponse] "Schedule template"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/staff/{staff_id}/schedule/template [get]
// @Security BearerAuth
func (handler *Handler) GetTemplate(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetTemplate")
	defer scope.End()

	staffID := chi.URLParam(r, constant.RequestParamStaffID)

	template, err := handler.service.GetTemplate(ctx, staffID)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get schedule template")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Schedule template retrieved successfully")

	response.WithJSON(w, http.StatusOK, template)
}

// UpdateTemplate replaces a staff member's default slot template.
// @Summary Update a staff member's schedule template
// @Description Replace the default slots. Existing bookings and per-date overrides are untouched, future dates without an override adopt the new defaults.
// @Tags Schedule
// @Accept json
// @Produce json
// @Param staff_id path string true "Staff ID"
// @Param request body dto.UpdateTemplateRequest true "Update Template Request"
// @Success 200 {object} response.Message "Schedule template updated successfully"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/staff/{staff_id}/schedule/template [put]
// @Security BearerAuth
func (handler *Handler) UpdateTemplate(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateTemplate")
	defer scope.End()

	staffID := chi.URLParam(r, constant.RequestParamStaffID)

	req := dto.UpdateTemplateRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.UpdateTemplate(ctx, staffID, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update schedule template")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Schedule template updated successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Schedule template updated successfully")
}

// GetDaySchedule resolves the bookable slots of one staff member for one day.
// @Summary Get the bookable slots for a day
// @Description Resolve the slots a customer can still book: the day's effective slots minus active appointments, with already-elapsed slots dropped when the day is today.
// @Tags Schedule
// @Accept json
// @Produce json
// @Param staff_id path string true "Staff ID"
// @Param day path string true "Day (YYYY-MM-DD)"
// @Success 200 {object} response.Data[dto.DayScheduleResponse] "Bookable slots"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/staff/{staff_id}/schedule/{day} [get]
func (handler *Handler) GetDaySchedule(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetDaySchedule")
	defer scope.End()

	staffID := chi.URLParam(r, constant.RequestParamStaffID)
	day := chi.URLParam(r, constant.RequestParamDay)

	schedule, err := handler.service.Resolve(ctx, staffID, day)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to resolve day schedule")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Day schedule resolved successfully")

	response.WithJSON(w, http.StatusOK, schedule)
}

// GetMonthSchedule returns the effective slots of every day in a month.
// @Summary Get a month of effective schedules
// @Description Return one entry per day of the month containing the effective slots and whether an override is in place. Any day of the wanted month works as the path anchor.
// @Tags Schedule
// @Accept json
// @Produce json
// @Param staff_id path string true "Staff ID"
// @Param day path string true "Any day of the month (YYYY-MM-DD)"
// @Success 200 {object} response.Data[dto.MonthScheduleResponse] "Month schedule"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/staff/{staff_id}/schedule/month/{day} [get]
// @Security BearerAuth
func (handler *Handler) GetMonthSchedule(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetMonthSchedule")
	defer scope.End()

	staffID := chi.URLParam(r, constant.RequestParamStaffID)
	day := chi.URLParam(r, constant.RequestParamDay)

	schedule, err := handler.service.ResolveMonth(ctx, staffID, day)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to resolve month schedule")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Month schedule resolved successfully")

	response.WithJSON(w, http.StatusOK, schedule)
}

// ApplyDaySchedule edits the slots of a single day.
// @Summary Apply a schedule edit to one day
// @Description Upsert a per-date override. When active bookings no longer fit the new slots the edit is rejected with the conflict list, unless a resolution is given.
// @Tags Schedule
// @Accept json
// @Produce json
// @Param staff_id path string true "Staff ID"
// @Param day path string true "Day (YYYY-MM-DD)"
// @Param request body dto.ApplyScheduleRequest true "Apply Schedule Request"
// @Success 200 {object} response.Message "Schedule applied successfully"
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error "Conflicting bookings, details carry the conflict list"
// @Failure 500 {object} response.Error
// @Router /v1/staff/{staff_id}/schedule/{day} [put]
// @Security BearerAuth
func (handler *Handler) ApplyDaySchedule(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ApplyDaySchedule")
	defer scope.End()

	staffID := chi.URLParam(r, constant.RequestParamStaffID)
	day := chi.URLParam(r, constant.RequestParamDay)

	req := dto.ApplyScheduleRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.ApplyDay(ctx, staffID, day, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to apply day schedule")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Day schedule applied successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Schedule applied successfully")
}

// ApplyMonthSchedule edits the slots of every day in a month.
// @Summary Apply a schedule edit to a whole month
// @Description Overwrite the override of every day in the month with the given slots. Pre-existing overrides in that month are replaced. Conflict handling works as in the single-day edit.
// @Tags Schedule
// @Accept json
// @Produce json
// @Param staff_id path string true "Staff ID"
// @Param day path string true "Any day of the month (YYYY-MM-DD)"
// @Param request body dto.ApplyScheduleRequest true "Apply Schedule Request"
// @Success 200 {object} response.Message "Schedule applied successfully"
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error "Conflicting bookings, details carry the conflict list"
// @Failure 500 {object} response.Error
// @Router /v1/staff/{staff_id}/schedule/month/{day} [put]
// @Security BearerAuth
func (handler *Handler) ApplyMonthSchedule(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ApplyMonthSchedule")
	defer scope.End()

	staffID := chi.URLParam(r, constant.RequestParamStaffID)
	day := chi.URLParam(r, constant.RequestParamDay)

	req := dto.ApplyScheduleRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.ApplyMonth(ctx, staffID, day, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to apply month schedule")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Month schedule applied successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Schedule applied successfully")
}

// RestoreDefault removes a day's override so the template applies again.
// @Summary Restore a day to the default template
// @Description Delete the per-date override. The day resolves from the template again and tracks future template changes.
// @Tags Schedule
// @Accept json
// @Produce json
// @Param staff_id path string true "Staff ID"
// @Param day path string true "Day (YYYY-MM-DD)"
// @Success 200 {object} response.Message "Schedule restored to default"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/staff/{staff_id}/schedule/{day} [delete]
// @Security BearerAuth
func (handler *Handler) RestoreDefault(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".RestoreDefault")
	defer scope.End()

	staffID := chi.URLParam(r, constant.RequestParamStaffID)
	day := chi.URLParam(r, constant.RequestParamDay)

	if err := handler.service.RestoreDefault(ctx, staffID, day); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to restore schedule to default")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Schedule restored to default by user " + user)

	response.WithMessage(w, http.StatusOK, "Schedule restored to default")
}
