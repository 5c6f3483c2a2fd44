package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"pomade/config"
	"pomade/infras/otel"
	apptModel "pomade/internal/domains/appointment/model"
	apptRepo "pomade/internal/domains/appointment/repository"
	"pomade/internal/domains/schedule/model"
	"pomade/internal/domains/schedule/model/dto"
	"pomade/internal/domains/schedule/repository"
	"pomade/shared"
	"pomade/shared/cache"
	"pomade/shared/constant"
	gDto "pomade/shared/dto"
	"pomade/shared/failure"
	"pomade/shared/timezone"
)

const (
	cacheResolveSchedule = "schedule:resolve"
	cacheMonthSchedule   = "schedule:month"
	cacheGetTemplate     = "schedule:template"
)

type Schedule interface {
	GetTemplate(ctx context.Context, staffID string) (dto.TemplateResponse, error)
	UpdateTemplate(ctx context.Context, staffID string, req dto.UpdateTemplateRequest) error
	Resolve(ctx context.Context, staffID, day string) (dto.DayScheduleResponse, error)
	ResolveMonth(ctx context.Context, staffID, day string) (dto.MonthScheduleResponse, error)
	ApplyDay(ctx context.Context, staffID, day string, req dto.ApplyScheduleRequest) error
	ApplyMonth(ctx context.Context, staffID, day string, req dto.ApplyScheduleRequest) error
	RestoreDefault(ctx context.Context, staffID, day string) error
}

type serviceImpl struct {
	templateRepo repository.Template
	overrideRepo repository.Override
	apptRepo     apptRepo.Appointment
	cfg          *config.Config
	cache        cache.RedisCache
	otel         otel.Otel
}

func New(templateRepo repository.Template, overrideRepo repository.Override, appointmentRepo apptRepo.Appointment, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Schedule {
	return &serviceImpl{
		templateRepo: templateRepo,
		overrideRepo: overrideRepo,
		apptRepo:     appointmentRepo,
		cfg:          cfg,
		cache:        cache,
		otel:         otel,
	}
}

func (s *serviceImpl) GetTemplate(ctx context.Context, staffID string) (res dto.TemplateResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetTemplate")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetTemplate, staffID)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for schedule template")

		return res, nil
	}

	template, err := s.templateRepo.Get(ctx, shared.FilterByID(staffID, model.FieldStaffID, model.TemplateTableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get schedule template")

		return res, fmt.Errorf("failed to get schedule template: %w", err)
	}

	if template.ID == constant.Empty {
		// Unconfigured staff work the house slots.
		res.StaffID = staffID
		res.DefaultSlots = model.EffectiveSlots(nil, nil)

		return res, nil
	}

	res.FromModel(template)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save schedule template to cache")
		}
	}()

	return res, nil
}

// UpdateTemplate replaces a staff member's default slots. Defaults only
// apply to days without an override and a booking already made keeps its
// slot, so this path does not run conflict detection.
func (s *serviceImpl) UpdateTemplate(ctx context.Context, staffID string, req dto.UpdateTemplateRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateTemplate")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	template := req.ToModel(staffID, user)

	err = s.templateRepo.Upsert(
		ctx,
		template,
		[]string{model.FieldStaffID},
		[]string{model.FieldDefaultSlots, constant.FieldModifiedAt, constant.FieldModifiedBy},
	)
	if err != nil {
		log.Error().Err(err).Msg("failed to upsert schedule template")

		return fmt.Errorf("failed to upsert schedule template: %w", err)
	}

	s.invalidateScheduleCaches(ctx)

	return nil
}

// Resolve returns the slots a customer can still book for one staff member
// on one day: the effective slots minus active bookings, minus slots about
// to start when the day is today.
func (s *serviceImpl) Resolve(ctx context.Context, staffID, day string) (res dto.DayScheduleResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Resolve")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheResolveSchedule, staffID, day)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for resolved schedule")

		res.Slots = model.FilterElapsedSlots(res.Slots, day, timezone.Now(), model.ElapsedBuffer)

		return res, nil
	}

	effective, err := s.effectiveSlots(ctx, staffID, day)
	if err != nil {
		return res, err
	}

	active, err := s.activeBookings(ctx, apptRepo.ActiveDayFilter(staffID, day))
	if err != nil {
		return res, err
	}

	bookedTimes := make([]string, len(active))
	for i, booking := range active {
		bookedTimes[i] = booking.Time
	}

	res.StaffID = staffID
	res.Day = day
	res.Slots = model.ResolveBookableSlots(effective, bookedTimes)

	// The cache holds the unfiltered list; the elapsed filter below is
	// presentation-time only and must not leak into the cached entry.
	go func(toCache dto.DayScheduleResponse) {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, toCache, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save resolved schedule to cache")
		}
	}(res)

	res.Slots = model.FilterElapsedSlots(res.Slots, day, timezone.Now(), model.ElapsedBuffer)

	return res, nil
}

// ResolveMonth returns the editing grid for the month containing day:
// every day's effective slots and whether an override shadows the default.
func (s *serviceImpl) ResolveMonth(ctx context.Context, staffID, day string) (res dto.MonthScheduleResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ResolveMonth")
	defer scope.End()
	defer scope.TraceIfError(err)

	days := model.MonthDays(day)
	if days == nil {
		return res, failure.BadRequestFromString("invalid day") // nolint:wrapcheck
	}

	cacheKey := shared.BuildCacheKeyWithQuery(cacheMonthSchedule, staffID, days[0])

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for month schedule")

		return res, nil
	}

	defaults, err := s.defaultSlots(ctx, staffID)
	if err != nil {
		return res, err
	}

	overrides, err := s.overrideRepo.GetAll(ctx, gDto.QueryParams{}, monthOverrideFilter(staffID, days[0], days[len(days)-1]))
	if err != nil {
		log.Error().Err(err).Msg("failed to get schedule overrides")

		return res, fmt.Errorf("failed to get schedule overrides: %w", err)
	}

	overrideByDay := make(map[string]model.Override, len(overrides))
	for _, override := range overrides {
		overrideByDay[override.Day] = override
	}

	res.StaffID = staffID
	res.Month = days[0][:7]
	res.Days = make([]dto.MonthDayResponse, len(days))

	for i, d := range days {
		var override *model.Override
		if found, ok := overrideByDay[d]; ok {
			override = &found
		}

		res.Days[i] = dto.MonthDayResponse{
			Day:        d,
			Slots:      model.EffectiveSlots(defaults, override),
			Overridden: override != nil,
		}
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save month schedule to cache")
		}
	}()

	return res, nil
}

// ApplyDay edits the slots of a single day. Active bookings that lose
// their slot block the edit unless the request carries a resolution.
func (s *serviceImpl) ApplyDay(ctx context.Context, staffID, day string, req dto.ApplyScheduleRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ApplyDay")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	proposed := req.Slots
	if proposed == nil {
		proposed = []string{}
	}

	active, err := s.activeBookings(ctx, apptRepo.ActiveDayFilter(staffID, day))
	if err != nil {
		return err
	}

	conflicts := model.DetectConflicts(active, proposed)

	if err = s.resolveConflicts(ctx, conflicts, req.Resolution, user); err != nil {
		return err
	}

	override := req.ToOverride(staffID, day, user)

	err = s.overrideRepo.Upsert(
		ctx,
		override,
		[]string{model.FieldStaffID, model.FieldDay},
		[]string{model.FieldSlots, constant.FieldModifiedAt, constant.FieldModifiedBy},
	)
	if err != nil {
		log.Error().Err(err).Msg("failed to upsert schedule override")

		return fmt.Errorf("failed to upsert schedule override: %w", err)
	}

	s.invalidateScheduleCaches(ctx)

	return nil
}

// ApplyMonth writes the same slot list over every day of the month
// containing day. Days that already had overrides, related to this edit or
// not, end up overwritten as well.
func (s *serviceImpl) ApplyMonth(ctx context.Context, staffID, day string, req dto.ApplyScheduleRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ApplyMonth")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	days := model.MonthDays(day)
	if days == nil {
		return failure.BadRequestFromString("invalid day") // nolint:wrapcheck
	}

	proposed := req.Slots
	if proposed == nil {
		proposed = []string{}
	}

	active, err := s.activeBookings(ctx, apptRepo.ActiveRangeFilter(staffID, days[0], days[len(days)-1]))
	if err != nil {
		return err
	}

	conflicts := model.DetectConflicts(active, proposed)

	if err = s.resolveConflicts(ctx, conflicts, req.Resolution, user); err != nil {
		return err
	}

	overrides := make([]model.Override, len(days))
	for i, d := range days {
		overrides[i] = req.ToOverride(staffID, d, user)
	}

	if err = s.overrideRepo.ReplaceMonth(ctx, staffID, days[0], days[len(days)-1], overrides); err != nil {
		log.Error().Err(err).Msg("failed to replace month overrides")

		return fmt.Errorf("failed to replace month overrides: %w", err)
	}

	s.invalidateScheduleCaches(ctx)

	return nil
}

// RestoreDefault removes the override of one day, putting the staff
// member's current defaults back in effect for it.
func (s *serviceImpl) RestoreDefault(ctx context.Context, staffID, day string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".RestoreDefault")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := dayOverrideFilter(staffID, day)

	exist, err := s.overrideRepo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if schedule override exists")

		return fmt.Errorf("failed to check if schedule override exists: %w", err)
	}

	if !exist {
		return failure.NotFound("schedule override not found") // nolint:wrapcheck
	}

	if err = s.overrideRepo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete schedule override")

		return fmt.Errorf("failed to delete schedule override: %w", err)
	}

	s.invalidateScheduleCaches(ctx)

	return nil
}

// resolveConflicts applies the requested resolution to the bookings a
// schedule edit would strand. With no resolution the edit is rejected and
// the conflict set travels back to the caller.
func (s *serviceImpl) resolveConflicts(ctx context.Context, conflicts []model.BookingRef, resolution, user string) error {
	if len(conflicts) == 0 {
		return nil
	}

	switch resolution {
	case dto.ResolutionCancelConflicting:
		for _, conflict := range conflicts {
			update := map[string]any{
				apptModel.FieldStatus:    apptModel.StatusCancelled,
				constant.FieldModifiedAt: timezone.Now(),
				constant.FieldModifiedBy: user,
			}

			if err := s.apptRepo.Update(ctx, update, shared.FilterByID(conflict.ID, apptModel.FieldID, apptModel.TableName)); err != nil {
				log.Error().Err(err).Str("appointment", conflict.ID).Msg("failed to cancel conflicting appointment")

				return fmt.Errorf("failed to cancel conflicting appointment: %w", err)
			}
		}

		return nil
	case dto.ResolutionKeepAsException:
		// Bookings stay untouched even though their slot is gone from the
		// schedule. The slot stays blocked for new customers because the
		// resolver subtracts active bookings anyway.
		return nil
	default:
		return failure.ConflictWithDetails( // nolint:wrapcheck
			"schedule edit conflicts with existing bookings",
			dto.ConflictsResponse{Conflicts: conflicts},
		)
	}
}

func (s *serviceImpl) effectiveSlots(ctx context.Context, staffID, day string) ([]string, error) {
	defaults, err := s.defaultSlots(ctx, staffID)
	if err != nil {
		return nil, err
	}

	override, err := s.overrideRepo.Get(ctx, dayOverrideFilter(staffID, day))
	if err != nil {
		log.Error().Err(err).Msg("failed to get schedule override")

		return nil, fmt.Errorf("failed to get schedule override: %w", err)
	}

	var overridePtr *model.Override
	if override.ID != constant.Empty {
		overridePtr = &override
	}

	return model.EffectiveSlots(defaults, overridePtr), nil
}

func (s *serviceImpl) defaultSlots(ctx context.Context, staffID string) ([]string, error) {
	template, err := s.templateRepo.Get(ctx, shared.FilterByID(staffID, model.FieldStaffID, model.TemplateTableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get schedule template")

		return nil, fmt.Errorf("failed to get schedule template: %w", err)
	}

	return template.DefaultSlots, nil
}

func (s *serviceImpl) activeBookings(ctx context.Context, filter gDto.FilterGroup) ([]model.BookingRef, error) {
	appointments, err := s.apptRepo.GetAll(ctx, gDto.QueryParams{}, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get active appointments")

		return nil, fmt.Errorf("failed to get active appointments: %w", err)
	}

	refs := make([]model.BookingRef, len(appointments))
	for i, appointment := range appointments {
		refs[i] = model.BookingRef{
			ID:           appointment.ID,
			Day:          appointment.Day,
			Time:         appointment.StartTime,
			CustomerName: appointment.CustomerName,
			Status:       appointment.Status,
		}
	}

	return refs, nil
}

func (s *serviceImpl) invalidateScheduleCaches(ctx context.Context) {
	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheResolveSchedule)
		shared.InvalidateCaches(c, s.cache, cacheMonthSchedule)
		shared.InvalidateCaches(c, s.cache, cacheGetTemplate)
	}()
}

func dayOverrideFilter(staffID, day string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldStaffID,
				Value:    staffID,
				Operator: gDto.FilterOperatorEq,
			},
			gDto.Filter{
				Field:    model.FieldDay,
				Value:    day,
				Operator: gDto.FilterOperatorEq,
			},
		},
	}
}

func monthOverrideFilter(staffID, firstDay, lastDay string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldStaffID,
				Value:    staffID,
				Operator: gDto.FilterOperatorEq,
			},
			gDto.Filter{
				ArgName:  "day_start",
				Field:    model.FieldDay,
				Value:    firstDay,
				Operator: gDto.FilterOperatorGreaterEq,
			},
			gDto.Filter{
				ArgName:  "day_end",
				Field:    model.FieldDay,
				Value:    lastDay,
				Operator: gDto.FilterOperatorLessEq,
			},
		},
	}
}
