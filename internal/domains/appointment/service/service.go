package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"pomade/config"
	"pomade/infras/kafka"
	"pomade/infras/otel"
	"pomade/internal/domains/appointment/model"
	"pomade/internal/domains/appointment/model/dto"
	"pomade/internal/domains/appointment/repository"
	"pomade/shared"
	"pomade/shared/cache"
	"pomade/shared/constant"
	gDto "pomade/shared/dto"
	"pomade/shared/failure"
	"pomade/shared/timezone"
)

const (
	cacheGetAppointment    = "appointment:get"
	cacheGetAllAppointment = "appointment:gets"
	cacheCountAppointment  = "appointment:count"

	// An appointment change shifts what customers can still book, so the
	// resolved-schedule caches go stale with it.
	cacheResolvedSchedule = "schedule:resolve"
	cacheMonthSchedule    = "schedule:month"
)

type Appointment interface {
	Create(ctx context.Context, req dto.CreateAppointmentRequest) (dto.AppointmentResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetAppointmentsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.AppointmentResponse, error)
	Update(ctx context.Context, req dto.UpdateAppointmentRequest, id string) error
	UpdateStatus(ctx context.Context, req dto.UpdateStatusRequest, id string) error
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo  repository.Appointment
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
	kafka kafka.Client
}

func New(repo repository.Appointment, cfg *config.Config, cache cache.RedisCache, otel otel.Otel, kafka kafka.Client) Appointment {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
		kafka: kafka,
	}
}

// Create books a slot. The uniqueness check runs at insert time, after any
// availability the customer saw was resolved, so two customers racing for
// the same slot cannot both win.
func (s *serviceImpl) Create(ctx context.Context, req dto.CreateAppointmentRequest) (res dto.AppointmentResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	taken, err := s.repo.Exist(ctx, repository.ActiveSlotFilter(req.StaffID, req.Day, req.StartTime))
	if err != nil {
		log.Error().Err(err).Msg("failed to check slot availability")

		return res, fmt.Errorf("failed to check slot availability: %w", err)
	}

	if taken {
		return res, failure.Conflict("slot no longer available") // nolint:wrapcheck
	}

	appointment := req.ToModel(user)

	if err = s.repo.Insert(ctx, appointment); err != nil {
		// The unique index catches the racer that slipped past the check
		// above; losing that race is a conflict, not a server fault.
		if repository.IsSlotTaken(err) {
			return res, failure.Conflict("slot no longer available") // nolint:wrapcheck
		}

		log.Error().Err(err).Msg("failed to insert appointment")

		return res, fmt.Errorf("failed to insert appointment: %w", err)
	}

	s.invalidateAppointmentCaches(ctx, appointment.ID)
	s.publishEvent(ctx, dto.EventAppointmentCreated, appointment)

	res.FromModel(appointment)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetAppointmentsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllAppointment, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for appointments")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count appointments")

		return res, fmt.Errorf("failed to count appointments: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get appointments")

		return res, fmt.Errorf("failed to get appointments: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save appointments to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountAppointment, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for appointment count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count appointments")

		return res, fmt.Errorf("failed to count appointments: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save appointment count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.AppointmentResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetAppointment, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for appointment")

		return res, nil
	}

	appointment, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get appointment")

		return res, fmt.Errorf("failed to get appointment: %w", err)
	}

	if appointment.ID == constant.Empty {
		return res, failure.NotFound("appointment not found") // nolint:wrapcheck
	}

	res.FromModel(appointment)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save appointment to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateAppointmentRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	if req == (dto.UpdateAppointmentRequest{}) {
		return failure.BadRequestFromString("no fields to update") // nolint:wrapcheck
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	appointment, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get appointment")

		return fmt.Errorf("failed to get appointment: %w", err)
	}

	if appointment.ID == constant.Empty {
		return failure.NotFound("appointment not found") // nolint:wrapcheck
	}

	if err = s.repo.Update(ctx, shared.TransformFields(req, user), filter); err != nil {
		log.Error().Err(err).Msg("failed to update appointment")

		return fmt.Errorf("failed to update appointment: %w", err)
	}

	s.invalidateAppointmentCaches(ctx, id)
	s.publishEvent(ctx, dto.EventAppointmentDetailsUpdated, appointment)

	return nil
}

// UpdateStatus moves an appointment through its lifecycle. Reactivating a
// cancelled appointment runs the same slot check as Create, since someone
// else may have booked the slot in the meantime.
func (s *serviceImpl) UpdateStatus(ctx context.Context, req dto.UpdateStatusRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateStatus")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	appointment, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get appointment")

		return fmt.Errorf("failed to get appointment: %w", err)
	}

	if appointment.ID == constant.Empty {
		return failure.NotFound("appointment not found") // nolint:wrapcheck
	}

	if !model.CanTransition(appointment.Status, req.Status) {
		return failure.BadRequestFromString( // nolint:wrapcheck
			fmt.Sprintf("cannot change status from %s to %s", appointment.Status, req.Status),
		)
	}

	if appointment.Status == model.StatusCancelled && req.Status == model.StatusConfirmed {
		taken, err := s.repo.Exist(ctx, repository.ActiveSlotFilter(appointment.StaffID, appointment.Day, appointment.StartTime))
		if err != nil {
			log.Error().Err(err).Msg("failed to check slot availability")

			return fmt.Errorf("failed to check slot availability: %w", err)
		}

		if taken {
			return failure.Conflict("slot no longer available") // nolint:wrapcheck
		}
	}

	update := map[string]any{
		model.FieldStatus:        req.Status,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: user,
	}

	switch req.Status {
	case model.StatusCancelled:
		update[model.FieldCancellationReason] = req.Reason
		update[model.FieldCancelledAt] = timezone.Now()
	case model.StatusConfirmed:
		// Reactivation wipes the cancellation trail.
		update[model.FieldCancellationReason] = nil
		update[model.FieldCancelledAt] = nil
	}

	if err = s.repo.Update(ctx, update, filter); err != nil {
		if repository.IsSlotTaken(err) {
			return failure.Conflict("slot no longer available") // nolint:wrapcheck
		}

		log.Error().Err(err).Msg("failed to update appointment status")

		return fmt.Errorf("failed to update appointment status: %w", err)
	}

	appointment.Status = req.Status

	s.invalidateAppointmentCaches(ctx, id)
	s.publishEvent(ctx, dto.EventAppointmentStatusChanged, appointment)

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	appointment, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get appointment")

		return fmt.Errorf("failed to get appointment: %w", err)
	}

	if appointment.ID == constant.Empty {
		return failure.NotFound("appointment not found") // nolint:wrapcheck
	}

	if err = s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete appointment")

		return fmt.Errorf("failed to delete appointment: %w", err)
	}

	s.invalidateAppointmentCaches(ctx, id)
	s.publishEvent(ctx, dto.EventAppointmentDeleted, appointment)

	return nil
}

func (s *serviceImpl) invalidateAppointmentCaches(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetAppointment, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete appointment from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllAppointment)
		shared.InvalidateCaches(c, s.cache, cacheCountAppointment)
		shared.InvalidateCaches(c, s.cache, cacheResolvedSchedule)
		shared.InvalidateCaches(c, s.cache, cacheMonthSchedule)
	}()
}

func (s *serviceImpl) publishEvent(ctx context.Context, eventType string, appointment model.Appointment) {
	if !s.cfg.Kafka.Enable {
		return
	}

	go func() {
		c := context.WithoutCancel(ctx)

		event := dto.AppointmentEvent{
			Type:          eventType,
			AppointmentID: appointment.ID,
			StaffID:       appointment.StaffID,
			Day:           appointment.Day,
			StartTime:     appointment.StartTime,
			Status:        appointment.Status,
			OccurredAt:    timezone.Now(),
		}

		message := kafka.Message{
			Key:   appointment.ID,
			Value: event,
		}

		if err := s.kafka.SendMessages(c, s.cfg.Kafka.Topics.AppointmentEvents, message); err != nil {
			log.Error().Err(err).Str("appointment", appointment.ID).Msg("failed to publish appointment event")
		}
	}()
}
