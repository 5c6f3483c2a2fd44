package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"pomade/config"
	"pomade/infras/otel"
	"pomade/internal/domains/message/model"
	"pomade/internal/domains/message/model/dto"
	"pomade/internal/domains/message/repository"
	"pomade/shared"
	"pomade/shared/cache"
	"pomade/shared/constant"
	gDto "pomade/shared/dto"
	"pomade/shared/failure"
	"pomade/shared/timezone"
)

const (
	cacheConversation = "message:conversation"
	cacheUnreadCount  = "message:unread"
)

type Message interface {
	Send(ctx context.Context, req dto.SendMessageRequest) (dto.MessageResponse, error)
	GetConversation(ctx context.Context, req gDto.QueryParams, peerID string) (dto.GetConversationResponse, error)
	UnreadCount(ctx context.Context) (dto.UnreadCountResponse, error)
	MarkConversationRead(ctx context.Context, peerID string) error
}

type serviceImpl struct {
	repo  repository.Message
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(repo repository.Message, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Message {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

func (s *serviceImpl) Send(ctx context.Context, req dto.SendMessageRequest) (res dto.MessageResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Send")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	if req.RecipientID == user {
		return res, failure.BadRequestFromString("cannot message yourself") // nolint:wrapcheck
	}

	message := req.ToModel(user)

	if err = s.repo.Insert(ctx, message); err != nil {
		log.Error().Err(err).Msg("failed to insert message")

		return res, fmt.Errorf("failed to insert message: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheConversation)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheUnreadCount, req.RecipientID)); err != nil {
			log.Error().Err(err).Msg("failed to delete unread count from cache")
		}
	}()

	res.FromModel(message)

	return res, nil
}

// GetConversation pages through both directions of the exchange with one
// peer. Polled by clients, so results ride the cache between edits.
func (s *serviceImpl) GetConversation(ctx context.Context, req gDto.QueryParams, peerID string) (res dto.GetConversationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetConversation")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheConversation, user, peerID, req)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for conversation")

		return res, nil
	}

	filter := repository.ConversationFilter(user, peerID)

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count conversation messages")

		return res, fmt.Errorf("failed to count conversation messages: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get conversation messages")

		return res, fmt.Errorf("failed to get conversation messages: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save conversation to cache")
		}
	}()

	return res, nil
}

// UnreadCount is the badge endpoint the clients poll on an interval, so
// the count leans on the cache and only recounts after an invalidation.
func (s *serviceImpl) UnreadCount(ctx context.Context) (res dto.UnreadCountResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UnreadCount")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	cacheKey := shared.BuildCacheKey(cacheUnreadCount, user)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for unread count")

		return res, nil
	}

	count, err := s.repo.Count(ctx, repository.UnreadFilter(user))
	if err != nil {
		log.Error().Err(err).Msg("failed to count unread messages")

		return res, fmt.Errorf("failed to count unread messages: %w", err)
	}

	res.Unread = count

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save unread count to cache")
		}
	}()

	return res, nil
}

// MarkConversationRead clears the badge for one conversation.
func (s *serviceImpl) MarkConversationRead(ctx context.Context, peerID string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".MarkConversationRead")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	update := map[string]any{
		model.FieldRead:          true,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: user,
	}

	if err = s.repo.Update(ctx, update, repository.UnreadFromPeerFilter(user, peerID)); err != nil {
		log.Error().Err(err).Msg("failed to mark conversation read")

		return fmt.Errorf("failed to mark conversation read: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheUnreadCount, user)); err != nil {
			log.Error().Err(err).Msg("failed to delete unread count from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheConversation)
	}()

	return nil
}
