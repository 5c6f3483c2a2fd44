package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"pomade/config"
	"pomade/infras/otel/mocks"
	messageMocks "pomade/internal/domains/message/mocks"
	"pomade/internal/domains/message/model"
	"pomade/internal/domains/message/model/dto"
	"pomade/internal/domains/message/service"
	cacheMocks "pomade/shared/cache/mocks"
	"pomade/shared/constant"
	gDto "pomade/shared/dto"
)

func newMessageService(t *testing.T) (service.Message, *messageMocks.MockMessage, *cacheMocks.MockRedisCache) {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	mockRepo := messageMocks.NewMockMessage(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 30

	mockCache.EXPECT().
		Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil).
		AnyTimes()

	mockCache.EXPECT().
		Delete(gomock.Any(), gomock.Any()).
		Return(nil).
		AnyTimes()

	mockCache.EXPECT().
		Clear(gomock.Any(), gomock.Any()).
		Return(nil).
		AnyTimes()

	svc := service.New(mockRepo, cfg, mockCache, mockOtel)

	return svc, mockRepo, mockCache
}

func TestMessageService_Send(t *testing.T) {
	svc, mockRepo, _ := newMessageService(t)

	tests := []struct {
		name      string
		req       dto.SendMessageRequest
		setupMock func()
		wantErr   bool
	}{
		{
			name: "successful send",
			req: dto.SendMessageRequest{
				RecipientID: "staff-1",
				Body:        "running 10 minutes late",
			},
			setupMock: func() {
				mockRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantErr: false,
		},
		{
			name: "cannot message yourself",
			req: dto.SendMessageRequest{
				RecipientID: "customer-1",
				Body:        "hello me",
			},
			setupMock: func() {},
			wantErr:   true,
		},
		{
			name: "insert error",
			req: dto.SendMessageRequest{
				RecipientID: "staff-1",
				Body:        "hello",
			},
			setupMock: func() {
				mockRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(errors.New("database error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "customer-1")
			result, err := svc.Send(ctx, tt.req)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, "customer-1", result.SenderID)
				assert.False(t, result.Read)
			}
		})
	}
}

func TestMessageService_GetConversation(t *testing.T) {
	svc, mockRepo, mockCache := newMessageService(t)

	tests := []struct {
		name      string
		setupMock func()
		wantErr   bool
		wantTotal int
	}{
		{
			name: "cache hit",
			setupMock: func() {
				mockCache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantErr: false,
		},
		{
			name: "cache miss, fetched from db",
			setupMock: func() {
				mockCache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				mockRepo.EXPECT().
					Count(gomock.Any(), gomock.Any()).
					Return(2, nil)

				mockRepo.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return([]model.Message{
						{ID: "msg-1", SenderID: "customer-1", RecipientID: "staff-1", Body: "hi"},
						{ID: "msg-2", SenderID: "staff-1", RecipientID: "customer-1", Body: "hello"},
					}, nil)
			},
			wantErr:   false,
			wantTotal: 2,
		},
		{
			name: "count error",
			setupMock: func() {
				mockCache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				mockRepo.EXPECT().
					Count(gomock.Any(), gomock.Any()).
					Return(0, errors.New("count error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "customer-1")
			result, err := svc.GetConversation(ctx, gDto.QueryParams{Limit: 20, Page: 1}, "staff-1")

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.wantTotal, result.TotalData)
			}
		})
	}
}

func TestMessageService_UnreadCount(t *testing.T) {
	svc, mockRepo, mockCache := newMessageService(t)

	t.Run("cache miss counts unread", func(t *testing.T) {
		mockCache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("cache miss"))

		mockRepo.EXPECT().
			Count(gomock.Any(), gomock.Any()).
			Return(3, nil)

		ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "customer-1")
		result, err := svc.UnreadCount(ctx)

		assert.NoError(t, err)
		assert.Equal(t, 3, result.Unread)
	})

	t.Run("count error", func(t *testing.T) {
		mockCache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("cache miss"))

		mockRepo.EXPECT().
			Count(gomock.Any(), gomock.Any()).
			Return(0, errors.New("count error"))

		ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "customer-1")
		_, err := svc.UnreadCount(ctx)

		assert.Error(t, err)
	})
}

func TestMessageService_MarkConversationRead(t *testing.T) {
	svc, mockRepo, _ := newMessageService(t)

	t.Run("successful mark read", func(t *testing.T) {
		mockRepo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil)

		ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "customer-1")
		err := svc.MarkConversationRead(ctx, "staff-1")

		assert.NoError(t, err)
	})

	t.Run("update error", func(t *testing.T) {
		mockRepo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("update error"))

		ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "customer-1")
		err := svc.MarkConversationRead(ctx, "staff-1")

		assert.Error(t, err)
	})
}
