package service_test

import (
	"context"
	"errors"
	"mime/multipart"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"pomade/config"
	otelMocks "pomade/infras/otel/mocks"
	s3Mocks "pomade/infras/s3/mocks"
	userMocks "pomade/internal/domains/user/mocks"
	"pomade/internal/domains/user/model"
	"pomade/internal/domains/user/model/dto"
	"pomade/internal/domains/user/service"
	cacheMocks "pomade/shared/cache/mocks"
	"pomade/shared/constant"
	"pomade/shared/failure"
	gModel "pomade/shared/model"
	"pomade/shared/timezone"
)

func newUserService(t *testing.T) (service.User, *userMocks.MockUser, *cacheMocks.MockRedisCache, *s3Mocks.MockS3) {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	mockRepo := userMocks.NewMockUser(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockS3 := s3Mocks.NewMockS3(ctrl)
	mockOtel := otelMocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600
	cfg.External.S3.BucketName = "pomade-assets"

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

	svc := service.New(mockRepo, cfg, mockCache, mockOtel, mockS3)

	return svc, mockRepo, mockCache, mockS3
}

func staffMember(id, name string) model.User {
	image := "https://cdn.example.com/pomade-assets/user/" + id + ".png"

	return model.User{
		ID:           id,
		Email:        name + "@pomade.dev",
		Role:         constant.RoleStaff,
		FullName:     &name,
		ProfileImage: &image,
		Active:       true,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  "admin-1",
			ModifiedBy: "admin-1",
		},
	}
}

func TestUserService_Create(t *testing.T) {
	svc, mockRepo, _, _ := newUserService(t)

	tests := []struct {
		name      string
		req       dto.CreateUserRequest
		setupMock func()
		wantErr   bool
	}{
		{
			name: "successful creation",
			req: dto.CreateUserRequest{
				Email:    "barber@pomade.dev",
				Password: "secret-password",
				Role:     constant.RoleStaff,
			},
			setupMock: func() {
				mockRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)

				mockRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantErr: false,
		},
		{
			name: "email already registered",
			req: dto.CreateUserRequest{
				Email:    "taken@pomade.dev",
				Password: "secret-password",
			},
			setupMock: func() {
				mockRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)
			},
			wantErr: true,
		},
		{
			name: "exist check error",
			req: dto.CreateUserRequest{
				Email:    "barber@pomade.dev",
				Password: "secret-password",
			},
			setupMock: func() {
				mockRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, errors.New("database error"))
			},
			wantErr: true,
		},
		{
			name: "insert error",
			req: dto.CreateUserRequest{
				Email:    "barber@pomade.dev",
				Password: "secret-password",
			},
			setupMock: func() {
				mockRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)

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

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "admin-1")
			err := svc.Create(ctx, tt.req)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestUserService_Get(t *testing.T) {
	svc, mockRepo, mockCache, _ := newUserService(t)

	tests := []struct {
		name      string
		setupMock func()
		wantErr   bool
		wantCode  int
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
					Get(gomock.Any(), gomock.Any()).
					Return(staffMember("staff-1", "Ayu"), nil)
			},
			wantErr: false,
		},
		{
			name: "user not found",
			setupMock: func() {
				mockCache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.User{}, nil)
			},
			wantErr:  true,
			wantCode: http.StatusNotFound,
		},
		{
			name: "repository error",
			setupMock: func() {
				mockCache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.User{}, errors.New("database error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			_, err := svc.Get(context.Background(), "staff-1")

			if tt.wantErr {
				assert.Error(t, err)

				if tt.wantCode != 0 {
					assert.Equal(t, tt.wantCode, failure.GetCode(err))
				}
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestUserService_GetStaff(t *testing.T) {
	svc, mockRepo, mockCache, _ := newUserService(t)

	t.Run("cache miss lists active staff", func(t *testing.T) {
		mockCache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("cache miss"))

		mockRepo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]model.User{
				staffMember("staff-1", "Ayu"),
				staffMember("staff-2", "Budi"),
			}, nil)

		result, err := svc.GetStaff(context.Background())

		assert.NoError(t, err)
		assert.Len(t, result.Staff, 2)
		assert.Equal(t, "staff-1", result.Staff[0].ID)
	})

	t.Run("repository error", func(t *testing.T) {
		mockCache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("cache miss"))

		mockRepo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, errors.New("database error"))

		_, err := svc.GetStaff(context.Background())

		assert.Error(t, err)
	})
}

func TestUserService_Update(t *testing.T) {
	svc, mockRepo, _, _ := newUserService(t)

	name := "Ayu Lestari"

	tests := []struct {
		name      string
		req       dto.UpdateUserRequest
		setupMock func()
		wantErr   bool
	}{
		{
			name: "successful update",
			req:  dto.UpdateUserRequest{FullName: &name},
			setupMock: func() {
				mockRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				mockRepo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantErr: false,
		},
		{
			name:      "empty request",
			req:       dto.UpdateUserRequest{},
			setupMock: func() {},
			wantErr:   true,
		},
		{
			name: "user not found",
			req:  dto.UpdateUserRequest{FullName: &name},
			setupMock: func() {
				mockRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "admin-1")
			err := svc.Update(ctx, tt.req, "staff-1")

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestUserService_UploadPhoto(t *testing.T) {
	req := dto.UploadPhotoRequest{
		Image: &multipart.FileHeader{Filename: "portrait.png"},
	}

	t.Run("successful upload replaces old photo", func(t *testing.T) {
		svc, mockRepo, _, mockS3 := newUserService(t)

		current := staffMember("staff-1", "Ayu")

		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(current, nil)

		mockS3.EXPECT().
			UploadFile(gomock.Any(), "pomade-assets", model.EntityName, gomock.Any(), gomock.Any(), gomock.Any()).
			Return("https://cdn.example.com/pomade-assets/user/new.png", nil)

		mockRepo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil)

		mockS3.EXPECT().
			GetObjectNameFromURL("pomade-assets", *current.ProfileImage).
			Return("staff-1.png")

		mockS3.EXPECT().
			DeleteFile(gomock.Any(), "pomade-assets", model.EntityName, "staff-1.png").
			Return(nil)

		ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "staff-1")
		result, err := svc.UploadPhoto(ctx, req, "staff-1")

		assert.NoError(t, err)
		assert.Equal(t, "https://cdn.example.com/pomade-assets/user/new.png", *result.ProfileImage)
	})

	t.Run("user not found", func(t *testing.T) {
		svc, mockRepo, _, _ := newUserService(t)

		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.User{}, nil)

		_, err := svc.UploadPhoto(context.Background(), req, "ghost")

		assert.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})

	t.Run("db failure rolls back the upload", func(t *testing.T) {
		svc, mockRepo, _, mockS3 := newUserService(t)

		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(staffMember("staff-1", "Ayu"), nil)

		mockS3.EXPECT().
			UploadFile(gomock.Any(), "pomade-assets", model.EntityName, gomock.Any(), gomock.Any(), gomock.Any()).
			Return("https://cdn.example.com/pomade-assets/user/new.png", nil)

		mockRepo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("database error"))

		mockS3.EXPECT().
			DeleteFile(gomock.Any(), "pomade-assets", model.EntityName, gomock.Any()).
			Return(nil)

		ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "staff-1")
		_, err := svc.UploadPhoto(ctx, req, "staff-1")

		assert.Error(t, err)
	})
}

func TestUserService_Delete(t *testing.T) {
	svc, mockRepo, _, _ := newUserService(t)

	t.Run("successful delete", func(t *testing.T) {
		mockRepo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(true, nil)

		mockRepo.EXPECT().
			Delete(gomock.Any(), gomock.Any()).
			Return(nil)

		err := svc.Delete(context.Background(), "staff-1")

		assert.NoError(t, err)
	})

	t.Run("user not found", func(t *testing.T) {
		mockRepo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(false, nil)

		err := svc.Delete(context.Background(), "ghost")

		assert.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}
