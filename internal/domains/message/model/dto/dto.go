package dto

import (
	"github.com/google/uuid"

	"pomade/internal/domains/message/model"
	"pomade/shared"
	gDto "pomade/shared/dto"
	gModel "pomade/shared/model"
	"pomade/shared/timezone"
)

type SendMessageRequest struct {
	RecipientID string `json:"recipient_id" validate:"required,uuid"`
	Body        string `json:"body"         validate:"required,max=2000"`
}

func (r *SendMessageRequest) ToModel(senderID string) model.Message {
	return model.Message{
		ID:          uuid.NewString(),
		SenderID:    senderID,
		RecipientID: r.RecipientID,
		Body:        r.Body,
		Read:        false,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  senderID,
			ModifiedBy: senderID,
		},
	}
}

type MessageResponse struct {
	ID          string `json:"id"`
	SenderID    string `json:"sender_id"`
	RecipientID string `json:"recipient_id"`
	Body        string `json:"body"`
	Read        bool   `json:"read"`
	gDto.Metadata
}

func (r *MessageResponse) FromModel(model model.Message) {
	r.ID = model.ID
	r.SenderID = model.SenderID
	r.RecipientID = model.RecipientID
	r.Body = model.Body
	r.Read = model.Read
	r.Metadata.FromModel(model.Metadata)
}

type GetConversationResponse struct {
	Messages  []MessageResponse `json:"messages"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetConversationResponse) FromModels(models []model.Message, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Messages = make([]MessageResponse, len(models))
	for i, mod := range models {
		r.Messages[i].FromModel(mod)
	}
}

// UnreadCountResponse is the badge the clients poll for.
type UnreadCountResponse struct {
	Unread int `json:"unread"`
}
