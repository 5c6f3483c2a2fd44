package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"pomade/infras/otel"
	"pomade/infras/postgres"
	"pomade/internal/domains/message/model"
	gDto "pomade/shared/dto"
	gRepo "pomade/shared/repository"
)

type Message interface {
	Insert(ctx context.Context, model model.Message) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Message, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Message, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Message]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Message {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Message](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// ConversationFilter matches both directions of the exchange between two
// users.
func ConversationFilter(userID, peerID string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorOr,
		Filters: []any{
			gDto.FilterGroup{
				Operator: gDto.FilterGroupOperatorAnd,
				Filters: []any{
					gDto.Filter{
						ArgName:  "sent_by_user",
						Field:    model.FieldSenderID,
						Operator: gDto.FilterOperatorEq,
						Value:    userID,
					},
					gDto.Filter{
						ArgName:  "sent_to_peer",
						Field:    model.FieldRecipientID,
						Operator: gDto.FilterOperatorEq,
						Value:    peerID,
					},
				},
			},
			gDto.FilterGroup{
				Operator: gDto.FilterGroupOperatorAnd,
				Filters: []any{
					gDto.Filter{
						ArgName:  "sent_by_peer",
						Field:    model.FieldSenderID,
						Operator: gDto.FilterOperatorEq,
						Value:    peerID,
					},
					gDto.Filter{
						ArgName:  "sent_to_user",
						Field:    model.FieldRecipientID,
						Operator: gDto.FilterOperatorEq,
						Value:    userID,
					},
				},
			},
		},
	}
}

// UnreadFilter matches the messages behind a user's unread badge.
func UnreadFilter(recipientID string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldRecipientID,
				Operator: gDto.FilterOperatorEq,
				Value:    recipientID,
			},
			gDto.Filter{
				Field:    model.FieldRead,
				Operator: gDto.FilterOperatorEq,
				Value:    false,
			},
		},
	}
}

// UnreadFromPeerFilter narrows the unread set to one conversation, for
// marking it read.
func UnreadFromPeerFilter(recipientID, peerID string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldRecipientID,
				Operator: gDto.FilterOperatorEq,
				Value:    recipientID,
			},
			gDto.Filter{
				Field:    model.FieldSenderID,
				Operator: gDto.FilterOperatorEq,
				Value:    peerID,
			},
			gDto.Filter{
				Field:    model.FieldRead,
				Operator: gDto.FilterOperatorEq,
				Value:    false,
			},
		},
	}
}
