package model

import "pomade/shared/model"

const (
	TableName  = "messages"
	EntityName = "message"

	FieldID          = "id"
	FieldSenderID    = "sender_id"
	FieldRecipientID = "recipient_id"
	FieldBody        = "body"
	FieldRead        = "read"
)

// Message is one direct message between a customer and a staff member.
// There is no push channel: clients poll the conversation and unread
// count, so reads have to stay cheap.
type Message struct {
	ID          string `db:"id"`
	SenderID    string `db:"sender_id"`
	RecipientID string `db:"recipient_id"`
	Body        string `db:"body"`
	Read        bool   `db:"read"`
	model.Metadata
}
