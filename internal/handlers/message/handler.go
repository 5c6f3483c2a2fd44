package message

import (
	"net/http"
	"pomade/infras/otel"
	"pomade/internal/domains/message/model/dto"
	"pomade/internal/domains/message/service"
	"pomade/shared/constant"
	gDto "pomade/shared/dto"
	"pomade/shared/validator"
	"pomade/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Message
	otel    otel.Otel
}

func New(service service.Message, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/messages", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.SendMessage)
		routerGroup.Get("/unread", handler.GetUnreadCount)
		routerGroup.Get("/conversations/{id}", handler.GetConversation)
		routerGroup.Patch("/conversations/{id}/read", handler.MarkConversationRead)
	})
}

// SendMessage sends a direct message to another user.
// @Summary Send a message
// @Description Send a direct message from the authenticated user to another user.
// @Tags Message
// @Accept json
// @Produce json
// @Param request body dto.SendMessageRequest true "Send Message Request"
// @Success 201 {object} response.Data[dto.MessageResponse] "Message sent successfully"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/messages [post]
// @Security BearerAuth
func (handler *Handler) SendMessage(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".SendMessage")
	defer scope.End()

	req := dto.SendMessageRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	message, err := handler.service.Send(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to send message")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Message sent successfully by user " + user)

	response.WithJSON(w, http.StatusCreated, message)
}

// GetUnreadCount returns the unread message count of the authenticated user.
// @Summary Get unread message count
// @Description Retrieve how many unread messages the authenticated user has. Cheap, meant to be polled for the badge.
// @Tags Message
// @Accept json
// @Produce json
// @Success 200 {object} response.Data[dto.UnreadCountResponse] "Unread count"
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/messages/unread [get]
// @Security BearerAuth
func (handler *Handler) GetUnreadCount(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetUnreadCount")
	defer scope.End()

	unread, err := handler.service.UnreadCount(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get unread count")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Unread count retrieved successfully")

	response.WithJSON(w, http.StatusOK, unread)
}

// GetConversation retrieves the conversation with another user.
// @Summary Get a conversation
// @Description Retrieve the paged message history between the authenticated user and a peer.
// @Tags Message
// @Accept json
// @Produce json
// @Param id path string true "Peer user ID"
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Success 200 {object} response.Data[dto.GetConversationResponse] "Conversation messages"
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/messages/conversations/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetConversation(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetConversation")
	defer scope.End()

	peerID := chi.URLParam(r, constant.RequestParamID)

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	conversation, err := handler.service.GetConversation(ctx, queryParams, peerID)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get conversation")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Conversation retrieved successfully")

	response.WithJSON(w, http.StatusOK, conversation)
}

// MarkConversationRead marks every message from a peer as read.
// @Summary Mark a conversation as read
// @Description Mark all messages from the given peer to the authenticated user as read, resetting the unread badge.
// @Tags Message
// @Accept json
// @Produce json
// @Param id path string true "Peer user ID"
// @Success 200 {object} response.Message "Conversation marked as read"
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/messages/conversations/{id}/read [patch]
// @Security BearerAuth
func (handler *Handler) MarkConversationRead(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".MarkConversationRead")
	defer scope.End()

	peerID := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.MarkConversationRead(ctx, peerID); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to mark conversation read")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Conversation marked as read by user " + user)

	response.WithMessage(w, http.StatusOK, "Conversation marked as read")
}
