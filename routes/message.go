package routes

import (
	"github.com/saroopcarr/DoorHinge/models"
	"github.com/saroopcarr/DoorHinge/services"
	"github.com/saroopcarr/DoorHinge/utils"

	"github.com/kataras/iris/v12"
)

type MessageHandler struct {
	messages *services.MessageService
}

func NewMessageHandler(messages *services.MessageService) *MessageHandler {
	return &MessageHandler{messages: messages}
}

type CreateMessageInput struct {
	MatchID uint   `json:"matchId" validate:"required"`
	Content string `json:"content" validate:"required,min=1,max=5000"`
}

// Create: POST /api/messages
func (mh *MessageHandler) Create(ctx iris.Context) {
	var input CreateMessageInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	message, err := mh.messages.Send(ctx.Request().Context(), utils.UserID(ctx), input.MatchID, input.Content)
	if err != nil {
		utils.WriteError(ctx, err)
		return
	}
	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(message)
}

// List: GET /api/messages?matchId=...&page=...&limit=...
func (mh *MessageHandler) List(ctx iris.Context) {
	matchID := ctx.URLParamIntDefault("matchId", 0)
	if matchID <= 0 {
		utils.JSONError(ctx, iris.StatusBadRequest, "INVALID_ARGUMENT", "matchId is required")
		return
	}
	page, limit := services.ClampPage(
		ctx.URLParamIntDefault("page", 1),
		ctx.URLParamIntDefault("limit", services.MessageDefaultPageSize),
		services.MessageDefaultPageSize, services.MessageMaxPageSize,
	)

	messages, total, err := mh.messages.List(ctx.Request().Context(), utils.UserID(ctx), uint(matchID), page, limit)
	if err != nil {
		utils.WriteError(ctx, err)
		return
	}
	if messages == nil {
		messages = []models.Message{}
	}
	ctx.JSON(iris.Map{
		"messages":   messages,
		"pagination": utils.Pagination(page, limit, total),
	})
}
