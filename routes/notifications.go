package routes

import (
	"github.com/saroopcarr/DoorHinge/models"
	"github.com/saroopcarr/DoorHinge/services"
	"github.com/saroopcarr/DoorHinge/utils"

	"github.com/kataras/iris/v12"
)

// NotificationHandler is the poll-delivery surface over the notification
// rows written by the emitter.
type NotificationHandler struct {
	emitter *services.NotificationEmitter
}

func NewNotificationHandler(emitter *services.NotificationEmitter) *NotificationHandler {
	return &NotificationHandler{emitter: emitter}
}

// List: GET /api/notifications?page=...&limit=...
func (nh *NotificationHandler) List(ctx iris.Context) {
	page, limit := services.ClampPage(
		ctx.URLParamIntDefault("page", 1),
		ctx.URLParamIntDefault("limit", services.NotificationDefaultPageSize),
		services.NotificationDefaultPageSize, services.NotificationMaxPageSize,
	)

	notifications, total, err := nh.emitter.List(ctx.Request().Context(), utils.UserID(ctx), page, limit)
	if err != nil {
		utils.WriteError(ctx, err)
		return
	}
	if notifications == nil {
		notifications = []models.Notification{}
	}
	ctx.JSON(iris.Map{
		"notifications": notifications,
		"pagination":    utils.Pagination(page, limit, total),
	})
}

// MarkRead: POST /api/notifications/{id}/read
func (nh *NotificationHandler) MarkRead(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.JSONError(ctx, iris.StatusBadRequest, "INVALID_ARGUMENT", "invalid notification id")
		return
	}
	if err := nh.emitter.MarkRead(ctx.Request().Context(), utils.UserID(ctx), id); err != nil {
		utils.WriteError(ctx, err)
		return
	}
	ctx.JSON(iris.Map{"message": "notification read"})
}
