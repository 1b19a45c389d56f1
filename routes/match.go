package routes

import (
	"github.com/saroopcarr/DoorHinge/models"
	"github.com/saroopcarr/DoorHinge/services"
	"github.com/saroopcarr/DoorHinge/utils"

	"github.com/kataras/iris/v12"
)

type MatchHandler struct {
	ledger *services.InterestLedger
	engine *services.MatchEngine
}

func NewMatchHandler(ledger *services.InterestLedger, engine *services.MatchEngine) *MatchHandler {
	return &MatchHandler{ledger: ledger, engine: engine}
}

type LikePropertyInput struct {
	PropertyID uint `json:"propertyId" validate:"required"`
}

// Like: POST /api/matches/like (seeker only). Records the one-sided like and
// notifies the owner; it never creates the match itself.
func (mh *MatchHandler) Like(ctx iris.Context) {
	var input LikePropertyInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	like, err := mh.ledger.RecordLike(ctx.Request().Context(), utils.UserID(ctx), input.PropertyID)
	if err != nil {
		utils.WriteError(ctx, err)
		return
	}
	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(iris.Map{"message": "property liked", "like": like})
}

type CreateMatchInput struct {
	PropertyID uint `json:"propertyId" validate:"required"`
	SeekerID   uint `json:"seekerId" validate:"required"`
}

// Create: POST /api/matches (owner only). The owner's explicit like-back.
func (mh *MatchHandler) Create(ctx iris.Context) {
	var input CreateMatchInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	match, err := mh.engine.CreateMatch(ctx.Request().Context(), utils.UserID(ctx), input.PropertyID, input.SeekerID)
	if err != nil {
		utils.WriteError(ctx, err)
		return
	}
	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(iris.Map{"message": "match created", "match": match})
}

// List: GET /api/matches?page=...&limit=...
func (mh *MatchHandler) List(ctx iris.Context) {
	page, limit := services.ClampPage(
		ctx.URLParamIntDefault("page", 1),
		ctx.URLParamIntDefault("limit", services.MatchDefaultPageSize),
		services.MatchDefaultPageSize, services.MatchMaxPageSize,
	)

	matches, total, err := mh.engine.ListMatches(ctx.Request().Context(), utils.UserID(ctx), page, limit)
	if err != nil {
		utils.WriteError(ctx, err)
		return
	}
	if matches == nil {
		matches = []models.Match{}
	}
	ctx.JSON(iris.Map{
		"matches":    matches,
		"pagination": utils.Pagination(page, limit, total),
	})
}
