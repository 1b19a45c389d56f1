package routes

import (
	"encoding/json"

	"github.com/saroopcarr/DoorHinge/models"
	"github.com/saroopcarr/DoorHinge/services"
	"github.com/saroopcarr/DoorHinge/utils"

	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"
	"gorm.io/datatypes"
)

type ProfileHandler struct {
	profiles *services.ProfileService
}

func NewProfileHandler(profiles *services.ProfileService) *ProfileHandler {
	return &ProfileHandler{profiles: profiles}
}

// Get: GET /api/profiles — the caller's role decides which profile comes back.
func (ph *ProfileHandler) Get(ctx iris.Context) {
	claims := jwt.Get(ctx).(*utils.AccessToken)

	if claims.Role == models.RoleOwner {
		profile, err := ph.profiles.GetOwnerProfile(ctx.Request().Context(), claims.ID)
		if err != nil {
			utils.WriteError(ctx, err)
			return
		}
		ctx.JSON(profile)
		return
	}

	profile, err := ph.profiles.GetSeekerProfile(ctx.Request().Context(), claims.ID)
	if err != nil {
		utils.WriteError(ctx, err)
		return
	}
	ctx.JSON(profile)
}

type OwnerProfileInput struct {
	BusinessName string `json:"businessName" validate:"max=120"`
	Bio          string `json:"bio" validate:"max=500"`
}

type SeekerProfileInput struct {
	FirstName      string   `json:"firstName" validate:"required,min=1,max=50"`
	LastName       string   `json:"lastName" validate:"required,min=1,max=50"`
	MaxBudget      int      `json:"maxBudget" validate:"required,min=1000,max=10000000"`
	PreferredAreas []string `json:"preferredAreas" validate:"required,min=1"`
	Bio            string   `json:"bio" validate:"max=500"`
}

// Upsert: PUT /api/profiles
func (ph *ProfileHandler) Upsert(ctx iris.Context) {
	claims := jwt.Get(ctx).(*utils.AccessToken)

	if claims.Role == models.RoleOwner {
		var input OwnerProfileInput
		if err := ctx.ReadJSON(&input); err != nil {
			utils.HandleValidationErrors(err, ctx)
			return
		}
		profile, err := ph.profiles.UpsertOwnerProfile(ctx.Request().Context(), claims.ID, &models.OwnerProfile{
			BusinessName: input.BusinessName,
			Bio:          input.Bio,
		})
		if err != nil {
			utils.WriteError(ctx, err)
			return
		}
		ctx.JSON(profile)
		return
	}

	var input SeekerProfileInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}
	areas, _ := json.Marshal(input.PreferredAreas)
	profile, err := ph.profiles.UpsertSeekerProfile(ctx.Request().Context(), claims.ID, &models.SeekerProfile{
		FirstName:      input.FirstName,
		LastName:       input.LastName,
		MaxBudget:      input.MaxBudget,
		PreferredAreas: datatypes.JSON(areas),
		Bio:            input.Bio,
	})
	if err != nil {
		utils.WriteError(ctx, err)
		return
	}
	ctx.JSON(profile)
}
