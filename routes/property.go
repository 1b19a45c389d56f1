package routes

import (
	"encoding/json"
	"time"

	"github.com/saroopcarr/DoorHinge/models"
	"github.com/saroopcarr/DoorHinge/services"
	"github.com/saroopcarr/DoorHinge/utils"

	"github.com/kataras/iris/v12"
	"gorm.io/datatypes"
)

type PropertyHandler struct {
	listings *services.ListingService
}

func NewPropertyHandler(listings *services.ListingService) *PropertyHandler {
	return &PropertyHandler{listings: listings}
}

// List: GET /api/properties?area=...&maxBudget=...&bedrooms=...&page=...&limit=...
// Served through the cache; see services.ListingService.
func (ph *PropertyHandler) List(ctx iris.Context) {
	filters := services.PropertyFilters{
		Area:      ctx.URLParam("area"),
		MaxBudget: ctx.URLParamIntDefault("maxBudget", 0),
		Bedrooms:  ctx.URLParam("bedrooms"),
	}
	page, limit := services.ClampPage(
		ctx.URLParamIntDefault("page", 1),
		ctx.URLParamIntDefault("limit", services.ListingDefaultPageSize),
		services.ListingDefaultPageSize, services.ListingMaxPageSize,
	)

	properties, total, err := ph.listings.List(ctx.Request().Context(), filters, page, limit)
	if err != nil {
		utils.WriteError(ctx, err)
		return
	}
	if properties == nil {
		properties = []models.Property{}
	}
	ctx.JSON(iris.Map{
		"properties": properties,
		"pagination": utils.Pagination(page, limit, total),
	})
}

func (ph *PropertyHandler) Get(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.JSONError(ctx, iris.StatusBadRequest, "INVALID_ARGUMENT", "invalid property id")
		return
	}
	detail, svcErr := ph.listings.Get(ctx.Request().Context(), id)
	if svcErr != nil {
		utils.WriteError(ctx, svcErr)
		return
	}
	ctx.JSON(detail)
}

type CreatePropertyInput struct {
	Title             string    `json:"title" validate:"required,min=5,max=100"`
	Description       string    `json:"description" validate:"required,min=10,max=2000"`
	Area              string    `json:"area" validate:"required,min=2,max=100"`
	Bedrooms          string    `json:"bedrooms" validate:"required,oneof=STUDIO ONE TWO THREE FOUR FOUR_PLUS"`
	FurnishedStatus   string    `json:"furnishedStatus" validate:"required,oneof=FURNISHED SEMI_FURNISHED UNFURNISHED"`
	RentAmount        int       `json:"rentAmount" validate:"required,min=100,max=10000000"`
	MaintenanceAmount int       `json:"maintenanceAmount" validate:"min=0,max=1000000"`
	Deposit           int       `json:"deposit" validate:"min=0,max=20000000"`
	Amenities         []string  `json:"amenities"`
	HouseRules        []string  `json:"houseRules"`
	Photos            []string  `json:"photos"`
	AvailabilityDate  time.Time `json:"availabilityDate"`
}

func (ph *PropertyHandler) Create(ctx iris.Context) {
	var input CreatePropertyInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	property := models.Property{
		Title:             input.Title,
		Description:       input.Description,
		Area:              input.Area,
		Bedrooms:          input.Bedrooms,
		FurnishedStatus:   input.FurnishedStatus,
		RentAmount:        input.RentAmount,
		MaintenanceAmount: input.MaintenanceAmount,
		Deposit:           input.Deposit,
		Amenities:         toJSON(input.Amenities),
		HouseRules:        toJSON(input.HouseRules),
		Photos:            toJSON(input.Photos),
		AvailabilityDate:  input.AvailabilityDate,
	}

	err := ph.listings.Create(ctx.Request().Context(), utils.UserID(ctx), &property)
	if err != nil {
		utils.WriteError(ctx, err)
		return
	}
	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(property)
}

// UpdatePropertyInput is a partial update; nil fields stay untouched.
type UpdatePropertyInput struct {
	Title             *string    `json:"title" validate:"omitempty,min=5,max=100"`
	Description       *string    `json:"description" validate:"omitempty,min=10,max=2000"`
	Area              *string    `json:"area" validate:"omitempty,min=2,max=100"`
	Bedrooms          *string    `json:"bedrooms" validate:"omitempty,oneof=STUDIO ONE TWO THREE FOUR FOUR_PLUS"`
	FurnishedStatus   *string    `json:"furnishedStatus" validate:"omitempty,oneof=FURNISHED SEMI_FURNISHED UNFURNISHED"`
	RentAmount        *int       `json:"rentAmount" validate:"omitempty,min=100,max=10000000"`
	MaintenanceAmount *int       `json:"maintenanceAmount" validate:"omitempty,min=0,max=1000000"`
	Deposit           *int       `json:"deposit" validate:"omitempty,min=0,max=20000000"`
	Amenities         []string   `json:"amenities"`
	HouseRules        []string   `json:"houseRules"`
	Photos            []string   `json:"photos"`
	AvailabilityDate  *time.Time `json:"availabilityDate"`
	IsActive          *bool      `json:"isActive"`
}

func (ph *PropertyHandler) Update(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.JSONError(ctx, iris.StatusBadRequest, "INVALID_ARGUMENT", "invalid property id")
		return
	}

	var input UpdatePropertyInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	updates := map[string]interface{}{}
	if input.Title != nil {
		updates["title"] = *input.Title
	}
	if input.Description != nil {
		updates["description"] = *input.Description
	}
	if input.Area != nil {
		updates["area"] = *input.Area
	}
	if input.Bedrooms != nil {
		updates["bedrooms"] = *input.Bedrooms
	}
	if input.FurnishedStatus != nil {
		updates["furnished_status"] = *input.FurnishedStatus
	}
	if input.RentAmount != nil {
		updates["rent_amount"] = *input.RentAmount
	}
	if input.MaintenanceAmount != nil {
		updates["maintenance_amount"] = *input.MaintenanceAmount
	}
	if input.Deposit != nil {
		updates["deposit"] = *input.Deposit
	}
	if input.Amenities != nil {
		updates["amenities"] = toJSON(input.Amenities)
	}
	if input.HouseRules != nil {
		updates["house_rules"] = toJSON(input.HouseRules)
	}
	if input.Photos != nil {
		updates["photos"] = toJSON(input.Photos)
	}
	if input.AvailabilityDate != nil {
		updates["availability_date"] = *input.AvailabilityDate
	}
	if input.IsActive != nil {
		updates["is_active"] = *input.IsActive
	}

	property, svcErr := ph.listings.Update(ctx.Request().Context(), utils.UserID(ctx), id, updates)
	if svcErr != nil {
		utils.WriteError(ctx, svcErr)
		return
	}
	ctx.JSON(property)
}

func (ph *PropertyHandler) Delete(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.JSONError(ctx, iris.StatusBadRequest, "INVALID_ARGUMENT", "invalid property id")
		return
	}
	if err := ph.listings.Delete(ctx.Request().Context(), utils.UserID(ctx), id); err != nil {
		utils.WriteError(ctx, err)
		return
	}
	ctx.JSON(iris.Map{"message": "property deleted"})
}

func toJSON(values []string) datatypes.JSON {
	if values == nil {
		values = []string{}
	}
	raw, _ := json.Marshal(values)
	return datatypes.JSON(raw)
}
