package utils

import (
	"errors"
	"log"
	"math"

	"github.com/saroopcarr/DoorHinge/apperrors"

	"github.com/go-playground/validator/v10"
	"github.com/kataras/iris/v12"
)

// Pagination is the envelope returned alongside every paginated collection.
func Pagination(page, limit int, total int64) iris.Map {
	pages := 0
	if limit > 0 {
		pages = int(math.Ceil(float64(total) / float64(limit)))
	}
	return iris.Map{
		"page":  page,
		"limit": limit,
		"total": total,
		"pages": pages,
	}
}

func JSONError(ctx iris.Context, status int, code, message string) {
	ctx.StopWithJSON(status, iris.Map{"error": code, "message": message})
}

// WriteError maps a service error onto the boundary contract: stable code,
// user-safe message, matching status. Store failures surface as 503 with no
// internal detail; everything unexpected becomes a logged 500.
func WriteError(ctx iris.Context, err error) {
	var ae *apperrors.AppError
	if !errors.As(err, &ae) {
		log.Printf("unhandled error on %s %s: %v", ctx.Method(), ctx.Path(), err)
		JSONError(ctx, iris.StatusInternalServerError, string(apperrors.CodeInternal), "internal server error")
		return
	}

	switch ae.Code {
	case apperrors.CodeNotFound:
		JSONError(ctx, iris.StatusNotFound, string(ae.Code), ae.Message)
	case apperrors.CodePermissionDenied:
		JSONError(ctx, iris.StatusForbidden, string(ae.Code), ae.Message)
	case apperrors.CodeAlreadyExists:
		JSONError(ctx, iris.StatusConflict, string(ae.Code), ae.Message)
	case apperrors.CodeInvalidArgument:
		JSONError(ctx, iris.StatusBadRequest, string(ae.Code), ae.Message)
	case apperrors.CodeUnavailable:
		log.Printf("store unavailable on %s %s: %v", ctx.Method(), ctx.Path(), ae)
		JSONError(ctx, iris.StatusServiceUnavailable, string(ae.Code), "service temporarily unavailable, retry later")
	default:
		log.Printf("internal error on %s %s: %v", ctx.Method(), ctx.Path(), ae)
		JSONError(ctx, iris.StatusInternalServerError, string(apperrors.CodeInternal), "internal server error")
	}
}

// HandleValidationErrors renders ReadJSON failures: validator field errors
// get a per-field breakdown, anything else is a generic bad request.
func HandleValidationErrors(err error, ctx iris.Context) {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		fields := make([]iris.Map, 0, len(fieldErrs))
		for _, fe := range fieldErrs {
			fields = append(fields, iris.Map{
				"field": fe.Field(),
				"rule":  fe.Tag(),
				"param": fe.Param(),
			})
		}
		ctx.StopWithJSON(iris.StatusBadRequest, iris.Map{
			"error":   "INVALID_ARGUMENT",
			"message": "validation failed",
			"fields":  fields,
		})
		return
	}
	JSONError(ctx, iris.StatusBadRequest, "INVALID_ARGUMENT", "invalid request body")
}
