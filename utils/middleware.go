package utils

import (
	"github.com/saroopcarr/DoorHinge/models"

	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"
)

// UserIDFromTokenMiddleware extracts the authenticated user id from the
// verified token and stores it in the request values for handlers.
func UserIDFromTokenMiddleware(ctx iris.Context) {
	claims := jwt.Get(ctx).(*AccessToken)
	ctx.Values().Set("userID", claims.ID)
	ctx.Values().Set("userRole", claims.Role)
	ctx.Next()
}

// OwnerOnlyMiddleware rejects non-owner identities before the handler runs.
func OwnerOnlyMiddleware(ctx iris.Context) {
	claims := jwt.Get(ctx).(*AccessToken)
	if claims.Role != models.RoleOwner {
		JSONError(ctx, iris.StatusForbidden, "PERMISSION_DENIED", "owner access required")
		return
	}
	ctx.Values().Set("userID", claims.ID)
	ctx.Next()
}

// SeekerOnlyMiddleware rejects non-seeker identities before the handler runs.
func SeekerOnlyMiddleware(ctx iris.Context) {
	claims := jwt.Get(ctx).(*AccessToken)
	if claims.Role != models.RoleSeeker {
		JSONError(ctx, iris.StatusForbidden, "PERMISSION_DENIED", "seeker access required")
		return
	}
	ctx.Values().Set("userID", claims.ID)
	ctx.Next()
}

// UserID returns the id set by the token middleware.
func UserID(ctx iris.Context) uint {
	return ctx.Values().Get("userID").(uint)
}
