package user

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/Lingora/internal/dto"
)

// userIDFromQuery reads the required user_id query parameter. Writes the
// error response itself and returns false on failure.
func userIDFromQuery(ctx *gin.Context) (uint, bool) {
	raw := ctx.Query("user_id")
	if raw == "" {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "user_id query parameter is required"})
		return 0, false
	}
	val, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid user_id format in query"})
		return 0, false
	}
	return uint(val), true
}

// userIDFromBody resolves the user from a request body field, falling back
// to the user_id query parameter.
func userIDFromBody(ctx *gin.Context, bodyUserID *uint) (uint, bool) {
	if bodyUserID != nil {
		return *bodyUserID, true
	}
	return userIDFromQuery(ctx)
}

func pathID(ctx *gin.Context, name string) (uint, bool) {
	val, err := strconv.ParseUint(ctx.Param(name), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid " + name + " format"})
		return 0, false
	}
	return uint(val), true
}
