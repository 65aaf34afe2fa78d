package user

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/Lingora/internal/dto"
	"github.com/lshigami/Lingora/internal/service"
	"github.com/rs/zerolog/log"
)

type ProgressController struct {
	progressService service.ProgressService
}

func NewProgressController(progressService service.ProgressService) *ProgressController {
	return &ProgressController{progressService: progressService}
}

// GetDashboard godoc
// @Summary Get the learner dashboard
// @Description XP, streak, level progress, completion and review counts plus recent badges.
// @Tags Progress
// @Produce json
// @Param user_id query int true "User ID"
// @Success 200 {object} dto.DashboardResponse
// @Failure 400 {object} dto.ErrorResponse "Missing or invalid user_id"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Router /progress/dashboard [get]
func (c *ProgressController) GetDashboard(ctx *gin.Context) {
	userID, ok := userIDFromQuery(ctx)
	if !ok {
		return
	}
	dashboard, err := c.progressService.Dashboard(userID)
	if err != nil {
		log.Error().Err(err).Uint("user_id", userID).Msg("GetDashboard: service error")
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: "Failed to load dashboard", Details: []string{err.Error()}})
		return
	}
	ctx.JSON(http.StatusOK, dashboard)
}

// GetAchievements godoc
// @Summary List all badges with earned status
// @Tags Progress
// @Produce json
// @Param user_id query int true "User ID"
// @Success 200 {array} dto.AchievementCatalogEntry
// @Failure 400 {object} dto.ErrorResponse "Missing or invalid user_id"
// @Router /progress/achievements [get]
func (c *ProgressController) GetAchievements(ctx *gin.Context) {
	userID, ok := userIDFromQuery(ctx)
	if !ok {
		return
	}
	catalog, err := c.progressService.AchievementCatalog(userID)
	if err != nil {
		log.Error().Err(err).Uint("user_id", userID).Msg("GetAchievements: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to load achievements", Details: []string{err.Error()}})
		return
	}
	ctx.JSON(http.StatusOK, catalog)
}
