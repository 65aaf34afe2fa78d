package user

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/Lingora/internal/dto"
	"github.com/lshigami/Lingora/internal/service"
	"github.com/rs/zerolog/log"
)

type PlannerController struct {
	plannerService service.PlannerService
}

func NewPlannerController(plannerService service.PlannerService) *PlannerController {
	return &PlannerController{plannerService: plannerService}
}

// GetPlan godoc
// @Summary Study plan
// @Description Returns the learner's goals and study days plus a suggested weekly schedule and recommended focus skills.
// @Tags Planner
// @Produce json
// @Param user_id query int true "User ID"
// @Success 200 {object} dto.StudyPlanResponse
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Router /planner [get]
func (c *PlannerController) GetPlan(ctx *gin.Context) {
	userID, ok := userIDFromQuery(ctx)
	if !ok {
		return
	}
	plan, err := c.plannerService.GetPlan(userID)
	if err != nil {
		log.Error().Err(err).Uint("user_id", userID).Msg("GetPlan: service error")
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: "Failed to load study plan", Details: []string{err.Error()}})
		return
	}
	ctx.JSON(http.StatusOK, plan)
}

// UpdatePlan godoc
// @Summary Update study plan settings
// @Tags Planner
// @Accept json
// @Produce json
// @Param plan body dto.UpdateStudyPlanRequest true "Fields to change"
// @Success 200 {object} map[string]string
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Router /planner [put]
func (c *PlannerController) UpdatePlan(ctx *gin.Context) {
	var req dto.UpdateStudyPlanRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}
	userID, ok := userIDFromBody(ctx, req.UserID)
	if !ok {
		return
	}
	if err := c.plannerService.UpdatePlan(userID, req); err != nil {
		log.Error().Err(err).Uint("user_id", userID).Msg("UpdatePlan: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to update study plan", Details: []string{err.Error()}})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "Study plan updated"})
}

// GetReminderStatus godoc
// @Summary Daily reminder status
// @Description Reports whether today's XP goal is met and whether the streak is at risk.
// @Tags Planner
// @Produce json
// @Param user_id query int true "User ID"
// @Success 200 {object} dto.ReminderStatusResponse
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Router /planner/reminder-status [get]
func (c *PlannerController) GetReminderStatus(ctx *gin.Context) {
	userID, ok := userIDFromQuery(ctx)
	if !ok {
		return
	}
	status, err := c.plannerService.ReminderStatus(userID)
	if err != nil {
		log.Error().Err(err).Uint("user_id", userID).Msg("GetReminderStatus: service error")
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: "Failed to get reminder status", Details: []string{err.Error()}})
		return
	}
	ctx.JSON(http.StatusOK, status)
}
