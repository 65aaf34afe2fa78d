package user

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/Lingora/internal/dto"
	"github.com/lshigami/Lingora/internal/service"
	"github.com/rs/zerolog/log"
)

type AssessmentController struct {
	placementService service.PlacementService
}

func NewAssessmentController(placementService service.PlacementService) *AssessmentController {
	return &AssessmentController{placementService: placementService}
}

// GetPlacementTest godoc
// @Summary Get the placement test
// @Description Assemble a placement battery of three questions per difficulty tier.
// @Tags Assessment
// @Produce json
// @Success 200 {object} dto.PlacementTestResponse
// @Failure 404 {object} dto.ErrorResponse "No placement test configured"
// @Router /assessment/placement [get]
func (c *AssessmentController) GetPlacementTest(ctx *gin.Context) {
	test, err := c.placementService.GetPlacementTest()
	if err != nil {
		log.Error().Err(err).Msg("GetPlacementTest: service error")
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: "No placement test available", Details: []string{err.Error()}})
		return
	}
	ctx.JSON(http.StatusOK, test)
}

// SubmitPlacement godoc
// @Summary Submit placement answers
// @Description Score the battery and assign the learner's starting CEFR level.
// @Tags Assessment
// @Accept json
// @Produce json
// @Param submission body dto.SubmitPlacementRequest true "Answer batch"
// @Success 200 {object} dto.PlacementResultResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Router /assessment/placement/submit [post]
func (c *AssessmentController) SubmitPlacement(ctx *gin.Context) {
	var req dto.SubmitPlacementRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}
	userID, ok := userIDFromBody(ctx, req.UserID)
	if !ok {
		return
	}

	result, err := c.placementService.SubmitPlacement(userID, req)
	if err != nil {
		log.Error().Err(err).Uint("user_id", userID).Msg("SubmitPlacement: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to submit placement test", Details: []string{err.Error()}})
		return
	}
	ctx.JSON(http.StatusOK, result)
}

// GetTransitionTest godoc
// @Summary Get a transition test toward a higher level
// @Tags Assessment
// @Produce json
// @Param target_level path string true "Target CEFR level" Enums(A1, A2, B1, B2, C1, C2)
// @Param user_id query int true "User ID"
// @Success 200 {object} dto.PlacementTestResponse
// @Failure 400 {object} dto.ErrorResponse "Target level not above current level"
// @Failure 404 {object} dto.ErrorResponse "No transition test for that level"
// @Router /assessment/transition/{target_level} [get]
func (c *AssessmentController) GetTransitionTest(ctx *gin.Context) {
	userID, ok := userIDFromQuery(ctx)
	if !ok {
		return
	}
	target := ctx.Param("target_level")

	test, err := c.placementService.GetTransitionTest(userID, target)
	if err != nil {
		if errors.Is(err, service.ErrInvalidTransition) {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: err.Error()})
			return
		}
		log.Error().Err(err).Str("target", target).Msg("GetTransitionTest: service error")
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: "Failed to load transition test", Details: []string{err.Error()}})
		return
	}
	ctx.JSON(http.StatusOK, test)
}

// SubmitTransition godoc
// @Summary Submit transition test answers
// @Description Advance the learner to the target level on a passing score.
// @Tags Assessment
// @Accept json
// @Produce json
// @Param target_level path string true "Target CEFR level" Enums(A1, A2, B1, B2, C1, C2)
// @Param submission body dto.SubmitPlacementRequest true "Answer batch"
// @Success 200 {object} dto.TransitionResultResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input or target level"
// @Router /assessment/transition/{target_level}/submit [post]
func (c *AssessmentController) SubmitTransition(ctx *gin.Context) {
	var req dto.SubmitPlacementRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}
	userID, ok := userIDFromBody(ctx, req.UserID)
	if !ok {
		return
	}
	target := ctx.Param("target_level")

	result, err := c.placementService.SubmitTransition(userID, target, req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidTransition) {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: err.Error()})
			return
		}
		log.Error().Err(err).Str("target", target).Msg("SubmitTransition: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to submit transition test", Details: []string{err.Error()}})
		return
	}
	ctx.JSON(http.StatusOK, result)
}
