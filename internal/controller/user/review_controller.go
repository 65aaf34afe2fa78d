package user

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/Lingora/internal/dto"
	"github.com/lshigami/Lingora/internal/service"
	"github.com/rs/zerolog/log"
)

type ReviewController struct {
	reviewService service.ReviewService
}

func NewReviewController(reviewService service.ReviewService) *ReviewController {
	return &ReviewController{reviewService: reviewService}
}

// GenerateQuiz godoc
// @Summary Build a review quiz from past mistakes
// @Description Rank outstanding mistakes by frequency and recency and serve the top questions.
// @Tags Review
// @Produce json
// @Param user_id query int true "User ID"
// @Success 200 {object} dto.ReviewQuizResponse
// @Failure 400 {object} dto.ErrorResponse "Missing or invalid user_id"
// @Router /review/generate [get]
func (c *ReviewController) GenerateQuiz(ctx *gin.Context) {
	userID, ok := userIDFromQuery(ctx)
	if !ok {
		return
	}
	quiz, err := c.reviewService.GenerateQuiz(userID)
	if err != nil {
		log.Error().Err(err).Uint("user_id", userID).Msg("GenerateQuiz: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to generate review quiz", Details: []string{err.Error()}})
		return
	}
	ctx.JSON(http.StatusOK, quiz)
}

// SubmitReview godoc
// @Summary Submit review quiz answers
// @Description Clears mistakes answered correctly. Partial submissions earn reduced XP.
// @Tags Review
// @Accept json
// @Produce json
// @Param submission body dto.SubmitReviewRequest true "Answer batch"
// @Success 200 {object} dto.SubmitReviewResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Router /review/submit [post]
func (c *ReviewController) SubmitReview(ctx *gin.Context) {
	var req dto.SubmitReviewRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}
	userID, ok := userIDFromBody(ctx, req.UserID)
	if !ok {
		return
	}

	result, err := c.reviewService.SubmitReview(userID, req)
	if err != nil {
		log.Error().Err(err).Uint("user_id", userID).Msg("SubmitReview: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to submit review", Details: []string{err.Error()}})
		return
	}
	ctx.JSON(http.StatusOK, result)
}

// GetStats godoc
// @Summary Get review statistics
// @Tags Review
// @Produce json
// @Param user_id query int true "User ID"
// @Success 200 {object} dto.ReviewStatsResponse
// @Failure 400 {object} dto.ErrorResponse "Missing or invalid user_id"
// @Router /review/stats [get]
func (c *ReviewController) GetStats(ctx *gin.Context) {
	userID, ok := userIDFromQuery(ctx)
	if !ok {
		return
	}
	stats, err := c.reviewService.Stats(userID)
	if err != nil {
		log.Error().Err(err).Uint("user_id", userID).Msg("GetStats: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to load review stats", Details: []string{err.Error()}})
		return
	}
	ctx.JSON(http.StatusOK, stats)
}
