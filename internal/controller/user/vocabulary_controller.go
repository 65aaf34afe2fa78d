package user

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/Lingora/internal/dto"
	"github.com/lshigami/Lingora/internal/service"
	"github.com/rs/zerolog/log"
)

type VocabularyController struct {
	vocabularyService service.VocabularyService
}

func NewVocabularyController(vocabularyService service.VocabularyService) *VocabularyController {
	return &VocabularyController{vocabularyService: vocabularyService}
}

// GetAdvisor godoc
// @Summary Personal vocabulary advisor
// @Description Lists the learner's mistake-driven word list ordered by miss frequency, padded with level-appropriate suggestions when short.
// @Tags Vocabulary
// @Produce json
// @Param user_id query int true "User ID"
// @Success 200 {object} dto.VocabularyAdvisorResponse
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Router /vocabulary/advisor [get]
func (c *VocabularyController) GetAdvisor(ctx *gin.Context) {
	userID, ok := userIDFromQuery(ctx)
	if !ok {
		return
	}
	advisor, err := c.vocabularyService.Advisor(userID)
	if err != nil {
		log.Error().Err(err).Uint("user_id", userID).Msg("GetAdvisor: service error")
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: "Failed to load vocabulary advisor", Details: []string{err.Error()}})
		return
	}
	ctx.JSON(http.StatusOK, advisor)
}

// AddWord godoc
// @Summary Add a word to the vocabulary list
// @Tags Vocabulary
// @Accept json
// @Produce json
// @Param word body dto.AddVocabularyRequest true "Word to add"
// @Success 201 {object} map[string]string
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Router /vocabulary [post]
func (c *VocabularyController) AddWord(ctx *gin.Context) {
	var req dto.AddVocabularyRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}
	userID, ok := userIDFromBody(ctx, req.UserID)
	if !ok {
		return
	}
	if err := c.vocabularyService.Add(userID, req); err != nil {
		log.Error().Err(err).Uint("user_id", userID).Msg("AddWord: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to add word", Details: []string{err.Error()}})
		return
	}
	ctx.JSON(http.StatusCreated, gin.H{"message": "Added '" + req.Word + "' to your vocabulary list"})
}

// MarkMastered godoc
// @Summary Mark a word as mastered
// @Tags Vocabulary
// @Produce json
// @Param word path string true "Word"
// @Param user_id query int true "User ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} dto.ErrorResponse "Word not on the list"
// @Router /vocabulary/{word}/mastered [post]
func (c *VocabularyController) MarkMastered(ctx *gin.Context) {
	userID, ok := userIDFromQuery(ctx)
	if !ok {
		return
	}
	word := ctx.Param("word")
	if err := c.vocabularyService.MarkMastered(userID, word); err != nil {
		if errors.Is(err, service.ErrWordNotFound) {
			ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: err.Error()})
			return
		}
		log.Error().Err(err).Uint("user_id", userID).Msg("MarkMastered: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to update word", Details: []string{err.Error()}})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "Marked '" + word + "' as mastered!"})
}

// RemoveWord godoc
// @Summary Remove a word from the vocabulary list
// @Tags Vocabulary
// @Produce json
// @Param word path string true "Word"
// @Param user_id query int true "User ID"
// @Success 200 {object} map[string]string
// @Router /vocabulary/{word} [delete]
func (c *VocabularyController) RemoveWord(ctx *gin.Context) {
	userID, ok := userIDFromQuery(ctx)
	if !ok {
		return
	}
	word := ctx.Param("word")
	if err := c.vocabularyService.Remove(userID, word); err != nil {
		log.Error().Err(err).Uint("user_id", userID).Msg("RemoveWord: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to remove word", Details: []string{err.Error()}})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "Removed '" + word + "' from your list"})
}

// GetPractice godoc
// @Summary Vocabulary practice questions
// @Description Builds recall questions from the learner's pending words, prioritized by miss frequency.
// @Tags Vocabulary
// @Produce json
// @Param user_id query int true "User ID"
// @Success 200 {object} dto.VocabularyPracticeResponse
// @Router /vocabulary/practice [get]
func (c *VocabularyController) GetPractice(ctx *gin.Context) {
	userID, ok := userIDFromQuery(ctx)
	if !ok {
		return
	}
	practice, err := c.vocabularyService.Practice(userID)
	if err != nil {
		log.Error().Err(err).Uint("user_id", userID).Msg("GetPractice: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to load practice", Details: []string{err.Error()}})
		return
	}
	ctx.JSON(http.StatusOK, practice)
}
