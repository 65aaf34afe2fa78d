package user

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/Lingora/internal/dto"
	"github.com/lshigami/Lingora/internal/service"
	"github.com/rs/zerolog/log"
)

type LessonController struct {
	lessonService service.LessonService
}

func NewLessonController(lessonService service.LessonService) *LessonController {
	return &LessonController{lessonService: lessonService}
}

// GetDailyLesson godoc
// @Summary Get today's lesson
// @Description Pick a daily lesson matched to the learner's CEFR level. Falls back to any level if none match.
// @Tags Lessons
// @Produce json
// @Param user_id query int true "User ID"
// @Success 200 {object} dto.LessonResponse
// @Failure 400 {object} dto.ErrorResponse "Missing or invalid user_id"
// @Failure 404 {object} dto.ErrorResponse "No daily lesson available"
// @Router /lessons/daily [get]
func (c *LessonController) GetDailyLesson(ctx *gin.Context) {
	userID, ok := userIDFromQuery(ctx)
	if !ok {
		return
	}
	lesson, err := c.lessonService.GetDailyLesson(userID)
	if err != nil {
		log.Error().Err(err).Uint("user_id", userID).Msg("GetDailyLesson: service error")
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: "No daily lesson available", Details: []string{err.Error()}})
		return
	}
	ctx.JSON(http.StatusOK, lesson)
}

// GetSprint godoc
// @Summary Get a skill sprint
// @Description Build a grammar or vocabulary sprint from the difficulty band matching the learner's level.
// @Tags Lessons
// @Produce json
// @Param sprint_type path string true "Sprint type" Enums(grammar_sprint, word_sprint)
// @Param user_id query int true "User ID"
// @Success 200 {object} dto.LessonResponse
// @Failure 400 {object} dto.ErrorResponse "Unknown sprint type"
// @Failure 404 {object} dto.ErrorResponse "No sprint available"
// @Router /lessons/sprints/{sprint_type} [get]
func (c *LessonController) GetSprint(ctx *gin.Context) {
	userID, ok := userIDFromQuery(ctx)
	if !ok {
		return
	}
	sprintType := ctx.Param("sprint_type")
	lesson, err := c.lessonService.GetSprint(userID, sprintType)
	if err != nil {
		log.Error().Err(err).Str("sprint_type", sprintType).Msg("GetSprint: service error")
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: "Failed to build sprint", Details: []string{err.Error()}})
		return
	}
	ctx.JSON(http.StatusOK, lesson)
}

// GetLesson godoc
// @Summary Get a lesson with its questions
// @Tags Lessons
// @Produce json
// @Param lesson_id path int true "Lesson ID"
// @Success 200 {object} dto.LessonResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid Lesson ID format"
// @Failure 404 {object} dto.ErrorResponse "Lesson not found"
// @Router /lessons/{lesson_id} [get]
func (c *LessonController) GetLesson(ctx *gin.Context) {
	lessonID, ok := pathID(ctx, "lesson_id")
	if !ok {
		return
	}
	lesson, err := c.lessonService.GetLesson(lessonID)
	if err != nil {
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: "Lesson not found"})
		return
	}
	ctx.JSON(http.StatusOK, lesson)
}

// SubmitLesson godoc
// @Summary Submit lesson answers
// @Description Score the batch and apply XP, streak, progress, mistakes and achievements atomically.
// @Tags Lessons
// @Accept json
// @Produce json
// @Param lesson_id path int true "Lesson ID"
// @Param submission body dto.SubmitLessonRequest true "Answer batch"
// @Success 200 {object} dto.SubmitLessonResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 500 {object} dto.ErrorResponse "Submission could not be recorded"
// @Router /lessons/{lesson_id}/submit [post]
func (c *LessonController) SubmitLesson(ctx *gin.Context) {
	lessonID, ok := pathID(ctx, "lesson_id")
	if !ok {
		return
	}
	var req dto.SubmitLessonRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}
	if len(req.Answers) == 0 {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Submission must contain at least one answer."})
		return
	}
	userID, ok := userIDFromBody(ctx, req.UserID)
	if !ok {
		return
	}

	result, err := c.lessonService.SubmitLesson(userID, lessonID, req)
	if err != nil {
		log.Error().Err(err).Uint("lesson_id", lessonID).Msg("SubmitLesson: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to submit lesson", Details: []string{err.Error()}})
		return
	}
	ctx.JSON(http.StatusOK, result)
}

// GetPacks godoc
// @Summary List lesson packs with completion counts
// @Tags Lessons
// @Produce json
// @Param user_id query int true "User ID"
// @Success 200 {array} dto.PackResponse
// @Failure 400 {object} dto.ErrorResponse "Missing or invalid user_id"
// @Router /packs [get]
func (c *LessonController) GetPacks(ctx *gin.Context) {
	userID, ok := userIDFromQuery(ctx)
	if !ok {
		return
	}
	packs, err := c.lessonService.GetPacks(userID)
	if err != nil {
		log.Error().Err(err).Msg("GetPacks: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to load packs", Details: []string{err.Error()}})
		return
	}
	ctx.JSON(http.StatusOK, packs)
}

// GetPackLessons godoc
// @Summary List the lessons inside a pack
// @Tags Lessons
// @Produce json
// @Param pack_id path int true "Pack ID"
// @Success 200 {array} dto.LessonResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid Pack ID format"
// @Router /packs/{pack_id}/lessons [get]
func (c *LessonController) GetPackLessons(ctx *gin.Context) {
	packID, ok := pathID(ctx, "pack_id")
	if !ok {
		return
	}
	lessons, err := c.lessonService.GetPackLessons(packID)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to load pack lessons", Details: []string{err.Error()}})
		return
	}
	ctx.JSON(http.StatusOK, lessons)
}
