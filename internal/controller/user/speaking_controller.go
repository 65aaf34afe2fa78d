package user

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/Lingora/internal/dto"
	"github.com/lshigami/Lingora/internal/service"
	"github.com/rs/zerolog/log"
)

type SpeakingController struct {
	speakingService service.SpeakingService
}

func NewSpeakingController(speakingService service.SpeakingService) *SpeakingController {
	return &SpeakingController{speakingService: speakingService}
}

// ListScenarios godoc
// @Summary List roleplay scenarios
// @Tags Speaking
// @Produce json
// @Success 200 {array} dto.ScenarioResponse
// @Router /speaking/scenarios [get]
func (c *SpeakingController) ListScenarios(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, c.speakingService.ListScenarios())
}

// StartSession godoc
// @Summary Start a conversation session
// @Tags Speaking
// @Accept json
// @Produce json
// @Param session body dto.StartSpeakingSessionRequest true "Session settings"
// @Success 201 {object} dto.SpeakingSessionResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Router /speaking/sessions [post]
func (c *SpeakingController) StartSession(ctx *gin.Context) {
	var req dto.StartSpeakingSessionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}
	userID, ok := userIDFromBody(ctx, req.UserID)
	if !ok {
		return
	}

	session, err := c.speakingService.StartSession(ctx.Request.Context(), userID, req)
	if err != nil {
		log.Error().Err(err).Uint("user_id", userID).Msg("StartSession: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to start session", Details: []string{err.Error()}})
		return
	}
	ctx.JSON(http.StatusCreated, session)
}

// SubmitTurn godoc
// @Summary Submit one conversation turn
// @Description Transcribes audio if provided, scores the utterance and replies. Completing the fifth learner turn closes the session and awards XP.
// @Tags Speaking
// @Accept json
// @Produce json
// @Param session_id path int true "Session ID"
// @Param turn body dto.SpeakingTurnRequest true "Audio or text for this turn"
// @Success 200 {object} dto.SpeakingTurnResponse
// @Failure 400 {object} dto.ErrorResponse "Empty turn or invalid audio"
// @Failure 404 {object} dto.ErrorResponse "Session not found"
// @Router /speaking/sessions/{session_id}/turns [post]
func (c *SpeakingController) SubmitTurn(ctx *gin.Context) {
	sessionID, ok := pathID(ctx, "session_id")
	if !ok {
		return
	}
	var req dto.SpeakingTurnRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}
	userID, ok := userIDFromBody(ctx, req.UserID)
	if !ok {
		return
	}

	turn, err := c.speakingService.SubmitTurn(ctx.Request.Context(), userID, sessionID, req)
	if err != nil {
		if errors.Is(err, service.ErrEmptyTurn) {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: err.Error()})
			return
		}
		if errors.Is(err, service.ErrSessionCompleted) {
			ctx.JSON(http.StatusConflict, dto.ErrorResponse{Message: err.Error()})
			return
		}
		log.Error().Err(err).Uint("session_id", sessionID).Msg("SubmitTurn: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to process turn", Details: []string{err.Error()}})
		return
	}
	ctx.JSON(http.StatusOK, turn)
}

// EndSession godoc
// @Summary End a conversation session
// @Description Closes the session, averages the accumulated scores and awards speaking XP. A session pays out only once.
// @Tags Speaking
// @Accept json
// @Produce json
// @Param session_id path int true "Session ID"
// @Param session body dto.EndSpeakingSessionRequest true "User identification"
// @Success 200 {object} dto.EndSpeakingSessionResponse
// @Failure 404 {object} dto.ErrorResponse "Session not found"
// @Failure 409 {object} dto.ErrorResponse "Session already completed"
// @Router /speaking/sessions/{session_id}/end [post]
func (c *SpeakingController) EndSession(ctx *gin.Context) {
	sessionID, ok := pathID(ctx, "session_id")
	if !ok {
		return
	}
	var req dto.EndSpeakingSessionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}
	userID, ok := userIDFromBody(ctx, req.UserID)
	if !ok {
		return
	}

	summary, err := c.speakingService.EndSession(userID, sessionID)
	if err != nil {
		if errors.Is(err, service.ErrSessionCompleted) {
			ctx.JSON(http.StatusConflict, dto.ErrorResponse{Message: err.Error()})
			return
		}
		log.Error().Err(err).Uint("session_id", sessionID).Msg("EndSession: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to end session", Details: []string{err.Error()}})
		return
	}
	ctx.JSON(http.StatusOK, summary)
}
