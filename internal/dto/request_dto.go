package dto

// CreateUserRequest registers a learner. Placement assigns the level later.
type CreateUserRequest struct {
	Email string `json:"email" binding:"required,email"`
	Name  string `json:"name" binding:"required"`
}

// AnswerSubmission is one answer inside a submitted batch.
type AnswerSubmission struct {
	QuestionID uint   `json:"question_id" binding:"required"`
	UserAnswer string `json:"user_answer" binding:"required"`
}

// SubmitLessonRequest carries the full answer batch for a completed lesson.
type SubmitLessonRequest struct {
	UserID           *uint              `json:"user_id"` // Temporary, for non-auth user identification
	Answers          []AnswerSubmission `json:"answers" binding:"required,dive"`
	TimeSpentSeconds int                `json:"time_spent_seconds"`
}

// SubmitReviewRequest carries review quiz answers. Partial marks an early
// exit; earned XP is reduced accordingly.
type SubmitReviewRequest struct {
	UserID  *uint              `json:"user_id"`
	Answers []AnswerSubmission `json:"answers" binding:"required,dive"`
	Partial bool               `json:"partial"`
}

// SubmitPlacementRequest carries placement or transition test answers.
type SubmitPlacementRequest struct {
	UserID  *uint              `json:"user_id"`
	Answers []AnswerSubmission `json:"answers" binding:"required,dive"`
}

// StartTransitionRequest asks for a transition test toward a target level.
type StartTransitionRequest struct {
	UserID      *uint  `json:"user_id"`
	TargetLevel string `json:"target_level" binding:"required,oneof=A1 A2 B1 B2 C1 C2"`
}

// StartSpeakingSessionRequest opens a conversation session.
type StartSpeakingSessionRequest struct {
	UserID      *uint  `json:"user_id"`
	SessionType string `json:"session_type" binding:"required,oneof=roleplay freetalk"`
	ScenarioID  *uint  `json:"scenario_id"`
}

// SpeakingTurnRequest is one user turn in a conversation session. Either a
// base64 audio payload or plain text must be present.
type SpeakingTurnRequest struct {
	UserID      *uint  `json:"user_id"`
	AudioBase64 string `json:"audio_base64"`
	Text        string `json:"text"`
}

// EndSpeakingSessionRequest closes a conversation session early.
type EndSpeakingSessionRequest struct {
	UserID *uint `json:"user_id"`
}

// AddVocabularyRequest puts a word on the learner's personal list.
type AddVocabularyRequest struct {
	UserID  *uint  `json:"user_id"`
	Word    string `json:"word" binding:"required"`
	Meaning string `json:"meaning"`
	Context string `json:"context"`
}

// UpdateStudyPlanRequest changes study plan settings. Nil fields are left
// untouched.
type UpdateStudyPlanRequest struct {
	UserID               *uint     `json:"user_id"`
	DailyGoalMinutes     *int      `json:"daily_goal_minutes"`
	StudyDays            *[]string `json:"study_days"`
	NotificationsEnabled *bool     `json:"notifications_enabled"`
	ReminderTime         *string   `json:"reminder_time"`
}
