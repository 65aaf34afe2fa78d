package dto

import (
	"encoding/json"
	"time"
)

type ErrorResponse struct {
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}

type UserResponse struct {
	ID            uint      `json:"id"`
	Email         string    `json:"email"`
	Name          string    `json:"name"`
	CEFRLevel     *string   `json:"cefr_level,omitempty"` // nil until placement
	XPTotal       int       `json:"xp_total"`
	CurrentStreak int       `json:"current_streak"`
	LongestStreak int       `json:"longest_streak"`
	CreatedAt     time.Time `json:"created_at"`
}

type QuestionResponse struct {
	ID            uint            `json:"id"`
	Type          string          `json:"type"`
	SkillTag      string          `json:"skill_tag"`
	Difficulty    int             `json:"difficulty"`
	Content       json.RawMessage `json:"content"`
	CorrectAnswer string          `json:"correct_answer,omitempty"`
	XPValue       int             `json:"xp_value"`
}

type LessonResponse struct {
	ID          uint               `json:"id"`
	Title       string             `json:"title"`
	Description string             `json:"description,omitempty"`
	Type        string             `json:"type"`
	CEFRLevel   string             `json:"cefr_level"`
	XPReward    int                `json:"xp_reward"`
	Questions   []QuestionResponse `json:"questions,omitempty"`
}

type PackResponse struct {
	ID               uint   `json:"id"`
	Title            string `json:"title"`
	CEFRLevel        string `json:"cefr_level"`
	Icon             string `json:"icon,omitempty"`
	OrderIndex       int    `json:"order_index"`
	TotalLessons     int    `json:"total_lessons"`
	CompletedLessons int    `json:"completed_lessons"`
}

// XPBreakdown itemizes a lesson XP award.
type XPBreakdown struct {
	Base            int `json:"base"`
	CompletionBonus int `json:"completion_bonus"`
	StreakBonus     int `json:"streak_bonus"`
	PerfectBonus    int `json:"perfect_bonus"`
	Total           int `json:"total"`
}

// SkillBreakdown is per-skill accuracy over one answer batch.
type SkillBreakdown struct {
	Skill    string  `json:"skill"`
	Correct  int     `json:"correct"`
	Total    int     `json:"total"`
	Accuracy float64 `json:"accuracy"`
}

// PerformanceAnalysis is the full scoring summary for an answer batch.
type PerformanceAnalysis struct {
	OverallAccuracy float64          `json:"overall_accuracy"`
	Breakdown       []SkillBreakdown `json:"breakdown"`
	Strengths       []string         `json:"strengths"`
	Weaknesses      []string         `json:"weaknesses"`
	NeedsReview     bool             `json:"needs_review"`
}

type SubmitLessonResponse struct {
	Success         bool                `json:"success"`
	Score           int                 `json:"score"`
	CorrectCount    int                 `json:"correct_count"`
	TotalQuestions  int                 `json:"total_questions"`
	XPEarned        int                 `json:"xp_earned"`
	XPBreakdown     XPBreakdown         `json:"xp_breakdown"`
	NewStreak       int                 `json:"new_streak"`
	LevelUp         bool                `json:"level_up"`
	NewLevel        *string             `json:"new_level,omitempty"`
	MistakeIDs      []uint              `json:"mistake_ids"`
	NewAchievements []string            `json:"new_achievements"`
	Analysis        PerformanceAnalysis `json:"analysis"`
}

type ReviewQuizResponse struct {
	Title           string             `json:"title"`
	Description     string             `json:"description"`
	TotalQuestions  int                `json:"total_questions"`
	BasedOnMistakes int                `json:"based_on_mistakes"`
	Questions       []QuestionResponse `json:"questions"`
	XPReward        int                `json:"xp_reward"`
	CanExitEarly    bool               `json:"can_exit_early"`
	Message         string             `json:"message,omitempty"`
}

type SubmitReviewResponse struct {
	Success        bool                `json:"success"`
	Partial        bool                `json:"partial"`
	Score          int                 `json:"score"`
	CorrectCount   int                 `json:"correct_count"`
	TotalQuestions int                 `json:"total_questions"`
	XPEarned       int                 `json:"xp_earned"`
	ClearedIDs     []uint              `json:"cleared_ids"`
	Analysis       PerformanceAnalysis `json:"analysis"`
	Message        string              `json:"message"`
}

type ReviewStatsResponse struct {
	TotalReviews    int64   `json:"total_reviews"`
	AverageScore    float64 `json:"average_score"`
	PendingMistakes int64   `json:"pending_mistakes"`
	Recommendation  string  `json:"recommendation"`
}

type PlacementTestResponse struct {
	LessonID       uint               `json:"lesson_id"`
	Title          string             `json:"title"`
	TotalQuestions int                `json:"total_questions"`
	Questions      []QuestionResponse `json:"questions"`
}

type PlacementResultResponse struct {
	AssignedLevel  string `json:"assigned_level"`
	Score          int    `json:"score"`
	CorrectCount   int    `json:"correct_count"`
	TotalQuestions int    `json:"total_questions"`
	Message        string `json:"message"`
}

type TransitionResultResponse struct {
	Passed         bool    `json:"passed"`
	Score          int     `json:"score"`
	CorrectCount   int     `json:"correct_count"`
	TotalQuestions int     `json:"total_questions"`
	NewLevel       *string `json:"new_level,omitempty"`
	Message        string  `json:"message"`
}

type AchievementResponse struct {
	BadgeType   string    `json:"badge_type"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Icon        string    `json:"icon"`
	EarnedAt    time.Time `json:"earned_at"`
}

// AchievementCatalogEntry is a badge definition plus whether the user has it.
type AchievementCatalogEntry struct {
	BadgeType   string     `json:"badge_type"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Icon        string     `json:"icon"`
	Earned      bool       `json:"earned"`
	EarnedAt    *time.Time `json:"earned_at,omitempty"`
}

type DashboardResponse struct {
	User               UserResponse          `json:"user"`
	XPToNextLevel      int                   `json:"xp_to_next_level"`
	TodayXP            int                   `json:"today_xp"`
	WeeklyXP           int                   `json:"weekly_xp"`
	LessonsCompleted   int64                 `json:"lessons_completed"`
	AverageScore       float64               `json:"average_score"`
	PendingReviews     int64                 `json:"pending_reviews"`
	SkillBreakdown     []SkillBreakdown      `json:"skill_breakdown"`
	RecentAchievements []AchievementResponse `json:"recent_achievements"`
}

type ScenarioResponse struct {
	ID          uint   `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	CEFRLevel   string `json:"cefr_level"`
}

type TurnScores struct {
	Fluency    float64 `json:"fluency"`
	Grammar    float64 `json:"grammar"`
	Vocabulary float64 `json:"vocabulary"`
}

type SpeakingSessionResponse struct {
	SessionID   uint   `json:"session_id"`
	SessionType string `json:"session_type"`
	Greeting    string `json:"greeting"`
}

type SpeakingTurnResponse struct {
	Transcript string     `json:"transcript"`
	Reply      string     `json:"reply"`
	Scores     TurnScores `json:"scores"`
	Completed  bool       `json:"completed"`
	XPEarned   int        `json:"xp_earned"`
	Message    string     `json:"message,omitempty"`
}

type VocabularyWordResponse struct {
	Word         string     `json:"word"`
	Meaning      string     `json:"meaning,omitempty"`
	Context      string     `json:"context,omitempty"`
	MistakeCount int        `json:"mistake_count"`
	Suggested    bool       `json:"suggested,omitempty"`
	LastSeen     *time.Time `json:"last_seen,omitempty"`
}

type VocabularyAdvisorResponse struct {
	UserLevel     *string                  `json:"user_level,omitempty"`
	WordsToReview int                      `json:"words_to_review"`
	MasteredCount int                      `json:"mastered_count"`
	Words         []VocabularyWordResponse `json:"vocabulary_list"`
	Tip           string                   `json:"tip"`
}

type VocabularyPracticeQuestion struct {
	Type          string `json:"type"`
	Word          string `json:"word"`
	Hint          string `json:"hint,omitempty"`
	CorrectAnswer string `json:"correct_answer"`
}

type VocabularyPracticeResponse struct {
	TotalWords int                          `json:"total_words"`
	Questions  []VocabularyPracticeQuestion `json:"questions"`
	Message    string                       `json:"message,omitempty"`
}

// ScheduleDay is one row of the suggested weekly study schedule.
type ScheduleDay struct {
	Day             string `json:"day"`
	Active          bool   `json:"active"`
	Focus           string `json:"focus"`
	DurationMinutes int    `json:"duration_minutes"`
}

type StudyPlanResponse struct {
	DailyGoalMinutes     int           `json:"daily_goal_minutes"`
	StudyDays            []string      `json:"study_days"`
	NotificationsEnabled bool          `json:"notifications_enabled"`
	ReminderTime         string        `json:"reminder_time,omitempty"`
	CurrentLevel         *string       `json:"current_level,omitempty"`
	RecommendedFocus     []string      `json:"recommended_focus"`
	SuggestedSchedule    []ScheduleDay `json:"suggested_schedule"`
	Tips                 []string      `json:"tips"`
}

type ReminderStatusResponse struct {
	GoalMetToday          bool   `json:"goal_met_today"`
	XPEarnedToday         int    `json:"xp_earned_today"`
	LessonsCompletedToday int64  `json:"lessons_completed_today"`
	CurrentStreak         int    `json:"current_streak"`
	StreakAtRisk          bool   `json:"streak_at_risk"`
	ReminderMessage       string `json:"reminder_message,omitempty"`
	NotificationsEnabled  bool   `json:"notifications_enabled"`
}

type EndSpeakingSessionResponse struct {
	SessionID       uint       `json:"session_id"`
	DurationSeconds int        `json:"duration_seconds"`
	MessageCount    int        `json:"message_count"`
	FinalScores     TurnScores `json:"final_scores"`
	XPEarned        int        `json:"xp_earned"`
	Summary         string     `json:"summary"`
}
