package dto

import "encoding/json"

// QuestionCreateDTO is used within LessonCreateDTO for admin lesson creation.
type QuestionCreateDTO struct {
	Type          string          `json:"type" binding:"required,oneof=mcq gap_fill matching translation listening reorder true_false"`
	Content       json.RawMessage `json:"content" binding:"required"`
	CorrectAnswer string          `json:"correct_answer" binding:"required"`
	SkillTag      string          `json:"skill_tag" binding:"required,oneof=grammar vocabulary listening reading pronunciation speaking general"`
	Difficulty    int             `json:"difficulty" binding:"required,min=1,max=5"`
	XPValue       int             `json:"xp_value"`
}

// LessonCreateDTO is for admin to create a new lesson with all its questions.
type LessonCreateDTO struct {
	Title       string              `json:"title" binding:"required"`
	Description string              `json:"description,omitempty"`
	Type        string              `json:"type" binding:"required,oneof=daily grammar_sprint word_sprint placement transition review"`
	CEFRLevel   string              `json:"cefr_level" binding:"required,oneof=A1 A2 B1 B2 C1 C2"`
	XPReward    int                 `json:"xp_reward"`
	OrderIndex  int                 `json:"order_index"`
	PackID      *uint               `json:"pack_id"` // Optional: attach to an existing pack
	Questions   []QuestionCreateDTO `json:"questions" binding:"required,min=1,dive"`
}

// PackCreateDTO is for admin to create a lesson pack.
type PackCreateDTO struct {
	Title      string `json:"title" binding:"required"`
	CEFRLevel  string `json:"cefr_level" binding:"required,oneof=A1 A2 B1 B2 C1 C2"`
	Icon       string `json:"icon"`
	OrderIndex int    `json:"order_index"`
}
