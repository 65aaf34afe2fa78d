package config

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"

	"github.com/lshigami/Lingora/internal/model"
)

type Config struct {
	Server       Server
	Database     Database
	GeminiApiKey string
	XP           XP
}

type Server struct {
	Port string
}

type Database struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

// XP holds the award constants and the cumulative XP threshold per CEFR
// level. It is built once at startup and passed by reference into the
// services that need it; nothing mutates it afterwards.
type XP struct {
	PerCorrectAnswer      int
	DailyLessonComplete   int
	GrammarSprintComplete int
	WordSprintComplete    int
	SpeakingSession       int
	StreakBonusPerDay     int
	StreakBonusCap        int
	PerfectBonus          int

	// LevelThresholds is ordered by model.CEFRLevels; entry i is the
	// minimum cumulative XP for CEFRLevels[i].
	LevelThresholds []int
}

// ThresholdFor returns the minimum cumulative XP for the given level.
func (x XP) ThresholdFor(level model.CEFRLevel) int {
	idx := level.Index()
	if idx < 0 || idx >= len(x.LevelThresholds) {
		return 0
	}
	return x.LevelThresholds[idx]
}

func NewConfig() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		log.Warn().Err(err).Msg("Error reading config file")
	}

	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("XP_PER_CORRECT_ANSWER", 10)
	viper.SetDefault("XP_DAILY_LESSON_COMPLETE", 50)
	viper.SetDefault("XP_GRAMMAR_SPRINT_COMPLETE", 30)
	viper.SetDefault("XP_WORD_SPRINT_COMPLETE", 25)
	viper.SetDefault("XP_SPEAKING_SESSION", 40)
	viper.SetDefault("XP_BONUS_STREAK", 5)
	viper.SetDefault("XP_BONUS_STREAK_CAP", 50)
	viper.SetDefault("XP_PERFECT_BONUS", 25)

	var config Config

	config.Server.Port = viper.GetString("SERVER_PORT")
	config.Database.Host = viper.GetString("DATABASE_HOST")
	config.Database.Port = viper.GetString("DATABASE_PORT")
	config.Database.User = viper.GetString("DATABASE_USER")
	config.Database.Password = viper.GetString("DATABASE_PASSWORD")
	config.Database.Name = viper.GetString("DATABASE_NAME")

	config.GeminiApiKey = viper.GetString("GEMINI_API_KEY")

	config.XP = XP{
		PerCorrectAnswer:      viper.GetInt("XP_PER_CORRECT_ANSWER"),
		DailyLessonComplete:   viper.GetInt("XP_DAILY_LESSON_COMPLETE"),
		GrammarSprintComplete: viper.GetInt("XP_GRAMMAR_SPRINT_COMPLETE"),
		WordSprintComplete:    viper.GetInt("XP_WORD_SPRINT_COMPLETE"),
		SpeakingSession:       viper.GetInt("XP_SPEAKING_SESSION"),
		StreakBonusPerDay:     viper.GetInt("XP_BONUS_STREAK"),
		StreakBonusCap:        viper.GetInt("XP_BONUS_STREAK_CAP"),
		PerfectBonus:          viper.GetInt("XP_PERFECT_BONUS"),
		LevelThresholds:       []int{0, 5000, 10000, 15000, 20000, 25000},
	}

	log.Info().Str("port", config.Server.Port).Msg("Config loaded")
	return &config, nil
}
