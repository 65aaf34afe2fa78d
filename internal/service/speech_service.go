package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/lshigami/Lingora/config"
	"github.com/lshigami/Lingora/internal/model"
	"github.com/rs/zerolog/log"
	"google.golang.org/api/option"
)

// SpeechScores are the per-turn conversation scores on a 0-100 scale.
type SpeechScores struct {
	Fluency    float64 `json:"fluency"`
	Grammar    float64 `json:"grammar"`
	Vocabulary float64 `json:"vocabulary"`
	Feedback   string  `json:"feedback"`
}

// SpeechService wraps the conversation AI. Every method degrades to an
// empty/zero result when the client is unconfigured or errors; progression
// logic must never block on it.
type SpeechService interface {
	Transcribe(ctx context.Context, audio []byte, mimeType string) (string, error)
	ScoreSpeech(ctx context.Context, transcript, scenario string, level model.CEFRLevel) (*SpeechScores, error)
	GenerateReply(ctx context.Context, history []model.ConversationMessage, scenario string, level model.CEFRLevel) (string, error)
	Available() bool
}

type speechService struct {
	client *genai.GenerativeModel
	cfg    *config.Config
}

func NewSpeechService(cfg *config.Config) (SpeechService, error) {
	if cfg.GeminiApiKey == "" {
		log.Warn().Msg("GEMINI_API_KEY is not set. SpeechService will return default scores.")
		return &speechService{cfg: cfg, client: nil}, nil
	}
	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.GeminiApiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Gemini client: %w", err)
	}
	model := client.GenerativeModel("gemini-1.5-flash")
	return &speechService{client: model, cfg: cfg}, nil
}

func (s *speechService) Available() bool {
	return s.client != nil
}

func (s *speechService) Transcribe(ctx context.Context, audio []byte, mimeType string) (string, error) {
	if s.client == nil {
		return "", nil
	}
	resp, err := s.client.GenerateContent(ctx,
		genai.Blob{MIMEType: mimeType, Data: audio},
		genai.Text("Transcribe this audio recording of an English learner. Return only the transcript text."),
	)
	if err != nil {
		log.Error().Err(err).Msg("Gemini transcription failed")
		return "", nil
	}
	return extractText(resp), nil
}

func (s *speechService) ScoreSpeech(ctx context.Context, transcript, scenario string, level model.CEFRLevel) (*SpeechScores, error) {
	if s.client == nil || transcript == "" {
		return &SpeechScores{Feedback: "AI scoring is not configured."}, nil
	}

	prompt := fmt.Sprintf(`You are an English speaking examiner. The learner is at CEFR level %s.
Conversation context: %s
Learner utterance: %q

Rate the utterance and respond with ONLY a JSON object:
{"fluency": 0-100, "grammar": 0-100, "vocabulary": 0-100, "feedback": "one short sentence"}`,
		level, scenario, transcript)

	resp, err := s.client.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		log.Error().Err(err).Msg("Gemini speech scoring failed")
		return &SpeechScores{Feedback: "Scoring temporarily unavailable."}, nil
	}

	scores := &SpeechScores{}
	raw := stripCodeFence(extractText(resp))
	if err := json.Unmarshal([]byte(raw), scores); err != nil {
		log.Warn().Str("raw", raw).Msg("Unparseable speech score response, using defaults")
		return &SpeechScores{Feedback: "Scoring temporarily unavailable."}, nil
	}
	return scores, nil
}

func (s *speechService) GenerateReply(ctx context.Context, history []model.ConversationMessage, scenario string, level model.CEFRLevel) (string, error) {
	if s.client == nil {
		return "Let's keep practicing! (AI replies are not configured.)", nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "You are a friendly English conversation partner. The learner is at CEFR level %s; keep your vocabulary at that level.\n", level)
	if scenario != "" {
		fmt.Fprintf(&sb, "Scenario: %s\n", scenario)
	}
	sb.WriteString("Conversation so far:\n")
	for _, msg := range history {
		speaker := "Learner"
		if msg.IsAI {
			speaker = "You"
		}
		fmt.Fprintf(&sb, "%s: %s\n", speaker, msg.Text)
	}
	sb.WriteString("Reply with one or two natural sentences that keep the conversation going.")

	resp, err := s.client.GenerateContent(ctx, genai.Text(sb.String()))
	if err != nil {
		log.Error().Err(err).Msg("Gemini reply generation failed")
		return "Sorry, I didn't catch that. Could you say it again?", nil
	}
	return extractText(resp), nil
}

func extractText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	return strings.TrimSpace(sb.String())
}

// stripCodeFence unwraps ```json ... ``` blocks the model sometimes emits.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
