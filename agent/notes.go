package agent

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/chains"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
	"github.com/tmc/langchaingo/memory"
	"github.com/tmc/langchaingo/prompts"
	"go.uber.org/zap"

	"github.com/aguxez/mealfinder/config"
	"github.com/aguxez/mealfinder/models"
)

var ErrEmptyNotes = errors.New("model returned empty notes")

// NotesAgent writes short kitchen notes for a meal and remembers the last few
// it produced so consecutive notes do not repeat the same tips.
type NotesAgent struct {
	chain        *chains.LLMChain
	bufferMemory *memory.ConversationWindowBuffer
	log          *zap.Logger
}

const promptTemplate = `
	You are a home cook's kitchen assistant. Given the recipe below, write
	concise kitchen notes in markdown for a terminal.

	{{.CombinedInput}}

	The notes must contain:
	1. A "Shopping list" section listing every ingredient the instructions
	mention, one per bullet.
	2. A "Prep" section with at most five numbered steps summarising the
	instructions.
	3. A "Tips" section with one or two tips. Do not repeat tips already
	given in the history.

	Reply with the markdown only.
	`

func NewNotesAgent(llm llms.Model, log *zap.Logger) *NotesAgent {
	if log == nil {
		log = zap.NewNop()
	}

	// Only the last few notes are kept to bound the prompt size.
	bufferMem := memory.NewConversationWindowBuffer(5)

	chain := chains.NewLLMChain(
		llm,
		prompts.NewPromptTemplate(promptTemplate, []string{"CombinedInput"}),
	)

	return &NotesAgent{
		chain:        chain,
		bufferMemory: bufferMem,
		log:          log,
	}
}

// NewFromConfig returns nil when notes are disabled or no token is set.
func NewFromConfig(cfg config.NotesConfig, token string, log *zap.Logger) (*NotesAgent, error) {
	if !cfg.Enabled || token == "" {
		return nil, nil
	}

	llm, err := openai.New(
		openai.WithBaseURL(cfg.BaseURL),
		openai.WithToken(token),
		openai.WithModel(cfg.Model),
	)
	if err != nil {
		return nil, fmt.Errorf("creating llm client: %w", err)
	}
	return NewNotesAgent(llm, log), nil
}

func (n *NotesAgent) WriteNotes(ctx context.Context, meal models.Meal) (string, error) {
	history, err := n.bufferMemory.LoadMemoryVariables(ctx, map[string]any{})
	if err != nil {
		return "", fmt.Errorf("loading memory variables: %w", err)
	}

	combinedInput := fmt.Sprintf("Meal: %s\nInstructions: %s\nHistory: %v",
		meal.Name, meal.Instructions, history["history"])

	input := map[string]any{
		"CombinedInput": combinedInput,
	}

	result, err := chains.Call(ctx, n.chain, input)
	if err != nil {
		return "", fmt.Errorf("calling chain: %w", err)
	}

	if err := n.bufferMemory.SaveContext(ctx, input, result); err != nil {
		n.log.Warn("saving notes to memory", zap.String("meal_id", meal.ID), zap.Error(err))
	}

	text, _ := result["text"].(string)
	notes := stripFences(text)
	if notes == "" {
		return "", ErrEmptyNotes
	}
	return notes, nil
}

// stripFences removes markdown code fences some models wrap their reply in.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```markdown")
	s = strings.TrimPrefix(s, "```md")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
