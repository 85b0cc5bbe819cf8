package genai

import (
	"errors"
	"fmt"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// ErrGenerationFailed marks upstream structured-output failures: the
// model returned no tool call, unparsable arguments, or descriptors
// that fail validation. Callers must not persist anything when this
// is returned.
var ErrGenerationFailed = errors.New("generation failed")

type Service struct {
	llm llms.Model
}

func NewService(apiKey string) *Service {
	llm, err := openai.New(
		openai.WithModel("gpt-4o-mini"),
		openai.WithToken(apiKey),
	)
	if err != nil {
		panic(fmt.Sprintf("Failed to create OpenAI client: %v", err))
	}

	return &Service{llm: llm}
}
