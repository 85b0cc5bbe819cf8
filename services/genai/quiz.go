package genai

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"studyplan/models"

	"github.com/tmc/langchaingo/llms"
)

// Lesson theory is truncated to this many characters before being
// sent to the model.
const maxTheoryChars = 3000

const quizSystemPrompt = `You are a quiz author. Given lesson theory, write multiple-choice questions that test understanding of the material.

Each question must contain:
- The question text
- Four answer options labeled A, B, C, D
- The correct option label (A/B/C/D)
- A short explanation of why that answer is correct

Call the create_quiz_questions function with all questions. Do not answer in plain text.`

var quizTools = []llms.Tool{
	{
		Type: "function",
		Function: &llms.FunctionDefinition{
			Name:        "create_quiz_questions",
			Description: "Create the structured multiple-choice questions for the quiz",
			Parameters: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"questions": map[string]any{
						"type":        "array",
						"description": "The generated questions",
						"items": map[string]any{
							"type": "object",
							"properties": map[string]any{
								"question": map[string]any{
									"type":        "string",
									"description": "Question text",
								},
								"option_a": map[string]any{"type": "string"},
								"option_b": map[string]any{"type": "string"},
								"option_c": map[string]any{"type": "string"},
								"option_d": map[string]any{"type": "string"},
								"correct_answer": map[string]any{
									"type":        "string",
									"description": "The correct option label: A, B, C or D",
								},
								"explanation": map[string]any{
									"type":        "string",
									"description": "Why the correct answer is correct",
								},
							},
							"required": []string{"question", "option_a", "option_b", "option_c", "option_d", "correct_answer"},
						},
					},
				},
				"required": []string{"questions"},
			},
		},
	},
}

type quizArguments struct {
	Questions []models.QuestionDescriptor `json:"questions"`
}

// GenerateQuizQuestions asks the LLM for numQuestions multiple-choice
// questions over the lesson theory and returns validated descriptors
// with correct answers normalized to uppercase.
func (s *Service) GenerateQuizQuestions(lessonTheory, lessonTitle string, numQuestions int) ([]models.QuestionDescriptor, error) {
	log.Printf("[INFO] Generating %d quiz questions for lesson %q", numQuestions, lessonTitle)

	theory := lessonTheory
	if len(theory) > maxTheoryChars {
		theory = theory[:maxTheoryChars]
	}

	prompt := fmt.Sprintf(
		"Based on the theory of the lesson %q, create %d multiple-choice questions that check understanding of the material.\n\nTheory:\n%s",
		lessonTitle, numQuestions, theory)

	ctx := context.Background()
	messageHistory := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem, quizSystemPrompt),
		llms.TextParts(llms.ChatMessageTypeHuman, prompt),
	}

	log.Printf("[INFO] Calling LLM for quiz generation")
	resp, err := s.llm.GenerateContent(ctx, messageHistory,
		llms.WithTools(quizTools),
		llms.WithTemperature(0.7),
		llms.WithToolChoice("required"))
	if err != nil {
		log.Printf("[ERROR] Failed to generate quiz response: %v", err)
		return nil, fmt.Errorf("failed to generate quiz response: %w", err)
	}

	if len(resp.Choices) == 0 || len(resp.Choices[0].ToolCalls) == 0 {
		log.Printf("[ERROR] No tool calls in LLM quiz response")
		return nil, fmt.Errorf("no tool calls in quiz response: %w", ErrGenerationFailed)
	}

	toolCall := resp.Choices[0].ToolCalls[0]
	if toolCall.FunctionCall.Name != "create_quiz_questions" {
		log.Printf("[ERROR] Unexpected function call: %s", toolCall.FunctionCall.Name)
		return nil, fmt.Errorf("unexpected function call %q: %w", toolCall.FunctionCall.Name, ErrGenerationFailed)
	}

	questions, err := parseQuizArguments(toolCall.FunctionCall.Arguments)
	if err != nil {
		log.Printf("[ERROR] Failed to parse quiz arguments: %v", err)
		return nil, err
	}

	log.Printf("[INFO] Successfully generated %d quiz questions", len(questions))
	return questions, nil
}

func parseQuizArguments(arguments string) ([]models.QuestionDescriptor, error) {
	var args quizArguments
	if err := json.Unmarshal([]byte(arguments), &args); err != nil {
		return nil, fmt.Errorf("failed to parse quiz arguments: %v: %w", err, ErrGenerationFailed)
	}

	if len(args.Questions) == 0 {
		return nil, fmt.Errorf("quiz contains no questions: %w", ErrGenerationFailed)
	}

	for i := range args.Questions {
		q := &args.Questions[i]
		if q.Question == "" {
			return nil, fmt.Errorf("question %d is missing text: %w", i+1, ErrGenerationFailed)
		}
		if q.OptionA == "" || q.OptionB == "" || q.OptionC == "" || q.OptionD == "" {
			return nil, fmt.Errorf("question %d is missing options: %w", i+1, ErrGenerationFailed)
		}

		q.CorrectAnswer = strings.ToUpper(strings.TrimSpace(q.CorrectAnswer))
		switch q.CorrectAnswer {
		case "A", "B", "C", "D":
		default:
			return nil, fmt.Errorf("question %d has invalid correct answer %q: %w", i+1, q.CorrectAnswer, ErrGenerationFailed)
		}
	}

	return args.Questions, nil
}
