package genai

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"studyplan/models"

	"github.com/tmc/langchaingo/llms"
)

const planSystemPrompt = `You are a curriculum designer. Given a topic, the learner's knowledge level, and their weekly time commitment, produce a day-by-day learning plan.

Each lesson must contain:
- A concise title
- Theory content in Markdown
- A practical task
- A task type: one of theory, practice, quiz, project
- A time estimate in minutes that fits the learner's time budget
- 2-3 links to extra resources

Call the create_learning_plan function with the full plan. Do not answer in plain text.`

var planTools = []llms.Tool{
	{
		Type: "function",
		Function: &llms.FunctionDefinition{
			Name:        "create_learning_plan",
			Description: "Create the structured learning plan from the generated lessons",
			Parameters: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"lessons": map[string]any{
						"type":        "array",
						"description": "The lessons of the plan, one per day, in day order",
						"items": map[string]any{
							"type": "object",
							"properties": map[string]any{
								"day": map[string]any{
									"type":        "integer",
									"description": "Day number, starting at 1",
								},
								"title": map[string]any{
									"type":        "string",
									"description": "Lesson title",
								},
								"theory_md": map[string]any{
									"type":        "string",
									"description": "Theory content in Markdown",
								},
								"task": map[string]any{
									"type":        "string",
									"description": "Practical task for the day",
								},
								"task_type": map[string]any{
									"type":        "string",
									"description": "One of: theory, practice, quiz, project",
								},
								"time_estimate": map[string]any{
									"type":        "integer",
									"description": "Estimated time in minutes",
								},
								"extra_links": map[string]any{
									"type":        "array",
									"description": "2-3 links to extra resources",
									"items":       map[string]any{"type": "string"},
								},
							},
							"required": []string{"day", "title", "theory_md", "task", "task_type", "time_estimate"},
						},
					},
				},
				"required": []string{"lessons"},
			},
		},
	},
}

type planArguments struct {
	Lessons []models.LessonDescriptor `json:"lessons"`
}

// GenerateLearningPlan asks the LLM for a structured plan and returns
// validated lesson descriptors. Nothing is persisted here; a failure
// at any stage surfaces as ErrGenerationFailed with no partial output.
func (s *Service) GenerateLearningPlan(topic, level string, weeklyHours int) ([]models.LessonDescriptor, error) {
	log.Printf("[INFO] Generating learning plan for topic %q (level: %s, weekly hours: %d)", topic, level, weeklyHours)

	prompt := fmt.Sprintf(
		"Create a learning plan for the topic %q.\nKnowledge level: %s.\nWeekly time commitment: %d hours (no lesson may exceed %d minutes).",
		topic, level, weeklyHours, weeklyHours*60)

	ctx := context.Background()
	messageHistory := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem, planSystemPrompt),
		llms.TextParts(llms.ChatMessageTypeHuman, prompt),
	}

	log.Printf("[INFO] Calling LLM for plan generation")
	resp, err := s.llm.GenerateContent(ctx, messageHistory,
		llms.WithTools(planTools),
		llms.WithTemperature(0.7),
		llms.WithToolChoice("required"))
	if err != nil {
		log.Printf("[ERROR] Failed to generate plan response: %v", err)
		return nil, fmt.Errorf("failed to generate plan response: %w", err)
	}

	if len(resp.Choices) == 0 || len(resp.Choices[0].ToolCalls) == 0 {
		log.Printf("[ERROR] No tool calls in LLM plan response")
		return nil, fmt.Errorf("no tool calls in plan response: %w", ErrGenerationFailed)
	}

	toolCall := resp.Choices[0].ToolCalls[0]
	if toolCall.FunctionCall.Name != "create_learning_plan" {
		log.Printf("[ERROR] Unexpected function call: %s", toolCall.FunctionCall.Name)
		return nil, fmt.Errorf("unexpected function call %q: %w", toolCall.FunctionCall.Name, ErrGenerationFailed)
	}

	lessons, err := parsePlanArguments(toolCall.FunctionCall.Arguments)
	if err != nil {
		log.Printf("[ERROR] Failed to parse plan arguments: %v", err)
		return nil, err
	}

	log.Printf("[INFO] Successfully generated plan with %d lessons", len(lessons))
	return lessons, nil
}

func parsePlanArguments(arguments string) ([]models.LessonDescriptor, error) {
	var args planArguments
	if err := json.Unmarshal([]byte(arguments), &args); err != nil {
		return nil, fmt.Errorf("failed to parse plan arguments: %v: %w", err, ErrGenerationFailed)
	}

	if len(args.Lessons) == 0 {
		return nil, fmt.Errorf("plan contains no lessons: %w", ErrGenerationFailed)
	}

	for i := range args.Lessons {
		lesson := &args.Lessons[i]
		if lesson.Title == "" || lesson.TheoryMD == "" {
			return nil, fmt.Errorf("lesson %d is missing title or theory: %w", i+1, ErrGenerationFailed)
		}
		if lesson.Day < 1 {
			return nil, fmt.Errorf("lesson %d has invalid day %d: %w", i+1, lesson.Day, ErrGenerationFailed)
		}
		if lesson.TimeEstimate <= 0 {
			return nil, fmt.Errorf("lesson %d has invalid time estimate %d: %w", i+1, lesson.TimeEstimate, ErrGenerationFailed)
		}
		if lesson.TaskType == "" {
			lesson.TaskType = models.LessonTypeTheory
		}
		if !models.ValidLessonType(lesson.TaskType) {
			return nil, fmt.Errorf("lesson %d has unknown task type %q: %w", i+1, lesson.TaskType, ErrGenerationFailed)
		}
		if lesson.ExtraLinks == nil {
			lesson.ExtraLinks = []string{}
		}
	}

	return args.Lessons, nil
}
