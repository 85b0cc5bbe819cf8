package assistant

import (
	"context"
	"encoding/json"
	"fmt"

	"studyplan/services"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/invopop/jsonschema"
)

// AssistantTool is a tool the assistant can call on behalf of a user.
// The user id comes from the request, never from the model, so a tool
// can only ever see the calling user's data.
type AssistantTool interface {
	Name() string
	Description() string
	Call(ctx context.Context, userID int64, input string) (string, error)
	GetAnthropicToolSpec() anthropic.ToolInputSchemaParam
}

func generateAnthropicSchema[T any]() anthropic.ToolInputSchemaParam {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	var v T
	schema := reflector.Reflect(v)

	return anthropic.ToolInputSchemaParam{
		Properties: schema.Properties,
	}
}

type ListPlansToolInput struct{}

type ListPlansTool struct {
	planService *services.PlanService
}

func NewListPlansTool(planService *services.PlanService) ListPlansTool {
	return ListPlansTool{planService: planService}
}

func (l ListPlansTool) Name() string {
	return "list_plans"
}

func (l ListPlansTool) Description() string {
	return "Lists the user's learning plans with topic, knowledge level, weekly hours and progress percentage"
}

func (l ListPlansTool) Call(ctx context.Context, userID int64, input string) (string, error) {
	var params ListPlansToolInput
	if err := json.Unmarshal([]byte(input), &params); err != nil {
		return "", fmt.Errorf("failed to parse list plans tool input: %v", err)
	}

	plans, err := l.planService.ListPlans(userID)
	if err != nil {
		return "", fmt.Errorf("failed to list plans: %v", err)
	}

	result, err := json.Marshal(plans)
	if err != nil {
		return "", fmt.Errorf("failed to marshal plans: %v", err)
	}

	return string(result), nil
}

func (l ListPlansTool) GetAnthropicToolSpec() anthropic.ToolInputSchemaParam {
	return generateAnthropicSchema[ListPlansToolInput]()
}

type GetLessonToolInput struct {
	LessonID int `json:"lesson_id" jsonschema:"required,description=The ID of the lesson to retrieve"`
}

type GetLessonTool struct {
	planService *services.PlanService
}

func NewGetLessonTool(planService *services.PlanService) GetLessonTool {
	return GetLessonTool{planService: planService}
}

func (g GetLessonTool) Name() string {
	return "get_lesson"
}

func (g GetLessonTool) Description() string {
	return "Retrieves one lesson with its theory, task, time estimate and completion state"
}

func (g GetLessonTool) Call(ctx context.Context, userID int64, input string) (string, error) {
	var params GetLessonToolInput
	if err := json.Unmarshal([]byte(input), &params); err != nil {
		return "", fmt.Errorf("failed to parse get lesson tool input: %v", err)
	}

	lesson, err := g.planService.GetLessonDetail(userID, params.LessonID)
	if err != nil {
		return "", fmt.Errorf("failed to get lesson: %v", err)
	}

	result, err := json.Marshal(lesson)
	if err != nil {
		return "", fmt.Errorf("failed to marshal lesson: %v", err)
	}

	return string(result), nil
}

func (g GetLessonTool) GetAnthropicToolSpec() anthropic.ToolInputSchemaParam {
	return generateAnthropicSchema[GetLessonToolInput]()
}

type GetStreakStatsToolInput struct{}

type GetStreakStatsTool struct {
	streakService *services.StreakService
}

func NewGetStreakStatsTool(streakService *services.StreakService) GetStreakStatsTool {
	return GetStreakStatsTool{streakService: streakService}
}

func (g GetStreakStatsTool) Name() string {
	return "get_streak_stats"
}

func (g GetStreakStatsTool) Description() string {
	return "Retrieves the user's current streak, longest streak, activity calendar and streak status"
}

func (g GetStreakStatsTool) Call(ctx context.Context, userID int64, input string) (string, error) {
	var params GetStreakStatsToolInput
	if err := json.Unmarshal([]byte(input), &params); err != nil {
		return "", fmt.Errorf("failed to parse get streak stats tool input: %v", err)
	}

	stats, err := g.streakService.GetStreakStats(userID)
	if err != nil {
		return "", fmt.Errorf("failed to get streak stats: %v", err)
	}

	result, err := json.Marshal(stats)
	if err != nil {
		return "", fmt.Errorf("failed to marshal streak stats: %v", err)
	}

	return string(result), nil
}

func (g GetStreakStatsTool) GetAnthropicToolSpec() anthropic.ToolInputSchemaParam {
	return generateAnthropicSchema[GetStreakStatsToolInput]()
}
