package assistant

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"studyplan/models"
	"studyplan/services"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

type Service struct {
	client *anthropic.Client
	tools  []AssistantTool
}

func NewService(anthropicAPIKey string, planService *services.PlanService, streakService *services.StreakService) (*Service, error) {
	client := anthropic.NewClient(option.WithAPIKey(anthropicAPIKey))

	tools := []AssistantTool{
		NewListPlansTool(planService),
		NewGetLessonTool(planService),
		NewGetStreakStatsTool(streakService),
	}

	return &Service{
		client: &client,
		tools:  tools,
	}, nil
}

// ProcessMessage runs one assistant turn for the user: call the model,
// execute any requested tools, and return the extended transcript. The
// caller sends the transcript back to continue the conversation.
func (s *Service) ProcessMessage(userID int64, messages []models.AssistantMessage) (*models.AssistantResponse, error) {
	log.Printf("[INFO] Starting assistant message processing for user %d with %d messages", userID, len(messages))

	ctx := context.Background()

	anthropicMessages := s.convertToAnthropicMessages(messages)
	toolSpecs := s.buildAnthropicToolSpecs()

	response, err := s.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.ModelClaude4Sonnet20250514,
		MaxTokens: 4096,
		System: []anthropic.TextBlockParam{
			{Text: StudyAssistantPrompt},
		},
		Messages: anthropicMessages,
		Tools:    toolSpecs,
	})
	if err != nil {
		log.Printf("[ERROR] Failed to call Anthropic API: %v", err)
		return nil, fmt.Errorf("failed to call Anthropic API: %v", err)
	}

	s.logAnthropicResponse(response)

	updatedMessages := make([]models.AssistantMessage, len(messages))
	copy(updatedMessages, messages)

	toolUses := []anthropic.ToolUseBlock{}
	assistantContent := ""

	for _, block := range response.Content {
		switch block := block.AsAny().(type) {
		case anthropic.TextBlock:
			assistantContent += block.Text
		case anthropic.ToolUseBlock:
			toolUses = append(toolUses, block)
		}
	}

	assistantMsg := models.AssistantMessage{
		Role:    "assistant",
		Content: assistantContent,
	}

	for _, toolUse := range toolUses {
		inputJSON, _ := json.Marshal(toolUse.Input)
		var inputMap map[string]interface{}
		json.Unmarshal(inputJSON, &inputMap)

		assistantMsg.ToolCalls = append(assistantMsg.ToolCalls, models.ToolCall{
			ID:        toolUse.ID,
			Name:      toolUse.Name,
			Arguments: inputMap,
		})
	}

	updatedMessages = append(updatedMessages, assistantMsg)

	for _, toolUse := range toolUses {
		log.Printf("[INFO] Executing tool: %s with arguments: %v", toolUse.Name, toolUse.Input)

		inputJSON, _ := json.Marshal(toolUse.Input)

		result, err := s.executeTool(ctx, userID, toolUse.Name, string(inputJSON))
		if err != nil {
			log.Printf("[ERROR] Tool execution failed: %v", err)
			result = fmt.Sprintf("Error: %v", err)
		} else {
			log.Printf("[INFO] Tool execution result: %s", result)
		}

		updatedMessages = append(updatedMessages, models.AssistantMessage{
			Role: "tool",
			ToolResults: []models.ToolResult{
				{
					ToolCallID: toolUse.ID,
					Content:    result,
				},
			},
		})
	}

	log.Printf("[INFO] Assistant message processing completed successfully")

	return &models.AssistantResponse{
		Messages: updatedMessages,
	}, nil
}

func (s *Service) convertToAnthropicMessages(messages []models.AssistantMessage) []anthropic.MessageParam {
	var anthropicMessages []anthropic.MessageParam

	for _, msg := range messages {
		switch msg.Role {
		case "user":
			anthropicMessages = append(anthropicMessages, anthropic.NewUserMessage(anthropic.NewTextBlock(msg.Content)))
		case "assistant":
			contentBlocks := []anthropic.ContentBlockParamUnion{}

			if msg.Content != "" {
				contentBlocks = append(contentBlocks, anthropic.ContentBlockParamUnion{
					OfText: &anthropic.TextBlockParam{Text: msg.Content},
				})
			}

			for _, toolCall := range msg.ToolCalls {
				contentBlocks = append(contentBlocks, anthropic.ContentBlockParamUnion{
					OfToolUse: &anthropic.ToolUseBlockParam{
						ID:    toolCall.ID,
						Name:  toolCall.Name,
						Input: toolCall.Arguments,
					},
				})
			}

			anthropicMessages = append(anthropicMessages, anthropic.NewAssistantMessage(contentBlocks...))
		case "tool":
			// Tool results go back as user-role messages per the API.
			toolResultBlocks := []anthropic.ContentBlockParamUnion{}
			for _, result := range msg.ToolResults {
				toolResultBlocks = append(toolResultBlocks, anthropic.ContentBlockParamUnion{
					OfToolResult: &anthropic.ToolResultBlockParam{
						ToolUseID: result.ToolCallID,
						Content: []anthropic.ToolResultBlockParamContentUnion{
							{OfText: &anthropic.TextBlockParam{Text: result.Content}},
						},
					},
				})
			}
			anthropicMessages = append(anthropicMessages, anthropic.NewUserMessage(toolResultBlocks...))
		}
	}

	return anthropicMessages
}

func (s *Service) buildAnthropicToolSpecs() []anthropic.ToolUnionParam {
	var toolSpecs []anthropic.ToolUnionParam

	for _, tool := range s.tools {
		toolSpecs = append(toolSpecs, anthropic.ToolUnionParam{
			OfTool: &anthropic.ToolParam{
				Name:        tool.Name(),
				Description: anthropic.String(tool.Description()),
				InputSchema: tool.GetAnthropicToolSpec(),
			},
		})
	}

	return toolSpecs
}

func (s *Service) executeTool(ctx context.Context, userID int64, toolName, arguments string) (string, error) {
	for _, tool := range s.tools {
		if tool.Name() == toolName {
			return tool.Call(ctx, userID, arguments)
		}
	}
	return "", fmt.Errorf("tool %s not found", toolName)
}

func (s *Service) logAnthropicResponse(response *anthropic.Message) {
	log.Printf("[INFO] Anthropic response: model=%s stop_reason=%s blocks=%d", response.Model, response.StopReason, len(response.Content))

	for i, block := range response.Content {
		switch block := block.AsAny().(type) {
		case anthropic.TextBlock:
			log.Printf("[INFO]   [%d] Text: %s", i, block.Text)
		case anthropic.ToolUseBlock:
			log.Printf("[INFO]   [%d] Tool Use: ID=%s, Name=%s, Input=%v", i, block.ID, block.Name, block.Input)
		}
	}
}
