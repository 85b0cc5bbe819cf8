package genai

import (
	"errors"
	"testing"
)

func TestParseQuizArguments(t *testing.T) {
	tests := []struct {
		name      string
		arguments string
		expectErr bool
	}{
		{
			name:      "valid question",
			arguments: `{"questions": [{"question": "Q?", "option_a": "a", "option_b": "b", "option_c": "c", "option_d": "d", "correct_answer": "B", "explanation": "because"}]}`,
			expectErr: false,
		},
		{
			name:      "invalid json",
			arguments: `not json`,
			expectErr: true,
		},
		{
			name:      "empty questions array",
			arguments: `{"questions": []}`,
			expectErr: true,
		},
		{
			name:      "missing question text",
			arguments: `{"questions": [{"question": "", "option_a": "a", "option_b": "b", "option_c": "c", "option_d": "d", "correct_answer": "A"}]}`,
			expectErr: true,
		},
		{
			name:      "missing option",
			arguments: `{"questions": [{"question": "Q?", "option_a": "a", "option_b": "", "option_c": "c", "option_d": "d", "correct_answer": "A"}]}`,
			expectErr: true,
		},
		{
			name:      "correct answer outside A-D",
			arguments: `{"questions": [{"question": "Q?", "option_a": "a", "option_b": "b", "option_c": "c", "option_d": "d", "correct_answer": "E"}]}`,
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			questions, err := parseQuizArguments(tt.arguments)

			if tt.expectErr {
				if err == nil {
					t.Fatalf("parseQuizArguments() expected error, got %d questions", len(questions))
				}
				if !errors.Is(err, ErrGenerationFailed) {
					t.Errorf("expected ErrGenerationFailed, got %v", err)
				}
				return
			}

			if err != nil {
				t.Fatalf("parseQuizArguments() returned error: %v", err)
			}
			if len(questions) != 1 {
				t.Errorf("expected 1 question, got %d", len(questions))
			}
		})
	}
}

func TestParseQuizArgumentsNormalizesAnswer(t *testing.T) {
	arguments := `{"questions": [{"question": "Q?", "option_a": "a", "option_b": "b", "option_c": "c", "option_d": "d", "correct_answer": " c "}]}`

	questions, err := parseQuizArguments(arguments)
	if err != nil {
		t.Fatalf("parseQuizArguments() returned error: %v", err)
	}

	if questions[0].CorrectAnswer != "C" {
		t.Errorf("expected correct answer normalized to C, got %q", questions[0].CorrectAnswer)
	}
}
