package genai

import (
	"errors"
	"testing"
)

func TestParsePlanArguments(t *testing.T) {
	validLesson := `{"day": 1, "title": "Basics", "theory_md": "# Basics", "task": "Install Go", "task_type": "practice", "time_estimate": 45, "extra_links": ["https://go.dev"]}`

	tests := []struct {
		name      string
		arguments string
		expectErr bool
	}{
		{
			name:      "valid single lesson",
			arguments: `{"lessons": [` + validLesson + `]}`,
			expectErr: false,
		},
		{
			name:      "invalid json",
			arguments: `{"lessons": [`,
			expectErr: true,
		},
		{
			name:      "empty lessons array",
			arguments: `{"lessons": []}`,
			expectErr: true,
		},
		{
			name:      "missing title",
			arguments: `{"lessons": [{"day": 1, "theory_md": "# T", "task": "x", "task_type": "theory", "time_estimate": 30}]}`,
			expectErr: true,
		},
		{
			name:      "day below one",
			arguments: `{"lessons": [{"day": 0, "title": "T", "theory_md": "# T", "task": "x", "task_type": "theory", "time_estimate": 30}]}`,
			expectErr: true,
		},
		{
			name:      "zero time estimate",
			arguments: `{"lessons": [{"day": 1, "title": "T", "theory_md": "# T", "task": "x", "task_type": "theory", "time_estimate": 0}]}`,
			expectErr: true,
		},
		{
			name:      "unknown task type",
			arguments: `{"lessons": [{"day": 1, "title": "T", "theory_md": "# T", "task": "x", "task_type": "homework", "time_estimate": 30}]}`,
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lessons, err := parsePlanArguments(tt.arguments)

			if tt.expectErr {
				if err == nil {
					t.Fatalf("parsePlanArguments() expected error, got %d lessons", len(lessons))
				}
				if !errors.Is(err, ErrGenerationFailed) {
					t.Errorf("expected ErrGenerationFailed, got %v", err)
				}
				return
			}

			if err != nil {
				t.Fatalf("parsePlanArguments() returned error: %v", err)
			}
			if len(lessons) != 1 {
				t.Errorf("expected 1 lesson, got %d", len(lessons))
			}
		})
	}
}

func TestParsePlanArgumentsDefaults(t *testing.T) {
	arguments := `{"lessons": [{"day": 2, "title": "T", "theory_md": "# T", "task": "x", "task_type": "", "time_estimate": 30}]}`

	lessons, err := parsePlanArguments(arguments)
	if err != nil {
		t.Fatalf("parsePlanArguments() returned error: %v", err)
	}

	if lessons[0].TaskType != "theory" {
		t.Errorf("expected empty task type to default to theory, got %q", lessons[0].TaskType)
	}
	if lessons[0].ExtraLinks == nil {
		t.Errorf("expected extra links to default to an empty slice")
	}
}
