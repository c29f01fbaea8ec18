package generation

import (
	"strings"
	"testing"

	"github.com/courseforge/courseforge-api/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestBuildCoursePromptIsDeterministic(t *testing.T) {
	t.Parallel()

	req := domain.GenerationRequest{
		Title:              "Intro to Go",
		Description:        "A practical introduction",
		Level:              domain.LevelBeginner,
		Language:           "English",
		Model:              domain.ModelGPT4,
		IncludeQuizzes:     true,
		CustomInstructions: "Focus on concurrency",
	}

	first := BuildCoursePrompt(req)
	second := BuildCoursePrompt(req)

	assert.Equal(t, first, second, "identical requests must yield identical prompts")
}

func TestBuildCoursePromptContents(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		req         domain.GenerationRequest
		contains    []string
		notContains []string
	}{
		{
			name: "beginner english with quizzes",
			req: domain.GenerationRequest{
				Title:          "Intro to Go",
				Level:          domain.LevelBeginner,
				Language:       "English",
				IncludeQuizzes: true,
			},
			contains: []string{
				`"Intro to Go"`,
				"suitable for people with no prior knowledge",
				"Include quizzes for each module",
				"Include no assignments",
				`"passingScore": 70`,
			},
			notContains: []string{
				"Generate the course content in English",
				"Additional instructions",
			},
		},
		{
			name: "non-english adds language instruction",
			req: domain.GenerationRequest{
				Title:    "Historia del Arte",
				Level:    domain.LevelExpert,
				Language: "Spanish",
			},
			contains: []string{
				"Generate the course content in Spanish.",
				"suitable for advanced learners and professionals",
				"Include no quizzes",
			},
		},
		{
			name: "custom instructions are verbatim",
			req: domain.GenerationRequest{
				Title:              "Chess Openings",
				Level:              domain.LevelIntermediate,
				Language:           "English",
				CustomInstructions: "Cover the Sicilian Defense in depth",
			},
			contains: []string{
				"Additional instructions: Cover the Sicilian Defense in depth",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			prompt := BuildCoursePrompt(tt.req)
			for _, want := range tt.contains {
				assert.Contains(t, prompt, want)
			}
			for _, unwanted := range tt.notContains {
				assert.NotContains(t, prompt, unwanted)
			}
		})
	}
}

func TestBuildCoursePromptEmbedsSchemaExample(t *testing.T) {
	t.Parallel()

	prompt := BuildCoursePrompt(domain.GenerationRequest{
		Title:    "Anything",
		Level:    domain.LevelBeginner,
		Language: "English",
	})

	// The schema example must survive verbatim so the model sees valid JSON.
	assert.True(t, strings.Contains(prompt, schemaExample))
}
