package generation

import (
	"fmt"
	"strings"

	"github.com/courseforge/courseforge-api/internal/domain"
)

// levelDescriptions maps each course level to the audience description
// embedded in the prompt.
var levelDescriptions = map[domain.CourseLevel]string{
	domain.LevelBeginner:     "suitable for people with no prior knowledge",
	domain.LevelIntermediate: "suitable for people with basic knowledge",
	domain.LevelExpert:       "suitable for advanced learners and professionals",
}

// schemaExample is the literal output schema embedded in every prompt to
// steer the model toward machine-parseable JSON. The normalizer tolerates
// structural deviations, but models follow an explicit example far more
// reliably than a prose description.
const schemaExample = `{
  "description": "A comprehensive description of the course",
  "learningOutcomes": ["Outcome 1", "Outcome 2", "Outcome 3"],
  "estimatedDuration": 120,
  "tags": ["tag1", "tag2", "tag3"],
  "modules": [
    {
      "title": "Module Title",
      "description": "Module description",
      "order": 1,
      "lessons": [
        {
          "title": "Lesson Title",
          "content": "Detailed lesson content with examples and explanations",
          "duration": 15,
          "order": 1
        }
      ],
      "quiz": {
        "title": "Module Quiz",
        "questions": [
          {
            "question": "Question text?",
            "type": "multiple-choice",
            "options": ["Option A", "Option B", "Option C", "Option D"],
            "correctAnswer": "Option A",
            "explanation": "Explanation of why this is correct"
          }
        ],
        "passingScore": 70
      }
    }
  ]
}`

// BuildCoursePrompt produces the instruction string sent to a provider for
// the given request. It is a pure function: identical requests yield
// identical prompts, with no side effects and no hidden state. Input
// validation (non-empty title) is the caller's responsibility.
func BuildCoursePrompt(req domain.GenerationRequest) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Create a comprehensive course on %q", req.Title))
	if req.Description != "" {
		b.WriteString(" about: ")
		b.WriteString(req.Description)
	}
	b.WriteString(".\n\n")

	b.WriteString("Course Requirements:\n")
	b.WriteString("- Level: ")
	b.WriteString(levelDescriptions[req.Level])
	b.WriteString("\n- Language: ")
	b.WriteString(req.Language)
	if req.IncludeQuizzes {
		b.WriteString("\n- Include quizzes for each module")
	} else {
		b.WriteString("\n- Include no quizzes")
	}
	if req.IncludeAssignments {
		b.WriteString("\n- Include practical assignments")
	} else {
		b.WriteString("\n- Include no assignments")
	}
	if req.CustomInstructions != "" {
		b.WriteString("\n- Additional instructions: ")
		b.WriteString(req.CustomInstructions)
	}
	b.WriteString("\n")

	if req.Language != "English" {
		b.WriteString("\nGenerate the course content in ")
		b.WriteString(req.Language)
		b.WriteString(".\n")
	}

	b.WriteString("\nPlease provide the response in the following JSON format:\n")
	b.WriteString(schemaExample)
	b.WriteString("\n\nMake sure the content is engaging, practical, and follows educational best practices. ")
	b.WriteString("Include real-world examples and practical applications where appropriate.")

	return b.String()
}

// SystemPrompt is the shared system instruction for chat-style providers.
const SystemPrompt = "You are an expert course designer and educator. " +
	"Create comprehensive, engaging courses with proper structure, learning objectives, and assessments."
