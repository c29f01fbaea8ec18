package generation

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/courseforge/courseforge-api/internal/domain"
	"github.com/google/uuid"
)

// NormalizedCourse is the strictly-shaped structural content recovered from
// a provider response. It deliberately excludes fields the model does not
// supply (identifiers for the course itself, owner, status, timestamps);
// those are injected by the orchestrator.
type NormalizedCourse struct {
	Description       string
	LearningOutcomes  []string
	EstimatedDuration int
	Tags              []string
	Modules           []domain.Module
}

// ExtractJSON locates the first top-level JSON object in the given text
// using a greedy scan: everything from the first '{' through the last '}'.
// Providers routinely wrap their JSON in prose or markdown fences, so the
// surrounding text is discarded. Returns false if no candidate object exists.
func ExtractJSON(text string) (string, bool) {
	start := strings.IndexByte(text, '{')
	end := strings.LastIndexByte(text, '}')
	if start == -1 || end == -1 || end < start {
		return "", false
	}
	return text[start : end+1], true
}

// NormalizeCourse parses raw provider text and coerces it into the
// canonical course structure. Parsing is strict: if no JSON object can be
// located, or the located text is not valid JSON, it returns an error
// wrapping ErrParseFailed. Once valid JSON is in hand, normalization never
// fails: every missing or wrong-typed field is replaced by its default, so
// downstream consumers never observe missing keys.
func NormalizeCourse(raw string) (*NormalizedCourse, error) {
	obj, ok := ExtractJSON(raw)
	if !ok {
		return nil, fmt.Errorf("%w: no JSON object found in response", ErrParseFailed)
	}

	var parsed map[string]any
	if err := json.Unmarshal([]byte(obj), &parsed); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParseFailed, err)
	}

	return &NormalizedCourse{
		Description:       stringOr(parsed, "description", ""),
		LearningOutcomes:  stringList(parsed, "learningOutcomes"),
		EstimatedDuration: intOr(parsed, "estimatedDuration", 0),
		Tags:              stringList(parsed, "tags"),
		Modules:           normalizeModules(objectList(parsed, "modules")),
	}, nil
}

// normalizeModules coerces each module entry, synthesizing identifiers and
// positional fallbacks for missing titles and order values.
func normalizeModules(entries []map[string]any) []domain.Module {
	modules := make([]domain.Module, 0, len(entries))
	for i, entry := range entries {
		n := i + 1
		modules = append(modules, domain.Module{
			ID:          uuid.New(),
			Title:       stringOr(entry, "title", fmt.Sprintf("Module %d", n)),
			Description: stringOr(entry, "description", ""),
			Order:       orderOr(entry, "order", n),
			Lessons:     normalizeLessons(objectList(entry, "lessons")),
			Quiz:        normalizeQuiz(objectOr(entry, "quiz")),
		})
	}
	return modules
}

// normalizeLessons coerces each lesson entry with positional fallbacks.
func normalizeLessons(entries []map[string]any) []domain.Lesson {
	lessons := make([]domain.Lesson, 0, len(entries))
	for i, entry := range entries {
		n := i + 1
		lessons = append(lessons, domain.Lesson{
			ID:        uuid.New(),
			Title:     stringOr(entry, "title", fmt.Sprintf("Lesson %d", n)),
			Content:   stringOr(entry, "content", ""),
			Duration:  intOr(entry, "duration", 15),
			Order:     orderOr(entry, "order", n),
			Resources: normalizeResources(objectList(entry, "resources")),
		})
	}
	return lessons
}

// normalizeQuiz coerces a quiz object. A module always gets a quiz, even
// when the source data omitted it entirely.
func normalizeQuiz(entry map[string]any) domain.Quiz {
	return domain.Quiz{
		ID:           uuid.New(),
		Title:        stringOr(entry, "title", "Module Quiz"),
		Questions:    normalizeQuestions(objectList(entry, "questions")),
		PassingScore: intOr(entry, "passingScore", 70),
		TimeLimit:    intOr(entry, "timeLimit", 30),
	}
}

// normalizeQuestions coerces each question entry. Unknown question types
// fall back to multiple-choice rather than failing.
func normalizeQuestions(entries []map[string]any) []domain.Question {
	questions := make([]domain.Question, 0, len(entries))
	for i, entry := range entries {
		questions = append(questions, domain.Question{
			ID:            uuid.New(),
			Question:      stringOr(entry, "question", fmt.Sprintf("Question %d", i+1)),
			Type:          questionTypeOr(entry, "type"),
			Options:       stringList(entry, "options"),
			CorrectAnswer: answerList(entry, "correctAnswer"),
			Explanation:   stringOr(entry, "explanation", ""),
		})
	}
	return questions
}

// normalizeResources coerces lesson resource entries. Entries with no URL
// are kept (the field defaults to empty) so counts stay stable.
func normalizeResources(entries []map[string]any) []domain.Resource {
	resources := make([]domain.Resource, 0, len(entries))
	for _, entry := range entries {
		resources = append(resources, domain.Resource{
			ID:          uuid.New(),
			Title:       stringOr(entry, "title", ""),
			Type:        resourceTypeOr(entry, "type"),
			URL:         stringOr(entry, "url", ""),
			Description: stringOr(entry, "description", ""),
		})
	}
	return resources
}

// questionTypeOr returns the question type at key if it is one of the
// supported values, or multiple-choice otherwise.
func questionTypeOr(m map[string]any, key string) domain.QuestionType {
	switch domain.QuestionType(stringOr(m, key, "")) {
	case domain.QuestionTrueFalse:
		return domain.QuestionTrueFalse
	case domain.QuestionShortAnswer:
		return domain.QuestionShortAnswer
	default:
		return domain.QuestionMultipleChoice
	}
}

// resourceTypeOr returns the resource type at key if it is one of the
// supported values, or link otherwise.
func resourceTypeOr(m map[string]any, key string) domain.ResourceType {
	switch domain.ResourceType(stringOr(m, key, "")) {
	case domain.ResourceVideo:
		return domain.ResourceVideo
	case domain.ResourceDocument:
		return domain.ResourceDocument
	case domain.ResourceImage:
		return domain.ResourceImage
	default:
		return domain.ResourceLink
	}
}

// stringOr returns the string at key, or def when the key is missing or
// holds a non-string value.
func stringOr(m map[string]any, key, def string) string {
	if v, ok := m[key].(string); ok {
		return v
	}
	return def
}

// intOr returns the number at key truncated to int, or def when the key is
// missing or holds a non-numeric value. encoding/json decodes all JSON
// numbers as float64.
func intOr(m map[string]any, key string, def int) int {
	if v, ok := m[key].(float64); ok {
		return int(v)
	}
	return def
}

// orderOr returns the order value at key when it is a positive number, or
// the 1-based positional fallback otherwise. Order values drive display and
// export order, so they must stay positive even when the model emits zero
// or negative numbers.
func orderOr(m map[string]any, key string, position int) int {
	if v := intOr(m, key, 0); v >= 1 {
		return v
	}
	return position
}

// stringList returns the array of strings at key, dropping non-string
// entries. A missing or wrong-typed value yields an empty, non-nil slice.
func stringList(m map[string]any, key string) []string {
	raw, ok := m[key].([]any)
	if !ok {
		return []string{}
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// answerList normalizes a correct-answer value that may be a single string
// or a list of strings (short-answer variants accept several answers).
func answerList(m map[string]any, key string) []string {
	switch v := m[key].(type) {
	case string:
		return []string{v}
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return []string{}
	}
}

// objectList returns the array of objects at key. Entries that are not
// objects become empty maps so the array keeps its length and every
// entry's position survives for order defaulting. A missing or
// wrong-typed value yields an empty slice.
func objectList(m map[string]any, key string) []map[string]any {
	raw, ok := m[key].([]any)
	if !ok {
		return nil
	}
	out := make([]map[string]any, 0, len(raw))
	for _, item := range raw {
		obj, ok := item.(map[string]any)
		if !ok {
			obj = map[string]any{}
		}
		out = append(out, obj)
	}
	return out
}

// objectOr returns the object at key, or an empty map when the key is
// missing or holds a non-object value.
func objectOr(m map[string]any, key string) map[string]any {
	if v, ok := m[key].(map[string]any); ok {
		return v
	}
	return map[string]any{}
}
