// Package export renders courses into portable formats. The section
// ordering is fixed: header and description first, then course
// metadata, learning outcomes, and finally each module with its
// lessons, resources, and quiz.
package export

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/courseforge/courseforge-api/internal/domain"
)

// Format identifies an export output format.
type Format string

// Supported export formats.
const (
	FormatMarkdown Format = "markdown"
	FormatJSON     Format = "json"
)

// ErrUnsupportedFormat is returned when the requested format is not one
// of the supported constants.
var ErrUnsupportedFormat = errors.New("unsupported export format")

// ContentType returns the MIME type for the format, or empty when the
// format is unknown.
func (f Format) ContentType() string {
	switch f {
	case FormatMarkdown:
		return "text/markdown; charset=utf-8"
	case FormatJSON:
		return "application/json; charset=utf-8"
	default:
		return ""
	}
}

// Course renders the course in the requested format.
func Course(course *domain.Course, format Format) ([]byte, error) {
	switch format {
	case FormatMarkdown:
		return []byte(Markdown(course)), nil
	case FormatJSON:
		return JSON(course)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// JSON renders the course as indented JSON.
func JSON(course *domain.Course) ([]byte, error) {
	data, err := json.MarshalIndent(course, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode course: %w", err)
	}
	return data, nil
}

// Markdown renders the course as a Markdown document.
func Markdown(course *domain.Course) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", course.Title)

	if course.Description != "" {
		fmt.Fprintf(&b, "%s\n\n", course.Description)
	}

	fmt.Fprintf(&b, "**Level:** %s  \n", course.Level)
	fmt.Fprintf(&b, "**Language:** %s  \n", course.Language)
	if course.EstimatedDuration > 0 {
		// EstimatedDuration is stored in minutes; round to whole hours.
		hours := (course.EstimatedDuration + 30) / 60
		fmt.Fprintf(&b, "**Estimated duration:** %d hours  \n", hours)
	}
	if len(course.Tags) > 0 {
		fmt.Fprintf(&b, "**Tags:** %s  \n", strings.Join(course.Tags, ", "))
	}
	b.WriteString("\n")

	if len(course.LearningOutcomes) > 0 {
		b.WriteString("## Learning Outcomes\n\n")
		for _, outcome := range course.LearningOutcomes {
			fmt.Fprintf(&b, "- %s\n", outcome)
		}
		b.WriteString("\n")
	}

	for _, module := range course.Modules {
		writeModule(&b, module)
	}

	return b.String()
}

func writeModule(b *strings.Builder, module domain.Module) {
	fmt.Fprintf(b, "## Module %d: %s\n\n", module.Order, module.Title)

	if module.Description != "" {
		fmt.Fprintf(b, "%s\n\n", module.Description)
	}

	for _, lesson := range module.Lessons {
		writeLesson(b, lesson)
	}

	writeQuiz(b, module.Quiz)
}

func writeLesson(b *strings.Builder, lesson domain.Lesson) {
	fmt.Fprintf(b, "### Lesson %d: %s\n\n", lesson.Order, lesson.Title)

	if lesson.Duration > 0 {
		fmt.Fprintf(b, "_Duration: %d minutes_\n\n", lesson.Duration)
	}

	if lesson.Content != "" {
		fmt.Fprintf(b, "%s\n\n", lesson.Content)
	}

	if len(lesson.Resources) > 0 {
		b.WriteString("**Resources:**\n\n")
		for _, res := range lesson.Resources {
			if res.URL != "" {
				fmt.Fprintf(b, "- [%s](%s) (%s)\n", res.Title, res.URL, res.Type)
			} else {
				fmt.Fprintf(b, "- %s (%s)\n", res.Title, res.Type)
			}
		}
		b.WriteString("\n")
	}
}

func writeQuiz(b *strings.Builder, quiz domain.Quiz) {
	if len(quiz.Questions) == 0 {
		return
	}

	fmt.Fprintf(b, "### Quiz: %s\n\n", quiz.Title)
	fmt.Fprintf(b, "_Passing score: %d%%", quiz.PassingScore)
	if quiz.TimeLimit > 0 {
		fmt.Fprintf(b, " · Time limit: %d minutes", quiz.TimeLimit)
	}
	b.WriteString("_\n\n")

	for i, q := range quiz.Questions {
		fmt.Fprintf(b, "%d. %s\n", i+1, q.Question)
		for _, opt := range q.Options {
			fmt.Fprintf(b, "   - %s\n", opt)
		}
		if len(q.CorrectAnswer) > 0 {
			fmt.Fprintf(b, "   - **Answer:** %s\n", strings.Join(q.CorrectAnswer, "; "))
		}
		if q.Explanation != "" {
			fmt.Fprintf(b, "   - _%s_\n", q.Explanation)
		}
	}
	b.WriteString("\n")
}
