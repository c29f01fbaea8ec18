package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// CourseLevel represents the intended audience of a course.
type CourseLevel string

// Possible course level values
const (
	LevelBeginner     CourseLevel = "beginner"
	LevelIntermediate CourseLevel = "intermediate"
	LevelExpert       CourseLevel = "expert"
)

// CourseStatus represents the lifecycle state of a course.
type CourseStatus string

// Possible course status values
const (
	CourseStatusDraft     CourseStatus = "draft"
	CourseStatusPublished CourseStatus = "published"
	CourseStatusArchived  CourseStatus = "archived"
)

// QuestionType represents the answer format of a quiz question.
type QuestionType string

// Possible question type values
const (
	QuestionMultipleChoice QuestionType = "multiple-choice"
	QuestionTrueFalse      QuestionType = "true-false"
	QuestionShortAnswer    QuestionType = "short-answer"
)

// ResourceType represents the kind of supplementary material attached
// to a lesson.
type ResourceType string

// Possible resource type values
const (
	ResourceVideo    ResourceType = "video"
	ResourceDocument ResourceType = "document"
	ResourceLink     ResourceType = "link"
	ResourceImage    ResourceType = "image"
)

// Course-specific validation errors
var (
	// ErrCourseIDEmpty is returned when a course ID is empty or nil.
	ErrCourseIDEmpty = errors.New("course ID cannot be empty")

	// ErrCourseTitleEmpty is returned when a course title is empty.
	ErrCourseTitleEmpty = errors.New("course title cannot be empty")

	// ErrInvalidCourseLevel is returned when a course level is not one of
	// beginner, intermediate, or expert.
	ErrInvalidCourseLevel = errors.New("invalid course level")

	// ErrInvalidCourseStatus is returned when a course status is not one of
	// draft, published, or archived.
	ErrInvalidCourseStatus = errors.New("invalid course status")

	// ErrCourseLanguageEmpty is returned when a course language is empty.
	ErrCourseLanguageEmpty = errors.New("course language cannot be empty")

	// ErrModuleOrderInvalid is returned when a module order is not positive.
	ErrModuleOrderInvalid = errors.New("module order must be a positive integer")

	// ErrLessonOrderInvalid is returned when a lesson order is not positive.
	ErrLessonOrderInvalid = errors.New("lesson order must be a positive integer")
)

// Course represents a generated course owned by a user. Modules, learning
// outcomes, and tags are always non-nil so that serialized output never
// contains missing keys.
type Course struct {
	ID                uuid.UUID    `json:"id"`
	UserID            uuid.UUID    `json:"user_id"`
	Title             string       `json:"title"`
	Description       string       `json:"description"`
	Level             CourseLevel  `json:"level"`
	Language          string       `json:"language"`
	Modules           []Module     `json:"modules"`
	LearningOutcomes  []string     `json:"learning_outcomes"`
	Status            CourseStatus `json:"status"`
	Tags              []string     `json:"tags"`
	EstimatedDuration int          `json:"estimated_duration"`
	CreatedAt         time.Time    `json:"created_at"`
	UpdatedAt         time.Time    `json:"updated_at"`
}

// Module is an ordered section of a course. Every module carries exactly
// one quiz, which may have an empty question list.
type Module struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Order       int       `json:"order"`
	Lessons     []Lesson  `json:"lessons"`
	Quiz        Quiz      `json:"quiz"`
}

// Lesson is an ordered unit of content within a module. Duration is
// expressed in minutes.
type Lesson struct {
	ID        uuid.UUID  `json:"id"`
	Title     string     `json:"title"`
	Content   string     `json:"content"`
	Duration  int        `json:"duration"`
	Order     int        `json:"order"`
	Resources []Resource `json:"resources"`
}

// Quiz is the assessment attached to a module. PassingScore is a
// percentage; TimeLimit is expressed in minutes.
type Quiz struct {
	ID           uuid.UUID  `json:"id"`
	Title        string     `json:"title"`
	Questions    []Question `json:"questions"`
	PassingScore int        `json:"passing_score"`
	TimeLimit    int        `json:"time_limit"`
}

// Question is a single quiz entry. Options is populated only for
// multiple-choice questions. CorrectAnswer holds one answer string, or
// several for short-answer variants.
type Question struct {
	ID            uuid.UUID    `json:"id"`
	Question      string       `json:"question"`
	Type          QuestionType `json:"type"`
	Options       []string     `json:"options"`
	CorrectAnswer []string     `json:"correct_answer"`
	Explanation   string       `json:"explanation"`
}

// Resource is supplementary material attached to a lesson.
type Resource struct {
	ID          uuid.UUID    `json:"id"`
	Title       string       `json:"title"`
	Type        ResourceType `json:"type"`
	URL         string       `json:"url"`
	Description string       `json:"description"`
}

// NewCourse creates a new draft Course with the given owner and
// request-echoed fields. It generates a new UUID for the course ID and
// sets the creation/update timestamps. Structural content (modules,
// outcomes, tags, duration) is expected to be filled in by the caller.
// Returns an error if validation fails.
func NewCourse(userID uuid.UUID, title string, level CourseLevel, language string) (*Course, error) {
	now := time.Now().UTC()
	course := &Course{
		ID:               uuid.New(),
		UserID:           userID,
		Title:            title,
		Level:            level,
		Language:         language,
		Modules:          []Module{},
		LearningOutcomes: []string{},
		Status:           CourseStatusDraft,
		Tags:             []string{},
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := course.Validate(); err != nil {
		return nil, err
	}

	return course, nil
}

// Validate checks if the Course has valid data.
// Returns an error if any field fails validation.
func (c *Course) Validate() error {
	if c.ID == uuid.Nil {
		return ErrCourseIDEmpty
	}

	if c.Title == "" {
		return ErrCourseTitleEmpty
	}

	if !IsValidCourseLevel(c.Level) {
		return ErrInvalidCourseLevel
	}

	if c.Language == "" {
		return ErrCourseLanguageEmpty
	}

	if !isValidCourseStatus(c.Status) {
		return ErrInvalidCourseStatus
	}

	for _, m := range c.Modules {
		if m.Order < 1 {
			return ErrModuleOrderInvalid
		}
		for _, l := range m.Lessons {
			if l.Order < 1 {
				return ErrLessonOrderInvalid
			}
		}
	}

	return nil
}

// UpdateStatus transitions the course to the given lifecycle status and
// updates the UpdatedAt timestamp. Returns an error if the status is invalid.
func (c *Course) UpdateStatus(status CourseStatus) error {
	if !isValidCourseStatus(status) {
		return ErrInvalidCourseStatus
	}

	c.Status = status
	c.UpdatedAt = time.Now().UTC()
	return nil
}

// IsValidCourseLevel checks if the given level is a valid CourseLevel.
func IsValidCourseLevel(level CourseLevel) bool {
	switch level {
	case LevelBeginner, LevelIntermediate, LevelExpert:
		return true
	default:
		return false
	}
}

// isValidCourseStatus checks if the given status is a valid CourseStatus.
func isValidCourseStatus(status CourseStatus) bool {
	switch status {
	case CourseStatusDraft, CourseStatusPublished, CourseStatusArchived:
		return true
	default:
		return false
	}
}
