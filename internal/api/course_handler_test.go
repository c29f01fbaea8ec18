package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/courseforge/courseforge-api/internal/api"
	"github.com/courseforge/courseforge-api/internal/api/shared"
	"github.com/courseforge/courseforge-api/internal/domain"
	"github.com/courseforge/courseforge-api/internal/export"
	"github.com/courseforge/courseforge-api/internal/mocks"
	"github.com/courseforge/courseforge-api/internal/store"
)

// authenticatedRequest builds a request carrying the user ID the auth
// middleware would have set, plus an optional course ID path parameter.
func authenticatedRequest(method, target string, body []byte, userID uuid.UUID, courseID string) *http.Request {
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, target, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}

	ctx := context.WithValue(req.Context(), shared.UserIDContextKey, userID)

	if courseID != "" {
		routeCtx := chi.NewRouteContext()
		routeCtx.URLParams.Add("id", courseID)
		ctx = context.WithValue(ctx, chi.RouteCtxKey, routeCtx)
	}

	return req.WithContext(ctx)
}

func TestGenerateCourseHandler(t *testing.T) {
	userID := uuid.New()

	validBody, err := json.Marshal(api.GenerateCourseRequest{
		Title:    "Go Fundamentals",
		Level:    "beginner",
		Language: "English",
		Model:    "gpt-4",
	})
	require.NoError(t, err)

	t.Run("successful generation returns created course", func(t *testing.T) {
		course, err := domain.NewCourse(userID, "Go Fundamentals", domain.LevelBeginner, "English")
		require.NoError(t, err)

		svc := &mocks.MockCourseService{
			GenerateCourseFn: func(ctx context.Context, gotUserID uuid.UUID, req domain.GenerationRequest) (*domain.Course, error) {
				assert.Equal(t, userID, gotUserID)
				assert.Equal(t, domain.ModelGPT4, req.Model)
				return course, nil
			},
		}
		handler := api.NewCourseHandler(svc, nil)

		w := httptest.NewRecorder()
		handler.Generate(w, authenticatedRequest(http.MethodPost, "/api/courses/generate", validBody, userID, ""))

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), "Go Fundamentals")
	})

	t.Run("unknown model rejected by validation downstream", func(t *testing.T) {
		body, err := json.Marshal(api.GenerateCourseRequest{
			Title:    "Go Fundamentals",
			Level:    "beginner",
			Language: "English",
			Model:    "gpt-99",
		})
		require.NoError(t, err)

		svc := &mocks.MockCourseService{Err: domain.ErrUnknownModel}
		handler := api.NewCourseHandler(svc, nil)

		w := httptest.NewRecorder()
		handler.Generate(w, authenticatedRequest(http.MethodPost, "/api/courses/generate", body, userID, ""))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Unsupported AI model")
	})

	t.Run("invalid level rejected", func(t *testing.T) {
		body, err := json.Marshal(api.GenerateCourseRequest{
			Title:    "Go Fundamentals",
			Level:    "wizard",
			Language: "English",
			Model:    "gpt-4",
		})
		require.NoError(t, err)

		handler := api.NewCourseHandler(&mocks.MockCourseService{}, nil)

		w := httptest.NewRecorder()
		handler.Generate(w, authenticatedRequest(http.MethodPost, "/api/courses/generate", body, userID, ""))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("missing authentication rejected", func(t *testing.T) {
		handler := api.NewCourseHandler(&mocks.MockCourseService{}, nil)

		req := httptest.NewRequest(http.MethodPost, "/api/courses/generate", bytes.NewReader(validBody))
		w := httptest.NewRecorder()
		handler.Generate(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestListCoursesHandler(t *testing.T) {
	userID := uuid.New()

	t.Run("passes normalized query parameters to service", func(t *testing.T) {
		var got store.CourseListParams
		svc := &mocks.MockCourseService{
			ListCoursesFn: func(ctx context.Context, gotUserID uuid.UUID, params store.CourseListParams) ([]*domain.Course, int, error) {
				got = params
				return []*domain.Course{}, 0, nil
			},
		}
		handler := api.NewCourseHandler(svc, nil)

		target := "/api/courses?search=go&status=draft&level=beginner&sort_by=title&sort_order=asc&page=2&limit=5"
		w := httptest.NewRecorder()
		handler.List(w, authenticatedRequest(http.MethodGet, target, nil, userID, ""))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "go", got.Search)
		assert.Equal(t, domain.CourseStatusDraft, got.Status)
		assert.Equal(t, domain.LevelBeginner, got.Level)
		assert.Equal(t, "title", got.SortBy)
		assert.Equal(t, 2, got.Page)
		assert.Equal(t, 5, got.Limit)
	})

	t.Run("defaults applied when no parameters given", func(t *testing.T) {
		svc := &mocks.MockCourseService{
			ListCoursesFn: func(ctx context.Context, gotUserID uuid.UUID, params store.CourseListParams) ([]*domain.Course, int, error) {
				assert.Equal(t, 1, params.Page)
				assert.Equal(t, 20, params.Limit)
				return []*domain.Course{}, 0, nil
			},
		}
		handler := api.NewCourseHandler(svc, nil)

		w := httptest.NewRecorder()
		handler.List(w, authenticatedRequest(http.MethodGet, "/api/courses", nil, userID, ""))

		assert.Equal(t, http.StatusOK, w.Code)

		var resp api.CourseListResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, 1, resp.Page)
		assert.Equal(t, 20, resp.Limit)
	})
}

func TestGetCourseHandler(t *testing.T) {
	userID := uuid.New()

	t.Run("returns course", func(t *testing.T) {
		course, err := domain.NewCourse(userID, "Stored Course", domain.LevelIntermediate, "English")
		require.NoError(t, err)

		handler := api.NewCourseHandler(&mocks.MockCourseService{Course: course}, nil)

		w := httptest.NewRecorder()
		handler.Get(w, authenticatedRequest(http.MethodGet, "/api/courses/"+course.ID.String(), nil, userID, course.ID.String()))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Stored Course")
	})

	t.Run("unknown course returns not found", func(t *testing.T) {
		handler := api.NewCourseHandler(&mocks.MockCourseService{Err: store.ErrCourseNotFound}, nil)

		courseID := uuid.New().String()
		w := httptest.NewRecorder()
		handler.Get(w, authenticatedRequest(http.MethodGet, "/api/courses/"+courseID, nil, userID, courseID))

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("malformed course ID rejected", func(t *testing.T) {
		handler := api.NewCourseHandler(&mocks.MockCourseService{}, nil)

		w := httptest.NewRecorder()
		handler.Get(w, authenticatedRequest(http.MethodGet, "/api/courses/not-a-uuid", nil, userID, "not-a-uuid"))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestUpdateCourseHandler(t *testing.T) {
	userID := uuid.New()

	t.Run("only set fields are changed", func(t *testing.T) {
		course, err := domain.NewCourse(userID, "Original Title", domain.LevelBeginner, "English")
		require.NoError(t, err)
		course.Description = "Original description"

		var updated *domain.Course
		svc := &mocks.MockCourseService{
			Course: course,
			UpdateCourseFn: func(ctx context.Context, gotUserID uuid.UUID, c *domain.Course) (*domain.Course, error) {
				updated = c
				return c, nil
			},
		}
		handler := api.NewCourseHandler(svc, nil)

		newTitle := "New Title"
		body, err := json.Marshal(api.UpdateCourseRequest{Title: &newTitle})
		require.NoError(t, err)

		w := httptest.NewRecorder()
		handler.Update(w, authenticatedRequest(http.MethodPut, "/api/courses/"+course.ID.String(), body, userID, course.ID.String()))

		assert.Equal(t, http.StatusOK, w.Code)
		require.NotNil(t, updated)
		assert.Equal(t, "New Title", updated.Title)
		assert.Equal(t, "Original description", updated.Description, "unset fields keep their values")
	})

	t.Run("invalid status rejected", func(t *testing.T) {
		handler := api.NewCourseHandler(&mocks.MockCourseService{}, nil)

		status := "live"
		body, err := json.Marshal(api.UpdateCourseRequest{Status: &status})
		require.NoError(t, err)

		courseID := uuid.New().String()
		w := httptest.NewRecorder()
		handler.Update(w, authenticatedRequest(http.MethodPut, "/api/courses/"+courseID, body, userID, courseID))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestDeleteCourseHandler(t *testing.T) {
	userID := uuid.New()

	t.Run("successful delete returns no content", func(t *testing.T) {
		handler := api.NewCourseHandler(&mocks.MockCourseService{}, nil)

		courseID := uuid.New().String()
		w := httptest.NewRecorder()
		handler.Delete(w, authenticatedRequest(http.MethodDelete, "/api/courses/"+courseID, nil, userID, courseID))

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Empty(t, w.Body.String())
	})

	t.Run("unknown course returns not found", func(t *testing.T) {
		handler := api.NewCourseHandler(&mocks.MockCourseService{Err: store.ErrCourseNotFound}, nil)

		courseID := uuid.New().String()
		w := httptest.NewRecorder()
		handler.Delete(w, authenticatedRequest(http.MethodDelete, "/api/courses/"+courseID, nil, userID, courseID))

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestExportCourseHandler(t *testing.T) {
	userID := uuid.New()
	courseID := uuid.New()

	t.Run("defaults to markdown attachment", func(t *testing.T) {
		svc := &mocks.MockCourseService{
			ExportCourseFn: func(ctx context.Context, gotUserID, gotCourseID uuid.UUID, format export.Format) ([]byte, string, error) {
				assert.Equal(t, export.FormatMarkdown, format)
				return []byte("# Exported Course\n"), format.ContentType(), nil
			},
		}
		handler := api.NewCourseHandler(svc, nil)

		w := httptest.NewRecorder()
		handler.Export(w, authenticatedRequest(http.MethodPost, "/api/courses/"+courseID.String()+"/export", nil, userID, courseID.String()))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, export.FormatMarkdown.ContentType(), w.Header().Get("Content-Type"))
		assert.Contains(t, w.Header().Get("Content-Disposition"), "course-"+courseID.String()+".md")
		assert.Equal(t, "# Exported Course\n", w.Body.String())
	})

	t.Run("json format produces json attachment", func(t *testing.T) {
		svc := &mocks.MockCourseService{
			ExportCourseFn: func(ctx context.Context, gotUserID, gotCourseID uuid.UUID, format export.Format) ([]byte, string, error) {
				assert.Equal(t, export.FormatJSON, format)
				return []byte("{}"), format.ContentType(), nil
			},
		}
		handler := api.NewCourseHandler(svc, nil)

		target := "/api/courses/" + courseID.String() + "/export?format=json"
		w := httptest.NewRecorder()
		handler.Export(w, authenticatedRequest(http.MethodPost, target, nil, userID, courseID.String()))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Header().Get("Content-Disposition"), ".json")
	})

	t.Run("unsupported format rejected", func(t *testing.T) {
		handler := api.NewCourseHandler(&mocks.MockCourseService{Err: export.ErrUnsupportedFormat}, nil)

		target := "/api/courses/" + courseID.String() + "/export?format=pdf"
		w := httptest.NewRecorder()
		handler.Export(w, authenticatedRequest(http.MethodPost, target, nil, userID, courseID.String()))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Unsupported export format")
	})
}
