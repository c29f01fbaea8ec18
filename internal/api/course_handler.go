package api

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"

	"github.com/courseforge/courseforge-api/internal/api/shared"
	"github.com/courseforge/courseforge-api/internal/domain"
	"github.com/courseforge/courseforge-api/internal/export"
	"github.com/courseforge/courseforge-api/internal/platform/logger"
	"github.com/courseforge/courseforge-api/internal/service"
	"github.com/courseforge/courseforge-api/internal/store"
)

// CourseHandler handles course-related API requests.
type CourseHandler struct {
	courseService service.CourseService
	validator     *validator.Validate
	logger        *slog.Logger
}

// NewCourseHandler creates a new CourseHandler with the given dependencies.
func NewCourseHandler(courseService service.CourseService, logger *slog.Logger) *CourseHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &CourseHandler{
		courseService: courseService,
		validator:     validator.New(),
		logger:        logger.With(slog.String("component", "course_handler")),
	}
}

// Generate handles POST /courses/generate. It runs the generation
// pipeline for the authenticated user and returns the persisted course.
func (h *CourseHandler) Generate(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := getUserIDFromContext(r)
	if !ok {
		HandleAPIError(w, r, domain.ErrUnauthorized, "User ID not found or invalid")
		return
	}

	var req GenerateCourseRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	course, err := h.courseService.GenerateCourse(r.Context(), userID, req.ToDomain())
	if err != nil {
		log.Warn("course generation request failed",
			slog.String("user_id", userID.String()),
			slog.String("model", req.Model))
		HandleAPIError(w, r, err, "Failed to generate course")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, course)
}

// List handles GET /courses. Filters, sorting, and pagination come from
// query parameters.
func (h *CourseHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		HandleAPIError(w, r, domain.ErrUnauthorized, "User ID not found or invalid")
		return
	}

	params := listParamsFromQuery(r)

	courses, total, err := h.courseService.ListCourses(r.Context(), userID, params)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list courses")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, CourseListResponse{
		Courses: courses,
		Total:   total,
		Page:    params.Page,
		Limit:   params.Limit,
	})
}

// Get handles GET /courses/{id}.
func (h *CourseHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, courseID, ok := handleUserIDAndPathUUID(w, r, "id", h.logger)
	if !ok {
		return
	}

	course, err := h.courseService.GetCourse(r.Context(), userID, courseID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to retrieve course")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, course)
}

// Update handles PUT /courses/{id}. Only the fields present in the
// request body are changed.
func (h *CourseHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, courseID, ok := handleUserIDAndPathUUID(w, r, "id", h.logger)
	if !ok {
		return
	}

	var req UpdateCourseRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	course, err := h.courseService.GetCourse(r.Context(), userID, courseID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to retrieve course")
		return
	}

	applyCourseUpdate(course, req)

	updated, err := h.courseService.UpdateCourse(r.Context(), userID, course)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to update course")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, updated)
}

// Delete handles DELETE /courses/{id}.
func (h *CourseHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, courseID, ok := handleUserIDAndPathUUID(w, r, "id", h.logger)
	if !ok {
		return
	}

	if err := h.courseService.DeleteCourse(r.Context(), userID, courseID); err != nil {
		HandleAPIError(w, r, err, "Failed to delete course")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Export handles POST /courses/{id}/export?format=markdown|json. The
// rendered document is returned as a download.
func (h *CourseHandler) Export(w http.ResponseWriter, r *http.Request) {
	userID, courseID, ok := handleUserIDAndPathUUID(w, r, "id", h.logger)
	if !ok {
		return
	}

	format := export.Format(r.URL.Query().Get("format"))
	if format == "" {
		format = export.FormatMarkdown
	}

	data, contentType, err := h.courseService.ExportCourse(r.Context(), userID, courseID, format)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to export course")
		return
	}

	ext := "md"
	if format == export.FormatJSON {
		ext = "json"
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "course-"+courseID.String()+"."+ext))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		h.logger.Error("failed to write export response", slog.String("error", err.Error()))
	}
}

// listParamsFromQuery builds course list parameters from query values.
// Unknown sort keys and orders are resolved downstream against the
// store's allow-list.
func listParamsFromQuery(r *http.Request) store.CourseListParams {
	q := r.URL.Query()

	params := store.CourseListParams{
		Search:    q.Get("search"),
		Status:    domain.CourseStatus(q.Get("status")),
		Level:     domain.CourseLevel(q.Get("level")),
		Language:  q.Get("language"),
		SortBy:    q.Get("sort_by"),
		SortOrder: q.Get("sort_order"),
	}

	if page, err := strconv.Atoi(q.Get("page")); err == nil {
		params.Page = page
	}
	if limit, err := strconv.Atoi(q.Get("limit")); err == nil {
		params.Limit = limit
	}

	params.Normalize()
	return params
}

// applyCourseUpdate copies the set fields of the request onto the course.
func applyCourseUpdate(course *domain.Course, req UpdateCourseRequest) {
	if req.Title != nil {
		course.Title = *req.Title
	}
	if req.Description != nil {
		course.Description = *req.Description
	}
	if req.Status != nil {
		course.Status = domain.CourseStatus(*req.Status)
	}
	if req.Tags != nil {
		course.Tags = *req.Tags
	}
	if req.LearningOutcomes != nil {
		course.LearningOutcomes = *req.LearningOutcomes
	}
	if req.Modules != nil {
		course.Modules = *req.Modules
	}
}
