package server

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/trelix/recommender/internal/service"
)

// APIHandlers exposes HTTP handlers for the REST API.
type APIHandlers struct {
	logger  *slog.Logger
	service *service.RecommenderService
}

// NewAPIHandlers constructs an APIHandlers instance.
func NewAPIHandlers(logger *slog.Logger, svc *service.RecommenderService) *APIHandlers {
	return &APIHandlers{
		logger:  logger,
		service: svc,
	}
}

func (h *APIHandlers) handleRecommendations(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}

	userID := strings.TrimPrefix(r.URL.Path, "/recommendations/")
	userID = strings.Trim(userID, "/")
	if userID == "" {
		writeError(w, http.StatusBadRequest, "user ID is required")
		return
	}

	limit := service.DefaultLimit
	if raw := r.URL.Query().Get("top_n"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "top_n must be an integer")
			return
		}
		limit = parsed
	}

	result, err := h.service.GetRecommendations(r.Context(), userID, limit)
	if err != nil {
		if errors.Is(err, service.ErrInvalidLimit) {
			writeError(w, http.StatusBadRequest,
				fmt.Sprintf("top_n must be between %d and %d", service.MinLimit, service.MaxLimit))
			return
		}
		h.logger.Error("failed to build recommendations", "error", err, "userId", userID)
		writeError(w, http.StatusInternalServerError, "failed to load recommendation data")
		return
	}

	// Empty lists must encode as [], not null.
	response := recommendationResponse{
		UserID:          result.UserID,
		Preferences:     []string{},
		Recommendations: []courseResponse{},
	}
	response.Preferences = append(response.Preferences, result.Preferences...)
	for _, course := range result.Courses {
		response.Recommendations = append(response.Recommendations, courseResponse{
			ID:           course.ID,
			Title:        course.Title,
			ResourceType: course.ResourceType,
			Level:        course.Level,
			Price:        course.Price,
		})
	}

	respondJSON(w, http.StatusOK, response)
}

// --- Response DTOs ---

type recommendationResponse struct {
	UserID          string           `json:"user_id"`
	Preferences     []string         `json:"preferences"`
	Recommendations []courseResponse `json:"recommendations"`
}

type courseResponse struct {
	ID           string  `json:"id"`
	Title        string  `json:"title"`
	ResourceType string  `json:"resourceType"`
	Level        string  `json:"level"`
	Price        float64 `json:"price"`
}

// --- Helpers ---

func writeError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]string{
		"error": msg,
	})
}

func methodNotAllowed(w http.ResponseWriter, allowed ...string) {
	w.Header().Set("Allow", strings.Join(allowed, ", "))
	writeError(w, http.StatusMethodNotAllowed, "method not allowed")
}
