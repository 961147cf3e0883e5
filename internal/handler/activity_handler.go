package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"

	"mergington-api/internal/domain"
	"mergington-api/internal/service"
	apperrors "mergington-api/pkg/errors"
	"mergington-api/pkg/logger"
	"mergington-api/pkg/metrics"

	"github.com/go-chi/chi/v5"
)

// ActivityHandler handles activity roster HTTP requests
type ActivityHandler struct {
	activityService service.ActivityService
	logger          *logger.Logger
}

// NewActivityHandler creates a new activity handler
func NewActivityHandler(activityService service.ActivityService, logger *logger.Logger) *ActivityHandler {
	return &ActivityHandler{
		activityService: activityService,
		logger:          logger,
	}
}

// MessageResponse is the success body for roster mutations.
type MessageResponse struct {
	Message string `json:"message"`
}

// GetActivities handles GET /activities
func (h *ActivityHandler) GetActivities(w http.ResponseWriter, r *http.Request) {
	activities, err := h.activityService.GetActivities(r.Context())
	if err != nil {
		h.logger.WithError(err).Error("Failed to list activities")
		h.writeError(w, apperrors.NewInternalError("Failed to list activities", err))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	if err := json.NewEncoder(w).Encode(activities); err != nil {
		h.logger.WithError(err).Error("Failed to encode activities response")
	}
}

// SignUp handles POST /activities/{activityName}/signup
func (h *ActivityHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	activityName, email, appErr := h.rosterParams(r)
	if appErr != nil {
		h.writeError(w, appErr)
		return
	}

	message, err := h.activityService.SignUp(r.Context(), activityName, email)
	if err != nil {
		metrics.SignupsTotal.WithLabelValues(outcomeLabel(err)).Inc()
		h.writeError(w, h.rosterError(err, activityName, email))
		return
	}

	metrics.SignupsTotal.WithLabelValues("success").Inc()
	h.writeMessage(w, message)
}

// Unregister handles POST /activities/{activityName}/unregister
func (h *ActivityHandler) Unregister(w http.ResponseWriter, r *http.Request) {
	activityName, email, appErr := h.rosterParams(r)
	if appErr != nil {
		h.writeError(w, appErr)
		return
	}

	message, err := h.activityService.Unregister(r.Context(), activityName, email)
	if err != nil {
		metrics.UnregistersTotal.WithLabelValues(outcomeLabel(err)).Inc()
		h.writeError(w, h.rosterError(err, activityName, email))
		return
	}

	metrics.UnregistersTotal.WithLabelValues("success").Inc()
	h.writeMessage(w, message)
}

// rosterParams extracts and validates the activity name and email from
// the request. Activity names contain spaces, so the path segment is
// unescaped before lookup; no further normalization happens, lookup is
// an exact match against the registry key.
func (h *ActivityHandler) rosterParams(r *http.Request) (string, string, *apperrors.AppError) {
	activityName, err := url.PathUnescape(chi.URLParam(r, "activityName"))
	if err != nil || activityName == "" {
		return "", "", apperrors.NewValidationError("activity name is required")
	}

	email := r.URL.Query().Get("email")
	if email == "" {
		return "", "", apperrors.NewValidationError("email is required")
	}

	return activityName, email, nil
}

// rosterError maps the domain sentinel errors onto application errors
// with the contract's wording and status codes.
func (h *ActivityHandler) rosterError(err error, activityName, email string) *apperrors.AppError {
	switch {
	case errors.Is(err, domain.ErrActivityNotFound):
		return apperrors.NewNotFoundError("Activity not found")
	case errors.Is(err, domain.ErrAlreadyRegistered):
		return apperrors.NewValidationError("Student is already signed up")
	case errors.Is(err, domain.ErrNotRegistered):
		return apperrors.NewValidationError("Student is not signed up for this activity")
	default:
		h.logger.WithError(err).WithFields(map[string]interface{}{
			"activity": activityName,
			"email":    email,
		}).Error("Unexpected roster error")
		return apperrors.NewInternalError("Internal server error", err)
	}
}

// outcomeLabel buckets roster errors for the outcome metric.
func outcomeLabel(err error) string {
	switch {
	case errors.Is(err, domain.ErrActivityNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrAlreadyRegistered):
		return "already_registered"
	case errors.Is(err, domain.ErrNotRegistered):
		return "not_registered"
	default:
		return "error"
	}
}

// writeMessage sends a confirmation response
func (h *ActivityHandler) writeMessage(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	if err := json.NewEncoder(w).Encode(MessageResponse{Message: message}); err != nil {
		h.logger.WithError(err).Error("Failed to encode message response")
	}
}

// writeError sends an error response in the contract's detail shape
func (h *ActivityHandler) writeError(w http.ResponseWriter, appErr *apperrors.AppError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(appErr.StatusCode)

	if err := json.NewEncoder(w).Encode(apperrors.ErrorResponse{Detail: appErr.Message}); err != nil {
		h.logger.WithError(err).Error("Failed to encode error response")
	}
}

// RegisterRoutes registers activity handler routes with the router
func (h *ActivityHandler) RegisterRoutes(r chi.Router) {
	r.Route("/activities", func(r chi.Router) {
		r.Get("/", h.GetActivities)
		r.Post("/{activityName}/signup", h.SignUp)
		r.Post("/{activityName}/unregister", h.Unregister)
	})
}
