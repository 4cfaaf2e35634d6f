package get_public_business

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/appointify/appointment-service/internal/api/handlers"
	publicService "github.com/appointify/appointment-service/internal/service/public"
)

const (
	msgBusinessNotFound = "страница бронирования не найдена"
)

type Handler struct {
	service PublicService
	logger  Logger
}

func NewHandler(service PublicService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/public/businesses/{slug}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]

	card, err := h.service.GetCard(r.Context(), slug)
	if err != nil {
		switch {
		case errors.Is(err, publicService.ErrBusinessNotFound):
			h.logger.Warn("GET /public/businesses/{slug} - Business not found: slug=%s", slug)
			handlers.RespondNotFound(w, msgBusinessNotFound)

		case errors.Is(err, publicService.ErrInvalidInput):
			h.logger.Warn("GET /public/businesses/{slug} - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgBusinessNotFound)

		default:
			h.logger.Error("GET /public/businesses/{slug} - Failed to get card: slug=%s, error=%v", slug, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, card)
}
