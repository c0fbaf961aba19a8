package catalog_api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"ms-reservations/internal/catalog"
	"ms-reservations/internal/logger"
	"ms-reservations/internal/models"
	"ms-reservations/internal/utils"
)

type Handler struct {
	CatalogService *catalog.Service
	Logger         *logger.Logger
}

func (h *Handler) ListAirports(w http.ResponseWriter, r *http.Request) {
	airports, err := h.CatalogService.ListAirports(r.Context())
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("ListAirports: %v", err))
		utils.ErrorJSON(w, http.StatusInternalServerError, "failed to list airports")
		return
	}
	utils.JSON(w, http.StatusOK, airports)
}

func (h *Handler) FlightsFromAirport(w http.ResponseWriter, r *http.Request) {
	departure := chi.URLParam(r, "departure")

	flights, err := h.CatalogService.FlightsFromAirport(r.Context(), departure)
	if errors.Is(err, models.ErrAirportNotFound) {
		utils.ErrorJSON(w, http.StatusNotFound, fmt.Sprintf("Airport with name %s not found", departure))
		return
	}
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("FlightsFromAirport: %v", err))
		utils.ErrorJSON(w, http.StatusInternalServerError, "failed to list flights")
		return
	}
	if len(flights) == 0 {
		utils.ErrorJSON(w, http.StatusNotFound,
			fmt.Sprintf("No flights found for the airport %s in the next 12 hours", departure))
		return
	}
	utils.JSON(w, http.StatusOK, flights)
}

func (h *Handler) NextAvailableFlights(w http.ResponseWriter, r *http.Request) {
	departure := chi.URLParam(r, "departure")
	arrival := chi.URLParam(r, "arrival")

	flights, err := h.CatalogService.NextAvailableFlights(r.Context(), departure, arrival)
	if errors.Is(err, models.ErrAirportNotFound) {
		utils.ErrorJSON(w, http.StatusNotFound, "Airport not found")
		return
	}
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("NextAvailableFlights: %v", err))
		utils.ErrorJSON(w, http.StatusInternalServerError, "failed to find available flights")
		return
	}
	if len(flights) == 0 {
		utils.ErrorJSON(w, http.StatusNotFound,
			fmt.Sprintf("There is no flight between %s and %s with available tickets", departure, arrival))
		return
	}
	utils.JSON(w, http.StatusOK, flights)
}
