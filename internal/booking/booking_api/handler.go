package booking_api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"ms-reservations/internal/booking"
	"ms-reservations/internal/logger"
	"ms-reservations/internal/models"
	"ms-reservations/internal/utils"
)

type Handler struct {
	BookingService *booking.Service
	Logger         *logger.Logger
}

func (h *Handler) Purchase(w http.ResponseWriter, r *http.Request) {
	flightID, err := strconv.ParseInt(chi.URLParam(r, "flightID"), 10, 64)
	if err != nil {
		utils.ErrorJSON(w, http.StatusNotFound, "Flight not found")
		return
	}

	var req models.PurchaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ErrorJSON(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	response, err := h.BookingService.Purchase(r.Context(), flightID, req)
	switch {
	case errors.Is(err, models.ErrInvalidRequest):
		utils.ErrorJSON(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, models.ErrFlightNotFound):
		utils.ErrorJSON(w, http.StatusNotFound, "Flight not found")
	case errors.Is(err, models.ErrCapacityExceeded):
		utils.ErrorJSON(w, http.StatusConflict, "Not enough capacity left on this flight")
	case err != nil:
		h.Logger.Error("API", fmt.Sprintf("Purchase: flight=%d: %v", flightID, err))
		utils.ErrorJSON(w, http.StatusInternalServerError, "Purchase failed")
	default:
		h.Logger.Info("API", fmt.Sprintf("Purchase: flight=%d reservation=%s tickets=%d",
			flightID, response.ReservationCode, len(response.Tickets)))
		utils.JSON(w, http.StatusOK, response)
	}
}

func (h *Handler) GetReservation(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	reservation, tickets, err := h.BookingService.GetReservation(r.Context(), code)
	if errors.Is(err, models.ErrReservationNotFound) {
		utils.ErrorJSON(w, http.StatusNotFound, "Reservation not found")
		return
	}
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("GetReservation: code=%s: %v", code, err))
		utils.ErrorJSON(w, http.StatusInternalServerError, "Failed to load reservation")
		return
	}

	utils.JSON(w, http.StatusOK, map[string]interface{}{
		"reservation": reservation,
		"tickets":     tickets,
	})
}
