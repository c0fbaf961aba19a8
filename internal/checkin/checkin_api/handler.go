package checkin_api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"ms-reservations/internal/checkin"
	"ms-reservations/internal/logger"
	"ms-reservations/internal/models"
	"ms-reservations/internal/utils"
)

type Handler struct {
	CheckInService *checkin.Service
	Logger         *logger.Logger
}

func (h *Handler) CheckIn(w http.ResponseWriter, r *http.Request) {
	ticketID, err := strconv.ParseInt(chi.URLParam(r, "ticketID"), 10, 64)
	if err != nil {
		utils.ErrorJSON(w, http.StatusBadRequest, "Invalid ticket ID, must be an integer")
		return
	}

	seat, err := h.CheckInService.CheckIn(r.Context(), ticketID)
	switch {
	case errors.Is(err, models.ErrTicketNotFound):
		utils.ErrorJSON(w, http.StatusNotFound, "Ticket not found")
	case errors.Is(err, models.ErrFlightNotFound):
		utils.ErrorJSON(w, http.StatusNotFound, "Flight not found or without serial number")
	case errors.Is(err, models.ErrAlreadyCheckedIn):
		utils.ErrorJSON(w, http.StatusConflict, "Check-in already made")
	case errors.Is(err, models.ErrCheckInInFlight):
		utils.ErrorJSON(w, http.StatusConflict, "Check-in already in progress")
	case errors.Is(err, models.ErrNoSeatsAvailable):
		utils.ErrorJSON(w, http.StatusConflict, "No seats available for this ticket")
	case err != nil:
		h.Logger.Error("API", fmt.Sprintf("CheckIn: ticket=%d: %v", ticketID, err))
		utils.ErrorJSON(w, http.StatusInternalServerError, "Check-in failed")
	default:
		h.Logger.Info("API", fmt.Sprintf("CheckIn: ticket=%d seat=%s", ticketID, seat))
		utils.JSON(w, http.StatusOK, models.CheckInResponse{AssignedSeat: seat})
	}
}

func (h *Handler) BoardingPass(w http.ResponseWriter, r *http.Request) {
	ticketID, err := strconv.ParseInt(chi.URLParam(r, "ticketID"), 10, 64)
	if err != nil {
		utils.ErrorJSON(w, http.StatusBadRequest, "Invalid ticket ID, must be an integer")
		return
	}

	png, err := h.CheckInService.BoardingPass(r.Context(), ticketID)
	switch {
	case errors.Is(err, models.ErrTicketNotFound):
		utils.ErrorJSON(w, http.StatusNotFound, "Ticket not found")
	case errors.Is(err, models.ErrNotCheckedIn):
		utils.ErrorJSON(w, http.StatusConflict, "Ticket is not checked in yet")
	case err != nil:
		h.Logger.Error("API", fmt.Sprintf("BoardingPass: ticket=%d: %v", ticketID, err))
		utils.ErrorJSON(w, http.StatusInternalServerError, "Failed to render boarding pass")
	default:
		w.Header().Set("Content-Type", "image/png")
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write(png); err != nil {
			h.Logger.Error("API", fmt.Sprintf("BoardingPass: failed to write response: %v", err))
		}
	}
}
