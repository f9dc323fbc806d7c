package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"casarural/internal/app"
	"casarural/internal/domain"
)

type Handlers struct{ S *app.BookingService }

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Post("/create-booking", h.createBooking)
	s.mux.Get("/get-all-booked-dates", h.getBookedDates)
	s.mux.Get("/get-bookings", h.getBookings)
	s.mux.Put("/update-booking/{id}", h.updateBooking)
	s.mux.Delete("/delete-booking/{id}", h.deleteBooking)
	s.mux.Post("/create-payment", h.createPayment)
}

// ---- request/response bodies ----

type bookingReq struct {
	Name    string  `json:"name"`
	Email   string  `json:"email"`
	Phone   string  `json:"phone"`
	Guests  int     `json:"guests"`
	DateIn  string  `json:"dateIn"`
	DateOut string  `json:"dateOut"`
	Price   float64 `json:"price"`
}

// complete reports whether all seven business fields are present;
// zero counts as missing for the numeric fields.
func (b bookingReq) complete() bool {
	return b.Name != "" && b.Email != "" && b.Phone != "" && b.Guests > 0 &&
		b.DateIn != "" && b.DateOut != "" && b.Price > 0
}

func (b bookingReq) toInput() app.BookingInput {
	return app.BookingInput{
		Name:    b.Name,
		Email:   b.Email,
		Phone:   b.Phone,
		Guests:  b.Guests,
		DateIn:  b.DateIn,
		DateOut: b.DateOut,
		Price:   b.Price,
	}
}

type paymentReq struct {
	Info  bookingReq `json:"info"`
	Token struct {
		ID string `json:"id"`
	} `json:"token"`
}

type createdResp struct {
	BookingID string `json:"bookingId"`
	Message   string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("write JSON response failed")
	}
}

func writeErr(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// ---- handlers ----

func (h *Handlers) createBooking(w http.ResponseWriter, r *http.Request) {
	var req bookingReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || !req.complete() {
		writeErr(w, http.StatusBadRequest, "All fields are required")
		return
	}

	id, err := h.S.Create(r.Context(), req.toInput())
	if err != nil {
		if errors.Is(err, domain.ErrInvalidDate) {
			writeErr(w, http.StatusBadRequest, "Invalid date format")
			return
		}
		log.Error().Err(err).Msg("create booking failed")
		writeErr(w, http.StatusInternalServerError, "An error occurred while creating the booking")
		return
	}
	writeJSON(w, http.StatusCreated, createdResp{BookingID: id, Message: "Booking created successfully"})
}

func (h *Handlers) getBookedDates(w http.ResponseWriter, r *http.Request) {
	out, err := h.S.ListBookedDates(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("fetch booked dates failed")
		writeErr(w, http.StatusInternalServerError, "An error occurred while fetching booked dates")
		return
	}
	if out == nil {
		out = []domain.DateRange{}
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handlers) getBookings(w http.ResponseWriter, r *http.Request) {
	out, err := h.S.ListAll(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("fetch bookings failed")
		writeErr(w, http.StatusInternalServerError, "An error occurred while fetching bookings")
		return
	}
	if out == nil {
		out = []domain.Booking{}
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handlers) updateBooking(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var patch domain.Patch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil || patch.IsZero() {
		writeErr(w, http.StatusBadRequest, "At least one field to update is required")
		return
	}

	if err := h.S.Update(r.Context(), id, patch); err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidDate):
			writeErr(w, http.StatusBadRequest, "Invalid date format")
		case errors.Is(err, domain.ErrNotFound):
			writeErr(w, http.StatusNotFound, "Booking not found or no changes made")
		default:
			log.Error().Err(err).Str("id", id).Msg("update booking failed")
			writeErr(w, http.StatusInternalServerError, "An error occurred while updating the booking")
		}
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Booking updated successfully"})
}

func (h *Handlers) deleteBooking(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.S.Delete(r.Context(), id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeErr(w, http.StatusNotFound, "Booking with the specified ID not found")
			return
		}
		log.Error().Err(err).Str("id", id).Msg("delete booking failed")
		writeErr(w, http.StatusInternalServerError, "An error occurred while deleting the booking")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Booking deleted successfully"})
}

func (h *Handlers) createPayment(w http.ResponseWriter, r *http.Request) {
	var req paymentReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || !req.Info.complete() || req.Token.ID == "" {
		writeErr(w, http.StatusBadRequest, "All fields are required")
		return
	}

	id, err := h.S.CreateWithPayment(r.Context(), req.Info.toInput(), req.Token.ID)
	if err != nil {
		if domain.IsPaymentError(err) {
			// cause stays in the logs; the client gets a generic message
			log.Error().Err(err).Msg("payment capture failed")
			writeErr(w, http.StatusInternalServerError, "Payment error")
			return
		}
		log.Error().Err(err).Msg("create booking failed")
		writeErr(w, http.StatusInternalServerError, "An error occurred while creating the booking")
		return
	}
	writeJSON(w, http.StatusCreated, createdResp{BookingID: id, Message: "Booking created successfully"})
}
