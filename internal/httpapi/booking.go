package httpapi

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"holdco-backend/internal/booking"
	"holdco-backend/internal/model"
)

// bookingBeginHandler is step one of the viewing-booking flow: schedule
// plus contact details. The draft lives in Redis until step two or TTL
// expiry; no slot hold is taken.
func (s *Server) bookingBeginHandler(w http.ResponseWriter, r *http.Request) {
	var req model.BookingRequest
	if payload := s.decodeForm(w, r, string(model.LeadBooking), &req); payload == nil {
		return
	}
	if _, ok := s.Snap.Get(model.KindEstates, req.PropertyID); !ok {
		writeError(w, http.StatusNotFound, "property not found")
		return
	}

	draft, err := s.Booking.Begin(r.Context(), req)
	if err != nil {
		log.Printf("booking begin error: %v", err)
		writeError(w, http.StatusInternalServerError, "something went wrong, try again")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"draft_id": draft.ID, "next": "payment"})
}

// bookingPaymentHandler is step two: payment details against the draft.
// Completing consumes the draft, then the booking is accepted as a lead.
func (s *Server) bookingPaymentHandler(w http.ResponseWriter, r *http.Request) {
	draftID := mux.Vars(r)["id"]

	var pay model.BookingPayment
	if payload := s.decodeForm(w, r, "booking_payment", &pay); payload == nil {
		return
	}

	draft, err := s.Booking.Complete(r.Context(), draftID)
	if errors.Is(err, booking.ErrDraftNotFound) {
		writeError(w, http.StatusGone, "booking draft expired or already completed")
		return
	}
	if err != nil {
		log.Printf("booking complete error: %v", err)
		writeError(w, http.StatusInternalServerError, "something went wrong, try again")
		return
	}

	full := struct {
		model.BookingRequest
		PaymentToken string `json:"payment_token"`
		BillingName  string `json:"billing_name"`
	}{draft.Request, pay.PaymentToken, pay.BillingName}

	payload, err := json.Marshal(full)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "something went wrong, try again")
		return
	}
	s.acceptLead(w, r, model.LeadBooking, draft.Request.Name, draft.Request.Email, payload)
}
