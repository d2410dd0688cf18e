package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/paymentintent"

	"github.com/clinicport/backend/internal/model"
	"github.com/clinicport/backend/internal/storage"
)

// BookingForPayment handles GET /payment/{id}: the booking the payment page
// is about to charge for.
func (h *Handler) BookingForPayment(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	booking, err := h.bookings.GetByID(r.Context(), id)
	if errors.Is(err, storage.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, messageResponse{Message: "booking not found"})
		return
	}
	if err != nil {
		h.logger.Error("booking load failed", "err", err, "booking_id", id)
		writeJSON(w, http.StatusInternalServerError, messageResponse{Message: "failed to load booking"})
		return
	}
	writeJSON(w, http.StatusOK, booking)
}

type createPaymentIntentRequest struct {
	Price int `json:"price"`
}

// CreatePaymentIntent handles POST /create-payment-intent: a card
// PaymentIntent with Stripe for the booking's price, in cents.
func (h *Handler) CreatePaymentIntent(w http.ResponseWriter, r *http.Request) {
	var req createPaymentIntentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, messageResponse{Message: "invalid json body"})
		return
	}
	if req.Price <= 0 {
		writeJSON(w, http.StatusBadRequest, messageResponse{Message: "price must be positive"})
		return
	}

	stripe.Key = h.stripeKey
	intent, err := paymentintent.New(&stripe.PaymentIntentParams{
		Amount:             stripe.Int64(int64(req.Price) * 100),
		Currency:           stripe.String(string(stripe.CurrencyUSD)),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
	})
	if err != nil {
		h.logger.Error("payment intent creation failed", "err", err)
		writeJSON(w, http.StatusBadGateway, messageResponse{Message: "payment provider unavailable"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"clientSecret": intent.ClientSecret})
}

type recordPaymentRequest struct {
	BookingID     string `json:"bookingId"`
	Email         string `json:"email"`
	Price         int    `json:"price"`
	TransactionID string `json:"transactionId"`
}

type recordPaymentResponse struct {
	Acknowledge bool   `json:"acknowledge"`
	PaymentID   string `json:"paymentId"`
}

// RecordPayment handles POST /payment: reconciliation after the external
// charge completed. The payment record and the booking's paid flag are one
// transactional unit; a vanished booking rolls everything back and surfaces
// as 404 instead of a half-acknowledged success.
func (h *Handler) RecordPayment(w http.ResponseWriter, r *http.Request) {
	var req recordPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, messageResponse{Message: "invalid json body"})
		return
	}
	req.BookingID = strings.TrimSpace(req.BookingID)
	req.TransactionID = strings.TrimSpace(req.TransactionID)
	if req.BookingID == "" || req.TransactionID == "" {
		writeJSON(w, http.StatusBadRequest, messageResponse{Message: "bookingId and transactionId are required"})
		return
	}

	payment := model.Payment{
		ID:            uuid.NewString(),
		BookingID:     req.BookingID,
		Email:         strings.TrimSpace(req.Email),
		Price:         req.Price,
		TransactionID: req.TransactionID,
	}
	err := h.payments.Reconcile(r.Context(), payment)
	if errors.Is(err, storage.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, messageResponse{Message: "booking not found; payment not recorded"})
		return
	}
	if err != nil {
		h.logger.Error("payment reconciliation failed", "err", err, "booking_id", req.BookingID)
		writeJSON(w, http.StatusInternalServerError, messageResponse{Message: "failed to record payment"})
		return
	}
	writeJSON(w, http.StatusOK, recordPaymentResponse{Acknowledge: true, PaymentID: payment.ID})
}
