package model

import "time"

// Treatment is a bookable service offering. Slots are opaque display labels
// ("8:00 AM - 9:00 AM") in the order the catalog configures them.
type Treatment struct {
	ID        string    `json:"_id"`
	Name      string    `json:"name"`
	Slots     []string  `json:"slots"`
	Price     int       `json:"price"`
	CreatedAt time.Time `json:"-"`
}

// Booking reserves one slot of one treatment on one date for a patient.
// AppointmentDate and Slot are labels compared by equality only; the store
// enforces at most one booking per (email, appointment date, treatment).
type Booking struct {
	ID              string    `json:"_id"`
	Email           string    `json:"email"`
	PatientName     string    `json:"patientName"`
	AppointmentDate string    `json:"appointmentDate"`
	Treatment       string    `json:"treatment"`
	Slot            string    `json:"slot"`
	Price           int       `json:"price"`
	Paid            bool      `json:"paid"`
	TransactionID   string    `json:"transactionId,omitempty"`
	CreatedAt       time.Time `json:"-"`
}

const (
	RolePatient = "patient"
	RoleAdmin   = "admin"
)

type User struct {
	ID    string `json:"_id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

type Doctor struct {
	ID        string `json:"_id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Specialty string `json:"specialty"`
	ImageURL  string `json:"image,omitempty"`
}

// Payment records a confirmed external payment against a booking.
type Payment struct {
	ID            string    `json:"_id"`
	BookingID     string    `json:"bookingId"`
	Email         string    `json:"email"`
	Price         int       `json:"price"`
	TransactionID string    `json:"transactionId"`
	CreatedAt     time.Time `json:"-"`
}
