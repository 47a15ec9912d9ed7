package model

import "time"

// LeadKind tags which form produced a lead.
type LeadKind string

const (
	LeadContact      LeadKind = "contact"
	LeadConsultation LeadKind = "consultation"
	LeadOffer        LeadKind = "offer"
	LeadEnrollment   LeadKind = "enrollment"
	LeadBooking      LeadKind = "booking"
)

// ContactMessage is the public contact form payload.
type ContactMessage struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone"`
	Subject string `json:"subject" validate:"required"`
	Message string `json:"message" validate:"required"`
}

// ConsultationRequest is the consultation booking form payload. ServiceID
// references a row from GET /api/services.
type ConsultationRequest struct {
	Name      string `json:"name" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Phone     string `json:"phone" validate:"required"`
	ServiceID string `json:"service_id" validate:"required"`
	Date      string `json:"date" validate:"required"`
	Message   string `json:"message"`
}

// PropertyOffer is an offer submitted against a listed property.
type PropertyOffer struct {
	PropertyID string  `json:"property_id" validate:"required"`
	Name       string  `json:"name" validate:"required"`
	Email      string  `json:"email" validate:"required,email"`
	Phone      string  `json:"phone"`
	Amount     float64 `json:"amount" validate:"required,gt=0"`
	Message    string  `json:"message"`
}

// Enrollment is a course enrollment request.
type Enrollment struct {
	CourseID string `json:"course_id" validate:"required"`
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone"`
}

// PropertySubmission is the authenticated multipart property-listing form.
// The image travels as a separate multipart part.
type PropertySubmission struct {
	Title       string  `json:"title" validate:"required"`
	Description string  `json:"description" validate:"required"`
	Category    string  `json:"category" validate:"required"`
	Price       float64 `json:"price" validate:"required,gt=0"`
	Location    string  `json:"location" validate:"required"`
}

// BookingRequest is step one of the two-step booking flow: schedule and
// contact details. No reservation hold is taken until step two completes.
type BookingRequest struct {
	PropertyID string `json:"property_id" validate:"required"`
	Date       string `json:"date" validate:"required"`
	Time       string `json:"time" validate:"required"`
	Name       string `json:"name" validate:"required"`
	Email      string `json:"email" validate:"required,email"`
	Phone      string `json:"phone" validate:"required"`
}

// BookingPayment is step two: a tokenized payment reference for the draft
// created in step one. Raw card data never reaches this service.
type BookingPayment struct {
	PaymentToken string `json:"payment_token" validate:"required"`
	BillingName  string `json:"billing_name" validate:"required"`
	BillingEmail string `json:"billing_email" validate:"required,email"`
}

// BookingDraft is the step-one state held between the two steps, stored
// with a TTL so abandoned drafts expire on their own.
type BookingDraft struct {
	ID        string         `json:"id"`
	Request   BookingRequest `json:"request"`
	CreatedAt time.Time      `json:"created_at"`
}

// Lead is the persisted record of an accepted form submission. Payload
// holds the original form JSON verbatim.
type Lead struct {
	ID        string    `db:"id" json:"id"`
	Kind      LeadKind  `db:"kind" json:"kind"`
	Name      string    `db:"name" json:"name"`
	Email     string    `db:"email" json:"email"`
	Payload   []byte    `db:"payload" json:"payload"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
