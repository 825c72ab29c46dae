package models

import (
	"time"

	"github.com/google/uuid"
)

// Registrant is one person's stored registration. A registrant is created
// exactly once by a successful registration and never updated or deleted.
type Registrant struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	AdmissionNo string    `json:"admissionNo"`
	Branch      string    `json:"branch"`
	Phone       string    `json:"phone"`
	Email       string    `json:"email"`
	CreatedAt   time.Time `json:"createdAt"`
}

// RegisterRequest is the POST /register body. All fields arrive as free-form
// text; validation happens in the service, never in the decoder.
type RegisterRequest struct {
	Name        string `json:"name"`
	AdmissionNo string `json:"admissionNo"`
	Branch      string `json:"branch"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
}

// RegisterResponse is the uniform reply envelope. Handled outcomes are always
// HTTP 200; callers branch on Success, not on the status code.
type RegisterResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// NewRegistrant builds a Registrant from an already-validated request.
func NewRegistrant(req RegisterRequest) *Registrant {
	return &Registrant{
		ID:          uuid.New(),
		Name:        req.Name,
		AdmissionNo: req.AdmissionNo,
		Branch:      req.Branch,
		Phone:       req.Phone,
		Email:       req.Email,
		CreatedAt:   time.Now(),
	}
}
