package domain

import (
	"strings"

	"github.com/tair/littleones/pkg/validation"
)

// ContactForm is a customer service message. Name, email and message are
// trimmed before validation.
type ContactForm struct {
	Name    string `json:"name" validate:"required,max=100"`
	Email   string `json:"email" validate:"required,email,max=255"`
	Phone   string `json:"phone,omitempty"`
	OrderID string `json:"orderId,omitempty"`
	Message string `json:"message" validate:"required,max=1000"`
}

var contactLabels = validation.Labels{
	"name":    "Name",
	"email":   "Email",
	"message": "Message",
}

// Normalize trims the free-text fields
func (f *ContactForm) Normalize() {
	f.Name = strings.TrimSpace(f.Name)
	f.Email = strings.TrimSpace(f.Email)
	f.Phone = strings.TrimSpace(f.Phone)
	f.OrderID = strings.TrimSpace(f.OrderID)
	f.Message = strings.TrimSpace(f.Message)
}

// Validate normalizes f and checks it, returning *validation.Error with one
// message per failing field
func (f *ContactForm) Validate() error {
	f.Normalize()
	err := validation.Struct(f, contactLabels)
	if fields := validation.Fields(err); fields != nil {
		// An empty or malformed email reads the same to the shopper
		if fields["email"] == "Email is required" {
			fields["email"] = "Invalid email address"
		}
	}
	return err
}

// Newsletter signup sources. The footer form confirms instantly; the home page
// banner simulates a slower signup.
const (
	SourceHome   = "home"
	SourceFooter = "footer"
)

// NewsletterForm is a newsletter signup
type NewsletterForm struct {
	Email  string `json:"email" validate:"required,email,max=255"`
	Source string `json:"source,omitempty" validate:"omitempty,oneof=home footer"`
}

var newsletterLabels = validation.Labels{
	"email":  "Email",
	"source": "Source",
}

// Validate normalizes f and checks it
func (f *NewsletterForm) Validate() error {
	f.Email = strings.TrimSpace(f.Email)
	f.Source = strings.ToLower(strings.TrimSpace(f.Source))
	if f.Source == "" {
		f.Source = SourceHome
	}
	return validation.Struct(f, newsletterLabels)
}
