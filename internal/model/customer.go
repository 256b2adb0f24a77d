package model

import (
	"errors"
	"fmt"
	"net/mail"
	"regexp"
	"strings"
	"time"
)

// ErrInvalidCustomer is returned when a customer fails validation.
var ErrInvalidCustomer = errors.New("invalid customer")

var phonePattern = regexp.MustCompile(`^\+?[0-9]{6,15}$`)

// Customer represents a registered buyer.
type Customer struct {
	RegisteredAt time.Time `json:"registered_at" yaml:"registered_at"`
	Name         string    `json:"name" yaml:"name"`
	Email        string    `json:"email" yaml:"email"`
	Phone        string    `json:"phone" yaml:"phone"`
	ID           int       `json:"id" yaml:"id"`
}

// NormalizePhone strips spaces, dashes, dots and parentheses from a phone number.
func NormalizePhone(phone string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '-', '.', '(', ')':
			return -1
		}
		return r
	}, strings.TrimSpace(phone))
}

// Normalize trims the text fields and canonicalizes the phone number.
func (c *Customer) Normalize() {
	c.Name = strings.TrimSpace(c.Name)
	c.Email = strings.TrimSpace(c.Email)
	c.Phone = NormalizePhone(c.Phone)
}

// Validate checks that the customer can be persisted.
func (c *Customer) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidCustomer)
	}
	email := strings.TrimSpace(c.Email)
	if email == "" {
		return fmt.Errorf("%w: email is required", ErrInvalidCustomer)
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return fmt.Errorf("%w: email %q is not a valid address", ErrInvalidCustomer, email)
	}
	if !phonePattern.MatchString(NormalizePhone(c.Phone)) {
		return fmt.Errorf("%w: phone must contain 6 to 15 digits", ErrInvalidCustomer)
	}
	return nil
}

// RegisteredAtString formats the registration time, or N/A when it was never recorded.
func (c Customer) RegisteredAtString() string {
	if c.RegisteredAt.IsZero() {
		return "N/A"
	}
	return c.RegisteredAt.Local().Format("2006-01-02 15:04")
}

// String renders a one-line summary of the customer.
func (c Customer) String() string {
	return fmt.Sprintf("#%d %s <%s> %s", c.ID, c.Name, c.Email, c.Phone)
}
