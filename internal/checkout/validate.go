// Package checkout turns a cart session into a submitted order.
package checkout

import (
	"strings"

	"crunchy-cruise/internal/cart"
	"crunchy-cruise/internal/delivery"
	"crunchy-cruise/internal/model"
	"crunchy-cruise/internal/money"

	"github.com/go-playground/validator/v10"
)

const (
	// MinNameLength is the fewest runes a trimmed customer name may have.
	MinNameLength = 2
	// MinPhoneLength is the fewest runes a phone number may have, counted as typed.
	MinPhoneLength = 7
)

var validate = validator.New()

// ValidateCustomer checks the contact fields, name first. The name is
// trimmed before counting; the phone is counted as typed.
func ValidateCustomer(name, phone string) error {
	if len([]rune(strings.TrimSpace(name))) < MinNameLength {
		return model.ErrNameTooShort
	}
	if len([]rune(phone)) < MinPhoneLength {
		return model.ErrPhoneTooShort
	}
	return nil
}

// ValidateEmail checks that email is a well-formed address.
func ValidateEmail(email string) error {
	if err := validate.Var(strings.TrimSpace(email), "required,email"); err != nil {
		return model.ErrInvalidEmail.Wrap(err)
	}
	return nil
}

// ComputeTotal is the subtotal of items plus the delivery charge, which only
// counts once the location is confirmed.
func ComputeTotal(items []model.LineItem, info model.DeliveryInfo) int64 {
	return money.SaturatingAdd(cart.New(items).Subtotal(), delivery.NewSelection(info).Charge())
}
