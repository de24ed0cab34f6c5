package service

import (
	"errors"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// ShippingDetails is the delivery form of the checkout.
type ShippingDetails struct {
	FirstName  string `json:"first_name" validate:"required"`
	LastName   string `json:"last_name" validate:"required"`
	Email      string `json:"email" validate:"required"`
	Phone      string `json:"phone" validate:"required"`
	Address    string `json:"address" validate:"required"`
	City       string `json:"city" validate:"required"`
	State      string `json:"state" validate:"required"`
	PostalCode string `json:"postal_code" validate:"required"`
}

const (
	PaymentCard = "card"
	PaymentUPI  = "upi"
	PaymentCOD  = "cod"
)

type PaymentDetails struct {
	Method     string `json:"method"`
	CardNumber string `json:"card_number,omitempty"`
	CardExpiry string `json:"card_expiry,omitempty"`
	CardCVV    string `json:"card_cvv,omitempty"`
	CardName   string `json:"card_name,omitempty"`
	UPIID      string `json:"upi_id,omitempty"`
}

type cardPayment struct {
	CardNumber string `validate:"cardnumber"`
	CardExpiry string `validate:"len=5"`
	CardCVV    string `validate:"min=3,number"`
	CardName   string `validate:"required"`
}

type upiPayment struct {
	UPIID string `validate:"min=4,contains=@"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	if err := v.RegisterValidation("cardnumber", validCardNumber); err != nil {
		panic(err)
	}
	return v
}

// validCardNumber accepts 16 or more digits once spaces are removed.
func validCardNumber(fl validator.FieldLevel) bool {
	digits := strings.ReplaceAll(fl.Field().String(), " ", "")
	if len(digits) < 16 {
		return false
	}
	for _, r := range digits {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

func validateShipping(d ShippingDetails) error {
	if err := validate.Struct(d); err != nil {
		return toValidationError("Please fill in the following fields: ", err)
	}
	return nil
}

func validatePayment(p PaymentDetails) error {
	var err error
	switch p.Method {
	case PaymentCard:
		err = validate.Struct(cardPayment{
			CardNumber: p.CardNumber,
			CardExpiry: p.CardExpiry,
			CardCVV:    p.CardCVV,
			CardName:   strings.TrimSpace(p.CardName),
		})
	case PaymentUPI:
		err = validate.Struct(upiPayment{UPIID: p.UPIID})
	case PaymentCOD:
		return nil
	default:
		return newValidationError("Unsupported payment method: ", []string{p.Method})
	}
	if err != nil {
		return toValidationError("Invalid payment details: ", err)
	}
	return nil
}

func toValidationError(prefix string, err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fe.Field())
	}
	return newValidationError(prefix, fields)
}
