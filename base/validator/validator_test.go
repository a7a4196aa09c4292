package validator

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/x-xyz/p2pmarket/domain"
)

type ValidatorTestSuite struct {
	suite.Suite
}

func TestValidatorTestSuite(t *testing.T) {
	suite.Run(t, new(ValidatorTestSuite))
}

func (s *ValidatorTestSuite) TestIsValidAddress() {
	tests := []struct {
		desc       string
		address    string
		expIsValid bool
	}{
		{desc: "too short", address: "0x000", expIsValid: false},
		{desc: "mixed case", address: "0x939ae6A4C8dfDBB1f7085189574F0A938013952A", expIsValid: true},
		{desc: "lower case", address: "0x" + strings.Repeat("ab", 20), expIsValid: true},
		{desc: "missing prefix", address: "939ae6A4C8dfDBB1f7085189574F0A938013952A", expIsValid: false},
		{desc: "non hex", address: "0x939ae6A4C8dfDBB1f7085189574F0A938013952Z", expIsValid: false},
	}
	for _, t := range tests {
		s.Equal(t.expIsValid, IsValidAddress(t.address), t.desc)
	}
}

func (s *ValidatorTestSuite) TestIsValidAmount() {
	s.True(IsValidAmount("10"))
	s.True(IsValidAmount("10.00"))
	s.True(IsValidAmount("0"))
	s.False(IsValidAmount("-1"))
	s.False(IsValidAmount("ten"))
	s.False(IsValidAmount(""))
}

func (s *ValidatorTestSuite) TestToValidationError() {
	type shipping struct {
		City string `json:"city" validate:"required"`
	}
	type payload struct {
		Title    string   `json:"title" validate:"required,max=5"`
		Price    string   `json:"price" validate:"amount"`
		Wallet   string   `json:"walletAddress" validate:"hexaddr"`
		Images   []string `json:"images" validate:"min=1"`
		Shipping shipping `json:"shippingAddress"`
	}

	err := ToValidationError(New().Struct(&payload{Title: "too long", Price: "x", Wallet: "0x1"}))

	s.True(errors.Is(err, domain.ErrBadParamInput))
	verr := &domain.ValidationError{}
	s.Require().True(errors.As(err, &verr))
	s.Equal([]domain.FieldError{
		{Field: "title", Reason: "must be at most 5 characters"},
		{Field: "price", Reason: "must be a non-negative decimal number"},
		{Field: "walletAddress", Reason: "must be 0x followed by 40 hex characters"},
		{Field: "images", Reason: "must contain at least 1 items"},
		{Field: "shippingAddress.city", Reason: "is required"},
	}, verr.Fields)
}

func (s *ValidatorTestSuite) TestToValidationErrorPassThrough() {
	s.Nil(ToValidationError(nil))
	other := errors.New("boom")
	s.Equal(other, ToValidationError(other))
}
