package utils

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type registrationInput struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=6"`
	Name     string `validate:"required"`
}

func TestValidateStruct(t *testing.T) {
	t.Run("valid struct passes", func(t *testing.T) {
		input := registrationInput{
			Email:    "user@example.com",
			Password: "secret123",
			Name:     "User",
		}

		assert.NoError(t, ValidateStruct(&input))
	})

	t.Run("missing fields reported per field", func(t *testing.T) {
		input := registrationInput{}

		err := ValidateStruct(&input)

		assert.Error(t, err)
		assert.True(t, IsValidationError(err))

		fields := GetValidationFields(err)
		assert.Equal(t, "Email is required", fields["Email"])
		assert.Equal(t, "Password is required", fields["Password"])
		assert.Equal(t, "Name is required", fields["Name"])
	})

	t.Run("invalid email reported", func(t *testing.T) {
		input := registrationInput{
			Email:    "not-an-email",
			Password: "secret123",
			Name:     "User",
		}

		err := ValidateStruct(&input)

		assert.True(t, IsValidationError(err))
		assert.Equal(t, "Email must be a valid email", GetValidationFields(err)["Email"])
	})

	t.Run("short password reported with minimum", func(t *testing.T) {
		input := registrationInput{
			Email:    "user@example.com",
			Password: "abc",
			Name:     "User",
		}

		err := ValidateStruct(&input)

		assert.True(t, IsValidationError(err))
		assert.Equal(t, "Password must be at least 6", GetValidationFields(err)["Password"])
	})
}

func TestIsValidationError(t *testing.T) {
	t.Run("plain error is not a validation error", func(t *testing.T) {
		assert.False(t, IsValidationError(errors.New("boom")))
		assert.Nil(t, GetValidationFields(errors.New("boom")))
	})
}
