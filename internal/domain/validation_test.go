package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateRegistration(t *testing.T) {
	t.Run("Regular needs names", func(t *testing.T) {
		verr := ValidateRegistration(RegisterInput{
			Email:    "jane@example.com",
			Password: "secret123",
			Role:     "regular",
		})
		assert.NotNil(t, verr)
		assert.ElementsMatch(t, []string{"first_name", "last_name"}, verr.Fields)
	})

	t.Run("Business needs name, type and address", func(t *testing.T) {
		verr := ValidateRegistration(RegisterInput{
			Email:        "shelter@example.com",
			Password:     "secret123",
			Role:         "business",
			BusinessType: "bakery",
		})
		assert.NotNil(t, verr)
		assert.ElementsMatch(t, []string{"business_name", "business_type", "address"}, verr.Fields)
	})

	t.Run("Invalid role", func(t *testing.T) {
		verr := ValidateRegistration(RegisterInput{
			Email:    "jane@example.com",
			Password: "secret123",
			Role:     "admin",
		})
		assert.NotNil(t, verr)
		assert.Contains(t, verr.Fields, "role")
	})

	t.Run("Bad email and short password", func(t *testing.T) {
		verr := ValidateRegistration(RegisterInput{
			Email:     "not-an-email",
			Password:  "abc",
			Role:      "regular",
			FirstName: "Jane",
			LastName:  "Doe",
		})
		assert.NotNil(t, verr)
		assert.ElementsMatch(t, []string{"email", "password"}, verr.Fields)
	})

	t.Run("Valid regular", func(t *testing.T) {
		verr := ValidateRegistration(RegisterInput{
			Email:     "jane@example.com",
			Password:  "secret123",
			Role:      "regular",
			FirstName: "Jane",
			LastName:  "Doe",
		})
		assert.Nil(t, verr)
	})

	t.Run("Valid business", func(t *testing.T) {
		verr := ValidateRegistration(RegisterInput{
			Email:        "shelter@example.com",
			Password:     "secret123",
			Role:         "business",
			BusinessName: "Happy Paws",
			BusinessType: "shelter",
			Address:      "1 Bark St",
		})
		assert.Nil(t, verr)
	})
}

func TestValidateCreatePet(t *testing.T) {
	assert.Nil(t, ValidateCreatePet(CreatePetInput{Name: "Rex", Species: "dog", Price: 100}))

	verr := ValidateCreatePet(CreatePetInput{Price: -1, AgeMonths: -3})
	assert.NotNil(t, verr)
	assert.ElementsMatch(t, []string{"name", "species", "price", "age_months"}, verr.Fields)
}
