package apperr

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassification(t *testing.T) {
	notFound := NotFound("order %d", 42)
	conflict := Conflict("already favorited")
	validation := Validation("quantity %d out of range", 9)

	assert.True(t, IsNotFound(notFound))
	assert.False(t, IsNotFound(conflict))

	assert.True(t, IsConflict(conflict))
	assert.False(t, IsConflict(validation))

	assert.True(t, IsValidation(validation))
	assert.False(t, IsValidation(notFound))

	assert.Contains(t, notFound.Error(), "order 42")
	assert.Contains(t, validation.Error(), "quantity 9")
}

func TestClassificationSurvivesWrapping(t *testing.T) {
	err := fmt.Errorf("checkout: %w", NotFound("cart is empty"))

	assert.True(t, IsNotFound(err))
	assert.False(t, IsConflict(err))
}
