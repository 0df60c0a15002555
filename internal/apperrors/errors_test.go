package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestErrorClassification(t *testing.T) {
	notFound := NewNotFound("intent %d not found", 99)
	exists := NewAlreadyExists("tenant '%s' already exists", "acme")
	invalid := NewValidation("execution_order must be at least 1")

	assert.True(t, IsNotFound(notFound))
	assert.False(t, IsNotFound(exists))
	assert.False(t, IsNotFound(invalid))

	assert.True(t, IsAlreadyExists(exists))
	assert.False(t, IsAlreadyExists(notFound))

	assert.True(t, IsValidation(invalid))
	assert.False(t, IsValidation(exists))

	assert.Equal(t, "intent 99 not found", notFound.Error())
	assert.Equal(t, "tenant 'acme' already exists", exists.Error())
}

func TestClassificationTraversesWrapping(t *testing.T) {
	wrapped := fmt.Errorf("creating intent: %w", NewAlreadyExists("intent code taken"))
	assert.True(t, IsAlreadyExists(wrapped))
	assert.False(t, IsNotFound(wrapped))
}

func TestFromDatabase(t *testing.T) {
	t.Run("nil passes through", func(t *testing.T) {
		assert.NoError(t, FromDatabase(nil, "tenant"))
	})

	t.Run("duplicate key becomes AlreadyExists", func(t *testing.T) {
		err := FromDatabase(gorm.ErrDuplicatedKey, "tenant")
		assert.True(t, IsAlreadyExists(err))
		assert.Equal(t, "tenant already exists", err.Error())
	})

	t.Run("missing record becomes NotFound", func(t *testing.T) {
		err := FromDatabase(gorm.ErrRecordNotFound, "validation rule")
		assert.True(t, IsNotFound(err))
	})

	t.Run("other errors are untouched", func(t *testing.T) {
		cause := errors.New("connection refused")
		assert.Equal(t, cause, FromDatabase(cause, "tenant"))
	})
}
