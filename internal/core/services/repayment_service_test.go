package services

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestDuplicateKey(t *testing.T) {
	t.Run("matches translated unique violations", func(t *testing.T) {
		assert.True(t, duplicateKey(gorm.ErrDuplicatedKey))
		assert.True(t, duplicateKey(fmt.Errorf("apply repayment: %w", gorm.ErrDuplicatedKey)))
	})

	t.Run("ignores other storage errors", func(t *testing.T) {
		assert.False(t, duplicateKey(gorm.ErrRecordNotFound))
		assert.False(t, duplicateKey(errors.New("connection reset")))
		assert.False(t, duplicateKey(nil))
	})
}
