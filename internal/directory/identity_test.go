package directory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/upsearch/upsearch/internal/directory"
)

func TestIdentityOf(t *testing.T) {
	t.Run("is deterministic", func(t *testing.T) {
		a := directory.IdentityOf("https://example.com")
		b := directory.IdentityOf("https://example.com")

		assert.Equal(t, a, b)
		assert.NotEmpty(t, a)
	})

	t.Run("distinguishes trailing slash", func(t *testing.T) {
		a := directory.IdentityOf("https://example.com")
		b := directory.IdentityOf("https://example.com/")

		assert.NotEqual(t, a, b)
	})

	t.Run("is case sensitive", func(t *testing.T) {
		a := directory.IdentityOf("https://Example.com")
		b := directory.IdentityOf("https://example.com")

		assert.NotEqual(t, a, b)
	})
}
