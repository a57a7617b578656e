package store_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/upsearch/upsearch/internal/directory"
	"github.com/upsearch/upsearch/internal/store"
)

func TestDecodeSite(t *testing.T) {
	t.Run("round-trips an encoded site", func(t *testing.T) {
		site := &directory.Site{
			ID:          "abc",
			URL:         "https://example.com",
			Title:       "Example",
			Description: "An example website.",
			Category:    "Technology",
			SubmittedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
			SubmittedBy: "203.0.113.7",
			Status:      directory.SiteStatusPending,
		}

		data, err := store.EncodeSite(site)
		require.NoError(t, err)

		decoded, err := store.DecodeSite(data)

		require.NoError(t, err)
		assert.Equal(t, site, decoded)
	})

	t.Run("rejects malformed JSON", func(t *testing.T) {
		_, err := store.DecodeSite([]byte("{not json"))

		assert.ErrorIs(t, err, directory.ErrDecode)
	})

	t.Run("rejects a document without a title", func(t *testing.T) {
		_, err := store.DecodeSite([]byte(`{"id":"abc","url":"https://example.com"}`))

		assert.ErrorIs(t, err, directory.ErrDecode)
	})
}

func TestDecodeReport(t *testing.T) {
	t.Run("treats an absent status as pending", func(t *testing.T) {
		report, err := store.DecodeReport([]byte(`{"id":"r1","url":"https://bad.example","reason":"Spam"}`))

		require.NoError(t, err)
		assert.True(t, report.IsPending())
	})

	t.Run("rejects a document without a reason", func(t *testing.T) {
		_, err := store.DecodeReport([]byte(`{"id":"r1","url":"https://bad.example"}`))

		assert.ErrorIs(t, err, directory.ErrDecode)
	})
}
