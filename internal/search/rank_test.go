package search_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/upsearch/upsearch/internal/directory"
	"github.com/upsearch/upsearch/internal/search"
)

func site(url, title, description, category string) directory.Site {
	return directory.Site{
		ID:          directory.IdentityOf(url),
		URL:         url,
		Title:       title,
		Description: description,
		Category:    category,
	}
}

func TestScore(t *testing.T) {
	tests := []struct {
		name  string
		site  directory.Site
		query string
		want  int
	}{
		{
			name:  "title match",
			site:  site("https://a.example", "Tech Weekly", "news digest", "News"),
			query: "tech",
			want:  10,
		},
		{
			name:  "title and description match",
			site:  site("https://a.example", "Tech Weekly", "all about tech", "News"),
			query: "tech",
			want:  15,
		},
		{
			name:  "every field matches",
			site:  site("https://tech.example", "Tech Weekly", "all about tech", "Technology"),
			query: "tech",
			want:  20,
		},
		{
			name:  "url only",
			site:  site("https://tech.example", "Weekly", "news digest", "News"),
			query: "tech",
			want:  3,
		},
		{
			name:  "category only",
			site:  site("https://a.example", "Weekly", "news digest", "Technology"),
			query: "tech",
			want:  2,
		},
		{
			name:  "case-insensitive",
			site:  site("https://a.example", "TECH WEEKLY", "digest", "News"),
			query: "tech",
			want:  10,
		},
		{
			name:  "no match",
			site:  site("https://a.example", "Cooking", "recipes", "Food"),
			query: "tech",
			want:  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, search.Score(&tt.site, tt.query))
		})
	}
}

func TestRank(t *testing.T) {
	t.Run("orders by descending score and drops non-matches", func(t *testing.T) {
		sites := []directory.Site{
			site("https://a.example", "Tech Weekly", "news digest", "News"),            // 10
			site("https://tech.example", "Tech Daily", "news digest", "News"),          // 13
			site("https://cook.example", "Cooking", "recipes", "Food"),                 // 0
			site("https://b.example", "Weekly", "covers tech topics", "Technology"),    // 7
		}

		results := search.Rank(sites, "Tech")

		require.Len(t, results, 3)
		assert.Equal(t, "https://tech.example", results[0].Site.URL)
		assert.Equal(t, 13, results[0].Score)
		assert.Equal(t, "https://a.example", results[1].Site.URL)
		assert.Equal(t, 10, results[1].Score)
		assert.Equal(t, "https://b.example", results[2].Site.URL)
		assert.Equal(t, 7, results[2].Score)
	})

	t.Run("keeps input order on tied scores", func(t *testing.T) {
		sites := []directory.Site{
			site("https://first.example", "Tech One", "digest", "News"),
			site("https://second.example", "Tech Two", "digest", "News"),
			site("https://third.example", "Tech Three", "digest", "News"),
		}

		results := search.Rank(sites, "tech")

		require.Len(t, results, 3)
		assert.Equal(t, "https://first.example", results[0].Site.URL)
		assert.Equal(t, "https://second.example", results[1].Site.URL)
		assert.Equal(t, "https://third.example", results[2].Site.URL)
	})

	t.Run("returns nothing for an empty query", func(t *testing.T) {
		sites := []directory.Site{
			site("https://a.example", "Tech Weekly", "digest", "News"),
		}

		assert.Empty(t, search.Rank(sites, ""))
	})
}
