package handlers

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

// RegisterRoutes registers all public directory routes.
func RegisterRoutes(api huma.API, sites *SiteHandler, searches *SearchHandler, reports *ReportHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "submit-site",
		Method:      http.MethodPost,
		Path:        "/sites",
		Summary:     "Submit a website",
		Description: "Adds a website to the search index, subject to validation, per-address cooldown, and duplicate detection.",
		Tags:        []string{"Sites"},
	}, sites.SubmitSite)

	huma.Register(api, huma.Operation{
		OperationID: "browse-sites",
		Method:      http.MethodGet,
		Path:        "/sites",
		Summary:     "Browse indexed websites",
		Description: "Lists indexed websites with optional category filter and sort order.",
		Tags:        []string{"Sites"},
	}, sites.BrowseSites)

	huma.Register(api, huma.Operation{
		OperationID: "search-sites",
		Method:      http.MethodGet,
		Path:        "/search",
		Summary:     "Search the index",
		Description: "Returns sites ranked by weighted substring relevance.",
		Tags:        []string{"Search"},
	}, searches.Search)

	huma.Register(api, huma.Operation{
		OperationID: "file-report",
		Method:      http.MethodPost,
		Path:        "/reports",
		Summary:     "Report a website",
		Description: "Files an abuse report against a URL for moderator review.",
		Tags:        []string{"Reports"},
	}, reports.FileReport)
}
