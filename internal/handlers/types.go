package handlers

import "time"

// SubmitSiteRequest is the request body for indexing a new website. The
// Website field is a honeypot: legitimate clients leave it empty.
type SubmitSiteRequest struct {
	Body struct {
		URL         string `doc:"The full URL of the website"                 example:"https://example.com"                json:"url"`
		Title       string `doc:"Website title, up to 100 characters"        example:"My Awesome Website"                 json:"title"`
		Description string `doc:"Website description, up to 500 characters"  example:"A site about interesting things."   json:"description"`
		Category    string `doc:"One of the listed categories"               example:"Technology"                         json:"category"`
		Screenshot  string `doc:"Optional screenshot URL"                    example:"https://example.com/screenshot.png" json:"screenshot,omitempty"`
		Website     string `doc:"Leave this field empty"                     json:"website,omitempty"`
	}
}

// SubmitSiteResponse is the response for a successfully indexed website.
type SubmitSiteResponse struct {
	Body struct {
		ID     string `doc:"Content-derived site identity" json:"id"`
		URL    string `doc:"The indexed URL"               json:"url"`
		Title  string `doc:"The indexed title"             json:"title"`
		Status string `doc:"Record status"                 json:"status"`
	}
}

// SiteItem is one site in search or browse results.
type SiteItem struct {
	ID          string    `json:"id"`
	URL         string    `json:"url"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Screenshot  string    `json:"screenshot,omitempty"`
	SubmittedAt time.Time `json:"submittedAt"`
}

// SearchRequest is the request for querying the index.
type SearchRequest struct {
	Query string `doc:"Search query" example:"tech" query:"q" required:"true"`
}

// SearchResultItem is one ranked search hit.
type SearchResultItem struct {
	SiteItem
	Score int `json:"score"`
}

// SearchResponse is the ranked result list for one query.
type SearchResponse struct {
	Body struct {
		Query   string             `json:"query"`
		Count   int                `json:"count"`
		Results []SearchResultItem `json:"results"`
	}
}

// BrowseRequest is the request for listing indexed sites.
type BrowseRequest struct {
	Category string `doc:"Filter by category"                      example:"Technology" query:"category"`
	Sort     string `doc:"Sort order"                              enum:"newest,oldest,title" query:"sort"`
}

// BrowseResponse lists indexed sites with the categories present in the index.
type BrowseResponse struct {
	Body struct {
		Count      int        `json:"count"`
		Categories []string   `json:"categories"`
		Sites      []SiteItem `json:"sites"`
	}
}

// FileReportRequest is the request body for reporting a website. The Website
// field is the same honeypot as on submission.
type FileReportRequest struct {
	Body struct {
		URL     string `doc:"The URL being reported"              example:"https://example.com" json:"url"`
		Reason  string `doc:"One of the listed report reasons"    example:"Spam"                json:"reason"`
		Details string `doc:"Optional details, up to 1000 chars"  json:"details,omitempty"`
		Website string `doc:"Leave this field empty"              json:"website,omitempty"`
	}
}

// FileReportResponse acknowledges a filed report.
type FileReportResponse struct {
	Body struct {
		ID     string `doc:"Report id"     json:"id"`
		Status string `doc:"Report status" json:"status"`
	}
}
