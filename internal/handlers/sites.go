package handlers

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/danielgtaylor/huma/v2"
	"github.com/upsearch/upsearch/internal/analytics"
	"github.com/upsearch/upsearch/internal/directory"
	"github.com/upsearch/upsearch/internal/messaging"
	"go.uber.org/zap"
)

// SiteHandler handles website submission and browsing.
type SiteHandler struct {
	sites                directory.SiteRepository
	publishSiteSubmitted messaging.Publish[analytics.SiteSubmittedEvent]
	logger               *zap.Logger
}

// NewSiteHandler creates a new site handler.
func NewSiteHandler(
	sites directory.SiteRepository,
	publishSiteSubmitted messaging.Publish[analytics.SiteSubmittedEvent],
	logger *zap.Logger,
) *SiteHandler {
	return &SiteHandler{
		sites:                sites,
		publishSiteSubmitted: publishSiteSubmitted,
		logger:               logger,
	}
}

func (h *SiteHandler) SubmitSite(ctx context.Context, req *SubmitSiteRequest) (*SubmitSiteResponse, error) {
	if req.Body.Website != "" {
		return nil, huma.Error422UnprocessableEntity("spam detected")
	}

	meta := RequestMetaFromContext(ctx)

	candidate := directory.SiteSubmission{
		URL:         strings.TrimSpace(req.Body.URL),
		Title:       req.Body.Title,
		Description: req.Body.Description,
		Category:    strings.TrimSpace(req.Body.Category),
		Screenshot:  strings.TrimSpace(req.Body.Screenshot),
	}

	site, err := h.sites.Submit(ctx, candidate, meta.ClientIP)
	if err != nil {
		var cooldown *directory.CooldownError

		switch {
		case errors.Is(err, directory.ErrValidation):
			return nil, huma.Error422UnprocessableEntity(err.Error())
		case errors.As(err, &cooldown):
			return nil, huma.Error429TooManyRequests(cooldown.Error())
		case errors.Is(err, directory.ErrDuplicateURL):
			return nil, huma.Error409Conflict(err.Error())
		default:
			h.logger.Error("site submission failed",
				zap.String("requestId", meta.RequestID),
				zap.Error(err),
			)

			return nil, huma.Error500InternalServerError("failed to save submission")
		}
	}

	event := &analytics.SiteSubmittedEvent{
		SiteID:      string(site.ID),
		URL:         site.URL,
		Title:       site.Title,
		Description: site.Description,
		Category:    site.Category,
		SubmittedAt: site.SubmittedAt,
		ClientIP:    meta.ClientIP,
	}

	if err := h.publishSiteSubmitted(event); err != nil {
		h.logger.Error("failed to publish site submitted event",
			zap.String("siteId", event.SiteID),
			zap.Error(err),
		)
	}

	resp := &SubmitSiteResponse{}
	resp.Body.ID = string(site.ID)
	resp.Body.URL = site.URL
	resp.Body.Title = site.Title
	resp.Body.Status = string(site.Status)

	return resp, nil
}

func (h *SiteHandler) BrowseSites(ctx context.Context, req *BrowseRequest) (*BrowseResponse, error) {
	sites, err := h.sites.All(ctx)
	if err != nil {
		h.logger.Error("failed to enumerate sites", zap.Error(err))

		return nil, huma.Error500InternalServerError("failed to list sites")
	}

	categories := collectCategories(sites)

	if req.Category != "" && req.Category != "all" {
		filtered := sites[:0]

		for _, site := range sites {
			if site.Category == req.Category {
				filtered = append(filtered, site)
			}
		}

		sites = filtered
	}

	switch req.Sort {
	case "oldest":
		sort.SliceStable(sites, func(i, j int) bool {
			return sites[i].SubmittedAt.Before(sites[j].SubmittedAt)
		})
	case "title":
		sort.SliceStable(sites, func(i, j int) bool {
			return strings.ToLower(sites[i].Title) < strings.ToLower(sites[j].Title)
		})
	default: // newest
		sort.SliceStable(sites, func(i, j int) bool {
			return sites[j].SubmittedAt.Before(sites[i].SubmittedAt)
		})
	}

	resp := &BrowseResponse{}
	resp.Body.Count = len(sites)
	resp.Body.Categories = categories
	resp.Body.Sites = make([]SiteItem, 0, len(sites))

	for _, site := range sites {
		resp.Body.Sites = append(resp.Body.Sites, toSiteItem(&site))
	}

	return resp, nil
}

func collectCategories(sites []directory.Site) []string {
	seen := make(map[string]bool)
	categories := make([]string, 0)

	for _, site := range sites {
		if !seen[site.Category] {
			seen[site.Category] = true
			categories = append(categories, site.Category)
		}
	}

	sort.Strings(categories)

	return categories
}

func toSiteItem(site *directory.Site) SiteItem {
	return SiteItem{
		ID:          string(site.ID),
		URL:         site.URL,
		Title:       site.Title,
		Description: site.Description,
		Category:    site.Category,
		Screenshot:  site.Screenshot,
		SubmittedAt: site.SubmittedAt,
	}
}
