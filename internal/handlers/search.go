package handlers

import (
	"context"

	"github.com/danielgtaylor/huma/v2"
	"github.com/upsearch/upsearch/internal/directory"
	"github.com/upsearch/upsearch/internal/search"
	"go.uber.org/zap"
)

// SearchHandler handles index queries.
type SearchHandler struct {
	sites  directory.SiteRepository
	logger *zap.Logger
}

// NewSearchHandler creates a new search handler.
func NewSearchHandler(sites directory.SiteRepository, logger *zap.Logger) *SearchHandler {
	return &SearchHandler{
		sites:  sites,
		logger: logger,
	}
}

func (h *SearchHandler) Search(ctx context.Context, req *SearchRequest) (*SearchResponse, error) {
	sites, err := h.sites.All(ctx)
	if err != nil {
		h.logger.Error("failed to enumerate sites", zap.Error(err))

		return nil, huma.Error500InternalServerError("failed to search")
	}

	ranked := search.Rank(sites, req.Query)

	resp := &SearchResponse{}
	resp.Body.Query = req.Query
	resp.Body.Count = len(ranked)
	resp.Body.Results = make([]SearchResultItem, 0, len(ranked))

	for _, result := range ranked {
		resp.Body.Results = append(resp.Body.Results, SearchResultItem{
			SiteItem: toSiteItem(&result.Site),
			Score:    result.Score,
		})
	}

	return resp, nil
}
