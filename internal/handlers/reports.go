package handlers

import (
	"context"
	"errors"
	"strings"

	"github.com/danielgtaylor/huma/v2"
	"github.com/upsearch/upsearch/internal/analytics"
	"github.com/upsearch/upsearch/internal/directory"
	"github.com/upsearch/upsearch/internal/messaging"
	"go.uber.org/zap"
)

// ReportHandler handles abuse report intake.
type ReportHandler struct {
	reports            directory.ReportRepository
	publishReportFiled messaging.Publish[analytics.ReportFiledEvent]
	logger             *zap.Logger
}

// NewReportHandler creates a new report handler.
func NewReportHandler(
	reports directory.ReportRepository,
	publishReportFiled messaging.Publish[analytics.ReportFiledEvent],
	logger *zap.Logger,
) *ReportHandler {
	return &ReportHandler{
		reports:            reports,
		publishReportFiled: publishReportFiled,
		logger:             logger,
	}
}

func (h *ReportHandler) FileReport(ctx context.Context, req *FileReportRequest) (*FileReportResponse, error) {
	if req.Body.Website != "" {
		return nil, huma.Error422UnprocessableEntity("spam detected")
	}

	meta := RequestMetaFromContext(ctx)

	candidate := directory.ReportSubmission{
		URL:     strings.TrimSpace(req.Body.URL),
		Reason:  strings.TrimSpace(req.Body.Reason),
		Details: req.Body.Details,
	}

	report, err := h.reports.Submit(ctx, candidate, meta.ClientIP)
	if err != nil {
		if errors.Is(err, directory.ErrValidation) {
			return nil, huma.Error422UnprocessableEntity(err.Error())
		}

		h.logger.Error("report submission failed",
			zap.String("requestId", meta.RequestID),
			zap.Error(err),
		)

		return nil, huma.Error500InternalServerError("failed to save report")
	}

	event := &analytics.ReportFiledEvent{
		ReportID:   report.ID,
		URL:        report.URL,
		Reason:     report.Reason,
		Details:    report.Details,
		ReportedAt: report.ReportedAt,
		ClientIP:   meta.ClientIP,
	}

	if err := h.publishReportFiled(event); err != nil {
		h.logger.Error("failed to publish report filed event",
			zap.String("reportId", event.ReportID),
			zap.Error(err),
		)
	}

	resp := &FileReportResponse{}
	resp.Body.ID = report.ID
	resp.Body.Status = string(directory.ReportStatusPending)

	return resp, nil
}
