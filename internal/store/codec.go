package store

import (
	"encoding/json"
	"fmt"

	"github.com/upsearch/upsearch/internal/directory"
)

// EncodeSite serializes a site record as indented JSON so on-disk documents
// stay human-readable and diffable.
func EncodeSite(site *directory.Site) ([]byte, error) {
	return json.MarshalIndent(site, "", "  ")
}

// DecodeSite parses a site document. It fails with an ErrDecode-wrapped error
// on malformed JSON or when required fields are absent.
func DecodeSite(data []byte) (*directory.Site, error) {
	var site directory.Site
	if err := json.Unmarshal(data, &site); err != nil {
		return nil, fmt.Errorf("%w: %v", directory.ErrDecode, err)
	}

	if site.ID == "" || site.URL == "" || site.Title == "" {
		return nil, fmt.Errorf("%w: site document missing required fields", directory.ErrDecode)
	}

	return &site, nil
}

// EncodeReport serializes a report record as indented JSON.
func EncodeReport(report *directory.Report) ([]byte, error) {
	return json.MarshalIndent(report, "", "  ")
}

// DecodeReport parses a report document. It fails with an ErrDecode-wrapped
// error on malformed JSON or when required fields are absent.
func DecodeReport(data []byte) (*directory.Report, error) {
	var report directory.Report
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("%w: %v", directory.ErrDecode, err)
	}

	if report.ID == "" || report.URL == "" || report.Reason == "" {
		return nil, fmt.Errorf("%w: report document missing required fields", directory.ErrDecode)
	}

	return &report, nil
}
