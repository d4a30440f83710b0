package client

import (
	"context"
	"net/http"
	"net/url"
)

// GetWeights returns the weight log. Data is nil when none exists yet.
func (s *Session) GetWeights(ctx context.Context) (*Envelope[*Weight], error) {
	return authCall[*Weight](ctx, s, http.MethodGet, "/weights", nil, http.StatusOK)
}

// UpsertProfile creates the weight log or changes its profile. Records are kept.
func (s *Session) UpsertProfile(ctx context.Context, in ProfileInput) (*Envelope[Weight], error) {
	return authCall[Weight](ctx, s, http.MethodPost, "/weights", weightRequest{Profile: in}, http.StatusOK)
}

// ReplaceWeights upserts the profile and replaces every record with records.
// Records on the same calendar day are collapsed into one.
func (s *Session) ReplaceWeights(ctx context.Context, profile ProfileInput, records []RecordInput) (*Envelope[Weight], error) {
	if records == nil {
		records = []RecordInput{}
	}
	body := weightRequest{Profile: profile, Records: &records}
	return authCall[Weight](ctx, s, http.MethodPost, "/weights", body, http.StatusOK)
}

// ResetWeights deletes the weight log.
func (s *Session) ResetWeights(ctx context.Context) (*Envelope[Empty], error) {
	return authCall[Empty](ctx, s, http.MethodDelete, "/weights", nil, http.StatusOK)
}

// AddRecord logs a measurement. A record on the same day is overwritten.
func (s *Session) AddRecord(ctx context.Context, in RecordInput) (*Envelope[Weight], error) {
	return authCall[Weight](ctx, s, http.MethodPost, "/weights/record", in, http.StatusOK)
}

// DeleteRecord removes one measurement by id and returns the updated log.
func (s *Session) DeleteRecord(ctx context.Context, id string) (*Envelope[Weight], error) {
	return authCall[Weight](ctx, s, http.MethodDelete, "/weights/record/"+url.PathEscape(id), nil, http.StatusOK)
}
