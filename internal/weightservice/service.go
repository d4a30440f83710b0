// Package weightservice implements the per-user weight log: a profile plus
// at most one dated record per calendar day, newest first.
package weightservice

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/starford/notetodo/internal/apperr"
	"github.com/starford/notetodo/internal/models"
	"github.com/starford/notetodo/internal/store"
	"github.com/starford/notetodo/pkg/idx"
)

// ProfileInput carries the fields of an upsert. Nil fields keep their current
// value. A non-nil Records replaces every record of the aggregate.
type ProfileInput struct {
	Height    *float64
	Weight    *float64
	Age       *int
	Gender    *string
	StartDate *time.Time
	Records   *[]RecordInput
}

// RecordInput is one measurement to log. Date and Weight are required.
type RecordInput struct {
	Date   *time.Time
	Weight *float64
	Note   *string
}

// Service manages weight aggregates.
type Service struct {
	repo store.Repository
	loc  *time.Location
	now  func() time.Time
}

// NewService creates a weight service. Calendar days are evaluated in loc; nil means UTC.
func NewService(repo store.Repository, loc *time.Location) *Service {
	if loc == nil {
		loc = time.UTC
	}
	return &Service{repo: repo, loc: loc, now: time.Now}
}

// Get returns the aggregate of ownerID, or nil when none exists.
func (s *Service) Get(ctx context.Context, ownerID string) (*models.Weight, error) {
	w, err := s.repo.GetWeight(ctx, ownerID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &w, nil
}

// UpsertProfile creates the aggregate or replaces the supplied profile and
// record fields.
func (s *Service) UpsertProfile(ctx context.Context, ownerID string, in *ProfileInput) (models.Weight, error) {
	if in == nil {
		return models.Weight{}, apperr.BadRequest("profile is required")
	}
	now := s.now().UTC()

	w, err := s.repo.GetWeight(ctx, ownerID)
	switch {
	case errors.Is(err, store.ErrNotFound):
		w = models.Weight{
			ID:        idx.NewAt(now),
			Owner:     ownerID,
			Profile:   models.WeightProfile{StartDate: now},
			Records:   []models.WeightRecord{},
			CreatedAt: now,
		}
	case err != nil:
		return models.Weight{}, err
	}

	mergeProfile(&w.Profile, in)
	if err := validateProfile(w.Profile); err != nil {
		return models.Weight{}, err
	}
	if in.Records != nil {
		records := make([]models.WeightRecord, 0, len(*in.Records))
		for i, r := range *in.Records {
			if err := validateRecord(r); err != nil {
				return models.Weight{}, apperr.BadRequest(fmt.Sprintf("records[%d]: %s", i, apperr.Message(err)))
			}
			records = s.putRecord(records, r)
		}
		w.Records = records
	}
	w.UpdatedAt = now
	if err := s.repo.SaveWeight(ctx, w); err != nil {
		return models.Weight{}, fmt.Errorf("save weight: %w", err)
	}
	return w, nil
}

// AddRecord logs a measurement. A record on the same calendar day is
// overwritten in place; the note is only replaced when one is supplied.
func (s *Service) AddRecord(ctx context.Context, ownerID string, in RecordInput) (models.Weight, error) {
	if err := validateRecord(in); err != nil {
		return models.Weight{}, err
	}
	w, err := s.repo.GetWeight(ctx, ownerID)
	if errors.Is(err, store.ErrNotFound) {
		return models.Weight{}, apperr.NotFound("create a weight profile first")
	}
	if err != nil {
		return models.Weight{}, err
	}

	w.Records = s.putRecord(w.Records, in)
	w.UpdatedAt = s.now().UTC()
	if err := s.repo.SaveWeight(ctx, w); err != nil {
		return models.Weight{}, fmt.Errorf("save weight: %w", err)
	}
	return w, nil
}

// putRecord merges in into records by calendar day and keeps them newest first.
// in must have passed validateRecord.
func (s *Service) putRecord(records []models.WeightRecord, in RecordInput) []models.WeightRecord {
	date := in.Date.UTC()
	day := s.day(date)
	found := false
	for i := range records {
		if s.day(records[i].Date) != day {
			continue
		}
		records[i].Weight = *in.Weight
		if in.Note != nil && strings.TrimSpace(*in.Note) != "" {
			records[i].Note = *in.Note
		}
		found = true
		break
	}
	if !found {
		rec := models.WeightRecord{ID: idx.New(), Date: date, Weight: *in.Weight}
		if in.Note != nil {
			rec.Note = *in.Note
		}
		records = append(records, rec)
	}
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Date.After(records[j].Date)
	})
	return records
}

// DeleteRecord removes one record by id.
func (s *Service) DeleteRecord(ctx context.Context, ownerID, recordID string) (models.Weight, error) {
	w, err := s.repo.GetWeight(ctx, ownerID)
	if errors.Is(err, store.ErrNotFound) {
		return models.Weight{}, apperr.NotFound("weight data not found")
	}
	if err != nil {
		return models.Weight{}, err
	}
	at := -1
	for i, r := range w.Records {
		if r.ID == recordID {
			at = i
			break
		}
	}
	if at < 0 {
		return models.Weight{}, apperr.NotFound("record not found")
	}
	w.Records = append(w.Records[:at], w.Records[at+1:]...)
	w.UpdatedAt = s.now().UTC()
	if err := s.repo.SaveWeight(ctx, w); err != nil {
		return models.Weight{}, fmt.Errorf("save weight: %w", err)
	}
	return w, nil
}

// Reset deletes the aggregate of ownerID. Resetting twice is not an error.
func (s *Service) Reset(ctx context.Context, ownerID string) error {
	return s.repo.DeleteWeight(ctx, ownerID)
}

// day formats t as the calendar day in the service's location.
func (s *Service) day(t time.Time) string {
	return t.In(s.loc).Format(time.DateOnly)
}

func mergeProfile(p *models.WeightProfile, in *ProfileInput) {
	if in.Height != nil {
		p.Height = *in.Height
	}
	if in.Weight != nil {
		p.Weight = *in.Weight
	}
	if in.Age != nil {
		p.Age = *in.Age
	}
	if in.Gender != nil {
		p.Gender = strings.ToLower(strings.TrimSpace(*in.Gender))
	}
	if in.StartDate != nil {
		p.StartDate = in.StartDate.UTC()
	}
}

func validateRecord(in RecordInput) error {
	if in.Date == nil || in.Weight == nil || *in.Weight <= 0 {
		return apperr.BadRequest("date and weight are required")
	}
	return nil
}

func validateProfile(p models.WeightProfile) error {
	err := validation.ValidateStruct(&p,
		validation.Field(&p.Height, validation.Required, validation.Min(0.0).Exclusive()),
		validation.Field(&p.Weight, validation.Required, validation.Min(0.0).Exclusive()),
		validation.Field(&p.Age, validation.Required, validation.Min(1)),
		validation.Field(&p.Gender, validation.Required, validation.In(models.GenderMale, models.GenderFemale)),
	)
	if err != nil {
		return apperr.BadRequest(err.Error())
	}
	return nil
}
