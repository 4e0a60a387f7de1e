// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package transmission manages the daily content calendar.

Each day of the mission holds at most one transmission. Reads are public;
writes are mounted behind the admin gate.

Day uniqueness is checked before writing for a friendly error, and enforced by
a UNIQUE constraint that decides concurrent creates.
*/
package transmission

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/taibuivan/syncbridge/internal/platform/apperr"
	"github.com/taibuivan/syncbridge/internal/platform/dberr"
	"github.com/taibuivan/syncbridge/internal/platform/validate"
	"github.com/taibuivan/syncbridge/pkg/pointer"
	"github.com/taibuivan/syncbridge/pkg/uuid"
)

// ErrNotFound is returned for an unknown transmission id.
var ErrNotFound = apperr.NotFound("Transmission")

type Service struct {
	repo      Repository
	logger    *slog.Logger
	totalDays int
	now       func() time.Time
}

func NewService(repo Repository, logger *slog.Logger, totalDays int) *Service {
	return &Service{
		repo:      repo,
		logger:    logger,
		totalDays: totalDays,
		now:       time.Now,
	}
}

func (service *Service) List(context context.Context) ([]*Transmission, error) {
	transmissions, err := service.repo.List(context)
	if err != nil {
		return nil, err
	}
	if transmissions == nil {
		transmissions = []*Transmission{}
	}
	return transmissions, nil
}

// Latest returns the highest-day transmission, or nil when none exist.
func (service *Service) Latest(context context.Context) (*Transmission, error) {
	transmission, err := service.repo.Latest(context)
	if errors.Is(err, dberr.ErrNotFound) {
		return nil, nil
	}
	return transmission, err
}

func (service *Service) Get(context context.Context, id string) (*Transmission, error) {
	if !uuid.Valid(id) {
		return nil, ErrNotFound
	}
	transmission, err := service.repo.Get(context, id)
	if errors.Is(err, dberr.ErrNotFound) {
		return nil, ErrNotFound
	}
	return transmission, err
}

/*
Create validates input and stores a new transmission.

Returns:
  - *Transmission: The stored entry
  - error: ValidationError, Conflict when the day is taken, or a storage failure
*/
func (service *Service) Create(context context.Context, input Input) (*Transmission, error) {
	input = normalize(input)
	if err := service.validate(input); err != nil {
		return nil, err
	}

	if err := service.ensureDayFree(context, input.DayNumber, ""); err != nil {
		return nil, err
	}

	now := service.now().UTC().Truncate(time.Microsecond)
	transmission := &Transmission{
		ID:          uuid.New(),
		DayNumber:   input.DayNumber,
		Title:       input.Title,
		Description: input.Description,
		VideoURL:    input.VideoURL,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := service.repo.Create(context, transmission); err != nil {
		return nil, dayConflict(err, input.DayNumber)
	}

	service.logger.Info("transmission_created",
		slog.String("transmission_id", transmission.ID),
		slog.Int("day_number", transmission.DayNumber),
	)
	return transmission, nil
}

// Update replaces the editable fields of an existing transmission.
func (service *Service) Update(context context.Context, id string, input Input) (*Transmission, error) {
	if !uuid.Valid(id) {
		return nil, ErrNotFound
	}

	input = normalize(input)
	if err := service.validate(input); err != nil {
		return nil, err
	}

	if err := service.ensureDayFree(context, input.DayNumber, id); err != nil {
		return nil, err
	}

	transmission := &Transmission{
		ID:          id,
		DayNumber:   input.DayNumber,
		Title:       input.Title,
		Description: input.Description,
		VideoURL:    input.VideoURL,
		UpdatedAt:   service.now().UTC().Truncate(time.Microsecond),
	}

	if err := service.repo.Update(context, transmission); err != nil {
		if errors.Is(err, dberr.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, dayConflict(err, input.DayNumber)
	}

	service.logger.Info("transmission_updated",
		slog.String("transmission_id", transmission.ID),
		slog.Int("day_number", transmission.DayNumber),
	)
	return transmission, nil
}

func (service *Service) Delete(context context.Context, id string) error {
	if !uuid.Valid(id) {
		return ErrNotFound
	}

	if err := service.repo.Delete(context, id); err != nil {
		if errors.Is(err, dberr.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}

	service.logger.Warn("transmission_deleted", slog.String("transmission_id", id))
	return nil
}

// # Helpers

func normalize(input Input) Input {
	input.Title = strings.TrimSpace(input.Title)
	input.Description = strings.TrimSpace(input.Description)

	if videoURL := strings.TrimSpace(pointer.Val(input.VideoURL)); videoURL != "" {
		input.VideoURL = pointer.To(videoURL)
	} else {
		input.VideoURL = nil
	}
	return input
}

func (service *Service) validate(input Input) error {
	validator := &validate.Validator{}

	validator.Range(FieldDayNumber, input.DayNumber, 1, service.totalDays)
	validator.Required(FieldTitle, input.Title).MaxLen(FieldTitle, input.Title, maxTitleLength)
	validator.Required(FieldDescription, input.Description).MaxLen(FieldDescription, input.Description, maxDescriptionLength)
	validator.HTTPURL(FieldVideoURL, pointer.Val(input.VideoURL))

	return validator.Err()
}

func (service *Service) ensureDayFree(context context.Context, day int, excludeID string) error {
	taken, err := service.repo.DayTaken(context, day, excludeID)
	if err != nil {
		return err
	}
	if taken {
		return dayConflict(dberr.ErrDuplicate, day)
	}
	return nil
}

// dayConflict rewrites a unique violation as a day-specific Conflict.
func dayConflict(err error, day int) error {
	if errors.Is(err, dberr.ErrDuplicate) {
		return apperr.Conflict(fmt.Sprintf("Day %d already has a transmission", day))
	}
	return err
}
