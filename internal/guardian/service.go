// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package guardian allocates Scroll IDs to registrants and serves lookups.

Allocation:

Scroll IDs are "SB-" plus a zero-padded ordinal. The ordinal comes from a
single-row sequence table incremented inside the same transaction that inserts
the guardian, so two registrations can never share an ordinal and a failed
insert gives its ordinal back.
*/
package guardian

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/taibuivan/syncbridge/internal/platform/apperr"
	"github.com/taibuivan/syncbridge/internal/platform/dberr"
	"github.com/taibuivan/syncbridge/internal/platform/validate"
)

// ErrNotFound is returned for an unknown email or Scroll ID.
var ErrNotFound = apperr.NotFound("Guardian")

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

/*
Register returns the guardian for email, creating it on first use.

Repeat registrations are not errors: the existing guardian comes back
unchanged with created=false.

Parameters:
  - context: context.Context
  - email: string (Trimmed and case-folded before use)

Returns:
  - *Guardian: The new or existing guardian
  - bool: true when this call created the guardian
  - error: ValidationError for a malformed address, or a storage failure
*/
func (service *Service) Register(context context.Context, email string) (*Guardian, bool, error) {
	email = validate.NormalizeEmail(email)

	// ── 1. Validation ────────────────────────────────────────────────────
	validator := &validate.Validator{}
	validator.Required(FieldEmail, email).MaxLen(FieldEmail, email, maxEmailLength)
	if email != "" {
		validator.Email(FieldEmail, email)
	}
	if err := validator.Err(); err != nil {
		return nil, false, err
	}

	// ── 2. Idempotent Return ─────────────────────────────────────────────
	existing, err := service.repo.FindByEmail(context, email)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, dberr.ErrNotFound) {
		return nil, false, err
	}

	// ── 3. Allocation ────────────────────────────────────────────────────
	guardian := &Guardian{
		Email:        email,
		IsCertified:  true,
		RegisteredAt: service.now().UTC().Truncate(time.Microsecond),
	}

	if err := service.repo.Create(context, guardian); err != nil {
		// A concurrent registration of the same email won the race.
		if errors.Is(err, dberr.ErrDuplicate) {
			winner, lookupErr := service.repo.FindByEmail(context, email)
			if lookupErr != nil {
				return nil, false, lookupErr
			}
			return winner, false, nil
		}
		return nil, false, err
	}

	service.logger.Info("guardian_registered",
		slog.String("scroll_id", guardian.ScrollID),
		slog.Int("ordinal", guardian.Ordinal),
	)
	return guardian, true, nil
}

// Lookup finds a guardian by email.
func (service *Service) Lookup(context context.Context, email string) (*Guardian, error) {
	email = validate.NormalizeEmail(email)
	if email == "" {
		return nil, validate.RequiredError(FieldEmail, "This field is required")
	}
	return service.notFound(service.repo.FindByEmail(context, email))
}

// LookupByScrollID finds a guardian by Scroll ID, ignoring case.
func (service *Service) LookupByScrollID(context context.Context, scrollID string) (*Guardian, error) {
	scrollID = NormalizeScrollID(scrollID)
	if scrollID == "" {
		return nil, validate.RequiredError(FieldScrollID, "This field is required")
	}
	return service.notFound(service.repo.FindByScrollID(context, scrollID))
}

// VerifyScrollID resolves a Scroll ID to its canonical form. The order
// ledger calls it before accepting a submission.
func (service *Service) VerifyScrollID(context context.Context, scrollID string) (string, error) {
	guardian, err := service.LookupByScrollID(context, scrollID)
	if err != nil {
		return "", err
	}
	return guardian.ScrollID, nil
}

func (service *Service) Count(context context.Context) (int, error) {
	return service.repo.Count(context)
}

// Registry lists all guardians in Scroll ID order.
func (service *Service) Registry(context context.Context) ([]*Guardian, error) {
	guardians, err := service.repo.List(context)
	if err != nil {
		return nil, err
	}
	if guardians == nil {
		guardians = []*Guardian{}
	}
	return guardians, nil
}

// Certificate builds the certificate view for a Scroll ID.
func (service *Service) Certificate(context context.Context, scrollID string) (*Certificate, error) {
	guardian, err := service.LookupByScrollID(context, scrollID)
	if err != nil {
		return nil, err
	}

	return &Certificate{
		ScrollID:         guardian.ScrollID,
		RegisteredAt:     guardian.RegisteredAt,
		IsCertified:      guardian.IsCertified,
		CertificateTitle: CertificateTitle,
		Organization:     Organization,
		Mission:          fmt.Sprintf("%d-Day Crossing", service.totalDays),
	}, nil
}

// notFound swaps the generic storage miss for the guardian-specific error.
func (service *Service) notFound(guardian *Guardian, err error) (*Guardian, error) {
	if errors.Is(err, dberr.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return guardian, nil
}
