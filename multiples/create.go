package multiples

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/samber/lo"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/hmcts/et-multiples-api/databases"
	"github.com/hmcts/et-multiples-api/models"
)

// Create builds a new multiple from a batch of candidate case references.
// Candidates that do not exist, or that another multiple already claims, are
// excluded with a per-case error; the multiple is created from the rest.
func (s *Service) Create(ctx context.Context, country Country, req models.CreateMultipleRequest) (*Result, error) {
	result := &Result{}

	source := req.Source
	if source == "" {
		source = models.SourceManual
	}

	m := &models.Multiple{
		ID: primitive.NewObjectID().Hex(),
		Details: models.MultipleDetails{
			Name:    req.Name,
			Country: string(country),
			Source:  source,
			State:   models.MultipleStateOpen,
		},
	}
	for _, name := range req.SubMultiples {
		m.Details.SubMultiples = append(m.Details.SubMultiples, models.SubMultiple{Name: name})
	}

	ledger := NewLedger(m)
	var accepted []*models.SingleCase
	for _, candidate := range req.CaseRefs {
		ref := NormalizeRef(candidate)
		if ledger.Contains(ref) {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: duplicate candidate, listed once", ref))
			continue
		}

		c, err := s.Singles.FindByReference(ctx, string(country), ref)
		if errors.Is(err, databases.ErrNotFound) {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: case not found in case store", ref))
			continue
		}
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: case could not be fetched: %v", ref, err))
			continue
		}
		if c.Details.MultipleReference != "" {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: already assigned to multiple %s", ref, c.Details.MultipleReference))
			continue
		}

		if err := ledger.Add(ref, ""); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", ref, err))
			continue
		}
		accepted = append(accepted, c)
	}

	multipleRef, err := s.nextMultipleReference(ctx, country)
	if err != nil {
		return nil, err
	}
	m.Details.MultipleReference = multipleRef

	if req.LeadCaseRef != "" {
		lead := NormalizeRef(req.LeadCaseRef)
		if ledger.Contains(lead) {
			m.Details.LeadCaseRef = lead
		} else {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: lead case is not a member, using first entry", lead))
		}
	}
	if len(accepted) > 0 {
		m.Details.ManagingOffice = accepted[0].Details.ManagingOffice
	}

	if err := s.Multiples.InsertOne(ctx, m); err != nil {
		return nil, err
	}

	// link each member back to the new multiple; a failed link is reported
	// and left for the fix action rather than unwinding the whole batch
	for _, c := range accepted {
		c.Details.MultipleReference = multipleRef
		c.Details.PositionType = "Case within a multiple"
		if err := s.Singles.UpdateVersioned(ctx, c); err != nil {
			ref := NormalizeRef(c.Details.CaseReference)
			if errors.Is(err, databases.ErrVersionConflict) {
				result.Errors = append(result.Errors, fmt.Sprintf("%s: case was updated by another user, run fix to re-link", ref))
			} else {
				result.Errors = append(result.Errors, fmt.Sprintf("%s: case link failed: %v", ref, err))
			}
			continue
		}
		result.Processed = append(result.Processed, NormalizeRef(c.Details.CaseReference))
	}

	m.Details.Errors = truncateErrors(result.Errors, s.MaxStoredErrors)
	if err := s.Multiples.UpdateVersioned(ctx, m); err != nil {
		return nil, err
	}

	zap.S().Infow("multiple created",
		"multipleReference", multipleRef,
		"country", country,
		"members", len(result.Processed),
		"errors", len(result.Errors),
	)

	result.Multiple = m
	return result, nil
}

// nextMultipleReference mints the next reference for the jurisdiction:
// country prefix, zero-padded sequence, filing year.
func (s *Service) nextMultipleReference(ctx context.Context, country Country) (string, error) {
	seq, err := s.Counters.NextSequence(ctx, "multiples-"+string(country))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s%04d/%d", country.ReferencePrefix(), seq, time.Now().Year()), nil
}

// AmendCases adds the given case references to an existing multiple. Each
// rejected candidate gets a per-case error; accepted candidates are linked
// back to the multiple.
func (s *Service) AmendCases(ctx context.Context, country Country, multipleRef string, req models.AmendCasesRequest) (*Result, error) {
	m, err := s.Multiples.FindByReference(ctx, string(country), multipleRef)
	if err != nil {
		return nil, err
	}

	result := &Result{}
	ledger := NewLedger(m)

	for _, candidate := range req.CaseRefs {
		ref := NormalizeRef(candidate)
		if ledger.Contains(ref) {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: already part of this multiple", ref))
			continue
		}

		c, err := s.Singles.FindByReference(ctx, string(country), ref)
		if errors.Is(err, databases.ErrNotFound) {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: case not found in case store", ref))
			continue
		}
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: case could not be fetched: %v", ref, err))
			continue
		}
		if c.Details.MultipleReference != "" && c.Details.MultipleReference != m.Details.MultipleReference {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: already assigned to multiple %s", ref, c.Details.MultipleReference))
			continue
		}

		if err := ledger.Add(ref, req.SubMultiple); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", ref, err))
			continue
		}

		c.Details.MultipleReference = m.Details.MultipleReference
		c.Details.PositionType = "Case within a multiple"
		if err := s.Singles.UpdateVersioned(ctx, c); err != nil {
			if errors.Is(err, databases.ErrVersionConflict) {
				result.Errors = append(result.Errors, fmt.Sprintf("%s: case was updated by another user, run fix to re-link", ref))
			} else {
				result.Errors = append(result.Errors, fmt.Sprintf("%s: case link failed: %v", ref, err))
			}
			continue
		}
		result.Processed = append(result.Processed, ref)
	}

	m.Details.Errors = truncateErrors(result.Errors, s.MaxStoredErrors)
	if err := s.Multiples.UpdateVersioned(ctx, m); err != nil {
		return nil, err
	}

	result.Multiple = m
	return result, nil
}

// RemoveCases drops ledger entries. The member cases themselves keep their
// multiple reference: unlinking is a separate, separately-audited action.
func (s *Service) RemoveCases(ctx context.Context, country Country, multipleRef string, req models.RemoveCasesRequest) (*Result, error) {
	m, err := s.Multiples.FindByReference(ctx, string(country), multipleRef)
	if err != nil {
		return nil, err
	}

	result := &Result{}
	ledger := NewLedger(m)

	missing := map[string]bool{}
	for _, ref := range ledger.Remove(req.CaseRefs) {
		missing[ref] = true
		result.Errors = append(result.Errors, fmt.Sprintf("%s: not a member of this multiple", ref))
	}
	for _, r := range lo.Uniq(lo.Map(req.CaseRefs, func(r string, _ int) string { return NormalizeRef(r) })) {
		if !missing[r] {
			result.Processed = append(result.Processed, r)
		}
	}

	m.Details.Errors = truncateErrors(result.Errors, s.MaxStoredErrors)
	if err := s.Multiples.UpdateVersioned(ctx, m); err != nil {
		return nil, err
	}

	result.Multiple = m
	return result, nil
}

// MoveSubMultiple relabels member entries to a registered sub-multiple
func (s *Service) MoveSubMultiple(ctx context.Context, country Country, multipleRef string, req models.SubMultipleRequest) (*Result, error) {
	m, err := s.Multiples.FindByReference(ctx, string(country), multipleRef)
	if err != nil {
		return nil, err
	}

	result := &Result{}
	ledger := NewLedger(m)

	moveErrs := ledger.Relabel(req.CaseRefs, req.SubMultiple)
	result.Errors = append(result.Errors, moveErrs...)

	failed := map[string]bool{}
	for _, e := range moveErrs {
		if i := strings.Index(e, ":"); i > 0 {
			failed[e[:i]] = true
		}
	}
	for _, r := range lo.Uniq(lo.Map(req.CaseRefs, func(r string, _ int) string { return NormalizeRef(r) })) {
		if !failed[r] {
			result.Processed = append(result.Processed, r)
		}
	}

	m.Details.Errors = truncateErrors(result.Errors, s.MaxStoredErrors)
	if err := s.Multiples.UpdateVersioned(ctx, m); err != nil {
		return nil, err
	}

	result.Multiple = m
	return result, nil
}

// GetMultiple fetches a multiple by reference
func (s *Service) GetMultiple(ctx context.Context, country Country, multipleRef string) (*models.Multiple, error) {
	return s.Multiples.FindByReference(ctx, string(country), multipleRef)
}
