package multiples

import (
	"context"
	"errors"
	"fmt"

	"github.com/samber/lo"

	"github.com/hmcts/et-multiples-api/databases"
)

// RefreshFlags rebuilds the multiple's selection aggregates (offices, clerks
// and file locations in use across the members) and persists them. Individual
// member fetch failures exclude the case from the aggregates and append a
// warning instead of aborting.
func (s *Service) RefreshFlags(ctx context.Context, country Country, multipleRef string) (*Result, error) {
	m, err := s.Multiples.FindByReference(ctx, string(country), multipleRef)
	if err != nil {
		return nil, err
	}

	result := &Result{}
	var offices, clerks, locations []string

	ledger := NewLedger(m)
	for _, ref := range ledger.ActiveRefs() {
		c, err := s.Singles.FindByReference(ctx, string(country), ref)
		if errors.Is(err, databases.ErrNotFound) {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: case not found, excluded from selection lists", ref))
			continue
		}
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: case could not be fetched, excluded from selection lists", ref))
			continue
		}

		if c.Details.ManagingOffice != "" {
			offices = append(offices, c.Details.ManagingOffice)
		}
		if c.Details.Clerk != "" {
			clerks = append(clerks, c.Details.Clerk)
		}
		if c.Details.FileLocation != "" {
			locations = append(locations, c.Details.FileLocation)
		}
	}

	m.Details.OfficeFlags = lo.CountValues(offices)
	m.Details.ClerkFlags = lo.CountValues(clerks)
	m.Details.LocationFlags = lo.CountValues(locations)
	m.Details.Errors = truncateErrors(result.Errors, s.MaxStoredErrors)

	if err := s.Multiples.UpdateVersioned(ctx, m); err != nil {
		return nil, err
	}

	result.Multiple = m
	return result, nil
}
