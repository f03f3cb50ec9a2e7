package multiples

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"

	"github.com/hmcts/et-multiples-api/databases"
	"github.com/hmcts/et-multiples-api/models"
)

// Transfer moves every open member case to another office in the same
// country. The multiple's managing office follows the transfer even when
// individual members fail, so a re-run only has the failures left to do.
func (s *Service) Transfer(ctx context.Context, country Country, multipleRef string, req models.TransferRequest) (*Result, error) {
	res, err := s.run(ctx, country, multipleRef, nil, &sameCountryTransferAction{
		office: req.TargetOffice,
		reason: req.Reason,
	})
	if err != nil {
		return nil, err
	}
	s.notify(multipleRef, "transfer", res)
	return res, nil
}

type sameCountryTransferAction struct {
	office string
	reason string
}

func (a *sameCountryTransferAction) name() string { return "transfer" }

func (a *sameCountryTransferAction) validate(ctx context.Context, r *bulkRun) []string {
	if !r.country.ValidOffice(a.office) {
		return []string{fmt.Sprintf("%s: office %q is not a tribunal office in %s", r.multiple.Details.MultipleReference, a.office, r.country)}
	}
	return nil
}

func (a *sameCountryTransferAction) apply(ctx context.Context, r *bulkRun, mc *memberCase) (bool, error) {
	if mc.Case.Details.State == models.StateClosed {
		return false, fmt.Errorf("case is closed and cannot be transferred")
	}
	if mc.Case.Details.ManagingOffice == a.office {
		// already at the target office, converge without a write
		return false, nil
	}
	mc.Case.Details.ManagingOffice = a.office
	if a.reason != "" {
		mc.Case.Details.TransferReason = a.reason
	}
	return true, nil
}

func (a *sameCountryTransferAction) finalize(ctx context.Context, r *bulkRun) {
	// the multiple follows the transfer even when members failed; the error
	// list tells the caseworker which cases still need a re-run
	r.multiple.Details.ManagingOffice = a.office
}

// TransferCountry moves member cases to the other jurisdiction. The origin
// cases are marked transferred out; companion counter-claims can be relinked
// so the pair stays navigable from the destination side.
func (s *Service) TransferCountry(ctx context.Context, country Country, multipleRef string, req models.TransferCountryRequest) (*Result, error) {
	res, err := s.run(ctx, country, multipleRef, nil, &countryTransferAction{
		target:    Country(req.TargetCountry),
		office:    req.TargetOffice,
		reason:    req.Reason,
		relinkECC: req.RelinkECC,
	})
	if err != nil {
		return nil, err
	}
	s.notify(multipleRef, "transfer-country", res)
	return res, nil
}

type countryTransferAction struct {
	target    Country
	office    string
	reason    string
	relinkECC bool
}

func (a *countryTransferAction) name() string { return "transfer-country" }

func (a *countryTransferAction) validate(ctx context.Context, r *bulkRun) []string {
	ref := r.multiple.Details.MultipleReference
	if a.target == r.country {
		return []string{fmt.Sprintf("%s: target country must differ from %s", ref, r.country)}
	}
	if _, err := ParseCountry(string(a.target)); err != nil {
		return []string{fmt.Sprintf("%s: %v", ref, err)}
	}
	if !a.target.ValidOffice(a.office) {
		return []string{fmt.Sprintf("%s: office %q is not a tribunal office in %s", ref, a.office, a.target)}
	}
	return nil
}

func (a *countryTransferAction) apply(ctx context.Context, r *bulkRun, mc *memberCase) (bool, error) {
	if mc.Case.Details.State == models.StateClosed {
		return false, fmt.Errorf("case is closed and cannot be transferred")
	}
	if mc.Case.Details.TransferredOut {
		// a previous partial run already moved this case
		return false, nil
	}

	ref := NormalizeRef(mc.Case.Details.CaseReference)
	mc.Case.Details.TransferredOut = true
	mc.Case.Details.TransferDest = string(a.target)
	mc.Case.Details.TransferDestOffice = a.office
	mc.Case.Details.TransferReason = a.reason
	mc.Case.Details.State = models.StateTransferred
	mc.Case.Details.PositionType = "Case transferred to other country"

	if a.relinkECC {
		a.relinkCompanion(ctx, r, mc.Case, ref)
	}

	mc.entry.TransferredOut = true
	return true, nil
}

// relinkCompanion re-points the employer counter-claim that names ref so the
// pair stays linked across the jurisdiction move. A missing companion is a
// note, not a failure.
func (a *countryTransferAction) relinkCompanion(ctx context.Context, r *bulkRun, c *models.SingleCase, ref string) {
	companion, err := r.svc.Singles.FindOne(ctx, bson.M{
		"case.country":      string(r.country),
		"case.counterClaim": ref,
	})
	if errors.Is(err, databases.ErrNotFound) {
		r.addError(ref, "no ECC companion case found to relink")
		return
	}
	if err != nil {
		r.addError(ref, "ECC companion lookup failed: %v", err)
		return
	}

	companion.Details.LinkedCaseRef = ref
	c.Details.LinkedCaseRef = NormalizeRef(companion.Details.CaseReference)
	if err := r.svc.Singles.UpdateVersioned(ctx, companion); err != nil {
		r.addError(ref, "ECC companion %s could not be relinked: %v", NormalizeRef(companion.Details.CaseReference), err)
		return
	}

	zap.S().Infow("ECC companion relinked",
		"caseReference", ref,
		"companion", NormalizeRef(companion.Details.CaseReference),
	)
}

func (a *countryTransferAction) finalize(ctx context.Context, r *bulkRun) {
	if r.svc.StripTransferred {
		// rebuild the ledger without the moved entries; the member slice
		// holds pointers into the old backing array and is not reused after
		// this point
		kept := make([]models.CaseIDEntry, 0, len(r.multiple.Details.CaseIDs))
		for _, e := range r.multiple.Details.CaseIDs {
			if e.TransferredOut {
				continue
			}
			kept = append(kept, e)
		}
		r.multiple.Details.CaseIDs = kept
		if r.multiple.Details.LeadCaseRef != "" && !r.ledger.Contains(r.multiple.Details.LeadCaseRef) {
			r.multiple.Details.LeadCaseRef = ""
		}
	}

	if len(r.ledger.ActiveRefs()) == 0 {
		r.multiple.Details.State = models.MultipleStateTransferred
	}
}
