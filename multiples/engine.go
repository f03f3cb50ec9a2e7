package multiples

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/hmcts/et-multiples-api/databases"
	"github.com/hmcts/et-multiples-api/models"
)

// Run states of a bulk invocation. The state is derived per call and never
// persisted.
type runState string

const (
	stateLoaded              runState = "LOADED"
	stateValidated           runState = "VALIDATED"
	stateExecuting           runState = "EXECUTING"
	stateCompleted           runState = "COMPLETED"
	stateCompletedWithErrors runState = "COMPLETED_WITH_ERRORS"
)

// Result is the transient outcome of a bulk action
type Result struct {
	Processed     []string
	Errors        []string
	DocumentLinks []string
	Multiple      *models.Multiple
}

// memberCase is one ledger entry with its loaded single case. Case is nil
// when the load failed; the failure is already on the error list.
type memberCase struct {
	entry   *models.CaseIDEntry
	Case    *models.SingleCase
	applied bool
}

// bulkAction is one executable bulk operation. The engine owns loading,
// ordering, per-case write-back and the single final multiple write; actions
// own validation, the per-case mutation and the aggregate finalization.
type bulkAction interface {
	name() string
	// validate runs before any write; returned errors stop execution
	validate(ctx context.Context, r *bulkRun) []string
	// apply mutates one loaded member case and reports whether it changed
	apply(ctx context.Context, r *bulkRun, mc *memberCase) (bool, error)
	// finalize updates the multiple's aggregate fields after execution
	finalize(ctx context.Context, r *bulkRun)
}

// bulkRun carries the per-invocation state through the engine
type bulkRun struct {
	svc      *Service
	country  Country
	multiple *models.Multiple
	ledger   *Ledger
	members  []*memberCase
	subset   map[string]bool // nil means every member
	result   *Result
	state    runState
}

func (r *bulkRun) addError(caseRef, format string, args ...interface{}) {
	r.result.Errors = append(r.result.Errors, fmt.Sprintf("%s: %s", caseRef, fmt.Sprintf(format, args...)))
}

func (r *bulkRun) inSubset(ref string) bool {
	if r.subset == nil {
		return true
	}
	return r.subset[NormalizeRef(ref)]
}

func newSubset(caseRefs []string) map[string]bool {
	if len(caseRefs) == 0 {
		return nil
	}
	subset := make(map[string]bool, len(caseRefs))
	for _, r := range caseRefs {
		subset[NormalizeRef(r)] = true
	}
	return subset
}

// run executes one bulk action against the named multiple. The multiple load
// and its final write are the only failures that abort the invocation; every
// member-level problem degrades to an entry on the error list.
func (s *Service) run(ctx context.Context, country Country, multipleRef string, subset []string, act bulkAction) (*Result, error) {
	m, err := s.Multiples.FindByReference(ctx, string(country), multipleRef)
	if err != nil {
		return nil, err
	}

	r := &bulkRun{
		svc:      s,
		country:  country,
		multiple: m,
		ledger:   NewLedger(m),
		subset:   newSubset(subset),
		result:   &Result{},
		state:    stateLoaded,
	}

	zap.S().Infow("bulk action loaded",
		"action", act.name(),
		"multipleReference", multipleRef,
		"caseCount", len(m.Details.CaseIDs),
	)

	s.loadMembers(ctx, r)

	validationErrs := act.validate(ctx, r)
	r.result.Errors = append(r.result.Errors, validationErrs...)
	r.state = stateValidated

	// finalize only runs when validation passed: a rejected invocation must
	// not touch the multiple's own fields, it only records the errors.
	if len(validationErrs) == 0 {
		r.state = stateExecuting
		s.executeMembers(ctx, r, act)
		act.finalize(ctx, r)
	}

	r.state = stateCompleted
	if len(r.result.Errors) > 0 {
		r.state = stateCompletedWithErrors
	}

	// exactly one multiple write per invocation: the commit point. The error
	// list is overwritten, never appended across invocations.
	m.Details.Errors = truncateErrors(r.result.Errors, s.MaxStoredErrors)
	r.ledger.Recount()
	if err := s.Multiples.UpdateVersioned(ctx, m); err != nil {
		zap.S().Errorw("failed to persist multiple after bulk action",
			"action", act.name(),
			"multipleReference", multipleRef,
			"error", err,
		)
		return nil, err
	}

	zap.S().Infow("bulk action finished",
		"action", act.name(),
		"multipleReference", multipleRef,
		"state", r.state,
		"processed", len(r.result.Processed),
		"errors", len(r.result.Errors),
	)

	r.result.Multiple = m
	return r.result, nil
}

// loadMembers fetches every actionable member single case in collection
// order. Entries already flagged as transferred out are skipped: they belong
// to the other jurisdiction now. A failed fetch excludes the member and
// records a per-case error; duplicate entries are loaded once and left for
// the fix action to report.
func (s *Service) loadMembers(ctx context.Context, r *bulkRun) {
	seen := map[string]bool{}
	for i := range r.multiple.Details.CaseIDs {
		entry := &r.multiple.Details.CaseIDs[i]
		if entry.TransferredOut {
			continue
		}
		ref := NormalizeRef(entry.CaseReference)
		if seen[ref] {
			continue
		}
		seen[ref] = true

		mc := &memberCase{entry: entry}
		c, err := s.Singles.FindByReference(ctx, string(r.country), ref)
		switch {
		case errors.Is(err, databases.ErrNotFound):
			r.addError(ref, "case not found in case store")
		case err != nil:
			r.addError(ref, "case could not be fetched: %v", err)
		default:
			mc.Case = c
		}
		r.members = append(r.members, mc)
	}
}

// executeMembers applies the action to each loaded member in collection
// order. One member's failure never prevents attempting the rest.
func (s *Service) executeMembers(ctx context.Context, r *bulkRun, act bulkAction) {
	for _, mc := range r.members {
		ref := NormalizeRef(mc.entry.CaseReference)
		if mc.Case == nil || !r.inSubset(ref) {
			continue
		}

		changed, err := act.apply(ctx, r, mc)
		if err != nil {
			r.addError(ref, "%v", err)
			continue
		}
		if changed {
			if err := s.Singles.UpdateVersioned(ctx, mc.Case); err != nil {
				if errors.Is(err, databases.ErrVersionConflict) {
					r.addError(ref, "case was updated by another user, re-run the action")
				} else if errors.Is(err, databases.ErrNotFound) {
					r.addError(ref, "case disappeared from the case store")
				} else {
					r.addError(ref, "case update failed: %v", err)
				}
				continue
			}
		}
		mc.applied = true
		r.result.Processed = append(r.result.Processed, ref)
	}
}

func truncateErrors(errs []string, max int) []string {
	if max <= 0 || len(errs) <= max {
		return errs
	}
	trimmed := make([]string, max+1)
	copy(trimmed, errs[:max])
	trimmed[max] = fmt.Sprintf("and %d more", len(errs)-max)
	return trimmed
}
