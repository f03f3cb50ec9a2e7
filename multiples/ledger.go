package multiples

import (
	"fmt"
	"strings"

	"github.com/samber/lo"

	"github.com/hmcts/et-multiples-api/models"
)

// Ledger wraps a multiple's case-id collection and keeps its invariants:
// no duplicate case references, registered sub-multiple labels only, and a
// case count that is always recomputed from the live collection.
type Ledger struct {
	m *models.Multiple
}

// NewLedger wraps the given multiple
func NewLedger(m *models.Multiple) *Ledger {
	return &Ledger{m: m}
}

// NormalizeRef canonicalizes a case reference for comparison. Duplicate
// detection is by case reference, case-insensitive and trimmed.
func NormalizeRef(ref string) string {
	return strings.ToUpper(strings.TrimSpace(ref))
}

// Contains reports whether caseRef is already a member
func (l *Ledger) Contains(caseRef string) bool {
	want := NormalizeRef(caseRef)
	for _, e := range l.m.Details.CaseIDs {
		if NormalizeRef(e.CaseReference) == want {
			return true
		}
	}
	return false
}

// Add appends a new entry. The caller is responsible for the case-store side
// checks (existence, foreign membership); Add only guards the in-ledger
// duplicate invariant.
func (l *Ledger) Add(caseRef, subMultiple string) error {
	ref := NormalizeRef(caseRef)
	if ref == "" {
		return fmt.Errorf("empty case reference")
	}
	if l.Contains(ref) {
		return fmt.Errorf("case %s is already part of this multiple", ref)
	}
	if subMultiple != "" && !l.SubMultipleRegistered(subMultiple) {
		return fmt.Errorf("sub-multiple %q is not registered", subMultiple)
	}
	l.m.Details.CaseIDs = append(l.m.Details.CaseIDs, models.CaseIDEntry{
		CaseReference: ref,
		SubMultiple:   subMultiple,
	})
	l.Recount()
	return nil
}

// Remove drops the entries for the given refs and reports which refs were not
// members. The referenced single cases are not touched: unlinking a case's own
// multiple reference is a separate, separately-audited step.
func (l *Ledger) Remove(caseRefs []string) (missing []string) {
	drop := map[string]bool{}
	for _, r := range caseRefs {
		drop[NormalizeRef(r)] = false
	}

	kept := l.m.Details.CaseIDs[:0]
	for _, e := range l.m.Details.CaseIDs {
		ref := NormalizeRef(e.CaseReference)
		if _, ok := drop[ref]; ok {
			drop[ref] = true
			continue
		}
		kept = append(kept, e)
	}
	l.m.Details.CaseIDs = kept

	for ref, found := range drop {
		if !found {
			missing = append(missing, ref)
		}
	}

	if l.m.Details.LeadCaseRef != "" && !l.Contains(l.m.Details.LeadCaseRef) {
		l.m.Details.LeadCaseRef = ""
	}
	l.Recount()
	return missing
}

// Relabel moves the given refs to the named sub-multiple, returning one error
// string per ref that could not be moved. An unregistered label rejects every
// ref and changes nothing.
func (l *Ledger) Relabel(caseRefs []string, subMultiple string) []string {
	var errs []string
	if !l.SubMultipleRegistered(subMultiple) {
		for _, r := range caseRefs {
			errs = append(errs, fmt.Sprintf("%s: sub-multiple %q is not registered", NormalizeRef(r), subMultiple))
		}
		return errs
	}

	for _, r := range caseRefs {
		ref := NormalizeRef(r)
		moved := false
		for i := range l.m.Details.CaseIDs {
			if NormalizeRef(l.m.Details.CaseIDs[i].CaseReference) == ref {
				l.m.Details.CaseIDs[i].SubMultiple = subMultiple
				moved = true
				break
			}
		}
		if !moved {
			errs = append(errs, fmt.Sprintf("%s: not a member of this multiple", ref))
		}
	}
	return errs
}

// LeadCase resolves the lead case: an explicit override wins, otherwise the
// first case-id entry.
func (l *Ledger) LeadCase() string {
	if l.m.Details.LeadCaseRef != "" {
		return l.m.Details.LeadCaseRef
	}
	if len(l.m.Details.CaseIDs) > 0 {
		return l.m.Details.CaseIDs[0].CaseReference
	}
	return ""
}

// SubMultipleRegistered reports whether name is a registered sub-multiple
func (l *Ledger) SubMultipleRegistered(name string) bool {
	for _, s := range l.m.Details.SubMultiples {
		if s.Name == name {
			return true
		}
	}
	return false
}

// Dedupe removes duplicate entries, keeping the first occurrence, and returns
// the refs that had duplicates removed.
func (l *Ledger) Dedupe() []string {
	seen := map[string]bool{}
	var removed []string
	kept := l.m.Details.CaseIDs[:0]
	for _, e := range l.m.Details.CaseIDs {
		ref := NormalizeRef(e.CaseReference)
		if seen[ref] {
			removed = append(removed, ref)
			continue
		}
		seen[ref] = true
		kept = append(kept, e)
	}
	l.m.Details.CaseIDs = kept
	l.Recount()
	return lo.Uniq(removed)
}

// ActiveRefs returns member refs in collection order, skipping entries already
// flagged as transferred out.
func (l *Ledger) ActiveRefs() []string {
	var refs []string
	for _, e := range l.m.Details.CaseIDs {
		if e.TransferredOut {
			continue
		}
		refs = append(refs, NormalizeRef(e.CaseReference))
	}
	return refs
}

// Recount recomputes the derived case count from the live collection
func (l *Ledger) Recount() {
	l.m.Details.CaseCount = len(l.m.Details.CaseIDs)
}
