package multiples_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hmcts/et-multiples-api/models"
	"github.com/hmcts/et-multiples-api/multiples"
)

func newTestMultiple(refs ...string) *models.Multiple {
	m := &models.Multiple{
		ID: "abc123",
		Details: models.MultipleDetails{
			MultipleReference: "245000/2024",
			Country:           "englandwales",
			State:             models.MultipleStateOpen,
		},
	}
	for _, ref := range refs {
		m.Details.CaseIDs = append(m.Details.CaseIDs, models.CaseIDEntry{CaseReference: ref})
	}
	m.Details.CaseCount = len(refs)
	return m
}

func TestLedger_AddRejectsDuplicates(t *testing.T) {
	m := newTestMultiple("2400123/2024")
	l := multiples.NewLedger(m)

	err := l.Add("2400124/2024", "")
	assert.NoError(t, err)
	assert.Equal(t, 2, m.Details.CaseCount)

	// same ref, different case and surrounding whitespace
	err = l.Add("  2400123/2024 ", "")
	assert.Error(t, err)
	assert.Equal(t, 2, m.Details.CaseCount)
}

func TestLedger_AddRejectsUnregisteredSubMultiple(t *testing.T) {
	m := newTestMultiple()
	l := multiples.NewLedger(m)

	err := l.Add("2400123/2024", "GroupA")
	assert.Error(t, err)
	assert.Empty(t, m.Details.CaseIDs)

	m.Details.SubMultiples = []models.SubMultiple{{Name: "GroupA"}}
	err = l.Add("2400123/2024", "GroupA")
	assert.NoError(t, err)
	assert.Equal(t, "GroupA", m.Details.CaseIDs[0].SubMultiple)
}

func TestLedger_RemoveReportsMissingRefs(t *testing.T) {
	m := newTestMultiple("2400123/2024", "2400124/2024", "2400125/2024")
	l := multiples.NewLedger(m)

	missing := l.Remove([]string{"2400124/2024", "2409999/2024"})
	assert.Equal(t, []string{"2409999/2024"}, missing)
	assert.Equal(t, 2, m.Details.CaseCount)
	assert.False(t, l.Contains("2400124/2024"))
}

func TestLedger_RemoveClearsLeadOverride(t *testing.T) {
	m := newTestMultiple("2400123/2024", "2400124/2024")
	m.Details.LeadCaseRef = "2400124/2024"
	l := multiples.NewLedger(m)

	l.Remove([]string{"2400124/2024"})
	assert.Empty(t, m.Details.LeadCaseRef)

	// lead falls back to the first remaining entry
	assert.Equal(t, "2400123/2024", l.LeadCase())
}

func TestLedger_RelabelUnregisteredRejectsAll(t *testing.T) {
	m := newTestMultiple("2400123/2024", "2400124/2024")
	l := multiples.NewLedger(m)

	errs := l.Relabel([]string{"2400123/2024", "2400124/2024"}, "Nope")
	assert.Len(t, errs, 2)
	for _, e := range m.Details.CaseIDs {
		assert.Empty(t, e.SubMultiple)
	}
}

func TestLedger_RelabelMovesMembers(t *testing.T) {
	m := newTestMultiple("2400123/2024", "2400124/2024")
	m.Details.SubMultiples = []models.SubMultiple{{Name: "GroupA"}}
	l := multiples.NewLedger(m)

	errs := l.Relabel([]string{"2400124/2024", "2409999/2024"}, "GroupA")
	assert.Len(t, errs, 1)
	assert.Contains(t, errs[0], "2409999/2024")
	assert.Equal(t, "GroupA", m.Details.CaseIDs[1].SubMultiple)
	assert.Empty(t, m.Details.CaseIDs[0].SubMultiple)
}

func TestLedger_DedupeKeepsFirstOccurrence(t *testing.T) {
	m := newTestMultiple("2400123/2024", "2400124/2024", "2400123/2024", "2400123/2024")
	m.Details.CaseIDs[0].SubMultiple = "keep"
	l := multiples.NewLedger(m)

	removed := l.Dedupe()
	assert.Equal(t, []string{"2400123/2024"}, removed)
	assert.Equal(t, 2, m.Details.CaseCount)
	assert.Equal(t, "keep", m.Details.CaseIDs[0].SubMultiple)
}

func TestLedger_ActiveRefsSkipsTransferredOut(t *testing.T) {
	m := newTestMultiple("2400123/2024", "2400124/2024", "2400125/2024")
	m.Details.CaseIDs[1].TransferredOut = true
	l := multiples.NewLedger(m)

	assert.Equal(t, []string{"2400123/2024", "2400125/2024"}, l.ActiveRefs())
}

func TestNormalizeRef(t *testing.T) {
	assert.Equal(t, "2400123/2024", multiples.NormalizeRef("2400123/2024"))
	assert.Equal(t, "2400123/2024", multiples.NormalizeRef(" 2400123/2024 "))
	assert.Equal(t, "ET-123", multiples.NormalizeRef("et-123"))
}
