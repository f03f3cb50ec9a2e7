package multiples_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/hmcts/et-multiples-api/databases"
	mocksdb "github.com/hmcts/et-multiples-api/databases/mocks"
	"github.com/hmcts/et-multiples-api/models"
	"github.com/hmcts/et-multiples-api/multiples"
)

func TestCreate_MintsReferenceAndLinksMembers(t *testing.T) {
	singles := &mocksdb.SingleCaseDatabase{}
	mults := &mocksdb.MultipleDatabase{}
	counters := &mocksdb.CounterDatabase{}

	first := newTestCase("2400123/2024", models.StateAccepted)
	first.Details.MultipleReference = ""
	second := newTestCase("2400124/2024", models.StateAccepted)
	second.Details.MultipleReference = ""

	singles.On("FindByReference", mock.Anything, "englandwales", "2400123/2024").Return(first, nil)
	singles.On("FindByReference", mock.Anything, "englandwales", "2400124/2024").Return(second, nil)
	counters.On("NextSequence", mock.Anything, "multiples-englandwales").Return(int64(5001), nil)
	mults.On("InsertOne", mock.Anything, mock.Anything).Return(nil)
	singles.On("UpdateVersioned", mock.Anything, mock.Anything).Return(nil)
	mults.On("UpdateVersioned", mock.Anything, mock.Anything).Return(nil)

	svc := newTestService(singles, mults)
	svc.Counters = counters

	res, err := svc.Create(context.Background(), multiples.CountryEnglandWales, models.CreateMultipleRequest{
		Country:  "englandwales",
		Name:     "Acme Redundancies",
		CaseRefs: []string{"2400123/2024", "2400124/2024"},
	})

	assert.NoError(t, err)
	assert.Empty(t, res.Errors)
	assert.Len(t, res.Processed, 2)

	wantRef := "245001/" + time.Now().Format("2006")
	assert.Equal(t, wantRef, res.Multiple.Details.MultipleReference)
	assert.Equal(t, wantRef, first.Details.MultipleReference)
	assert.Equal(t, "Case within a multiple", first.Details.PositionType)
	// managing office follows the lead case
	assert.Equal(t, "Manchester", res.Multiple.Details.ManagingOffice)
	assert.Equal(t, 2, res.Multiple.Details.CaseCount)
}

func TestCreate_RejectsForeignAndMissingCandidates(t *testing.T) {
	singles := &mocksdb.SingleCaseDatabase{}
	mults := &mocksdb.MultipleDatabase{}
	counters := &mocksdb.CounterDatabase{}

	free := newTestCase("2400123/2024", models.StateAccepted)
	free.Details.MultipleReference = ""
	claimed := newTestCase("2400124/2024", models.StateAccepted)
	claimed.Details.MultipleReference = "249999/2024"

	singles.On("FindByReference", mock.Anything, "englandwales", "2400123/2024").Return(free, nil)
	singles.On("FindByReference", mock.Anything, "englandwales", "2400124/2024").Return(claimed, nil)
	singles.On("FindByReference", mock.Anything, "englandwales", "2400125/2024").
		Return(nil, databases.ErrNotFound)
	counters.On("NextSequence", mock.Anything, "multiples-englandwales").Return(int64(5002), nil)
	mults.On("InsertOne", mock.Anything, mock.Anything).Return(nil)
	singles.On("UpdateVersioned", mock.Anything, free).Return(nil)
	mults.On("UpdateVersioned", mock.Anything, mock.Anything).Return(nil)

	svc := newTestService(singles, mults)
	svc.Counters = counters

	res, err := svc.Create(context.Background(), multiples.CountryEnglandWales, models.CreateMultipleRequest{
		Country:  "englandwales",
		Name:     "Mixed Batch",
		CaseRefs: []string{"2400123/2024", "2400124/2024", "2400125/2024"},
	})

	assert.NoError(t, err)
	assert.Equal(t, []string{"2400123/2024"}, res.Processed)
	assert.Len(t, res.Errors, 2)
	assert.Contains(t, res.Errors[0], "already assigned to multiple 249999/2024")
	assert.Contains(t, res.Errors[1], "case not found in case store")
	assert.Equal(t, 1, res.Multiple.Details.CaseCount)
	singles.AssertNotCalled(t, "UpdateVersioned", mock.Anything, claimed)
}

func TestAmendCases_AddsToExistingMultiple(t *testing.T) {
	singles := &mocksdb.SingleCaseDatabase{}
	mults := &mocksdb.MultipleDatabase{}

	m := newTestMultiple("2400123/2024")
	newcomer := newTestCase("2400125/2024", models.StateAccepted)
	newcomer.Details.MultipleReference = ""

	mults.On("FindByReference", mock.Anything, "englandwales", "245000/2024").Return(m, nil)
	singles.On("FindByReference", mock.Anything, "englandwales", "2400125/2024").Return(newcomer, nil)
	singles.On("UpdateVersioned", mock.Anything, newcomer).Return(nil)
	mults.On("UpdateVersioned", mock.Anything, m).Return(nil)

	svc := newTestService(singles, mults)
	res, err := svc.AmendCases(context.Background(), multiples.CountryEnglandWales, "245000/2024", models.AmendCasesRequest{
		Country:  "englandwales",
		CaseRefs: []string{"2400125/2024"},
	})

	assert.NoError(t, err)
	assert.Equal(t, []string{"2400125/2024"}, res.Processed)
	assert.Empty(t, res.Errors)
	assert.Equal(t, 2, m.Details.CaseCount)
	assert.Equal(t, "245000/2024", newcomer.Details.MultipleReference)
}

func TestAmendCases_DuplicateReported(t *testing.T) {
	singles := &mocksdb.SingleCaseDatabase{}
	mults := &mocksdb.MultipleDatabase{}

	m := newTestMultiple("2400123/2024")

	mults.On("FindByReference", mock.Anything, "englandwales", "245000/2024").Return(m, nil)
	mults.On("UpdateVersioned", mock.Anything, m).Return(nil)

	svc := newTestService(singles, mults)
	res, err := svc.AmendCases(context.Background(), multiples.CountryEnglandWales, "245000/2024", models.AmendCasesRequest{
		Country:  "englandwales",
		CaseRefs: []string{"2400123/2024"},
	})

	assert.NoError(t, err)
	assert.Empty(t, res.Processed)
	assert.Equal(t, []string{"2400123/2024: already part of this multiple"}, res.Errors)
	assert.Equal(t, 1, m.Details.CaseCount)
	singles.AssertNotCalled(t, "FindByReference", mock.Anything, mock.Anything, mock.Anything)
}

func TestRemoveCases_DropsEntriesWithoutTouchingCases(t *testing.T) {
	singles := &mocksdb.SingleCaseDatabase{}
	mults := &mocksdb.MultipleDatabase{}

	m := newTestMultiple("2400123/2024", "2400124/2024")

	mults.On("FindByReference", mock.Anything, "englandwales", "245000/2024").Return(m, nil)
	mults.On("UpdateVersioned", mock.Anything, m).Return(nil)

	svc := newTestService(singles, mults)
	res, err := svc.RemoveCases(context.Background(), multiples.CountryEnglandWales, "245000/2024", models.RemoveCasesRequest{
		Country:  "englandwales",
		CaseRefs: []string{"2400124/2024", "2409999/2024"},
	})

	assert.NoError(t, err)
	assert.Equal(t, []string{"2400124/2024"}, res.Processed)
	assert.Equal(t, []string{"2409999/2024: not a member of this multiple"}, res.Errors)
	assert.Equal(t, 1, m.Details.CaseCount)
	// the member case itself is never written
	singles.AssertNotCalled(t, "UpdateVersioned", mock.Anything, mock.Anything)
}

func TestMoveSubMultiple_RelabelsMembers(t *testing.T) {
	singles := &mocksdb.SingleCaseDatabase{}
	mults := &mocksdb.MultipleDatabase{}

	m := newTestMultiple("2400123/2024", "2400124/2024")
	m.Details.SubMultiples = []models.SubMultiple{{Name: "GroupA"}}

	mults.On("FindByReference", mock.Anything, "englandwales", "245000/2024").Return(m, nil)
	mults.On("UpdateVersioned", mock.Anything, m).Return(nil)

	svc := newTestService(singles, mults)
	res, err := svc.MoveSubMultiple(context.Background(), multiples.CountryEnglandWales, "245000/2024", models.SubMultipleRequest{
		Country:     "englandwales",
		SubMultiple: "GroupA",
		CaseRefs:    []string{"2400123/2024"},
	})

	assert.NoError(t, err)
	assert.Equal(t, []string{"2400123/2024"}, res.Processed)
	assert.Empty(t, res.Errors)
	assert.Equal(t, "GroupA", m.Details.CaseIDs[0].SubMultiple)
}
