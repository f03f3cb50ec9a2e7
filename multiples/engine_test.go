package multiples_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/hmcts/et-multiples-api/databases"
	mocksdb "github.com/hmcts/et-multiples-api/databases/mocks"
	"github.com/hmcts/et-multiples-api/models"
	"github.com/hmcts/et-multiples-api/multiples"
)

func newTestService(singles *mocksdb.SingleCaseDatabase, mults *mocksdb.MultipleDatabase) *multiples.Service {
	return &multiples.Service{
		Singles:         singles,
		Multiples:       mults,
		MaxStoredErrors: 200,
	}
}

func newTestCase(ref, state string) *models.SingleCase {
	return &models.SingleCase{
		ID: "case-" + ref,
		Details: models.CaseDetails{
			CaseReference:     ref,
			Country:           "englandwales",
			ManagingOffice:    "Manchester",
			State:             state,
			MultipleReference: "245000/2024",
		},
		Version: 3,
	}
}

func TestTransfer_OneClosedMemberDoesNotBlockTheRest(t *testing.T) {
	singles := &mocksdb.SingleCaseDatabase{}
	mults := &mocksdb.MultipleDatabase{}

	m := newTestMultiple("2400123/2024", "2400124/2024")
	open := newTestCase("2400123/2024", models.StateAccepted)
	closed := newTestCase("2400124/2024", models.StateClosed)

	mults.On("FindByReference", mock.Anything, "englandwales", "245000/2024").Return(m, nil)
	singles.On("FindByReference", mock.Anything, "englandwales", "2400123/2024").Return(open, nil)
	singles.On("FindByReference", mock.Anything, "englandwales", "2400124/2024").Return(closed, nil)
	singles.On("UpdateVersioned", mock.Anything, open).Return(nil)
	mults.On("UpdateVersioned", mock.Anything, m).Return(nil)

	svc := newTestService(singles, mults)
	res, err := svc.Transfer(context.Background(), multiples.CountryEnglandWales, "245000/2024", models.TransferRequest{
		Country:      "englandwales",
		TargetOffice: "Leeds",
	})

	assert.NoError(t, err)
	assert.Equal(t, []string{"2400123/2024"}, res.Processed)
	assert.Equal(t, []string{"2400124/2024: case is closed and cannot be transferred"}, res.Errors)

	// the open case moved and the multiple followed
	assert.Equal(t, "Leeds", open.Details.ManagingOffice)
	assert.Equal(t, "Leeds", m.Details.ManagingOffice)
	// the closed case was never written
	singles.AssertNotCalled(t, "UpdateVersioned", mock.Anything, closed)
	// the persisted error list matches the response
	assert.Equal(t, res.Errors, m.Details.Errors)
}

func TestTransfer_SameOfficeConvergesWithoutWrites(t *testing.T) {
	singles := &mocksdb.SingleCaseDatabase{}
	mults := &mocksdb.MultipleDatabase{}

	m := newTestMultiple("2400123/2024", "2400124/2024")
	first := newTestCase("2400123/2024", models.StateAccepted)
	second := newTestCase("2400124/2024", models.StateAccepted)

	mults.On("FindByReference", mock.Anything, "englandwales", "245000/2024").Return(m, nil)
	singles.On("FindByReference", mock.Anything, "englandwales", "2400123/2024").Return(first, nil)
	singles.On("FindByReference", mock.Anything, "englandwales", "2400124/2024").Return(second, nil)
	mults.On("UpdateVersioned", mock.Anything, m).Return(nil)

	svc := newTestService(singles, mults)
	res, err := svc.Transfer(context.Background(), multiples.CountryEnglandWales, "245000/2024", models.TransferRequest{
		Country:      "englandwales",
		TargetOffice: "Manchester",
	})

	assert.NoError(t, err)
	assert.Empty(t, res.Errors)
	// members were already at the target office, nothing to write
	singles.AssertNotCalled(t, "UpdateVersioned", mock.Anything, mock.Anything)
	assert.Equal(t, "Manchester", m.Details.ManagingOffice)
}

func TestTransfer_InvalidOfficeStopsBeforeAnyWrite(t *testing.T) {
	singles := &mocksdb.SingleCaseDatabase{}
	mults := &mocksdb.MultipleDatabase{}

	m := newTestMultiple("2400123/2024")
	m.Details.ManagingOffice = "Manchester"
	open := newTestCase("2400123/2024", models.StateAccepted)

	mults.On("FindByReference", mock.Anything, "englandwales", "245000/2024").Return(m, nil)
	singles.On("FindByReference", mock.Anything, "englandwales", "2400123/2024").Return(open, nil)
	mults.On("UpdateVersioned", mock.Anything, m).Return(nil)

	svc := newTestService(singles, mults)
	res, err := svc.Transfer(context.Background(), multiples.CountryEnglandWales, "245000/2024", models.TransferRequest{
		Country:      "englandwales",
		TargetOffice: "Glasgow",
	})

	assert.NoError(t, err)
	assert.Empty(t, res.Processed)
	assert.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0], "Glasgow")
	assert.Equal(t, "Manchester", open.Details.ManagingOffice)
	// the rejected office never lands on the multiple either
	assert.Equal(t, "Manchester", m.Details.ManagingOffice)
	singles.AssertNotCalled(t, "UpdateVersioned", mock.Anything, mock.Anything)
}

func TestRun_MissingMultipleFailsFast(t *testing.T) {
	singles := &mocksdb.SingleCaseDatabase{}
	mults := &mocksdb.MultipleDatabase{}

	mults.On("FindByReference", mock.Anything, "englandwales", "245000/2024").
		Return(nil, databases.ErrNotFound)

	svc := newTestService(singles, mults)
	res, err := svc.PreAccept(context.Background(), multiples.CountryEnglandWales, "245000/2024", models.PreAcceptRequest{
		Country: "englandwales",
	})

	assert.Nil(t, res)
	assert.ErrorIs(t, err, databases.ErrNotFound)
	singles.AssertNotCalled(t, "FindByReference", mock.Anything, mock.Anything, mock.Anything)
}

func TestRun_MissingMemberDegradesToErrorList(t *testing.T) {
	singles := &mocksdb.SingleCaseDatabase{}
	mults := &mocksdb.MultipleDatabase{}

	m := newTestMultiple("2400123/2024", "2400124/2024")
	open := newTestCase("2400123/2024", models.StateSubmitted)

	mults.On("FindByReference", mock.Anything, "englandwales", "245000/2024").Return(m, nil)
	singles.On("FindByReference", mock.Anything, "englandwales", "2400123/2024").Return(open, nil)
	singles.On("FindByReference", mock.Anything, "englandwales", "2400124/2024").
		Return(nil, databases.ErrNotFound)
	singles.On("UpdateVersioned", mock.Anything, open).Return(nil)
	mults.On("UpdateVersioned", mock.Anything, m).Return(nil)

	svc := newTestService(singles, mults)
	res, err := svc.PreAccept(context.Background(), multiples.CountryEnglandWales, "245000/2024", models.PreAcceptRequest{
		Country: "englandwales",
	})

	assert.NoError(t, err)
	assert.Equal(t, []string{"2400123/2024"}, res.Processed)
	assert.Equal(t, []string{"2400124/2024: case not found in case store"}, res.Errors)
	assert.Equal(t, models.StateAccepted, open.Details.State)
}

func TestRun_VersionConflictReportedPerCase(t *testing.T) {
	singles := &mocksdb.SingleCaseDatabase{}
	mults := &mocksdb.MultipleDatabase{}

	m := newTestMultiple("2400123/2024")
	open := newTestCase("2400123/2024", models.StateSubmitted)

	mults.On("FindByReference", mock.Anything, "englandwales", "245000/2024").Return(m, nil)
	singles.On("FindByReference", mock.Anything, "englandwales", "2400123/2024").Return(open, nil)
	singles.On("UpdateVersioned", mock.Anything, open).Return(databases.ErrVersionConflict)
	mults.On("UpdateVersioned", mock.Anything, m).Return(nil)

	svc := newTestService(singles, mults)
	res, err := svc.PreAccept(context.Background(), multiples.CountryEnglandWales, "245000/2024", models.PreAcceptRequest{
		Country: "englandwales",
	})

	assert.NoError(t, err)
	assert.Empty(t, res.Processed)
	assert.Equal(t, []string{"2400123/2024: case was updated by another user, re-run the action"}, res.Errors)
}

func TestRun_FinalMultipleWriteFailureSurfaces(t *testing.T) {
	singles := &mocksdb.SingleCaseDatabase{}
	mults := &mocksdb.MultipleDatabase{}

	m := newTestMultiple("2400123/2024")
	open := newTestCase("2400123/2024", models.StateSubmitted)
	boom := errors.New("write concern failed")

	mults.On("FindByReference", mock.Anything, "englandwales", "245000/2024").Return(m, nil)
	singles.On("FindByReference", mock.Anything, "englandwales", "2400123/2024").Return(open, nil)
	singles.On("UpdateVersioned", mock.Anything, open).Return(nil)
	mults.On("UpdateVersioned", mock.Anything, m).Return(boom)

	svc := newTestService(singles, mults)
	res, err := svc.PreAccept(context.Background(), multiples.CountryEnglandWales, "245000/2024", models.PreAcceptRequest{
		Country: "englandwales",
	})

	assert.Nil(t, res)
	assert.ErrorIs(t, err, boom)
}

func TestPreAccept_SubsetOnlyTouchesSelectedCases(t *testing.T) {
	singles := &mocksdb.SingleCaseDatabase{}
	mults := &mocksdb.MultipleDatabase{}

	m := newTestMultiple("2400123/2024", "2400124/2024")
	first := newTestCase("2400123/2024", models.StateSubmitted)
	second := newTestCase("2400124/2024", models.StateSubmitted)

	mults.On("FindByReference", mock.Anything, "englandwales", "245000/2024").Return(m, nil)
	singles.On("FindByReference", mock.Anything, "englandwales", "2400123/2024").Return(first, nil)
	singles.On("FindByReference", mock.Anything, "englandwales", "2400124/2024").Return(second, nil)
	singles.On("UpdateVersioned", mock.Anything, second).Return(nil)
	mults.On("UpdateVersioned", mock.Anything, m).Return(nil)

	svc := newTestService(singles, mults)
	res, err := svc.PreAccept(context.Background(), multiples.CountryEnglandWales, "245000/2024", models.PreAcceptRequest{
		Country:  "englandwales",
		CaseRefs: []string{"2400124/2024"},
	})

	assert.NoError(t, err)
	assert.Equal(t, []string{"2400124/2024"}, res.Processed)
	assert.Empty(t, res.Errors)
	assert.Equal(t, models.StateSubmitted, first.Details.State)
	assert.Equal(t, models.StateAccepted, second.Details.State)
}
