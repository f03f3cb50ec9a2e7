package multiples_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/hmcts/et-multiples-api/databases"
	mocksdb "github.com/hmcts/et-multiples-api/databases/mocks"
	"github.com/hmcts/et-multiples-api/models"
	"github.com/hmcts/et-multiples-api/multiples"
)

func TestTransferCountry_FlagModeKeepsEntries(t *testing.T) {
	singles := &mocksdb.SingleCaseDatabase{}
	mults := &mocksdb.MultipleDatabase{}

	m := newTestMultiple("2400123/2024", "2400124/2024")
	first := newTestCase("2400123/2024", models.StateAccepted)
	second := newTestCase("2400124/2024", models.StateAccepted)

	mults.On("FindByReference", mock.Anything, "englandwales", "245000/2024").Return(m, nil)
	singles.On("FindByReference", mock.Anything, "englandwales", "2400123/2024").Return(first, nil)
	singles.On("FindByReference", mock.Anything, "englandwales", "2400124/2024").Return(second, nil)
	singles.On("UpdateVersioned", mock.Anything, mock.Anything).Return(nil)
	mults.On("UpdateVersioned", mock.Anything, m).Return(nil)

	svc := newTestService(singles, mults)
	res, err := svc.TransferCountry(context.Background(), multiples.CountryEnglandWales, "245000/2024", models.TransferCountryRequest{
		Country:       "englandwales",
		TargetCountry: "scotland",
		TargetOffice:  "Glasgow",
		Reason:        "claimant relocated",
	})

	assert.NoError(t, err)
	assert.Len(t, res.Processed, 2)
	assert.Empty(t, res.Errors)

	// entries stay on the ledger, flagged for caseworker follow-up
	assert.Len(t, m.Details.CaseIDs, 2)
	assert.True(t, m.Details.CaseIDs[0].TransferredOut)
	assert.True(t, m.Details.CaseIDs[1].TransferredOut)
	assert.Equal(t, models.MultipleStateTransferred, m.Details.State)

	assert.True(t, first.Details.TransferredOut)
	assert.Equal(t, "scotland", first.Details.TransferDest)
	assert.Equal(t, "Glasgow", first.Details.TransferDestOffice)
	assert.Equal(t, "claimant relocated", first.Details.TransferReason)
	assert.Equal(t, models.StateTransferred, first.Details.State)
}

func TestTransferCountry_StripModeRemovesEntries(t *testing.T) {
	singles := &mocksdb.SingleCaseDatabase{}
	mults := &mocksdb.MultipleDatabase{}

	m := newTestMultiple("2400123/2024", "2400124/2024")
	m.Details.LeadCaseRef = "2400123/2024"
	first := newTestCase("2400123/2024", models.StateAccepted)
	closed := newTestCase("2400124/2024", models.StateClosed)

	mults.On("FindByReference", mock.Anything, "englandwales", "245000/2024").Return(m, nil)
	singles.On("FindByReference", mock.Anything, "englandwales", "2400123/2024").Return(first, nil)
	singles.On("FindByReference", mock.Anything, "englandwales", "2400124/2024").Return(closed, nil)
	singles.On("UpdateVersioned", mock.Anything, first).Return(nil)
	mults.On("UpdateVersioned", mock.Anything, m).Return(nil)

	svc := newTestService(singles, mults)
	svc.StripTransferred = true

	res, err := svc.TransferCountry(context.Background(), multiples.CountryEnglandWales, "245000/2024", models.TransferCountryRequest{
		Country:       "englandwales",
		TargetCountry: "scotland",
		TargetOffice:  "Edinburgh",
	})

	assert.NoError(t, err)
	assert.Equal(t, []string{"2400123/2024"}, res.Processed)
	assert.Equal(t, []string{"2400124/2024: case is closed and cannot be transferred"}, res.Errors)

	// only the moved entry is stripped; the closed member stays
	assert.Len(t, m.Details.CaseIDs, 1)
	assert.Equal(t, "2400124/2024", m.Details.CaseIDs[0].CaseReference)
	assert.Equal(t, 1, m.Details.CaseCount)
	// the lead pointed at the stripped entry and was cleared
	assert.Empty(t, m.Details.LeadCaseRef)
}

func TestTransferCountry_SecondRunConverges(t *testing.T) {
	singles := &mocksdb.SingleCaseDatabase{}
	mults := &mocksdb.MultipleDatabase{}

	m := newTestMultiple("2400123/2024", "2400124/2024")
	m.Details.CaseIDs[0].TransferredOut = true
	second := newTestCase("2400124/2024", models.StateAccepted)

	mults.On("FindByReference", mock.Anything, "englandwales", "245000/2024").Return(m, nil)
	singles.On("FindByReference", mock.Anything, "englandwales", "2400124/2024").Return(second, nil)
	singles.On("UpdateVersioned", mock.Anything, second).Return(nil)
	mults.On("UpdateVersioned", mock.Anything, m).Return(nil)

	svc := newTestService(singles, mults)
	res, err := svc.TransferCountry(context.Background(), multiples.CountryEnglandWales, "245000/2024", models.TransferCountryRequest{
		Country:       "englandwales",
		TargetCountry: "scotland",
		TargetOffice:  "Dundee",
	})

	assert.NoError(t, err)
	// the already-moved entry is skipped, only the remainder is processed
	assert.Equal(t, []string{"2400124/2024"}, res.Processed)
	assert.Empty(t, res.Errors)
	singles.AssertNotCalled(t, "FindByReference", mock.Anything, "englandwales", "2400123/2024")
	assert.Equal(t, models.MultipleStateTransferred, m.Details.State)
}

func TestTransferCountry_SameCountryRejected(t *testing.T) {
	singles := &mocksdb.SingleCaseDatabase{}
	mults := &mocksdb.MultipleDatabase{}

	m := newTestMultiple("2400123/2024")
	open := newTestCase("2400123/2024", models.StateAccepted)

	mults.On("FindByReference", mock.Anything, "englandwales", "245000/2024").Return(m, nil)
	singles.On("FindByReference", mock.Anything, "englandwales", "2400123/2024").Return(open, nil)
	mults.On("UpdateVersioned", mock.Anything, m).Return(nil)

	svc := newTestService(singles, mults)
	res, err := svc.TransferCountry(context.Background(), multiples.CountryEnglandWales, "245000/2024", models.TransferCountryRequest{
		Country:       "englandwales",
		TargetCountry: "englandwales",
		TargetOffice:  "Leeds",
	})

	assert.NoError(t, err)
	assert.Empty(t, res.Processed)
	assert.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0], "target country must differ")
	assert.False(t, open.Details.TransferredOut)
	singles.AssertNotCalled(t, "UpdateVersioned", mock.Anything, mock.Anything)
}

func TestTransferCountry_ECCRelink(t *testing.T) {
	singles := &mocksdb.SingleCaseDatabase{}
	mults := &mocksdb.MultipleDatabase{}

	m := newTestMultiple("2400123/2024")
	claim := newTestCase("2400123/2024", models.StateAccepted)
	companion := newTestCase("2400900/2024", models.StateAccepted)
	companion.Details.CounterClaim = "2400123/2024"
	companion.Details.MultipleReference = ""

	mults.On("FindByReference", mock.Anything, "englandwales", "245000/2024").Return(m, nil)
	singles.On("FindByReference", mock.Anything, "englandwales", "2400123/2024").Return(claim, nil)
	singles.On("FindOne", mock.Anything, mock.Anything).Return(companion, nil)
	singles.On("UpdateVersioned", mock.Anything, mock.Anything).Return(nil)
	mults.On("UpdateVersioned", mock.Anything, m).Return(nil)

	svc := newTestService(singles, mults)
	res, err := svc.TransferCountry(context.Background(), multiples.CountryEnglandWales, "245000/2024", models.TransferCountryRequest{
		Country:       "englandwales",
		TargetCountry: "scotland",
		TargetOffice:  "Aberdeen",
		RelinkECC:     true,
	})

	assert.NoError(t, err)
	assert.Empty(t, res.Errors)
	assert.Equal(t, "2400900/2024", claim.Details.LinkedCaseRef)
	assert.Equal(t, "2400123/2024", companion.Details.LinkedCaseRef)
	singles.AssertCalled(t, "UpdateVersioned", mock.Anything, companion)
}

func TestTransferCountry_MissingECCIsANote(t *testing.T) {
	singles := &mocksdb.SingleCaseDatabase{}
	mults := &mocksdb.MultipleDatabase{}

	m := newTestMultiple("2400123/2024")
	claim := newTestCase("2400123/2024", models.StateAccepted)

	mults.On("FindByReference", mock.Anything, "englandwales", "245000/2024").Return(m, nil)
	singles.On("FindByReference", mock.Anything, "englandwales", "2400123/2024").Return(claim, nil)
	singles.On("FindOne", mock.Anything, mock.Anything).Return(nil, databases.ErrNotFound)
	singles.On("UpdateVersioned", mock.Anything, claim).Return(nil)
	mults.On("UpdateVersioned", mock.Anything, m).Return(nil)

	svc := newTestService(singles, mults)
	res, err := svc.TransferCountry(context.Background(), multiples.CountryEnglandWales, "245000/2024", models.TransferCountryRequest{
		Country:       "englandwales",
		TargetCountry: "scotland",
		TargetOffice:  "Glasgow",
		RelinkECC:     true,
	})

	assert.NoError(t, err)
	// the transfer still happens, the missing companion is only reported
	assert.Equal(t, []string{"2400123/2024"}, res.Processed)
	assert.Equal(t, []string{"2400123/2024: no ECC companion case found to relink"}, res.Errors)
	assert.True(t, claim.Details.TransferredOut)
}
