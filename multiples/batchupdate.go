package multiples

import (
	"context"
	"fmt"
	"sort"

	"github.com/hmcts/et-multiples-api/models"
)

// Field names a member-case field that batch update may overwrite. The change
// set is an explicit mapping from field name to new value applied through a
// typed setter table, never reflective field access.
type Field string

// Fields a caseworker may batch-overwrite.
const (
	FieldClerk          Field = "clerk"
	FieldFileLocation   Field = "fileLocation"
	FieldPositionType   Field = "positionType"
	FieldManagingOffice Field = "managingOffice"
)

type fieldSetter struct {
	get func(*models.CaseDetails) string
	set func(*models.CaseDetails, string)
}

var fieldSetters = map[Field]fieldSetter{
	FieldClerk: {
		get: func(d *models.CaseDetails) string { return d.Clerk },
		set: func(d *models.CaseDetails, v string) { d.Clerk = v },
	},
	FieldFileLocation: {
		get: func(d *models.CaseDetails) string { return d.FileLocation },
		set: func(d *models.CaseDetails, v string) { d.FileLocation = v },
	},
	FieldPositionType: {
		get: func(d *models.CaseDetails) string { return d.PositionType },
		set: func(d *models.CaseDetails, v string) { d.PositionType = v },
	},
	FieldManagingOffice: {
		get: func(d *models.CaseDetails) string { return d.ManagingOffice },
		set: func(d *models.CaseDetails, v string) { d.ManagingOffice = v },
	},
}

// BatchUpdate overwrites the requested fields on every member case, or on the
// requested subset.
func (s *Service) BatchUpdate(ctx context.Context, country Country, multipleRef string, req models.BatchUpdateRequest) (*Result, error) {
	return s.run(ctx, country, multipleRef, req.CaseRefs, &batchUpdateAction{changes: req.Changes})
}

type batchUpdateAction struct {
	changes map[string]string
}

func (a *batchUpdateAction) name() string { return "batch-update" }

func (a *batchUpdateAction) validate(ctx context.Context, r *bulkRun) []string {
	var errs []string

	// deterministic validation order regardless of map iteration
	names := make([]string, 0, len(a.changes))
	for name := range a.changes {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if _, ok := fieldSetters[Field(name)]; !ok {
			errs = append(errs, fmt.Sprintf("unknown field %q", name))
			continue
		}
		if Field(name) == FieldManagingOffice && !r.country.ValidOffice(a.changes[name]) {
			errs = append(errs, fmt.Sprintf("%q is not an office in this country", a.changes[name]))
		}
	}
	return errs
}

func (a *batchUpdateAction) apply(ctx context.Context, r *bulkRun, mc *memberCase) (bool, error) {
	if mc.Case.Details.State == models.StateClosed {
		return false, fmt.Errorf("case is closed and cannot be updated")
	}

	changed := false
	for name, value := range a.changes {
		setter := fieldSetters[Field(name)]
		if setter.get(&mc.Case.Details) == value {
			continue
		}
		setter.set(&mc.Case.Details, value)
		changed = true
	}
	return changed, nil
}

func (a *batchUpdateAction) finalize(ctx context.Context, r *bulkRun) {}
