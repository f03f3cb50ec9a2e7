package multiples

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/hmcts/et-multiples-api/models"
)

const (
	// DocumentKindSchedule renders one document covering every selected member
	DocumentKindSchedule = "schedule"
	// DocumentKindLetter renders one document per selected member
	DocumentKindLetter = "letter"
)

// GenerateDocuments renders a schedule or per-case letters for the multiple's
// members and uploads the artifacts, returning a link per artifact. Render or
// upload failures degrade to error-list entries like any other member-level
// problem.
func (s *Service) GenerateDocuments(ctx context.Context, country Country, multipleRef string, req models.DocumentRequest) (*Result, error) {
	return s.run(ctx, country, multipleRef, req.CaseRefs, &documentAction{
		templateID: req.TemplateID,
		kind:       req.Kind,
	})
}

// scheduleRow is one member's line in the rendered schedule payload
type scheduleRow struct {
	CaseReference  string `json:"caseReference"`
	ClaimantName   string `json:"claimantName"`
	RespondentName string `json:"respondentName"`
	PositionType   string `json:"positionType"`
}

type documentAction struct {
	templateID string
	kind       string

	rows []scheduleRow
}

func (a *documentAction) name() string { return "documents" }

func (a *documentAction) validate(ctx context.Context, r *bulkRun) []string {
	if a.kind != DocumentKindSchedule && a.kind != DocumentKindLetter {
		return []string{fmt.Sprintf("%s: unknown document kind %q", r.multiple.Details.MultipleReference, a.kind)}
	}
	return nil
}

func (a *documentAction) apply(ctx context.Context, r *bulkRun, mc *memberCase) (bool, error) {
	ref := NormalizeRef(mc.Case.Details.CaseReference)

	if a.kind == DocumentKindSchedule {
		// rows accumulate in collection order; the render happens once in
		// finalize so a schedule is all-or-nothing
		a.rows = append(a.rows, scheduleRow{
			CaseReference:  ref,
			ClaimantName:   mc.Case.Details.ClaimantName,
			RespondentName: mc.Case.Details.RespondentName,
			PositionType:   mc.Case.Details.PositionType,
		})
		return false, nil
	}

	content, err := r.svc.Renderer.Render(ctx, a.templateID, map[string]interface{}{
		"caseReference":  ref,
		"claimantName":   mc.Case.Details.ClaimantName,
		"respondentName": mc.Case.Details.RespondentName,
		"managingOffice": mc.Case.Details.ManagingOffice,
	})
	if err != nil {
		return false, fmt.Errorf("letter render failed: %v", err)
	}

	link, err := r.svc.Artifacts.Upload(ctx, artifactName(r.multiple.Details.MultipleReference, "letter-"+ref), content)
	if err != nil {
		return false, fmt.Errorf("letter upload failed: %v", err)
	}
	r.result.DocumentLinks = append(r.result.DocumentLinks, link)
	return false, nil
}

func (a *documentAction) finalize(ctx context.Context, r *bulkRun) {
	if a.kind != DocumentKindSchedule {
		if len(r.result.DocumentLinks) > 0 {
			r.multiple.Details.DocumentLink = r.result.DocumentLinks[len(r.result.DocumentLinks)-1]
		}
		return
	}

	multipleRef := r.multiple.Details.MultipleReference
	if len(a.rows) == 0 {
		r.addError(multipleRef, "no member cases selected for the schedule")
		return
	}

	content, err := r.svc.Renderer.Render(ctx, a.templateID, map[string]interface{}{
		"multipleReference": multipleRef,
		"multipleName":      r.multiple.Details.Name,
		"cases":             a.rows,
	})
	if err != nil {
		r.addError(multipleRef, "schedule render failed: %v", err)
		return
	}

	link, err := r.svc.Artifacts.Upload(ctx, artifactName(multipleRef, "schedule"), content)
	if err != nil {
		r.addError(multipleRef, "schedule upload failed: %v", err)
		return
	}

	r.result.DocumentLinks = append(r.result.DocumentLinks, link)
	r.multiple.Details.DocumentLink = link

	zap.S().Infow("schedule generated",
		"multipleReference", multipleRef,
		"rows", len(a.rows),
	)
}

// artifactName builds a store-safe name from the multiple reference and a
// per-artifact suffix
func artifactName(multipleRef, suffix string) string {
	return strings.NewReplacer("/", "-", " ", "-").Replace(multipleRef + "-" + suffix)
}
