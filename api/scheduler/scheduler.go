package scheduler

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"

	"github.com/hmcts/et-multiples-api/config"
	"github.com/hmcts/et-multiples-api/databases"
	"github.com/hmcts/et-multiples-api/models"
	"github.com/hmcts/et-multiples-api/multiples"
	templates "github.com/hmcts/et-multiples-api/templates/html"
)

// Scheduler runs the nightly ledger audit over every open multiple
type Scheduler struct {
	cron       *cron.Cron
	SingleDB   databases.SingleCaseDatabase
	MultipleDB databases.MultipleDatabase
	LockDB     databases.AuditLockDatabase
	Conf       *config.Config
	instanceID string
}

// NewScheduler creates a new scheduler instance
func NewScheduler(
	singleDB databases.SingleCaseDatabase,
	multipleDB databases.MultipleDatabase,
	lockDB databases.AuditLockDatabase,
	conf *config.Config,
) *Scheduler {
	// unique id for this pod so the distributed lock names its holder
	instanceID := os.Getenv("DYNO")
	if instanceID == "" {
		instanceID = fmt.Sprintf("instance-%d", time.Now().UnixNano())
	}

	return &Scheduler{
		cron:       cron.New(cron.WithLocation(time.UTC)),
		SingleDB:   singleDB,
		MultipleDB: multipleDB,
		LockDB:     lockDB,
		Conf:       conf,
		instanceID: instanceID,
	}
}

// Start begins the scheduler with all registered jobs
func (s *Scheduler) Start() {
	// audit every multiple ledger nightly at 2 AM UTC
	_, err := s.cron.AddFunc("0 2 * * *", s.auditLedgers)
	if err != nil {
		zap.S().Errorw("failed to register ledger audit job", "error", err)
	}

	s.cron.Start()
	zap.S().Info("ledger audit scheduler started")
}

// Stop gracefully stops the scheduler
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	zap.S().Info("ledger audit scheduler stopped")
}

// auditLedgers walks every open multiple in both jurisdictions and reports
// count drift, duplicate entries and one-sided membership links. The audit
// only reports; repairs go through the fix action so they are attributable.
func (s *Scheduler) auditLedgers() {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Minute)
	defer cancel()

	acquired, err := s.LockDB.TryAcquire(ctx, "ledger_audit_job", s.instanceID, 30*time.Minute)
	if err != nil {
		zap.S().Errorw("failed to acquire lock for ledger audit", "error", err)
		return
	}
	if !acquired {
		zap.S().Debug("ledger audit already running on another instance, skipping")
		return
	}

	for _, country := range []multiples.Country{multiples.CountryEnglandWales, multiples.CountryScotland} {
		checked, findings := s.auditCountry(ctx, country)
		zap.S().Infow("ledger audit finished",
			"country", country,
			"multiplesChecked", checked,
			"findings", len(findings),
		)
		if len(findings) > 0 {
			s.sendAuditSummary(string(country), checked, findings)
		}
	}
}

// auditCountry audits every open multiple in one jurisdiction
func (s *Scheduler) auditCountry(ctx context.Context, country multiples.Country) (int, []string) {
	openMultiples, err := s.MultipleDB.Find(ctx, bson.M{
		"multiple.country": string(country),
		"multiple.state":   models.MultipleStateOpen,
	})
	if err != nil {
		zap.S().Errorw("failed to list open multiples for audit", "country", country, "error", err)
		return 0, nil
	}

	var findings []string
	for i := range openMultiples {
		m := &openMultiples[i]
		ref := m.Details.MultipleReference

		if m.Details.CaseCount != len(m.Details.CaseIDs) {
			findings = append(findings, fmt.Sprintf("%s: case count %d does not match %d ledger entries",
				ref, m.Details.CaseCount, len(m.Details.CaseIDs)))
		}

		seen := map[string]bool{}
		for _, e := range m.Details.CaseIDs {
			caseRef := multiples.NormalizeRef(e.CaseReference)
			if seen[caseRef] {
				findings = append(findings, fmt.Sprintf("%s: duplicate ledger entry for %s", ref, caseRef))
				continue
			}
			seen[caseRef] = true

			if e.TransferredOut {
				continue
			}
			c, err := s.SingleDB.FindByReference(ctx, string(country), caseRef)
			if err != nil {
				findings = append(findings, fmt.Sprintf("%s: member %s could not be fetched", ref, caseRef))
				continue
			}
			if c.Details.MultipleReference != ref {
				findings = append(findings, fmt.Sprintf("%s: member %s points at multiple %q", ref, caseRef, c.Details.MultipleReference))
			}
		}
	}
	return len(openMultiples), findings
}

// sendAuditSummary emails the findings to the admin address
func (s *Scheduler) sendAuditSummary(country string, checked int, findings []string) {
	if s.Conf.SendgridAPIKey == "" || s.Conf.AdminEmail == "" {
		return
	}

	htmlContent, plainText := templates.AuditSummaryEmail(country, checked, findings)
	from := mail.NewEmail("Employment Tribunals", s.Conf.NotifyFrom)
	to := mail.NewEmail("", s.Conf.AdminEmail)
	subject := fmt.Sprintf("Ledger audit: %d findings in %s", len(findings), country)
	message := mail.NewSingleEmail(from, subject, to, plainText, htmlContent)

	client := sendgrid.NewSendClient(s.Conf.SendgridAPIKey)
	response, err := client.Send(message)
	if err != nil {
		zap.S().Errorw("failed to send audit summary", "error", err)
		return
	}
	if response.StatusCode >= 400 {
		zap.S().Errorw("sendgrid returned error status", "status", response.StatusCode, "body", response.Body)
	}
}
