package multiples

import (
	"github.com/hmcts/et-multiples-api/config"
	"github.com/hmcts/et-multiples-api/databases"
	"github.com/hmcts/et-multiples-api/documents"
	"github.com/hmcts/et-multiples-api/notifications"
)

// Service coordinates every bulk action over a multiple. All state is loaded
// from the case store per invocation; nothing is shared across requests.
type Service struct {
	Singles   databases.SingleCaseDatabase
	Multiples databases.MultipleDatabase
	Counters  databases.CounterDatabase
	Renderer  documents.Renderer
	Artifacts documents.Store
	Notifier  notifications.Notifier

	// StripTransferred controls whether a different-country transfer removes
	// the transferred case from the origin multiple's ledger or leaves it
	// flagged for caseworker follow-up.
	StripTransferred bool

	// MaxStoredErrors bounds the error list persisted on the multiple record;
	// the synchronous response always carries the full list.
	MaxStoredErrors int

	// NotifyEmail, when set, receives an outcome summary for closing and
	// transfer actions.
	NotifyEmail string
}

// NewService wires a service from config and the shared db helper
func NewService(conf *config.Config, db databases.DatabaseHelper, renderer documents.Renderer, artifacts documents.Store, notifier notifications.Notifier) *Service {
	return &Service{
		Singles:          databases.NewSingleCaseDatabase(db),
		Multiples:        databases.NewMultipleDatabase(db),
		Counters:         databases.NewCounterDatabase(db),
		Renderer:         renderer,
		Artifacts:        artifacts,
		Notifier:         notifier,
		StripTransferred: conf.StripTransferred,
		MaxStoredErrors:  conf.MaxStoredErrors,
		NotifyEmail:      conf.AdminEmail,
	}
}
