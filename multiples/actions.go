package multiples

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/hmcts/et-multiples-api/models"
)

// PreAccept moves member cases into the Accepted state, optionally only the
// given subset.
func (s *Service) PreAccept(ctx context.Context, country Country, multipleRef string, req models.PreAcceptRequest) (*Result, error) {
	return s.run(ctx, country, multipleRef, req.CaseRefs, &preAcceptAction{})
}

type preAcceptAction struct{}

func (a *preAcceptAction) name() string { return "pre-accept" }

func (a *preAcceptAction) validate(ctx context.Context, r *bulkRun) []string {
	return nil
}

func (a *preAcceptAction) apply(ctx context.Context, r *bulkRun, mc *memberCase) (bool, error) {
	switch mc.Case.Details.State {
	case models.StateClosed:
		return false, fmt.Errorf("case is closed and cannot be pre-accepted")
	case models.StateTransferred:
		return false, fmt.Errorf("case has been transferred and cannot be pre-accepted")
	case models.StateAccepted:
		// already accepted, converge without a write
		return false, nil
	}
	mc.Case.Details.State = models.StateAccepted
	mc.Case.Details.PositionType = "Multiple pre-acceptance"
	return true, nil
}

func (a *preAcceptAction) finalize(ctx context.Context, r *bulkRun) {}

// Close closes the multiple and every member case. Validation requires every
// member to be in a closeable state before anything is written.
func (s *Service) Close(ctx context.Context, country Country, multipleRef string, req models.CloseMultipleRequest) (*Result, error) {
	res, err := s.run(ctx, country, multipleRef, nil, &closeAction{
		fileLocation: req.FileLocation,
		clerk:        req.Clerk,
	})
	if err != nil {
		return nil, err
	}
	s.notify(multipleRef, "close", res)
	return res, nil
}

type closeAction struct {
	fileLocation string
	clerk        string
}

func (a *closeAction) name() string { return "close" }

func (a *closeAction) validate(ctx context.Context, r *bulkRun) []string {
	var errs []string
	for _, mc := range r.members {
		if mc.Case == nil {
			continue
		}
		state := mc.Case.Details.State
		if state != models.StateAccepted && state != models.StateClosed {
			errs = append(errs, fmt.Sprintf("%s: case in state %s is not closeable", NormalizeRef(mc.entry.CaseReference), state))
		}
	}
	return errs
}

func (a *closeAction) apply(ctx context.Context, r *bulkRun, mc *memberCase) (bool, error) {
	if mc.Case.Details.State == models.StateClosed {
		return false, nil
	}
	mc.Case.Details.State = models.StateClosed
	mc.Case.Details.PositionType = "Case closed"
	if a.fileLocation != "" {
		mc.Case.Details.FileLocation = a.fileLocation
	}
	if a.clerk != "" {
		mc.Case.Details.Clerk = a.clerk
	}
	return true, nil
}

func (a *closeAction) finalize(ctx context.Context, r *bulkRun) {
	r.multiple.Details.State = models.MultipleStateClosed
}

// Fix repairs ledger drift: duplicate entries are removed, the derived count
// is recomputed and member cases whose own multiple reference has drifted are
// re-pointed at this multiple.
func (s *Service) Fix(ctx context.Context, country Country, multipleRef string, req models.FixMultipleRequest) (*Result, error) {
	return s.run(ctx, country, multipleRef, nil, &fixAction{})
}

type fixAction struct{}

func (a *fixAction) name() string { return "fix" }

func (a *fixAction) validate(ctx context.Context, r *bulkRun) []string {
	return nil
}

func (a *fixAction) apply(ctx context.Context, r *bulkRun, mc *memberCase) (bool, error) {
	want := r.multiple.Details.MultipleReference
	if mc.Case.Details.MultipleReference == want {
		return false, nil
	}
	if mc.Case.Details.MultipleReference != "" && mc.Case.Details.MultipleReference != want {
		return false, fmt.Errorf("case claims membership of multiple %s", mc.Case.Details.MultipleReference)
	}
	mc.Case.Details.MultipleReference = want
	return true, nil
}

func (a *fixAction) finalize(ctx context.Context, r *bulkRun) {
	for _, ref := range r.ledger.Dedupe() {
		r.addError(ref, "duplicate ledger entry removed")
	}
}

// notify emails an outcome summary when a notifier is configured. Failures
// are logged and never affect the response.
func (s *Service) notify(multipleRef, action string, res *Result) {
	if s.Notifier == nil || s.NotifyEmail == "" {
		return
	}
	if err := s.Notifier.SendBulkSummary(s.NotifyEmail, multipleRef, action, len(res.Processed), res.Errors); err != nil {
		zap.S().Warnw("bulk summary notification failed",
			"multipleReference", multipleRef,
			"action", action,
			"error", err,
		)
	}
}
