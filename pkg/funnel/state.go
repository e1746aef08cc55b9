// Package funnel implements the lead-capture flows behind the enquiry
// and purchase dialogs: a small per-dialog state machine, validation,
// analytics, CRM submission and the payment redirect. Everything a
// flow touches (analytics sink, CRM client, link opener, scroll lock)
// is injected.
package funnel

import "errors"

// State is the lifecycle of one form session.
type State int

const (
	// Idle allows editing. Failed submissions return here with
	// field-level errors attached.
	Idle State = iota
	// Loading means a submission is in flight; the submit control is
	// disabled and re-entrant submits are ignored.
	Loading
	// Success is the enquiry flow's terminal acknowledgement state.
	Success
	// Redirecting is the purchase flow's window between the CRM
	// attempt and the payment-link navigation.
	Redirecting
)

var stateName = map[State]string{
	Idle:        "IDLE",
	Loading:     "LOADING",
	Success:     "SUCCESS",
	Redirecting: "REDIRECTING",
}

func (s State) String() string {
	return stateName[s]
}

// ErrSubmitInFlight is returned when Submit is called while a previous
// submission is still loading. Callers treat it as a no-op.
var ErrSubmitInFlight = errors.New("submission already in flight")

// ErrClosed is returned when Submit is called on a closed dialog.
var ErrClosed = errors.New("dialog is not open")
