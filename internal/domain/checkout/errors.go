package checkout

import "errors"

var (
	// ErrCheckoutInProgress means a reserve or pay action for this session
	// is already in flight; both actions stay blocked until it finishes.
	ErrCheckoutInProgress = errors.New("a checkout action is already in progress")

	// ErrNoActiveResults means the session has no committed search results
	// to check out from (never searched, superseded, or expired).
	ErrNoActiveResults = errors.New("no active search results for this session")

	// ErrRoomNotInResults means the requested room is not part of the
	// session's committed result set.
	ErrRoomNotInResults = errors.New("room is not part of the current search results")

	// ErrMissingRedirectTarget means the payment preference was created but
	// came back without a usable gateway URL. The handoff must not proceed
	// to an undefined destination.
	ErrMissingRedirectTarget = errors.New("payment preference has no redirect URL")
)
