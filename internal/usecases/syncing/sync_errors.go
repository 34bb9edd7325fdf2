package syncing

import "errors"

var (
	ErrSyncInProgress          = errors.New("integration is already syncing")
	ErrSessionAwaitingDecision = errors.New("partial sync awaits continue or close")
	ErrSessionNotResumable     = errors.New("sync session cannot be continued")
	ErrSessionBusy             = errors.New("sync session is running")
	ErrSessionNotFound         = errors.New("sync session not found")
)
