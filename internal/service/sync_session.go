package service

import (
	"github.com/lexisync/lexisync/internal/logger"
)

// syncState names one phase of a sync session's lifecycle.
type syncState string

const (
	stateIdle        syncState = "idle"
	stateUploading   syncState = "uploading"
	stateMerging     syncState = "merging"
	statePersisting  syncState = "persisting"
	stateDownloading syncState = "downloading"
	stateDone        syncState = "done"
	stateFailed      syncState = "failed"
)

// syncSession tracks the state machine of one sync operation:
//
//	Idle → Uploading → Merging → Persisting → Done
//	Idle → Downloading → Done
//	any state → Failed on unrecoverable error
//
// Sessions are per-request values, never shared; transitions exist for
// structured logging and post-mortem tracing, not for locking.
type syncSession struct {
	accountID string
	state     syncState
	logger    *logger.Logger
}

func newSyncSession(accountID string, log *logger.Logger) *syncSession {
	return &syncSession{
		accountID: accountID,
		state:     stateIdle,
		logger:    log,
	}
}

// transition advances the session and logs the edge.
func (s *syncSession) transition(next syncState) {
	s.logger.Debug().
		Str("account_id", s.accountID).
		Str("from", string(s.state)).
		Str("to", string(next)).
		Msg("sync session transition")
	s.state = next
}

// fail moves the session to Failed, logs the cause, and returns err so
// call sites can `return resp, session.fail(err)`.
func (s *syncSession) fail(err error) error {
	s.logger.Err(err).
		Str("account_id", s.accountID).
		Str("from", string(s.state)).
		Msg("sync session failed")
	s.state = stateFailed
	return err
}
