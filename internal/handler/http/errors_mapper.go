package http

import (
	"errors"
	"net/http"

	"github.com/lexisync/lexisync/internal/crypto"
	"github.com/lexisync/lexisync/internal/service"
	"github.com/lexisync/lexisync/internal/store"
	"github.com/lexisync/lexisync/internal/validators"
)

var errorStatusMap = map[error]int{
	validators.ErrNoPayload:       http.StatusBadRequest,
	validators.ErrMixedPayload:    http.StatusBadRequest,
	validators.ErrNoDevice:        http.StatusBadRequest,
	validators.ErrBadSnapshot:     http.StatusBadRequest,
	validators.ErrUnknownStrategy: http.StatusBadRequest,
	validators.ErrNoConflicts:     http.StatusBadRequest,

	service.ErrStructuredSnapshotRequired: http.StatusConflict,

	store.ErrSnapshotNotSaved: http.StatusInternalServerError,
	store.ErrDeviceNotFound:   http.StatusNotFound,
	store.ErrVersionRace:      http.StatusConflict,

	crypto.ErrIntegrity:     http.StatusUnprocessableEntity,
	crypto.ErrNoKeyMaterial: http.StatusInternalServerError,
	crypto.ErrInvalidKey:    http.StatusInternalServerError,

	store.ErrBuildingSQLQuery:   http.StatusInternalServerError,
	store.ErrExecutingQuery:     http.StatusInternalServerError,
	store.ErrExecutingStatement: http.StatusInternalServerError,
	store.ErrScanningRow:        http.StatusInternalServerError,
	store.ErrScanningRows:       http.StatusInternalServerError,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}
