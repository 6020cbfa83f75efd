package validators

import (
	"context"
	"encoding/base64"

	"github.com/lexisync/lexisync/models"
)

const (
	FieldDevice     = "device"
	FieldPayload    = "payload"
	FieldSnapshot   = "snapshot"
	FieldConflicts  = "conflicts"
	FieldResolution = "resolution"
)

// SyncRequestValidator validates the request bodies of the sync API
// before any state change happens in the service layer.
type SyncRequestValidator struct {
}

func NewSyncRequestValidator() Validator {
	return &SyncRequestValidator{}
}

func (v *SyncRequestValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.UploadRequest:
		return v.validateUploadRequest(ctx, value, fields...)
	case *models.UploadRequest:
		return v.validateUploadRequest(ctx, *value, fields...)

	case models.ResolveRequest:
		return v.validateResolveRequest(ctx, value, fields...)
	case *models.ResolveRequest:
		return v.validateResolveRequest(ctx, *value, fields...)

	default:
		return ErrUnsupportedType
	}
}

func (v *SyncRequestValidator) validateUploadRequest(_ context.Context, req models.UploadRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldDevice, FieldPayload, FieldSnapshot}
	}

	for _, f := range fields {
		switch f {
		case FieldDevice:
			if req.Device.DeviceID == "" {
				return ErrNoDevice
			}
		case FieldPayload:
			if req.Empty() {
				return ErrNoPayload
			}
			if req.Snapshot != "" && (len(req.Records) > 0 || req.Settings != nil || len(req.SearchHistory) > 0) {
				return ErrMixedPayload
			}
		case FieldSnapshot:
			if req.Snapshot != "" {
				if _, err := base64.StdEncoding.DecodeString(req.Snapshot); err != nil {
					return ErrBadSnapshot
				}
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *SyncRequestValidator) validateResolveRequest(_ context.Context, req models.ResolveRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldConflicts, FieldResolution}
	}

	for _, f := range fields {
		switch f {
		case FieldConflicts:
			if len(req.Conflicts) == 0 {
				return ErrNoConflicts
			}
		case FieldResolution:
			if !req.Resolution.Valid() {
				return ErrUnknownStrategy
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}
