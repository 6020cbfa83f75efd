package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	// ErrNoPayload is returned when an upload carries neither a
	// structured delta nor an opaque snapshot.
	ErrNoPayload = errors.New("no sync payload provided")

	// ErrMixedPayload is returned when an upload carries both an opaque
	// snapshot and structured fields; the two modes are mutually
	// exclusive per call.
	ErrMixedPayload = errors.New("snapshot and structured payloads are mutually exclusive")

	// ErrNoDevice is returned when the upload does not identify the
	// uploading device.
	ErrNoDevice = errors.New("no device ID provided")

	// ErrBadSnapshot is returned when the opaque snapshot field is not
	// valid base64.
	ErrBadSnapshot = errors.New("opaque snapshot is not valid base64")

	// ErrUnknownStrategy is returned when conflict resolution names a
	// strategy outside {local, remote, merge, manual}.
	ErrUnknownStrategy = errors.New("unknown conflict resolution strategy")

	// ErrNoConflicts is returned when conflict resolution is requested
	// with an empty conflict list.
	ErrNoConflicts = errors.New("no conflicts provided")
)
