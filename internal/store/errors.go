package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known
// failure conditions. Callers should use [errors.Is] to match against
// these values.
var (
	// ErrSnapshotNotSaved is returned when an INSERT of a snapshot
	// completes without error but no row was actually persisted.
	ErrSnapshotNotSaved = errors.New("snapshot was not saved")

	// ErrDeviceNotFound is returned when an operation targets a device
	// (identified by account_id and device_id) that does not exist.
	ErrDeviceNotFound = errors.New("device was not found")

	// ErrVersionRace is returned when the version-assignment insert
	// keeps colliding with concurrent writers after all retries. The
	// caller may retry the whole upload.
	ErrVersionRace = errors.New("snapshot version assignment kept racing")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain
// logic can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised
	// SQL query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT or similar
	// read-only query against the database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrExecutingStatement is returned when executing a DML statement
	// (INSERT, UPDATE, DELETE) fails.
	ErrExecutingStatement = errors.New("failed to execute statement")

	// ErrScanningRow is returned when scanning column values from a
	// single result row into a destination struct fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when scanning column values during
	// multi-row iteration fails, typically mid-result-set.
	ErrScanningRows = errors.New("failed to scan rows")
)
