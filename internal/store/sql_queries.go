package store

import (
	sq "github.com/Masterminds/squirrel"
)

const (
	// appendSnapshot assigns the new version atomically inside the
	// INSERT: the greater of the declared version and current max + 1.
	// The aggregate subquery over an empty lineage yields NULL, so a
	// first upload gets COALESCE → 0 + 1 = 1. A concurrent writer that
	// computes the same version loses on the (account_id, version)
	// unique index and the caller retries with a fresh max.
	appendSnapshot = `INSERT INTO sync_snapshots
		(account_id, version, last_modified, data_types, payload_kind, payload, payload_size)
	SELECT $1, GREATEST($2::bigint, COALESCE(MAX(version), 0) + 1), $3, $4, $5, $6, $7
	FROM sync_snapshots
	WHERE account_id = $1
	RETURNING version;`

	latestSnapshot = `SELECT id, account_id, version, last_modified, data_types, payload_kind, payload, payload_size, created_at
	FROM sync_snapshots
	WHERE account_id = $1
	ORDER BY version DESC
	LIMIT 1;`

	pruneSnapshots = `DELETE FROM sync_snapshots
	WHERE account_id = $1 AND version NOT IN (
		SELECT version FROM sync_snapshots
		WHERE account_id = $1
		ORDER BY version DESC
		LIMIT $2
	);`

	// touchDevice is the explicit single-statement upsert: creation and
	// refresh are one logical operation, not an insert guarded by a
	// caught unique-violation. A device syncing again is implicitly
	// reactivated.
	touchDevice = `INSERT INTO sync_devices
		(account_id, device_id, device_name, device_type, last_sync_time, sync_count, data_size, data_types, is_active)
	VALUES ($1, $2, $3, $4, $5, 1, $6, $7, TRUE)
	ON CONFLICT (account_id, device_id) DO UPDATE SET
		device_name    = COALESCE(NULLIF(EXCLUDED.device_name, ''), sync_devices.device_name),
		device_type    = COALESCE(NULLIF(EXCLUDED.device_type, ''), sync_devices.device_type),
		last_sync_time = EXCLUDED.last_sync_time,
		sync_count     = sync_devices.sync_count + 1,
		data_size      = sync_devices.data_size + EXCLUDED.data_size,
		data_types     = EXCLUDED.data_types,
		is_active      = TRUE,
		deactivated_at = NULL;`

	deactivateDevice = `UPDATE sync_devices
	SET is_active = FALSE, deactivated_at = NOW()
	WHERE account_id = $1 AND device_id = $2;`

	cleanupInactiveDevices = `DELETE FROM sync_devices
	WHERE account_id = $1 AND is_active = FALSE AND last_sync_time < $2;`
)

// psql builds squirrel queries with PostgreSQL $n placeholders.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// buildHistoryQuery assembles the paginated snapshot-metadata listing.
func buildHistoryQuery(accountID string, limit, offset uint64) (string, []any, error) {
	return psql.
		Select("version", "last_modified", "data_types", "payload_kind", "payload_size", "created_at").
		From("sync_snapshots").
		Where(sq.Eq{"account_id": accountID}).
		OrderBy("version DESC").
		Limit(limit).
		Offset(offset).
		ToSql()
}

// buildHistoryCountQuery counts an account's snapshots for pagination.
func buildHistoryCountQuery(accountID string) (string, []any, error) {
	return psql.
		Select("COUNT(*)").
		From("sync_snapshots").
		Where(sq.Eq{"account_id": accountID}).
		ToSql()
}

// buildListDevicesQuery assembles the device listing, most recent first.
func buildListDevicesQuery(accountID string) (string, []any, error) {
	return psql.
		Select("account_id", "device_id", "device_name", "device_type",
			"last_sync_time", "sync_count", "data_size", "data_types",
			"is_active", "deactivated_at", "created_at").
		From("sync_devices").
		Where(sq.Eq{"account_id": accountID}).
		OrderBy("last_sync_time DESC").
		ToSql()
}
