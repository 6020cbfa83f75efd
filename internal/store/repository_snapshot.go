package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lexisync/lexisync/internal/logger"
	"github.com/lexisync/lexisync/models"
)

// versionRaceAttempts bounds how many times Append re-executes the
// version-assigning insert after losing a race on the unique index.
const versionRaceAttempts = 3

// snapshotRepository is the PostgreSQL-backed implementation of
// [SnapshotStore]. All snapshot rows live in the "sync_snapshots" table;
// the (account_id, version) pair is unique, which is what serializes
// concurrent uploads for one account without locks.
//
// Every public method obtains a context-scoped logger via
// [logger.FromContext] so all database interactions are traced with
// structured fields (account_id, version, deleted counts).
type snapshotRepository struct {
	*DB
	logger *logger.Logger
}

// NewSnapshotRepository constructs a [SnapshotStore] backed by the
// provided database connection and logger.
func NewSnapshotRepository(db *DB, logger *logger.Logger) SnapshotStore {
	return &snapshotRepository{
		DB:     db,
		logger: logger,
	}
}

// Append implements [SnapshotStore]. The version is assigned inside a
// single INSERT statement (GREATEST of the declared version and the
// current maximum plus one), so the write is atomic: either the new
// version becomes visible or nothing is persisted.
//
// When two devices upload concurrently both read the same current
// version; the loser's insert violates the unique index and is retried,
// recomputing the maximum. Both writes succeed with distinct, strictly
// ordered versions — no upload is silently dropped.
func (s *snapshotRepository) Append(ctx context.Context, accountID string, payload models.Envelope, dataTypes []string, declaredVersion int64, modified time.Time) (int64, error) {
	log := logger.FromContext(ctx)

	size, err := payloadSize(payload)
	if err != nil {
		return 0, err
	}

	for attempt := 0; attempt < versionRaceAttempts; attempt++ {
		var assigned int64
		err := s.DB.QueryRowContext(ctx, appendSnapshot,
			accountID,
			declaredVersion,
			modified,
			jsonColumn[[]string]{val: dataTypes},
			string(payload.Kind),
			jsonColumn[models.Envelope]{val: payload},
			size,
		).Scan(&assigned)

		switch {
		case err == nil:
			log.Debug().
				Str("func", "snapshotRepository.Append").
				Str("account_id", accountID).
				Int64("declared_version", declaredVersion).
				Int64("assigned_version", assigned).
				Msg("snapshot appended")
			return assigned, nil

		case IsUniqueViolation(err):
			log.Debug().
				Str("func", "snapshotRepository.Append").
				Str("account_id", accountID).
				Int("attempt", attempt+1).
				Msg("lost version race, retrying insert")
			continue

		case errors.Is(err, sql.ErrNoRows):
			// INSERT ... SELECT over an aggregate always yields a row;
			// no row back means nothing was persisted.
			return 0, ErrSnapshotNotSaved

		default:
			log.Err(err).
				Str("func", "snapshotRepository.Append").
				Str("account_id", accountID).
				Msg("failed to insert snapshot")
			return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
	}

	return 0, ErrVersionRace
}

// Latest implements [SnapshotStore]. An account with no snapshot on file
// gets [models.EmptySnapshot] so new accounts sync cleanly.
func (s *snapshotRepository) Latest(ctx context.Context, accountID string) (models.SyncSnapshot, error) {
	log := logger.FromContext(ctx)

	var (
		snap      models.SyncSnapshot
		dataTypes jsonColumn[[]string]
		kind      string
		payload   jsonColumn[models.Envelope]
	)

	err := s.DB.QueryRowContext(ctx, latestSnapshot, accountID).Scan(
		&snap.ID,
		&snap.AccountID,
		&snap.Version,
		&snap.LastModified,
		&dataTypes,
		&kind,
		&payload,
		&snap.PayloadSize,
		&snap.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.EmptySnapshot(accountID), nil
	}
	if err != nil {
		log.Err(err).
			Str("func", "snapshotRepository.Latest").
			Str("account_id", accountID).
			Msg("failed to query latest snapshot")
		return models.SyncSnapshot{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	snap.DataTypes = dataTypes.val
	snap.Payload = payload.val
	snap.Payload.Kind = models.PayloadKind(kind)

	return snap, nil
}

// History implements [SnapshotStore].
func (s *snapshotRepository) History(ctx context.Context, accountID string, limit, offset uint64) ([]models.SnapshotMeta, int, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildHistoryQuery(accountID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "snapshotRepository.History").
			Str("account_id", accountID).
			Msg("failed to query snapshot history")
		return nil, 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	metas := make([]models.SnapshotMeta, 0, limit)

	for rows.Next() {
		var (
			meta      models.SnapshotMeta
			dataTypes jsonColumn[[]string]
			kind      string
		)

		if scanErr := rows.Scan(
			&meta.Version,
			&meta.LastModified,
			&dataTypes,
			&kind,
			&meta.PayloadSize,
			&meta.CreatedAt,
		); scanErr != nil {
			log.Err(scanErr).
				Str("func", "snapshotRepository.History").
				Str("account_id", accountID).
				Msg("failed to scan snapshot metadata row")
			return nil, 0, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}

		meta.DataTypes = dataTypes.val
		meta.Kind = models.PayloadKind(kind)
		metas = append(metas, meta)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, 0, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	countQuery, countArgs, err := buildHistoryCountQuery(accountID)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var total int
	if err := s.DB.QueryRowContext(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		log.Err(err).
			Str("func", "snapshotRepository.History").
			Str("account_id", accountID).
			Msg("failed to count snapshot history")
		return nil, 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return metas, total, nil
}

// Prune implements [SnapshotStore]. Deletes every version outside the
// keep newest ones and returns the removed row count.
func (s *snapshotRepository) Prune(ctx context.Context, accountID string, keep int) (int, error) {
	log := logger.FromContext(ctx)

	result, err := s.DB.ExecContext(ctx, pruneSnapshots, accountID, keep)
	if err != nil {
		log.Err(err).
			Str("func", "snapshotRepository.Prune").
			Str("account_id", accountID).
			Int("keep", keep).
			Msg("failed to prune snapshot history")
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if deleted > 0 {
		log.Debug().
			Str("func", "snapshotRepository.Prune").
			Str("account_id", accountID).
			Int64("deleted", deleted).
			Msg("pruned snapshot versions")
	}

	return int(deleted), nil
}

// payloadSize measures the serialized payload for telemetry. Blob
// envelopes are measured by their base64 length; structured payloads by
// their JSON encoding.
func payloadSize(payload models.Envelope) (int64, error) {
	if payload.Kind == models.KindEncrypted {
		return int64(len(payload.Blob)), nil
	}

	col := jsonColumn[models.Envelope]{val: payload}
	data, err := col.Value()
	if err != nil {
		return 0, err
	}
	return int64(len(data.([]byte))), nil
}
