package models

import "time"

// DataType names a kind of synchronized data declared by a snapshot or a
// device. Stored as plain strings so new kinds can be added without a
// migration.
type DataType = string

const (
	DataTypeRecords       DataType = "records"
	DataTypeSettings      DataType = "settings"
	DataTypeSearchHistory DataType = "search_history"
	DataTypeBlob          DataType = "blob"
)

// PayloadKind discriminates the two payload modes a snapshot can carry.
type PayloadKind string

const (
	// KindStructured marks a snapshot whose payload is a parsed
	// StructuredPayload the engine can merge field by field.
	KindStructured PayloadKind = "structured"

	// KindEncrypted marks a snapshot whose payload is an opaque
	// authenticated-encryption envelope the engine stores verbatim.
	KindEncrypted PayloadKind = "encrypted"
)

// Envelope is the tagged union of the two snapshot payload modes. Exactly
// one of Structured or Blob is set, selected by Kind. Merge logic never
// has to introspect untyped data: it switches on Kind and works with the
// typed branch.
type Envelope struct {
	Kind PayloadKind `json:"kind"`

	// Structured is set when Kind == KindStructured.
	Structured *StructuredPayload `json:"structured,omitempty"`

	// Blob is the base64-encoded IV ‖ authTag ‖ ciphertext envelope,
	// set when Kind == KindEncrypted.
	Blob string `json:"blob,omitempty"`
}

// StructuredPayload is the mergeable snapshot body: the account's full
// record set plus derived aggregates.
type StructuredPayload struct {
	Records       []LearningRecord `json:"records"`
	Settings      *SettingsRecord  `json:"settings,omitempty"`
	SearchHistory []SearchEntry    `json:"searchHistory,omitempty"`

	// TotalWords counts distinct records in the set. Incremented when a
	// merge inserts a record unseen on the other side.
	TotalWords int `json:"totalWords"`

	// AverageMastery is the mean mastery across all records, recomputed
	// after every merge. Zero when the record set is empty.
	AverageMastery float64 `json:"averageMastery"`

	// Conflicts holds conflict reports detected during the merge that
	// produced this snapshot and not yet resolved by the user. Cleared
	// by conflict resolution.
	Conflicts []ConflictReport `json:"conflicts,omitempty"`
}

// RecordByKey returns the record with the given key and whether it exists.
func (p *StructuredPayload) RecordByKey(key string) (LearningRecord, bool) {
	for _, rec := range p.Records {
		if rec.Key() == key {
			return rec, true
		}
	}
	return LearningRecord{}, false
}

// SyncSnapshot is one versioned, immutable unit of an account's persisted
// sync state. Snapshots are append-only: every upload creates a new row
// with a strictly greater version; old versions are pruned beyond the
// retention window.
type SyncSnapshot struct {
	ID           int64     `json:"-"`
	AccountID    string    `json:"-"`
	Version      int64     `json:"version"`
	LastModified time.Time `json:"lastModified"`
	DataTypes    []string  `json:"dataTypes"`
	PayloadSize  int64     `json:"payloadSize"`
	Payload      Envelope  `json:"payload"`
	CreatedAt    time.Time `json:"createdAt"`
}

// EmptySnapshot returns the well-formed zero snapshot served to accounts
// with no sync history: version 0, structured, no records. New accounts
// download this and sync cleanly instead of hitting a not-found error.
func EmptySnapshot(accountID string) SyncSnapshot {
	return SyncSnapshot{
		AccountID: accountID,
		Version:   0,
		DataTypes: []string{},
		Payload: Envelope{
			Kind:       KindStructured,
			Structured: &StructuredPayload{Records: []LearningRecord{}},
		},
	}
}

// SnapshotMeta is the lightweight descriptor returned by the history
// listing: everything about a snapshot except its payload.
type SnapshotMeta struct {
	Version      int64       `json:"version"`
	LastModified time.Time   `json:"lastModified"`
	DataTypes    []string    `json:"dataTypes"`
	PayloadSize  int64       `json:"payloadSize"`
	Kind         PayloadKind `json:"kind"`
	CreatedAt    time.Time   `json:"createdAt"`
}
