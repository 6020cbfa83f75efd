package models

// ConflictKind classifies why two record versions were flagged.
type ConflictKind string

const (
	// ConflictConcurrentReview means both sides reviewed the word within
	// the concurrency window (under one hour apart) — the classic
	// two-devices-studying-at-once case.
	ConflictConcurrentReview ConflictKind = "concurrent_review"
)

// ResolutionStrategy names how a reported conflict should be settled.
type ResolutionStrategy string

const (
	// ResolveLocal keeps the local (uploading device's) record wholesale.
	ResolveLocal ResolutionStrategy = "local"

	// ResolveRemote keeps the stored (server-side) record wholesale.
	ResolveRemote ResolutionStrategy = "remote"

	// ResolveMerge reapplies the field-level merge policy.
	ResolveMerge ResolutionStrategy = "merge"

	// ResolveManual is a placeholder for caller-supplied resolved values;
	// the engine leaves the stored record untouched.
	ResolveManual ResolutionStrategy = "manual"
)

// Valid reports whether s is one of the known strategies.
func (s ResolutionStrategy) Valid() bool {
	switch s {
	case ResolveLocal, ResolveRemote, ResolveMerge, ResolveManual:
		return true
	}
	return false
}

// ConflictReport describes one divergent record pair detected during a
// merge. Reports are transient: they are returned to the caller and
// folded into the resulting snapshot until resolved, but have no
// independent persistence.
type ConflictReport struct {
	// Key is the record key ("word/language") the conflict concerns.
	Key string `json:"key"`

	// Local is the uploading device's version of the record.
	Local LearningRecord `json:"local"`

	// Remote is the stored (server-side) version of the record.
	Remote LearningRecord `json:"remote"`

	Kind ConflictKind `json:"kind"`

	// Resolution records the automatically chosen merged value. The
	// merge is never blocked by detection; this is what the engine
	// applied while the conflict awaits confirmation or override.
	Resolution *LearningRecord `json:"resolution,omitempty"`
}
