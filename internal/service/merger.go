package service

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/lexisync/lexisync/internal/logger"
	"github.com/lexisync/lexisync/models"
)

// conflictWindow is the concurrency window for conflict detection: two
// reviewed copies of the same record diverging by less than this are
// flagged as a concurrent edit.
const conflictWindow = time.Hour

// recordMerger is the concrete implementation of [RecordMerger].
//
// It holds only a logger (for skipped-record diagnostics); the merge
// itself is stateless, so the same two inputs always produce the same
// output regardless of when or how often the merger runs.
type recordMerger struct {
	logger *logger.Logger
}

// NewRecordMerger constructs a [RecordMerger].
func NewRecordMerger(logger *logger.Logger) RecordMerger {
	return &recordMerger{logger: logger}
}

// Merge implements [RecordMerger].
//
// The stored side is the account's latest snapshot payload ("remote");
// the incoming side is the uploading device's delta ("local"). For each
// incoming record:
//
//   - malformed (missing word): skipped and logged, merge proceeds;
//   - unseen key: inserted as new;
//   - key present on both sides: conflict detection runs, then the
//     field-merge policy produces a single deterministic result.
//
// Settings merge group-wise, search history merges as a capped set, and
// the aggregate counters are recomputed at the end. Conflicts from the
// stored payload that were not re-resolved stay open.
func (m *recordMerger) Merge(stored, incoming *models.StructuredPayload) MergeResult {
	if stored == nil {
		stored = &models.StructuredPayload{}
	}
	if incoming == nil {
		incoming = &models.StructuredPayload{}
	}

	merged := &models.StructuredPayload{
		Records: append([]models.LearningRecord(nil), stored.Records...),
	}

	index := make(map[string]int, len(merged.Records))
	for i, rec := range merged.Records {
		index[rec.Key()] = i
	}

	var (
		conflicts []models.ConflictReport
		skipped   []string
	)

	for i, local := range incoming.Records {
		if !local.Valid() {
			key := local.Key()
			if local.Word == "" {
				key = fmt.Sprintf("record[%d]", i)
			}
			skipped = append(skipped, key)
			m.logger.Warn().
				Str("func", "recordMerger.Merge").
				Str("key", key).
				Msg("skipping malformed learning record")
			continue
		}

		pos, exists := index[local.Key()]
		if !exists {
			merged.Records = append(merged.Records, local)
			index[local.Key()] = len(merged.Records) - 1
			continue
		}

		remote := merged.Records[pos]

		if report, conflicting := detectConflict(remote, local); conflicting {
			resolution := m.MergeRecordPair(remote, local)
			report.Resolution = &resolution
			conflicts = append(conflicts, report)
		}

		merged.Records[pos] = m.MergeRecordPair(remote, local)
	}

	merged.Settings = mergeSettings(stored.Settings, incoming.Settings)
	merged.SearchHistory = mergeSearchHistory(stored.SearchHistory, incoming.SearchHistory)

	merged.TotalWords = len(merged.Records)
	merged.AverageMastery = averageMastery(merged.Records)

	// Conflicts stay attached to the lineage until resolved; newly
	// detected ones are appended after any still-open reports.
	merged.Conflicts = appendConflicts(stored.Conflicts, conflicts)

	return MergeResult{
		Payload:   merged,
		Conflicts: conflicts,
		Skipped:   skipped,
	}
}

// detectConflict flags a record pair as a concurrent edit when both
// sides have non-zero review counts and their last reviews fall within
// the conflict window of each other.
func detectConflict(remote, local models.LearningRecord) (models.ConflictReport, bool) {
	if remote.ReviewCount == 0 || local.ReviewCount == 0 {
		return models.ConflictReport{}, false
	}

	delta := remote.LastReviewDate.Sub(local.LastReviewDate)
	if delta < 0 {
		delta = -delta
	}
	if delta >= conflictWindow {
		return models.ConflictReport{}, false
	}

	return models.ConflictReport{
		Key:    local.Key(),
		Local:  local,
		Remote: remote,
		Kind:   models.ConflictConcurrentReview,
	}, true
}

// MergeRecordPair implements [RecordMerger]. The per-field policy:
//
//   - counters: max of the two — monotonic counters never regress;
//   - lastReviewDate: the later of the two;
//   - mastery: mean, rounded, clamped to [0, 100];
//   - totalStudyTime: sum — both sides recorded disjoint sessions;
//   - averageResponseTime: weighted by each side's review count;
//   - tags: set union, sorted for determinism;
//   - notes: the longer non-empty string wins;
//   - remaining scalars (interval, ease factor, confidence, next
//     review): owned by whichever side reviewed most recently.
func (m *recordMerger) MergeRecordPair(stored, incoming models.LearningRecord) models.LearningRecord {
	recent, other := stored, incoming
	if incoming.LastReviewDate.After(stored.LastReviewDate) {
		recent, other = incoming, stored
	}

	merged := models.LearningRecord{
		Word:     recent.Word,
		Language: recent.Language,

		ReviewCount:    maxInt(stored.ReviewCount, incoming.ReviewCount),
		CorrectCount:   maxInt(stored.CorrectCount, incoming.CorrectCount),
		IncorrectCount: maxInt(stored.IncorrectCount, incoming.IncorrectCount),

		Mastery: clampMastery(int(math.Round(float64(stored.Mastery+incoming.Mastery) / 2))),

		LastReviewDate: recent.LastReviewDate,
		NextReviewDate: recent.NextReviewDate,

		TotalStudyTime: stored.TotalStudyTime + incoming.TotalStudyTime,

		IntervalDays: recent.IntervalDays,
		EaseFactor:   recent.EaseFactor,
		Confidence:   recent.Confidence,

		Tags: unionTags(stored.Tags, incoming.Tags),
	}

	merged.AverageResponseTime = weightedResponseTime(stored, incoming, recent)

	merged.Notes = longerNotes(recent.Notes, other.Notes)

	return merged
}

// weightedResponseTime averages the two response times weighted by each
// side's review count. With no reviews on either side the most recently
// reviewed side's value carries over.
func weightedResponseTime(stored, incoming, recent models.LearningRecord) float64 {
	total := stored.ReviewCount + incoming.ReviewCount
	if total == 0 {
		return recent.AverageResponseTime
	}

	weighted := stored.AverageResponseTime*float64(stored.ReviewCount) +
		incoming.AverageResponseTime*float64(incoming.ReviewCount)
	return weighted / float64(total)
}

// longerNotes prefers the longer non-empty string; on equal lengths the
// first argument (the more recently reviewed side) wins.
func longerNotes(recent, other string) string {
	if len(other) > len(recent) {
		return other
	}
	return recent
}

func unionTags(a, b []string) []string {
	if len(a) == 0 && len(b) == 0 {
		return nil
	}

	set := make(map[string]struct{}, len(a)+len(b))
	for _, tag := range a {
		set[tag] = struct{}{}
	}
	for _, tag := range b {
		set[tag] = struct{}{}
	}

	union := make([]string, 0, len(set))
	for tag := range set {
		union = append(union, tag)
	}
	sort.Strings(union)

	return union
}

func clampMastery(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func averageMastery(records []models.LearningRecord) float64 {
	if len(records) == 0 {
		return 0
	}

	var sum int
	for _, rec := range records {
		sum += rec.Mastery
	}
	return float64(sum) / float64(len(records))
}

// appendConflicts folds newly detected conflicts after the still-open
// ones, deduplicating by record key (a re-detected conflict replaces the
// older report for the same key).
func appendConflicts(open, detected []models.ConflictReport) []models.ConflictReport {
	if len(open) == 0 {
		return detected
	}

	redetected := make(map[string]struct{}, len(detected))
	for _, c := range detected {
		redetected[c.Key] = struct{}{}
	}

	result := make([]models.ConflictReport, 0, len(open)+len(detected))
	for _, c := range open {
		if _, replaced := redetected[c.Key]; !replaced {
			result = append(result, c)
		}
	}

	return append(result, detected...)
}
