package flickr

import "time"

// matchToleranceDays absorbs timezone-induced off-by-one-day differences
// between a file's embedded timestamp and the provider's recorded date.
const matchToleranceDays = 1

// MatchByDateTaken picks the catalog record whose capture date is closest to
// the local capture date, at most one whole day apart. Ties keep the earlier
// record in list order. Returns false when no candidate qualifies, including
// on an empty candidate list.
func MatchByDateTaken(local time.Time, candidates []CaptureRecord) (CaptureRecord, bool) {
	best := -1
	bestDiff := 0
	for i, candidate := range candidates {
		diff := dayDiff(local, candidate.DateTaken)
		if diff > matchToleranceDays {
			continue
		}
		if best < 0 || diff < bestDiff {
			best, bestDiff = i, diff
		}
	}
	if best < 0 {
		return CaptureRecord{}, false
	}
	return candidates[best], true
}

// dayDiff is the absolute difference in whole calendar days, time of day and
// zone ignored.
func dayDiff(a, b time.Time) int {
	diff := int(midnight(a).Sub(midnight(b)).Hours() / 24)
	if diff < 0 {
		diff = -diff
	}
	return diff
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
