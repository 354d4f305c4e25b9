package pivot

import "time"

// Age bucket labels in report order. The order is fixed by contract and is
// not alphabetical, so column ordering must always go through BucketLabels.
var BucketLabels = []string{
	"<15Days",
	"16-30Days",
	"31-60Days",
	"61-90Days",
	"91-180Days",
	">180Days",
}

// AgeDays returns the whole days elapsed between filed and the reference
// time, floored. A filed date in the future clamps to zero.
func AgeDays(reference, filed time.Time) int {
	days := int(reference.Sub(filed).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}

// AgeBucket maps an age in days onto its bucket label. Boundaries are
// inclusive on the upper end; age 0 lands in the first bucket.
func AgeBucket(ageDays int) string {
	switch {
	case ageDays <= 15:
		return BucketLabels[0]
	case ageDays <= 30:
		return BucketLabels[1]
	case ageDays <= 60:
		return BucketLabels[2]
	case ageDays <= 90:
		return BucketLabels[3]
	case ageDays <= 180:
		return BucketLabels[4]
	default:
		return BucketLabels[5]
	}
}

func bucketIndex(label string) int {
	for i, b := range BucketLabels {
		if b == label {
			return i
		}
	}
	return len(BucketLabels)
}
