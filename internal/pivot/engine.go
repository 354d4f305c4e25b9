// Package pivot builds the aging and status cross-tabulation reports from a
// loaded complaint table. Every operation is a pure function of its inputs:
// the caller supplies the records and, for aging reports, the reference time,
// so two calls over the same table and time produce identical output.
package pivot

import (
	"sort"
	"strings"
	"time"

	"complaints-service/internal/model"
)

// OpenComplaintPivot cross-tabulates open complaints by type and department.
func OpenComplaintPivot(records []model.Complaint) *Table {
	pairs := make([]cellKey, 0, len(records))
	for _, c := range filterOpen(records) {
		pairs = append(pairs, cellKey{
			row: normalizeLabel(c.Type),
			col: normalizeLabel(c.Dept),
		})
	}
	t := crossTab(model.ColumnType, pairs, nil)
	t.AddGrandTotals()
	return t
}

// OpenCloseComplaintPivot cross-tabulates all complaints by type against the
// department/status pair. The two column dimensions flatten into a single
// underscore-joined key, e.g. "Water_Open".
func OpenCloseComplaintPivot(records []model.Complaint) *Table {
	pairs := make([]cellKey, 0, len(records))
	for _, c := range records {
		pairs = append(pairs, cellKey{
			row: normalizeLabel(c.Type),
			col: normalizeLabel(c.Dept) + "_" + string(c.Status),
		})
	}
	t := crossTab(model.ColumnType, pairs, nil)
	t.AddGrandTotals()
	return t
}

// OpenCloseComplaintReport is the report-endpoint variant of
// OpenCloseComplaintPivot: same axes, counted by row occurrence.
func OpenCloseComplaintReport(records []model.Complaint) *Table {
	return OpenCloseComplaintPivot(records)
}

// AgingOpenPivot buckets open complaints by age in days relative to the
// reference time and cross-tabulates type against age bucket. All six bucket
// columns appear, in canonical order, even when empty.
func AgingOpenPivot(records []model.Complaint, reference time.Time) *Table {
	return agingPivot(filterOpen(records), reference)
}

// AgingOpenClosePivot is AgingOpenPivot over the full table, closed
// complaints included. Ages of closed complaints keep counting from the
// filed date; the report makes no attempt to stop their clock.
func AgingOpenClosePivot(records []model.Complaint, reference time.Time) *Table {
	return agingPivot(records, reference)
}

func agingPivot(records []model.Complaint, reference time.Time) *Table {
	pairs := make([]cellKey, 0, len(records))
	for _, c := range records {
		pairs = append(pairs, cellKey{
			row: normalizeLabel(c.Type),
			col: AgeBucket(AgeDays(reference, c.FiledAt)),
		})
	}
	t := crossTab(model.ColumnType, pairs, BucketLabels)
	t.AddGrandTotals()
	return t
}

// AllAgingComplaintReport cross-tabulates type against the full
// bucket/department/status cross, one complaint counted per serial id.
// Composite columns are underscore-joined and ordered by bucket first, then
// department, then status.
func AllAgingComplaintReport(records []model.Complaint, reference time.Time) *Table {
	type combo struct {
		bucket string
		dept   string
		status string
	}

	pairs := make([]cellKey, 0, len(records))
	seen := make(map[combo]struct{})
	for _, c := range records {
		k := combo{
			bucket: AgeBucket(AgeDays(reference, c.FiledAt)),
			dept:   normalizeLabel(c.Dept),
			status: string(c.Status),
		}
		seen[k] = struct{}{}
		pairs = append(pairs, cellKey{
			row: normalizeLabel(c.Type),
			col: k.bucket + "_" + k.dept + "_" + k.status,
		})
	}

	combos := make([]combo, 0, len(seen))
	for k := range seen {
		combos = append(combos, k)
	}
	sort.Slice(combos, func(i, j int) bool {
		if bi, bj := bucketIndex(combos[i].bucket), bucketIndex(combos[j].bucket); bi != bj {
			return bi < bj
		}
		if combos[i].dept != combos[j].dept {
			return combos[i].dept < combos[j].dept
		}
		return combos[i].status < combos[j].status
	})
	colOrder := make([]string, len(combos))
	for i, k := range combos {
		colOrder[i] = k.bucket + "_" + k.dept + "_" + k.status
	}

	t := crossTab(model.ColumnType, pairs, colOrder)
	t.AddGrandTotals()
	return t
}

func filterOpen(records []model.Complaint) []model.Complaint {
	open := make([]model.Complaint, 0, len(records))
	for _, c := range records {
		if c.Status == model.StatusOpen {
			open = append(open, c)
		}
	}
	return open
}

// normalizeLabel trims and title-cases a categorical value so cosmetic
// variants (" water leak", "WATER LEAK") collapse into one group.
func normalizeLabel(s string) string {
	words := strings.Fields(strings.ToLower(s))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
