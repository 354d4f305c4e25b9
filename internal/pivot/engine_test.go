package pivot

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"complaints-service/internal/model"
)

var reference = time.Date(2026, time.August, 24, 10, 0, 0, 0, time.UTC)

func complaint(id int, typ, dept string, status model.Status, daysAgo int) model.Complaint {
	return model.Complaint{
		ID:      id,
		Type:    typ,
		Dept:    dept,
		Status:  status,
		FiledAt: reference.AddDate(0, 0, -daysAgo),
	}
}

func scenarioRecords() []model.Complaint {
	return []model.Complaint{
		complaint(1, "Leak", "Water", model.StatusOpen, 0),
		complaint(2, "Leak", "Water", model.StatusOpen, 20),
		complaint(3, "Leak", "Sewer", model.StatusClosed, 100),
		complaint(4, "Road", "Roads", model.StatusOpen, 5),
	}
}

func cellValue(t *testing.T, r Record, name string) int {
	t.Helper()
	v, ok := r.Get(name)
	require.True(t, ok, "field %q missing", name)
	n, ok := v.(int)
	require.True(t, ok, "field %q is not an int", name)
	return n
}

func rowByLabel(t *testing.T, records []Record, label string) Record {
	t.Helper()
	for _, r := range records {
		if v, _ := r.Get(model.ColumnType); v == label {
			return r
		}
	}
	t.Fatalf("row %q not found", label)
	return Record{}
}

func TestOpenComplaintPivotScenario(t *testing.T) {
	records := OpenComplaintPivot(scenarioRecords()).Records()
	require.Len(t, records, 3)

	leak := rowByLabel(t, records, "Leak")
	assert.Equal(t, 2, cellValue(t, leak, "Water"))
	assert.Equal(t, 2, cellValue(t, leak, GrandTotalLabel))

	road := rowByLabel(t, records, "Road")
	assert.Equal(t, 1, cellValue(t, road, "Roads"))
	assert.Equal(t, 1, cellValue(t, road, GrandTotalLabel))

	total := rowByLabel(t, records, GrandTotalLabel)
	assert.Equal(t, 2, cellValue(t, total, "Water"))
	assert.Equal(t, 1, cellValue(t, total, "Roads"))
	assert.Equal(t, 3, cellValue(t, total, GrandTotalLabel))

	// The closed Sewer complaint must not surface anywhere.
	_, hasSewer := total.Get("Sewer")
	assert.False(t, hasSewer)
}

func TestGrandTotalInvariant(t *testing.T) {
	table := OpenCloseComplaintPivot(scenarioRecords())

	lastCol := len(table.Columns) - 1
	require.Equal(t, GrandTotalLabel, table.Columns[lastCol])

	totalRow := table.Rows[len(table.Rows)-1]
	require.Equal(t, GrandTotalLabel, totalRow.Label)

	sumRowTotals := 0
	for _, row := range table.Rows[:len(table.Rows)-1] {
		sumRowTotals += row.Cells[lastCol]
	}
	sumColTotals := 0
	for _, v := range totalRow.Cells[:lastCol] {
		sumColTotals += v
	}

	assert.Equal(t, 4, sumRowTotals)
	assert.Equal(t, 4, sumColTotals)
	assert.Equal(t, 4, totalRow.Cells[lastCol])
}

func TestNormalizationGroupsVariants(t *testing.T) {
	records := []model.Complaint{
		complaint(1, "Water Leak", "WATER", model.StatusOpen, 1),
		complaint(2, " water leak ", "water ", model.StatusOpen, 2),
	}

	out := OpenComplaintPivot(records).Records()
	require.Len(t, out, 2)

	leak := rowByLabel(t, out, "Water Leak")
	assert.Equal(t, 2, cellValue(t, leak, "Water"))
	assert.Equal(t, 2, cellValue(t, leak, GrandTotalLabel))
}

func TestOpenComplaintPivotEmptyFilter(t *testing.T) {
	records := []model.Complaint{
		complaint(1, "Leak", "Water", model.StatusClosed, 10),
		complaint(2, "Road", "Roads", model.StatusClosed, 40),
	}

	out := OpenComplaintPivot(records).Records()
	require.Len(t, out, 1)

	total := out[0]
	label, _ := total.Get(model.ColumnType)
	assert.Equal(t, GrandTotalLabel, label)
	assert.Equal(t, 0, cellValue(t, total, GrandTotalLabel))
}

func TestOpenCloseCompositeColumns(t *testing.T) {
	table := OpenCloseComplaintPivot(scenarioRecords())

	assert.Equal(t, []string{"Roads_Open", "Sewer_Closed", "Water_Open", GrandTotalLabel}, table.Columns)

	leak := rowByLabel(t, table.Records(), "Leak")
	assert.Equal(t, 2, cellValue(t, leak, "Water_Open"))
	assert.Equal(t, 1, cellValue(t, leak, "Sewer_Closed"))
	assert.Equal(t, 3, cellValue(t, leak, GrandTotalLabel))
}

func TestOpenCloseComplaintReportMatchesPivot(t *testing.T) {
	records := scenarioRecords()
	assert.Equal(t, OpenCloseComplaintPivot(records), OpenCloseComplaintReport(records))
}

func TestAgingOpenPivotBucketsAndColumnOrder(t *testing.T) {
	records := []model.Complaint{
		complaint(1, "Leak", "Water", model.StatusOpen, 0),
		complaint(2, "Leak", "Water", model.StatusOpen, 15),
		complaint(3, "Leak", "Water", model.StatusOpen, 16),
		complaint(4, "Leak", "Water", model.StatusOpen, 180),
		complaint(5, "Leak", "Water", model.StatusOpen, 181),
		complaint(6, "Leak", "Water", model.StatusClosed, 400),
	}

	table := AgingOpenPivot(records, reference)

	wantCols := append(append([]string{}, BucketLabels...), GrandTotalLabel)
	assert.Equal(t, wantCols, table.Columns)

	leak := rowByLabel(t, table.Records(), "Leak")
	assert.Equal(t, 2, cellValue(t, leak, "<15Days"))
	assert.Equal(t, 1, cellValue(t, leak, "16-30Days"))
	assert.Equal(t, 0, cellValue(t, leak, "31-60Days"))
	assert.Equal(t, 0, cellValue(t, leak, "61-90Days"))
	assert.Equal(t, 1, cellValue(t, leak, "91-180Days"))
	assert.Equal(t, 1, cellValue(t, leak, ">180Days"))
	assert.Equal(t, 5, cellValue(t, leak, GrandTotalLabel))
}

func TestAgingOpenClosePivotIncludesClosed(t *testing.T) {
	records := []model.Complaint{
		complaint(1, "Leak", "Water", model.StatusOpen, 10),
		complaint(2, "Leak", "Water", model.StatusClosed, 200),
	}

	leak := rowByLabel(t, AgingOpenClosePivot(records, reference).Records(), "Leak")
	assert.Equal(t, 1, cellValue(t, leak, "<15Days"))
	assert.Equal(t, 1, cellValue(t, leak, ">180Days"))
	assert.Equal(t, 2, cellValue(t, leak, GrandTotalLabel))
}

func TestAllAgingComplaintReport(t *testing.T) {
	table := AllAgingComplaintReport(scenarioRecords(), reference)

	// Observed combos ordered by bucket, then department, then status.
	assert.Equal(t, []string{
		"<15Days_Roads_Open",
		"<15Days_Water_Open",
		"16-30Days_Water_Open",
		"91-180Days_Sewer_Closed",
		GrandTotalLabel,
	}, table.Columns)

	leak := rowByLabel(t, table.Records(), "Leak")
	assert.Equal(t, 1, cellValue(t, leak, "<15Days_Water_Open"))
	assert.Equal(t, 1, cellValue(t, leak, "16-30Days_Water_Open"))
	assert.Equal(t, 1, cellValue(t, leak, "91-180Days_Sewer_Closed"))
	assert.Equal(t, 3, cellValue(t, leak, GrandTotalLabel))

	total := rowByLabel(t, table.Records(), GrandTotalLabel)
	assert.Equal(t, 4, cellValue(t, total, GrandTotalLabel))
}

func TestReportsAreIdempotent(t *testing.T) {
	records := scenarioRecords()

	assert.Equal(t, OpenComplaintPivot(records), OpenComplaintPivot(records))
	assert.Equal(t, AgingOpenPivot(records, reference), AgingOpenPivot(records, reference))
	assert.Equal(t, AllAgingComplaintReport(records, reference), AllAgingComplaintReport(records, reference))
}
