package model

import "time"

type Status string

const (
	StatusOpen   Status = "Open"
	StatusClosed Status = "Closed"
)

// Complaint is one row of the complaint register.
type Complaint struct {
	ID      int       `json:"id"`
	Type    string    `json:"complaint_type"`
	Dept    string    `json:"department"`
	Status  Status    `json:"status"`
	FiledAt time.Time `json:"filed_at"`
}

// Canonical column headers of the source spreadsheet.
const (
	ColumnID     = "ID"
	ColumnType   = "COMPLAINT TYPE"
	ColumnDept   = "DEPT"
	ColumnStatus = "CLOSED/OPEN"
	ColumnDate   = "DATE"
)

func RequiredColumns() []string {
	return []string{ColumnID, ColumnType, ColumnDept, ColumnStatus, ColumnDate}
}
