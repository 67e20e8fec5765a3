package models

// BatchStatus is the lifecycle state of a [BatchItem].
type BatchStatus string

const (
	BatchPending    BatchStatus = "pending"
	BatchGenerating BatchStatus = "generating"
	BatchSuccess    BatchStatus = "success"
	BatchError      BatchStatus = "error"
)

// IsTerminal reports whether the status is success or error.
func (s BatchStatus) IsTerminal() bool {
	return s == BatchSuccess || s == BatchError
}

// BatchItem is one set of placeholder values in a multi-document run. Seq
// numbers the item's output file; it is assigned once and never reused.
type BatchItem struct {
	ID       string      `json:"id"`
	Seq      int         `json:"seq"`
	Values   FormValues  `json:"values"`
	Status   BatchStatus `json:"status"`
	Error    string      `json:"error,omitempty"`
	Filename string      `json:"filename,omitempty"`
}

// ImportResult reports the outcome of a CSV import.
type ImportResult struct {
	Success bool     `json:"success"`
	Count   int      `json:"count"`
	Errors  []string `json:"errors"`
}

// BatchProgress is the aggregate state of a batch run.
type BatchProgress struct {
	Total     int
	Completed int
	Failed    int
	// Percent is settled items divided by total, in the range 0..100.
	Percent float64
}

// Settled returns the number of items that reached a terminal state.
func (p BatchProgress) Settled() int {
	return p.Completed + p.Failed
}
