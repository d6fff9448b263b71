package service

// Outcome reports whether a ledger mutation changed state. Idempotent
// operations return Skipped with a reason instead of failing, so callers can
// retry safely and clients can tell a no-op from an error.
type Outcome struct {
	Applied bool   `json:"applied"`
	Reason  string `json:"reason,omitempty"`
}

// Applied returns an outcome for a mutation that changed state.
func Applied() Outcome {
	return Outcome{Applied: true}
}

// Skipped returns an outcome for a mutation that was a no-op.
func Skipped(reason string) Outcome {
	return Outcome{Applied: false, Reason: reason}
}
