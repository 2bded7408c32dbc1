package flightsim

import "github.com/san-kum/flowctl/internal/dynamo"

// Truth columns appended after the telemetry fields of every row.
var TruthFields = []string{
	"true_x", "true_y", "true_z",
	"true_roll", "true_pitch", "true_yaw",
	"true_vx", "true_vy", "true_vz",
}

// Result is the log of one run. Rows are sampled at the log rate; each holds
// the telemetry fields followed by TruthFields, in Fields order.
type Result struct {
	Plan     string
	Fields   []string
	Times    []float64
	Rows     [][]float64
	Final    dynamo.State
	Metrics  map[string]float64
	Ticks    int // base ticks simulated
	Executed int // pipeline executions
	Seed     int64
}

// Column returns the series of one field, or nil if there is no such field.
func (r *Result) Column(name string) []float64 {
	idx := -1
	for i, f := range r.Fields {
		if f == name {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil
	}
	col := make([]float64, len(r.Rows))
	for i, row := range r.Rows {
		col[i] = row[idx]
	}
	return col
}

func truthRow(dst []float64, x dynamo.State) []float64 {
	return append(dst, x[:len(TruthFields)]...)
}
