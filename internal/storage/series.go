package storage

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"math"
	"strconv"

	"github.com/san-kum/flowctl/internal/flightsim"
)

// Series is tabular telemetry: one row per log sample.
type Series struct {
	Fields []string
	Times  []float64
	Rows   [][]float64
}

// FromResult views a run result as a Series without copying.
func FromResult(res *flightsim.Result) *Series {
	return &Series{Fields: res.Fields, Times: res.Times, Rows: res.Rows}
}

func (s *Series) index(name string) int {
	for i, f := range s.Fields {
		if f == name {
			return i
		}
	}
	return -1
}

// Has reports whether the series carries name.
func (s *Series) Has(name string) bool { return s.index(name) >= 0 }

// Column returns one field, or nil if absent.
func (s *Series) Column(name string) []float64 {
	idx := s.index(name)
	if idx < 0 {
		return nil
	}
	col := make([]float64, len(s.Rows))
	for i, row := range s.Rows {
		col[i] = row[idx]
	}
	return col
}

type loggedVar struct {
	Time []int64   `json:"time"`
	Data []float64 `json:"data"`
}

// ExportJSON writes s in the layout the ground-station client saves its
// logs in: one object per field holding parallel "time" (milliseconds) and
// "data" arrays. Non-finite samples are dropped, since JSON cannot carry
// them.
func ExportJSON(w io.Writer, s *Series) error {
	out := make(map[string]loggedVar, len(s.Fields))
	for j, name := range s.Fields {
		v := loggedVar{Time: make([]int64, 0, len(s.Rows)), Data: make([]float64, 0, len(s.Rows))}
		for i, row := range s.Rows {
			if math.IsNaN(row[j]) || math.IsInf(row[j], 0) {
				continue
			}
			v.Time = append(v.Time, int64(math.Round(s.Times[i]*1000)))
			v.Data = append(v.Data, row[j])
		}
		out[name] = v
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "    ")
	return enc.Encode(out)
}

// ExportCSV writes s with a leading time column.
func ExportCSV(w io.Writer, s *Series) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(append([]string{"time"}, s.Fields...)); err != nil {
		return err
	}
	rec := make([]string, len(s.Fields)+1)
	for i, row := range s.Rows {
		rec[0] = strconv.FormatFloat(s.Times[i], 'f', 3, 64)
		for j, v := range row {
			rec[j+1] = strconv.FormatFloat(v, 'g', -1, 64)
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
