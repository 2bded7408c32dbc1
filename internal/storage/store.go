// Package storage keeps simulated runs on disk. Each run is a directory
// holding metadata.json and telemetry.csv.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/san-kum/flowctl/internal/flightsim"
	"github.com/san-kum/flowctl/internal/monitoring"
)

var (
	ErrRunNotFound  = errors.New("storage: run not found")
	ErrAmbiguousRun = errors.New("storage: run id prefix is ambiguous")
)

const (
	metaFile      = "metadata.json"
	telemetryFile = "telemetry.csv"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID          string             `json:"id"`
	Plan        string             `json:"plan"`
	Timestamp   time.Time          `json:"timestamp"`
	Seed        int64              `json:"seed"`
	Duration    float64            `json:"duration"`
	Integrator  string             `json:"integrator"`
	UseObserver bool               `json:"use_observer"`
	Ticks       int                `json:"ticks"`
	Executed    int                `json:"executed"`
	Fields      []string           `json:"fields"`
	Metrics     map[string]float64 `json:"metrics"`
	Error       string             `json:"error,omitempty"`
}

// Save stores res under a fresh id. Fields of meta derived from res are
// filled in; the rest is taken as given.
func (s *Store) Save(meta RunMetadata, res *flightsim.Result) (string, error) {
	meta.ID = uuid.NewString()
	if meta.Timestamp.IsZero() {
		meta.Timestamp = time.Now()
	}
	meta.Plan = res.Plan
	meta.Seed = res.Seed
	meta.Ticks = res.Ticks
	meta.Executed = res.Executed
	meta.Fields = res.Fields
	meta.Metrics = res.Metrics
	if meta.Duration == 0 {
		meta.Duration = float64(res.Ticks) / flightsim.RateBase
	}

	runDir := filepath.Join(s.baseDir, meta.ID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}
	if err := writeJSON(filepath.Join(runDir, metaFile), meta); err != nil {
		return "", fmt.Errorf("write metadata: %w", err)
	}
	if err := writeTelemetry(filepath.Join(runDir, telemetryFile), res); err != nil {
		return "", fmt.Errorf("write telemetry: %w", err)
	}
	return meta.ID, nil
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeTelemetry(path string, res *flightsim.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return ExportCSV(f, FromResult(res))
}

// List returns every readable run, oldest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.readMeta(entry.Name())
		if err != nil {
			monitoring.Logf("storage: skipping %s: %v", entry.Name(), err)
			continue
		}
		runs = append(runs, *meta)
	}
	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) readMeta(id string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, id, metaFile))
	if err != nil {
		return nil, err
	}
	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// Resolve expands a unique prefix of a run id.
func (s *Store) Resolve(prefix string) (string, error) {
	if prefix == "" {
		return "", fmt.Errorf("%w: empty id", ErrRunNotFound)
	}
	entries, err := os.ReadDir(s.baseDir)
	if err != nil && !os.IsNotExist(err) {
		return "", err
	}
	var match string
	for _, e := range entries {
		if !e.IsDir() || !strings.HasPrefix(e.Name(), prefix) {
			continue
		}
		if e.Name() == prefix {
			return prefix, nil
		}
		if match != "" {
			return "", fmt.Errorf("%w: %s", ErrAmbiguousRun, prefix)
		}
		match = e.Name()
	}
	if match == "" {
		return "", fmt.Errorf("%w: %s", ErrRunNotFound, prefix)
	}
	return match, nil
}

// Load reads the metadata of a run. id may be a unique prefix.
func (s *Store) Load(id string) (*RunMetadata, error) {
	full, err := s.Resolve(id)
	if err != nil {
		return nil, err
	}
	meta, err := s.readMeta(full)
	if err != nil {
		return nil, fmt.Errorf("run %s: %w", full, err)
	}
	return meta, nil
}

// LoadSeries reads the telemetry of a run. id may be a unique prefix.
func (s *Store) LoadSeries(id string) (*Series, error) {
	full, err := s.Resolve(id)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(filepath.Join(s.baseDir, full, telemetryFile))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("run %s: %w", full, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("run %s: empty telemetry", full)
	}

	series := &Series{Fields: records[0][1:]}
	for n, rec := range records[1:] {
		vals := make([]float64, len(rec))
		for i, field := range rec {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("run %s line %d: %w", full, n+2, err)
			}
			vals[i] = v
		}
		series.Times = append(series.Times, vals[0])
		series.Rows = append(series.Rows, vals[1:])
	}
	return series, nil
}
