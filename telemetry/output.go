package telemetry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/hapticnav/config"
)

// OutputManager handles structured experiment output with CSV logging.
type OutputManager struct {
	dir       string
	gridFile  *os.File
	statsFile *os.File

	gridHeaderWritten  bool
	statsHeaderWritten bool
}

// NewOutputManager creates an output manager rooted at dir.
// Returns nil if dir is empty (output disabled).
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	om := &OutputManager{dir: dir}

	f, err := os.Create(filepath.Join(dir, "grid.csv"))
	if err != nil {
		return nil, fmt.Errorf("creating grid.csv: %w", err)
	}
	om.gridFile = f

	f, err = os.Create(filepath.Join(dir, "stats.csv"))
	if err != nil {
		om.gridFile.Close()
		return nil, fmt.Errorf("creating stats.csv: %w", err)
	}
	om.statsFile = f

	return om, nil
}

// WriteConfig saves the active configuration alongside the CSVs.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	return cfg.WriteYAML(filepath.Join(om.dir, "config.yaml"))
}

// WriteGridRecord appends a perception tick record to grid.csv.
func (om *OutputManager) WriteGridRecord(rec GridRecord) error {
	if om == nil {
		return nil
	}

	records := []GridRecord{rec}
	if !om.gridHeaderWritten {
		if err := gocsv.Marshal(records, om.gridFile); err != nil {
			return fmt.Errorf("writing grid record: %w", err)
		}
		om.gridHeaderWritten = true
		return nil
	}
	if err := gocsv.MarshalWithoutHeaders(records, om.gridFile); err != nil {
		return fmt.Errorf("writing grid record: %w", err)
	}
	return nil
}

// WriteWindowStats appends a window record to stats.csv.
func (om *OutputManager) WriteWindowStats(stats WindowStats) error {
	if om == nil {
		return nil
	}

	records := []WindowStats{stats}
	if !om.statsHeaderWritten {
		if err := gocsv.Marshal(records, om.statsFile); err != nil {
			return fmt.Errorf("writing stats: %w", err)
		}
		om.statsHeaderWritten = true
		return nil
	}
	if err := gocsv.MarshalWithoutHeaders(records, om.statsFile); err != nil {
		return fmt.Errorf("writing stats: %w", err)
	}
	return nil
}

// Close flushes and closes the output files.
func (om *OutputManager) Close() error {
	if om == nil {
		return nil
	}
	var firstErr error
	if om.gridFile != nil {
		if err := om.gridFile.Close(); err != nil {
			firstErr = err
		}
	}
	if om.statsFile != nil {
		if err := om.statsFile.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
