// Package report records cleanup runs in the history file.
package report

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/vsweep/vsweep/pkg/config"
	"github.com/vsweep/vsweep/pkg/fs"
	"gopkg.in/yaml.v3"
)

//go:generate go run go.uber.org/mock/mockgen@v0.5.2 -source=report.go -destination=mocks/manager.gen.go -package=mocks

// maxRuns bounds the history file; the oldest entries are dropped first.
const maxRuns = 200

// Run is one recorded cleanup run.
type Run struct {
	StartedAt    time.Time `yaml:"started_at"`
	FinishedAt   time.Time `yaml:"finished_at"`
	Editor       string    `yaml:"editor"`
	Phase        string    `yaml:"phase"`
	DryRun       bool      `yaml:"dry_run,omitempty"`
	TotalScanned int       `yaml:"total_scanned"`
	TotalRemoved int       `yaml:"total_removed"`
	Preserved    int       `yaml:"preserved"`
	Skipped      int       `yaml:"skipped,omitempty"`
	Failed       int       `yaml:"failed,omitempty"`
	BytesFreed   int64     `yaml:"bytes_freed"`
	StoreRows    int64     `yaml:"store_rows_deleted,omitempty"`
	Roots        []string  `yaml:"roots,omitempty"`
}

// History represents the history.yaml file structure.
type History struct {
	Runs []Run `yaml:"runs"`
}

// Manager interface provides history file management functionality.
type Manager interface {
	// Append records a completed run in the history file.
	Append(run Run) error
	// ListRuns returns all recorded runs, oldest first.
	ListRuns() ([]Run, error)
	// LastRun returns the most recently recorded run.
	LastRun() (*Run, error)
}

type realManager struct {
	fs     fs.FS
	config *config.Config
}

// NewManager creates a new history Manager instance.
func NewManager(fs fs.FS, config *config.Config) Manager {
	return &realManager{
		fs:     fs,
		config: config,
	}
}

// Append loads the history, appends run and writes the file back.
func (m *realManager) Append(run Run) error {
	history, err := m.loadHistory()
	if err != nil {
		return fmt.Errorf("failed to load history: %w", err)
	}

	history.Runs = append(history.Runs, run)
	if len(history.Runs) > maxRuns {
		history.Runs = history.Runs[len(history.Runs)-maxRuns:]
	}

	if err := m.saveHistory(history); err != nil {
		return fmt.Errorf("failed to save history: %w", err)
	}

	return nil
}

// ListRuns lists all recorded runs.
func (m *realManager) ListRuns() ([]Run, error) {
	history, err := m.loadHistory()
	if err != nil {
		return nil, fmt.Errorf("failed to load history: %w", err)
	}

	return history.Runs, nil
}

// LastRun returns the most recently recorded run.
func (m *realManager) LastRun() (*Run, error) {
	history, err := m.loadHistory()
	if err != nil {
		return nil, fmt.Errorf("failed to load history: %w", err)
	}

	if len(history.Runs) == 0 {
		return nil, ErrNoRuns
	}

	last := history.Runs[len(history.Runs)-1]
	return &last, nil
}

// getHistoryFilePath returns the history file path from configuration.
func (m *realManager) getHistoryFilePath() (string, error) {
	if m.config == nil {
		return "", ErrConfigurationNotInitialized
	}

	if m.config.HistoryFile == "" {
		return "", ErrHistoryFileNotConfigured
	}

	return m.config.HistoryFile, nil
}

// loadHistory loads the history from the history file. A missing file
// is an empty history.
func (m *realManager) loadHistory() (*History, error) {
	historyPath, err := m.getHistoryFilePath()
	if err != nil {
		return nil, err
	}

	exists, err := m.fs.Exists(historyPath)
	if err != nil {
		return nil, fmt.Errorf("failed to check history file existence: %w", err)
	}
	if !exists {
		return &History{Runs: []Run{}}, nil
	}

	data, err := m.fs.ReadFile(historyPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read history file: %w", err)
	}

	var history History
	if err := yaml.Unmarshal(data, &history); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrHistoryFileParse, err)
	}

	return &history, nil
}

// saveHistory saves the history to the history file atomically.
func (m *realManager) saveHistory(history *History) error {
	historyPath, err := m.getHistoryFilePath()
	if err != nil {
		return err
	}

	if err := m.fs.MkdirAll(filepath.Dir(historyPath), 0755); err != nil {
		return fmt.Errorf("failed to create history directory: %w", err)
	}

	// Acquire file lock
	unlock, err := m.fs.FileLock(historyPath)
	if err != nil {
		return fmt.Errorf("failed to acquire file lock: %w", err)
	}
	defer unlock()

	data, err := yaml.Marshal(history)
	if err != nil {
		return fmt.Errorf("failed to marshal history: %w", err)
	}

	if err := m.fs.WriteFileAtomic(historyPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write history file: %w", err)
	}

	return nil
}
