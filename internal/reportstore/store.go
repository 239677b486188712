// Package reportstore persists the most recent analysis report so the fix
// command can resolve remediation references without re-analyzing.
package reportstore

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/saga95/amplify-doctor/internal/engine"
	"github.com/saga95/amplify-doctor/internal/errors"
	"github.com/saga95/amplify-doctor/internal/paths"
	"github.com/saga95/amplify-doctor/pkg/fileutil"
)

// Store reads and writes reports at a fixed location.
type Store struct {
	path string
}

// New creates a store at the default XDG cache location.
func New() *Store {
	return &Store{path: paths.LastReportPath()}
}

// NewAt creates a store at an explicit path.
func NewAt(path string) *Store {
	return &Store{path: path}
}

// Save writes the report atomically, creating the cache directory first.
func (s *Store) Save(r *engine.Report) error {
	if err := paths.EnsureDir(filepath.Dir(s.path), 0); err != nil {
		return errors.Wrap(err, "creating report cache dir")
	}
	return errors.Wrap(fileutil.AtomicWriteJSON(s.path, r), "writing report")
}

// Load reads the last saved report. A missing file is ErrNoReport.
func (s *Store) Load() (*engine.Report, error) {
	data, err := fileutil.ReadFileWithLimit(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, errors.ErrNoReport
		}
		return nil, errors.Wrap(err, "reading report")
	}

	var r engine.Report
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, errors.Wrap(err, "decoding report")
	}
	return &r, nil
}
