package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"
	"time"

	"github.com/gofrs/flock"
)

const lockRetryDelay = 25 * time.Millisecond

type projectsDocument struct {
	Projects []string `json:"projects"`
}

// ProjectFile stores project names in a JSON document of the form
// {"projects": ["Acme", ...]}. A missing file is an empty list.
type ProjectFile struct {
	path string
	lock *flock.Flock
	mu   sync.Mutex
}

// NewProjectFile creates a project store at path, creating its directory.
func NewProjectFile(path string, dirPerm os.FileMode) (*ProjectFile, error) {
	if err := ensureDir(path, dirPerm); err != nil {
		return nil, err
	}
	return &ProjectFile{path: path, lock: flock.New(path + ".lock")}, nil
}

// Path returns the location of the JSON document.
func (p *ProjectFile) Path() string {
	return p.path
}

func (p *ProjectFile) LoadProjectNames(ctx context.Context) ([]string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.read()
}

// SaveProjectName appends name unless it is already listed. Names compare
// exactly; "acme" and "Acme" are distinct projects.
func (p *ProjectFile) SaveProjectName(ctx context.Context, name string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	locked, err := p.lock.TryLockContext(ctx, lockRetryDelay)
	if err != nil {
		return fmt.Errorf("lock %s: %w", p.path, err)
	}
	if !locked {
		return fmt.Errorf("lock %s: not acquired", p.path)
	}
	defer p.lock.Unlock()

	names, err := p.read()
	if err != nil {
		return err
	}
	for _, existing := range names {
		if existing == name {
			return nil
		}
	}

	data, err := json.MarshalIndent(projectsDocument{Projects: append(names, name)}, "", "  ")
	if err != nil {
		return fmt.Errorf("encode projects: %w", err)
	}
	return writeFileAtomic(p.path, append(data, '\n'), 0644)
}

func (p *ProjectFile) read() ([]string, error) {
	data, err := os.ReadFile(p.path)
	if errors.Is(err, fs.ErrNotExist) {
		return []string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", p.path, err)
	}
	if len(data) == 0 {
		return []string{}, nil
	}

	var doc projectsDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode %s: %w", p.path, err)
	}
	if doc.Projects == nil {
		return []string{}, nil
	}
	return doc.Projects, nil
}
