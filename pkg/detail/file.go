package detail

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/Sternrassler/population-report/pkg/population"
)

// FileSource reads detail records from JSON files laid out as
// <Root>/<province>/<city>.json.
type FileSource struct {
	Root string
}

// NewFileSource creates a file-backed detail source rooted at dir.
func NewFileSource(dir string) *FileSource {
	return &FileSource{Root: dir}
}

// Lookup reads the record for the given province and city.
// A missing file yields ErrNotFound; anything else that goes wrong yields a
// *LookupError.
func (s *FileSource) Lookup(ctx context.Context, province, city string) (*population.DetailRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, &LookupError{Province: province, City: city, Err: err}
	}

	path, err := s.path(province, city)
	if err != nil {
		return nil, &LookupError{Province: province, City: city, Err: err}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, &LookupError{Province: province, City: city, Err: err}
	}

	var record population.DetailRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, &LookupError{Province: province, City: city, Err: fmt.Errorf("decode %s: %w", path, err)}
	}

	return &record, nil
}

// path builds the record path, rejecting names that would escape Root.
func (s *FileSource) path(province, city string) (string, error) {
	for _, name := range []string{province, city} {
		if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
			return "", fmt.Errorf("invalid path component %q", name)
		}
	}
	return filepath.Join(s.Root, province, city+".json"), nil
}
