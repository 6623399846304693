package data

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

var ErrDatasetNotFound = errors.New("climate dataset not found")

var climateExtensions = []string{".csv", ".txt", ".json", ".yaml", ".yml"}

// Dataset is a climate file available to the API.
type Dataset struct {
	ID   string `json:"id"`
	File string `json:"file"`
}

// GetDefaultClimateDir returns the directory scanned for climate datasets.
func GetDefaultClimateDir() string {
	if dir := os.Getenv("CLIMATE_DIR"); dir != "" {
		return dir
	}
	return "./examples/climate"
}

// ListDatasets returns the climate files in dir, sorted by id. A missing
// directory is not an error.
func ListDatasets(dir string) ([]Dataset, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []Dataset{}, nil
		}
		return nil, errors.Wrap(err, "read climate directory")
	}

	out := make([]Dataset, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !isClimateFile(e.Name()) {
			continue
		}
		out = append(out, Dataset{
			ID:   strings.TrimSuffix(e.Name(), filepath.Ext(e.Name())),
			File: filepath.Join(dir, e.Name()),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// ResolveDataset maps a dataset id (file name without extension) to a path
// inside dir. Ids containing path elements are rejected.
func ResolveDataset(dir, id string) (string, error) {
	if id == "" || id != filepath.Base(id) || strings.HasPrefix(id, ".") {
		return "", errors.Wrapf(ErrDatasetNotFound, "%q", id)
	}
	datasets, err := ListDatasets(dir)
	if err != nil {
		return "", err
	}
	for _, d := range datasets {
		if d.ID == id {
			return d.File, nil
		}
	}
	return "", errors.Wrapf(ErrDatasetNotFound, "%q", id)
}

func isClimateFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range climateExtensions {
		if ext == e {
			return true
		}
	}
	return false
}
