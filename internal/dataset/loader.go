// internal/dataset/loader.go
package dataset

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

var (
	ErrDatasetLoad = errors.New("DATASET_LOAD_FAILED")
)

// LoadStudents reads a JSON array of student records.
func LoadStudents(path string) (*StudentSet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", ErrDatasetLoad, path, err)
	}
	defer f.Close()

	var records []Student
	if err := json.NewDecoder(f).Decode(&records); err != nil {
		return nil, fmt.Errorf("%w: decode %s: %v", ErrDatasetLoad, path, err)
	}
	return NewStudentSet(records), nil
}

// LoadVisaCatalog reads a JSON object of visa requirements keyed by country.
func LoadVisaCatalog(path string) (*VisaCatalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", ErrDatasetLoad, path, err)
	}
	defer f.Close()

	catalog, err := DecodeVisaCatalog(f)
	if err != nil {
		return nil, fmt.Errorf("%w: decode %s: %v", ErrDatasetLoad, path, err)
	}
	return catalog, nil
}
