package core

import (
	"context"
	"errors"
	"fmt"
)

var ErrPatientNotFound = errors.New("patient not found")

// PatientDirectory provides patient lookup operations.
type PatientDirectory interface {
	// Search returns patients whose name matches query, in directory order.
	Search(ctx context.Context, query string) ([]Patient, error)

	// GetByID returns a patient by identifier.
	GetByID(ctx context.Context, id string) (*Patient, error)
}

type staticDirectory struct {
	patients []Patient
}

// NewStaticDirectory constructs a read-only PatientDirectory over a fixed list.
func NewStaticDirectory(patients []Patient) PatientDirectory {
	list := make([]Patient, len(patients))
	copy(list, patients)
	return &staticDirectory{patients: list}
}

func (d *staticDirectory) Search(_ context.Context, query string) ([]Patient, error) {
	out := []Patient{}
	for _, p := range d.patients {
		if p.Matches(query) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (d *staticDirectory) GetByID(_ context.Context, id string) (*Patient, error) {
	for _, p := range d.patients {
		if p.ID == id {
			found := p
			return &found, nil
		}
	}
	return nil, fmt.Errorf("patient %s: %w", id, ErrPatientNotFound)
}
