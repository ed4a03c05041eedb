package patient

import (
	"context"
	"errors"
)

var (
	ErrNotFound    = errors.New("patient record not found")
	ErrNotLinked   = errors.New("patient is not linked to this physician")
	ErrStaleRecord = errors.New("patient record was modified by another request")
	// ErrVersionRequired is returned when an edit does not say which record
	// version it was based on.
	ErrVersionRequired = errors.New("record version is required")
)

// Repository defines the persistence interface for patient records.
type Repository interface {
	GetRecord(ctx context.Context, patientID int64) (*Record, error)
	// ListForPhysician returns the linked patients whose first or last name
	// contains query, ordered by last then first name, and the total count.
	ListForPhysician(ctx context.Context, physicianID int64, query string, limit, offset int) ([]*Summary, int, error)
	IsLinked(ctx context.Context, physicianID, patientID int64) (bool, error)
	Link(ctx context.Context, physicianID, patientID int64) error
	// SaveAssessment writes the record and prediction if the stored version
	// still equals expectedVersion, then bumps rec.Version. Any mismatch,
	// including a zero expectedVersion, is ErrStaleRecord.
	SaveAssessment(ctx context.Context, rec *Record, highRisk bool, expectedVersion int) error
}
