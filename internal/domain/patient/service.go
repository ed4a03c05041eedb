package patient

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/cvdss/cvdss/internal/domain/cvd"
)

type Service struct {
	repo   Repository
	engine *cvd.Engine
	logger zerolog.Logger
}

func NewService(repo Repository, engine *cvd.Engine, logger zerolog.Logger) *Service {
	return &Service{repo: repo, engine: engine, logger: logger}
}

func (s *Service) GetRecord(ctx context.Context, patientID int64) (*Record, error) {
	return s.repo.GetRecord(ctx, patientID)
}

// GetLinkedRecord returns the record only if the physician is linked to the
// patient.
func (s *Service) GetLinkedRecord(ctx context.Context, physicianID, patientID int64) (*Record, error) {
	if err := s.requireLink(ctx, physicianID, patientID); err != nil {
		return nil, err
	}
	return s.repo.GetRecord(ctx, patientID)
}

func (s *Service) ListPatients(ctx context.Context, physicianID int64, query string, limit, offset int) ([]*Summary, int, error) {
	return s.repo.ListForPhysician(ctx, physicianID, query, limit, offset)
}

func (s *Service) LinkPatient(ctx context.Context, physicianID, patientID int64) error {
	return s.repo.Link(ctx, physicianID, patientID)
}

// AssessProfile evaluates a profile without touching any record.
func (s *Service) AssessProfile(ctx context.Context, p cvd.ClinicalProfile, audience cvd.Audience) (*Assessment, error) {
	report, err := s.engine.Evaluate(ctx, p, audience)
	if err != nil {
		return nil, err
	}
	return newAssessment(report), nil
}

// AssessSelf is a patient trying out values on their own dashboard. The
// stored record is not changed.
func (s *Service) AssessSelf(ctx context.Context, patientID int64, p cvd.ClinicalProfile) (*Assessment, error) {
	a, err := s.AssessProfile(ctx, p, cvd.AudiencePatient)
	if err != nil {
		return nil, err
	}
	s.logger.Info().
		Int64("patient_id", patientID).
		Str("audience", string(cvd.AudiencePatient)).
		Bool("high_risk", a.Report.HighRiskPrediction).
		Msg("self assessment")
	return a, nil
}

// AssessPatient evaluates a physician's edited profile and, when the
// prediction succeeds, writes the profile and prediction back to the record.
func (s *Service) AssessPatient(ctx context.Context, physicianID, patientID int64, req AssessmentRequest) (*Assessment, error) {
	if err := s.requireLink(ctx, physicianID, patientID); err != nil {
		return nil, err
	}
	if req.Version <= 0 {
		return nil, ErrVersionRequired
	}
	rec, err := s.repo.GetRecord(ctx, patientID)
	if err != nil {
		return nil, err
	}

	a, err := s.AssessProfile(ctx, req.Profile, cvd.AudiencePhysician)
	if err != nil {
		return nil, err
	}

	rec.ApplyProfile(req.Profile)
	if err := s.repo.SaveAssessment(ctx, rec, a.Report.HighRiskPrediction, req.Version); err != nil {
		return nil, err
	}
	a.Updated = true
	a.Record = rec

	s.logger.Info().
		Int64("patient_id", patientID).
		Int64("physician_id", physicianID).
		Str("audience", string(cvd.AudiencePhysician)).
		Bool("high_risk", a.Report.HighRiskPrediction).
		Int("version", rec.Version).
		Msg("patient assessed")
	return a, nil
}

func (s *Service) requireLink(ctx context.Context, physicianID, patientID int64) error {
	linked, err := s.repo.IsLinked(ctx, physicianID, patientID)
	if err != nil {
		return fmt.Errorf("check physician link: %w", err)
	}
	if !linked {
		return ErrNotLinked
	}
	return nil
}
