//go:build integration

package integration

import (
	"context"
	"errors"
	"testing"

	"github.com/cvdss/cvdss/internal/domain/account"
	"github.com/cvdss/cvdss/internal/domain/cvd"
	"github.com/cvdss/cvdss/internal/domain/patient"
)

// seed creates a physician and two linked patients plus one unlinked patient.
func seed(t *testing.T) (physicianID int64, patients []int64) {
	t.Helper()
	ctx := context.Background()
	users := account.NewUserRepo(globalPool)

	doc := &account.User{Username: "doc", PasswordHash: "x", UserType: account.UserTypePhysician}
	if err := users.Create(ctx, doc); err != nil {
		t.Fatalf("create physician: %v", err)
	}

	names := [][2]string{{"Ann", "Lee"}, {"Bo", "Smith"}, {"Cy", "Smithers"}}
	for i, n := range names {
		u := &account.User{Username: n[0], PasswordHash: "x", UserType: account.UserTypePatient}
		if err := users.Create(ctx, u); err != nil {
			t.Fatalf("create patient: %v", err)
		}
		if _, err := globalPool.Exec(ctx, `UPDATE patient SET first_name = $2, last_name = $3 WHERE user_id = $1`, u.ID, n[0], n[1]); err != nil {
			t.Fatalf("name patient: %v", err)
		}
		if i < 2 {
			if err := patient.NewRepo(globalPool).Link(ctx, doc.ID, u.ID); err != nil {
				t.Fatalf("link: %v", err)
			}
		}
		patients = append(patients, u.ID)
	}
	return doc.ID, patients
}

func TestPatientRepo_ListForPhysician(t *testing.T) {
	resetTables(t)
	ctx := context.Background()
	physicianID, _ := seed(t)
	repo := patient.NewRepo(globalPool)

	all, total, err := repo.ListForPhysician(ctx, physicianID, "", 10, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 2 || len(all) != 2 || all[0].LastName != "Lee" {
		t.Errorf("unexpected list %d %+v", total, all)
	}

	found, total, err := repo.ListForPhysician(ctx, physicianID, "smi", 10, 0)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if total != 1 || found[0].FirstName != "Bo" {
		t.Errorf("expected only the linked Smith, got %d %+v", total, found)
	}

	none, total, err := repo.ListForPhysician(ctx, physicianID, "%", 10, 0)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if total != 0 || len(none) != 0 {
		t.Errorf("expected LIKE wildcards to be escaped, got %d", total)
	}
}

func TestPatientRepo_IsLinked(t *testing.T) {
	resetTables(t)
	ctx := context.Background()
	physicianID, patients := seed(t)
	repo := patient.NewRepo(globalPool)

	linked, err := repo.IsLinked(ctx, physicianID, patients[0])
	if err != nil || !linked {
		t.Errorf("expected linked, got %v %v", linked, err)
	}
	linked, err = repo.IsLinked(ctx, physicianID, patients[2])
	if err != nil || linked {
		t.Errorf("expected not linked, got %v %v", linked, err)
	}
	if err := repo.Link(ctx, physicianID, 9999); !errors.Is(err, patient.ErrNotFound) {
		t.Errorf("expected ErrNotFound for unknown patient, got %v", err)
	}
}

func TestPatientService_AssessPatientPersists(t *testing.T) {
	resetTables(t)
	ctx := context.Background()
	physicianID, patients := seed(t)

	engine := cvd.NewEngine(cvd.PredictorFunc(func(context.Context, cvd.FeatureVector) (int, error) {
		return 1, nil
	}))
	repo := patient.NewRepo(globalPool)
	svc := patient.NewService(repo, engine, zeroLogger())

	profile := cvd.ClinicalProfile{
		Age: 61, Gender: cvd.GenderMale, HeightCm: 180, WeightKg: 95,
		SystolicBP: 150, DiastolicBP: 95, Cholesterol: cvd.LevelAboveNormal,
		Glucose: cvd.LevelNormal, Smokes: true,
	}
	a, err := svc.AssessPatient(ctx, physicianID, patients[1], patient.AssessmentRequest{Profile: profile, Version: 1})
	if err != nil {
		t.Fatalf("assess: %v", err)
	}
	if !a.Updated || a.Record.Version != 2 {
		t.Errorf("expected updated record at version 2, got %+v", a.Record)
	}

	rec, err := repo.GetRecord(ctx, patients[1])
	if err != nil {
		t.Fatalf("get record: %v", err)
	}
	if rec.Age != 61 || rec.Gender != cvd.GenderMale || rec.SystolicBP != 150 || !rec.Smokes {
		t.Errorf("profile not persisted: %+v", rec)
	}
	if rec.Cholesterol != cvd.LevelAboveNormal {
		t.Errorf("expected Above Normal cholesterol, got %v", rec.Cholesterol)
	}
	if rec.HighRisk == nil || !*rec.HighRisk {
		t.Error("prediction not persisted")
	}
	if rec.FirstName != "Bo" {
		t.Error("name must not change")
	}

	_, err = svc.AssessPatient(ctx, physicianID, patients[1], patient.AssessmentRequest{Profile: profile, Version: 1})
	if !errors.Is(err, patient.ErrStaleRecord) {
		t.Errorf("expected ErrStaleRecord, got %v", err)
	}

	_, err = svc.AssessPatient(ctx, physicianID, patients[2], patient.AssessmentRequest{Profile: profile})
	if !errors.Is(err, patient.ErrNotLinked) {
		t.Errorf("expected ErrNotLinked, got %v", err)
	}
}
