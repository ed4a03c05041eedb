package patient

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cvdss/cvdss/internal/domain/cvd"
	"github.com/cvdss/cvdss/internal/platform/db"
)

type repoPG struct {
	pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

// queryable abstracts pgxpool.Pool and pgx.Tx.
type queryable interface {
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

func (r *repoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

const recordColumns = `p.user_id, p.first_name, p.last_name, p.age, p.gender,
	p.height, p.weight, p.smoke_history, p.alcohol_consumption, p.exercise_level,
	p.contact_information, m.systolic_bp, m.diastolic_bp, m.cholesterol, m.glucose,
	m.cardiovascular_disease, m.version, m.updated_at`

func (r *repoPG) GetRecord(ctx context.Context, patientID int64) (*Record, error) {
	row := r.conn(ctx).QueryRow(ctx, `
		SELECT `+recordColumns+`
		FROM patient p JOIN medical_test m ON m.patient_id = p.user_id
		WHERE p.user_id = $1`, patientID)

	var (
		rec                      Record
		gender                   int16
		smokes, drinks, exercise int16
		cholesterol, glucose     int16
		cvdFlag                  *int16
	)
	err := row.Scan(
		&rec.PatientID, &rec.FirstName, &rec.LastName, &rec.Age, &gender,
		&rec.HeightCm, &rec.WeightKg, &smokes, &drinks, &exercise,
		&rec.ContactInformation, &rec.SystolicBP, &rec.DiastolicBP, &cholesterol, &glucose,
		&cvdFlag, &rec.Version, &rec.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get patient record %d: %w", patientID, err)
	}

	rec.Gender = cvd.Gender(cvd.CodeToGender(int(gender)))
	rec.Smokes = cvd.CodeToBool(int(smokes))
	rec.DrinksAlcohol = cvd.CodeToBool(int(drinks))
	rec.ExercisesRegularly = cvd.CodeToBool(int(exercise))
	rec.Cholesterol = cvd.Level(cholesterol).Normalize()
	rec.Glucose = cvd.Level(glucose).Normalize()
	if cvdFlag != nil {
		highRisk := *cvdFlag == 1
		rec.HighRisk = &highRisk
	}
	return &rec, nil
}

// escapeLike escapes the LIKE metacharacters in s.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

func (r *repoPG) ListForPhysician(ctx context.Context, physicianID int64, query string, limit, offset int) ([]*Summary, int, error) {
	pattern := "%" + escapeLike(strings.TrimSpace(query)) + "%"
	const where = `
		FROM patient p JOIN physician_patient_link l ON l.patient_id = p.user_id
		WHERE l.physician_id = $1
		  AND (p.first_name ILIKE $2 OR p.last_name ILIKE $2
		       OR (p.first_name || ' ' || p.last_name) ILIKE $2)`

	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*)`+where, physicianID, pattern).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count patients: %w", err)
	}

	rows, err := r.conn(ctx).Query(ctx, `
		SELECT p.user_id, p.first_name, p.last_name`+where+`
		ORDER BY lower(p.last_name), lower(p.first_name), p.user_id
		LIMIT $3 OFFSET $4`, physicianID, pattern, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list patients: %w", err)
	}
	defer rows.Close()

	var out []*Summary
	for rows.Next() {
		var s Summary
		if err := rows.Scan(&s.PatientID, &s.FirstName, &s.LastName); err != nil {
			return nil, 0, err
		}
		out = append(out, &s)
	}
	return out, total, rows.Err()
}

func (r *repoPG) IsLinked(ctx context.Context, physicianID, patientID int64) (bool, error) {
	var linked bool
	err := r.conn(ctx).QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM physician_patient_link
			WHERE physician_id = $1 AND patient_id = $2
		)`, physicianID, patientID).Scan(&linked)
	if err != nil {
		return false, fmt.Errorf("check link: %w", err)
	}
	return linked, nil
}

func (r *repoPG) Link(ctx context.Context, physicianID, patientID int64) error {
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO physician_patient_link (physician_id, patient_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING`, physicianID, patientID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return ErrNotFound
		}
		return fmt.Errorf("link patient: %w", err)
	}
	return nil
}

func (r *repoPG) SaveAssessment(ctx context.Context, rec *Record, highRisk bool, expectedVersion int) error {
	return db.InTx(ctx, r.pool, func(ctx context.Context) error {
		var current int
		err := r.conn(ctx).QueryRow(ctx,
			`SELECT version FROM medical_test WHERE patient_id = $1 FOR UPDATE`, rec.PatientID).Scan(&current)
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("lock medical test: %w", err)
		}
		if current != expectedVersion {
			return ErrStaleRecord
		}

		_, err = r.conn(ctx).Exec(ctx, `
			UPDATE patient SET
				age = $2, gender = $3, height = $4, weight = $5,
				smoke_history = $6, alcohol_consumption = $7, exercise_level = $8
			WHERE user_id = $1`,
			rec.PatientID, rec.Age, cvd.GenderToCode(string(rec.Gender)), rec.HeightCm, rec.WeightKg,
			cvd.BoolToCode(rec.Smokes), cvd.BoolToCode(rec.DrinksAlcohol), cvd.BoolToCode(rec.ExercisesRegularly),
		)
		if err != nil {
			return fmt.Errorf("update patient: %w", err)
		}

		err = r.conn(ctx).QueryRow(ctx, `
			UPDATE medical_test SET
				diastolic_bp = $2, systolic_bp = $3, cholesterol = $4, glucose = $5,
				cardiovascular_disease = $6, version = version + 1, updated_at = NOW()
			WHERE patient_id = $1
			RETURNING version, updated_at`,
			rec.PatientID, rec.DiastolicBP, rec.SystolicBP, int(rec.Cholesterol.Normalize()), int(rec.Glucose.Normalize()),
			cvd.BoolToCode(highRisk),
		).Scan(&rec.Version, &rec.UpdatedAt)
		if err != nil {
			return fmt.Errorf("update medical test: %w", err)
		}
		rec.HighRisk = &highRisk
		return nil
	})
}
