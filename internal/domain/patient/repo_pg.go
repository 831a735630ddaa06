package patient

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mealtrack/mealtrack/internal/core/apperr"
	"github.com/mealtrack/mealtrack/internal/platform/db"
)

type repoPG struct {
	pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

const patientCols = `id, patient_name, diseases, allergies, room_number, bed_number,
	floor_number, age, gender, contact_information, emergency_contact,
	additional_details, admission_date, discharge_date, created_at, updated_at`

func (r *repoPG) Create(ctx context.Context, p *Patient) error {
	p.ID = uuid.New()
	if p.AdmissionDate.IsZero() {
		p.AdmissionDate = time.Now().UTC()
	}
	_, err := r.pool.Exec(ctx, `
		INSERT INTO patient (
			id, patient_name, diseases, allergies, room_number, bed_number,
			floor_number, age, gender, contact_information, emergency_contact,
			additional_details, admission_date, discharge_date
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)`,
		p.ID, p.PatientName, p.Diseases, p.Allergies, p.RoomNumber, p.BedNumber,
		p.FloorNumber, p.Age, p.Gender, p.ContactInformation, p.EmergencyContact,
		p.AdditionalDetails, p.AdmissionDate, p.DischargeDate,
	)
	return err
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Patient, error) {
	return scanPatient(r.pool.QueryRow(ctx,
		`SELECT `+patientCols+` FROM patient WHERE id = $1`, id))
}

func (r *repoPG) Update(ctx context.Context, p *Patient) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE patient SET
			patient_name=$2, diseases=$3, allergies=$4, room_number=$5,
			bed_number=$6, floor_number=$7, age=$8, gender=$9,
			contact_information=$10, emergency_contact=$11,
			additional_details=$12, admission_date=$13, discharge_date=$14,
			updated_at=NOW()
		WHERE id = $1`,
		p.ID, p.PatientName, p.Diseases, p.Allergies, p.RoomNumber,
		p.BedNumber, p.FloorNumber, p.Age, p.Gender,
		p.ContactInformation, p.EmergencyContact,
		p.AdditionalDetails, p.AdmissionDate, p.DischargeDate,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("patient")
	}
	return nil
}

func (r *repoPG) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM patient WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("patient")
	}
	return nil
}

func (r *repoPG) List(ctx context.Context, f Filter, limit, offset int) ([]*Patient, int, error) {
	where := "TRUE"
	args := []any{}
	if f.Search != "" {
		where += fmt.Sprintf(` AND (patient_name ILIKE $%d OR contact_information = $%d OR emergency_contact = $%d)`,
			len(args)+1, len(args)+2, len(args)+3)
		args = append(args, "%"+f.Search+"%", f.Search, f.Search)
	}
	if f.Active {
		where += ` AND discharge_date IS NULL`
	}

	var total int
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM patient WHERE `+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`SELECT %s FROM patient WHERE %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		patientCols, where, len(args)+1, len(args)+2)
	rows, err := r.pool.Query(ctx, query, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var result []*Patient
	for rows.Next() {
		p, err := scanPatient(rows)
		if err != nil {
			return nil, 0, err
		}
		result = append(result, p)
	}
	return result, total, rows.Err()
}

func scanPatient(row pgx.Row) (*Patient, error) {
	var p Patient
	err := row.Scan(
		&p.ID, &p.PatientName, &p.Diseases, &p.Allergies, &p.RoomNumber,
		&p.BedNumber, &p.FloorNumber, &p.Age, &p.Gender,
		&p.ContactInformation, &p.EmergencyContact, &p.AdditionalDetails,
		&p.AdmissionDate, &p.DischargeDate, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, apperr.NotFound("patient")
		}
		return nil, err
	}
	return &p, nil
}
