package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	domain "university-registrar/internal/domain/records"
)

// AdvisorRepository implements domain.AdvisorRepository over parameterized SQL.
type AdvisorRepository struct {
	db *sqlx.DB
}

func NewAdvisorRepository(db *sqlx.DB) domain.AdvisorRepository {
	return &AdvisorRepository{db: db}
}

func (r *AdvisorRepository) Assign(ctx context.Context, advisor *domain.Advisor) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO advisor (student_id, instructor_id, start_date) VALUES (?, ?, ?)",
		advisor.StudentID, advisor.InstructorID, advisor.StartDate,
	)
	return domain.WrapDB(err)
}

// Update overwrites the current advisor row for the student; there is no
// historical record of past advisors.
func (r *AdvisorRepository) Update(ctx context.Context, studentID, instructorID int64, endDate *string) error {
	_, err := r.db.ExecContext(ctx,
		"UPDATE advisor SET instructor_id = ?, end_date = ? WHERE student_id = ?",
		instructorID, endDate, studentID,
	)
	return domain.WrapDB(err)
}

func (r *AdvisorRepository) GetInfo(ctx context.Context, studentID int64) (*domain.AdvisorInfo, error) {
	query := `
		SELECT s.fname || ' ' || s.lname AS student_name,
			a.student_id,
			i.fname || ' ' || i.lname AS advisor_name,
			i.email AS advisor_email, i.office_number AS advisor_office,
			a.start_date, a.end_date
		FROM advisor a
		LEFT JOIN student s ON s.id = a.student_id
		LEFT JOIN instructor i ON i.id = a.instructor_id
		WHERE a.student_id = ?`

	var info domain.AdvisorInfo
	err := r.db.GetContext(ctx, &info, query, studentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, domain.WrapDB(err)
	}
	return &info, nil
}
