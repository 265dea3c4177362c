package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	domain "university-registrar/internal/domain/records"
)

// InstructorRepository implements domain.InstructorRepository over
// parameterized SQL.
type InstructorRepository struct {
	db *sqlx.DB
}

func NewInstructorRepository(db *sqlx.DB) domain.InstructorRepository {
	return &InstructorRepository{db: db}
}

func (r *InstructorRepository) Create(ctx context.Context, instructor *domain.Instructor) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO instructor (fname, lname, dept_name, email, academic_rank, salary, office_number, hire_date) VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
		instructor.FirstName, instructor.LastName, instructor.DeptName, instructor.Email,
		instructor.AcademicRank, instructor.Salary, instructor.OfficeNumber, instructor.HireDate,
	)
	if err != nil {
		return 0, domain.WrapDB(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, domain.WrapDB(err)
	}
	return id, nil
}

func (r *InstructorRepository) Update(ctx context.Context, id int64, fields map[string]any) error {
	clause, args := setClause(fields)
	query := fmt.Sprintf("UPDATE instructor SET %s WHERE id = ?", clause)
	args = append(args, id)
	_, err := r.db.ExecContext(ctx, query, args...)
	return domain.WrapDB(err)
}

func (r *InstructorRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM instructor WHERE id = ?", id)
	return domain.WrapDB(err)
}

func (r *InstructorRepository) GetByID(ctx context.Context, id int64) (*domain.Instructor, error) {
	var instructor domain.Instructor
	err := r.db.GetContext(ctx, &instructor, "SELECT * FROM instructor WHERE id = ?", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, domain.WrapDB(err)
	}
	return &instructor, nil
}

func (r *InstructorRepository) List(ctx context.Context, deptName *string) ([]*domain.Instructor, error) {
	var instructors []*domain.Instructor
	var err error
	if deptName != nil {
		err = r.db.SelectContext(ctx, &instructors, "SELECT * FROM instructor WHERE dept_name = ? ORDER BY id", *deptName)
	} else {
		err = r.db.SelectContext(ctx, &instructors, "SELECT * FROM instructor ORDER BY id")
	}
	if err != nil {
		return nil, domain.WrapDB(err)
	}
	return instructors, nil
}

func (r *InstructorRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var count int
	err := r.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM instructor WHERE id = ?", id)
	if err != nil {
		return false, domain.WrapDB(err)
	}
	return count > 0, nil
}

// Workload lists the sections an instructor teaches in a given term,
// joined with their scheduling data.
func (r *InstructorRepository) Workload(ctx context.Context, id int64, semester string, year int) ([]*domain.WorkloadEntry, error) {
	query := `
		SELECT t.course_id, t.sec_id, s.time_slot, s.room
		FROM teaches t
		JOIN section s ON t.course_id = s.course_id
			AND t.sec_id = s.sec_id
			AND t.semester = s.semester
			AND t.academic_year = s.academic_year
		WHERE t.instructor_id = ? AND t.semester = ? AND t.academic_year = ?
		ORDER BY t.course_id, t.sec_id`

	var entries []*domain.WorkloadEntry
	if err := r.db.SelectContext(ctx, &entries, query, id, semester, year); err != nil {
		return nil, domain.WrapDB(err)
	}
	return entries, nil
}
