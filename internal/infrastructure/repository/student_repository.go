package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	domain "university-registrar/internal/domain/records"
)

// StudentRepository implements domain.StudentRepository over parameterized SQL.
type StudentRepository struct {
	db *sqlx.DB
}

func NewStudentRepository(db *sqlx.DB) domain.StudentRepository {
	return &StudentRepository{db: db}
}

// Create inserts the student and returns the datastore-assigned id. Status
// is left to its column default.
func (r *StudentRepository) Create(ctx context.Context, student *domain.Student) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO student (fname, lname, dept_name, email, tot_cred, major, enrollment_date) VALUES (?, ?, ?, ?, ?, ?, ?)",
		student.FirstName, student.LastName, student.DeptName, student.Email,
		student.TotalCredits, student.Major, student.EnrollmentDate,
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

func (r *StudentRepository) Update(ctx context.Context, id int64, fields map[string]any) error {
	clause, args := setClause(fields)
	query := fmt.Sprintf("UPDATE student SET %s WHERE id = ?", clause)
	args = append(args, id)
	_, err := r.db.ExecContext(ctx, query, args...)
	return domain.WrapDB(err)
}

func (r *StudentRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM student WHERE id = ?", id)
	return domain.WrapDB(err)
}

func (r *StudentRepository) GetByID(ctx context.Context, id int64) (*domain.Student, error) {
	var student domain.Student
	err := r.db.GetContext(ctx, &student, "SELECT * FROM student WHERE id = ?", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, domain.WrapDB(err)
	}
	return &student, nil
}

func (r *StudentRepository) List(ctx context.Context, deptName *string) ([]*domain.Student, error) {
	var students []*domain.Student
	var err error
	if deptName != nil {
		err = r.db.SelectContext(ctx, &students, "SELECT * FROM student WHERE dept_name = ? ORDER BY id", *deptName)
	} else {
		err = r.db.SelectContext(ctx, &students, "SELECT * FROM student ORDER BY id")
	}
	if err != nil {
		return nil, domain.WrapDB(err)
	}
	return students, nil
}

func (r *StudentRepository) Search(ctx context.Context, criteria map[string]any) ([]*domain.Student, error) {
	clause, args := whereClause(criteria)
	query := fmt.Sprintf("SELECT * FROM student WHERE %s ORDER BY id", clause)
	var students []*domain.Student
	if err := r.db.SelectContext(ctx, &students, query, args...); err != nil {
		return nil, domain.WrapDB(err)
	}
	return students, nil
}

func (r *StudentRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var count int
	err := r.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM student WHERE id = ?", id)
	if err != nil {
		return false, domain.WrapDB(err)
	}
	return count > 0, nil
}
