package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	domain "university-registrar/internal/domain/records"
)

// CourseRepository implements domain.CourseRepository over parameterized SQL.
type CourseRepository struct {
	db *sqlx.DB
}

func NewCourseRepository(db *sqlx.DB) domain.CourseRepository {
	return &CourseRepository{db: db}
}

func (r *CourseRepository) Create(ctx context.Context, course *domain.Course) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO course (course_id, title, credits, dept_name, description) VALUES (?, ?, ?, ?, ?)",
		course.CourseID, course.Title, course.Credits, course.DeptName, course.Description,
	)
	return domain.WrapDB(err)
}

func (r *CourseRepository) Update(ctx context.Context, courseID string, fields map[string]any) error {
	clause, args := setClause(fields)
	query := fmt.Sprintf("UPDATE course SET %s WHERE course_id = ?", clause)
	args = append(args, courseID)
	_, err := r.db.ExecContext(ctx, query, args...)
	return domain.WrapDB(err)
}

func (r *CourseRepository) Delete(ctx context.Context, courseID string) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM course WHERE course_id = ?", courseID)
	return domain.WrapDB(err)
}

func (r *CourseRepository) GetByID(ctx context.Context, courseID string) (*domain.Course, error) {
	var course domain.Course
	err := r.db.GetContext(ctx, &course, "SELECT * FROM course WHERE course_id = ?", courseID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, domain.WrapDB(err)
	}
	return &course, nil
}

func (r *CourseRepository) List(ctx context.Context, deptName *string) ([]*domain.Course, error) {
	var courses []*domain.Course
	var err error
	if deptName != nil {
		err = r.db.SelectContext(ctx, &courses, "SELECT * FROM course WHERE dept_name = ? ORDER BY course_id", *deptName)
	} else {
		err = r.db.SelectContext(ctx, &courses, "SELECT * FROM course ORDER BY course_id")
	}
	if err != nil {
		return nil, domain.WrapDB(err)
	}
	return courses, nil
}

func (r *CourseRepository) Exists(ctx context.Context, courseID string) (bool, error) {
	var count int
	err := r.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM course WHERE course_id = ?", courseID)
	if err != nil {
		return false, domain.WrapDB(err)
	}
	return count > 0, nil
}

func (r *CourseRepository) AddPrereq(ctx context.Context, edge domain.Prereq) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO prereq (course_id, prereq_id) VALUES (?, ?)",
		edge.CourseID, edge.PrereqID,
	)
	return domain.WrapDB(err)
}

func (r *CourseRepository) RemovePrereq(ctx context.Context, edge domain.Prereq) error {
	_, err := r.db.ExecContext(ctx,
		"DELETE FROM prereq WHERE course_id = ? AND prereq_id = ?",
		edge.CourseID, edge.PrereqID,
	)
	return domain.WrapDB(err)
}

func (r *CourseRepository) ListPrereqs(ctx context.Context, courseID string) ([]*domain.Prereq, error) {
	var edges []*domain.Prereq
	err := r.db.SelectContext(ctx, &edges,
		"SELECT * FROM prereq WHERE course_id = ? ORDER BY prereq_id", courseID)
	if err != nil {
		return nil, domain.WrapDB(err)
	}
	return edges, nil
}
