package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	domain "university-registrar/internal/domain/records"
)

// SectionRepository implements domain.SectionRepository over parameterized SQL.
type SectionRepository struct {
	db *sqlx.DB
}

func NewSectionRepository(db *sqlx.DB) domain.SectionRepository {
	return &SectionRepository{db: db}
}

// Create inserts the section. Enrolled always starts at 0; caller input for
// the counter is ignored by contract.
func (r *SectionRepository) Create(ctx context.Context, section *domain.Section) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO section (course_id, sec_id, semester, academic_year, time_slot, room, capacity, enrolled) VALUES (?, ?, ?, ?, ?, ?, ?, 0)",
		section.CourseID, section.SecID, section.Semester, section.AcademicYear,
		section.TimeSlot, section.Room, section.Capacity,
	)
	return domain.WrapDB(err)
}

func (r *SectionRepository) Update(ctx context.Context, ref domain.SectionRef, fields map[string]any) error {
	clause, args := setClause(fields)
	query := fmt.Sprintf(
		"UPDATE section SET %s WHERE course_id = ? AND sec_id = ? AND semester = ? AND academic_year = ?",
		clause,
	)
	args = append(args, ref.CourseID, ref.SecID, ref.Semester, ref.AcademicYear)
	_, err := r.db.ExecContext(ctx, query, args...)
	return domain.WrapDB(err)
}

func (r *SectionRepository) Delete(ctx context.Context, ref domain.SectionRef) error {
	_, err := r.db.ExecContext(ctx,
		"DELETE FROM section WHERE course_id = ? AND sec_id = ? AND semester = ? AND academic_year = ?",
		ref.CourseID, ref.SecID, ref.Semester, ref.AcademicYear,
	)
	return domain.WrapDB(err)
}

func (r *SectionRepository) Get(ctx context.Context, ref domain.SectionRef) (*domain.Section, error) {
	var section domain.Section
	err := r.db.GetContext(ctx, &section,
		"SELECT * FROM section WHERE course_id = ? AND sec_id = ? AND semester = ? AND academic_year = ?",
		ref.CourseID, ref.SecID, ref.Semester, ref.AcademicYear,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, domain.WrapDB(err)
	}
	return &section, nil
}

// GetDetail joins the section with its instructor, when one is assigned.
func (r *SectionRepository) GetDetail(ctx context.Context, ref domain.SectionRef) (*domain.SectionDetail, error) {
	query := `
		SELECT s.course_id, s.sec_id, s.semester, s.academic_year,
			s.time_slot, s.room, s.capacity, s.enrolled,
			i.fname || ' ' || i.lname AS instructor_name
		FROM section s
		LEFT JOIN teaches t ON s.course_id = t.course_id
			AND s.sec_id = t.sec_id
			AND s.semester = t.semester
			AND s.academic_year = t.academic_year
		LEFT JOIN instructor i ON t.instructor_id = i.id
		WHERE s.course_id = ? AND s.sec_id = ? AND s.semester = ? AND s.academic_year = ?`

	var detail domain.SectionDetail
	err := r.db.GetContext(ctx, &detail, query, ref.CourseID, ref.SecID, ref.Semester, ref.AcademicYear)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, domain.WrapDB(err)
	}
	return &detail, nil
}

// List returns the catalog view, optionally filtered by semester and/or
// academic year.
func (r *SectionRepository) List(ctx context.Context, semester *string, year *int) ([]*domain.SectionListing, error) {
	query := `
		SELECT s.course_id, s.sec_id, s.semester, s.academic_year,
			s.time_slot, s.room, s.capacity, s.enrolled,
			c.title, c.credits, c.dept_name,
			i.id AS instructor_id,
			i.fname || ' ' || i.lname AS instructor_name
		FROM section s
		JOIN course c ON s.course_id = c.course_id
		LEFT JOIN teaches t ON s.course_id = t.course_id
			AND s.sec_id = t.sec_id
			AND s.semester = t.semester
			AND s.academic_year = t.academic_year
		LEFT JOIN instructor i ON t.instructor_id = i.id`

	var args []any
	var conditions []string
	if semester != nil {
		conditions = append(conditions, "s.semester = ?")
		args = append(args, *semester)
	}
	if year != nil {
		conditions = append(conditions, "s.academic_year = ?")
		args = append(args, *year)
	}
	for i, cond := range conditions {
		if i == 0 {
			query += " WHERE " + cond
		} else {
			query += " AND " + cond
		}
	}
	query += " ORDER BY s.academic_year, s.semester, s.course_id, s.sec_id"

	var listings []*domain.SectionListing
	if err := r.db.SelectContext(ctx, &listings, query, args...); err != nil {
		return nil, domain.WrapDB(err)
	}
	return listings, nil
}

func (r *SectionRepository) Exists(ctx context.Context, ref domain.SectionRef) (bool, error) {
	var count int
	err := r.db.GetContext(ctx, &count,
		"SELECT COUNT(*) FROM section WHERE course_id = ? AND sec_id = ? AND semester = ? AND academic_year = ?",
		ref.CourseID, ref.SecID, ref.Semester, ref.AcademicYear,
	)
	if err != nil {
		return false, domain.WrapDB(err)
	}
	return count > 0, nil
}

func (r *SectionRepository) AssignInstructor(ctx context.Context, assignment domain.Teaches) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO teaches (instructor_id, course_id, sec_id, semester, academic_year) VALUES (?, ?, ?, ?, ?)",
		assignment.InstructorID, assignment.CourseID, assignment.SecID,
		assignment.Semester, assignment.AcademicYear,
	)
	return domain.WrapDB(err)
}

func (r *SectionRepository) UnassignInstructor(ctx context.Context, assignment domain.Teaches) error {
	_, err := r.db.ExecContext(ctx,
		"DELETE FROM teaches WHERE instructor_id = ? AND course_id = ? AND sec_id = ? AND semester = ? AND academic_year = ?",
		assignment.InstructorID, assignment.CourseID, assignment.SecID,
		assignment.Semester, assignment.AcademicYear,
	)
	return domain.WrapDB(err)
}

func (r *SectionRepository) AssignmentExists(ctx context.Context, assignment domain.Teaches) (bool, error) {
	var count int
	err := r.db.GetContext(ctx, &count,
		"SELECT COUNT(*) FROM teaches WHERE instructor_id = ? AND course_id = ? AND sec_id = ? AND semester = ? AND academic_year = ?",
		assignment.InstructorID, assignment.CourseID, assignment.SecID,
		assignment.Semester, assignment.AcademicYear,
	)
	if err != nil {
		return false, domain.WrapDB(err)
	}
	return count > 0, nil
}
