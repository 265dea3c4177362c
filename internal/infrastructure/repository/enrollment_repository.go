package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	domain "university-registrar/internal/domain/records"
)

// EnrollmentRepository implements domain.EnrollmentRepository. The takes
// mutation and the section's enrolled counter move inside one transaction so
// the cached count can never drift from the registration set.
type EnrollmentRepository struct {
	db *sqlx.DB
}

func NewEnrollmentRepository(db *sqlx.DB) domain.EnrollmentRepository {
	return &EnrollmentRepository{db: db}
}

func (r *EnrollmentRepository) Enroll(ctx context.Context, ref domain.TakesRef) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return domain.WrapDB(err)
	}

	_, err = tx.ExecContext(ctx,
		"INSERT INTO takes (student_id, course_id, sec_id, semester, academic_year, cancelled) VALUES (?, ?, ?, ?, ?, 0)",
		ref.StudentID, ref.CourseID, ref.SecID, ref.Semester, ref.AcademicYear,
	)
	if err != nil {
		tx.Rollback()
		return domain.WrapDB(err)
	}

	_, err = tx.ExecContext(ctx,
		"UPDATE section SET enrolled = enrolled + 1 WHERE course_id = ? AND sec_id = ? AND semester = ? AND academic_year = ?",
		ref.CourseID, ref.SecID, ref.Semester, ref.AcademicYear,
	)
	if err != nil {
		tx.Rollback()
		return domain.WrapDB(err)
	}

	return domain.WrapDB(tx.Commit())
}

func (r *EnrollmentRepository) Drop(ctx context.Context, ref domain.TakesRef) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return domain.WrapDB(err)
	}

	_, err = tx.ExecContext(ctx,
		"DELETE FROM takes WHERE student_id = ? AND course_id = ? AND sec_id = ? AND semester = ? AND academic_year = ?",
		ref.StudentID, ref.CourseID, ref.SecID, ref.Semester, ref.AcademicYear,
	)
	if err != nil {
		tx.Rollback()
		return domain.WrapDB(err)
	}

	_, err = tx.ExecContext(ctx,
		"UPDATE section SET enrolled = enrolled - 1 WHERE course_id = ? AND sec_id = ? AND semester = ? AND academic_year = ?",
		ref.CourseID, ref.SecID, ref.Semester, ref.AcademicYear,
	)
	if err != nil {
		tx.Rollback()
		return domain.WrapDB(err)
	}

	return domain.WrapDB(tx.Commit())
}

func (r *EnrollmentRepository) Exists(ctx context.Context, ref domain.TakesRef) (bool, error) {
	var count int
	err := r.db.GetContext(ctx, &count,
		"SELECT COUNT(*) FROM takes WHERE student_id = ? AND course_id = ? AND sec_id = ? AND semester = ? AND academic_year = ?",
		ref.StudentID, ref.CourseID, ref.SecID, ref.Semester, ref.AcademicYear,
	)
	if err != nil {
		return false, domain.WrapDB(err)
	}
	return count > 0, nil
}

func (r *EnrollmentRepository) SetGrade(ctx context.Context, ref domain.TakesRef, grade string) error {
	_, err := r.db.ExecContext(ctx,
		"UPDATE takes SET grade = ? WHERE student_id = ? AND course_id = ? AND sec_id = ? AND semester = ? AND academic_year = ?",
		grade, ref.StudentID, ref.CourseID, ref.SecID, ref.Semester, ref.AcademicYear,
	)
	return domain.WrapDB(err)
}

func (r *EnrollmentRepository) GetDetail(ctx context.Context, ref domain.TakesRef) (*domain.EnrollmentDetail, error) {
	query := `
		SELECT st.fname || ' ' || st.lname AS student_name,
			t.student_id, t.course_id, t.sec_id, t.semester, t.academic_year,
			t.cancelled, t.enrollment_date, t.grade,
			s.time_slot, s.room
		FROM takes t
		LEFT JOIN section s ON t.course_id = s.course_id
			AND t.sec_id = s.sec_id
			AND t.semester = s.semester
			AND t.academic_year = s.academic_year
		LEFT JOIN student st ON t.student_id = st.id
		WHERE t.student_id = ? AND t.course_id = ? AND t.sec_id = ?
			AND t.semester = ? AND t.academic_year = ?`

	var detail domain.EnrollmentDetail
	err := r.db.GetContext(ctx, &detail, query,
		ref.StudentID, ref.CourseID, ref.SecID, ref.Semester, ref.AcademicYear)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, domain.WrapDB(err)
	}
	return &detail, nil
}

// Transcript lists the non-cancelled, graded registrations joined with the
// course catalog, ordered by term then course.
func (r *EnrollmentRepository) Transcript(ctx context.Context, studentID int64) ([]*domain.TranscriptEntry, error) {
	query := `
		SELECT t.course_id, c.title, c.credits, t.semester, t.academic_year,
			t.grade, t.enrollment_date
		FROM takes t
		JOIN course c ON t.course_id = c.course_id
		WHERE t.student_id = ? AND t.cancelled = 0 AND t.grade IS NOT NULL
		ORDER BY t.academic_year, t.semester, t.course_id`

	var entries []*domain.TranscriptEntry
	if err := r.db.SelectContext(ctx, &entries, query, studentID); err != nil {
		return nil, domain.WrapDB(err)
	}
	return entries, nil
}

// GradeRows feeds GPA derivation with (credits, grade) pairs for every
// graded registration.
func (r *EnrollmentRepository) GradeRows(ctx context.Context, studentID int64) ([]*domain.GradeRow, error) {
	query := `
		SELECT c.credits, t.grade
		FROM takes t
		JOIN course c ON t.course_id = c.course_id
		WHERE t.student_id = ? AND t.grade IS NOT NULL`

	var rows []*domain.GradeRow
	if err := r.db.SelectContext(ctx, &rows, query, studentID); err != nil {
		return nil, domain.WrapDB(err)
	}
	return rows, nil
}
