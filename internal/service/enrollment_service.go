package service

import (
	"context"
	"time"

	domain "university-registrar/internal/domain/records"
	"university-registrar/internal/validation"
	"university-registrar/pkg/logger"
)

// EnrollmentService drives the enrollment and grading state machine for a
// (student, section) pair: unenrolled -> enrolled -> {graded, dropped}.
type EnrollmentService struct {
	studentRepo    domain.StudentRepository
	sectionRepo    domain.SectionRepository
	enrollmentRepo domain.EnrollmentRepository
	now            func() time.Time
}

func NewEnrollmentService(
	studentRepo domain.StudentRepository,
	sectionRepo domain.SectionRepository,
	enrollmentRepo domain.EnrollmentRepository,
) *EnrollmentService {
	return &EnrollmentService{
		studentRepo:    studentRepo,
		sectionRepo:    sectionRepo,
		enrollmentRepo: enrollmentRepo,
		now:            time.Now,
	}
}

// currentTerm derives the semester label and year for a point in time:
// months 1-2 are Winter, 3-5 Spring, 6-8 Summer, the rest Fall.
func currentTerm(now time.Time) (string, int) {
	switch now.Month() {
	case time.January, time.February:
		return "Winter", now.Year()
	case time.March, time.April, time.May:
		return "Spring", now.Year()
	case time.June, time.July, time.August:
		return "Summer", now.Year()
	default:
		return "Fall", now.Year()
	}
}

// sectionActive reports whether the section's own term label matches the
// current calendar window. There is no forward or backward registration
// period.
func (s *EnrollmentService) sectionActive(section *domain.Section) bool {
	semester, year := currentTerm(s.now())
	return section.Semester == semester && section.AcademicYear == year
}

// Enroll registers the student in the section. The takes insert and the
// enrolled counter increment commit together.
func (s *EnrollmentService) Enroll(ctx context.Context, ref domain.TakesRef) error {
	if err := validation.Semester(ref.Semester); err != nil {
		return err
	}
	if err := validation.AcademicYear(ref.AcademicYear); err != nil {
		return err
	}

	section, err := s.sectionRepo.Get(ctx, ref.Section())
	if err != nil {
		return err
	}
	if section == nil {
		return &domain.NotFoundError{Entity: "Section", ID: ref.Section().String()}
	}
	if section.Enrolled >= section.Capacity {
		return domain.ErrSectionFull
	}
	if !s.sectionActive(section) {
		return domain.ErrSectionClosed
	}

	studentExists, err := s.studentRepo.Exists(ctx, ref.StudentID)
	if err != nil {
		return err
	}
	if !studentExists {
		return &domain.NotFoundError{Entity: "Student", ID: ref.StudentID}
	}

	if err := s.enrollmentRepo.Enroll(ctx, ref); err != nil {
		return err
	}

	logger.Info("Enrolled student %d in section %s", ref.StudentID, ref.Section())
	return nil
}

// Drop removes the student's registration and decrements the counter. A
// missing registration resolves to false rather than an error; this is the
// one soft failure in the enrollment path.
func (s *EnrollmentService) Drop(ctx context.Context, ref domain.TakesRef) (bool, error) {
	sectionExists, err := s.sectionRepo.Exists(ctx, ref.Section())
	if err != nil {
		return false, err
	}
	if !sectionExists {
		return false, &domain.NotFoundError{Entity: "Section", ID: ref.Section().String()}
	}

	studentExists, err := s.studentRepo.Exists(ctx, ref.StudentID)
	if err != nil {
		return false, err
	}
	if !studentExists {
		return false, &domain.NotFoundError{Entity: "Student", ID: ref.StudentID}
	}

	enrolled, err := s.enrollmentRepo.Exists(ctx, ref)
	if err != nil {
		return false, err
	}
	if !enrolled {
		return false, nil
	}

	if err := s.enrollmentRepo.Drop(ctx, ref); err != nil {
		return false, err
	}

	logger.Info("Dropped student %d from section %s", ref.StudentID, ref.Section())
	return true, nil
}

// AssignGrade sets the grade on an existing registration. Neither the
// cancelled flag nor the enrolled counter moves.
func (s *EnrollmentService) AssignGrade(ctx context.Context, ref domain.TakesRef, grade string) error {
	sectionExists, err := s.sectionRepo.Exists(ctx, ref.Section())
	if err != nil {
		return err
	}
	if !sectionExists {
		return &domain.NotFoundError{Entity: "Section", ID: ref.Section().String()}
	}

	studentExists, err := s.studentRepo.Exists(ctx, ref.StudentID)
	if err != nil {
		return err
	}
	if !studentExists {
		return &domain.NotFoundError{Entity: "Student", ID: ref.StudentID}
	}

	registered, err := s.enrollmentRepo.Exists(ctx, ref)
	if err != nil {
		return err
	}
	if !registered {
		return &domain.NotFoundError{Entity: "Takes", ID: ref.String()}
	}

	if err := validation.Grade(grade); err != nil {
		return err
	}
	if err := validation.Semester(ref.Semester); err != nil {
		return err
	}
	if err := validation.AcademicYear(ref.AcademicYear); err != nil {
		return err
	}

	if err := s.enrollmentRepo.SetGrade(ctx, ref, grade); err != nil {
		return err
	}

	logger.Info("Assigned grade %s to student %d for section %s", grade, ref.StudentID, ref.Section())
	return nil
}

// CalculateGPA derives the 4.0-scale GPA over all graded registrations.
// A student with no graded credits has a GPA of 0.
func (s *EnrollmentService) CalculateGPA(ctx context.Context, studentID int64) (float64, error) {
	rows, err := s.enrollmentRepo.GradeRows(ctx, studentID)
	if err != nil {
		return 0, err
	}

	var totalPoints float64
	var totalCredits int
	for _, row := range rows {
		totalPoints += float64(row.Credits) * domain.GradePoints[row.Grade]
		totalCredits += row.Credits
	}

	if totalCredits == 0 {
		return 0, nil
	}
	return totalPoints / float64(totalCredits), nil
}

// GetTranscript lists graded, non-cancelled registrations joined with the
// course catalog, ordered by term then course.
func (s *EnrollmentService) GetTranscript(ctx context.Context, studentID int64) ([]*domain.TranscriptEntry, error) {
	return s.enrollmentRepo.Transcript(ctx, studentID)
}

// GetEnrollmentInfo returns the registration joined with student and
// section scheduling data.
func (s *EnrollmentService) GetEnrollmentInfo(ctx context.Context, ref domain.TakesRef) (*domain.EnrollmentDetail, error) {
	detail, err := s.enrollmentRepo.GetDetail(ctx, ref)
	if err != nil {
		return nil, err
	}
	if detail == nil {
		return nil, &domain.NotFoundError{Entity: "Takes", ID: ref.String()}
	}
	return detail, nil
}
