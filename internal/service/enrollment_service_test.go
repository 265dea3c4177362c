package service

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	domain "university-registrar/internal/domain/records"
)

// fixTime pins the service clock inside the Spring window so Spring 2025
// sections are enrollable.
func fixTime(env *testEnv) {
	env.enrollment.now = func() time.Time {
		return time.Date(2025, time.March, 15, 12, 0, 0, 0, time.UTC)
	}
}

func enrollmentFixture(t *testing.T) (*testEnv, domain.TakesRef) {
	t.Helper()
	env := newTestEnv(t)
	fixTime(env)
	env.seedDepartment(t, "Computer Science")
	env.seedCourse(t, "CS-101", "Computer Science", 4)
	ref := env.seedSection(t, "CS-101", "Spring", 2025, 2)
	studentID := env.seedStudent(t, "Computer Science")

	return env, domain.TakesRef{
		StudentID:    studentID,
		CourseID:     ref.CourseID,
		SecID:        ref.SecID,
		Semester:     ref.Semester,
		AcademicYear: ref.AcademicYear,
	}
}

func TestCurrentTerm(t *testing.T) {
	cases := []struct {
		month    time.Month
		semester string
	}{
		{time.January, "Winter"},
		{time.February, "Winter"},
		{time.March, "Spring"},
		{time.May, "Spring"},
		{time.June, "Summer"},
		{time.August, "Summer"},
		{time.September, "Fall"},
		{time.December, "Fall"},
	}
	for _, tc := range cases {
		semester, year := currentTerm(time.Date(2025, tc.month, 10, 0, 0, 0, 0, time.UTC))
		if semester != tc.semester || year != 2025 {
			t.Errorf("currentTerm(%v) = %s %d, want %s 2025", tc.month, semester, year, tc.semester)
		}
	}
}

func TestEnrollAndCounter(t *testing.T) {
	env, ref := enrollmentFixture(t)
	ctx := context.Background()

	if err := env.enrollment.Enroll(ctx, ref); err != nil {
		t.Fatalf("Enroll failed: %v", err)
	}

	detail, err := env.sections.GetSection(ctx, ref.Section())
	if err != nil {
		t.Fatalf("GetSection failed: %v", err)
	}
	if detail.Enrolled != 1 {
		t.Errorf("Expected enrolled=1 after enroll, got %d", detail.Enrolled)
	}

	info, err := env.enrollment.GetEnrollmentInfo(ctx, ref)
	if err != nil {
		t.Fatalf("GetEnrollmentInfo failed: %v", err)
	}
	if info.Cancelled {
		t.Error("Fresh enrollment should not be cancelled")
	}
	if info.Grade != nil {
		t.Errorf("Fresh enrollment should have no grade, got %v", *info.Grade)
	}
}

func TestEnrollDuplicate(t *testing.T) {
	env, ref := enrollmentFixture(t)
	ctx := context.Background()

	if err := env.enrollment.Enroll(ctx, ref); err != nil {
		t.Fatalf("Enroll failed: %v", err)
	}

	err := env.enrollment.Enroll(ctx, ref)
	var dbErr *domain.DatabaseError
	if !errors.As(err, &dbErr) {
		t.Fatalf("Expected DatabaseError on duplicate enroll, got %v", err)
	}

	// The failed attempt must not bump the counter.
	detail, err := env.sections.GetSection(ctx, ref.Section())
	if err != nil {
		t.Fatalf("GetSection failed: %v", err)
	}
	if detail.Enrolled != 1 {
		t.Errorf("Expected enrolled=1 after failed duplicate, got %d", detail.Enrolled)
	}
}

func TestEnrollSectionFull(t *testing.T) {
	env, ref := enrollmentFixture(t)
	ctx := context.Background()

	// Fill the 2-seat section with two more students.
	for i := 0; i < 2; i++ {
		otherID := env.seedStudent(t, "Computer Science")
		other := ref
		other.StudentID = otherID
		if err := env.enrollment.Enroll(ctx, other); err != nil {
			t.Fatalf("Enroll %d failed: %v", i, err)
		}
	}

	err := env.enrollment.Enroll(ctx, ref)
	if !errors.Is(err, domain.ErrSectionFull) {
		t.Fatalf("Expected ErrSectionFull, got %v", err)
	}

	detail, err := env.sections.GetSection(ctx, ref.Section())
	if err != nil {
		t.Fatalf("GetSection failed: %v", err)
	}
	if detail.Enrolled != 2 {
		t.Errorf("Expected enrolled=2 at capacity, got %d", detail.Enrolled)
	}
}

func TestEnrollOutsideTermWindow(t *testing.T) {
	env, ref := enrollmentFixture(t)
	ctx := context.Background()

	// Fall 2025 is not the current window under the pinned Spring clock.
	env.seedCourse(t, "CS-102", "Computer Science", 3)
	fallRef := env.seedSection(t, "CS-102", "Fall", 2025, 30)
	attempt := ref
	attempt.CourseID = fallRef.CourseID
	attempt.Semester = fallRef.Semester

	err := env.enrollment.Enroll(ctx, attempt)
	if !errors.Is(err, domain.ErrSectionClosed) {
		t.Errorf("Expected ErrSectionClosed, got %v", err)
	}
}

func TestEnrollMissingSection(t *testing.T) {
	env, ref := enrollmentFixture(t)

	missing := ref
	missing.CourseID = "CS-404"
	err := env.enrollment.Enroll(context.Background(), missing)
	var notFound *domain.NotFoundError
	if !errors.As(err, &notFound) {
		t.Errorf("Expected NotFoundError, got %v", err)
	}
}

func TestDrop(t *testing.T) {
	env, ref := enrollmentFixture(t)
	ctx := context.Background()

	if err := env.enrollment.Enroll(ctx, ref); err != nil {
		t.Fatalf("Enroll failed: %v", err)
	}

	dropped, err := env.enrollment.Drop(ctx, ref)
	if err != nil {
		t.Fatalf("Drop failed: %v", err)
	}
	if !dropped {
		t.Fatal("Expected Drop to report true")
	}

	detail, err := env.sections.GetSection(ctx, ref.Section())
	if err != nil {
		t.Fatalf("GetSection failed: %v", err)
	}
	if detail.Enrolled != 0 {
		t.Errorf("Expected enrolled=0 after drop, got %d", detail.Enrolled)
	}

	// Dropping a registration that no longer exists is a soft no-op.
	dropped, err = env.enrollment.Drop(ctx, ref)
	if err != nil {
		t.Fatalf("Second drop errored: %v", err)
	}
	if dropped {
		t.Error("Expected second drop to report false")
	}
	detail, err = env.sections.GetSection(ctx, ref.Section())
	if err != nil {
		t.Fatalf("GetSection failed: %v", err)
	}
	if detail.Enrolled != 0 {
		t.Errorf("Counter moved on no-op drop: %d", detail.Enrolled)
	}
}

func TestAssignGrade(t *testing.T) {
	env, ref := enrollmentFixture(t)
	ctx := context.Background()

	// Grading requires an existing registration.
	err := env.enrollment.AssignGrade(ctx, ref, "A")
	var notFound *domain.NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("Expected NotFoundError before enrollment, got %v", err)
	}
	if notFound.Entity != "Takes" {
		t.Errorf("Expected Takes not found, got %s", notFound.Entity)
	}

	if err := env.enrollment.Enroll(ctx, ref); err != nil {
		t.Fatalf("Enroll failed: %v", err)
	}

	err = env.enrollment.AssignGrade(ctx, ref, "E")
	var fieldErr *domain.FieldValueError
	if !errors.As(err, &fieldErr) {
		t.Errorf("Expected FieldValueError for grade E, got %v", err)
	}

	if err := env.enrollment.AssignGrade(ctx, ref, "A-"); err != nil {
		t.Fatalf("AssignGrade failed: %v", err)
	}

	info, err := env.enrollment.GetEnrollmentInfo(ctx, ref)
	if err != nil {
		t.Fatalf("GetEnrollmentInfo failed: %v", err)
	}
	if info.Grade == nil || *info.Grade != "A-" {
		t.Errorf("Expected grade A-, got %v", info.Grade)
	}

	// Grading leaves the counter alone.
	detail, err := env.sections.GetSection(ctx, ref.Section())
	if err != nil {
		t.Fatalf("GetSection failed: %v", err)
	}
	if detail.Enrolled != 1 {
		t.Errorf("Expected enrolled=1 after grading, got %d", detail.Enrolled)
	}
}

func TestCalculateGPA(t *testing.T) {
	env, ref := enrollmentFixture(t)
	ctx := context.Background()

	// No graded credits yet.
	gpa, err := env.enrollment.CalculateGPA(ctx, ref.StudentID)
	if err != nil {
		t.Fatalf("CalculateGPA failed: %v", err)
	}
	if gpa != 0 {
		t.Errorf("Expected GPA 0 with no grades, got %f", gpa)
	}

	// CS-101 is 4 credits, CS-102 is 3.
	env.seedCourse(t, "CS-102", "Computer Science", 3)
	secondRef := env.seedSection(t, "CS-102", "Spring", 2025, 30)
	second := ref
	second.CourseID = secondRef.CourseID

	if err := env.enrollment.Enroll(ctx, ref); err != nil {
		t.Fatalf("Enroll CS-101 failed: %v", err)
	}
	if err := env.enrollment.Enroll(ctx, second); err != nil {
		t.Fatalf("Enroll CS-102 failed: %v", err)
	}
	if err := env.enrollment.AssignGrade(ctx, ref, "A"); err != nil {
		t.Fatalf("AssignGrade CS-101 failed: %v", err)
	}
	if err := env.enrollment.AssignGrade(ctx, second, "B"); err != nil {
		t.Fatalf("AssignGrade CS-102 failed: %v", err)
	}

	gpa, err = env.enrollment.CalculateGPA(ctx, ref.StudentID)
	if err != nil {
		t.Fatalf("CalculateGPA failed: %v", err)
	}
	want := (4*4.0 + 3*3.0) / 7.0
	if math.Abs(gpa-want) > 1e-9 {
		t.Errorf("Expected GPA %f, got %f", want, gpa)
	}
}

func TestGetTranscript(t *testing.T) {
	env, ref := enrollmentFixture(t)
	ctx := context.Background()

	if err := env.enrollment.Enroll(ctx, ref); err != nil {
		t.Fatalf("Enroll failed: %v", err)
	}

	// Ungraded registrations stay off the transcript.
	entries, err := env.enrollment.GetTranscript(ctx, ref.StudentID)
	if err != nil {
		t.Fatalf("GetTranscript failed: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("Expected empty transcript before grading, got %+v", entries)
	}

	if err := env.enrollment.AssignGrade(ctx, ref, "B+"); err != nil {
		t.Fatalf("AssignGrade failed: %v", err)
	}

	entries, err = env.enrollment.GetTranscript(ctx, ref.StudentID)
	if err != nil {
		t.Fatalf("GetTranscript after grading failed: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("Expected one transcript entry, got %d", len(entries))
	}
	entry := entries[0]
	if entry.CourseID != "CS-101" || entry.Grade != "B+" || entry.Credits != 4 {
		t.Errorf("Unexpected transcript entry: %+v", entry)
	}
}

func TestGetEnrollmentInfoMissing(t *testing.T) {
	env, ref := enrollmentFixture(t)

	_, err := env.enrollment.GetEnrollmentInfo(context.Background(), ref)
	var notFound *domain.NotFoundError
	if !errors.As(err, &notFound) {
		t.Errorf("Expected NotFoundError, got %v", err)
	}
}
