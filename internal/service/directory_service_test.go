package service

import (
	"context"
	"errors"
	"testing"

	domain "university-registrar/internal/domain/records"
)

func TestCreateStudent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.seedDepartment(t, "Computer Science")

	major := "Systems"
	enrollDate := "2024-09-01"
	id, err := env.directory.CreateStudent(ctx, &CreateStudentRequest{
		FirstName:      "Grace",
		LastName:       "Okafor",
		DeptName:       "Computer Science",
		Email:          "gokafor@example.edu",
		Major:          &major,
		EnrollmentDate: &enrollDate,
	})
	if err != nil {
		t.Fatalf("CreateStudent failed: %v", err)
	}
	if id == 0 {
		t.Fatal("Expected a non-zero student id")
	}

	student, err := env.directory.GetStudent(ctx, id)
	if err != nil {
		t.Fatalf("GetStudent failed: %v", err)
	}
	if student.Status != domain.StatusActive {
		t.Errorf("Expected default status Active, got %s", student.Status)
	}
	if student.Major == nil || *student.Major != "Systems" {
		t.Errorf("Major not stored: %v", student.Major)
	}
}

func TestCreateStudentInvalidEmail(t *testing.T) {
	env := newTestEnv(t)
	env.seedDepartment(t, "Computer Science")

	_, err := env.directory.CreateStudent(context.Background(), &CreateStudentRequest{
		FirstName: "Grace",
		LastName:  "Okafor",
		DeptName:  "Computer Science",
		Email:     "not-an-email",
	})
	var emailErr *domain.InvalidEmailError
	if !errors.As(err, &emailErr) {
		t.Errorf("Expected InvalidEmailError, got %v", err)
	}
}

func TestCreateStudentInvalidEnrollmentDate(t *testing.T) {
	env := newTestEnv(t)
	env.seedDepartment(t, "Computer Science")

	badDate := "2024-02-30"
	_, err := env.directory.CreateStudent(context.Background(), &CreateStudentRequest{
		FirstName:      "Grace",
		LastName:       "Okafor",
		DeptName:       "Computer Science",
		Email:          "gokafor@example.edu",
		EnrollmentDate: &badDate,
	})
	var dateErr *domain.DateFormatError
	if !errors.As(err, &dateErr) {
		t.Errorf("Expected DateFormatError, got %v", err)
	}
}

func TestUpdateStudent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.seedDepartment(t, "Computer Science")
	id := env.seedStudent(t, "Computer Science")

	err := env.directory.UpdateStudent(ctx, id, map[string]any{
		"status":   "Graduated",
		"tot_cred": 120,
	})
	if err != nil {
		t.Fatalf("UpdateStudent failed: %v", err)
	}

	student, err := env.directory.GetStudent(ctx, id)
	if err != nil {
		t.Fatalf("GetStudent failed: %v", err)
	}
	if student.Status != domain.StatusGraduated || student.TotalCredits != 120 {
		t.Errorf("Update not applied: status=%s tot_cred=%d", student.Status, student.TotalCredits)
	}

	err = env.directory.UpdateStudent(ctx, id, map[string]any{"status": "Expelled"})
	var fieldErr *domain.FieldValueError
	if !errors.As(err, &fieldErr) {
		t.Errorf("Expected FieldValueError for bad status, got %v", err)
	}

	err = env.directory.UpdateStudent(ctx, id, map[string]any{"id": int64(99)})
	var unknown *domain.UnknownFieldError
	if !errors.As(err, &unknown) {
		t.Errorf("Expected UnknownFieldError for id update, got %v", err)
	}
}

func TestSearchStudents(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.seedDepartment(t, "Computer Science")
	env.seedDepartment(t, "History")
	env.seedStudent(t, "Computer Science")
	env.seedStudent(t, "History")

	results, err := env.directory.SearchStudents(ctx, map[string]any{"dept_name": "History"})
	if err != nil {
		t.Fatalf("SearchStudents failed: %v", err)
	}
	if len(results) != 1 || results[0].DeptName != "History" {
		t.Errorf("Expected one History student, got %+v", results)
	}

	_, err = env.directory.SearchStudents(ctx, map[string]any{})
	if !errors.Is(err, domain.ErrNoCriteria) {
		t.Errorf("Expected ErrNoCriteria, got %v", err)
	}

	_, err = env.directory.SearchStudents(ctx, map[string]any{"shoe_size": 42})
	var unknown *domain.UnknownFieldError
	if !errors.As(err, &unknown) {
		t.Errorf("Expected UnknownFieldError, got %v", err)
	}
}

func TestCreateInstructorInvalidRank(t *testing.T) {
	env := newTestEnv(t)
	env.seedDepartment(t, "Computer Science")

	_, err := env.directory.CreateInstructor(context.Background(), &CreateInstructorRequest{
		FirstName:    "Edsger",
		LastName:     "Katz",
		DeptName:     "Computer Science",
		Email:        "ekatz@example.edu",
		AcademicRank: "Grand Vizier",
		Salary:       95000,
	})
	var fieldErr *domain.FieldValueError
	if !errors.As(err, &fieldErr) {
		t.Errorf("Expected FieldValueError for rank, got %v", err)
	}
}

func TestUpdateInstructor(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.seedDepartment(t, "Computer Science")
	id := env.seedInstructor(t, "Computer Science")

	err := env.directory.UpdateInstructor(ctx, id, map[string]any{
		"academic_rank": "Associate Professor",
		"salary":        105000.0,
	})
	if err != nil {
		t.Fatalf("UpdateInstructor failed: %v", err)
	}

	instructor, err := env.directory.GetInstructor(ctx, id)
	if err != nil {
		t.Fatalf("GetInstructor failed: %v", err)
	}
	if instructor.AcademicRank != "Associate Professor" || instructor.Salary != 105000.0 {
		t.Errorf("Update not applied: rank=%s salary=%f", instructor.AcademicRank, instructor.Salary)
	}

	err = env.directory.UpdateInstructor(ctx, id, map[string]any{"salary": -5.0})
	var fieldErr *domain.FieldValueError
	if !errors.As(err, &fieldErr) {
		t.Errorf("Expected FieldValueError for negative salary, got %v", err)
	}
}

func TestAdvisorLifecycle(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.seedDepartment(t, "Computer Science")
	studentID := env.seedStudent(t, "Computer Science")

	firstAdvisor, err := env.directory.CreateInstructor(ctx, &CreateInstructorRequest{
		FirstName: "Barbara", LastName: "Liskov",
		DeptName: "Computer Science", Email: "bliskov@example.edu",
		AcademicRank: "Professor", Salary: 120000,
	})
	if err != nil {
		t.Fatalf("CreateInstructor failed: %v", err)
	}
	secondAdvisor, err := env.directory.CreateInstructor(ctx, &CreateInstructorRequest{
		FirstName: "Tony", LastName: "Hoare",
		DeptName: "Computer Science", Email: "thoare@example.edu",
		AcademicRank: "Professor", Salary: 120000,
	})
	if err != nil {
		t.Fatalf("CreateInstructor failed: %v", err)
	}

	start := "2024-09-01"
	if err := env.directory.AssignAdvisor(ctx, studentID, firstAdvisor, &start); err != nil {
		t.Fatalf("AssignAdvisor failed: %v", err)
	}

	info, err := env.directory.GetAdvisorInfo(ctx, studentID)
	if err != nil {
		t.Fatalf("GetAdvisorInfo failed: %v", err)
	}
	if info.AdvisorName != "Barbara Liskov" {
		t.Errorf("Expected advisor Barbara Liskov, got %s", info.AdvisorName)
	}
	if info.StartDate == nil || *info.StartDate != start {
		t.Errorf("Start date not stored: %v", info.StartDate)
	}

	end := "2025-06-30"
	if err := env.directory.UpdateAdvisor(ctx, studentID, secondAdvisor, &end); err != nil {
		t.Fatalf("UpdateAdvisor failed: %v", err)
	}

	info, err = env.directory.GetAdvisorInfo(ctx, studentID)
	if err != nil {
		t.Fatalf("GetAdvisorInfo after update failed: %v", err)
	}
	if info.AdvisorName != "Tony Hoare" {
		t.Errorf("Expected advisor Tony Hoare, got %s", info.AdvisorName)
	}
	if info.EndDate == nil || *info.EndDate != end {
		t.Errorf("End date not stored: %v", info.EndDate)
	}
}

func TestGetAdvisorInfoMissing(t *testing.T) {
	env := newTestEnv(t)
	env.seedDepartment(t, "Computer Science")
	studentID := env.seedStudent(t, "Computer Science")

	_, err := env.directory.GetAdvisorInfo(context.Background(), studentID)
	var notFound *domain.NotFoundError
	if !errors.As(err, &notFound) {
		t.Errorf("Expected NotFoundError, got %v", err)
	}
}
