package service

import (
	"context"
	"testing"

	"github.com/jmoiron/sqlx"

	domain "university-registrar/internal/domain/records"
	"university-registrar/internal/infrastructure/database"
	"university-registrar/internal/infrastructure/repository"
)

// testEnv wires the full service stack against a fresh in-memory database.
type testEnv struct {
	db         *sqlx.DB
	catalog    *CatalogService
	directory  *DirectoryService
	sections   *SectionService
	enrollment *EnrollmentService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := database.NewConnection(database.Config{Driver: "sqlite", Path: ":memory:"})
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := database.NewMigrationRunner(db).RunMigrations(); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}

	deptRepo := repository.NewDepartmentRepository(db)
	studentRepo := repository.NewStudentRepository(db)
	instructorRepo := repository.NewInstructorRepository(db)
	courseRepo := repository.NewCourseRepository(db)
	sectionRepo := repository.NewSectionRepository(db)
	enrollmentRepo := repository.NewEnrollmentRepository(db)
	advisorRepo := repository.NewAdvisorRepository(db)

	return &testEnv{
		db:         db,
		catalog:    NewCatalogService(deptRepo, courseRepo),
		directory:  NewDirectoryService(deptRepo, studentRepo, instructorRepo, advisorRepo),
		sections:   NewSectionService(courseRepo, instructorRepo, sectionRepo),
		enrollment: NewEnrollmentService(studentRepo, sectionRepo, enrollmentRepo),
	}
}

// seedDepartment creates a department for tests that need one to hang
// students, instructors or courses off.
func (e *testEnv) seedDepartment(t *testing.T, name string) {
	t.Helper()
	err := e.catalog.CreateDepartment(context.Background(), &CreateDepartmentRequest{
		DeptName: name,
		Building: "Watson",
		Budget:   100000,
	})
	if err != nil {
		t.Fatalf("Failed to seed department %s: %v", name, err)
	}
}

func (e *testEnv) seedCourse(t *testing.T, courseID, deptName string, credits int) {
	t.Helper()
	err := e.catalog.CreateCourse(context.Background(), &CreateCourseRequest{
		CourseID: courseID,
		Title:    "Course " + courseID,
		Credits:  credits,
		DeptName: deptName,
	})
	if err != nil {
		t.Fatalf("Failed to seed course %s: %v", courseID, err)
	}
}

func (e *testEnv) seedStudent(t *testing.T, deptName string) int64 {
	t.Helper()
	id, err := e.directory.CreateStudent(context.Background(), &CreateStudentRequest{
		FirstName: "Shoshana",
		LastName:  "Levy",
		DeptName:  deptName,
		Email:     "shoshana@example.edu",
	})
	if err != nil {
		t.Fatalf("Failed to seed student: %v", err)
	}
	return id
}

func (e *testEnv) seedInstructor(t *testing.T, deptName string) int64 {
	t.Helper()
	id, err := e.directory.CreateInstructor(context.Background(), &CreateInstructorRequest{
		FirstName:    "Edsger",
		LastName:     "Katz",
		DeptName:     deptName,
		Email:        "ekatz@example.edu",
		AcademicRank: "Professor",
		Salary:       95000,
	})
	if err != nil {
		t.Fatalf("Failed to seed instructor: %v", err)
	}
	return id
}

func (e *testEnv) seedSection(t *testing.T, courseID, semester string, year, capacity int) domain.SectionRef {
	t.Helper()
	err := e.sections.CreateSection(context.Background(), &CreateSectionRequest{
		CourseID:     courseID,
		SecID:        "1",
		Semester:     semester,
		AcademicYear: year,
		TimeSlot:     "MWF 10:00-10:50",
		Room:         "Taylor 112",
		Capacity:     capacity,
	})
	if err != nil {
		t.Fatalf("Failed to seed section %s %s %d: %v", courseID, semester, year, err)
	}
	return domain.SectionRef{CourseID: courseID, SecID: "1", Semester: semester, AcademicYear: year}
}
