package domain

import "context"

// DepartmentRepository defines the interface for department data access
type DepartmentRepository interface {
	Create(ctx context.Context, dept *Department) error
	Update(ctx context.Context, deptName string, fields map[string]any) error
	Delete(ctx context.Context, deptName string) error
	GetByName(ctx context.Context, deptName string) (*Department, error)
	List(ctx context.Context) ([]*Department, error)
	Exists(ctx context.Context, deptName string) (bool, error)
}

// StudentRepository defines the interface for student data access
type StudentRepository interface {
	Create(ctx context.Context, student *Student) (int64, error)
	Update(ctx context.Context, id int64, fields map[string]any) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*Student, error)
	List(ctx context.Context, deptName *string) ([]*Student, error)
	Search(ctx context.Context, criteria map[string]any) ([]*Student, error)
	Exists(ctx context.Context, id int64) (bool, error)
}

// InstructorRepository defines the interface for instructor data access
type InstructorRepository interface {
	Create(ctx context.Context, instructor *Instructor) (int64, error)
	Update(ctx context.Context, id int64, fields map[string]any) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*Instructor, error)
	List(ctx context.Context, deptName *string) ([]*Instructor, error)
	Exists(ctx context.Context, id int64) (bool, error)
	Workload(ctx context.Context, id int64, semester string, year int) ([]*WorkloadEntry, error)
}

// CourseRepository defines the interface for course and prerequisite data access
type CourseRepository interface {
	Create(ctx context.Context, course *Course) error
	Update(ctx context.Context, courseID string, fields map[string]any) error
	Delete(ctx context.Context, courseID string) error
	GetByID(ctx context.Context, courseID string) (*Course, error)
	List(ctx context.Context, deptName *string) ([]*Course, error)
	Exists(ctx context.Context, courseID string) (bool, error)
	AddPrereq(ctx context.Context, edge Prereq) error
	RemovePrereq(ctx context.Context, edge Prereq) error
	ListPrereqs(ctx context.Context, courseID string) ([]*Prereq, error)
}

// SectionRepository defines the interface for section and teaching data access
type SectionRepository interface {
	Create(ctx context.Context, section *Section) error
	Update(ctx context.Context, ref SectionRef, fields map[string]any) error
	Delete(ctx context.Context, ref SectionRef) error
	Get(ctx context.Context, ref SectionRef) (*Section, error)
	GetDetail(ctx context.Context, ref SectionRef) (*SectionDetail, error)
	List(ctx context.Context, semester *string, year *int) ([]*SectionListing, error)
	Exists(ctx context.Context, ref SectionRef) (bool, error)
	AssignInstructor(ctx context.Context, assignment Teaches) error
	UnassignInstructor(ctx context.Context, assignment Teaches) error
	AssignmentExists(ctx context.Context, assignment Teaches) (bool, error)
}

// EnrollmentRepository defines the interface for takes data access. Enroll
// and Drop mutate the takes set and the section's enrolled counter inside a
// single transaction.
type EnrollmentRepository interface {
	Enroll(ctx context.Context, ref TakesRef) error
	Drop(ctx context.Context, ref TakesRef) error
	Exists(ctx context.Context, ref TakesRef) (bool, error)
	SetGrade(ctx context.Context, ref TakesRef, grade string) error
	GetDetail(ctx context.Context, ref TakesRef) (*EnrollmentDetail, error)
	Transcript(ctx context.Context, studentID int64) ([]*TranscriptEntry, error)
	GradeRows(ctx context.Context, studentID int64) ([]*GradeRow, error)
}

// AdvisorRepository defines the interface for advising data access
type AdvisorRepository interface {
	Assign(ctx context.Context, advisor *Advisor) error
	Update(ctx context.Context, studentID, instructorID int64, endDate *string) error
	GetInfo(ctx context.Context, studentID int64) (*AdvisorInfo, error)
}
