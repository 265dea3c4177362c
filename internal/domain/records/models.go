package domain

import "fmt"

// Student status values
const (
	StatusActive    = "Active"
	StatusInactive  = "Inactive"
	StatusGraduated = "Graduated"
	StatusSuspended = "Suspended"
)

// GradePoints maps letter grades to their 4.0-scale value for GPA math.
var GradePoints = map[string]float64{
	"A+": 4.0, "A": 4.0, "A-": 3.7,
	"B+": 3.3, "B": 3.0, "B-": 2.7,
	"C+": 2.3, "C": 2.0, "C-": 1.7,
	"D+": 1.3, "D": 1.0, "F": 0.0,
}

// Department is keyed by its name; the name is immutable after creation.
type Department struct {
	DeptName string  `db:"dept_name" json:"dept_name"`
	Phone    string  `db:"phone" json:"phone"`
	Budget   float64 `db:"budget" json:"budget"`
	Building string  `db:"building" json:"building"`
	DeanName string  `db:"dean_name" json:"dean_name"`
}

// Student carries a datastore-assigned surrogate id.
type Student struct {
	ID             int64   `db:"id" json:"id"`
	FirstName      string  `db:"fname" json:"fname"`
	LastName       string  `db:"lname" json:"lname"`
	DeptName       string  `db:"dept_name" json:"dept_name"`
	Email          string  `db:"email" json:"email"`
	TotalCredits   int     `db:"tot_cred" json:"tot_cred"`
	Major          *string `db:"major" json:"major,omitempty"`
	EnrollmentDate *string `db:"enrollment_date" json:"enrollment_date,omitempty"`
	Status         string  `db:"status" json:"status"`
}

type Instructor struct {
	ID           int64   `db:"id" json:"id"`
	FirstName    string  `db:"fname" json:"fname"`
	LastName     string  `db:"lname" json:"lname"`
	DeptName     string  `db:"dept_name" json:"dept_name"`
	Email        string  `db:"email" json:"email"`
	AcademicRank string  `db:"academic_rank" json:"academic_rank"`
	Salary       float64 `db:"salary" json:"salary"`
	OfficeNumber *string `db:"office_number" json:"office_number,omitempty"`
	HireDate     *string `db:"hire_date" json:"hire_date,omitempty"`
}

type Course struct {
	CourseID    string  `db:"course_id" json:"course_id"`
	Title       string  `db:"title" json:"title"`
	Credits     int     `db:"credits" json:"credits"`
	DeptName    string  `db:"dept_name" json:"dept_name"`
	Description *string `db:"description" json:"description,omitempty"`
}

// Prereq is a directed edge: CourseID requires PrereqID.
type Prereq struct {
	CourseID string `db:"course_id" json:"course_id"`
	PrereqID string `db:"prereq_id" json:"prereq_id"`
}

// SectionRef is the composite key identifying one offering of a course.
type SectionRef struct {
	CourseID     string `db:"course_id" json:"course_id"`
	SecID        string `db:"sec_id" json:"sec_id"`
	Semester     string `db:"semester" json:"semester"`
	AcademicYear int    `db:"academic_year" json:"academic_year"`
}

func (r SectionRef) String() string {
	return fmt.Sprintf("%s-%s-%s-%d", r.CourseID, r.SecID, r.Semester, r.AcademicYear)
}

// Section is a scheduled offering. Enrolled is a denormalized running count
// of active Takes records, maintained by the enrollment operations.
type Section struct {
	CourseID     string `db:"course_id" json:"course_id"`
	SecID        string `db:"sec_id" json:"sec_id"`
	Semester     string `db:"semester" json:"semester"`
	AcademicYear int    `db:"academic_year" json:"academic_year"`
	TimeSlot     string `db:"time_slot" json:"time_slot"`
	Room         string `db:"room" json:"room"`
	Capacity     int    `db:"capacity" json:"capacity"`
	Enrolled     int    `db:"enrolled" json:"enrolled"`
}

func (s *Section) Ref() SectionRef {
	return SectionRef{
		CourseID:     s.CourseID,
		SecID:        s.SecID,
		Semester:     s.Semester,
		AcademicYear: s.AcademicYear,
	}
}

// Teaches assigns an instructor to a section; the tuple itself is the key.
type Teaches struct {
	InstructorID int64  `db:"instructor_id" json:"instructor_id"`
	CourseID     string `db:"course_id" json:"course_id"`
	SecID        string `db:"sec_id" json:"sec_id"`
	Semester     string `db:"semester" json:"semester"`
	AcademicYear int    `db:"academic_year" json:"academic_year"`
}

func (t Teaches) String() string {
	return fmt.Sprintf("%d-%s-%s-%s-%d", t.InstructorID, t.CourseID, t.SecID, t.Semester, t.AcademicYear)
}

// TakesRef identifies one student's registration in one section offering.
type TakesRef struct {
	StudentID    int64  `db:"student_id" json:"student_id"`
	CourseID     string `db:"course_id" json:"course_id"`
	SecID        string `db:"sec_id" json:"sec_id"`
	Semester     string `db:"semester" json:"semester"`
	AcademicYear int    `db:"academic_year" json:"academic_year"`
}

func (r TakesRef) String() string {
	return fmt.Sprintf("%d-%s-%s-%s-%d", r.StudentID, r.CourseID, r.SecID, r.Semester, r.AcademicYear)
}

func (r TakesRef) Section() SectionRef {
	return SectionRef{
		CourseID:     r.CourseID,
		SecID:        r.SecID,
		Semester:     r.Semester,
		AcademicYear: r.AcademicYear,
	}
}

// Takes is the enrollment record. Grade stays nil until assigned.
type Takes struct {
	StudentID      int64   `db:"student_id" json:"student_id"`
	CourseID       string  `db:"course_id" json:"course_id"`
	SecID          string  `db:"sec_id" json:"sec_id"`
	Semester       string  `db:"semester" json:"semester"`
	AcademicYear   int     `db:"academic_year" json:"academic_year"`
	Cancelled      bool    `db:"cancelled" json:"cancelled"`
	EnrollmentDate *string `db:"enrollment_date" json:"enrollment_date,omitempty"`
	Grade          *string `db:"grade" json:"grade,omitempty"`
}

// Advisor holds the current advising relationship for a student. There is
// one row per student; reassignment overwrites it.
type Advisor struct {
	StudentID    int64   `db:"student_id" json:"student_id"`
	InstructorID int64   `db:"instructor_id" json:"instructor_id"`
	StartDate    *string `db:"start_date" json:"start_date,omitempty"`
	EndDate      *string `db:"end_date" json:"end_date,omitempty"`
}

// Reporting views

// TranscriptEntry is one graded, non-cancelled registration joined with the
// course catalog row.
type TranscriptEntry struct {
	CourseID       string  `db:"course_id" json:"course_id"`
	Title          string  `db:"title" json:"title"`
	Credits        int     `db:"credits" json:"credits"`
	Semester       string  `db:"semester" json:"semester"`
	AcademicYear   int     `db:"academic_year" json:"academic_year"`
	Grade          string  `db:"grade" json:"grade"`
	EnrollmentDate *string `db:"enrollment_date" json:"enrollment_date,omitempty"`
}

// GradeRow feeds GPA derivation.
type GradeRow struct {
	Credits int    `db:"credits"`
	Grade   string `db:"grade"`
}

// WorkloadEntry is one section an instructor teaches in a given term.
type WorkloadEntry struct {
	CourseID string `db:"course_id" json:"course_id"`
	SecID    string `db:"sec_id" json:"sec_id"`
	TimeSlot string `db:"time_slot" json:"time_slot"`
	Room     string `db:"room" json:"room"`
}

// SectionDetail is a section row joined with its (optional) instructor.
type SectionDetail struct {
	Section
	InstructorName *string `db:"instructor_name" json:"instructor_name,omitempty"`
}

// SectionListing is the catalog view: section + course + instructor.
type SectionListing struct {
	Section
	Title          string  `db:"title" json:"title"`
	Credits        int     `db:"credits" json:"credits"`
	DeptName       string  `db:"dept_name" json:"dept_name"`
	InstructorID   *int64  `db:"instructor_id" json:"instructor_id,omitempty"`
	InstructorName *string `db:"instructor_name" json:"instructor_name,omitempty"`
}

// EnrollmentDetail is a takes row joined with the student and section.
type EnrollmentDetail struct {
	StudentName    string  `db:"student_name" json:"student_name"`
	StudentID      int64   `db:"student_id" json:"student_id"`
	CourseID       string  `db:"course_id" json:"course_id"`
	SecID          string  `db:"sec_id" json:"sec_id"`
	Semester       string  `db:"semester" json:"semester"`
	AcademicYear   int     `db:"academic_year" json:"academic_year"`
	Cancelled      bool    `db:"cancelled" json:"cancelled"`
	EnrollmentDate *string `db:"enrollment_date" json:"enrollment_date,omitempty"`
	Grade          *string `db:"grade" json:"grade,omitempty"`
	TimeSlot       *string `db:"time_slot" json:"time_slot,omitempty"`
	Room           *string `db:"room" json:"room,omitempty"`
}

// AdvisorInfo is the advising view for a student.
type AdvisorInfo struct {
	StudentName   string  `db:"student_name" json:"student_name"`
	StudentID     int64   `db:"student_id" json:"student_id"`
	AdvisorName   string  `db:"advisor_name" json:"advisor_name"`
	AdvisorEmail  string  `db:"advisor_email" json:"advisor_email"`
	AdvisorOffice *string `db:"advisor_office" json:"advisor_office,omitempty"`
	StartDate     *string `db:"start_date" json:"start_date,omitempty"`
	EndDate       *string `db:"end_date" json:"end_date,omitempty"`
}
