package service

import (
	"context"
	"fmt"

	domain "university-registrar/internal/domain/records"
	"university-registrar/internal/validation"
	"university-registrar/pkg/logger"
	"university-registrar/pkg/validator"
)

var studentUpdateFields = map[string]bool{
	"fname": true, "lname": true, "dept_name": true,
	"major": true, "tot_cred": true, "email": true,
	"enrollment_date": true, "status": true,
}

var studentSearchFields = map[string]bool{
	"id": true, "fname": true, "lname": true,
	"dept_name": true, "major": true, "tot_cred": true,
	"email": true, "enrollment_date": true, "status": true,
}

var instructorUpdateFields = map[string]bool{
	"fname": true, "lname": true, "dept_name": true,
	"academic_rank": true, "salary": true, "email": true,
	"hire_date": true, "office_number": true,
}

// DirectoryService owns the people records: students, instructors and the
// advising relationship between them.
type DirectoryService struct {
	deptRepo       domain.DepartmentRepository
	studentRepo    domain.StudentRepository
	instructorRepo domain.InstructorRepository
	advisorRepo    domain.AdvisorRepository
}

func NewDirectoryService(
	deptRepo domain.DepartmentRepository,
	studentRepo domain.StudentRepository,
	instructorRepo domain.InstructorRepository,
	advisorRepo domain.AdvisorRepository,
) *DirectoryService {
	return &DirectoryService{
		deptRepo:       deptRepo,
		studentRepo:    studentRepo,
		instructorRepo: instructorRepo,
		advisorRepo:    advisorRepo,
	}
}

// CreateStudent returns the datastore-assigned student id.
func (s *DirectoryService) CreateStudent(ctx context.Context, req *CreateStudentRequest) (int64, error) {
	if err := validator.ValidateStruct(req); err != nil {
		return 0, fmt.Errorf("invalid student request: %w", err)
	}
	if err := validation.Email(req.Email); err != nil {
		return 0, err
	}
	if req.EnrollmentDate != nil {
		if err := validation.Date(*req.EnrollmentDate); err != nil {
			return 0, err
		}
	}

	deptExists, err := s.deptRepo.Exists(ctx, req.DeptName)
	if err != nil {
		return 0, err
	}
	if !deptExists {
		return 0, &domain.NotFoundError{Entity: "Department", ID: req.DeptName}
	}

	id, err := s.studentRepo.Create(ctx, &domain.Student{
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		DeptName:       req.DeptName,
		Email:          req.Email,
		TotalCredits:   req.TotalCredits,
		Major:          req.Major,
		EnrollmentDate: req.EnrollmentDate,
	})
	if err != nil {
		return 0, err
	}

	logger.Debug("Created student %d (%s %s)", id, req.FirstName, req.LastName)
	return id, nil
}

// UpdateStudent applies a whitelisted partial update; the student id itself
// is immutable.
func (s *DirectoryService) UpdateStudent(ctx context.Context, id int64, fields map[string]any) error {
	exists, err := s.studentRepo.Exists(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return &domain.NotFoundError{Entity: "Student", ID: id}
	}

	if len(fields) == 0 {
		return domain.ErrNoUpdates
	}
	if err := checkFields("student", fields, studentUpdateFields); err != nil {
		return err
	}

	if raw, ok := fields["status"]; ok {
		status, isString := raw.(string)
		if !isString {
			return &domain.FieldValueError{Field: "status", Value: raw}
		}
		if err := validation.Status(status); err != nil {
			return err
		}
	}
	if raw, ok := fields["email"]; ok {
		email, isString := raw.(string)
		if !isString {
			return &domain.InvalidEmailError{Email: fmt.Sprintf("%v", raw)}
		}
		if err := validation.Email(email); err != nil {
			return err
		}
	}
	if raw, ok := fields["enrollment_date"]; ok {
		date, isString := raw.(string)
		if !isString {
			return &domain.DateFormatError{Date: fmt.Sprintf("%v", raw)}
		}
		if err := validation.Date(date); err != nil {
			return err
		}
	}

	return s.studentRepo.Update(ctx, id, fields)
}

func (s *DirectoryService) DeleteStudent(ctx context.Context, id int64) error {
	exists, err := s.studentRepo.Exists(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return &domain.NotFoundError{Entity: "Student", ID: id}
	}

	return s.studentRepo.Delete(ctx, id)
}

func (s *DirectoryService) GetStudent(ctx context.Context, id int64) (*domain.Student, error) {
	student, err := s.studentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if student == nil {
		return nil, &domain.NotFoundError{Entity: "Student", ID: id}
	}
	return student, nil
}

func (s *DirectoryService) ListStudents(ctx context.Context, deptName *string) ([]*domain.Student, error) {
	return s.studentRepo.List(ctx, deptName)
}

// SearchStudents filters by exact match on any whitelisted column.
func (s *DirectoryService) SearchStudents(ctx context.Context, criteria map[string]any) ([]*domain.Student, error) {
	if len(criteria) == 0 {
		return nil, domain.ErrNoCriteria
	}
	if err := checkFields("student", criteria, studentSearchFields); err != nil {
		return nil, err
	}
	return s.studentRepo.Search(ctx, criteria)
}

// CreateInstructor returns the datastore-assigned instructor id.
func (s *DirectoryService) CreateInstructor(ctx context.Context, req *CreateInstructorRequest) (int64, error) {
	if err := validator.ValidateStruct(req); err != nil {
		return 0, fmt.Errorf("invalid instructor request: %w", err)
	}
	if err := validation.Email(req.Email); err != nil {
		return 0, err
	}
	if err := validation.Rank(req.AcademicRank); err != nil {
		return 0, err
	}
	if err := validation.Salary(req.Salary); err != nil {
		return 0, err
	}
	if req.HireDate != nil {
		if err := validation.Date(*req.HireDate); err != nil {
			return 0, err
		}
	}

	deptExists, err := s.deptRepo.Exists(ctx, req.DeptName)
	if err != nil {
		return 0, err
	}
	if !deptExists {
		return 0, &domain.NotFoundError{Entity: "Department", ID: req.DeptName}
	}

	id, err := s.instructorRepo.Create(ctx, &domain.Instructor{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		DeptName:     req.DeptName,
		Email:        req.Email,
		AcademicRank: req.AcademicRank,
		Salary:       req.Salary,
		OfficeNumber: req.OfficeNumber,
		HireDate:     req.HireDate,
	})
	if err != nil {
		return 0, err
	}

	logger.Debug("Created instructor %d (%s %s)", id, req.FirstName, req.LastName)
	return id, nil
}

func (s *DirectoryService) UpdateInstructor(ctx context.Context, id int64, fields map[string]any) error {
	exists, err := s.instructorRepo.Exists(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return &domain.NotFoundError{Entity: "Instructor", ID: id}
	}

	if len(fields) == 0 {
		return domain.ErrNoUpdates
	}
	if err := checkFields("instructor", fields, instructorUpdateFields); err != nil {
		return err
	}

	if raw, ok := fields["academic_rank"]; ok {
		rank, isString := raw.(string)
		if !isString {
			return &domain.FieldValueError{Field: "academic rank", Value: raw}
		}
		if err := validation.Rank(rank); err != nil {
			return err
		}
	}
	if raw, ok := fields["email"]; ok {
		email, isString := raw.(string)
		if !isString {
			return &domain.InvalidEmailError{Email: fmt.Sprintf("%v", raw)}
		}
		if err := validation.Email(email); err != nil {
			return err
		}
	}
	if raw, ok := fields["hire_date"]; ok {
		date, isString := raw.(string)
		if !isString {
			return &domain.DateFormatError{Date: fmt.Sprintf("%v", raw)}
		}
		if err := validation.Date(date); err != nil {
			return err
		}
	}
	if raw, ok := fields["salary"]; ok {
		if err := validation.Salary(raw); err != nil {
			return err
		}
	}

	return s.instructorRepo.Update(ctx, id, fields)
}

func (s *DirectoryService) DeleteInstructor(ctx context.Context, id int64) error {
	exists, err := s.instructorRepo.Exists(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return &domain.NotFoundError{Entity: "Instructor", ID: id}
	}

	return s.instructorRepo.Delete(ctx, id)
}

func (s *DirectoryService) GetInstructor(ctx context.Context, id int64) (*domain.Instructor, error) {
	instructor, err := s.instructorRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if instructor == nil {
		return nil, &domain.NotFoundError{Entity: "Instructor", ID: id}
	}
	return instructor, nil
}

func (s *DirectoryService) ListInstructors(ctx context.Context, deptName *string) ([]*domain.Instructor, error) {
	return s.instructorRepo.List(ctx, deptName)
}

// GetInstructorWorkload lists the sections an instructor teaches in a term.
func (s *DirectoryService) GetInstructorWorkload(ctx context.Context, id int64, semester string, year int) ([]*domain.WorkloadEntry, error) {
	if err := validation.Semester(semester); err != nil {
		return nil, err
	}
	if err := validation.AcademicYear(year); err != nil {
		return nil, err
	}

	exists, err := s.instructorRepo.Exists(ctx, id)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, &domain.NotFoundError{Entity: "Instructor", ID: id}
	}

	return s.instructorRepo.Workload(ctx, id, semester, year)
}

func (s *DirectoryService) AssignAdvisor(ctx context.Context, studentID, instructorID int64, startDate *string) error {
	if startDate != nil {
		if err := validation.Date(*startDate); err != nil {
			return err
		}
	}

	studentExists, err := s.studentRepo.Exists(ctx, studentID)
	if err != nil {
		return err
	}
	if !studentExists {
		return &domain.NotFoundError{Entity: "Student", ID: studentID}
	}

	instructorExists, err := s.instructorRepo.Exists(ctx, instructorID)
	if err != nil {
		return err
	}
	if !instructorExists {
		return &domain.NotFoundError{Entity: "Instructor", ID: instructorID}
	}

	return s.advisorRepo.Assign(ctx, &domain.Advisor{
		StudentID:    studentID,
		InstructorID: instructorID,
		StartDate:    startDate,
	})
}

// UpdateAdvisor changes the student's current advisor, optionally recording
// an end date for the outgoing assignment.
func (s *DirectoryService) UpdateAdvisor(ctx context.Context, studentID, newInstructorID int64, endDate *string) error {
	if endDate != nil {
		if err := validation.Date(*endDate); err != nil {
			return err
		}
	}

	studentExists, err := s.studentRepo.Exists(ctx, studentID)
	if err != nil {
		return err
	}
	if !studentExists {
		return &domain.NotFoundError{Entity: "Student", ID: studentID}
	}

	instructorExists, err := s.instructorRepo.Exists(ctx, newInstructorID)
	if err != nil {
		return err
	}
	if !instructorExists {
		return &domain.NotFoundError{Entity: "Instructor", ID: newInstructorID}
	}

	return s.advisorRepo.Update(ctx, studentID, newInstructorID, endDate)
}

func (s *DirectoryService) GetAdvisorInfo(ctx context.Context, studentID int64) (*domain.AdvisorInfo, error) {
	info, err := s.advisorRepo.GetInfo(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if info == nil {
		return nil, &domain.NotFoundError{Entity: "Advisor", ID: studentID}
	}
	return info, nil
}
