package service

import (
	"context"
	"fmt"

	domain "university-registrar/internal/domain/records"
	"university-registrar/internal/validation"
	"university-registrar/pkg/logger"
	"university-registrar/pkg/validator"
)

var departmentUpdateFields = map[string]bool{
	"phone": true, "budget": true, "building": true, "dean_name": true,
}

var courseUpdateFields = map[string]bool{
	"title": true, "credits": true, "dept_name": true, "description": true,
}

// CatalogService owns the department and course catalog, including
// prerequisite edges.
type CatalogService struct {
	deptRepo   domain.DepartmentRepository
	courseRepo domain.CourseRepository
}

func NewCatalogService(deptRepo domain.DepartmentRepository, courseRepo domain.CourseRepository) *CatalogService {
	return &CatalogService{
		deptRepo:   deptRepo,
		courseRepo: courseRepo,
	}
}

func (s *CatalogService) CreateDepartment(ctx context.Context, req *CreateDepartmentRequest) error {
	if err := validator.ValidateStruct(req); err != nil {
		return fmt.Errorf("invalid department request: %w", err)
	}

	dept := &domain.Department{
		DeptName: req.DeptName,
		Phone:    req.Phone,
		Budget:   req.Budget,
		Building: req.Building,
		DeanName: req.DeanName,
	}
	if err := s.deptRepo.Create(ctx, dept); err != nil {
		return err
	}

	logger.Debug("Created department %s", dept.DeptName)
	return nil
}

func (s *CatalogService) UpdateDepartment(ctx context.Context, deptName string, fields map[string]any) error {
	exists, err := s.deptRepo.Exists(ctx, deptName)
	if err != nil {
		return err
	}
	if !exists {
		return &domain.NotFoundError{Entity: "Department", ID: deptName}
	}

	if len(fields) == 0 {
		return domain.ErrNoUpdates
	}
	if err := checkFields("department", fields, departmentUpdateFields); err != nil {
		return err
	}

	return s.deptRepo.Update(ctx, deptName, fields)
}

func (s *CatalogService) DeleteDepartment(ctx context.Context, deptName string) error {
	exists, err := s.deptRepo.Exists(ctx, deptName)
	if err != nil {
		return err
	}
	if !exists {
		return &domain.NotFoundError{Entity: "Department", ID: deptName}
	}

	// The datastore restricts the delete while dependents reference the row.
	return s.deptRepo.Delete(ctx, deptName)
}

func (s *CatalogService) GetDepartment(ctx context.Context, deptName string) (*domain.Department, error) {
	dept, err := s.deptRepo.GetByName(ctx, deptName)
	if err != nil {
		return nil, err
	}
	if dept == nil {
		return nil, &domain.NotFoundError{Entity: "Department", ID: deptName}
	}
	return dept, nil
}

func (s *CatalogService) ListDepartments(ctx context.Context) ([]*domain.Department, error) {
	return s.deptRepo.List(ctx)
}

func (s *CatalogService) CreateCourse(ctx context.Context, req *CreateCourseRequest) error {
	if err := validator.ValidateStruct(req); err != nil {
		return fmt.Errorf("invalid course request: %w", err)
	}
	if err := validation.Credit(req.Credits); err != nil {
		return err
	}

	deptExists, err := s.deptRepo.Exists(ctx, req.DeptName)
	if err != nil {
		return err
	}
	if !deptExists {
		return &domain.NotFoundError{Entity: "Department", ID: req.DeptName}
	}

	course := &domain.Course{
		CourseID:    req.CourseID,
		Title:       req.Title,
		Credits:     req.Credits,
		DeptName:    req.DeptName,
		Description: req.Description,
	}
	if err := s.courseRepo.Create(ctx, course); err != nil {
		return err
	}

	logger.Debug("Created course %s", course.CourseID)
	return nil
}

func (s *CatalogService) UpdateCourse(ctx context.Context, courseID string, fields map[string]any) error {
	exists, err := s.courseRepo.Exists(ctx, courseID)
	if err != nil {
		return err
	}
	if !exists {
		return &domain.NotFoundError{Entity: "Course", ID: courseID}
	}

	if len(fields) == 0 {
		return domain.ErrNoUpdates
	}
	if err := checkFields("course", fields, courseUpdateFields); err != nil {
		return err
	}

	if raw, ok := fields["credits"]; ok {
		credits, isInt := raw.(int)
		if !isInt {
			return &domain.FieldValueError{Field: "credit", Value: raw}
		}
		if err := validation.Credit(credits); err != nil {
			return err
		}
	}

	return s.courseRepo.Update(ctx, courseID, fields)
}

func (s *CatalogService) DeleteCourse(ctx context.Context, courseID string) error {
	exists, err := s.courseRepo.Exists(ctx, courseID)
	if err != nil {
		return err
	}
	if !exists {
		return &domain.NotFoundError{Entity: "Course", ID: courseID}
	}

	return s.courseRepo.Delete(ctx, courseID)
}

func (s *CatalogService) GetCourse(ctx context.Context, courseID string) (*domain.Course, error) {
	course, err := s.courseRepo.GetByID(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if course == nil {
		return nil, &domain.NotFoundError{Entity: "Course", ID: courseID}
	}
	return course, nil
}

func (s *CatalogService) ListCourses(ctx context.Context, deptName *string) ([]*domain.Course, error) {
	return s.courseRepo.List(ctx, deptName)
}

// AddPrerequisite records that courseID requires prereqID. Edges that would
// make a course require itself, directly or through other edges, are
// rejected.
func (s *CatalogService) AddPrerequisite(ctx context.Context, courseID, prereqID string) error {
	for _, id := range []string{courseID, prereqID} {
		exists, err := s.courseRepo.Exists(ctx, id)
		if err != nil {
			return err
		}
		if !exists {
			return &domain.NotFoundError{Entity: "Course", ID: id}
		}
	}

	cyclic, err := s.reaches(ctx, prereqID, courseID)
	if err != nil {
		return err
	}
	if cyclic {
		return &domain.FieldValueError{Field: "prereq_id", Value: prereqID}
	}

	return s.courseRepo.AddPrereq(ctx, domain.Prereq{CourseID: courseID, PrereqID: prereqID})
}

// reaches walks prerequisite edges from src looking for dst.
func (s *CatalogService) reaches(ctx context.Context, src, dst string) (bool, error) {
	if src == dst {
		return true, nil
	}
	seen := map[string]bool{src: true}
	frontier := []string{src}
	for len(frontier) > 0 {
		next := frontier[0]
		frontier = frontier[1:]
		edges, err := s.courseRepo.ListPrereqs(ctx, next)
		if err != nil {
			return false, err
		}
		for _, edge := range edges {
			if edge.PrereqID == dst {
				return true, nil
			}
			if !seen[edge.PrereqID] {
				seen[edge.PrereqID] = true
				frontier = append(frontier, edge.PrereqID)
			}
		}
	}
	return false, nil
}

func (s *CatalogService) RemovePrerequisite(ctx context.Context, courseID, prereqID string) error {
	for _, id := range []string{courseID, prereqID} {
		exists, err := s.courseRepo.Exists(ctx, id)
		if err != nil {
			return err
		}
		if !exists {
			return &domain.NotFoundError{Entity: "Course", ID: id}
		}
	}

	return s.courseRepo.RemovePrereq(ctx, domain.Prereq{CourseID: courseID, PrereqID: prereqID})
}

func (s *CatalogService) ListPrerequisites(ctx context.Context, courseID string) ([]*domain.Prereq, error) {
	return s.courseRepo.ListPrereqs(ctx, courseID)
}
