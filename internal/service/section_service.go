package service

import (
	"context"
	"fmt"

	domain "university-registrar/internal/domain/records"
	"university-registrar/internal/validation"
	"university-registrar/pkg/logger"
	"university-registrar/pkg/validator"
)

// sectionUpdateFields permits direct mutation of enrolled as an
// administrative override, distinct from the managed enrollment path.
var sectionUpdateFields = map[string]bool{
	"time_slot": true, "room": true, "capacity": true, "enrolled": true,
}

// SectionService owns section scheduling and teaching assignments.
type SectionService struct {
	courseRepo     domain.CourseRepository
	instructorRepo domain.InstructorRepository
	sectionRepo    domain.SectionRepository
}

func NewSectionService(
	courseRepo domain.CourseRepository,
	instructorRepo domain.InstructorRepository,
	sectionRepo domain.SectionRepository,
) *SectionService {
	return &SectionService{
		courseRepo:     courseRepo,
		instructorRepo: instructorRepo,
		sectionRepo:    sectionRepo,
	}
}

// CreateSection schedules an offering. The enrolled counter starts at 0
// regardless of caller input.
func (s *SectionService) CreateSection(ctx context.Context, req *CreateSectionRequest) error {
	if err := validator.ValidateStruct(req); err != nil {
		return fmt.Errorf("invalid section request: %w", err)
	}

	courseExists, err := s.courseRepo.Exists(ctx, req.CourseID)
	if err != nil {
		return err
	}
	if !courseExists {
		return &domain.NotFoundError{Entity: "Course", ID: req.CourseID}
	}

	if err := validation.Semester(req.Semester); err != nil {
		return err
	}
	if err := validation.AcademicYear(req.AcademicYear); err != nil {
		return err
	}
	if err := validation.Timeslot(req.TimeSlot); err != nil {
		return err
	}
	if err := validation.Capacity(req.Capacity); err != nil {
		return err
	}

	section := &domain.Section{
		CourseID:     req.CourseID,
		SecID:        req.SecID,
		Semester:     req.Semester,
		AcademicYear: req.AcademicYear,
		TimeSlot:     req.TimeSlot,
		Room:         req.Room,
		Capacity:     req.Capacity,
	}
	if err := s.sectionRepo.Create(ctx, section); err != nil {
		return err
	}

	logger.Debug("Created section %s", section.Ref())
	return nil
}

func (s *SectionService) UpdateSection(ctx context.Context, ref domain.SectionRef, fields map[string]any) error {
	exists, err := s.sectionRepo.Exists(ctx, ref)
	if err != nil {
		return err
	}
	if !exists {
		return &domain.NotFoundError{Entity: "Section", ID: ref.String()}
	}

	if len(fields) == 0 {
		return domain.ErrNoUpdates
	}
	if err := checkFields("section", fields, sectionUpdateFields); err != nil {
		return err
	}

	if raw, ok := fields["time_slot"]; ok {
		slot, isString := raw.(string)
		if !isString {
			return &domain.TimeslotError{Slot: fmt.Sprintf("%v", raw)}
		}
		if err := validation.Timeslot(slot); err != nil {
			return err
		}
	}
	if raw, ok := fields["capacity"]; ok {
		capacity, isInt := raw.(int)
		if !isInt {
			return &domain.FieldValueError{Field: "capacity", Value: raw}
		}
		if err := validation.Capacity(capacity); err != nil {
			return err
		}
	}
	if raw, ok := fields["enrolled"]; ok {
		enrolled, isInt := raw.(int)
		if !isInt || enrolled < 0 {
			return &domain.FieldValueError{Field: "enrolled", Value: raw}
		}
	}

	return s.sectionRepo.Update(ctx, ref, fields)
}

func (s *SectionService) DeleteSection(ctx context.Context, ref domain.SectionRef) error {
	exists, err := s.sectionRepo.Exists(ctx, ref)
	if err != nil {
		return err
	}
	if !exists {
		return &domain.NotFoundError{Entity: "Section", ID: ref.String()}
	}

	return s.sectionRepo.Delete(ctx, ref)
}

// GetSection returns the section with its instructor, when one is assigned.
func (s *SectionService) GetSection(ctx context.Context, ref domain.SectionRef) (*domain.SectionDetail, error) {
	detail, err := s.sectionRepo.GetDetail(ctx, ref)
	if err != nil {
		return nil, err
	}
	if detail == nil {
		return nil, &domain.NotFoundError{Entity: "Section", ID: ref.String()}
	}
	return detail, nil
}

// ListSections returns the catalog view, optionally filtered by semester
// and/or academic year.
func (s *SectionService) ListSections(ctx context.Context, semester *string, year *int) ([]*domain.SectionListing, error) {
	if semester != nil {
		if err := validation.Semester(*semester); err != nil {
			return nil, err
		}
	}
	if year != nil {
		if err := validation.AcademicYear(*year); err != nil {
			return nil, err
		}
	}

	return s.sectionRepo.List(ctx, semester, year)
}

func (s *SectionService) AssignInstructor(ctx context.Context, assignment domain.Teaches) error {
	if err := validation.Semester(assignment.Semester); err != nil {
		return err
	}
	if err := validation.AcademicYear(assignment.AcademicYear); err != nil {
		return err
	}

	ref := domain.SectionRef{
		CourseID:     assignment.CourseID,
		SecID:        assignment.SecID,
		Semester:     assignment.Semester,
		AcademicYear: assignment.AcademicYear,
	}
	sectionExists, err := s.sectionRepo.Exists(ctx, ref)
	if err != nil {
		return err
	}
	if !sectionExists {
		return &domain.NotFoundError{Entity: "Section", ID: ref.String()}
	}

	instructorExists, err := s.instructorRepo.Exists(ctx, assignment.InstructorID)
	if err != nil {
		return err
	}
	if !instructorExists {
		return &domain.NotFoundError{Entity: "Instructor", ID: assignment.InstructorID}
	}

	return s.sectionRepo.AssignInstructor(ctx, assignment)
}

func (s *SectionService) UnassignInstructor(ctx context.Context, assignment domain.Teaches) error {
	exists, err := s.sectionRepo.AssignmentExists(ctx, assignment)
	if err != nil {
		return err
	}
	if !exists {
		return &domain.NotFoundError{Entity: "Teaches", ID: assignment.String()}
	}

	return s.sectionRepo.UnassignInstructor(ctx, assignment)
}
