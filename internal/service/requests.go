package service

// Create requests carry the fixed, typed field set for each entity. Shape
// constraints live in the validate tags; field-format rules are applied by
// the services through the validation package.

type CreateDepartmentRequest struct {
	DeptName string  `json:"dept_name" validate:"required"`
	Phone    string  `json:"phone"`
	Budget   float64 `json:"budget" validate:"gte=0"`
	Building string  `json:"building"`
	DeanName string  `json:"dean_name"`
}

type CreateStudentRequest struct {
	FirstName      string  `json:"fname" validate:"required"`
	LastName       string  `json:"lname" validate:"required"`
	DeptName       string  `json:"dept_name" validate:"required"`
	Email          string  `json:"email" validate:"required"`
	TotalCredits   int     `json:"tot_cred" validate:"gte=0"`
	Major          *string `json:"major"`
	EnrollmentDate *string `json:"enrollment_date"`
}

type CreateInstructorRequest struct {
	FirstName    string  `json:"fname" validate:"required"`
	LastName     string  `json:"lname" validate:"required"`
	DeptName     string  `json:"dept_name" validate:"required"`
	Email        string  `json:"email" validate:"required"`
	AcademicRank string  `json:"academic_rank" validate:"required"`
	Salary       float64 `json:"salary"`
	OfficeNumber *string `json:"office_number"`
	HireDate     *string `json:"hire_date"`
}

type CreateCourseRequest struct {
	CourseID    string  `json:"course_id" validate:"required"`
	Title       string  `json:"title" validate:"required"`
	Credits     int     `json:"credits"`
	DeptName    string  `json:"dept_name" validate:"required"`
	Description *string `json:"description"`
}

type CreateSectionRequest struct {
	CourseID     string `json:"course_id" validate:"required"`
	SecID        string `json:"sec_id" validate:"required"`
	Semester     string `json:"semester" validate:"required"`
	AcademicYear int    `json:"academic_year" validate:"required"`
	TimeSlot     string `json:"time_slot" validate:"required"`
	Room         string `json:"room"`
	Capacity     int    `json:"capacity"`
}
