package database

import (
	"fmt"

	"github.com/jmoiron/sqlx"

	"university-registrar/pkg/logger"
)

// Seed loads a small sample dataset for local development. It assumes an
// empty database; rerunning it on seeded data fails on the primary keys.
func Seed(db *sqlx.DB) error {
	departments := []struct {
		name, phone, building, dean string
		budget                      float64
	}{
		{"Computer Science", "555-0100", "Taylor Hall", "Grace Kim", 1200000},
		{"Mathematics", "555-0140", "Watson Hall", "Pierre Laurent", 850000},
	}
	for _, d := range departments {
		if _, err := db.Exec(
			"INSERT INTO department (dept_name, phone, budget, building, dean_name) VALUES (?, ?, ?, ?, ?)",
			d.name, d.phone, d.budget, d.building, d.dean,
		); err != nil {
			return fmt.Errorf("seed department %s: %w", d.name, err)
		}
	}

	courses := []struct {
		id, title, dept, description string
		credits                      int
	}{
		{"CS-101", "Introduction to Programming", "Computer Science", "Programming fundamentals in a high-level language", 4},
		{"CS-201", "Data Structures", "Computer Science", "Lists, trees, graphs and their trade-offs", 4},
		{"MATH-110", "Calculus I", "Mathematics", "Limits, derivatives and integrals", 3},
	}
	for _, c := range courses {
		if _, err := db.Exec(
			"INSERT INTO course (course_id, title, credits, dept_name, description) VALUES (?, ?, ?, ?, ?)",
			c.id, c.title, c.credits, c.dept, c.description,
		); err != nil {
			return fmt.Errorf("seed course %s: %w", c.id, err)
		}
	}

	if _, err := db.Exec("INSERT INTO prereq (course_id, prereq_id) VALUES (?, ?)", "CS-201", "CS-101"); err != nil {
		return fmt.Errorf("seed prereq: %w", err)
	}

	instructors := []struct {
		fname, lname, dept, email, rank, office, hired string
		salary                                         float64
	}{
		{"Alan", "Reyes", "Computer Science", "alan.reyes@example.edu", "Professor", "T-412", "2012-08-20", 145000},
		{"Mina", "Okafor", "Mathematics", "mina.okafor@example.edu", "Associate Professor", "W-219", "2017-01-09", 112000},
	}
	for _, i := range instructors {
		if _, err := db.Exec(
			"INSERT INTO instructor (fname, lname, dept_name, email, academic_rank, salary, office_number, hire_date) VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
			i.fname, i.lname, i.dept, i.email, i.rank, i.salary, i.office, i.hired,
		); err != nil {
			return fmt.Errorf("seed instructor %s %s: %w", i.fname, i.lname, err)
		}
	}

	students := []struct {
		fname, lname, dept, email, major, enrolled string
	}{
		{"Dana", "Whitfield", "Computer Science", "dana.w@example.edu", "Computer Science", "2024-09-02"},
		{"Leo", "Tanaka", "Computer Science", "leo.t@example.edu", "Computer Science", "2024-09-02"},
		{"Sara", "Haddad", "Mathematics", "sara.h@example.edu", "Applied Mathematics", "2023-09-04"},
	}
	for _, s := range students {
		if _, err := db.Exec(
			"INSERT INTO student (fname, lname, dept_name, email, major, enrollment_date) VALUES (?, ?, ?, ?, ?, ?)",
			s.fname, s.lname, s.dept, s.email, s.major, s.enrolled,
		); err != nil {
			return fmt.Errorf("seed student %s %s: %w", s.fname, s.lname, err)
		}
	}

	sections := []struct {
		course, sec, semester, slot, room string
		year, capacity                    int
	}{
		{"CS-101", "1", "Fall", "MWF 09:00-09:50", "T-100", 2025, 120},
		{"CS-201", "1", "Fall", "TTh 14:00-15:15", "T-204", 2025, 60},
		{"MATH-110", "1", "Fall", "MW 11:00-12:15", "W-310", 2025, 90},
	}
	for _, s := range sections {
		if _, err := db.Exec(
			"INSERT INTO section (course_id, sec_id, semester, academic_year, time_slot, room, capacity, enrolled) VALUES (?, ?, ?, ?, ?, ?, ?, 0)",
			s.course, s.sec, s.semester, s.year, s.slot, s.room, s.capacity,
		); err != nil {
			return fmt.Errorf("seed section %s-%s: %w", s.course, s.sec, err)
		}
	}

	teaches := []struct {
		instructor            int64
		course, sec, semester string
		year                  int
	}{
		{1, "CS-101", "1", "Fall", 2025},
		{1, "CS-201", "1", "Fall", 2025},
		{2, "MATH-110", "1", "Fall", 2025},
	}
	for _, t := range teaches {
		if _, err := db.Exec(
			"INSERT INTO teaches (instructor_id, course_id, sec_id, semester, academic_year) VALUES (?, ?, ?, ?, ?)",
			t.instructor, t.course, t.sec, t.semester, t.year,
		); err != nil {
			return fmt.Errorf("seed teaches %s-%s: %w", t.course, t.sec, err)
		}
	}

	if _, err := db.Exec(
		"INSERT INTO advisor (student_id, instructor_id, start_date) VALUES (?, ?, ?)",
		1, 1, "2024-09-02",
	); err != nil {
		return fmt.Errorf("seed advisor: %w", err)
	}

	logger.Info("Seeded %d departments, %d courses, %d instructors, %d students, %d sections",
		len(departments), len(courses), len(instructors), len(students), len(sections))

	return nil
}
