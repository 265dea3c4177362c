// Package validation holds the pure field-format predicates gating every
// write. The predicates never touch the datastore; existence checks are a
// separate precondition step in the service layer.
package validation

import (
	"regexp"
	"strconv"
	"strings"

	domain "university-registrar/internal/domain/records"
)

var (
	emailPattern = regexp.MustCompile(`^[^@]+@[^@]+\.[^@]+$`)
	datePattern  = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

	// Longer day codes come first so alternation does not stop at a prefix.
	timeslotPattern = regexp.MustCompile(`^(TTh|MWF|MW|TR|WF|Th|Su|[MTWFS]) ([01]?[0-9]|2[0-3]):[0-5][0-9]-([01]?[0-9]|2[0-3]):[0-5][0-9]$`)
)

// daysInMonth is a fixed calendar table. February is always capped at 28;
// leap years are not recognized.
var daysInMonth = map[int]int{
	1: 31, 2: 28, 3: 31, 4: 30, 5: 31, 6: 30,
	7: 31, 8: 31, 9: 30, 10: 31, 11: 30, 12: 31,
}

var validSemesters = map[string]bool{
	"Fall": true, "Winter": true, "Spring": true, "Summer": true,
}

var validStatuses = map[string]bool{
	domain.StatusActive: true, domain.StatusInactive: true,
	domain.StatusGraduated: true, domain.StatusSuspended: true,
}

var validRanks = map[string]bool{
	"Assistant Professor": true, "Associate Professor": true,
	"Professor": true, "Lecturer": true, "Adjunct": true,
}

// Email checks the local-part@domain.tld shape.
func Email(email string) error {
	if !emailPattern.MatchString(email) {
		return &domain.InvalidEmailError{Email: email}
	}
	return nil
}

// Date checks YYYY-MM-DD against the fixed days-per-month table.
func Date(date string) error {
	if !datePattern.MatchString(date) {
		return &domain.DateFormatError{Date: date}
	}
	parts := strings.Split(date, "-")
	month, _ := strconv.Atoi(parts[1])
	day, _ := strconv.Atoi(parts[2])
	maxDay, ok := daysInMonth[month]
	if !ok || day < 1 || day > maxDay {
		return &domain.DateFormatError{Date: date}
	}
	return nil
}

// Timeslot checks "<day-code> HH:MM-HH:MM" with a fixed day-code set.
func Timeslot(slot string) error {
	if !timeslotPattern.MatchString(slot) {
		return &domain.TimeslotError{Slot: slot}
	}
	return nil
}

// Semester checks membership in {Fall, Winter, Spring, Summer}.
func Semester(semester string) error {
	if !validSemesters[semester] {
		return &domain.FieldValueError{Field: "semester", Value: semester}
	}
	return nil
}

// Status checks membership in the student status set.
func Status(status string) error {
	if !validStatuses[status] {
		return &domain.FieldValueError{Field: "status", Value: status}
	}
	return nil
}

// Grade checks membership in the 12-symbol letter-grade set.
func Grade(grade string) error {
	if _, ok := domain.GradePoints[grade]; !ok {
		return &domain.FieldValueError{Field: "grade", Value: grade}
	}
	return nil
}

// Rank checks membership in the academic rank set.
func Rank(rank string) error {
	if !validRanks[rank] {
		return &domain.FieldValueError{Field: "academic rank", Value: rank}
	}
	return nil
}

// Salary accepts any non-negative number, or a string parsing to one.
func Salary(amount any) error {
	switch v := amount.(type) {
	case float64:
		if v < 0 {
			return &domain.FieldValueError{Field: "salary", Value: v}
		}
	case int:
		if v < 0 {
			return &domain.FieldValueError{Field: "salary", Value: v}
		}
	case string:
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil || parsed < 0 {
			return &domain.FieldValueError{Field: "salary", Value: v}
		}
	default:
		return &domain.FieldValueError{Field: "salary", Value: amount}
	}
	return nil
}

// Credit accepts integers strictly between 0 and 5.
func Credit(credits int) error {
	if credits <= 0 || credits >= 5 {
		return &domain.FieldValueError{Field: "credit", Value: credits}
	}
	return nil
}

// AcademicYear accepts integers strictly between 1701 and 2100.
func AcademicYear(year int) error {
	if year <= 1701 || year >= 2100 {
		return &domain.FieldValueError{Field: "academic_year", Value: year}
	}
	return nil
}

// Capacity accepts strictly positive integers.
func Capacity(capacity int) error {
	if capacity <= 0 {
		return &domain.FieldValueError{Field: "capacity", Value: capacity}
	}
	return nil
}
