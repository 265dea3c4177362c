package database

import (
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

type Migration struct {
	ID          string
	Description string
	Statements  []string
	AppliedAt   *time.Time
}

// migrations is the embedded, ordered schema history. One DDL statement per
// entry keeps the runner driver-agnostic about multi-statement scripts.
var migrations = []Migration{
	{
		ID:          "001_core_schema",
		Description: "department, people, catalog, section, enrollment and advising tables",
		Statements: []string{
			`CREATE TABLE IF NOT EXISTS department (
				dept_name TEXT PRIMARY KEY,
				phone TEXT NOT NULL DEFAULT '',
				budget REAL NOT NULL DEFAULT 0 CHECK (budget >= 0),
				building TEXT NOT NULL DEFAULT '',
				dean_name TEXT NOT NULL DEFAULT ''
			)`,
			`CREATE TABLE IF NOT EXISTS student (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				fname TEXT NOT NULL,
				lname TEXT NOT NULL,
				dept_name TEXT NOT NULL REFERENCES department(dept_name) ON DELETE RESTRICT,
				email TEXT NOT NULL,
				tot_cred INTEGER NOT NULL DEFAULT 0 CHECK (tot_cred >= 0),
				major TEXT,
				enrollment_date TEXT,
				status TEXT NOT NULL DEFAULT 'Active'
			)`,
			`CREATE TABLE IF NOT EXISTS instructor (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				fname TEXT NOT NULL,
				lname TEXT NOT NULL,
				dept_name TEXT NOT NULL REFERENCES department(dept_name) ON DELETE RESTRICT,
				email TEXT NOT NULL,
				academic_rank TEXT NOT NULL,
				salary REAL NOT NULL DEFAULT 0 CHECK (salary >= 0),
				office_number TEXT,
				hire_date TEXT
			)`,
			`CREATE TABLE IF NOT EXISTS course (
				course_id TEXT PRIMARY KEY,
				title TEXT NOT NULL,
				credits INTEGER NOT NULL CHECK (credits > 0 AND credits < 5),
				dept_name TEXT NOT NULL REFERENCES department(dept_name) ON DELETE RESTRICT,
				description TEXT
			)`,
			`CREATE TABLE IF NOT EXISTS prereq (
				course_id TEXT NOT NULL REFERENCES course(course_id) ON DELETE RESTRICT,
				prereq_id TEXT NOT NULL REFERENCES course(course_id) ON DELETE RESTRICT,
				PRIMARY KEY (course_id, prereq_id)
			)`,
			`CREATE TABLE IF NOT EXISTS section (
				course_id TEXT NOT NULL REFERENCES course(course_id) ON DELETE RESTRICT,
				sec_id TEXT NOT NULL,
				semester TEXT NOT NULL,
				academic_year INTEGER NOT NULL,
				time_slot TEXT NOT NULL DEFAULT '',
				room TEXT NOT NULL DEFAULT '',
				capacity INTEGER NOT NULL CHECK (capacity > 0),
				enrolled INTEGER NOT NULL DEFAULT 0 CHECK (enrolled >= 0),
				PRIMARY KEY (course_id, sec_id, semester, academic_year)
			)`,
			`CREATE TABLE IF NOT EXISTS teaches (
				instructor_id INTEGER NOT NULL REFERENCES instructor(id) ON DELETE RESTRICT,
				course_id TEXT NOT NULL,
				sec_id TEXT NOT NULL,
				semester TEXT NOT NULL,
				academic_year INTEGER NOT NULL,
				PRIMARY KEY (instructor_id, course_id, sec_id, semester, academic_year),
				FOREIGN KEY (course_id, sec_id, semester, academic_year)
					REFERENCES section(course_id, sec_id, semester, academic_year) ON DELETE RESTRICT
			)`,
			`CREATE TABLE IF NOT EXISTS takes (
				student_id INTEGER NOT NULL REFERENCES student(id) ON DELETE RESTRICT,
				course_id TEXT NOT NULL,
				sec_id TEXT NOT NULL,
				semester TEXT NOT NULL,
				academic_year INTEGER NOT NULL,
				cancelled INTEGER NOT NULL DEFAULT 0,
				enrollment_date TEXT DEFAULT (date('now')),
				grade TEXT,
				PRIMARY KEY (student_id, course_id, sec_id, semester, academic_year),
				FOREIGN KEY (course_id, sec_id, semester, academic_year)
					REFERENCES section(course_id, sec_id, semester, academic_year) ON DELETE RESTRICT
			)`,
			`CREATE TABLE IF NOT EXISTS advisor (
				student_id INTEGER PRIMARY KEY REFERENCES student(id) ON DELETE RESTRICT,
				instructor_id INTEGER NOT NULL REFERENCES instructor(id) ON DELETE RESTRICT,
				start_date TEXT,
				end_date TEXT
			)`,
		},
	},
}

type MigrationRunner struct {
	db *sqlx.DB
}

func NewMigrationRunner(db *sqlx.DB) *MigrationRunner {
	return &MigrationRunner{db: db}
}

func (mr *MigrationRunner) createMigrationsTable() error {
	ddl := `
	CREATE TABLE IF NOT EXISTS schema_migrations (
		id TEXT PRIMARY KEY,
		description TEXT NOT NULL,
		applied_at TEXT NOT NULL DEFAULT (datetime('now'))
	)`

	_, err := mr.db.Exec(ddl)
	return err
}

func (mr *MigrationRunner) getAppliedMigrations() (map[string]bool, error) {
	var ids []string
	if err := mr.db.Select(&ids, "SELECT id FROM schema_migrations ORDER BY id"); err != nil {
		return nil, err
	}

	applied := make(map[string]bool)
	for _, id := range ids {
		applied[id] = true
	}

	return applied, nil
}

// RunMigrations applies every pending migration in order, each inside its
// own transaction. Re-running is a no-op for applied migrations.
func (mr *MigrationRunner) RunMigrations() error {
	if err := mr.createMigrationsTable(); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	applied, err := mr.getAppliedMigrations()
	if err != nil {
		return fmt.Errorf("failed to read applied migrations: %w", err)
	}

	for _, migration := range migrations {
		if applied[migration.ID] {
			continue
		}

		tx, err := mr.db.Beginx()
		if err != nil {
			return fmt.Errorf("failed to begin migration %s: %w", migration.ID, err)
		}

		for _, stmt := range migration.Statements {
			if _, err := tx.Exec(stmt); err != nil {
				tx.Rollback()
				return fmt.Errorf("migration %s failed: %w", migration.ID, err)
			}
		}

		if _, err := tx.Exec(
			"INSERT INTO schema_migrations (id, description) VALUES (?, ?)",
			migration.ID, migration.Description,
		); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to record migration %s: %w", migration.ID, err)
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit migration %s: %w", migration.ID, err)
		}
	}

	return nil
}

// GetMigrationStatus returns every known migration with its applied
// timestamp, nil when pending.
func (mr *MigrationRunner) GetMigrationStatus() ([]Migration, error) {
	if err := mr.createMigrationsTable(); err != nil {
		return nil, err
	}

	type row struct {
		ID        string `db:"id"`
		AppliedAt string `db:"applied_at"`
	}
	var rows []row
	if err := mr.db.Select(&rows, "SELECT id, applied_at FROM schema_migrations"); err != nil {
		return nil, err
	}

	appliedAt := make(map[string]string, len(rows))
	for _, r := range rows {
		appliedAt[r.ID] = r.AppliedAt
	}

	status := make([]Migration, 0, len(migrations))
	for _, migration := range migrations {
		m := migration
		if ts, ok := appliedAt[m.ID]; ok {
			if parsed, err := time.Parse("2006-01-02 15:04:05", ts); err == nil {
				m.AppliedAt = &parsed
			}
		}
		status = append(status, m)
	}

	return status, nil
}
