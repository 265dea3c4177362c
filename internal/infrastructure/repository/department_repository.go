package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	domain "university-registrar/internal/domain/records"
)

// DepartmentRepository implements domain.DepartmentRepository over
// parameterized SQL.
type DepartmentRepository struct {
	db *sqlx.DB
}

func NewDepartmentRepository(db *sqlx.DB) domain.DepartmentRepository {
	return &DepartmentRepository{db: db}
}

func (r *DepartmentRepository) Create(ctx context.Context, dept *domain.Department) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO department (dept_name, phone, budget, building, dean_name) VALUES (?, ?, ?, ?, ?)",
		dept.DeptName, dept.Phone, dept.Budget, dept.Building, dept.DeanName,
	)
	return domain.WrapDB(err)
}

func (r *DepartmentRepository) Update(ctx context.Context, deptName string, fields map[string]any) error {
	clause, args := setClause(fields)
	query := fmt.Sprintf("UPDATE department SET %s WHERE dept_name = ?", clause)
	args = append(args, deptName)
	_, err := r.db.ExecContext(ctx, query, args...)
	return domain.WrapDB(err)
}

func (r *DepartmentRepository) Delete(ctx context.Context, deptName string) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM department WHERE dept_name = ?", deptName)
	return domain.WrapDB(err)
}

func (r *DepartmentRepository) GetByName(ctx context.Context, deptName string) (*domain.Department, error) {
	var dept domain.Department
	err := r.db.GetContext(ctx, &dept, "SELECT * FROM department WHERE dept_name = ?", deptName)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, domain.WrapDB(err)
	}
	return &dept, nil
}

func (r *DepartmentRepository) List(ctx context.Context) ([]*domain.Department, error) {
	var depts []*domain.Department
	if err := r.db.SelectContext(ctx, &depts, "SELECT * FROM department ORDER BY dept_name"); err != nil {
		return nil, domain.WrapDB(err)
	}
	return depts, nil
}

func (r *DepartmentRepository) Exists(ctx context.Context, deptName string) (bool, error) {
	var count int
	err := r.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM department WHERE dept_name = ?", deptName)
	if err != nil {
		return false, domain.WrapDB(err)
	}
	return count > 0, nil
}
