package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/AlphilWeb/AlphilSMS-sub003/app/models"
)

// GetStaffBaseSalary returns the latest base salary configuration for a staff
// member.
func GetStaffBaseSalary(db *sql.DB, staffID string) (*models.StaffBaseSalary, error) {
	query := `SELECT id, staff_id, amount, period, effective_date, created_at, updated_at
			  FROM staff_base_salaries
			  WHERE staff_id = $1 AND deleted_at IS NULL
			  ORDER BY created_at DESC
			  LIMIT 1`

	var salary models.StaffBaseSalary
	err := db.QueryRow(query, staffID).Scan(
		&salary.ID, &salary.StaffID, &salary.Amount, &salary.Period,
		&salary.EffectiveDate, &salary.CreatedAt, &salary.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &salary, nil
}

// SetStaffBaseSalary records a new base salary configuration, superseding the
// previous one.
func SetStaffBaseSalary(db *sql.DB, salary *models.StaffBaseSalary) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`UPDATE staff_base_salaries SET deleted_at = NOW() WHERE staff_id = $1 AND deleted_at IS NULL`,
		salary.StaffID)
	if err != nil {
		return err
	}

	err = tx.QueryRow(
		`INSERT INTO staff_base_salaries (staff_id, amount, period, effective_date)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at, updated_at`,
		salary.StaffID, salary.Amount, string(salary.Period), salary.EffectiveDate,
	).Scan(&salary.ID, &salary.CreatedAt, &salary.UpdatedAt)
	if err != nil {
		return err
	}
	return tx.Commit()
}

// GetStaffAllowance returns the active allowance for a staff member, or nil
// when none is configured.
func GetStaffAllowance(db *sql.DB, staffID string) (*models.StaffAllowance, error) {
	query := `SELECT id, staff_id, amount, period, is_active, effective_date, created_at, updated_at
			  FROM staff_allowances
			  WHERE staff_id = $1 AND is_active = true AND deleted_at IS NULL
			  ORDER BY created_at DESC
			  LIMIT 1`

	var allowance models.StaffAllowance
	err := db.QueryRow(query, staffID).Scan(
		&allowance.ID, &allowance.StaffID, &allowance.Amount, &allowance.Period,
		&allowance.IsActive, &allowance.EffectiveDate, &allowance.CreatedAt, &allowance.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &allowance, nil
}

// SetStaffAllowance records a new allowance configuration, superseding the
// previous one.
func SetStaffAllowance(db *sql.DB, allowance *models.StaffAllowance) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`UPDATE staff_allowances SET deleted_at = NOW() WHERE staff_id = $1 AND deleted_at IS NULL`,
		allowance.StaffID)
	if err != nil {
		return err
	}

	err = tx.QueryRow(
		`INSERT INTO staff_allowances (staff_id, amount, period, is_active, effective_date)
		 VALUES ($1, $2, $3, true, $4)
		 RETURNING id, created_at, updated_at`,
		allowance.StaffID, allowance.Amount, string(allowance.Period), allowance.EffectiveDate,
	).Scan(&allowance.ID, &allowance.CreatedAt, &allowance.UpdatedAt)
	if err != nil {
		return err
	}
	allowance.IsActive = true
	return tx.Commit()
}

// CreateStaffPayout records a payout and books the matching Salaries expense
// in one transaction.
func CreateStaffPayout(db *sql.DB, payout *models.StaffPayout, staffName string) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	queryPayout := `INSERT INTO staff_payouts (staff_id, amount, type, period_start, period_end, reference, notes, paid_at)
					VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
					RETURNING id, paid_at`
	err = tx.QueryRow(queryPayout,
		payout.StaffID, payout.Amount, string(payout.Type),
		payout.PeriodStart, payout.PeriodEnd, payout.Reference, payout.Notes,
	).Scan(&payout.ID, &payout.PaidAt)
	if err != nil {
		return fmt.Errorf("failed to insert payout: %v", err)
	}

	var categoryID string
	err = tx.QueryRow(`SELECT id FROM categories WHERE name = 'Salaries' AND deleted_at IS NULL`).Scan(&categoryID)
	if err == sql.ErrNoRows {
		err = tx.QueryRow(`INSERT INTO categories (name, is_active) VALUES ('Salaries', true) RETURNING id`).Scan(&categoryID)
		if err != nil {
			return fmt.Errorf("failed to create category: %v", err)
		}
	} else if err != nil {
		return fmt.Errorf("failed to find category: %v", err)
	}

	title := fmt.Sprintf("Salary Payout: %s", staffName)
	switch payout.Type {
	case models.PayoutAllowance:
		title = fmt.Sprintf("Allowance Payout: %s", staffName)
	case models.PayoutCombined:
		title = fmt.Sprintf("Full Salary Payout: %s", staffName)
	}

	notes := fmt.Sprintf("System generated expense for payroll disbursement. Period: %s to %s",
		payout.PeriodStart.Format("2006-01-02"), payout.PeriodEnd.Format("2006-01-02"))

	queryExpense := `INSERT INTO expenses (category_id, title, amount, currency, date, period_start, period_end, notes)
					 VALUES ($1, $2, $3, 'UGX', NOW(), $4, $5, $6)`
	_, err = tx.Exec(queryExpense, categoryID, title, payout.Amount,
		payout.PeriodStart, payout.PeriodEnd, notes)
	if err != nil {
		return fmt.Errorf("failed to create expense: %v", err)
	}

	return tx.Commit()
}

// GetStaffPayouts retrieves all payouts for a staff member, newest first.
func GetStaffPayouts(db *sql.DB, staffID string) ([]*models.StaffPayout, error) {
	query := `SELECT id, staff_id, amount, type, period_start, period_end, paid_at, reference, notes
			  FROM staff_payouts
			  WHERE staff_id = $1
			  ORDER BY paid_at DESC`

	rows, err := db.Query(query, staffID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payouts []*models.StaffPayout
	for rows.Next() {
		p := &models.StaffPayout{}
		var pType string
		err := rows.Scan(
			&p.ID, &p.StaffID, &p.Amount, &pType,
			&p.PeriodStart, &p.PeriodEnd, &p.PaidAt,
			&p.Reference, &p.Notes,
		)
		if err != nil {
			continue
		}
		p.Type = models.PayoutType(pType)
		payouts = append(payouts, p)
	}
	return payouts, nil
}

// PayoutExists reports whether a payout already covers the given period for
// the staff member.
func PayoutExists(db *sql.DB, staffID string, periodStart, periodEnd time.Time) (bool, error) {
	var count int
	err := db.QueryRow(
		`SELECT COUNT(*) FROM staff_payouts
		 WHERE staff_id = $1 AND period_start >= $2 AND period_end <= $3`,
		staffID, periodStart, periodEnd).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// GetAllStaff returns active staff profiles with their user details.
func GetAllStaff(db *sql.DB) ([]*models.Staff, error) {
	query := `SELECT st.id, st.user_id, st.staff_no, st.position, st.department_id, st.hire_date,
			  st.is_active, st.created_at, st.updated_at,
			  u.email, u.first_name, u.last_name, u.phone
			  FROM staff st
			  JOIN users u ON st.user_id = u.id
			  WHERE st.is_active = true AND st.deleted_at IS NULL
			  ORDER BY u.last_name, u.first_name`

	rows, err := db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []*models.Staff
	for rows.Next() {
		st := &models.Staff{User: &models.User{}}
		err := rows.Scan(
			&st.ID, &st.UserID, &st.StaffNo, &st.Position, &st.DepartmentID, &st.HireDate,
			&st.IsActive, &st.CreatedAt, &st.UpdatedAt,
			&st.User.Email, &st.User.FirstName, &st.User.LastName, &st.User.Phone,
		)
		if err != nil {
			continue
		}
		st.User.ID = st.UserID
		members = append(members, st)
	}
	return members, nil
}

// GetStaffByID returns one staff profile with user details.
func GetStaffByID(db *sql.DB, staffID string) (*models.Staff, error) {
	st := &models.Staff{User: &models.User{}}
	query := `SELECT st.id, st.user_id, st.staff_no, st.position, st.department_id, st.hire_date,
			  st.is_active, st.created_at, st.updated_at,
			  u.email, u.first_name, u.last_name, u.phone
			  FROM staff st
			  JOIN users u ON st.user_id = u.id
			  WHERE st.id = $1 AND st.deleted_at IS NULL`

	err := db.QueryRow(query, staffID).Scan(
		&st.ID, &st.UserID, &st.StaffNo, &st.Position, &st.DepartmentID, &st.HireDate,
		&st.IsActive, &st.CreatedAt, &st.UpdatedAt,
		&st.User.Email, &st.User.FirstName, &st.User.LastName, &st.User.Phone,
	)
	if err != nil {
		return nil, err
	}
	st.User.ID = st.UserID
	return st, nil
}

// CreateStaff creates the user account and the staff profile together.
func CreateStaff(db *sql.DB, user *models.User, staff *models.Staff, roleName string) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	err = tx.QueryRow(
		`INSERT INTO users (email, password, first_name, last_name, phone)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at, updated_at`,
		user.Email, user.Password, user.FirstName, user.LastName, user.Phone,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return err
	}

	err = tx.QueryRow(
		`INSERT INTO staff (user_id, staff_no, position, department_id, hire_date)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at, updated_at`,
		user.ID, staff.StaffNo, staff.Position, staff.DepartmentID, staff.HireDate,
	).Scan(&staff.ID, &staff.CreatedAt, &staff.UpdatedAt)
	if err != nil {
		return err
	}
	staff.UserID = user.ID

	var roleID string
	err = tx.QueryRow(`SELECT id FROM roles WHERE name = $1 AND deleted_at IS NULL`, roleName).Scan(&roleID)
	if err == sql.ErrNoRows {
		err = tx.QueryRow(`INSERT INTO roles (name, is_active) VALUES ($1, true) RETURNING id`, roleName).Scan(&roleID)
	}
	if err != nil {
		return err
	}
	if _, err := tx.Exec(`INSERT INTO user_roles (user_id, role_id) VALUES ($1, $2)`, user.ID, roleID); err != nil {
		return err
	}

	return tx.Commit()
}
