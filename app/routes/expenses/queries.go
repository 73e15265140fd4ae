package expenses

import (
	"database/sql"

	"github.com/AlphilWeb/AlphilSMS-sub003/app/models"
)

// Expense Queries
func GetAllExpenses(db *sql.DB, categoryID string) ([]*models.Expense, error) {
	query := `SELECT e.id, e.category_id, e.title, e.amount, e.currency, e.date,
			  e.period_start, e.period_end, e.notes, e.created_at, e.updated_at,
			  c.id, c.name
			  FROM expenses e
			  LEFT JOIN categories c ON e.category_id = c.id
			  WHERE e.deleted_at IS NULL`

	var args []interface{}
	if categoryID != "" {
		query += " AND e.category_id = $1"
		args = append(args, categoryID)
	}
	query += " ORDER BY e.date DESC"

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	expenses := []*models.Expense{} // Initialize to empty slice for non-null JSON
	for rows.Next() {
		e := &models.Expense{}
		var catID, catName sql.NullString
		err := rows.Scan(
			&e.ID, &e.CategoryID, &e.Title, &e.Amount, &e.Currency, &e.Date,
			&e.PeriodStart, &e.PeriodEnd, &e.Notes, &e.CreatedAt, &e.UpdatedAt,
			&catID, &catName,
		)
		if err != nil {
			return nil, err
		}

		if catID.Valid {
			e.Category = &models.Category{
				ID:   catID.String,
				Name: catName.String,
			}
		}
		expenses = append(expenses, e)
	}
	return expenses, nil
}

func CreateExpense(db *sql.DB, e *models.Expense) error {
	query := `INSERT INTO expenses (category_id, title, amount, currency, date, period_start, period_end, notes)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			  RETURNING id, created_at, updated_at`

	return db.QueryRow(query,
		e.CategoryID, e.Title, e.Amount, e.Currency, e.Date, e.PeriodStart, e.PeriodEnd, e.Notes,
	).Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt)
}

func DeleteExpense(db *sql.DB, id string) error {
	result, err := db.Exec(
		`UPDATE expenses SET deleted_at = NOW(), updated_at = NOW() WHERE id = $1 AND deleted_at IS NULL`, id)
	if err != nil {
		return err
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Category Queries
func GetAllCategories(db *sql.DB) ([]*models.Category, error) {
	query := `SELECT id, name, is_active, created_at, updated_at
			  FROM categories
			  WHERE deleted_at IS NULL
			  ORDER BY name`

	rows, err := db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := []*models.Category{}
	for rows.Next() {
		cat := &models.Category{}
		err := rows.Scan(&cat.ID, &cat.Name, &cat.IsActive, &cat.CreatedAt, &cat.UpdatedAt)
		if err != nil {
			return nil, err
		}
		categories = append(categories, cat)
	}
	return categories, nil
}

func CreateCategory(db *sql.DB, cat *models.Category) error {
	query := `INSERT INTO categories (name, is_active)
			  VALUES ($1, true)
			  RETURNING id, created_at, updated_at`

	return db.QueryRow(query, cat.Name).Scan(&cat.ID, &cat.CreatedAt, &cat.UpdatedAt)
}
