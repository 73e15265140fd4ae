package database

import (
	"database/sql"

	"github.com/AlphilWeb/AlphilSMS-sub003/app/models"
)

// InsertAuditLog records an audit entry. Callers treat the write as best
// effort and never run it inside the transaction it describes.
func InsertAuditLog(db *sql.DB, entry *models.AuditLog) error {
	query := `INSERT INTO audit_logs (user_id, action, target_table, target_id, description)
			  VALUES ($1, $2, $3, $4, $5)
			  RETURNING id, created_at`

	return db.QueryRow(query,
		entry.UserID, entry.Action, entry.TargetTable, entry.TargetID, entry.Description,
	).Scan(&entry.ID, &entry.CreatedAt)
}

// GetRecentAuditLogs returns the newest audit entries with actor names joined
// in where the actor still exists.
func GetRecentAuditLogs(db *sql.DB, limit int) ([]*models.AuditLog, error) {
	if limit <= 0 {
		limit = 20
	}
	query := `SELECT a.id, a.user_id, a.action, a.target_table, a.target_id, a.description, a.created_at,
			  COALESCE(u.first_name || ' ' || u.last_name, 'System')
			  FROM audit_logs a
			  LEFT JOIN users u ON a.user_id = u.id
			  ORDER BY a.created_at DESC
			  LIMIT $1`

	rows, err := db.Query(query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*models.AuditLog
	for rows.Next() {
		e := &models.AuditLog{}
		err := rows.Scan(
			&e.ID, &e.UserID, &e.Action, &e.TargetTable, &e.TargetID, &e.Description,
			&e.CreatedAt, &e.ActorName,
		)
		if err != nil {
			continue
		}
		entries = append(entries, e)
	}
	return entries, nil
}
