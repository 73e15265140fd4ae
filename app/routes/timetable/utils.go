package timetable

import (
	"database/sql"
	"strings"
)

// ValidateTimeFormat validates time format (HH:MM)
func ValidateTimeFormat(timeStr string) bool {
	parts := strings.Split(timeStr, ":")
	return len(parts) == 2 && len(parts[0]) == 2 && len(parts[1]) == 2
}

// ValidateDayOfWeek validates day of week
func ValidateDayOfWeek(day string) bool {
	validDays := []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}
	day = NormalizeDay(day)
	for _, validDay := range validDays {
		if day == validDay {
			return true
		}
	}
	return false
}

// NormalizeDay lowercases a day name. Entries are stored lowercase, so every
// lookup has to use the same casing.
func NormalizeDay(day string) string {
	return strings.ToLower(day)
}

// CheckTimeConflict checks if there's a time conflict for a lecturer or room
// within a semester
func CheckTimeConflict(db *sql.DB, lecturerID, room, semesterID, dayOfWeek, startTime, endTime string, excludeID string) (bool, error) {
	query := `SELECT COUNT(*) FROM timetable_entries
			  WHERE (lecturer_id = $1 OR room = $2)
			  AND semester_id = $3
			  AND day_of_week = $4
			  AND is_active = true
			  AND (
				  (start_time <= $5 AND end_time > $5) OR
				  (start_time < $6 AND end_time >= $6) OR
				  (start_time >= $5 AND end_time <= $6)
			  )`

	args := []interface{}{lecturerID, room, semesterID, NormalizeDay(dayOfWeek), startTime, endTime}

	if excludeID != "" {
		query += " AND id != $7"
		args = append(args, excludeID)
	}

	var count int
	err := db.QueryRow(query, args...).Scan(&count)
	if err != nil {
		return false, err
	}

	return count > 0, nil
}
