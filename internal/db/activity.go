package db

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"relieflink/internal/models"
)

// insertActivity appends one immutable activity entry inside the caller's
// transaction. Every administrative mutation commits its data change and its
// audit entry together or not at all.
func insertActivity(ctx context.Context, tx pgx.Tx, action string, requestID, responseID *uuid.UUID, adminUser, details string) error {
	_, err := tx.Exec(ctx, `
		INSERT INTO activity_log (action, request_id, response_id, admin_user, details)
		VALUES ($1, $2, $3, $4, $5)
	`, action, requestID, responseID, adminUser, details)
	return err
}

// GetActivityByRequestID returns the audit trail for a request, newest
// first. Entries are read-only; the application never updates or deletes
// them.
func (d *DB) GetActivityByRequestID(ctx context.Context, requestID uuid.UUID) ([]models.ActivityEntry, error) {
	rows, err := d.Pool.Query(ctx, `
		SELECT id, action, request_id, response_id, admin_user, details, created_at
		FROM activity_log
		WHERE request_id = $1
		ORDER BY created_at DESC, id DESC
	`, requestID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []models.ActivityEntry
	for rows.Next() {
		var entry models.ActivityEntry
		if err := rows.Scan(
			&entry.ID,
			&entry.Action,
			&entry.RequestID,
			&entry.ResponseID,
			&entry.AdminUser,
			&entry.Details,
			&entry.CreatedAt,
		); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}
