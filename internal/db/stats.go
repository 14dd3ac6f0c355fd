package db

import (
	"context"
	"fmt"

	"relieflink/internal/models"
)

// CountRequestsByStatus returns request counts grouped by status.
func (d *DB) CountRequestsByStatus(ctx context.Context) ([]models.StatusCount, error) {
	rows, err := d.Pool.Query(ctx, `
		SELECT status, COUNT(*) FROM requests GROUP BY status
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to count requests by status: %w", err)
	}
	defer rows.Close()

	var counts []models.StatusCount
	for rows.Next() {
		var c models.StatusCount
		if err := rows.Scan(&c.Status, &c.Count); err != nil {
			return nil, fmt.Errorf("failed to scan status count: %w", err)
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}

// CountResponsesByAcceptance returns response counts grouped by acceptance.
func (d *DB) CountResponsesByAcceptance(ctx context.Context) ([]models.AcceptanceCount, error) {
	rows, err := d.Pool.Query(ctx, `
		SELECT accepted, COUNT(*) FROM responses GROUP BY accepted
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to count responses by acceptance: %w", err)
	}
	defer rows.Close()

	var counts []models.AcceptanceCount
	for rows.Next() {
		var c models.AcceptanceCount
		if err := rows.Scan(&c.Accepted, &c.Count); err != nil {
			return nil, fmt.Errorf("failed to scan acceptance count: %w", err)
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}

// CountActivityByAction returns audit entry counts grouped by action tag.
func (d *DB) CountActivityByAction(ctx context.Context) ([]models.ActionCount, error) {
	rows, err := d.Pool.Query(ctx, `
		SELECT action, COUNT(*) FROM activity_log GROUP BY action
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to count activity by action: %w", err)
	}
	defer rows.Close()

	var counts []models.ActionCount
	for rows.Next() {
		var c models.ActionCount
		if err := rows.Scan(&c.Action, &c.Count); err != nil {
			return nil, fmt.Errorf("failed to scan action count: %w", err)
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}
