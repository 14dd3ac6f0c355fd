package db

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"relieflink/internal/models"
)

// requestColumns is the standard column list for request queries.
const requestColumns = `id, item_name, quantity_needed, unit, description, status, created_at`

// scanRequest scans a row into a Request struct.
func scanRequest(row pgx.Row) (*models.Request, error) {
	var req models.Request
	err := row.Scan(
		&req.ID,
		&req.ItemName,
		&req.QuantityNeeded,
		&req.Unit,
		&req.Description,
		&req.Status,
		&req.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrRequestNotFound
	}
	if err != nil {
		return nil, err
	}
	return &req, nil
}

// CreateRequest inserts a new open request and its audit entry in one
// transaction. The input must already be validated.
func (d *DB) CreateRequest(ctx context.Context, in *models.RequestInput, adminUser string) (*models.Request, error) {
	tx, err := d.Pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	req := &models.Request{
		ItemName:       in.ItemName,
		QuantityNeeded: in.QuantityNeeded,
		Unit:           in.Unit,
		Description:    in.Description,
	}
	err = tx.QueryRow(ctx, `
		INSERT INTO requests (item_name, quantity_needed, unit, description)
		VALUES ($1, $2, $3, $4)
		RETURNING id, status, created_at
	`, in.ItemName, in.QuantityNeeded, in.Unit, in.Description).Scan(&req.ID, &req.Status, &req.CreatedAt)
	if err != nil {
		return nil, err
	}

	details := fmt.Sprintf("%s: %d %s", req.ItemName, req.QuantityNeeded, req.Unit)
	if err := insertActivity(ctx, tx, models.ActionRequestCreated, &req.ID, nil, adminUser, details); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return req, nil
}

// ListRequests returns a page of requests annotated with their response
// counts, newest first (id breaks creation-time ties), plus the total count
// for the filter.
func (d *DB) ListRequests(ctx context.Context, openOnly bool, page, perPage int) ([]models.Request, int, error) {
	where := ""
	if openOnly {
		where = "WHERE r.status = 'open'"
	}

	query := fmt.Sprintf(`
		SELECT r.id, r.item_name, r.quantity_needed, r.unit, r.description, r.status, r.created_at,
		       COUNT(resp.id) AS response_count
		FROM requests r
		LEFT JOIN responses resp ON r.id = resp.request_id
		%s
		GROUP BY r.id
		ORDER BY r.created_at DESC, r.id DESC
		LIMIT $1 OFFSET $2
	`, where)

	rows, err := d.Pool.Query(ctx, query, perPage, (page-1)*perPage)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var requests []models.Request
	for rows.Next() {
		var req models.Request
		if err := rows.Scan(
			&req.ID,
			&req.ItemName,
			&req.QuantityNeeded,
			&req.Unit,
			&req.Description,
			&req.Status,
			&req.CreatedAt,
			&req.ResponseCount,
		); err != nil {
			return nil, 0, err
		}
		requests = append(requests, req)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	countQuery := "SELECT COUNT(*) FROM requests"
	if openOnly {
		countQuery += " WHERE status = 'open'"
	}
	var total int
	if err := d.Pool.QueryRow(ctx, countQuery).Scan(&total); err != nil {
		return nil, 0, err
	}

	return requests, total, nil
}

// GetRequestByID returns a single request regardless of status.
func (d *DB) GetRequestByID(ctx context.Context, id uuid.UUID) (*models.Request, error) {
	query := fmt.Sprintf("SELECT %s FROM requests WHERE id = $1", requestColumns)
	return scanRequest(d.Pool.QueryRow(ctx, query, id))
}

// GetOpenRequestByID returns a single request only if it is open. Closed or
// absent requests are indistinguishable to public callers.
func (d *DB) GetOpenRequestByID(ctx context.Context, id uuid.UUID) (*models.Request, error) {
	query := fmt.Sprintf("SELECT %s FROM requests WHERE id = $1 AND status = 'open'", requestColumns)
	return scanRequest(d.Pool.QueryRow(ctx, query, id))
}

// UpdateRequest applies a validated patch and its audit entry in one
// transaction, returning the updated request. A status change is audited
// with its specific action tag.
func (d *DB) UpdateRequest(ctx context.Context, id uuid.UUID, patch *models.RequestPatch, adminUser string) (*models.Request, error) {
	tx, err := d.Pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	current, err := scanRequest(tx.QueryRow(ctx,
		fmt.Sprintf("SELECT %s FROM requests WHERE id = $1 FOR UPDATE", requestColumns), id))
	if err != nil {
		return nil, err
	}

	setClauses := []string{}
	args := []any{}
	changed := []string{}
	addSet := func(column string, value any) {
		args = append(args, value)
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, len(args)))
		changed = append(changed, column)
	}

	if patch.ItemName != nil {
		addSet("item_name", *patch.ItemName)
	}
	if patch.QuantityNeeded != nil {
		addSet("quantity_needed", *patch.QuantityNeeded)
	}
	if patch.Unit != nil {
		addSet("unit", *patch.Unit)
	}
	if patch.Description != nil {
		addSet("description", *patch.Description)
	}
	if patch.Status != nil {
		addSet("status", *patch.Status)
	}

	args = append(args, id)
	query := fmt.Sprintf("UPDATE requests SET %s WHERE id = $%d RETURNING %s",
		strings.Join(setClauses, ", "), len(args), requestColumns)

	updated, err := scanRequest(tx.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, err
	}

	action := models.ActionRequestUpdated
	if patch.Status != nil && *patch.Status != current.Status {
		if *patch.Status == models.StatusClosed {
			action = models.ActionRequestClosed
		} else {
			action = models.ActionRequestReopened
		}
	}
	details := "changed: " + strings.Join(changed, ", ")
	if err := insertActivity(ctx, tx, action, &id, nil, adminUser, details); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteRequest removes a request; the schema cascades its responses. The
// audit entry is written in the same transaction with a NULL request
// reference and the identifying data in details, because a direct reference
// would be cascaded away with the request row itself.
func (d *DB) DeleteRequest(ctx context.Context, id uuid.UUID, adminUser string) error {
	tx, err := d.Pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var itemName string
	err = tx.QueryRow(ctx, "SELECT item_name FROM requests WHERE id = $1 FOR UPDATE", id).Scan(&itemName)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrRequestNotFound
	}
	if err != nil {
		return err
	}

	details := fmt.Sprintf("request %s (%s)", id, itemName)
	if err := insertActivity(ctx, tx, models.ActionRequestDeleted, nil, nil, adminUser, details); err != nil {
		return err
	}

	if _, err := tx.Exec(ctx, "DELETE FROM requests WHERE id = $1", id); err != nil {
		return err
	}

	return tx.Commit(ctx)
}
