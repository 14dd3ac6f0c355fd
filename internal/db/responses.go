package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"relieflink/internal/models"
)

// responseColumns is the standard column list for response queries.
const responseColumns = `id, request_id, responder_name, responder_contact,
	quantity_available, location, notes, accepted, created_at`

// scanResponse scans a row into a Response struct.
func scanResponse(row pgx.Row) (*models.Response, error) {
	var resp models.Response
	err := row.Scan(
		&resp.ID,
		&resp.RequestID,
		&resp.ResponderName,
		&resp.ResponderContact,
		&resp.QuantityAvailable,
		&resp.Location,
		&resp.Notes,
		&resp.Accepted,
		&resp.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrResponseNotFound
	}
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// CreateResponse records a public offer against an open request. The request
// row is locked and its status re-checked inside the transaction, so a
// closure committed mid-flight yields ErrRequestClosed rather than an
// orphaned response. No audit entry: this is a public capability.
func (d *DB) CreateResponse(ctx context.Context, requestID uuid.UUID, in *models.ResponseInput) (*models.Response, error) {
	tx, err := d.Pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	var status string
	err = tx.QueryRow(ctx, "SELECT status FROM requests WHERE id = $1 FOR UPDATE", requestID).Scan(&status)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrRequestNotFound
	}
	if err != nil {
		return nil, err
	}
	if status != models.StatusOpen {
		return nil, ErrRequestClosed
	}

	resp := &models.Response{
		RequestID:         requestID,
		ResponderName:     in.ResponderName,
		ResponderContact:  in.ResponderContact,
		QuantityAvailable: in.QuantityAvailable,
		Location:          in.Location,
		Notes:             in.Notes,
	}
	err = tx.QueryRow(ctx, `
		INSERT INTO responses (request_id, responder_name, responder_contact, quantity_available, location, notes)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, accepted, created_at
	`, requestID, in.ResponderName, in.ResponderContact, in.QuantityAvailable, in.Location, in.Notes).
		Scan(&resp.ID, &resp.Accepted, &resp.CreatedAt)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return resp, nil
}

// GetResponsesByRequestID returns all responses for a request, newest first.
func (d *DB) GetResponsesByRequestID(ctx context.Context, requestID uuid.UUID) ([]models.Response, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM responses
		WHERE request_id = $1
		ORDER BY created_at DESC, id DESC
	`, responseColumns)

	rows, err := d.Pool.Query(ctx, query, requestID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var responses []models.Response
	for rows.Next() {
		var resp models.Response
		if err := rows.Scan(
			&resp.ID,
			&resp.RequestID,
			&resp.ResponderName,
			&resp.ResponderContact,
			&resp.QuantityAvailable,
			&resp.Location,
			&resp.Notes,
			&resp.Accepted,
			&resp.CreatedAt,
		); err != nil {
			return nil, err
		}
		responses = append(responses, resp)
	}
	return responses, rows.Err()
}

// AcceptResponse marks a response accepted and audits the transition in one
// transaction. Accepting an already-accepted response is a no-op success:
// the state stays accepted and no second audit entry is written. The parent
// request is never closed or mutated here; remaining need is derived at read
// time.
func (d *DB) AcceptResponse(ctx context.Context, id uuid.UUID, adminUser string) (*models.Response, error) {
	return d.setAccepted(ctx, id, adminUser, true)
}

// UnacceptResponse reverts an accepted response, symmetric to AcceptResponse.
func (d *DB) UnacceptResponse(ctx context.Context, id uuid.UUID, adminUser string) (*models.Response, error) {
	return d.setAccepted(ctx, id, adminUser, false)
}

func (d *DB) setAccepted(ctx context.Context, id uuid.UUID, adminUser string, accepted bool) (*models.Response, error) {
	tx, err := d.Pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	resp, err := scanResponse(tx.QueryRow(ctx,
		fmt.Sprintf("SELECT %s FROM responses WHERE id = $1 FOR UPDATE", responseColumns), id))
	if err != nil {
		return nil, err
	}

	if resp.Accepted == accepted {
		// Idempotent: already in the target state, nothing to audit.
		return resp, tx.Commit(ctx)
	}

	_, err = tx.Exec(ctx, "UPDATE responses SET accepted = $1 WHERE id = $2", accepted, id)
	if err != nil {
		return nil, err
	}
	resp.Accepted = accepted

	action := models.ActionResponseAccepted
	if !accepted {
		action = models.ActionResponseUnaccepted
	}
	details := fmt.Sprintf("quantity_available=%d location=%s", resp.QuantityAvailable, resp.Location)
	if err := insertActivity(ctx, tx, action, &resp.RequestID, &resp.ID, adminUser, details); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return resp, nil
}
