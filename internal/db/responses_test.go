package db

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"relieflink/internal/models"
)

func TestCreateResponse(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	req := createTestRequest(t, db, "Blankets", 50)

	name := "Jane Doe"
	resp, err := db.CreateResponse(ctx, req.ID, &models.ResponseInput{
		ResponderName:     &name,
		QuantityAvailable: 10,
		Location:          "123 Oak St",
	})
	if err != nil {
		t.Fatalf("CreateResponse() error = %v", err)
	}

	if resp.ID == uuid.Nil {
		t.Error("CreateResponse() did not set ID")
	}
	if resp.Accepted {
		t.Error("CreateResponse() accepted = true, want false by default")
	}
	if resp.RequestID != req.ID {
		t.Errorf("CreateResponse() request_id = %s, want %s", resp.RequestID, req.ID)
	}
}

func TestCreateResponse_ClosedRequest(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	req := createTestRequest(t, db, "Blankets", 50)

	closed := models.StatusClosed
	if _, err := db.UpdateRequest(ctx, req.ID, &models.RequestPatch{Status: &closed}, "admin"); err != nil {
		t.Fatalf("UpdateRequest() error = %v", err)
	}

	_, err := db.CreateResponse(ctx, req.ID, &models.ResponseInput{
		QuantityAvailable: 10,
		Location:          "123 Oak St",
	})
	if !errors.Is(err, ErrRequestClosed) {
		t.Errorf("CreateResponse() error = %v, want ErrRequestClosed", err)
	}
}

func TestCreateResponse_RequestNotFound(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	_, err := db.CreateResponse(context.Background(), uuid.New(), &models.ResponseInput{
		QuantityAvailable: 10,
		Location:          "123 Oak St",
	})
	if !errors.Is(err, ErrRequestNotFound) {
		t.Errorf("CreateResponse() error = %v, want ErrRequestNotFound", err)
	}
}

func TestAcceptResponse(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	req := createTestRequest(t, db, "Blankets", 50)

	resp, err := db.CreateResponse(ctx, req.ID, &models.ResponseInput{
		QuantityAvailable: 10,
		Location:          "123 Oak St",
	})
	if err != nil {
		t.Fatalf("CreateResponse() error = %v", err)
	}

	accepted, err := db.AcceptResponse(ctx, resp.ID, "admin")
	if err != nil {
		t.Fatalf("AcceptResponse() error = %v", err)
	}
	if !accepted.Accepted {
		t.Error("AcceptResponse() accepted = false, want true")
	}

	// Accepting never mutates the stored need; remaining is derived on read.
	fetched, err := db.GetRequestByID(ctx, req.ID)
	if err != nil {
		t.Fatalf("GetRequestByID() error = %v", err)
	}
	if fetched.QuantityNeeded != 50 {
		t.Errorf("quantity_needed after accept = %d, want unchanged 50", fetched.QuantityNeeded)
	}

	if got := countActivity(t, db, models.ActionResponseAccepted, &req.ID); got != 1 {
		t.Errorf("activity entries for response_accepted = %d, want 1", got)
	}
}

func TestAcceptResponse_Idempotent(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	req := createTestRequest(t, db, "Blankets", 50)

	resp, err := db.CreateResponse(ctx, req.ID, &models.ResponseInput{
		QuantityAvailable: 10,
		Location:          "123 Oak St",
	})
	if err != nil {
		t.Fatalf("CreateResponse() error = %v", err)
	}

	if _, err := db.AcceptResponse(ctx, resp.ID, "admin"); err != nil {
		t.Fatalf("AcceptResponse() error = %v", err)
	}
	again, err := db.AcceptResponse(ctx, resp.ID, "admin")
	if err != nil {
		t.Fatalf("AcceptResponse() second call error = %v", err)
	}
	if !again.Accepted {
		t.Error("second AcceptResponse() accepted = false, want true")
	}

	if got := countActivity(t, db, models.ActionResponseAccepted, &req.ID); got != 1 {
		t.Errorf("activity entries after double accept = %d, want 1", got)
	}
}

func TestAcceptResponse_NotFound(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	_, err := db.AcceptResponse(context.Background(), uuid.New(), "admin")
	if !errors.Is(err, ErrResponseNotFound) {
		t.Errorf("AcceptResponse() error = %v, want ErrResponseNotFound", err)
	}
}

func TestUnacceptResponse(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	req := createTestRequest(t, db, "Blankets", 50)

	resp, err := db.CreateResponse(ctx, req.ID, &models.ResponseInput{
		QuantityAvailable: 10,
		Location:          "123 Oak St",
	})
	if err != nil {
		t.Fatalf("CreateResponse() error = %v", err)
	}

	if _, err := db.AcceptResponse(ctx, resp.ID, "admin"); err != nil {
		t.Fatalf("AcceptResponse() error = %v", err)
	}
	reverted, err := db.UnacceptResponse(ctx, resp.ID, "admin")
	if err != nil {
		t.Fatalf("UnacceptResponse() error = %v", err)
	}
	if reverted.Accepted {
		t.Error("UnacceptResponse() accepted = true, want false")
	}

	if got := countActivity(t, db, models.ActionResponseUnaccepted, &req.ID); got != 1 {
		t.Errorf("activity entries for response_unaccepted = %d, want 1", got)
	}

	// Unaccepting an already-unaccepted response is a no-op.
	if _, err := db.UnacceptResponse(ctx, resp.ID, "admin"); err != nil {
		t.Fatalf("UnacceptResponse() second call error = %v", err)
	}
	if got := countActivity(t, db, models.ActionResponseUnaccepted, &req.ID); got != 1 {
		t.Errorf("activity entries after double unaccept = %d, want 1", got)
	}
}

func TestGetResponsesByRequestID_NewestFirst(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	req := createTestRequest(t, db, "Blankets", 50)

	first, err := db.CreateResponse(ctx, req.ID, &models.ResponseInput{QuantityAvailable: 5, Location: "1 First St"})
	if err != nil {
		t.Fatalf("CreateResponse() error = %v", err)
	}
	second, err := db.CreateResponse(ctx, req.ID, &models.ResponseInput{QuantityAvailable: 7, Location: "2 Second St"})
	if err != nil {
		t.Fatalf("CreateResponse() error = %v", err)
	}
	// Force distinct timestamps; both inserts can land in the same microsecond.
	if _, err := db.Pool.Exec(ctx,
		"UPDATE responses SET created_at = created_at + interval '1 second' WHERE id = $1", second.ID); err != nil {
		t.Fatalf("failed to adjust created_at: %v", err)
	}

	responses, err := db.GetResponsesByRequestID(ctx, req.ID)
	if err != nil {
		t.Fatalf("GetResponsesByRequestID() error = %v", err)
	}
	if len(responses) != 2 {
		t.Fatalf("responses length = %d, want 2", len(responses))
	}
	if responses[0].ID != second.ID || responses[1].ID != first.ID {
		t.Errorf("order = [%s, %s], want newest first [%s, %s]",
			responses[0].ID, responses[1].ID, second.ID, first.ID)
	}
}

// TestBlanketsScenario walks the full lifecycle: create a request, take a
// public offer, accept it, and derive the remaining need on read.
func TestBlanketsScenario(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()

	req, err := db.CreateRequest(ctx, &models.RequestInput{
		ItemName:       "Blankets",
		QuantityNeeded: 50,
		Unit:           "pieces",
	}, "admin")
	if err != nil {
		t.Fatalf("CreateRequest() error = %v", err)
	}

	resp, err := db.CreateResponse(ctx, req.ID, &models.ResponseInput{
		QuantityAvailable: 10,
		Location:          "123 Oak St",
	})
	if err != nil {
		t.Fatalf("CreateResponse() error = %v", err)
	}

	if _, err := db.AcceptResponse(ctx, resp.ID, "admin"); err != nil {
		t.Fatalf("AcceptResponse() error = %v", err)
	}

	fetched, err := db.GetRequestByID(ctx, req.ID)
	if err != nil {
		t.Fatalf("GetRequestByID() error = %v", err)
	}
	responses, err := db.GetResponsesByRequestID(ctx, req.ID)
	if err != nil {
		t.Fatalf("GetResponsesByRequestID() error = %v", err)
	}

	if len(responses) != 1 {
		t.Fatalf("responses length = %d, want 1", len(responses))
	}
	if !responses[0].Accepted {
		t.Error("response accepted = false, want true")
	}
	if remaining := fetched.RemainingNeed(responses); remaining != 40 {
		t.Errorf("remaining need = %d, want 40", remaining)
	}
}
