package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/ykovtun/avtosos/internal/pkg/apperrors"
	"github.com/ykovtun/avtosos/internal/pkg/models"
)

// RequestRepo implements repair request persistence over postgres
type RequestRepo struct {
	db *sqlx.DB
}

// NewRequestRepository creates a new request repository
func NewRequestRepository(db *sqlx.DB) *RequestRepo {
	return &RequestRepo{db: db}
}

const requestColumns = `
	id, client_id, category_id, car_id, car_model, description,
	(location[0])::float8 AS longitude,
	(location[1])::float8 AS latitude,
	address, is_sos, status, created_at
`

// CreateRequest inserts a new repair request in status "new"
func (r *RequestRepo) CreateRequest(ctx context.Context, request *models.Request) (*models.Request, error) {
	if request.ID == uuid.Nil {
		request.ID = uuid.New()
	}
	request.Status = models.RequestStatusNew

	query := `
		INSERT INTO requests (id, client_id, category_id, car_id, car_model, description, location, address, is_sos, status)
		VALUES ($1, $2, $3, $4, $5, $6, point($7, $8), $9, $10, $11)
		RETURNING created_at
	`

	err := r.db.QueryRowContext(ctx, query,
		request.ID,
		request.ClientID,
		request.CategoryID,
		request.CarID,
		request.CarModel,
		request.Description,
		request.Location.Longitude(),
		request.Location.Latitude(),
		request.Address,
		request.IsSOS,
		request.Status,
	).Scan(&request.CreatedAt)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindInternal, "failed to create request", err)
	}

	return request, nil
}

// GetRequest retrieves a request by id
func (r *RequestRepo) GetRequest(ctx context.Context, id uuid.UUID) (*models.Request, error) {
	query := `SELECT ` + requestColumns + ` FROM requests WHERE id = $1`

	var dto models.RequestDTO
	if err := r.db.GetContext(ctx, &dto, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("request not found")
		}
		return nil, apperrors.Wrap(apperrors.KindInternal, "failed to get request", err)
	}
	return dto.ToRequest(), nil
}

// ListRequestsByClient lists a client's requests, newest first
func (r *RequestRepo) ListRequestsByClient(ctx context.Context, clientID uuid.UUID) ([]models.Request, error) {
	query := `SELECT ` + requestColumns + ` FROM requests WHERE client_id = $1 ORDER BY created_at DESC`

	dtos := []models.RequestDTO{}
	if err := r.db.SelectContext(ctx, &dtos, query, clientID); err != nil {
		return nil, apperrors.Wrap(apperrors.KindInternal, "failed to list requests", err)
	}

	requests := make([]models.Request, 0, len(dtos))
	for i := range dtos {
		requests = append(requests, *dtos[i].ToRequest())
	}
	return requests, nil
}

// UpdateRequestStatus transitions a request between lifecycle states.
// The transition is conditional on the current status, so concurrent
// transitions resolve to a single winner.
func (r *RequestRepo) UpdateRequestStatus(ctx context.Context, id uuid.UUID, from, to string) error {
	query := `UPDATE requests SET status = $1 WHERE id = $2 AND status = $3`

	result, err := r.db.ExecContext(ctx, query, to, id, from)
	if err != nil {
		return apperrors.Wrap(apperrors.KindInternal, "failed to update request status", err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return apperrors.Conflict("request is not in status " + from)
	}
	return nil
}

// AddAttachment stores a media record for a request
func (r *RequestRepo) AddAttachment(ctx context.Context, attachment *models.Attachment) error {
	if attachment.ID == uuid.Nil {
		attachment.ID = uuid.New()
	}

	query := `
		INSERT INTO request_attachments (id, request_id, url, kind)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`

	err := r.db.QueryRowContext(ctx, query, attachment.ID, attachment.OwnerID, attachment.URL, attachment.Kind).
		Scan(&attachment.CreatedAt)
	if err != nil {
		return apperrors.Wrap(apperrors.KindInternal, "failed to add attachment", err)
	}
	return nil
}

// ListAttachments lists a request's media, oldest first
func (r *RequestRepo) ListAttachments(ctx context.Context, requestID uuid.UUID) ([]models.Attachment, error) {
	query := `
		SELECT id, request_id AS owner_id, url, kind, created_at
		FROM request_attachments
		WHERE request_id = $1
		ORDER BY created_at
	`

	attachments := []models.Attachment{}
	if err := r.db.SelectContext(ctx, &attachments, query, requestID); err != nil {
		return nil, apperrors.Wrap(apperrors.KindInternal, "failed to list attachments", err)
	}
	return attachments, nil
}
