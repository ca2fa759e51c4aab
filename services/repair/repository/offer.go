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

// OfferRepo implements offer persistence over postgres
type OfferRepo struct {
	db *sqlx.DB
}

// NewOfferRepository creates a new offer repository
func NewOfferRepository(db *sqlx.DB) *OfferRepo {
	return &OfferRepo{db: db}
}

// CreateOffer inserts a mechanic's bid. The unique constraint on
// (request_id, mechanic_id) rejects a second bid on the same request.
func (r *OfferRepo) CreateOffer(ctx context.Context, offer *models.Offer) (*models.Offer, error) {
	if offer.ID == uuid.Nil {
		offer.ID = uuid.New()
	}

	query := `
		INSERT INTO offers (id, request_id, mechanic_id, price, comment)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING is_accepted, created_at
	`

	err := r.db.QueryRowContext(ctx, query,
		offer.ID,
		offer.RequestID,
		offer.MechanicID,
		offer.Price,
		offer.Comment,
	).Scan(&offer.IsAccepted, &offer.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, apperrors.Conflict("offer already exists for this request")
		}
		return nil, apperrors.Wrap(apperrors.KindInternal, "failed to create offer", err)
	}

	return offer, nil
}

// GetOffer retrieves an offer by id
func (r *OfferRepo) GetOffer(ctx context.Context, id uuid.UUID) (*models.Offer, error) {
	query := `
		SELECT id, request_id, mechanic_id, price, comment, is_accepted, created_at
		FROM offers
		WHERE id = $1
	`

	var offer models.Offer
	if err := r.db.GetContext(ctx, &offer, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("offer not found")
		}
		return nil, apperrors.Wrap(apperrors.KindInternal, "failed to get offer", err)
	}
	return &offer, nil
}

// ListOffersByRequest lists all bids on a request, oldest first
func (r *OfferRepo) ListOffersByRequest(ctx context.Context, requestID uuid.UUID) ([]models.Offer, error) {
	query := `
		SELECT id, request_id, mechanic_id, price, comment, is_accepted, created_at
		FROM offers
		WHERE request_id = $1
		ORDER BY created_at
	`

	offers := []models.Offer{}
	if err := r.db.SelectContext(ctx, &offers, query, requestID); err != nil {
		return nil, apperrors.Wrap(apperrors.KindInternal, "failed to list offers", err)
	}
	return offers, nil
}

// ListOffersByMechanic lists a mechanic's bids, newest first
func (r *OfferRepo) ListOffersByMechanic(ctx context.Context, mechanicID uuid.UUID) ([]models.Offer, error) {
	query := `
		SELECT id, request_id, mechanic_id, price, comment, is_accepted, created_at
		FROM offers
		WHERE mechanic_id = $1
		ORDER BY created_at DESC
	`

	offers := []models.Offer{}
	if err := r.db.SelectContext(ctx, &offers, query, mechanicID); err != nil {
		return nil, apperrors.Wrap(apperrors.KindInternal, "failed to list offers", err)
	}
	return offers, nil
}

// GetAcceptedOffer retrieves the accepted bid on a request, if any
func (r *OfferRepo) GetAcceptedOffer(ctx context.Context, requestID uuid.UUID) (*models.Offer, error) {
	query := `
		SELECT id, request_id, mechanic_id, price, comment, is_accepted, created_at
		FROM offers
		WHERE request_id = $1 AND is_accepted = true
	`

	var offer models.Offer
	if err := r.db.GetContext(ctx, &offer, query, requestID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("no accepted offer for this request")
		}
		return nil, apperrors.Wrap(apperrors.KindInternal, "failed to get accepted offer", err)
	}
	return &offer, nil
}

// AcceptOffer marks the offer accepted and moves its request to active
// in one transaction. Both updates are conditional, so of two
// concurrent accepts exactly one commits and the other rolls back with
// a conflict.
func (r *OfferRepo) AcceptOffer(ctx context.Context, offerID uuid.UUID, requestID uuid.UUID) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return apperrors.Wrap(apperrors.KindInternal, "failed to begin transaction", err)
	}
	defer tx.Rollback()

	acceptQuery := `UPDATE offers SET is_accepted = true WHERE id = $1 AND NOT is_accepted`
	result, err := tx.ExecContext(ctx, acceptQuery, offerID)
	if err != nil {
		return apperrors.Wrap(apperrors.KindInternal, "failed to accept offer", err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return apperrors.Conflict("offer already accepted")
	}

	activateQuery := `UPDATE requests SET status = $1 WHERE id = $2 AND status = $3`
	result, err = tx.ExecContext(ctx, activateQuery, models.RequestStatusActive, requestID, models.RequestStatusNew)
	if err != nil {
		return apperrors.Wrap(apperrors.KindInternal, "failed to activate request", err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return apperrors.Conflict("request is no longer open")
	}

	if err := tx.Commit(); err != nil {
		return apperrors.Wrap(apperrors.KindInternal, "failed to commit accept", err)
	}
	return nil
}
