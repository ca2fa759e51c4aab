package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/ykovtun/avtosos/internal/pkg/apperrors"
	"github.com/ykovtun/avtosos/internal/pkg/models"
)

// ReviewRepo implements review persistence over postgres
type ReviewRepo struct {
	db *sqlx.DB
}

// NewReviewRepository creates a new review repository
func NewReviewRepository(db *sqlx.DB) *ReviewRepo {
	return &ReviewRepo{db: db}
}

// CreateMechanicReview stores a client's review of a mechanic. One
// review per request per author is enforced by a unique constraint.
func (r *ReviewRepo) CreateMechanicReview(ctx context.Context, review *models.Review) (*models.Review, error) {
	if review.ID == uuid.Nil {
		review.ID = uuid.New()
	}

	query := `
		INSERT INTO mechanic_reviews (id, request_id, author_id, mechanic_id, rating, comment)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`

	err := r.db.QueryRowContext(ctx, query,
		review.ID,
		review.RequestID,
		review.AuthorID,
		review.MechanicID,
		review.Rating,
		review.Comment,
	).Scan(&review.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, apperrors.Conflict("review already exists for this request")
		}
		return nil, apperrors.Wrap(apperrors.KindInternal, "failed to create review", err)
	}

	return review, nil
}

// CreateClientReview stores a mechanic's review of a client
func (r *ReviewRepo) CreateClientReview(ctx context.Context, review *models.ClientReview) (*models.ClientReview, error) {
	if review.ID == uuid.Nil {
		review.ID = uuid.New()
	}

	query := `
		INSERT INTO client_reviews (id, request_id, author_id, client_id, rating, comment)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`

	err := r.db.QueryRowContext(ctx, query,
		review.ID,
		review.RequestID,
		review.AuthorID,
		review.ClientID,
		review.Rating,
		review.Comment,
	).Scan(&review.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, apperrors.Conflict("review already exists for this request")
		}
		return nil, apperrors.Wrap(apperrors.KindInternal, "failed to create review", err)
	}

	return review, nil
}

// ListReviewsByMechanic lists reviews received by a mechanic, newest first
func (r *ReviewRepo) ListReviewsByMechanic(ctx context.Context, mechanicID uuid.UUID) ([]models.Review, error) {
	query := `
		SELECT id, request_id, author_id, mechanic_id, rating, comment, created_at
		FROM mechanic_reviews
		WHERE mechanic_id = $1
		ORDER BY created_at DESC
	`

	reviews := []models.Review{}
	if err := r.db.SelectContext(ctx, &reviews, query, mechanicID); err != nil {
		return nil, apperrors.Wrap(apperrors.KindInternal, "failed to list reviews", err)
	}
	return reviews, nil
}

// ListMechanicRatings returns the raw rating values received by a mechanic
func (r *ReviewRepo) ListMechanicRatings(ctx context.Context, mechanicID uuid.UUID) ([]int, error) {
	query := `SELECT rating FROM mechanic_reviews WHERE mechanic_id = $1`

	ratings := []int{}
	if err := r.db.SelectContext(ctx, &ratings, query, mechanicID); err != nil {
		return nil, apperrors.Wrap(apperrors.KindInternal, "failed to list ratings", err)
	}
	return ratings, nil
}

// ListClientRatings returns the raw rating values received by a client
func (r *ReviewRepo) ListClientRatings(ctx context.Context, clientID uuid.UUID) ([]int, error) {
	query := `SELECT rating FROM client_reviews WHERE client_id = $1`

	ratings := []int{}
	if err := r.db.SelectContext(ctx, &ratings, query, clientID); err != nil {
		return nil, apperrors.Wrap(apperrors.KindInternal, "failed to list ratings", err)
	}
	return ratings, nil
}
