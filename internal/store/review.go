package store

import (
	"context"
	"fmt"
	"time"

	"github.com/elarafragrance/elara-backend/internal/dependency"
	"github.com/elarafragrance/elara-backend/internal/entity"
	gerr "github.com/elarafragrance/elara-backend/internal/errors"
)

type reviewStore struct {
	*MYSQLStore
}

// Review returns an object implementing Review interface
func (ms *MYSQLStore) Review() dependency.Review {
	return &reviewStore{
		MYSQLStore: ms,
	}
}

// UpsertReview adds or replaces the customer's review of a product. One
// review per customer per product, enforced by the unique key.
func (ms *MYSQLStore) UpsertReview(ctx context.Context, review *entity.ReviewInsert) error {
	if !entity.IsValidRating(review.Rating) {
		return fmt.Errorf("rating %d out of range", review.Rating)
	}
	err := ExecNamed(ctx, ms.DB(), `
	INSERT INTO review (product_id, account_id, rating, comment) VALUES
		(:productId, :accountId, :rating, :comment)
	ON DUPLICATE KEY UPDATE rating = :rating, comment = :comment, created_at = CURRENT_TIMESTAMP`, map[string]any{
		"productId": review.ProductId,
		"accountId": review.AccountId,
		"rating":    review.Rating,
		"comment":   review.Comment,
	})
	if err != nil {
		return fmt.Errorf("failed to upsert review: %w", err)
	}
	return nil
}

func (ms *MYSQLStore) GetProductReviews(ctx context.Context, productId int, limit, offset int) ([]entity.Review, error) {
	reviews, err := QueryListNamed[entity.Review](ctx, ms.DB(), `
	SELECT r.*, CONCAT(a.first_name, ' ', a.last_name) AS customer_name
	FROM review r
	JOIN account a ON a.id = r.account_id
	WHERE r.product_id = :productId
	ORDER BY r.created_at DESC
	LIMIT :limit OFFSET :offset`, map[string]any{
		"productId": productId,
		"limit":     limit,
		"offset":    offset,
	})
	if err != nil {
		return nil, fmt.Errorf("can't get product reviews: %w", err)
	}
	return reviews, nil
}

func (ms *MYSQLStore) GetReviewsSince(ctx context.Context, since time.Time) ([]entity.Review, error) {
	reviews, err := QueryListNamed[entity.Review](ctx, ms.DB(), `
	SELECT r.*, CONCAT(a.first_name, ' ', a.last_name) AS customer_name
	FROM review r
	JOIN account a ON a.id = r.account_id
	WHERE r.created_at >= :since
	ORDER BY r.created_at ASC`, map[string]any{
		"since": since,
	})
	if err != nil {
		return nil, fmt.Errorf("can't get reviews since: %w", err)
	}
	return reviews, nil
}

func (ms *MYSQLStore) DeleteReviewById(ctx context.Context, id int) error {
	rows, err := ExecNamedRows(ctx, ms.DB(), `
	DELETE FROM review WHERE id = :id`, map[string]any{
		"id": id,
	})
	if err != nil {
		return fmt.Errorf("failed to delete review: %w", err)
	}
	if rows == 0 {
		return gerr.ErrReviewNotFound
	}
	return nil
}
