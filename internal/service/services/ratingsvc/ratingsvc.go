package ratingsvc

import (
	"context"

	"github.com/gebeta/delivery/internal/dal/interfaces/iratingrepo"
	"github.com/gebeta/delivery/internal/dal/postgres"
	postgresrepo "github.com/gebeta/delivery/internal/dal/repositories/rating/postgres"
	"github.com/gebeta/delivery/internal/service/models/apperr"
	"github.com/gebeta/delivery/internal/service/models/rating"
)

// RatingService records restaurant and menu item ratings.
type RatingService struct {
	ratingRepo iratingrepo.IRatingRepository
}

// option is a function that configures the RatingService.
type option func(*RatingService)

// MustNewRatingService creates a new RatingService.
func MustNewRatingService(opts ...option) *RatingService {
	s := &RatingService{}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// WithPostgresClient wires the default Postgres-backed rating repository.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithPostgresClient(pgClient *postgres.Client) option {
	return func(s *RatingService) {
		s.ratingRepo = postgresrepo.NewPostgresRatingRepository(pgClient.Pool())
	}
}

// WithRatingRepository sets the rating repository directly.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithRatingRepository(repo iratingrepo.IRatingRepository) option {
	return func(s *RatingService) {
		s.ratingRepo = repo
	}
}

// RateRestaurant records a restaurant rating.
func (s *RatingService) RateRestaurant(ctx context.Context, r rating.RestaurantRating) (rating.RestaurantRating, error) {
	if err := validate(r.StarRating, r.Feedback); err != nil {
		return rating.RestaurantRating{}, err
	}

	return s.ratingRepo.InsertRestaurantRating(ctx, r)
}

// ListRestaurantRatings returns a restaurant's ratings, newest first.
func (s *RatingService) ListRestaurantRatings(ctx context.Context, restaurantID int64) ([]rating.RestaurantRating, error) {
	return s.ratingRepo.ListRestaurantRatings(ctx, restaurantID)
}

// RateMenuItem records a menu item rating.
func (s *RatingService) RateMenuItem(ctx context.Context, r rating.MenuRating) (rating.MenuRating, error) {
	if err := validate(r.StarRating, r.Feedback); err != nil {
		return rating.MenuRating{}, err
	}

	return s.ratingRepo.InsertMenuRating(ctx, r)
}

// ListMenuRatings returns a menu item's ratings, newest first.
func (s *RatingService) ListMenuRatings(ctx context.Context, menuItemID int64) ([]rating.MenuRating, error) {
	return s.ratingRepo.ListMenuRatings(ctx, menuItemID)
}

func validate(stars int, feedback string) error {
	if stars < rating.MinStars || stars > rating.MaxStars {
		return apperr.Validation("stars must be between %d and %d", rating.MinStars, rating.MaxStars)
	}
	if len(feedback) > rating.MaxFeedbackLen {
		return apperr.Validation("feedback must be at most %d characters", rating.MaxFeedbackLen)
	}

	return nil
}
