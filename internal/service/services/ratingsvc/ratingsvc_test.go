package ratingsvc

import (
	"context"
	"strings"
	"testing"

	"github.com/gebeta/delivery/internal/service/models/apperr"
	"github.com/gebeta/delivery/internal/service/models/rating"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRatingRepo struct {
	restaurantRatings []rating.RestaurantRating
	menuRatings       []rating.MenuRating
}

func (f *fakeRatingRepo) InsertRestaurantRating(_ context.Context, r rating.RestaurantRating) (rating.RestaurantRating, error) {
	r.ID = int64(len(f.restaurantRatings) + 1)
	f.restaurantRatings = append(f.restaurantRatings, r)

	return r, nil
}

func (f *fakeRatingRepo) ListRestaurantRatings(_ context.Context, restaurantID int64) ([]rating.RestaurantRating, error) {
	out := make([]rating.RestaurantRating, 0)
	for _, r := range f.restaurantRatings {
		if r.RestaurantID == restaurantID {
			out = append(out, r)
		}
	}

	return out, nil
}

func (f *fakeRatingRepo) InsertMenuRating(_ context.Context, r rating.MenuRating) (rating.MenuRating, error) {
	r.ID = int64(len(f.menuRatings) + 1)
	f.menuRatings = append(f.menuRatings, r)

	return r, nil
}

func (f *fakeRatingRepo) ListMenuRatings(_ context.Context, menuItemID int64) ([]rating.MenuRating, error) {
	out := make([]rating.MenuRating, 0)
	for _, r := range f.menuRatings {
		if r.MenuItemID == menuItemID {
			out = append(out, r)
		}
	}

	return out, nil
}

func TestRateRestaurantValidation(t *testing.T) {
	tests := []struct {
		name     string
		stars    int
		feedback string
		wantErr  bool
	}{
		{name: "one star", stars: 1},
		{name: "five stars", stars: 5},
		{name: "zero stars", stars: 0, wantErr: true},
		{name: "six stars", stars: 6, wantErr: true},
		{name: "feedback at limit", stars: 4, feedback: strings.Repeat("x", 350)},
		{name: "feedback too long", stars: 4, feedback: strings.Repeat("x", 351), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := MustNewRatingService(WithRatingRepository(&fakeRatingRepo{}))

			_, err := svc.RateRestaurant(context.Background(), rating.RestaurantRating{
				ReviewerID:   "u1",
				RestaurantID: 100,
				StarRating:   tt.stars,
				Feedback:     tt.feedback,
			})
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, apperr.IsValidation(err))

				return
			}
			require.NoError(t, err)
		})
	}
}

func TestRateMenuItemAndList(t *testing.T) {
	repo := &fakeRatingRepo{}
	svc := MustNewRatingService(WithRatingRepository(repo))

	created, err := svc.RateMenuItem(context.Background(), rating.MenuRating{
		ReviewerID: "u1",
		MenuItemID: 10,
		StarRating: 4,
		Feedback:   "great injera",
	})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)

	ratings, err := svc.ListMenuRatings(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, ratings, 1)
	assert.Equal(t, 4, ratings[0].StarRating)
}
