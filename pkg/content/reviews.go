package content

import (
	"context"
	"math"

	"go.uber.org/zap"

	"portfolio-cms/pkg/models"
)

// Reviews has no file store. Without a database it serves the built-in
// testimonials read-only.
type Reviews struct {
	*Repository[models.Review, models.ReviewPatch]
}

func NewReviews(remote Store[models.Review], logger *zap.Logger) *Reviews {
	return &Reviews{&Repository[models.Review, models.ReviewPatch]{
		kind:      models.KindReview,
		remote:    remote,
		normalize: NormalizeReview,
		ensure:    EnsureReview,
		slugOf:    func(r models.Review) string { return r.Slug },
		builtin:   BuiltinTestimonials,
		logger:    orNop(logger),
	}}
}

// Summary fetches every review and aggregates it.
func (r *Reviews) Summary(ctx context.Context) (*models.ReviewSummary, error) {
	reviews, err := r.FetchAll(ctx)
	if err != nil {
		return nil, err
	}
	summary := Summarize(reviews)
	return &summary, nil
}

// Summarize derives the overall rating and count. The rating is 0 when
// there are no reviews.
func Summarize(reviews []models.Review) models.ReviewSummary {
	if reviews == nil {
		reviews = []models.Review{}
	}
	total := len(reviews)

	var overall float64
	if total > 0 {
		sum := 0
		for _, review := range reviews {
			sum += ClampRating(float64(review.Rating))
		}
		overall = float64(sum) / float64(total)
	}
	if math.IsNaN(overall) || math.IsInf(overall, 0) {
		overall = 0
	}

	return models.ReviewSummary{
		Reviews:       reviews,
		OverallRating: overall,
		TotalReviews:  total,
	}
}
