package recommendation

import (
	"context"

	"agriconnect/internal/model"
)

type UseCase interface {
	Recommend(ctx context.Context, origin model.Location, category string) ([]Recommendation, error)
}
