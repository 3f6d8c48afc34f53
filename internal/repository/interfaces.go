package repository

import (
	"context"

	"github.com/freeeve/quiet-conquest/internal/model"
)

// MatchRepository defines recorded-match data operations.
type MatchRepository interface {
	Create(ctx context.Context, m *model.Match) error
	FindByID(ctx context.Context, id string) (*model.Match, error)
	ListRecent(ctx context.Context, limit int) ([]model.Match, error)
}
