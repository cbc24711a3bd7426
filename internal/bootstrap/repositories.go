package bootstrap

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/predictle/predictle/internal/database/postgres"
	"github.com/predictle/predictle/internal/repository"
)

// Repositories groups every persistence interface the services need
type Repositories struct {
	User       repository.User
	Prediction repository.Prediction
	Vote       repository.Vote
	Stats      repository.Stats
}

// InitializeRepositories wires the postgres implementations to a shared pool
func InitializeRepositories(pool *pgxpool.Pool) *Repositories {
	return &Repositories{
		User:       postgres.NewUserRepository(pool),
		Prediction: postgres.NewPredictionRepository(pool),
		Vote:       postgres.NewVoteRepository(pool),
		Stats:      postgres.NewStatsRepository(pool),
	}
}
