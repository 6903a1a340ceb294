package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/rocketscienceinc/playground-backend/internal/entity"
)

type ScoreRepository interface {
	Record(ctx context.Context, playerID string, outcome entity.Outcome) error
	GetByPlayerID(ctx context.Context, playerID string) (*entity.Score, error)
}

type scoreRepository struct {
	conn *sql.DB
	now  func() time.Time
}

func NewScoreRepository(conn *sql.DB) ScoreRepository {
	return &scoreRepository{
		conn: conn,
		now:  time.Now,
	}
}

// Record adds one finished game to the player's tally.
func (that *scoreRepository) Record(ctx context.Context, playerID string, outcome entity.Outcome) error {
	var delta entity.Score
	delta.Add(outcome)

	query := `INSERT INTO scores (player_id, player, ai, draws, updated_at) VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(player_id) DO UPDATE SET
			player = player + excluded.player,
			ai = ai + excluded.ai,
			draws = draws + excluded.draws,
			updated_at = excluded.updated_at`

	_, err := that.conn.ExecContext(ctx, query, playerID, delta.Player, delta.AI, delta.Draws, that.now().UTC())
	if err != nil {
		return fmt.Errorf("can't record score: %w", err)
	}

	return nil
}

// GetByPlayerID returns an empty tally for players that never finished a game.
func (that *scoreRepository) GetByPlayerID(ctx context.Context, playerID string) (*entity.Score, error) {
	query := `SELECT player, ai, draws FROM scores WHERE player_id = ?`

	score := entity.Score{PlayerID: playerID}

	err := that.conn.QueryRowContext(ctx, query, playerID).Scan(&score.Player, &score.AI, &score.Draws)
	if errors.Is(err, sql.ErrNoRows) {
		return &score, nil
	}
	if err != nil {
		return nil, fmt.Errorf("can't find score: %w", err)
	}

	return &score, nil
}
