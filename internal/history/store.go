// Package history 對局歷史倉庫：對局、回放影格與 Elo 紀錄落進 PostgreSQL。
package history

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"sudooom.mahjong.engine/internal/match"
)

// Game 一場對局的落地紀錄
type Game struct {
	ID        string     `json:"id"`
	Mode      string     `json:"mode"`
	StartedAt time.Time  `json:"startedAt"`
	EndedAt   *time.Time `json:"endedAt,omitempty"`
	HumanSeat int        `json:"humanSeat"`
	Result    *string    `json:"result,omitempty"`
}

// Frame 一筆回放影格紀錄
type Frame struct {
	GameID     string    `json:"gameId"`
	TurnNumber int       `json:"turnNumber"`
	ActionJSON []byte    `json:"actionJson"`
	CreatedAt  time.Time `json:"createdAt"`
}

// EloRecord 一場對局前後的 Elo 變動
type EloRecord struct {
	GameID     string    `json:"gameId"`
	EloBefore  int       `json:"eloBefore"`
	EloAfter   int       `json:"eloAfter"`
	RecordedAt time.Time `json:"recordedAt"`
}

// Store 歷史倉庫
type Store struct {
	db *pgxpool.Pool
}

// NewStore 創建歷史倉庫
func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

// CreateSchema 建表，可重複執行
func (s *Store) CreateSchema(ctx context.Context) error {
	schema := `
		CREATE TABLE IF NOT EXISTS games (
			id         TEXT PRIMARY KEY,
			mode       TEXT NOT NULL,
			started_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			ended_at   TIMESTAMPTZ,
			human_seat INTEGER NOT NULL,
			result     TEXT
		);
		CREATE TABLE IF NOT EXISTS replay_frames (
			id          BIGSERIAL PRIMARY KEY,
			game_id     TEXT NOT NULL REFERENCES games(id),
			turn_number INTEGER NOT NULL,
			action_json JSONB NOT NULL,
			created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
		);
		CREATE TABLE IF NOT EXISTS elo_history (
			id          BIGSERIAL PRIMARY KEY,
			game_id     TEXT NOT NULL REFERENCES games(id),
			elo_before  INTEGER NOT NULL,
			elo_after   INTEGER NOT NULL,
			recorded_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);
	`
	_, err := s.db.Exec(ctx, schema)
	return err
}

// SaveGame 登記一場新對局
func (s *Store) SaveGame(ctx context.Context, gameID, mode string, humanSeat int) error {
	query := `INSERT INTO games (id, mode, human_seat) VALUES ($1, $2, $3)`
	_, err := s.db.Exec(ctx, query, gameID, mode, humanSeat)
	return err
}

// FinishGame 標記對局結束並寫入結果
func (s *Store) FinishGame(ctx context.Context, gameID, result string) error {
	query := `UPDATE games SET result = $2, ended_at = now() WHERE id = $1`
	_, err := s.db.Exec(ctx, query, gameID, result)
	return err
}

// Games 返回所有對局，最近開打的在前
func (s *Store) Games(ctx context.Context) ([]Game, error) {
	query := `
		SELECT id, mode, started_at, ended_at, human_seat, result
		FROM games ORDER BY started_at DESC
	`

	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var games []Game
	for rows.Next() {
		var g Game
		if err := rows.Scan(&g.ID, &g.Mode, &g.StartedAt, &g.EndedAt, &g.HumanSeat, &g.Result); err != nil {
			return nil, err
		}
		games = append(games, g)
	}
	return games, rows.Err()
}

// SaveFrames 批量寫入回放影格
func (s *Store) SaveFrames(ctx context.Context, gameID string, frames []match.Frame) error {
	if len(frames) == 0 {
		return nil
	}

	query := `INSERT INTO replay_frames (game_id, turn_number, action_json) VALUES ($1, $2, $3)`

	batch := &pgx.Batch{}
	for _, f := range frames {
		payload, err := json.Marshal(f)
		if err != nil {
			return err
		}
		batch.Queue(query, gameID, f.Turn, payload)
	}

	br := s.db.SendBatch(ctx, batch)
	for range frames {
		if _, err := br.Exec(); err != nil {
			br.Close()
			return err
		}
	}
	return br.Close()
}

// LoadFrames 按回合序號載入一場對局的回放影格
func (s *Store) LoadFrames(ctx context.Context, gameID string) ([]Frame, error) {
	query := `
		SELECT game_id, turn_number, action_json, created_at
		FROM replay_frames WHERE game_id = $1 ORDER BY turn_number
	`

	rows, err := s.db.Query(ctx, query, gameID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var frames []Frame
	for rows.Next() {
		var f Frame
		if err := rows.Scan(&f.GameID, &f.TurnNumber, &f.ActionJSON, &f.CreatedAt); err != nil {
			return nil, err
		}
		frames = append(frames, f)
	}
	return frames, rows.Err()
}

// SaveElo 記錄一場對局前後的 Elo
func (s *Store) SaveElo(ctx context.Context, gameID string, before, after int) error {
	query := `INSERT INTO elo_history (game_id, elo_before, elo_after) VALUES ($1, $2, $3)`
	_, err := s.db.Exec(ctx, query, gameID, before, after)
	return err
}

// EloHistory 返回所有 Elo 紀錄，最新的在前
func (s *Store) EloHistory(ctx context.Context) ([]EloRecord, error) {
	query := `
		SELECT game_id, elo_before, elo_after, recorded_at
		FROM elo_history ORDER BY recorded_at DESC
	`

	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []EloRecord
	for rows.Next() {
		var r EloRecord
		if err := rows.Scan(&r.GameID, &r.EloBefore, &r.EloAfter, &r.RecordedAt); err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, rows.Err()
}
