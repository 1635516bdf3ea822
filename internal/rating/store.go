// Package rating Elo 積分：當前分數與排行榜放在 Redis。
package rating

import (
	"context"
	"log/slog"

	"github.com/redis/go-redis/v9"

	mjErrors "sudooom.mahjong.engine/internal/mahjong/errors"
)

const (
	// RatingKeyPrefix 玩家積分 Key 前綴
	RatingKeyPrefix = "mahjong:rating:"
	// LeaderboardKey 排行榜有序集合 Key
	LeaderboardKey = "mahjong:rating:leaderboard"
)

// ErrBadResults 更新輸入不合法
var ErrBadResults = mjErrors.New("RATING_BAD_RESULTS", "對局結果輸入不合法")

// BuildRatingKey 構建玩家積分 Key
func BuildRatingKey(playerID string) string {
	return RatingKeyPrefix + playerID
}

// PlayerResult 一場對局中一名玩家的名次積分
type PlayerResult struct {
	PlayerID string
	Points   int
}

// Change 更新前後的分數
type Change struct {
	Before int `json:"before"`
	After  int `json:"after"`
}

// Entry 排行榜一列
type Entry struct {
	PlayerID string `json:"playerId"`
	Rating   int    `json:"rating"`
}

// Store Elo 積分倉庫
type Store struct {
	client *redis.Client
	logger *slog.Logger
}

// NewStore 創建積分倉庫
func NewStore(client *redis.Client) *Store {
	return &Store{
		client: client,
		logger: slog.Default().With("component", "RatingStore"),
	}
}

// Rating 取得玩家當前積分，沒打過的玩家返回起始分
func (s *Store) Rating(ctx context.Context, playerID string) (int, error) {
	val, err := s.client.Get(ctx, BuildRatingKey(playerID)).Int()
	if err == redis.Nil {
		return DefaultRating, nil
	}
	if err != nil {
		return 0, err
	}
	return val, nil
}

// Update 依一場對局的名次積分更新所有玩家的 Elo，返回每人更新前後的分數。
func (s *Store) Update(ctx context.Context, results []PlayerResult) (map[string]Change, error) {
	if len(results) < 2 {
		return nil, ErrBadResults.WithContext("players", len(results))
	}

	ratings := make([]int, len(results))
	points := make([]int, len(results))
	for i, r := range results {
		if r.PlayerID == "" {
			return nil, ErrBadResults.WithContext("index", i)
		}
		current, err := s.Rating(ctx, r.PlayerID)
		if err != nil {
			return nil, err
		}
		ratings[i] = current
		points[i] = r.Points
	}

	updated := applyMatch(ratings, points)

	pipe := s.client.Pipeline()
	changes := make(map[string]Change, len(results))
	for i, r := range results {
		changes[r.PlayerID] = Change{Before: ratings[i], After: updated[i]}
		pipe.Set(ctx, BuildRatingKey(r.PlayerID), updated[i], 0)
		pipe.ZAdd(ctx, LeaderboardKey, redis.Z{
			Score:  float64(updated[i]),
			Member: r.PlayerID,
		})
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, err
	}

	s.logger.Info("Ratings updated", "players", len(results))
	return changes, nil
}

// Leaderboard 返回排行榜前 n 名，高分在前
func (s *Store) Leaderboard(ctx context.Context, n int64) ([]Entry, error) {
	zs, err := s.client.ZRevRangeWithScores(ctx, LeaderboardKey, 0, n-1).Result()
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(zs))
	for _, z := range zs {
		id, _ := z.Member.(string)
		entries = append(entries, Entry{PlayerID: id, Rating: int(z.Score)})
	}
	return entries, nil
}
