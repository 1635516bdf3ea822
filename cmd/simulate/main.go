package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"sudooom.mahjong.engine/internal/config"
	"sudooom.mahjong.engine/internal/events"
	"sudooom.mahjong.engine/internal/history"
	"sudooom.mahjong.engine/internal/mahjong/session"
	"sudooom.mahjong.engine/internal/match"
	"sudooom.mahjong.engine/internal/rating"
	"sudooom.mahjong.engine/internal/workerpool"
)

var (
	configFile string
	matches    int
	seed       int64
	workers    int
	gameID     string
)

var rootCmd = &cobra.Command{
	Use:   "simulate",
	Short: "台灣十六張麻將自動對局模擬器",
	Long:  "以規則型策略代打四家連續對局，並可將回放、積分與事件寫入外部儲存。",
	Run:   runSimulate,
}

var replayCmd = &cobra.Command{
	Use:   "replay",
	Short: "查看已保存的對局與回放",
	Run:   runReplay,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "configs/config.yaml", "配置文件路徑")
	rootCmd.Flags().IntVar(&matches, "matches", 0, "對局場數，0 表示取配置值")
	rootCmd.Flags().Int64Var(&seed, "seed", 0, "洗牌種子，0 表示取配置值")
	rootCmd.Flags().IntVar(&workers, "workers", 0, "並行 worker 數，0 表示取配置值")
	replayCmd.Flags().StringVar(&gameID, "game", "", "對局編號，留空列出最近的對局")
	rootCmd.AddCommand(replayCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// mustSetup 加載配置並初始化日志，失敗直接退出
func mustSetup() (*config.Config, *slog.Logger) {
	cfg, err := config.Load(configFile)
	if err != nil {
		slog.Error("Failed to load config", "path", configFile, "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.App.LogLevel),
	}))
	slog.SetDefault(logger)

	return cfg, logger
}

func runSimulate(cmd *cobra.Command, args []string) {
	cfg, logger := mustSetup()

	if matches > 0 {
		cfg.Simulation.Matches = matches
	}
	if seed != 0 {
		cfg.Simulation.Seed = seed
	}
	if workers > 0 {
		cfg.Simulation.Workers = workers
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sim := &simulator{cfg: cfg, logger: logger}

	// 連接數據庫
	if cfg.Database.Enabled {
		db, err := connectDatabase(ctx, cfg.Database)
		if err != nil {
			logger.Error("Failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		logger.Info("Connected to PostgreSQL", "host", cfg.Database.Host)

		sim.store = history.NewStore(db)
		if err := sim.store.CreateSchema(ctx); err != nil {
			logger.Error("Failed to create schema", "error", err)
			os.Exit(1)
		}
	}

	// 連接 Redis
	if cfg.Redis.Enabled {
		redisClient := connectRedis(cfg.Redis)
		defer redisClient.Close()
		logger.Info("Connected to Redis", "host", cfg.Redis.Host)

		sim.rating = rating.NewStore(redisClient)
	}

	// 連接 NATS
	if cfg.NATS.Enabled {
		natsClient, err := events.NewClient(cfg.NATS)
		if err != nil {
			logger.Error("Failed to connect to NATS", "error", err)
			os.Exit(1)
		}
		defer natsClient.Close()
		logger.Info("Connected to NATS", "url", cfg.NATS.URL)

		sim.pub = events.NewPublisher(natsClient.Conn())
	}

	if err := sim.run(ctx); err != nil {
		logger.Error("Simulation failed", "error", err)
		os.Exit(1)
	}
}

func runReplay(cmd *cobra.Command, args []string) {
	cfg, logger := mustSetup()

	if !cfg.Database.Enabled {
		logger.Error("Replay requires database.enabled = true")
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db, err := connectDatabase(ctx, cfg.Database)
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	store := history.NewStore(db)

	if gameID == "" {
		games, err := store.Games(ctx)
		if err != nil {
			logger.Error("Failed to list games", "error", err)
			os.Exit(1)
		}
		for _, g := range games {
			result := ""
			if g.Result != nil {
				result = *g.Result
			}
			logger.Info("Game", "gameId", g.ID, "mode", g.Mode, "startedAt", g.StartedAt, "result", result)
		}

		records, err := store.EloHistory(ctx)
		if err != nil {
			logger.Error("Failed to list elo history", "error", err)
			os.Exit(1)
		}
		for _, r := range records {
			logger.Info("Elo", "gameId", r.GameID, "before", r.EloBefore, "after", r.EloAfter)
		}
		return
	}

	frames, err := store.LoadFrames(ctx, gameID)
	if err != nil {
		logger.Error("Failed to load frames", "error", err)
		os.Exit(1)
	}
	for _, f := range frames {
		logger.Info("Frame", "turn", f.TurnNumber, "action", string(f.ActionJSON))
	}
}

// simulator 批次對局執行器
type simulator struct {
	cfg    *config.Config
	store  *history.Store
	rating *rating.Store
	pub    *events.Publisher
	logger *slog.Logger
}

// handTally 各座位胡牌與流局局數
type handTally struct {
	wins  [4]int
	draws int
	hands int
}

// matchResult 一場打完的結果
type matchResult struct {
	id     string
	points [4]int
	tally  handTally
	err    error
}

func (s *simulator) run(ctx context.Context) error {
	start := time.Now()

	poolSize := s.cfg.Simulation.Workers
	if poolSize < 1 {
		poolSize = 1
	}

	n := s.cfg.Simulation.Matches
	results := make([]matchResult, n)

	pool := workerpool.New(poolSize, poolSize, s.logger)
	for i := 0; i < n; i++ {
		idx := i
		pool.Submit(func() {
			results[idx] = s.runMatch(ctx, idx)
		})
	}
	pool.Shutdown()

	var total handTally
	for idx := range results {
		res := &results[idx]
		if res.err != nil {
			return res.err
		}

		total.hands += res.tally.hands
		total.draws += res.tally.draws
		for seat, w := range res.tally.wins {
			total.wins[seat] += w
		}

		// 積分依場次順序結算，不受並行完成順序影響
		if err := s.settleRating(ctx, res.id, res.points); err != nil {
			return err
		}
	}

	s.logger.Info("Simulation complete",
		"matches", n,
		"hands", total.hands,
		"draws", total.draws,
		"winsBySeat", total.wins,
		"elapsed", time.Since(start).Round(time.Millisecond),
	)

	if s.rating != nil {
		entries, err := s.rating.Leaderboard(ctx, 4)
		if err != nil {
			return err
		}
		for i, e := range entries {
			s.logger.Info("Leaderboard", "rank", i+1, "playerId", e.PlayerID, "rating", e.Rating)
		}
	}

	return nil
}

func (s *simulator) runMatch(ctx context.Context, idx int) matchResult {
	// 固定種子時每場推一格，同配置可重現整批對局
	var rng *rand.Rand
	if s.cfg.Simulation.Seed != 0 {
		rng = rand.New(rand.NewSource(s.cfg.Simulation.Seed + int64(idx)))
	}

	m, err := match.New(match.Config{
		ExternalSeat: match.NoExternalSeat,
		Rand:         rng,
		MaxHands:     s.cfg.Simulation.MaxHands,
		DisableAudit: s.cfg.Simulation.DisableAudit,
	})
	if err != nil {
		return matchResult{err: err}
	}

	res := matchResult{id: m.ID()}

	if s.store != nil {
		if err := s.store.SaveGame(ctx, m.ID(), "simulation", match.NoExternalSeat); err != nil {
			res.err = err
			return res
		}
	}

	if err := m.Start(); err != nil {
		res.err = err
		return res
	}

	for {
		if err := s.publishHand(m); err != nil {
			s.logger.Warn("Hand events not fully published", "matchId", m.ID(), "error", err)
		}

		out := m.Outcome()
		res.tally.hands++
		if out.Phase == session.PhaseDraw {
			res.tally.draws++
		} else {
			res.tally.wins[out.WinnerSeat]++
		}

		if m.Finished() {
			break
		}
		if err := m.NextHand(); err != nil {
			res.err = err
			return res
		}
	}

	if err := s.persistReplay(ctx, m); err != nil {
		res.err = err
		return res
	}

	s.logger.Info("Match finished",
		"matchId", m.ID(),
		"hands", m.HandsPlayed(),
		"points", m.Points(),
	)
	res.points = m.Points()
	return res
}

// publishHand 把剛打完的一局依開局、行牌、終局順序發佈
func (s *simulator) publishHand(m *match.Match) error {
	// 事件佇列照常清空，NATS 未啟用時才不會堆積
	frames := m.Events()
	if s.pub == nil {
		return nil
	}

	gs := m.State()
	if err := s.pub.PublishHandStarted(&events.HandStarted{
		MatchID:      m.ID(),
		HandNumber:   gs.HandNumber,
		DealerSeat:   gs.DealerSeat,
		RoundWind:    gs.RoundWind,
		DealerStreak: gs.DealerStreak,
	}); err != nil {
		return err
	}

	for _, f := range frames {
		if err := s.pub.PublishHandAction(&events.HandAction{MatchID: m.ID(), Frame: f}); err != nil {
			return err
		}
	}

	return s.pub.PublishHandEnded(&events.HandEnded{
		MatchID: m.ID(),
		Outcome: m.Outcome(),
		Points:  m.Points(),
	})
}

// persistReplay 對局結束後寫入回放影格與最終結果
func (s *simulator) persistReplay(ctx context.Context, m *match.Match) error {
	if s.store == nil {
		return nil
	}

	if err := s.store.SaveFrames(ctx, m.ID(), m.ReplayFrames()); err != nil {
		return err
	}
	result, err := json.Marshal(m.Points())
	if err != nil {
		return err
	}
	return s.store.FinishGame(ctx, m.ID(), string(result))
}

// settleRating 更新四家積分並記 Elo 歷史
func (s *simulator) settleRating(ctx context.Context, matchID string, pts [4]int) error {
	if s.rating == nil {
		return nil
	}

	results := make([]rating.PlayerResult, len(pts))
	for seat, p := range pts {
		results[seat] = rating.PlayerResult{PlayerID: botID(seat), Points: p}
	}
	changes, err := s.rating.Update(ctx, results)
	if err != nil {
		return err
	}

	if s.store != nil {
		// elo_history 一場一列，沿用單一追蹤玩家的格式，記座位 0
		c := changes[botID(0)]
		return s.store.SaveElo(ctx, matchID, c.Before, c.After)
	}
	return nil
}

func botID(seat int) string {
	return fmt.Sprintf("bot-%d", seat)
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// connectRedis 連接 Redis
func connectRedis(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
	})
}

// connectDatabase 連接 PostgreSQL
func connectDatabase(ctx context.Context, cfg config.DatabaseConfig) (*pgxpool.Pool, error) {
	dsn := fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.Name,
	)

	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, err
	}

	poolConfig.MaxConns = int32(cfg.MaxOpenConns)
	poolConfig.MinConns = int32(cfg.MaxIdleConns)
	poolConfig.MaxConnLifetime = cfg.ConnMaxLifetime
	poolConfig.MaxConnIdleTime = 10 * time.Minute

	return pgxpool.NewWithConfig(ctx, poolConfig)
}
