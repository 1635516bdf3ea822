package match

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Registry 對局註冊表：按編號管理進行中的對局並淘汰閒置者。
type Registry struct {
	matches sync.Map // matchId -> *Match

	evictTimeout time.Duration
	evictTicker  *time.Ticker

	stopChan chan struct{}

	// onEvict 淘汰或關閉前回呼，供上層保存未落地的對局
	onEvict func(*Match)

	logger *slog.Logger
}

// NewRegistry 建立註冊表並啟動淘汰循環。
// onEvict 可為 nil；非 nil 時在對局被移出前呼叫。
func NewRegistry(evictTimeout time.Duration, onEvict func(*Match)) *Registry {
	r := &Registry{
		evictTimeout: evictTimeout,
		evictTicker:  time.NewTicker(60 * time.Second),
		stopChan:     make(chan struct{}),
		onEvict:      onEvict,
		logger:       slog.Default().With("component", "MatchRegistry"),
	}

	go r.evictLoop()

	return r
}

// Add 註冊對局，編號重複返回錯誤
func (r *Registry) Add(m *Match) error {
	if _, loaded := r.matches.LoadOrStore(m.ID(), m); loaded {
		return ErrDuplicateMatch.WithContext("matchId", m.ID())
	}
	return nil
}

// Get 取得對局
func (r *Registry) Get(matchID string) (*Match, bool) {
	val, ok := r.matches.Load(matchID)
	if !ok {
		return nil, false
	}
	return val.(*Match), true
}

// Remove 移除對局
func (r *Registry) Remove(matchID string) {
	r.matches.Delete(matchID)
	r.logger.Info("Removed match", "matchId", matchID)
}

// Count 返回當前對局數
func (r *Registry) Count() int {
	count := 0
	r.matches.Range(func(key, value interface{}) bool {
		count++
		return true
	})
	return count
}

// evictLoop 淘汰循環
func (r *Registry) evictLoop() {
	for {
		select {
		case <-r.evictTicker.C:
			r.evictInactive()
		case <-r.stopChan:
			r.logger.Info("Evict loop stopped")
			return
		}
	}
}

// evictInactive 淘汰結束或閒置超時的對局
func (r *Registry) evictInactive() {
	now := time.Now()
	toEvict := []string{}

	r.matches.Range(func(key, value interface{}) bool {
		matchID := key.(string)
		m := value.(*Match)

		if m.Finished() || now.Sub(m.LastActiveTime()) > r.evictTimeout {
			toEvict = append(toEvict, matchID)
		}

		return true
	})

	for _, matchID := range toEvict {
		if val, ok := r.matches.Load(matchID); ok {
			m := val.(*Match)

			if m.IsDirty() && r.onEvict != nil {
				r.onEvict(m)
				m.MarkClean()
			}

			r.Remove(matchID)
			r.logger.Info("Evicted match", "matchId", matchID)
		}
	}
}

// Shutdown 停止淘汰循環並保存所有未落地的對局
func (r *Registry) Shutdown(ctx context.Context) error {
	r.logger.Info("Shutting down match registry")

	close(r.stopChan)
	r.evictTicker.Stop()

	r.matches.Range(func(key, value interface{}) bool {
		m := value.(*Match)
		if m.IsDirty() && r.onEvict != nil {
			r.onEvict(m)
			m.MarkClean()
		}
		return true
	})

	r.logger.Info("Match registry shutdown complete")
	return nil
}
