// Package match 整場對局編排：連續多局的莊位輪轉、圈風推進與積分累計。
//
// 引擎本身只管單局，這裡負責局與局之間的銜接，並在外部座位
// 之外用策略代打其餘座位。
package match

import (
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"sudooom.mahjong.engine/internal/mahjong/ai"
	"sudooom.mahjong.engine/internal/mahjong/session"
)

// NoExternalSeat 表示四個座位都由策略代打
const NoExternalSeat = -1

// maxStepsPerHand 單局步數安全上限，正常一局遠低於此數
const maxStepsPerHand = 500

// Frame 回放影格：一筆動作與其全場連續的回合序號
type Frame struct {
	Turn   int            `json:"turn"`
	Hand   int            `json:"hand"`
	Action session.Action `json:"action"`
}

// Config 開場參數
type Config struct {
	// ID 對局編號，空值自動產生
	ID string
	// ExternalSeat 由外部驅動的座位，NoExternalSeat 表示全自動
	ExternalSeat int
	// Policy 代打策略，nil 時使用規則型策略
	Policy ai.Policy
	// Rand 洗牌隨機源，nil 時以當前時間為種子
	Rand *rand.Rand
	// MaxHands 局數上限，0 表示打滿一將（四圈風各輪莊一周）
	MaxHands int
	// DisableAudit 關閉單局守恆審計
	DisableAudit bool
}

// Match 一場對局。公開方法皆可並發呼叫。
type Match struct {
	mu sync.RWMutex

	id           string
	externalSeat int
	policy       ai.Policy
	rng          *rand.Rand
	disableAudit bool

	sess *session.Session

	dealerSeat   int
	dealerStreak int
	roundWind    int
	firstDealer  int
	handNumber   int
	handsPlayed  int
	maxHands     int
	finished     bool
	handSettled  bool

	points      [4]int
	turnCounter int
	events      []Frame
	frames      []Frame

	lastActive time.Time
	dirty      bool

	logger *slog.Logger
}

// New 建立一場對局，東風東開局，座位 0 為首莊。
func New(cfg Config) (*Match, error) {
	if cfg.ExternalSeat < NoExternalSeat || cfg.ExternalSeat > 3 {
		return nil, ErrNotExternalSeat.WithContext("seat", cfg.ExternalSeat)
	}

	id := cfg.ID
	if id == "" {
		id = uuid.NewString()
	}
	policy := cfg.Policy
	if policy == nil {
		policy = ai.NewGreedy()
	}
	rng := cfg.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	return &Match{
		id:           id,
		externalSeat: cfg.ExternalSeat,
		policy:       policy,
		rng:          rng,
		disableAudit: cfg.DisableAudit,
		handNumber:   1,
		maxHands:     cfg.MaxHands,
		lastActive:   time.Now(),
		logger:       slog.Default().With("component", "Match", "matchId", id),
	}, nil
}

// ID 對局編號
func (m *Match) ID() string { return m.id }

// Start 開打第一局，並推進代打座位直到需要外部輸入或本局結束。
func (m *Match) Start() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.sess != nil {
		return ErrMatchStarted
	}
	return m.startHand()
}

// HandleAction 處理外部座位的動作，之後繼續推進代打座位。
func (m *Match) HandleAction(a session.Action) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.sess == nil {
		return ErrMatchNotStarted
	}
	if m.finished {
		return ErrMatchFinished
	}
	if a.Seat != m.externalSeat {
		return ErrNotExternalSeat.WithContext("seat", a.Seat)
	}

	if err := m.sess.Step(a); err != nil {
		return err
	}
	m.touch()
	m.record(a)
	return m.runPolicyTurns()
}

// NextHand 結算上一局後開下一局。
// 本局未打完返回 ErrHandInProgress，整場打完返回 ErrMatchFinished。
func (m *Match) NextHand() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.sess == nil {
		return ErrMatchNotStarted
	}
	if m.finished {
		return ErrMatchFinished
	}
	if !m.sess.Phase().Terminal() {
		return ErrHandInProgress
	}

	m.handNumber++
	return m.startHand()
}

// startHand 以當前莊位、連莊數與圈風開一局新牌
func (m *Match) startHand() error {
	sess, err := session.New(session.Config{
		DealerSeat:   m.dealerSeat,
		DealerStreak: m.dealerStreak,
		RoundWind:    m.roundWind,
		HandNumber:   m.handNumber,
		Rand:         m.rng,
		DisableAudit: m.disableAudit,
	})
	if err != nil {
		return err
	}
	if err := sess.StartHand(); err != nil {
		return err
	}

	m.sess = sess
	m.handSettled = false
	m.touch()
	m.logger.Info("hand started",
		"hand", m.handNumber,
		"dealer", m.dealerSeat,
		"streak", m.dealerStreak,
		"wind", m.roundWind)

	return m.runPolicyTurns()
}

// runPolicyTurns 推進代打座位直到需要外部輸入或本局終局
func (m *Match) runPolicyTurns() error {
	for i := 0; i < maxStepsPerHand; i++ {
		if m.sess.Phase().Terminal() {
			m.settle(m.sess.Outcome())
			return nil
		}

		if m.sess.Phase() == session.PhaseClaimWindow {
			waiting, err := m.driveClaims()
			if err != nil {
				return err
			}
			if waiting {
				return nil
			}
			continue
		}

		seat := m.sess.State().CurrentSeat
		if seat == m.externalSeat {
			return nil
		}
		legal := m.sess.LegalActions(seat)
		if len(legal) == 0 {
			return nil
		}

		act, err := m.policy.ChooseAction(m.sess.State(), seat, legal)
		if err != nil {
			return err
		}
		if err := m.sess.Step(act); err != nil {
			return err
		}
		m.record(act)
	}
	return ErrTurnLimit.WithContext("hand", m.handNumber)
}

// driveClaims 代答詢問中的代打座位。
// 外部座位有過水以外的選項時返回 true 等待輸入；只剩過水則代為過水。
func (m *Match) driveClaims() (bool, error) {
	for _, seat := range m.sess.AwaitingResponse() {
		// 第三家回應會立即結算詢問，階段一變就不再答
		if m.sess.Phase() != session.PhaseClaimWindow {
			return false, nil
		}
		legal := m.sess.LegalActions(seat)
		if len(legal) == 0 {
			continue
		}
		if seat == m.externalSeat && hasRealClaim(legal) {
			return true, nil
		}

		act, err := m.policy.ChooseAction(m.sess.State(), seat, legal)
		if err != nil {
			return false, err
		}
		if err := m.sess.Step(act); err != nil {
			return false, err
		}
		if act.Type != session.ActionPass {
			m.record(act)
		}
	}
	return false, nil
}

func hasRealClaim(legal []session.Action) bool {
	for _, a := range legal {
		if a.Type != session.ActionPass {
			return true
		}
	}
	return false
}

// settle 終局結算：累計積分、連莊或下莊、推圈風
func (m *Match) settle(out *session.Outcome) {
	if m.handSettled {
		return
	}
	m.handSettled = true
	m.handsPlayed++
	m.touch()

	if out.Phase == session.PhaseWin {
		for seat, pay := range out.Score.Payments {
			m.points[seat] -= pay
		}
	}

	// 莊家胡牌或流局連莊，其餘下莊；莊位輪回首莊則進下一圈風
	retained := out.Phase == session.PhaseDraw || out.WinnerSeat == m.dealerSeat
	if retained {
		m.dealerStreak++
	} else {
		m.dealerStreak = 0
		m.dealerSeat = (m.dealerSeat + 1) % 4
		if m.dealerSeat == m.firstDealer {
			m.roundWind++
			if m.roundWind > 3 {
				m.finished = true
			}
		}
	}
	if m.maxHands > 0 && m.handsPlayed >= m.maxHands {
		m.finished = true
	}

	m.logger.Info("hand settled",
		"hand", m.handNumber,
		"phase", out.Phase.String(),
		"winner", out.WinnerSeat,
		"dealer", m.dealerSeat,
		"streak", m.dealerStreak,
		"wind", m.roundWind,
		"finished", m.finished)
}

// record 記錄一筆動作到事件佇列與回放影格
func (m *Match) record(a session.Action) {
	m.turnCounter++
	f := Frame{Turn: m.turnCounter, Hand: m.handNumber, Action: a}
	m.events = append(m.events, f)
	m.frames = append(m.frames, f)
	m.dirty = true
}

func (m *Match) touch() {
	m.lastActive = time.Now()
	m.dirty = true
}

// ========== 查詢 ==========

// Finished 整場是否結束
func (m *Match) Finished() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.finished
}

// HandNumber 當前局數，從 1 起算
func (m *Match) HandNumber() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.handNumber
}

// HandsPlayed 已打完的局數
func (m *Match) HandsPlayed() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.handsPlayed
}

// DealerSeat 下一局的莊位
func (m *Match) DealerSeat() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.dealerSeat
}

// RoundWind 當前圈風（0東 1南 2西 3北）
func (m *Match) RoundWind() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.roundWind
}

// Points 各座位累計積分，四家合計恆為零
func (m *Match) Points() [4]int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.points
}

// Outcome 當前局的終局結果，未終局為 nil
func (m *Match) Outcome() *session.Outcome {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.sess == nil {
		return nil
	}
	return m.sess.Outcome()
}

// State 當前局的完整狀態，未開打為 nil
func (m *Match) State() *session.GameState {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.sess == nil {
		return nil
	}
	return m.sess.State()
}

// AwaitingExternal 是否停在等待外部座位輸入
func (m *Match) AwaitingExternal() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.externalSeat == NoExternalSeat || m.sess == nil || m.sess.Phase().Terminal() {
		return false
	}
	switch m.sess.Phase() {
	case session.PhaseActiveTurn:
		return m.sess.State().CurrentSeat == m.externalSeat
	case session.PhaseClaimWindow:
		for _, seat := range m.sess.AwaitingResponse() {
			if seat == m.externalSeat {
				return true
			}
		}
	}
	return false
}

// ExternalActions 外部座位此刻的合法動作
func (m *Match) ExternalActions() []session.Action {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.externalSeat == NoExternalSeat || m.sess == nil {
		return nil
	}
	return m.sess.LegalActions(m.externalSeat)
}

// Events 取出並清空未消費的事件
func (m *Match) Events() []Frame {
	m.mu.Lock()
	defer m.mu.Unlock()
	events := m.events
	m.events = nil
	return events
}

// ReplayFrames 全場回放影格副本
func (m *Match) ReplayFrames() []Frame {
	m.mu.RLock()
	defer m.mu.RUnlock()
	frames := make([]Frame, len(m.frames))
	copy(frames, m.frames)
	return frames
}

// LastActiveTime 最後活躍時間
func (m *Match) LastActiveTime() time.Time {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.lastActive
}

// IsDirty 是否有未保存的變更
func (m *Match) IsDirty() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.dirty
}

// MarkClean 標記為已保存
func (m *Match) MarkClean() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.dirty = false
}
