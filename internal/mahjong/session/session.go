// Package session 單局狀態機：發牌、補花、行牌與詢問的推進。
//
// 所有動作先驗證後生效，非法動作返回錯誤且不改動任何狀態。
// 每次狀態變更後核對全桌牌張守恆，違反即 panic。
package session

import (
	"math/rand"
	"time"

	"sudooom.mahjong.engine/internal/mahjong/meld"
	"sudooom.mahjong.engine/internal/mahjong/score"
	"sudooom.mahjong.engine/internal/mahjong/shanten"
	"sudooom.mahjong.engine/internal/mahjong/tile"
	"sudooom.mahjong.engine/internal/mahjong/wall"
	"sudooom.mahjong.engine/internal/mahjong/win"
)

// Config 開局參數
type Config struct {
	DealerSeat   int
	DealerStreak int
	RoundWind    int // 0=東 1=南 2=西 3=北
	HandNumber   int

	// Rand 洗牌隨機源，nil 時以當前時間為種子
	Rand *rand.Rand
	// Deck 指定牌序（測試與回放用），非空時不再洗牌
	Deck []tile.Tile
	// DisableAudit 關閉守恆審計
	DisableAudit bool
}

// Session 單局狀態機
type Session struct {
	state *GameState
	audit bool

	justDrew     bool      // 手上多一張，等待打牌
	afterKong    bool      // 最後一張是補牌摸到的
	lastDrawn    tile.Tile // 最後摸進的牌
	discardCount int       // 全桌累計打牌數

	// 打牌詢問
	pendingDiscard   tile.Tile
	pendingDiscarder int
	claims           map[int]Action

	// 搶花詢問
	flowerPending  bool
	flowerRevealer int
	flowerClaimant int
	pendingFlower  tile.Tile

	outcome *Outcome
}

// New 建立一副新局。發牌前狀態停在 PhaseDealing，呼叫 StartHand 開打。
func New(cfg Config) (*Session, error) {
	if cfg.DealerSeat < 0 || cfg.DealerSeat > 3 {
		return nil, illegal("莊家座位必須在 0 到 3 之間").WithContext("seat", cfg.DealerSeat)
	}
	if cfg.RoundWind < 0 || cfg.RoundWind > 3 {
		return nil, illegal("圈風必須在 0 到 3 之間").WithContext("wind", cfg.RoundWind)
	}

	var w *wall.Wall
	if len(cfg.Deck) > 0 {
		built, err := wall.Build(cfg.Deck)
		if err != nil {
			return nil, err
		}
		w = built
	} else {
		rng := cfg.Rand
		if rng == nil {
			rng = rand.New(rand.NewSource(time.Now().UnixNano()))
		}
		w = wall.New(rng)
	}

	state := &GameState{
		Wall:         w,
		CurrentSeat:  cfg.DealerSeat,
		RoundWind:    cfg.RoundWind,
		HandNumber:   cfg.HandNumber,
		DealerSeat:   cfg.DealerSeat,
		DealerStreak: cfg.DealerStreak,
		Phase:        PhaseDealing,
	}
	for seat := 0; seat < 4; seat++ {
		state.Players[seat] = &PlayerState{
			Seat:     seat,
			IsDealer: seat == cfg.DealerSeat,
		}
	}

	return &Session{
		state:            state,
		audit:            !cfg.DisableAudit,
		pendingDiscarder: -1,
		flowerRevealer:   -1,
		flowerClaimant:   -1,
	}, nil
}

// State 當前完整狀態
func (s *Session) State() *GameState { return s.state }

// Phase 當前階段
func (s *Session) Phase() Phase { return s.state.Phase }

// Outcome 終局結果，未終局為 nil
func (s *Session) Outcome() *Outcome { return s.outcome }

// ========== 發牌與開局補花 ==========

// StartHand 發牌、補花並把行牌權交給莊家。
// 補花後任一家湊滿八張花即為配牌花胡，直接終局。
func (s *Session) StartHand() error {
	if s.state.Phase != PhaseDealing {
		return illegal("牌局已經開始").WithContext("phase", s.state.Phase.String())
	}

	s.deal()
	s.state.Phase = PhaseFlowerReplacement
	s.replaceInitialFlowers()

	// 配牌花胡，莊家優先
	for offset := 0; offset < 4; offset++ {
		seat := (s.state.DealerSeat + offset) % 4
		p := s.state.Players[seat]
		if len(p.Flowers) >= tile.FlowerKinds {
			ctx := s.buildScoreContext(p, p.Hand, p.Flowers[len(p.Flowers)-1], score.WinModeAllFlowers, score.NoDiscarder)
			ctx.DealtFlowerWin = true
			s.finish(seat, score.NoDiscarder, ctx)
			s.auditConservation()
			return nil
		}
	}

	dealer := s.state.Players[s.state.DealerSeat]
	if dealer.Hand.Count(s.lastDrawn) == 0 {
		// 第十七張是花被補掉了，改以最小的手牌視同剛摸
		s.lastDrawn = dealer.Hand.Tiles()[0]
	}
	s.state.CurrentSeat = s.state.DealerSeat
	s.state.Phase = PhaseActiveTurn
	s.justDrew = true
	s.auditConservation()
	return nil
}

// deal 四輪每家四張，莊家先拿，最後莊家補第十七張。
func (s *Session) deal() {
	for round := 0; round < 4; round++ {
		for offset := 0; offset < 4; offset++ {
			seat := (s.state.DealerSeat + offset) % 4
			p := s.state.Players[seat]
			for i := 0; i < 4; i++ {
				t, _ := s.state.Wall.Draw()
				s.takeDealt(p, t)
			}
		}
	}
	dealer := s.state.Players[s.state.DealerSeat]
	t, _ := s.state.Wall.Draw()
	s.takeDealt(dealer, t)
	dealer.hasDrawn = true
	s.lastDrawn = t
}

// takeDealt 發到的牌入手，花牌直接進花區
func (s *Session) takeDealt(p *PlayerState, t tile.Tile) {
	if t.IsFlower() {
		p.Flowers = append(p.Flowers, t)
		return
	}
	p.Hand.Add(t)
}

// replaceInitialFlowers 開局補花：由莊家起逆位輪流從牌尾補到手牌滿額，
// 補到的花再補，直到每家手牌張數齊備。開局補花不開搶花詢問。
func (s *Session) replaceInitialFlowers() {
	for offset := 0; offset < 4; offset++ {
		seat := (s.state.DealerSeat + offset) % 4
		p := s.state.Players[seat]
		expected := 16
		if seat == s.state.DealerSeat {
			expected = 17
		}
		for p.HandSize() < expected {
			t, ok := s.state.Wall.DrawReplacement()
			if !ok {
				return
			}
			if t.IsFlower() {
				p.Flowers = append(p.Flowers, t)
				continue
			}
			p.Hand.Add(t)
		}
	}
}

// ========== 可行動作 ==========

// LegalActions 列出指定座位當下的全部合法動作，無可作為時返回 nil。
func (s *Session) LegalActions(seat int) []Action {
	if seat < 0 || seat > 3 || s.state.Phase.Terminal() {
		return nil
	}

	switch s.state.Phase {
	case PhaseClaimWindow:
		if s.flowerPending {
			if seat != s.flowerClaimant {
				return nil
			}
			return []Action{
				{Type: ActionWin, Seat: seat, Tile: s.pendingFlower},
				{Type: ActionPass, Seat: seat},
			}
		}
		if seat == s.pendingDiscarder {
			return nil
		}
		if _, replied := s.claims[seat]; replied {
			return nil
		}
		return s.claimActions(seat)

	case PhaseActiveTurn:
		if seat != s.state.CurrentSeat {
			return nil
		}
		return s.turnActions(seat)

	default:
		return nil
	}
}

// turnActions 輪到的一家：未摸先摸，摸後可胡、槓、打。
func (s *Session) turnActions(seat int) []Action {
	p := s.state.Players[seat]
	if !s.justDrew {
		return []Action{{Type: ActionDraw, Seat: seat}}
	}

	var actions []Action
	if s.canWinNow(p) {
		actions = append(actions, Action{Type: ActionWin, Seat: seat, Tile: s.lastDrawn})
	}
	for i := 0; i < tile.RankKinds; i++ {
		if p.Hand[i] == 0 {
			continue
		}
		t, _ := tile.FromIndex(i)
		if p.Hand[i] == tile.CopiesPerRank {
			actions = append(actions, Action{Type: ActionConcealedKong, Seat: seat, Tile: t})
		}
		if meld.CanAddedKong(p.Melds, t) {
			actions = append(actions, Action{Type: ActionAddedKong, Seat: seat, Tile: t})
		}
	}
	for i := 0; i < tile.RankKinds; i++ {
		if p.Hand[i] > 0 {
			t, _ := tile.FromIndex(i)
			actions = append(actions, Action{Type: ActionDiscard, Seat: seat, Tile: t})
		}
	}
	return actions
}

// claimActions 對打出的牌可回應的動作，至少有過。
func (s *Session) claimActions(seat int) []Action {
	p := s.state.Players[seat]
	discard := s.pendingDiscard

	var actions []Action
	if win.Evaluate(p.Hand, len(p.Melds), p.Flowers, discard, false) != win.None {
		actions = append(actions, Action{Type: ActionWin, Seat: seat, Tile: discard})
	}
	if meld.CanOpenKong(p.Hand, discard) {
		actions = append(actions, Action{Type: ActionOpenKong, Seat: seat, Tile: discard})
	}
	if meld.CanPong(p.Hand, discard) {
		actions = append(actions, Action{Type: ActionPong, Seat: seat, Tile: discard})
	}
	if seat == s.nextSeat(s.pendingDiscarder) {
		for _, combo := range meld.ChiCombos(p.Hand, discard) {
			actions = append(actions, Action{Type: ActionChi, Seat: seat, Tile: discard, Combo: combo})
		}
	}
	actions = append(actions, Action{Type: ActionPass, Seat: seat})
	return actions
}

// AwaitingResponse 詢問階段還沒回應的座位，依逆位順序；非詢問階段返回 nil。
func (s *Session) AwaitingResponse() []int {
	if s.state.Phase != PhaseClaimWindow {
		return nil
	}
	if s.flowerPending {
		return []int{s.flowerClaimant}
	}
	var seats []int
	for offset := 1; offset < 4; offset++ {
		seat := (s.pendingDiscarder + offset) % 4
		if _, replied := s.claims[seat]; !replied {
			seats = append(seats, seat)
		}
	}
	return seats
}

// PendingDiscard 詢問中的牌與打出者
func (s *Session) PendingDiscard() (tile.Tile, int, bool) {
	if s.state.Phase != PhaseClaimWindow || s.flowerPending {
		return tile.Tile{}, -1, false
	}
	return s.pendingDiscard, s.pendingDiscarder, true
}

// canWinNow 摸牌後能否立即胡：八張花或手牌成胡
func (s *Session) canWinNow(p *PlayerState) bool {
	if len(p.Flowers) >= tile.FlowerKinds {
		return true
	}
	return win.IsWinning(p.Hand, len(p.Melds))
}

// ========== 動作推進 ==========

// Step 驗證並執行一個動作。非法動作返回 ILLEGAL_ACTION 錯誤，狀態不變。
func (s *Session) Step(action Action) error {
	if s.state.Phase.Terminal() {
		return illegal("牌局已結束").WithContext("phase", s.state.Phase.String())
	}
	if action.Seat < 0 || action.Seat > 3 {
		return illegal("座位必須在 0 到 3 之間").WithContext("seat", action.Seat)
	}

	switch s.state.Phase {
	case PhaseClaimWindow:
		return s.stepClaim(action)
	case PhaseActiveTurn:
		switch action.Type {
		case ActionDraw:
			return s.stepDraw(action)
		case ActionDiscard:
			return s.stepDiscard(action)
		case ActionConcealedKong:
			return s.stepConcealedKong(action)
		case ActionAddedKong:
			return s.stepAddedKong(action)
		case ActionWin:
			return s.stepSelfDrawWin(action)
		default:
			return illegal("行牌階段不接受這個動作").WithContext("action", action.Type.String())
		}
	default:
		return illegal("牌局尚未開始").WithContext("phase", s.state.Phase.String())
	}
}

func (s *Session) stepDraw(a Action) error {
	if a.Seat != s.state.CurrentSeat {
		return illegal("還沒輪到這個座位").WithContext("seat", a.Seat)
	}
	if s.justDrew {
		return illegal("已摸過牌，應該打牌")
	}

	t, ok := s.state.Wall.Draw()
	if !ok {
		s.finishExhaustiveDraw()
		return nil
	}
	s.applyDrawnTile(s.state.Players[a.Seat], t, false)
	s.auditConservation()
	return nil
}

// applyDrawnTile 處理摸進的牌。花牌進花區並補牌；
// 他家持滿七花時先開搶花詢問，補牌延後到對方放棄。
func (s *Session) applyDrawnTile(p *PlayerState, t tile.Tile, fromBack bool) {
	if t.IsFlower() {
		p.Flowers = append(p.Flowers, t)
		if claimant := s.sevenFlowerHolder(p.Seat); claimant >= 0 {
			s.openFlowerClaim(p.Seat, claimant, t)
			return
		}
		s.drawReplacementFor(p)
		return
	}
	p.Hand.Add(t)
	p.hasDrawn = true
	s.justDrew = true
	s.afterKong = fromBack
	s.lastDrawn = t
}

// drawReplacementFor 從牌尾補一張，牌抓空即流局
func (s *Session) drawReplacementFor(p *PlayerState) {
	t, ok := s.state.Wall.DrawReplacement()
	if !ok {
		s.finishExhaustiveDraw()
		return
	}
	s.applyDrawnTile(p, t, true)
}

// sevenFlowerHolder 找出持滿七張花的另一家，沒有則 -1
func (s *Session) sevenFlowerHolder(except int) int {
	for seat := 0; seat < 4; seat++ {
		if seat == except {
			continue
		}
		if len(s.state.Players[seat].Flowers) == tile.FlowerKinds-1 {
			return seat
		}
	}
	return -1
}

func (s *Session) stepDiscard(a Action) error {
	if a.Seat != s.state.CurrentSeat {
		return illegal("還沒輪到這個座位").WithContext("seat", a.Seat)
	}
	if !s.justDrew {
		return illegal("摸牌前不能打牌")
	}
	p := s.state.Players[a.Seat]
	if p.Hand.Count(a.Tile) == 0 {
		return illegal("手上沒有這張牌").WithContext("tile", a.Tile.String())
	}

	p.Hand.Remove(a.Tile)
	p.Discards = append(p.Discards, a.Tile)
	s.state.DiscardPool = append(s.state.DiscardPool, a.Tile)
	s.state.LastDiscard = a.Tile
	s.discardCount++
	s.justDrew = false
	s.afterKong = false
	s.openClaimWindow(a.Seat, a.Tile)
	s.auditConservation()
	return nil
}

func (s *Session) stepConcealedKong(a Action) error {
	if a.Seat != s.state.CurrentSeat {
		return illegal("還沒輪到這個座位").WithContext("seat", a.Seat)
	}
	if !s.justDrew {
		return illegal("摸牌後才能槓")
	}
	p := s.state.Players[a.Seat]
	if !meld.CanConcealedKong(p.Hand, a.Tile) {
		return illegal("湊不成暗槓").WithContext("tile", a.Tile.String())
	}

	for i := 0; i < 4; i++ {
		p.Hand.Remove(a.Tile)
	}
	p.Melds = append(p.Melds, meld.NewConcealedKong(a.Tile))
	s.justDrew = false
	s.drawReplacementFor(p)
	s.auditConservation()
	return nil
}

func (s *Session) stepAddedKong(a Action) error {
	if a.Seat != s.state.CurrentSeat {
		return illegal("還沒輪到這個座位").WithContext("seat", a.Seat)
	}
	if !s.justDrew {
		return illegal("摸牌後才能槓")
	}
	p := s.state.Players[a.Seat]
	if p.Hand.Count(a.Tile) == 0 {
		return illegal("手上沒有這張牌").WithContext("tile", a.Tile.String())
	}
	if !meld.CanAddedKong(p.Melds, a.Tile) {
		return illegal("沒有可加槓的碰").WithContext("tile", a.Tile.String())
	}

	p.Hand.Remove(a.Tile)
	for i := range p.Melds {
		if p.Melds[i].Kind == meld.Pong && p.Melds[i].First().Equal(a.Tile) {
			_ = p.Melds[i].UpgradeToAddedKong(a.Tile)
			break
		}
	}
	s.justDrew = false
	s.drawReplacementFor(p)
	s.auditConservation()
	return nil
}

func (s *Session) stepSelfDrawWin(a Action) error {
	if a.Seat != s.state.CurrentSeat {
		return illegal("還沒輪到這個座位").WithContext("seat", a.Seat)
	}
	if !s.justDrew {
		return illegal("摸牌後才能自摸")
	}
	p := s.state.Players[a.Seat]

	if len(p.Flowers) >= tile.FlowerKinds {
		// 八仙過海
		winTile := p.Flowers[len(p.Flowers)-1]
		ctx := s.buildScoreContext(p, p.Hand, winTile, score.WinModeAllFlowers, score.NoDiscarder)
		s.finish(a.Seat, score.NoDiscarder, ctx)
		s.auditConservation()
		return nil
	}

	if !win.IsWinning(p.Hand, len(p.Melds)) {
		return illegal("這手牌還不能胡")
	}
	winTile := s.lastDrawn
	if p.Hand.Count(winTile) == 0 {
		// 碰牌後直接成胡的罕見局面，沒有真正的自摸張
		winTile = p.Hand.Tiles()[0]
	}
	hand := p.Hand
	hand.Remove(winTile)
	ctx := s.buildScoreContext(p, hand, winTile, score.WinModeSelfDraw, score.NoDiscarder)
	s.finish(a.Seat, score.NoDiscarder, ctx)
	s.auditConservation()
	return nil
}

// ========== 終局 ==========

// finish 結算並進入胡牌終局
func (s *Session) finish(winner, loser int, ctx *score.Context) {
	s.state.Phase = PhaseWin
	s.outcome = &Outcome{
		Phase:      PhaseWin,
		WinnerSeat: winner,
		LoserSeat:  loser,
		Mode:       ctx.Mode,
		WinTile:    ctx.WinTile,
		Score:      score.Calculate(ctx),
	}
}

// finishExhaustiveDraw 牌牆抓空，流局
func (s *Session) finishExhaustiveDraw() {
	s.state.Phase = PhaseDraw
	s.outcome = &Outcome{
		Phase:      PhaseDraw,
		WinnerSeat: -1,
		LoserSeat:  -1,
	}
}

// buildScoreContext 把胡牌一刻的局面組成計台輸入。
// hand 不含胡張；標準胡牌在此求出拆解與兩面聽。
func (s *Session) buildScoreContext(p *PlayerState, hand tile.Vector, winTile tile.Tile, mode score.WinMode, responsible int) *score.Context {
	ctx := &score.Context{
		WinnerSeat:    p.Seat,
		DealerSeat:    s.state.DealerSeat,
		DealerStreak:  s.state.DealerStreak,
		RoundWind:     tile.Winds[s.state.RoundWind],
		Hand:          hand,
		Melds:         append([]meld.Meld(nil), p.Melds...),
		Flowers:       append([]tile.Tile(nil), p.Flowers...),
		WinTile:       winTile,
		Mode:          mode,
		DiscarderSeat: responsible,
	}

	if mode == score.WinModeSelfDraw || mode == score.WinModeDiscard {
		full := hand
		full.Add(winTile)
		if dec, ok := win.Decompose(full, len(p.Melds)); ok {
			ctx.Decomp = &dec
		}
		ctx.TwoSidedWait = twoSidedWait(hand, len(p.Melds), winTile)
		ctx.AfterKong = s.afterKong && mode == score.WinModeSelfDraw
		ctx.LastTile = s.state.Wall.Exhausted()
	}

	switch mode {
	case score.WinModeSelfDraw:
		if p.Seat == s.state.DealerSeat {
			ctx.HeavenlyWin = s.discardCount == 0 && len(p.Melds) == 0 && !s.afterKong
		} else {
			ctx.EarthlyWin = len(p.Discards) == 0 && s.totalMelds() == 0
		}
	case score.WinModeDiscard:
		ctx.HumanlyWin = p.Seat != s.state.DealerSeat && !p.hasDrawn && len(p.Discards) == 0
	}
	return ctx
}

// twoSidedWait 胡張是否補在兩面搭子上：聽牌中同色還有相距三位的另一張
func twoSidedWait(hand tile.Vector, meldCount int, winTile tile.Tile) bool {
	if !winTile.IsSuited() {
		return false
	}
	waits := shanten.WaitingTiles(hand, meldCount)
	hit := false
	for _, w := range waits {
		if w.Equal(winTile) {
			hit = true
			break
		}
	}
	if !hit {
		return false
	}
	for _, w := range waits {
		if w.Suit != winTile.Suit {
			continue
		}
		d := int(w.Value) - int(winTile.Value)
		if d == 3 || d == -3 {
			return true
		}
	}
	return false
}

// totalMelds 全桌副露與暗槓的總數
func (s *Session) totalMelds() int {
	n := 0
	for _, p := range s.state.Players {
		n += len(p.Melds)
	}
	return n
}

func (s *Session) nextSeat(seat int) int {
	return (seat + 1) % 4
}
