package session

import (
	"sudooom.mahjong.engine/internal/mahjong/meld"
	"sudooom.mahjong.engine/internal/mahjong/score"
	"sudooom.mahjong.engine/internal/mahjong/tile"
	"sudooom.mahjong.engine/internal/mahjong/win"
)

// openClaimWindow 打牌後開詢問，收齊其他三家的回應才定奪
func (s *Session) openClaimWindow(discarder int, t tile.Tile) {
	s.pendingDiscard = t
	s.pendingDiscarder = discarder
	s.claims = make(map[int]Action, 3)
	s.state.Phase = PhaseClaimWindow
}

// closeClaimWindow 清掉詢問狀態
func (s *Session) closeClaimWindow() {
	s.pendingDiscarder = -1
	s.claims = nil
}

func (s *Session) stepClaim(a Action) error {
	if s.flowerPending {
		return s.stepFlowerClaim(a)
	}
	return s.stepDiscardClaim(a)
}

// stepDiscardClaim 收一家對棄牌的回應，三家到齊後按優先級定奪。
func (s *Session) stepDiscardClaim(a Action) error {
	if a.Seat == s.pendingDiscarder {
		return illegal("打牌的一家不能回應自己的牌").WithContext("seat", a.Seat)
	}
	if _, replied := s.claims[a.Seat]; replied {
		return illegal("這個座位已經回應過").WithContext("seat", a.Seat)
	}

	p := s.state.Players[a.Seat]
	discard := s.pendingDiscard
	switch a.Type {
	case ActionPass:
	case ActionWin:
		if win.Evaluate(p.Hand, len(p.Melds), p.Flowers, discard, false) == win.None {
			return illegal("這張牌胡不了").WithContext("tile", discard.String())
		}
	case ActionPong:
		if !meld.CanPong(p.Hand, discard) {
			return illegal("湊不成碰").WithContext("tile", discard.String())
		}
	case ActionOpenKong:
		if !meld.CanOpenKong(p.Hand, discard) {
			return illegal("湊不成明槓").WithContext("tile", discard.String())
		}
	case ActionChi:
		if a.Seat != s.nextSeat(s.pendingDiscarder) {
			return illegal("只有下家能吃").WithContext("seat", a.Seat)
		}
		if !s.chiComboValid(p, discard, a.Combo) {
			return illegal("湊不成這副順子").WithContext("tile", discard.String())
		}
	default:
		return illegal("詢問階段不接受這個動作").WithContext("action", a.Type.String())
	}

	s.claims[a.Seat] = a
	if len(s.claims) == 3 {
		s.resolveClaims()
	}
	s.auditConservation()
	return nil
}

// chiComboValid combo 須含棄牌、其餘兩張在手、且確為順子
func (s *Session) chiComboValid(p *PlayerState, discard tile.Tile, combo []tile.Tile) bool {
	if len(combo) != 3 {
		return false
	}
	var need tile.Vector
	seenDiscard := false
	for _, t := range combo {
		if !seenDiscard && t.Equal(discard) {
			seenDiscard = true
			continue
		}
		need.Add(t)
	}
	if !seenDiscard {
		return false
	}
	for i := 0; i < tile.RankKinds; i++ {
		if need[i] > 0 && p.Hand[i] < need[i] {
			return false
		}
	}
	_, err := meld.NewChi(combo, s.pendingDiscarder)
	return err == nil
}

// resolveClaims 三家回應收齊後定奪：胡 > 碰槓 > 吃 > 全過。
// 多家同時要胡時由打牌者逆位最近的一家得胡。
func (s *Session) resolveClaims() {
	discarder := s.pendingDiscarder

	for offset := 1; offset < 4; offset++ {
		seat := (discarder + offset) % 4
		if c, ok := s.claims[seat]; ok && c.Type == ActionWin {
			s.applyDiscardWin(seat)
			return
		}
	}
	for offset := 1; offset < 4; offset++ {
		seat := (discarder + offset) % 4
		c, ok := s.claims[seat]
		if !ok {
			continue
		}
		switch c.Type {
		case ActionPong:
			s.applyPong(seat)
			return
		case ActionOpenKong:
			s.applyOpenKong(seat)
			return
		}
	}
	if c, ok := s.claims[s.nextSeat(discarder)]; ok && c.Type == ActionChi {
		s.applyChi(s.nextSeat(discarder), c.Combo)
		return
	}

	// 全過，下家摸牌
	s.closeClaimWindow()
	s.state.CurrentSeat = s.nextSeat(discarder)
	s.state.Phase = PhaseActiveTurn
	s.justDrew = false
}

// takeLastFromPool 被吃碰槓胡的牌離開牌河
func (s *Session) takeLastFromPool() {
	s.state.DiscardPool = s.state.DiscardPool[:len(s.state.DiscardPool)-1]
}

func (s *Session) applyDiscardWin(seat int) {
	p := s.state.Players[seat]
	discard := s.pendingDiscard
	discarder := s.pendingDiscarder

	s.takeLastFromPool()
	ctx := s.buildScoreContext(p, p.Hand, discard, score.WinModeDiscard, discarder)
	p.Hand.Add(discard)
	s.closeClaimWindow()
	s.finish(seat, discarder, ctx)
}

func (s *Session) applyPong(seat int) {
	p := s.state.Players[seat]
	discard := s.pendingDiscard

	p.Hand.Remove(discard)
	p.Hand.Remove(discard)
	p.Melds = append(p.Melds, meld.NewPong(discard, s.pendingDiscarder))
	s.takeLastFromPool()
	s.closeClaimWindow()
	s.state.CurrentSeat = seat
	s.state.Phase = PhaseActiveTurn
	s.justDrew = true
}

func (s *Session) applyOpenKong(seat int) {
	p := s.state.Players[seat]
	discard := s.pendingDiscard

	p.Hand.Remove(discard)
	p.Hand.Remove(discard)
	p.Hand.Remove(discard)
	p.Melds = append(p.Melds, meld.NewOpenKong(discard, s.pendingDiscarder))
	s.takeLastFromPool()
	s.closeClaimWindow()
	s.state.CurrentSeat = seat
	s.state.Phase = PhaseActiveTurn
	s.justDrew = false
	s.drawReplacementFor(p)
}

func (s *Session) applyChi(seat int, combo []tile.Tile) {
	p := s.state.Players[seat]
	discard := s.pendingDiscard

	seenDiscard := false
	for _, t := range combo {
		if !seenDiscard && t.Equal(discard) {
			seenDiscard = true
			continue
		}
		p.Hand.Remove(t)
	}
	m, _ := meld.NewChi(combo, s.pendingDiscarder)
	p.Melds = append(p.Melds, m)
	s.takeLastFromPool()
	s.closeClaimWindow()
	s.state.CurrentSeat = seat
	s.state.Phase = PhaseActiveTurn
	s.justDrew = true
}

// ========== 搶花 ==========

// openFlowerClaim 行牌中翻出花而另一家已持滿七花，開搶花詢問。
// 對方要胡即七搶一，放棄則翻花的一家照常補牌。
func (s *Session) openFlowerClaim(revealer, claimant int, flower tile.Tile) {
	s.flowerPending = true
	s.flowerRevealer = revealer
	s.flowerClaimant = claimant
	s.pendingFlower = flower
	s.state.Phase = PhaseClaimWindow
}

func (s *Session) closeFlowerClaim() {
	s.flowerPending = false
	s.flowerRevealer = -1
	s.flowerClaimant = -1
}

func (s *Session) stepFlowerClaim(a Action) error {
	if a.Seat != s.flowerClaimant {
		return illegal("只有持滿七花的一家能回應").WithContext("seat", a.Seat)
	}

	switch a.Type {
	case ActionWin:
		claimant := s.state.Players[s.flowerClaimant]
		if !win.CanStealSeventh(claimant.Flowers, s.pendingFlower) {
			return illegal("湊不成七搶一")
		}
		revealer := s.state.Players[s.flowerRevealer]
		flower := s.pendingFlower
		loser := s.flowerRevealer

		// 翻出的花從對方花區移給搶花的一家
		revealer.Flowers = revealer.Flowers[:len(revealer.Flowers)-1]
		claimant.Flowers = append(claimant.Flowers, flower)
		ctx := s.buildScoreContext(claimant, claimant.Hand, flower, score.WinModeFlowerSteal, loser)
		s.closeFlowerClaim()
		s.finish(claimant.Seat, loser, ctx)
		s.auditConservation()
		return nil

	case ActionPass:
		revealer := s.state.Players[s.flowerRevealer]
		s.closeFlowerClaim()
		s.state.Phase = PhaseActiveTurn
		s.drawReplacementFor(revealer)
		s.auditConservation()
		return nil

	default:
		return illegal("搶花詢問只接受胡或過").WithContext("action", a.Type.String())
	}
}
