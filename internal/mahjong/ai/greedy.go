// Package ai 規則型策略：每個決策點都朝最低向聽數走。
package ai

import (
	mjErrors "sudooom.mahjong.engine/internal/mahjong/errors"
	"sudooom.mahjong.engine/internal/mahjong/session"
	"sudooom.mahjong.engine/internal/mahjong/shanten"
)

// ErrNoLegalActions 沒有可選動作
var ErrNoLegalActions = mjErrors.New("NO_LEGAL_ACTIONS", "沒有可選的動作")

// Policy 從合法動作中替一家挑一個動作
type Policy interface {
	ChooseAction(gs *session.GameState, seat int, legal []session.Action) (session.Action, error)
}

// Greedy 貪心策略：能胡就胡，打牌挑向聽最低的一張，
// 吃碰只在降向聽時接受，不看別家的危險牌。
type Greedy struct{}

// NewGreedy 建立貪心策略
func NewGreedy() *Greedy {
	return &Greedy{}
}

// ChooseAction 依固定優先序決策：胡 > 打牌 > 槓 > 吃碰 > 摸牌 > 過。
func (g *Greedy) ChooseAction(gs *session.GameState, seat int, legal []session.Action) (session.Action, error) {
	if len(legal) == 0 {
		return session.Action{}, ErrNoLegalActions.WithContext("seat", seat)
	}

	for _, a := range legal {
		if a.Type == session.ActionWin {
			return a, nil
		}
	}

	var discards []session.Action
	for _, a := range legal {
		if a.Type == session.ActionDiscard {
			discards = append(discards, a)
		}
	}
	if len(discards) > 0 {
		return g.bestDiscard(gs.Players[seat], discards), nil
	}

	for _, a := range legal {
		switch a.Type {
		case session.ActionConcealedKong, session.ActionAddedKong, session.ActionOpenKong:
			return a, nil
		}
	}

	p := gs.Players[seat]
	current := shanten.Shanten(p.Hand, len(p.Melds))
	for _, a := range legal {
		switch a.Type {
		case session.ActionPong:
			if p.Hand.Count(a.Tile) < 2 {
				continue
			}
			hand := p.Hand
			hand.Remove(a.Tile)
			hand.Remove(a.Tile)
			if shanten.Shanten(hand, len(p.Melds)+1) < current {
				return a, nil
			}
		case session.ActionChi:
			hand := p.Hand
			feasible := true
			seenClaim := false
			for _, t := range a.Combo {
				if !seenClaim && t.Equal(a.Tile) {
					seenClaim = true
					continue
				}
				if !hand.Remove(t) {
					feasible = false
					break
				}
			}
			if feasible && shanten.Shanten(hand, len(p.Melds)+1) < current {
				return a, nil
			}
		}
	}

	for _, a := range legal {
		if a.Type == session.ActionDraw {
			return a, nil
		}
	}
	for _, a := range legal {
		if a.Type == session.ActionPass {
			return a, nil
		}
	}
	return legal[0], nil
}

// bestDiscard 逐張模擬，挑向聽最低的一打；
// 同向聽時偏好先打孤張字牌，再打么九。
func (g *Greedy) bestDiscard(p *session.PlayerState, discards []session.Action) session.Action {
	best := discards[0]
	bestShanten := 1 << 8 // 任何真實向聽數都比這小
	bestPriority := 0

	for _, a := range discards {
		hand := p.Hand
		if !hand.Remove(a.Tile) {
			continue
		}
		s := shanten.Shanten(hand, len(p.Melds))

		priority := 0
		if a.Tile.IsHonor() {
			priority = 2
		} else if a.Tile.IsTerminal() {
			priority = 1
		}

		if s < bestShanten || (s == bestShanten && priority > bestPriority) {
			bestShanten = s
			bestPriority = priority
			best = a
		}
	}
	return best
}
