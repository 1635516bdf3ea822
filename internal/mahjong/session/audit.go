package session

import (
	mjErrors "sudooom.mahjong.engine/internal/mahjong/errors"
	"sudooom.mahjong.engine/internal/mahjong/tile"
)

// auditConservation 核對手牌、副露、花區、牌河與牌牆合計恰為完整一副。
// 守恆被破壞代表狀態機有錯，直接 panic 而不是回傳錯誤。
func (s *Session) auditConservation() {
	if !s.audit {
		return
	}

	counts := make(map[tile.Tile]int, tile.RankKinds+tile.FlowerKinds)
	total := 0
	add := func(tiles []tile.Tile) {
		for _, t := range tiles {
			counts[t]++
			total++
		}
	}
	for _, p := range s.state.Players {
		add(p.Hand.Tiles())
		for _, m := range p.Melds {
			add(m.Tiles)
		}
		add(p.Flowers)
	}
	add(s.state.DiscardPool)
	add(s.state.Wall.Tiles())

	if total != tile.TotalTiles {
		panic(mjErrors.New(CodeInvariantViolation, "全桌牌張總數不對").
			WithContext("expected", tile.TotalTiles).
			WithContext("actual", total))
	}
	for _, t := range tile.FullSet() {
		counts[t]--
	}
	for t, n := range counts {
		if n != 0 {
			panic(mjErrors.New(CodeInvariantViolation, "牌張守恆被破壞").
				WithContext("tile", t.String()).
				WithContext("delta", n))
		}
	}
}
