// Package view 座位視角的狀態快照：蓋住別家暗牌，只露張數。
//
// 快照與原狀態完全脫鉤，產生後引擎再怎麼動都不影響已給出的快照。
package view

import (
	"sudooom.mahjong.engine/internal/mahjong/meld"
	"sudooom.mahjong.engine/internal/mahjong/session"
	"sudooom.mahjong.engine/internal/mahjong/tile"
)

// PlayerView 一家在快照中的樣子。Hand 只在本家或全開模式下出現。
type PlayerView struct {
	Seat      int         `json:"seat"`
	Hand      []tile.Tile `json:"hand,omitempty"`
	HandCount int         `json:"handCount"`
	Melds     []meld.Meld `json:"melds"`
	Flowers   []tile.Tile `json:"flowers"`
	Discards  []tile.Tile `json:"discards"`
	IsDealer  bool        `json:"isDealer"`
}

// Snapshot 單局狀態在某一座位眼中的樣子
type Snapshot struct {
	Players       [4]PlayerView `json:"players"`
	DiscardPool   []tile.Tile   `json:"discardPool"`
	CurrentSeat   int           `json:"currentSeat"`
	RoundWind     int           `json:"roundWind"`
	HandNumber    int           `json:"handNumber"`
	DealerSeat    int           `json:"dealerSeat"`
	DealerStreak  int           `json:"dealerStreak"`
	WallRemaining int           `json:"wallRemaining"` // 牌牆與槓尾合計
	LastDiscard   tile.Tile     `json:"lastDiscard"`
	Phase         string        `json:"phase"`
}

// ForSeat 以 viewer 的視角產生快照，別家暗牌只露張數。
func ForSeat(gs *session.GameState, viewer int) Snapshot {
	return build(gs, viewer, false)
}

// RevealAll 全開視角，觀戰與回放用。
func RevealAll(gs *session.GameState) Snapshot {
	return build(gs, -1, true)
}

func build(gs *session.GameState, viewer int, reveal bool) Snapshot {
	snap := Snapshot{
		DiscardPool:  copyTiles(gs.DiscardPool),
		CurrentSeat:  gs.CurrentSeat,
		RoundWind:    gs.RoundWind,
		HandNumber:   gs.HandNumber,
		DealerSeat:   gs.DealerSeat,
		DealerStreak: gs.DealerStreak,
		LastDiscard:  gs.LastDiscard,
		Phase:        gs.Phase.String(),
	}
	if gs.Wall != nil {
		snap.WallRemaining = gs.Wall.Remaining() + gs.Wall.BackRemaining()
	}

	for i, p := range gs.Players {
		pv := PlayerView{
			Seat:      p.Seat,
			HandCount: p.HandSize(),
			Melds:     copyMelds(p.Melds),
			Flowers:   copyTiles(p.Flowers),
			Discards:  copyTiles(p.Discards),
			IsDealer:  p.IsDealer,
		}
		if reveal || p.Seat == viewer {
			pv.Hand = p.Hand.Tiles()
		}
		snap.Players[i] = pv
	}
	return snap
}

func copyTiles(tiles []tile.Tile) []tile.Tile {
	out := make([]tile.Tile, len(tiles))
	copy(out, tiles)
	return out
}

func copyMelds(melds []meld.Meld) []meld.Meld {
	out := make([]meld.Meld, len(melds))
	for i, m := range melds {
		tiles := make([]tile.Tile, len(m.Tiles))
		copy(tiles, m.Tiles)
		out[i] = meld.Meld{Kind: m.Kind, Tiles: tiles, From: m.From}
	}
	return out
}
