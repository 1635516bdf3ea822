package ai

import (
	"testing"

	"sudooom.mahjong.engine/internal/mahjong/session"
	"sudooom.mahjong.engine/internal/mahjong/tile"
)

func handOf(t *testing.T, tiles ...tile.Tile) tile.Vector {
	t.Helper()
	v, err := tile.VectorOf(tiles)
	if err != nil {
		t.Fatalf("組手牌失敗: %v", err)
	}
	return v
}

func stateWith(seat int, hand tile.Vector) *session.GameState {
	gs := &session.GameState{}
	for i := 0; i < 4; i++ {
		gs.Players[i] = &session.PlayerState{Seat: i}
	}
	gs.Players[seat].Hand = hand
	return gs
}

func choose(t *testing.T, gs *session.GameState, seat int, legal []session.Action) session.Action {
	t.Helper()
	a, err := NewGreedy().ChooseAction(gs, seat, legal)
	if err != nil {
		t.Fatalf("決策失敗: %v", err)
	}
	return a
}

func TestGreedyAlwaysTakesWin(t *testing.T) {
	gs := stateWith(1, tile.Vector{})
	legal := []session.Action{
		{Type: session.ActionPass, Seat: 1},
		{Type: session.ActionPong, Seat: 1, Tile: tile.Wan(5)},
		{Type: session.ActionWin, Seat: 1, Tile: tile.Wan(5)},
	}
	if got := choose(t, gs, 1, legal); got.Type != session.ActionWin {
		t.Fatalf("有胡不胡: %v", got)
	}
}

func TestGreedyDiscardKeepsTenpai(t *testing.T) {
	// 打掉西風即聽牌，打任何搭子都退向聽
	hand := handOf(t,
		tile.Wan(1), tile.Wan(2), tile.Wan(3),
		tile.Wan(4), tile.Wan(5), tile.Wan(6),
		tile.Wan(7), tile.Wan(8), tile.Wan(9),
		tile.Suo(1), tile.Suo(2), tile.Suo(3),
		tile.Suo(9), tile.Suo(9),
		tile.Tong(2), tile.Tong(3),
		tile.WindWest,
	)
	gs := stateWith(0, hand)

	var legal []session.Action
	for _, dt := range hand.Tiles() {
		legal = append(legal, session.Action{Type: session.ActionDiscard, Seat: 0, Tile: dt})
	}

	got := choose(t, gs, 0, legal)
	if got.Type != session.ActionDiscard || !got.Tile.Equal(tile.WindWest) {
		t.Fatalf("期望打出 %s，實際 %v %v", tile.WindWest, got.Type, got.Tile)
	}
}

func TestGreedyDiscardTiebreakPrefersHonor(t *testing.T) {
	// 西風、九筒、一索都是孤張，向聽相同，先打字牌
	hand := handOf(t,
		tile.Wan(1), tile.Wan(2), tile.Wan(3),
		tile.Wan(4), tile.Wan(5), tile.Wan(6),
		tile.Wan(7), tile.Wan(8), tile.Wan(9),
		tile.Suo(4), tile.Suo(5), tile.Suo(6),
		tile.Suo(9), tile.Suo(9),
		tile.Tong(9), tile.Suo(1), tile.WindWest,
	)
	gs := stateWith(0, hand)

	var legal []session.Action
	for _, dt := range hand.Tiles() {
		legal = append(legal, session.Action{Type: session.ActionDiscard, Seat: 0, Tile: dt})
	}

	got := choose(t, gs, 0, legal)
	if !got.Tile.Equal(tile.WindWest) {
		t.Fatalf("同向聽期望先打孤張字牌，實際 %v", got.Tile)
	}
}

func TestGreedyPongOnlyWhenShantenDrops(t *testing.T) {
	t.Run("降向聽就碰", func(t *testing.T) {
		hand := handOf(t,
			tile.Wan(1), tile.Wan(2), tile.Wan(3),
			tile.Wan(4), tile.Wan(5), tile.Wan(6),
			tile.Wan(7), tile.Wan(8), tile.Wan(9),
			tile.Suo(1), tile.Suo(2), tile.Suo(3),
			tile.WindWest, tile.WindWest,
			tile.Tong(1), tile.Tong(5),
		)
		gs := stateWith(2, hand)
		legal := []session.Action{
			{Type: session.ActionPong, Seat: 2, Tile: tile.WindWest},
			{Type: session.ActionPass, Seat: 2},
		}
		if got := choose(t, gs, 2, legal); got.Type != session.ActionPong {
			t.Fatalf("碰了直接聽牌卻不碰: %v", got)
		}
	})

	t.Run("不降向聽就過", func(t *testing.T) {
		// 已經聽牌，碰掉二索還是聽牌，沒有進步就不動副露
		hand := handOf(t,
			tile.Wan(1), tile.Wan(2), tile.Wan(3),
			tile.Wan(4), tile.Wan(5), tile.Wan(6),
			tile.Wan(7), tile.Wan(8), tile.Wan(9),
			tile.Suo(2), tile.Suo(2), tile.Suo(3),
			tile.Suo(3), tile.Suo(4), tile.Suo(4),
			tile.Tong(9),
		)
		gs := stateWith(2, hand)
		legal := []session.Action{
			{Type: session.ActionPong, Seat: 2, Tile: tile.Suo(2)},
			{Type: session.ActionPass, Seat: 2},
		}
		if got := choose(t, gs, 2, legal); got.Type != session.ActionPass {
			t.Fatalf("碰了退向聽還碰: %v", got)
		}
	})
}

func TestGreedyChiWhenShantenDrops(t *testing.T) {
	hand := handOf(t,
		tile.Wan(1), tile.Wan(2), tile.Wan(3),
		tile.Wan(4), tile.Wan(5), tile.Wan(6),
		tile.Wan(7), tile.Wan(8), tile.Wan(9),
		tile.Tong(4), tile.Tong(5),
		tile.Suo(9), tile.Suo(9),
		tile.Suo(1), tile.Suo(7), tile.WindWest,
	)
	gs := stateWith(1, hand)
	legal := []session.Action{
		{Type: session.ActionChi, Seat: 1, Tile: tile.Tong(3),
			Combo: []tile.Tile{tile.Tong(3), tile.Tong(4), tile.Tong(5)}},
		{Type: session.ActionPass, Seat: 1},
	}
	if got := choose(t, gs, 1, legal); got.Type != session.ActionChi {
		t.Fatalf("吃了降向聽卻不吃: %v", got)
	}
}

func TestGreedyKongBeforePass(t *testing.T) {
	hand := handOf(t, tile.Wan(7), tile.Wan(7), tile.Wan(7))
	gs := stateWith(3, hand)
	legal := []session.Action{
		{Type: session.ActionPass, Seat: 3},
		{Type: session.ActionOpenKong, Seat: 3, Tile: tile.Wan(7)},
	}
	if got := choose(t, gs, 3, legal); got.Type != session.ActionOpenKong {
		t.Fatalf("可槓不槓: %v", got)
	}
}

func TestGreedyDrawWhenNothingElse(t *testing.T) {
	gs := stateWith(0, tile.Vector{})
	legal := []session.Action{{Type: session.ActionDraw, Seat: 0}}
	if got := choose(t, gs, 0, legal); got.Type != session.ActionDraw {
		t.Fatalf("該摸不摸: %v", got)
	}
}

func TestGreedyRejectsEmptyActionList(t *testing.T) {
	gs := stateWith(0, tile.Vector{})
	if _, err := NewGreedy().ChooseAction(gs, 0, nil); err == nil {
		t.Fatalf("空動作列表應該回錯誤")
	}
}
