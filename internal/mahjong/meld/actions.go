package meld

import (
	"sudooom.mahjong.engine/internal/mahjong/tile"
)

// 吃碰槓的合法性檢查。所有檢查只讀手牌計數向量，不改動任何狀態。

// ChiCombos 枚舉所有能用棄牌組成的順子。
// 棄牌可以作為順子的低位、中位或高位，每個合法位置產生一組完整三張。
func ChiCombos(hand tile.Vector, discard tile.Tile) [][]tile.Tile {
	if !discard.IsSuited() {
		return nil
	}

	var combos [][]tile.Tile
	for offset := int8(0); offset < 3; offset++ {
		low := discard.Value - offset
		if low < 1 || low+2 > 9 {
			continue
		}

		ok := true
		combo := make([]tile.Tile, 0, 3)
		for i := int8(0); i < 3; i++ {
			t := tile.Tile{Suit: discard.Suit, Value: low + i}
			combo = append(combo, t)
			if t.Equal(discard) {
				continue
			}
			if hand.Count(t) < 1 {
				ok = false
				break
			}
		}
		if ok {
			combos = append(combos, combo)
		}
	}
	return combos
}

// CanChi 手牌是否能吃這張棄牌
func CanChi(hand tile.Vector, discard tile.Tile) bool {
	return len(ChiCombos(hand, discard)) > 0
}

// CanPong 手牌是否能碰（手中至少兩張同牌）
func CanPong(hand tile.Vector, discard tile.Tile) bool {
	return hand.Count(discard) >= 2
}

// CanOpenKong 手牌是否能明槓（手中至少三張同牌）
func CanOpenKong(hand tile.Vector, discard tile.Tile) bool {
	return hand.Count(discard) >= 3
}

// CanAddedKong 是否能加槓（已有同牌的碰副露）
func CanAddedKong(melds []Meld, t tile.Tile) bool {
	for _, m := range melds {
		if m.Kind == Pong && m.First().Equal(t) {
			return true
		}
	}
	return false
}

// CanConcealedKong 是否能暗槓（手中四張同牌，只能在自己回合宣告）
func CanConcealedKong(hand tile.Vector, t tile.Tile) bool {
	return hand.Count(t) >= 4
}
