package win

import (
	"sudooom.mahjong.engine/internal/mahjong/tile"
)

// Kind 胡牌型態
type Kind int8

const (
	// None 未胡
	None Kind = iota
	// Standard 標準胡牌（五組面子加一對將）
	Standard
	// EightFlowers 八仙過海（集滿八張花牌）
	EightFlowers
	// SevenFlowers 七搶一（七張花牌搶走他人補出的第八張）
	SevenFlowers
)

// String 返回胡牌型態的字符串表示
func (k Kind) String() string {
	switch k {
	case Standard:
		return "標準胡牌"
	case EightFlowers:
		return "八仙過海"
	case SevenFlowers:
		return "七搶一"
	default:
		return "未胡"
	}
}

// HasEightFlowers 花牌是否集滿八張（含剛補到的一張）
func HasEightFlowers(flowers []tile.Tile, incoming tile.Tile) bool {
	n := len(flowers)
	if incoming.IsFlower() {
		n++
	}
	return n >= tile.FlowerKinds
}

// CanStealSeventh 持七張花牌者能否搶走他人補出的第八張
func CanStealSeventh(flowers []tile.Tile, stolen tile.Tile) bool {
	return len(flowers) == tile.FlowerKinds-1 && stolen.IsFlower()
}

// Evaluate 判定胡牌型態。
//
// hand 為未含 winTile 的暗牌計數向量，meldCount 為副露數，
// flowers 為已補到的花牌，winTile 為促成胡牌的那張牌。
// flowerSteal 為真時走七搶一路徑，只檢查搶花條件。
func Evaluate(hand tile.Vector, meldCount int, flowers []tile.Tile, winTile tile.Tile, flowerSteal bool) Kind {
	if flowerSteal {
		if CanStealSeventh(flowers, winTile) {
			return SevenFlowers
		}
		return None
	}

	if HasEightFlowers(flowers, winTile) {
		return EightFlowers
	}

	if winTile.IsFlower() {
		return None
	}

	full := hand
	full.Add(winTile)
	if IsWinning(full, meldCount) {
		return Standard
	}
	return None
}
