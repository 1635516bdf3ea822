// Package wall 牌牆：洗牌、三段切分與抓牌。
package wall

import (
	"math/rand"

	mjErrors "sudooom.mahjong.engine/internal/mahjong/errors"
	"sudooom.mahjong.engine/internal/mahjong/tile"
)

const (
	// BackCount 槓尾補牌區的張數
	BackCount = 16
	// ReservedCount 鐵八墩張數，整局不得抓取
	ReservedCount = 16
)

// ErrBadDeckSize 牌堆張數不是完整的一副
var ErrBadDeckSize = mjErrors.New("BAD_DECK_SIZE", "牌堆張數不是完整的一副")

// Wall 牌牆，切成可抓區、槓尾與鐵八墩三段
type Wall struct {
	drawable []tile.Tile
	back     []tile.Tile
	reserved []tile.Tile
}

// New 把完整一副牌以注入的隨機源洗勻後切分
func New(rng *rand.Rand) *Wall {
	tiles := tile.FullSet()
	rng.Shuffle(len(tiles), func(i, j int) {
		tiles[i], tiles[j] = tiles[j], tiles[i]
	})
	w, _ := Build(tiles)
	return w
}

// Build 依給定順序切分牌牆，牌堆必須恰好是完整的一副。
// 測試與牌譜回放據此重現任何牌局。
func Build(tiles []tile.Tile) (*Wall, error) {
	if len(tiles) != tile.TotalTiles {
		return nil, ErrBadDeckSize.WithContext("size", len(tiles))
	}

	deck := make([]tile.Tile, len(tiles))
	copy(deck, tiles)

	cut := len(deck) - ReservedCount
	reserved := deck[cut:]
	back := deck[cut-BackCount : cut]
	drawable := deck[:cut-BackCount]

	return &Wall{drawable: drawable, back: back, reserved: reserved}, nil
}

// Draw 從牌牆頭抓一張，牆空時第二返回值為 false
func (w *Wall) Draw() (tile.Tile, bool) {
	if len(w.drawable) == 0 {
		return tile.Tile{}, false
	}
	t := w.drawable[0]
	w.drawable = w.drawable[1:]
	return t, true
}

// DrawReplacement 從槓尾補一張，槓尾空了改抓牌牆頭。
// 兩邊都空時第二返回值為 false。
func (w *Wall) DrawReplacement() (tile.Tile, bool) {
	if len(w.back) == 0 {
		return w.Draw()
	}
	t := w.back[0]
	w.back = w.back[1:]
	return t, true
}

// Remaining 牌牆可抓區剩餘張數
func (w *Wall) Remaining() int {
	return len(w.drawable)
}

// BackRemaining 槓尾剩餘張數
func (w *Wall) BackRemaining() int {
	return len(w.back)
}

// Exhausted 牌牆可抓區是否已空
func (w *Wall) Exhausted() bool {
	return len(w.drawable) == 0
}

// Tiles 返回牆中全部剩餘的牌（含槓尾與鐵八墩），守恆審計用
func (w *Wall) Tiles() []tile.Tile {
	out := make([]tile.Tile, 0, len(w.drawable)+len(w.back)+len(w.reserved))
	out = append(out, w.drawable...)
	out = append(out, w.back...)
	out = append(out, w.reserved...)
	return out
}
