package meld

import (
	"sudooom.mahjong.engine/internal/mahjong/tile"
)

// Kind 副露/槓的種類
type Kind int8

const (
	// Chi 吃（順子，只能吃上家）
	Chi Kind = iota
	// Pong 碰（明刻）
	Pong
	// OpenKong 明槓（碰三張手牌加別家打出的一張）
	OpenKong
	// AddedKong 加槓（已有明刻再從手中加一張）
	AddedKong
	// ConcealedKong 暗槓（手中四張自行宣告）
	ConcealedKong
)

// String 返回種類的字符串表示
func (k Kind) String() string {
	switch k {
	case Chi:
		return "吃"
	case Pong:
		return "碰"
	case OpenKong:
		return "明槓"
	case AddedKong:
		return "加槓"
	case ConcealedKong:
		return "暗槓"
	default:
		return "未知"
	}
}

// NoClaimSource 表示副露不來自任何人的棄牌（暗槓）
const NoClaimSource = -1

// Meld 副露（一組完成的面子，形成後不可變，碰升級加槓除外）
type Meld struct {
	Kind  Kind        `json:"kind"`
	Tiles []tile.Tile `json:"tiles"`
	// From 被取走棄牌的座位，暗槓為 NoClaimSource
	From int `json:"from"`
}

// NewChi 創建吃副露。combo 是完整的三張順子（含棄牌）。
func NewChi(combo []tile.Tile, from int) (Meld, error) {
	if !isSequence(combo) {
		return Meld{}, ErrInvalidSequence.WithContext("combo", combo)
	}
	tiles := make([]tile.Tile, len(combo))
	copy(tiles, combo)
	tile.Sort(tiles)
	return Meld{Kind: Chi, Tiles: tiles, From: from}, nil
}

// NewPong 創建碰副露
func NewPong(t tile.Tile, from int) Meld {
	return Meld{Kind: Pong, Tiles: []tile.Tile{t, t, t}, From: from}
}

// NewOpenKong 創建明槓副露
func NewOpenKong(t tile.Tile, from int) Meld {
	return Meld{Kind: OpenKong, Tiles: []tile.Tile{t, t, t, t}, From: from}
}

// NewConcealedKong 創建暗槓
func NewConcealedKong(t tile.Tile) Meld {
	return Meld{Kind: ConcealedKong, Tiles: []tile.Tile{t, t, t, t}, From: NoClaimSource}
}

// UpgradeToAddedKong 將碰升級為加槓。只有同一張牌的碰可以升級。
func (m *Meld) UpgradeToAddedKong(t tile.Tile) error {
	if m.Kind != Pong {
		return ErrNotPongMeld.WithContext("kind", m.Kind.String())
	}
	if !m.Tiles[0].Equal(t) {
		return ErrTileMismatch.WithContext("meld", m.Tiles[0].String()).WithContext("tile", t.String())
	}
	m.Kind = AddedKong
	m.Tiles = append(m.Tiles, t)
	return nil
}

// First 返回副露的代表牌（刻槓的牌種，順子的最小牌）
func (m Meld) First() tile.Tile {
	return m.Tiles[0]
}

// IsKong 是否是槓（明槓、加槓或暗槓）
func (m Meld) IsKong() bool {
	return m.Kind == OpenKong || m.Kind == AddedKong || m.Kind == ConcealedKong
}

// IsConcealed 是否是不露牌的副露（只有暗槓）
func (m Meld) IsConcealed() bool {
	return m.Kind == ConcealedKong
}

// IsTriplet 副露是否算刻子面子（碰和所有槓，吃除外）
func (m Meld) IsTriplet() bool {
	return m.Kind != Chi
}

// isSequence 判斷三張牌是否是同花色連續順子
func isSequence(tiles []tile.Tile) bool {
	if len(tiles) != 3 {
		return false
	}
	sorted := make([]tile.Tile, 3)
	copy(sorted, tiles)
	tile.Sort(sorted)

	if !sorted[0].IsSuited() {
		return false
	}
	if sorted[0].Suit != sorted[1].Suit || sorted[1].Suit != sorted[2].Suit {
		return false
	}
	return sorted[0].Value+1 == sorted[1].Value && sorted[1].Value+1 == sorted[2].Value
}
