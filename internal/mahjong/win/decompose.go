package win

import (
	"sudooom.mahjong.engine/internal/mahjong/tile"
)

// GroupsNeeded 胡牌共需五組面子（副露佔去相應數量）
const GroupsNeeded = 5

// GroupKind 面子種類
type GroupKind int8

const (
	// Run 順子
	Run GroupKind = iota
	// Triplet 刻子
	Triplet
)

// String 返回面子種類的字符串表示
func (k GroupKind) String() string {
	switch k {
	case Run:
		return "順子"
	case Triplet:
		return "刻子"
	default:
		return "未知"
	}
}

// Group 一組面子（三張）
type Group struct {
	Kind  GroupKind   `json:"kind"`
	Tiles []tile.Tile `json:"tiles"`
}

// First 返回面子的代表牌（刻子的牌種，順子的最小牌）
func (g Group) First() tile.Tile {
	return g.Tiles[0]
}

// Decomposition 手牌拆解結果：面子列表加一對將眼
type Decomposition struct {
	Groups []Group   `json:"groups"`
	Pair   tile.Tile `json:"pair"`
}

// Decompose 嘗試把手牌計數向量拆成 (5 - meldCount) 組面子加一對將。
//
// 回溯算法：先枚舉將眼，再從最小的牌起依次嘗試刻子、順子。
// 返回找到的第一個合法拆解。找不到不是錯誤，第二返回值為 false。
func Decompose(hand tile.Vector, meldCount int) (Decomposition, bool) {
	need := GroupsNeeded - meldCount
	if need < 0 || hand.Total() != need*3+2 {
		return Decomposition{}, false
	}

	for i := 0; i < tile.RankKinds; i++ {
		if hand[i] < 2 {
			continue
		}
		work := hand
		work[i] -= 2

		groups := make([]Group, 0, need)
		if formGroups(&work, need, &groups) {
			pair, _ := tile.FromIndex(i)
			return Decomposition{Groups: groups, Pair: pair}, true
		}
	}
	return Decomposition{}, false
}

// IsWinning 手牌加副露是否構成標準胡牌（五組面子加一對將）
func IsWinning(hand tile.Vector, meldCount int) bool {
	need := GroupsNeeded - meldCount
	if need < 0 || hand.Total() != need*3+2 {
		return false
	}

	for i := 0; i < tile.RankKinds; i++ {
		if hand[i] < 2 {
			continue
		}
		work := hand
		work[i] -= 2
		if canFormGroups(&work, need) {
			return true
		}
	}
	return false
}

// formGroups 把向量拆成恰好 need 組面子，並把面子追加到 acc。
// 成功時恢復向量到進入前的狀態。
func formGroups(h *tile.Vector, need int, acc *[]Group) bool {
	if need == 0 {
		for i := 0; i < tile.RankKinds; i++ {
			if h[i] != 0 {
				return false
			}
		}
		return true
	}

	i := lowestIndex(h)
	if i == -1 {
		return false
	}
	t, _ := tile.FromIndex(i)

	// 刻子
	if h[i] >= 3 {
		h[i] -= 3
		*acc = append(*acc, Group{Kind: Triplet, Tiles: []tile.Tile{t, t, t}})
		if formGroups(h, need-1, acc) {
			h[i] += 3
			return true
		}
		*acc = (*acc)[:len(*acc)-1]
		h[i] += 3
	}

	// 順子（數牌，不跨花色）
	if runnable(i) && h[i+1] > 0 && h[i+2] > 0 {
		t2, _ := tile.FromIndex(i + 1)
		t3, _ := tile.FromIndex(i + 2)
		h[i]--
		h[i+1]--
		h[i+2]--
		*acc = append(*acc, Group{Kind: Run, Tiles: []tile.Tile{t, t2, t3}})
		if formGroups(h, need-1, acc) {
			h[i]++
			h[i+1]++
			h[i+2]++
			return true
		}
		*acc = (*acc)[:len(*acc)-1]
		h[i]++
		h[i+1]++
		h[i+2]++
	}

	return false
}

// canFormGroups 與 formGroups 相同的搜索，只回答能不能
func canFormGroups(h *tile.Vector, need int) bool {
	if need == 0 {
		for i := 0; i < tile.RankKinds; i++ {
			if h[i] != 0 {
				return false
			}
		}
		return true
	}

	i := lowestIndex(h)
	if i == -1 {
		return false
	}

	if h[i] >= 3 {
		h[i] -= 3
		if canFormGroups(h, need-1) {
			h[i] += 3
			return true
		}
		h[i] += 3
	}

	if runnable(i) && h[i+1] > 0 && h[i+2] > 0 {
		h[i]--
		h[i+1]--
		h[i+2]--
		if canFormGroups(h, need-1) {
			h[i]++
			h[i+1]++
			h[i+2]++
			return true
		}
		h[i]++
		h[i+1]++
		h[i+2]++
	}

	return false
}

// lowestIndex 返回向量中最小的非零下標，全空返回 -1
func lowestIndex(h *tile.Vector) int {
	for k := 0; k < tile.RankKinds; k++ {
		if h[k] > 0 {
			return k
		}
	}
	return -1
}

// runnable 下標 i 能否作為順子起點（數牌且同花色內還有兩張）
func runnable(i int) bool {
	return i < 27 && i%9 <= 6
}
