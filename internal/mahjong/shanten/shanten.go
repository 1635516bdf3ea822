// Package shanten 計算向聽數：手牌距離聽牌還差幾步有效進張。
package shanten

import (
	"sudooom.mahjong.engine/internal/mahjong/tile"
	"sudooom.mahjong.engine/internal/mahjong/win"
)

// Shanten 計算向聽數。0 表示聽牌，-1 表示已是胡牌形。
//
// hand 為暗牌計數向量，meldCount 為已副露的面子數。
// 搜索窮舉刻子、順子、將眼與搭子的取法，對每個部分結構套用
// 公式 2*(缺面子數) - min(搭子數, 缺面子數) - 將眼，取全局最小值。
func Shanten(hand tile.Vector, meldCount int) int {
	setsNeeded := win.GroupsNeeded - meldCount
	if setsNeeded < 0 {
		setsNeeded = 0
	}

	s := searcher{
		hand:       hand,
		setsNeeded: setsNeeded,
		best:       2 * setsNeeded,
	}
	s.search(0, 0, 0, false)
	return s.best
}

// WaitingTiles 返回聽牌時的所有有效胡張，按牌序排列。
// 非聽牌狀態返回 nil。
func WaitingTiles(hand tile.Vector, meldCount int) []tile.Tile {
	if Shanten(hand, meldCount) != 0 {
		return nil
	}

	var waits []tile.Tile
	for i := 0; i < tile.RankKinds; i++ {
		if hand[i] >= tile.CopiesPerRank {
			continue
		}
		work := hand
		work[i]++
		if win.IsWinning(work, meldCount) {
			t, _ := tile.FromIndex(i)
			waits = append(waits, t)
		}
	}
	return waits
}

type searcher struct {
	hand       tile.Vector
	setsNeeded int
	best       int
}

// evaluate 對當前部分結構計算向聽數
func (s *searcher) evaluate(mentsu, taatsu int, hasJantou bool) int {
	need := s.setsNeeded - mentsu
	if need < 0 {
		need = 0
	}
	partial := taatsu
	if partial > need {
		partial = need
	}
	v := 2*need - partial
	if hasJantou {
		v--
	}
	return v
}

func (s *searcher) search(idx, mentsu, taatsu int, hasJantou bool) {
	if cur := s.evaluate(mentsu, taatsu, hasJantou); cur < s.best {
		s.best = cur
	}
	if s.best <= -1 {
		return
	}

	for idx < tile.RankKinds && s.hand[idx] == 0 {
		idx++
	}
	if idx == tile.RankKinds {
		return
	}

	// 刻子
	if s.hand[idx] >= 3 && mentsu < s.setsNeeded {
		s.hand[idx] -= 3
		s.search(idx, mentsu+1, taatsu, hasJantou)
		s.hand[idx] += 3
	}

	// 順子（數牌，不跨花色）
	if idx < 27 && idx%9 <= 6 && s.hand[idx+1] > 0 && s.hand[idx+2] > 0 && mentsu < s.setsNeeded {
		s.hand[idx]--
		s.hand[idx+1]--
		s.hand[idx+2]--
		s.search(idx, mentsu+1, taatsu, hasJantou)
		s.hand[idx]++
		s.hand[idx+1]++
		s.hand[idx+2]++
	}

	// 將眼
	if s.hand[idx] >= 2 && !hasJantou {
		s.hand[idx] -= 2
		s.search(idx, mentsu, taatsu, true)
		s.hand[idx] += 2
	}

	// 對子作搭子（將眼已定之後）
	if s.hand[idx] >= 2 && hasJantou && mentsu+taatsu < s.setsNeeded {
		s.hand[idx] -= 2
		s.search(idx, mentsu, taatsu+1, hasJantou)
		s.hand[idx] += 2
	}

	// 兩面、嵌張搭子
	if idx < 27 && mentsu+taatsu < s.setsNeeded {
		for _, dv := range []int{1, 2} {
			if idx%9+dv > 8 {
				continue
			}
			if s.hand[idx+dv] == 0 {
				continue
			}
			s.hand[idx]--
			s.hand[idx+dv]--
			s.search(idx, mentsu, taatsu+1, hasJantou)
			s.hand[idx]++
			s.hand[idx+dv]++
		}
	}

	// 棄用此牌
	count := s.hand[idx]
	s.hand[idx] = 0
	s.search(idx+1, mentsu, taatsu, hasJantou)
	s.hand[idx] = count
}
