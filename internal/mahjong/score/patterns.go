package score

import (
	"sudooom.mahjong.engine/internal/mahjong/meld"
	"sudooom.mahjong.engine/internal/mahjong/tile"
	"sudooom.mahjong.engine/internal/mahjong/win"
)

// groupView 拆解面子與副露的統一視圖，槓以刻子看待
type groupView struct {
	run bool
	t   tile.Tile // 刻子的牌種或順子的最小牌
}

// collectGroups 合併暗牌拆解的面子與所有副露
func collectGroups(ctx *Context) []groupView {
	groups := make([]groupView, 0, win.GroupsNeeded)
	if ctx.Decomp != nil {
		for _, g := range ctx.Decomp.Groups {
			groups = append(groups, groupView{run: g.Kind == win.Run, t: g.First()})
		}
	}
	for _, m := range ctx.Melds {
		groups = append(groups, groupView{run: m.Kind == meld.Chi, t: m.First()})
	}
	return groups
}

// allTiles 展開手牌（含胡張）與副露的每一張牌，花牌不在其列
func allTiles(ctx *Context) []tile.Tile {
	tiles := ctx.Hand.Tiles()
	if !ctx.WinTile.IsFlower() {
		tiles = append(tiles, ctx.WinTile)
	}
	for _, m := range ctx.Melds {
		tiles = append(tiles, m.Tiles...)
	}
	return tiles
}

// openMeldCount 明副露數（暗槓不算）
func openMeldCount(melds []meld.Meld) int {
	count := 0
	for _, m := range melds {
		if !m.IsConcealed() {
			count++
		}
	}
	return count
}

// countTriplets 統計滿足條件的刻子數
func countTriplets(groups []groupView, pred func(tile.Tile) bool) int {
	count := 0
	for _, g := range groups {
		if !g.run && pred(g.t) {
			count++
		}
	}
	return count
}

// hasTripletOf 是否有指定牌種的刻子
func hasTripletOf(groups []groupView, t tile.Tile) bool {
	for _, g := range groups {
		if !g.run && g.t.Equal(t) {
			return true
		}
	}
	return false
}

// allTripletGroups 所有面子皆為刻子
func allTripletGroups(groups []groupView) bool {
	for _, g := range groups {
		if g.run {
			return false
		}
	}
	return true
}

// concealedTripletCount 統計暗坎數。
//
// 暗牌拆解中的刻子計入，暗槓計入；食胡時由胡張補成的那一組
// 刻子最後一張來自他家，不算暗坎，跳過一組。
func concealedTripletCount(ctx *Context) int {
	count := 0
	if ctx.Decomp != nil {
		winTileUsed := false
		for _, g := range ctx.Decomp.Groups {
			if g.Kind != win.Triplet {
				continue
			}
			if !ctx.Mode.selfDrawLike() && !winTileUsed && g.First().Equal(ctx.WinTile) {
				winTileUsed = true
				continue
			}
			count++
		}
	}
	for _, m := range ctx.Melds {
		if m.Kind == meld.ConcealedKong {
			count++
		}
	}
	return count
}

// allHonors 全部是字牌
func allHonors(tiles []tile.Tile) bool {
	for _, t := range tiles {
		if !t.IsHonor() {
			return false
		}
	}
	return true
}

// pureOneSuit 全部是同一花色的數牌
func pureOneSuit(tiles []tile.Tile) bool {
	if len(tiles) == 0 {
		return false
	}
	suit := tiles[0].Suit
	for _, t := range tiles {
		if !t.IsSuited() || t.Suit != suit {
			return false
		}
	}
	return true
}

// atMostOneSuit 數牌不超過一種花色（字牌不限）
func atMostOneSuit(tiles []tile.Tile) bool {
	var suit tile.Suit = -1
	for _, t := range tiles {
		if !t.IsSuited() {
			continue
		}
		if suit == -1 {
			suit = t.Suit
			continue
		}
		if t.Suit != suit {
			return false
		}
	}
	return true
}

// isPinghu 平胡：門清無副露、五組皆順子、將眼為數牌、
// 全數牌、兩面聽、食胡。
func isPinghu(ctx *Context, groups []groupView, all []tile.Tile) bool {
	if len(ctx.Melds) > 0 || ctx.Mode.selfDrawLike() || !ctx.TwoSidedWait || ctx.Decomp == nil {
		return false
	}
	if len(groups) != win.GroupsNeeded {
		return false
	}
	for _, g := range groups {
		if !g.run {
			return false
		}
	}
	if !ctx.Decomp.Pair.IsSuited() {
		return false
	}
	for _, t := range all {
		if !t.IsSuited() {
			return false
		}
	}
	return true
}
