package tile

// 花牌分組：春夏秋冬為四季花（1-4），梅蘭菊竹為四君子花（5-8）。
// 座位 i（0東 1南 2西 3北）的本位花是第 i+1 張四季花和第 i+5 張四君子花。

// IsSeasonFlower 是否是四季花（春夏秋冬）
func (t Tile) IsSeasonFlower() bool {
	return t.Suit == SuitFlower && t.Value >= 1 && t.Value <= 4
}

// IsPlantFlower 是否是四君子花（梅蘭菊竹）
func (t Tile) IsPlantFlower() bool {
	return t.Suit == SuitFlower && t.Value >= 5 && t.Value <= 8
}

// SeatFlowers 返回指定座位的兩張本位花（一季一花）
func SeatFlowers(seat int) [2]Tile {
	return [2]Tile{
		{Suit: SuitFlower, Value: int8(seat + 1)},
		{Suit: SuitFlower, Value: int8(seat + 5)},
	}
}

// FlowerOwner 返回花牌所屬座位（0-3）。非花牌返回 -1。
func FlowerOwner(t Tile) int {
	if !t.IsFlower() {
		return -1
	}
	return (int(t.Value) - 1) % 4
}

// CountSeasons 統計列表中的四季花張數
func CountSeasons(flowers []Tile) int {
	count := 0
	for _, f := range flowers {
		if f.IsSeasonFlower() {
			count++
		}
	}
	return count
}

// CountPlants 統計列表中的四君子花張數
func CountPlants(flowers []Tile) int {
	count := 0
	for _, f := range flowers {
		if f.IsPlantFlower() {
			count++
		}
	}
	return count
}

// DistinctFlowers 統計列表中不重複的花牌種數
func DistinctFlowers(flowers []Tile) int {
	var seen [FlowerKinds]bool
	count := 0
	for _, f := range flowers {
		if !f.IsFlower() {
			continue
		}
		if !seen[f.Value-1] {
			seen[f.Value-1] = true
			count++
		}
	}
	return count
}
