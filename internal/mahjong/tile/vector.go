package tile

// Vector 計數向量：34 種可組牌各自的張數，下標見 Tile.Index。
// 值類型，賦值即複製，回溯分支間不共享狀態。
type Vector [RankKinds]uint8

// VectorOf 由牌列表構建計數向量。列表中不允許出現花牌。
func VectorOf(tiles []Tile) (Vector, error) {
	var v Vector
	for _, t := range tiles {
		idx := t.Index()
		if idx < 0 {
			return Vector{}, ErrFlowerInVector.WithContext("tile", t.String())
		}
		v[idx]++
	}
	return v, nil
}

// Add 加入一張牌。花牌被忽略。
func (v *Vector) Add(t Tile) {
	if idx := t.Index(); idx >= 0 {
		v[idx]++
	}
}

// Remove 移除一張牌。返回是否移除成功。
func (v *Vector) Remove(t Tile) bool {
	idx := t.Index()
	if idx < 0 || v[idx] == 0 {
		return false
	}
	v[idx]--
	return true
}

// Count 返回指定牌的張數
func (v Vector) Count(t Tile) int {
	if idx := t.Index(); idx >= 0 {
		return int(v[idx])
	}
	return 0
}

// Total 返回向量中的總張數
func (v Vector) Total() int {
	total := 0
	for i := 0; i < RankKinds; i++ {
		total += int(v[i])
	}
	return total
}

// Tiles 展開為排好序的牌列表
func (v Vector) Tiles() []Tile {
	tiles := make([]Tile, 0, v.Total())
	for i := 0; i < RankKinds; i++ {
		t, _ := FromIndex(i)
		for c := uint8(0); c < v[i]; c++ {
			tiles = append(tiles, t)
		}
	}
	return tiles
}
