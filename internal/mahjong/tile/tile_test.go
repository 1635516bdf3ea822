package tile

import "testing"

// TestNewTileValidation 測試牌的構造驗證
func TestNewTileValidation(t *testing.T) {
	cases := []struct {
		name    string
		suit    Suit
		value   int8
		wantErr bool
	}{
		{"一萬", SuitWan, 1, false},
		{"九索", SuitSuo, 9, false},
		{"十筒不存在", SuitTong, 10, true},
		{"零萬不存在", SuitWan, 0, true},
		{"第五風不存在", SuitWind, 5, true},
		{"北風", SuitWind, 4, false},
		{"白板", SuitDragon, 3, false},
		{"第四箭不存在", SuitDragon, 4, true},
		{"竹", SuitFlower, 8, false},
		{"第九花不存在", SuitFlower, 9, true},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := New(c.suit, c.value)
			if c.wantErr && err == nil {
				t.Errorf("期望構造失敗, 實際成功")
			}
			if !c.wantErr && err != nil {
				t.Errorf("期望構造成功, 實際 = %v", err)
			}
		})
	}
}

// TestFullSetComposition 測試全副牌的組成
func TestFullSetComposition(t *testing.T) {
	all := FullSet()

	if len(all) != TotalTiles {
		t.Fatalf("期望全副牌 %d 張, 實際 = %d", TotalTiles, len(all))
	}

	counts := make(map[Tile]int)
	for _, tl := range all {
		counts[tl]++
	}

	// 34 種可組牌各 4 張
	for i := 0; i < RankKinds; i++ {
		tl, err := FromIndex(i)
		if err != nil {
			t.Fatalf("下標 %d 還原失敗: %v", i, err)
		}
		if counts[tl] != CopiesPerRank {
			t.Errorf("期望 %v 有 %d 張, 實際 = %d", tl, CopiesPerRank, counts[tl])
		}
	}

	// 8 張花牌各 1 張
	for v := int8(1); v <= FlowerKinds; v++ {
		f := Flower(v)
		if counts[f] != 1 {
			t.Errorf("期望花牌 %v 有 1 張, 實際 = %d", f, counts[f])
		}
	}
}

// TestIndexRoundTrip 測試下標與牌的互相轉換
func TestIndexRoundTrip(t *testing.T) {
	for i := 0; i < RankKinds; i++ {
		tl, err := FromIndex(i)
		if err != nil {
			t.Fatalf("FromIndex(%d) 失敗: %v", i, err)
		}
		if tl.Index() != i {
			t.Errorf("期望 Index = %d, 實際 = %d (%v)", i, tl.Index(), tl)
		}
	}

	if Flower(1).Index() != -1 {
		t.Errorf("期望花牌 Index = -1, 實際 = %d", Flower(1).Index())
	}

	if _, err := FromIndex(34); err == nil {
		t.Error("期望下標 34 還原失敗")
	}
}

// TestTilePredicates 測試牌的分類判斷
func TestTilePredicates(t *testing.T) {
	if !Wan(5).IsSuited() || Wan(5).IsHonor() || Wan(5).IsFlower() {
		t.Error("五萬應是數牌")
	}
	if !WindEast.IsWind() || !WindEast.IsHonor() || WindEast.IsSuited() {
		t.Error("東風應是風牌和字牌")
	}
	if !DragonRed.IsDragon() || !DragonRed.IsHonor() {
		t.Error("紅中應是箭牌和字牌")
	}
	if !Flower(3).IsFlower() || Flower(3).IsSuited() {
		t.Error("秋應是花牌")
	}
	if !Suo(1).IsTerminal() || !Suo(9).IsTerminal() || Suo(5).IsTerminal() {
		t.Error("么九判斷錯誤")
	}
	if WindNorth.IsTerminal() {
		t.Error("字牌不是么九牌")
	}
}

// TestTileOrdering 測試牌的排序
func TestTileOrdering(t *testing.T) {
	tiles := []Tile{DragonWhite, Suo(3), Wan(9), WindEast, Wan(1), Tong(5)}
	Sort(tiles)

	want := []Tile{Wan(1), Wan(9), Tong(5), Suo(3), WindEast, DragonWhite}
	for i := range want {
		if !tiles[i].Equal(want[i]) {
			t.Fatalf("位置 %d: 期望 %v, 實際 = %v", i, want[i], tiles[i])
		}
	}
}

// TestVectorOperations 測試計數向量的基本操作
func TestVectorOperations(t *testing.T) {
	v, err := VectorOf([]Tile{Wan(1), Wan(1), Wan(2), WindEast})
	if err != nil {
		t.Fatalf("構建向量失敗: %v", err)
	}

	if v.Count(Wan(1)) != 2 {
		t.Errorf("期望一萬 2 張, 實際 = %d", v.Count(Wan(1)))
	}
	if v.Total() != 4 {
		t.Errorf("期望總張數 4, 實際 = %d", v.Total())
	}

	if !v.Remove(WindEast) {
		t.Error("期望移除東風成功")
	}
	if v.Remove(DragonRed) {
		t.Error("期望移除紅中失敗（不存在）")
	}

	v.Add(Suo(9))
	tiles := v.Tiles()
	if len(tiles) != 4 {
		t.Errorf("期望展開 4 張, 實際 = %d", len(tiles))
	}

	// 向量是值類型：賦值後修改互不影響
	w := v
	w.Add(Suo(9))
	if v.Count(Suo(9)) != 1 || w.Count(Suo(9)) != 2 {
		t.Errorf("期望賦值產生獨立副本, 實際 v=%d w=%d", v.Count(Suo(9)), w.Count(Suo(9)))
	}
}

// TestVectorRejectsFlower 測試花牌不能進入向量
func TestVectorRejectsFlower(t *testing.T) {
	_, err := VectorOf([]Tile{Wan(1), Flower(2)})
	if err == nil {
		t.Fatal("期望含花牌時構建失敗")
	}
}

// TestSeatFlowers 測試本位花的歸屬
func TestSeatFlowers(t *testing.T) {
	// 座位0（東）的本位花是春和梅
	east := SeatFlowers(0)
	if !east[0].Equal(Flower(1)) || !east[1].Equal(Flower(5)) {
		t.Errorf("期望東位本位花為春和梅, 實際 = %v", east)
	}

	// 座位3（北）的本位花是冬和竹
	north := SeatFlowers(3)
	if !north[0].Equal(Flower(4)) || !north[1].Equal(Flower(8)) {
		t.Errorf("期望北位本位花為冬和竹, 實際 = %v", north)
	}

	for v := int8(1); v <= 8; v++ {
		owner := FlowerOwner(Flower(v))
		if owner != int((v-1)%4) {
			t.Errorf("花牌 %v: 期望座位 %d, 實際 = %d", Flower(v), (v-1)%4, owner)
		}
	}

	if FlowerOwner(Wan(1)) != -1 {
		t.Error("期望非花牌歸屬 = -1")
	}
}

// TestFlowerGroups 測試花牌分組統計
func TestFlowerGroups(t *testing.T) {
	flowers := []Tile{Flower(1), Flower(2), Flower(3), Flower(4), Flower(5)}

	if CountSeasons(flowers) != 4 {
		t.Errorf("期望四季花 4 張, 實際 = %d", CountSeasons(flowers))
	}
	if CountPlants(flowers) != 1 {
		t.Errorf("期望四君子花 1 張, 實際 = %d", CountPlants(flowers))
	}
	if DistinctFlowers(flowers) != 5 {
		t.Errorf("期望不重複花牌 5 種, 實際 = %d", DistinctFlowers(flowers))
	}
}
