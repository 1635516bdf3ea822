package score

import (
	"testing"

	"sudooom.mahjong.engine/internal/mahjong/meld"
	"sudooom.mahjong.engine/internal/mahjong/tile"
	"sudooom.mahjong.engine/internal/mahjong/win"
)

// handOf 把牌列表轉成計數向量
func handOf(t *testing.T, tiles ...tile.Tile) tile.Vector {
	t.Helper()
	v, err := tile.VectorOf(tiles)
	if err != nil {
		t.Fatalf("建立手牌向量失敗: %v", err)
	}
	return v
}

// decompose 對手牌加胡張做拆解，失敗直接讓測試失敗
func decompose(t *testing.T, hand tile.Vector, winTile tile.Tile, meldCount int) *win.Decomposition {
	t.Helper()
	full := hand
	full.Add(winTile)
	dec, ok := win.Decompose(full, meldCount)
	if !ok {
		t.Fatalf("期望手牌可拆解，實際失敗: %v + %v", hand, winTile)
	}
	return &dec
}

// hasPattern 結果中是否含指定名堂
func hasPattern(res *Result, name string) bool {
	for _, p := range res.Patterns {
		if p.Name == name {
			return true
		}
	}
	return false
}

// paymentsBalance 支付表收支是否平衡
func paymentsBalance(res *Result) bool {
	sum := 0
	for _, v := range res.Payments {
		sum += v
	}
	return sum == 0
}

// fourTripletHand 三組萬刻、一組筒刻、一對索將，聽索刻的第三張
func fourTripletHand(t *testing.T) tile.Vector {
	t.Helper()
	return handOf(t,
		tile.Wan(1), tile.Wan(1), tile.Wan(1),
		tile.Wan(3), tile.Wan(3), tile.Wan(3),
		tile.Wan(5), tile.Wan(5), tile.Wan(5),
		tile.Tong(7), tile.Tong(7), tile.Tong(7),
		tile.Suo(9), tile.Suo(9),
		tile.Suo(2), tile.Suo(2),
	)
}

// TestFourConcealedTripletsOnDiscard 測試食胡補成第五刻時的四暗坎判定
func TestFourConcealedTripletsOnDiscard(t *testing.T) {
	hand := fourTripletHand(t)
	winTile := tile.Suo(9)

	ctx := &Context{
		WinnerSeat:    1,
		DealerSeat:    0,
		RoundWind:     tile.Winds[0],
		Hand:          hand,
		WinTile:       winTile,
		Mode:          WinModeDiscard,
		Decomp:        decompose(t, hand, winTile, 0),
		DiscarderSeat: 2,
	}
	res := Calculate(ctx)

	if !hasPattern(res, "四暗坎") {
		t.Error("期望列出四暗坎，實際未列")
	}
	if hasPattern(res, "三暗坎") {
		t.Error("四暗坎成立時不應另列三暗坎")
	}
	if hasPattern(res, "對對胡") {
		t.Error("四暗坎成立時不應另列對對胡")
	}
	if !hasPattern(res, "門清") {
		t.Error("期望列出門清，實際未列")
	}
	if res.Subtotal != 6 {
		t.Errorf("期望小計 6 台，實際 %d", res.Subtotal)
	}
	if res.Payments[2] != 6 || res.Payments[0] != 0 || res.Payments[3] != 0 {
		t.Errorf("期望放槍者付全額其他家不付，實際 %v", res.Payments)
	}
	if !paymentsBalance(res) {
		t.Errorf("支付表收支不平衡: %v", res.Payments)
	}
}

// TestFiveConcealedTripletsOnSelfDraw 測試自摸成五暗坎的涵蓋剔除
func TestFiveConcealedTripletsOnSelfDraw(t *testing.T) {
	hand := fourTripletHand(t)
	winTile := tile.Suo(9)

	ctx := &Context{
		WinnerSeat:    1,
		DealerSeat:    0,
		RoundWind:     tile.Winds[0],
		Hand:          hand,
		WinTile:       winTile,
		Mode:          WinModeSelfDraw,
		Decomp:        decompose(t, hand, winTile, 0),
		DiscarderSeat: NoDiscarder,
	}
	res := Calculate(ctx)

	for _, name := range []string{"四暗坎", "三暗坎", "對對胡", "門清", "自摸"} {
		if hasPattern(res, name) {
			t.Errorf("五暗坎與不求成立時不應另列 %s", name)
		}
	}
	if !hasPattern(res, "五暗坎") || !hasPattern(res, "不求") {
		t.Errorf("期望列出五暗坎與不求，實際 %v", res.Patterns)
	}
	if res.Subtotal != 10 {
		t.Errorf("期望小計 10 台，實際 %d", res.Subtotal)
	}
	for seat := 0; seat < 4; seat++ {
		if seat == ctx.WinnerSeat {
			continue
		}
		if res.Payments[seat] != 10 {
			t.Errorf("期望座位 %d 付 10，實際 %d", seat, res.Payments[seat])
		}
	}
}

// TestConcealedTripletTaiValues 測試暗坎名堂的採計台數。
//
// 五暗坎與四暗坎在不同牌例表分別記 8/16 台與 5/8 台，
// 此處採 8 台與 5 台，另一記法僅列對照。
func TestConcealedTripletTaiValues(t *testing.T) {
	tests := []struct {
		name      string
		mode      WinMode
		discarder int
		tai       int
		altTai    int // 另一表的記法，不採計
	}{
		{name: "五暗坎", mode: WinModeSelfDraw, discarder: NoDiscarder, tai: 8, altTai: 16},
		{name: "四暗坎", mode: WinModeDiscard, discarder: 2, tai: 5, altTai: 8},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			hand := fourTripletHand(t)
			winTile := tile.Suo(9)
			ctx := &Context{
				WinnerSeat:    1,
				DealerSeat:    0,
				RoundWind:     tile.Winds[0],
				Hand:          hand,
				WinTile:       winTile,
				Mode:          tc.mode,
				Decomp:        decompose(t, hand, winTile, 0),
				DiscarderSeat: tc.discarder,
			}
			res := Calculate(ctx)

			found := false
			for _, p := range res.Patterns {
				if p.Name == tc.name {
					found = true
					if p.Tai != tc.tai {
						t.Errorf("%s 期望採計 %d 台（另一記法 %d 台不採），實際 %d",
							tc.name, tc.tai, tc.altTai, p.Tai)
					}
				}
			}
			if !found {
				t.Fatalf("期望列出 %s，實際 %v", tc.name, res.Patterns)
			}
		})
	}
}

// TestThreeSuitRunHandSelfDrawOnPair 測試跨三色的全順手牌自摸將眼
func TestThreeSuitRunHandSelfDrawOnPair(t *testing.T) {
	// 123456789萬 + 123456筒 + 9索，摸進第二張九索補將
	hand := handOf(t,
		tile.Wan(1), tile.Wan(2), tile.Wan(3),
		tile.Wan(4), tile.Wan(5), tile.Wan(6),
		tile.Wan(7), tile.Wan(8), tile.Wan(9),
		tile.Tong(1), tile.Tong(2), tile.Tong(3),
		tile.Tong(4), tile.Tong(5), tile.Tong(6),
		tile.Suo(9),
	)
	winTile := tile.Suo(9)
	dec := decompose(t, hand, winTile, 0)

	if len(dec.Groups) != 5 {
		t.Fatalf("期望 5 組面子，實際 %d", len(dec.Groups))
	}
	for _, g := range dec.Groups {
		if g.Kind != win.Run {
			t.Errorf("全順手牌不該拆出刻子，實際 %v", g)
		}
	}
	if !dec.Pair.Equal(tile.Suo(9)) {
		t.Errorf("期望將眼為九索，實際 %v", dec.Pair)
	}

	ctx := &Context{
		WinnerSeat:    2,
		DealerSeat:    0,
		RoundWind:     tile.Winds[0],
		Hand:          hand,
		WinTile:       winTile,
		Mode:          WinModeSelfDraw,
		Decomp:        dec,
		DiscarderSeat: NoDiscarder,
	}
	res := Calculate(ctx)

	if !hasPattern(res, "不求") {
		t.Errorf("門清自摸期望列出不求，實際 %v", res.Patterns)
	}
	if hasPattern(res, "門清") || hasPattern(res, "自摸") {
		t.Errorf("不求成立時不應另列門清或自摸，實際 %v", res.Patterns)
	}
	if hasPattern(res, "平胡") {
		t.Error("自摸單吊不應列平胡")
	}
	if res.Subtotal != 2 {
		t.Errorf("期望小計 2 台，實際 %d", res.Subtotal)
	}
	for seat := 0; seat < 4; seat++ {
		if seat == ctx.WinnerSeat {
			continue
		}
		if res.Payments[seat] != 2 {
			t.Errorf("期望座位 %d 付 2，實際 %d", seat, res.Payments[seat])
		}
	}
	if !paymentsBalance(res) {
		t.Errorf("支付表收支不平衡: %v", res.Payments)
	}
}

// TestSupersessionStripsAssembledList 測試涵蓋剔除對已組好的名堂列表獨立生效
func TestSupersessionStripsAssembledList(t *testing.T) {
	tests := []struct {
		name   string
		input  []Pattern
		expect []string
	}{
		{
			name: "四暗坎涵蓋三暗坎與對對胡",
			input: []Pattern{
				{Name: "四暗坎", Tai: 5},
				{Name: "三暗坎", Tai: 2},
				{Name: "對對胡", Tai: 4},
			},
			expect: []string{"四暗坎"},
		},
		{
			name: "清一色涵蓋湊一色",
			input: []Pattern{
				{Name: "清一色", Tai: 8},
				{Name: "湊一色", Tai: 4},
			},
			expect: []string{"清一色"},
		},
		{
			name: "不求涵蓋門清與自摸",
			input: []Pattern{
				{Name: "不求", Tai: 2},
				{Name: "門清", Tai: 1},
				{Name: "自摸", Tai: 1},
			},
			expect: []string{"不求"},
		},
		{
			name: "無涵蓋關係時原樣保留",
			input: []Pattern{
				{Name: "大三元", Tai: 8},
				{Name: "箭字坎", Tai: 1},
				{Name: "箭字坎", Tai: 1},
				{Name: "箭字坎", Tai: 1},
			},
			expect: []string{"大三元", "箭字坎", "箭字坎", "箭字坎"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := applySupersession(tc.input)
			if len(got) != len(tc.expect) {
				t.Fatalf("期望 %d 項，實際 %d: %v", len(tc.expect), len(got), got)
			}
			for i, name := range tc.expect {
				if got[i].Name != name {
					t.Errorf("第 %d 項期望 %s，實際 %s", i, name, got[i].Name)
				}
			}
		})
	}
}

// TestPureOneSuitStripsMixed 測試清一色成立時湊一色不另計
func TestPureOneSuitStripsMixed(t *testing.T) {
	hand := handOf(t,
		tile.Wan(1), tile.Wan(1), tile.Wan(1),
		tile.Wan(3), tile.Wan(3), tile.Wan(3),
		tile.Wan(5), tile.Wan(5), tile.Wan(5),
		tile.Wan(7), tile.Wan(7), tile.Wan(7),
		tile.Wan(9), tile.Wan(9),
		tile.Wan(2), tile.Wan(2),
	)
	winTile := tile.Wan(9)

	ctx := &Context{
		WinnerSeat:    3,
		DealerSeat:    0,
		RoundWind:     tile.Winds[0],
		Hand:          hand,
		WinTile:       winTile,
		Mode:          WinModeDiscard,
		Decomp:        decompose(t, hand, winTile, 0),
		DiscarderSeat: 0,
	}
	res := Calculate(ctx)

	if !hasPattern(res, "清一色") {
		t.Error("期望列出清一色，實際未列")
	}
	if hasPattern(res, "湊一色") {
		t.Error("清一色成立時不應另列湊一色")
	}
}

// TestMixedOneSuitWithHonors 測試湊一色與字牌刻子的台數疊加
func TestMixedOneSuitWithHonors(t *testing.T) {
	melds := []meld.Meld{
		meld.NewPong(tile.Winds[0], 2),
		meld.NewPong(tile.Dragons[0], 3),
	}
	hand := handOf(t,
		tile.Wan(1), tile.Wan(1), tile.Wan(1),
		tile.Wan(2), tile.Wan(3), tile.Wan(4),
		tile.Wan(5), tile.Wan(6), tile.Wan(7),
		tile.Wan(9),
	)
	winTile := tile.Wan(9)

	ctx := &Context{
		WinnerSeat:    0,
		DealerSeat:    1,
		RoundWind:     tile.Winds[1],
		Hand:          hand,
		Melds:         melds,
		WinTile:       winTile,
		Mode:          WinModeDiscard,
		Decomp:        decompose(t, hand, winTile, len(melds)),
		DiscarderSeat: 2,
	}
	res := Calculate(ctx)

	for _, name := range []string{"湊一色", "箭字坎", "風牌"} {
		if !hasPattern(res, name) {
			t.Errorf("期望列出 %s，實際 %v", name, res.Patterns)
		}
	}
	if hasPattern(res, "風圈") {
		t.Error("圈風非東風時不應列風圈")
	}
	if res.Subtotal != 6 {
		t.Errorf("期望小計 6 台，實際 %d", res.Subtotal)
	}
}

// TestPinghuRequiresTwoSidedDiscard 測試平胡的兩面聽與食胡條件
func TestPinghuRequiresTwoSidedDiscard(t *testing.T) {
	hand := handOf(t,
		tile.Wan(1), tile.Wan(2), tile.Wan(3),
		tile.Wan(4), tile.Wan(5), tile.Wan(6),
		tile.Wan(7), tile.Wan(8), tile.Wan(9),
		tile.Tong(2), tile.Tong(3), tile.Tong(4),
		tile.Suo(6), tile.Suo(7),
		tile.Suo(8), tile.Suo(8),
	)
	winTile := tile.Suo(5)

	base := Context{
		WinnerSeat:    2,
		DealerSeat:    0,
		RoundWind:     tile.Winds[0],
		Hand:          hand,
		WinTile:       winTile,
		Mode:          WinModeDiscard,
		Decomp:        decompose(t, hand, winTile, 0),
		DiscarderSeat: 3,
		TwoSidedWait:  true,
	}

	res := Calculate(&base)
	if !hasPattern(res, "平胡") {
		t.Errorf("期望列出平胡，實際 %v", res.Patterns)
	}

	edge := base
	edge.TwoSidedWait = false
	res = Calculate(&edge)
	if hasPattern(res, "平胡") {
		t.Error("非兩面聽不應列平胡")
	}

	tsumo := base
	tsumo.Mode = WinModeSelfDraw
	tsumo.DiscarderSeat = NoDiscarder
	res = Calculate(&tsumo)
	if hasPattern(res, "平胡") {
		t.Error("自摸不應列平胡")
	}
}

// TestAllFlowersWin 測試八仙過海的計台與付法
func TestAllFlowersWin(t *testing.T) {
	flowers := make([]tile.Tile, 0, tile.FlowerKinds)
	for v := int8(1); v <= tile.FlowerKinds; v++ {
		flowers = append(flowers, tile.Flower(v))
	}

	ctx := &Context{
		WinnerSeat:    0,
		DealerSeat:    1,
		RoundWind:     tile.Winds[0],
		Flowers:       flowers,
		WinTile:       tile.Flower(8),
		Mode:          WinModeAllFlowers,
		DiscarderSeat: NoDiscarder,
	}
	res := Calculate(ctx)

	if !hasPattern(res, "八仙過海") {
		t.Errorf("期望列出八仙過海，實際 %v", res.Patterns)
	}
	// 四季與四君子各成一組花槓，門前兩張正花各一台，不求涵蓋自摸
	if res.Subtotal != 8+2+2+2+1+1 {
		t.Errorf("期望小計 16 台，實際 %d", res.Subtotal)
	}
	for seat := 1; seat < 4; seat++ {
		if res.Payments[seat] != res.Total {
			t.Errorf("期望座位 %d 付 %d，實際 %d", seat, res.Total, res.Payments[seat])
		}
	}
}

// TestFlowerStealPayment 測試七搶一只由被搶者付
func TestFlowerStealPayment(t *testing.T) {
	flowers := make([]tile.Tile, 0, 7)
	for v := int8(1); v <= 7; v++ {
		flowers = append(flowers, tile.Flower(v))
	}

	ctx := &Context{
		WinnerSeat:    2,
		DealerSeat:    0,
		RoundWind:     tile.Winds[0],
		Flowers:       flowers,
		WinTile:       tile.Flower(8),
		Mode:          WinModeFlowerSteal,
		DiscarderSeat: 1,
	}
	res := Calculate(ctx)

	if !hasPattern(res, "七搶一") {
		t.Errorf("期望列出七搶一，實際 %v", res.Patterns)
	}
	if res.Payments[1] != res.Total {
		t.Errorf("期望被搶者付 %d，實際 %d", res.Total, res.Payments[1])
	}
	if res.Payments[0] != 0 || res.Payments[3] != 0 {
		t.Errorf("期望其他兩家不付，實際 %v", res.Payments)
	}
}

// TestStreakRaisesTaiAndPayment 測試連莊同時計台與加付
func TestStreakRaisesTaiAndPayment(t *testing.T) {
	hand := fourTripletHand(t)
	winTile := tile.Suo(9)

	ctx := &Context{
		WinnerSeat:    0,
		DealerSeat:    0,
		DealerStreak:  3,
		RoundWind:     tile.Winds[0],
		Hand:          hand,
		WinTile:       winTile,
		Mode:          WinModeSelfDraw,
		Decomp:        decompose(t, hand, winTile, 0),
		DiscarderSeat: NoDiscarder,
	}
	res := Calculate(ctx)

	if !hasPattern(res, "作莊") || !hasPattern(res, "連莊") {
		t.Errorf("期望列出作莊與連莊，實際 %v", res.Patterns)
	}
	// 五暗坎8 + 不求2 + 作莊1 + 連莊3
	if res.Subtotal != 14 {
		t.Errorf("期望小計 14 台，實際 %d", res.Subtotal)
	}
	for seat := 1; seat < 4; seat++ {
		if res.Payments[seat] != res.Total+3 {
			t.Errorf("期望座位 %d 付 %d，實際 %d", seat, res.Total+3, res.Payments[seat])
		}
	}
}

// TestTotalCappedAtMaxTai 測試台數封頂
func TestTotalCappedAtMaxTai(t *testing.T) {
	hand := fourTripletHand(t)
	winTile := tile.Suo(9)

	ctx := &Context{
		WinnerSeat:    0,
		DealerSeat:    0,
		DealerStreak:  75,
		RoundWind:     tile.Winds[0],
		Hand:          hand,
		WinTile:       winTile,
		Mode:          WinModeSelfDraw,
		Decomp:        decompose(t, hand, winTile, 0),
		DiscarderSeat: NoDiscarder,
		HeavenlyWin:   true,
	}
	res := Calculate(ctx)

	if res.Subtotal <= MaxTai {
		t.Fatalf("測試前提不成立，小計 %d 未超過上限", res.Subtotal)
	}
	if res.Total != MaxTai {
		t.Errorf("期望實計 %d 台，實際 %d", MaxTai, res.Total)
	}
}

// TestNoPatternStillPaysOneTai 測試無名堂的胡牌以一台計付
func TestNoPatternStillPaysOneTai(t *testing.T) {
	melds := []meld.Meld{
		mustChi(t, []tile.Tile{tile.Wan(1), tile.Wan(2), tile.Wan(3)}, 3),
	}
	hand := handOf(t,
		tile.Wan(4), tile.Wan(5), tile.Wan(6),
		tile.Wan(7), tile.Wan(8), tile.Wan(9),
		tile.Tong(4), tile.Tong(5), tile.Tong(6),
		tile.Tong(7), tile.Tong(8),
		tile.Suo(8), tile.Suo(8),
	)
	winTile := tile.Tong(9)

	ctx := &Context{
		WinnerSeat:    1,
		DealerSeat:    2,
		RoundWind:     tile.Winds[1],
		Hand:          hand,
		Melds:         melds,
		WinTile:       winTile,
		Mode:          WinModeDiscard,
		Decomp:        decompose(t, hand, winTile, len(melds)),
		DiscarderSeat: 0,
	}
	res := Calculate(ctx)

	if len(res.Patterns) != 0 {
		t.Errorf("期望無名堂，實際 %v", res.Patterns)
	}
	if res.Subtotal != 1 || res.Total != 1 {
		t.Errorf("期望以一台計付，實際小計 %d 實計 %d", res.Subtotal, res.Total)
	}
	if res.Payments[0] != 1 {
		t.Errorf("期望放槍者付 1，實際 %d", res.Payments[0])
	}
}

// TestAllOutHandOnDiscard 測試全求的副露條件
func TestAllOutHandOnDiscard(t *testing.T) {
	melds := []meld.Meld{
		meld.NewPong(tile.Wan(1), 0),
		mustChi(t, []tile.Tile{tile.Tong(4), tile.Tong(5), tile.Tong(6)}, 0),
		meld.NewPong(tile.Suo(7), 3),
		meld.NewOpenKong(tile.Winds[2], 3),
	}
	hand := handOf(t,
		tile.Wan(2), tile.Wan(3),
		tile.Wan(9), tile.Wan(9),
	)
	winTile := tile.Wan(4)

	ctx := &Context{
		WinnerSeat:    1,
		DealerSeat:    2,
		RoundWind:     tile.Winds[1],
		Hand:          hand,
		Melds:         melds,
		WinTile:       winTile,
		Mode:          WinModeDiscard,
		Decomp:        decompose(t, hand, winTile, len(melds)),
		DiscarderSeat: 0,
	}
	res := Calculate(ctx)

	if !hasPattern(res, "全求") {
		t.Errorf("期望列出全求，實際 %v", res.Patterns)
	}
}

// TestBigFourWindsStacking 測試大四喜與風牌風圈的疊加
func TestBigFourWindsStacking(t *testing.T) {
	melds := []meld.Meld{
		meld.NewPong(tile.Winds[0], 1),
		meld.NewPong(tile.Winds[1], 2),
		meld.NewPong(tile.Winds[2], 3),
	}
	hand := handOf(t,
		tile.Winds[3], tile.Winds[3], tile.Winds[3],
		tile.Wan(2), tile.Wan(2), tile.Wan(2),
		tile.Wan(5),
	)
	winTile := tile.Wan(5)

	ctx := &Context{
		WinnerSeat:    0,
		DealerSeat:    1,
		RoundWind:     tile.Winds[0],
		Hand:          hand,
		Melds:         melds,
		WinTile:       winTile,
		Mode:          WinModeSelfDraw,
		Decomp:        decompose(t, hand, winTile, len(melds)),
		DiscarderSeat: NoDiscarder,
	}
	res := Calculate(ctx)

	for _, name := range []string{"大四喜", "對對胡", "風牌", "風圈", "自摸"} {
		if !hasPattern(res, name) {
			t.Errorf("期望列出 %s，實際 %v", name, res.Patterns)
		}
	}
	// 大四喜16 + 對對胡4 + 風牌1 + 風圈1 + 自摸1
	if res.Subtotal != 23 {
		t.Errorf("期望小計 23 台，實際 %d", res.Subtotal)
	}
}

// mustChi 建立吃副露，失敗直接讓測試失敗
func mustChi(t *testing.T, combo []tile.Tile, from int) meld.Meld {
	t.Helper()
	m, err := meld.NewChi(combo, from)
	if err != nil {
		t.Fatalf("建立吃副露失敗: %v", err)
	}
	return m
}
