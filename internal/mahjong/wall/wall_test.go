package wall

import (
	"math/rand"
	"testing"

	"sudooom.mahjong.engine/internal/mahjong/tile"
)

// TestNewPartition 測試洗牌後的三段張數
func TestNewPartition(t *testing.T) {
	w := New(rand.New(rand.NewSource(1)))

	wantDrawable := tile.TotalTiles - BackCount - ReservedCount
	if w.Remaining() != wantDrawable {
		t.Errorf("期望可抓區 %d 張，實際 %d", wantDrawable, w.Remaining())
	}
	if w.BackRemaining() != BackCount {
		t.Errorf("期望槓尾 %d 張，實際 %d", BackCount, w.BackRemaining())
	}
	if got := len(w.Tiles()); got != tile.TotalTiles {
		t.Errorf("期望牆中共 %d 張，實際 %d", tile.TotalTiles, got)
	}
}

// TestShuffleDeterminism 測試相同種子洗出相同牌序
func TestShuffleDeterminism(t *testing.T) {
	a := New(rand.New(rand.NewSource(42)))
	b := New(rand.New(rand.NewSource(42)))

	for i := 0; ; i++ {
		ta, oka := a.Draw()
		tb, okb := b.Draw()
		if oka != okb {
			t.Fatalf("第 %d 張抓牌結果不一致", i)
		}
		if !oka {
			break
		}
		if !ta.Equal(tb) {
			t.Fatalf("第 %d 張期望 %v，實際 %v", i, ta, tb)
		}
	}
}

// TestBuildPreservesOrder 測試既定牌序的切分與抓取順序
func TestBuildPreservesOrder(t *testing.T) {
	deck := tile.FullSet()
	w, err := Build(deck)
	if err != nil {
		t.Fatalf("切分完整牌堆失敗: %v", err)
	}

	first, ok := w.Draw()
	if !ok || !first.Equal(deck[0]) {
		t.Errorf("期望第一張為 %v，實際 %v", deck[0], first)
	}

	// 槓尾從鐵八墩之前的一段取
	backFirst, ok := w.DrawReplacement()
	if !ok || !backFirst.Equal(deck[len(deck)-ReservedCount-BackCount]) {
		t.Errorf("期望槓尾第一張為 %v，實際 %v",
			deck[len(deck)-ReservedCount-BackCount], backFirst)
	}
}

// TestBuildRejectsWrongSize 測試張數不足的牌堆被拒絕
func TestBuildRejectsWrongSize(t *testing.T) {
	if _, err := Build(tile.FullSet()[:100]); err == nil {
		t.Error("期望返回錯誤，實際成功")
	}
}

// TestReservedNeverDrawn 測試鐵八墩不會被任何抓法取出
func TestReservedNeverDrawn(t *testing.T) {
	w := New(rand.New(rand.NewSource(7)))

	drawn := 0
	for {
		if _, ok := w.Draw(); !ok {
			break
		}
		drawn++
	}
	for {
		if _, ok := w.DrawReplacement(); !ok {
			break
		}
		drawn++
	}

	if want := tile.TotalTiles - ReservedCount; drawn != want {
		t.Errorf("期望共抓出 %d 張，實際 %d", want, drawn)
	}
	if got := len(w.Tiles()); got != ReservedCount {
		t.Errorf("期望牆中僅剩鐵八墩 %d 張，實際 %d", ReservedCount, got)
	}
}

// TestReplacementFallsBackToDrawable 測試槓尾抓空後改抓牌牆
func TestReplacementFallsBackToDrawable(t *testing.T) {
	w := New(rand.New(rand.NewSource(9)))

	for i := 0; i < BackCount; i++ {
		if _, ok := w.DrawReplacement(); !ok {
			t.Fatalf("第 %d 張補牌失敗", i)
		}
	}
	if w.BackRemaining() != 0 {
		t.Fatalf("期望槓尾抓空，實際剩 %d", w.BackRemaining())
	}

	before := w.Remaining()
	if _, ok := w.DrawReplacement(); !ok {
		t.Fatal("期望改抓牌牆成功，實際失敗")
	}
	if w.Remaining() != before-1 {
		t.Errorf("期望牌牆剩 %d 張，實際 %d", before-1, w.Remaining())
	}
}
