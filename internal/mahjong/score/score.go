// Package score 計台引擎：判定名堂、加總台數並產生各家支付表。
package score

import (
	"sudooom.mahjong.engine/internal/mahjong/meld"
	"sudooom.mahjong.engine/internal/mahjong/tile"
	"sudooom.mahjong.engine/internal/mahjong/win"
)

// MaxTai 單局台數上限
const MaxTai = 81

// NoDiscarder 無放槍者（自摸、八仙過海）時的座位佔位值
const NoDiscarder = -1

// WinMode 胡牌方式
type WinMode int8

const (
	WinModeSelfDraw    WinMode = iota // 自摸
	WinModeDiscard                    // 食胡
	WinModeFlowerSteal                // 七搶一
	WinModeAllFlowers                 // 八仙過海
)

// String 返回胡牌方式的字符串表示
func (m WinMode) String() string {
	switch m {
	case WinModeSelfDraw:
		return "自摸"
	case WinModeDiscard:
		return "食胡"
	case WinModeFlowerSteal:
		return "七搶一"
	case WinModeAllFlowers:
		return "八仙過海"
	default:
		return "未知"
	}
}

// selfDrawLike 自摸類胡牌（八仙過海的第八張花是自己補到的）
func (m WinMode) selfDrawLike() bool {
	return m == WinModeSelfDraw || m == WinModeAllFlowers
}

// Pattern 一個名堂與其台數
type Pattern struct {
	Name string `json:"name"`
	Tai  int    `json:"tai"`
}

// Result 計台結果
type Result struct {
	Patterns []Pattern   `json:"patterns"`
	Subtotal int         `json:"subtotal"` // 封頂前的台數合計
	Total    int         `json:"total"`    // 封頂後的實計台數
	Payments map[int]int `json:"payments"` // 座位 -> 應付，贏家為負的總收取
}

// Context 計台輸入：胡牌者的完整局面與時機旗標
type Context struct {
	WinnerSeat   int
	DealerSeat   int
	DealerStreak int       // 莊家連莊數
	RoundWind    tile.Tile // 圈風牌

	Hand    tile.Vector // 暗牌，不含胡張
	Melds   []meld.Meld
	Flowers []tile.Tile
	WinTile tile.Tile
	Mode    WinMode
	Decomp  *win.Decomposition // 含胡張的拆解，花胡為 nil

	DiscarderSeat int // 放槍或被搶花的座位，無則為 NoDiscarder

	TwoSidedWait   bool // 兩面聽
	RobbedKong     bool // 搶槓
	AfterKong      bool // 槓上開花（含補花後自摸）
	LastTile       bool // 牆底最後一張或最後一打
	HeavenlyWin    bool // 天胡
	EarthlyWin     bool // 地胡
	HumanlyWin     bool // 人胡
	HeavenlyReady  bool // 天聽
	EarthlyReady   bool // 地聽
	DealtFlowerWin bool // 配牌花胡
}

// supersedes 高台名堂成立時不另計的低台名堂
var supersedes = map[string][]string{
	"五暗坎": {"四暗坎", "三暗坎", "對對胡"},
	"四暗坎": {"三暗坎", "對對胡"},
	"清一色": {"湊一色"},
	"字一色": {"湊一色"},
	"不求":  {"門清", "自摸"},
}

// Calculate 計算胡牌的全部名堂、台數合計與各家支付。
//
// 名堂判定彼此獨立，涵蓋關係在判定完成後統一剔除。
// 無名堂的胡牌仍以一台計付，合計超過上限時按上限收付。
func Calculate(ctx *Context) *Result {
	patterns := evaluate(ctx)
	patterns = applySupersession(patterns)

	subtotal := 0
	for _, p := range patterns {
		subtotal += p.Tai
	}
	if subtotal == 0 {
		subtotal = 1
	}

	total := subtotal
	if total > MaxTai {
		total = MaxTai
	}

	return &Result{
		Patterns: patterns,
		Subtotal: subtotal,
		Total:    total,
		Payments: computePayments(ctx, total),
	}
}

// evaluate 依台數由高到低判定所有名堂，不處理涵蓋關係
func evaluate(ctx *Context) []Pattern {
	patterns := []Pattern{}
	selfDraw := ctx.Mode.selfDrawLike()
	concealed := openMeldCount(ctx.Melds) == 0
	groups := collectGroups(ctx)
	all := allTiles(ctx)

	var pairTile tile.Tile
	hasPair := ctx.Decomp != nil
	if hasPair {
		pairTile = ctx.Decomp.Pair
	}

	windTriplets := countTriplets(groups, tile.Tile.IsWind)
	dragonTriplets := countTriplets(groups, tile.Tile.IsDragon)
	anke := concealedTripletCount(ctx)

	// ========== 16 台 ==========
	if ctx.HeavenlyWin {
		patterns = append(patterns, Pattern{Name: "天胡", Tai: 16})
	}
	if ctx.EarthlyWin {
		patterns = append(patterns, Pattern{Name: "地胡", Tai: 16})
	}
	if ctx.HumanlyWin {
		patterns = append(patterns, Pattern{Name: "人胡", Tai: 16})
	}
	if windTriplets == 4 {
		patterns = append(patterns, Pattern{Name: "大四喜", Tai: 16})
	}
	if ctx.Decomp != nil && allHonors(all) {
		patterns = append(patterns, Pattern{Name: "字一色", Tai: 16})
	}

	// ========== 12 台 ==========
	if ctx.DealtFlowerWin {
		patterns = append(patterns, Pattern{Name: "配牌花胡", Tai: 12})
	}

	// ========== 8 台 ==========
	if ctx.HeavenlyReady {
		patterns = append(patterns, Pattern{Name: "天聽", Tai: 8})
	}
	if ctx.Mode == WinModeAllFlowers {
		patterns = append(patterns, Pattern{Name: "八仙過海", Tai: 8})
	}
	if ctx.Mode == WinModeFlowerSteal {
		patterns = append(patterns, Pattern{Name: "七搶一", Tai: 8})
	}
	if dragonTriplets == 3 {
		patterns = append(patterns, Pattern{Name: "大三元", Tai: 8})
	}
	if windTriplets == 3 && hasPair && pairTile.IsWind() {
		patterns = append(patterns, Pattern{Name: "小四喜", Tai: 8})
	}
	if ctx.Decomp != nil && pureOneSuit(all) {
		patterns = append(patterns, Pattern{Name: "清一色", Tai: 8})
	}
	if anke >= 5 {
		patterns = append(patterns, Pattern{Name: "五暗坎", Tai: 8})
	}

	// ========== 5 台 ==========
	if anke >= 4 {
		patterns = append(patterns, Pattern{Name: "四暗坎", Tai: 5})
	}

	// ========== 4 台 ==========
	if ctx.EarthlyReady {
		patterns = append(patterns, Pattern{Name: "地聽", Tai: 4})
	}
	if ctx.Decomp != nil && len(groups) == win.GroupsNeeded && allTripletGroups(groups) {
		patterns = append(patterns, Pattern{Name: "對對胡", Tai: 4})
	}
	if dragonTriplets == 2 && hasPair && pairTile.IsDragon() {
		patterns = append(patterns, Pattern{Name: "小三元", Tai: 4})
	}
	if ctx.Decomp != nil && atMostOneSuit(all) {
		patterns = append(patterns, Pattern{Name: "湊一色", Tai: 4})
	}

	// ========== 2 台 ==========
	if anke >= 3 {
		patterns = append(patterns, Pattern{Name: "三暗坎", Tai: 2})
	}
	if concealed && selfDraw {
		patterns = append(patterns, Pattern{Name: "不求", Tai: 2})
	}
	if isPinghu(ctx, groups, all) {
		patterns = append(patterns, Pattern{Name: "平胡", Tai: 2})
	}
	if openMeldCount(ctx.Melds) == 4 && !selfDraw {
		patterns = append(patterns, Pattern{Name: "全求", Tai: 2})
	}
	if tile.CountSeasons(ctx.Flowers) == 4 {
		patterns = append(patterns, Pattern{Name: "花槓", Tai: 2})
	}
	if tile.CountPlants(ctx.Flowers) == 4 {
		patterns = append(patterns, Pattern{Name: "花槓", Tai: 2})
	}

	// ========== 1 台 ==========
	if ctx.WinnerSeat == ctx.DealerSeat {
		patterns = append(patterns, Pattern{Name: "作莊", Tai: 1})
	}
	if ctx.DealerStreak > 0 {
		patterns = append(patterns, Pattern{Name: "連莊", Tai: ctx.DealerStreak})
	}
	if concealed {
		patterns = append(patterns, Pattern{Name: "門清", Tai: 1})
	}
	if selfDraw {
		patterns = append(patterns, Pattern{Name: "自摸", Tai: 1})
	}
	if hasTripletOf(groups, tile.Winds[ctx.WinnerSeat]) {
		patterns = append(patterns, Pattern{Name: "風牌", Tai: 1})
	}
	if hasTripletOf(groups, ctx.RoundWind) {
		patterns = append(patterns, Pattern{Name: "風圈", Tai: 1})
	}
	for _, d := range tile.Dragons {
		if hasTripletOf(groups, d) {
			patterns = append(patterns, Pattern{Name: "箭字坎", Tai: 1})
		}
	}
	for _, f := range ctx.Flowers {
		if tile.FlowerOwner(f) == ctx.WinnerSeat {
			patterns = append(patterns, Pattern{Name: "花牌", Tai: 1})
		}
	}
	if ctx.RobbedKong {
		patterns = append(patterns, Pattern{Name: "搶槓", Tai: 1})
	}
	if ctx.AfterKong {
		patterns = append(patterns, Pattern{Name: "槓上開花", Tai: 1})
	}
	if ctx.LastTile {
		if selfDraw {
			patterns = append(patterns, Pattern{Name: "海底撈月", Tai: 1})
		} else {
			patterns = append(patterns, Pattern{Name: "河底撈魚", Tai: 1})
		}
	}

	return patterns
}

// applySupersession 剔除被高台名堂涵蓋的低台名堂
func applySupersession(patterns []Pattern) []Pattern {
	present := make(map[string]bool, len(patterns))
	for _, p := range patterns {
		present[p.Name] = true
	}

	removed := map[string]bool{}
	for name, lowers := range supersedes {
		if !present[name] {
			continue
		}
		for _, l := range lowers {
			removed[l] = true
		}
	}

	kept := make([]Pattern, 0, len(patterns))
	for _, p := range patterns {
		if !removed[p.Name] {
			kept = append(kept, p)
		}
	}
	return kept
}

// computePayments 產生各家支付表。
//
// 自摸與八仙過海由三家各付全額，食胡與七搶一只由責任方一家付。
// 連莊數作為附加額，隨上述規則由已在付錢的座位承擔。
func computePayments(ctx *Context, total int) map[int]int {
	payments := make(map[int]int, 4)
	received := 0

	for seat := 0; seat < 4; seat++ {
		if seat == ctx.WinnerSeat {
			continue
		}

		amount := 0
		switch ctx.Mode {
		case WinModeSelfDraw, WinModeAllFlowers:
			amount = total + ctx.DealerStreak
		case WinModeDiscard, WinModeFlowerSteal:
			if seat == ctx.DiscarderSeat {
				amount = total + ctx.DealerStreak
			}
		}

		payments[seat] = amount
		received += amount
	}

	payments[ctx.WinnerSeat] = -received
	return payments
}
