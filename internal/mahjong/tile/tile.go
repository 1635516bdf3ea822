package tile

import "sort"

// 台灣十六張麻將使用 34 種序數牌/字牌各 4 張，加上 8 張花牌各 1 張。
const (
	// RankKinds 可組牌的牌種數（萬筒索各9種 + 風4種 + 箭3種）
	RankKinds = 34
	// CopiesPerRank 每種牌的張數
	CopiesPerRank = 4
	// FlowerKinds 花牌種數（春夏秋冬 + 梅蘭菊竹，各1張）
	FlowerKinds = 8
	// TotalTiles 全副牌張數
	TotalTiles = RankKinds*CopiesPerRank + FlowerKinds
)

// Suit 花色
type Suit int8

const (
	// SuitWan 萬子
	SuitWan Suit = iota
	// SuitTong 筒子
	SuitTong
	// SuitSuo 索子
	SuitSuo
	// SuitWind 風牌（1東 2南 3西 4北）
	SuitWind
	// SuitDragon 箭牌（1中 2發 3白）
	SuitDragon
	// SuitFlower 花牌（1-4 春夏秋冬，5-8 梅蘭菊竹）
	SuitFlower
)

// String 返回花色的字符串表示
func (s Suit) String() string {
	switch s {
	case SuitWan:
		return "萬"
	case SuitTong:
		return "筒"
	case SuitSuo:
		return "索"
	case SuitWind:
		return "風"
	case SuitDragon:
		return "箭"
	case SuitFlower:
		return "花"
	default:
		return "未知"
	}
}

// Tile 麻將牌（值對象，不可變）
type Tile struct {
	Suit  Suit `json:"suit"`
	Value int8 `json:"value"`
}

// New 創建麻將牌（帶驗證）
func New(suit Suit, value int8) (Tile, error) {
	t := Tile{Suit: suit, Value: value}
	if !t.valid() {
		return Tile{}, ErrInvalidTile.WithContext("suit", suit).WithContext("value", value)
	}
	return t, nil
}

// valid 驗證牌是否合法
func (t Tile) valid() bool {
	switch t.Suit {
	case SuitWan, SuitTong, SuitSuo:
		return t.Value >= 1 && t.Value <= 9
	case SuitWind:
		return t.Value >= 1 && t.Value <= 4
	case SuitDragon:
		return t.Value >= 1 && t.Value <= 3
	case SuitFlower:
		return t.Value >= 1 && t.Value <= 8
	default:
		return false
	}
}

// 風牌與箭牌常量
var (
	WindEast  = Tile{Suit: SuitWind, Value: 1}
	WindSouth = Tile{Suit: SuitWind, Value: 2}
	WindWest  = Tile{Suit: SuitWind, Value: 3}
	WindNorth = Tile{Suit: SuitWind, Value: 4}

	DragonRed   = Tile{Suit: SuitDragon, Value: 1} // 紅中
	DragonGreen = Tile{Suit: SuitDragon, Value: 2} // 發財
	DragonWhite = Tile{Suit: SuitDragon, Value: 3} // 白板
)

// Winds 四風，索引即座位（0東 1南 2西 3北）
var Winds = [4]Tile{WindEast, WindSouth, WindWest, WindNorth}

// Dragons 三元牌
var Dragons = [3]Tile{DragonRed, DragonGreen, DragonWhite}

// Wan 創建萬子
func Wan(value int8) Tile { return mustNew(SuitWan, value) }

// Tong 創建筒子
func Tong(value int8) Tile { return mustNew(SuitTong, value) }

// Suo 創建索子
func Suo(value int8) Tile { return mustNew(SuitSuo, value) }

// Flower 創建花牌（1春 2夏 3秋 4冬 5梅 6蘭 7菊 8竹）
func Flower(value int8) Tile { return mustNew(SuitFlower, value) }

func mustNew(suit Suit, value int8) Tile {
	t, err := New(suit, value)
	if err != nil {
		panic(err)
	}
	return t
}

// Equal 判斷兩張牌是否相同
func (t Tile) Equal(other Tile) bool {
	return t.Suit == other.Suit && t.Value == other.Value
}

// Less 比較兩張牌的大小（按花色再按數值）
func (t Tile) Less(other Tile) bool {
	if t.Suit != other.Suit {
		return t.Suit < other.Suit
	}
	return t.Value < other.Value
}

// IsSuited 是否是數牌（萬筒索）
func (t Tile) IsSuited() bool {
	return t.Suit == SuitWan || t.Suit == SuitTong || t.Suit == SuitSuo
}

// IsWind 是否是風牌
func (t Tile) IsWind() bool { return t.Suit == SuitWind }

// IsDragon 是否是箭牌
func (t Tile) IsDragon() bool { return t.Suit == SuitDragon }

// IsHonor 是否是字牌（風牌或箭牌）
func (t Tile) IsHonor() bool { return t.IsWind() || t.IsDragon() }

// IsFlower 是否是花牌
func (t Tile) IsFlower() bool { return t.Suit == SuitFlower }

// IsTerminal 是否是么九牌（數牌的1或9）
func (t Tile) IsTerminal() bool {
	return t.IsSuited() && (t.Value == 1 || t.Value == 9)
}

// Index 返回牌在計數向量中的下標（0-33）。花牌返回 -1。
//
// 萬子 0-8，筒子 9-17，索子 18-26，風牌 27-30，箭牌 31-33。
func (t Tile) Index() int {
	switch t.Suit {
	case SuitWan:
		return int(t.Value) - 1
	case SuitTong:
		return 9 + int(t.Value) - 1
	case SuitSuo:
		return 18 + int(t.Value) - 1
	case SuitWind:
		return 27 + int(t.Value) - 1
	case SuitDragon:
		return 31 + int(t.Value) - 1
	default:
		return -1
	}
}

// FromIndex 根據計數向量下標還原牌
func FromIndex(index int) (Tile, error) {
	switch {
	case index >= 0 && index < 9:
		return Tile{Suit: SuitWan, Value: int8(index + 1)}, nil
	case index < 18:
		return Tile{Suit: SuitTong, Value: int8(index - 9 + 1)}, nil
	case index < 27:
		return Tile{Suit: SuitSuo, Value: int8(index - 18 + 1)}, nil
	case index < 31:
		return Tile{Suit: SuitWind, Value: int8(index - 27 + 1)}, nil
	case index < 34:
		return Tile{Suit: SuitDragon, Value: int8(index - 31 + 1)}, nil
	default:
		return Tile{}, ErrInvalidTileIndex.WithContext("index", index)
	}
}

var wanNames = [...]string{"一", "二", "三", "四", "五", "六", "七", "八", "九"}
var windNames = [...]string{"東", "南", "西", "北"}
var dragonNames = [...]string{"紅中", "發財", "白板"}
var flowerNames = [...]string{"春", "夏", "秋", "冬", "梅", "蘭", "菊", "竹"}

// String 返回牌的中文名稱
func (t Tile) String() string {
	if !t.valid() {
		return "無效牌"
	}
	switch t.Suit {
	case SuitWan, SuitTong, SuitSuo:
		return wanNames[t.Value-1] + t.Suit.String()
	case SuitWind:
		return windNames[t.Value-1]
	case SuitDragon:
		return dragonNames[t.Value-1]
	default:
		return flowerNames[t.Value-1]
	}
}

// FullSet 生成全副 144 張牌（34 種各 4 張 + 8 張花牌）
func FullSet() []Tile {
	tiles := make([]Tile, 0, TotalTiles)
	for i := 0; i < RankKinds; i++ {
		t, _ := FromIndex(i)
		for c := 0; c < CopiesPerRank; c++ {
			tiles = append(tiles, t)
		}
	}
	for v := int8(1); v <= FlowerKinds; v++ {
		tiles = append(tiles, Tile{Suit: SuitFlower, Value: v})
	}
	return tiles
}

// Sort 就地按花色和數值排序
func Sort(tiles []Tile) {
	sort.Slice(tiles, func(i, j int) bool {
		return tiles[i].Less(tiles[j])
	})
}
