package session

import (
	"sudooom.mahjong.engine/internal/mahjong/meld"
	"sudooom.mahjong.engine/internal/mahjong/score"
	"sudooom.mahjong.engine/internal/mahjong/tile"
	"sudooom.mahjong.engine/internal/mahjong/wall"
)

// Phase 牌局階段
type Phase int8

const (
	// PhaseDealing 發牌
	PhaseDealing Phase = iota
	// PhaseFlowerReplacement 開局補花
	PhaseFlowerReplacement
	// PhaseActiveTurn 行牌，輪到一家摸打
	PhaseActiveTurn
	// PhaseClaimWindow 詢問，等待其他三家回應
	PhaseClaimWindow
	// PhaseWin 有人胡牌，終局
	PhaseWin
	// PhaseDraw 流局，終局
	PhaseDraw
)

// String 返回階段的字符串表示
func (p Phase) String() string {
	switch p {
	case PhaseDealing:
		return "發牌"
	case PhaseFlowerReplacement:
		return "補花"
	case PhaseActiveTurn:
		return "行牌"
	case PhaseClaimWindow:
		return "詢問"
	case PhaseWin:
		return "胡牌"
	case PhaseDraw:
		return "流局"
	default:
		return "未知"
	}
}

// Terminal 是否為終局階段
func (p Phase) Terminal() bool {
	return p == PhaseWin || p == PhaseDraw
}

// ActionType 動作類型
type ActionType int8

const (
	// ActionDraw 摸牌
	ActionDraw ActionType = iota
	// ActionDiscard 打牌
	ActionDiscard
	// ActionChi 吃
	ActionChi
	// ActionPong 碰
	ActionPong
	// ActionOpenKong 明槓
	ActionOpenKong
	// ActionAddedKong 加槓
	ActionAddedKong
	// ActionConcealedKong 暗槓
	ActionConcealedKong
	// ActionWin 胡
	ActionWin
	// ActionPass 過
	ActionPass
)

// String 返回動作類型的字符串表示
func (a ActionType) String() string {
	switch a {
	case ActionDraw:
		return "摸牌"
	case ActionDiscard:
		return "打牌"
	case ActionChi:
		return "吃"
	case ActionPong:
		return "碰"
	case ActionOpenKong:
		return "明槓"
	case ActionAddedKong:
		return "加槓"
	case ActionConcealedKong:
		return "暗槓"
	case ActionWin:
		return "胡"
	case ActionPass:
		return "過"
	default:
		return "未知"
	}
}

// Action 一家提交的動作
type Action struct {
	Type  ActionType  `json:"type"`
	Seat  int         `json:"seat"`
	Tile  tile.Tile   `json:"tile"`
	Combo []tile.Tile `json:"combo,omitempty"` // 吃用的三張順子
}

// PlayerState 一家的牌面
type PlayerState struct {
	Seat     int         `json:"seat"`
	Hand     tile.Vector `json:"hand"`
	Melds    []meld.Meld `json:"melds"`
	Flowers  []tile.Tile `json:"flowers"`
	Discards []tile.Tile `json:"discards"` // 打牌記錄，含事後被吃碰槓的牌
	IsDealer bool        `json:"isDealer"`

	hasDrawn bool // 本局是否已摸過牌
}

// HandSize 暗牌張數
func (p *PlayerState) HandSize() int {
	return p.Hand.Total()
}

// GameState 單局的完整狀態
type GameState struct {
	Players      [4]*PlayerState `json:"players"`
	Wall         *wall.Wall      `json:"-"`
	DiscardPool  []tile.Tile     `json:"discardPool"` // 實際留在河裡的牌
	CurrentSeat  int             `json:"currentSeat"`
	RoundWind    int             `json:"roundWind"` // 0=東 1=南 2=西 3=北
	HandNumber   int             `json:"handNumber"`
	DealerSeat   int             `json:"dealerSeat"`
	DealerStreak int             `json:"dealerStreak"`
	LastDiscard  tile.Tile       `json:"lastDiscard"`
	Phase        Phase           `json:"phase"`
}

// Outcome 終局結果
type Outcome struct {
	Phase      Phase         `json:"phase"`      // PhaseWin 或 PhaseDraw
	WinnerSeat int           `json:"winnerSeat"` // 流局為 -1
	LoserSeat  int           `json:"loserSeat"`  // 放槍或被搶的座位，無則 -1
	Mode       score.WinMode `json:"mode"`
	WinTile    tile.Tile     `json:"winTile"`
	Score      *score.Result `json:"score,omitempty"`
}
