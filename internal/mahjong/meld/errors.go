package meld

import mjErrors "sudooom.mahjong.engine/internal/mahjong/errors"

// 副露相關錯誤
var (
	ErrInvalidSequence = mjErrors.New("INVALID_SEQUENCE", "吃牌必須是同花色連續三張")
	ErrNotPongMeld     = mjErrors.New("NOT_PONG_MELD", "只有碰可以升級為加槓")
	ErrTileMismatch    = mjErrors.New("TILE_MISMATCH", "加槓的牌必須與碰的牌相同")
)
