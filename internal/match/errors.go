package match

import (
	mjErrors "sudooom.mahjong.engine/internal/mahjong/errors"
)

// 對局編排錯誤碼
const (
	CodeMatchStarted    = "MATCH_ALREADY_STARTED"
	CodeMatchNotStarted = "MATCH_NOT_STARTED"
	CodeMatchFinished   = "MATCH_FINISHED"
	CodeHandInProgress  = "HAND_IN_PROGRESS"
	CodeNotExternalSeat = "NOT_EXTERNAL_SEAT"
	CodeTurnLimit       = "TURN_LIMIT_EXCEEDED"
	CodeDuplicateMatch  = "DUPLICATE_MATCH"
)

var (
	// ErrMatchStarted 對局已經開始，不能重複開始
	ErrMatchStarted = mjErrors.New(CodeMatchStarted, "對局已經開始")
	// ErrMatchNotStarted 對局尚未開始
	ErrMatchNotStarted = mjErrors.New(CodeMatchNotStarted, "對局尚未開始")
	// ErrMatchFinished 整場對局已經結束
	ErrMatchFinished = mjErrors.New(CodeMatchFinished, "整場對局已經結束")
	// ErrHandInProgress 本局還沒打完，不能開下一局
	ErrHandInProgress = mjErrors.New(CodeHandInProgress, "本局尚未結束")
	// ErrNotExternalSeat 動作座位不是外部控制的座位
	ErrNotExternalSeat = mjErrors.New(CodeNotExternalSeat, "該座位不由外部控制")
	// ErrTurnLimit 單局步數超過安全上限，視為引擎異常
	ErrTurnLimit = mjErrors.New(CodeTurnLimit, "單局步數超過安全上限")
	// ErrDuplicateMatch 對局編號已被註冊
	ErrDuplicateMatch = mjErrors.New(CodeDuplicateMatch, "對局編號重複")
)
