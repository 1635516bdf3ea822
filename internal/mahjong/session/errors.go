package session

import (
	mjErrors "sudooom.mahjong.engine/internal/mahjong/errors"
)

// 錯誤碼
const (
	CodeIllegalAction      = "ILLEGAL_ACTION"
	CodeInvariantViolation = "INVARIANT_VIOLATION"
)

// ErrIllegalAction 動作不合法時 Step 返回的錯誤基準，
// 具體原因見各處的 Message 與 Context
var ErrIllegalAction = mjErrors.New(CodeIllegalAction, "動作不合法")

// illegal 帶原因的不合法動作錯誤
func illegal(message string) *mjErrors.GameError {
	return mjErrors.New(CodeIllegalAction, message)
}
