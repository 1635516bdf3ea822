package errors

import (
	"errors"
	"fmt"
)

// GameError 遊戲錯誤類型
// 引擎各包共用，包含錯誤碼、錯誤消息和上下文
type GameError struct {
	Code    string                 // 錯誤代碼
	Message string                 // 錯誤消息
	Cause   error                  // 原因錯誤
	Context map[string]interface{} // 錯誤上下文
}

// Error 實現 error 接口
func (e *GameError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap 支持 errors.Unwrap
func (e *GameError) Unwrap() error {
	return e.Cause
}

// New 創建遊戲錯誤
func New(code, message string) *GameError {
	return &GameError{
		Code:    code,
		Message: message,
	}
}

// WithCause 添加原因錯誤（返回副本，原錯誤變量不受影響）
func (e *GameError) WithCause(cause error) *GameError {
	clone := e.clone()
	clone.Cause = cause
	return clone
}

// WithContext 添加上下文信息（返回副本，原錯誤變量不受影響）
func (e *GameError) WithContext(key string, value interface{}) *GameError {
	clone := e.clone()
	clone.Context[key] = value
	return clone
}

func (e *GameError) clone() *GameError {
	ctx := make(map[string]interface{}, len(e.Context)+1)
	for k, v := range e.Context {
		ctx[k] = v
	}
	return &GameError{
		Code:    e.Code,
		Message: e.Message,
		Cause:   e.Cause,
		Context: ctx,
	}
}

// Is 判斷是否為指定錯誤（按錯誤碼比較）
func Is(err error, target *GameError) bool {
	var gameErr *GameError
	if errors.As(err, &gameErr) {
		return gameErr.Code == target.Code
	}
	return false
}
