package logic

import (
	"errors"
	"fmt"
)

// 守卫失败的错误码，每种失败对调用方都可区分
// 错误消息沿用结算合约的提示文案
var (
	ErrCampaignNotFound = errors.New("campaign not found")
	ErrDeadlinePassed   = errors.New("Campaign ended")
	ErrBelowMinimum     = errors.New("Donation below minimum")
	ErrUnauthorized     = errors.New("only beneficiary can withdraw")
	ErrTooEarly         = errors.New("campaign still active")
	ErrGoalNotMet       = errors.New("Goal not met")
	ErrGoalMet          = errors.New("goal met, use withdraw instead")
	ErrAlreadyWithdrawn = errors.New("funds already withdrawn")
	ErrNothingToRefund  = errors.New("nothing to refund")
	ErrTransferFailed   = errors.New("token transfer failed")
)

// ValidationError 创建请求参数校验失败，指明出错字段
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// IsValidation 判断是否为参数校验错误
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
