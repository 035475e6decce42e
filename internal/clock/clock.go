package clock

import (
	"time"
)

// Clock 时间源，所有截止时间判断都从这里取当前时间
// 注入接口是为了让测试可以使用可控的假时钟
type Clock interface {
	Now() time.Time
}

// SystemClock 系统时钟
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}

// New 创建系统时钟
func New() Clock {
	return SystemClock{}
}
