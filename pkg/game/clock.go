package game

import "time"

// maxFrameDelta 单帧间隔的上限
// 窗口拖动或断点暂停之后不会一次推进过长的时间
const maxFrameDelta = 100 * time.Millisecond

// Clock 模拟时钟：测量相邻两次 Update 之间的真实间隔
type Clock struct {
	now     func() time.Time
	last    time.Time
	nominal time.Duration
}

// NewClock 创建时钟，tps 为每秒 Update 次数，第一帧使用名义间隔
func NewClock(tps int) *Clock {
	return newClock(tps, time.Now)
}

func newClock(tps int, now func() time.Time) *Clock {
	if tps <= 0 {
		tps = 60
	}
	return &Clock{now: now, nominal: time.Second / time.Duration(tps)}
}

// Tick 返回距上一次 Tick 的间隔
func (c *Clock) Tick() time.Duration {
	t := c.now()
	if c.last.IsZero() {
		c.last = t
		return c.nominal
	}
	d := t.Sub(c.last)
	c.last = t
	switch {
	case d < 0:
		return 0
	case d > maxFrameDelta:
		return maxFrameDelta
	}
	return d
}
