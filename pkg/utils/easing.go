package utils

import "math"

// EaseOutCubic 三次缓出，t ∈ [0,1]：f(t) = 1 - (1-t)³
func EaseOutCubic(t float64) float64 {
	return 1 - math.Pow(1-t, 3)
}

// Lerp 线性插值，t=0 返回 a，t=1 返回 b
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Smooth 每帧向目标靠近 factor 比例（指数平滑）
// Smooth(v, target, 0.2) == 0.8·v + 0.2·target
func Smooth(value, target, factor float64) float64 {
	return Lerp(value, target, factor)
}
