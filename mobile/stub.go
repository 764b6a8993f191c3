//go:build !mobile

// Package mobile 是 ebitenmobile 绑定入口，只有 -tags mobile 时才注册游戏
package mobile

// Dummy 让非移动端构建也能引用此包
func Dummy() {}
