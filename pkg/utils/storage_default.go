//go:build !android

package utils

// EnsureStorageDir 桌面与 iOS 上 gdata 自行创建存储目录
func EnsureStorageDir() error { return nil }

// GetStoragePath 桌面与 iOS 上由 gdata 决定路径，返回空字符串
func GetStoragePath() string { return "" }
