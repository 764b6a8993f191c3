//go:build android

package utils

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// androidDataRoot 应用私有数据目录的根
const androidDataRoot = "/data/data"

// EnsureStorageDir 创建 gdata 在 Android 上使用的 settings 目录并确认可写
// gdata 只使用 /data/data/{package}/，不会创建子目录
func EnsureStorageDir() error {
	root, err := androidAppDir()
	if err != nil {
		return fmt.Errorf("storage dir: %w", err)
	}
	dir := filepath.Join(root, "settings")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("storage dir %s: %w", dir, err)
	}
	probe := filepath.Join(dir, ".probe")
	if err := os.WriteFile(probe, nil, 0o644); err != nil {
		return fmt.Errorf("storage dir %s not writable: %w", dir, err)
	}
	return os.Remove(probe)
}

// GetStoragePath 应用私有数据目录，无法识别包名时返回空字符串
func GetStoragePath() string {
	dir, err := androidAppDir()
	if err != nil {
		return ""
	}
	return dir
}

// androidAppDir 由 /proc/self/cmdline 中的包名得到应用数据目录
func androidAppDir() (string, error) {
	cmdline, err := os.ReadFile("/proc/self/cmdline")
	if err != nil {
		return "", err
	}
	// cmdline 以 NUL 分隔参数，包名是第一个参数
	pkg, _, _ := bytes.Cut(cmdline, []byte{0})
	pkg = bytes.TrimSpace(pkg)
	if len(pkg) == 0 {
		return "", errors.New("empty /proc/self/cmdline")
	}
	return filepath.Join(androidDataRoot, string(pkg)), nil
}
