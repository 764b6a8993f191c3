// Package embedded 提供嵌入资源的统一访问接口
//
// 由于 Go embed 指令只能嵌入当前包目录及其子目录的文件，
// embed.FS 变量必须声明在项目根目录（embed.go）。
// 本包提供包装函数，让其他包可以访问嵌入的 data/ 目录。
//
// 使用前应调用 Init() 初始化；未初始化或嵌入目录中不存在的文件
// 会回退到磁盘读取（便于开发时直接修改 data/ 下的文件）。
package embedded

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// ErrUnknownPrefix 路径不以 "data/" 开头
var ErrUnknownPrefix = errors.New("unknown resource path prefix")

var (
	dataFS      fs.FS
	initialized bool
)

// Init 初始化数据文件系统
// 必须在 main() 开始时、任何资源加载之前调用
func Init(data fs.FS) {
	dataFS = data
	initialized = data != nil
}

// Reset 清除初始化状态（测试使用）
func Reset() {
	dataFS = nil
	initialized = false
}

// IsInitialized 返回 embedded 包是否已初始化
func IsInitialized() bool {
	return initialized
}

// normalize 标准化路径并检查前缀
func normalize(path string) (string, error) {
	// 标准化路径分隔符为正斜杠（embed.FS 使用正斜杠）
	path = filepath.ToSlash(path)
	path = strings.TrimPrefix(path, "./")

	if !strings.HasPrefix(path, "data/") {
		return "", fmt.Errorf("%w: %s (must start with 'data/')", ErrUnknownPrefix, path)
	}
	return path, nil
}

// ReadFile 读取文件内容，嵌入目录优先，磁盘回退
// 路径必须以 "data/" 开头
func ReadFile(path string) ([]byte, error) {
	path, err := normalize(path)
	if err != nil {
		return nil, err
	}
	if initialized {
		if data, err := fs.ReadFile(dataFS, path); err == nil {
			return data, nil
		}
	}
	data, err := os.ReadFile(filepath.FromSlash(path))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}

// Exists 检查文件是否存在（嵌入目录或磁盘）
func Exists(path string) bool {
	path, err := normalize(path)
	if err != nil {
		return false
	}
	if initialized {
		if _, err := fs.Stat(dataFS, path); err == nil {
			return true
		}
	}
	_, err = os.Stat(filepath.FromSlash(path))
	return err == nil
}
