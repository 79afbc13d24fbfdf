// Package embedded 提供数据文件的统一读取接口
//
// 由于 Go embed 指令只能嵌入当前包目录及其子目录的文件，
// embed.FS 变量声明在项目根目录（embed.go），启动时通过 Init 传入。
// 读取时优先使用磁盘上的文件，便于不重新编译就调整预设；
// 磁盘上不存在时回退到嵌入的副本。
package embedded

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

var (
	dataFS      fs.FS
	initialized bool
)

// Init 设置嵌入的数据文件系统
// 必须在 main() 开始时、任何配置加载之前调用
func Init(data fs.FS) {
	dataFS = data
	initialized = data != nil
}

// Reset 清除嵌入文件系统，只读磁盘
func Reset() {
	dataFS = nil
	initialized = false
}

// IsInitialized 返回 embedded 包是否已初始化
func IsInitialized() bool {
	return initialized
}

// normalize 标准化为 embed.FS 使用的正斜杠路径
func normalize(path string) string {
	path = filepath.ToSlash(path)
	return strings.TrimPrefix(path, "./")
}

// ReadFile 读取数据文件：磁盘优先，其次嵌入副本
// 只有以 "data/" 开头的路径才会回退到嵌入副本
func ReadFile(path string) ([]byte, error) {
	path = normalize(path)
	data, err := os.ReadFile(filepath.FromSlash(path))
	if err == nil {
		return data, nil
	}
	if !errors.Is(err, fs.ErrNotExist) || !initialized || !strings.HasPrefix(path, "data/") {
		return nil, err
	}
	return fs.ReadFile(dataFS, path)
}

// Exists 检查文件在磁盘或嵌入副本中是否存在
func Exists(path string) bool {
	_, err := Stat(path)
	return err == nil
}

// Stat 获取文件信息（磁盘优先）
func Stat(path string) (fs.FileInfo, error) {
	path = normalize(path)
	if info, err := os.Stat(filepath.FromSlash(path)); err == nil {
		return info, nil
	}
	if !initialized {
		return nil, fmt.Errorf("%s: %w", path, fs.ErrNotExist)
	}
	return fs.Stat(dataFS, path)
}

// Glob 匹配嵌入副本中的文件
func Glob(pattern string) ([]string, error) {
	if !initialized {
		return nil, fmt.Errorf("embedded package not initialized, call Init() first")
	}
	return fs.Glob(dataFS, normalize(pattern))
}
