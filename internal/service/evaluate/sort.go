package evaluate

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

const (
	PassedDir = "符合要求"
	FailedDir = "不符合要求"
)

// LoadResume 读取文本格式的简历
func LoadResume(path string) (Resume, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Resume{}, fmt.Errorf("读取简历失败: %w", err)
	}
	return Resume{FileName: filepath.Base(path), Content: string(data)}, nil
}

// Sort 按评估结果把简历复制到outDir下的对应目录,返回目标路径
func Sort(path, outDir string, ev *Evaluation) (string, error) {
	dir := FailedDir
	if ev.Result {
		dir = PassedDir
	}
	target := filepath.Join(outDir, dir)
	if err := os.MkdirAll(target, 0o755); err != nil {
		return "", fmt.Errorf("创建目录失败: %w", err)
	}
	dst := filepath.Join(target, filepath.Base(path))
	if err := copyFile(path, dst); err != nil {
		return "", fmt.Errorf("复制简历失败: %w", err)
	}
	return dst, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
