package avatar

import (
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/nullrocks/identicon"
)

const pngSize = 240

// Generator 根据用户名生成确定性 identicon 头像并落盘
type Generator struct {
	dir string
	ig  *identicon.Generator
}

// NewGenerator dir 不存在时自动创建
func NewGenerator(dir string) (*Generator, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	ig, err := identicon.New("social", 7, 4)
	if err != nil {
		return nil, err
	}
	return &Generator{dir: dir, ig: ig}, nil
}

// Generate 写出 PNG，返回挂载在 /uploads 下的相对 URL
func (g *Generator) Generate(name string) (string, error) {
	icon, err := g.ig.Draw(name)
	if err != nil {
		return "", err
	}
	// 名字是任意用户输入，不能进文件路径，取哈希当文件名
	sum := sha256.Sum256([]byte(name))
	fileName := fmt.Sprintf("%x_%d.png", sum[:8], time.Now().UnixNano())
	f, err := os.Create(filepath.Join(g.dir, fileName))
	if err != nil {
		return "", err
	}
	defer f.Close()
	if err := icon.Png(pngSize, f); err != nil {
		return "", err
	}
	return "/uploads/" + fileName, nil
}

// Dir 返回上传目录（multipart 头像保存复用）
func (g *Generator) Dir() string { return g.dir }
