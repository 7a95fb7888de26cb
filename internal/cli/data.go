package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// loadData 读取绑定到 DSL 的数据：内联 JSON、.json 文件或 .toml 文件。
func loadData(src string) (any, error) {
	src = strings.TrimSpace(src)
	if src == "" {
		return nil, nil
	}
	if strings.HasPrefix(src, "{") || strings.HasPrefix(src, "[") {
		var data any
		if err := json.Unmarshal([]byte(src), &data); err != nil {
			return nil, fmt.Errorf("解析 data JSON 失败: %w", err)
		}
		return data, nil
	}

	switch ext := strings.ToLower(filepath.Ext(src)); ext {
	case ".toml":
		var data map[string]any
		if _, err := toml.DecodeFile(src, &data); err != nil {
			return nil, fmt.Errorf("解析 data 文件 %s 失败: %w", src, err)
		}
		return data, nil
	case ".json":
		raw, err := os.ReadFile(src)
		if err != nil {
			return nil, fmt.Errorf("读取 data 文件失败: %w", err)
		}
		var data any
		if err := json.Unmarshal(raw, &data); err != nil {
			return nil, fmt.Errorf("解析 data 文件 %s 失败: %w", src, err)
		}
		return data, nil
	default:
		return nil, fmt.Errorf("不支持的数据格式 %q（仅支持 .json 与 .toml）", ext)
	}
}
