// Package renderer defines output backends for the layout engine.
package renderer

import "github.com/ByLCY/folio/layout"

// Renderer 是一个能输出最终文件的画布，例如 PDF 或调试 JSON。
// Bytes 在 EndDocument 之后返回生成的二进制数据。
type Renderer interface {
	layout.Canvas
	Bytes() ([]byte, error)
}

// Meta 保存文档元信息。
type Meta struct {
	Title    string   `json:"title,omitempty"`
	Author   string   `json:"author,omitempty"`
	Subject  string   `json:"subject,omitempty"`
	Creator  string   `json:"creator,omitempty"`
	Keywords []string `json:"keywords,omitempty"`
}
