// Package record 提供一个记录型画布：把每页绘制的图元按绝对坐标记录下来，
// 以 JSON 形式输出，便于调试与测试。
package record

import (
	"github.com/ByLCY/folio/layout"
	"github.com/ByLCY/folio/renderer"
)

// 该文件定义记录结果，供调试 JSON 与测试断言共用。坐标单位均为 pt，原点在页面左上角。

// Result 保存记录下来的全部页面。
type Result struct {
	Meta  renderer.Meta `json:"meta"`
	Pages []Page        `json:"pages"`
}

// Page 记录页面尺寸与按绘制顺序排列的图元。
type Page struct {
	Number  int        `json:"number"`
	Width   float64    `json:"width"`
	Height  float64    `json:"height"`
	Texts   []TextBox  `json:"texts,omitempty"`
	Rects   []Rect     `json:"rects,omitempty"`
	Images  []ImageBox `json:"images,omitempty"`
	Links   []Link     `json:"links,omitempty"`
	Anchors []Anchor   `json:"anchors,omitempty"`
}

// TextBox 表示一段已定位的文本，Y 为基线位置。
type TextBox struct {
	Content  string       `json:"content"`
	X        float64      `json:"x"`
	Y        float64      `json:"y"`
	Font     string       `json:"font"`
	FontSize float64      `json:"fontSize"`
	Weight   int          `json:"weight,omitempty"`
	Italic   bool         `json:"italic,omitempty"`
	Color    layout.Color `json:"color"`
}

// Rect 表示一个实心矩形。
type Rect struct {
	X         float64      `json:"x"`
	Y         float64      `json:"y"`
	Width     float64      `json:"width"`
	Height    float64      `json:"height"`
	FillColor layout.Color `json:"fillColor"`
}

// ImageBox 用于描述图片位置与尺寸，Pixels 为原图像素尺寸。
type ImageBox struct {
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Width      float64 `json:"width"`
	Height     float64 `json:"height"`
	PixelsWide int     `json:"pixelsWide"`
	PixelsHigh int     `json:"pixelsHigh"`
}

// Link 是一个可点击区域，指向 URL 或文档内的 section。
type Link struct {
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Width   float64 `json:"width"`
	Height  float64 `json:"height"`
	URL     string  `json:"url,omitempty"`
	Section string  `json:"section,omitempty"`
}

// Anchor 标记 section 的目标位置。
type Anchor struct {
	Name string  `json:"name"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
}

// FindText 返回页面上第一个内容为 content 的文本。
func (p Page) FindText(content string) (TextBox, bool) {
	for _, t := range p.Texts {
		if t.Content == content {
			return t, true
		}
	}
	return TextBox{}, false
}

// Text 按绘制顺序返回页面上的所有文本内容。
func (p Page) Text() []string {
	out := make([]string, len(p.Texts))
	for i, t := range p.Texts {
		out[i] = t.Content
	}
	return out
}
