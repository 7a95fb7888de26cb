// Package fonts 提供内置字体（Go 字体家族），供渲染器在没有外部字体时使用。
package fonts

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomedium"
	"golang.org/x/image/font/gofont/gomediumitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/gomonobolditalic"
	"golang.org/x/image/font/gofont/gomonoitalic"
	"golang.org/x/image/font/gofont/goregular"
)

var embedded = map[string][]byte{
	"Go-Regular":        goregular.TTF,
	"Go-Bold":           gobold.TTF,
	"Go-Italic":         goitalic.TTF,
	"Go-BoldItalic":     gobolditalic.TTF,
	"Go-Medium":         gomedium.TTF,
	"Go-MediumItalic":   gomediumitalic.TTF,
	"GoMono-Regular":    gomono.TTF,
	"GoMono-Bold":       gomonobold.TTF,
	"GoMono-Italic":     gomonoitalic.TTF,
	"GoMono-BoldItalic": gomonobolditalic.TTF,
}

// Names 返回所有内置字体名，已排序。
func Names() []string {
	out := make([]string, 0, len(embedded))
	for name := range embedded {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Load 返回内置字体的字节数据，name 可写为 "embed:Go-Bold" 或直接 "Go-Bold"。
func Load(name string) ([]byte, error) {
	name = strings.TrimPrefix(name, "embed:")
	data, ok := embedded[name]
	if !ok {
		return nil, fmt.Errorf("unknown embedded font %q", name)
	}
	return data, nil
}

// Resolve picks the embedded face for a generic family name. "mono" and
// "monospace" map to Go Mono; every other family falls back to Go. Weights
// of 600 and above use the bold face, 500 the medium face.
func Resolve(family string, weight int, italic bool) string {
	base := "Go"
	switch strings.ToLower(family) {
	case "mono", "monospace", "gomono", "go mono":
		base = "GoMono"
	}
	style := "Regular"
	switch {
	case weight >= 600:
		style = "Bold"
	case weight == 500 && base == "Go":
		style = "Medium"
	}
	if italic {
		if style == "Regular" {
			style = "Italic"
		} else {
			style += "Italic"
		}
	}
	return base + "-" + style
}
