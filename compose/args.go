package compose

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ByLCY/folio/binding"
	"github.com/ByLCY/folio/dsl"
	"github.com/ByLCY/folio/layout"
)

// args 是命令参数拆分后的结果：已知键与其后的值组成属性，其余按顺序作为位置参数。
type args struct {
	words []string
	attrs map[string]string
}

var textKeys = keys("font", "family", "size", "line-height", "weight", "italic", "color",
	"background", "underline", "strike", "strikethrough", "wrap", "align")

var toggleKeys = keys("italic", "underline", "strike", "strikethrough")

func keys(names ...string) map[string]bool {
	out := make(map[string]bool, len(names))
	for _, n := range names {
		out[n] = true
	}
	return out
}

func parseArgs(lexemes []*dsl.Lexeme, known map[string]bool, scope *binding.Scope) args {
	a := args{attrs: map[string]string{}}
	for i := 0; i < len(lexemes); i++ {
		value := lexemes[i].Value
		if lexemes[i].Type == "String" {
			value = scope.Interpolate(value)
		}
		if known[value] && lexemes[i].Type != "String" && i+1 < len(lexemes) {
			next := lexemes[i+1].Value
			if lexemes[i+1].Type == "String" {
				next = scope.Interpolate(next)
			}
			// 开关类属性可以单独出现，例如 text italic bold
			if _, err := parseBool(next); err == nil || !toggleKeys[value] {
				a.attrs[value] = next
				i++
				continue
			}
		}
		if value == "=" {
			continue
		}
		a.words = append(a.words, value)
	}
	return a
}

func (a args) word(i int) string {
	if i < len(a.words) {
		return a.words[i]
	}
	return ""
}

func (a args) has(word string) bool {
	for _, w := range a.words {
		if strings.EqualFold(w, word) {
			return true
		}
	}
	return false
}

func points(v string) (float64, error) {
	l, err := layout.ParseLength(v)
	if err != nil {
		return 0, err
	}
	return l.Points(), nil
}

func (a args) length(key string, def float64) (float64, error) {
	v, ok := a.attrs[key]
	if !ok {
		return def, nil
	}
	p, err := points(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return p, nil
}

func (a args) integer(key string, def int) (int, error) {
	v, ok := a.attrs[key]
	if !ok {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s 需要整数，实际为 %q", key, v)
	}
	return n, nil
}

func parseBool(v string) (bool, error) {
	switch strings.ToLower(v) {
	case "true", "yes", "on", "1":
		return true, nil
	case "false", "no", "off", "0":
		return false, nil
	}
	return false, fmt.Errorf("无法解析布尔值 %q", v)
}

func parseHorizontal(v string) (layout.HorizontalAlignment, bool) {
	switch strings.ToLower(v) {
	case "start":
		return layout.AlignStart, true
	case "left":
		return layout.AlignLeft, true
	case "center":
		return layout.AlignCenter, true
	case "right":
		return layout.AlignRight, true
	case "end":
		return layout.AlignEnd, true
	}
	return 0, false
}

func parseVertical(v string) (layout.VerticalAlignment, bool) {
	switch strings.ToLower(v) {
	case "top":
		return layout.AlignTop, true
	case "middle":
		return layout.AlignMiddle, true
	case "bottom":
		return layout.AlignBottom, true
	}
	return 0, false
}
