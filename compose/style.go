package compose

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ByLCY/folio/layout"
)

// textStyle 合并位置参数中的样式名与开关，以及显式属性；未出现的字段保持继承。
func (r *resources) textStyle(words []string, attrs map[string]string) (layout.TextStyle, error) {
	props := map[string]string{}
	for _, w := range words {
		if st, ok := r.styles[w]; ok {
			for k, v := range st {
				props[k] = v
			}
			continue
		}
		switch strings.ToLower(w) {
		case "bold":
			props["weight"] = "bold"
		case "italic":
			props["italic"] = "true"
		case "underline":
			props["underline"] = "true"
		case "strike", "strikethrough":
			props["strike"] = "true"
		case "anywhere":
			props["wrap"] = "anywhere"
		default:
			return layout.TextStyle{}, fmt.Errorf("未知的样式或参数 %q", w)
		}
	}
	for k, v := range attrs {
		props[k] = v
	}
	return r.styleFromProps(props)
}

func (r *resources) styleFromProps(props map[string]string) (layout.TextStyle, error) {
	var style layout.TextStyle
	if v, ok := props["size"]; ok {
		size, err := points(v)
		if err != nil || size <= 0 {
			return style, fmt.Errorf("size 无法解析：%q", v)
		}
		style.FontSize = size
	}
	for key, v := range props {
		var err error
		switch key {
		case "size", "align":
		case "font", "family":
			style.FontFamily = v
		case "line-height":
			var spec layout.LineHeightSpec
			spec, err = layout.ParseLineHeight(v)
			if err == nil {
				size := style.FontSize
				if size == 0 {
					size = layout.DefaultTextStyle.FontSize
				}
				style.LineHeight = spec.Resolve(size)
			}
		case "weight":
			style.Weight, err = parseWeight(v)
		case "italic":
			style.Italic, err = toggle(v)
		case "underline":
			style.Underline, err = toggle(v)
		case "strike", "strikethrough":
			style.Strikethrough, err = toggle(v)
		case "wrap":
			switch strings.ToLower(v) {
			case "anywhere":
				style.WrapAnywhere = layout.On
			case "word", "normal":
				style.WrapAnywhere = layout.Off
			default:
				err = fmt.Errorf("wrap 只支持 anywhere 或 word")
			}
		case "color":
			style.Color, err = r.color(v)
		case "background":
			style.BackgroundColor, err = r.color(v)
		default:
			err = fmt.Errorf("未知的样式属性")
		}
		if err != nil {
			return style, fmt.Errorf("样式属性 %s=%q: %w", key, v, err)
		}
	}
	return style, nil
}

func toggle(v string) (layout.Toggle, error) {
	b, err := parseBool(v)
	if err != nil {
		return layout.Inherit, err
	}
	return layout.Bool(b), nil
}

func parseWeight(v string) (layout.FontWeight, error) {
	switch strings.ToLower(v) {
	case "thin":
		return layout.WeightThin, nil
	case "light":
		return layout.WeightLight, nil
	case "normal", "regular":
		return layout.WeightNormal, nil
	case "medium":
		return layout.WeightMedium, nil
	case "semibold":
		return layout.WeightSemiBold, nil
	case "bold":
		return layout.WeightBold, nil
	case "black":
		return layout.WeightBlack, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 100 || n > 900 {
		return 0, fmt.Errorf("无法解析字重 %q", v)
	}
	return layout.FontWeight(n), nil
}
