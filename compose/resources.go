package compose

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/webp"

	"github.com/ByLCY/folio/dsl"
	"github.com/ByLCY/folio/layout"
)

// resources 记录解析出的字体、颜色、图片与样式定义。
type resources struct {
	baseDir string
	fonts   []FontDecl
	colors  map[string]layout.Color
	images  map[string]image.Image
	styles  map[string]map[string]string
}

type rawStyle struct {
	name    string
	extends string
	props   map[string]string
}

func collectResources(doc *dsl.Document, baseDir string) (*resources, error) {
	res := &resources{
		baseDir: baseDir,
		colors:  map[string]layout.Color{},
		images:  map[string]image.Image{},
	}
	rawStyles := map[string]rawStyle{}

	for _, block := range doc.Blocks("resources") {
		for _, stmt := range block.Statements {
			cmd := stmt.Command
			if cmd == nil {
				continue
			}
			if len(cmd.Args) == 0 {
				return nil, layout.NewComposeError(layout.CodeInvalidDSL, "%s: %s 资源缺少名称", cmd.Pos, cmd.Name)
			}
			name := cmd.Args[0].Value
			switch cmd.Name {
			case "font":
				res.fonts = append(res.fonts, parseFontResource(name, cmd))
			case "color":
				value := cmd.Args[len(cmd.Args)-1].Value
				c, err := layout.ParseHexColor(value)
				if err != nil || len(cmd.Args) < 2 {
					return nil, layout.NewComposeError(layout.CodeInvalidStyle, "%s: 颜色 %s 的值 %q 无法解析", cmd.Pos, name, value)
				}
				res.colors[name] = c
			case "image":
				img, err := res.loadImage(cmd.Block.Lookup("src"))
				if err != nil {
					return nil, layout.WrapComposeError(layout.CodeInvalidDSL, err, "%s: 图片 %s", cmd.Pos, name)
				}
				res.images[name] = img
			case "style":
				st := rawStyle{name: name, props: map[string]string{}}
				if len(cmd.Args) >= 3 && strings.EqualFold(cmd.Args[1].Value, "extends") {
					st.extends = cmd.Args[2].Value
				}
				if cmd.Block != nil {
					for _, s := range cmd.Block.Statements {
						if s.Assignment == nil {
							continue
						}
						if val := s.Assignment.Value.Text(); val != "" {
							st.props[s.Assignment.Key] = val
						}
					}
				}
				rawStyles[name] = st
			default:
				return nil, layout.NewComposeError(layout.CodeInvalidDSL, "%s: 未知的资源类型 %s", cmd.Pos, cmd.Name)
			}
		}
	}

	styles, err := resolveStyles(rawStyles)
	if err != nil {
		return nil, err
	}
	res.styles = styles
	return res, nil
}

func parseFontResource(name string, cmd *dsl.Command) FontDecl {
	font := FontDecl{Family: name, Src: cmd.Block.Lookup("src")}
	style := strings.ToLower(cmd.Block.Lookup("style"))
	font.Bold = strings.Contains(style, "bold")
	font.Italic = strings.Contains(style, "italic") || strings.Contains(style, "oblique")
	return font
}

// resolveStyles 展开 extends 继承链，并检测循环继承。
func resolveStyles(styles map[string]rawStyle) (map[string]map[string]string, error) {
	resolved := map[string]map[string]string{}
	visiting := map[string]bool{}

	var dfs func(name string) (map[string]string, error)
	dfs = func(name string) (map[string]string, error) {
		if props, ok := resolved[name]; ok {
			return props, nil
		}
		style, ok := styles[name]
		if !ok {
			return nil, layout.NewComposeError(layout.CodeInvalidStyle, "style %s 未定义", name)
		}
		if visiting[name] {
			return nil, layout.NewComposeError(layout.CodeInvalidStyle, "style 继承存在循环：%s", name)
		}
		visiting[name] = true

		props := map[string]string{}
		if style.extends != "" {
			parent, err := dfs(style.extends)
			if err != nil {
				return nil, err
			}
			for k, v := range parent {
				props[k] = v
			}
		}
		for k, v := range style.props {
			props[k] = v
		}
		resolved[name] = props
		delete(visiting, name)
		return props, nil
	}

	for name := range styles {
		if _, err := dfs(name); err != nil {
			return nil, err
		}
	}
	return resolved, nil
}

func (r *resources) loadImage(src string) (image.Image, error) {
	if src == "" {
		return nil, fmt.Errorf("缺少 src")
	}
	path := src
	if !filepath.IsAbs(path) {
		path = filepath.Join(r.baseDir, path)
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("读取图片 %s 失败: %w", src, err)
	}
	defer file.Close()
	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("解码图片 %s 失败: %w", src, err)
	}
	return img, nil
}

var namedColors = map[string]layout.Color{
	"black":       layout.Black,
	"white":       layout.White,
	"grey":        layout.Grey,
	"gray":        layout.Grey,
	"lightgrey":   layout.LightGrey,
	"red":         layout.Red,
	"transparent": layout.Transparent,
}

// color resolves a declared color name, a CSS-like name or a hex value.
func (r *resources) color(value string) (layout.Color, error) {
	if c, ok := r.colors[value]; ok {
		return c, nil
	}
	if c, ok := namedColors[strings.ToLower(value)]; ok {
		return c, nil
	}
	if strings.HasPrefix(value, "#") {
		return layout.ParseHexColor(value)
	}
	return layout.Color{}, fmt.Errorf("未知的颜色 %q", value)
}
