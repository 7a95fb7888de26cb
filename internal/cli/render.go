package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ByLCY/folio/compose"
	"github.com/ByLCY/folio/document"
	"github.com/ByLCY/folio/renderer"
	canvasrenderer "github.com/ByLCY/folio/renderer/canvas"
	"github.com/ByLCY/folio/renderer/record"
)

// renderOpts holds the flags of the render command. Zero values defer to
// the configuration file.
type renderOpts struct {
	output      string // output directory
	data        string // inline JSON, .json or .toml file
	dump        bool   // also write <name>.json with every drawn primitive
	debug       bool
	checkGlyphs bool
	maxPages    int
	workers     int
}

func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts
	cmd := &cobra.Command{
		Use:   "render FILE...",
		Short: "Render DSL documents to PDF",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			cfg := c.cfg.Render
			if !flags.Changed("out") {
				opts.output = cfg.OutputDir
			}
			if !flags.Changed("debug") {
				opts.debug = cfg.Debug
			}
			if !flags.Changed("check-glyphs") {
				opts.checkGlyphs = cfg.CheckGlyphs
			}
			if !flags.Changed("max-pages") {
				opts.maxPages = cfg.MaxPages
			}
			if !flags.Changed("workers") {
				opts.workers = cfg.Workers
			}
			return c.runRender(cmd.Context(), args, opts)
		},
	}
	f := cmd.Flags()
	f.StringVarP(&opts.output, "out", "o", "", "output directory")
	f.StringVarP(&opts.data, "data", "d", "", "data bound to the document: inline JSON, .json or .toml file")
	f.BoolVar(&opts.dump, "dump", false, "also write a JSON record of every page")
	f.BoolVar(&opts.debug, "debug", false, "mark overflowing elements instead of failing")
	f.BoolVar(&opts.checkGlyphs, "check-glyphs", false, "fail when a font cannot draw a character")
	f.IntVar(&opts.maxPages, "max-pages", 0, "page ceiling per document")
	f.IntVarP(&opts.workers, "workers", "j", 0, "documents rendered in parallel")
	return cmd
}

// target is one output file of a render.
type target struct {
	path string
	out  renderer.Renderer
}

func (c *CLI) runRender(ctx context.Context, inputs []string, opts renderOpts) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	data, err := loadData(opts.data)
	if err != nil {
		return err
	}

	var (
		jobs    []document.Job
		targets []target
	)
	for _, input := range inputs {
		name := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
		built, err := buildFile(input, data)
		if err != nil {
			return err
		}
		pdf := newCanvasRenderer(built, filepath.Dir(input))
		jobs = append(jobs, document.Job{Name: name, Parts: built.Parts, Strategy: built.Strategy, Canvas: pdf, Typesetter: pdf})
		targets = append(targets, target{path: filepath.Join(opts.output, name+".pdf"), out: pdf})

		if opts.dump {
			// 内容树在渲染过程中带有状态，记录任务需要独立构建一份
			again, err := buildFile(input, data)
			if err != nil {
				return err
			}
			rec := record.New()
			rec.Meta = again.Meta
			jobs = append(jobs, document.Job{
				Name:       name + ".json",
				Parts:      again.Parts,
				Strategy:   again.Strategy,
				Canvas:     rec,
				Typesetter: newCanvasRenderer(again, filepath.Dir(input)),
			})
			targets = append(targets, target{path: filepath.Join(opts.output, name+".json"), out: rec})
		}
	}

	settings := document.Settings{
		MaxPages:        opts.maxPages,
		EnableCaching:   c.cfg == nil || c.cfg.Render.Caching,
		EnableDebugging: opts.debug,
		CheckGlyphs:     opts.checkGlyphs,
		Logger:          logger,
	}
	reports, err := document.GenerateAll(ctx, jobs, opts.workers, settings)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(opts.output, 0o755); err != nil {
		return fmt.Errorf("创建输出目录失败: %w", err)
	}
	for i, t := range targets {
		raw, err := t.out.Bytes()
		if err != nil {
			return fmt.Errorf("%s: %w", t.path, err)
		}
		if err := os.WriteFile(t.path, raw, 0o644); err != nil {
			return fmt.Errorf("写入 %s 失败: %w", t.path, err)
		}
		rep := reports[i]
		logger.Info("wrote", "path", t.path, "pages", rep.Pages)
		if len(rep.OverflowPages) > 0 {
			logger.Warn("content overflows", "path", t.path, "pages", rep.OverflowPages)
		}
	}
	prog.done("render finished", "documents", len(inputs))
	return nil
}

func buildFile(path string, data any) (*compose.Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("无法打开 DSL 文件 %s: %w", path, err)
	}
	defer f.Close()
	return compose.Parse(path, f, compose.Options{Data: data, BaseDir: filepath.Dir(path)})
}

func newCanvasRenderer(built *compose.Result, baseDir string) *canvasrenderer.Renderer {
	fonts := make([]canvasrenderer.FontResource, 0, len(built.Fonts))
	for _, f := range built.Fonts {
		fonts = append(fonts, canvasrenderer.FontResource{Family: f.Family, Bold: f.Bold, Italic: f.Italic, Src: f.Src})
	}
	return canvasrenderer.NewRendererWithOptions(canvasrenderer.Options{BaseDir: baseDir, Fonts: fonts, Meta: built.Meta})
}
