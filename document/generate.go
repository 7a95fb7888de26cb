package document

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/ByLCY/folio/layout"
)

// maxDiagnoses bounds overflow diagnoses on a single page.
const maxDiagnoses = 64

// PartReport describes one part of a rendered document.
type PartReport struct {
	Pages int
}

// Report summarizes a finished render.
type Report struct {
	ID       string
	Pages    int
	Parts    []PartReport
	Sections []layout.Location
	// OverflowPages lists pages carrying overflow markers. It is only
	// filled in debug mode.
	OverflowPages []int
}

// Generate renders a single content tree to c.
func Generate(c layout.Canvas, ts layout.Typesetter, root layout.Element, s Settings) (*Report, error) {
	return GenerateMerged(c, ts, []layout.Element{root}, Continuous, s)
}

type part struct {
	id    int
	root  layout.Element
	pages int
}

// GenerateMerged renders several content trees into one output. With
// Continuous numbering the first pass runs over every part before the
// second pass starts; with Separate numbering each part runs both passes on
// its own page context.
func GenerateMerged(c layout.Canvas, ts layout.Typesetter, roots []layout.Element, strategy Strategy, s Settings) (rep *Report, err error) {
	r := &renderer{
		settings: s,
		id:       uuid.NewString(),
		canvas:   c,
		ts:       ts,
	}
	r.log = s.logger().With("render", r.id[:8])

	parts := make([]*part, len(roots))
	for i, root := range roots {
		parts[i] = &part{id: i, root: r.prepare(root)}
	}

	r.log.Debug("render started", "parts", len(parts), "strategy", strategy)
	c.BeginDocument()
	defer func() {
		c.EndDocument()
		if err == nil {
			if cerr := c.Err(); cerr != nil {
				err = layout.NewDrawingError(layout.CodeBackend, cerr, "finishing document")
			}
		}
		if err != nil {
			rep = nil
			r.log.Error("render failed", "err", err)
		}
	}()

	switch strategy {
	case Separate:
		for _, p := range parts {
			pages := layout.NewPageContext()
			pages.SetDocumentID(p.id)
			if err := r.firstPass(pages, p); err != nil {
				return nil, err
			}
			pages.ResetPageNumber()
			if err := r.secondPass(pages, p); err != nil {
				return nil, err
			}
			r.sections = append(r.sections, pages.Sections()...)
		}
	default:
		pages := layout.NewPageContext()
		for _, p := range parts {
			pages.SetDocumentID(p.id)
			if err := r.firstPass(pages, p); err != nil {
				return nil, err
			}
		}
		pages.ResetPageNumber()
		for _, p := range parts {
			pages.SetDocumentID(p.id)
			if err := r.secondPass(pages, p); err != nil {
				return nil, err
			}
		}
		r.sections = pages.Sections()
	}

	rep = &Report{ID: r.id, Sections: r.sections}
	for _, p := range parts {
		rep.Parts = append(rep.Parts, PartReport{Pages: p.pages})
		rep.Pages += p.pages
		if s.EnableDebugging {
			rep.OverflowPages = append(rep.OverflowPages, overflowPages(p.root)...)
		}
	}
	r.log.Info("render finished", "pages", rep.Pages, "sections", len(rep.Sections))
	return rep, nil
}

type renderer struct {
	settings Settings
	id       string
	canvas   layout.Canvas
	ts       layout.Typesetter
	log      *log.Logger
	sections []layout.Location
}

func (r *renderer) prepare(root layout.Element) layout.Element {
	layout.ApplyTextStyle(root, layout.DefaultTextStyle)
	layout.ApplyDirection(root, layout.LeftToRight)
	if r.settings.EnableCaching {
		layout.ApplyCaching(&root)
	}
	return root
}

func (r *renderer) env(c layout.Canvas, pages *layout.PageContext) *layout.Env {
	return &layout.Env{
		Canvas:       c,
		Pages:        pages,
		Typesetter:   r.ts,
		StrictGlyphs: r.settings.CheckGlyphs,
	}
}

// firstPass paginates p against a discarding canvas to learn page counts
// and section ranges.
// A diagnosis changes the tree under pages that were already counted, so
// the pass restarts until it completes without inserting a marker.
func (r *renderer) firstPass(pages *layout.PageContext, p *part) error {
	start := pages.CurrentPage
	for {
		saved := pages.Clone()
		markers := len(layout.Markers(p.root))
		if err := r.pass(r.env(layout.Discard, pages), &p.root); err != nil {
			return err
		}
		if !r.settings.EnableDebugging || len(layout.Markers(p.root)) == markers {
			break
		}
		r.log.Debug("restarting first pass after diagnosis", "part", p.id)
		*pages = *saved
	}
	p.pages = pages.CurrentPage - start
	r.log.Debug("first pass done", "part", p.id, "pages", p.pages)

	if r.settings.EnableDebugging {
		if marked := overflowPages(p.root); len(marked) > 0 {
			r.log.Warn("layout overflow found", "part", p.id, "pages", marked)
			p.root = layout.MarkOverflowPages(p.root, marked)
		}
	}
	return nil
}

// secondPass draws p for real and checks it produced the same number of
// pages as the first pass.
func (r *renderer) secondPass(pages *layout.PageContext, p *part) error {
	start := pages.CurrentPage
	if err := r.pass(r.env(r.canvas, pages), &p.root); err != nil {
		return err
	}
	drawn := pages.CurrentPage - start
	r.log.Debug("second pass done", "part", p.id, "pages", drawn)
	if drawn != p.pages {
		return layout.NewLayoutError(layout.CodeNondeterministicLayout,
			"part %d produced %d pages in the first pass and %d in the second; content depends on state that is not reset between passes",
			p.id, p.pages, drawn)
	}
	return nil
}

// pass runs the pagination loop over root until it renders fully.
func (r *renderer) pass(env *layout.Env, root *layout.Element) (err error) {
	var (
		pageOpen bool
		drawing  bool
	)
	defer func() {
		rec := recover()
		if rec == nil {
			return
		}
		if pageOpen {
			env.Canvas.EndPage()
		}
		if aborted, ok := layout.Recovered(rec); ok {
			err = aborted
			return
		}
		if !drawing {
			panic(rec)
		}
		cause, ok := rec.(error)
		if !ok {
			cause = fmt.Errorf("%v", rec)
		}
		err = &layout.DrawingError{
			Code:    layout.CodePanic,
			Message: "an exception occurred during document drawing",
			Page:    env.Pages.CurrentPage + 1,
			Cause:   cause,
		}
	}()

	layout.ResetState(*root, true)
	limit := r.settings.maxPages()
	diagnoses := 0

	for {
		if env.Pages.CurrentPage >= limit {
			return layout.NewLayoutError(layout.CodePageLimit,
				"document exceeds %d pages; some content keeps requesting more space than a page offers", limit)
		}

		plan := (*root).Measure(env, layout.MaxSize)
		if plan.IsWrap() {
			if !r.settings.EnableDebugging {
				return layout.NewLayoutError(layout.CodeConflictingConstraints,
					"content on page %d contains conflicting size constraints: an element requires more space than is available; enable debugging to locate it",
					env.Pages.CurrentPage+1)
			}
			if err := r.diagnose(env, root, &diagnoses); err != nil {
				return err
			}
			continue
		}

		drawing = true
		env.Canvas.BeginPage(plan.Size())
		pageOpen = true
		(*root).Draw(env, plan.Size())
		env.Pages.IncrementPageNumber()
		env.Canvas.EndPage()
		pageOpen = false
		drawing = false
		diagnoses = 0

		if cerr := env.Canvas.Err(); cerr != nil {
			de := layout.NewDrawingError(layout.CodeBackend, cerr, "drawing backend failed")
			de.Page = env.Pages.CurrentPage
			return de
		}
		if plan.IsFull() {
			return nil
		}
	}
}

func (r *renderer) diagnose(env *layout.Env, root *layout.Element, count *int) error {
	*count++
	if *count > maxDiagnoses {
		return layout.NewLayoutError(layout.CodeConflictingConstraints,
			"page %d still overflows after %d diagnoses", env.Pages.CurrentPage+1, maxDiagnoses)
	}
	layout.ResetState(*root, false)
	marker := layout.Diagnose(env, root, layout.MaxSize)
	if marker == nil {
		return layout.NewLayoutError(layout.CodeConflictingConstraints,
			"content on page %d overflows and the overflowing element could not be located", env.Pages.CurrentPage+1)
	}
	r.log.Warn("marking overflowing element", "page", env.Pages.CurrentPage+1, "path", strings.Join(marker.Path, " > "))
	if r.settings.EnableCaching {
		layout.ApplyCaching(root)
	}
	return nil
}

// overflowPages lists the pages on which markers of root were drawn.
func overflowPages(root layout.Element) []int {
	seen := make(map[int]bool)
	var out []int
	for _, m := range layout.Markers(root) {
		for _, p := range m.Pages() {
			if !seen[p] {
				seen[p] = true
				out = append(out, p)
			}
		}
	}
	sort.Ints(out)
	return out
}
