package layout

import (
	"fmt"
	"sort"
)

// Location is the page range a named section occupied.
type Location struct {
	Name       string
	DocumentID int
	PageStart  int
	PageEnd    int
}

// Length is the number of pages the section spans.
func (l Location) Length() int { return l.PageEnd - l.PageStart + 1 }

// PageContext is the mutable page and section table shared by one render.
// The driver advances pages; Section elements register locations.
type PageContext struct {
	CurrentPage    int
	DocumentLength int
	DocumentID     int

	sections map[string]*Location
}

// NewPageContext returns a context positioned before the first page.
func NewPageContext() *PageContext {
	return &PageContext{sections: make(map[string]*Location)}
}

// Clone returns an independent copy of the context.
func (c *PageContext) Clone() *PageContext {
	out := *c
	out.sections = make(map[string]*Location, len(c.sections))
	for k, v := range c.sections {
		loc := *v
		out.sections[k] = &loc
	}
	return &out
}

// SetDocumentID selects the active part of a merged document.
func (c *PageContext) SetDocumentID(id int) { c.DocumentID = id }

// IncrementPageNumber is called by the driver after every drawn page.
func (c *PageContext) IncrementPageNumber() { c.CurrentPage++ }

// ResetPageNumber ends a pass. The pass length becomes the document length
// used to resolve forward references in the next pass.
func (c *PageContext) ResetPageNumber() {
	c.DocumentLength = c.CurrentPage
	c.CurrentPage = 0
}

// LocationName returns the key a section is stored under. Merged parts keep
// their sections apart.
func (c *PageContext) LocationName(name string) string {
	return fmt.Sprintf("%d:%s", c.DocumentID, name)
}

// SetSectionPage records that section name is visible on the page being drawn.
func (c *PageContext) SetSectionPage(name string) {
	page := c.CurrentPage + 1
	key := c.LocationName(name)
	loc, ok := c.sections[key]
	if !ok {
		c.sections[key] = &Location{Name: name, DocumentID: c.DocumentID, PageStart: page, PageEnd: page}
		return
	}
	if page < loc.PageStart {
		loc.PageStart = page
	}
	if page > loc.PageEnd {
		loc.PageEnd = page
	}
}

// Section looks up a section of the active document part.
func (c *PageContext) Section(name string) (Location, bool) {
	loc, ok := c.sections[c.LocationName(name)]
	if !ok {
		return Location{}, false
	}
	return *loc, true
}

// Sections returns every registered location ordered by start page.
func (c *PageContext) Sections() []Location {
	out := make([]Location, 0, len(c.sections))
	for _, loc := range c.sections {
		out = append(out, *loc)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].PageStart != out[j].PageStart {
			return out[i].PageStart < out[j].PageStart
		}
		if out[i].DocumentID != out[j].DocumentID {
			return out[i].DocumentID < out[j].DocumentID
		}
		return out[i].Name < out[j].Name
	})
	return out
}
