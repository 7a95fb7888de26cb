package layout

// Section registers a named location covering every page its child is drawn
// on. Page-number text can refer to it by name.
type Section struct {
	Name  string
	Child Element
}

func (s *Section) Slots() []*Element { return []*Element{&s.Child} }

func (s *Section) Measure(env *Env, available Size) SpacePlan {
	return orEmpty(s.Child).Measure(env, available)
}

func (s *Section) Draw(env *Env, available Size) {
	env.Pages.SetSectionPage(s.Name)
	env.Canvas.DrawSection(env.Pages.LocationName(s.Name))
	orEmpty(s.Child).Draw(env, available)
}

// SectionLink makes its child a link to a section of the same document.
type SectionLink struct {
	Section string
	Child   Element
}

func (s *SectionLink) Slots() []*Element { return []*Element{&s.Child} }

func (s *SectionLink) Measure(env *Env, available Size) SpacePlan {
	return orEmpty(s.Child).Measure(env, available)
}

func (s *SectionLink) Draw(env *Env, available Size) {
	child := orEmpty(s.Child)
	m := child.Measure(env, available)
	if m.IsWrap() {
		return
	}
	env.Canvas.DrawSectionLink(env.Pages.LocationName(s.Section), m.Size())
	child.Draw(env, available)
}

// Hyperlink makes its child a link to an external URL.
type Hyperlink struct {
	URL   string
	Child Element
}

func (h *Hyperlink) Slots() []*Element { return []*Element{&h.Child} }

func (h *Hyperlink) Measure(env *Env, available Size) SpacePlan {
	return orEmpty(h.Child).Measure(env, available)
}

func (h *Hyperlink) Draw(env *Env, available Size) {
	child := orEmpty(h.Child)
	m := child.Measure(env, available)
	if m.IsWrap() {
		return
	}
	env.Canvas.DrawHyperlink(h.URL, m.Size())
	child.Draw(env, available)
}
