package layout

// cacheProxy memoizes the most recent measurement of a cacheable element.
// Drawing or resetting invalidates it, since either may advance state.
type cacheProxy struct {
	child Element

	valid     bool
	available Size
	plan      SpacePlan
}

func (p *cacheProxy) Slots() []*Element { return []*Element{&p.child} }
func (p *cacheProxy) Name() string      { return Describe(p.child) }
func (p *cacheProxy) unwrap() Element   { return p.child }

func (p *cacheProxy) ResetState(bool) { p.valid = false }

func (p *cacheProxy) Measure(env *Env, available Size) SpacePlan {
	if p.valid && p.available.Equal(available) {
		return p.plan
	}
	p.plan = p.child.Measure(env, available)
	p.available = available
	p.valid = true
	return p.plan
}

func (p *cacheProxy) Draw(env *Env, available Size) {
	p.valid = false
	p.child.Draw(env, available)
}

type proxy interface {
	Element
	unwrap() Element
}

// ApplyCaching wraps every cacheable element of the tree in a memoizing
// proxy.
func ApplyCaching(root *Element) {
	Rewrite(root, func(e Element) Element {
		if c, ok := e.(Cacheable); ok && c.Cacheable() {
			return &cacheProxy{child: e}
		}
		return e
	})
}

// RemoveProxies strips caching and diagnostic proxies, leaving overflow
// markers in place.
func RemoveProxies(root *Element) {
	Rewrite(root, func(e Element) Element {
		for {
			p, ok := e.(proxy)
			if !ok {
				return e
			}
			e = p.unwrap()
		}
	})
}
