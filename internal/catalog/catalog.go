// Package catalog holds the fixed module track. The catalog is defined at
// build time and never changes during a process's lifetime; lookups are
// deterministic and side-effect-free.
package catalog

// Module is a single unit of sequential content. Order is zero-based and
// unique; it defines the linear track. The presentation fields are opaque to
// the logic layer and pass through to clients unchanged.
type Module struct {
	ID       string `json:"id"`
	Slug     string `json:"slug"`
	Order    int    `json:"order"`
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
	Icon     string `json:"icon"`
	VideoID  string `json:"videoId"`
	Content  string `json:"content"`
}

// Catalog indexes a fixed module sequence by slug and by order.
type Catalog struct {
	bySlug  map[string]*Module
	ordered []*Module
}

// New builds a catalog from a module list. Panics on duplicate slugs or
// non-contiguous order indexes; the catalog is static data, so a bad
// definition is a programming error caught at startup.
func New(modules []Module) *Catalog {
	c := &Catalog{
		bySlug:  make(map[string]*Module, len(modules)),
		ordered: make([]*Module, len(modules)),
	}
	for i := range modules {
		m := &modules[i]
		if _, dup := c.bySlug[m.Slug]; dup {
			panic("catalog: duplicate slug " + m.Slug)
		}
		if m.Order < 0 || m.Order >= len(modules) || c.ordered[m.Order] != nil {
			panic("catalog: order indexes must be contiguous and unique")
		}
		c.bySlug[m.Slug] = m
		c.ordered[m.Order] = m
	}
	return c
}

// BySlug returns the module with the given slug, or nil if unknown.
func (c *Catalog) BySlug(slug string) *Module {
	return c.bySlug[slug]
}

// Next returns the module that follows slug in track order. Returns nil when
// slug is unknown or is the last module.
func (c *Catalog) Next(slug string) *Module {
	current, ok := c.bySlug[slug]
	if !ok {
		return nil
	}
	next := current.Order + 1
	if next >= len(c.ordered) {
		return nil
	}
	return c.ordered[next]
}

// All returns the modules in track order. Callers must not mutate the result.
func (c *Catalog) All() []*Module {
	return c.ordered
}

// Len returns the number of modules in the track.
func (c *Catalog) Len() int {
	return len(c.ordered)
}
