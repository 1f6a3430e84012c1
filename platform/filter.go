package platform

// Filter hides windows that must not become obstacles: windows without area,
// and windows whose title or id is banned (the overlay itself, shells, the
// taskbar).
type Filter struct {
	src    WindowSource
	titles map[string]struct{}
	ids    map[uint64]struct{}
}

func NewFilter(src WindowSource, titles []string, ids ...uint64) *Filter {
	f := &Filter{
		src:    src,
		titles: make(map[string]struct{}, len(titles)),
		ids:    make(map[uint64]struct{}, len(ids)),
	}
	for _, t := range titles {
		f.titles[t] = struct{}{}
	}
	for _, id := range ids {
		f.ids[id] = struct{}{}
	}
	return f
}

// Ban hides the window with the given id from now on.
func (f *Filter) Ban(id uint64) {
	f.ids[id] = struct{}{}
}

func (f *Filter) ScreenSize() (int, int) {
	return f.src.ScreenSize()
}

func (f *Filter) Windows() []Window {
	in := f.src.Windows()
	out := in[:0]
	for _, w := range in {
		if w.Empty() {
			continue
		}
		if _, ok := f.titles[w.Title]; ok {
			continue
		}
		if _, ok := f.ids[w.ID]; ok {
			continue
		}
		out = append(out, w)
	}
	return out
}
