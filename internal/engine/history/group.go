package history

// GroupScope closes a group when End is called, typically with defer:
//
//	defer h.GroupScope("auto-wrap").End()
type GroupScope struct {
	history *History
	active  bool
}

// GroupScope starts a new group.
func (h *History) GroupScope(name string) *GroupScope {
	h.BeginGroup(name)
	return &GroupScope{history: h, active: true}
}

// End ends the group. Only the first call has effect.
func (g *GroupScope) End() {
	if g.active {
		g.history.EndGroup()
		g.active = false
	}
}

// Transaction runs fn inside a group named name. The group is closed even if
// fn fails, so edits fn applied before failing are still undone together.
func (h *History) Transaction(name string, fn func() error) error {
	h.BeginGroup(name)
	defer h.EndGroup()
	return fn()
}
