package tracker

import "sort"

// FolderStyle is the per-folder display record. It carries only the name; the
// snapshot keeps it as its own collection so it round-trips independently.
type FolderStyle struct {
	Name string
}

// FolderRegistry owns the ordered, deduplicated folder list and the style
// record per folder. Adding re-sorts the whole list alphabetically; a manual
// reorder therefore only holds until the next add. That matches how the tool
// has always behaved and is covered by tests.
type FolderRegistry struct {
	order  []string
	styles map[string]FolderStyle
}

func NewFolderRegistry() *FolderRegistry {
	return &FolderRegistry{styles: make(map[string]FolderStyle)}
}

// Load replaces the registry contents with a persisted snapshot.
func (r *FolderRegistry) Load(order []string, styles map[string]FolderStyle) {
	r.order = append([]string(nil), order...)
	r.styles = make(map[string]FolderStyle, len(styles))
	for name, style := range styles {
		r.styles[name] = style
	}
}

// Add inserts a folder and re-sorts the list. Empty and duplicate names are
// rejected before any mutation.
func (r *FolderRegistry) Add(name string) error {
	if name == "" {
		return ErrEmptyFolderName
	}
	if r.Contains(name) {
		return ErrDuplicateFolder
	}
	r.styles[name] = FolderStyle{Name: name}
	r.order = append(r.order, name)
	sort.Strings(r.order)
	return nil
}

// Remove drops the folder from the list and the style map. Cascading the
// folder's tasks is the caller's job.
func (r *FolderRegistry) Remove(name string) error {
	idx := r.index(name)
	if idx < 0 {
		return ErrFolderNotFound
	}
	r.order = append(r.order[:idx], r.order[idx+1:]...)
	delete(r.styles, name)
	return nil
}

// Reorder moves the folder to the given position, clamped to the list bounds.
// The ordering holds only until the next Add, which re-sorts.
func (r *FolderRegistry) Reorder(name string, index int) error {
	src := r.index(name)
	if src < 0 {
		return ErrFolderNotFound
	}
	if index < 0 {
		index = 0
	}
	if index > len(r.order)-1 {
		index = len(r.order) - 1
	}
	r.order = append(r.order[:src], r.order[src+1:]...)
	r.order = append(r.order[:index], append([]string{name}, r.order[index:]...)...)
	return nil
}

// Clear drops every folder and style record; tasks keep their stale folder
// names and become orphans.
func (r *FolderRegistry) Clear() {
	r.order = nil
	r.styles = make(map[string]FolderStyle)
}

func (r *FolderRegistry) Contains(name string) bool {
	return r.index(name) >= 0
}

func (r *FolderRegistry) Len() int {
	return len(r.order)
}

// Names returns the folders in display order.
func (r *FolderRegistry) Names() []string {
	return append([]string(nil), r.order...)
}

// First returns the first folder in display order, or "" when empty.
func (r *FolderRegistry) First() string {
	if len(r.order) == 0 {
		return ""
	}
	return r.order[0]
}

// Styles returns a copy of the style map.
func (r *FolderRegistry) Styles() map[string]FolderStyle {
	out := make(map[string]FolderStyle, len(r.styles))
	for name, style := range r.styles {
		out[name] = style
	}
	return out
}

func (r *FolderRegistry) index(name string) int {
	for i, n := range r.order {
		if n == name {
			return i
		}
	}
	return -1
}
