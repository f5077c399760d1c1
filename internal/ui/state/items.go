package state

// Item is a single selectable row: a panel button or an inspector entry.
type Item struct {
	ID    string
	Label string
	// Tags are extra words the filter matches besides ID.
	Tags []string
	// Disabled rows are drawn dimmed and ignore activation.
	Disabled bool
}

// CloneItems produces a shallow copy of the provided items.
func CloneItems(items []Item) []Item {
	dup := make([]Item, len(items))
	copy(dup, items)
	return dup
}
