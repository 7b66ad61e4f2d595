package store

// Page selects a window of an ordered listing. A zero Limit means no limit.
type Page struct {
	Limit  int
	Offset int
}

// Apply returns the window of n items selected by the page as [start, end)
func (p Page) Apply(n int) (start, end int) {
	start = p.Offset
	if start < 0 {
		start = 0
	}
	if start > n {
		start = n
	}
	end = n
	if p.Limit > 0 && start+p.Limit < n {
		end = start + p.Limit
	}
	return start, end
}
