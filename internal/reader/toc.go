package reader

// Dot is one entry of the section indicator.
type Dot struct {
	Index   int
	Title   string
	Current bool
}

// Indicator returns one dot per section with the current section marked.
// Every Dot.Index is a valid argument to JumpTo.
func (r *Reader) Indicator() []Dot {
	dots := make([]Dot, r.sections.Len())
	for i := range dots {
		dots[i] = Dot{
			Index:   i,
			Title:   r.sections.title(i),
			Current: i == r.index,
		}
	}
	return dots
}
