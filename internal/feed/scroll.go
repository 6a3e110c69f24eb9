package feed

// nearEndMargin is how many items before the end of the list the next page is requested
const nearEndMargin = 2

// NearEnd reports whether the last visible item is close enough to the end of
// a list of total items that the next page should be requested.
func NearEnd(lastVisible, total int) bool {
	return lastVisible > total-nearEndMargin
}

// EdgeDetector turns a level signal into a rising-edge trigger.
// The zero value starts low.
type EdgeDetector struct {
	prev bool
}

// Update records v and reports whether it flipped from false to true
func (e *EdgeDetector) Update(v bool) bool {
	rising := v && !e.prev
	e.prev = v
	return rising
}

// Reset forgets the previous level so the next true value fires again
func (e *EdgeDetector) Reset() {
	e.prev = false
}
