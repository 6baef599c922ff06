package navigation

// Carousel pages through the screenshots of one detail view. It has no
// wraparound and no timer; a carousel with zero pages is valid and empty.
type Carousel struct {
	pages []string
	index int
}

func NewCarousel(screenshots []string) *Carousel {
	return &Carousel{pages: append([]string(nil), screenshots...)}
}

func (c *Carousel) Pages() int {
	if c == nil {
		return 0
	}
	return len(c.pages)
}

func (c *Carousel) Index() int {
	if c == nil {
		return 0
	}
	return c.index
}

// GoTo moves to page n. Requests outside [0, Pages()) are rejected and leave
// the index unchanged.
func (c *Carousel) GoTo(n int) bool {
	if c == nil || n < 0 || n >= len(c.pages) {
		return false
	}
	c.index = n
	return true
}

// Next swipes to the following page.
func (c *Carousel) Next() bool { return c.GoTo(c.Index() + 1) }

// Prev swipes to the preceding page.
func (c *Carousel) Prev() bool { return c.GoTo(c.Index() - 1) }

// Current returns the screenshot reference on the current page.
func (c *Carousel) Current() (string, bool) {
	if c == nil || len(c.pages) == 0 {
		return "", false
	}
	return c.pages[c.index], true
}
