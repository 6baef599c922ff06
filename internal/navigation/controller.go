package navigation

import "github.com/jask/storefront/internal/catalog"

type View string

const (
	ViewList   View = "list"
	ViewDetail View = "detail"
)

// Controller switches between the catalog list and a single app's detail
// view. There is no history: Back always returns to the list.
type Controller struct {
	selected *catalog.App
	carousel *Carousel
}

func NewController() *Controller {
	return &Controller{}
}

func (c *Controller) View() View {
	if c == nil || c.selected == nil {
		return ViewList
	}
	return ViewDetail
}

// Select enters the detail view for app, replacing any current selection and
// starting a fresh carousel.
func (c *Controller) Select(app catalog.App) {
	if c == nil {
		return
	}
	selected := app.Clone()
	c.selected = &selected
	c.carousel = NewCarousel(selected.Screenshots)
}

// Back returns to the list and drops the carousel. It reports false when the
// controller was already on the list.
func (c *Controller) Back() bool {
	if c == nil || c.selected == nil {
		return false
	}
	c.selected = nil
	c.carousel = nil
	return true
}

func (c *Controller) Selected() (catalog.App, bool) {
	if c == nil || c.selected == nil {
		return catalog.App{}, false
	}
	return c.selected.Clone(), true
}

// Carousel returns the carousel of the active detail view, or nil on the list.
func (c *Controller) Carousel() *Carousel {
	if c == nil {
		return nil
	}
	return c.carousel
}
