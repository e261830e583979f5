// Package page holds the stateless reactions of the site's pages to browser
// events: the mobile menu toggle, in-page anchor scrolling and the header
// background on scroll. Each function maps the event's inputs to the new
// presentation state; a binding applies the result to the document.
package page

import "strings"

const (
	// NavShown and NavHidden are the display values of the navigation links.
	NavShown  = "flex"
	NavHidden = "none"

	// HeaderOffset is the height of the fixed header, subtracted from the
	// scroll target so the section is not hidden behind it.
	HeaderOffset = 80
	// MobileMaxWidth is the widest viewport treated as mobile.
	MobileMaxWidth = 768

	// ScrolledThreshold is the vertical scroll past which the header turns opaque.
	ScrolledThreshold = 100
	// HeaderScrolled and HeaderTop are the header backgrounds.
	HeaderScrolled = "rgba(30, 41, 59, 0.95)"
	HeaderTop      = "var(--dark)"
)

// ToggleNav returns the display value after a click on the menu toggle.
func ToggleNav(display string) string {
	if display == NavShown {
		return NavHidden
	}

	return NavShown
}

// ScrollPlan describes the reaction to a click on an in-page anchor.
type ScrollPlan struct {
	// Top is the smooth-scroll destination in pixels.
	Top int
	// CollapseNav is set on mobile viewports, where the menu is hidden after
	// navigating.
	CollapseNav bool
}

// OffsetLookup returns the offsetTop of the element with the given id, or
// false when there is no such element.
type OffsetLookup func(id string) (offsetTop int, ok bool)

// PlanAnchorScroll computes the scroll for a click on an anchor with the given
// href. It returns false when nothing should happen: the href is not a fragment,
// it is the bare "#", lookup is nil or the target does not exist.
func PlanAnchorScroll(href string, lookup OffsetLookup, viewportWidth int) (ScrollPlan, bool) {
	id, ok := strings.CutPrefix(href, "#")
	if !ok || id == "" || lookup == nil {
		return ScrollPlan{}, false
	}

	top, ok := lookup(id)
	if !ok {
		return ScrollPlan{}, false
	}

	return ScrollPlan{
		Top:         top - HeaderOffset,
		CollapseNav: viewportWidth <= MobileMaxWidth,
	}, true
}

// HeaderBackground returns the header background for a vertical scroll offset.
func HeaderBackground(scrollY float64) string {
	if scrollY > ScrolledThreshold {
		return HeaderScrolled
	}

	return HeaderTop
}
