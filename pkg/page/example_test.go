package page_test

import (
	"fmt"
	"sitecontact/pkg/page"
)

// A browser binding resolves anchor ids against the document, then applies the
// plan: window.scrollTo({top: plan.Top, behavior: "smooth"}) and, on mobile,
// collapses the menu the visitor opened.
func Example_planAnchorScroll() {
	sections := map[string]int{"about": 640, "contact": 2100}
	lookup := func(id string) (int, bool) {
		top, ok := sections[id]

		return top, ok
	}

	nav := page.ToggleNav(page.NavHidden)
	fmt.Println("menu:", nav)

	if plan, ok := page.PlanAnchorScroll("#contact", lookup, 390); ok {
		fmt.Println("scroll to:", plan.Top)
		if plan.CollapseNav {
			nav = page.ToggleNav(nav)
		}
	}
	fmt.Println("menu:", nav)

	_, ok := page.PlanAnchorScroll("#", lookup, 390)
	fmt.Println("bare #:", ok)

	fmt.Println("header:", page.HeaderBackground(float64(2100-page.HeaderOffset)))

	// Output:
	// menu: flex
	// scroll to: 2020
	// menu: none
	// bare #: false
	// header: rgba(30, 41, 59, 0.95)
}
