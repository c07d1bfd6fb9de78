// Package carousel provides a paged container. A Carousel parses its "pages"
// into CarouselPage elements, renders all of them, and shows only the current
// one. The Navigator owns the page index, the loop flag and at most one
// auto-advance task; every manual move restarts the auto-advance clock.
package carousel
