// Package timeline lays out Gantt-style schedule charts.
//
// It projects project and task date ranges onto a month-gridded, horizontally
// scrollable canvas: the view window is derived and normalized to whole
// months, each month gets a column sized for the container, every interval is
// clamped to the window and scaled to pixels, and task bars are stacked into
// lanes beneath their project so overlapping work does not collide.
//
// Everything here is a pure function of its inputs. Callers recompute the
// layout whenever the data or the container width changes.
package timeline
