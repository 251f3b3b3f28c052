package timeline

import (
	"sort"
	"time"
)

// LaneItem is one bar to be stacked.
type LaneItem struct {
	ID       string
	Interval Interval
}

// AssignLanes returns the lane index of every item, aligned with items.
//
// Items are taken in the given order. Each goes into the lowest lane whose
// last bar ends at or before the item's start; when none is free a new lane
// is opened. A malformed item occupies zero time at its start.
func AssignLanes(items []LaneItem) []int {
	laneEnds := make([]time.Time, 0, 4)
	out := make([]int, len(items))

	for i, it := range items {
		start, end := it.Interval.Start, it.Interval.End
		if end.Before(start) {
			end = start
		}

		lane := -1
		for l, laneEnd := range laneEnds {
			if !laneEnd.After(start) {
				lane = l
				break
			}
		}
		if lane < 0 {
			laneEnds = append(laneEnds, end)
			lane = len(laneEnds) - 1
		} else {
			laneEnds[lane] = end
		}
		out[i] = lane
	}
	return out
}

// StackLanes maps each item ID to its lane, processing items in source order.
// IDs must be unique: a repeated ID still takes up its own lane, but only the
// last occurrence survives in the map. Use AssignLanes when IDs can repeat.
func StackLanes(items []LaneItem) map[string]int {
	lanes := AssignLanes(items)
	out := make(map[string]int, len(items))
	for i, it := range items {
		out[it.ID] = lanes[i]
	}
	return out
}

// StackLanesSorted stable-sorts items by start before stacking, which yields
// the minimum number of lanes. Equal starts keep their input order.
func StackLanesSorted(items []LaneItem) map[string]int {
	return StackLanes(SortByStart(items))
}

// SortByStart returns a copy of items stable-sorted by interval start.
func SortByStart(items []LaneItem) []LaneItem {
	sorted := make([]LaneItem, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Interval.Start.Before(sorted[j].Interval.Start)
	})
	return sorted
}

// LaneCount returns the number of lanes used by an assignment.
func LaneCount(assignments []int) int {
	n := 0
	for _, l := range assignments {
		if l+1 > n {
			n = l + 1
		}
	}
	return n
}
