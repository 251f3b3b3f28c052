package timeline

import "time"

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// q1 is the Jan–Mar 2024 window used throughout the scenarios.
func q1() ViewWindow {
	return NormalizeWindow(ViewWindow{Start: date(2024, time.January, 1), End: date(2024, time.March, 31)})
}

func days(n int) time.Duration {
	return time.Duration(n) * 24 * time.Hour
}
