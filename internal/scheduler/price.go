package scheduler

import "math"

// TotalPrice charges the hourly rate pro rata for the window, rounded to cents.
func TotalPrice(hourly float64, window Interval) float64 {
	return math.Round(hourly*window.Hours()*100) / 100
}
