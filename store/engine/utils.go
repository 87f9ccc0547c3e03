package engine

// ManhattanDistance calculates the Manhattan distance between two cells
func ManhattanDistance(from, to Cell) int {
	return abs(from.X-to.X) + abs(from.Y-to.Y)
}

// EstimateMinutes converts a walking distance in feet to whole minutes, rounding up
func EstimateMinutes(distance, feetPerMinute int) int {
	if distance <= 0 || feetPerMinute <= 0 {
		return 0
	}
	return (distance + feetPerMinute - 1) / feetPerMinute
}

// abs returns the absolute value of x
func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func sign(x int) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}
