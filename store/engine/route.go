package engine

import "fmt"

// Units converts grid cells into feet and feet into walking minutes
type Units struct {
	FeetPerCell   int `json:"feet_per_cell"`
	FeetPerMinute int `json:"feet_per_minute"`
}

// DefaultUnits is 10 ft per cell at a 100 ft/min walking pace
var DefaultUnits = Units{
	FeetPerCell:   DefaultFeetPerCell,
	FeetPerMinute: DefaultWalkingFeetPerMinute,
}

// CalculateRoute returns straight-line directions using DefaultUnits
func CalculateRoute(start, end Cell) Route {
	return DefaultUnits.CalculateRoute(start, end)
}

// CalculateRoute builds east/west then north/south directions between two cells.
// Obstacles are ignored; the result drives distance and time estimates.
func (u Units) CalculateRoute(start, end Cell) Route {
	steps := make([]RouteStep, 0, 3)
	totalDistance := 0
	currentX := start.X

	deltaX := end.X - start.X
	if deltaX != 0 {
		direction := "east"
		if deltaX < 0 {
			direction = "west"
		}
		distance := abs(deltaX) * u.FeetPerCell
		totalDistance += distance

		steps = append(steps, RouteStep{
			Instruction: fmt.Sprintf("Head %s for %d feet", direction, distance),
			Distance:    distance,
			Coordinates: Cell{X: end.X, Y: start.Y},
		})
		currentX = end.X
	}

	deltaY := end.Y - start.Y
	if deltaY != 0 {
		direction := "south"
		if deltaY < 0 {
			direction = "north"
		}
		distance := abs(deltaY) * u.FeetPerCell
		totalDistance += distance

		steps = append(steps, RouteStep{
			Instruction: fmt.Sprintf("Turn and head %s for %d feet", direction, distance),
			Distance:    distance,
			Coordinates: Cell{X: currentX, Y: end.Y},
		})
	}

	steps = append(steps, RouteStep{
		Instruction: ArrivedInstruction,
		Distance:    0,
		Coordinates: end,
	})

	return Route{
		Steps:         steps,
		TotalDistance: totalDistance,
		EstimatedTime: EstimateMinutes(totalDistance, u.FeetPerMinute),
	}
}
