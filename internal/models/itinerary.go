package models

// DayPlan represents one day of a trip's itinerary.
type DayPlan struct {
	ID     string
	TripID string

	// Date is an ISO date (YYYY-MM-DD).
	Date string

	// Places are the day's entries in visit order.
	Places []DayPlanPlace
}

// DayPlanPlace is one scheduled visit within a day plan.
type DayPlanPlace struct {
	ID        string
	DayPlanID string
	PlaceID   string

	// StartTime and EndTime are clock times (HH:MM).
	StartTime string
	EndTime   string

	// OrderIndex positions the entry within the day.
	OrderIndex int

	// TravelTimeToNext is a free-form duration to the next stop.
	TravelTimeToNext string
}
