package model

// DailyBalance aggregates delivered orders for one calendar day.
type DailyBalance struct {
	Day      string
	Quantity int
	Balance  float64
}
