package dto

// DailyBalanceResponse is one day of delivered orders and revenue.
type DailyBalanceResponse struct {
	Day      string  `json:"day"`
	Quantity int     `json:"quantity"`
	Balance  float64 `json:"balance"`
}
