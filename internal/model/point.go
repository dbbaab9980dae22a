package model

import "time"

type PointLedgerEntry struct {
	ID        string    `json:"id"`
	IsCredit  bool      `json:"is_credit"`
	Reason    string    `json:"reason"`
	Amount    int64     `json:"amount"`
	CreatedAt time.Time `json:"created_at"`
}

type GetBalanceRequest struct{}

type GetBalanceResponse struct {
	Points      int64 `json:"points"`
	TotalPoints int64 `json:"total_points"`
}

type GetMyLedgerRequest struct {
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

type GetMyLedgerResponse struct {
	Entries []PointLedgerEntry `json:"entries"`
}
