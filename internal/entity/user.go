package entity

import "time"

type User struct {
	Base
	Name           string `gorm:"unique"`
	Email          string `gorm:"unique"`
	HashedPassword string
	Address        string
	Phone          string
	IsSeller       bool
	Role           string `gorm:"default:USER"`

	// Points is the spendable balance, redundantly stored next to the
	// ledger and kept in sync within the same transaction. It may go
	// negative. TotalPoints is a lifetime counter that the credit/debit
	// path never touches.
	Points      int64
	TotalPoints int64

	LastLoginAt time.Time
}

const (
	SuperAdminRole = "SUPER_ADMIN"
	AdminRole      = "ADMIN"
	UserRole       = "USER"
)

var GlobalAdminRoles = []string{SuperAdminRole, AdminRole}
