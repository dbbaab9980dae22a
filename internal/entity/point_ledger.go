package entity

// PointLedger exists lazily, one per user, created on the first point
// transaction or profile view.
type PointLedger struct {
	Base
	UserID string `gorm:"unique"`
	User   User   `gorm:"foreignKey:UserID"`
}

// PointLedgerEntry is immutable once created. Credits carry IsCredit=true,
// debits IsCredit=false; Amount is always positive.
type PointLedgerEntry struct {
	Base
	LedgerID string      `gorm:"index"`
	Ledger   PointLedger `gorm:"foreignKey:LedgerID"`

	IsCredit bool
	Reason   string
	Amount   int64
}

// Reason codes written by the challenge certification flow.
const (
	PointReasonParticipation         = "참여"
	PointReasonParticipationCanceled = "참여취소"
)
