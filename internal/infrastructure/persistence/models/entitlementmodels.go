package models

import "time"

type LongLetterEntitlementModel struct {
	ID         uint   `gorm:"primaryKey"`
	SessionID  string `gorm:"size:128;not null;index"`
	MaxChars   int    `gorm:"not null"`
	PurchaseID string `gorm:"type:uuid;not null;uniqueIndex"`
	ExpiresAt  *time.Time
	CreatedAt  time.Time
}

func (LongLetterEntitlementModel) TableName() string {
	return "long_letter_entitlements"
}

type SealEntitlementModel struct {
	ID            uint   `gorm:"primaryKey"`
	SessionID     string `gorm:"size:128;not null;index"`
	SealType      string `gorm:"size:64;not null"`
	RemainingUses int    `gorm:"not null;default:1"`
	PurchaseID    string `gorm:"type:uuid;not null;uniqueIndex"`
	ExpiresAt     *time.Time
	CreatedAt     time.Time
}

func (SealEntitlementModel) TableName() string {
	return "seal_entitlements"
}

type InkEntitlementModel struct {
	ID         uint   `gorm:"primaryKey"`
	SessionID  string `gorm:"size:128;not null;uniqueIndex:uniq_ink_session_effect,priority:1"`
	InkEffect  string `gorm:"size:64;not null;uniqueIndex:uniq_ink_session_effect,priority:2"`
	PurchaseID string `gorm:"type:uuid;not null"`
	CreatedAt  time.Time
}

func (InkEntitlementModel) TableName() string {
	return "ink_entitlements"
}

type UnlockedPaperModel struct {
	ID         uint   `gorm:"primaryKey"`
	SessionID  string `gorm:"size:128;not null;uniqueIndex:uniq_paper_session_paper,priority:1"`
	PaperID    string `gorm:"size:64;not null;uniqueIndex:uniq_paper_session_paper,priority:2"`
	PurchaseID string `gorm:"type:uuid;not null"`
	CreatedAt  time.Time
}

func (UnlockedPaperModel) TableName() string {
	return "unlocked_papers"
}

type SanctuaryAccessModel struct {
	ID         uint   `gorm:"primaryKey"`
	SessionID  string `gorm:"size:128;not null;index"`
	Tier       string `gorm:"size:32;not null"`
	PurchaseID string `gorm:"type:uuid;not null;uniqueIndex"`
	ExpiresAt  *time.Time
	CreatedAt  time.Time
}

func (SanctuaryAccessModel) TableName() string {
	return "sanctuary_access"
}

type GiftVoucherModel struct {
	ID             uint   `gorm:"primaryKey"`
	GiverSessionID string `gorm:"size:128;not null;index"`
	GiftToken      string `gorm:"size:64;not null;uniqueIndex"`
	PurchaseID     string `gorm:"type:uuid;not null;uniqueIndex"`
	MaxChars       int    `gorm:"not null"`
	SealsQuota     int    `gorm:"not null"`
	ExpiresAt      *time.Time
	CreatedAt      time.Time
}

func (GiftVoucherModel) TableName() string {
	return "gift_vouchers"
}
