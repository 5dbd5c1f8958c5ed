package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"
)

type PurchaseModel struct {
	ID          string  `gorm:"type:uuid;primaryKey"`
	SessionID   string  `gorm:"size:128;not null;index"`
	FeatureType string  `gorm:"size:32;not null"`
	OfferID     string  `gorm:"size:64;not null"`
	Amount      float64 `gorm:"not null"`
	Currency    string  `gorm:"size:10;not null"`
	Provider    string  `gorm:"size:20;not null"`
	PaymentRef  string  `gorm:"size:128;not null;uniqueIndex"`
	Status      string  `gorm:"size:32;not null"`
	Metadata    JSONB   `gorm:"type:jsonb"`
	ExpiresAt   *time.Time
	CreatedAt   time.Time `gorm:"index"`
	UpdatedAt   time.Time
}

func (PurchaseModel) TableName() string {
	return "purchases"
}

type JSONB map[string]string

func (j JSONB) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	return json.Marshal(j)
}

func (j *JSONB) Scan(value interface{}) error {
	if value == nil {
		*j = make(map[string]string)
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return nil
	}

	return json.Unmarshal(bytes, j)
}
