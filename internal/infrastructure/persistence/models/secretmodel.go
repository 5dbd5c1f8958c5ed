package models

import "time"

type SecretModel struct {
	ID                string  `gorm:"type:uuid;primaryKey"`
	Content           string  `gorm:"type:text;not null;index:idx_secrets_content_created,priority:1"`
	AuthorSessionID   *string `gorm:"size:128;index"`
	IsReply           bool    `gorm:"not null;default:false"`
	ParentSecretID    *string `gorm:"type:uuid;index"`
	IsDelivered       bool    `gorm:"not null;default:false;index"`
	DeliveredAt       *time.Time
	ReceiverSessionID *string `gorm:"size:128;index"`
	ReplyCount        int     `gorm:"not null;default:0"`
	DeliverAfter      *time.Time
	IsSealed          bool    `gorm:"not null;default:false"`
	SealType          *string `gorm:"size:64"`
	PaperID           *string `gorm:"size:64"`
	InkEffect         *string `gorm:"size:64"`
	CreatedAt         time.Time `gorm:"index:idx_secrets_content_created,priority:2"`
}

func (SecretModel) TableName() string {
	return "secrets"
}

type ReplyModel struct {
	ID              string `gorm:"type:uuid;primaryKey"`
	SecretID        string `gorm:"type:uuid;not null;index"`
	Content         string `gorm:"type:text;not null"`
	AuthorSessionID string `gorm:"size:128;not null"`
	DeletedAt       *time.Time
	CreatedAt       time.Time
}

func (ReplyModel) TableName() string {
	return "replies"
}
