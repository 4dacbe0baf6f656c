// file: internals/features/users/auth/model/token_blacklist_model.go
package model

import (
	"time"

	"gorm.io/gorm"
)

// Access token yang dicabut sebelum kadaluarsa (logout).
type TokenBlacklist struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Token     string         `gorm:"type:text;not null;unique" json:"token"`
	ExpiredAt time.Time      `gorm:"column:expired_at;not null" json:"expired_at"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (TokenBlacklist) TableName() string {
	return "token_blacklist"
}
