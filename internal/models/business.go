package models

import (
	"encoding/json"
	"time"
)

type BusinessSettings struct {
	Notifications bool   `gorm:"default:true" json:"notifications"`
	Language      string `gorm:"size:10;default:'en'" json:"language"`
}

type Business struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	OwnerID uint `gorm:"index" json:"owner_id"`

	OwnerName           string `gorm:"size:100;not null" json:"owner_name"`
	Email               string `gorm:"size:100;not null" json:"email"`
	BusinessName        string `gorm:"size:100;not null" json:"business_name"`
	BusinessDescription string `gorm:"size:500" json:"business_description"`

	WhatsappIntegrated bool   `gorm:"default:false" json:"whatsapp_integrated"`
	WhatsappToken      string `gorm:"size:255" json:"-"`

	// JSON-encoded list of role strings, e.g. ["businessOwner"]
	Roles string `gorm:"type:text" json:"-"`

	Settings BusinessSettings `gorm:"embedded;embeddedPrefix:settings_" json:"settings"`

	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	LastLoginAt time.Time `json:"last_login_at"`
}

func (b *Business) SetRoles(roles []string) {
	if data, err := json.Marshal(roles); err == nil {
		b.Roles = string(data)
	}
}

func (b *Business) RoleList() []string {
	var roles []string
	if b.Roles != "" {
		_ = json.Unmarshal([]byte(b.Roles), &roles)
	}
	return roles
}
