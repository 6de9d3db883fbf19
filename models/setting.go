package models

import "time"

// Setting is a key/value pair upserted by key, e.g. the payment QR image URL.
type Setting struct {
	Key       string    `gorm:"type:varchar(64);primaryKey" json:"key"`
	Value     string    `gorm:"type:text;not null" json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

const SettingPaymentQRURL = "payment_qr_url"
