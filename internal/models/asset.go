package models

import (
	"time"

	"gorm.io/datatypes"
)

type AssetStatus string

const (
	AssetStatusInUse       AssetStatus = "in_use"
	AssetStatusAvailable   AssetStatus = "available"
	AssetStatusUnderRepair AssetStatus = "under_repair"
)

var AssetStatusChoices = []Choice{
	{string(AssetStatusInUse), "In Use"},
	{string(AssetStatusAvailable), "Available"},
	{string(AssetStatusUnderRepair), "Under Repair"},
}

func (s AssetStatus) Display() string {
	l, _ := labelFor(AssetStatusChoices, string(s))
	return l
}

func (s AssetStatus) Valid() bool {
	_, ok := labelFor(AssetStatusChoices, string(s))
	return ok
}

type Asset struct {
	ID             uint64         `gorm:"primarykey" json:"id"`
	DeviceType     string         `gorm:"type:varchar(100);not null;index:idx_assets_type_brand,priority:1" json:"device_type"`
	Brand          string         `gorm:"type:varchar(100);not null;index:idx_assets_type_brand,priority:2" json:"brand"`
	SerialNumber   string         `gorm:"type:varchar(100);uniqueIndex;not null" json:"serial_number"`
	PurchaseDate   datatypes.Date `gorm:"not null" json:"purchase_date"`
	WarrantyExpiry datatypes.Date `gorm:"not null;index" json:"warranty_expiry"`
	Status         AssetStatus    `gorm:"type:varchar(20);not null;index" json:"status"`
	AssignedToID   *uint64        `gorm:"index" json:"assigned_to_id"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`

	// Relations
	AssignedTo *User `gorm:"foreignKey:AssignedToID;constraint:OnDelete:SET NULL" json:"assigned_to,omitempty"`
}

func (a Asset) String() string {
	return a.DeviceType + " - " + a.Brand + " (" + a.SerialNumber + ")"
}

// IsWarrantyExpired reports whether the warranty ended before today.
func (a Asset) IsWarrantyExpired(today time.Time) bool {
	return a.DaysUntilWarrantyExpiry(today) < 0
}

// DaysUntilWarrantyExpiry counts whole days from today to the expiry date;
// negative once the warranty has lapsed.
func (a Asset) DaysUntilWarrantyExpiry(today time.Time) int {
	expiry := DateOf(time.Time(a.WarrantyExpiry))
	return int(expiry.Sub(DateOf(today)).Hours() / 24)
}

// DateOf truncates t to midnight UTC of its calendar day.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
