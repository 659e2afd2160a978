package forms

import (
	"time"

	"github.com/yukikurage/it-helpdesk/internal/models"
	"github.com/yukikurage/it-helpdesk/internal/services"
)

// DateLayout is the format of date inputs.
const DateLayout = "2006-01-02"

const MsgDuplicateSerial = "Asset with this Serial number already exists."

type AssetForm struct {
	DeviceType     string `form:"device_type" binding:"required,max=100"`
	Brand          string `form:"brand" binding:"required,max=100"`
	SerialNumber   string `form:"serial_number" binding:"required,max=100"`
	PurchaseDate   string `form:"purchase_date" binding:"required,datetime=2006-01-02"`
	WarrantyExpiry string `form:"warranty_expiry" binding:"required,datetime=2006-01-02"`
	Status         string `form:"status" binding:"required,oneof=in_use available under_repair"`
	AssignedTo     string `form:"assigned_to" binding:"omitempty,pk"`
}

func NewAssetForm() *AssetForm {
	return &AssetForm{Status: string(models.AssetStatusAvailable)}
}

// NewAssetFormFrom prefills the form from a stored asset.
func NewAssetFormFrom(asset *models.Asset) *AssetForm {
	return &AssetForm{
		DeviceType:     asset.DeviceType,
		Brand:          asset.Brand,
		SerialNumber:   asset.SerialNumber,
		PurchaseDate:   time.Time(asset.PurchaseDate).Format(DateLayout),
		WarrantyExpiry: time.Time(asset.WarrantyExpiry).Format(DateLayout),
		Status:         string(asset.Status),
		AssignedTo:     formatID(asset.AssignedToID),
	}
}

// ToInput must only be called on a form that passed Bind.
func (f *AssetForm) ToInput() services.AssetInput {
	purchase, _ := time.Parse(DateLayout, f.PurchaseDate)
	expiry, _ := time.Parse(DateLayout, f.WarrantyExpiry)

	return services.AssetInput{
		DeviceType:     f.DeviceType,
		Brand:          f.Brand,
		SerialNumber:   f.SerialNumber,
		PurchaseDate:   purchase,
		WarrantyExpiry: expiry,
		Status:         models.AssetStatus(f.Status),
		AssignedToID:   optionalID(f.AssignedTo),
	}
}

// AssetAssignForm is the restricted edit: assignee and status only.
type AssetAssignForm struct {
	AssignedTo string `form:"assigned_to" binding:"omitempty,pk"`
	Status     string `form:"status" binding:"required,oneof=in_use available under_repair"`
}

func NewAssetAssignForm(asset *models.Asset) *AssetAssignForm {
	return &AssetAssignForm{
		AssignedTo: formatID(asset.AssignedToID),
		Status:     string(asset.Status),
	}
}

func (f *AssetAssignForm) ToInput(assetID uint64) services.AssignAssetInput {
	return services.AssignAssetInput{
		AssetID:      assetID,
		Status:       models.AssetStatus(f.Status),
		AssignedToID: optionalID(f.AssignedTo),
	}
}
