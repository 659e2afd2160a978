package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/it-helpdesk/internal/models"
	"github.com/yukikurage/it-helpdesk/internal/repository"
	"github.com/yukikurage/it-helpdesk/internal/testutil"
	"gorm.io/gorm"
)

func newAssetService(t *testing.T) (*AssetService, *gorm.DB) {
	db := testutil.NewDB(t)
	return NewAssetService(repository.NewAssetRepository(db), repository.NewUserRepository(db)), db
}

func assetInput(serial string) AssetInput {
	return AssetInput{
		DeviceType:     "Laptop",
		Brand:          "Lenovo",
		SerialNumber:   serial,
		PurchaseDate:   time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC),
		WarrantyExpiry: time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
		Status:         models.AssetStatusAvailable,
	}
}

func TestAssetCreate_DuplicateSerialLeavesStoreUnchanged(t *testing.T) {
	service, db := newAssetService(t)

	_, err := service.Create(assetInput("SN-1"))
	require.NoError(t, err)

	_, err = service.Create(assetInput("SN-1"))
	assert.ErrorIs(t, err, ErrDuplicateSerial)

	var count int64
	require.NoError(t, db.Model(&models.Asset{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestAssetCreate_UnknownAssignee(t *testing.T) {
	service, _ := newAssetService(t)
	missing := uint64(77)

	input := assetInput("SN-2")
	input.AssignedToID = &missing
	_, err := service.Create(input)
	assert.ErrorIs(t, err, ErrAssigneeNotFound)
}

func TestAssetUpdate_FullEdit(t *testing.T) {
	service, db := newAssetService(t)
	owner := testutil.CreateUser(t, db, "riley")

	asset, err := service.Create(assetInput("SN-3"))
	require.NoError(t, err)
	_, err = service.Create(assetInput("SN-4"))
	require.NoError(t, err)

	// keeping its own serial is not a duplicate
	input := assetInput("SN-3")
	input.Brand = "HP"
	input.AssignedToID = &owner.ID
	input.Status = models.AssetStatusInUse
	updated, err := service.Update(asset.ID, input)
	require.NoError(t, err)
	assert.Equal(t, "HP", updated.Brand)

	// taking another asset's serial is
	_, err = service.Update(asset.ID, assetInput("SN-4"))
	assert.ErrorIs(t, err, ErrDuplicateSerial)

	reloaded, err := service.Get(asset.ID)
	require.NoError(t, err)
	assert.Equal(t, "SN-3", reloaded.SerialNumber)
	require.NotNil(t, reloaded.AssignedTo)
	assert.Equal(t, "riley", reloaded.AssignedTo.Username)
}

func TestAssetAssign_OnlyTouchesAssigneeAndStatus(t *testing.T) {
	service, db := newAssetService(t)
	owner := testutil.CreateUser(t, db, "sam")

	asset, err := service.Create(assetInput("SN-5"))
	require.NoError(t, err)

	_, err = service.Assign(AssignAssetInput{AssetID: asset.ID, Status: models.AssetStatusInUse, AssignedToID: &owner.ID})
	require.NoError(t, err)

	reloaded, err := service.Get(asset.ID)
	require.NoError(t, err)
	assert.Equal(t, models.AssetStatusInUse, reloaded.Status)
	assert.Equal(t, "Lenovo", reloaded.Brand)
	assert.Equal(t, "2023-06-01", time.Time(reloaded.PurchaseDate).Format("2006-01-02"))

	assigned, err := service.AssignedTo(owner.ID)
	require.NoError(t, err)
	assert.Len(t, assigned, 1)

	_, err = service.Assign(AssignAssetInput{AssetID: 999, Status: models.AssetStatusAvailable})
	assert.ErrorIs(t, err, ErrAssetNotFound)
}
