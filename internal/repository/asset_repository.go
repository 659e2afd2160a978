package repository

import (
	"time"

	"github.com/yukikurage/it-helpdesk/internal/database"
	"github.com/yukikurage/it-helpdesk/internal/models"
	"github.com/yukikurage/it-helpdesk/internal/utils"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const assetOrder = "assets.device_type ASC, assets.brand ASC, assets.id ASC"

// GormAssetRepository is a GORM implementation of AssetRepository
type GormAssetRepository struct {
	db *gorm.DB
}

// NewAssetRepository creates a new AssetRepository
func NewAssetRepository(db *gorm.DB) AssetRepository {
	return &GormAssetRepository{db: db}
}

func (r *GormAssetRepository) Create(asset *models.Asset) error {
	return r.db.Omit(clause.Associations).Create(asset).Error
}

func (r *GormAssetRepository) FindByID(id uint64, preload ...string) (*models.Asset, error) {
	var asset models.Asset
	query := r.db

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&asset, id).Error; err != nil {
		return nil, err
	}

	return &asset, nil
}

func (r *GormAssetRepository) Update(asset *models.Asset) error {
	return r.db.Omit(clause.Associations).Save(asset).Error
}

func (r *GormAssetRepository) filtered(filter AssetFilter) *gorm.DB {
	query := r.db.Model(&models.Asset{})

	if filter.Status != "" {
		query = query.Where("assets.status = ?", filter.Status)
	}

	return query.Scopes(database.Search(filter.Search,
		"assets.device_type", "assets.brand", "assets.serial_number"))
}

// List retrieves assets with filtering and pagination
func (r *GormAssetRepository) List(filter AssetFilter, page, pageSize int) ([]models.Asset, utils.Page, error) {
	var total int64
	if err := r.filtered(filter).Count(&total).Error; err != nil {
		return nil, utils.Page{}, err
	}

	p := utils.NewPage(page, pageSize, total)
	if total == 0 {
		return []models.Asset{}, p, nil
	}

	var assets []models.Asset
	err := r.filtered(filter).
		Preload("AssignedTo").
		Order(assetOrder).
		Scopes(database.Paginate(p)).
		Find(&assets).Error
	if err != nil {
		return nil, utils.Page{}, err
	}

	return assets, p, nil
}

func (r *GormAssetRepository) ExistsBySerial(serial string, excludeID uint64) (bool, error) {
	query := r.db.Model(&models.Asset{}).Where("serial_number = ?", serial)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *GormAssetRepository) CountByStatus() (map[models.AssetStatus]int64, error) {
	type statusCount struct {
		Status models.AssetStatus
		Count  int64
	}
	var rows []statusCount
	if err := r.db.Model(&models.Asset{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	counts := make(map[models.AssetStatus]int64, len(models.AssetStatusChoices))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}

func (r *GormAssetRepository) CountWarrantyExpiringBetween(from, to time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&models.Asset{}).
		Where("warranty_expiry >= ? AND warranty_expiry <= ?",
			datatypes.Date(models.DateOf(from)), datatypes.Date(models.DateOf(to))).
		Count(&count).Error
	return count, err
}

func (r *GormAssetRepository) ListByAssignee(userID uint64) ([]models.Asset, error) {
	var assets []models.Asset
	err := r.db.Where("assigned_to_id = ?", userID).Order(assetOrder).Find(&assets).Error
	return assets, err
}

func (r *GormAssetRepository) CountByAssignee(userID uint64) (int64, error) {
	var count int64
	err := r.db.Model(&models.Asset{}).Where("assigned_to_id = ?", userID).Count(&count).Error
	return count, err
}
