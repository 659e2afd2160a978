package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/yukikurage/it-helpdesk/internal/constants"
	"github.com/yukikurage/it-helpdesk/internal/models"
	"github.com/yukikurage/it-helpdesk/internal/repository"
	"github.com/yukikurage/it-helpdesk/internal/utils"
	"github.com/yukikurage/it-helpdesk/pkg/metrics"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// AssetService handles asset inventory business logic
type AssetService struct {
	assetRepo repository.AssetRepository
	userRepo  repository.UserRepository
}

func NewAssetService(assetRepo repository.AssetRepository, userRepo repository.UserRepository) *AssetService {
	return &AssetService{
		assetRepo: assetRepo,
		userRepo:  userRepo,
	}
}

// AssetInput carries every settable asset field.
type AssetInput struct {
	DeviceType     string
	Brand          string
	SerialNumber   string
	PurchaseDate   time.Time
	WarrantyExpiry time.Time
	Status         models.AssetStatus
	AssignedToID   *uint64
}

// AssignAssetInput is the restricted edit.
type AssignAssetInput struct {
	AssetID      uint64
	Status       models.AssetStatus
	AssignedToID *uint64
}

// Create adds an asset. A serial number already in use yields ErrDuplicateSerial
// and nothing is written.
func (s *AssetService) Create(input AssetInput) (*models.Asset, error) {
	if err := s.checkSerial(input.SerialNumber, 0); err != nil {
		return nil, err
	}
	if err := s.checkAssignee(input.AssignedToID); err != nil {
		return nil, err
	}

	asset := &models.Asset{}
	applyAssetInput(asset, input)

	if err := s.assetRepo.Create(asset); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateSerial
		}
		return nil, fmt.Errorf("failed to create asset: %w", err)
	}

	metrics.AssetsRegistered.Inc()
	return asset, nil
}

// Update replaces every field of an existing asset.
func (s *AssetService) Update(id uint64, input AssetInput) (*models.Asset, error) {
	asset, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if err := s.checkSerial(input.SerialNumber, id); err != nil {
		return nil, err
	}
	if err := s.checkAssignee(input.AssignedToID); err != nil {
		return nil, err
	}

	applyAssetInput(asset, input)
	asset.AssignedTo = nil

	if err := s.assetRepo.Update(asset); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateSerial
		}
		return nil, fmt.Errorf("failed to update asset: %w", err)
	}
	return asset, nil
}

// Assign sets the assignee and status only.
func (s *AssetService) Assign(input AssignAssetInput) (*models.Asset, error) {
	asset, err := s.Get(input.AssetID)
	if err != nil {
		return nil, err
	}
	if err := s.checkAssignee(input.AssignedToID); err != nil {
		return nil, err
	}

	asset.Status = input.Status
	asset.AssignedToID = input.AssignedToID
	asset.AssignedTo = nil

	if err := s.assetRepo.Update(asset); err != nil {
		return nil, fmt.Errorf("failed to update asset: %w", err)
	}
	return asset, nil
}

func (s *AssetService) Get(id uint64) (*models.Asset, error) {
	asset, err := s.assetRepo.FindByID(id, "AssignedTo")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAssetNotFound
		}
		return nil, fmt.Errorf("failed to find asset: %w", err)
	}
	return asset, nil
}

func (s *AssetService) List(status models.AssetStatus, search string, page int) ([]models.Asset, utils.Page, error) {
	assets, p, err := s.assetRepo.List(repository.AssetFilter{
		Status: status,
		Search: search,
	}, page, constants.AssetPageSize)
	if err != nil {
		return nil, utils.Page{}, fmt.Errorf("failed to list assets: %w", err)
	}
	return assets, p, nil
}

// AssignedTo lists the assets held by a user.
func (s *AssetService) AssignedTo(userID uint64) ([]models.Asset, error) {
	assets, err := s.assetRepo.ListByAssignee(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list assigned assets: %w", err)
	}
	return assets, nil
}

func (s *AssetService) checkSerial(serial string, excludeID uint64) error {
	taken, err := s.assetRepo.ExistsBySerial(serial, excludeID)
	if err != nil {
		return fmt.Errorf("failed to check serial number: %w", err)
	}
	if taken {
		return ErrDuplicateSerial
	}
	return nil
}

func (s *AssetService) checkAssignee(id *uint64) error {
	if id == nil {
		return nil
	}
	if _, err := s.userRepo.FindByID(*id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAssigneeNotFound
		}
		return fmt.Errorf("failed to find assignee: %w", err)
	}
	return nil
}

func applyAssetInput(asset *models.Asset, input AssetInput) {
	asset.DeviceType = input.DeviceType
	asset.Brand = input.Brand
	asset.SerialNumber = input.SerialNumber
	asset.PurchaseDate = datatypes.Date(models.DateOf(input.PurchaseDate))
	asset.WarrantyExpiry = datatypes.Date(models.DateOf(input.WarrantyExpiry))
	asset.Status = input.Status
	asset.AssignedToID = input.AssignedToID
}
