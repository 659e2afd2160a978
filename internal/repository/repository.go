package repository

import (
	"time"

	"github.com/yukikurage/it-helpdesk/internal/models"
	"github.com/yukikurage/it-helpdesk/internal/utils"
)

// TicketRepository defines the interface for ticket data access
type TicketRepository interface {
	// Create inserts a ticket without touching its associations
	Create(ticket *models.Ticket) error

	// FindByID finds a ticket by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Ticket, error)

	// List returns one clamped page of tickets matching the filter
	List(filter TicketFilter, page, pageSize int) ([]models.Ticket, utils.Page, error)

	// ListAll returns every ticket in default order with employee and assignee loaded
	ListAll() ([]models.Ticket, error)

	// Recent returns the newest tickets raised by an employee
	Recent(employeeID uint64, limit int) ([]models.Ticket, error)

	// UpdateWithAudit saves the ticket and appends the audit comments atomically
	UpdateWithAudit(ticket *models.Ticket, comments []models.TicketComment) error

	AddComment(comment *models.TicketComment) error

	// ListComments returns a ticket's comments oldest first
	ListComments(ticketID uint64) ([]models.TicketComment, error)

	// Stats computes aggregate counts, optionally restricted to one employee
	Stats(employeeID *uint64) (*TicketStats, error)

	// CategoryBreakdown counts tickets per category, largest first
	CategoryBreakdown() ([]CategoryCount, error)

	CountCreatedSince(since time.Time) (int64, error)

	CountByEmployee(employeeID uint64) (int64, error)
}

// TicketFilter holds filtering options for listing tickets.
// Filters are AND-combined; Search matches any of the searchable fields.
type TicketFilter struct {
	EmployeeID *uint64
	Status     models.TicketStatus
	Category   models.TicketCategory
	Urgency    models.TicketUrgency
	Search     string
	// SearchCreator extends Search to the creator's username
	SearchCreator bool
}

type TicketStats struct {
	Total             int64
	ByStatus          map[models.TicketStatus]int64
	HighUrgencyActive int64
	UnassignedActive  int64
}

type CategoryCount struct {
	Category models.TicketCategory
	Count    int64
}

// AssetRepository defines the interface for asset data access
type AssetRepository interface {
	Create(asset *models.Asset) error

	FindByID(id uint64, preload ...string) (*models.Asset, error)

	// Update replaces every stored field of the asset
	Update(asset *models.Asset) error

	// List returns one clamped page of assets matching the filter
	List(filter AssetFilter, page, pageSize int) ([]models.Asset, utils.Page, error)

	// ExistsBySerial reports whether another asset already uses serial.
	// excludeID skips the asset being edited; pass 0 on create.
	ExistsBySerial(serial string, excludeID uint64) (bool, error)

	CountByStatus() (map[models.AssetStatus]int64, error)

	// CountWarrantyExpiringBetween counts assets whose warranty ends in [from, to]
	CountWarrantyExpiringBetween(from, to time.Time) (int64, error)

	ListByAssignee(userID uint64) ([]models.Asset, error)

	CountByAssignee(userID uint64) (int64, error)
}

type AssetFilter struct {
	Status models.AssetStatus
	Search string
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID with groups loaded
	FindByID(id uint64) (*models.User, error)

	// FindByUsername finds a user by username with groups loaded
	FindByUsername(username string) (*models.User, error)

	ExistsByUsername(username string) (bool, error)

	// ListActive lists active users ordered by username
	ListActive() ([]models.User, error)

	UpdateLastLogin(id uint64, at time.Time) error

	// EnsureGroup returns the named group, creating it when missing
	EnsureGroup(name string) (*models.Group, error)

	AddToGroup(user *models.User, group *models.Group) error
}
