package models

import (
	"time"
)

type TicketCategory string

const (
	CategoryHardware TicketCategory = "hardware"
	CategorySoftware TicketCategory = "software"
	CategoryNetwork  TicketCategory = "network"
	CategoryOther    TicketCategory = "other"
)

type TicketUrgency string

const (
	UrgencyLow    TicketUrgency = "low"
	UrgencyMedium TicketUrgency = "medium"
	UrgencyHigh   TicketUrgency = "high"
)

type TicketStatus string

const (
	TicketStatusOpen       TicketStatus = "open"
	TicketStatusInProgress TicketStatus = "in_progress"
	TicketStatusResolved   TicketStatus = "resolved"
	TicketStatusClosed     TicketStatus = "closed"
)

// Choice is a stored value paired with its human-readable label.
type Choice struct {
	Value string
	Label string
}

var (
	TicketCategoryChoices = []Choice{
		{string(CategoryHardware), "Hardware"},
		{string(CategorySoftware), "Software"},
		{string(CategoryNetwork), "Network"},
		{string(CategoryOther), "Other"},
	}
	TicketUrgencyChoices = []Choice{
		{string(UrgencyLow), "Low"},
		{string(UrgencyMedium), "Medium"},
		{string(UrgencyHigh), "High"},
	}
	TicketStatusChoices = []Choice{
		{string(TicketStatusOpen), "Open"},
		{string(TicketStatusInProgress), "In Progress"},
		{string(TicketStatusResolved), "Resolved"},
		{string(TicketStatusClosed), "Closed"},
	}
)

// ActiveTicketStatuses are the statuses that still need attention.
var ActiveTicketStatuses = []TicketStatus{TicketStatusOpen, TicketStatusInProgress}

func labelFor(choices []Choice, value string) (string, bool) {
	for _, c := range choices {
		if c.Value == value {
			return c.Label, true
		}
	}
	return value, false
}

func (c TicketCategory) Display() string {
	l, _ := labelFor(TicketCategoryChoices, string(c))
	return l
}

func (c TicketCategory) Valid() bool {
	_, ok := labelFor(TicketCategoryChoices, string(c))
	return ok
}

func (u TicketUrgency) Display() string {
	l, _ := labelFor(TicketUrgencyChoices, string(u))
	return l
}

func (u TicketUrgency) Valid() bool {
	_, ok := labelFor(TicketUrgencyChoices, string(u))
	return ok
}

// Color returns the badge colour used by the templates.
func (u TicketUrgency) Color() string {
	switch u {
	case UrgencyLow:
		return "success"
	case UrgencyMedium:
		return "warning"
	case UrgencyHigh:
		return "danger"
	default:
		return "secondary"
	}
}

func (s TicketStatus) Display() string {
	l, _ := labelFor(TicketStatusChoices, string(s))
	return l
}

func (s TicketStatus) Valid() bool {
	_, ok := labelFor(TicketStatusChoices, string(s))
	return ok
}

func (s TicketStatus) Color() string {
	switch s {
	case TicketStatusOpen:
		return "danger"
	case TicketStatusInProgress:
		return "warning"
	case TicketStatusResolved:
		return "success"
	default:
		return "secondary"
	}
}

type Ticket struct {
	ID          uint64         `gorm:"primarykey" json:"id"`
	Title       string         `gorm:"type:varchar(200);not null" json:"title"`
	Category    TicketCategory `gorm:"type:varchar(20);not null;index" json:"category"`
	Description string         `gorm:"type:text;not null" json:"description"`
	Urgency     TicketUrgency  `gorm:"type:varchar(10);not null;index" json:"urgency"`
	Status      TicketStatus   `gorm:"type:varchar(20);not null;default:'open';index" json:"status"`
	CreatedAt   time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`

	// Customer contact details
	CustomerName           string `gorm:"type:varchar(200)" json:"customer_name"`
	CustomerPhone          string `gorm:"type:varchar(20)" json:"customer_phone"`
	CustomerEmail          string `gorm:"type:varchar(254)" json:"customer_email"`
	CustomerAlternatePhone string `gorm:"type:varchar(20)" json:"customer_alternate_phone"`

	Screenshot      string  `gorm:"type:varchar(255)" json:"screenshot"`
	ResolutionNotes string  `gorm:"type:text" json:"resolution_notes"`
	EmployeeID      uint64  `gorm:"not null;index" json:"employee_id"`
	AssignedToID    *uint64 `gorm:"index" json:"assigned_to_id"`

	// Relations
	Employee   User            `gorm:"foreignKey:EmployeeID;constraint:OnDelete:CASCADE" json:"employee,omitempty"`
	AssignedTo *User           `gorm:"foreignKey:AssignedToID;constraint:OnDelete:SET NULL" json:"assigned_to,omitempty"`
	Comments   []TicketComment `gorm:"foreignKey:TicketID;constraint:OnDelete:CASCADE" json:"comments,omitempty"`
}

func (t Ticket) String() string {
	return t.Title + " (" + t.Status.Display() + ")"
}

type TicketComment struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	TicketID  uint64    `gorm:"not null;index" json:"ticket_id"`
	UserID    uint64    `gorm:"not null" json:"user_id"`
	Comment   string    `gorm:"type:text;not null" json:"comment"`
	CreatedAt time.Time `json:"created_at"`

	// Relations
	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
}
