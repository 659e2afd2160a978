package constants

// Session and context keys
const (
	SessionCookieName = "helpdesk_session"

	ContextKeyUserID      = "user_id"
	ContextKeyCurrentUser = "current_user"
)

// Roles
const (
	// ITAdminGroup grants administrator capability to non-staff users.
	ITAdminGroup = "IT Admin"
)

// Pagination
const (
	MinPage                = 1
	EmployeeTicketPageSize = 10
	AdminTicketPageSize    = 15
	AssetPageSize          = 15
	RecentTicketLimit      = 5
)

// Reporting windows
const (
	WarrantyWarningDays  = 30
	RecentActivityDays   = 7
	ExportDescriptionMax = 100
	ExportFileName       = "tickets_export.csv"
	ExportTimeLayout     = "2006-01-02 15:04"
)

// Provisioning
const (
	DefaultEmployeePassword = "Emp@12345"
	DefaultEmployeeCount    = 10
)

// Uploads
const (
	TicketAttachmentDir = "ticket_attachments"
)

// Routes used for redirects
const (
	LoginPath             = "/login/"
	EmployeeDashboardPath = "/employee/dashboard/"
	AdminDashboardPath    = "/admin/dashboard/"
	AssetListPath         = "/admin/assets/"
	NextParam             = "next"
)
