package auth

import (
	"github.com/yukikurage/it-helpdesk/internal/constants"
	"github.com/yukikurage/it-helpdesk/internal/models"
)

// IsAdmin reports whether user holds IT administrator capability: the staff
// flag or membership of the "IT Admin" group. A nil user is anonymous and
// never an administrator. Groups must be preloaded for the membership check.
func IsAdmin(user *models.User) bool {
	if user == nil {
		return false
	}
	if user.IsStaff {
		return true
	}
	return user.InGroup(constants.ITAdminGroup)
}
