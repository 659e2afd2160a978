package services

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/yukikurage/it-helpdesk/internal/constants"
	"github.com/yukikurage/it-helpdesk/internal/models"
	"github.com/yukikurage/it-helpdesk/internal/repository"
	"gorm.io/gorm"
)

// AccountService provisions accounts outside the web flow.
type AccountService struct {
	userRepo repository.UserRepository
}

func NewAccountService(userRepo repository.UserRepository) *AccountService {
	return &AccountService{userRepo: userRepo}
}

type AdminInput struct {
	Username string
	Password string
	Email    string
}

type EmployeeAccount struct {
	Username string
	Password string
}

// SeedResult lists which usernames were created and which already existed.
type SeedResult struct {
	Created []string
	Skipped []string
}

// DefaultEmployeeAccounts returns emp1..empN sharing the default password.
func DefaultEmployeeAccounts() []EmployeeAccount {
	accounts := make([]EmployeeAccount, 0, constants.DefaultEmployeeCount)
	for i := 1; i <= constants.DefaultEmployeeCount; i++ {
		accounts = append(accounts, EmployeeAccount{
			Username: "emp" + strconv.Itoa(i),
			Password: constants.DefaultEmployeePassword,
		})
	}
	return accounts
}

// EnsureAdminGroup makes sure the IT Admin group exists.
func (s *AccountService) EnsureAdminGroup() (*models.Group, error) {
	return s.userRepo.EnsureGroup(constants.ITAdminGroup)
}

// CreateAdmin creates a superuser unless credentials are missing or the
// username is taken. It reports whether an account was created.
func (s *AccountService) CreateAdmin(input AdminInput) (bool, error) {
	if input.Username == "" || input.Password == "" {
		return false, nil
	}

	exists, err := s.userRepo.ExistsByUsername(input.Username)
	if err != nil {
		return false, fmt.Errorf("failed to check username: %w", err)
	}
	if exists {
		return false, nil
	}

	hash, err := hashPassword(input.Password)
	if err != nil {
		return false, err
	}

	user := &models.User{
		Username:     input.Username,
		PasswordHash: hash,
		Email:        input.Email,
		IsStaff:      true,
		IsSuperuser:  true,
		IsActive:     true,
	}
	if err := s.userRepo.Create(user); err != nil {
		return false, fmt.Errorf("failed to create admin: %w", err)
	}
	return true, nil
}

// SeedEmployees creates each missing account; existing usernames are skipped.
func (s *AccountService) SeedEmployees(accounts []EmployeeAccount) (*SeedResult, error) {
	result := &SeedResult{}

	for _, account := range accounts {
		exists, err := s.userRepo.ExistsByUsername(account.Username)
		if err != nil {
			return result, fmt.Errorf("failed to check %s: %w", account.Username, err)
		}
		if exists {
			result.Skipped = append(result.Skipped, account.Username)
			continue
		}

		hash, err := hashPassword(account.Password)
		if err != nil {
			return result, err
		}
		user := &models.User{
			Username:     account.Username,
			PasswordHash: hash,
			IsActive:     true,
		}
		if err := s.userRepo.Create(user); err != nil {
			return result, fmt.Errorf("failed to create %s: %w", account.Username, err)
		}
		result.Created = append(result.Created, account.Username)
	}

	return result, nil
}

// GrantAdmin adds an existing user to the IT Admin group.
func (s *AccountService) GrantAdmin(username string) (*models.User, error) {
	user, err := s.userRepo.FindByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	if user.InGroup(constants.ITAdminGroup) {
		return user, nil
	}

	group, err := s.EnsureAdminGroup()
	if err != nil {
		return nil, fmt.Errorf("failed to ensure admin group: %w", err)
	}
	if err := s.userRepo.AddToGroup(user, group); err != nil {
		return nil, fmt.Errorf("failed to grant admin: %w", err)
	}
	return user, nil
}
