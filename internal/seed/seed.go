// Package seed creates the accounts a fresh installation starts with
package seed

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/yigit/alumnilink/internal/app/models"
	"github.com/yigit/alumnilink/internal/app/repositories"
	"github.com/yigit/alumnilink/internal/pkg/auth"
	"gopkg.in/yaml.v3"
)

// Options controls what CreateDefaultData seeds
type Options struct {
	AdminEmail    string
	AdminPassword string
	// AccountsFile is an optional YAML file of extra accounts
	AccountsFile string
}

// Account is one entry of the accounts file
type Account struct {
	Name     string `yaml:"name"`
	Email    string `yaml:"email"`
	Password string `yaml:"password"`
	Role     string `yaml:"role"`

	Occupation *string `yaml:"occupation"`
	Company    *string `yaml:"company"`
	Domain     *string `yaml:"domain"`

	CGPA     *float64 `yaml:"cgpa"`
	Category *string  `yaml:"category"`
}

type accountsFile struct {
	Accounts []Account `yaml:"accounts"`
}

// LoadAccounts reads the accounts file at path
func LoadAccounts(path string) ([]Account, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read accounts file: %w", err)
	}

	var f accountsFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse accounts file: %w", err)
	}

	for i, a := range f.Accounts {
		if a.Email == "" || a.Password == "" || a.Name == "" {
			return nil, fmt.Errorf("account %d: name, email and password are required", i)
		}
		if !models.RoleType(a.Role).Valid() {
			return nil, fmt.Errorf("account %d: invalid role %q", i, a.Role)
		}
	}
	return f.Accounts, nil
}

// CreateDefaultData creates the default admin and the accounts of the
// accounts file. Existing emails are skipped, so it is safe to run on every start.
func CreateDefaultData(ctx context.Context, repos *repositories.Repositories, opts Options, lgr zerolog.Logger) error {
	lgr.Info().Msg("Checking/Creating default accounts...")

	accounts := []Account{{
		Name:     "Admin",
		Email:    opts.AdminEmail,
		Password: opts.AdminPassword,
		Role:     string(models.RoleAdmin),
	}}

	if opts.AccountsFile != "" {
		extra, err := LoadAccounts(opts.AccountsFile)
		if err != nil {
			return err
		}
		accounts = append(accounts, extra...)
	}

	var finalErr error
	for _, a := range accounts {
		created, err := createAccount(ctx, repos, a)
		if err != nil {
			lgr.Error().Err(err).Str("email", a.Email).Msg("Error creating seed account")
			finalErr = errors.Join(finalErr, err)
			continue
		}
		if created {
			lgr.Info().Str("email", a.Email).Str("role", a.Role).Msg("Seed account created")
		} else {
			lgr.Debug().Str("email", a.Email).Msg("Seed account already exists, skipping")
		}
	}

	lgr.Info().Msg("Default account check/creation finished.")
	return finalErr
}

func createAccount(ctx context.Context, repos *repositories.Repositories, a Account) (bool, error) {
	if a.Email == "" || a.Password == "" {
		return false, errors.New("seed account needs an email and a password")
	}

	exists, err := repos.UserRepository.EmailExists(ctx, a.Email)
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}

	hash, err := auth.HashPassword(a.Password)
	if err != nil {
		return false, err
	}

	user := &models.User{Name: a.Name, Email: a.Email, PasswordHash: hash, Role: models.RoleType(a.Role)}
	err = repos.Transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		if _, err := repos.UserRepository.CreateUser(ctx, user); err != nil {
			return err
		}
		switch user.Role {
		case models.RoleAlumni:
			return repos.AlumniProfileRepository.CreateAlumniProfile(ctx, &models.AlumniProfile{
				UserID:     user.ID,
				Occupation: a.Occupation,
				Company:    a.Company,
				Domain:     a.Domain,
			})
		case models.RoleStudent:
			return repos.StudentProfileRepository.CreateStudentProfile(ctx, &models.StudentProfile{
				UserID:   user.ID,
				CGPA:     a.CGPA,
				Category: a.Category,
			})
		}
		return nil
	})
	if err != nil {
		return false, err
	}
	return true, nil
}
