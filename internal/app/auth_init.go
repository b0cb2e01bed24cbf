// Package app provides authentication initialization.
package app

import (
	"context"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/guttosm/pos-checkout-service/internal/domain/model"
	"github.com/guttosm/pos-checkout-service/internal/repository"
)

// ensureDefaultCashier creates a first cashier account when the store
// has none configured, so a fresh deployment can log in. The account
// comes from DEFAULT_CASHIER_EMAIL / DEFAULT_CASHIER_PASSWORD; nothing
// is seeded when the variables are unset.
func ensureDefaultCashier(cashierRepo repository.CashierRepositoryInterface) error {
	email := os.Getenv("DEFAULT_CASHIER_EMAIL")
	password := os.Getenv("DEFAULT_CASHIER_PASSWORD")
	if email == "" || password == "" {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	existing, err := cashierRepo.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	name := os.Getenv("DEFAULT_CASHIER_NAME")
	if name == "" {
		name = "Default Cashier"
	}

	now := time.Now()
	cashier := &model.Cashier{
		Email:     email,
		Name:      name,
		Password:  string(hash),
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := cashierRepo.Create(ctx, cashier); err != nil {
		return err
	}

	log.Info().Str("email", email).Msg("Seeded default cashier account")
	return nil
}
