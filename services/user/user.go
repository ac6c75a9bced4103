// Package user implements the mock account surface: signup/login against a
// session-scoped registry, the current profile, saved providers and the
// locale preference.
package user

import (
	"context"
	"errors"
	"fmt"
	"time"

	"lexconnect/database/session"
	"lexconnect/models"
	"lexconnect/utils"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Session-store keys. Layouts stay compatible with previously persisted
// data: savedProviders is a JSON array of full Provider objects,
// userLanguage a single locale code, legalUser the profile object.
const (
	accountsKey       = "userAccounts"
	currentUserKey    = "legalUser"
	savedProvidersKey = "savedProviders"
	languageKey       = "userLanguage"
)

var (
	// ErrEmailTaken means an account already exists for the email.
	ErrEmailTaken = errors.New("an account with this email already exists")
	// ErrInvalidCredentials covers unknown email and wrong password alike.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrNotAuthenticated means no profile is stored in the session.
	ErrNotAuthenticated = errors.New("no authenticated user in session")
)

const tokenDuration = 24 * time.Hour

// storedAccount is the registry record. models.User hides the password hash
// from JSON, so the registry persists its own shape.
type storedAccount struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash string `json:"passwordHash"`
}

// Service is the account surface contract.
type Service interface {
	Register(ctx context.Context, reg models.UserRegistration) (models.User, error)
	Login(ctx context.Context, creds models.UserCredentials) (models.User, error)
	Logout(ctx context.Context) error
	CurrentUser(ctx context.Context) (models.User, error)
	SaveProvider(ctx context.Context, provider models.Provider) error
	UnsaveProvider(ctx context.Context, providerID string) error
	SavedProviders(ctx context.Context) ([]models.Provider, error)
	SetLanguage(ctx context.Context, locale string) error
	Language(ctx context.Context) string
}

// DefaultService keeps everything in the session store.
type DefaultService struct {
	Store session.Store
	TTL   time.Duration
}

// NewDefaultService builds the account service.
func NewDefaultService(store session.Store, ttl time.Duration) *DefaultService {
	return &DefaultService{Store: store, TTL: ttl}
}

func (s *DefaultService) loadAccounts(ctx context.Context) map[string]storedAccount {
	accounts := map[string]storedAccount{}
	if err := session.GetJSON(ctx, s.Store, accountsKey, &accounts); err != nil &&
		!errors.Is(err, session.ErrNotFound) {
		utils.GetLogger().Warn("failed to load accounts, starting empty")
	}
	return accounts
}

// Register creates an account and signs the new user in.
func (s *DefaultService) Register(ctx context.Context, reg models.UserRegistration) (models.User, error) {
	accounts := s.loadAccounts(ctx)
	if _, exists := accounts[reg.Email]; exists {
		return models.User{}, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(reg.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	account := storedAccount{
		ID:           uuid.New().String(),
		Name:         reg.Name,
		Email:        reg.Email,
		PasswordHash: string(hash),
	}
	accounts[reg.Email] = account
	if err := session.SetJSON(ctx, s.Store, accountsKey, accounts, s.TTL); err != nil {
		return models.User{}, fmt.Errorf("failed to store account: %w", err)
	}
	return s.signIn(ctx, account)
}

// Login verifies credentials and stores the profile as the session user.
func (s *DefaultService) Login(ctx context.Context, creds models.UserCredentials) (models.User, error) {
	accounts := s.loadAccounts(ctx)
	account, exists := accounts[creds.Email]
	if !exists {
		return models.User{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(creds.Password)); err != nil {
		return models.User{}, ErrInvalidCredentials
	}
	return s.signIn(ctx, account)
}

func (s *DefaultService) signIn(ctx context.Context, account storedAccount) (models.User, error) {
	token, err := utils.GenerateToken(account.ID, account.Email, tokenDuration)
	if err != nil {
		return models.User{}, fmt.Errorf("failed to generate session token: %w", err)
	}
	u := models.User{
		ID:           account.ID,
		Name:         account.Name,
		Email:        account.Email,
		PasswordHash: account.PasswordHash,
		Token:        token,
	}
	// The stored profile keeps only the token hash so the session blob
	// never holds a replayable credential.
	stored := u
	stored.Token = ""
	stored.TokenHash = utils.HashToken(token)
	if err := session.SetJSON(ctx, s.Store, currentUserKey, stored, s.TTL); err != nil {
		return models.User{}, fmt.Errorf("failed to store session user: %w", err)
	}
	return u, nil
}

// Logout clears the session profile.
func (s *DefaultService) Logout(ctx context.Context) error {
	return s.Store.Delete(ctx, currentUserKey)
}

// CurrentUser returns the profile stored in the session.
func (s *DefaultService) CurrentUser(ctx context.Context) (models.User, error) {
	var u models.User
	err := session.GetJSON(ctx, s.Store, currentUserKey, &u)
	if errors.Is(err, session.ErrNotFound) {
		return models.User{}, ErrNotAuthenticated
	}
	if err != nil {
		return models.User{}, err
	}
	return u, nil
}

// SaveProvider adds the provider to the saved list; saving twice is a no-op.
func (s *DefaultService) SaveProvider(ctx context.Context, provider models.Provider) error {
	saved, err := s.SavedProviders(ctx)
	if err != nil {
		return err
	}
	for _, p := range saved {
		if p.ID == provider.ID {
			return nil
		}
	}
	saved = append(saved, provider)
	return session.SetJSON(ctx, s.Store, savedProvidersKey, saved, s.TTL)
}

// UnsaveProvider removes the provider from the saved list.
func (s *DefaultService) UnsaveProvider(ctx context.Context, providerID string) error {
	saved, err := s.SavedProviders(ctx)
	if err != nil {
		return err
	}
	kept := saved[:0]
	for _, p := range saved {
		if p.ID != providerID {
			kept = append(kept, p)
		}
	}
	return session.SetJSON(ctx, s.Store, savedProvidersKey, kept, s.TTL)
}

// SavedProviders lists the saved providers, empty when none.
func (s *DefaultService) SavedProviders(ctx context.Context) ([]models.Provider, error) {
	saved := []models.Provider{}
	err := session.GetJSON(ctx, s.Store, savedProvidersKey, &saved)
	if err != nil && !errors.Is(err, session.ErrNotFound) {
		return nil, err
	}
	return saved, nil
}

// SetLanguage stores the locale code.
func (s *DefaultService) SetLanguage(ctx context.Context, locale string) error {
	return s.Store.Set(ctx, languageKey, []byte(locale), s.TTL)
}

// Language returns the stored locale code, defaulting to English.
func (s *DefaultService) Language(ctx context.Context) string {
	raw, err := s.Store.Get(ctx, languageKey)
	if err != nil {
		return "en"
	}
	return string(raw)
}
