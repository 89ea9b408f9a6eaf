package restaurant

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

func (s *Service) GetByID(ctx context.Context, id string) (Restaurant, error) {
	if id == "" {
		return Restaurant{}, ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Register(ctx context.Context, name, email, password string) (Restaurant, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	if _, err := s.repo.GetByEmail(ctx, email); err == nil {
		return Restaurant{}, ErrEmailExists
	} else if !errors.Is(err, ErrNotFound) {
		return Restaurant{}, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return Restaurant{}, err
	}

	now := s.now().UTC()
	return s.repo.Create(ctx, Restaurant{
		ID:        uuid.NewString(),
		Name:      strings.TrimSpace(name),
		Email:     email,
		Password:  string(hashed),
		Menu:      []Category{},
		CreatedAt: now,
		UpdatedAt: now,
	})
}

func (s *Service) Authenticate(ctx context.Context, email, password string) (Restaurant, error) {
	rest, err := s.repo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return Restaurant{}, ErrInvalidCredentials
	}

	if bcrypt.CompareHashAndPassword([]byte(rest.Password), []byte(password)) != nil {
		return Restaurant{}, ErrInvalidCredentials
	}

	return rest, nil
}

// ReplaceMenu stores menu as the restaurant's full menu. Items without an
// id get one so order lines can reference them.
func (s *Service) ReplaceMenu(ctx context.Context, id string, menu []Category) ([]Category, error) {
	if menu == nil {
		menu = []Category{}
	}
	for ci := range menu {
		if menu[ci].Items == nil {
			menu[ci].Items = []MenuItem{}
		}
		for ii := range menu[ci].Items {
			if menu[ci].Items[ii].ID == "" {
				menu[ci].Items[ii].ID = uuid.NewString()
			}
		}
	}

	if err := s.repo.UpdateMenu(ctx, id, menu, s.now().UTC()); err != nil {
		return nil, err
	}
	return menu, nil
}
