package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/zeabis/zeabis/internal/auth"
	"github.com/zeabis/zeabis/internal/db"
	"github.com/zeabis/zeabis/internal/domain"
	"github.com/zeabis/zeabis/internal/repository"
)

type authService struct {
	users    repository.UserRepo
	uow      db.UnitOfWork
	issuer   *auth.Issuer
	observer UseCaseObserver
}

func NewAuthService(users repository.UserRepo, uow db.UnitOfWork, issuer *auth.Issuer, observers ...UseCaseObserver) AuthService {
	return &authService{users: users, uow: uow, issuer: issuer, observer: useCaseObserverOrNoop(observers)}
}

// Register creates the account and its default Team Member role in one
// transaction, then signs the caller in.
func (s *authService) Register(ctx context.Context, reg domain.Registration) (session *domain.Session, err error) {
	done := track(ctx, s.observer, "register", map[string]any{"email": reg.Email})
	defer func() { done(err) }()

	reg.Email = strings.ToLower(strings.TrimSpace(reg.Email))
	if err = reg.Validate(); err != nil {
		return nil, err
	}
	hash, err := auth.HashPassword(reg.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	u := &domain.User{
		ID:           uuid.New().String(),
		Email:        reg.Email,
		PasswordHash: hash,
		FirstName:    reg.FirstName,
		LastName:     reg.LastName,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	var created *domain.User
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		users := repository.NewSQLiteUserRepo(tx)
		if err := users.Create(ctx, u); err != nil {
			return err
		}
		if err := users.AssignRole(ctx, u.ID, domain.RoleTeamMember); err != nil {
			return err
		}
		var err error
		created, err = users.GetByID(ctx, u.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return s.session(created)
}

func (s *authService) Login(ctx context.Context, creds domain.Credentials) (session *domain.Session, err error) {
	done := track(ctx, s.observer, "login", map[string]any{"email": creds.Email})
	defer func() { done(err) }()

	if creds.Email == "" || creds.Password == "" {
		return nil, domain.Invalid("Email and password are required")
	}
	u, err := s.users.GetByEmail(ctx, strings.TrimSpace(creds.Email))
	if domain.IsNotFound(err) {
		return nil, domain.Unauthorized(domain.MsgInvalidCredentials)
	}
	if err != nil {
		return nil, err
	}
	if !auth.CheckPassword(u.PasswordHash, creds.Password) {
		return nil, domain.Unauthorized(domain.MsgInvalidCredentials)
	}
	if !u.Active {
		return nil, domain.Unauthorized(domain.MsgAccountInactive)
	}
	return s.session(u)
}

func (s *authService) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	claims, err := s.issuer.Verify(token)
	if err != nil {
		return nil, err
	}
	u, err := s.users.GetByID(ctx, claims.UserID())
	if domain.IsNotFound(err) {
		return nil, domain.Unauthorized("Invalid token")
	}
	if err != nil {
		return nil, err
	}
	if !u.Active {
		return nil, domain.Unauthorized(domain.MsgAccountInactive)
	}
	return u, nil
}

func (s *authService) Me(ctx context.Context, userID string) (*domain.User, error) {
	return s.users.GetByID(ctx, userID)
}

func (s *authService) AssignRole(ctx context.Context, email string, role domain.UserRole) (u *domain.User, err error) {
	done := track(ctx, s.observer, "assign-role", map[string]any{"email": email, "role": string(role)})
	defer func() { done(err) }()

	u, err = s.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, err
	}
	if err = s.users.AssignRole(ctx, u.ID, role); err != nil {
		return nil, err
	}
	return s.users.GetByID(ctx, u.ID)
}

func (s *authService) session(u *domain.User) (*domain.Session, error) {
	token, err := s.issuer.Issue(u)
	if err != nil {
		return nil, err
	}
	return &domain.Session{Token: token, User: u}, nil
}
