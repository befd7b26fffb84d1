package service

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"golang.org/x/crypto/bcrypt"

	"github.com/roamly/tour-booking-api/internal/core/domain"
	"github.com/roamly/tour-booking-api/internal/core/ports"
)

// Tokens carry {email, role} and expire after one hour.
const defaultTokenTTL = time.Hour

// AuthService implements registration, login, token issuance, and role checks.
type AuthService struct {
	users     ports.UserRepository
	jwtSecret string
	tokenTTL  time.Duration
	log       zerolog.Logger
}

func NewAuthService(users ports.UserRepository, jwtSecret string, tokenTTL time.Duration, log zerolog.Logger) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = defaultTokenTTL
	}
	return &AuthService{users: users, jwtSecret: jwtSecret, tokenTTL: tokenTTL, log: log}
}

// Register creates the account unless the email already exists, in which case
// it returns a nil InsertedID and no error (idempotent registration). The
// existence check is a pre-insert read, not a store-level constraint, so a
// narrow race window between two concurrent registrations remains.
func (s *AuthService) Register(ctx context.Context, input ports.RegisterInput) (*ports.RegisterResult, error) {
	if input.Email == "" || input.Password == "" {
		return nil, domain.ErrInvalidCredentials
	}
	role := input.Role
	if role == "" {
		role = domain.RoleUser
	}
	if !domain.ValidRole(role) {
		return nil, domain.ErrInvalidRole
	}

	existing, err := s.users.FindByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		s.log.Info().Str("email", input.Email).Msg("registration replay, account exists")
		return &ports.RegisterResult{}, nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	id, err := s.users.Create(ctx, bson.M{
		"name":          input.Name,
		"email":         input.Email,
		"password_hash": string(hash),
		"role":          role,
		"created_at":    now,
		"updated_at":    now,
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("email", input.Email).Str("role", role).Msg("user registered")
	return &ports.RegisterResult{InsertedID: &id}, nil
}

// Login verifies the credentials and returns a signed token plus the account.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return "", nil, err
	}
	if user == nil {
		return "", nil, domain.ErrUserNotFound
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.GenerateToken(user.Email, user.Role)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// GenerateToken signs an identity claim with the configured secret and TTL.
func (s *AuthService) GenerateToken(email, role string) (string, error) {
	claims := jwt.MapClaims{
		"email": email,
		"role":  role,
		"exp":   time.Now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}

// CheckRole reports whether the account with the given email currently holds
// the given role. An unknown email is simply a non-match.
func (s *AuthService) CheckRole(ctx context.Context, email, role string) (bool, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return false, err
	}
	return user != nil && user.Role == role, nil
}

// UpdateRole moves an account to another role. Only the enumerated roles are
// accepted, mirroring the check Register applies.
func (s *AuthService) UpdateRole(ctx context.Context, id, role string) (int64, error) {
	if !domain.ValidRole(role) {
		return 0, domain.ErrInvalidRole
	}

	modified, err := s.users.UpdateRole(ctx, id, role)
	if err != nil {
		return 0, err
	}
	if modified > 0 {
		s.log.Info().Str("user_id", id).Str("role", role).Msg("user role updated")
	}
	return modified, nil
}
