package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"supermart/internal/models"
	"supermart/internal/repositories"

	"github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Role names assigned at signup. The very first user ever registered
// becomes Admin; everyone after that becomes User.
const (
	RoleAdmin = "Admin"
	RoleUser  = "User"
)

// ErrUserNameTaken is returned by SignUp when the username already exists.
var ErrUserNameTaken = errors.New("username already exists")

// ErrInvalidCredentials is returned by Login for both an unknown username
// and a wrong password, so callers cannot enumerate usernames.
var ErrInvalidCredentials = errors.New("invalid credentials")

// AuthService handles signup, login and token validation.
type AuthService struct {
	userRepo  repositories.UserRepository
	jwtSecret []byte
	issuer    string
	audience  string
	tokenTTL  time.Duration
}

// NewAuthService creates a new AuthService. Tokens are valid for exactly
// one hour from issuance; there is no refresh and no revocation list.
func NewAuthService(userRepo repositories.UserRepository, jwtSecret, issuer, audience string) *AuthService {
	return &AuthService{
		userRepo:  userRepo,
		jwtSecret: []byte(jwtSecret),
		issuer:    issuer,
		audience:  audience,
		tokenTTL:  time.Hour,
	}
}

// SignUp registers a new credential and assigns its role. The role choice
// is decided by the role table, never in-memory state, so it survives
// restarts and holds across instances: while the Admin role row is absent
// no user has ever been registered, and this user gets Admin.
func (s *AuthService) SignUp(userName, email, password string) error {
	if existing, err := s.userRepo.GetByUserName(userName); err == nil && existing != nil {
		return ErrUserNameTaken
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		UserName:      userName,
		Email:         email,
		PasswordHash:  string(hashed),
		SecurityStamp: uuid.New().String(),
	}
	if err := s.userRepo.Create(user); err != nil {
		return fmt.Errorf("failed to register user: %w", err)
	}

	adminExists, err := s.userRepo.RoleExists(RoleAdmin)
	if err != nil {
		return err
	}
	roleName := RoleUser
	if !adminExists {
		roleName = RoleAdmin
	}
	role, err := s.userRepo.EnsureRole(roleName)
	if err != nil {
		return err
	}
	return s.userRepo.AssignRole(user, role)
}

// Login verifies the credential and issues a signed bearer token carrying
// the username and every assigned role. Unknown user and wrong password
// are indistinguishable to the caller.
func (s *AuthService) Login(userName, password string) (string, error) {
	user, err := s.userRepo.GetByUserName(userName)
	if err != nil {
		return "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	roles := make([]string, 0, len(user.Roles))
	for _, role := range user.Roles {
		roles = append(roles, role.Name)
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"username": user.UserName,
		"roles":    roles,
		"jti":      uuid.New().String(),
		"iss":      s.issuer,
		"aud":      s.audience,
		"iat":      now.Unix(),
		"exp":      now.Add(s.tokenTTL).Unix(),
	})

	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return tokenString, nil
}

// ValidateToken parses and validates a bearer token, returning its claims.
func (s *AuthService) ValidateToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		log.Printf("Token validation error: %v", err)
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	// A token minted by another service sharing the secret must not pass.
	if !claims.VerifyIssuer(s.issuer, true) {
		return nil, fmt.Errorf("invalid token issuer")
	}
	if !claims.VerifyAudience(s.audience, true) {
		return nil, fmt.Errorf("invalid token audience")
	}
	return claims, nil
}
