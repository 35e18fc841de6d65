package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"fittech/gym-app/internal/domain"
	"fittech/gym-app/internal/identity"
	"fittech/gym-app/internal/repository"
	"fittech/gym-app/internal/tokenstore"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	// ErrNotAuthorizedForRole is returned when a principal authenticates
	// against a role-specific login it does not hold. The session is
	// terminated before the error is surfaced.
	ErrNotAuthorizedForRole = errors.New("account is not authorized for this role")
	ErrStore                = errors.New("store lookup failed")
	ErrTokenGeneration      = errors.New("failed to generate authentication token")
)

// AuthResult is what a successful login hands back to the UI.
type AuthResult struct {
	Token    string
	Role     domain.Role
	Redirect string
}

// AuthService resolves principals to roles and manages auth sessions.
type AuthService interface {
	// Login authenticates and routes to whichever dashboard the resolved
	// role owns.
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	// LoginAs is the trainer-login / admin-login flow: the principal must
	// hold the required role, otherwise the freshly issued session is
	// revoked and ErrNotAuthorizedForRole returned.
	LoginAs(ctx context.Context, email, password string, required domain.Role) (*AuthResult, error)
	// Logout revokes the token for its remaining lifetime.
	Logout(ctx context.Context, tokenString string) error
	// ResolveRole maps a principal ID to exactly one role.
	ResolveRole(ctx context.Context, principalID primitive.ObjectID) (domain.Role, error)
	JWTSecret() string
}

type authService struct {
	provider      identity.Provider
	memberRepo    repository.MemberRepository
	trainerRepo   repository.TrainerRepository
	adminRepo     repository.AdminRepository
	revoked       tokenstore.Store
	jwtSecret     string
	jwtExpiration time.Duration
}

// NewAuthService creates a new instance of authService.
func NewAuthService(
	provider identity.Provider,
	memberRepo repository.MemberRepository,
	trainerRepo repository.TrainerRepository,
	adminRepo repository.AdminRepository,
	revoked tokenstore.Store,
	jwtSecret string,
	jwtExpiration time.Duration,
) AuthService {
	if jwtSecret == "" {
		panic("JWT secret cannot be empty") // Critical configuration
	}
	if jwtExpiration <= 0 {
		jwtExpiration = time.Hour
	}
	return &authService{
		provider:      provider,
		memberRepo:    memberRepo,
		trainerRepo:   trainerRepo,
		adminRepo:     adminRepo,
		revoked:       revoked,
		jwtSecret:     jwtSecret,
		jwtExpiration: jwtExpiration,
	}
}

// ResolveRole determines the role for a principal. The stored discriminant
// on the member profile wins; the admin and trainer collections are probed
// as the fallback for out-of-band provisioned principals. A document being
// absent is a valid negative; any other lookup failure is a store error and
// must never be read as "not this role".
func (s *authService) ResolveRole(ctx context.Context, principalID primitive.ObjectID) (domain.Role, error) {
	if principalID == primitive.NilObjectID {
		return domain.RoleUnauthenticated, nil
	}

	member, err := s.memberRepo.GetByID(ctx, principalID)
	if err == nil {
		if member.Role.IsValid() {
			return member.Role, nil
		}
		return domain.RoleMember, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return domain.RoleUnauthenticated, fmt.Errorf("%w: %v", ErrStore, err)
	}

	if _, err := s.adminRepo.GetByID(ctx, principalID); err == nil {
		return domain.RoleAdmin, nil
	} else if !errors.Is(err, repository.ErrNotFound) {
		return domain.RoleUnauthenticated, fmt.Errorf("%w: %v", ErrStore, err)
	}

	if _, err := s.trainerRepo.GetByID(ctx, principalID); err == nil {
		return domain.RoleTrainer, nil
	} else if !errors.Is(err, repository.ErrNotFound) {
		return domain.RoleUnauthenticated, fmt.Errorf("%w: %v", ErrStore, err)
	}

	// Present in no role collection: an authenticated principal defaults to
	// member.
	return domain.RoleMember, nil
}

// Login handles the plain member login.
func (s *authService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	if email == "" || password == "" {
		return nil, identity.ErrInvalidCredential
	}

	principalID, err := s.provider.Authenticate(ctx, email, password)
	if err != nil {
		return nil, err
	}

	role, err := s.ResolveRole(ctx, principalID)
	if err != nil {
		return nil, err
	}

	token, _, err := s.generateJWT(principalID, role)
	if err != nil {
		return nil, ErrTokenGeneration
	}

	return &AuthResult{Token: token, Role: role, Redirect: role.DashboardRoute()}, nil
}

// LoginAs authenticates against a role-specific login page. On a role
// mismatch the just-issued token is revoked first, so no authenticated but
// unauthorized session stays live.
func (s *authService) LoginAs(ctx context.Context, email, password string, required domain.Role) (*AuthResult, error) {
	result, err := s.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}

	if result.Role != required {
		if err := s.revokeToken(ctx, result.Token); err != nil {
			log.Printf("ERROR: Failed to revoke session after role mismatch: %v", err)
		}
		return nil, ErrNotAuthorizedForRole
	}
	return result, nil
}

// Logout revokes the presented token for its remaining lifetime.
func (s *authService) Logout(ctx context.Context, tokenString string) error {
	return s.revokeToken(ctx, tokenString)
}

func (s *authService) JWTSecret() string {
	return s.jwtSecret
}

// --- JWT Helpers ---

// Claims defines the structure of the JWT payload. The registered ID claim
// (jti) keys the revocation list.
type Claims struct {
	UserID string      `json:"uid"`
	Role   domain.Role `json:"role"`
	jwt.RegisteredClaims
}

// generateJWT creates a new token for the principal. Every token gets a
// fresh jti so individual sessions can be revoked.
func (s *authService) generateJWT(principalID primitive.ObjectID, role domain.Role) (string, string, error) {
	jti := uuid.NewString()
	now := time.Now()
	claims := &Claims{
		UserID: principalID.Hex(),
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        jti,
			Subject:   principalID.Hex(),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.jwtExpiration)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    "fittech-gym",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return "", "", err
	}
	return signed, jti, nil
}

func (s *authService) revokeToken(ctx context.Context, tokenString string) error {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil {
		// An expired or malformed token is already dead.
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil
		}
		return err
	}
	if claims.ID == "" || claims.ExpiresAt == nil {
		return errors.New("token has no revocable ID")
	}

	return s.revoked.Revoke(ctx, claims.ID, time.Until(claims.ExpiresAt.Time))
}
