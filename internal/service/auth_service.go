package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"complaint-service/config"
	"complaint-service/internal/auth"
	"complaint-service/internal/model"
)

type UserStore interface {
	Create(user *model.User) error
	FindByEmail(email string) (*model.User, error)
	FindByID(id uuid.UUID) (*model.User, error)
	EmailExists(email string) (bool, error)
	UpdateLastLogin(id uuid.UUID, at time.Time) error
	UpdateStatus(id uuid.UUID, status model.UserStatus) (bool, error)
}

type AuthService struct {
	users     UserStore
	jwtConfig config.JWTConfig
}

func NewAuthService(users UserStore, jwtConfig config.JWTConfig) *AuthService {
	return &AuthService{
		users:     users,
		jwtConfig: jwtConfig,
	}
}

// Register creates a citizen account. Officials only come into existence
// through agency provisioning.
func (s *AuthService) Register(req *model.RegisterRequest) (*model.User, error) {
	exists, err := s.users.EmailExists(req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicateEmail
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		ID:           uuid.New(),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		PasswordHash: string(hashedPassword),
		Phone:        req.Phone,
		Address:      req.Address,
		Role:         model.RoleCitizen,
		Status:       model.UserActive,
		CreatedAt:    time.Now(),
	}

	if err := s.users.Create(user); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateEmail
		}
		return nil, err
	}

	return user, nil
}

func (s *AuthService) Login(req *model.LoginRequest) (*model.LoginResponse, error) {
	user, err := s.users.FindByEmail(req.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrForbidden
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrForbidden
	}
	if user.Status != model.UserActive {
		return nil, ErrForbidden
	}

	token, err := s.generateToken(user)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if err := s.users.UpdateLastLogin(user.ID, now); err == nil {
		user.LastLogin = &now
	}

	return &model.LoginResponse{
		Token: token,
		User:  *user,
	}, nil
}

// SetUserStatus suspends or reactivates an account. Admin only.
func (s *AuthService) SetUserStatus(claim auth.IdentityClaim, userID uuid.UUID, status model.UserStatus) error {
	if claim.Role != model.RoleAdmin || !claim.Active() {
		return ErrForbidden
	}

	switch status {
	case model.UserActive, model.UserSuspended, model.UserInactive:
	default:
		return ErrInvalidArgument
	}

	matched, err := s.users.UpdateStatus(userID, status)
	if err != nil {
		return err
	}
	if !matched {
		return ErrNotFound
	}
	return nil
}

func (s *AuthService) GetUser(id uuid.UUID) (*model.User, error) {
	user, err := s.users.FindByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}
	return user, nil
}

func (s *AuthService) generateToken(user *model.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.ID.String(),
		"email":   user.Email,
		"role":    string(user.Role),
		"status":  string(user.Status),
		"exp":     time.Now().Add(time.Hour * time.Duration(s.jwtConfig.ExpirationHours)).Unix(),
		"iat":     time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtConfig.Secret))
}
