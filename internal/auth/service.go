package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/procureflow/procureflow/internal/config"
	"github.com/procureflow/procureflow/internal/procure/entity"
	"github.com/procureflow/procureflow/internal/procure/repository"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountNotApproved = errors.New("account not approved")
	ErrPasswordNotSet     = errors.New("password not set")
	ErrInvalidToken       = errors.New("invalid or expired token")
)

// Service registration and login. Registration provisions a credential row
// without a password plus the vendor profile; the credential is deleted again
// if the profile write fails.
type Service struct {
	users      *UserRepository
	vendorRepo *repository.VendorRepository
	mailer     Mailer
	jwtCfg     config.JWTConfig
	logger     *zap.Logger
}

func NewService(users *UserRepository, vendorRepo *repository.VendorRepository, mailer Mailer, jwtCfg config.JWTConfig, logger *zap.Logger) *Service {
	return &Service{
		users:      users,
		vendorRepo: vendorRepo,
		mailer:     mailer,
		jwtCfg:     jwtCfg,
		logger:     logger,
	}
}

// RegisterRequest vendor signup payload
type RegisterRequest struct {
	CompanyName string `json:"company_name" binding:"required"`
	ContactName string `json:"contact_name" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
	GSTIN       string `json:"gstin"`
}

// Register creates the credential row and the pending vendor profile. The
// password-setup email is best-effort.
func (s *Service) Register(ctx context.Context, req *RegisterRequest) (*entity.Vendor, error) {
	if existing, err := s.vendorRepo.FindByEmail(ctx, req.Email); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, ErrEmailTaken
	}
	if taken, err := s.users.EmailExists(ctx, req.Email); err != nil {
		return nil, err
	} else if taken {
		return nil, ErrEmailTaken
	}

	setupToken := uuid.New().String()
	user := &User{
		ID:         uuid.New().String()[:32],
		Email:      req.Email,
		Name:       req.ContactName,
		Role:       RoleVendor,
		Status:     UserStatusActive,
		SetupToken: &setupToken,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create credentials: %w", err)
	}

	code, err := s.vendorRepo.GenerateCode(ctx)
	if err != nil {
		s.rollbackUser(ctx, user.ID)
		return nil, err
	}

	vendor := &entity.Vendor{
		ID:                uuid.New().String()[:32],
		VendorCode:        code,
		CompanyName:       req.CompanyName,
		ContactName:       req.ContactName,
		Email:             req.Email,
		Phone:             req.Phone,
		Address:           req.Address,
		GSTIN:             req.GSTIN,
		Status:            entity.VendorStatusPending,
		CertificateStatus: entity.CertificateStatusPending,
	}
	if err := s.vendorRepo.Create(ctx, vendor); err != nil {
		s.rollbackUser(ctx, user.ID)
		return nil, fmt.Errorf("failed to create vendor profile: %w", err)
	}

	user.VendorID = &vendor.ID
	if err := s.users.Update(ctx, user); err != nil {
		s.logger.Warn("Failed to link credential to vendor", zap.String("vendor_id", vendor.ID), zap.Error(err))
	}

	go s.sendSetupMail(vendor.Email, vendor.ContactName, setupToken)

	return vendor, nil
}

// rollbackUser compensating delete for a credential row whose paired profile
// write failed.
func (s *Service) rollbackUser(ctx context.Context, userID string) {
	if err := s.users.Delete(ctx, userID); err != nil {
		s.logger.Error("Failed to roll back credential row", zap.String("user_id", userID), zap.Error(err))
	}
}

func (s *Service) sendSetupMail(email, name, token string) {
	if s.mailer == nil {
		return
	}
	if err := s.mailer.SendPasswordSetup(email, name, token); err != nil {
		s.logger.Warn("Password setup email not sent", zap.String("email", email), zap.Error(err))
	}
}

// SetPasswordRequest password setup payload
type SetPasswordRequest struct {
	Token    string `json:"token" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
}

// SetPassword consumes a setup token and stores the bcrypt hash.
func (s *Service) SetPassword(ctx context.Context, req *SetPasswordRequest) error {
	user, err := s.users.FindBySetupToken(ctx, req.Token)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return ErrInvalidToken
		}
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	hashStr := string(hash)
	user.PasswordHash = &hashStr
	user.SetupToken = nil
	return s.users.Update(ctx, user)
}

// LoginRequest login payload
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login resolves vendor credentials before manager ones, requires an
// approved/active account and verifies the bcrypt hash.
func (s *Service) Login(ctx context.Context, req *LoginRequest) (*User, *TokenPair, error) {
	user, err := s.users.FindByEmailAndRole(ctx, req.Email, RoleVendor)
	if err != nil {
		return nil, nil, err
	}
	if user == nil {
		user, err = s.users.FindByEmailAndRole(ctx, req.Email, RoleManager)
		if err != nil {
			return nil, nil, err
		}
	}
	if user == nil {
		return nil, nil, ErrInvalidCredentials
	}

	if user.Status != UserStatusActive {
		return nil, nil, ErrAccountNotApproved
	}
	if user.Role == RoleVendor {
		if user.VendorID == nil {
			return nil, nil, ErrAccountNotApproved
		}
		vendor, err := s.vendorRepo.FindByID(ctx, *user.VendorID)
		if err != nil {
			return nil, nil, err
		}
		if vendor.Status != entity.VendorStatusApproved {
			return nil, nil, ErrAccountNotApproved
		}
	}

	if user.PasswordHash == nil {
		return nil, nil, ErrPasswordNotSet
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, nil, ErrInvalidCredentials
	}

	pair, err := issueTokenPair(s.jwtCfg, user)
	if err != nil {
		return nil, nil, err
	}
	return user, pair, nil
}

// Refresh verifies a refresh token and issues a new pair.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	claims, err := parseToken(s.jwtCfg, refreshToken)
	if err != nil {
		return nil, ErrInvalidToken
	}
	user, err := s.users.FindByID(ctx, claims.UserID)
	if err != nil {
		return nil, ErrInvalidToken
	}
	if user.Status != UserStatusActive {
		return nil, ErrAccountNotApproved
	}
	return issueTokenPair(s.jwtCfg, user)
}

// GetCurrentUser loads the caller's credential row.
func (s *Service) GetCurrentUser(ctx context.Context, userID string) (*User, error) {
	return s.users.FindByID(ctx, userID)
}
