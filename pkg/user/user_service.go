package user

import (
	"context"
	"errors"
	"fmt"
	"foodgram-backend/domain"
	"foodgram-backend/entities"
	"foodgram-backend/internal/utils"
	"foodgram-backend/internal/utils/mailing"
	"foodgram-backend/pkg/jwt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type (
	UserService interface {
		Register(ctx context.Context, req domain.UserRegisterRequest) (domain.UserResponse, error)
		Login(ctx context.Context, req domain.UserLoginRequest) (domain.UserLoginResponse, error)
		Me(ctx context.Context, userID string) (domain.UserResponse, error)
		GetUser(ctx context.Context, id, viewerID string) (domain.UserResponse, error)
		UpdateUser(ctx context.Context, req domain.UserUpdateRequest, userID string) (domain.UserResponse, error)
		ForgotPassword(ctx context.Context, req domain.ForgotPasswordRequest) error
		ResetPassword(ctx context.Context, req domain.ResetPasswordRequest) error
	}

	// FollowChecker reports whether a viewer follows an author. The
	// subscription repository implements it; declared here to keep the
	// package dependency one-way.
	FollowChecker interface {
		IsFollowing(ctx context.Context, userID, authorID string) (bool, error)
	}

	userService struct {
		userRepository UserRepository
		followChecker  FollowChecker
		jwtService     jwt.JWTService
		mailer         mailing.Mailer
	}
)

func NewUserService(userRepository UserRepository, followChecker FollowChecker, jwtService jwt.JWTService, mailer mailing.Mailer) UserService {
	return &userService{
		userRepository: userRepository,
		followChecker:  followChecker,
		jwtService:     jwtService,
		mailer:         mailer,
	}
}

func toUserResponse(user *entities.User, isSubscribed bool) domain.UserResponse {
	return domain.UserResponse{
		ID:           user.ID.String(),
		Username:     user.Username,
		Email:        user.Email,
		FirstName:    user.FirstName,
		LastName:     user.LastName,
		IsSubscribed: isSubscribed,
	}
}

func (s *userService) Register(ctx context.Context, req domain.UserRegisterRequest) (domain.UserResponse, error) {
	if _, err := s.userRepository.GetUserByEmail(ctx, req.Email); err == nil {
		return domain.UserResponse{}, domain.ErrEmailAlreadyExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.UserResponse{}, err
	}

	if _, err := s.userRepository.GetUserByUsername(ctx, req.Username); err == nil {
		return domain.UserResponse{}, domain.ErrUsernameAlreadyExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.UserResponse{}, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return domain.UserResponse{}, err
	}

	user := &entities.User{
		ID:        uuid.New(),
		Username:  req.Username,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Password:  string(hashed),
		Role:      domain.RoleUser,
	}

	if err := s.userRepository.CreateUser(ctx, user); err != nil {
		return domain.UserResponse{}, err
	}

	return toUserResponse(user, false), nil
}

func (s *userService) Login(ctx context.Context, req domain.UserLoginRequest) (domain.UserLoginResponse, error) {
	user, err := s.userRepository.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.UserLoginResponse{}, domain.ErrCredentialsInvalid
		}
		return domain.UserLoginResponse{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return domain.UserLoginResponse{}, domain.ErrCredentialsInvalid
	}

	token := s.jwtService.GenerateTokenUser(user.ID.String(), user.Role)
	return domain.UserLoginResponse{Token: token, Role: user.Role}, nil
}

func (s *userService) Me(ctx context.Context, userID string) (domain.UserResponse, error) {
	user, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.UserResponse{}, domain.ErrUserNotFound
		}
		return domain.UserResponse{}, err
	}
	return toUserResponse(user, false), nil
}

func (s *userService) GetUser(ctx context.Context, id, viewerID string) (domain.UserResponse, error) {
	user, err := s.userRepository.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.UserResponse{}, domain.ErrUserNotFound
		}
		return domain.UserResponse{}, err
	}

	isSubscribed := false
	if viewerID != "" && viewerID != id {
		isSubscribed, err = s.followChecker.IsFollowing(ctx, viewerID, id)
		if err != nil {
			return domain.UserResponse{}, err
		}
	}

	return toUserResponse(user, isSubscribed), nil
}

func (s *userService) UpdateUser(ctx context.Context, req domain.UserUpdateRequest, userID string) (domain.UserResponse, error) {
	user, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.UserResponse{}, domain.ErrUserNotFound
		}
		return domain.UserResponse{}, err
	}

	if req.Username != "" && req.Username != user.Username {
		if _, err := s.userRepository.GetUserByUsername(ctx, req.Username); err == nil {
			return domain.UserResponse{}, domain.ErrUsernameAlreadyExists
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.UserResponse{}, err
		}
		user.Username = req.Username
	}
	if req.FirstName != "" {
		user.FirstName = req.FirstName
	}
	if req.LastName != "" {
		user.LastName = req.LastName
	}

	if err := s.userRepository.UpdateUser(ctx, user); err != nil {
		return domain.UserResponse{}, err
	}

	return toUserResponse(user, false), nil
}

func (s *userService) ForgotPassword(ctx context.Context, req domain.ForgotPasswordRequest) error {
	user, err := s.userRepository.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrUserNotFound
		}
		return err
	}

	token, err := s.jwtService.GenerateTokenResetPassword(map[string]any{
		"user_id": user.ID.String(),
		"email":   user.Email,
	}, 15*time.Minute)
	if err != nil {
		return err
	}

	resetURL := fmt.Sprintf("%s/reset-password?token=%s", utils.GetConfig("APP_URL"), token)
	body := fmt.Sprintf(
		"<p>Hi %s,</p><p>Follow <a href=%q>this link</a> to reset your password. The link expires in 15 minutes.</p>",
		user.FirstName, resetURL,
	)

	return s.mailer.Send(user.Email, "Reset your password", body)
}

func (s *userService) ResetPassword(ctx context.Context, req domain.ResetPasswordRequest) error {
	claims, err := s.jwtService.ValidateTokenResetPassword(req.Token)
	if err != nil {
		return err
	}

	userID, ok := claims["user_id"].(string)
	if !ok {
		return domain.ErrTokenInvalid
	}

	user, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrUserNotFound
		}
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.Password = string(hashed)

	return s.userRepository.UpdateUser(ctx, user)
}
