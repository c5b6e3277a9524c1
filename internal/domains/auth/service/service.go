package service

import (
	"context"
	"fixmycondo/config"
	"fixmycondo/infras/jwt"
	"fixmycondo/infras/otel"
	"fixmycondo/internal/domains/auth/model/dto"
	userModel "fixmycondo/internal/domains/user/model"
	userDto "fixmycondo/internal/domains/user/model/dto"
	userRepo "fixmycondo/internal/domains/user/repository"
	"fixmycondo/shared"
	"fixmycondo/shared/constant"
	"fixmycondo/shared/failure"
	"fixmycondo/shared/password"
	"fixmycondo/shared/timezone"
	"fmt"

	"github.com/rs/zerolog/log"
)

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

type Auth interface {
	Register(ctx context.Context, req dto.RegisterRequest) error
	Login(ctx context.Context, req dto.LoginRequest) (dto.LoginResponse, error)
	RefreshToken(ctx context.Context, req dto.RefreshTokenRequest) (dto.RefreshTokenResponse, error)
	ChangePassword(ctx context.Context, req dto.ChangePasswordRequest) error
	Me(ctx context.Context) (userDto.UserResponse, error)
	Logout(ctx context.Context) error
}

type serviceImpl struct {
	userRepo   userRepo.User
	cfg        *config.Config
	otel       otel.Otel
	jwtService jwt.JWT
}

func New(userRepo userRepo.User, cfg *config.Config, otel otel.Otel, jwt jwt.JWT) Auth {
	return &serviceImpl{
		userRepo:   userRepo,
		cfg:        cfg,
		otel:       otel,
		jwtService: jwt,
	}
}

func (s *serviceImpl) Register(ctx context.Context, req dto.RegisterRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Register")
	defer scope.End()
	defer scope.TraceIfError(&err)

	req.Email = userModel.NormalizeEmail(req.Email)
	emailFilter := userModel.ByEmail(req.Email)

	if err = password.CheckStrength(req.Password); err != nil {
		return failure.BadRequest(err) // nolint:wrapcheck
	}

	exists, err := s.userRepo.Exist(ctx, emailFilter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if user exists")

		return fmt.Errorf("failed to check if user exists: %w", err)
	}

	if exists {
		return failure.Conflict("email already registered") // nolint:wrapcheck
	}

	hashedPassword, err := password.Hash(req.Password)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash password")

		return fmt.Errorf("failed to hash password: %w", err)
	}

	username := constant.ContextGuest

	if err = s.userRepo.Insert(ctx, req.ToUserModel(username, hashedPassword)); err != nil {
		log.Error().Err(err).Msg("failed to create user")

		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

func (s *serviceImpl) Login(ctx context.Context, req dto.LoginRequest) (res dto.LoginResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Login")
	defer scope.End()
	defer scope.TraceIfError(&err)

	emailFilter := userModel.ByEmail(req.Email)

	user, err := s.userRepo.Get(ctx, emailFilter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get user")

		return res, fmt.Errorf("failed to get user: %w", err)
	}

	if user.ID == constant.Empty {
		log.Warn().Str("email", req.Email).Msg("login attempt with non-existent email")

		return res, failure.Unauthorized("invalid email or password") // nolint:wrapcheck
	}

	if err := password.Verify(req.Password, user.Password); err != nil {
		log.Warn().Str("email", req.Email).Msg("login attempt with wrong password")

		return res, failure.Unauthorized("invalid email or password") // nolint:wrapcheck
	}

	if !user.Active {
		return res, failure.Forbidden("user account is deactivated") // nolint:wrapcheck
	}

	tokenPair, err := s.jwtService.GenerateTokenPair(ctx, user.ID, user.Email, user.Level)
	if err != nil {
		log.Error().Err(err).Msg("failed to generate tokens")

		return res, fmt.Errorf("failed to generate tokens: %w", err)
	}

	var rehashed string
	if password.NeedsRehash(user.Password) {
		if rehashed, err = password.Hash(req.Password); err != nil {
			log.Warn().Err(err).Str("user_id", user.ID).Msg("failed to upgrade password hash")

			rehashed = constant.Empty
		}
	}

	if err = s.userRepo.RecordLogin(ctx, user.ID, timezone.Now(), rehashed); err != nil {
		log.Warn().Err(err).Str("user_id", user.ID).Msg("failed to update last login")

		return res, fmt.Errorf("failed to update last login: %w", err)
	}

	res.FromTokenPair(tokenPair, user.Level)

	return res, nil
}

func (s *serviceImpl) RefreshToken(ctx context.Context, req dto.RefreshTokenRequest) (res dto.RefreshTokenResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".RefreshToken")
	defer scope.End()
	defer scope.TraceIfError(&err)

	tokenPair, err := s.jwtService.RefreshTokens(ctx, req.RefreshToken)
	if err != nil {
		log.Warn().Err(err).Msg("failed to refresh tokens")

		return res, failure.Unauthorized("invalid refresh token") // nolint:wrapcheck
	}

	res.FromTokenPair(tokenPair)

	return res, nil
}

// ChangePassword replaces the caller's password and revokes every token issued before the change.
func (s *serviceImpl) ChangePassword(ctx context.Context, req dto.ChangePasswordRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ChangePassword")
	defer scope.End()
	defer scope.TraceIfError(&err)

	userID, _ := shared.Actor(ctx)
	if userID == constant.Empty {
		return failure.Unauthorized("authentication required") // nolint:wrapcheck
	}

	filter := shared.FilterByID(userID, userModel.FieldID, userModel.TableName)

	user, err := s.userRepo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get user")

		return fmt.Errorf("failed to get user: %w", err)
	}

	if user.ID == constant.Empty {
		return failure.NotFound("user not found") // nolint:wrapcheck
	}

	if err := password.Verify(req.CurrentPassword, user.Password); err != nil {
		return failure.BadRequestFromString("current password is incorrect") // nolint:wrapcheck
	}

	if err = password.CheckStrength(req.NewPassword); err != nil {
		return failure.BadRequest(err) // nolint:wrapcheck
	}

	hashedPassword, err := password.Hash(req.NewPassword)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash new password")

		return fmt.Errorf("failed to hash new password: %w", err)
	}

	updatedFields := shared.TransformFields(dto.UpdatePasswordRequest{Password: hashedPassword}, userID)

	if err = s.userRepo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update password")

		return fmt.Errorf("failed to update password: %w", err)
	}

	if err = s.jwtService.RevokeUser(ctx, userID); err != nil {
		log.Error().Err(err).Str("userID", userID).Msg("failed to revoke tokens after password change")

		return fmt.Errorf("failed to revoke tokens: %w", err)
	}

	return nil
}

// Me returns the profile of the authenticated caller.
func (s *serviceImpl) Me(ctx context.Context) (res userDto.UserResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Me")
	defer scope.End()
	defer scope.TraceIfError(&err)

	userID, _ := shared.Actor(ctx)
	if userID == constant.Empty {
		return res, failure.Unauthorized("authentication required") // nolint:wrapcheck
	}

	user, err := s.userRepo.Get(ctx, shared.FilterByID(userID, userModel.FieldID, userModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get user")

		return res, fmt.Errorf("failed to get user: %w", err)
	}

	if user.ID == constant.Empty {
		return res, failure.NotFound("user not found") // nolint:wrapcheck
	}

	res.FromModel(user)

	return res, nil
}

// Logout signs the caller out of every device. Tokens issued before now stop validating.
func (s *serviceImpl) Logout(ctx context.Context) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Logout")
	defer scope.End()
	defer scope.TraceIfError(&err)

	userID, _ := shared.Actor(ctx)
	if userID == constant.Empty {
		return failure.Unauthorized("authentication required") // nolint:wrapcheck
	}

	if err = s.jwtService.RevokeUser(ctx, userID); err != nil {
		log.Error().Err(err).Str("userID", userID).Msg("failed to revoke tokens on logout")

		return fmt.Errorf("failed to revoke tokens: %w", err)
	}

	return nil
}
