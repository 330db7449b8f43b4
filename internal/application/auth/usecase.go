// Package auth casos de uso de autenticación: registro, login, invitación de
// cuidadores y consulta de rol por email.
package auth

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/tu-usuario/granja-pro/internal/application/dto"
	"github.com/tu-usuario/granja-pro/internal/domain"
	"github.com/tu-usuario/granja-pro/internal/domain/entity"
	"github.com/tu-usuario/granja-pro/internal/domain/permission"
	"github.com/tu-usuario/granja-pro/internal/domain/repository"
	"github.com/tu-usuario/granja-pro/pkg/jwt"
	"github.com/tu-usuario/granja-pro/pkg/logger"
)

const generatedPasswordLen = 12

// Alfabeto sin caracteres ambiguos (0/O, 1/l/I) para contraseñas dictadas por teléfono.
const passwordAlphabet = "abcdefghijkmnpqrstuvwxyzABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// UseCase casos de uso de autenticación.
type UseCase struct {
	users      repository.UserRepository
	roles      repository.BusinessRoleRepository
	caretakers repository.CaretakerRepository
	jwtCfg     JWTConfig
	log        *logger.Logger
}

// NewUseCase construye el caso de uso de auth.
func NewUseCase(
	users repository.UserRepository,
	roles repository.BusinessRoleRepository,
	caretakers repository.CaretakerRepository,
	jwtCfg JWTConfig,
	log *logger.Logger,
) *UseCase {
	return &UseCase{users: users, roles: roles, caretakers: caretakers, jwtCfg: jwtCfg, log: log}
}

// Register crea una cuenta: hashea password con bcrypt, persiste y emite token.
// Devuelve ErrEmailAlreadyExists si el email ya está registrado.
func (uc *UseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.AuthResponse, error) {
	existing, err := uc.users.FindByEmail(ctx, in.Email)
	if err != nil {
		return nil, fmt.Errorf("verificar email: %w", err)
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashear password: %w", err)
	}
	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		Email:        in.Email,
		PasswordHash: string(hash),
		Name:         in.Name,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("crear usuario: %w", err)
	}

	return uc.issueToken(user)
}

// Login verifica email/password y emite un token.
func (uc *UseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := uc.users.FindByEmail(ctx, in.Email)
	if err != nil {
		return nil, fmt.Errorf("buscar usuario: %w", err)
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	return uc.issueToken(user)
}

// InviteCaretaker crea la cuenta de login de un cuidador ya registrado en el staff
// y su binding caretaker con el mapa de permisos por defecto de la política. La
// contraseña se genera y se devuelve una sola vez.
//
// Cada paso valida su propio resultado: un fallo parcial (cuenta creada, binding no)
// se reporta tal cual en vez de fingir éxito.
func (uc *UseCase) InviteCaretaker(ctx context.Context, businessID string, in dto.InviteCaretakerRequest) (*dto.InviteCaretakerResponse, error) {
	caretaker, err := uc.caretakers.GetByID(ctx, in.CaretakerID)
	if err != nil {
		return nil, fmt.Errorf("buscar cuidador: %w", err)
	}
	if caretaker == nil || caretaker.BusinessID != businessID {
		return nil, domain.ErrNotFound
	}
	if caretaker.HasAccount {
		return nil, domain.ErrConflict
	}

	if existing, err := uc.users.FindByEmail(ctx, in.Email); err != nil {
		return nil, fmt.Errorf("verificar email: %w", err)
	} else if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}

	password, err := generatePassword()
	if err != nil {
		return nil, fmt.Errorf("generar contraseña: %w", err)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashear password: %w", err)
	}

	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		Email:        in.Email,
		PasswordHash: string(hash),
		Name:         caretaker.Name,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("crear cuenta del cuidador: %w", err)
	}

	defaults := make(map[string]bool, len(permission.AllFeatures))
	for f, allowed := range permission.Defaults() {
		defaults[string(f)] = allowed
	}
	binding := &entity.BusinessRole{
		ID:          uuid.New().String(),
		UserID:      user.ID,
		BusinessID:  businessID,
		Role:        entity.RoleCaretaker,
		Permissions: defaults,
		CaretakerID: &caretaker.ID,
		CreatedAt:   now,
	}
	if err := uc.roles.Create(ctx, binding); err != nil {
		return nil, fmt.Errorf("crear binding del cuidador: %w", err)
	}

	if err := uc.caretakers.SetHasAccount(ctx, caretaker.ID, true); err != nil {
		// La cuenta y el binding ya existen; el flag es recuperable a mano.
		uc.log.Error().Err(err).Str("caretaker_id", caretaker.ID).
			Msg("no se pudo marcar has_account tras la invitación")
	}

	uc.log.Info().Str("caretaker_id", caretaker.ID).Str("business_id", businessID).
		Msg("cuidador invitado con cuenta de acceso")
	return &dto.InviteCaretakerResponse{
		UserID:            user.ID,
		Email:             user.Email,
		GeneratedPassword: password,
	}, nil
}

// LookupRoleByEmail resuelve el rol de un email en un negocio; "" si no hay binding.
func (uc *UseCase) LookupRoleByEmail(ctx context.Context, email, businessID string) (string, error) {
	role, err := uc.roles.GetRoleByEmailAndBusiness(ctx, email, businessID)
	if err != nil {
		return "", fmt.Errorf("resolver rol por email: %w", err)
	}
	return role, nil
}

func (uc *UseCase) issueToken(user *entity.User) (*dto.AuthResponse, error) {
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Email, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, fmt.Errorf("generar token: %w", err)
	}
	return &dto.AuthResponse{
		Token: token,
		User:  dto.UserResponse{ID: user.ID, Email: user.Email, Name: user.Name},
	}, nil
}

func generatePassword() (string, error) {
	out := make([]byte, generatedPasswordLen)
	max := big.NewInt(int64(len(passwordAlphabet)))
	for i := range out {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		out[i] = passwordAlphabet[n.Int64()]
	}
	return string(out), nil
}
