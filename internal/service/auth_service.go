package service

import (
	"context"

	"github.com/markvl91/teammates/internal/config"
	"github.com/markvl91/teammates/internal/model"
	"github.com/markvl91/teammates/internal/repository"
	"github.com/markvl91/teammates/internal/util"
	"golang.org/x/crypto/bcrypt"
)

type AuthService struct {
	InstructorRepo *repository.InstructorRepository
	Cfg            *config.Config
}

func NewAuthService(instructorRepo *repository.InstructorRepository, cfg *config.Config) *AuthService {
	return &AuthService{
		InstructorRepo: instructorRepo,
		Cfg:            cfg,
	}
}

func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	instructor, err := s.InstructorRepo.FindByEmail(ctx, email)
	if err != nil {
		return "", util.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(instructor.Password), []byte(password)); err != nil {
		return "", util.ErrInvalidCredentials
	}

	return util.GenerateJWT(instructor, s.Cfg.JWT.Secret, s.Cfg.JWT.ExpireTime)
}

func (s *AuthService) Register(ctx context.Context, instructor *model.Instructor) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(instructor.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	instructor.Password = string(hashedPassword)
	return s.InstructorRepo.DB.WithContext(ctx).Create(instructor).Error
}
