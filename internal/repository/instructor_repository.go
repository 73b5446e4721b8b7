package repository

import (
	"context"
	"errors"

	"github.com/markvl91/teammates/internal/model"
	"github.com/markvl91/teammates/internal/util"
	"gorm.io/gorm"
)

type InstructorRepository struct {
	DB *gorm.DB
}

func NewInstructorRepository(db *gorm.DB) *InstructorRepository {
	return &InstructorRepository{DB: db}
}

func (r *InstructorRepository) FindByEmail(ctx context.Context, email string) (*model.Instructor, error) {
	var instructor model.Instructor
	err := r.DB.WithContext(ctx).Where("email = ?", email).First(&instructor).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrInstructorNotFound
	}
	if err != nil {
		return nil, err
	}
	return &instructor, nil
}

func (r *InstructorRepository) FindByID(ctx context.Context, id uint) (*model.Instructor, error) {
	var instructor model.Instructor
	err := r.DB.WithContext(ctx).First(&instructor, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrInstructorNotFound
	}
	if err != nil {
		return nil, err
	}
	return &instructor, nil
}

// ListCourses returns the ids of every course the instructor belongs
// to; instructors with the same email across courses share one account.
func (r *InstructorRepository) ListCourses(ctx context.Context, email string) ([]string, error) {
	var courseIDs []string
	err := r.DB.WithContext(ctx).
		Model(&model.Instructor{}).
		Where("email = ?", email).
		Order("course_id asc").
		Pluck("course_id", &courseIDs).Error
	return courseIDs, err
}
