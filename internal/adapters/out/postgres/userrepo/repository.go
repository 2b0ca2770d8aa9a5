package userrepo

import (
	"context"
	"errors"
	"strings"

	"travelagency/internal/core/domain/model/kernel"
	"travelagency/internal/core/domain/model/user"
	"travelagency/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormUserRepository implements ports.UserRepository using GORM.
type GormUserRepository struct {
	db *gorm.DB
}

func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

func (r *GormUserRepository) Add(ctx context.Context, aggregate *user.User) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	dto.Version = 1
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return translateWriteError(err)
	}

	aggregate.MarkPersisted(dto.Version)
	return nil
}

// Update writes the user only if the stored version still matches.
func (r *GormUserRepository) Update(ctx context.Context, aggregate *user.User) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	expected := dto.Version
	dto.Version = expected + 1

	result := r.db.WithContext(ctx).
		Model(&UserDTO{}).
		Where("id = ? AND version = ?", dto.ID, expected).
		Select("*").
		Omit("id", "create_at").
		Updates(&dto)
	if result.Error != nil {
		return translateWriteError(result.Error)
	}

	if result.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).Model(&UserDTO{}).Where("id = ?", dto.ID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return errs.NewObjectNotFoundError("user", aggregate.ID().String())
		}
		return errs.NewVersionIsInvalidError("user")
	}

	aggregate.MarkPersisted(dto.Version)
	return nil
}

func (r *GormUserRepository) Get(ctx context.Context, id kernel.UUID) (*user.User, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	return r.first(ctx, "id = ?", id.Bytes())
}

func (r *GormUserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	return r.first(ctx, "email = ?", strings.ToLower(strings.TrimSpace(email)))
}

func (r *GormUserRepository) GetByPhone(ctx context.Context, phone string) (*user.User, error) {
	return r.first(ctx, "phone = ?", strings.TrimSpace(phone))
}

func (r *GormUserRepository) Delete(ctx context.Context, id kernel.UUID) error {
	result := r.db.WithContext(ctx).Delete(&UserDTO{}, "id = ?", id.Bytes())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("user", id.String())
	}
	return nil
}

func (r *GormUserRepository) first(ctx context.Context, query string, arg any) (*user.User, error) {
	var dto UserDTO
	if err := r.db.WithContext(ctx).First(&dto, query, arg).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("user", arg)
		}
		return nil, err
	}
	return toDomain(dto)
}

func translateWriteError(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return errs.NewAlreadyExistsError("user", "")
	}
	return err
}
