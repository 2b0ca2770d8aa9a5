// Package userrepo maps user aggregates onto the users table.
package userrepo

import (
	"time"

	"travelagency/internal/adapters/out/documents"
	"travelagency/internal/core/domain/model/kernel"
	"travelagency/internal/core/domain/model/user"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// UserDTO is the row of the users table. Email and phone carry unique
// indexes.
type UserDTO struct {
	ID           uuid.UUID                               `gorm:"type:uuid;primaryKey"`
	FirstName    string                                  `gorm:"not null"`
	MiddleName   string                                  `gorm:"not null;default:''"`
	LastName     string                                  `gorm:"not null"`
	Phone        string                                  `gorm:"not null;uniqueIndex:idx_users_phone"`
	Email        string                                  `gorm:"not null;uniqueIndex:idx_users_email"`
	PasswordHash string                                  `gorm:"not null"`
	Address      datatypes.JSONType[*documents.Address]  `gorm:"type:jsonb;not null"`
	Passport     datatypes.JSONType[*documents.Passport] `gorm:"type:jsonb;not null"`
	IsAgent      bool                                    `gorm:"not null;default:false"`
	IsAdmin      bool                                    `gorm:"not null;default:false"`
	CreateAt     time.Time                               `gorm:"not null"`
	Version      int64                                   `gorm:"not null;default:0"`
}

func (UserDTO) TableName() string {
	return "users"
}

func fromDomain(u *user.User) UserDTO {
	name := u.Name()
	return UserDTO{
		ID:           u.ID().Bytes(),
		FirstName:    name.First,
		MiddleName:   name.Middle,
		LastName:     name.Last,
		Phone:        u.Phone(),
		Email:        u.Email(),
		PasswordHash: u.PasswordHash(),
		Address:      datatypes.NewJSONType(documents.FromAddress(u.Address())),
		Passport:     datatypes.NewJSONType(documents.FromPassport(u.Passport())),
		IsAgent:      u.IsAgent(),
		IsAdmin:      u.IsAdmin(),
		CreateAt:     u.CreateAt().UTC(),
		Version:      u.Version(),
	}
}

func toDomain(dto UserDTO) (*user.User, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	name, err := user.NewName(dto.FirstName, dto.MiddleName, dto.LastName)
	if err != nil {
		return nil, err
	}

	passport, err := dto.Passport.Data().ToDomain()
	if err != nil {
		return nil, err
	}

	return user.RestoreUser(
		id,
		name,
		dto.Phone,
		dto.Email,
		dto.PasswordHash,
		dto.Address.Data().ToDomain(),
		passport,
		dto.IsAgent,
		dto.IsAdmin,
		dto.CreateAt,
		dto.Version,
	)
}
