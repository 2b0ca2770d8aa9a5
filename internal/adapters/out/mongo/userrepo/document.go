// Package userrepo stores user aggregates in the users collection.
package userrepo

import (
	"time"

	"travelagency/internal/adapters/out/documents"
	"travelagency/internal/core/domain/model/kernel"
	"travelagency/internal/core/domain/model/user"
)

const CollectionName = "users"

type UserDocument struct {
	ID           string              `bson:"_id"`
	FirstName    string              `bson:"firstName"`
	MiddleName   string              `bson:"middleName,omitempty"`
	LastName     string              `bson:"lastName"`
	Phone        string              `bson:"phone"`
	Email        string              `bson:"email"`
	PasswordHash string              `bson:"password"`
	Address      *documents.Address  `bson:"address,omitempty"`
	Passport     *documents.Passport `bson:"passport,omitempty"`
	IsAgent      bool                `bson:"isAgent"`
	IsAdmin      bool                `bson:"isAdmin"`
	CreateAt     time.Time           `bson:"createAt"`
	Version      int64               `bson:"version"`
}

func fromDomain(u *user.User) UserDocument {
	name := u.Name()
	return UserDocument{
		ID:           u.ID().String(),
		FirstName:    name.First,
		MiddleName:   name.Middle,
		LastName:     name.Last,
		Phone:        u.Phone(),
		Email:        u.Email(),
		PasswordHash: u.PasswordHash(),
		Address:      documents.FromAddress(u.Address()),
		Passport:     documents.FromPassport(u.Passport()),
		IsAgent:      u.IsAgent(),
		IsAdmin:      u.IsAdmin(),
		CreateAt:     u.CreateAt().UTC(),
		Version:      u.Version(),
	}
}

func toDomain(doc UserDocument) (*user.User, error) {
	id, err := kernel.UUIDFromString(doc.ID)
	if err != nil {
		return nil, err
	}

	name, err := user.NewName(doc.FirstName, doc.MiddleName, doc.LastName)
	if err != nil {
		return nil, err
	}

	passport, err := doc.Passport.ToDomain()
	if err != nil {
		return nil, err
	}

	return user.RestoreUser(
		id,
		name,
		doc.Phone,
		doc.Email,
		doc.PasswordHash,
		doc.Address.ToDomain(),
		passport,
		doc.IsAgent,
		doc.IsAdmin,
		doc.CreateAt,
		doc.Version,
	)
}
