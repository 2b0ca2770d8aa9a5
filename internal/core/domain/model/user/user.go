package user

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"travelagency/internal/core/domain/model/access"
	"travelagency/internal/core/domain/model/kernel"
	"travelagency/internal/pkg/errs"
)

var (
	// ErrUserIsNotConstructed is returned when a User was not created through
	// NewUser or RestoreUser.
	ErrUserIsNotConstructed = errors.New("User must be created via NewUser constructor")

	emailPattern = regexp.MustCompile(`^\w+([.\-+]?\w+)*@\w+([.\-]?\w+)*(\.\w{2,})+$`)
)

// User is the aggregate root for registered identities.
//
// User follows these invariants:
//   - id, name, email, phone and password hash are always present
//   - email is trimmed and lower-cased
//   - role flags start cleared and only change through SetRoles
//   - version starts at 0 for new users and is advanced by MarkPersisted
type User struct {
	id           kernel.UUID
	name         Name
	phone        string
	email        string
	passwordHash string
	address      *Address
	passport     *Passport
	isAgent      bool
	isAdmin      bool
	createAt     time.Time
	version      int64

	isConstructed bool
}

// NewUser registers a customer. The caller hashes the password beforehand.
//
// Example:
//
//	name, _ := user.NewName("Ada", "", "Lovelace")
//	u, err := user.NewUser(kernel.NewUUID(), name, "0501234567", "Ada@Example.com", hash, nil, nil, time.Now())
func NewUser(
	id kernel.UUID,
	name Name,
	phone string,
	email string,
	passwordHash string,
	address *Address,
	passport *Passport,
	createAt time.Time,
) (*User, error) {
	u := &User{
		createAt:      createAt.UTC(),
		isConstructed: true,
	}

	if err := errors.Join(
		u.setID(id),
		u.setName(name),
		u.setPhone(phone),
		u.setEmail(email),
		u.setPasswordHash(passwordHash),
		u.setAddress(address),
		u.setPassport(passport),
	); err != nil {
		return nil, err
	}

	return u, nil
}

// RestoreUser rebuilds a persisted user without re-running registration rules
// beyond structural checks.
func RestoreUser(
	id kernel.UUID,
	name Name,
	phone string,
	email string,
	passwordHash string,
	address *Address,
	passport *Passport,
	isAgent bool,
	isAdmin bool,
	createAt time.Time,
	version int64,
) (*User, error) {
	u, err := NewUser(id, name, phone, email, passwordHash, address, passport, createAt)
	if err != nil {
		return nil, err
	}
	u.isAgent = isAgent
	u.isAdmin = isAdmin
	u.version = version
	return u, nil
}

func (u *User) Validate() error {
	if u == nil || !u.isConstructed {
		return ErrUserIsNotConstructed
	}
	return nil
}

func (u *User) ID() kernel.UUID {
	return u.id
}

func (u *User) Name() Name {
	return u.name
}

func (u *User) Phone() string {
	return u.phone
}

func (u *User) Email() string {
	return u.email
}

func (u *User) PasswordHash() string {
	return u.passwordHash
}

func (u *User) Address() *Address {
	return u.address
}

func (u *User) Passport() *Passport {
	return u.passport
}

func (u *User) IsAgent() bool {
	return u.isAgent
}

func (u *User) IsAdmin() bool {
	return u.isAdmin
}

func (u *User) CreateAt() time.Time {
	return u.createAt
}

func (u *User) Version() int64 {
	return u.version
}

func (u *User) Roles() access.RoleSet {
	return access.NewRoleSet(u.isAgent, u.isAdmin)
}

// ProfileChanges carries the optional parts of a profile update. Nil fields
// are left untouched; patches are merged into the current values.
type ProfileChanges struct {
	Name         *NamePatch
	Phone        *string
	Email        *string
	PasswordHash *string
	Address      *AddressPatch
	Passport     *PassportPatch
}

// UpdateProfile applies changes atomically: either all of them are applied or
// none.
func (u *User) UpdateProfile(changes ProfileChanges) error {
	next := *u

	var err error
	if changes.Name != nil {
		name, nameErr := u.name.Apply(*changes.Name)
		if nameErr == nil {
			nameErr = next.setName(name)
		}
		err = errors.Join(err, nameErr)
	}
	if changes.Phone != nil {
		err = errors.Join(err, next.setPhone(*changes.Phone))
	}
	if changes.Email != nil {
		err = errors.Join(err, next.setEmail(*changes.Email))
	}
	if changes.PasswordHash != nil {
		err = errors.Join(err, next.setPasswordHash(*changes.PasswordHash))
	}
	if changes.Address != nil {
		base := Address{}
		if u.address != nil {
			base = *u.address
		}
		address, addrErr := base.Apply(*changes.Address)
		if addrErr == nil {
			addrErr = next.setAddress(&address)
		}
		err = errors.Join(err, addrErr)
	}
	if changes.Passport != nil {
		base := Passport{}
		if u.passport != nil {
			base = *u.passport
		}
		passport, ppErr := base.Apply(*changes.Passport)
		if ppErr == nil {
			ppErr = next.setPassport(&passport)
		}
		err = errors.Join(err, ppErr)
	}
	if err != nil {
		return err
	}

	*u = next
	return nil
}

// EmailChanged reports whether email differs from the stored one after
// normalization.
func (u *User) EmailChanged(email string) bool {
	return strings.ToLower(strings.TrimSpace(email)) != u.email
}

// PhoneChanged reports whether phone differs from the stored one.
func (u *User) PhoneChanged(phone string) bool {
	return strings.TrimSpace(phone) != u.phone
}

// SetRoles replaces the role flags. Nil leaves a flag unchanged.
func (u *User) SetRoles(isAgent, isAdmin *bool) {
	if isAgent != nil {
		u.isAgent = *isAgent
	}
	if isAdmin != nil {
		u.isAdmin = *isAdmin
	}
}

// MarkPersisted records the version stored by a successful write.
func (u *User) MarkPersisted(version int64) {
	u.version = version
}

func (u *User) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	u.id = id
	return nil
}

func (u *User) setName(name Name) error {
	if err := name.Validate(); err != nil {
		return err
	}
	u.name = name
	return nil
}

func (u *User) setPhone(phone string) error {
	phone = strings.TrimSpace(phone)
	if err := requireLength("phone", phone, 9, 12); err != nil {
		return err
	}
	u.phone = phone
	return nil
}

func (u *User) setEmail(email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if err := requireLength("email", email, 5, 255); err != nil {
		return err
	}
	if !emailPattern.MatchString(email) {
		return errs.NewValueIsInvalidErrorWithCause("email", fmt.Errorf("%q is not a valid email address", email))
	}
	u.email = email
	return nil
}

func (u *User) setPasswordHash(hash string) error {
	if hash == "" {
		return errs.NewValueIsRequiredError("password")
	}
	u.passwordHash = hash
	return nil
}

func (u *User) setAddress(address *Address) error {
	if address == nil {
		return nil
	}
	if err := address.Validate(); err != nil {
		return err
	}
	a := *address
	u.address = &a
	return nil
}

func (u *User) setPassport(passport *Passport) error {
	if passport == nil {
		return nil
	}
	if err := passport.Validate(); err != nil {
		return err
	}
	p := *passport
	u.passport = &p
	return nil
}
