package user

import (
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/trezcool/classroom/core"
)

type UserType string

const (
	Student UserType = "Student"
	Teacher UserType = "Teacher"
)

var UserTypes = []UserType{Student, Teacher}

// User is persisted as-is in the `users` table and, as a snapshot, under the session key.
type User struct {
	ID        string   `json:"id"`
	Email     string   `json:"email"`
	Password  string   `json:"password"` // plaintext, or a bcrypt hash when hashing is enabled
	Firstname string   `json:"firstname"`
	Lastname  string   `json:"lastname"`
	Birthdate string   `json:"birthdate"` // YYYY-MM-DD
	UserType  UserType `json:"userType"`
}

func (u User) GetID() string { return u.ID }

func (u User) WithID(id string) User {
	u.ID = id
	return u
}

func (u User) IsTeacher() bool { return u.UserType == Teacher }

func (u User) IsStudent() bool { return !u.IsTeacher() }

func (u User) FullName() string {
	return strings.TrimSpace(u.Firstname + " " + u.Lastname)
}

// SetPassword stores pwd, bcrypt-hashed if hash is true.
func (u *User) SetPassword(pwd string, hash bool) error {
	if !hash {
		u.Password = pwd
		return nil
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(pwd), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hashed)
	return nil
}

// CheckPassword accepts both plaintext and bcrypt-hashed stored passwords.
func (u User) CheckPassword(pwd string) bool {
	if isHashed(u.Password) {
		return bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(pwd)) == nil
	}
	return u.Password == pwd
}

func isHashed(pwd string) bool {
	_, err := bcrypt.Cost([]byte(pwd))
	return err == nil
}

// NewUser contains information needed to register a new User.
type NewUser struct {
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required"`
	PasswordConfirm string `json:"confirmPassword" validate:"omitempty,eqfield=Password"`
	Firstname       string `json:"firstname" validate:"notblank"`
	Lastname        string `json:"lastname" validate:"notblank"`
	Birthdate       string `json:"birthdate" validate:"omitempty,datetime=2006-01-02"`
}

func (nu *NewUser) Validate() error {
	nu.Email = core.CleanString(nu.Email)
	nu.Firstname = core.CleanString(nu.Firstname)
	nu.Lastname = core.CleanString(nu.Lastname)
	nu.Birthdate = core.CleanString(nu.Birthdate)
	return core.ValidateStruct(nu)
}

// UpdateProfile defines what a User may change on their own profile.
// Blank fields keep their current value.
type UpdateProfile struct {
	Firstname string   `json:"firstname"`
	Lastname  string   `json:"lastname"`
	Birthdate string   `json:"birthdate" validate:"omitempty,datetime=2006-01-02"`
	UserType  UserType `json:"userType" validate:"omitempty,usertype"`
}

func (up *UpdateProfile) Validate() error {
	up.Firstname = core.CleanString(up.Firstname)
	up.Lastname = core.CleanString(up.Lastname)
	up.Birthdate = core.CleanString(up.Birthdate)
	return core.ValidateStruct(up)
}

// apply merges the set fields of up onto usr.
func (up UpdateProfile) apply(usr User) User {
	if up.Firstname != "" {
		usr.Firstname = up.Firstname
	}
	if up.Lastname != "" {
		usr.Lastname = up.Lastname
	}
	if up.Birthdate != "" {
		usr.Birthdate = up.Birthdate
	}
	if up.UserType != "" {
		usr.UserType = up.UserType
	}
	return usr
}

// SessionState is where the auth session stands.
type SessionState int

const (
	StateUnknown SessionState = iota // not loaded yet
	StateAnonymous
	StateAuthenticated
)

func (s SessionState) String() string {
	switch s {
	case StateAnonymous:
		return "anonymous"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}
