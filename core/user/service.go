package user

import (
	"context"
	"errors"

	"github.com/trezcool/classroom/core"
)

var (
	// errors
	ErrEmailExists        = errors.New("a user with this email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrNoSession          = errors.New("no active session")
)

type (
	Repository interface {
		QueryAllUsers(ctx context.Context) ([]User, error)
		GetUserByID(ctx context.Context, id string) (User, error)
		GetUserByEmail(ctx context.Context, email string) (User, error)
		CreateUser(ctx context.Context, usr User) (User, error)
		// UpdateUser replaces the whole stored User.
		UpdateUser(ctx context.Context, usr User) (User, error)
		DeleteUser(ctx context.Context, id string) error
	}

	// SessionStore keeps the snapshot of the logged-in User.
	SessionStore interface {
		// CurrentSession returns ErrNoSession when nobody is logged in.
		CurrentSession(ctx context.Context) (User, error)
		SetCurrentSession(ctx context.Context, usr User) error
		ClearSession(ctx context.Context) error
	}

	Service struct {
		repo     Repository
		sessions SessionStore
		conf     core.AuthConfig
	}
)

func NewService(repo Repository, sessions SessionStore, conf core.AuthConfig) *Service {
	return &Service{repo: repo, sessions: sessions, conf: conf}
}

// Login looks for a User matching both email (exactly) and password and stores it as the session snapshot.
// It returns ErrInvalidCredentials when there is no match.
func (svc *Service) Login(ctx context.Context, email, pwd string) (User, error) {
	users, err := svc.repo.QueryAllUsers(ctx)
	if err != nil {
		return User{}, err
	}
	for _, usr := range users {
		if usr.Email == email && usr.CheckPassword(pwd) {
			if err = svc.sessions.SetCurrentSession(ctx, usr); err != nil {
				return User{}, err
			}
			return usr, nil
		}
	}
	return User{}, ErrInvalidCredentials
}

// Logout clears the session snapshot.
func (svc *Service) Logout(ctx context.Context) error {
	return svc.sessions.ClearSession(ctx)
}

func (svc *Service) CurrentSession(ctx context.Context) (User, error) {
	return svc.sessions.CurrentSession(ctx)
}

// State loads the session: StateAuthenticated along with the snapshot, or StateAnonymous.
func (svc *Service) State(ctx context.Context) (SessionState, User, error) {
	usr, err := svc.sessions.CurrentSession(ctx)
	switch {
	case err == nil:
		return StateAuthenticated, usr, nil
	case errors.Is(err, ErrNoSession):
		return StateAnonymous, User{}, nil
	default:
		return StateUnknown, User{}, err
	}
}

func (svc *Service) checkUniqueness(ctx context.Context, email string) error {
	if _, err := svc.repo.GetUserByEmail(ctx, email); err == nil {
		return core.NewValidationError(ErrEmailExists, core.FieldError{Field: "email", Error: ErrEmailExists.Error()})
	} else if !errors.Is(err, core.ErrNotFound) {
		return err
	}
	return nil
}

func (svc *Service) create(ctx context.Context, nu NewUser, userType UserType) (User, error) {
	if err := nu.Validate(); err != nil {
		return User{}, err
	}
	if err := svc.checkUniqueness(ctx, nu.Email); err != nil {
		return User{}, err
	}
	usr := User{
		Email:     nu.Email,
		Firstname: nu.Firstname,
		Lastname:  nu.Lastname,
		Birthdate: nu.Birthdate,
		UserType:  userType,
	}
	if err := svc.setPassword(&usr, nu.Password); err != nil {
		return User{}, err
	}
	return svc.repo.CreateUser(ctx, usr)
}

// Register creates a Student and logs them in.
// A taken email yields a *core.ValidationError wrapping ErrEmailExists.
func (svc *Service) Register(ctx context.Context, nu NewUser) (User, error) {
	usr, err := svc.create(ctx, nu, Student)
	if err != nil {
		return User{}, err
	}
	if err = svc.sessions.SetCurrentSession(ctx, usr); err != nil {
		return User{}, err
	}
	return usr, nil
}

// Create adds a User of any type without touching the session.
func (svc *Service) Create(ctx context.Context, nu NewUser, userType UserType) (User, error) {
	return svc.create(ctx, nu, userType)
}

func (svc *Service) QueryAll(ctx context.Context) ([]User, error) {
	return svc.repo.QueryAllUsers(ctx)
}

func (svc *Service) GetByID(ctx context.Context, id string) (User, error) {
	return svc.repo.GetUserByID(ctx, id)
}

func (svc *Service) GetByEmail(ctx context.Context, email string) (User, error) {
	return svc.repo.GetUserByEmail(ctx, core.CleanString(email))
}

// UpdateProfile merges up onto the stored User, saves it and refreshes the session
// snapshot when the updated User is the one logged in.
func (svc *Service) UpdateProfile(ctx context.Context, id string, up UpdateProfile) (User, error) {
	if err := up.Validate(); err != nil {
		return User{}, err
	}
	usr, err := svc.repo.GetUserByID(ctx, id)
	if err != nil {
		return User{}, err
	}
	if usr, err = svc.repo.UpdateUser(ctx, up.apply(usr)); err != nil {
		return User{}, err
	}
	return usr, svc.refreshSession(ctx, usr)
}

// SetPassword changes the password of the User with email.
func (svc *Service) SetPassword(ctx context.Context, email, pwd string) (User, error) {
	if pwd == "" {
		return User{}, core.NewValidationError(nil, core.FieldError{Field: "password", Error: "this field is required"})
	}
	usr, err := svc.GetByEmail(ctx, email)
	if err != nil {
		return User{}, err
	}
	if err = svc.setPassword(&usr, pwd); err != nil {
		return User{}, err
	}
	if usr, err = svc.repo.UpdateUser(ctx, usr); err != nil {
		return User{}, err
	}
	return usr, svc.refreshSession(ctx, usr)
}

// Delete removes the User and ends their session if they are logged in.
func (svc *Service) Delete(ctx context.Context, id string) error {
	if err := svc.repo.DeleteUser(ctx, id); err != nil {
		return err
	}
	if curr, err := svc.sessions.CurrentSession(ctx); err == nil && curr.ID == id {
		return svc.sessions.ClearSession(ctx)
	}
	return nil
}

func (svc *Service) setPassword(usr *User, pwd string) error {
	if svc.conf.PasswordPolicy {
		if err := ValidatePassword(pwd, *usr); err != nil {
			return err
		}
	}
	return usr.SetPassword(pwd, svc.conf.HashPasswords)
}

func (svc *Service) refreshSession(ctx context.Context, usr User) error {
	curr, err := svc.sessions.CurrentSession(ctx)
	if err != nil {
		if errors.Is(err, ErrNoSession) {
			return nil
		}
		return err
	}
	if curr.ID != usr.ID {
		return nil
	}
	return svc.sessions.SetCurrentSession(ctx, usr)
}
