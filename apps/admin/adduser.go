package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/trezcool/classroom/core"
	"github.com/trezcool/classroom/core/user"
)

// addUser updates or creates a user.User.
// A blank userType creates a Student and leaves an existing user's type unchanged.
func (cli *commandLine) addUser(ctx context.Context, nu user.NewUser, userType user.UserType) error {
	usr, err := cli.usrSvc.GetByEmail(ctx, nu.Email)
	if err != nil {
		if !errors.Is(err, core.ErrNotFound) {
			return err
		}
		if userType == "" {
			userType = user.Student
		}
		if usr, err = cli.usrSvc.Create(ctx, nu, userType); err != nil {
			return err
		}
		fmt.Printf("created %s %s\n", usr.UserType, usr.Email)
		return nil
	}

	if _, err = cli.usrSvc.SetPassword(ctx, usr.Email, nu.Password); err != nil {
		return err
	}
	usr, err = cli.usrSvc.UpdateProfile(ctx, usr.ID, user.UpdateProfile{
		Firstname: nu.Firstname,
		Lastname:  nu.Lastname,
		UserType:  userType,
	})
	if err != nil {
		return err
	}
	fmt.Printf("updated %s %s\n", usr.UserType, usr.Email)
	return nil
}
