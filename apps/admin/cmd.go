package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"syscall"

	"golang.org/x/term"

	"github.com/trezcool/classroom/core/pagetype"
	"github.com/trezcool/classroom/core/user"
	"github.com/trezcool/classroom/storage/database"
)

var (
	readPasswordFunc = term.ReadPassword // mockable

	errHelp = errors.New("help provided")
)

type commandLine struct {
	db     *database.DB
	usrSvc *user.Service
	ptSvc  *pagetype.Service
}

func (cli *commandLine) printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  migrate COMMAND [ARGS]                                 - run a goose command (sql storage engines only)")
	fmt.Println("  adduser -email EMAIL -firstname NAME -lastname NAME [-teacher] - create or update a user")
	fmt.Println("  resetpassword -email EMAIL                             - reset user's password")
	fmt.Println("  seed                                                   - create the required page types")
	fmt.Println("  reset -table TABLE|-all                                - empty tables")
}

func (cli *commandLine) readPassword(cmd *flag.FlagSet) (string, error) {
	fmt.Print("Enter password:")
	pwd, err := readPasswordFunc(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", err
	}
	if len(pwd) == 0 {
		cmd.Usage()
		return "", errHelp
	}
	return string(pwd), nil
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}
	ctx := context.Background()

	addUserCmd := flag.NewFlagSet("adduser", flag.ExitOnError)
	addUserEmail := addUserCmd.String("email", "", "The user's email. The password will be prompted next.")
	addUserFirstname := addUserCmd.String("firstname", "", "The user's first name.")
	addUserLastname := addUserCmd.String("lastname", "", "The user's last name.")
	addUserTeacher := addUserCmd.Bool("teacher", false, "Make the user a Teacher.")

	resetPasswordCmd := flag.NewFlagSet("resetpassword", flag.ExitOnError)
	resetPasswordEmail := resetPasswordCmd.String("email", "", "The user's email. The password will be prompted next.")

	resetCmd := flag.NewFlagSet("reset", flag.ExitOnError)
	resetTable := resetCmd.String("table", "", "The table to empty.")
	resetAll := resetCmd.Bool("all", false, "Empty every table.")

	switch args[1] {
	case "migrate":
		if len(args) < 3 {
			cli.printUsage()
			return errHelp
		}
		return cli.migrate(args[2:])

	case "adduser":
		if err := addUserCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *addUserEmail == "" {
			addUserCmd.Usage()
			return errHelp
		}
		pwd, err := cli.readPassword(addUserCmd)
		if err != nil {
			return err
		}
		var userType user.UserType
		if *addUserTeacher {
			userType = user.Teacher
		}
		return cli.addUser(ctx, user.NewUser{
			Email:     *addUserEmail,
			Password:  pwd,
			Firstname: *addUserFirstname,
			Lastname:  *addUserLastname,
		}, userType)

	case "resetpassword":
		if err := resetPasswordCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *resetPasswordEmail == "" {
			resetPasswordCmd.Usage()
			return errHelp
		}
		pwd, err := cli.readPassword(resetPasswordCmd)
		if err != nil {
			return err
		}
		return cli.resetPassword(ctx, *resetPasswordEmail, pwd)

	case "seed":
		return cli.seed(ctx)

	case "reset":
		if err := resetCmd.Parse(args[2:]); err != nil {
			return err
		}
		switch {
		case *resetAll:
			return cli.reset(ctx)
		case *resetTable != "":
			return cli.reset(ctx, *resetTable)
		default:
			resetCmd.Usage()
			return errHelp
		}

	default:
		cli.printUsage()
		return errHelp
	}
}
