package main

import "github.com/pkg/errors"

// migrator is implemented by the sql storage engines.
type migrator interface {
	Migrate(command string, args ...string) error
}

func (cli *commandLine) migrate(args []string) error {
	m, ok := cli.db.Store().(migrator)
	if !ok {
		return errors.New("the configured storage engine has no migrations")
	}
	return m.Migrate(args[0], args[1:]...)
}
