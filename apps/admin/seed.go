package main

import (
	"context"
	"fmt"

	"github.com/trezcool/classroom/storage/database"
)

// seed creates the missing required page types.
func (cli *commandLine) seed(ctx context.Context) error {
	created, err := cli.ptSvc.EnsureRequired(ctx)
	if err != nil {
		return err
	}
	for _, pt := range created {
		fmt.Printf("created page type %q\n", pt.Name)
	}
	return nil
}

// reset empties tables, every table if none is given.
func (cli *commandLine) reset(ctx context.Context, tables ...string) error {
	if err := cli.db.Reset(ctx, tables...); err != nil {
		return err
	}
	if len(tables) == 0 {
		tables = database.Tables
	}
	for _, name := range tables {
		fmt.Printf("emptied %s\n", name)
	}
	return nil
}
