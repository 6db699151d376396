package main

import "context"

func (cli *commandLine) resetPassword(ctx context.Context, email, pwd string) error {
	_, err := cli.usrSvc.SetPassword(ctx, email, pwd)
	return err
}
