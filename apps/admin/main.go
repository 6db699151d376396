package main

import (
	"context"
	"log"
	"os"

	"github.com/trezcool/classroom/core"
	"github.com/trezcool/classroom/core/pagetype"
	"github.com/trezcool/classroom/core/user"
	"github.com/trezcool/classroom/services/logger"
	"github.com/trezcool/classroom/storage/database"
)

var logger core.Logger

func main() {
	conf := core.NewConfig()
	std := log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)
	logger = logsvc.New(std, conf)

	// set up DB
	db, err := database.Open(context.Background(), conf, logger)
	errAndDie(err)

	// start CLI
	cli := newCommandLine(db, conf.Auth)
	err = cli.run(os.Args)
	if err != nil && err != errHelp {
		logger.Error("admin command failed", err)
	}
	if cErr := db.Close(); cErr != nil {
		logger.Error("closing storage", cErr)
	}
	if flusher, ok := logger.(interface{ Close() error }); ok {
		_ = flusher.Close()
	}
	if err != nil {
		os.Exit(1)
	}
}

func newCommandLine(db *database.DB, conf core.AuthConfig) *commandLine {
	return &commandLine{
		db:     db,
		usrSvc: user.NewService(database.NewUserRepository(db), database.NewSessionStore(db), conf),
		ptSvc:  pagetype.NewService(database.NewPageTypeRepository(db)),
	}
}

func errAndDie(err error) {
	if err != nil {
		logger.Fatal("admin setup failed", err)
	}
}
