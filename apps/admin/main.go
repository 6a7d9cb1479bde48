package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/trezcool/lideo/core"
	"github.com/trezcool/lideo/core/identity"
	logsvc "github.com/trezcool/lideo/services/logger"
	"github.com/trezcool/lideo/storage/lmsapi"
)

var logger *log.Logger

func main() {
	defer os.Exit(0)

	logger = log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)

	conf := core.NewConfig()

	apiLogger := logsvc.NewRollbarLogger(logger, conf)
	apiLogger.Enable(!conf.Debug)

	client, err := lmsapi.NewClient(conf, apiLogger)
	errAndDie(err)

	// session state lives next to the user's other app configs
	confDir, err := os.UserConfigDir()
	errAndDie(err)
	keeper := identity.NewFileKeeper(
		filepath.Join(confDir, "lideo"),
		conf.Session.CookieName,
		conf.Session.CodeKey,
	)

	store := identity.NewStore(lmsapi.NewAuthClient(client), keeper)
	if err = store.Init(); err != nil {
		logger.Printf("discarding unreadable session state: %v", err)
	}

	// start CLI
	cli := commandLine{
		conf:         conf,
		store:        store,
		universities: lmsapi.NewUniversityClient(client),
		stdin:        os.Stdin,
		out:          os.Stdout,
	}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			fmt.Printf("\nerror: %s\n", err)
		}
		os.Exit(1)
	}
}

func errAndDie(err error) {
	if err != nil {
		logger.Fatal(err)
	}
}
