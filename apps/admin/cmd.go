package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"syscall"
	"time"

	"golang.org/x/term"

	"github.com/trezcool/lideo/core"
	"github.com/trezcool/lideo/core/catalog"
	"github.com/trezcool/lideo/core/identity"
)

var (
	readPasswordFunc = term.ReadPassword // mockable

	errHelp = errors.New("help provided")
)

type commandLine struct {
	conf         *core.Config
	store        *identity.Store
	universities catalog.UniversityClient

	stdin io.Reader
	out   io.Writer

	// codeWindow overrides the configured code validity window (tests).
	codeWindow time.Duration
}

func (cli *commandLine) printUsage() {
	fmt.Fprintln(cli.out, "Usage:")
	fmt.Fprintln(cli.out, "  login -email EMAIL - log into the LMS backend. The password will be prompted next.")
	fmt.Fprintln(cli.out, "  superadmin - elevate to super admin via the access key and one-time code.")
	fmt.Fprintln(cli.out, "  whoami - show the current session identity.")
	fmt.Fprintln(cli.out, "  logout - clear the current session.")
	fmt.Fprintln(cli.out, "  adduniversity -name NAME -address ADDRESS -estyear YEAR [-admin NAME] - register a university.")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	loginCmd := flag.NewFlagSet("login", flag.ExitOnError)
	loginEmail := loginCmd.String("email", "", "The account's email. The password will be prompted next.")

	addUniCmd := flag.NewFlagSet("adduniversity", flag.ExitOnError)
	addUniName := addUniCmd.String("name", "", "The university's name.")
	addUniAddress := addUniCmd.String("address", "", "The university's address.")
	addUniEstYear := addUniCmd.String("estyear", "", "The university's establishment year.")
	addUniAdmin := addUniCmd.String("admin", "", "The university's admin name (optional).")

	switch args[1] {
	case "login":
		if err := loginCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *loginEmail == "" {
			loginCmd.Usage()
			return errHelp
		}
		fmt.Fprint(cli.out, "Enter password:")
		pwd, err := readPasswordFunc(syscall.Stdin)
		fmt.Fprintln(cli.out)
		if err != nil {
			return err
		}
		if len(pwd) == 0 {
			loginCmd.Usage()
			return errHelp
		}
		return cli.login(*loginEmail, string(pwd))
	case "superadmin":
		return cli.superAdminLogin()
	case "whoami":
		return cli.whoami()
	case "logout":
		return cli.logout()
	case "adduniversity":
		if err := addUniCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *addUniName == "" || *addUniAddress == "" || *addUniEstYear == "" {
			addUniCmd.Usage()
			return errHelp
		}
		return cli.addUniversity(*addUniName, *addUniAddress, *addUniEstYear, *addUniAdmin)
	default:
		cli.printUsage()
		return errHelp
	}
}
