package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"
	"syscall"
	"time"

	"github.com/trezcool/lideo/core/otp"
	"github.com/trezcool/lideo/core/portal"
)

var errCodeExpired = errors.New("verification code expired, start over")

func (cli *commandLine) login(email, pwd string) error {
	id, err := cli.store.Login(context.Background(), email, pwd)
	if err != nil {
		return err
	}
	p := portal.ForIdentity(&id)
	fmt.Fprintf(cli.out, "Welcome %s! (%s -> %s)\n", id.Name, id.Role, p.View)
	return nil
}

// superAdminLogin runs the interactive elevation flow: access key prompt,
// on-screen one-time code, then code entry bounded by a live countdown.
// Countdown expiry aborts back to the beginning.
func (cli *commandLine) superAdminLogin() error {
	fmt.Fprint(cli.out, "Enter access key:")
	key, err := readPasswordFunc(syscall.Stdin)
	fmt.Fprintln(cli.out)
	if err != nil {
		return err
	}
	if string(key) != cli.conf.SuperAdmin.AccessKey {
		return errors.New("invalid access key")
	}

	window := cli.codeWindow
	if window == 0 {
		window = cli.conf.SuperAdmin.CodeTTL
	}
	code := otp.Generate(string(key), time.Now())
	fmt.Fprintf(cli.out, "Your verification code is %s (valid for %v)\n", code, window)

	countdown := otp.NewCountdown(window)
	defer countdown.Stop()

	entries := make(chan string, 1)
	readErrs := make(chan error, 1)
	go func() {
		scanner := bufio.NewScanner(cli.stdin)
		fmt.Fprint(cli.out, "Enter verification code:")
		if scanner.Scan() {
			entries <- strings.TrimSpace(scanner.Text())
			return
		}
		if err := scanner.Err(); err != nil {
			readErrs <- err
			return
		}
		readErrs <- errors.New("no code entered")
	}()

	select {
	case <-countdown.Done():
		fmt.Fprintln(cli.out)
		return errCodeExpired
	case err := <-readErrs:
		return err
	case submitted := <-entries:
		countdown.Stop()
		id, err := cli.store.LoginWithCode(submitted, code)
		if err != nil {
			return err
		}
		fmt.Fprintf(cli.out, "Welcome %s! (%s)\n", id.Name, id.Role)
		return nil
	}
}

func (cli *commandLine) whoami() error {
	id, state := cli.store.Current()
	if id == nil {
		fmt.Fprintf(cli.out, "session: %s\n", state)
		return nil
	}
	p := portal.ForIdentity(id)
	fmt.Fprintf(cli.out, "%s <%s> (%s -> %s)\n", id.Name, id.Email, id.Role, p.View)
	return nil
}

func (cli *commandLine) logout() error {
	if err := cli.store.Logout(); err != nil {
		return err
	}
	fmt.Fprintln(cli.out, "Logged out.")
	return nil
}
