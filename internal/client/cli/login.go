package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dkhristov/userhub/internal/client/client"
)

// Login prompts for credentials and exchanges them for an access token.
func (a *App) Login(ctx context.Context) error {

	userName, err := GetSimpleText(a.reader, "Enter user name", a.out)
	if err != nil {
		fmt.Fprintln(a.out, err.Error())
		return err
	}

	password, err := GetPassword(a.out)
	if err != nil {
		fmt.Fprintln(a.out, err.Error())
		return err
	}

	if err := a.api.Login(ctx, userName, password); err != nil {
		if errors.Is(err, client.ErrUnauthorized) {
			fmt.Fprintln(a.out, "Invalid user name or password")
		} else {
			fmt.Fprintln(a.out, err.Error())
		}
		return err
	}

	a.userName = userName
	fmt.Fprintln(a.out, "Success!")
	return nil
}

// Logout drops the access token held by the API client.
func (a *App) Logout(ctx context.Context) error {
	a.api.Logout()
	a.userName = ""
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

// Whoami calls the protected endpoint and prints the server's greeting.
func (a *App) Whoami(ctx context.Context) error {
	msg, err := a.api.Whoami(ctx)
	if err != nil {
		fmt.Fprintln(a.out, err.Error())
		return err
	}
	fmt.Fprintln(a.out, msg)
	return nil
}
