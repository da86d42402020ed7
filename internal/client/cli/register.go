package cli

import (
	"context"
	"fmt"
)

// Register prompts for the new account's details and creates it on the
// server. The user still has to log in afterwards.
func (a *App) Register(ctx context.Context) error {

	userName, err := GetSimpleText(a.reader, "Enter user name", a.out)
	if err != nil {
		fmt.Fprintln(a.out, err.Error())
		return err
	}

	email, err := GetSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		fmt.Fprintln(a.out, err.Error())
		return err
	}

	password, err := GetPassword(a.out)
	if err != nil {
		fmt.Fprintln(a.out, err.Error())
		return err
	}

	user, err := a.api.Register(ctx, userName, email, password)
	if err != nil {
		fmt.Fprintln(a.out, err.Error())
		return err
	}

	fmt.Fprintf(a.out, "Registered user %s (id %d). Use 'login' to sign in.\n", user.Username, user.ID)
	return nil
}
