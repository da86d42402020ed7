package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/dkhristov/userhub/internal/client/client"
)

func (a *App) printUser(u *client.User) {
	fmt.Fprintf(a.out, "%d\t%s\t%s\n", u.ID, u.Username, u.Email)
}

func (a *App) parseID(arg string) (int64, bool) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		fmt.Fprintf(a.out, "Invalid id: %s\n", arg)
		return 0, false
	}
	return id, true
}

// List prints all registered users.
func (a *App) List(ctx context.Context) error {
	users, err := a.api.ListUsers(ctx)
	if err != nil {
		fmt.Fprintln(a.out, err.Error())
		return err
	}

	if len(users) == 0 {
		fmt.Fprintln(a.out, "No users")
		return nil
	}

	fmt.Fprintln(a.out, "ID\tUsername\tEmail")
	for i := range users {
		a.printUser(&users[i])
	}
	return nil
}

// Get prints a single user by id.
func (a *App) Get(ctx context.Context, arg string) error {
	id, ok := a.parseID(arg)
	if !ok {
		return nil
	}

	user, err := a.api.GetUser(ctx, id)
	if err != nil {
		fmt.Fprintln(a.out, err.Error())
		return err
	}

	a.printUser(user)
	return nil
}

// Update prompts for new field values and sends the changes. An empty
// answer leaves the corresponding field unchanged.
func (a *App) Update(ctx context.Context, arg string) error {
	id, ok := a.parseID(arg)
	if !ok {
		return nil
	}

	var upd client.UserUpdate

	userName, err := GetSimpleText(a.reader, "New user name (leave empty to keep)", a.out)
	if err != nil {
		fmt.Fprintln(a.out, err.Error())
		return err
	}
	if userName != "" {
		upd.Username = &userName
	}

	email, err := GetSimpleText(a.reader, "New email (leave empty to keep)", a.out)
	if err != nil {
		fmt.Fprintln(a.out, err.Error())
		return err
	}
	if email != "" {
		upd.Email = &email
	}

	answer, err := GetSimpleText(a.reader, "Change password? (y/N)", a.out)
	if err != nil {
		fmt.Fprintln(a.out, err.Error())
		return err
	}
	if answer == "y" || answer == "Y" {
		pw, err := GetPassword(a.out)
		if err != nil {
			fmt.Fprintln(a.out, err.Error())
			return err
		}
		password := string(pw)
		upd.Password = &password
	}

	user, err := a.api.UpdateUser(ctx, id, upd)
	if err != nil {
		fmt.Fprintln(a.out, err.Error())
		return err
	}

	fmt.Fprintln(a.out, "Updated:")
	a.printUser(user)
	return nil
}

// Delete removes a user by id after a confirmation prompt.
func (a *App) Delete(ctx context.Context, arg string) error {
	id, ok := a.parseID(arg)
	if !ok {
		return nil
	}

	answer, err := GetSimpleText(a.reader, fmt.Sprintf("Delete user %d? (y/N)", id), a.out)
	if err != nil {
		fmt.Fprintln(a.out, err.Error())
		return err
	}
	if answer != "y" && answer != "Y" {
		fmt.Fprintln(a.out, "Cancelled")
		return nil
	}

	if err := a.api.DeleteUser(ctx, id); err != nil {
		fmt.Fprintln(a.out, err.Error())
		return err
	}

	fmt.Fprintln(a.out, "User deleted")
	return nil
}
