package main

import (
	"fmt"

	"github.com/fwojciec/sitechat"
)

// Run executes the user add command.
func (c *UserAddCmd) Run(deps *Dependencies) error {
	user := &sitechat.User{Name: c.Name}
	if err := deps.Users.CreateUser(deps.Ctx, user); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", sitechat.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Added user %q (%s)\n", user.Name, user.ID)
	return nil
}
