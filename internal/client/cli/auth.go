package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"letterpal/internal/common"
)

func (a *App) Login(ctx context.Context) error {

	nickname, err := GetSimpleText(a.reader, "Enter nickname", os.Stdout)
	if err != nil {
		printlnFn("error:", err)
		return err
	}

	password, err := GetPassword(os.Stdout)
	if err != nil {
		printlnFn("error:", err)
		return err
	}

	user, err := a.session.Login(ctx, nickname, password)
	if err != nil {
		if errors.Is(err, common.ErrInvalidCredentials) {
			printlnFn("Login unsuccessful: invalid nickname or password")
		} else {
			printlnFn("Login unsuccessful:", err)
		}
		return err
	}

	printlnFn(fmt.Sprintf("Hi %s, welcome back!", user.Nickname))
	return nil
}

func (a *App) Register(ctx context.Context) error {

	nickname, err := GetSimpleText(a.reader, "Pick a nickname", os.Stdout)
	if err != nil {
		printlnFn("error:", err)
		return err
	}

	password, err := GetPassword(os.Stdout)
	if err != nil {
		printlnFn("error:", err)
		return err
	}

	user, err := a.session.Register(ctx, nickname, password)
	if err != nil {
		if errors.Is(err, common.ErrNicknameTaken) {
			printlnFn("Registration unsuccessful: that nickname is already taken")
		} else {
			printlnFn("Registration unsuccessful:", err)
		}
		return err
	}

	printlnFn(fmt.Sprintf("Welcome aboard, %s!", user.Nickname))
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	a.session.Logout(ctx)
	printlnFn("Logged out.")
	return nil
}
