// Package cli implements the operator command loop: authentication
// through the session manager and admin operations behind the access
// gate.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"

	"github.com/shivam13669/storiesby-auth/internal/client"
	"github.com/shivam13669/storiesby-auth/internal/session"
	"github.com/shivam13669/storiesby-auth/internal/users"
)

// readPassword is a test seam for term.ReadPassword.
var readPassword = term.ReadPassword

type App struct {
	api     client.Client
	manager *session.Manager
	gate    *session.Gate

	in  *bufio.Reader
	out io.Writer
}

func NewApp(api client.Client, manager *session.Manager, in io.Reader, out io.Writer) *App {
	return &App{
		api:     api,
		manager: manager,
		gate:    session.NewGate(manager),
		in:      bufio.NewReader(in),
		out:     out,
	}
}

// Run restores the session and enters the command loop. It returns on
// EOF or the exit command.
func (a *App) Run(ctx context.Context) error {
	a.manager.Initialize(ctx)

	if snap, ok := a.manager.Current(); ok {
		fmt.Fprintf(a.out, "Welcome back, %s\n", snap.FirstName())
	}

	for {
		fmt.Fprint(a.out, a.prompt())

		line, err := a.in.ReadString('\n')
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		if fields[0] == "exit" || fields[0] == "quit" {
			return nil
		}

		if err := a.dispatch(ctx, fields[0], fields[1:]); err != nil {
			fmt.Fprintf(a.out, "error: %v\n", err)
		}
	}
}

func (a *App) prompt() string {
	if snap, ok := a.manager.Current(); ok {
		return snap.Email + "> "
	}
	return "anonymous> "
}

func (a *App) dispatch(ctx context.Context, cmd string, args []string) error {
	switch cmd {
	case "help":
		a.printHelp()
		return nil
	case "health":
		if err := a.api.Health(ctx); err != nil {
			return err
		}
		fmt.Fprintln(a.out, "server is up")
		return nil
	case "signup":
		return a.signup(ctx)
	case "login":
		return a.login(ctx)
	case "logout":
		a.manager.Logout(ctx)
		fmt.Fprintln(a.out, "logged out")
		return nil
	case "whoami":
		return a.whoami()
	case "refresh":
		if err := a.manager.Refresh(ctx); err != nil {
			return err
		}
		return a.whoami()
	case "users":
		return a.listUsers(ctx)
	case "suspend":
		return a.adminByID(ctx, args, a.api.Suspend, "suspended")
	case "unsuspend":
		return a.adminByID(ctx, args, a.api.Unsuspend, "unsuspended")
	case "delete":
		return a.adminByID(ctx, args, a.api.DeleteUser, "deleted")
	case "toggle-testimonial":
		return a.adminByID(ctx, args, a.api.ToggleTestimonial, "testimonial permission toggled")
	case "reset-password":
		return a.resetPassword(ctx, args)
	default:
		fmt.Fprintf(a.out, "unknown command %q, try help\n", cmd)
		return nil
	}
}

func (a *App) printHelp() {
	fmt.Fprintln(a.out, `commands:
  signup | login | logout | whoami | refresh | health
  admin only:
  users | suspend <id> | unsuspend <id> | delete <id>
  toggle-testimonial <id> | reset-password <id>
  exit`)
}

func (a *App) readLine(prompt string) (string, error) {
	fmt.Fprint(a.out, prompt)
	line, err := a.in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (a *App) readPassword(prompt string) (string, error) {
	fmt.Fprint(a.out, prompt)
	pw, err := readPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(a.out)
	if err != nil {
		return "", err
	}
	return string(pw), nil
}

func (a *App) signup(ctx context.Context) error {
	fullName, err := a.readLine("full name: ")
	if err != nil {
		return err
	}
	email, err := a.readLine("email: ")
	if err != nil {
		return err
	}
	password, err := a.readPassword("password: ")
	if err != nil {
		return err
	}
	mobile, err := a.readLine("mobile number: ")
	if err != nil {
		return err
	}
	country, err := a.readLine("country code: ")
	if err != nil {
		return err
	}

	user, err := a.api.Signup(ctx, users.SignupParams{
		FullName:     fullName,
		Email:        email,
		Password:     password,
		MobileNumber: mobile,
		CountryCode:  country,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "account created, id=%d — now login\n", user.ID)
	return nil
}

func (a *App) login(ctx context.Context) error {
	email, err := a.readLine("email: ")
	if err != nil {
		return err
	}
	password, err := a.readPassword("password: ")
	if err != nil {
		return err
	}

	snap, err := a.manager.Login(ctx, email, password)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Welcome, %s\n", snap.FirstName())
	return nil
}

func (a *App) whoami() error {
	snap, ok := a.manager.Current()
	if !ok {
		fmt.Fprintln(a.out, "not logged in")
		return nil
	}
	fmt.Fprintf(a.out, "#%d %s <%s> role=%s testimonial=%v\n",
		snap.ID, snap.FullName, snap.Email, snap.Role, snap.TestimonialAllowed)
	return nil
}

func (a *App) listUsers(ctx context.Context) error {
	if err := a.gate.RequireAdmin(); err != nil {
		return err
	}

	list, err := a.api.ListUsers(ctx)
	if err != nil {
		return err
	}

	for _, u := range list {
		flags := ""
		if u.IsSuspended {
			flags = " [suspended]"
		}
		fmt.Fprintf(a.out, "#%d %s <%s> role=%s%s\n",
			u.ID, u.FullName, u.Email, u.Role, flags)
	}
	return nil
}

func (a *App) adminByID(ctx context.Context, args []string, op func(context.Context, int64) error, done string) error {
	if err := a.gate.RequireAdmin(); err != nil {
		return err
	}

	id, err := parseID(args)
	if err != nil {
		return err
	}

	if err := op(ctx, id); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "user %d %s\n", id, done)

	// Our own record may have changed (e.g. toggling our testimonial
	// flag); refresh keeps the snapshot current.
	if snap, ok := a.manager.Current(); ok && snap.ID == id {
		return a.manager.Refresh(ctx)
	}
	return nil
}

func (a *App) resetPassword(ctx context.Context, args []string) error {
	if err := a.gate.RequireAdmin(); err != nil {
		return err
	}

	id, err := parseID(args)
	if err != nil {
		return err
	}

	password, err := a.readPassword("new password: ")
	if err != nil {
		return err
	}

	if err := a.api.ResetPassword(ctx, id, password); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "password reset for user %d\n", id)
	return nil
}

func parseID(args []string) (int64, error) {
	if len(args) != 1 {
		return 0, errors.New("expected a user id")
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid user id %q", args[0])
	}
	return id, nil
}
