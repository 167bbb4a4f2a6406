package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/openmarket/internal/client/client"
	"github.com/dmitrijs2005/openmarket/internal/common"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	Refresh(ctx context.Context) error
	Browse(ctx context.Context, args []string) error
	Featured(ctx context.Context) error
	Show(ctx context.Context, args []string) error
	Store(ctx context.Context, args []string) error
	RateProduct(ctx context.Context, args []string) error
	RateSeller(ctx context.Context, args []string) error
	RateStore(ctx context.Context, args []string) error
	Profile(ctx context.Context) error
	CreateListing(ctx context.Context) error
	EditListing(ctx context.Context, args []string) error
	DeleteListing(ctx context.Context, args []string) error
	Settings(ctx context.Context) error
	Passwd(ctx context.Context) error
	Verify(ctx context.Context, args []string) error
}

const (
	helpAnonymous = "Available commands: browse, featured, show <id>, store <username>, register, login, help, exit"
	helpSignedIn  = "Available commands: browse, featured, show <id>, store <username>, rate-product, rate-seller, rate-store, " +
		"create, edit-listing, delete-listing <id>, profile, settings, passwd, verify, whoami, refresh, logout, help, exit"
)

// usageError is returned by commands called with missing or bad arguments.
type usageError string

func (u usageError) Error() string { return "usage: " + string(u) }

// runREPL starts a simple read–eval–print loop for the OpenMarket CLI.
//
// It reads a line from reader, parses the first token as the command and
// passes the remaining tokens to the handler. Handler errors are printed and
// the loop goes on. The loop exits on EOF, when ctx is done, or when the user
// types "exit" or "quit".
//
// Prompts issued by handlers read from the same reader, so scripted input
// interleaves commands and answers line by line.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}
		printlnFn(fmt.Sprintf("om (%s)> ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		var cmdErr error
		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn(helpSignedIn)
			} else {
				printlnFn(helpAnonymous)
			}

		case "register":
			cmdErr = a.Register(ctx)
		case "login":
			cmdErr = a.Login(ctx)
		case "logout":
			cmdErr = a.Logout(ctx)
		case "whoami":
			cmdErr = a.WhoAmI(ctx)
		case "refresh":
			cmdErr = a.Refresh(ctx)

		case "browse", "b":
			cmdErr = a.Browse(ctx, args)
		case "featured":
			cmdErr = a.Featured(ctx)
		case "show":
			cmdErr = a.Show(ctx, args)
		case "store":
			cmdErr = a.Store(ctx, args)

		case "rate-product":
			cmdErr = a.RateProduct(ctx, args)
		case "rate-seller":
			cmdErr = a.RateSeller(ctx, args)
		case "rate-store":
			cmdErr = a.RateStore(ctx, args)

		case "profile":
			cmdErr = a.Profile(ctx)
		case "create":
			cmdErr = a.CreateListing(ctx)
		case "edit-listing":
			cmdErr = a.EditListing(ctx, args)
		case "delete-listing":
			cmdErr = a.DeleteListing(ctx, args)
		case "settings":
			cmdErr = a.Settings(ctx)
		case "passwd":
			cmdErr = a.Passwd(ctx)
		case "verify":
			cmdErr = a.Verify(ctx, args)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if cmdErr != nil {
			printlnFn(errorStyle.Render("Error: " + describeError(cmdErr)))
		}
	}
}

// describeError turns command errors into short user-facing messages.
func describeError(err error) string {
	var (
		apiErr *client.APIError
		usage  usageError
	)
	switch {
	case errors.As(err, &usage):
		return usage.Error()
	case errors.Is(err, common.ErrNotAuthenticated):
		return "please log in first"
	case errors.Is(err, client.ErrUnavailable):
		return "the marketplace server is unavailable, try again later"
	case errors.Is(err, context.Canceled):
		return "cancelled"
	case errors.As(err, &apiErr):
		return apiErr.Message
	}
	return err.Error()
}
