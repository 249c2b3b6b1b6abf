package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/dmitrijs2005/dbkeeper/internal/common"
	"github.com/dmitrijs2005/dbkeeper/internal/config"
	"github.com/dmitrijs2005/dbkeeper/internal/logging"
	"github.com/dmitrijs2005/dbkeeper/internal/session"
	"github.com/dmitrijs2005/dbkeeper/internal/storage"
)

// Exit codes of the console process.
const (
	ExitOK    = 0
	ExitFatal = 1
)

type App struct {
	config     *config.Config
	logger     logging.Logger
	store      *storage.Store
	session    *session.Session
	prompter   Prompter
	dispatcher *Dispatcher
	out        io.Writer
}

// NewApp opens the store named in c and builds a console reading from in and
// writing to out. The returned error wraps common.ErrIO if the store cannot
// be opened.
func NewApp(c *config.Config, logger logging.Logger, in io.Reader, out io.Writer) (*App, error) {
	store, err := storage.Open(c.StorePath)
	if err != nil {
		return nil, err
	}

	s := session.New(session.FileCredentials{Path: c.CredentialPath})
	logger = logger.With("session_id", s.ID())
	p := newConsolePrompter(in, out)

	return &App{
		config:     c,
		logger:     logger,
		store:      store,
		session:    s,
		prompter:   p,
		dispatcher: NewDispatcher(store, s, p, out, logger),
		out:        out,
	}, nil
}

// Run greets the user and drives the console until quit or end of input.
// The store is closed before returning.
func (a *App) Run(ctx context.Context) error {
	defer func() {
		if err := a.store.Close(); err != nil {
			a.logger.Error(ctx, "closing store", "error", err)
		}
	}()

	a.logger.Info(ctx, "console started", "store", a.config.StorePath)
	fmt.Fprintln(a.out, "Welcome to database manager!")

	err := runREPL(ctx, a.dispatcher, a.session.Role, a.prompter, a.out)
	if err != nil {
		a.logger.Error(ctx, "console stopped", "error", err)
		return err
	}
	a.logger.Info(ctx, "console stopped")
	return nil
}

// Main builds and runs the console, printing the diagnostic for fatal
// failures to out, and returns the process exit code.
func Main(ctx context.Context, c *config.Config, logger logging.Logger, in io.Reader, out io.Writer) int {
	app, err := NewApp(c, logger, in, out)
	if err != nil {
		fmt.Fprintln(out, "Error opening database.")
		logger.Error(ctx, "open store", "path", c.StorePath, "error", err)
		return ExitFatal
	}

	if err := app.Run(ctx); err != nil {
		if errors.Is(err, common.ErrCredentialUnavailable) {
			fmt.Fprintln(out, "Error opening file")
		}
		return ExitFatal
	}
	return ExitOK
}
