package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/dmitrijs2005/dbkeeper/internal/common"
	"github.com/dmitrijs2005/dbkeeper/internal/logging"
	"github.com/dmitrijs2005/dbkeeper/internal/record"
	"github.com/dmitrijs2005/dbkeeper/internal/session"
	"github.com/dmitrijs2005/dbkeeper/internal/storage"
)

// recordStore is the part of *storage.Store the console drives.
type recordStore interface {
	Insert(ctx context.Context, name string) (record.Record, error)
	Each(ctx context.Context, pred storage.Predicate, fn func(record.Record) error) error
	Wipe(ctx context.Context) error
}

// Dispatcher maps one input line to one store or session operation,
// enforcing the role requirement of privileged commands.
type Dispatcher struct {
	store    recordStore
	session  *session.Session
	prompter Prompter
	out      io.Writer
	logger   logging.Logger
}

// NewDispatcher wires a dispatcher. Results are written to out; follow-up
// questions (password, wipe confirmation) go through p.
func NewDispatcher(store recordStore, s *session.Session, p Prompter, out io.Writer, logger logging.Logger) *Dispatcher {
	return &Dispatcher{store: store, session: s, prompter: p, out: out, logger: logger}
}

// Dispatch parses line and runs the selected command. It reports quit=true
// when the user chose to leave. A non-nil error is fatal to the console:
// the credential file could not be read, or input ended mid-command.
// Recoverable failures are reported on the console and return nil.
func (d *Dispatcher) Dispatch(ctx context.Context, line string) (quit bool, err error) {
	cmd := ParseLine(line)

	switch cmd.Choice {
	case ChoiceQuit:
		fmt.Fprintln(d.out, "Goodbye!")
		return true, nil
	case ChoiceSwitchUser:
		return false, d.switchUser(ctx, cmd)
	case ChoiceQuery:
		d.query(ctx, cmd)
		return false, nil
	case ChoiceInsert:
		if d.allowed(ctx, cmd) {
			d.insert(ctx, cmd)
		}
		return false, nil
	case ChoiceWipe:
		if d.allowed(ctx, cmd) {
			return false, d.wipe(ctx)
		}
		return false, nil
	default:
		d.logger.Debug(ctx, "unknown choice ignored", "choice", int(cmd.Choice))
		return false, nil
	}
}

// allowed reports whether the session may run a privileged command. Denied
// attempts produce no console output.
func (d *Dispatcher) allowed(ctx context.Context, cmd Command) bool {
	if d.session.IsAdmin() {
		return true
	}
	d.logger.Info(ctx, "privileged command ignored", "command", cmd.Choice.String(), "role", d.session.Role().String())
	return false
}

func (d *Dispatcher) switchUser(ctx context.Context, cmd Command) error {
	if !cmd.HasArg {
		d.invalid(ctx, cmd, "Invalid username.")
		return nil
	}

	role, err := session.ParseRole(cmd.Arg)
	if err != nil {
		fmt.Fprintln(d.out, "Invalid username.")
		d.logger.Info(ctx, "switch rejected", "error", err)
		return nil
	}

	if role == session.RoleUser {
		d.session.SwitchToUser()
		fmt.Fprintln(d.out, "Switched to user.")
		d.logger.Info(ctx, "role changed", "role", role.String())
		return nil
	}

	if err := d.session.CheckCredentials(ctx); err != nil {
		d.logger.Error(ctx, "admin request failed", "error", err)
		return err
	}

	password, err := d.prompter.Password("Enter password: ")
	if err != nil {
		return fmt.Errorf("read password: %w", err)
	}

	err = d.session.RequestAdmin(ctx, password)
	switch {
	case err == nil:
		fmt.Fprintln(d.out, "Switched to admin.")
		d.logger.Info(ctx, "role changed", "role", session.RoleAdmin.String())
		return nil
	case errors.Is(err, common.ErrWrongPassword):
		fmt.Fprintln(d.out, "Incorrect password!")
		d.logger.Warn(ctx, "admin request denied", "error", err)
		return nil
	default:
		d.logger.Error(ctx, "admin request failed", "error", err)
		return err
	}
}

func (d *Dispatcher) query(ctx context.Context, cmd Command) {
	if !cmd.HasArg {
		d.invalid(ctx, cmd, "Invalid query.")
		return
	}

	fmt.Fprintln(d.out, " id | name")
	fmt.Fprintln(d.out, "----+----------------")

	count := 0
	err := d.store.Each(ctx, storage.Query(cmd.Arg), func(r record.Record) error {
		fmt.Fprintln(d.out, r.String())
		count++
		return nil
	})
	if err != nil {
		fmt.Fprintln(d.out, "Error reading from database.")
		d.logger.Error(ctx, "query failed", "term", cmd.Arg, "error", err)
		return
	}

	suffix := "ies"
	if count == 1 {
		suffix = "y"
	}
	fmt.Fprintf(d.out, "Found %d entr%s.\n", count, suffix)
}

func (d *Dispatcher) insert(ctx context.Context, cmd Command) {
	if !cmd.HasArg {
		d.invalid(ctx, cmd, "Invalid entry.")
		return
	}

	rec, err := d.store.Insert(ctx, cmd.Arg)
	if err != nil {
		fmt.Fprintln(d.out, "Error writing to database.")
		d.logger.Error(ctx, "insert failed", "name", cmd.Arg, "error", err)
		return
	}
	fmt.Fprintf(d.out, "Entry added: %d | %s\n", rec.ID, rec.Name)
	d.logger.Info(ctx, "record inserted", "id", rec.ID, "name", rec.Name)
}

func (d *Dispatcher) wipe(ctx context.Context) error {
	answer, err := d.prompter.Line("Are you sure you want to wipe the database? (y/N): ")
	if err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("read confirmation: %w", err)
	}

	if len(answer) == 0 || answer[0] != 'y' {
		fmt.Fprintln(d.out, "Aborted.")
		return nil
	}

	fmt.Fprintln(d.out, "Wiping database...")
	if err := d.store.Wipe(ctx); err != nil {
		fmt.Fprintln(d.out, "Error wiping database.")
		d.logger.Error(ctx, "wipe failed", "error", err)
		return nil
	}
	fmt.Fprintln(d.out, "Database wiped!")
	d.logger.Info(ctx, "store wiped")
	return nil
}

func (d *Dispatcher) invalid(ctx context.Context, cmd Command, msg string) {
	fmt.Fprintln(d.out, msg)
	d.logger.Debug(ctx, "command rejected", "command", cmd.Choice.String(), "error", common.ErrInvalidArgument)
}
