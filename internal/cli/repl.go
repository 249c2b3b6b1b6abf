package cli

import (
	"context"
	"errors"
	"io"

	"github.com/dmitrijs2005/dbkeeper/internal/session"
)

// dispatcher is the surface the REPL needs; *Dispatcher satisfies it and
// tests can provide a stub.
type dispatcher interface {
	Dispatch(ctx context.Context, line string) (bool, error)
}

// runREPL repeats menu, read, dispatch until the user quits or input ends.
// roleFn supplies the role the menu is printed for.
//
// The line read in one cycle belongs to that cycle only; it is handed to the
// dispatcher once and never reused. End of input stops the loop without an
// error. Any error returned by the dispatcher is fatal and returned.
func runREPL(ctx context.Context, d dispatcher, roleFn func() session.Role, p Prompter, w io.Writer) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		printMenu(w, roleFn())
		line, err := p.Line(choicePrompt)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		quit, err := d.Dispatch(ctx, line)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		if quit {
			return nil
		}
	}
}
