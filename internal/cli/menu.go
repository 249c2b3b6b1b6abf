package cli

import (
	"fmt"
	"io"

	"github.com/dmitrijs2005/dbkeeper/internal/session"
)

const choicePrompt = "Enter your choice: "

// printMenu writes the options available to role.
func printMenu(w io.Writer, role session.Role) {
	fmt.Fprintf(w, "\nLogged in as: %s\n", role)
	fmt.Fprintln(w, "1) Quit")
	fmt.Fprintln(w, "2) Change <user>")
	fmt.Fprintln(w, "3) Query <something|*>")
	if role == session.RoleAdmin {
		fmt.Fprintln(w, "4) Insert <entry> into database")
		fmt.Fprintln(w, "5) Wipe database")
	}
}
