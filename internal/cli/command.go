package cli

import (
	"strconv"
	"strings"

	"github.com/dmitrijs2005/dbkeeper/internal/common"
)

// Choice is a numbered menu entry.
type Choice int

const (
	ChoiceNone Choice = iota
	ChoiceQuit
	ChoiceSwitchUser
	ChoiceQuery
	ChoiceInsert
	ChoiceWipe
)

func (c Choice) String() string {
	switch c {
	case ChoiceQuit:
		return "quit"
	case ChoiceSwitchUser:
		return "switch-user"
	case ChoiceQuery:
		return "query"
	case ChoiceInsert:
		return "insert"
	case ChoiceWipe:
		return "wipe"
	default:
		return "choice(" + strconv.Itoa(int(c)) + ")"
	}
}

// Command is one parsed input line.
type Command struct {
	Choice Choice
	// Arg is the first token after the verb, cut to common.MaxArgLen bytes.
	Arg    string
	HasArg bool
}

// ParseLine splits line into a menu choice and its argument.
//
// The choice is the leading integer of the first token; a token that does
// not start with a number gives ChoiceNone. The argument is the next
// whitespace-delimited token. Later tokens are ignored. Overlong arguments
// are truncated, not rejected.
func ParseLine(line string) Command {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Command{}
	}

	cmd := Command{Choice: Choice(leadingInt(fields[0]))}
	if len(fields) > 1 {
		arg := fields[1]
		if len(arg) > common.MaxArgLen {
			arg = arg[:common.MaxArgLen]
		}
		cmd.Arg = arg
		cmd.HasArg = true
	}
	return cmd
}

// leadingInt parses an optional sign followed by digits at the start of s,
// returning 0 if there are none.
func leadingInt(s string) int {
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	start := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == start {
		return 0
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}
	return n
}
