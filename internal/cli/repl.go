package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	hasDay() bool
	hasSet() bool

	Days(ctx context.Context) error
	OpenDay(ctx context.Context) error
	RenameDay(ctx context.Context) error
	DeleteDay(ctx context.Context) error

	Sets(ctx context.Context) error
	NewSet(ctx context.Context) error
	UseSet(ctx context.Context) error
	RenameSet(ctx context.Context) error
	DeleteSet(ctx context.Context) error

	Words(ctx context.Context) error
	AddWord(ctx context.Context) error
	EditWord(ctx context.Context) error
	RemoveWord(ctx context.Context) error

	Enrich(ctx context.Context) error
	Story(ctx context.Context) error
	Stats(ctx context.Context) error
	Export(ctx context.Context) error
	Import(ctx context.Context) error
}

// runREPL starts the read–eval–print loop of the wordbook CLI.
//
// It reads a line from reader, takes the first token as the command and
// dispatches to methods on 'a'. Handlers prompt for their own input through
// the same reader. The loop exits on EOF, on context cancellation or when
// the user types "exit" or "quit".
//
// The prompt shows the current day and set (from statusFn):
//
//	wb 2024-01-01/Nouns> add
//
// Errors returned by handlers are ignored here; handlers report them to the
// user themselves.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}

		prompt := "wb> "
		if s := statusFn(); s != "" {
			prompt = fmt.Sprintf("wb %s> ", s)
		}
		printlnFn(prompt)

		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]

		switch cmd {
		case "help":
			printlnFn(helpText(a))

		case "days":
			_ = a.Days(ctx)
		case "open":
			_ = a.OpenDay(ctx)
		case "renameday":
			_ = a.RenameDay(ctx)
		case "deleteday":
			_ = a.DeleteDay(ctx)

		case "sets":
			_ = a.Sets(ctx)
		case "newset":
			_ = a.NewSet(ctx)
		case "use":
			_ = a.UseSet(ctx)
		case "renameset":
			_ = a.RenameSet(ctx)
		case "deleteset":
			_ = a.DeleteSet(ctx)

		case "l", "words":
			_ = a.Words(ctx)
		case "add":
			_ = a.AddWord(ctx)
		case "edit":
			_ = a.EditWord(ctx)
		case "remove", "rm":
			_ = a.RemoveWord(ctx)

		case "enrich":
			_ = a.Enrich(ctx)
		case "story":
			_ = a.Story(ctx)
		case "stats":
			_ = a.Stats(ctx)
		case "export":
			_ = a.Export(ctx)
		case "import":
			_ = a.Import(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}

func helpText(a execIface) string {
	cmds := []string{"days", "open"}
	if a.hasDay() {
		cmds = append(cmds, "renameday", "deleteday", "sets", "newset", "use")
	}
	if a.hasSet() {
		cmds = append(cmds, "renameset", "deleteset", "(l)words", "add", "edit", "remove", "enrich", "story")
	}
	cmds = append(cmds, "stats", "export", "import", "exit")
	return "Available commands: " + strings.Join(cmds, ", ")
}
