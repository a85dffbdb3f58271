package cmd

import (
	"bufio"
	"context"
	"io"
	"os"

	"github.com/quill-lang/quill/cli/cmd/repl"
	"github.com/quill-lang/quill/log"
)

// Repl starts an interactive session, optionally seeded from a source
// file. The resolved tree persists across submitted statements.
type Repl struct {
	Source string `arg:"" help:"Source input file to seed the session." name:"source" optional:""`

	Cache string `default:"${cache}" help:"Directory holding REPL history."`
}

// Run executes the repl command.
func (r *Repl) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) {
		cancel(*err)
	}(&err)

	// Stdin stays attached to the terminal, so only an explicit source
	// argument or bound source flags seed the session.
	var reader io.Reader

	switch {
	case r.Source != "" && r.Source != stdinSource:
		file, err := os.Open(r.Source)
		if err != nil {
			return ErrOpenSource.Wrap(err)
		}
		defer file.Close()

		reader = bufio.NewReader(file)

	default:
		if srcs := sourceFilesFrom(ctx); srcs != nil {
			reader = srcs
		}
	}

	return repl.Run(ctx, reader, r.Cache, log.Default())
}
