package cmd

import (
	"bufio"
	"context"
	"log/slog"
	"os"

	"github.com/quill-lang/quill/lang"
)

// Fmt reserializes a quill program in canonical form: one statement per
// line, type annotations normalized, and implicit multiplications made
// explicit. The source is annotated but not interpreted, so unresolved
// lookups stay as bare names.
type Fmt struct {
	Source string `arg:"" default:"-" help:"Source input file or '-' for stdin." name:"source" optional:""`
}

// Run executes the fmt command.
func (f *Fmt) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) {
		cancel(*err)
	}(&err)

	file, err := openSource(ctx, f.Source)
	if err != nil {
		return err
	}
	defer file.Close()

	tokens, err := lang.AnnotateReader(bufio.NewReader(file))
	if err != nil {
		return ErrRenderOutput.Wrap(err).
			With(slog.String("command", "fmt"))
	}

	return lang.FormatStatements(os.Stdout, tokens)
}
