package cmd

import (
	"bufio"
	"context"
	"log/slog"
	"os"

	"github.com/quill-lang/quill/lang"
	"github.com/quill-lang/quill/log"
)

// Run interprets a quill program: inspect directives print to stdout in
// source order, and the resolved scope tree is optionally rendered after
// interpretation completes.
type Run struct {
	Source string `arg:"" default:"-" help:"Source input file or '-' for stdin." name:"source" optional:""`

	Tree bool `help:"Print the resolved scope tree after interpreting." short:"t"`
}

// Run executes the run command.
func (r *Run) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) {
		cancel(*err)
	}(&err)

	file, err := openSource(ctx, r.Source)
	if err != nil {
		return err
	}
	defer file.Close()

	tokens, err := lang.AnnotateReader(bufio.NewReader(file))
	if err != nil {
		return ErrInterpret.Wrap(err).
			With(slog.String("command", "run"))
	}

	in := lang.NewInterpreter(
		lang.WithSink(os.Stdout),
		lang.WithLogger(log.Default()),
	)

	root, err := in.Interpret(ctx, tokens)
	if err != nil {
		return ErrInterpret.Wrap(err).
			With(slog.String("command", "run"))
	}

	if r.Tree {
		err = lang.Dump(os.Stdout, root)
		if err != nil {
			return ErrRenderOutput.Wrap(err)
		}
	}

	return nil
}
