package cmd

import (
	"bufio"
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/quill-lang/quill/lang"
)

// Dump interprets a quill program and renders the resolved scope tree in
// the chosen format. Inspect directives are evaluated but their output is
// discarded so only the tree reaches stdout.
type Dump struct {
	Text Text `cmd:"" default:"withargs" help:"Render as qualified assignment lines (default)."`
	JSON JSON `cmd:""                    help:"Render as JSON."`
	YAML YAML `cmd:""                    help:"Render as YAML."`
}

// Text renders the resolved tree as one qualified assignment per line.
type Text struct {
	Source string `arg:"" default:"-" help:"Source input file or '-' for stdin." name:"source" optional:""`
}

// Run executes the dump text command.
func (t *Text) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) {
		cancel(*err)
	}(&err)

	root, err := interpretSource(ctx, t.Source, "text")
	if err != nil {
		return err
	}

	return lang.Dump(os.Stdout, root)
}

// JSON renders the resolved tree as JSON.
type JSON struct {
	Source string `arg:"" default:"-" help:"Source input file or '-' for stdin." name:"source" optional:""`
}

// Run executes the dump json command.
func (j *JSON) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) {
		cancel(*err)
	}(&err)

	root, err := interpretSource(ctx, j.Source, "json")
	if err != nil {
		return err
	}

	data, err := lang.MarshalJSON(root)
	if err != nil {
		return ErrRenderOutput.Wrap(err).
			With(slog.String("format", "json"))
	}

	data = append(data, '\n')

	_, err = os.Stdout.Write(data)

	return err
}

// YAML renders the resolved tree as YAML.
type YAML struct {
	Source string `arg:"" default:"-" help:"Source input file or '-' for stdin." name:"source" optional:""`
}

// Run executes the dump yaml command.
func (y *YAML) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) {
		cancel(*err)
	}(&err)

	root, err := interpretSource(ctx, y.Source, "yaml")
	if err != nil {
		return err
	}

	data, err := lang.MarshalYAML(root)
	if err != nil {
		return ErrRenderOutput.Wrap(err).
			With(slog.String("format", "yaml"))
	}

	_, err = os.Stdout.Write(data)

	return err
}

// interpretSource annotates and interprets the given source with inspect
// output suppressed, returning the resolved root scope.
func interpretSource(
	ctx context.Context,
	source, format string,
) (*lang.Scope, error) {
	file, err := openSource(ctx, source)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	tokens, err := lang.AnnotateReader(bufio.NewReader(file))
	if err != nil {
		return nil, ErrInterpret.Wrap(err).
			With(slog.String("format", format))
	}

	root, err := lang.NewInterpreter(lang.WithSink(io.Discard)).
		Interpret(ctx, tokens)
	if err != nil {
		return nil, ErrInterpret.Wrap(err).
			With(slog.String("format", format))
	}

	return root, nil
}
