package repl

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"

	"github.com/quill-lang/quill/lang"
	"github.com/quill-lang/quill/log"
)

const defaultEditor = "vi"

// editSourceCommand implements [tea.ExecCommand] for the session
// edit-reinterpret-retry loop. It writes the session transcript to a temp
// file, opens the user's editor, and interprets the result into a fresh
// tree. On error the user is prompted to re-edit; declining exits the
// program.
type editSourceCommand struct {
	source  []string
	ctxFunc func() context.Context
	sink    io.Writer
	logger  log.Logger

	newIn     *lang.Interpreter
	newSource []string

	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

// SetStdin sets the stdin reader for the command.
func (c *editSourceCommand) SetStdin(r io.Reader) { c.stdin = r }

// SetStdout sets the stdout writer for the command.
func (c *editSourceCommand) SetStdout(w io.Writer) { c.stdout = w }

// SetStderr sets the stderr writer for the command.
func (c *editSourceCommand) SetStderr(w io.Writer) { c.stderr = w }

// Run executes the edit-reinterpret-retry loop. It writes the transcript,
// opens the editor, and interprets the result. If the user declines to
// re-edit after an error, it returns [ErrEditDeclined].
func (c *editSourceCommand) Run() error {
	ctx := c.ctxFunc()

	content := strings.Join(c.source, "\n")
	if content != "" {
		content += "\n"
	}

	// Create a single temp file for the entire loop.
	f, err := os.CreateTemp(os.TempDir(), "quill-repl-*.quill")
	if err != nil {
		return err
	}

	tmpPath := f.Name()

	defer os.Remove(tmpPath)

	if err := f.Chmod(0o600); err != nil {
		f.Close()

		return err
	}

	f.Close()

	for {
		if err := os.WriteFile(tmpPath, []byte(content), 0o600); err != nil {
			return err
		}

		r, err := runEditor(ctx, c.stdin, c.stdout, c.stderr, tmpPath)
		if err != nil {
			return err
		}

		// An emptied file means the user abandoned the edit.
		br := bufio.NewReader(r)
		if _, err := br.Peek(1); err != nil {
			return nil
		}

		data, err := io.ReadAll(br)
		if err != nil {
			return err
		}

		in, interpErr := interpretEdited(ctx, string(data), c.sink, c.logger)
		c.logger.TraceContext(
			ctx,
			"editor interpret attempt",
			slog.Int("content_length", len(data)),
			slog.Bool("success", interpErr == nil),
		)

		if interpErr == nil {
			c.newIn = in
			c.newSource = splitSourceLines(string(data))

			return nil
		}

		// Show error and prompt.
		fmt.Fprintf(c.stderr, "\nError: %s\n", interpErr)
		fmt.Fprintf(c.stdout, "Re-edit? [Y/n] ")

		scanner := bufio.NewScanner(c.stdin)
		if !scanner.Scan() {
			return ErrEditDeclined
		}

		response := strings.TrimSpace(strings.ToLower(scanner.Text()))
		if response == "n" || response == "no" {
			return ErrEditDeclined
		}

		// Re-read the (failed) content for the next editor iteration.
		data, readErr := os.ReadFile(tmpPath)
		if readErr != nil {
			return readErr
		}

		content = string(data)
	}
}

// interpretEdited annotates and interprets the edited source into a fresh
// session interpreter. Inspect output goes to the session sink so it is
// echoed once the edit is applied.
func interpretEdited(
	ctx context.Context,
	source string,
	sink io.Writer,
	logger log.Logger,
) (*lang.Interpreter, error) {
	tokens, err := lang.AnnotateString(source)
	if err != nil {
		return nil, err
	}

	in := lang.NewInterpreter(
		lang.WithSink(sink),
		lang.WithLogger(logger),
	)

	_, err = in.Interpret(ctx, tokens)
	if err != nil {
		return nil, err
	}

	return in, nil
}

// splitSourceLines breaks edited content into transcript lines, dropping
// blank lines so the next edit round trips cleanly.
func splitSourceLines(content string) []string {
	var lines []string

	for _, line := range strings.Split(content, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}

		lines = append(lines, line)
	}

	return lines
}

// runEditor launches the user's editor on the given file path and returns
// a reader over the edited file content.
func runEditor(
	ctx context.Context,
	stdin io.Reader,
	stdout io.Writer,
	stderr io.Writer,
	path string,
) (io.Reader, error) {
	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = defaultEditor
	}

	cmd := exec.CommandContext(ctx, editor, path)
	cmd.Stdin = stdin
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	if err := cmd.Run(); err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	return f, nil
}
