package scormkit

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/aretw0/scormkit/pkg/course"
	"github.com/aretw0/scormkit/pkg/domain"
)

// ErrUnknownCommand is reported for lines the runner cannot interpret.
var ErrUnknownCommand = errors.New("unknown command")

// Runner drives a course client from line commands, for scripted or
// interactive learner sessions against an LMS.
type Runner struct {
	Input    io.Reader
	Output   io.Writer
	Headless bool
	Renderer ContentRenderer

	// Report builds the markdown printed by the "status" command.
	Report func(course.Snapshot, []domain.Interaction) string
}

// ContentRenderer is a function that transforms the content before outputting it.
// This allows for TUI rendering (markdown to ANSI) without coupling the core package.
type ContentRenderer func(string) (string, error)

// NewRunner creates a Runner. Input and Output must be set before Run.
func NewRunner() *Runner {
	return &Runner{}
}

// Run executes commands until EOF, "quit", or cancellation of ctx.
// The session is not terminated implicitly; send "terminate" for that.
func (r *Runner) Run(ctx context.Context, client *course.Client) error {
	if r.Input == nil {
		return fmt.Errorf("input reader must be set (use os.Stdin)")
	}
	if r.Output == nil {
		return fmt.Errorf("output writer must be set (use os.Stdout)")
	}
	lines := bufio.NewReader(r.Input)

	if !r.Headless {
		fmt.Fprintln(r.Output, "--- scormkit learner session ---")
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if !r.Headless {
			fmt.Fprint(r.Output, "> ")
		}

		text, err := lines.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("input error: %w", err)
		}
		eof := errors.Is(err, io.EOF)

		line := strings.TrimSpace(text)
		if line == "exit" || line == "quit" {
			if !r.Headless {
				fmt.Fprintln(r.Output, "Bye!")
			}
			return nil
		}
		if line != "" && !strings.HasPrefix(line, "#") {
			out, cmdErr := r.Exec(ctx, client, line)
			switch {
			case cmdErr != nil && r.Headless:
				return fmt.Errorf("%q: %w", line, cmdErr)
			case cmdErr != nil:
				fmt.Fprintf(r.Output, "error: %v\n", cmdErr)
			case out != "":
				fmt.Fprintln(r.Output, strings.TrimRight(out, "\n"))
			}
		}

		if eof {
			return nil
		}
	}
}

// Exec runs one command line against client and returns its output.
func (r *Runner) Exec(ctx context.Context, client *course.Client, line string) (string, error) {
	cmd, rest, _ := strings.Cut(line, " ")
	rest = strings.TrimSpace(rest)

	switch cmd {
	case "connect":
		res := client.Connect()
		return fmt.Sprintf("connected=%t version=%s", res.Success, res.Version), nil

	case "location":
		if rest == "" {
			return strconv.Itoa(client.Location(ctx)), nil
		}
		locStr, data, _ := strings.Cut(rest, " ")
		loc, err := strconv.Atoi(locStr)
		if err != nil {
			return "", fmt.Errorf("location must be an integer: %w", err)
		}
		var suspendData any
		if data = strings.TrimSpace(data); data != "" {
			if err := json.Unmarshal([]byte(data), &suspendData); err != nil {
				return "", fmt.Errorf("suspend data must be JSON: %w", err)
			}
		}
		return "ok", client.SetLocation(ctx, loc, suspendData)

	case "suspend":
		var v any
		if err := json.Unmarshal([]byte(rest), &v); err != nil {
			return "", fmt.Errorf("suspend data must be JSON: %w", err)
		}
		return "ok", client.SetSuspendData(ctx, v)

	case "resume":
		var v any
		if !client.SuspendData(ctx, &v) {
			return "{}", nil
		}
		out, err := json.Marshal(v)
		return string(out), err

	case "score":
		score, err := strconv.ParseFloat(rest, 64)
		if err != nil {
			return "", fmt.Errorf("score must be a number: %w", err)
		}
		return outcome(client.SetScore(score)), nil

	case "complete":
		return outcome(client.SetComplete()), nil

	case "answer":
		idxStr, response, _ := strings.Cut(rest, " ")
		idx, err := strconv.Atoi(idxStr)
		if err != nil {
			return "", fmt.Errorf("interaction index must be an integer: %w", err)
		}
		client.SetInteraction(idx, strings.TrimSpace(response))
		return "ok", nil

	case "record":
		idx, err := strconv.Atoi(rest)
		if err != nil {
			return "", fmt.Errorf("interaction index must be an integer: %w", err)
		}
		return outcome(client.RecordInteraction(idx)), nil

	case "objective", "progress":
		fields := strings.Fields(rest)
		if len(fields) != 3 {
			return "", fmt.Errorf("usage: %s <index> <id> <value>", cmd)
		}
		idx, err := strconv.Atoi(fields[0])
		if err != nil {
			return "", fmt.Errorf("objective index must be an integer: %w", err)
		}
		value, err := strconv.ParseFloat(fields[2], 64)
		if err != nil {
			return "", fmt.Errorf("objective value must be a number: %w", err)
		}
		if cmd == "objective" {
			return outcome(client.SetObjectiveScore(idx, fields[1], value)), nil
		}
		return outcome(client.SetObjectiveProgress(idx, fields[1], value)), nil

	case "learner":
		return fmt.Sprintf("%s <%s>", client.StudentName(), client.StudentID()), nil

	case "status":
		return r.status(client), nil

	case "terminate":
		return outcome(client.Terminate()), nil
	}

	return "", fmt.Errorf("%w: %s", ErrUnknownCommand, cmd)
}

func (r *Runner) status(client *course.Client) string {
	snap := client.Snapshot()
	if r.Report == nil {
		return fmt.Sprintf("connected=%t version=%s location=%d attempts=%d", snap.Connected, snap.Version, snap.Location, snap.ConnectRuns)
	}

	output := r.Report(snap, client.Interactions())
	if r.Renderer != nil {
		if rendered, err := r.Renderer(output); err == nil {
			output = rendered
		}
	}
	return output
}

func outcome(ok bool) string {
	if ok {
		return "ok"
	}
	return "failed"
}
