package cmdrunner

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/bitrise-io/go-utils/v2/command"
	"github.com/bitrise-io/go-utils/v2/log"
)

const redacted = "[REDACTED]"

// Runner ...
type Runner interface {
	Execute(name string, args ...string) error
	ExecuteForOutput(name string, args ...string) (string, error)
}

// CommandError is returned when an external command could not be started or exited with a non-zero status.
type CommandError struct {
	Command    string
	Output     string
	ExitStatus bool
	Err        error
}

func (e *CommandError) Error() string {
	msg := fmt.Sprintf("command (%s) failed", e.Command)
	if !e.ExitStatus {
		msg = fmt.Sprintf("command (%s) could not be started", e.Command)
	}
	if e.Output != "" {
		return fmt.Sprintf("%s, output: %s: %s", msg, e.Output, e.Err)
	}
	return fmt.Sprintf("%s: %s", msg, e.Err)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// IsCommandError ...
func IsCommandError(err error) bool {
	var cmdErr *CommandError
	return errors.As(err, &cmdErr)
}

// Redact replaces every non-empty secret in s, also in its quoted form.
func Redact(s string, secrets ...string) string {
	for _, secret := range secrets {
		if secret == "" {
			continue
		}
		s = strings.ReplaceAll(s, secret, redacted)

		quoted := strconv.Quote(secret)
		if inner := quoted[1 : len(quoted)-1]; inner != secret {
			s = strings.ReplaceAll(s, inner, redacted)
		}
	}
	return s
}

// CommandRunner runs commands created by a command.Factory in a fixed working directory.
type CommandRunner struct {
	factory command.Factory
	logger  log.Logger
	workDir string
	secrets []string
	stdout  io.Writer
	stderr  io.Writer
}

// NewCommandRunner ...
func NewCommandRunner(factory command.Factory, logger log.Logger, workDir string) CommandRunner {
	return CommandRunner{
		factory: factory,
		logger:  logger,
		workDir: workDir,
		stdout:  os.Stdout,
		stderr:  os.Stderr,
	}
}

// WithSecrets returns a runner that masks the given values in logged and returned command lines.
func (r CommandRunner) WithSecrets(secrets ...string) CommandRunner {
	r.secrets = append(append([]string{}, r.secrets...), secrets...)
	return r
}

// Execute runs the command, streaming its output.
func (r CommandRunner) Execute(name string, args ...string) error {
	cmd := r.factory.Create(name, args, &command.Opts{
		Stdout: r.stdout,
		Stderr: r.stderr,
		Dir:    r.workDir,
	})

	printable := r.printable(cmd)
	r.logger.Donef("$ %s", printable)
	r.logger.Println()

	if err := cmd.Run(); err != nil {
		return &CommandError{
			Command:    printable,
			ExitStatus: isExitStatusError(err),
			Err:        err,
		}
	}

	return nil
}

// ExecuteForOutput runs the command and returns its trimmed stdout.
func (r CommandRunner) ExecuteForOutput(name string, args ...string) (string, error) {
	cmd := r.factory.Create(name, args, &command.Opts{
		Stderr: r.stderr,
		Dir:    r.workDir,
	})

	printable := r.printable(cmd)
	r.logger.Debugf("$ %s", printable)

	out, err := cmd.RunAndReturnTrimmedOutput()
	if err != nil {
		return "", &CommandError{
			Command:    printable,
			Output:     out,
			ExitStatus: isExitStatusError(err),
			Err:        err,
		}
	}

	return out, nil
}

func (r CommandRunner) printable(cmd command.Command) string {
	return Redact(cmd.PrintableCommandArgs(), r.secrets...)
}

func isExitStatusError(err error) bool {
	return errors.As(err, new(*command.ExitStatusError))
}
