// Package command runs the configured dbt or shell command inside the project directory
package command

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"

	"github.com/iterum-provenance/dbt-runner/env"
	"github.com/iterum-provenance/dbt-runner/logging"
	"github.com/iterum-provenance/dbt-runner/util"
)

// DefaultShell is the host shell used when DBT_SHELL is native or unset
const DefaultShell = "sh"

// Result describes a finished command
type Result struct {
	ExitCode int
}

// Executor runs the configured command in the project directory
type Executor struct {
	Stdout io.Writer
	Stderr io.Writer
	log    logging.Logger
}

// NewExecutor instantiates an Executor writing to the process' standard streams
func NewExecutor(logger logging.Logger) *Executor {
	return &Executor{
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		log:    logger,
	}
}

// Run marks the project's scripts executable and runs conf.Command from within conf.Path.
// The exit status of the command is reported in the Result, an error means it never ran.
func (e *Executor) Run(ctx context.Context, conf *env.Config) (Result, error) {
	if os.Getenv(env.Pass) == "" {
		e.log.Warnf("%v. Skipping execution of DBT commands...", ErrCredentialsMissing)
		return Result{ExitCode: 1}, ErrCredentialsMissing
	}
	if err := e.markScripts(conf.Path); err != nil {
		return Result{ExitCode: 1}, err
	}

	result := Result{ExitCode: 1}
	err := util.WithDir(conf.Path, func() (err error) {
		e.log.Infof("Running DBT command: %v", conf.Command)
		result.ExitCode, err = e.shell(ctx, conf.Shell, conf.Command)
		return err
	})
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return result, fmt.Errorf("%w '%v': %v", ErrProjectMissing, conf.Path, err)
		}
		return result, err
	}
	if result.ExitCode != 0 {
		e.log.Warnf("DBT command exited with status %v", result.ExitCode)
	} else {
		e.log.Infoln("DBT command finished successfully")
	}
	return result, nil
}

// markScripts gives every *.sh file directly under dir mode 0755.
// Failing to change a single file is only logged.
func (e *Executor) markScripts(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("%w '%v': %v", ErrProjectMissing, dir, err)
	}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".sh") {
			continue
		}
		script := filepath.Join(dir, entry.Name())
		if err := os.Chmod(script, 0o755); err != nil {
			e.log.Debugf("Could not mark '%v' executable: %v", script, err)
		}
	}
	return nil
}

// shell dispatches command to the host shell or the embedded interpreter
func (e *Executor) shell(ctx context.Context, kind, command string) (int, error) {
	switch kind {
	case env.ShellVirtual:
		return e.runVirtual(ctx, command)
	case "", env.ShellNative:
		return e.runNative(ctx, DefaultShell, command)
	default:
		return e.runNative(ctx, kind, command)
	}
}

func (e *Executor) runNative(ctx context.Context, shell, command string) (int, error) {
	cmd := exec.CommandContext(ctx, shell, "-c", command)
	cmd.Stdout = e.Stdout
	cmd.Stderr = e.Stderr
	cmd.Env = os.Environ()

	err := cmd.Run()
	if err == nil {
		return 0, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		if code := exitErr.ExitCode(); code > 0 {
			return code, nil
		}
		return 1, nil
	}
	return 1, fmt.Errorf("%w: %v", ErrLaunch, err)
}

func (e *Executor) runVirtual(ctx context.Context, command string) (int, error) {
	prog, err := Parse(command)
	if err != nil {
		return 1, fmt.Errorf("%w: %v", ErrLaunch, err)
	}
	dir, err := os.Getwd()
	if err != nil {
		return 1, fmt.Errorf("%w: %v", ErrLaunch, err)
	}
	runner, err := interp.New(
		interp.Dir(dir),
		interp.Env(expand.ListEnviron(os.Environ()...)),
		interp.StdIO(nil, e.Stdout, e.Stderr),
	)
	if err != nil {
		return 1, fmt.Errorf("%w: failed to create interpreter: %v", ErrLaunch, err)
	}

	if err = runner.Run(ctx, prog); err != nil {
		if status, ok := interp.IsExitStatus(err); ok {
			return int(status), nil
		}
		return 1, fmt.Errorf("%w: %v", ErrLaunch, err)
	}
	return 0, nil
}

// Parse checks that command is valid POSIX shell syntax
func Parse(command string) (*syntax.File, error) {
	prog, err := syntax.NewParser().Parse(strings.NewReader(command), "command")
	if err != nil {
		return nil, fmt.Errorf("failed to parse command: %w", err)
	}
	return prog, nil
}
