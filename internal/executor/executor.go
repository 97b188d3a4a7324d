// Package executor spawns the external processes of a pipeline and manages
// the file descriptors connecting them.
package executor

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/spf13/afero"

	"simplesh/internal/ast"
)

// Exit codes for failures that happen before a child process can report its
// own: unresolvable program names and redirection targets that cannot be
// opened.
const (
	ExitNotFound   = 127
	ExitOpenFailed = 1
)

// Executor runs command pipelines to completion. The zero streams default to
// the process's own; tests swap in buffers. Redirection targets are opened
// through Fs.
type Executor struct {
	Fs     afero.Fs
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// Suggest, when set, maps an unresolvable command name to a close match
	// that is reported alongside "command not found".
	Suggest func(name string) string
}

func New(fs afero.Fs) *Executor {
	return &Executor{
		Fs:     fs,
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

// Run executes the pipeline and returns the final command's exit code.
//
// Commands are spawned left to right, each one's stdout feeding the next
// one's stdin through a pipe. The first command may take stdin from a file,
// the last may send stdout to one. The parent closes its copy of each pipe
// end as soon as the child holds it, so end-of-file propagates down the
// chain. If any program name fails to resolve, every process already spawned
// is killed and waited on; every opened handle is closed on every path.
func (e *Executor) Run(commands []*ast.Command) int {
	last := len(commands) - 1

	var (
		procs    []*exec.Cmd
		closers  []io.Closer // redirection files
		prevRead *os.File    // parent's copy of the pending pipe read end
	)
	defer func() {
		for _, c := range closers {
			c.Close()
		}
	}()

	abort := func() {
		if prevRead != nil {
			prevRead.Close()
		}
		for _, p := range procs {
			p.Process.Kill()
			p.Wait()
		}
	}

	for i, c := range commands {
		path, err := exec.LookPath(c.Argv[0])
		if err != nil {
			fmt.Fprintf(e.Stderr, "simplesh: command not found: %s\n", c.Argv[0])
			if e.Suggest != nil {
				if near := e.Suggest(c.Argv[0]); near != "" {
					fmt.Fprintf(e.Stderr, "simplesh: did you mean '%s'?\n", near)
				}
			}
			abort()
			return ExitNotFound
		}

		cmd := exec.Command(path, c.Argv[1:]...)
		cmd.Stderr = e.Stderr

		switch {
		case i == 0 && c.StdinFile != "":
			f, err := e.Fs.Open(c.StdinFile)
			if err != nil {
				fmt.Fprintf(e.Stderr, "simplesh: %s: No such file or directory\n", c.StdinFile)
				abort()
				return ExitOpenFailed
			}
			closers = append(closers, f)
			cmd.Stdin = f
		case i > 0:
			cmd.Stdin = prevRead
		default:
			cmd.Stdin = e.Stdin
		}

		var nextRead, pipeWrite *os.File
		switch {
		case i == last && c.StdoutFile != "":
			f, err := e.openStdout(c)
			if err != nil {
				fmt.Fprintf(e.Stderr, "simplesh: %s: %v\n", c.StdoutFile, err)
				abort()
				return ExitOpenFailed
			}
			closers = append(closers, f)
			cmd.Stdout = f
		case i < last:
			r, w, err := os.Pipe()
			if err != nil {
				fmt.Fprintf(e.Stderr, "simplesh: %v\n", err)
				abort()
				return ExitOpenFailed
			}
			nextRead, pipeWrite = r, w
			cmd.Stdout = w
		default:
			cmd.Stdout = e.Stdout
		}

		err = cmd.Start()

		// The child now holds duplicates of the pipe ends it needs; release
		// the parent's copies or the chain never sees EOF.
		if pipeWrite != nil {
			pipeWrite.Close()
		}
		if prevRead != nil {
			prevRead.Close()
		}
		prevRead = nextRead

		if err != nil {
			fmt.Fprintf(e.Stderr, "simplesh: %s: %v\n", c.Argv[0], err)
			abort()
			return ExitOpenFailed
		}
		procs = append(procs, cmd)
	}

	exit := 0
	for _, p := range procs {
		exit = exitStatus(p.Wait())
	}
	return exit
}

func (e *Executor) openStdout(c *ast.Command) (afero.File, error) {
	flags := os.O_WRONLY | os.O_CREATE
	if c.AppendMode {
		flags |= os.O_APPEND
	} else {
		flags |= os.O_TRUNC
	}
	return e.Fs.OpenFile(c.StdoutFile, flags, 0644)
}

func exitStatus(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return 1
}
