package shell

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/afero"

	"simplesh/internal/alias"
	"simplesh/internal/ast"
	"simplesh/internal/builtin"
	"simplesh/internal/complete"
	"simplesh/internal/config"
	"simplesh/internal/executor"
	"simplesh/internal/expand"
	"simplesh/internal/history"
	"simplesh/internal/parser"
	"simplesh/internal/prompt"
	"simplesh/internal/readline"
	"simplesh/internal/session"
)

// Exit code reported for lines the parser rejects.
const exitSyntaxError = 2

// Shell sequences the processing stages for each input line and owns the
// session state they share.
type Shell struct {
	fs        afero.Fs
	config    *config.Config
	session   *session.Session
	builtins  *builtin.Manager
	executor  *executor.Executor
	history   *history.Manager
	prompt    *prompt.Manager
	readline  *readline.Manager
	completer *complete.Completer

	// Builtin handlers write through stdout so the orchestrator can swap in
	// a redirection target for the duration of a call.
	stdout io.Writer
	stderr io.Writer

	running bool
}

func New(cfg *config.Config, env session.Environ, fs afero.Fs) *Shell {
	s := &Shell{
		fs:      fs,
		config:  cfg,
		session: session.New(env),
		stdout:  os.Stdout,
		stderr:  os.Stderr,
		running: true,
	}

	s.builtins = builtin.New()
	s.registerBuiltins()

	histFile := expand.Tilde([]string{cfg.HistoryFile}, env)[0]
	s.history = history.New(fs, histFile, cfg.HistorySize)

	if cfg.EnableCompletion {
		s.completer = complete.New(fs, env, s.builtins.Names())
	}
	s.readline = readline.New(s.history, s.completer)
	s.prompt = prompt.New(env, cfg.Prompt, cfg.EnableColors)

	s.executor = executor.New(fs)
	if s.completer != nil {
		s.executor.Suggest = s.completer.Suggest
	}

	return s
}

// SetStreams rebinds the shell's output streams, including those inherited
// by spawned processes. Used by tests and sourced sub-invocations.
func (s *Shell) SetStreams(stdin io.Reader, stdout, stderr io.Writer) {
	s.stdout = stdout
	s.stderr = stderr
	s.executor.Stdin = stdin
	s.executor.Stdout = stdout
	s.executor.Stderr = stderr
}

func (s *Shell) Session() *session.Session {
	return s.session
}

// ExitCode is the status the process should exit with: the code the exit
// builtin asked for, or the last pipeline's status.
func (s *Shell) ExitCode() int {
	if s.session.ExitRequested {
		return s.session.ExitCode
	}
	return s.session.LastExit
}

// LoadStartup seeds aliases from the config file and sources the rc script
// (and, for login shells, the profile) from the home directory.
func (s *Shell) LoadStartup(norc, login bool) {
	for name, value := range s.config.Aliases {
		s.session.Aliases.Set(name, value)
	}

	if norc {
		return
	}
	home := s.session.Env.Getenv("HOME")
	if home == "" {
		return
	}
	if login {
		s.sourceIfPresent(home + "/.profile")
	}
	s.sourceIfPresent(home + "/.simpleshrc")
}

func (s *Shell) sourceIfPresent(path string) {
	if ok, _ := afero.Exists(s.fs, path); ok {
		s.sourceFile(path)
	}
}

// RunLine pushes one input line through the full pipeline: variable
// expansion, tokenization, tilde and glob expansion, chain splitting, then
// per chain segment the short-circuit check, alias expansion, pipe
// splitting, redirection parsing, and dispatch.
func (s *Shell) RunLine(line string) {
	line = expand.Variables(line, s.session.Env)

	tokens, err := parser.Tokenize(line)
	if err != nil {
		s.syntaxError(err)
		return
	}
	if len(tokens) == 0 {
		return
	}

	tokens = expand.Tilde(tokens, s.session.Env)
	tokens = expand.Globs(s.fs, tokens)

	segments, err := parser.SplitChain(tokens)
	if err != nil {
		s.syntaxError(err)
		return
	}

	for _, seg := range segments {
		switch seg.Op {
		case ast.OpAnd:
			if s.session.LastExit != 0 {
				continue
			}
		case ast.OpOr:
			if s.session.LastExit == 0 {
				continue
			}
		}

		// A syntax error in any segment abandons the rest of the line.
		if !s.runSegment(alias.Expand(seg.Tokens, s.session.Aliases)) {
			return
		}

		if s.session.ExitRequested {
			return
		}
	}
}

// runSegment executes one chain segment: a pipeline, or a single builtin.
// It reports false when the segment fails to parse.
func (s *Shell) runSegment(tokens []string) bool {
	pipeSegs, err := parser.SplitPipeline(tokens)
	if err != nil {
		s.syntaxError(err)
		return false
	}

	commands := make([]*ast.Command, 0, len(pipeSegs))
	for _, seg := range pipeSegs {
		cmd, err := parser.ParseRedirections(seg)
		if err != nil {
			s.syntaxError(err)
			return false
		}
		commands = append(commands, cmd)
	}

	// Builtins are dispatched only as a single, non-piped command.
	if len(commands) == 1 {
		if fn := s.builtins.Get(commands[0].Argv[0]); fn != nil {
			s.session.LastExit = s.runBuiltin(fn, commands[0])
			return true
		}
	}

	s.session.LastExit = s.executor.Run(commands)
	return true
}

// runBuiltin invokes a builtin, redirecting its standard output to the
// requested file for the duration of the call.
func (s *Shell) runBuiltin(fn builtin.Func, cmd *ast.Command) int {
	if cmd.StdoutFile == "" {
		return fn(cmd.Argv[1:])
	}

	flags := os.O_WRONLY | os.O_CREATE
	if cmd.AppendMode {
		flags |= os.O_APPEND
	} else {
		flags |= os.O_TRUNC
	}
	f, err := s.fs.OpenFile(cmd.StdoutFile, flags, 0644)
	if err != nil {
		fmt.Fprintf(s.stderr, "simplesh: %s: %v\n", cmd.StdoutFile, err)
		return executor.ExitOpenFailed
	}
	defer f.Close()

	old := s.stdout
	s.stdout = f
	defer func() { s.stdout = old }()

	return fn(cmd.Argv[1:])
}

func (s *Shell) syntaxError(err error) {
	fmt.Fprintf(s.stderr, "simplesh: %v\n", err)
	s.session.LastExit = exitSyntaxError
}

// Interactive runs the read-eval loop until end of input or exit.
// An interrupt at the prompt ends the session like end-of-input does.
func (s *Shell) Interactive() error {
	for s.running {
		line, err := s.readline.ReadLine(s.prompt.Render())
		if err != nil {
			fmt.Fprintln(s.stdout, "exit")
			break
		}

		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		s.history.Add(line)
		s.RunLine(line)

		if s.session.ExitRequested {
			break
		}
	}

	s.history.Save()
	return nil
}

// RunReader executes lines from r to completion; used for piped stdin.
func (s *Shell) RunReader(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		s.RunLine(line)

		if s.session.ExitRequested {
			return nil
		}
	}
	return scanner.Err()
}

// RunScript executes the named file line by line.
func (s *Shell) RunScript(path string) error {
	file, err := s.fs.Open(path)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	defer file.Close()

	return s.RunReader(file)
}

func (s *Shell) sourceFile(path string) error {
	file, err := s.fs.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return s.RunReader(file)
}

func (s *Shell) IsTerminal() bool {
	return s.readline.IsTerminal()
}
