package shell

import (
	"fmt"
	"os"
	"os/exec"
	"sort"
	"strconv"
	"strings"

	"simplesh/internal/expand"
)

func (s *Shell) registerBuiltins() {
	s.builtins.Register("cd", s.builtinCd)
	s.builtins.Register("exit", s.builtinExit)
	s.builtins.Register("help", s.builtinHelp)
	s.builtins.Register("pwd", s.builtinPwd)
	s.builtins.Register("export", s.builtinExport)
	s.builtins.Register("unset", s.builtinUnset)
	s.builtins.Register("env", s.builtinEnv)
	s.builtins.Register("alias", s.builtinAlias)
	s.builtins.Register("unalias", s.builtinUnalias)
	s.builtins.Register("history", s.builtinHistory)
	s.builtins.Register("which", s.builtinWhich)
	s.builtins.Register("clear", s.builtinClear)
	s.builtins.Register("type", s.builtinType)
	s.builtins.Register("source", s.builtinSource)
	s.builtins.Register(".", s.builtinSource)
}

func (s *Shell) builtinCd(args []string) int {
	target := s.session.Env.Getenv("HOME")
	if len(args) > 0 {
		target = expand.Tilde(args[:1], s.session.Env)[0]
	}
	if target == "" {
		fmt.Fprintln(s.stderr, "cd: HOME not set")
		return 1
	}

	oldPwd, _ := os.Getwd()

	if err := os.Chdir(target); err != nil {
		switch {
		case os.IsNotExist(err):
			fmt.Fprintf(s.stderr, "cd: no such file or directory: %s\n", target)
		default:
			fmt.Fprintf(s.stderr, "cd: %v\n", err)
		}
		return 1
	}

	if newPwd, err := os.Getwd(); err == nil {
		s.session.Env.Setenv("OLDPWD", oldPwd)
		s.session.Env.Setenv("PWD", newPwd)
	}
	return 0
}

func (s *Shell) builtinExit(args []string) int {
	code := 0
	if len(args) > 0 {
		c, err := strconv.Atoi(args[0])
		if err != nil {
			fmt.Fprintf(s.stderr, "exit: %s: numeric argument required\n", args[0])
			c = 2
		}
		code = c
	}

	s.session.ExitRequested = true
	s.session.ExitCode = code
	s.running = false
	return code
}

var builtinsHelp = []string{
	"cd [dir]          - Change directory (default: $HOME)",
	"exit [code]       - Exit the shell",
	"help              - Show this help message",
	"pwd               - Print working directory",
	"export VAR=value  - Set environment variable",
	"unset VAR         - Unset environment variable",
	"env               - Print all environment variables",
	"alias [name=cmd]  - Define or list aliases",
	"unalias name      - Remove an alias",
	"history           - Show command history",
	"which cmd         - Show path of a command",
	"clear             - Clear the screen",
	"type cmd          - Show how a command would be interpreted",
	"source file       - Execute commands from a file",
}

func (s *Shell) builtinHelp(args []string) int {
	fmt.Fprintln(s.stdout, "simplesh - built-in commands:")
	fmt.Fprintln(s.stdout)
	for _, line := range builtinsHelp {
		fmt.Fprintf(s.stdout, "  %s\n", line)
	}
	fmt.Fprintln(s.stdout)
	return 0
}

func (s *Shell) builtinPwd(args []string) int {
	pwd, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(s.stderr, "pwd: %v\n", err)
		return 1
	}
	fmt.Fprintln(s.stdout, pwd)
	return 0
}

func (s *Shell) builtinExport(args []string) int {
	if len(args) == 0 {
		environ := s.session.Env.Environ()
		sort.Strings(environ)
		for _, kv := range environ {
			fmt.Fprintf(s.stdout, "export %s\n", kv)
		}
		return 0
	}

	for _, arg := range args {
		name, value, ok := strings.Cut(arg, "=")
		if !ok {
			continue
		}
		s.session.Env.Setenv(name, value)
		if name == "PATH" && s.completer != nil {
			s.completer.InvalidatePathCache()
		}
	}
	return 0
}

func (s *Shell) builtinUnset(args []string) int {
	if len(args) == 0 {
		fmt.Fprintln(s.stderr, "unset: not enough arguments")
		return 1
	}
	for _, name := range args {
		s.session.Env.Unsetenv(name)
	}
	return 0
}

func (s *Shell) builtinEnv(args []string) int {
	environ := s.session.Env.Environ()
	sort.Strings(environ)
	for _, kv := range environ {
		fmt.Fprintln(s.stdout, kv)
	}
	return 0
}

func (s *Shell) builtinAlias(args []string) int {
	if len(args) == 0 {
		for _, name := range s.session.Aliases.Names() {
			value, _ := s.session.Aliases.Get(name)
			fmt.Fprintf(s.stdout, "alias %s='%s'\n", name, value)
		}
		return 0
	}

	for _, arg := range args {
		if name, value, ok := strings.Cut(arg, "="); ok {
			s.session.Aliases.Set(name, value)
			continue
		}
		if value, ok := s.session.Aliases.Get(arg); ok {
			fmt.Fprintf(s.stdout, "alias %s='%s'\n", arg, value)
		} else {
			fmt.Fprintf(s.stderr, "alias: %s: not found\n", arg)
			return 1
		}
	}
	return 0
}

func (s *Shell) builtinUnalias(args []string) int {
	for _, name := range args {
		if !s.session.Aliases.Delete(name) {
			fmt.Fprintf(s.stderr, "unalias: %s: not found\n", name)
			return 1
		}
	}
	return 0
}

func (s *Shell) builtinHistory(args []string) int {
	if len(args) > 0 && args[0] == "-c" {
		s.history.Clear()
		return 0
	}

	for i, entry := range s.history.All() {
		fmt.Fprintf(s.stdout, "%4d  %s\n", i+1, entry)
	}
	return 0
}

func (s *Shell) builtinWhich(args []string) int {
	ret := 0
	for _, name := range args {
		path, err := exec.LookPath(name)
		if err != nil {
			fmt.Fprintf(s.stderr, "which: no %s in PATH\n", name)
			ret = 1
			continue
		}
		fmt.Fprintln(s.stdout, path)
	}
	return ret
}

func (s *Shell) builtinClear(args []string) int {
	fmt.Fprint(s.stdout, "\033[2J\033[H")
	return 0
}

func (s *Shell) builtinType(args []string) int {
	ret := 0
	for _, name := range args {
		switch {
		case s.builtins.Exists(name):
			fmt.Fprintf(s.stdout, "%s is a shell builtin\n", name)
		default:
			if value, ok := s.session.Aliases.Get(name); ok {
				fmt.Fprintf(s.stdout, "%s is aliased to `%s'\n", name, value)
				continue
			}
			path, err := exec.LookPath(name)
			if err != nil {
				fmt.Fprintf(s.stderr, "type: %s: not found\n", name)
				ret = 1
				continue
			}
			fmt.Fprintf(s.stdout, "%s is %s\n", name, path)
		}
	}
	return ret
}

func (s *Shell) builtinSource(args []string) int {
	if len(args) == 0 {
		fmt.Fprintln(s.stderr, "source: filename argument required")
		return 1
	}

	if err := s.sourceFile(args[0]); err != nil {
		fmt.Fprintf(s.stderr, "source: %s: No such file or directory\n", args[0])
		return 1
	}
	return 0
}
