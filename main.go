// simplesh is a small command-line interpreter: it expands, tokenizes and
// splits each input line, then runs the resulting pipelines as child
// processes connected by pipes and file redirections.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"simplesh/internal/config"
	"simplesh/internal/session"
	"simplesh/internal/shell"
)

var version = "0.3.0"

func main() {
	var (
		flagCommand string
		flagConfig  string
		flagNorc    bool
		flagLogin   bool
	)

	root := &cobra.Command{
		Use:           "simplesh [script]",
		Short:         "A small command-line interpreter",
		Version:       version,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(flagCommand, flagConfig, flagNorc, flagLogin, args)
		},
	}

	root.Flags().StringVarP(&flagCommand, "command", "c", "", "execute the given command and exit")
	root.Flags().StringVar(&flagConfig, "config", "", "path to the config file (default ~/"+config.FileName+")")
	root.Flags().BoolVar(&flagNorc, "norc", false, "skip startup files")
	root.Flags().BoolVarP(&flagLogin, "login", "l", false, "act as a login shell")

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "simplesh: %v\n", err)
		os.Exit(1)
	}
}

func run(command, configPath string, norc, login bool, args []string) error {
	fs := afero.NewOsFs()
	env := session.OSEnv{}

	if configPath == "" {
		if home := env.Getenv("HOME"); home != "" {
			configPath = filepath.Join(home, config.FileName)
		}
	}

	cfg, err := config.Load(fs, configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "simplesh: %v\n", err)
		cfg = config.New()
	}

	sh := shell.New(cfg, env, fs)
	sh.LoadStartup(norc, login)

	switch {
	case command != "":
		sh.RunLine(command)
	case len(args) > 0:
		if err := sh.RunScript(args[0]); err != nil {
			return err
		}
	case sh.IsTerminal():
		if err := sh.Interactive(); err != nil {
			return err
		}
	default:
		if err := sh.RunReader(os.Stdin); err != nil {
			return err
		}
	}

	os.Exit(sh.ExitCode())
	return nil
}
