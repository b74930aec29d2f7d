package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"sigs.k8s.io/release-utils/version"

	"github.com/pior/dict"
)

const (
	// ExitCodeSuccess is the exit code of a successful lookup.
	ExitCodeSuccess int = iota

	// ExitCodeFailure is the exit code for connection and protocol failures.
	ExitCodeFailure

	// ExitCodeInvalidName is the exit code when the server rejects a
	// database or strategy name.
	ExitCodeInvalidName

	// ExitCodeUsage is the exit code for bad arguments.
	ExitCodeUsage
)

// ErrDict is a parent error for all command errors.
var ErrDict = errors.New("dict")

// ErrUsage is a command line usage error.
var ErrUsage = fmt.Errorf("%w: usage", ErrDict)

const (
	defaultServer  = "dict.org"
	defaultTimeout = 30 * time.Second
)

func newDictApp() *cli.App {
	return &cli.App{
		Name:  filepath.Base(os.Args[0]),
		Usage: "Query DICT (RFC 2229) dictionary servers.",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "server",
				Usage:   "DICT server `HOST`",
				Aliases: []string{"s"},
				Value:   defaultServer,
				EnvVars: []string{"DICT_SERVER"},
			},
			&cli.IntFlag{
				Name:    "port",
				Usage:   "DICT server `PORT`",
				Aliases: []string{"p"},
				Value:   dict.DefaultPort,
				EnvVars: []string{"DICT_PORT"},
			},
			&cli.DurationFlag{
				Name:    "timeout",
				Usage:   "give up on a reply after `DURATION`",
				Aliases: []string{"t"},
				Value:   defaultTimeout,
				EnvVars: []string{"DICT_TIMEOUT"},
			},
			&cli.BoolFlag{
				Name:               "verbose",
				Usage:              "log every exchange with the server",
				Aliases:            []string{"v"},
				EnvVars:            []string{"DICT_VERBOSE"},
				DisableDefaultText: true,
			},
			&cli.BoolFlag{
				Name:               "version",
				Usage:              "print version information and exit",
				Aliases:            []string{"V"},
				DisableDefaultText: true,
			},
		},
		HideHelpCommand: true,
		Action: func(c *cli.Context) error {
			if c.Bool("version") {
				return printVersion(c)
			}
			return cli.ShowAppHelp(c)
		},
		Commands: []*cli.Command{
			databasesCommand,
			strategiesCommand,
			matchCommand,
			defineCommand,
		},
	}
}

func printVersion(c *cli.Context) error {
	info := version.GetVersionInfo()
	_, err := fmt.Fprintln(c.App.Writer, info.String())
	return err
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(zap.ErrorLevel)
	return config.Build()
}

// withClient opens a session from the global flags, runs fn and closes
// the session.
func withClient(c *cli.Context, fn func(ctx context.Context, q dict.Querier) error) error {
	logger, err := newLogger(c.Bool("verbose"))
	if err != nil {
		return fmt.Errorf("%w: creating logger: %w", ErrDict, err)
	}
	defer func() { _ = logger.Sync() }()

	config := dict.DefaultConfig()
	config.ReadTimeout = c.Duration("timeout")
	config.Logger = logger

	addr := net.JoinHostPort(c.String("server"), strconv.Itoa(c.Int("port")))

	client, err := dict.Dial(c.Context, addr, config)
	if err != nil {
		return err
	}
	defer client.Close()

	logger.Debug("connected", zap.String("addr", addr), zap.String("banner", client.Banner()))

	return fn(c.Context, client)
}

// wordArg returns the single WORD argument of a lookup command.
func wordArg(c *cli.Context) (string, error) {
	if c.NArg() != 1 {
		return "", fmt.Errorf("%w: %s expects exactly one WORD argument", ErrUsage, c.Command.Name)
	}
	return c.Args().First(), nil
}
