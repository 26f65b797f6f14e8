package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"sshpass/pkg/config"
	"sshpass/pkg/define"
	"sshpass/pkg/password"
	"sshpass/pkg/session"
	"sshpass/pkg/system"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v3"
)

func earlyStage(ctx context.Context, command *cli.Command) (context.Context, error) {
	setLogrus(command.Bool(define.FlagVerbose))
	return ctx, nil
}

func setLogrus(verbose bool) {
	logrus.SetLevel(logrus.InfoLevel)
	if verbose {
		logrus.SetLevel(logrus.DebugLevel)
	}

	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05.000",
	})
	logrus.SetOutput(os.Stderr)
}

func showVersion(w io.Writer) {
	var version strings.Builder
	if define.Version != "" {
		version.WriteString(define.Version)
	} else {
		version.WriteString("unknown")
	}

	version.WriteString("-")

	if define.CommitID != "" {
		version.WriteString(define.CommitID)
	} else {
		version.WriteString("unknown")
	}

	_, _ = fmt.Fprintf(w, "%s %s\n\nUsing %q as the default password prompt indicator.\n",
		define.ProgramName, version.String(), define.DefaultPasswordPrompt)
}

// returnCodeOf maps an error to the exit status. Errors that carry no code
// come from flag parsing.
func returnCodeOf(err error) define.ReturnCode {
	var coded *define.CodedError
	if errors.As(err, &coded) {
		return coded.Code
	}
	return define.InvalidArguments
}

func makeFlags(command *cli.Command) config.Flags {
	return config.Flags{
		File:        command.String(define.FlagFile),
		FileSet:     command.IsSet(define.FlagFile),
		FD:          command.String(define.FlagFD),
		FDSet:       command.IsSet(define.FlagFD),
		Password:    command.String(define.FlagPassword),
		PasswordSet: command.IsSet(define.FlagPassword),
		Env:         command.Bool(define.FlagEnv),
		Prompt:      command.String(define.FlagPrompt),
		PromptSet:   command.IsSet(define.FlagPrompt),
		Verbose:     command.Bool(define.FlagVerbose),
		ConfigFile:  command.String(define.FlagConfig),
		Command:     command.Args().Slice(),
	}
}

func runSession(ctx context.Context, command *cli.Command) (int, error) {
	if command.Bool(define.FlagVersion) {
		showVersion(command.Root().Writer)
		return int(define.NoError), nil
	}

	if command.NArg() == 0 {
		return int(define.NoError), cli.ShowAppHelp(command)
	}

	flags := makeFlags(command)
	opts, err := config.Build(flags, os.LookupEnv)
	if err != nil {
		return int(returnCodeOf(err)), err
	}
	if opts.Verbose {
		setLogrus(true)
	}

	// The source holds its own copy by now.
	if flags.PasswordSet && !system.ScrubArg(flags.Password) {
		logrus.Debug("password argument could not be hidden from the process list")
	}
	defer opts.Source.Wipe()

	log := logrus.WithField("session", uuid.NewString())

	sup, err := session.New(session.Options{
		Command:     opts.Command,
		Prompt:      opts.Prompt,
		Transmitter: password.NewTransmitter(opts.Source, password.WithLogger(log)),
		Log:         log,
	})
	if err != nil {
		return int(define.RuntimeError), &define.CodedError{Code: define.RuntimeError, Err: err}
	}

	status, err := sup.Run(ctx)
	if err != nil {
		return status, &define.CodedError{Code: define.RuntimeError, Err: err}
	}

	return status, nil
}
