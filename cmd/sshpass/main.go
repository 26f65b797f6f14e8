package main

import (
	"context"
	"os"

	"sshpass/pkg/define"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v3"
)

func main() {
	os.Exit(run(context.Background(), os.Args))
}

func run(ctx context.Context, args []string) int {
	status := int(define.NoError)

	app := newApp(&status)
	if err := app.Run(ctx, terminateOptions(args)); err != nil {
		logrus.Error(err)
		return int(returnCodeOf(err))
	}

	return status
}

func newApp(status *int) *cli.Command {
	return &cli.Command{
		Name:      define.ProgramName,
		Usage:     "noninteractive ssh password provider",
		UsageText: define.ProgramName + " [-f|-d|-p|-e] [-hV] command parameters",
		Description: "Runs command on a pseudo terminal and types the password when it is asked for.\n" +
			"With no password source flag the password is taken from stdin.\n" +
			"At most one of -f, -d, -p or -e should be used.",
		Before:      earlyStage,
		HideVersion: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    define.FlagFile,
				Aliases: []string{"f"},
				Usage:   "take password to use from file",
			},
			&cli.StringFlag{
				Name:    define.FlagFD,
				Aliases: []string{"d"},
				Usage:   "use number as file descriptor for getting password",
			},
			&cli.StringFlag{
				Name:    define.FlagPassword,
				Aliases: []string{"p"},
				Usage:   "provide password as argument (security unwise)",
			},
			&cli.BoolFlag{
				Name:    define.FlagEnv,
				Aliases: []string{"e"},
				Usage:   "password is passed as env-var \"" + define.PasswordEnv + "\"",
			},
			&cli.StringFlag{
				Name:    define.FlagPrompt,
				Aliases: []string{"P"},
				Usage:   "which string should " + define.ProgramName + " search for to detect a password prompt",
			},
			&cli.BoolFlag{
				Name:    define.FlagVerbose,
				Aliases: []string{"v"},
				Usage:   "be verbose about what you're doing",
			},
			&cli.StringFlag{
				Name:    define.FlagConfig,
				Aliases: []string{"c"},
				Usage:   "read the default prompt and verbosity from a YAML file",
				Sources: cli.EnvVars("SSHPASS_CONFIG"),
			},
			&cli.BoolFlag{
				Name:    define.FlagVersion,
				Aliases: []string{"V"},
				Usage:   "print version information",
			},
		},
		Action: func(ctx context.Context, command *cli.Command) error {
			code, err := runSession(ctx, command)
			*status = code
			return err
		},
	}
}
