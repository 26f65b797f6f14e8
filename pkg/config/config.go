// Package config turns command-line values into the options of a session.
package config

import (
	"os"
	"strconv"

	"sshpass/pkg/define"
	"sshpass/pkg/password"
	"sshpass/pkg/system"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// File holds defaults read from an optional YAML file. Command-line values
// take precedence. Passwords are deliberately not accepted here.
type File struct {
	Prompt  string `yaml:"prompt,omitempty"`
	Verbose bool   `yaml:"verbose,omitempty"`
}

// Flags are the raw values given on the command line. The *Set fields tell
// an explicit empty value from an absent flag.
type Flags struct {
	File        string
	FileSet     bool
	FD          string
	FDSet       bool
	Password    string
	PasswordSet bool
	Env         bool

	Prompt    string
	PromptSet bool
	Verbose   bool

	ConfigFile string

	Command []string
}

type Options struct {
	Source  password.Source
	Prompt  string
	Verbose bool
	Command []string
}

type LookupEnvFunc func(key string) (string, bool)

func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &define.CodedError{Code: define.ParseError, Err: err}
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, define.NewCodedError(define.ParseError, "failed to unmarshal config yaml %s: %w", path, err)
	}

	return &f, nil
}

// Build validates flags and resolves the password source. Errors are
// *define.CodedError.
func Build(f Flags, lookupEnv LookupEnvFunc) (*Options, error) {
	if lookupEnv == nil {
		lookupEnv = os.LookupEnv
	}

	opts := &Options{
		Prompt:  f.Prompt,
		Verbose: f.Verbose,
		Command: f.Command,
	}

	if f.ConfigFile != "" {
		file, err := LoadFile(f.ConfigFile)
		if err != nil {
			return nil, err
		}
		if !f.PromptSet {
			opts.Prompt = file.Prompt
		}
		opts.Verbose = opts.Verbose || file.Verbose
	}

	if f.PromptSet && f.Prompt == "" {
		return nil, define.NewCodedError(define.InvalidArguments, "password prompt must not be empty")
	}
	if opts.Prompt == "" {
		opts.Prompt = define.DefaultPasswordPrompt
	}

	src, err := resolveSource(f, lookupEnv)
	if err != nil {
		return nil, err
	}
	opts.Source = src

	return opts, nil
}

func resolveSource(f Flags, lookupEnv LookupEnvFunc) (password.Source, error) {
	given := 0
	for _, set := range []bool{f.FileSet, f.FDSet, f.PasswordSet, f.Env} {
		if set {
			given++
		}
	}
	if given > 1 {
		return password.Source{}, define.NewCodedError(define.ConflictingArguments, "conflicting password source")
	}

	switch {
	case f.FileSet:
		if err := system.CheckReadableFile(f.File); err != nil {
			logrus.Warnf("password file may not be readable: %v", err)
		}
		return password.FromFile(f.File), nil
	case f.FDSet:
		fd, err := strconv.Atoi(f.FD)
		if err != nil || fd < 0 {
			return password.Source{}, define.NewCodedError(define.InvalidArguments, "invalid password file descriptor %q", f.FD)
		}
		return password.FromFD(fd), nil
	case f.PasswordSet:
		return password.FromLiteral(f.Password), nil
	case f.Env:
		secret, ok := lookupEnv(define.PasswordEnv)
		if !ok {
			return password.Source{}, define.NewCodedError(define.InvalidArguments,
				"%s: -e option given but %s environment variable not set", define.PasswordEnv, define.PasswordEnv)
		}
		return password.FromLiteral(secret), nil
	default:
		return password.FromStdin(), nil
	}
}
