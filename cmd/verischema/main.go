package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/vhavlena/verischema/pkg/logging"
	"github.com/vhavlena/verischema/pkg/model"
	"github.com/vhavlena/verischema/pkg/schema"
	"github.com/vhavlena/verischema/pkg/validate"
)

type validateOptions struct {
	inputFile  string
	schemaFile string
	strict     bool
	noDefaults bool
	lint       bool
	print      bool
	logLevel   string
}

// lintSchema reports the keyword shape problems of schemaDoc.
func lintSchema(ctx context.Context, schemaDoc any, stderr io.Writer) error {
	issues, err := schema.LintValue(ctx, schemaDoc)
	if err != nil {
		return err
	}
	for _, issue := range issues {
		fmt.Fprintf(stderr, "lint: %s\n", issue)
	}
	if len(issues) > 0 {
		return errors.Errorf("schema has %d lint issue(s)", len(issues))
	}
	return nil
}

// loadSchema reads the schema file, or returns nil when no file is given so
// that the document's embedded "$schema" member is used.
func loadSchema(schemaFile string, value any) (schemaDoc any, lintTarget any, err error) {
	if schemaFile == "" {
		if carrier, ok := model.Lookup(value, schema.KeySchema); ok {
			return nil, carrier, nil
		}
		return nil, nil, nil
	}
	schemaDoc, err = model.DecodeFile(schemaFile)
	if err != nil {
		return nil, nil, errors.Wrap(err, "cannot load schema")
	}
	return schemaDoc, schemaDoc, nil
}

func runValidate(ctx context.Context, opts validateOptions, stdout, stderr io.Writer) error {
	logger := logging.New(logging.Config{Level: logging.ParseLogLevel(opts.logLevel), Output: stderr})

	value, err := model.DecodeFile(opts.inputFile)
	if err != nil {
		return errors.Wrap(err, "cannot load input")
	}
	schemaDoc, lintTarget, err := loadSchema(opts.schemaFile, value)
	if err != nil {
		return err
	}
	if opts.lint && lintTarget != nil {
		if err := lintSchema(ctx, lintTarget, stderr); err != nil {
			return err
		}
	}

	validateOpts := []validate.Option{
		validate.WithLogger(logger),
		validate.WithInteractive(!opts.noDefaults),
	}
	if opts.strict {
		validateOpts = append(validateOpts, validate.WithAdditionalProperties(false))
	}
	if err := validate.Validate(value, schemaDoc, validateOpts...); err != nil {
		return errors.Wrapf(err, "%s: invalid", opts.inputFile)
	}
	logger.Infof("%s is valid", opts.inputFile)

	if !opts.print {
		fmt.Fprintf(stdout, "%s: valid\n", opts.inputFile)
		return nil
	}
	out, err := model.Encode(value)
	if err != nil {
		return err
	}
	_, err = stdout.Write(out)
	return err
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	var opts validateOptions
	cmd := &cobra.Command{
		Use:           "verischema --input FILE [--schema FILE]",
		Short:         "Validate a JSON or YAML document against a schema",
		Long:          `Validate a JSON or YAML document against a draft-03 style schema, filling in declared defaults.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd.Context(), opts, stdout, stderr)
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	flags := cmd.Flags()
	flags.StringVarP(&opts.inputFile, "input", "i", "", "Path to the JSON or YAML document to validate")
	flags.StringVarP(&opts.schemaFile, "schema", "s", "", "Path to the schema document (defaults to the document's $schema member)")
	flags.BoolVar(&opts.strict, "strict", false, "Reject undeclared members and extra tuple elements at any depth")
	flags.BoolVar(&opts.noDefaults, "no-defaults", false, "Do not write declared defaults into the document")
	flags.BoolVar(&opts.lint, "lint", false, "Check the keyword shapes of the schema before validating")
	flags.BoolVar(&opts.print, "print", false, "Write the validated document, defaults included, to stdout as YAML")
	flags.StringVar(&opts.logLevel, "log-level", "warning", "Log level: error, warning, info or debug")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}

// run executes the command with args and returns the process exit status.
func run(args []string, stdout, stderr io.Writer) int {
	if args == nil {
		args = []string{}
	}
	cmd := newRootCmd(stdout, stderr)
	cmd.SetArgs(args)
	if err := cmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}
