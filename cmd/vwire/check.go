package main

import (
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v2"
	"github.com/verifywire/verifywire-go/pkg/apperrors"
	"github.com/verifywire/verifywire-go/pkg/checker"
)

func checkCommand() *cli.Command {
	return &cli.Command{
		Name:      "check",
		Usage:     "Check pasted payment instructions against a bank's attested rails",
		ArgsUsage: "[file]",
		Description: `Reads instructions from --text, from the given file, or from stdin ("-").
Identifiers are extracted and hashed locally; only the bank's public record is
fetched from the registry.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "code",
				Aliases: []string{"c"},
				Usage:   "Bank short code, e.g. boa (defaults to your claim draft)",
			},
			&cli.StringFlag{
				Name:  "text",
				Usage: "Payment instructions to check",
			},
			&cli.BoolFlag{
				Name:  "example",
				Usage: "Check a sample set of instructions",
			},
		},
		Action: withRuntime(runCheck),
	}
}

func readInstructions(c *cli.Context) (string, error) {
	switch {
	case c.Bool("example"):
		return checker.ExampleInstructions, nil
	case c.IsSet("text"):
		return c.String("text"), nil
	case c.Args().Len() == 0:
		return "", nil
	}

	var r io.Reader
	path := c.Args().First()
	if path == "-" {
		r = c.App.Reader
	} else {
		f, err := os.Open(path)
		if err != nil {
			return "", apperrors.Input(fmt.Sprintf("Could not open %s.", path), err)
		}
		defer func() { _ = f.Close() }()
		r = f
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", apperrors.Input("Could not read the instructions.", err)
	}
	return string(data), nil
}

func runCheck(c *cli.Context, rt *runtime) error {
	text, err := readInstructions(c)
	if err != nil {
		return err
	}

	code := c.String("code")
	if code == "" && c.Bool("example") {
		code = "boa"
	}
	if code == "" {
		if draft, err := rt.store.LoadClaimDraft(); err == nil && draft != nil {
			code = draft.ShortCode
		}
	}

	reader, err := rt.registryReader(c.Context)
	if err != nil {
		return err
	}
	result, err := checker.NewChecker(reader, rt.logger).Check(c.Context, code, text)
	if err != nil {
		return err
	}
	return renderCheck(c.App.Writer, result)
}
