package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fbiville/markdown-table-formatter/pkg/markdown"
	"github.com/samber/lo"
	"github.com/verifywire/verifywire-go/pkg/checker"
	"github.com/verifywire/verifywire-go/pkg/verdict"
)

var toneMarkers = map[verdict.Tone]string{
	verdict.ToneInfo:  "✔",
	verdict.ToneWarn:  "!",
	verdict.ToneError: "✘",
	verdict.ToneHint:  "›",
}

func yesNo(b bool) string {
	return lo.Ternary(b, "yes", "no")
}

func orDash(s string) string {
	if s == "" {
		return "—"
	}
	return s
}

// renderTable formats rows as a markdown table under the given headers.
func renderTable(headers []string, rows [][]string) (string, error) {
	table, err := markdown.NewTableFormatterBuilder().
		WithPrettyPrint().
		Build(headers...).
		Format(rows)
	if err != nil {
		return "", fmt.Errorf("failed to render table: %w", err)
	}
	return table, nil
}

func renderCheck(w io.Writer, result *checker.Result) error {
	table, err := renderTable([]string{"Identifier", "Extracted"}, [][]string{
		{"Routing", orDash(result.Extracted.Routing)},
		{"Account", orDash(result.Extracted.Account)},
		{"IBAN", orDash(result.Extracted.IBAN)},
		{"BIC", orDash(result.Extracted.BIC)},
	})
	if err != nil {
		return err
	}

	v := result.Verdict
	_, _ = fmt.Fprintln(w, table)
	_, _ = fmt.Fprintf(w, "%s  %s\n\n", strings.ToUpper(string(v.Kind)), v.Headline)
	for _, e := range v.Explanations {
		_, _ = fmt.Fprintf(w, "  %s %s\n", toneMarkers[e.Tone], e.Text)
	}
	_, _ = fmt.Fprintf(w, "\nCheck %s\n", result.CheckID)
	return nil
}

func renderList(w io.Writer, title string, items []string) {
	_, _ = fmt.Fprintf(w, "%s: %s\n", title, strings.Join(items, ", "))
}
