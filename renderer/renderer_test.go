package renderer

import (
	"context"
	"fmt"
	"strings"
	"testing"

	tracker "github.com/gwally9/investment-tracker"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

type scriptedProvider map[string]tracker.Money

func (p scriptedProvider) FetchPrice(_ context.Context, ticker string) (tracker.Money, error) {
	price, ok := p[ticker]
	if !ok {
		return tracker.Money{}, fmt.Errorf("unknown ticker %q", ticker)
	}
	return price, nil
}

func valuation(t *testing.T) ([]tracker.ValuationResult, tracker.Summary) {
	t.Helper()
	abc, err := tracker.NewPosition("ABC", "test co", tracker.Q(10), tracker.M(5.0, "USD"), tracker.M(1.0, "USD"))
	if err != nil {
		t.Fatal(err)
	}
	zzz, err := tracker.NewPosition("ZZZ", "", tracker.Q(5), tracker.M(10.0, "USD"), tracker.M(0.0, "USD"))
	if err != nil {
		t.Fatal(err)
	}
	cache := tracker.NewCache(scriptedProvider{"ABC": tracker.M(4.0, "USD")})
	engine := tracker.NewEngine(cache)
	return engine.Value(context.Background(), []tracker.Position{abc, zzz})
}

func TestValuationMarkdown(t *testing.T) {
	results, summary := valuation(t)
	out := ValuationMarkdown(results, summary)

	// a loss is rendered in accounting format, never as a bare negative
	if !strings.Contains(out, "($11.00)") {
		t.Errorf("output misses the parenthesized loss:\n%s", out)
	}
	if strings.Contains(out, "-$11.00") {
		t.Errorf("output leaks a signed loss figure:\n%s", out)
	}
	// unknown is N/A, not zero
	if !strings.Contains(out, "N/A") {
		t.Errorf("output misses N/A for the unpriced position:\n%s", out)
	}
	if !strings.Contains(out, "1 position(s) excluded") {
		t.Errorf("output misses the excluded disclosure:\n%s", out)
	}
}

// TestValuationMarkdown_Structure parses the output as markdown and checks
// it holds a document title and a table with one row per position.
func TestValuationMarkdown_Structure(t *testing.T) {
	results, summary := valuation(t)
	out := []byte(ValuationMarkdown(results, summary))

	parser := goldmark.New(goldmark.WithExtensions(extension.Table)).Parser()
	root := parser.Parse(text.NewReader(out))

	var headings, tableRows int
	err := ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch n.(type) {
		case *ast.Heading:
			headings++
		case *east.TableRow:
			tableRows++
		}
		return ast.WalkContinue, nil
	})
	if err != nil {
		t.Fatalf("walk markdown: %v", err)
	}

	if headings != 1 {
		t.Errorf("found %d headings, want 1", headings)
	}
	if tableRows != len(results) {
		t.Errorf("found %d table rows, want %d", tableRows, len(results))
	}
}

func TestSummaryMarkdown(t *testing.T) {
	_, summary := valuation(t)
	out := SummaryMarkdown(summary)
	if !strings.Contains(out, "# Portfolio Summary") {
		t.Errorf("output misses the title:\n%s", out)
	}
	if !strings.Contains(out, "Total Cost: $51.00") {
		t.Errorf("output misses the total cost:\n%s", out)
	}
}
