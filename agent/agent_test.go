package agent

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestAgent_Converse(t *testing.T) {
	var out strings.Builder
	a := New(&out, strings.NewReader("what do I hold?\n\nbye\nnever read\n"), &Expert{Name: "Trader"}, &Expert{Name: "Analyst"})
	a.Summary = func() string { return "# Account Status for warren" }

	var asked []string
	err := a.converse(context.Background(), func(_ context.Context, input string) (string, error) {
		asked = append(asked, input)
		return "answer to " + input, nil
	}, "buy 5 AAPL", "  ")
	if err != nil {
		t.Fatalf("converse() unexpected error: %v", err)
	}

	if got, want := strings.Join(asked, "|"), "buy 5 AAPL|what do I hold?"; got != want {
		t.Errorf("asked = %q, want %q", got, want)
	}
	for _, want := range []string{
		"Trading desk open with Trader, Analyst.",
		"trade> buy 5 AAPL\nanswer to buy 5 AAPL\n",
		"answer to what do I hold?\n",
		"# Account Status for warren\nTrading desk closed.\n",
	} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output does not contain %q, got:\n%s", want, out.String())
		}
	}
}

func TestAgent_ConverseEndOfInput(t *testing.T) {
	var out strings.Builder
	a := New(&out, strings.NewReader("hello"), &Expert{Name: "Trader"})

	var asked []string
	err := a.converse(context.Background(), func(_ context.Context, input string) (string, error) {
		asked = append(asked, input)
		return "hi", nil
	})
	if err != nil {
		t.Fatalf("converse() unexpected error: %v", err)
	}
	// the last line is answered even without a newline
	if len(asked) != 1 || asked[0] != "hello" {
		t.Errorf("asked = %q, want [hello]", asked)
	}
	if !strings.HasSuffix(out.String(), "Trading desk closed.\n") {
		t.Errorf("output should end with the closing line, got:\n%s", out.String())
	}
}

func TestAgent_ConverseError(t *testing.T) {
	var out strings.Builder
	a := New(&out, strings.NewReader(""), &Expert{Name: "Trader"})
	boom := errors.New("model unavailable")
	err := a.converse(context.Background(), func(context.Context, string) (string, error) { return "", boom }, "hello")
	if !errors.Is(err, boom) {
		t.Errorf("converse() error = %v, want %v", err, boom)
	}
}
