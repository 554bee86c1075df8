// Package agent exposes accounts to language models: the account tools, and an
// interactive assistant built on them.
package agent

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"google.golang.org/genai"
)

// Agent is a trading desk session: the user talks to a facilitator which
// delegates to the experts.
type Agent struct {
	w           io.Writer
	r           *bufio.Reader
	Facilitator *Expert
	Experts     []*Expert
	// Print writes a response, defaults to a plain line.
	Print func(w io.Writer, markdown string)
	// Summary, if set, is printed when the session ends, typically the
	// report of the traded account.
	Summary func() string
}

// New creates a new Agent reading user input from r and writing to w.
func New(w io.Writer, r io.Reader, experts ...*Expert) *Agent {
	return &Agent{
		w:           w,
		r:           bufio.NewReader(r),
		Experts:     experts,
		Facilitator: newFacilitator(experts...),
		Print:       func(w io.Writer, md string) { fmt.Fprintln(w, md) },
	}
}

// Start creates the chats of every expert.
func (a *Agent) Start(ctx context.Context, client *genai.Client) error {
	for _, e := range a.Experts {
		if err := e.Start(ctx, client); err != nil {
			return err
		}
	}
	return a.Facilitator.Start(ctx, client)
}

const prompt = "trade> "

// Run starts the interactive session, submitting prompts first as if typed
// by the user.
func (a *Agent) Run(ctx context.Context, client *genai.Client, prompts ...string) error {
	if a.Facilitator.chat == nil {
		if err := a.Start(ctx, client); err != nil {
			return err
		}
	}
	return a.converse(ctx, func(ctx context.Context, input string) (string, error) {
		content, err := a.Facilitator.Ask(ctx, &genai.Part{Text: input})
		if err != nil {
			return "", err
		}
		return content.Parts[0].Text, nil
	}, prompts...)
}

// converse runs the read-answer loop until "bye", "quit" or the end of input.
func (a *Agent) converse(ctx context.Context, answer func(context.Context, string) (string, error), prompts ...string) error {
	names := make([]string, 0, len(a.Experts))
	for _, e := range a.Experts {
		names = append(names, e.Name)
	}
	fmt.Fprintf(a.w, "Trading desk open with %s. Type 'bye' to close it.\n", strings.Join(names, ", "))

	for {
		fmt.Fprint(a.w, prompt)
		var input string
		if len(prompts) > 0 {
			input, prompts = strings.TrimSpace(prompts[0]), prompts[1:]
			if input == "" {
				continue
			}
			fmt.Fprintln(a.w, input)
		} else {
			line, err := a.r.ReadString('\n')
			if err != nil && err != io.EOF {
				return err
			}
			if err == io.EOF && line == "" {
				fmt.Fprintln(a.w)
				a.close()
				return nil
			}
			input = strings.TrimSpace(line)
			if input == "" {
				continue
			}
		}

		switch input {
		case "bye", "quit":
			a.close()
			return nil
		}

		response, err := answer(ctx, input)
		if err != nil {
			return err
		}
		a.Print(a.w, response)
	}
}

// close prints the session summary.
func (a *Agent) close() {
	if a.Summary != nil {
		a.Print(a.w, a.Summary())
	}
	fmt.Fprintln(a.w, "Trading desk closed.")
}
