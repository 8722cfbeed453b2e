// Package agent implements the AI assistant behind `ftax assist`: a
// chat session grounded in a computed tax report, able to explain the
// figures without ever recomputing them.
package agent

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"google.golang.org/genai"
)

const model = "gemini-2.5-pro"

// Advisor is a chat with the tax expert, seeded with the rendered
// report so every answer is grounded in the actual figures.
type Advisor struct {
	chat *genai.Chat
}

// NewAdvisor creates the advisor chat and seeds it with the markdown
// tax report.
func NewAdvisor(ctx context.Context, client *genai.Client, report string) (*Advisor, error) {
	config := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
		You are a tax reporting assistant for a brokerage account.
		The user's first message is their computed tax analysis report:
		capital gains buckets, wash sales, restricted positions, and
		dividend/interest totals. Answer questions about this report only,
		grounding every figure in it. Explain the wash sale rule, holding
		period classification and cost basis adjustments when asked.
		Never invent figures that are not in the report, and remind the
		user that this is not tax advice when they ask for filing decisions.
	`}}},
	}
	chat, err := client.Chats.Create(ctx, model, config, nil)
	if err != nil {
		return nil, err
	}
	a := &Advisor{chat: chat}
	// Seed the conversation with the report itself.
	if _, err := a.Ask(ctx, "Here is my tax analysis report:\n\n"+report); err != nil {
		return nil, err
	}
	return a, nil
}

// Ask sends one question and returns the advisor's text answer.
func (a *Advisor) Ask(ctx context.Context, question string) (string, error) {
	resp, err := a.chat.Send(ctx, &genai.Part{Text: question})
	if err != nil {
		return "", err
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no response from the advisor")
	}
	return resp.Candidates[0].Content.Parts[0].Text, nil
}

const prompt = "assist> "

// Run starts the interactive REPL session over the report. Initial
// prompts, if any, are consumed before reading from r.
func Run(ctx context.Context, client *genai.Client, w io.Writer, r io.Reader, report string, prompts ...string) error {
	advisor, err := NewAdvisor(ctx, client, report)
	if err != nil {
		return err
	}

	fmt.Fprintln(w, "Welcome to ftax assist. Type 'bye' to exit.")

	reader := bufio.NewReader(r)
	for {
		fmt.Fprint(w, prompt)
		var input string

		// Flush prompts from the list and then ask for the user.
		if len(prompts) > 0 {
			input, prompts = prompts[0], prompts[1:]
			input = strings.TrimSpace(input)
			if input == "" {
				continue
			}
			fmt.Fprintln(w, input)
		} else {
			var err error
			input, err = reader.ReadString('\n')
			if err != nil {
				if err == io.EOF {
					return nil // Clean exit on Ctrl+D
				}
				return err
			}
		}

		if strings.TrimSpace(input) == "bye" {
			return nil
		}

		answer, err := advisor.Ask(ctx, input)
		if err != nil {
			return err
		}
		fmt.Fprintln(w, answer)
	}
}
