package agent

import (
	"fmt"

	"github.com/etnz/accounts"
	"github.com/etnz/accounts/docs"
	"google.golang.org/genai"
)

const model = "gemini-2.5-pro"

// creates the facilitator
func newFacilitator(experts ...*Expert) *Expert {
	return &Expert{
		Name:      "Facilitator",
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(experts)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			As a facilitator you are in charge of the conversation and solving the user's request.

			Learn about the expert's skill that you can get from the Tools to ask them questions.
			They are at your service and 100% dedicated to you, they keep context of your previous questions.

			Devise a plan of questions to ask to each experts and come up with the best response to the user's request.
			Never claim a trade happened unless the Trader confirmed it.
		`}}},
		},
		Library: NewLibrary(experts),
	}
}

// NewTrader returns the expert managing the account named name through the
// account tools.
func NewTrader(reg *accounts.Registry, name string) *Expert {
	tools := Tools(reg)
	// embedded, cannot fail.
	doc, _ := docs.GetTopics("accounts", "tools")

	return &Expert{
		Name: "Trader",
		Description: fmt.Sprintf(`This is the Trader managing the account of %s.
		Ask the Trader for the balance, the holdings or a report of the account, and to buy or sell shares
		or change the investment strategy.`, name),
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(tools)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: fmt.Sprintf(`
			You are a trader in charge of the account named %q. Always pass this name to the Tools.
			Check the balance and the holdings before trading, and explain each trade in its rationale.
			When a tool returns an error, report it and do not retry blindly.

			%s`, name, doc)}}},
		},
		Library: NewLibrary(tools),
	}
}

// NewAnalyst returns an expert grounded on Google Search for market news.
func NewAnalyst() *Expert {
	return &Expert{
		Name: "Analyst",
		Description: `This is an expert analyst,
		aware of the latest news about companies and markets.
		Ask the Analyst whenever you need recent or grounding information before a trade.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{GoogleSearch: &genai.GoogleSearch{}},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			You are an expert in financial markets, you can search and find about anything related to
			companies, markets and their stocks. You Leverage Google Search to ground your assertions.
			`}}},
		},
	}
}
