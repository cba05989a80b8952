package agent

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/tradelens/tradelens"
	"github.com/tradelens/tradelens/renderer"
	"google.golang.org/genai"
)

const model = "gemini-2.5-pro"

// newFacilitator creates the expert in charge of the conversation.
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

			The user is here primarily to understand his trading history: realized profits,
			position counts, drawdowns and monthly performance.

			Devise a plan of questions to ask to each expert and come up with the best response
			to the user's request.

			The user will assume that you know about his instruments, check the trade ledger
			first to understand what they are.
		`}}},
		},
		Library: NewLibrary(experts),
	}
}

// NewAnalyst creates the market analyst expert. It grounds its answers with
// Google Search.
func NewAnalyst() *Expert {
	return &Expert{
		Name: "Analyst",
		Description: `This is an expert market analyst,
		very well aware of financial products, markets and institutions,
		and of the latest news about companies and funds.
		Ask the Analyst whenever you need recent or grounding information.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{GoogleSearch: &genai.GoogleSearch{}},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			You are an expert market analyst. You can search and find anything related to
			financial institutions, companies, markets and funds. You leverage Google Search
			to ground your assertions in a solid truth.
			You can get the latest news too, and you know how to relate them to the user's
			trading history.
				`}}},
		},
	}
}

// NewAccountant creates the expert in charge of the user's trade ledger.
func NewAccountant() *Expert {
	lib := []Function{Trades, Outcomes}

	return &Expert{
		Name: "Accountant",
		Description: `This is the Accountant. He is in charge of reading the user's trade ledger.
		He can replay the ledger to compute the relevant figures about the user's realized
		profits and positions.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(lib)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
				You are an accountant in charge of the user's trade ledger.
				You know how to use the Tools to extract relevant information about the user's
				trading history. You are part of a team of experts, yours is everything about
				the user's trades. They might ask you questions about the user's trades,
				pardon their approximative language and figure out what they meant.

				Use the available tools to get information about the user's trading history
				  - the canonical trade ledger
				  - realized outcomes per sell
			`}}},
		},
		Library: NewLibrary(lib),
	}
}

// Func implements a simple Function.
type Func struct {
	Decl *genai.FunctionDeclaration
	Func func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse
}

func (f *Func) Declaration() *genai.FunctionDeclaration { return f.Decl }
func (f *Func) Call(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
	return f.Func(ctx, id, args)
}

// Trades lists the canonical trade ledger.
var Trades = &Func{
	Decl: &genai.FunctionDeclaration{
		Name: "Trades",
		Description: `Trades lists all trades in the user's canonical ledger in chronological
		order, with instrument, date, side, quantity, price and fees.`,
		Parameters: &genai.Schema{Type: genai.TypeObject},
		Response: &genai.Schema{
			Type:        genai.TypeString,
			Description: "A markdown-formatted table of all trades in the ledger.",
		},
	},
	Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
		ledger, err := DecodeLedger()
		if err != nil {
			return errorResponse(id, "Trades", err)
		}
		return &genai.FunctionResponse{
			ID:   id,
			Name: "Trades",
			Response: map[string]any{
				"output": renderer.LedgerMarkdown(ledger),
			},
		}
	},
}

// Outcomes replays the ledger and reports realized P&L per sell.
var Outcomes = &Func{
	Decl: &genai.FunctionDeclaration{
		Name: "Outcomes",
		Description: `Outcomes replays the user's trade ledger with the average cost basis
		method and reports the realized profit or loss of every sell, plus current holdings.`,
		Parameters: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"method": {
					Type:        genai.TypeString,
					Description: "The cost basis method, 'average' (default) or 'fifo'.",
				},
			},
		},
		Response: &genai.Schema{
			Type:        genai.TypeString,
			Description: "A markdown-formatted report of realized trades and holdings.",
		},
	},
	Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
		method := tradelens.AverageCost
		if m, ok := args["method"].(string); ok && m != "" {
			parsed, err := tradelens.ParseCostBasisMethod(m)
			if err != nil {
				return errorResponse(id, "Outcomes", err)
			}
			method = parsed
		}

		ledger, err := DecodeLedger()
		if err != nil {
			return errorResponse(id, "Outcomes", err)
		}
		match := tradelens.MatchCostBasis(ledger, method)

		report := &tradelens.Report{
			Method:         method,
			Outcomes:       match.Outcomes,
			Positions:      match.Positions,
			UnmatchedCount: match.UnmatchedCount,
		}
		return &genai.FunctionResponse{
			ID:   id,
			Name: "Outcomes",
			Response: map[string]any{
				"output": renderer.ReportMarkdown(report),
			},
		}
	},
}

func errorResponse(id, name string, err error) *genai.FunctionResponse {
	return &genai.FunctionResponse{
		ID:   id,
		Name: name,
		Response: map[string]any{
			"error": err.Error(),
		},
	}
}

// DecodeLedger decodes the canonical ledger from the application's default
// ledger file. A missing file is an empty ledger.
func DecodeLedger() (*tradelens.Ledger, error) {
	ledgerFile := "trades.canonical.jsonl"
	f, err := os.Open(ledgerFile)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return tradelens.NewLedger(), nil
		}
		return nil, fmt.Errorf("could not open ledger file %q: %w", ledgerFile, err)
	}
	defer f.Close()

	ledger, err := tradelens.DecodeLedger(f)
	if err != nil {
		return nil, fmt.Errorf("could not decode ledger file %q: %w", ledgerFile, err)
	}
	return ledger, nil
}
