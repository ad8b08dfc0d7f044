package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/pocketledger/pocketledger/internal/database/repository"
)

// ErrUnknownTool is returned by Execute for tool names outside Tools().
var ErrUnknownTool = errors.New("unknown tool")

// ErrBadToolArgs is returned by Execute when the argument payload does not
// decode into the tool's parameter shape.
var ErrBadToolArgs = errors.New("bad tool arguments")

// Tool names the assistant dispatches on.
const (
	ToolAddTransaction     = "addTransaction"
	ToolFinancialSummary   = "getFinancialSummary"
	ToolCategoryBreakdown  = "getCategoryBreakdown"
	ToolMerchantBreakdown  = "getMerchantBreakdown"
	ToolMonthlyTrend       = "getMonthlyTrend"
	ToolSearchTransactions = "searchTransactions"
)

// Tools lists every tool name Execute accepts.
func (a *AssistantService) Tools() []string {
	return []string{
		ToolAddTransaction,
		ToolFinancialSummary,
		ToolCategoryBreakdown,
		ToolMerchantBreakdown,
		ToolMonthlyTrend,
		ToolSearchTransactions,
	}
}

type monthOffsetArgs struct {
	MonthOffset int    `json:"monthOffset"`
	Type        string `json:"type,omitempty"`
}

// Execute runs one named tool with raw JSON arguments and returns its
// result. This is the single entry point the chat/voice collaborator calls
// through; each invocation is one atomic synchronous call into the ledger.
func (a *AssistantService) Execute(ctx context.Context, name string, args json.RawMessage) (interface{}, error) {
	if len(args) == 0 {
		args = json.RawMessage("{}")
	}
	switch name {
	case ToolFinancialSummary:
		var in monthOffsetArgs
		if err := json.Unmarshal(args, &in); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrBadToolArgs, name, err)
		}
		return a.FinancialSummary(in.MonthOffset), nil

	case ToolCategoryBreakdown:
		var in monthOffsetArgs
		if err := json.Unmarshal(args, &in); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrBadToolArgs, name, err)
		}
		return a.CategoryBreakdown(in.MonthOffset, repository.TransactionType(in.Type)), nil

	case ToolMerchantBreakdown:
		var in monthOffsetArgs
		if err := json.Unmarshal(args, &in); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrBadToolArgs, name, err)
		}
		return a.MerchantBreakdown(in.MonthOffset), nil

	case ToolMonthlyTrend:
		var in monthOffsetArgs
		if err := json.Unmarshal(args, &in); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrBadToolArgs, name, err)
		}
		return a.MonthlyTrend(in.MonthOffset), nil

	case ToolSearchTransactions:
		var in SearchArgs
		if err := json.Unmarshal(args, &in); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrBadToolArgs, name, err)
		}
		return a.SearchTransactions(in), nil

	case ToolAddTransaction:
		var in AddArgs
		if err := json.Unmarshal(args, &in); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrBadToolArgs, name, err)
		}
		res, err := a.AddTransaction(ctx, in)
		if err != nil {
			return res, err
		}
		return res, nil
	}
	return nil, fmt.Errorf("%w %q", ErrUnknownTool, name)
}
