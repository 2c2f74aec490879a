package service

import (
	"context"
	"fmt"
	"time"

	"github.com/afiguera/Advisory-Ledger-Backend/internal/api/request"
	"github.com/afiguera/Advisory-Ledger-Backend/internal/apperrors"
	"github.com/afiguera/Advisory-Ledger-Backend/internal/model"
	"github.com/afiguera/Advisory-Ledger-Backend/internal/repository"
)

// ReturnService computes time-weighted returns from caller-supplied
// valuations and the manual allocation flows stored in the ledger.
type ReturnService struct {
	allocationRepo *repository.AllocationRepository
	fundRepo       *repository.FundRepository
}

// NewReturnService creates a new ReturnService with the provided repository dependencies.
func NewReturnService(
	allocationRepo *repository.AllocationRepository,
	fundRepo *repository.FundRepository,
) *ReturnService {
	return &ReturnService{
		allocationRepo: allocationRepo,
		fundRepo:       fundRepo,
	}
}

// TWR computes the time-weighted return percentage for a period given the
// start and end valuations and the net external flow during the period.
// A zero or negative starting value cannot express a rate of return and
// yields 0 by policy, not an error.
func TWR(valueStart, valueEnd, netFlow float64) float64 {
	if valueStart <= 0 {
		return 0
	}
	return ((valueEnd - valueStart - netFlow) / valueStart) * 100
}

// WeightedAverage computes the weighted mean of values. Entries with a
// non-positive weight are excluded from the denominator. Returns 0 when no
// weight remains.
func WeightedAverage(values, weights []float64) float64 {
	var sum, totalWeight float64
	for i, v := range values {
		if i >= len(weights) || weights[i] <= 0 {
			continue
		}
		sum += v * weights[i]
		totalWeight += weights[i]
	}
	if totalWeight == 0 {
		return 0
	}
	return sum / totalWeight
}

// FoldNetFlow folds manual allocations within [start, end] into a signed
// flow summary. Assignments are deposits into the fund, unassignments are
// withdrawals. System-origin rows are internal to the fund and excluded.
func FoldNetFlow(allocations []model.Allocation, start, end time.Time) model.NetFlow {
	var flow model.NetFlow

	for _, a := range allocations {
		if a.Origin != model.OriginManual {
			continue
		}
		if a.Date.Before(start) || a.Date.After(end) {
			continue
		}
		switch a.Kind {
		case model.AllocationAssign:
			flow.DepositsUSD += a.AmountUSD
		case model.AllocationUnassign:
			flow.WithdrawalsUSD += a.AmountUSD
		}
	}

	flow.NetUSD = flow.DepositsUSD - flow.WithdrawalsUSD
	return flow
}

// NetFlow sums a fund's manual allocation flows within the date range.
func (s *ReturnService) NetFlow(ctx context.Context, clientID, fundID string, start, end time.Time) (model.NetFlow, error) {
	allocations, err := s.allocationRepo.GetAllAllocations(ctx, clientID, fundID)
	if err != nil {
		return model.NetFlow{}, fmt.Errorf("failed to load allocations: %w", err)
	}

	return FoldNetFlow(allocations, start, end), nil
}

// FundReturn computes one fund's TWR for the period described by the request.
// The fund must belong to the stated client.
func (s *ReturnService) FundReturn(ctx context.Context, req request.FundReturnRequest) (model.FundReturn, error) {
	start, end, err := parseRange(req.StartDate, req.EndDate)
	if err != nil {
		return model.FundReturn{}, err
	}

	return s.fundReturn(ctx, req.ClientID, req.Valuation, start, end)
}

// ClientReturn aggregates per-fund returns: total value and net flows sum
// across funds, and the headline percentage is the start-value-weighted
// average of the TWRs that were computable. Funds with a non-positive
// starting value are still reported individually with a 0 return.
func (s *ReturnService) ClientReturn(ctx context.Context, req request.ClientReturnRequest) (model.ClientReturn, error) {
	start, end, err := parseRange(req.StartDate, req.EndDate)
	if err != nil {
		return model.ClientReturn{}, err
	}

	result := model.ClientReturn{
		ClientID: req.ClientID,
		Funds:    make([]model.FundReturn, 0, len(req.Valuations)),
	}

	var percents, weights []float64

	for _, valuation := range req.Valuations {
		fundReturn, err := s.fundReturn(ctx, req.ClientID, valuation, start, end)
		if err != nil {
			return model.ClientReturn{}, err
		}

		result.TotalValueUSD += fundReturn.ValueEndUSD
		result.NetFlowsUSD += fundReturn.NetFlow.NetUSD
		if fundReturn.Computable {
			percents = append(percents, fundReturn.Percent)
			weights = append(weights, fundReturn.ValueStartUSD)
		}

		result.Funds = append(result.Funds, fundReturn)
	}

	result.Percent = round(WeightedAverage(percents, weights))
	result.TotalValueUSD = round(result.TotalValueUSD)
	result.NetFlowsUSD = round(result.NetFlowsUSD)

	return result, nil
}

func (s *ReturnService) fundReturn(ctx context.Context, clientID string, valuation request.FundValuation, start, end time.Time) (model.FundReturn, error) {
	fund, err := s.fundRepo.GetFund(ctx, valuation.FundID)
	if err != nil {
		return model.FundReturn{}, err
	}
	if fund.ClientID != clientID {
		return model.FundReturn{}, apperrors.ErrFundOwnershipMismatch
	}

	flow, err := s.NetFlow(ctx, clientID, valuation.FundID, start, end)
	if err != nil {
		return model.FundReturn{}, err
	}

	computable := valuation.ValueStart > 0

	return model.FundReturn{
		FundID:        valuation.FundID,
		ValueStartUSD: valuation.ValueStart,
		ValueEndUSD:   valuation.ValueEnd,
		NetFlow: model.NetFlow{
			DepositsUSD:    round(flow.DepositsUSD),
			WithdrawalsUSD: round(flow.WithdrawalsUSD),
			NetUSD:         round(flow.NetUSD),
		},
		Percent:    round(TWR(valuation.ValueStart, valuation.ValueEnd, flow.NetUSD)),
		Computable: computable,
	}, nil
}

// parseRange parses and orders a start/end date pair.
func parseRange(startStr, endStr string) (time.Time, time.Time, error) {
	start, err := time.Parse("2006-01-02", startStr)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("failed to parse date: %w", err)
	}
	end, err := time.Parse("2006-01-02", endStr)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("failed to parse date: %w", err)
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, apperrors.ErrInvalidDateRange
	}
	return start, end, nil
}
