package grpc

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/bibbank/fraudshield/internal/application/dto"
	"github.com/bibbank/fraudshield/internal/application/usecase"
	"github.com/bibbank/fraudshield/internal/domain/model"
	"github.com/bibbank/fraudshield/internal/domain/port"
)

// Compile-time assertion that FraudShieldHandler implements FraudShieldServiceServer.
var _ FraudShieldServiceServer = (*FraudShieldHandler)(nil)

// FraudShieldHandler implements the gRPC FraudShieldServiceServer interface.
type FraudShieldHandler struct {
	UnimplementedFraudShieldServiceServer
	scoreTransaction *usecase.ScoreTransaction
	scoreBatch       *usecase.ScoreBatch
	logger           *slog.Logger
}

// NewFraudShieldHandler creates a new gRPC handler.
func NewFraudShieldHandler(
	scoreTransaction *usecase.ScoreTransaction,
	scoreBatch *usecase.ScoreBatch,
	logger *slog.Logger,
) *FraudShieldHandler {
	return &FraudShieldHandler{
		scoreTransaction: scoreTransaction,
		scoreBatch:       scoreBatch,
		logger:           logger,
	}
}

// ScoreTransaction scores a single transaction.
func (h *FraudShieldHandler) ScoreTransaction(ctx context.Context, req *ScoreTransactionRequest) (*ScoreTransactionResponse, error) {
	if req == nil || req.Transaction == nil {
		return nil, status.Error(codes.InvalidArgument, "transaction is required")
	}

	in, err := toDTO(req.Transaction)
	if err != nil {
		return nil, err
	}

	result, err := h.scoreTransaction.Execute(ctx, in)
	if err != nil {
		return nil, h.toStatus("ScoreTransaction", err)
	}

	return &ScoreTransactionResponse{Assessment: toMsg(result)}, nil
}

// ScoreBatch scores the supplied transactions, or the configured source when
// use_source is set. Results keep input order.
func (h *FraudShieldHandler) ScoreBatch(ctx context.Context, req *ScoreBatchRequest) (*ScoreBatchResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	var (
		results []dto.AssessmentResult
		err     error
	)
	if req.UseSource {
		results, err = h.scoreBatch.FromSource(ctx)
	} else {
		reqs := make([]dto.ScoreTransactionRequest, 0, len(req.Transactions))
		for i, txn := range req.Transactions {
			if txn == nil {
				return nil, status.Errorf(codes.InvalidArgument, "transactions[%d] is required", i)
			}
			in, err := toDTO(txn)
			if err != nil {
				return nil, status.Errorf(codes.InvalidArgument, "transactions[%d]: %s", i, status.Convert(err).Message())
			}
			reqs = append(reqs, in)
		}
		results, err = h.scoreBatch.Execute(ctx, reqs)
	}
	if err != nil {
		return nil, h.toStatus("ScoreBatch", err)
	}

	resp := &ScoreBatchResponse{Assessments: make([]*AssessmentMsg, 0, len(results))}
	for _, r := range results {
		resp.Assessments = append(resp.Assessments, toMsg(r))
	}
	return resp, nil
}

// toStatus maps use case errors onto gRPC status codes.
func (h *FraudShieldHandler) toStatus(method string, err error) error {
	switch {
	case errors.Is(err, model.ErrInvalidTransaction):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, port.ErrSourceUnavailable):
		h.logger.Error("transaction source unavailable", slog.String("method", method), slog.String("error", err.Error()))
		return status.Error(codes.Unavailable, "transaction source unavailable")
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	default:
		h.logger.Error("scoring failed", slog.String("method", method), slog.String("error", err.Error()))
		return status.Error(codes.Internal, "internal error")
	}
}

func toDTO(msg *TransactionMsg) (dto.ScoreTransactionRequest, error) {
	req := dto.ScoreTransactionRequest{
		AccountID:   msg.AccountID,
		Country:     msg.Country,
		IsNewDevice: msg.IsNewDevice,
	}
	if msg.Amount != nil {
		amount, err := decimal.NewFromString(*msg.Amount)
		if err != nil {
			return dto.ScoreTransactionRequest{}, status.Errorf(codes.InvalidArgument, "invalid amount %q", *msg.Amount)
		}
		req.Amount = &amount
	}
	if msg.TransactionsLast24h != nil {
		n := int(*msg.TransactionsLast24h)
		req.TransactionsLast24h = &n
	}
	return req, nil
}

func toMsg(r dto.AssessmentResult) *AssessmentMsg {
	return &AssessmentMsg{
		ID:           r.ID.String(),
		AccountID:    r.AccountID,
		Amount:       r.Amount.String(),
		RiskScore:    int32(r.RiskScore),
		RiskLevel:    r.RiskLevel,
		MLPrediction: r.MLPrediction,
		MLScore:      int32(r.MLScore),
		RuleScore:    int32(r.RuleScore),
		Signals:      r.Signals,
		AssessedAt:   r.AssessedAt.Format(time.RFC3339Nano),
	}
}
