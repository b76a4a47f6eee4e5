package grpc

// proto.go defines the server interface and messages of
// fraudshield.v1.FraudShieldService by hand. Messages travel with the JSON
// codec registered in json_codec.go.

import (
	"context"

	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "fraudshield.v1.FraudShieldService"

// FraudShieldServiceServer is the server API for FraudShieldService.
type FraudShieldServiceServer interface {
	ScoreTransaction(context.Context, *ScoreTransactionRequest) (*ScoreTransactionResponse, error)
	ScoreBatch(context.Context, *ScoreBatchRequest) (*ScoreBatchResponse, error)
	mustEmbedUnimplementedFraudShieldServiceServer()
}

// UnimplementedFraudShieldServiceServer provides forward-compatible default implementations.
type UnimplementedFraudShieldServiceServer struct{}

func (UnimplementedFraudShieldServiceServer) ScoreTransaction(context.Context, *ScoreTransactionRequest) (*ScoreTransactionResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ScoreTransaction not implemented")
}
func (UnimplementedFraudShieldServiceServer) ScoreBatch(context.Context, *ScoreBatchRequest) (*ScoreBatchResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ScoreBatch not implemented")
}
func (UnimplementedFraudShieldServiceServer) mustEmbedUnimplementedFraudShieldServiceServer() {}

// RegisterFraudShieldServiceServer registers the FraudShieldServiceServer with the gRPC server.
func RegisterFraudShieldServiceServer(s grpclib.ServiceRegistrar, srv FraudShieldServiceServer) {
	s.RegisterService(&_FraudShieldService_serviceDesc, srv)
}

var _FraudShieldService_serviceDesc = grpclib.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*FraudShieldServiceServer)(nil),
	Methods: []grpclib.MethodDesc{
		{MethodName: "ScoreTransaction", Handler: _FraudShieldService_ScoreTransaction_Handler},
		{MethodName: "ScoreBatch", Handler: _FraudShieldService_ScoreBatch_Handler},
	},
	Streams:  []grpclib.StreamDesc{},
	Metadata: "fraudshield/v1/fraudshield.proto",
}

func _FraudShieldService_ScoreTransaction_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpclib.UnaryServerInterceptor) (any, error) {
	req := new(ScoreTransactionRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(FraudShieldServiceServer).ScoreTransaction(ctx, req)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/" + ServiceName + "/ScoreTransaction",
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(FraudShieldServiceServer).ScoreTransaction(ctx, req.(*ScoreTransactionRequest))
	}
	return interceptor(ctx, req, info, handler)
}

func _FraudShieldService_ScoreBatch_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpclib.UnaryServerInterceptor) (any, error) {
	req := new(ScoreBatchRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(FraudShieldServiceServer).ScoreBatch(ctx, req)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/" + ServiceName + "/ScoreBatch",
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(FraudShieldServiceServer).ScoreBatch(ctx, req.(*ScoreBatchRequest))
	}
	return interceptor(ctx, req, info, handler)
}

// Proto-aligned request/response message types.

// TransactionMsg represents the proto Transaction message. Amount is a
// decimal string. Fields are optional on the wire so an omitted field stays
// nil and is rejected by request validation.
type TransactionMsg struct {
	AccountID           *string `json:"account_id,omitempty"`
	Amount              *string `json:"amount,omitempty"`
	Country             *string `json:"country,omitempty"`
	TransactionsLast24h *int32  `json:"transactions_last_24h,omitempty"`
	IsNewDevice         *bool   `json:"is_new_device,omitempty"`
}

// AssessmentMsg represents the proto RiskAssessment message.
type AssessmentMsg struct {
	ID           string   `json:"id"`
	AccountID    string   `json:"account_id"`
	Amount       string   `json:"amount"`
	RiskLevel    string   `json:"risk_level"`
	MLPrediction string   `json:"ml_prediction"`
	AssessedAt   string   `json:"assessed_at"`
	Signals      []string `json:"signals"`
	RiskScore    int32    `json:"risk_score"`
	MLScore      int32    `json:"ml_score"`
	RuleScore    int32    `json:"rule_score"`
}

// ScoreTransactionRequest represents the proto ScoreTransactionRequest message.
type ScoreTransactionRequest struct {
	Transaction *TransactionMsg `json:"transaction"`
}

// ScoreTransactionResponse represents the proto ScoreTransactionResponse message.
type ScoreTransactionResponse struct {
	Assessment *AssessmentMsg `json:"assessment"`
}

// ScoreBatchRequest represents the proto ScoreBatchRequest message. When
// UseSource is set the transactions field is ignored and the configured
// transaction source is scored instead.
type ScoreBatchRequest struct {
	Transactions []*TransactionMsg `json:"transactions"`
	UseSource    bool              `json:"use_source"`
}

// ScoreBatchResponse represents the proto ScoreBatchResponse message.
type ScoreBatchResponse struct {
	Assessments []*AssessmentMsg `json:"assessments"`
}
