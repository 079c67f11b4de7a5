package grpc

// proto.go defines the gRPC server interface derived from
// crest/accrual/v1/accrual.proto. This file serves as a stand-in for
// buf-generated code. Once `buf generate` is run, replace this file with the
// import from github.com/crestbank/accrual-service/api/gen/go/crest/accrual/v1.

import (
	"context"

	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// AccrualMessage is the wire shape of an interest accrual.
type AccrualMessage struct {
	Id               string `json:"id"`
	LoanId           string `json:"loan_id"`
	Company          string `json:"company"`
	PostingDate      string `json:"posting_date"`
	PendingPrincipal string `json:"pending_principal"`
	InterestAmount   string `json:"interest_amount"`
	PayablePrincipal string `json:"payable_principal,omitempty"`
	ProcessRunId     string `json:"process_run_id,omitempty"`
	ScheduleRowId    string `json:"schedule_row_id,omitempty"`
	Status           string `json:"status"`
}

// LoanFailureMessage reports one loan that failed during a batch run.
type LoanFailureMessage struct {
	LoanId string `json:"loan_id"`
	Error  string `json:"error"`
}

// RunDemandAccrualRequest triggers the demand-loan batch. Dates are
// YYYY-MM-DD; empty means the server-side default.
type RunDemandAccrualRequest struct {
	PostingDate string `json:"posting_date,omitempty"`
	LoanType    string `json:"loan_type,omitempty"`
}

// RunTermAccrualRequest triggers the term-loan batch.
type RunTermAccrualRequest struct {
	CutoffDate  string `json:"cutoff_date,omitempty"`
	PostingDate string `json:"posting_date,omitempty"`
}

// BatchRunResponse summarises a batch run.
type BatchRunResponse struct {
	ProcessRunId string                `json:"process_run_id"`
	PostingDate  string                `json:"posting_date"`
	Accrued      []*AccrualMessage     `json:"accrued"`
	Skipped      int32                 `json:"skipped"`
	Failures     []*LoanFailureMessage `json:"failures"`
}

// ListAccrualsRequest queries one loan's accruals.
type ListAccrualsRequest struct {
	LoanId string `json:"loan_id"`
}

// ListAccrualsResponse carries the loan's accruals, newest first.
type ListAccrualsResponse struct {
	Accruals []*AccrualMessage `json:"accruals"`
}

// CancelAccrualRequest reverses a submitted accrual.
type CancelAccrualRequest struct {
	AccrualId string `json:"accrual_id"`
}

// CancelAccrualResponse carries the cancelled accrual.
type CancelAccrualResponse struct {
	Accrual *AccrualMessage `json:"accrual"`
}

// AccrualServiceServer is the server API for AccrualService.
// It mirrors the proto-generated interface from crest.accrual.v1.AccrualService.
type AccrualServiceServer interface {
	RunDemandAccrual(context.Context, *RunDemandAccrualRequest) (*BatchRunResponse, error)
	RunTermAccrual(context.Context, *RunTermAccrualRequest) (*BatchRunResponse, error)
	ListAccruals(context.Context, *ListAccrualsRequest) (*ListAccrualsResponse, error)
	CancelAccrual(context.Context, *CancelAccrualRequest) (*CancelAccrualResponse, error)
	mustEmbedUnimplementedAccrualServiceServer()
}

// UnimplementedAccrualServiceServer provides forward-compatible default implementations.
type UnimplementedAccrualServiceServer struct{}

func (UnimplementedAccrualServiceServer) RunDemandAccrual(context.Context, *RunDemandAccrualRequest) (*BatchRunResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method RunDemandAccrual not implemented")
}
func (UnimplementedAccrualServiceServer) RunTermAccrual(context.Context, *RunTermAccrualRequest) (*BatchRunResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method RunTermAccrual not implemented")
}
func (UnimplementedAccrualServiceServer) ListAccruals(context.Context, *ListAccrualsRequest) (*ListAccrualsResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ListAccruals not implemented")
}
func (UnimplementedAccrualServiceServer) CancelAccrual(context.Context, *CancelAccrualRequest) (*CancelAccrualResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method CancelAccrual not implemented")
}
func (UnimplementedAccrualServiceServer) mustEmbedUnimplementedAccrualServiceServer() {}

// RegisterAccrualServiceServer registers the AccrualServiceServer with the gRPC server.
func RegisterAccrualServiceServer(s *grpclib.Server, srv AccrualServiceServer) {
	s.RegisterService(&_AccrualService_serviceDesc, srv) //nolint:revive // gRPC handler registration
}

//nolint:revive // gRPC handler registration
var _AccrualService_serviceDesc = grpclib.ServiceDesc{
	ServiceName: "crest.accrual.v1.AccrualService",
	HandlerType: (*AccrualServiceServer)(nil),
	Methods: []grpclib.MethodDesc{
		{MethodName: "RunDemandAccrual", Handler: _AccrualService_RunDemandAccrual_Handler}, //nolint:revive // gRPC handler registration
		{MethodName: "RunTermAccrual", Handler: _AccrualService_RunTermAccrual_Handler},     //nolint:revive // gRPC handler registration
		{MethodName: "ListAccruals", Handler: _AccrualService_ListAccruals_Handler},         //nolint:revive // gRPC handler registration
		{MethodName: "CancelAccrual", Handler: _AccrualService_CancelAccrual_Handler},       //nolint:revive // gRPC handler registration
	},
	Streams: []grpclib.StreamDesc{},
}

//nolint:revive,errcheck // gRPC handler registration
func _AccrualService_RunDemandAccrual_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(RunDemandAccrualRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(AccrualServiceServer).RunDemandAccrual(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/crest.accrual.v1.AccrualService/RunDemandAccrual",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(AccrualServiceServer).RunDemandAccrual(ctx, req.(*RunDemandAccrualRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _AccrualService_RunTermAccrual_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(RunTermAccrualRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(AccrualServiceServer).RunTermAccrual(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/crest.accrual.v1.AccrualService/RunTermAccrual",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(AccrualServiceServer).RunTermAccrual(ctx, req.(*RunTermAccrualRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _AccrualService_ListAccruals_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(ListAccrualsRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(AccrualServiceServer).ListAccruals(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/crest.accrual.v1.AccrualService/ListAccruals",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(AccrualServiceServer).ListAccruals(ctx, req.(*ListAccrualsRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _AccrualService_CancelAccrual_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(CancelAccrualRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(AccrualServiceServer).CancelAccrual(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/crest.accrual.v1.AccrualService/CancelAccrual",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(AccrualServiceServer).CancelAccrual(ctx, req.(*CancelAccrualRequest))
	}
	return interceptor(ctx, in, info, handler)
}
