package grpc

import (
	"errors"

	"github.com/dmitrijs2005/onepass/internal/common"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const errTooManyRequests = "TooManyRequests"

var errorCodes = []struct {
	err  error
	code codes.Code
}{
	{common.ErrUsernameInvalid, codes.InvalidArgument},
	{common.ErrMissingField, codes.InvalidArgument},
	{common.ErrUsernameTaken, codes.AlreadyExists},
	{common.ErrUserNotFound, codes.NotFound},
	{common.ErrEntryNotFound, codes.NotFound},
	{common.ErrAccessUnauthorized, codes.Unauthenticated},
	{common.ErrTokenInvalid, codes.Unauthenticated},
	{common.ErrTokenExpired, codes.Unauthenticated},
	{common.ErrIntegrity, codes.DataLoss},
}

// toStatus turns a service error into a gRPC status. The message is the
// error name, with the field for missing fields; anything unknown is
// reported as a bare internal error.
func toStatus(err error) error {
	var mf *common.MissingFieldError
	if errors.As(err, &mf) {
		return status.Error(codes.InvalidArgument, mf.Error())
	}
	for _, e := range errorCodes {
		if errors.Is(err, e.err) {
			return status.Error(e.code, e.err.Error())
		}
	}
	return status.Error(codes.Internal, common.ErrorInternal.Error())
}
