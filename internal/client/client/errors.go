package client

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/onepass/internal/common"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var (
	ErrUnavailable     = errors.New("server unavailable")
	ErrTooManyRequests = errors.New("too many attempts, try again later")
	ErrNotLoggedIn     = errors.New("not logged in")
)

// remoteErrors are the server error names the client turns back into
// sentinel errors.
var remoteErrors = map[string]error{}

func init() {
	for _, err := range []error{
		common.ErrUsernameInvalid,
		common.ErrUsernameTaken,
		common.ErrUserNotFound,
		common.ErrAccessUnauthorized,
		common.ErrEntryNotFound,
		common.ErrIntegrity,
		common.ErrTokenInvalid,
		common.ErrTokenExpired,
	} {
		remoteErrors[err.Error()] = err
	}
}

func mapError(err error) error {
	if err == nil {
		return nil
	}
	st, ok := status.FromError(err)
	if !ok {
		return err
	}

	switch st.Code() {
	case codes.Unavailable, codes.DeadlineExceeded:
		return ErrUnavailable
	case codes.ResourceExhausted:
		return ErrTooManyRequests
	}

	if field, ok := strings.CutPrefix(st.Message(), common.ErrMissingField.Error()+": "); ok {
		return common.MissingField(field)
	}
	if e, ok := remoteErrors[st.Message()]; ok {
		return e
	}
	return fmt.Errorf("rpc error: %w", err)
}
