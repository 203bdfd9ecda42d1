package grpc

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/onepass/internal/api"
	"github.com/dmitrijs2005/onepass/internal/server/apiconv"
	"github.com/dmitrijs2005/onepass/internal/server/advisor"
)

// fail logs errors that have no public mapping and converts err to a status.
func (s *GRPCServer) fail(ctx context.Context, method string, err error) error {
	st := toStatus(err)
	if !knownError(err) {
		s.logger.Error(ctx, "request failed", "method", method, "error", err.Error())
	}
	return st
}

func knownError(err error) bool {
	for _, e := range errorCodes {
		if errors.Is(err, e.err) {
			return true
		}
	}
	return false
}

func (s *GRPCServer) Ping(ctx context.Context, req *api.Empty) (*api.PingResponse, error) {
	return &api.PingResponse{Status: "OK"}, nil
}

func (s *GRPCServer) Register(ctx context.Context, req *api.RegisterRequest) (*api.RegisterResponse, error) {
	id, err := s.keeper.Register(ctx, req.Username, req.Password)
	if err != nil {
		return nil, s.fail(ctx, "Register", err)
	}
	return &api.RegisterResponse{UserID: id}, nil
}

func (s *GRPCServer) Login(ctx context.Context, req *api.LoginRequest) (*api.LoginResponse, error) {
	res, err := s.keeper.Login(ctx, req.Username, req.Password)
	if err != nil {
		return nil, s.fail(ctx, "Login", err)
	}
	return &api.LoginResponse{Token: res.Token, ExpiresAt: res.ExpiresAt}, nil
}

func (s *GRPCServer) Logout(ctx context.Context, req *api.Empty) (*api.Empty, error) {
	if err := s.keeper.Logout(ctx, tokenFromContext(ctx)); err != nil {
		return nil, s.fail(ctx, "Logout", err)
	}
	return &api.Empty{}, nil
}

func (s *GRPCServer) Status(ctx context.Context, req *api.Empty) (*api.StatusResponse, error) {
	st, err := s.keeper.Status(ctx, tokenFromContext(ctx))
	if err != nil {
		return nil, s.fail(ctx, "Status", err)
	}
	return &api.StatusResponse{UserID: st.UserID, Username: st.UserName, ExpiresAt: st.ExpiresAt}, nil
}

func (s *GRPCServer) ChangePassword(ctx context.Context, req *api.ChangePasswordRequest) (*api.Empty, error) {
	if err := s.keeper.ChangePassword(ctx, tokenFromContext(ctx), req.OldPassword, req.NewPassword); err != nil {
		return nil, s.fail(ctx, "ChangePassword", err)
	}
	return &api.Empty{}, nil
}

func (s *GRPCServer) DeleteAccount(ctx context.Context, req *api.Empty) (*api.Empty, error) {
	if err := s.keeper.DeleteAccount(ctx, tokenFromContext(ctx)); err != nil {
		return nil, s.fail(ctx, "DeleteAccount", err)
	}
	return &api.Empty{}, nil
}

func (s *GRPCServer) List(ctx context.Context, req *api.ListRequest) (*api.ListResponse, error) {
	items, err := s.keeper.VaultList(ctx, tokenFromContext(ctx), req.SortBy)
	if err != nil {
		return nil, s.fail(ctx, "List", err)
	}
	return &api.ListResponse{Entries: apiconv.Summaries(items)}, nil
}

func (s *GRPCServer) Search(ctx context.Context, req *api.SearchRequest) (*api.ListResponse, error) {
	items, err := s.keeper.VaultSearch(ctx, tokenFromContext(ctx), req.Query)
	if err != nil {
		return nil, s.fail(ctx, "Search", err)
	}
	return &api.ListResponse{Entries: apiconv.Summaries(items)}, nil
}

func (s *GRPCServer) Add(ctx context.Context, req *api.AddRequest) (*api.EntryResponse, error) {
	e, err := s.keeper.VaultAdd(ctx, tokenFromContext(ctx), apiconv.NewEntry(req))
	if err != nil {
		return nil, s.fail(ctx, "Add", err)
	}
	return &api.EntryResponse{Entry: apiconv.Entry(e)}, nil
}

func (s *GRPCServer) Get(ctx context.Context, req *api.EntryRequest) (*api.EntryResponse, error) {
	e, err := s.keeper.VaultGet(ctx, tokenFromContext(ctx), req.ID)
	if err != nil {
		return nil, s.fail(ctx, "Get", err)
	}
	return &api.EntryResponse{Entry: apiconv.Entry(e)}, nil
}

func (s *GRPCServer) Update(ctx context.Context, req *api.UpdateRequest) (*api.EntryResponse, error) {
	e, err := s.keeper.VaultUpdate(ctx, tokenFromContext(ctx), req.ID, apiconv.EntryUpdate(req))
	if err != nil {
		return nil, s.fail(ctx, "Update", err)
	}
	return &api.EntryResponse{Entry: apiconv.Entry(e)}, nil
}

func (s *GRPCServer) Delete(ctx context.Context, req *api.EntryRequest) (*api.Empty, error) {
	if err := s.keeper.VaultDelete(ctx, tokenFromContext(ctx), req.ID); err != nil {
		return nil, s.fail(ctx, "Delete", err)
	}
	return &api.Empty{}, nil
}

func (s *GRPCServer) Check(ctx context.Context, req *api.EntryRequest) (*api.AdviceResponse, error) {
	a, err := s.keeper.VaultCheck(ctx, tokenFromContext(ctx), req.ID)
	if err != nil {
		return nil, s.fail(ctx, "Check", err)
	}
	return adviceResponse(a), nil
}

func (s *GRPCServer) CheckPassword(ctx context.Context, req *api.CheckPasswordRequest) (*api.AdviceResponse, error) {
	a, err := s.keeper.CheckPassword(ctx, req.Password)
	if err != nil {
		return nil, s.fail(ctx, "CheckPassword", err)
	}
	return adviceResponse(a), nil
}

func adviceResponse(a advisor.Advice) *api.AdviceResponse {
	return &api.AdviceResponse{Place: a.Place, Message: a.Message}
}
