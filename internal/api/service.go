package api

import (
	"context"

	"google.golang.org/grpc"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "onepass.Vault"

// Full method names, as seen by interceptors in grpc.UnaryServerInfo.
const (
	MethodPing           = "/" + ServiceName + "/Ping"
	MethodRegister       = "/" + ServiceName + "/Register"
	MethodLogin          = "/" + ServiceName + "/Login"
	MethodLogout         = "/" + ServiceName + "/Logout"
	MethodStatus         = "/" + ServiceName + "/Status"
	MethodChangePassword = "/" + ServiceName + "/ChangePassword"
	MethodDeleteAccount  = "/" + ServiceName + "/DeleteAccount"
	MethodList           = "/" + ServiceName + "/List"
	MethodSearch         = "/" + ServiceName + "/Search"
	MethodAdd            = "/" + ServiceName + "/Add"
	MethodGet            = "/" + ServiceName + "/Get"
	MethodUpdate         = "/" + ServiceName + "/Update"
	MethodDelete         = "/" + ServiceName + "/Delete"
	MethodCheck          = "/" + ServiceName + "/Check"
	MethodCheckPassword  = "/" + ServiceName + "/CheckPassword"
)

// VaultServer is implemented by the server side of onepass.Vault. The
// session token travels in request metadata, not in the messages.
type VaultServer interface {
	Ping(context.Context, *Empty) (*PingResponse, error)
	Register(context.Context, *RegisterRequest) (*RegisterResponse, error)
	Login(context.Context, *LoginRequest) (*LoginResponse, error)
	Logout(context.Context, *Empty) (*Empty, error)
	Status(context.Context, *Empty) (*StatusResponse, error)
	ChangePassword(context.Context, *ChangePasswordRequest) (*Empty, error)
	DeleteAccount(context.Context, *Empty) (*Empty, error)
	List(context.Context, *ListRequest) (*ListResponse, error)
	Search(context.Context, *SearchRequest) (*ListResponse, error)
	Add(context.Context, *AddRequest) (*EntryResponse, error)
	Get(context.Context, *EntryRequest) (*EntryResponse, error)
	Update(context.Context, *UpdateRequest) (*EntryResponse, error)
	Delete(context.Context, *EntryRequest) (*Empty, error)
	Check(context.Context, *EntryRequest) (*AdviceResponse, error)
	CheckPassword(context.Context, *CheckPasswordRequest) (*AdviceResponse, error)
}

// RegisterVaultServer attaches srv to s.
func RegisterVaultServer(s grpc.ServiceRegistrar, srv VaultServer) {
	s.RegisterService(&VaultServiceDesc, srv)
}

func _Vault_Ping_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(VaultServer).Ping(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: MethodPing}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(VaultServer).Ping(ctx, req.(*Empty))
	}
	return interceptor(ctx, in, info, handler)
}

func _Vault_Register_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(RegisterRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(VaultServer).Register(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: MethodRegister}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(VaultServer).Register(ctx, req.(*RegisterRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _Vault_Login_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(LoginRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(VaultServer).Login(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: MethodLogin}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(VaultServer).Login(ctx, req.(*LoginRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _Vault_Logout_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(VaultServer).Logout(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: MethodLogout}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(VaultServer).Logout(ctx, req.(*Empty))
	}
	return interceptor(ctx, in, info, handler)
}

func _Vault_Status_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(VaultServer).Status(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: MethodStatus}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(VaultServer).Status(ctx, req.(*Empty))
	}
	return interceptor(ctx, in, info, handler)
}

func _Vault_ChangePassword_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(ChangePasswordRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(VaultServer).ChangePassword(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: MethodChangePassword}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(VaultServer).ChangePassword(ctx, req.(*ChangePasswordRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _Vault_DeleteAccount_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(VaultServer).DeleteAccount(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: MethodDeleteAccount}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(VaultServer).DeleteAccount(ctx, req.(*Empty))
	}
	return interceptor(ctx, in, info, handler)
}

func _Vault_List_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(ListRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(VaultServer).List(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: MethodList}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(VaultServer).List(ctx, req.(*ListRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _Vault_Search_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(SearchRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(VaultServer).Search(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: MethodSearch}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(VaultServer).Search(ctx, req.(*SearchRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _Vault_Add_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(AddRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(VaultServer).Add(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: MethodAdd}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(VaultServer).Add(ctx, req.(*AddRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _Vault_Get_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(EntryRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(VaultServer).Get(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: MethodGet}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(VaultServer).Get(ctx, req.(*EntryRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _Vault_Update_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(UpdateRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(VaultServer).Update(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: MethodUpdate}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(VaultServer).Update(ctx, req.(*UpdateRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _Vault_Delete_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(EntryRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(VaultServer).Delete(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: MethodDelete}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(VaultServer).Delete(ctx, req.(*EntryRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _Vault_Check_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(EntryRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(VaultServer).Check(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: MethodCheck}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(VaultServer).Check(ctx, req.(*EntryRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _Vault_CheckPassword_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(CheckPasswordRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(VaultServer).CheckPassword(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: MethodCheckPassword}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(VaultServer).CheckPassword(ctx, req.(*CheckPasswordRequest))
	}
	return interceptor(ctx, in, info, handler)
}

// VaultServiceDesc describes onepass.Vault for grpc.Server.RegisterService.
var VaultServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*VaultServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Ping", Handler: _Vault_Ping_Handler},
		{MethodName: "Register", Handler: _Vault_Register_Handler},
		{MethodName: "Login", Handler: _Vault_Login_Handler},
		{MethodName: "Logout", Handler: _Vault_Logout_Handler},
		{MethodName: "Status", Handler: _Vault_Status_Handler},
		{MethodName: "ChangePassword", Handler: _Vault_ChangePassword_Handler},
		{MethodName: "DeleteAccount", Handler: _Vault_DeleteAccount_Handler},
		{MethodName: "List", Handler: _Vault_List_Handler},
		{MethodName: "Search", Handler: _Vault_Search_Handler},
		{MethodName: "Add", Handler: _Vault_Add_Handler},
		{MethodName: "Get", Handler: _Vault_Get_Handler},
		{MethodName: "Update", Handler: _Vault_Update_Handler},
		{MethodName: "Delete", Handler: _Vault_Delete_Handler},
		{MethodName: "Check", Handler: _Vault_Check_Handler},
		{MethodName: "CheckPassword", Handler: _Vault_CheckPassword_Handler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "onepass/vault",
}
