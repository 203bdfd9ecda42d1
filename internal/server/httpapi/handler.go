package httpapi

import (
	"net/http"
	"strconv"

	"github.com/dmitrijs2005/onepass/internal/api"
	"github.com/dmitrijs2005/onepass/internal/server/apiconv"
	"github.com/dmitrijs2005/onepass/internal/common"
	"github.com/gorilla/mux"
)

func (s *HTTPServer) ping(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, api.PingResponse{Status: "OK"})
}

// body decodes the request body into v, answering 400 on malformed JSON.
func body(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := decode(w, r, v); err != nil {
		writeError(w, http.StatusBadRequest, errBadRequest, nil)
		return false
	}
	return true
}

func entryID(r *http.Request) (int64, error) {
	return strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
}

func (s *HTTPServer) login(w http.ResponseWriter, r *http.Request) {
	var req api.LoginRequest
	if !body(w, r, &req) {
		return
	}
	res, err := s.keeper.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, api.LoginResponse{Token: res.Token, ExpiresAt: res.ExpiresAt})
}

func (s *HTTPServer) logout(w http.ResponseWriter, r *http.Request) {
	if err := s.keeper.Logout(r.Context(), sessionToken(r)); err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, nil)
}

func (s *HTTPServer) status(w http.ResponseWriter, r *http.Request) {
	st, err := s.keeper.Status(r.Context(), sessionToken(r))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, api.StatusResponse{UserID: st.UserID, Username: st.UserName, ExpiresAt: st.ExpiresAt})
}

func (s *HTTPServer) register(w http.ResponseWriter, r *http.Request) {
	var req api.RegisterRequest
	if !body(w, r, &req) {
		return
	}
	id, err := s.keeper.Register(r.Context(), req.Username, req.Password)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, api.RegisterResponse{UserID: id})
}

func (s *HTTPServer) changePassword(w http.ResponseWriter, r *http.Request) {
	var req api.ChangePasswordRequest
	if !body(w, r, &req) {
		return
	}
	if err := s.keeper.ChangePassword(r.Context(), sessionToken(r), req.OldPassword, req.NewPassword); err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, nil)
}

func (s *HTTPServer) deleteAccount(w http.ResponseWriter, r *http.Request) {
	if err := s.keeper.DeleteAccount(r.Context(), sessionToken(r)); err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, nil)
}

func (s *HTTPServer) list(w http.ResponseWriter, r *http.Request) {
	items, err := s.keeper.VaultList(r.Context(), sessionToken(r), r.URL.Query().Get("sort_by"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, api.ListResponse{Entries: apiconv.Summaries(items)})
}

func (s *HTTPServer) search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if !q.Has("query") {
		s.fail(w, r, common.MissingField("query"))
		return
	}
	items, err := s.keeper.VaultSearch(r.Context(), sessionToken(r), q.Get("query"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, api.ListResponse{Entries: apiconv.Summaries(items)})
}

func (s *HTTPServer) add(w http.ResponseWriter, r *http.Request) {
	var req api.AddRequest
	if !body(w, r, &req) {
		return
	}
	e, err := s.keeper.VaultAdd(r.Context(), sessionToken(r), apiconv.NewEntry(&req))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, api.EntryResponse{Entry: apiconv.Entry(e)})
}

func (s *HTTPServer) get(w http.ResponseWriter, r *http.Request) {
	id, err := entryID(r)
	if err != nil {
		s.fail(w, r, common.ErrEntryNotFound)
		return
	}
	e, err := s.keeper.VaultGet(r.Context(), sessionToken(r), id)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, api.EntryResponse{Entry: apiconv.Entry(e)})
}

func (s *HTTPServer) update(w http.ResponseWriter, r *http.Request) {
	id, err := entryID(r)
	if err != nil {
		s.fail(w, r, common.ErrEntryNotFound)
		return
	}
	var req api.UpdateRequest
	if !body(w, r, &req) {
		return
	}
	e, err := s.keeper.VaultUpdate(r.Context(), sessionToken(r), id, apiconv.EntryUpdate(&req))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, api.EntryResponse{Entry: apiconv.Entry(e)})
}

func (s *HTTPServer) delete(w http.ResponseWriter, r *http.Request) {
	id, err := entryID(r)
	if err != nil {
		s.fail(w, r, common.ErrEntryNotFound)
		return
	}
	if err := s.keeper.VaultDelete(r.Context(), sessionToken(r), id); err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, nil)
}

func (s *HTTPServer) check(w http.ResponseWriter, r *http.Request) {
	id, err := entryID(r)
	if err != nil {
		s.fail(w, r, common.ErrEntryNotFound)
		return
	}
	a, err := s.keeper.VaultCheck(r.Context(), sessionToken(r), id)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, api.AdviceResponse{Place: a.Place, Message: a.Message})
}

func (s *HTTPServer) checkPassword(w http.ResponseWriter, r *http.Request) {
	var req api.CheckPasswordRequest
	if !body(w, r, &req) {
		return
	}
	a, err := s.keeper.CheckPassword(r.Context(), req.Password)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, api.AdviceResponse{Place: a.Place, Message: a.Message})
}
