package api

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateRequest_Marshal_OmitsKept(t *testing.T) {
	req := UpdateRequest{ID: 7, URL: Null(), Password: String("s3cret")}

	b, err := json.Marshal(req)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":7,"url":null,"password":"s3cret"}`, string(b))
}

func TestUpdateRequest_Unmarshal_ThreeStates(t *testing.T) {
	var req UpdateRequest
	require.NoError(t, json.Unmarshal([]byte(`{"id":3,"url":null,"username":"bob"}`), &req))

	assert.Equal(t, int64(3), req.ID)
	assert.False(t, req.Title.Set)
	assert.False(t, req.Password.Set)
	assert.True(t, req.URL.Set)
	assert.Nil(t, req.URL.Value)
	require.True(t, req.Username.Set)
	assert.Equal(t, "bob", *req.Username.Value)
}

func TestUpdateRequest_Unmarshal_BadType(t *testing.T) {
	var req UpdateRequest
	assert.Error(t, json.Unmarshal([]byte(`{"id":3,"url":42}`), &req))
}

func TestCodec(t *testing.T) {
	c := jsonCodec{}
	assert.Equal(t, CodecName, c.Name())

	b, err := c.Marshal(&LoginRequest{Username: "alice", Password: "pw"})
	require.NoError(t, err)

	var got LoginRequest
	require.NoError(t, c.Unmarshal(b, &got))
	assert.Equal(t, "alice", got.Username)
}
