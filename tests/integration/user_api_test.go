package integration

import (
	"encoding/json"
	"testing"

	"github.com/ThomasRolland/comptalib/tests/testutils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterUser(t *testing.T) {
	api, cleanup := setupAPI(t)
	defer cleanup()

	payload := api.register(t, "John Doe", "root")
	assert.Equal(t, "John Doe", payload.Username)
	assert.NotZero(t, payload.ID)
	assert.NotEmpty(t, payload.OauthToken)

	// The token from registration identifies the new user
	userID, err := api.tokens.Verify(payload.OauthToken)
	require.NoError(t, err)
	assert.Equal(t, payload.ID, userID)
}

func TestRegisterUser_PasswordNotEchoed(t *testing.T) {
	api, cleanup := setupAPI(t)
	defer cleanup()

	resp := api.server.POST("/api/v1/user", map[string]string{
		"username": "John Doe",
		"password": "root",
	})
	env := testutils.DecodeEnvelope(t, resp, 200)

	var fields map[string]interface{}
	require.NoError(t, json.Unmarshal(env.Data, &fields))
	assert.NotContains(t, fields, "password")
}

func TestRegisterUser_DuplicateUsername(t *testing.T) {
	api, cleanup := setupAPI(t)
	defer cleanup()

	api.register(t, "John Doe", "root")

	resp := api.server.POST("/api/v1/user", map[string]string{
		"username": "John Doe",
		"password": "other",
	})
	env := testutils.DecodeEnvelope(t, resp, 400)
	assert.Equal(t, "username already exists", env.Message)
}

func TestRegisterUser_SanitizesMarkup(t *testing.T) {
	api, cleanup := setupAPI(t)
	defer cleanup()

	resp := api.server.POST("/api/v1/user", map[string]string{
		"username": " <b>John Doe</b> ",
		"password": "root",
	})
	env := testutils.DecodeEnvelope(t, resp, 200)

	var payload userPayload
	require.NoError(t, json.Unmarshal(env.Data, &payload))
	assert.Equal(t, "John Doe", payload.Username)
}

func TestLogin(t *testing.T) {
	api, cleanup := setupAPI(t)
	defer cleanup()

	api.register(t, "John Doe", "root")

	resp := api.server.POST("/api/v1/user/login", map[string]string{
		"username": "John Doe",
		"password": "root",
	})
	env := testutils.DecodeEnvelope(t, resp, 200)

	var payload userPayload
	require.NoError(t, json.Unmarshal(env.Data, &payload))
	assert.Equal(t, "John Doe", payload.Username)
	assert.NotEmpty(t, payload.OauthToken)
}

func TestLogin_MessageLadder(t *testing.T) {
	api, cleanup := setupAPI(t)
	defer cleanup()

	api.register(t, "John Doe", "root")

	cases := []struct {
		name    string
		body    map[string]string
		message string
	}{
		{
			name:    "missing username",
			body:    map[string]string{"password": "root"},
			message: "Bad request : send username",
		},
		{
			name:    "unknown username",
			body:    map[string]string{"username": "Nobody", "password": "root"},
			message: "Bad request : email and password doesn't match",
		},
		{
			name:    "missing password",
			body:    map[string]string{"username": "John Doe"},
			message: "Bad request : send password",
		},
		{
			name:    "wrong password",
			body:    map[string]string{"username": "John Doe", "password": "wrong"},
			message: "Bad request : username and password doesn't match",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := api.server.POST("/api/v1/user/login", tc.body)
			env := testutils.DecodeEnvelope(t, resp, 400)
			assert.Equal(t, tc.message, env.Message)
			assert.Equal(t, "null", string(env.Data))
		})
	}
}

func TestGetUsers(t *testing.T) {
	api, cleanup := setupAPI(t)
	defer cleanup()

	api.register(t, "John Doe", "root")
	api.register(t, "Tom Doe", "root")

	resp := api.server.GET("/api/v1/user")
	env := testutils.DecodeEnvelope(t, resp, 200)

	var users []userPayload
	require.NoError(t, json.Unmarshal(env.Data, &users))
	require.Len(t, users, 2)
	assert.Equal(t, "John Doe", users[0].Username)
	assert.Equal(t, "Tom Doe", users[1].Username)
}

func TestGetUser_NotFoundIsNullData(t *testing.T) {
	api, cleanup := setupAPI(t)
	defer cleanup()

	resp := api.server.GET("/api/v1/user/999")
	env := testutils.DecodeEnvelope(t, resp, 200)
	assert.Equal(t, "null", string(env.Data))
	assert.Equal(t, "", env.Message)
}

func TestUpdateUser_SelfOnly(t *testing.T) {
	api, cleanup := setupAPI(t)
	defer cleanup()

	alice := api.register(t, "Alice", "root")
	bob := api.register(t, "Bob", "root")

	// Alice may update her own record
	resp := api.server.PUT(userPath(alice.ID), map[string]string{
		"username": "Alice Updated",
		"password": "root",
	}, alice.OauthToken)
	env := testutils.DecodeEnvelope(t, resp, 200)

	var payload userPayload
	require.NoError(t, json.Unmarshal(env.Data, &payload))
	assert.Equal(t, "Alice Updated", payload.Username)

	// Alice may not update Bob's record
	resp = api.server.PUT(userPath(bob.ID), map[string]string{
		"username": "Hijacked",
	}, alice.OauthToken)
	env = testutils.DecodeEnvelope(t, resp, 403)
	assert.Equal(t, "Bad request : Unauthorized", env.Message)
}

func TestUpdateUser_MissingToken(t *testing.T) {
	api, cleanup := setupAPI(t)
	defer cleanup()

	alice := api.register(t, "Alice", "root")

	resp := api.server.PUT(userPath(alice.ID), map[string]string{
		"username": "Changed",
	}, "")
	env := testutils.DecodeEnvelope(t, resp, 200)
	assert.Equal(t, "Not found: Token Not found", env.Message)
	assert.Equal(t, "null", string(env.Data))

	// The record is untouched
	resp = api.server.GET(userPath(alice.ID))
	env = testutils.DecodeEnvelope(t, resp, 200)
	var payload userPayload
	require.NoError(t, json.Unmarshal(env.Data, &payload))
	assert.Equal(t, "Alice", payload.Username)
}

func TestUpdateUser_InvalidToken(t *testing.T) {
	api, cleanup := setupAPI(t)
	defer cleanup()

	alice := api.register(t, "Alice", "root")

	resp := api.server.PUT(userPath(alice.ID), map[string]string{
		"username": "Changed",
	}, "garbage-token")
	env := testutils.DecodeEnvelope(t, resp, 400)
	assert.Equal(t, "Bad request : oauth_token is invalid", env.Message)
}

func TestDeleteUser_SelfOnlyAndIdempotent(t *testing.T) {
	api, cleanup := setupAPI(t)
	defer cleanup()

	alice := api.register(t, "Alice", "root")
	bob := api.register(t, "Bob", "root")

	// Alice may not delete Bob
	resp := api.server.DELETE(userPath(bob.ID), alice.OauthToken)
	testutils.DecodeEnvelope(t, resp, 403)

	// Deleting her own record reports one row removed
	resp = api.server.DELETE(userPath(alice.ID), alice.OauthToken)
	env := testutils.DecodeEnvelope(t, resp, 200)
	assert.Equal(t, "1", string(env.Data))

	// A second delete still succeeds, with a count of zero
	resp = api.server.DELETE(userPath(alice.ID), alice.OauthToken)
	env = testutils.DecodeEnvelope(t, resp, 200)
	assert.Equal(t, "0", string(env.Data))
}
