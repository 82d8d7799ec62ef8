package integration

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/ThomasRolland/comptalib/internal/auth"
	"github.com/ThomasRolland/comptalib/internal/company"
	"github.com/ThomasRolland/comptalib/internal/user"
	"github.com/ThomasRolland/comptalib/internal/web"
	"github.com/ThomasRolland/comptalib/middleware"
	"github.com/ThomasRolland/comptalib/tests/testutils"

	"github.com/stretchr/testify/require"
)

type testAPI struct {
	server *testutils.TestServer
	tokens *auth.TokenService
}

func setupAPI(t *testing.T) (*testAPI, func()) {
	factory, cleanup := testutils.SetupTestRepositoryFactory(t)

	cfg := testutils.GetTestConfig()
	userRepo := factory.NewUserRepository()
	companyRepo := factory.NewCompanyRepository()

	tokenService := auth.NewTokenService(cfg)
	userService := user.NewUserService(userRepo)
	companyService := company.NewCompanyService(companyRepo, userRepo)

	userHandlers := user.NewUserHandlers(userService, tokenService)
	companyHandlers := company.NewCompanyHandlers(companyService)
	authMiddleware := middleware.NewMiddleware(tokenService, userRepo)

	router := web.NewRouter(userHandlers, companyHandlers, authMiddleware, cfg)
	server := testutils.NewTestServer(t, router.SetupRoutes())

	api := &testAPI{server: server, tokens: tokenService}
	return api, func() {
		server.Close()
		cleanup()
	}
}

type userPayload struct {
	ID         int    `json:"id"`
	Username   string `json:"username"`
	OauthToken string `json:"oauth_token"`
}

type companyPayload struct {
	ID      int           `json:"id"`
	Name    string        `json:"name"`
	ZipCode *int          `json:"zipCode"`
	Users   []userPayload `json:"users"`
}

// register creates a user through the API and returns its payload,
// including the auto-login token.
func (api *testAPI) register(t *testing.T, username, password string) userPayload {
	resp := api.server.POST("/api/v1/user", map[string]string{
		"username": username,
		"password": password,
	})
	env := testutils.DecodeEnvelope(t, resp, 200)

	var payload userPayload
	require.NoError(t, json.Unmarshal(env.Data, &payload))
	require.NotEmpty(t, payload.OauthToken)
	return payload
}

func userPath(id int) string {
	return fmt.Sprintf("/api/v1/user/%d", id)
}

func companyPath(id int) string {
	return fmt.Sprintf("/api/v1/company/%d", id)
}
