package web

import (
	"fmt"
	"net/http"
	"time"

	"github.com/ThomasRolland/comptalib/internal/company"
	"github.com/ThomasRolland/comptalib/internal/config"
	"github.com/ThomasRolland/comptalib/internal/docs"
	"github.com/ThomasRolland/comptalib/internal/user"
	"github.com/ThomasRolland/comptalib/middleware"

	"github.com/gorilla/mux"
)

type Router struct {
	Users     *user.UserHandlers
	Companies *company.CompanyHandlers
	Docs      *docs.DocsHandlers
	Auth      *middleware.Middleware
	Config    *config.Config
}

func NewRouter(users *user.UserHandlers, companies *company.CompanyHandlers, auth *middleware.Middleware, cfg *config.Config) *Router {
	return &Router{
		Users:     users,
		Companies: companies,
		Docs:      docs.NewDocsHandlers(),
		Auth:      auth,
		Config:    cfg,
	}
}

// SetupRoutes declares the full API surface. Every route is listed here;
// nothing is discovered dynamically.
func (rt *Router) SetupRoutes() *mux.Router {
	r := mux.NewRouter()

	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.SanitizeBody)

	api.HandleFunc("/", rt.Hello).Methods("GET")
	api.HandleFunc("/swagger.json", rt.Docs.SwaggerJSON).Methods("GET")
	api.HandleFunc("/doc", rt.Docs.Doc).Methods("GET")

	// User routes. Mutations are gated by the self-only rule; login must
	// be declared before the {id} routes so it is not matched as an id.
	api.HandleFunc("/user/login", rt.Users.Login).Methods("POST")
	api.HandleFunc("/user", rt.Users.GetAllUsers).Methods("GET")
	api.HandleFunc("/user", rt.Users.CreateUser).Methods("POST")
	api.HandleFunc("/user/{id}", rt.Users.GetUser).Methods("GET")
	api.HandleFunc("/user/{id}", rt.Auth.SelfOnly(rt.Users.UpdateUser)).Methods("PUT")
	api.HandleFunc("/user/{id}", rt.Auth.SelfOnly(rt.Users.DeleteUser)).Methods("DELETE")

	// Company routes carry no ownership gate (see DESIGN.md).
	api.HandleFunc("/company/addUser/{id}", rt.Companies.AddUsers).Methods("POST")
	api.HandleFunc("/company", rt.Companies.GetAllCompanies).Methods("GET")
	api.HandleFunc("/company", rt.Companies.CreateCompany).Methods("POST")
	api.HandleFunc("/company/{id}", rt.Companies.GetCompany).Methods("GET")
	api.HandleFunc("/company/{id}", rt.Companies.UpdateCompany).Methods("PUT")
	api.HandleFunc("/company/{id}", rt.Companies.DeleteCompany).Methods("DELETE")

	// Static assets
	r.PathPrefix("/").Handler(http.FileServer(http.Dir(rt.Config.StaticDir)))

	return r
}

// Hello answers the base path with a timestamp.
func (rt *Router) Hello(w http.ResponseWriter, r *http.Request) {
	fmt.Fprintf(w, "Hello World %s", time.Now().Format(time.RFC1123))
}
