package server

import (
	"fmt"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

const (
	APIPathPrefix = "/api/v1"
)

var (
	paramTypePats = map[string]string{
		"uuid": "[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}",
	}
)

// p is a quick parameter in a URI, made very small to ease readability in route
// listings.
func p(nameType string) string {
	var name string
	var pat string

	parts := strings.SplitN(nameType, ":", 2)
	name = parts[0]
	if len(parts) == 2 {
		// we have a type, if it's a name in the paramTypePats map use that else
		// treat it as a normal pattern
		pat = parts[1]

		if translatedPat, ok := paramTypePats[parts[1]]; ok {
			pat = translatedPat
		}
	}

	if pat == "" {
		return "{" + name + "}"
	}
	return "{" + name + ":" + pat + "}"
}

func (sts SterlingServer) newRouter() chi.Router {
	r := chi.NewRouter()

	r.Mount(APIPathPrefix, sts.newAPIRouter())

	return r
}

func (sts SterlingServer) newAPIRouter() chi.Router {
	r := chi.NewRouter()

	r.Mount("/login", sts.newLoginRouter())
	r.Mount("/tokens", sts.newTokensRouter())
	r.Mount("/users", sts.newUsersRouter())
	r.Mount("/languages", sts.newLanguagesRouter())
	r.Mount("/tokenize", sts.newTokenizeRouter())
	r.Mount("/profiles", sts.newProfilesRouter())
	r.Mount("/info", sts.newInfoRouter())
	r.HandleFunc("/info/", RedirectNoTrailingSlash)

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		jsonNotFound().writeResponse(w, req)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		time.Sleep(sts.unauthedDelay)
		jsonMethodNotAllowed(req).writeResponse(w, req)
	})

	return r
}

func (sts SterlingServer) newLoginRouter() chi.Router {
	r := chi.NewRouter()

	r.Post("/", sts.ep(sts.doEndpoint_Login_POST))
	r.Delete("/"+p("id:uuid"), sts.epID(sts.doEndpoint_LoginID_DELETE))
	r.HandleFunc("/"+p("id:uuid")+"/", RedirectNoTrailingSlash)

	return r
}

func (sts SterlingServer) newTokensRouter() chi.Router {
	r := chi.NewRouter()

	r.Post("/", sts.ep(sts.doEndpoint_Token_POST))

	return r
}

func (sts SterlingServer) newUsersRouter() chi.Router {
	r := chi.NewRouter()

	r.Get("/", sts.ep(sts.doEndpoint_Users_GET))
	r.Post("/", sts.ep(sts.doEndpoint_Users_POST))

	r.Route("/"+p("id:uuid"), func(r chi.Router) {
		r.Get("/", sts.epID(sts.doEndpoint_UsersID_GET))
		r.Patch("/", sts.epID(sts.doEndpoint_UsersID_PATCH))
		r.Delete("/", sts.epID(sts.doEndpoint_UsersID_DELETE))
	})

	return r
}

func (sts SterlingServer) newLanguagesRouter() chi.Router {
	r := chi.NewRouter()

	r.Get("/", sts.ep(sts.doEndpoint_Languages_GET))
	r.Get("/"+p("name"), sts.epName(sts.doEndpoint_LanguagesName_GET))
	r.HandleFunc("/"+p("name")+"/", RedirectNoTrailingSlash)

	return r
}

func (sts SterlingServer) newTokenizeRouter() chi.Router {
	r := chi.NewRouter()

	r.Post("/", sts.ep(sts.doEndpoint_Tokenize_POST))

	return r
}

func (sts SterlingServer) newProfilesRouter() chi.Router {
	r := chi.NewRouter()

	r.Get("/", sts.ep(sts.doEndpoint_Profiles_GET))
	r.Post("/", sts.ep(sts.doEndpoint_Profiles_POST))

	r.Route("/"+p("id:uuid"), func(r chi.Router) {
		r.Get("/", sts.epID(sts.doEndpoint_ProfilesID_GET))
		r.Put("/", sts.epID(sts.doEndpoint_ProfilesID_PUT))
		r.Delete("/", sts.epID(sts.doEndpoint_ProfilesID_DELETE))
	})

	return r
}

func (sts SterlingServer) newInfoRouter() chi.Router {
	r := chi.NewRouter()

	r.Get("/", sts.ep(sts.doEndpoint_Info_GET))

	return r
}

// ep adapts an endpoint func into an http.HandlerFunc. Panics become HTTP-500s
// and responses that deny access are delayed by the configured unauth delay.
func (sts SterlingServer) ep(fn func(req *http.Request) EndpointResult) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		defer panicTo500(w, req)

		result := fn(req)

		if result.status == http.StatusUnauthorized || result.status == http.StatusForbidden {
			// if we are returning a forbidden or unauthorized, make the client
			// wait. anti-flood measure
			time.Sleep(sts.unauthedDelay)
		}

		result.writeResponse(w, req)
	}
}

// epID is like ep but for endpoints that take the uuid "id" URI parameter.
func (sts SterlingServer) epID(fn func(req *http.Request, id uuid.UUID) EndpointResult) http.HandlerFunc {
	return sts.ep(func(req *http.Request) EndpointResult {
		idStr := chi.URLParam(req, "id")
		id, err := uuid.Parse(idStr)
		if err != nil {
			return jsonBadRequest("ID is not valid", "invalid ID: %s", idStr)
		}
		return fn(req, id)
	})
}

// epName is like ep but for endpoints that take the "name" URI parameter.
func (sts SterlingServer) epName(fn func(req *http.Request, name string) EndpointResult) http.HandlerFunc {
	return sts.ep(func(req *http.Request) EndpointResult {
		return fn(req, chi.URLParam(req, "name"))
	})
}

// RedirectNoTrailingSlash is an http.HandlerFunc that redirects to the same URL as the
// request but with no trailing slash.
func RedirectNoTrailingSlash(w http.ResponseWriter, req *http.Request) {
	redirPath := strings.TrimRight(req.URL.Path, "/")
	redirection(redirPath).writeResponse(w, req)
}

func panicTo500(w http.ResponseWriter, req *http.Request) (panicRecovered bool) {
	if panicErr := recover(); panicErr != nil {
		textErr(
			http.StatusInternalServerError,
			"An internal server error occurred",
			fmt.Sprintf("panic: %v\nSTACK TRACE: %s", panicErr, string(debug.Stack())),
		).writeResponse(w, req)
		return true
	}
	return false
}
