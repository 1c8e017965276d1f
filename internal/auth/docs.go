package auth

import (
	"net/http"

	"github.com/garage-admin/garage/internal/apidoc"
)

// Endpoints documents the token routes. They declare their 401 response, so
// no other error codes are derived for them.
func Endpoints() []apidoc.Endpoint {
	unauthorized := apidoc.Response{Description: "Unauthorized", Schema: apidoc.SchemaUnauthenticatedError}
	return []apidoc.Endpoint{
		{
			Method: http.MethodPost, Path: "/token/", OperationID: "token_create", Tag: "Token",
			Description: "Takes a set of user credentials and returns an access and refresh JSON web token pair to prove the authentication of those credentials.",
			RequestBody: "TokenObtainPair",
			Declared: map[int]apidoc.Response{
				http.StatusOK:           {Description: "OK", Schema: "TokenPair"},
				http.StatusUnauthorized: unauthorized,
			},
		},
		{
			Method: http.MethodPost, Path: "/token/refresh/", OperationID: "token_refresh_create", Tag: "Token",
			Description: "Takes a refresh type JSON web token and returns an access type JSON web token if the refresh token is valid.",
			RequestBody: "TokenRefresh",
			Declared: map[int]apidoc.Response{
				http.StatusOK:           {Description: "OK", Schema: "TokenAccess"},
				http.StatusUnauthorized: unauthorized,
			},
		},
		{
			Method: http.MethodPost, Path: "/token/blacklist/", OperationID: "token_blacklist_create", Tag: "Token",
			Description: "Takes a token and blacklists it.",
			RequestBody: "TokenRefresh",
			Declared: map[int]apidoc.Response{
				http.StatusOK:           {Description: "OK"},
				http.StatusUnauthorized: unauthorized,
			},
		},
	}
}

// Schemas returns the token component schemas.
func Schemas() []apidoc.Schema {
	return []apidoc.Schema{
		{Name: "TokenObtainPair", Properties: []apidoc.Property{
			{Name: "email", Type: "string", WriteOnly: true, Required: true},
			{Name: "password", Type: "string", WriteOnly: true, Required: true},
		}},
		{Name: "TokenPair", Properties: []apidoc.Property{
			{Name: "access", Type: "string", ReadOnly: true, Required: true},
			{Name: "refresh", Type: "string", ReadOnly: true, Required: true},
		}},
		{Name: "TokenRefresh", Properties: []apidoc.Property{
			{Name: "refresh", Type: "string", WriteOnly: true, Required: true},
		}},
		{Name: "TokenAccess", Properties: []apidoc.Property{
			{Name: "access", Type: "string", ReadOnly: true, Required: true},
		}},
	}
}
