// Package docs holds the OpenAPI document served under /swagger. Keep it in
// step with the handler annotations when routes change.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/admin/add-store": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Create a store",
                "parameters": [{"description": "Store payload", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/service.CreateStoreInput"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/model.Store"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}
                }
            }
        },
        "/admin/add-user": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Create a user with any role",
                "parameters": [{"description": "User payload", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/service.CreateUserInput"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/model.User"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}
                }
            }
        },
        "/admin/dashboard": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Platform totals",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.DashboardCounts"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}
                }
            }
        },
        "/admin/stores": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "List stores with owner and overall rating",
                "parameters": [
                    {"type": "string", "description": "Name contains (case-insensitive)", "name": "name", "in": "query"},
                    {"type": "string", "description": "Email contains (case-insensitive)", "name": "email", "in": "query"},
                    {"type": "string", "description": "Address contains (case-insensitive)", "name": "address", "in": "query"},
                    {"type": "string", "description": "name, email, address or avg_rating", "name": "sortBy", "in": "query"},
                    {"type": "string", "description": "asc or desc", "name": "sortOrder", "in": "query"},
                    {"type": "integer", "description": "Page size (default 100)", "name": "limit", "in": "query"},
                    {"type": "integer", "description": "Rows to skip", "name": "offset", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/model.AdminStoreListing"}}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}
                }
            }
        },
        "/admin/users": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "List users",
                "parameters": [
                    {"type": "string", "description": "Name contains (case-insensitive)", "name": "name", "in": "query"},
                    {"type": "string", "description": "Email contains (case-insensitive)", "name": "email", "in": "query"},
                    {"type": "string", "description": "Address contains (case-insensitive)", "name": "address", "in": "query"},
                    {"type": "string", "description": "Exact role", "name": "role", "in": "query"},
                    {"type": "string", "description": "name, email, address, role or owner_rating", "name": "sortBy", "in": "query"},
                    {"type": "string", "description": "asc or desc", "name": "sortOrder", "in": "query"},
                    {"type": "integer", "description": "Page size (default 100)", "name": "limit", "in": "query"},
                    {"type": "integer", "description": "Rows to skip", "name": "offset", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/model.UserListing"}}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}
                }
            }
        },
        "/admin/users/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "User details",
                "parameters": [{"type": "integer", "description": "User ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.UserDetail"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}
                }
            }
        },
        "/auth/change-password": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Change the caller's password",
                "parameters": [{"description": "New password", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.ChangePasswordRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.MessageResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}
                }
            }
        },
        "/auth/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Log in",
                "parameters": [{"description": "Login credentials", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.LoginRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.AuthResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}},
                    "429": {"description": "Too Many Requests", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}
                }
            }
        },
        "/auth/signup": {
            "post": {
                "description": "Self-registration always creates an account with role user.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Register a new user",
                "parameters": [{"description": "Registration data", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/service.SignupInput"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/model.User"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}
                }
            }
        },
        "/healthz": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Liveness and dependency status",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "503": {"description": "Service Unavailable", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/owner/dashboard": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["owner"],
                "summary": "Owned stores with their raters",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.OwnerDashboard"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}
                }
            }
        },
        "/stores": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "Every store with its overall rating and the caller's own rating, if any.",
                "produces": ["application/json"],
                "tags": ["stores"],
                "summary": "List stores",
                "parameters": [
                    {"type": "string", "description": "Name contains (case-insensitive)", "name": "name", "in": "query"},
                    {"type": "string", "description": "Email contains (case-insensitive)", "name": "email", "in": "query"},
                    {"type": "string", "description": "Address contains (case-insensitive)", "name": "address", "in": "query"},
                    {"type": "string", "description": "name, email, address or avg_rating", "name": "sortBy", "in": "query"},
                    {"type": "string", "description": "asc or desc", "name": "sortOrder", "in": "query"},
                    {"type": "integer", "description": "Page size (default 100)", "name": "limit", "in": "query"},
                    {"type": "integer", "description": "Rows to skip", "name": "offset", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/model.StoreListing"}}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}
                }
            }
        },
        "/stores/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["stores"],
                "summary": "Store details",
                "parameters": [{"type": "integer", "description": "Store ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.StoreListing"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}
                }
            }
        },
        "/stores/{id}/rating": {
            "put": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["stores"],
                "summary": "Modify the caller's rating",
                "parameters": [
                    {"type": "integer", "description": "Store ID", "name": "id", "in": "path", "required": true},
                    {"description": "Rating from 1 to 5", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.RatingRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.RatingResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["stores"],
                "summary": "Submit a rating",
                "parameters": [
                    {"type": "integer", "description": "Store ID", "name": "id", "in": "path", "required": true},
                    {"description": "Rating from 1 to 5", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.RatingRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handler.RatingResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "errors.ErrorResponse": {
            "type": "object",
            "properties": {"code": {"type": "string"}, "message": {"type": "string"}}
        },
        "handler.AuthResponse": {
            "type": "object",
            "properties": {"token": {"type": "string"}, "user": {"$ref": "#/definitions/handler.UserSummary"}}
        },
        "handler.ChangePasswordRequest": {
            "type": "object",
            "properties": {"newPassword": {"type": "string"}}
        },
        "handler.LoginRequest": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {"email": {"type": "string"}, "password": {"type": "string"}}
        },
        "handler.MessageResponse": {
            "type": "object",
            "properties": {"message": {"type": "string"}}
        },
        "handler.RatingBody": {
            "type": "object",
            "properties": {"id": {"type": "integer"}, "rating": {"type": "integer"}, "store_id": {"type": "integer"}, "user_id": {"type": "integer"}}
        },
        "handler.RatingRequest": {
            "type": "object",
            "properties": {"rating": {"type": "integer"}}
        },
        "handler.RatingResponse": {
            "type": "object",
            "properties": {"message": {"type": "string"}, "overall_rating": {"type": "number"}, "rating": {"$ref": "#/definitions/handler.RatingBody"}}
        },
        "handler.UserSummary": {
            "type": "object",
            "properties": {"email": {"type": "string"}, "id": {"type": "integer"}, "name": {"type": "string"}, "role": {"type": "string"}}
        },
        "model.AdminStoreListing": {
            "type": "object",
            "properties": {"address": {"type": "string"}, "avg_rating": {"type": "number"}, "email": {"type": "string"}, "id": {"type": "integer"}, "name": {"type": "string"}, "owner_id": {"type": "integer"}, "owner_name": {"type": "string"}}
        },
        "model.DashboardCounts": {
            "type": "object",
            "properties": {"total_ratings": {"type": "integer"}, "total_stores": {"type": "integer"}, "total_users": {"type": "integer"}}
        },
        "model.OwnerDashboard": {
            "type": "object",
            "properties": {"message": {"type": "string"}, "owner_id": {"type": "integer"}, "stores": {"type": "array", "items": {"type": "object"}}}
        },
        "model.Store": {
            "type": "object",
            "properties": {"address": {"type": "string"}, "email": {"type": "string"}, "id": {"type": "integer"}, "name": {"type": "string"}, "owner_id": {"type": "integer"}}
        },
        "model.StoreListing": {
            "type": "object",
            "properties": {"address": {"type": "string"}, "email": {"type": "string"}, "id": {"type": "integer"}, "name": {"type": "string"}, "overall_rating": {"type": "number"}, "owner_id": {"type": "integer"}, "owner_name": {"type": "string"}, "user_rating": {"type": "integer"}}
        },
        "model.User": {
            "type": "object",
            "properties": {"address": {"type": "string"}, "email": {"type": "string"}, "id": {"type": "integer"}, "name": {"type": "string"}, "role": {"type": "string"}}
        },
        "model.UserDetail": {
            "type": "object",
            "properties": {"address": {"type": "string"}, "email": {"type": "string"}, "id": {"type": "integer"}, "name": {"type": "string"}, "owner_rating": {"type": "number"}, "role": {"type": "string"}, "stores": {"type": "array", "items": {"type": "object"}}}
        },
        "model.UserListing": {
            "type": "object",
            "properties": {"address": {"type": "string"}, "email": {"type": "string"}, "id": {"type": "integer"}, "name": {"type": "string"}, "owner_rating": {"type": "number"}, "role": {"type": "string"}}
        },
        "service.CreateStoreInput": {
            "type": "object",
            "properties": {"address": {"type": "string"}, "email": {"type": "string"}, "name": {"type": "string"}, "owner_id": {"type": "integer"}}
        },
        "service.CreateUserInput": {
            "type": "object",
            "properties": {"address": {"type": "string"}, "email": {"type": "string"}, "name": {"type": "string"}, "password": {"type": "string"}, "role": {"type": "string"}}
        },
        "service.SignupInput": {
            "type": "object",
            "properties": {"address": {"type": "string"}, "email": {"type": "string"}, "name": {"type": "string"}, "password": {"type": "string"}}
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Type \"Bearer\" followed by a space and JWT token.",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api",
	Schemes:          []string{"http"},
	Title:            "Store Rating API",
	Description:      "Store rating platform with role-based access for admins, store owners and users.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
