// Package docs holds the OpenAPI description served at /swagger.
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
        "/api/session": {
            "get": {
                "produces": ["application/json"],
                "tags": ["session"],
                "summary": "Current session",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.sessionResponse"}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["session"],
                "summary": "Login",
                "parameters": [
                    {
                        "description": "Credentials and workspace role",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/handler.loginRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.loginResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/api.errorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/api.errorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/api.errorResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/api.errorResponse"}}
                }
            },
            "delete": {
                "tags": ["session"],
                "summary": "Logout",
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/api/view": {
            "get": {
                "produces": ["application/json"],
                "tags": ["view"],
                "summary": "Resolve a navigation",
                "parameters": [
                    {"type": "string", "description": "Requested path", "name": "path", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/service.Decision"}},
                    "202": {"description": "Session still loading", "schema": {"$ref": "#/definitions/service.Decision"}}
                }
            }
        },
        "/api/navigation": {
            "get": {
                "produces": ["application/json"],
                "tags": ["view"],
                "summary": "Sidebar navigation",
                "parameters": [
                    {"type": "string", "description": "Current path", "name": "path", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/api.errorResponse"}}
                }
            }
        },
        "/api/workspace/admin/clients": {
            "get": {
                "produces": ["application/json"],
                "tags": ["workspace"],
                "summary": "List clients",
                "parameters": [
                    {"type": "string", "description": "Name, company or email substring", "name": "search", "in": "query"},
                    {"type": "string", "description": "Client status", "name": "status", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "401": {"description": "Unauthorized"},
                    "403": {"description": "Forbidden"}
                }
            }
        },
        "/api/workspace/admin/metrics": {
            "get": {
                "produces": ["application/json"],
                "tags": ["workspace"],
                "summary": "Dashboard metrics",
                "responses": {
                    "200": {"description": "OK"},
                    "401": {"description": "Unauthorized"},
                    "403": {"description": "Forbidden"}
                }
            }
        },
        "/api/workspace/client/projects": {
            "get": {
                "produces": ["application/json"],
                "tags": ["workspace"],
                "summary": "List projects",
                "parameters": [
                    {"type": "string", "description": "Name or description substring", "name": "search", "in": "query"},
                    {"type": "string", "description": "Project status", "name": "status", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "401": {"description": "Unauthorized"},
                    "403": {"description": "Forbidden"}
                }
            }
        }
    },
    "definitions": {
        "api.errorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string"},
                "retryable": {"type": "boolean"}
            }
        },
        "domain.Session": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "email": {"type": "string"},
                "role": {"type": "string", "enum": ["admin", "client"]},
                "avatar": {"type": "string"}
            }
        },
        "handler.loginRequest": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"},
                "role": {"type": "string", "enum": ["admin", "client"]}
            }
        },
        "handler.loginResponse": {
            "type": "object",
            "properties": {
                "session": {"$ref": "#/definitions/domain.Session"},
                "redirect": {"type": "string"}
            }
        },
        "handler.sessionResponse": {
            "type": "object",
            "properties": {
                "authenticated": {"type": "boolean"},
                "loading": {"type": "boolean"},
                "login_pending": {"type": "boolean"},
                "session": {"$ref": "#/definitions/domain.Session"}
            }
        },
        "service.Decision": {
            "type": "object",
            "properties": {
                "state": {"type": "string", "enum": ["loading", "unauthenticated", "authenticated"]},
                "outcome": {"type": "string", "enum": ["render", "redirect", "wait"]},
                "path": {"type": "string"},
                "location": {"type": "string"},
                "replace": {"type": "boolean"},
                "shell": {"type": "object"},
                "page": {"type": "object"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Agency Portal API",
	Description:      "Session, navigation and workspace endpoints of the Rosey Co agency portal.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
