// Package docs holds the generated swagger specification.
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
        "/twitter-verify": {
            "get": {
                "produces": ["application/json"],
                "tags": ["verify"],
                "summary": "Verify a Twitter handle",
                "parameters": [
                    {"type": "string", "name": "handle", "in": "query", "required": true},
                    {"type": "string", "name": "addr", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.TwitterVerifyResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        },
        "/v2/twitter-verify": {
            "get": {
                "produces": ["application/json"],
                "tags": ["verify"],
                "summary": "Verify a Twitter handle (handle-bound message)",
                "parameters": [
                    {"type": "string", "name": "handle", "in": "query", "required": true},
                    {"type": "string", "name": "addr", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.TwitterVerifyResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        },
        "/solana/twitter-verify": {
            "get": {
                "produces": ["application/json"],
                "tags": ["verify"],
                "summary": "Verify a Twitter handle against a Solana address",
                "parameters": [
                    {"type": "string", "name": "handle", "in": "query", "required": true},
                    {"type": "string", "name": "addr", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.TwitterVerifyResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        },
        "/github-verify": {
            "get": {
                "produces": ["application/json"],
                "tags": ["verify"],
                "summary": "Verify a GitHub account via gist",
                "parameters": [
                    {"type": "string", "name": "gist_id", "in": "query", "required": true},
                    {"type": "string", "name": "addr", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.GithubVerifyResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "models.TwitterVerifyResponse": {
            "type": "object",
            "properties": {"handle": {"type": "string"}}
        },
        "models.GithubVerifyResponse": {
            "type": "object",
            "properties": {"username": {"type": "string"}}
        },
        "models.ErrorResponse": {
            "type": "object",
            "properties": {"errorText": {"type": "string"}}
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "Social Verifier API",
	Description:      "Binds verified social accounts to blockchain addresses.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
