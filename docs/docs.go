// Package docs registers the Responder OpenAPI document with swag.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "schemes": {{ marshal .Schemes }},
    "paths": {
        "/": {
            "get": {
                "tags": ["root"],
                "summary": "Welcome message",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.MessageResponse"}}
                }
            }
        },
        "/questions": {
            "get": {
                "tags": ["questions"],
                "summary": "List questions",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/entities.Question"}}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/http.ErrorResponse"}}
                }
            },
            "post": {
                "tags": ["questions"],
                "summary": "Create a question",
                "description": "Stores the question as given; the caller supplies the id",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"in": "body", "name": "request", "description": "Question", "required": true, "schema": {"$ref": "#/definitions/entities.Question"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/entities.Question"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/http.ErrorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/http.ErrorResponse"}}
                }
            }
        },
        "/questions/{questionId}": {
            "get": {
                "tags": ["questions"],
                "summary": "Get question by ID",
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "description": "Question ID", "name": "questionId", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/entities.Question"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/http.ErrorResponse"}}
                }
            }
        },
        "/questions/{questionId}/answers": {
            "get": {
                "tags": ["answers"],
                "summary": "List the answers of a question",
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "description": "Question ID", "name": "questionId", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/entities.Answer"}}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/http.ErrorResponse"}}
                }
            },
            "post": {
                "tags": ["answers"],
                "summary": "Add an answer to a question",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "description": "Question ID", "name": "questionId", "in": "path", "required": true},
                    {"in": "body", "name": "request", "description": "Answer", "required": true, "schema": {"$ref": "#/definitions/entities.Answer"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/entities.Answer"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/http.ErrorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/http.ErrorResponse"}}
                }
            }
        },
        "/questions/{questionId}/answers/{answerId}": {
            "get": {
                "tags": ["answers"],
                "summary": "Get one answer of a question",
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "description": "Question ID", "name": "questionId", "in": "path", "required": true},
                    {"type": "string", "description": "Answer ID", "name": "answerId", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/entities.Answer"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/http.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "entities.Answer": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "author": {"type": "string"},
                "summary": {"type": "string"}
            }
        },
        "entities.Question": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "author": {"type": "string"},
                "summary": {"type": "string"},
                "answers": {"type": "array", "items": {"$ref": "#/definitions/entities.Answer"}}
            }
        },
        "http.ErrorResponse": {
            "type": "object",
            "properties": {"message": {"type": "string"}}
        },
        "http.MessageResponse": {
            "type": "object",
            "properties": {"message": {"type": "string"}}
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:3000",
	BasePath:         "/",
	Schemes:          []string{"http"},
	Title:            "Responder API",
	Description:      "Questions and their answers, stored as a single JSON document",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
