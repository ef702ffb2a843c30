// Package docs registers the OpenAPI description of the HTTP routes with swag
// so gin-swagger can serve it. Keep it in step with the annotations in
// internal/handlers.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "license": {
            "name": "MIT",
            "url": "https://opensource.org/licenses/MIT"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/messages": {
            "get": {
                "description": "Return the most recent chat messages, oldest first",
                "produces": ["application/json"],
                "tags": ["messages"],
                "summary": "List messages",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.MessagesResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            },
            "post": {
                "description": "Append a chat message. Author defaults to Anonymous.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["messages"],
                "summary": "Post a message",
                "parameters": [
                    {"description": "Message", "name": "message", "in": "body", "required": true, "schema": {"$ref": "#/definitions/models.CreateMessageRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handlers.MessageResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/rsvp/{eventId}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["rsvp"],
                "summary": "List attendees",
                "parameters": [
                    {"type": "string", "description": "Event id", "name": "eventId", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.AttendeesResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            },
            "post": {
                "description": "Create or replace the visitor's RSVP",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["rsvp"],
                "summary": "RSVP to an event",
                "parameters": [
                    {"type": "string", "description": "Event id", "name": "eventId", "in": "path", "required": true},
                    {"type": "string", "description": "Visitor id", "name": "X-Visitor-Id", "in": "header", "required": true},
                    {"description": "RSVP", "name": "rsvp", "in": "body", "required": true, "schema": {"$ref": "#/definitions/models.CreateRsvpRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handlers.RsvpResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/rsvp/{eventId}/{visitorId}": {
            "delete": {
                "description": "Removing an absent RSVP also succeeds",
                "produces": ["application/json"],
                "tags": ["rsvp"],
                "summary": "Cancel an RSVP",
                "parameters": [
                    {"type": "string", "description": "Event id", "name": "eventId", "in": "path", "required": true},
                    {"type": "string", "description": "Visitor id", "name": "visitorId", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.DeletedResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "handlers.ErrorResponse": {
            "type": "object",
            "properties": {"error": {"type": "string"}}
        },
        "handlers.MessagesResponse": {
            "type": "object",
            "properties": {"messages": {"type": "array", "items": {"$ref": "#/definitions/models.ChatMessage"}}}
        },
        "handlers.MessageResponse": {
            "type": "object",
            "properties": {"message": {"$ref": "#/definitions/models.ChatMessage"}}
        },
        "handlers.AttendeesResponse": {
            "type": "object",
            "properties": {"attendees": {"type": "array", "items": {"$ref": "#/definitions/models.RsvpEntry"}}}
        },
        "handlers.RsvpResponse": {
            "type": "object",
            "properties": {"rsvp": {"$ref": "#/definitions/models.RsvpEntry"}}
        },
        "handlers.DeletedResponse": {
            "type": "object",
            "properties": {"deleted": {"type": "boolean"}}
        },
        "models.ChatMessage": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "text": {"type": "string"},
                "author": {"type": "string"},
                "color": {"type": "string"},
                "timestamp": {"type": "integer"},
                "ttl": {"type": "integer"}
            }
        },
        "models.CreateMessageRequest": {
            "type": "object",
            "properties": {
                "text": {"type": "string", "maxLength": 500},
                "author": {"type": "string", "maxLength": 50},
                "color": {"type": "string"}
            }
        },
        "models.RsvpEntry": {
            "type": "object",
            "properties": {
                "eventId": {"type": "string"},
                "visitorId": {"type": "string"},
                "id": {"type": "string"},
                "name": {"type": "string"},
                "color": {"type": "string"},
                "timestamp": {"type": "integer"}
            }
        },
        "models.CreateRsvpRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string", "maxLength": 30},
                "color": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8081",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Freshsilver API",
	Description:      "Shared chat wall and event RSVP list for the freshsilver site",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
