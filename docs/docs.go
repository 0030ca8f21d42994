// Package docs registers the Swagger document served at /swagger.
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
        "/health": {
            "get": {
                "description": "Check if the service is healthy",
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "Health Check",
                "responses": {
                    "200": {"description": "Service is healthy", "schema": {"type": "object", "additionalProperties": true}}
                }
            }
        },
        "/ready": {
            "get": {
                "description": "Check if the service can take report commands",
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "Readiness Check",
                "responses": {
                    "200": {"description": "Service is ready", "schema": {"type": "object", "additionalProperties": true}},
                    "503": {"description": "Workers not running", "schema": {"type": "object", "additionalProperties": true}}
                }
            }
        },
        "/live": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "Liveness Check",
                "responses": {
                    "200": {"description": "Service is alive", "schema": {"type": "object", "additionalProperties": true}}
                }
            }
        },
        "/webhook/telegram": {
            "post": {
                "description": "Receives Telegram updates in webhook mode",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Telegram"],
                "summary": "Telegram webhook",
                "parameters": [
                    {"type": "string", "name": "X-Telegram-Bot-Api-Secret-Token", "in": "header"}
                ],
                "responses": {
                    "200": {"description": "Update accepted or ignored"},
                    "400": {"description": "Malformed update"},
                    "401": {"description": "Wrong secret token"},
                    "403": {"description": "IP not allowed"},
                    "429": {"description": "Rate limited"}
                }
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1",
	Host:             "localhost:8080",
	BasePath:         "",
	Schemes:          []string{"http"},
	Title:            "Weekly Task Report Bot",
	Description:      "Builds the weekly task report from a spreadsheet and delivers it to Telegram.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
