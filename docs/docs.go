// Package docs registers the OpenAPI description served at /swagger.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "title": "{{.Title}}",
        "description": "{{escape .Description}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/auth/register": {
            "post": {
                "tags": ["auth"],
                "summary": "Register a new account",
                "responses": {"201": {"description": "Created"}, "409": {"description": "Email already exists"}}
            }
        },
        "/auth/login": {
            "post": {
                "tags": ["auth"],
                "summary": "Log in and receive a bearer token",
                "responses": {"200": {"description": "OK"}, "401": {"description": "Invalid credentials"}}
            }
        },
        "/habit/add": {
            "post": {
                "tags": ["habit"],
                "summary": "Create a habit",
                "responses": {"201": {"description": "Created"}, "400": {"description": "Invalid input"}}
            }
        },
        "/habit/list": {
            "post": {
                "tags": ["habit"],
                "summary": "List the caller's habits",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/habit/complete": {
            "post": {
                "tags": ["habit"],
                "summary": "Mark a habit completed for today",
                "responses": {"200": {"description": "OK"}, "404": {"description": "Habit not found"}}
            }
        },
        "/habit/remove": {
            "post": {
                "tags": ["habit"],
                "summary": "Delete a habit and its logs",
                "responses": {"200": {"description": "OK"}, "404": {"description": "Habit not found"}}
            }
        },
        "/habit/today-status": {
            "post": {
                "tags": ["habit"],
                "summary": "Today's completion status across all habits",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/weekly/report": {
            "post": {
                "tags": ["weekly"],
                "summary": "This week's performance, or a placeholder before Sunday",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/weekly/history": {
            "get": {
                "tags": ["weekly"],
                "summary": "All finalized weekly reports, newest first",
                "responses": {"200": {"description": "OK"}}
            }
        }
    }
}`

var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "HabitHub API",
	Description:      "Habit tracking backend: habits, daily logs, weekly performance.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
