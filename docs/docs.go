// Package docs registers the OpenAPI document served under /swagger/.
// Regenerate with: swag init -g cmd/tabernacle/main.go
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
        "/api/csrf": {
            "get": {
                "produces": ["application/json"],
                "tags": ["security"],
                "summary": "Issue a CSRF token and matching cookie",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/bookings": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["submissions"],
                "summary": "Submit a pastoral visit booking",
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Bad Request"},
                    "403": {"description": "Forbidden"},
                    "429": {"description": "Too Many Requests"}
                }
            }
        },
        "/api/serve": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["submissions"],
                "summary": "Volunteer for a ministry team",
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}
            }
        },
        "/api/newsletter": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["submissions"],
                "summary": "Subscribe to the newsletter",
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}
            }
        },
        "/api/comments": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["submissions"],
                "summary": "Leave a comment on a sermon or article",
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}
            }
        },
        "/api/rsvp": {
            "get": {
                "produces": ["application/json"],
                "tags": ["rsvp"],
                "summary": "Seat availability for an event",
                "parameters": [{"type": "string", "name": "event", "in": "query", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["rsvp"],
                "summary": "Create or update an RSVP",
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Bad Request"},
                    "404": {"description": "Not Found"},
                    "409": {"description": "Conflict"}
                }
            },
            "delete": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["rsvp"],
                "summary": "Cancel an RSVP",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/events": {
            "get": {
                "produces": ["application/json"],
                "tags": ["events"],
                "summary": "Upcoming events with remaining seats",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/prayer-wall": {
            "get": {
                "produces": ["application/json"],
                "tags": ["prayer"],
                "summary": "Approved prayer wall posts",
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["prayer"],
                "summary": "Submit a prayer request for moderation",
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}
            }
        },
        "/api/prayer-wall/{id}/pray": {
            "post": {
                "produces": ["application/json"],
                "tags": ["prayer"],
                "summary": "Record that someone prayed for a post",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            }
        },
        "/api/daily-promise": {
            "get": {
                "produces": ["application/json"],
                "tags": ["promise"],
                "summary": "Daily promise for today or a given date",
                "parameters": [{"type": "string", "name": "date", "in": "query"}],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}
            }
        }
    },
    "securityDefinitions": {
        "BasicAuth": {"type": "basic"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Praise Tabernacle API",
	Description:      "Form intake, RSVP, prayer wall and daily promise endpoints for the church website.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
