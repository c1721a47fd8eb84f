package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Campusflow Catalogue API",
        "description": "Course catalogue, timetable generation, and room availability service",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Catalogue", "description": "Terms, courses, and classes"},
        {"name": "Schedules", "description": "Conflict-free schedule generation"},
        {"name": "Rooms", "description": "Room listings and availability"},
        {"name": "System", "description": "Operational endpoints"}
    ],
    "paths": {
        "/terms": {
            "get": {
                "tags": ["Catalogue"],
                "summary": "List terms",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/courses": {
            "get": {
                "tags": ["Catalogue"],
                "summary": "List courses for a term",
                "parameters": [
                    {"name": "term", "in": "query", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Missing term", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/classes": {
            "get": {
                "tags": ["Catalogue"],
                "summary": "List a course's classes with coalesced meeting times",
                "parameters": [
                    {"name": "term", "in": "query", "required": true, "type": "string"},
                    {"name": "course", "in": "query", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK, objects is null when preferences exhaust the course", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/unique-schedule": {
            "get": {
                "tags": ["Catalogue"],
                "summary": "Rehydrate a shared schedule link",
                "parameters": [
                    {"name": "term", "in": "query", "required": true, "type": "string"},
                    {"name": "courses", "in": "query", "required": true, "type": "string"},
                    {"name": "blacklist", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/gen-schedules": {
            "get": {
                "tags": ["Schedules"],
                "summary": "Generate ranked conflict-free schedules",
                "parameters": [
                    {"name": "term", "in": "query", "required": true, "type": "string"},
                    {"name": "courses", "in": "query", "required": true, "type": "string"},
                    {"name": "evening", "in": "query", "type": "boolean"},
                    {"name": "online", "in": "query", "type": "boolean"},
                    {"name": "start", "in": "query", "type": "number"},
                    {"name": "consec", "in": "query", "type": "integer"},
                    {"name": "limit", "in": "query", "type": "integer"},
                    {"name": "blacklist", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Schedules"],
                "summary": "Generate ranked conflict-free schedules",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/GenerateSchedulesRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/gen-schedules/export": {
            "get": {
                "tags": ["Schedules"],
                "summary": "Export generated schedules as CSV or PDF",
                "produces": ["text/csv", "application/pdf"],
                "parameters": [
                    {"name": "term", "in": "query", "required": true, "type": "string"},
                    {"name": "courses", "in": "query", "required": true, "type": "string"},
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"]}
                ],
                "responses": {
                    "200": {"description": "Rendered document"}
                }
            }
        },
        "/rooms": {
            "get": {
                "tags": ["Rooms"],
                "summary": "List rooms for a term",
                "parameters": [
                    {"name": "term", "in": "query", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/room-sched": {
            "get": {
                "tags": ["Rooms"],
                "summary": "List every class meeting at a room",
                "parameters": [
                    {"name": "term", "in": "query", "required": true, "type": "string"},
                    {"name": "room", "in": "query", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/all-rooms-open": {
            "get": {
                "tags": ["Rooms"],
                "summary": "Find rooms free for a time window on a weekday",
                "parameters": [
                    {"name": "term", "in": "query", "required": true, "type": "string"},
                    {"name": "weekday", "in": "query", "required": true, "type": "string"},
                    {"name": "starttime", "in": "query", "required": true, "type": "string"},
                    {"name": "endtime", "in": "query", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "Mapping of building to free rooms"},
                    "400": {"description": "Missing or malformed parameters"}
                }
            }
        },
        "/stats": {
            "get": {
                "tags": ["System"],
                "summary": "Aggregated runtime statistics",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "PreferencesRequest": {
            "type": "object",
            "properties": {
                "evening": {"type": "boolean"},
                "online": {"type": "boolean"},
                "start": {"type": "number"},
                "consec": {"type": "integer"},
                "limit": {"type": "integer"},
                "blacklist": {"type": "array", "items": {"type": "string"}}
            }
        },
        "GenerateSchedulesRequest": {
            "type": "object",
            "required": ["term", "courses"],
            "properties": {
                "term": {"type": "string"},
                "courses": {"type": "array", "items": {"type": "string"}},
                "prefs": {"$ref": "#/definitions/PreferencesRequest"}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "objects": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "meta": {"type": "object"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
