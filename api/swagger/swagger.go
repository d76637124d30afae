package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Announcement API",
        "description": "Announcement CRUD, criteria filtering and active-announcement lookup",
        "version": "1.0.0"
    },
    "basePath": "/api",
    "schemes": [
        "http"
    ],
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "tags": [
        {"name": "Announcements", "description": "Raw and structured announcement endpoints"}
    ],
    "paths": {
        "/announcements": {
            "get": {
                "tags": ["Announcements"],
                "summary": "List announcements",
                "description": "Filter with <field>.<equals|notEquals|in|notIn|specified|greaterThan|greaterThanOrEqual|lessThan|lessThanOrEqual> on id, language, startDate, endDate, announcementType.",
                "parameters": [
                    {"name": "id.equals", "in": "query", "type": "integer"},
                    {"name": "language.in", "in": "query", "type": "string"},
                    {"name": "startDate.greaterThan", "in": "query", "type": "string", "format": "date-time"},
                    {"name": "endDate.specified", "in": "query", "type": "boolean"},
                    {"name": "announcementType.equals", "in": "query", "type": "string"},
                    {"name": "distinct", "in": "query", "type": "boolean"},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "size", "in": "query", "type": "integer"},
                    {"name": "sort", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}, "headers": {"X-Total-Count": {"type": "integer"}, "Link": {"type": "string"}}},
                    "400": {"description": "Malformed criteria", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Announcements"],
                "summary": "Create announcement",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/Announcement"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "ID_EXISTS", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/announcements/count": {
            "get": {
                "tags": ["Announcements"],
                "summary": "Count announcements",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/announcements/{id}": {
            "get": {
                "tags": ["Announcements"],
                "summary": "Get announcement",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "integer"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "put": {
                "tags": ["Announcements"],
                "summary": "Replace announcement",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/Announcement"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "ID_NULL, ID_INVALID or ID_NOT_FOUND", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "patch": {
                "tags": ["Announcements"],
                "summary": "Merge-patch announcement",
                "consumes": ["application/json", "application/merge-patch+json"],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/Announcement"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "ID_NULL, ID_INVALID or ID_NOT_FOUND", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Announcements"],
                "summary": "Delete announcement",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "integer"}],
                "responses": {
                    "204": {"description": "Deleted"}
                }
            }
        },
        "/announcements/create": {
            "post": {
                "tags": ["Announcements"],
                "summary": "Create announcement from a validated request",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/AnnouncementRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Validation failed", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/announcements/update": {
            "post": {
                "tags": ["Announcements"],
                "summary": "Update announcement from a validated request",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/AnnouncementRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Validation failed", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "ANNOUNCEMENT_NOT_FOUND", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/announcements/delete": {
            "post": {
                "tags": ["Announcements"],
                "summary": "Delete announcement from a validated request",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/AnnouncementRequest"}}
                ],
                "responses": {
                    "204": {"description": "Deleted"},
                    "400": {"description": "Validation failed", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/announcements/get/all/active": {
            "get": {
                "tags": ["Announcements"],
                "summary": "Announcements active at a date",
                "parameters": [
                    {"name": "date", "in": "query", "required": true, "type": "string", "format": "date-time"},
                    {"name": "selectedLanguage", "in": "query", "required": true, "type": "string", "enum": ["TURKISH", "ENGLISH"]}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Missing or invalid parameters", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "Announcement": {
            "type": "object",
            "properties": {
                "id": {"type": "integer", "format": "int64"},
                "language": {"type": "string", "enum": ["TURKISH", "ENGLISH"]},
                "startDate": {"type": "string", "format": "date-time"},
                "endDate": {"type": "string", "format": "date-time"},
                "announcementType": {"type": "string", "enum": ["TEXT", "IMAGE", "WARNING", "WARNING_WITH_BUTTON", "IMAGE_WITH_TEXT", "BUTTON_WITH_TEXT", "IMAGE_WITH_TEXT_WITH_LINK"]},
                "announcementData": {"type": "string"}
            }
        },
        "AnnouncementRequest": {
            "type": "object",
            "required": ["requestType"],
            "properties": {
                "announcementId": {"type": "integer", "format": "int64"},
                "requestType": {"type": "string", "enum": ["CREATE", "UPDATE", "DELETE"]},
                "selectedLanguage": {"type": "string", "enum": ["TURKISH", "ENGLISH"]},
                "startDate": {"type": "string", "format": "date-time"},
                "endDate": {"type": "string", "format": "date-time"},
                "announcementType": {"type": "string", "enum": ["TEXT", "IMAGE", "WARNING", "WARNING_WITH_BUTTON", "IMAGE_WITH_TEXT", "BUTTON_WITH_TEXT", "IMAGE_WITH_TEXT_WITH_LINK"]},
                "announcementData": {"type": "string"}
            }
        },
        "Pagination": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "pageSize": {"type": "integer"},
                "totalCount": {"type": "integer"}
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
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "pagination": {"$ref": "#/definitions/Pagination"},
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
