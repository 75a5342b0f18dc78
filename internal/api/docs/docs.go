// Package docs registers the OpenAPI description served under /swagger.
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
        "/api/admin/dashboard": {
            "get": {
                "produces": ["application/json"],
                "tags": ["dashboard"],
                "summary": "Current dashboard snapshot",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ports.Snapshot"}}}
            }
        },
        "/api/admin/reload": {
            "post": {
                "produces": ["application/json"],
                "tags": ["dashboard"],
                "summary": "Reload the dashboard now",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ports.Snapshot"}}}
            }
        },
        "/api/admin/counselors/options": {
            "get": {
                "produces": ["application/json"],
                "tags": ["counselors"],
                "summary": "Counselor dropdown options",
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/ports.CounselorOption"}}}}
            }
        },
        "/api/admin/counselors": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["counselors"],
                "summary": "Add a counselor",
                "description": "The username is the local part of the email address.",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/handler.addCounselorRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handler.ackResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/api/admin/counselors/{username}": {
            "delete": {
                "produces": ["application/json"],
                "tags": ["counselors"],
                "summary": "Remove a counselor",
                "description": "Requires confirm=true; without it nothing is sent upstream.",
                "parameters": [
                    {"type": "string", "in": "path", "name": "username", "required": true},
                    {"type": "boolean", "in": "query", "name": "confirm"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.ackResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "428": {"description": "Precondition Required", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/api/admin/counselors/{username}/manage": {
            "post": {
                "produces": ["application/json"],
                "tags": ["counselors"],
                "summary": "Manage a counselor (acknowledgment only)",
                "parameters": [{"type": "string", "in": "path", "name": "username", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.ackResponse"}}}
            }
        },
        "/api/admin/students": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["students"],
                "summary": "Add a student",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/handler.addStudentRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handler.ackResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/api/admin/students/{name}/assign": {
            "post": {
                "produces": ["application/json"],
                "tags": ["students"],
                "summary": "Assign a student (acknowledgment only)",
                "parameters": [{"type": "string", "in": "path", "name": "name", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.ackResponse"}}}
            }
        },
        "/api/admin/students/{name}/archive": {
            "post": {
                "produces": ["application/json"],
                "tags": ["students"],
                "summary": "Archive a student (acknowledgment only)",
                "parameters": [{"type": "string", "in": "path", "name": "name", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.ackResponse"}}}
            }
        },
        "/api/admin/students/export.xlsx": {
            "get": {
                "produces": ["application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"],
                "tags": ["students"],
                "summary": "Download the student roster as XLSX",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/admin/crises/{key}/review": {
            "post": {
                "produces": ["application/json"],
                "tags": ["crises"],
                "summary": "Mark a crisis reviewed",
                "parameters": [{"type": "string", "in": "path", "name": "key", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.ackResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/api/admin/crises/{key}/escalate": {
            "post": {
                "produces": ["application/json"],
                "tags": ["crises"],
                "summary": "Escalate a crisis",
                "parameters": [{"type": "string", "in": "path", "name": "key", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.ackResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/api/admin/audit": {
            "get": {
                "produces": ["application/json"],
                "tags": ["audit"],
                "summary": "Audit log, oldest first",
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/ports.AuditRow"}}}}
            }
        },
        "/api/admin/audit/export.xlsx": {
            "get": {
                "produces": ["application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"],
                "tags": ["audit"],
                "summary": "Download the audit log as XLSX",
                "responses": {"200": {"description": "OK"}}
            }
        }
    },
    "definitions": {
        "handler.ackResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string"},
                "audited": {"type": "boolean"},
                "reloaded": {"type": "boolean"},
                "persistent": {"type": "boolean"}
            }
        },
        "handler.addCounselorRequest": {
            "type": "object",
            "required": ["email", "name"],
            "properties": {"name": {"type": "string"}, "email": {"type": "string"}}
        },
        "handler.addStudentRequest": {
            "type": "object",
            "required": ["counselor", "grade", "name"],
            "properties": {"name": {"type": "string"}, "grade": {"type": "string"}, "counselor": {"type": "string"}}
        },
        "handler.errorResponse": {
            "type": "object",
            "properties": {"error": {"type": "string"}}
        },
        "ports.AuditRow": {
            "type": "object",
            "properties": {"time": {"type": "string"}, "user": {"type": "string"}, "role": {"type": "string"}, "action": {"type": "string"}}
        },
        "ports.CounselorOption": {
            "type": "object",
            "properties": {"value": {"type": "string"}, "label": {"type": "string"}}
        },
        "ports.Snapshot": {
            "type": "object",
            "properties": {
                "sequence": {"type": "integer"},
                "trigger": {"type": "string"},
                "loaded_at": {"type": "string"},
                "fetch_failed": {"type": "boolean"},
                "panels": {"type": "object"}
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
	Title:            "Counselor Dashboard API",
	Description:      "Admin dashboard over the school Student Information System.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
