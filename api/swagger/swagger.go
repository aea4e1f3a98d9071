package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Afterschool Console API",
        "description": "Staff console for the afterschool course platform: synchronized lists and confirmed status transitions",
        "version": "1.0.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Sessions", "description": "Console session handoff"},
        {"name": "Views", "description": "Synchronized lists"},
        {"name": "Admin", "description": "Administrator transitions"},
        {"name": "Teacher", "description": "Teacher course transitions"}
    ],
    "parameters": {
        "Session": {"name": "X-Console-Session", "in": "header", "type": "string", "required": true},
        "View": {"name": "view", "in": "path", "type": "string", "required": true, "enum": ["user_roster", "pending_courses", "all_courses", "my_courses"]},
        "ID": {"name": "id", "in": "path", "type": "integer", "required": true}
    },
    "paths": {
        "/health": {
            "get": {
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/ready": {
            "get": {
                "summary": "Readiness check",
                "responses": {
                    "200": {"description": "Ready"},
                    "503": {"description": "Session store unavailable"}
                }
            }
        },
        "/console/sessions": {
            "post": {
                "tags": ["Sessions"],
                "summary": "Open console session",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/OpenSessionRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Invalid payload", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Role may not use the console", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/console/sessions/current": {
            "get": {
                "tags": ["Sessions"],
                "summary": "Current console session",
                "parameters": [{"$ref": "#/parameters/Session"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Sessions"],
                "summary": "Close console session",
                "parameters": [{"$ref": "#/parameters/Session"}],
                "responses": {
                    "204": {"description": "Closed"}
                }
            }
        },
        "/console/views": {
            "get": {
                "tags": ["Views"],
                "summary": "List views available to the session role",
                "parameters": [{"$ref": "#/parameters/Session"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/console/views/{view}": {
            "get": {
                "tags": ["Views"],
                "summary": "Synchronize view",
                "parameters": [
                    {"$ref": "#/parameters/Session"},
                    {"$ref": "#/parameters/View"},
                    {"name": "role", "in": "query", "type": "string"},
                    {"name": "name", "in": "query", "type": "string"},
                    {"name": "keyword", "in": "query", "type": "string"},
                    {"name": "status", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Invalid filter", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "View not available to role", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "502": {"description": "Fetch failed", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Views"],
                "summary": "Tear down view",
                "parameters": [{"$ref": "#/parameters/Session"}, {"$ref": "#/parameters/View"}],
                "responses": {
                    "204": {"description": "Torn down"}
                }
            }
        },
        "/console/views/{view}/snapshot": {
            "get": {
                "tags": ["Views"],
                "summary": "Committed rows of a view",
                "parameters": [{"$ref": "#/parameters/Session"}, {"$ref": "#/parameters/View"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/console/views/{view}/export": {
            "get": {
                "tags": ["Views"],
                "summary": "Export view rows",
                "produces": ["text/csv", "application/pdf", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"],
                "parameters": [
                    {"$ref": "#/parameters/Session"},
                    {"$ref": "#/parameters/View"},
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf", "xlsx"], "default": "csv"}
                ],
                "responses": {
                    "200": {"description": "File"},
                    "404": {"description": "View not loaded", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/console/admin/users/{id}/role": {
            "put": {
                "tags": ["Admin"],
                "summary": "Change user role",
                "parameters": [
                    {"$ref": "#/parameters/Session"},
                    {"$ref": "#/parameters/ID"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ChangeRoleRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "502": {"description": "Transition failed", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/console/admin/users/{id}": {
            "delete": {
                "tags": ["Admin"],
                "summary": "Delete user",
                "parameters": [{"$ref": "#/parameters/Session"}, {"$ref": "#/parameters/ID"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "502": {"description": "Transition failed", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/console/admin/courses/{id}/status": {
            "put": {
                "tags": ["Admin"],
                "summary": "Approve or reject course",
                "parameters": [
                    {"$ref": "#/parameters/Session"},
                    {"$ref": "#/parameters/ID"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ChangeCourseStatusRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "502": {"description": "Transition failed", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/console/admin/courses/{id}/enrollments": {
            "post": {
                "tags": ["Admin"],
                "summary": "Force enroll student",
                "parameters": [
                    {"$ref": "#/parameters/Session"},
                    {"$ref": "#/parameters/ID"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/EnrollRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "502": {"description": "Transition failed", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/console/admin/courses/{id}/enrollments/{studentId}": {
            "delete": {
                "tags": ["Admin"],
                "summary": "Force unenroll student",
                "parameters": [
                    {"$ref": "#/parameters/Session"},
                    {"$ref": "#/parameters/ID"},
                    {"name": "studentId", "in": "path", "type": "integer", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "502": {"description": "Transition failed", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/console/admin/notices": {
            "post": {
                "tags": ["Admin"],
                "summary": "Publish global notice",
                "parameters": [
                    {"$ref": "#/parameters/Session"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/NoticeRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/console/admin/surveys": {
            "post": {
                "tags": ["Admin"],
                "summary": "Publish global survey",
                "parameters": [
                    {"$ref": "#/parameters/Session"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SurveyRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Invalid survey", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/console/teacher/courses": {
            "post": {
                "tags": ["Teacher"],
                "summary": "Create course",
                "parameters": [
                    {"$ref": "#/parameters/Session"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CourseRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Invalid payload", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/console/teacher/courses/{id}": {
            "put": {
                "tags": ["Teacher"],
                "summary": "Update course",
                "parameters": [
                    {"$ref": "#/parameters/Session"},
                    {"$ref": "#/parameters/ID"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CourseRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "OpenSessionRequest": {
            "type": "object",
            "required": ["token", "role"],
            "properties": {
                "token": {"type": "string"},
                "role": {"type": "string"},
                "name": {"type": "string"},
                "email": {"type": "string"},
                "userId": {"type": "integer"}
            }
        },
        "ChangeRoleRequest": {
            "type": "object",
            "required": ["role"],
            "properties": {
                "role": {"type": "string", "enum": ["STUDENT", "TEACHER", "ADMIN"]}
            }
        },
        "ChangeCourseStatusRequest": {
            "type": "object",
            "required": ["status"],
            "properties": {
                "status": {"type": "string", "enum": ["APPROVED", "REJECTED"]}
            }
        },
        "EnrollRequest": {
            "type": "object",
            "required": ["studentId"],
            "properties": {
                "studentId": {"type": "integer"}
            }
        },
        "NoticeRequest": {
            "type": "object",
            "required": ["title", "content"],
            "properties": {
                "title": {"type": "string"},
                "content": {"type": "string"}
            }
        },
        "SurveyRequest": {
            "type": "object",
            "required": ["title", "startDate", "endDate", "questions"],
            "properties": {
                "title": {"type": "string"},
                "startDate": {"type": "string", "format": "date"},
                "endDate": {"type": "string", "format": "date"},
                "questions": {
                    "type": "array",
                    "items": {
                        "type": "object",
                        "required": ["questionText", "questionType"],
                        "properties": {
                            "questionText": {"type": "string"},
                            "questionType": {"type": "string", "enum": ["MULTIPLE_CHOICE", "TEXT"]},
                            "options": {"type": "string"}
                        }
                    }
                }
            }
        },
        "CourseRequest": {
            "type": "object",
            "required": ["courseName", "courseDays", "courseTime", "location", "capacity", "quarter", "endDate"],
            "properties": {
                "courseName": {"type": "string"},
                "category": {"type": "string"},
                "description": {"type": "string"},
                "courseDays": {"type": "string"},
                "courseTime": {"type": "string"},
                "location": {"type": "string"},
                "capacity": {"type": "integer"},
                "quarter": {"type": "integer"},
                "endDate": {"type": "string", "format": "date"}
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
