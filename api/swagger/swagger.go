package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "LUCT Faculty Reporting API",
        "description": "Role-based lecture reporting, feedback and rating backend",
        "version": "1.0.0"
    },
    "basePath": "/api",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Authentication", "description": "Login and student self-registration"},
        {"name": "Reports", "description": "Lecture reports with role-shaped visibility"},
        {"name": "Classes", "description": "Class catalogue"},
        {"name": "Courses", "description": "Course catalogue"},
        {"name": "Lectures", "description": "Lecture assignment from reports"},
        {"name": "Ratings", "description": "Bidirectional student/lecturer ratings"},
        {"name": "Monitoring", "description": "Lecture activity monitoring"}
    ],
    "securityDefinitions": {
        "ApiToken": {
            "type": "apiKey",
            "name": "X-Auth-Token",
            "in": "header"
        }
    },
    "paths": {
        "/auth/login": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Authenticate user",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Invalid credentials"}
                }
            }
        },
        "/auth/register": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Register a student account",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/RegisterRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Username taken"}
                }
            }
        },
        "/reports": {
            "get": {
                "tags": ["Reports"],
                "summary": "List reports (role-shaped)",
                "security": [{"ApiToken": []}],
                "parameters": [
                    {"name": "q", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Reports"],
                "summary": "Submit a lecture report (lecturer)",
                "security": [{"ApiToken": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateReportRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Invalid payload or unknown class"}
                }
            }
        },
        "/reports/prl-feedback": {
            "get": {
                "tags": ["Reports"],
                "summary": "List reports with sanitized feedback (pl/prl)",
                "security": [{"ApiToken": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/reports/export": {
            "get": {
                "tags": ["Reports"],
                "summary": "Export all reports as a spreadsheet (pl/prl)",
                "security": [{"ApiToken": []}],
                "parameters": [
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "xlsx", "pdf"]}
                ],
                "responses": {
                    "200": {"description": "Attachment"}
                }
            }
        },
        "/reports/export/download": {
            "get": {
                "tags": ["Reports"],
                "summary": "Re-download an archived export (pl/prl)",
                "security": [{"ApiToken": []}],
                "parameters": [
                    {"name": "token", "in": "query", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "Attachment"},
                    "404": {"description": "Unknown or expired token"}
                }
            }
        },
        "/reports/{id}": {
            "get": {
                "tags": ["Reports"],
                "summary": "Get one report (role-shaped)",
                "security": [{"ApiToken": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found"}
                }
            },
            "put": {
                "tags": ["Reports"],
                "summary": "Update a report (lecturer)",
                "security": [{"ApiToken": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateReportRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found"}
                }
            },
            "delete": {
                "tags": ["Reports"],
                "summary": "Delete a report (lecturer)",
                "security": [{"ApiToken": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "Not found"}
                }
            }
        },
        "/reports/feedback/{id}": {
            "post": {
                "tags": ["Reports"],
                "summary": "Append feedback to a report (prl)",
                "security": [{"ApiToken": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/FeedbackRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Blank feedback"},
                    "404": {"description": "Not found"}
                }
            }
        },
        "/classes": {
            "get": {
                "tags": ["Classes"],
                "summary": "List classes (lecturer/pl/prl)",
                "security": [{"ApiToken": []}],
                "parameters": [
                    {"name": "q", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Classes"],
                "summary": "Create a class (lecturer)",
                "security": [{"ApiToken": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateClassRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/classes/{id}": {
            "put": {
                "tags": ["Classes"],
                "summary": "Update a class (lecturer)",
                "security": [{"ApiToken": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateClassRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found"}
                }
            },
            "delete": {
                "tags": ["Classes"],
                "summary": "Delete a class (lecturer)",
                "security": [{"ApiToken": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "409": {"description": "Referenced by reports"}
                }
            }
        },
        "/courses": {
            "get": {
                "tags": ["Courses"],
                "summary": "List courses (public)",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Courses"],
                "summary": "Create a course (pl)",
                "security": [{"ApiToken": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateCourseRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/courses/{id}": {
            "delete": {
                "tags": ["Courses"],
                "summary": "Delete a course (pl)",
                "security": [{"ApiToken": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "Not found"}
                }
            }
        },
        "/lectures": {
            "get": {
                "tags": ["Lectures"],
                "summary": "List lectures (lecturer/pl/prl)",
                "security": [{"ApiToken": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Lectures"],
                "summary": "Assign a lecture from a report (pl)",
                "security": [{"ApiToken": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/AssignLectureRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Report missing or course unresolved"}
                }
            }
        },
        "/lectures/available-reports": {
            "get": {
                "tags": ["Lectures"],
                "summary": "List reports eligible for assignment",
                "security": [{"ApiToken": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/lectures/{id}": {
            "put": {
                "tags": ["Lectures"],
                "summary": "Reschedule a lecture (pl)",
                "security": [{"ApiToken": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateLectureRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found"}
                }
            },
            "delete": {
                "tags": ["Lectures"],
                "summary": "Delete a lecture (pl)",
                "security": [{"ApiToken": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "Not found"}
                }
            }
        },
        "/rating": {
            "get": {
                "tags": ["Ratings"],
                "summary": "List ratings",
                "security": [{"ApiToken": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Ratings"],
                "summary": "Submit a rating (student or lecturer)",
                "security": [{"ApiToken": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateRatingRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Role cannot rate"}
                }
            }
        },
        "/students-to-rate": {
            "get": {
                "tags": ["Ratings"],
                "summary": "List rateable students (lecturer)",
                "security": [{"ApiToken": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/lectures-to-rate": {
            "get": {
                "tags": ["Ratings"],
                "summary": "List rateable lectures (student)",
                "security": [{"ApiToken": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/monitoring": {
            "get": {
                "tags": ["Monitoring"],
                "summary": "Monitor lecture activity (role-shaped)",
                "security": [{"ApiToken": []}],
                "parameters": [
                    {"name": "q", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "LoginRequest": {
            "type": "object",
            "properties": {
                "username": {"type": "string"},
                "password": {"type": "string"}
            },
            "required": ["username", "password"]
        },
        "RegisterRequest": {
            "type": "object",
            "properties": {
                "username": {"type": "string"},
                "password": {"type": "string"},
                "role": {"type": "string", "enum": ["student"]}
            },
            "required": ["username", "password"]
        },
        "CreateReportRequest": {
            "type": "object",
            "properties": {
                "class_id": {"type": "integer"},
                "date_of_lecture": {"type": "string", "format": "date"},
                "faculty_name": {"type": "string"},
                "week_of_reporting": {"type": "string"},
                "course_name": {"type": "string"},
                "course_code": {"type": "string"},
                "lecturer_name": {"type": "string"},
                "actual_number_of_students_present": {"type": "integer"},
                "total_number_of_registered_students": {"type": "integer"},
                "venue": {"type": "string"},
                "scheduled_lecture_time": {"type": "string"},
                "topic_taught": {"type": "string"},
                "learning_outcomes": {"type": "string"},
                "recommendations": {"type": "string"}
            },
            "required": ["class_id", "date_of_lecture"]
        },
        "UpdateReportRequest": {
            "type": "object",
            "properties": {
                "class_id": {"type": "integer"},
                "date_of_lecture": {"type": "string", "format": "date"},
                "topic_taught": {"type": "string"},
                "learning_outcomes": {"type": "string"},
                "recommendations": {"type": "string"}
            }
        },
        "FeedbackRequest": {
            "type": "object",
            "properties": {
                "feedback": {"type": "string"}
            },
            "required": ["feedback"]
        },
        "CreateClassRequest": {
            "type": "object",
            "properties": {
                "class_name": {"type": "string"},
                "venue": {"type": "string"}
            },
            "required": ["class_name"]
        },
        "UpdateClassRequest": {
            "type": "object",
            "properties": {
                "class_name": {"type": "string"},
                "venue": {"type": "string"}
            }
        },
        "CreateCourseRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "code": {"type": "string"}
            },
            "required": ["name", "code"]
        },
        "AssignLectureRequest": {
            "type": "object",
            "properties": {
                "report_id": {"type": "integer"}
            },
            "required": ["report_id"]
        },
        "UpdateLectureRequest": {
            "type": "object",
            "properties": {
                "date_of_lecture": {"type": "string", "format": "date"}
            },
            "required": ["date_of_lecture"]
        },
        "CreateRatingRequest": {
            "type": "object",
            "properties": {
                "target_id": {"type": "integer"},
                "rating": {"type": "integer", "minimum": 1, "maximum": 5},
                "comment": {"type": "string"}
            },
            "required": ["target_id", "rating"]
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
