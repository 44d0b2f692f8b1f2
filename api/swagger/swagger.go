package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Hostel Portal API",
        "description": "Gateway for the hostel registration, verification and allocation lifecycle",
        "version": "0.1.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Registration", "description": "Student application lifecycle"},
        {"name": "Documents", "description": "Document upload and verification"},
        {"name": "Allocation", "description": "Admin allocation runs and reports"},
        {"name": "Rooms", "description": "Room inventory"},
        {"name": "Notifications", "description": "Student notifications"}
    ],
    "paths": {
        "/registration/status": {
            "get": {
                "tags": ["Registration"],
                "summary": "Registration status with timeline",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/registration": {
            "post": {
                "tags": ["Registration"],
                "summary": "Submit a new hostel application",
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "put": {
                "tags": ["Registration"],
                "summary": "Amend an existing hostel application",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/students/profile": {
            "get": {
                "tags": ["Registration"],
                "summary": "Student profile",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "put": {
                "tags": ["Registration"],
                "summary": "Update student profile",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/documents": {
            "get": {
                "tags": ["Documents"],
                "summary": "Document checklist with upload state",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/documents/upload": {
            "post": {
                "tags": ["Documents"],
                "summary": "Upload a document into a category",
                "consumes": ["multipart/form-data"],
                "parameters": [
                    {"name": "category", "in": "formData", "required": true, "type": "string"},
                    {"name": "file", "in": "formData", "required": true, "type": "file"}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "File too large, wrong type or slot taken"}
                }
            }
        },
        "/documents/{id}": {
            "delete": {
                "tags": ["Documents"],
                "summary": "Remove an uploaded document",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "409": {"description": "Verified files cannot be removed"}
                }
            }
        },
        "/documents/{id}/download": {
            "get": {
                "tags": ["Documents"],
                "summary": "Download a stored document",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/documents/submit": {
            "post": {
                "tags": ["Documents"],
                "summary": "Submit all uploaded documents",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "412": {"description": "Not all required documents uploaded"}
                }
            }
        },
        "/documents/edit": {
            "post": {
                "tags": ["Documents"],
                "summary": "Reopen the checklist for editing",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/rooms": {
            "get": {
                "tags": ["Rooms"],
                "summary": "List hostel rooms",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/rooms/blocks": {
            "get": {
                "tags": ["Rooms"],
                "summary": "List hostel blocks with capacity summaries",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/notifications": {
            "get": {
                "tags": ["Notifications"],
                "summary": "List notifications",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/notifications/{id}/read": {
            "patch": {
                "tags": ["Notifications"],
                "summary": "Mark one notification as read",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/notifications/read-all": {
            "patch": {
                "tags": ["Notifications"],
                "summary": "Mark every notification as read",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/notifications/{id}": {
            "delete": {
                "tags": ["Notifications"],
                "summary": "Delete a notification",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/admin/registrations": {
            "get": {
                "tags": ["Registration"],
                "summary": "Admin overview of all registrations",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/admin/documents/pending": {
            "get": {
                "tags": ["Documents"],
                "summary": "Queue of students with documents awaiting review",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/admin/documents/verify/{studentId}": {
            "patch": {
                "tags": ["Documents"],
                "summary": "Record a verification verdict",
                "parameters": [
                    {"name": "studentId", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/VerifyRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/admin/allocation": {
            "get": {
                "tags": ["Allocation"],
                "summary": "Allocation page state: status, last result, pre-check",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/admin/allocation/start": {
            "post": {
                "tags": ["Allocation"],
                "summary": "Trigger a new allocation run",
                "responses": {
                    "202": {"description": "Accepted"},
                    "409": {"description": "A run is already in progress"},
                    "412": {"description": "No approved students awaiting allocation"}
                }
            }
        },
        "/admin/allocation/status": {
            "get": {
                "tags": ["Allocation"],
                "summary": "Current allocation run status",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/admin/allocation/reports/{id}": {
            "get": {
                "tags": ["Allocation"],
                "summary": "Download the allocation report",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "format", "in": "query", "required": true, "type": "string", "enum": ["csv", "pdf"]}
                ],
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/admin/rooms": {
            "post": {
                "tags": ["Rooms"],
                "summary": "Register a new room",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateRoomRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/admin/rooms/{id}": {
            "patch": {
                "tags": ["Rooms"],
                "summary": "Patch room attributes",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateRoomRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Rooms"],
                "summary": "Remove a room",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        }
    },
    "definitions": {
        "TimelineStep": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "title": {"type": "string"},
                "state": {"type": "string", "enum": ["completed", "current", "pending", "rejected"]},
                "description": {"type": "string"},
                "completed_at": {"type": "string"}
            }
        },
        "RegistrationRecord": {
            "type": "object",
            "properties": {
                "application_id": {"type": "string"},
                "status": {"type": "string", "enum": ["NOT_SUBMITTED", "SUBMITTED", "APPROVED", "REJECTED"]},
                "submitted_at": {"type": "string"},
                "updated_at": {"type": "string"},
                "rejection_reason": {"type": "string"},
                "room_id": {"type": "string"}
            }
        },
        "VerifyRequest": {
            "type": "object",
            "properties": {
                "document_id": {"type": "string"},
                "status": {"type": "string", "enum": ["verified", "rejected"]},
                "reason": {"type": "string"}
            },
            "required": ["document_id", "status"]
        },
        "CreateRoomRequest": {
            "type": "object",
            "properties": {
                "block": {"type": "string"},
                "room_number": {"type": "string"},
                "capacity": {"type": "integer"},
                "gender": {"type": "string"}
            },
            "required": ["block", "room_number", "capacity"]
        },
        "UpdateRoomRequest": {
            "type": "object",
            "properties": {
                "block": {"type": "string"},
                "room_number": {"type": "string"},
                "capacity": {"type": "integer"},
                "gender": {"type": "string"},
                "active": {"type": "boolean"}
            }
        },
        "Pagination": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "page_size": {"type": "integer"},
                "total_count": {"type": "integer"}
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
