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
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "paths": {
        "/auth/register": {"post": {"tags": ["auth"], "summary": "Create an account", "responses": {"201": {"description": "token and user"}, "400": {"description": "validation failed"}, "409": {"description": "email taken"}}}},
        "/auth/login": {"post": {"tags": ["auth"], "summary": "Exchange credentials for a token", "responses": {"200": {"description": "token and user"}, "401": {"description": "invalid credentials"}}}},
        "/auth/profile": {
            "get": {"tags": ["auth"], "summary": "Current user", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "user"}}},
            "put": {"tags": ["auth"], "summary": "Update profile", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "user"}}}
        },
        "/auth/profile/resume": {"put": {"tags": ["auth"], "summary": "Upload profile resume (multipart field resume)", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "user"}}}},
        "/jobs": {
            "get": {"tags": ["jobs"], "summary": "Search active jobs", "responses": {"200": {"description": "jobs and pagination"}}},
            "post": {"tags": ["jobs"], "summary": "Post a job", "security": [{"BearerAuth": []}], "responses": {"201": {"description": "job"}}}
        },
        "/jobs/employer/my-jobs": {"get": {"tags": ["jobs"], "summary": "Jobs posted by the caller", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "jobs and pagination"}}}},
        "/jobs/{id}": {
            "get": {"tags": ["jobs"], "summary": "Job detail", "responses": {"200": {"description": "job"}, "404": {"description": "not found"}}},
            "put": {"tags": ["jobs"], "summary": "Update a job", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "job"}}},
            "delete": {"tags": ["jobs"], "summary": "Delete a job and its applications", "security": [{"BearerAuth": []}], "responses": {"204": {"description": "deleted"}}}
        },
        "/applications": {"post": {"tags": ["applications"], "summary": "Apply to a job", "security": [{"BearerAuth": []}], "responses": {"201": {"description": "application"}, "409": {"description": "already applied or job closed"}}}},
        "/applications/user/{userId}": {"get": {"tags": ["applications"], "summary": "Applications by applicant", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "applications and pagination"}}}},
        "/applications/job/{jobId}": {"get": {"tags": ["applications"], "summary": "Applications for a job", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "applications and pagination"}}}},
        "/applications/{id}": {"get": {"tags": ["applications"], "summary": "Application detail", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "application"}}}},
        "/applications/{id}/status": {"put": {"tags": ["applications"], "summary": "Move an application through the pipeline", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "application"}}}},
        "/files/resumes/{name}": {"get": {"tags": ["files"], "summary": "Download a resume", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "file"}}}},
        "/admin/stats": {"get": {"tags": ["admin"], "summary": "Platform totals", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "stats"}}}},
        "/admin/users": {"get": {"tags": ["admin"], "summary": "List users", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "users and pagination"}}}},
        "/admin/users/{id}": {"delete": {"tags": ["admin"], "summary": "Delete a user and everything they own", "security": [{"BearerAuth": []}], "responses": {"204": {"description": "deleted"}}}},
        "/admin/applications": {"get": {"tags": ["admin"], "summary": "List all applications", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "applications and pagination"}}}}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "Job Board API",
	Description:      "Job postings, applications and resumes.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
