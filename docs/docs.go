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
        "/categories": {
            "get": {
                "produces": ["application/json"],
                "tags": ["categories"],
                "summary": "List categories as an id to label map",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.CategoriesResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/categories/{id}/questions": {
            "get": {
                "produces": ["application/json"],
                "tags": ["categories"],
                "summary": "List the questions of a category",
                "parameters": [
                    {"type": "integer", "description": "Category ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.CategoryQuestionsResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/questions": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["questions"],
                "summary": "List questions, ten per page",
                "parameters": [
                    {"type": "integer", "description": "1-based page number", "name": "page", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.QuestionListResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handlers.AuthErrorResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "A body with searchTerm returns a SearchResponse instead.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["questions"],
                "summary": "Create a question, or search when searchTerm is given",
                "parameters": [
                    {"description": "Question data or search term", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.QuestionRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.CreatedResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handlers.AuthErrorResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/questions/export": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json", "text/csv"],
                "tags": ["questions"],
                "summary": "Export every question grouped by category",
                "parameters": [
                    {"type": "string", "description": "json (default) or csv", "name": "format", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/services.Bank"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handlers.AuthErrorResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/questions/import": {
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "Categories are matched by label and created when missing. The import is all or nothing.",
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["questions"],
                "summary": "Import questions from a JSON or CSV bank file",
                "parameters": [
                    {"type": "file", "description": "Bank file (.json or .csv)", "name": "file", "in": "formData", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.ImportResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handlers.AuthErrorResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/questions/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["questions"],
                "summary": "Get a question",
                "parameters": [
                    {"type": "integer", "description": "Question ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.QuestionResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handlers.AuthErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["questions"],
                "summary": "Delete a question",
                "parameters": [
                    {"type": "integer", "description": "Question ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.DeletedResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handlers.AuthErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            },
            "patch": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["questions"],
                "summary": "Replace a question",
                "parameters": [
                    {"type": "integer", "description": "Question ID", "name": "id", "in": "path", "required": true},
                    {"description": "Question data", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.QuestionRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.UpdatedResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handlers.AuthErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/quizzes": {
            "post": {
                "description": "Category id 0 draws from every category. question is null once the scope is exhausted.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["quizzes"],
                "summary": "Draw a random question not yet seen in this quiz",
                "parameters": [
                    {"description": "Quiz state", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.QuizRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.QuizResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/healthz": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Liveness probe",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.SuccessResponse"}}
                }
            }
        },
        "/readyz": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Readiness probe, checks the database",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.SuccessResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/add": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Placeholder backing the client's add-question form",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.SuccessResponse"}}
                }
            }
        }
    },
    "definitions": {
        "handlers.AuthErrorResponse": {
            "type": "object",
            "properties": {
                "code": {"type": "string", "example": "missing_permission"},
                "error": {"type": "integer", "example": 401},
                "message": {"type": "string", "example": "Permission not found."},
                "success": {"type": "boolean", "example": false}
            }
        },
        "handlers.CategoriesResponse": {
            "type": "object",
            "properties": {
                "categories": {"type": "object", "additionalProperties": {"type": "string"}},
                "success": {"type": "boolean", "example": true}
            }
        },
        "handlers.CategoryQuestionsResponse": {
            "type": "object",
            "properties": {
                "currentCategory": {"type": "integer", "example": 1},
                "questions": {"type": "array", "items": {"$ref": "#/definitions/models.Question"}},
                "success": {"type": "boolean", "example": true},
                "totalQuestions": {"type": "integer", "example": 3}
            }
        },
        "handlers.CreatedResponse": {
            "type": "object",
            "properties": {
                "created": {"type": "integer", "example": 24},
                "success": {"type": "boolean", "example": true}
            }
        },
        "handlers.DeletedResponse": {
            "type": "object",
            "properties": {
                "deleted": {"type": "integer", "example": 24},
                "success": {"type": "boolean", "example": true}
            }
        },
        "handlers.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "integer", "example": 422},
                "message": {"type": "string", "example": "Unprocessable Entity"},
                "success": {"type": "boolean", "example": false}
            }
        },
        "handlers.ImportResponse": {
            "type": "object",
            "properties": {
                "imported": {"type": "integer", "example": 12},
                "success": {"type": "boolean", "example": true}
            }
        },
        "handlers.QuestionListResponse": {
            "type": "object",
            "properties": {
                "categories": {"type": "object", "additionalProperties": {"type": "string"}},
                "questions": {"type": "array", "items": {"$ref": "#/definitions/models.Question"}},
                "success": {"type": "boolean", "example": true},
                "totalQuestions": {"type": "integer", "example": 19}
            }
        },
        "handlers.QuestionRequest": {
            "type": "object",
            "properties": {
                "answer": {"type": "string", "example": "Jupiter"},
                "category": {"type": "integer", "example": 1},
                "difficulty": {"type": "integer", "example": 2},
                "question": {"type": "string", "example": "What is the largest planet?"},
                "searchTerm": {"type": "string", "example": "planet"}
            }
        },
        "handlers.QuestionResponse": {
            "type": "object",
            "properties": {
                "question": {"$ref": "#/definitions/models.Question"},
                "success": {"type": "boolean", "example": true}
            }
        },
        "handlers.QuizCategory": {
            "type": "object",
            "properties": {
                "id": {"type": "integer", "example": 0},
                "type": {"type": "string", "example": "click"}
            }
        },
        "handlers.QuizRequest": {
            "type": "object",
            "properties": {
                "previous_questions": {"type": "array", "items": {"type": "integer"}, "example": [4, 9]},
                "quiz_category": {"$ref": "#/definitions/handlers.QuizCategory"}
            }
        },
        "handlers.QuizResponse": {
            "type": "object",
            "properties": {
                "question": {"$ref": "#/definitions/models.Question"},
                "success": {"type": "boolean", "example": true}
            }
        },
        "handlers.SuccessResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean", "example": true}
            }
        },
        "handlers.UpdatedResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean", "example": true},
                "updated": {"type": "integer", "example": 24}
            }
        },
        "models.Question": {
            "type": "object",
            "properties": {
                "answer": {"type": "string"},
                "category": {"type": "integer"},
                "difficulty": {"type": "integer"},
                "id": {"type": "integer"},
                "question": {"type": "string"}
            }
        },
        "services.Bank": {
            "type": "object",
            "properties": {
                "categories": {"type": "array", "items": {"$ref": "#/definitions/services.BankCategory"}}
            }
        },
        "services.BankCategory": {
            "type": "object",
            "properties": {
                "questions": {"type": "array", "items": {"$ref": "#/definitions/services.BankQuestion"}},
                "type": {"type": "string"}
            }
        },
        "services.BankQuestion": {
            "type": "object",
            "properties": {
                "answer": {"type": "string"},
                "difficulty": {"type": "integer"},
                "question": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Enter \"Bearer {token}\"",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Trivia API",
	Description:      "Trivia questions, categories and quizzes behind role-based bearer tokens",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
