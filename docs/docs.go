// Package docs holds the OpenAPI document served under /swagger.
// Regenerate with: swag init -g cmd/api/main.go
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
	"schemes": {{ marshal .Schemes }},
	"swagger": "2.0",
	"info": {
		"description": "{{escape .Description}}",
		"title": "{{.Title}}",
		"contact": {},
		"license": {
			"name": "MIT",
			"url": "https://opensource.org/licenses/MIT"
		},
		"version": "{{.Version}}"
	},
	"host": "{{.Host}}",
	"basePath": "{{.BasePath}}",
	"paths": {
		"/health": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"health"
				],
				"summary": "Health check",
				"description": "Always 200 while the process serves requests; services lists dependency state.",
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/dto.HealthResponse"
						}
					}
				}
			}
		},
		"/validate": {
			"post": {
				"produces": [
					"application/json"
				],
				"tags": [
					"canvas"
				],
				"summary": "Validate Canvas credentials",
				"description": "Checks the token against /api/v1/users/self and returns the profile behind it",
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"description": "Canvas credentials",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/dto.CredentialsRequest"
						}
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/dto.ValidateResponse"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					},
					"504": {
						"description": "Gateway Timeout",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					}
				}
			}
		},
		"/validate/permissions": {
			"post": {
				"produces": [
					"application/json"
				],
				"tags": [
					"canvas"
				],
				"summary": "Diagnose Canvas API permissions",
				"description": "Reads one item from each API area (profile, courses and, with courseId, files, assignments, modules, users, enrollments) and reports which are accessible, with remediation steps",
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"description": "Canvas credentials and optional course",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/dto.PermissionsRequest"
						}
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/dto.PermissionsResponse"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					},
					"504": {
						"description": "Gateway Timeout",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					}
				}
			}
		},
		"/courses": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"canvas"
				],
				"summary": "List active courses",
				"parameters": [
					{
						"type": "string",
						"description": "Canvas base URL (or X-Canvas-Base-Url header)",
						"name": "baseUrl",
						"in": "query"
					},
					{
						"type": "string",
						"description": "Canvas API token (or Authorization: Bearer header)",
						"name": "apiToken",
						"in": "query"
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/dto.CoursesResponse"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					},
					"403": {
						"description": "Forbidden",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					}
				}
			}
		},
		"/files": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"canvas"
				],
				"summary": "List the files of a course",
				"parameters": [
					{
						"type": "string",
						"description": "Canvas base URL (or X-Canvas-Base-Url header)",
						"name": "baseUrl",
						"in": "query"
					},
					{
						"type": "string",
						"description": "Canvas API token (or Authorization: Bearer header)",
						"name": "apiToken",
						"in": "query"
					},
					{
						"type": "string",
						"description": "Course ID",
						"name": "courseId",
						"in": "query",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/dto.FilesResponse"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					},
					"403": {
						"description": "Forbidden",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					}
				}
			}
		},
		"/assignments": {
			"post": {
				"produces": [
					"application/json"
				],
				"tags": [
					"canvas"
				],
				"summary": "List the assignments of a course",
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"description": "Credentials and course",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/dto.CourseRequest"
						}
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"allOf": [
								{
									"$ref": "#/definitions/dto.DataResponse"
								},
								{
									"type": "object",
									"properties": {
										"data": {
											"type": "array",
											"items": {
												"$ref": "#/definitions/domain.Assignment"
											}
										}
									}
								}
							]
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					},
					"403": {
						"description": "Forbidden",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					}
				}
			}
		},
		"/modules": {
			"post": {
				"produces": [
					"application/json"
				],
				"tags": [
					"canvas"
				],
				"summary": "List the modules of a course with their items",
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"description": "Credentials and course",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/dto.CourseRequest"
						}
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"allOf": [
								{
									"$ref": "#/definitions/dto.DataResponse"
								},
								{
									"type": "object",
									"properties": {
										"data": {
											"type": "array",
											"items": {
												"$ref": "#/definitions/domain.Module"
											}
										}
									}
								}
							]
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					},
					"403": {
						"description": "Forbidden",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					}
				}
			}
		},
		"/extract-text": {
			"post": {
				"produces": [
					"application/json"
				],
				"tags": [
					"extraction"
				],
				"summary": "Extract the text of a Canvas file",
				"description": "Downloads the file and extracts its text. Results are cached per file version when Redis is configured.",
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"description": "Credentials and file",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/dto.ExtractTextRequest"
						}
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/dto.ExtractTextResponse"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					},
					"415": {
						"description": "Unsupported Media Type",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					},
					"422": {
						"description": "Unprocessable Entity",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					},
					"502": {
						"description": "Bad Gateway",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					}
				}
			}
		},
		"/extract-text/batch": {
			"post": {
				"produces": [
					"application/json"
				],
				"tags": [
					"extraction"
				],
				"summary": "Extract the text of several Canvas files",
				"description": "Files are processed concurrently; each result reports its own success or error.",
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"description": "Credentials and file ids",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/dto.BatchExtractRequest"
						}
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/dto.BatchExtractResponse"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					}
				}
			}
		},
		"/extract-text/local": {
			"post": {
				"produces": [
					"application/json"
				],
				"tags": [
					"extraction"
				],
				"summary": "Extract the text of a downloaded file",
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"description": "Local file id from GET /files/downloaded",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/dto.LocalExtractRequest"
						}
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/dto.ExtractTextResponse"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					},
					"415": {
						"description": "Unsupported Media Type",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					},
					"422": {
						"description": "Unprocessable Entity",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					}
				}
			}
		},
		"/extract-text/youtube": {
			"post": {
				"produces": [
					"application/json"
				],
				"tags": [
					"extraction"
				],
				"summary": "Extract the transcript of a YouTube video",
				"description": "Runs the extraction worker on the video URL. Transcripts are cached per video when Redis is configured.",
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"description": "YouTube video URL",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/dto.VideoExtractRequest"
						}
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/dto.ExtractTextResponse"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					},
					"415": {
						"description": "Unsupported Media Type",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					},
					"422": {
						"description": "Unprocessable Entity",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					},
					"504": {
						"description": "Gateway Timeout",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					}
				}
			}
		},
		"/files/downloaded": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"files"
				],
				"summary": "List downloaded files",
				"description": "Scans the configured download roots. Top-level folders are courses.",
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/dto.FilesResponse"
						}
					},
					"500": {
						"description": "Internal Server Error",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					}
				}
			}
		},
		"/files/download": {
			"post": {
				"produces": [
					"application/json"
				],
				"tags": [
					"files"
				],
				"summary": "Download a Canvas file into the local cache",
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"description": "Credentials, file and optional course folder",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/dto.DownloadRequest"
						}
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/dto.DownloadResponse"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					},
					"502": {
						"description": "Bad Gateway",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					}
				}
			}
		},
		"/ai/generate-notes": {
			"post": {
				"produces": [
					"application/json"
				],
				"tags": [
					"ai"
				],
				"summary": "Generate study notes from text",
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"description": "Extracted text and optional file and course names",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/dto.GenerateNotesRequest"
						}
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/dto.NotesResponse"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					},
					"429": {
						"description": "Too Many Requests",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					},
					"502": {
						"description": "Bad Gateway",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					},
					"503": {
						"description": "Service Unavailable",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					}
				}
			}
		},
		"/ai/answer-question": {
			"post": {
				"produces": [
					"application/json"
				],
				"tags": [
					"ai"
				],
				"summary": "Answer a question about course material",
				"description": "Without context the model answers from general knowledge and says so.",
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"description": "Question and optional context",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/dto.AnswerQuestionRequest"
						}
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/dto.AnswerResponse"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					},
					"429": {
						"description": "Too Many Requests",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					},
					"502": {
						"description": "Bad Gateway",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					},
					"503": {
						"description": "Service Unavailable",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					}
				}
			}
		},
		"/notes": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"notes"
				],
				"summary": "List archived notes",
				"description": "Newest first.",
				"parameters": [
					{
						"type": "string",
						"description": "Filter by course ID",
						"name": "courseId",
						"in": "query"
					},
					{
						"type": "integer",
						"description": "Page number (default: 1)",
						"name": "page",
						"in": "query"
					},
					{
						"type": "integer",
						"description": "Page size (default: 10, max: 100)",
						"name": "size",
						"in": "query"
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/dto.NoteListResponse"
						}
					},
					"500": {
						"description": "Internal Server Error",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					}
				}
			},
			"post": {
				"produces": [
					"application/json"
				],
				"tags": [
					"notes"
				],
				"summary": "Archive a note",
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"description": "Note",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/dto.CreateNoteRequest"
						}
					}
				],
				"responses": {
					"201": {
						"description": "Created",
						"schema": {
							"$ref": "#/definitions/dto.NoteResponse"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					}
				}
			},
			"delete": {
				"produces": [
					"application/json"
				],
				"tags": [
					"notes"
				],
				"summary": "Remove every archived note",
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/dto.ClearNotesResponse"
						}
					},
					"500": {
						"description": "Internal Server Error",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					}
				}
			}
		}
	},
	"definitions": {
		"domain.User": {
			"type": "object",
			"properties": {
				"id": {
					"type": "integer"
				},
				"name": {
					"type": "string"
				},
				"email": {
					"type": "string"
				}
			}
		},
		"domain.Course": {
			"type": "object",
			"properties": {
				"id": {
					"type": "integer"
				},
				"name": {
					"type": "string"
				},
				"code": {
					"type": "string"
				},
				"term": {
					"type": "string"
				},
				"startAt": {
					"type": "string"
				},
				"endAt": {
					"type": "string"
				},
				"color": {
					"type": "string"
				}
			}
		},
		"domain.Assignment": {
			"type": "object",
			"properties": {
				"id": {
					"type": "integer"
				},
				"name": {
					"type": "string"
				},
				"description": {
					"type": "string"
				},
				"dueAt": {
					"type": "string"
				},
				"pointsPossible": {
					"type": "number"
				},
				"htmlUrl": {
					"type": "string"
				},
				"submissionTypes": {
					"type": "array",
					"items": {
						"type": "string"
					}
				}
			}
		},
		"domain.ModuleItem": {
			"type": "object",
			"properties": {
				"id": {
					"type": "integer"
				},
				"title": {
					"type": "string"
				},
				"type": {
					"type": "string"
				},
				"contentId": {
					"type": "integer"
				}
			}
		},
		"domain.Module": {
			"type": "object",
			"properties": {
				"id": {
					"type": "integer"
				},
				"name": {
					"type": "string"
				},
				"position": {
					"type": "integer"
				},
				"state": {
					"type": "string"
				},
				"itemsCount": {
					"type": "integer"
				},
				"items": {
					"type": "array",
					"items": {
						"$ref": "#/definitions/domain.ModuleItem"
					}
				}
			}
		},
		"domain.FileRecord": {
			"type": "object",
			"properties": {
				"id": {
					"type": "string"
				},
				"name": {
					"type": "string"
				},
				"filename": {
					"type": "string"
				},
				"mimeType": {
					"type": "string"
				},
				"size": {
					"type": "integer"
				},
				"createdAt": {
					"type": "string"
				},
				"modified": {
					"type": "string"
				},
				"url": {
					"type": "string"
				},
				"path": {
					"type": "string"
				},
				"course": {
					"type": "string"
				},
				"source": {
					"type": "string"
				}
			}
		},
		"domain.PermissionCheck": {
			"type": "object",
			"properties": {
				"scope": {
					"type": "string",
					"example": "Files"
				},
				"endpoint": {
					"type": "string",
					"example": "/api/v1/courses/1234/files"
				},
				"ok": {
					"type": "boolean"
				},
				"status": {
					"type": "integer",
					"example": 403
				},
				"errorType": {
					"type": "string",
					"example": "permission_denied"
				},
				"error": {
					"type": "string"
				},
				"suggestion": {
					"type": "string"
				}
			}
		},
		"domain.Recommendation": {
			"type": "object",
			"properties": {
				"priority": {
					"type": "string",
					"example": "high"
				},
				"issue": {
					"type": "string",
					"example": "Files access forbidden"
				},
				"solution": {
					"type": "string"
				},
				"steps": {
					"type": "array",
					"items": {
						"type": "string"
					}
				}
			}
		},
		"domain.PermissionReport": {
			"type": "object",
			"properties": {
				"authenticated": {
					"type": "boolean"
				},
				"courseId": {
					"type": "string"
				},
				"checks": {
					"type": "array",
					"items": {
						"$ref": "#/definitions/domain.PermissionCheck"
					}
				},
				"recommendations": {
					"type": "array",
					"items": {
						"$ref": "#/definitions/domain.Recommendation"
					}
				}
			}
		},
		"domain.GeneratedNote": {
			"type": "object",
			"properties": {
				"id": {
					"type": "string"
				},
				"fileName": {
					"type": "string"
				},
				"courseId": {
					"type": "string"
				},
				"courseName": {
					"type": "string"
				},
				"content": {
					"type": "string"
				},
				"summary": {
					"type": "string"
				},
				"keyPoints": {
					"type": "array",
					"items": {
						"type": "string"
					}
				},
				"questions": {
					"type": "array",
					"items": {
						"type": "string"
					}
				},
				"createdAt": {
					"type": "string"
				}
			}
		},
		"dto.ErrorResponse": {
			"type": "object",
			"properties": {
				"success": {
					"type": "boolean",
					"example": false
				},
				"error": {
					"type": "string",
					"example": "canvas API token is required"
				},
				"error_type": {
					"type": "string",
					"example": "configuration"
				},
				"suggestion": {
					"type": "string"
				},
				"details": {
					"type": "string"
				}
			}
		},
		"dto.PaginationInfo": {
			"type": "object",
			"properties": {
				"currentPage": {
					"type": "integer"
				},
				"totalPages": {
					"type": "integer"
				},
				"pageSize": {
					"type": "integer"
				},
				"totalItems": {
					"type": "integer"
				}
			}
		},
		"dto.HealthResponse": {
			"type": "object",
			"properties": {
				"status": {
					"type": "string",
					"example": "OK"
				},
				"timestamp": {
					"type": "string"
				},
				"services": {
					"type": "object",
					"additionalProperties": {
						"type": "string"
					}
				}
			}
		},
		"dto.CredentialsRequest": {
			"type": "object",
			"properties": {
				"baseUrl": {
					"type": "string",
					"example": "https://school.instructure.com"
				},
				"apiToken": {
					"type": "string",
					"example": "1234~abcd"
				}
			}
		},
		"dto.CourseRequest": {
			"type": "object",
			"required": [
				"courseId"
			],
			"properties": {
				"baseUrl": {
					"type": "string",
					"example": "https://school.instructure.com"
				},
				"apiToken": {
					"type": "string",
					"example": "1234~abcd"
				},
				"courseId": {
					"type": "string",
					"example": "1234"
				}
			}
		},
		"dto.ExtractTextRequest": {
			"type": "object",
			"required": [
				"fileId"
			],
			"properties": {
				"baseUrl": {
					"type": "string",
					"example": "https://school.instructure.com"
				},
				"apiToken": {
					"type": "string",
					"example": "1234~abcd"
				},
				"fileId": {
					"type": "string",
					"example": "98765"
				}
			}
		},
		"dto.BatchExtractRequest": {
			"type": "object",
			"required": [
				"fileIds"
			],
			"properties": {
				"baseUrl": {
					"type": "string",
					"example": "https://school.instructure.com"
				},
				"apiToken": {
					"type": "string",
					"example": "1234~abcd"
				},
				"fileIds": {
					"type": "array",
					"items": {
						"type": "string"
					},
					"maxItems": 50,
					"minItems": 1
				}
			}
		},
		"dto.LocalExtractRequest": {
			"type": "object",
			"required": [
				"fileId"
			],
			"properties": {
				"fileId": {
					"type": "string",
					"example": "3f2c9a1b0d4e5f60718293a4b5c6d7e8"
				}
			}
		},
		"dto.PermissionsRequest": {
			"type": "object",
			"properties": {
				"baseUrl": {
					"type": "string",
					"example": "https://canvas.example.edu"
				},
				"apiToken": {
					"type": "string",
					"example": "7~abcdef"
				},
				"courseId": {
					"type": "string",
					"maxLength": 64,
					"example": "1234"
				}
			}
		},
		"dto.VideoExtractRequest": {
			"type": "object",
			"required": [
				"url"
			],
			"properties": {
				"url": {
					"type": "string",
					"example": "https://www.youtube.com/watch?v=dQw4w9WgXcQ"
				}
			}
		},
		"dto.DownloadRequest": {
			"type": "object",
			"required": [
				"fileId"
			],
			"properties": {
				"baseUrl": {
					"type": "string",
					"example": "https://school.instructure.com"
				},
				"apiToken": {
					"type": "string",
					"example": "1234~abcd"
				},
				"fileId": {
					"type": "string",
					"example": "98765"
				},
				"courseName": {
					"type": "string",
					"maxLength": 200,
					"example": "Biology 101"
				}
			}
		},
		"dto.GenerateNotesRequest": {
			"type": "object",
			"properties": {
				"text": {
					"type": "string"
				},
				"filename": {
					"type": "string"
				},
				"courseTitle": {
					"type": "string"
				},
				"courseId": {
					"type": "string"
				},
				"save": {
					"type": "boolean"
				}
			}
		},
		"dto.AnswerQuestionRequest": {
			"type": "object",
			"properties": {
				"question": {
					"type": "string"
				},
				"context": {
					"type": "string"
				},
				"courseTitle": {
					"type": "string"
				}
			}
		},
		"dto.CreateNoteRequest": {
			"type": "object",
			"required": [
				"content"
			],
			"properties": {
				"fileName": {
					"type": "string",
					"maxLength": 512
				},
				"courseId": {
					"type": "string",
					"maxLength": 64
				},
				"courseName": {
					"type": "string",
					"maxLength": 512
				},
				"content": {
					"type": "string"
				},
				"summary": {
					"type": "string"
				},
				"keyPoints": {
					"type": "array",
					"items": {
						"type": "string"
					}
				},
				"questions": {
					"type": "array",
					"items": {
						"type": "string"
					}
				}
			}
		},
		"dto.ValidateResponse": {
			"type": "object",
			"properties": {
				"success": {
					"type": "boolean"
				},
				"user": {
					"$ref": "#/definitions/domain.User"
				}
			}
		},
		"dto.PermissionsResponse": {
			"type": "object",
			"properties": {
				"success": {
					"type": "boolean",
					"example": true
				},
				"report": {
					"$ref": "#/definitions/domain.PermissionReport"
				}
			}
		},
		"dto.CoursesResponse": {
			"type": "object",
			"properties": {
				"success": {
					"type": "boolean"
				},
				"courses": {
					"type": "array",
					"items": {
						"$ref": "#/definitions/domain.Course"
					}
				}
			}
		},
		"dto.FilesResponse": {
			"type": "object",
			"properties": {
				"success": {
					"type": "boolean"
				},
				"files": {
					"type": "array",
					"items": {
						"$ref": "#/definitions/domain.FileRecord"
					}
				}
			}
		},
		"dto.DataResponse": {
			"type": "object",
			"properties": {
				"success": {
					"type": "boolean"
				},
				"data": {}
			}
		},
		"dto.ExtractTextResponse": {
			"type": "object",
			"properties": {
				"success": {
					"type": "boolean"
				},
				"text": {
					"type": "string"
				},
				"filename": {
					"type": "string"
				},
				"contentType": {
					"type": "string"
				},
				"extractionMethod": {
					"type": "string"
				},
				"pageCount": {
					"type": "integer"
				},
				"sectionCount": {
					"type": "integer"
				},
				"cached": {
					"type": "boolean"
				}
			}
		},
		"dto.BatchItemResult": {
			"type": "object",
			"properties": {
				"fileId": {
					"type": "string"
				},
				"success": {
					"type": "boolean"
				},
				"filename": {
					"type": "string"
				},
				"contentType": {
					"type": "string"
				},
				"text": {
					"type": "string"
				},
				"error": {
					"type": "string"
				},
				"error_type": {
					"type": "string"
				},
				"suggestion": {
					"type": "string"
				}
			}
		},
		"dto.BatchExtractResponse": {
			"type": "object",
			"properties": {
				"success": {
					"type": "boolean"
				},
				"succeeded": {
					"type": "integer"
				},
				"failed": {
					"type": "integer"
				},
				"results": {
					"type": "array",
					"items": {
						"$ref": "#/definitions/dto.BatchItemResult"
					}
				}
			}
		},
		"dto.DownloadResponse": {
			"type": "object",
			"properties": {
				"success": {
					"type": "boolean"
				},
				"file": {
					"$ref": "#/definitions/domain.FileRecord"
				},
				"skipped": {
					"type": "boolean"
				}
			}
		},
		"dto.GenerationMetadata": {
			"type": "object",
			"properties": {
				"model": {
					"type": "string"
				},
				"filename": {
					"type": "string"
				},
				"courseTitle": {
					"type": "string"
				},
				"inputChars": {
					"type": "integer"
				},
				"truncated": {
					"type": "boolean"
				},
				"promptTokens": {
					"type": "integer"
				},
				"completionTokens": {
					"type": "integer"
				},
				"generatedAt": {
					"type": "string"
				},
				"noteId": {
					"type": "string"
				}
			}
		},
		"dto.NotesResponse": {
			"type": "object",
			"properties": {
				"success": {
					"type": "boolean"
				},
				"notes": {
					"type": "string"
				},
				"metadata": {
					"$ref": "#/definitions/dto.GenerationMetadata"
				}
			}
		},
		"dto.AnswerResponse": {
			"type": "object",
			"properties": {
				"success": {
					"type": "boolean"
				},
				"answer": {
					"type": "string"
				},
				"metadata": {
					"$ref": "#/definitions/dto.GenerationMetadata"
				}
			}
		},
		"dto.NoteResponse": {
			"type": "object",
			"properties": {
				"success": {
					"type": "boolean"
				},
				"note": {
					"$ref": "#/definitions/domain.GeneratedNote"
				}
			}
		},
		"dto.NoteListResponse": {
			"type": "object",
			"properties": {
				"success": {
					"type": "boolean"
				},
				"notes": {
					"type": "array",
					"items": {
						"$ref": "#/definitions/domain.GeneratedNote"
					}
				},
				"pagination": {
					"$ref": "#/definitions/dto.PaginationInfo"
				}
			}
		},
		"dto.ClearNotesResponse": {
			"type": "object",
			"properties": {
				"success": {
					"type": "boolean"
				},
				"deleted": {
					"type": "integer"
				}
			}
		}
	},
	"securityDefinitions": {
		"CanvasToken": {
			"description": "Canvas API token, as an alternative to the apiToken field",
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
	Schemes:          []string{"http", "https"},
	Title:            "Canvas Study Assistant API",
	Description:      "Reads Canvas LMS courses and files, extracts their text and turns it into study notes and answers.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
