// Package docs holds the Swagger 2.0 description of the development API and
// registers it with swag so echo-swagger can serve it. It mirrors the
// annotations on the handlers in package handler.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "paths": {
        "/auth/register": {
            "post": {
                "tags": ["auth"], "summary": "Register a user account",
                "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/domain.RegisterRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/domain.AuthResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.ErrorBody"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/handler.MessageBody"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/handler.MessageBody"}}
                }
            }
        },
        "/auth/login": {
            "post": {
                "tags": ["auth"], "summary": "Login",
                "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/domain.LoginRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.AuthResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.MessageBody"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/handler.MessageBody"}}
                }
            }
        },
        "/auth/admin/login": {
            "post": {
                "tags": ["auth"], "summary": "Administrator login",
                "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/domain.LoginRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.AuthResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.MessageBody"}}
                }
            }
        },
        "/books": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["books"], "summary": "List approved listings", "produces": ["application/json"],
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/domain.BookDetail"}}}}
            }
        },
        "/books/search": {
            "get": {
                "tags": ["books"], "summary": "Search approved listings", "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "description": "Title substring", "name": "title", "in": "query"},
                    {"type": "string", "description": "Author substring", "name": "author", "in": "query"},
                    {"type": "string", "description": "Province", "name": "province", "in": "query"},
                    {"type": "string", "description": "District", "name": "district", "in": "query"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/domain.BookDetail"}}}}
            }
        },
        "/books/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["books"], "summary": "Get a listing by book ID", "produces": ["application/json"],
                "parameters": [{"type": "integer", "description": "Book ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.BookDetail"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.MessageBody"}}
                }
            }
        },
        "/categories": {
            "get": {
                "tags": ["categories"], "summary": "List categories", "produces": ["application/json"],
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/domain.Category"}}}}
            }
        },
        "/posts": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["posts"], "summary": "Create a listing",
                "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/domain.CreatePostRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/domain.Post"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.ErrorBody"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/handler.MessageBody"}}
                }
            }
        },
        "/my-posts": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["posts"], "summary": "List the caller's listings", "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/domain.Post"}}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.ErrorBody"}}
                }
            }
        },
        "/my-posts/{id}": {
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["posts"], "summary": "Delete one of the caller's listings",
                "parameters": [{"type": "integer", "description": "Post ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "204": {"description": "No Content"},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/handler.MessageBody"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.MessageBody"}}
                }
            }
        },
        "/images/upload": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["images"], "summary": "Upload a listing image",
                "consumes": ["multipart/form-data"], "produces": ["application/json"],
                "parameters": [{"type": "file", "description": "Image, at most 5MB", "name": "file", "in": "formData", "required": true}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/domain.ImageUpload"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.MessageBody"}}
                }
            }
        },
        "/admin/posts/{id}/status": {
            "put": {
                "security": [{"BearerAuth": []}],
                "tags": ["admin"], "summary": "Change a listing's moderation status",
                "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [
                    {"type": "integer", "description": "Post ID", "name": "id", "in": "path", "required": true},
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/domain.StatusRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.Post"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.MessageBody"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/handler.ErrorBody"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.MessageBody"}}
                }
            }
        },
        "/admin/categories/{id}": {
            "put": {
                "security": [{"BearerAuth": []}],
                "tags": ["admin"], "summary": "Rename a category",
                "consumes": ["application/json"], "produces": ["text/plain"],
                "parameters": [
                    {"type": "integer", "description": "Category ID", "name": "id", "in": "path", "required": true},
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/domain.CategoryRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "string"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/handler.MessageBody"}}
                }
            }
        }
    },
    "definitions": {
        "domain.RegisterRequest": {
            "type": "object", "required": ["email", "name", "password"],
            "properties": {
                "name": {"type": "string", "maxLength": 100},
                "email": {"type": "string"},
                "password": {"type": "string", "minLength": 6},
                "phone": {"type": "string", "maxLength": 15},
                "province": {"type": "string"},
                "district": {"type": "string"},
                "ward": {"type": "string"}
            }
        },
        "domain.LoginRequest": {
            "type": "object", "required": ["email", "password"],
            "properties": {"email": {"type": "string"}, "password": {"type": "string"}}
        },
        "domain.AuthResponse": {
            "type": "object",
            "properties": {
                "token": {"type": "string"},
                "type": {"type": "string", "example": "Bearer"},
                "userID": {"type": "integer"},
                "name": {"type": "string"},
                "email": {"type": "string"},
                "role": {"type": "string", "example": "USER"}
            }
        },
        "domain.BookDetail": {
            "type": "object",
            "properties": {
                "bookID": {"type": "integer"},
                "title": {"type": "string"},
                "author": {"type": "string"},
                "bookCondition": {"type": "string"},
                "price": {"type": "number"},
                "description": {"type": "string"},
                "image": {"type": "string"},
                "contactInfo": {"type": "string"},
                "province": {"type": "string"},
                "district": {"type": "string"},
                "createdAt": {"type": "string", "format": "date-time"},
                "postID": {"type": "integer"},
                "postDescription": {"type": "string"},
                "postStatus": {"type": "string"},
                "userID": {"type": "integer"},
                "userName": {"type": "string"},
                "categoryID": {"type": "integer"},
                "categoryName": {"type": "string"}
            }
        },
        "domain.Post": {
            "type": "object",
            "properties": {
                "postID": {"type": "integer"},
                "bookID": {"type": "integer"},
                "title": {"type": "string"},
                "author": {"type": "string"},
                "price": {"type": "number"},
                "image": {"type": "string"},
                "province": {"type": "string"},
                "district": {"type": "string"},
                "postStatus": {"type": "string", "enum": ["APPROVED", "PENDING", "DECLINED", "SOLD"]},
                "createdAt": {"type": "string", "format": "date-time"}
            }
        },
        "domain.CreatePostRequest": {
            "type": "object", "required": ["bookCondition", "categoryID", "contactInfo", "postDescription", "price", "title"],
            "properties": {
                "title": {"type": "string"},
                "author": {"type": "string"},
                "bookCondition": {"type": "string"},
                "price": {"type": "number"},
                "postDescription": {"type": "string"},
                "image": {"type": "string"},
                "contactInfo": {"type": "string"},
                "categoryID": {"type": "integer"},
                "province": {"type": "string"},
                "district": {"type": "string"}
            }
        },
        "domain.Category": {
            "type": "object",
            "properties": {"categoryID": {"type": "integer"}, "categoryName": {"type": "string"}, "bookCount": {"type": "integer"}}
        },
        "domain.CategoryRequest": {
            "type": "object", "required": ["categoryName"],
            "properties": {"categoryName": {"type": "string"}}
        },
        "domain.StatusRequest": {
            "type": "object", "required": ["status"],
            "properties": {"status": {"type": "string"}}
        },
        "domain.ImageUpload": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "fileName": {"type": "string"},
                "fileUrl": {"type": "string"},
                "fileSize": {"type": "integer"},
                "fileType": {"type": "string"},
                "message": {"type": "string"}
            }
        },
        "handler.ErrorBody": {
            "type": "object",
            "properties": {"error": {"type": "string", "example": "invalid token"}}
        },
        "handler.MessageBody": {
            "type": "object",
            "properties": {"message": {"type": "string", "example": "post not found"}}
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "sachcu development API",
	Description:      "In-memory emulator of the second-hand book marketplace API.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
