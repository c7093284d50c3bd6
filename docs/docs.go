// Package docs registra o documento OpenAPI servido em /swagger/doc.json.
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
    "paths": {
        "/authors": {
            "get": {
                "produces": ["application/json"],
                "tags": ["authors"],
                "summary": "Lista todos os autores",
                "responses": {
                    "200": {"description": "Lista de autores", "schema": {"type": "array", "items": {"$ref": "#/definitions/domain.Author"}}},
                    "500": {"description": "Erro interno do servidor", "schema": {"$ref": "#/definitions/domain.ErrorResponse"}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["authors"],
                "summary": "Cria um novo autor",
                "parameters": [{"name": "author", "in": "body", "required": true, "schema": {"$ref": "#/definitions/domain.AuthorInput"}}],
                "responses": {
                    "201": {"description": "Autor criado com sucesso", "schema": {"$ref": "#/definitions/domain.Author"}},
                    "400": {"description": "Payload inválido ou nome duplicado", "schema": {"$ref": "#/definitions/domain.ErrorResponse"}},
                    "500": {"description": "Erro interno do servidor", "schema": {"$ref": "#/definitions/domain.ErrorResponse"}}
                }
            }
        },
        "/authors/search": {
            "get": {
                "produces": ["application/json"],
                "tags": ["authors"],
                "summary": "Busca autores por parte do nome",
                "parameters": [{"type": "string", "name": "name", "in": "query"}],
                "responses": {
                    "200": {"description": "Autores encontrados", "schema": {"type": "array", "items": {"$ref": "#/definitions/domain.Author"}}}
                }
            }
        },
        "/authors/statistics": {
            "get": {
                "produces": ["application/json"],
                "tags": ["authors"],
                "summary": "Estatísticas do acervo por autor",
                "responses": {
                    "200": {"description": "Estatísticas", "schema": {"type": "array", "items": {"$ref": "#/definitions/domain.AuthorStatistics"}}}
                }
            }
        },
        "/authors/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["authors"],
                "summary": "Obtém um autor por ID",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "Autor encontrado", "schema": {"$ref": "#/definitions/domain.Author"}},
                    "400": {"description": "ID inválido", "schema": {"$ref": "#/definitions/domain.ErrorResponse"}},
                    "404": {"description": "Autor não encontrado", "schema": {"$ref": "#/definitions/domain.ErrorResponse"}}
                }
            },
            "put": {
                "consumes": ["application/json"],
                "tags": ["authors"],
                "summary": "Atualiza o nome de um autor",
                "parameters": [
                    {"type": "integer", "name": "id", "in": "path", "required": true},
                    {"name": "author", "in": "body", "required": true, "schema": {"$ref": "#/definitions/domain.AuthorInput"}}
                ],
                "responses": {
                    "204": {"description": "Autor atualizado"},
                    "400": {"description": "Payload inválido, IDs divergentes ou nome duplicado", "schema": {"$ref": "#/definitions/domain.ErrorResponse"}},
                    "404": {"description": "Autor não encontrado", "schema": {"$ref": "#/definitions/domain.ErrorResponse"}}
                }
            },
            "delete": {
                "tags": ["authors"],
                "summary": "Remove um autor sem livros",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "204": {"description": "Autor removido"},
                    "400": {"description": "Autor possui livros", "schema": {"$ref": "#/definitions/domain.ErrorResponse"}},
                    "404": {"description": "Autor não encontrado", "schema": {"$ref": "#/definitions/domain.ErrorResponse"}}
                }
            }
        },
        "/authors/{id}/books": {
            "get": {
                "produces": ["application/json"],
                "tags": ["authors"],
                "summary": "Lista os livros de um autor",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "Livros do autor", "schema": {"type": "array", "items": {"$ref": "#/definitions/domain.Book"}}},
                    "404": {"description": "Autor não encontrado", "schema": {"$ref": "#/definitions/domain.ErrorResponse"}}
                }
            }
        },
        "/books": {
            "get": {
                "produces": ["application/json"],
                "tags": ["books"],
                "summary": "Lista todos os livros",
                "responses": {
                    "200": {"description": "Lista de livros", "schema": {"type": "array", "items": {"$ref": "#/definitions/domain.Book"}}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["books"],
                "summary": "Cria um novo livro",
                "parameters": [{"name": "book", "in": "body", "required": true, "schema": {"$ref": "#/definitions/domain.BookInput"}}],
                "responses": {
                    "201": {"description": "Livro criado com sucesso", "schema": {"$ref": "#/definitions/domain.Book"}},
                    "400": {"description": "Payload inválido, ano futuro ou autor inexistente", "schema": {"$ref": "#/definitions/domain.ErrorResponse"}}
                }
            }
        },
        "/books/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["books"],
                "summary": "Obtém um livro por ID",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "Livro encontrado", "schema": {"$ref": "#/definitions/domain.Book"}},
                    "404": {"description": "Livro não encontrado", "schema": {"$ref": "#/definitions/domain.ErrorResponse"}}
                }
            },
            "put": {
                "consumes": ["application/json"],
                "tags": ["books"],
                "summary": "Substitui os dados de um livro",
                "parameters": [
                    {"type": "integer", "name": "id", "in": "path", "required": true},
                    {"name": "book", "in": "body", "required": true, "schema": {"$ref": "#/definitions/domain.BookInput"}}
                ],
                "responses": {
                    "204": {"description": "Livro atualizado"},
                    "400": {"description": "Payload inválido, IDs divergentes ou autor inexistente", "schema": {"$ref": "#/definitions/domain.ErrorResponse"}},
                    "404": {"description": "Livro não encontrado", "schema": {"$ref": "#/definitions/domain.ErrorResponse"}}
                }
            },
            "delete": {
                "tags": ["books"],
                "summary": "Remove um livro sem empréstimos ativos",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "204": {"description": "Livro removido"},
                    "400": {"description": "Livro com empréstimo ativo", "schema": {"$ref": "#/definitions/domain.ErrorResponse"}},
                    "404": {"description": "Livro não encontrado", "schema": {"$ref": "#/definitions/domain.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "domain.Author": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "name": {"type": "string"},
                "books": {"type": "array", "items": {"$ref": "#/definitions/domain.Book"}}
            }
        },
        "domain.AuthorInput": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "name": {"type": "string", "example": "Jane Austen"}
            }
        },
        "domain.AuthorStatistics": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "name": {"type": "string"},
                "totalBooks": {"type": "integer"},
                "availableBooks": {"type": "integer"},
                "loanedBooks": {"type": "integer"}
            }
        },
        "domain.Book": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "title": {"type": "string"},
                "publicationYear": {"type": "integer"},
                "available": {"type": "boolean"},
                "authorId": {"type": "integer"},
                "author": {"$ref": "#/definitions/domain.BookAuthor"}
            }
        },
        "domain.BookAuthor": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "name": {"type": "string"}
            }
        },
        "domain.BookInput": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "title": {"type": "string", "example": "Emma"},
                "publicationYear": {"type": "integer", "example": 1815},
                "available": {"type": "boolean"},
                "authorId": {"type": "integer", "example": 1}
            }
        },
        "domain.ErrorResponse": {
            "type": "object",
            "properties": {
                "code": {"type": "integer", "example": 400},
                "category": {"type": "string", "example": "VALIDATION_ERROR"},
                "message": {"type": "string", "example": "Nome do autor é obrigatório"},
                "errors": {"type": "object", "additionalProperties": {"type": "string"}}
            }
        }
    }
}`

// SwaggerInfo guarda as informações exportadas do documento.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Biblioteca API",
	Description:      "API de gestão de acervo: autores e livros.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
