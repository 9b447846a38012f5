// Package docs registers the Swagger document served at /swagger.
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
        "ApiKeyAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    },
    "paths": {
        "/categories": {"get": {"tags": ["categories"], "summary": "List categories", "responses": {"200": {"description": "OK"}}}},
        "/workspace": {"get": {"tags": ["workspace"], "summary": "Get workspace", "responses": {"200": {"description": "OK"}}}},
        "/workspace/input": {"put": {"tags": ["workspace"], "summary": "Edit source text", "responses": {"200": {"description": "OK"}}}},
        "/workspace/category": {"put": {"tags": ["workspace"], "summary": "Select category", "responses": {"200": {"description": "OK"}, "400": {"description": "Invalid category"}}}},
        "/workspace/view": {"put": {"tags": ["workspace"], "summary": "Change view", "responses": {"200": {"description": "OK"}, "409": {"description": "No active deck"}}}},
        "/workspace/tab": {"put": {"tags": ["workspace"], "summary": "Change study tab", "responses": {"200": {"description": "OK"}}}},
        "/workspace/ingest": {"post": {"tags": ["workspace"], "summary": "Upload a document", "consumes": ["multipart/form-data"], "responses": {"200": {"description": "OK"}, "415": {"description": "Unsupported format"}, "422": {"description": "Extraction failed"}}}},
        "/workspace/generate": {"post": {"tags": ["workspace"], "summary": "Generate study set", "responses": {"200": {"description": "OK"}, "204": {"description": "Nothing to generate"}, "409": {"description": "Generation already running"}, "502": {"description": "Generator failed"}}}},
        "/workspace/save": {"post": {"tags": ["workspace"], "summary": "Save active deck", "security": [{"ApiKeyAuth": []}], "responses": {"201": {"description": "Created"}, "401": {"description": "Unauthorized"}, "502": {"description": "Save failed"}}}},
        "/workspace/flashcards": {"get": {"tags": ["flashcards"], "summary": "Current flashcard", "responses": {"200": {"description": "OK"}}}},
        "/workspace/flashcards/next": {"post": {"tags": ["flashcards"], "summary": "Next flashcard", "responses": {"200": {"description": "OK"}}}},
        "/workspace/flashcards/previous": {"post": {"tags": ["flashcards"], "summary": "Previous flashcard", "responses": {"200": {"description": "OK"}}}},
        "/workspace/flashcards/flip": {"post": {"tags": ["flashcards"], "summary": "Flip flashcard", "responses": {"200": {"description": "OK"}}}},
        "/workspace/quiz": {"get": {"tags": ["quiz"], "summary": "Quiz state", "responses": {"200": {"description": "OK"}}}},
        "/workspace/quiz/select": {"post": {"tags": ["quiz"], "summary": "Select option", "responses": {"200": {"description": "OK"}, "409": {"description": "Answer already submitted"}}}},
        "/workspace/quiz/text": {"post": {"tags": ["quiz"], "summary": "Edit short answer", "responses": {"200": {"description": "OK"}}}},
        "/workspace/quiz/submit": {"post": {"tags": ["quiz"], "summary": "Submit answer", "responses": {"200": {"description": "OK"}, "409": {"description": "Nothing to submit"}}}},
        "/workspace/quiz/advance": {"post": {"tags": ["quiz"], "summary": "Next question", "responses": {"200": {"description": "OK"}}}},
        "/workspace/quiz/restart": {"post": {"tags": ["quiz"], "summary": "Restart quiz", "responses": {"200": {"description": "OK"}}}},
        "/decks": {"get": {"tags": ["decks"], "summary": "List saved decks", "security": [{"ApiKeyAuth": []}], "responses": {"200": {"description": "OK"}, "503": {"description": "Deck store still provisioning"}}}},
        "/decks/{id}/open": {"post": {"tags": ["decks"], "summary": "Open saved deck", "security": [{"ApiKeyAuth": []}], "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not found"}}}},
        "/auth/google/login": {"get": {"tags": ["auth"], "summary": "Initiate Google Login", "responses": {"307": {"description": "Redirects to Google"}}}},
        "/auth/google/callback": {"get": {"tags": ["auth"], "summary": "Google OAuth2 Callback", "responses": {"200": {"description": "OK"}, "400": {"description": "Invalid state or code"}}}}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8090",
	BasePath:         "/api",
	Schemes:          []string{"http", "https"},
	Title:            "Study Deck API",
	Description:      "Turns notes and PDFs into summaries, flashcards and quizzes.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
