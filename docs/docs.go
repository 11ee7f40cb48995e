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
        "/auth/unlock": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Exchange the owner passphrase for a token",
                "parameters": [
                    {"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/http.unlockRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.tokenResponse"}},
                    "401": {"description": "Unauthorized"}
                }
            }
        },
        "/habits": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["habits"],
                "summary": "List active habits",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/domain.Habit"}}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["habits"],
                "summary": "Create a habit",
                "parameters": [
                    {"name": "habit", "in": "body", "required": true, "schema": {"$ref": "#/definitions/http.createHabitRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/domain.Habit"}},
                    "400": {"description": "Bad Request"}
                }
            }
        },
        "/habits/archived": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["habits"],
                "summary": "List archived habits",
                "description": "Habits archived longer than the retention period are purged first.",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/domain.Habit"}}}
                }
            }
        },
        "/habits/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["habits"],
                "summary": "Get a habit",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.Habit"}},
                    "404": {"description": "Not Found"}
                }
            },
            "patch": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["habits"],
                "summary": "Edit a habit",
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true},
                    {"name": "habit", "in": "body", "required": true, "schema": {"$ref": "#/definitions/http.updateHabitRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.Habit"}},
                    "400": {"description": "Bad Request"},
                    "404": {"description": "Not Found"}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["habits"],
                "summary": "Permanently delete a habit",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "Not Found"}
                }
            }
        },
        "/habits/{id}/archive": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["habits"],
                "summary": "Archive a habit",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"204": {"description": "No Content"}, "404": {"description": "Not Found"}}
            }
        },
        "/habits/{id}/restore": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["habits"],
                "summary": "Restore an archived habit",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"204": {"description": "No Content"}, "404": {"description": "Not Found"}}
            }
        },
        "/habits/{id}/toggle": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["progress"],
                "summary": "Toggle completion for a day",
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true},
                    {"name": "body", "in": "body", "schema": {"$ref": "#/definitions/http.toggleRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.DayProgress"}},
                    "400": {"description": "Bad Request"},
                    "404": {"description": "Not Found"}
                }
            }
        },
        "/habits/{id}/progress/{date}": {
            "put": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["progress"],
                "summary": "Set completion for a day",
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true},
                    {"type": "string", "name": "date", "in": "path", "required": true},
                    {"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/http.setProgressRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.DayProgress"}},
                    "400": {"description": "Bad Request"},
                    "404": {"description": "Not Found"}
                }
            }
        },
        "/habits/{id}/stats": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["stats"],
                "summary": "Analytics for one habit",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.HabitStats"}},
                    "404": {"description": "Not Found"}
                }
            }
        },
        "/habits/{id}/window": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["stats"],
                "summary": "Completion state of the last N days",
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true},
                    {"type": "integer", "default": 7, "name": "days", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/domain.DayProgress"}}},
                    "400": {"description": "Bad Request"},
                    "404": {"description": "Not Found"}
                }
            }
        },
        "/stats/overview": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["stats"],
                "summary": "Aggregate analytics over active habits",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.Overview"}}}
            }
        },
        "/preferences": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["preferences"],
                "summary": "Current display preferences",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.Preferences"}}}
            }
        },
        "/preferences/{name}/toggle": {
            "post": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["preferences"],
                "summary": "Flip one preference",
                "parameters": [
                    {"type": "string", "name": "name", "in": "path", "required": true,
                     "enum": ["week-starts-on-monday", "highlight-current-day", "show-analytics"]}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.Preferences"}},
                    "400": {"description": "Bad Request"}
                }
            }
        }
    },
    "definitions": {
        "domain.DayProgress": {
            "type": "object",
            "properties": {
                "date": {"type": "string", "example": "2024-01-15"},
                "completed": {"type": "boolean"}
            }
        },
        "domain.Habit": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "subtitle": {"type": "string"},
                "color": {"type": "string"},
                "icon": {"type": "string"},
                "streakGoal": {"type": "string"},
                "reminders": {"type": "integer"},
                "categories": {"type": "array", "items": {"type": "string"}},
                "completionTracking": {"type": "string"},
                "completionsPerDay": {"type": "integer"},
                "progress": {"type": "array", "items": {"$ref": "#/definitions/domain.DayProgress"}},
                "targetCompletionDate": {"type": "string"},
                "archivedAt": {"type": "string"},
                "createdAt": {"type": "string"},
                "updatedAt": {"type": "string"}
            }
        },
        "domain.MonthCount": {
            "type": "object",
            "properties": {
                "label": {"type": "string"},
                "year": {"type": "integer"},
                "month": {"type": "integer"},
                "count": {"type": "integer"}
            }
        },
        "domain.WeekdayRate": {
            "type": "object",
            "properties": {
                "weekday": {"type": "integer"},
                "label": {"type": "string"},
                "rate": {"type": "integer"},
                "tracked": {"type": "integer"}
            }
        },
        "domain.HabitStats": {
            "type": "object",
            "properties": {
                "habitId": {"type": "string"},
                "name": {"type": "string"},
                "color": {"type": "string"},
                "icon": {"type": "string"},
                "completionRate": {"type": "integer"},
                "currentStreak": {"type": "integer"},
                "bestStreak": {"type": "integer"},
                "completedDays": {"type": "integer"},
                "trackedDays": {"type": "integer"},
                "completedToday": {"type": "boolean"},
                "monthlyConsistency": {"type": "array", "items": {"$ref": "#/definitions/domain.MonthCount"}},
                "weeklyCompletion": {"type": "array", "items": {"$ref": "#/definitions/domain.WeekdayRate"}}
            }
        },
        "domain.Overview": {
            "type": "object",
            "properties": {
                "date": {"type": "string"},
                "activeHabits": {"type": "integer"},
                "completedToday": {"type": "integer"},
                "averageCompletionRate": {"type": "integer"},
                "bestCurrentStreak": {"type": "integer"},
                "bestStreak": {"type": "integer"},
                "habits": {"type": "array", "items": {"$ref": "#/definitions/domain.HabitStats"}}
            }
        },
        "domain.Preferences": {
            "type": "object",
            "properties": {
                "weekStartsOnMonday": {"type": "boolean"},
                "highlightCurrentDay": {"type": "boolean"},
                "showAnalytics": {"type": "boolean"}
            }
        },
        "http.createHabitRequest": {
            "type": "object",
            "required": ["name"],
            "properties": {
                "name": {"type": "string"},
                "subtitle": {"type": "string"},
                "color": {"type": "string"},
                "icon": {"type": "string"},
                "streakGoal": {"type": "string"},
                "reminders": {"type": "integer"},
                "categories": {"type": "array", "items": {"type": "string"}},
                "completionTracking": {"type": "string"},
                "completionsPerDay": {"type": "integer"},
                "targetCompletionDate": {"type": "string"}
            }
        },
        "http.updateHabitRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "subtitle": {"type": "string"},
                "color": {"type": "string"},
                "icon": {"type": "string"},
                "streakGoal": {"type": "string"},
                "reminders": {"type": "integer"},
                "categories": {"type": "array", "items": {"type": "string"}},
                "completionTracking": {"type": "string"},
                "completionsPerDay": {"type": "integer"},
                "targetCompletionDate": {"type": "string"},
                "clearTargetDate": {"type": "boolean"}
            }
        },
        "http.toggleRequest": {
            "type": "object",
            "properties": {"date": {"type": "string"}}
        },
        "http.setProgressRequest": {
            "type": "object",
            "required": ["completed"],
            "properties": {"completed": {"type": "boolean"}}
        },
        "http.unlockRequest": {
            "type": "object",
            "required": ["passphrase"],
            "properties": {"passphrase": {"type": "string"}}
        },
        "http.tokenResponse": {
            "type": "object",
            "properties": {"token": {"type": "string"}}
        }
    },
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Kanso Habit Engine API",
	Description:      "Local-first habit tracking: habits, daily progress, streaks and analytics.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
