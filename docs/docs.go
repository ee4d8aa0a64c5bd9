// Package docs holds the OpenAPI document of the forecast API, regenerated
// from the handler annotations with swag init -g cmd/forecast.go.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "cartabinaria"
        },
        "license": {
            "name": "AGPL-3.0",
            "url": "https://www.gnu.org/licenses/agpl-3.0.en.html"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/api/v1/accounts": {
            "get": {"tags": ["account"], "summary": "List accounts", "produces": ["application/json"], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/api.Envelope"}}}}
        },
        "/api/v1/accounts/register": {
            "post": {"tags": ["account"], "summary": "Register an account", "description": "Create an account and open a session for it. A malformed email is rejected with status \"Invalid Email Adress\" (sic), as existing clients expect. Passwords are limited to 72 bytes.", "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "credentials", "required": true, "schema": {"$ref": "#/definitions/api.CredentialsRequest"}}],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/api.TokenResponse"}}, "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/api.AuthFailure"}}, "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/api.Envelope"}}}}
        },
        "/api/v1/accounts/login": {
            "post": {"tags": ["account"], "summary": "Log in", "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "credentials", "required": true, "schema": {"$ref": "#/definitions/api.CredentialsRequest"}}],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/api.TokenResponse"}}, "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/api.AuthFailure"}}}}
        },
        "/api/v1/accounts/verification": {
            "get": {"tags": ["account"], "summary": "Check a session token", "produces": ["application/json"],
                "parameters": [{"in": "header", "name": "token", "type": "string", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"type": "boolean"}}, "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/api.AuthFailure"}}}}
        },
        "/api/v1/accounts/dashboard": {
            "get": {"tags": ["account"], "summary": "Current account", "produces": ["application/json"],
                "parameters": [{"in": "header", "name": "token", "type": "string", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/api.DashboardResponse"}}, "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/api.AuthFailure"}}}}
        },
        "/api/v1/accounts/dashboard/{id}": {
            "get": {"tags": ["account"], "summary": "Account by id", "produces": ["application/json"],
                "parameters": [{"in": "path", "name": "id", "type": "integer", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/api.DashboardResponse"}}, "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/api.Envelope"}}}}
        },
        "/api/v1/predictions": {
            "get": {"tags": ["prediction"], "summary": "List predictions", "produces": ["application/json"], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/api.Envelope"}}}},
            "post": {"tags": ["prediction"], "summary": "Create a prediction", "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "prediction", "required": true, "schema": {"$ref": "#/definitions/api.PredictionRequest"}}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/api.Envelope"}}, "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/api.Envelope"}}}}
        },
        "/api/v1/predictions/timeframe": {
            "get": {"tags": ["prediction"], "summary": "List predictions to resolve", "produces": ["application/json"], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/api.Envelope"}}}}
        },
        "/api/v1/predictions/{id}": {
            "get": {"tags": ["prediction"], "summary": "Get a prediction", "produces": ["application/json"],
                "parameters": [{"in": "path", "name": "id", "type": "integer", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/api.Envelope"}}, "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/api.Envelope"}}}},
            "put": {"tags": ["prediction"], "summary": "Update a prediction", "produces": ["application/json"],
                "parameters": [{"in": "path", "name": "id", "type": "integer", "required": true}, {"in": "body", "name": "prediction", "required": true, "schema": {"$ref": "#/definitions/api.PredictionRequest"}}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/api.Envelope"}}, "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/api.Envelope"}}}},
            "delete": {"tags": ["prediction"], "summary": "Delete a prediction",
                "parameters": [{"in": "path", "name": "id", "type": "integer", "required": true}],
                "responses": {"204": {"description": "No Content"}, "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/api.Envelope"}}}}
        },
        "/api/v1/predictions/incomplete/{id}": {
            "delete": {"tags": ["prediction"], "summary": "Delete incomplete predictions",
                "parameters": [{"in": "path", "name": "id", "type": "integer", "required": true}],
                "responses": {"204": {"description": "No Content"}}}
        },
        "/api/v1/votes": {
            "get": {"tags": ["vote"], "summary": "List ballots", "produces": ["application/json"], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/api.Envelope"}}}},
            "post": {"tags": ["vote"], "summary": "Cast a ballot", "description": "Set the plausibility and/or correctness vote of a user on a prediction. Fields left null keep their previous value. The tally is updated here; do not also bump it through /api/v1/votes/tallies.", "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "vote", "required": true, "schema": {"$ref": "#/definitions/api.VoteRequest"}}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/api.Envelope"}}, "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/api.Envelope"}}, "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/api.Envelope"}}}}
        },
        "/api/v1/votes/tallies/{tally_value}/{id}": {
            "put": {"tags": ["tally"], "summary": "Bump a tally counter", "description": "Add one to the plausible, implausible, correct or incorrect counter of a prediction. Casting a ballot through POST /api/v1/votes already counts it, so calling both for the same ballot counts it twice.", "produces": ["application/json"],
                "parameters": [{"in": "path", "name": "tally_value", "type": "string", "enum": ["plausible", "implausible", "correct", "incorrect"], "required": true}, {"in": "path", "name": "id", "type": "integer", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/api.Envelope"}}, "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/api.Envelope"}}, "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/api.Envelope"}}}}
        },
        "/health": {
            "get": {"tags": ["operations"], "summary": "Health check", "produces": ["application/json"], "responses": {"200": {"description": "OK"}, "503": {"description": "Service Unavailable"}}}
        }
    },
    "definitions": {
        "api.AuthFailure": {"type": "object", "properties": {"status": {"type": "string"}, "message": {}}},
        "api.CredentialsRequest": {"type": "object", "properties": {"username": {"type": "string"}, "email": {"type": "string"}, "password": {"type": "string"}}},
        "api.DashboardResponse": {"type": "object", "properties": {"status": {"type": "string"}, "message": {"type": "string"}, "user": {"$ref": "#/definitions/api.DashboardUser"}}},
        "api.DashboardUser": {"type": "object", "properties": {"user_id": {"type": "integer"}, "username": {"type": "string"}, "prediction_score": {"type": "integer"}}},
        "api.Envelope": {"type": "object", "properties": {"status": {"type": "string"}, "kind": {"type": "string"}, "message": {}, "results": {"type": "integer"}, "data": {"type": "object"}}},
        "api.PredictionRequest": {"type": "object", "properties": {"user_id": {"type": "integer"}, "user_prediction_status": {"type": "string"}, "claim_title": {"type": "string"}, "claim_major": {"type": "string"}, "post_time": {"type": "string"}, "timeframe": {"type": "string"}, "status": {"type": "string"}, "conc_reason": {"type": "string"}, "conc_reason_timestamp": {"type": "string"}}},
        "api.TokenResponse": {"type": "object", "properties": {"status": {"type": "string"}, "message": {"type": "string"}, "token": {"type": "string"}}},
        "api.VoteRequest": {"type": "object", "properties": {"prediction_id": {"type": "integer"}, "user_id": {"type": "integer"}, "plausible": {"type": "boolean"}, "correct": {"type": "boolean"}}}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Forecast API",
	Description:      "Backend API of a prediction platform: accounts, predictions, ballots and tallies, comments, reasons and their sources",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
