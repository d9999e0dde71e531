package docs

import "github.com/swaggo/swag"

const docTemplate = `{
  "swagger": "2.0",
  "info": {
    "title": "Civic Complaints ML Service",
    "description": "Address matching and complaint volume forecasts per civic area",
    "version": "1.0"
  },
  "basePath": "/",
  "paths": {
    "/": {
      "get": {
        "tags": ["status"],
        "summary": "Service status",
        "produces": ["application/json"],
        "responses": {"200": {"description": "OK"}}
      }
    },
    "/predict": {
      "post": {
        "tags": ["predict"],
        "summary": "Predict complaint volume for an address",
        "consumes": ["application/json"],
        "produces": ["application/json"],
        "parameters": [{
          "in": "body",
          "name": "request",
          "required": true,
          "schema": {
            "type": "object",
            "required": ["address"],
            "properties": {"address": {"type": "string"}}
          }
        }],
        "responses": {
          "200": {
            "description": "OK",
            "schema": {
              "type": "object",
              "properties": {
                "zone": {"type": "string"},
                "area": {"type": "string"},
                "total_complaints": {"type": "integer"},
                "resolved_complaints": {"type": "integer"},
                "pending_complaints": {"type": "integer"},
                "match_score": {"type": "integer"}
              }
            }
          },
          "400": {"description": "Invalid payload"},
          "500": {"description": "Prediction failed"}
        }
      }
    },
    "/categorize": {
      "post": {
        "tags": ["categorize"],
        "summary": "Categorize complaint text",
        "consumes": ["application/json"],
        "produces": ["application/json"],
        "parameters": [{
          "in": "body",
          "name": "request",
          "schema": {"type": "object", "properties": {"text": {"type": "string"}}}
        }],
        "responses": {"200": {"description": "OK"}}
      }
    }
  }
}`

func init() {
	swag.Register(swag.Name, &s{})
}

type s struct{}

func (s *s) ReadDoc() string {
	return docTemplate
}
