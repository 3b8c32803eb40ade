// Package docs holds the registered OpenAPI document for the public API
package docs

import "github.com/swaggo/swag/v2"

const docTemplate = `{
  "openapi": "3.0.3",
  "info": {
    "title": "{{.Title}}",
    "description": "{{.Description}}",
    "version": "{{.Version}}"
  },
  "paths": {
    "/predict": {
      "post": {
        "tags": ["identify"],
        "summary": "Identify a food photo and resolve its nutrition",
        "requestBody": {
          "required": true,
          "content": {
            "multipart/form-data": {
              "schema": {
                "type": "object",
                "required": ["image", "food_type"],
                "properties": {
                  "image": {"type": "string", "format": "binary"},
                  "food_type": {"type": "string", "enum": ["Indian", "International"]}
                }
              }
            }
          }
        },
        "responses": {
          "200": {
            "description": "OK",
            "content": {"application/json": {"schema": {"$ref": "#/components/schemas/PredictionResult"}}}
          }
        }
      }
    },
    "/manual-nutrition": {
      "post": {
        "tags": ["nutrition"],
        "summary": "Scale nutrition for a named food and quantity",
        "requestBody": {
          "required": true,
          "content": {"application/json": {"schema": {"$ref": "#/components/schemas/ManualNutritionRequest"}}}
        },
        "responses": {
          "200": {
            "description": "OK",
            "content": {"application/json": {"schema": {"$ref": "#/components/schemas/ManualNutritionResult"}}}
          }
        }
      }
    },
    "/food-suggestions": {
      "get": {
        "tags": ["nutrition"],
        "summary": "Autocomplete food names",
        "parameters": [
          {"name": "query", "in": "query", "schema": {"type": "string"}}
        ],
        "responses": {
          "200": {
            "description": "OK",
            "content": {"application/json": {"schema": {"$ref": "#/components/schemas/Suggestions"}}}
          }
        }
      }
    },
    "/health": {
      "get": {
        "tags": ["meta"],
        "summary": "Liveness probe",
        "responses": {
          "200": {"description": "OK", "content": {"text/plain": {"schema": {"type": "string", "example": "OK"}}}}
        }
      }
    },
    "/meta/version": {
      "get": {
        "tags": ["meta"],
        "summary": "Build information",
        "responses": {
          "200": {"description": "OK", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/BuildInfo"}}}}
        }
      }
    },
    "/meta/ready": {
      "get": {
        "tags": ["meta"],
        "summary": "Upstream collaborator configuration",
        "responses": {
          "200": {"description": "OK", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/Ready"}}}}
        }
      }
    }
  },
  "components": {
    "schemas": {
      "Nutrition": {
        "type": "object",
        "properties": {
          "calories": {"type": "number"},
          "protein_g": {"type": "number"},
          "fat_g": {"type": "number"},
          "carbs_g": {"type": "number"},
          "source": {"type": "string", "enum": ["nutritionix", "cohere_ai", "cohere_not_configured", "fallback"]}
        }
      },
      "Summary": {
        "type": "object",
        "properties": {
          "calories": {"type": "string"},
          "protein_g": {"type": "string"},
          "fat_g": {"type": "string"},
          "carbs_g": {"type": "string"}
        }
      },
      "PredictionResult": {
        "type": "object",
        "properties": {
          "food": {"type": "string", "example": "Masala Dosa"},
          "type": {"type": "string", "enum": ["Indian", "International"]},
          "nutrition": {"$ref": "#/components/schemas/Nutrition"},
          "summary": {"$ref": "#/components/schemas/Summary"}
        }
      },
      "ManualNutritionRequest": {
        "type": "object",
        "required": ["food_name"],
        "properties": {
          "food_name": {"type": "string"},
          "quantity": {"type": "number", "default": 100},
          "unit": {"type": "string", "enum": ["grams", "count"], "default": "grams"}
        }
      },
      "ManualNutritionResult": {
        "type": "object",
        "properties": {
          "food_name": {"type": "string"},
          "quantity": {"type": "number"},
          "unit": {"type": "string"},
          "nutrition": {"$ref": "#/components/schemas/Nutrition"},
          "total_nutrition": {"$ref": "#/components/schemas/Nutrition"},
          "summary": {"$ref": "#/components/schemas/Summary"},
          "source": {"type": "string"}
        }
      },
      "Suggestion": {
        "type": "object",
        "properties": {
          "food_name": {"type": "string"},
          "brand_name": {"type": "string"},
          "calories": {"type": "number"},
          "serving_unit": {"type": "string"},
          "serving_qty": {"type": "number"}
        }
      },
      "Suggestions": {
        "type": "object",
        "properties": {
          "suggestions": {"type": "array", "items": {"$ref": "#/components/schemas/Suggestion"}}
        }
      },
      "BuildInfo": {
        "type": "object",
        "properties": {
          "service": {"type": "string"},
          "version": {"type": "string"},
          "commit": {"type": "string"},
          "date": {"type": "string"},
          "go_version": {"type": "string"}
        }
      },
      "Ready": {
        "type": "object",
        "properties": {
          "status": {"type": "string"},
          "upstreams": {"type": "object", "additionalProperties": {"type": "boolean"}}
        }
      }
    }
  }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Title:            "NutriScope API",
	Description:      "Food photo identification, nutrition lookup and meal balance summaries.",
	InfoInstanceName: "api",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
