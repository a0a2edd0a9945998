// Package docs provides Swagger documentation for the Motor Rating API.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Motor Rating API",
        "description": "Premium rating service for motor insurance quotes.\n\nA single pricing operation computes the full premium for a vehicle:\n1. **Break-in detection** - Renewal expiry vs today in IST\n2. **Own Damage** - IDV based premium with riders, deductibles and NCB\n3. **Third Party** - Flat liability premium with riders and PA covers\n4. **Addons** - Addon and bundle prices on the depreciated total IDV\n5. **Totals** - Net premium, 18% tax and gross premium",
        "contact": {
            "name": "API Support",
            "url": "https://github.com/MrKriegler/motor-rating"
        },
        "license": {
            "name": "MIT"
        },
        "version": "1.0.0"
    },
    "host": "localhost:8080",
    "basePath": "/api/v1",
    "schemes": ["http", "https"],
    "consumes": ["application/json"],
    "produces": ["application/json"],
    "paths": {
        "/quotes:price": {
            "post": {
                "tags": ["Quotes"],
                "summary": "Price a motor quote",
                "description": "Computes OD, TP, addon and total premiums for the supplied vehicle and cover selection",
                "operationId": "priceQuote",
                "parameters": [
                    {
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/QuoteInput"}
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Priced quote",
                        "schema": {"$ref": "#/definitions/Quote"}
                    },
                    "400": {
                        "description": "Malformed body or validation failure",
                        "schema": {"$ref": "#/definitions/Problem"}
                    },
                    "422": {
                        "description": "Pricing failed (missing rate band, discount out of range)",
                        "schema": {"$ref": "#/definitions/Problem"}
                    },
                    "500": {
                        "description": "Internal error",
                        "schema": {"$ref": "#/definitions/Problem"}
                    }
                }
            }
        }
    },
    "definitions": {
        "QuoteInput": {
            "type": "object",
            "required": ["insurer_id", "variant_id", "vehicle_cover_id", "rto_id", "idv"],
            "properties": {
                "insurer_id": {"type": "integer"},
                "variant_id": {"type": "integer"},
                "sub_variant_id": {"type": "integer"},
                "vehicle_cover_id": {"type": "integer"},
                "rto_id": {"type": "integer"},
                "idv": {"type": "number"},
                "vehicle_age": {"type": "integer"},
                "policy_type_id": {"type": "integer"},
                "prev_policy_type": {"type": "integer"},
                "prev_od_policy_exp_date": {"type": "string", "example": "31-12-2023"},
                "prev_tp_policy_exp_date": {"type": "string", "example": "31-12-2023"},
                "discount_percent": {"type": "number"},
                "non_electrical_accessories_idv": {"type": "number"},
                "electrical_accessories_idv": {"type": "number"},
                "bi_fuel_kit_idv": {"type": "number"},
                "geo_extension": {"type": "boolean"},
                "antitheft": {"type": "boolean"},
                "aai_member": {"type": "boolean"},
                "handicapped": {"type": "boolean"},
                "voluntary_deductible": {"type": "number"},
                "pa_paid_driver": {"type": "boolean"},
                "pa_unnamed_passengers": {"type": "boolean"},
                "cpa_cover": {"type": "boolean"},
                "ll_paid_driver": {"type": "boolean"},
                "ll_employee_count": {"type": "integer"},
                "ncb_carry_forward_id": {"type": "integer"},
                "last_year_ncb_id": {"type": "integer"},
                "is_claim": {"type": "boolean"},
                "addon_ids": {"type": "array", "items": {"type": "integer"}},
                "addon_bundle_ids": {"type": "array", "items": {"type": "integer"}}
            }
        },
        "Quote": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "created_at": {"type": "string", "format": "date-time"},
                "is_breakin": {"type": "boolean"},
                "left_days": {"type": "integer"},
                "od_premium": {"type": "object"},
                "tp_premium": {"type": "object"},
                "addons": {"type": "array", "items": {"type": "object"}},
                "addon_bundles": {"type": "array", "items": {"type": "object"}},
                "total_idv": {"type": "number"},
                "net_premium": {"type": "number"},
                "total_tax": {"type": "number"},
                "total_premium": {"type": "number"}
            }
        },
        "Problem": {
            "type": "object",
            "properties": {
                "type": {"type": "string"},
                "title": {"type": "string"},
                "status": {"type": "integer"},
                "detail": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "ApiKeyAuth": {
            "type": "apiKey",
            "name": "X-API-Key",
            "in": "header"
        }
    },
    "security": [{"ApiKeyAuth": []}]
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0.0",
	Host:             "localhost:8080",
	BasePath:         "/api/v1",
	Schemes:          []string{"http", "https"},
	Title:            "Motor Rating API",
	Description:      "Premium rating service for motor insurance quotes.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
