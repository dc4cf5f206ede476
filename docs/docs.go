// Package docs holds the OpenAPI document served under /swagger. It follows
// the layout produced by swaggo/swag and is maintained by hand alongside the
// handler annotations in internal/api.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "termsOfService": "https://github.com/guttosm/intradaypulse",
        "contact": {
            "name": "API Support",
            "url": "https://github.com/guttosm/intradaypulse",
            "email": "support@example.com"
        },
        "license": {
            "name": "MIT",
            "url": "https://opensource.org/licenses/MIT"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/api/v1/intraday": {
            "get": {
                "description": "Same as /api/v1/intraday/{symbol}, with the symbol taken from the query string",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "intraday"
                ],
                "summary": "Daily aggregates of last month's intraday data (query form)",
                "parameters": [
                    {
                        "type": "string",
                        "example": "IBM",
                        "description": "Ticker symbol",
                        "name": "symbol",
                        "in": "query",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Success",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/dto.DayAggregateResponse"
                            }
                        },
                        "headers": {
                            "X-Data-Tier": {
                                "type": "string",
                                "description": "premium or free"
                            }
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
                    "500": {
                        "description": "Internal Error",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/api/v1/intraday/{symbol}": {
            "get": {
                "description": "Fetches 15-minute bars for the symbol (premium tier first, free tier on denial) and returns one aggregate per day",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "intraday"
                ],
                "summary": "Daily aggregates of last month's intraday data",
                "parameters": [
                    {
                        "type": "string",
                        "example": "IBM",
                        "description": "Ticker symbol",
                        "name": "symbol",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Success",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/dto.DayAggregateResponse"
                            }
                        },
                        "headers": {
                            "X-Data-Tier": {
                                "type": "string",
                                "description": "premium or free"
                            }
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
                    "500": {
                        "description": "Internal Error",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/healthz": {
            "get": {
                "description": "Always returns OK if the service is running",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "health"
                ],
                "summary": "Liveness probe",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    }
                }
            }
        },
        "/readyz": {
            "get": {
                "description": "Returns ready if the upstream credential is configured",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "health"
                ],
                "summary": "Readiness probe",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    },
                    "503": {
                        "description": "Service Unavailable",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    }
                }
            }
        }
    },
    "definitions": {
        "dto.DayAggregateResponse": {
            "type": "object",
            "properties": {
                "day": {
                    "description": "Calendar day (YYYY-MM-DD)",
                    "type": "string",
                    "example": "2024-10-15"
                },
                "highAverage": {
                    "description": "Mean of the day's high prices",
                    "type": "number",
                    "example": 106
                },
                "lowAverage": {
                    "description": "Mean of the day's low prices",
                    "type": "number",
                    "example": 101
                },
                "volume": {
                    "description": "Total traded volume of the day",
                    "type": "integer",
                    "example": 3000
                }
            }
        },
        "dto.ErrorResponse": {
            "type": "object",
            "properties": {
                "error_details": {
                    "type": "string",
                    "example": ""
                },
                "message": {
                    "type": "string",
                    "example": "symbol is required"
                },
                "timestamp": {
                    "type": "string",
                    "example": "2024-10-16T12:00:00Z"
                }
            }
        }
    },
    "tags": [
        {
            "description": "Daily aggregates of intraday market data",
            "name": "intraday"
        },
        {
            "description": "Liveness and readiness probes",
            "name": "health"
        }
    ]
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{"http"},
	Title:            "intradaypulse API",
	Description:      "Daily aggregates of Alpha Vantage intraday data with premium-to-free tier fallback.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
