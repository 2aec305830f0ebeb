// Package docs registers the OpenAPI description of the v1 API with swag.
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
        "/access/{contentId}": {
            "get": {
                "description": "Reports whether the caller may play the content. Anonymous callers are always denied.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "access"
                ],
                "summary": "Check playback access",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Content ID",
                        "name": "contentId",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.AccessResponse"
                        }
                    },
                    "404": {
                        "description": "content id missing",
                        "schema": {
                            "type": "string"
                        }
                    }
                }
            }
        },
        "/accounts/me": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "accounts"
                ],
                "summary": "Get the caller's account profile",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.AccountResponseDTO"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "type": "string"
                        }
                    },
                    "404": {
                        "description": "account not found",
                        "schema": {
                            "type": "string"
                        }
                    }
                }
            },
            "post": {
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "accounts"
                ],
                "summary": "Register the caller's account profile",
                "parameters": [
                    {
                        "description": "Account profile",
                        "name": "account",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/dto.AccountCreateDTO"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/dto.AccountResponseDTO"
                        }
                    },
                    "400": {
                        "description": "Invalid JSON payload or validation failed",
                        "schema": {
                            "type": "string"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "type": "string"
                        }
                    }
                }
            }
        },
        "/admin/wallet": {
            "get": {
                "description": "Lists all subscriptions, newest first, with revenue totals.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "admin"
                ],
                "summary": "Admin wallet overview",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.WalletResponse"
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "type": "string"
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
        "/admin/wallet/export": {
            "post": {
                "description": "Uploads a CSV snapshot of the wallet to object storage.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "admin"
                ],
                "summary": "Export the admin wallet",
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/dto.WalletExportResponse"
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "type": "string"
                        }
                    },
                    "501": {
                        "description": "export not configured",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/plans": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "plans"
                ],
                "summary": "List subscription plans",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/dto.PlanResponseDTO"
                            }
                        }
                    }
                }
            }
        },
        "/subscriptions/checkout": {
            "post": {
                "description": "Charges the phone number for the plan and overwrites the caller's entitlement.",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "subscriptions"
                ],
                "summary": "Purchase a subscription plan",
                "parameters": [
                    {
                        "description": "Subscription checkout request",
                        "name": "subscription",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/dto.SubscriptionCheckoutRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/dto.SubscriptionCheckoutResponse"
                        }
                    },
                    "400": {
                        "description": "invalid plan or phone number",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    },
                    "401": {
                        "description": "unauthenticated",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    },
                    "402": {
                        "description": "payment declined",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    },
                    "503": {
                        "description": "store unavailable",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/subscriptions/me": {
            "get": {
                "description": "Evaluates the caller's entitlement against the current time.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "subscriptions"
                ],
                "summary": "Get the caller's subscription",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.SubscriptionStatusResponse"
                        }
                    },
                    "401": {
                        "description": "unauthenticated",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                }
            }
        }
    },
    "definitions": {
        "dto.AccessResponse": {
            "type": "object",
            "properties": {
                "allowed": {
                    "type": "boolean"
                },
                "checkout_path": {
                    "type": "string"
                },
                "content_id": {
                    "type": "string"
                }
            }
        },
        "dto.AccountCreateDTO": {
            "type": "object",
            "properties": {
                "email": {
                    "type": "string"
                },
                "name": {
                    "type": "string",
                    "maxLength": 200
                }
            }
        },
        "dto.AccountResponseDTO": {
            "type": "object",
            "properties": {
                "account_id": {
                    "type": "string"
                },
                "created_at": {
                    "type": "string"
                },
                "email": {
                    "type": "string"
                },
                "name": {
                    "type": "string"
                },
                "subscription_expires_at": {
                    "type": "string"
                },
                "subscription_plan": {
                    "type": "string"
                },
                "subscription_status": {
                    "type": "string"
                },
                "updated_at": {
                    "type": "string"
                }
            }
        },
        "dto.EntitlementResponseDTO": {
            "type": "object",
            "properties": {
                "account_id": {
                    "type": "string"
                },
                "amount_paid": {
                    "type": "integer"
                },
                "currency": {
                    "type": "string"
                },
                "expires_at": {
                    "type": "string"
                },
                "is_active": {
                    "type": "boolean"
                },
                "payment_reference": {
                    "type": "string"
                },
                "phone_number": {
                    "type": "string"
                },
                "plan_id": {
                    "type": "string"
                },
                "plan_name": {
                    "type": "string"
                },
                "starts_at": {
                    "type": "string"
                },
                "status": {
                    "type": "string"
                },
                "updated_at": {
                    "type": "string"
                }
            }
        },
        "dto.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {
                    "type": "string"
                }
            }
        },
        "dto.PlanResponseDTO": {
            "type": "object",
            "properties": {
                "currency": {
                    "type": "string"
                },
                "duration_days": {
                    "type": "integer"
                },
                "duration_label": {
                    "type": "string"
                },
                "features": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                },
                "id": {
                    "type": "string"
                },
                "name": {
                    "type": "string"
                },
                "popular": {
                    "type": "boolean"
                },
                "price_amount": {
                    "type": "integer"
                }
            }
        },
        "dto.SubscriptionCheckoutRequest": {
            "type": "object",
            "required": [
                "phone_number",
                "plan_id"
            ],
            "properties": {
                "phone_number": {
                    "type": "string"
                },
                "plan_id": {
                    "type": "string",
                    "enum": [
                        "one-day",
                        "two-days",
                        "one-week"
                    ]
                }
            }
        },
        "dto.SubscriptionCheckoutResponse": {
            "type": "object",
            "properties": {
                "entitlement": {
                    "$ref": "#/definitions/dto.EntitlementResponseDTO"
                },
                "message": {
                    "type": "string"
                }
            }
        },
        "dto.SubscriptionStatusResponse": {
            "type": "object",
            "properties": {
                "days_remaining": {
                    "type": "integer"
                },
                "entitlement": {
                    "$ref": "#/definitions/dto.EntitlementResponseDTO"
                },
                "is_active": {
                    "type": "boolean"
                },
                "remaining_text": {
                    "type": "string"
                }
            }
        },
        "dto.WalletExportResponse": {
            "type": "object",
            "properties": {
                "key": {
                    "type": "string"
                }
            }
        },
        "dto.WalletResponse": {
            "type": "object",
            "properties": {
                "stats": {
                    "$ref": "#/definitions/dto.WalletStatsDTO"
                },
                "subscriptions": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/dto.WalletRowDTO"
                    }
                }
            }
        },
        "dto.WalletRowDTO": {
            "type": "object",
            "properties": {
                "account_id": {
                    "type": "string"
                },
                "amount_paid": {
                    "type": "integer"
                },
                "currency": {
                    "type": "string"
                },
                "expires_at": {
                    "type": "string"
                },
                "is_active": {
                    "type": "boolean"
                },
                "payment_reference": {
                    "type": "string"
                },
                "phone_number": {
                    "type": "string"
                },
                "plan_id": {
                    "type": "string"
                },
                "plan_name": {
                    "type": "string"
                },
                "starts_at": {
                    "type": "string"
                },
                "status": {
                    "type": "string"
                },
                "updated_at": {
                    "type": "string"
                },
                "email": {
                    "type": "string"
                },
                "expired": {
                    "type": "boolean"
                }
            }
        },
        "dto.WalletStatsDTO": {
            "type": "object",
            "properties": {
                "accounts": {
                    "type": "integer"
                },
                "active_subscriptions": {
                    "type": "integer"
                },
                "currency": {
                    "type": "string"
                },
                "month_revenue": {
                    "type": "integer"
                },
                "total_revenue": {
                    "type": "integer"
                }
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/v1",
	Schemes:          []string{"http", "https"},
	Title:            "Oneflex Subscription API",
	Description:      "Plans, checkout and playback access for Oneflex Premium",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
