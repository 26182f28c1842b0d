package openapi

import (
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"
)

const schemaPrefix = "#/components/schemas/"

// builder holds the component schemas so that references carry their
// resolved value and the document validates without a loader pass.
type builder struct {
	schemas openapi3.Schemas
}

func (b *builder) define(name string, s *openapi3.Schema) {
	b.schemas[name] = openapi3.NewSchemaRef("", s)
}

func (b *builder) ref(name string) *openapi3.SchemaRef {
	return openapi3.NewSchemaRef(schemaPrefix+name, b.schemas[name].Value)
}

func (b *builder) jsonResponse(description, schema string) *openapi3.ResponseRef {
	return &openapi3.ResponseRef{Value: openapi3.NewResponse().WithDescription(description).WithJSONSchemaRef(b.ref(schema))}
}

func (b *builder) listResponse(description, schema string) *openapi3.ResponseRef {
	list := openapi3.NewArraySchema()
	list.Items = b.ref(schema)
	return &openapi3.ResponseRef{Value: openapi3.NewResponse().WithDescription(description).WithJSONSchema(list)}
}

func (b *builder) errorResponse(description string) *openapi3.ResponseRef {
	return b.jsonResponse(description, "ErrorModel")
}

func (b *builder) body(schema string) *openapi3.RequestBodyRef {
	return &openapi3.RequestBodyRef{Value: openapi3.NewRequestBody().WithRequired(true).WithJSONSchemaRef(b.ref(schema))}
}

func noContent(description string) *openapi3.ResponseRef {
	return &openapi3.ResponseRef{Value: openapi3.NewResponse().WithDescription(description)}
}

func param(p *openapi3.Parameter) *openapi3.ParameterRef { return &openapi3.ParameterRef{Value: p} }

func idParam() *openapi3.ParameterRef {
	return param(openapi3.NewPathParameter("id").WithSchema(openapi3.NewStringSchema()))
}

func queryString(name string) *openapi3.ParameterRef {
	return param(openapi3.NewQueryParameter(name).WithSchema(openapi3.NewStringSchema()))
}

func pagingParams(filters ...*openapi3.ParameterRef) openapi3.Parameters {
	limit := openapi3.NewIntegerSchema().WithMin(1).WithMax(100).WithDefault(float64(20))
	offset := openapi3.NewIntegerSchema().WithMin(0).WithDefault(float64(0))
	params := openapi3.Parameters{
		param(openapi3.NewQueryParameter("limit").WithSchema(limit)),
		param(openapi3.NewQueryParameter("offset").WithSchema(offset)),
	}
	return append(params, filters...)
}

func responses(pairs map[int]*openapi3.ResponseRef) *openapi3.Responses {
	opts := make([]openapi3.NewResponsesOption, 0, len(pairs))
	for status, r := range pairs {
		opts = append(opts, openapi3.WithStatus(status, r))
	}
	return openapi3.NewResponses(opts...)
}

func nullableString() *openapi3.Schema { return openapi3.NewStringSchema().WithNullable() }
func timestamp() *openapi3.Schema      { return openapi3.NewDateTimeSchema().WithNullable() }

func (b *builder) defineSchemas() {
	str := openapi3.NewStringSchema
	email := func() *openapi3.Schema { return openapi3.NewStringSchema().WithFormat("email") }

	b.define("ErrorModel", openapi3.NewObjectSchema().
		WithProperty("code", str()).
		WithProperty("message", str()).
		WithProperty("details", nullableString()).
		WithRequired([]string{"code", "message"}))

	b.define("User", openapi3.NewObjectSchema().
		WithProperty("id", str()).
		WithProperty("email", email()).
		WithProperty("name", str()).
		WithProperty("role", str().WithDefault("user")).
		WithProperty("created_at", timestamp()).
		WithRequired([]string{"id", "email", "name"}))

	b.define("LoginRequest", openapi3.NewObjectSchema().
		WithProperty("email", email()).
		WithProperty("password", str()).
		WithRequired([]string{"email", "password"}))

	b.define("LoginResponse", openapi3.NewObjectSchema().
		WithProperty("accessToken", str()).
		WithProperty("refreshToken", str()).
		WithPropertyRef("user", b.ref("User")).
		WithRequired([]string{"accessToken", "refreshToken", "user"}))

	b.define("Booking", openapi3.NewObjectSchema().
		WithProperty("id", str()).
		WithProperty("user_id", str()).
		WithProperty("room_id", nullableString()).
		WithProperty("seat_id", nullableString()).
		WithProperty("status", str().WithDefault("pending")).
		WithProperty("created_at", timestamp()).
		WithProperty("updated_at", timestamp()).
		WithRequired([]string{"id", "user_id"}))

	b.define("Payment", openapi3.NewObjectSchema().
		WithProperty("id", str()).
		WithProperty("booking_id", str()).
		WithProperty("amount", openapi3.NewFloat64Schema()).
		WithProperty("currency", str()).
		WithProperty("status", str().WithDefault("initiated")).
		WithProperty("created_at", timestamp()).
		WithRequired([]string{"id", "booking_id", "amount", "currency"}))

	b.define("Notification", openapi3.NewObjectSchema().
		WithProperty("id", str()).
		WithProperty("user_id", str()).
		WithProperty("type", str()).
		WithProperty("message", str()).
		WithProperty("created_at", timestamp()).
		WithRequired([]string{"id", "user_id", "type", "message"}))

	b.define("AdminAction", openapi3.NewObjectSchema().
		WithProperty("id", str()).
		WithProperty("adminId", str()).
		WithProperty("action", str()).
		WithProperty("targetId", str()).
		WithProperty("timestamp", str()).
		WithRequired([]string{"id", "adminId", "action", "targetId", "timestamp"}))

	b.define("Health", openapi3.NewObjectSchema().
		WithProperty("status", str()).
		WithRequired([]string{"status"}))
}

type route struct {
	method, path string
	op           *openapi3.Operation
}

func op(tag, summary, id string) *openapi3.Operation {
	return &openapi3.Operation{Tags: []string{tag}, Summary: summary, OperationID: id}
}

func (b *builder) routes() []route {
	with := func(o *openapi3.Operation, params openapi3.Parameters, body *openapi3.RequestBodyRef, rs map[int]*openapi3.ResponseRef) *openapi3.Operation {
		o.Parameters = params
		o.RequestBody = body
		o.Responses = responses(rs)
		return o
	}
	id := openapi3.Parameters{idParam()}

	return []route{
		{http.MethodGet, "/", with(op("Health", "Health Check", "health_check"), nil, nil, map[int]*openapi3.ResponseRef{
			200: b.jsonResponse("Service is up", "Health"),
		})},

		{http.MethodPost, "/users", with(op("Users", "Create user", "create_user"), nil, b.body("User"), map[int]*openapi3.ResponseRef{
			201: b.jsonResponse("Created user", "User"),
			400: b.errorResponse("Validation error"),
		})},
		{http.MethodGet, "/users", with(op("Users", "List users", "list_users"), pagingParams(), nil, map[int]*openapi3.ResponseRef{
			200: b.listResponse("Users", "User"),
			400: b.errorResponse("Invalid paging parameters"),
		})},
		{http.MethodGet, "/users/{id}", with(op("Users", "Get user by ID", "get_user"), id, nil, map[int]*openapi3.ResponseRef{
			200: b.jsonResponse("User", "User"),
			404: b.errorResponse("User not found"),
		})},
		{http.MethodPut, "/users/{id}", with(op("Users", "Update user", "update_user"), id, b.body("User"), map[int]*openapi3.ResponseRef{
			200: b.jsonResponse("Updated user", "User"),
			400: b.errorResponse("Validation error"),
			404: b.errorResponse("User not found"),
		})},
		{http.MethodDelete, "/users/{id}", with(op("Users", "Delete user", "delete_user"), id, nil, map[int]*openapi3.ResponseRef{
			204: noContent("Deleted"),
			404: b.errorResponse("User not found"),
		})},
		{http.MethodPost, "/users/login", with(op("Users", "User login", "login"), nil, b.body("LoginRequest"), map[int]*openapi3.ResponseRef{
			200: b.jsonResponse("Tokens and user", "LoginResponse"),
			400: b.errorResponse("Validation error"),
		})},

		{http.MethodGet, "/bookings", with(op("Bookings", "List bookings", "list_bookings"), pagingParams(queryString("status")), nil, map[int]*openapi3.ResponseRef{
			200: b.listResponse("Bookings", "Booking"),
			400: b.errorResponse("Invalid paging parameters"),
		})},
		{http.MethodPost, "/bookings", with(op("Bookings", "Create booking", "create_booking"),
			openapi3.Parameters{param(openapi3.NewHeaderParameter("Idempotency-Key").WithSchema(openapi3.NewStringSchema()))},
			b.body("Booking"), map[int]*openapi3.ResponseRef{
				201: b.jsonResponse("Created booking", "Booking"),
				400: b.errorResponse("Validation error"),
			})},
		{http.MethodGet, "/bookings/{id}", with(op("Bookings", "Get booking by ID", "get_booking"), id, nil, map[int]*openapi3.ResponseRef{
			200: b.jsonResponse("Booking", "Booking"),
			404: b.errorResponse("Booking not found"),
		})},
		{http.MethodPut, "/bookings/{id}", with(op("Bookings", "Update booking", "update_booking"), id, b.body("Booking"), map[int]*openapi3.ResponseRef{
			200: b.jsonResponse("Updated booking", "Booking"),
			400: b.errorResponse("Validation error"),
			404: b.errorResponse("Booking not found"),
		})},
		{http.MethodDelete, "/bookings/{id}", with(op("Bookings", "Cancel booking", "cancel_booking"), id, nil, map[int]*openapi3.ResponseRef{
			204: noContent("Cancelled"),
			404: b.errorResponse("Booking not found"),
		})},

		{http.MethodPost, "/payments", with(op("Payments", "Initiate payment", "initiate_payment"), nil, b.body("Payment"), map[int]*openapi3.ResponseRef{
			201: b.jsonResponse("Initiated payment", "Payment"),
			400: b.errorResponse("Validation error"),
		})},
		{http.MethodGet, "/payments/{id}", with(op("Payments", "Get payment status", "get_payment"), id, nil, map[int]*openapi3.ResponseRef{
			200: b.jsonResponse("Payment", "Payment"),
			404: b.errorResponse("Payment not found"),
		})},

		{http.MethodGet, "/notifications", with(op("Notifications", "List notifications for user", "list_notifications"), pagingParams(queryString("userId")), nil, map[int]*openapi3.ResponseRef{
			200: b.listResponse("Notifications", "Notification"),
			400: b.errorResponse("Invalid paging parameters"),
		})},

		{http.MethodPost, "/admin/actions", with(op("Admin", "Record an admin action", "record_admin_action"), nil, b.body("AdminAction"), map[int]*openapi3.ResponseRef{
			201: b.jsonResponse("Echoed action", "AdminAction"),
			400: b.errorResponse("Validation error"),
		})},
	}
}

// Document builds a fresh copy of the API description.
func Document() *openapi3.T {
	b := &builder{schemas: openapi3.Schemas{}}
	b.defineSchemas()

	doc := &openapi3.T{
		OpenAPI: "3.0.3",
		Info: &openapi3.Info{
			Title:       Title,
			Description: "REST API for users, bookings, payments, notifications and admin actions.",
			Version:     Version,
		},
		Tags: openapi3.Tags{
			{Name: "Health", Description: "Service health"},
			{Name: "Users", Description: "User management and login"},
			{Name: "Bookings", Description: "Booking lifecycle"},
			{Name: "Payments", Description: "Payment initiation and status"},
			{Name: "Notifications", Description: "User notifications"},
			{Name: "Admin", Description: "Admin actions"},
		},
		Paths:      openapi3.NewPaths(),
		Components: &openapi3.Components{Schemas: b.schemas},
	}
	for _, r := range b.routes() {
		doc.AddOperation(r.path, r.method, r.op)
	}
	return doc
}
