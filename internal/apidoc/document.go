package apidoc

import (
	"net/http"
	"sort"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/goccy/go-json"
	"github.com/swaggo/swag"
)

// Property is one field of a component schema.
type Property struct {
	Name      string
	Type      string
	Format    string
	Ref       string
	MaxLength int
	ReadOnly  bool
	WriteOnly bool
	Nullable  bool
	Required  bool
}

// Schema is a named component schema.
type Schema struct {
	Name       string
	Properties []Property
}

// Info is the document header.
type Info struct {
	Title       string
	Version     string
	Description string
}

// Document collects endpoints and schemas and renders OpenAPI 3 JSON.
type Document struct {
	info      Info
	endpoints []Endpoint
	schemas   []Schema

	once     sync.Once
	rendered []byte
	err      error
}

// NewDocument constructs an empty document.
func NewDocument(info Info) *Document {
	return &Document{info: info}
}

// AddEndpoints appends endpoint descriptors.
func (d *Document) AddEndpoints(endpoints ...Endpoint) {
	d.endpoints = append(d.endpoints, endpoints...)
}

// AddResource appends the six operations of r.
func (d *Document) AddResource(r Resource) {
	d.endpoints = append(d.endpoints, r.Endpoints()...)
}

// AddSchemas appends component schemas.
func (d *Document) AddSchemas(schemas ...Schema) {
	d.schemas = append(d.schemas, schemas...)
}

// Endpoints returns the registered descriptors.
func (d *Document) Endpoints() []Endpoint {
	return d.endpoints
}

// JSON renders the document once and caches the result.
func (d *Document) JSON() ([]byte, error) {
	d.once.Do(func() {
		d.rendered, d.err = json.Marshal(d.build())
	})
	return d.rendered, d.err
}

// ReadDoc implements swag.Swagger.
func (d *Document) ReadDoc() string {
	b, err := d.JSON()
	if err != nil {
		return "{}"
	}
	return string(b)
}

// registered is the document the swag registry hands to the swagger UI. swag
// panics on a second Register, so a single proxy is registered once and
// forwards to the latest document.
var (
	registered   atomic.Pointer[Document]
	registerOnce sync.Once
)

type registryProxy struct{}

func (registryProxy) ReadDoc() string {
	if d := registered.Load(); d != nil {
		return d.ReadDoc()
	}
	return "{}"
}

// Register publishes the document in the swag registry so the swagger UI can
// load it.
func (d *Document) Register() {
	registered.Store(d)
	registerOnce.Do(func() { swag.Register(swag.Name, registryProxy{}) })
}

// ServeHTTP serves the rendered document.
func (d *Document) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	b, err := d.JSON()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/vnd.oai.openapi+json")
	_, _ = w.Write(b)
}

type object = map[string]any

func (d *Document) build() object {
	paths := object{}
	for _, e := range d.endpoints {
		item, _ := paths[e.Path].(object)
		if item == nil {
			item = object{}
			paths[e.Path] = item
		}
		item[strings.ToLower(e.Method)] = operation(e)
	}

	schemas := object{}
	for _, name := range []string{SchemaValidationError, SchemaUnauthenticatedError, SchemaForbiddenError, SchemaNotFoundError} {
		schemas[name] = envelopeSchema()
	}
	for _, s := range d.schemas {
		schemas[s.Name] = componentSchema(s)
	}

	return object{
		"openapi": "3.0.3",
		"info": object{
			"title":       d.info.Title,
			"version":     d.info.Version,
			"description": d.info.Description,
		},
		"paths": paths,
		"components": object{
			"schemas": schemas,
			"securitySchemes": object{
				"jwtAuth": object{"type": "http", "scheme": "bearer", "bearerFormat": "JWT"},
			},
		},
	}
}

func operation(e Endpoint) object {
	op := object{
		"operationId": e.OperationID,
		"description": e.Description,
	}
	if e.Tag != "" {
		op["tags"] = []string{e.Tag}
	}
	if len(e.Params) > 0 {
		params := make([]object, 0, len(e.Params))
		for _, p := range e.Params {
			param := object{
				"name":     p.Name,
				"in":       p.In,
				"required": p.Required,
				"schema":   object{"type": p.Type},
			}
			if p.Description != "" {
				param["description"] = p.Description
			}
			params = append(params, param)
		}
		op["parameters"] = params
	}
	if e.RequestBody != "" {
		op["requestBody"] = object{
			"required": true,
			"content":  object{"application/json": object{"schema": ref(e.RequestBody)}},
		}
	}
	if e.RequiresAuth {
		op["security"] = []object{{"jwtAuth": []string{}}}
	}

	responses := object{}
	all := Responses(e)
	codes := make([]int, 0, len(all))
	for code := range all {
		codes = append(codes, code)
	}
	sort.Ints(codes)
	for _, code := range codes {
		resp := all[code]
		body := object{"description": resp.Description}
		if resp.Schema != "" {
			schema := ref(resp.Schema)
			if resp.Paginated {
				schema = pageSchema(resp.Schema)
			}
			body["content"] = object{"application/json": object{"schema": schema}}
		}
		responses[strconv.Itoa(code)] = body
	}
	op["responses"] = responses
	return op
}

func ref(name string) object {
	return object{"$ref": "#/components/schemas/" + name}
}

func pageSchema(item string) object {
	return object{
		"type":     "object",
		"required": []string{"count", "results"},
		"properties": object{
			"count":    object{"type": "integer", "example": 123},
			"next":     object{"type": "string", "nullable": true, "format": "uri"},
			"previous": object{"type": "string", "nullable": true, "format": "uri"},
			"results":  object{"type": "array", "items": ref(item)},
		},
	}
}

func envelopeSchema() object {
	return object{
		"type":     "object",
		"required": []string{"type", "errors"},
		"properties": object{
			"type": object{"type": "string", "enum": []string{"validation_error", "client_error", "server_error"}},
			"errors": object{
				"type": "array",
				"items": object{
					"type":     "object",
					"required": []string{"code", "detail", "attr"},
					"properties": object{
						"code":   object{"type": "string"},
						"detail": object{"type": "string"},
						"attr":   object{"type": "string", "nullable": true},
					},
				},
			},
		},
	}
}

func componentSchema(s Schema) object {
	props := object{}
	var required []string
	for _, p := range s.Properties {
		var prop object
		if p.Ref != "" {
			prop = object{"allOf": []object{ref(p.Ref)}}
		} else {
			prop = object{"type": p.Type}
			if p.Format != "" {
				prop["format"] = p.Format
			}
			if p.MaxLength > 0 {
				prop["maxLength"] = p.MaxLength
			}
		}
		if p.ReadOnly {
			prop["readOnly"] = true
		}
		if p.WriteOnly {
			prop["writeOnly"] = true
		}
		if p.Nullable {
			prop["nullable"] = true
		}
		props[p.Name] = prop
		if p.Required {
			required = append(required, p.Name)
		}
	}
	out := object{"type": "object", "properties": props}
	if len(required) > 0 {
		out["required"] = required
	}
	return out
}
