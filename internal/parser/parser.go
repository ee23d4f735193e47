package parser

import (
	"fmt"
	"net/url"
	"os"
	"regexp"
	"strings"

	"github.com/moamenhredeen/conductor/internal/models"
	"github.com/pb33f/libopenapi"
	v2 "github.com/pb33f/libopenapi/datamodel/high/v2"
	v3 "github.com/pb33f/libopenapi/datamodel/high/v3"
	"github.com/pb33f/libopenapi/utils"
)

// Parser reads the endpoints out of a Swagger 2.0 or OpenAPI 3.x document
type Parser struct {
	document libopenapi.Document
}

// ParseFile parses an API document file and returns a Parser instance
func ParseFile(filePath string) (*Parser, error) {
	specBytes, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read API document: %w", err)
	}
	return Parse(specBytes)
}

// Parse parses an API document held in memory
func Parse(specBytes []byte) (*Parser, error) {
	document, err := libopenapi.NewDocument(specBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to parse API document: %w", err)
	}

	return &Parser{document: document}, nil
}

// IsSwagger reports whether the document is Swagger 2.0 rather than OpenAPI 3
func (p *Parser) IsSwagger() bool {
	info := p.document.GetSpecInfo()
	return info != nil && info.SpecType == utils.OpenApi2
}

// GetEndpoints returns every operation of the document. Paths are prefixed
// with the Swagger basePath or the path of the first OpenAPI server.
func (p *Parser) GetEndpoints() ([]models.Endpoint, error) {
	if p.IsSwagger() {
		return p.swaggerEndpoints()
	}
	return p.openAPIEndpoints()
}

func (p *Parser) swaggerEndpoints() ([]models.Endpoint, error) {
	model, errs := p.document.BuildV2Model()
	if errs != nil {
		return nil, fmt.Errorf("failed to build v2 model: %v", errs)
	}

	var endpoints []models.Endpoint
	paths := model.Model.Paths
	if paths == nil || paths.PathItems == nil {
		return endpoints, nil
	}

	prefix := strings.TrimSuffix(model.Model.BasePath, "/")
	for pair := paths.PathItems.First(); pair != nil; pair = pair.Next() {
		item := pair.Value()
		if item == nil {
			continue
		}

		methods := map[string]*v2.Operation{
			"GET":     item.Get,
			"POST":    item.Post,
			"PUT":     item.Put,
			"PATCH":   item.Patch,
			"DELETE":  item.Delete,
			"HEAD":    item.Head,
			"OPTIONS": item.Options,
		}
		for method, op := range methods {
			if op == nil {
				continue
			}
			endpoints = append(endpoints, models.Endpoint{
				Path:        prefix + pair.Key(),
				Method:      method,
				OperationID: op.OperationId,
				Tags:        append([]string{}, op.Tags...),
			})
		}
	}

	return endpoints, nil
}

func (p *Parser) openAPIEndpoints() ([]models.Endpoint, error) {
	model, errs := p.document.BuildV3Model()
	if errs != nil {
		return nil, fmt.Errorf("failed to build v3 model: %v", errs)
	}

	var endpoints []models.Endpoint
	paths := model.Model.Paths
	if paths == nil || paths.PathItems == nil {
		return endpoints, nil
	}

	prefix := ""
	if len(model.Model.Servers) > 0 && model.Model.Servers[0] != nil {
		prefix = serverPath(model.Model.Servers[0].URL)
	}

	for pair := paths.PathItems.First(); pair != nil; pair = pair.Next() {
		item := pair.Value()
		if item == nil {
			continue
		}

		methods := map[string]*v3.Operation{
			"GET":     item.Get,
			"POST":    item.Post,
			"PUT":     item.Put,
			"PATCH":   item.Patch,
			"DELETE":  item.Delete,
			"HEAD":    item.Head,
			"OPTIONS": item.Options,
		}
		for method, op := range methods {
			if op == nil {
				continue
			}
			endpoints = append(endpoints, models.Endpoint{
				Path:        prefix + pair.Key(),
				Method:      method,
				OperationID: op.OperationId,
				Tags:        append([]string{}, op.Tags...),
			})
		}
	}

	return endpoints, nil
}

// serverPath extracts the path component of a server URL, "" when it has none
// or cannot be parsed (server variables in the host, for example).
func serverPath(serverURL string) string {
	u, err := url.Parse(serverURL)
	if err != nil {
		return ""
	}
	return strings.TrimSuffix(u.Path, "/")
}

var placeholderPattern = regexp.MustCompile(`\{[^}/]*\}`)

// NormalizePath blanks placeholder names so /a/{id} and /a/{workflowId} compare equal
func NormalizePath(path string) string {
	path = placeholderPattern.ReplaceAllString(path, "{}")
	if len(path) > 1 {
		path = strings.TrimSuffix(path, "/")
	}
	return path
}

// EndpointIndex looks endpoints up by method and normalized path
type EndpointIndex map[string]models.Endpoint

// NewEndpointIndex indexes endpoints; the first one wins on duplicates
func NewEndpointIndex(endpoints []models.Endpoint) EndpointIndex {
	idx := make(EndpointIndex, len(endpoints))
	for _, ep := range endpoints {
		key := indexKey(ep.Method, ep.Path)
		if _, ok := idx[key]; !ok {
			idx[key] = ep
		}
	}
	return idx
}

// Lookup finds the endpoint declared for method and path
func (idx EndpointIndex) Lookup(method, path string) (models.Endpoint, bool) {
	ep, ok := idx[indexKey(method, path)]
	return ep, ok
}

func indexKey(method, path string) string {
	return strings.ToUpper(method) + " " + NormalizePath(path)
}
