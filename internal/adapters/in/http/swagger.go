package http

import (
	"encoding/json"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/swaggo/swag"
)

type openAPIDoc string

func (d openAPIDoc) ReadDoc() string {
	return string(d)
}

var registerDocOnce sync.Once

// registerSwaggerDoc publishes the document under swag's default instance,
// which echo-swagger serves as /swagger/doc.json.
func registerSwaggerDoc(swagger *openapi3.T) error {
	raw, err := json.Marshal(swagger)
	if err != nil {
		return err
	}

	registerDocOnce.Do(func() {
		swag.Register(swag.Name, openAPIDoc(raw))
	})
	return nil
}
