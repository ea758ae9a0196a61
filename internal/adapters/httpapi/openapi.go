package httpapi

import (
	"embed"
	"encoding/json"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed openapi.yaml
var apiSpecFS embed.FS

var apiSpec struct {
	once sync.Once
	json []byte
	err  error
}

// apiSpecJSON returns the embedded OpenAPI document rendered as JSON.
// The YAML is decoded and re-encoded once, on the first request.
func apiSpecJSON() ([]byte, error) {
	apiSpec.once.Do(func() {
		raw, err := apiSpecFS.ReadFile("openapi.yaml")
		if err != nil {
			apiSpec.err = err
			return
		}

		var doc interface{}
		if err := yaml.Unmarshal(raw, &doc); err != nil {
			apiSpec.err = err
			return
		}

		apiSpec.json, apiSpec.err = json.MarshalIndent(stringifyKeys(doc), "", "  ")
	})
	return apiSpec.json, apiSpec.err
}

// stringifyKeys rewrites decoded YAML maps so every key is a string,
// which encoding/json requires.
func stringifyKeys(v interface{}) interface{} {
	switch v := v.(type) {
	case map[string]interface{}:
		out := make(map[string]interface{}, len(v))
		for key, value := range v {
			out[key] = stringifyKeys(value)
		}
		return out
	case map[interface{}]interface{}:
		out := make(map[string]interface{}, len(v))
		for key, value := range v {
			if s, ok := key.(string); ok {
				out[s] = stringifyKeys(value)
			}
		}
		return out
	case []interface{}:
		for i, value := range v {
			v[i] = stringifyKeys(value)
		}
		return v
	default:
		return v
	}
}
