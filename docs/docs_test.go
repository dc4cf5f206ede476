package docs

import (
	"encoding/json"
	"testing"

	"github.com/swaggo/swag"
)

func TestSwaggerDocRegistered(t *testing.T) {
	doc, err := swag.ReadDoc(SwaggerInfo.InstanceName())
	if err != nil {
		t.Fatalf("read doc: %v", err)
	}

	var spec struct {
		Info  struct{ Title string } `json:"info"`
		Paths map[string]any         `json:"paths"`
	}
	if err := json.Unmarshal([]byte(doc), &spec); err != nil {
		t.Fatalf("doc is not valid JSON: %v", err)
	}
	if spec.Info.Title != "intradaypulse API" {
		t.Fatalf("title=%q", spec.Info.Title)
	}
	for _, p := range []string{"/api/v1/intraday", "/api/v1/intraday/{symbol}", "/healthz", "/readyz"} {
		if _, ok := spec.Paths[p]; !ok {
			t.Fatalf("missing path %s", p)
		}
	}
}
