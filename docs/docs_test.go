package docs_test

import (
	"encoding/json"
	"testing"

	"github.com/swaggo/swag"

	"weekly-task-report/docs"
)

func TestSwaggerDocRegistered(t *testing.T) {
	raw, err := swag.ReadDoc(docs.SwaggerInfo.InstanceName())
	if err != nil {
		t.Fatalf("read doc: %v", err)
	}

	var doc struct {
		Info struct {
			Title string `json:"title"`
		} `json:"info"`
		Paths map[string]any `json:"paths"`
	}
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		t.Fatalf("doc is not valid JSON: %v\n%s", err, raw)
	}
	if doc.Info.Title != "Weekly Task Report Bot" {
		t.Errorf("unexpected title %q", doc.Info.Title)
	}
	for _, path := range []string{"/health", "/ready", "/live", "/webhook/telegram"} {
		if _, ok := doc.Paths[path]; !ok {
			t.Errorf("missing path %s", path)
		}
	}
}
