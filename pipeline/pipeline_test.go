package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rushteam/shoprec/core"
)

type appendNode struct {
	name string
	fail bool
}

func (n *appendNode) Name() string { return n.name }
func (n *appendNode) Kind() Kind   { return KindPostProcess }

func (n *appendNode) Process(
	_ context.Context,
	_ *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	if n.fail {
		return nil, errors.New(n.name + " failed")
	}
	return append(items, core.NewItem(n.name)), nil
}

func TestPipelineRun(t *testing.T) {
	p := &Pipeline{
		Nodes: []Node{
			&appendNode{name: "first"},
			&appendNode{name: "second"},
		},
	}

	out, err := p.Run(context.Background(), &core.RecommendContext{}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 2 || out[0].ID != "first" || out[1].ID != "second" {
		t.Fatalf("out = %v, want nodes applied in order", out)
	}
}

func TestPipelineRunStopsOnError(t *testing.T) {
	p := &Pipeline{
		Nodes: []Node{
			&appendNode{name: "ok"},
			&appendNode{name: "bad", fail: true},
			&appendNode{name: "never"},
		},
	}

	_, err := p.Run(context.Background(), &core.RecommendContext{}, nil)
	if err == nil {
		t.Fatal("expected node error to propagate")
	}
}

func TestNodeFactory(t *testing.T) {
	f := NewNodeFactory()
	f.Register("test.append", func(cfg map[string]interface{}) (Node, error) {
		name, _ := cfg["name"].(string)
		return &appendNode{name: name}, nil
	})

	node, err := f.Build("test.append", map[string]interface{}{"name": "n1"})
	if err != nil {
		t.Fatal(err)
	}
	if node.Name() != "n1" {
		t.Errorf("name = %q", node.Name())
	}

	if _, err := f.Build("unknown.type", nil); err == nil {
		t.Error("unknown type should fail")
	}
}

func TestLoadFromYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pipeline.yaml")
	content := []byte(`
pipeline:
  name: homepage
  nodes:
    - type: test.append
      config:
        name: n1
    - type: test.append
      config:
        name: n2
`)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromYAML(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Pipeline.Name != "homepage" || len(cfg.Pipeline.Nodes) != 2 {
		t.Fatalf("cfg = %+v", cfg.Pipeline)
	}

	f := NewNodeFactory()
	f.Register("test.append", func(c map[string]interface{}) (Node, error) {
		name, _ := c["name"].(string)
		return &appendNode{name: name}, nil
	})
	p, err := cfg.BuildPipeline(f)
	if err != nil {
		t.Fatal(err)
	}
	if len(p.Nodes) != 2 || p.Nodes[1].Name() != "n2" {
		t.Fatalf("built pipeline = %v", p.Nodes)
	}
}
