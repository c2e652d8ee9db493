package objmodel

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

const triangleOBJ = `# simple triangle
v 0.0 0.0 0.0
v 1.0 0.0 0.0
v 0.0 1.0 0.0
f 1 2 3
`

const quadOBJ = `v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
f 1/1/1 2/2/2 3/3/3 4/4/4
`

func writeMesh(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
		t.Fatalf("write mesh: %v", err)
	}
}

func TestFileLoaderLoadsBodies(t *testing.T) {
	dir := t.TempDir()
	writeMesh(t, dir, "a.obj", triangleOBJ)
	writeMesh(t, dir, "b.obj", triangleOBJ)

	ri := ResourceIdentifier{Directory: dir, Meshes: []string{"a.obj", "b.obj"}}
	model, err := NewFileLoader().Load(ri)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if model.BodyCount() != 2 {
		t.Fatalf("expected 2 bodies, got %d", model.BodyCount())
	}
	body := model.Body(0)
	if body.Name != "a.obj" {
		t.Errorf("expected body name a.obj, got %s", body.Name)
	}
	if len(body.Vertices) != 3 {
		t.Errorf("expected 3 vertices, got %d", len(body.Vertices))
	}
	if len(body.Triangles) != 1 {
		t.Errorf("expected 1 triangle, got %d", len(body.Triangles))
	}
	if body.Triangles[0] != [3]int{0, 1, 2} {
		t.Errorf("expected 0-based triangle indices, got %v", body.Triangles[0])
	}
}

func TestFileLoaderTriangulatesQuads(t *testing.T) {
	dir := t.TempDir()
	writeMesh(t, dir, "quad.obj", quadOBJ)

	model, err := NewFileLoader().Load(ResourceIdentifier{Directory: dir, Meshes: []string{"quad.obj"}})
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	body := model.Body(0)
	if len(body.Triangles) != 2 {
		t.Fatalf("expected quad fan-triangulated into 2, got %d", len(body.Triangles))
	}
	if body.Triangles[0] != [3]int{0, 1, 2} || body.Triangles[1] != [3]int{0, 2, 3} {
		t.Errorf("unexpected triangulation: %v", body.Triangles)
	}
}

func TestFileLoaderMissingFile(t *testing.T) {
	ri := ResourceIdentifier{Directory: t.TempDir(), Meshes: []string{"absent.obj"}}
	_, err := NewFileLoader().Load(ri)
	if err == nil {
		t.Fatal("expected error for missing mesh")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected wrapped fs error, got %v", err)
	}
}

func TestFileLoaderEmptyIdentifier(t *testing.T) {
	_, err := NewFileLoader().Load(ResourceIdentifier{})
	if err == nil {
		t.Fatal("expected error for identifier without meshes")
	}
}

func TestFileLoaderRejectsBadFace(t *testing.T) {
	dir := t.TempDir()
	writeMesh(t, dir, "bad.obj", "v 0 0 0\nf 1 2 9\n")

	_, err := NewFileLoader().Load(ResourceIdentifier{Directory: dir, Meshes: []string{"bad.obj"}})
	if err == nil {
		t.Fatal("expected error for out-of-range face index")
	}
}

func TestMeshPath(t *testing.T) {
	ri := ResourceIdentifier{Directory: "/data/meshes", Meshes: []string{"mug.obj"}}
	want := filepath.Join("/data/meshes", "mug.obj")
	if got := ri.MeshPath(0); got != want {
		t.Errorf("expected %s, got %s", want, got)
	}
}
