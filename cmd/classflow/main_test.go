package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/classflow/codec"
	"github.com/syssam/classflow/model"
	"github.com/syssam/classflow/runner"
)

const garage = `
interface Movable {
  public void move();
}

class Engine {
  private int hp;
}

class Car extends Movable {
  private String name;
}
`

type result struct {
	out, err string
}

func run(t *testing.T, ctx context.Context, stdin string, args ...string) (result, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newApp()
	cmd.Writer, cmd.ErrWriter = &out, &errOut
	cmd.Reader = strings.NewReader(stdin)
	err := cmd.Run(ctx, append([]string{"classflow"}, args...))
	return result{out: out.String(), err: errOut.String()}, err
}

// workspace creates a working directory holding the garage source.
func workspace(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile("Garage.java", []byte(garage), 0o644))
	return dir
}

func TestParse(t *testing.T) {
	workspace(t)

	_, err := run(t, context.Background(), "", "parse", "--out", "garage.yaml", "Garage.java")
	require.NoError(t, err)

	d, err := codec.ReadFile("garage.yaml")
	require.NoError(t, err)
	require.Len(t, d.Entities, 3)
	assert.Equal(t, []string{"Movable", "Engine", "Car"}, []string{d.Entities[0].Name, d.Entities[1].Name, d.Entities[2].Name})
	assert.Equal(t, []model.Relationship{model.NewRelationship("Car", "Movable", model.Implementation)}, d.Relationships)

	res, err := run(t, context.Background(), garage, "parse", "--format", "json", "-")
	require.NoError(t, err)
	var got model.Diagram
	require.NoError(t, json.Unmarshal([]byte(res.out), &got))
	assert.Len(t, got.Entities, 3)
}

func TestParse_Strict(t *testing.T) {
	workspace(t)
	src := "class A extends Ghost {\n}\n"

	res, err := run(t, context.Background(), src, "parse", "-")
	require.NoError(t, err)
	assert.Contains(t, res.err, "declaration skipped")

	_, err = run(t, context.Background(), src, "parse", "--strict", "-")
	assert.Error(t, err)
}

func TestConnectAndGen(t *testing.T) {
	dir := workspace(t)
	_, err := run(t, context.Background(), "", "parse", "--out", "garage.json", "Garage.java")
	require.NoError(t, err)

	_, err = run(t, context.Background(), "", "connect", "--source", "Car", "--target", "Engine", "--kind", "composition", "garage.json")
	require.NoError(t, err)

	res, err := run(t, context.Background(), "", "gen", "garage.json")
	require.NoError(t, err)
	assert.Contains(t, res.out, "class Car extends Movable {\n  private String name;\n  private Engine Engine;\n\n  public Car( Engine engine ){ this.engine = engine }\n}")

	_, err = run(t, context.Background(), "", "connect", "--source", "Engine", "--target", "Car", "--kind", "Dependency", "garage.json")
	require.NoError(t, err)
	_, err = run(t, context.Background(), "", "connect", "--source", "Car", "--target", "Engine", "--kind", "Aggregation", "garage.json")
	assert.Error(t, err)

	res, err = run(t, context.Background(), "", "gen", "--dialect", "go", "--package", "garage", "--out", "model", "garage.json")
	require.NoError(t, err)
	for _, name := range []string{"movable.go", "engine.go", "car.go"} {
		path := filepath.Join(dir, "model", name)
		assert.FileExists(t, path)
		assert.Contains(t, res.out, filepath.Join("model", name))
	}
	src, err := os.ReadFile(filepath.Join(dir, "model", "car.go"))
	require.NoError(t, err)
	assert.Contains(t, string(src), "package garage")
	assert.Contains(t, string(src), "type Car struct")
}

func TestErrors(t *testing.T) {
	workspace(t)
	tests := [][]string{
		{"gen"},
		{"gen", "missing.json"},
		{"gen", "--dialect", "cobol", "Garage.java"},
		{"connect", "--source", "a", "--target", "b", "--kind", "Friendship", "x.json"},
		{"run"},
		{"--config", "missing.yaml", "gen", "x.json"},
	}
	for _, args := range tests {
		t.Run(strings.Join(args, " "), func(t *testing.T) {
			_, err := run(t, context.Background(), "", args...)
			assert.Error(t, err)
		})
	}
}

func TestRun(t *testing.T) {
	workspace(t)
	_, err := run(t, context.Background(), "", "parse", "--out", "garage.yaml", "Garage.java")
	require.NoError(t, err)

	var got runner.Request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"stdout":"vroom\n","stderr":"warning"}`))
	}))
	defer srv.Close()

	res, err := run(t, context.Background(), "", "run", "--url", srv.URL, "--timeout", "2s", "--main", "new Car();", "garage.yaml")
	require.NoError(t, err)
	assert.Equal(t, "vroom\n", res.out)
	assert.Contains(t, res.err, "warning")
	assert.Equal(t, "new Car();", got.Main)
	assert.Contains(t, got.Code, "class Car extends Movable {")

	failing := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "down", http.StatusBadGateway)
	}))
	defer failing.Close()
	_, err = run(t, context.Background(), "", "run", "--url", failing.URL, "garage.yaml")
	assert.Error(t, err)
}

func TestWatch(t *testing.T) {
	dir := workspace(t)
	_, err := run(t, context.Background(), "", "parse", "--out", "garage.yaml", "Garage.java")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, err := run(t, ctx, "", "watch", "--out", "model", "garage.yaml")
		done <- err
	}()

	car := filepath.Join(dir, "model", "car.java")
	require.Eventually(t, func() bool {
		_, err := os.Stat(car)
		return err == nil
	}, 5*time.Second, 20*time.Millisecond)

	d, err := codec.ReadFile("garage.yaml")
	require.NoError(t, err)
	d.Entities = append(d.Entities, model.ClassEntity{ID: "Truck", Name: "Truck", Kind: model.KindClass})
	require.NoError(t, codec.WriteFile("garage.yaml", d))

	require.Eventually(t, func() bool {
		_, err := os.Stat(filepath.Join(dir, "model", "truck.java"))
		return err == nil
	}, 5*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop")
	}
}
