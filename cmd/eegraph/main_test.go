package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/eegraph/internal/app"
	"github.com/vk/eegraph/internal/testutil"
	"github.com/vk/eegraph/pkg/catalog"
)

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}
	err := run(out, errOut, args)
	return out.String(), errOut.String(), err
}

func requireExitCode(t *testing.T, err error, code int) {
	t.Helper()

	var exitErr *ExitError
	require.True(t, errors.As(err, &exitErr), "expected an ExitError, got %v", err)
	assert.Equal(t, code, exitErr.Code)
}

func TestRun_Help(t *testing.T) {
	t.Parallel()

	out, _, err := execute(t, "--help")

	require.NoError(t, err)
	assert.Contains(t, out, "Usage:")
	for _, sub := range []string{"catalog", "methods", "convert", "eval"} {
		assert.Contains(t, out, sub)
	}
}

func TestRun_ParseErrors(t *testing.T) {
	t.Parallel()

	_, _, err := execute(t, "catalog", "--this-is-not-a-valid-flag")
	assert.ErrorContains(t, err, "unknown flag: --this-is-not-a-valid-flag")

	_, _, err = execute(t, "catalog", "--log-level", "loud")
	requireExitCode(t, err, 2)

	_, _, err = execute(t, "methods")
	assert.ErrorContains(t, err, "accepts 1 arg(s)")
}

func TestCatalogCmd(t *testing.T) {
	t.Parallel()

	t.Run("table hides hidden functions", func(t *testing.T) {
		t.Parallel()

		out, _, err := execute(t, "catalog")

		require.NoError(t, err)
		assert.Contains(t, out, "String.cat")
		assert.Contains(t, out, "string1 String, string2 String")
		assert.NotContains(t, out, "Filter.eq ")
	})

	t.Run("all includes hidden functions", func(t *testing.T) {
		t.Parallel()

		out, _, err := execute(t, "catalog", "--all", "--namespace", "Filter")

		require.NoError(t, err)
		assert.Contains(t, out, "Filter.eq")
		assert.Contains(t, out, "deprecated: Use Filter.equals.; hidden")
		assert.NotContains(t, out, "String.cat")
	})

	t.Run("json export", func(t *testing.T) {
		t.Parallel()

		out, _, err := execute(t, "catalog", "--json", "--all")
		require.NoError(t, err)

		sigs, err := catalog.DecodeJSON(strings.NewReader(out))
		require.NoError(t, err)
		assert.Len(t, sigs, testutil.Catalog(t).Len())
	})
}

func TestMethodsCmd(t *testing.T) {
	t.Parallel()

	out, _, err := execute(t, "methods", "Image")

	require.NoError(t, err)
	assert.Contains(t, out, "Image.select")
	assert.Contains(t, out, "Element.get", "methods are inherited from the parent type")

	_, _, err = execute(t, "methods", "Nothing")
	requireExitCode(t, err, 1)
}

func TestConvertCmd(t *testing.T) {
	t.Parallel()

	dir := testutil.WriteFiles(t, map[string]string{
		"cat.json": `{"result": "0", "values": {"0": {"functionInvocationValue": {
			"functionName": "String.cat",
			"arguments": {"string1": {"constantValue": "foo"}, "string2": {"constantValue": "bar"}}
		}}}}`,
	})
	path := filepath.Join(dir, "cat.json")

	out, _, err := execute(t, "convert", path, "--to", "legacy")
	require.NoError(t, err)
	assert.Equal(t, `{"algorithm":"String.cat","string1":"foo","string2":"bar"}`+"\n", out)

	_, _, err = execute(t, "convert", path, "--to", "xml")
	requireExitCode(t, err, 2)
}

func TestEvalCmd(t *testing.T) {
	t.Parallel()

	listing := catalog.ToWire(testutil.Catalog(t).All())
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.Method == http.MethodGet {
			_ = json.NewEncoder(w).Encode(listing)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"result": "foobar"})
	}))
	t.Cleanup(srv.Close)

	dir := testutil.WriteFiles(t, map[string]string{
		"ok.json":  `{"algorithm": "String.cat", "string1": "foo", "string2": "bar"}`,
		"bad.json": `{"algorithm": "No.such"}`,
	})

	out, _, err := execute(t, "eval", "--base-url", srv.URL, "--project", "demo", "--json", filepath.Join(dir, "ok.json"))
	require.NoError(t, err)
	var line map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &line))
	assert.Equal(t, "foobar", line["result"])

	out, _, err = execute(t, "eval", "--base-url", srv.URL, "--project", "demo",
		filepath.Join(dir, "ok.json"), filepath.Join(dir, "bad.json"))
	requireExitCode(t, err, 1)
	assert.Contains(t, out, `"foobar"`)
	assert.Contains(t, out, "unknown function: No.such")

	_, _, err = execute(t, "eval", filepath.Join(dir, "ok.json"))
	assert.ErrorIs(t, err, app.ErrNoService)
}

func TestRun_Context(t *testing.T) {
	t.Parallel()

	root := newRootCmd()
	root.SetArgs([]string{"catalog", "--namespace", "Date"})
	out := &bytes.Buffer{}
	root.SetOut(out)
	root.SetErr(&bytes.Buffer{})

	require.NoError(t, root.ExecuteContext(context.Background()))
	assert.Contains(t, out.String(), "Date.advance")
}
