package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	prev := now
	now = func() time.Time { return time.Date(2024, 6, 12, 9, 0, 0, 0, time.UTC) }
	t.Cleanup(func() { now = prev })

	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func writePlan(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "plan.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const plan = `[
	{"plan_date": "2024-06-10", "ingredients_text": "2 eggs\n1 cup milk"},
	{"plan_date": "2024-06-12", "ingredients_text": "3 eggs\nsalt to taste"},
	{"plan_date": "2024-06-18", "ingredients_text": "1 lemon"}
]`

func TestAggregateCmd(t *testing.T) {
	path := writePlan(t, plan)

	out, err := execute(t, "aggregate", "--file", path, "--week", "2024-06-13")
	require.NoError(t, err)
	assert.Equal(t, "1 cup milk\n5 eggs\n1 salt to taste\n", out)

	out, err = execute(t, "aggregate", "-f", path)
	require.NoError(t, err)
	assert.Contains(t, out, "1 lemon")

	out, err = execute(t, "aggregate", "-f", path, "--week", "2024-06-17", "--json")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"label":"lemon","quantity":1}]`, out)
}

func TestAggregateCmd_Errors(t *testing.T) {
	_, err := execute(t, "aggregate")
	assert.Error(t, err)

	_, err = execute(t, "aggregate", "-f", filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorContains(t, err, "open plan file")

	_, err = execute(t, "aggregate", "-f", writePlan(t, `[{"plan_date":"2024-06-10","unknown":1}]`))
	assert.ErrorContains(t, err, "decode plan file")
}

func TestWeekCmd(t *testing.T) {
	out, err := execute(t, "week", "--date", "2024-06-16")
	require.NoError(t, err)
	assert.Contains(t, out, "2024-06-10")
	assert.Contains(t, out, "2024-06-16")
	assert.Contains(t, out, "previous: 2024-06-03")

	out, err = execute(t, "week")
	require.NoError(t, err)
	assert.Contains(t, out, "next:     2024-06-17")

	_, err = execute(t, "week", "--date", "yesterday")
	assert.Error(t, err)
}

func TestListCmd(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"week_start":"2024-06-10","week_end":"2024-06-16","meal_count":2,
			"items":[{"label":"eggs","quantity":5,"display":"5 eggs"}],"sections":[]}`))
	}))
	defer srv.Close()

	out, err := execute(t, "list", "--server", srv.URL, "--user", "u1")
	require.NoError(t, err)
	assert.Equal(t, "Week 2024-06-10 to 2024-06-16 (2 meals)\n5 eggs\n", out)

	_, err = execute(t, "list", "--server", srv.URL)
	assert.ErrorContains(t, err, "--user is required")
}
