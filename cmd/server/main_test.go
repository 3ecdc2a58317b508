package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRewriteCommand(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte("<html><head><title>Yale News</title></head><body><p>YALE and yale</p></body></html>"))
	}))
	defer upstream.Close()

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"rewrite", upstream.URL})

	require.NoError(t, cmd.Execute())

	var result map[string]interface{}
	require.NoError(t, sonic.Unmarshal(out.Bytes(), &result))
	assert.Equal(t, true, result["success"])
	assert.Equal(t, upstream.URL, result["originalUrl"])
	assert.Equal(t, "Fale News", result["title"])
	assert.Contains(t, result["content"], "<p>FALE and fale</p>")
}

func TestRewriteCommandErrors(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"missing url", []string{"rewrite"}, "accepts 1 arg(s)"},
		{"empty url", []string{"rewrite", ""}, "URL is required"},
		{"invalid url", []string{"rewrite", "not-a-valid-url"}, "Failed to fetch content: "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := newRootCmd()
			cmd.SetOut(&bytes.Buffer{})
			cmd.SetErr(&bytes.Buffer{})
			cmd.SetArgs(tt.args)

			err := cmd.Execute()

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestServeRejectsArgs(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"serve", "extra"})

	assert.Error(t, cmd.Execute())
}

func TestServeInvalidConfig(t *testing.T) {
	t.Setenv("FETCH_TIMEOUT", "-1s")

	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"serve", "--port", "0"})

	err := cmd.Execute()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "FETCH_TIMEOUT")
}
