package suggest

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Suggest(t *testing.T) {
	var gotPath, gotKey string
	var gotQuery map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("x-api-key")
		gotQuery = map[string]string{
			"context": r.URL.Query().Get("context"),
			"prefix":  r.URL.Query().Get("prefix"),
			"k":       r.URL.Query().Get("k"),
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":["nhà","nhanh"]}`))
	}))
	defer srv.Close()

	c := New(srv.URL, func(o *Options) { o.APIKey = "dev-key-123" })
	cands, err := c.Suggest(context.Background(), "Món ăn này được làm", "nh", 5)
	require.NoError(t, err)
	assert.Equal(t, []string{"nhà", "nhanh"}, cands)

	assert.Equal(t, "/v1/suggest", gotPath)
	assert.Equal(t, "dev-key-123", gotKey)
	assert.Equal(t, "Món ăn này được làm", gotQuery["context"])
	assert.Equal(t, "nh", gotQuery["prefix"])
	assert.Equal(t, "5", gotQuery["k"])
}

func TestClient_SuggestDefaultsK(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "5", r.URL.Query().Get("k"))
		_, _ = w.Write([]byte(`{"candidates":[]}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	cands, err := c.Suggest(context.Background(), "", "nh", 0)
	require.NoError(t, err)
	assert.Empty(t, cands)
}

func TestClient_SuggestNonSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.Suggest(context.Background(), "", "nh", 5)
	require.Error(t, err)

	var se *ServiceError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, 404, se.Status)
	assert.Contains(t, err.Error(), "404")
}

func TestClient_SuggestMissingOrMalformedCandidates(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"field absent", `{}`},
		{"field wrong type", `{"candidates":"oops"}`},
		{"field null", `{"candidates":null}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			c := New(srv.URL)
			cands, err := c.Suggest(context.Background(), "", "nh", 5)
			require.NoError(t, err)
			assert.Empty(t, cands)
		})
	}
}

func TestClient_NoAPIKeyHeaderWhenUnset(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, present := r.Header["X-Api-Key"]
		assert.False(t, present)
		_, _ = w.Write([]byte(`{"candidates":[]}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.Suggest(context.Background(), "", "nh", 5)
	require.NoError(t, err)
}

func TestClient_Autocorrect(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/autocorrect", r.URL.Path)
		assert.Equal(t, "nhah", r.URL.Query().Get("token"))
		_, _ = w.Write([]byte(`{"input":"nhah","corrected":"nhanh"}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	got, err := c.Autocorrect(context.Background(), "nhah")
	require.NoError(t, err)
	assert.Equal(t, "nhanh", got)
}

func TestClient_Health(t *testing.T) {
	healthy := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/health", r.URL.Path)
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer healthy.Close()
	require.NoError(t, New(healthy.URL).Health(context.Background()))

	sick := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer sick.Close()
	require.Error(t, New(sick.URL).Health(context.Background()))
}
