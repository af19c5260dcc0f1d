package wptest

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/giantswarm/mcp-wordpress/internal/wordpress"
)

func TestServer_PostIDs(t *testing.T) {
	srv := NewServer()
	defer srv.Close()

	create := func(t *testing.T) int64 {
		t.Helper()
		resp, err := http.Post(srv.URL+"/wp-json/wp/v2/posts", "application/json",
			strings.NewReader(`{"title":"T","content":"C"}`))
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		var p wordpress.Post
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&p))
		return p.ID
	}

	assert.Equal(t, int64(1), create(t))
	assert.Equal(t, int64(2), create(t))

	srv.SetNextID(42)
	assert.Equal(t, int64(42), create(t))
	assert.Equal(t, int64(43), create(t))

	added := srv.AddPost(wordpress.Post{ID: 100})
	assert.Equal(t, int64(100), added.ID)
	assert.Equal(t, int64(101), create(t))
}
