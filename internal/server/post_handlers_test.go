package server

import (
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostLifecycle(t *testing.T) {
	srv, app := newTestServer(t)

	author, token := createServerUser(t, srv, "author", "startup")

	resp := doJSON(t, app, fiber.MethodPost, "/api/posts/", token, fiber.Map{
		"title":   "We are hiring",
		"content": "Looking for a founding engineer.",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	body := decodeBody(t, resp)
	post := body["post"].(map[string]interface{})
	postID := post["id"].(float64)

	// Posts are publicly readable without a token.
	resp = doJSON(t, app, fiber.MethodGet, "/api/posts/"+itoa(uint(postID)), "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body = decodeBody(t, resp)
	assert.Equal(t, "We are hiring", body["post"].(map[string]interface{})["title"])

	resp = doJSON(t, app, fiber.MethodGet, "/api/posts/", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body = decodeBody(t, resp)
	assert.Len(t, body["posts"].([]interface{}), 1)

	// Author-scoped listing.
	resp = doJSON(t, app, fiber.MethodGet, "/api/users/"+itoa(author.ID)+"/posts", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body = decodeBody(t, resp)
	assert.Len(t, body["posts"].([]interface{}), 1)

	// Edit and delete stay with the author.
	_, otherToken := createServerUser(t, srv, "other", "investor")
	resp = doJSON(t, app, fiber.MethodPut, "/api/posts/"+itoa(uint(postID)), otherToken, fiber.Map{
		"title": "hijacked",
	})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = doJSON(t, app, fiber.MethodPut, "/api/posts/"+itoa(uint(postID)), token, fiber.Map{
		"title": "We are hiring (closed)",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doJSON(t, app, fiber.MethodDelete, "/api/posts/"+itoa(uint(postID)), otherToken, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = doJSON(t, app, fiber.MethodDelete, "/api/posts/"+itoa(uint(postID)), token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doJSON(t, app, fiber.MethodGet, "/api/posts/"+itoa(uint(postID)), "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestPostAdminModeration(t *testing.T) {
	srv, app := newTestServer(t)

	_, authorToken := createServerUser(t, srv, "author", "startup")
	_, adminToken := createServerUser(t, srv, "admin", "admin")

	resp := doJSON(t, app, fiber.MethodPost, "/api/posts/", authorToken, fiber.Map{
		"title":   "Borderline",
		"content": "content",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	body := decodeBody(t, resp)
	postID := body["post"].(map[string]interface{})["id"].(float64)

	resp = doJSON(t, app, fiber.MethodDelete, "/api/posts/"+itoa(uint(postID)), adminToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestPostValidation(t *testing.T) {
	srv, app := newTestServer(t)

	_, token := createServerUser(t, srv, "author", "startup")

	resp := doJSON(t, app, fiber.MethodPost, "/api/posts/", token, fiber.Map{
		"content": "no title",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
