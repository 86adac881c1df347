package transport

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"mime"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pachca/pachcagen/types"
)

func TestDo_SendsCredentialAndDefaults(t *testing.T) {
	t.Parallel()
	var got *http.Request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r
		w.Header().Set("X-Request-Id", "abc")
		w.WriteHeader(http.StatusOK)
		_, _ = io.WriteString(w, `{"data":{"id":1}}`)
	}))
	defer srv.Close()

	c := New("secret", WithBaseURL(srv.URL+"/"), WithHeaders(map[string]string{"X-Team": "core"}), WithCookies(map[string]string{"session": "s1"}))
	resp, err := c.Do(context.Background(), &Request{
		Method:     http.MethodGet,
		Path:       "/messages/{id}",
		PathParams: map[string]any{"id": 42},
	})
	require.NoError(t, err)

	assert.Equal(t, "/messages/42", got.URL.Path)
	assert.Equal(t, "Bearer secret", got.Header.Get("Authorization"))
	assert.Equal(t, "application/json", got.Header.Get("Accept"))
	assert.Equal(t, "core", got.Header.Get("X-Team"))
	ck, err := got.Cookie("session")
	require.NoError(t, err)
	assert.Equal(t, "s1", ck.Value)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "abc", resp.Header.Get("X-Request-Id"))
	var body struct {
		Data struct{ ID int } `json:"data"`
	}
	require.NoError(t, resp.DecodeJSON(&body))
	assert.Equal(t, 1, body.Data.ID)
}

func TestHTTPClient_BuiltOnceWithCapturedCredential(t *testing.T) {
	t.Parallel()
	c := New("tok", WithAuthHeader("X-Api-Key", ""))
	first := c.HTTPClient()
	assert.Same(t, first, c.HTTPClient())

	at, ok := first.Transport.(*authTransport)
	require.True(t, ok)
	assert.Equal(t, "X-Api-Key", at.header)
	assert.Equal(t, "tok", at.value)
}

func TestWithHTTPClient_ReplacesLazyClient(t *testing.T) {
	t.Parallel()
	hc := &http.Client{}
	c := New("tok", WithHTTPClient(hc))
	assert.Same(t, hc, c.HTTPClient())
}

func TestDo_QueryDropsUnsetValues(t *testing.T) {
	t.Parallel()
	var rawQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rawQuery = r.URL.RawQuery
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	var per *int
	page := 2
	c := New("t", WithBaseURL(srv.URL))
	resp, err := c.Do(context.Background(), &Request{
		Method: http.MethodGet,
		Path:   "/chats",
		Query:  Query{{"per", per}, {"page", &page}, {"ids[]", []int{1, 2}}, {"q", nil}},
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, "page=2&ids%5B%5D=1&ids%5B%5D=2", rawQuery)
}

func TestDo_JSONAndMultipartBodies(t *testing.T) {
	t.Parallel()
	type upload struct {
		Name  string  `json:"name"`
		Size  int     `json:"size"`
		Notes *string `json:"notes,omitempty"`
		Meta  []int   `json:"meta"`
	}
	var contentType string
	var body []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		contentType = r.Header.Get("Content-Type")
		body, _ = io.ReadAll(r.Body)
	}))
	defer srv.Close()
	c := New("t", WithBaseURL(srv.URL))

	_, err := c.Do(context.Background(), &Request{Method: http.MethodPost, Path: "/m", JSON: map[string]string{"content": "hi"}})
	require.NoError(t, err)
	assert.Equal(t, "application/json", contentType)
	assert.JSONEq(t, `{"content":"hi"}`, string(body))

	_, err = c.Do(context.Background(), &Request{Method: http.MethodPost, Path: "/m", Multipart: upload{Name: "a.txt", Size: 3, Meta: []int{1}}})
	require.NoError(t, err)
	mediaType, params, err := mime.ParseMediaType(contentType)
	require.NoError(t, err)
	assert.Equal(t, "multipart/form-data", mediaType)

	r := multipart.NewReader(bytes.NewReader(body), params["boundary"])
	var names, values []string
	for {
		part, err := r.NextPart()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		v, _ := io.ReadAll(part)
		names = append(names, part.FormName())
		values = append(values, string(v))
	}
	assert.Equal(t, []string{"name", "size", "meta"}, names)
	assert.Equal(t, []string{"a.txt", "3", "[1]"}, values)
}

type formPart struct {
	Field, File, ContentType, Value string
}

func readParts(t *testing.T, body []byte, contentType string) []formPart {
	t.Helper()
	mediaType, params, err := mime.ParseMediaType(contentType)
	require.NoError(t, err)
	require.Equal(t, "multipart/form-data", mediaType)
	r := multipart.NewReader(bytes.NewReader(body), params["boundary"])
	var parts []formPart
	for {
		part, err := r.NextPart()
		if err == io.EOF {
			return parts
		}
		require.NoError(t, err)
		v, err := io.ReadAll(part)
		require.NoError(t, err)
		p := formPart{Field: part.FormName(), File: part.FileName(), Value: string(v)}
		if p.File != "" {
			p.ContentType = part.Header.Get("Content-Type")
		}
		parts = append(parts, p)
	}
}

func TestMultipart_FilePartsInDeclaredOrder(t *testing.T) {
	t.Parallel()
	type avatar struct {
		Title   string      `json:"title"`
		File    types.File  `json:"file"`
		Preview *types.File `json:"preview,omitempty"`
		Thumb   *types.File `json:"thumb,omitempty"`
		Size    int         `json:"size"`
	}
	req := &Request{Multipart: &avatar{
		Title:   "me",
		File:    types.File{Name: "me.png", ContentType: "image/png", Content: strings.NewReader("PNG")},
		Preview: &types.File{Content: strings.NewReader("small")},
		Size:    3,
	}}
	var body []byte
	var contentType string
	require.NotPanics(t, func() {
		var err error
		body, contentType, err = req.body()
		require.NoError(t, err)
	})
	assert.Equal(t, []formPart{
		{Field: "title", Value: "me"},
		{Field: "file", File: "me.png", ContentType: "image/png", Value: "PNG"},
		{Field: "preview", File: "preview", ContentType: "application/octet-stream", Value: "small"},
		{Field: "size", Value: "3"},
	}, readParts(t, body, contentType))
}

func TestMultipart_MapBody(t *testing.T) {
	t.Parallel()
	req := &Request{Multipart: map[string]any{
		"content": "hi",
		"file":    types.File{Name: "a.txt", Content: strings.NewReader("abc")},
	}}
	body, contentType, err := req.body()
	require.NoError(t, err)
	assert.Equal(t, []formPart{
		{Field: "content", Value: "hi"},
		{Field: "file", File: "a.txt", ContentType: "application/octet-stream", Value: "abc"},
	}, readParts(t, body, contentType))
}

func TestUnexpectedStatus(t *testing.T) {
	t.Parallel()
	resp := &RawResponse{StatusCode: 500, Body: []byte("boom")}
	assert.NoError(t, New("t").UnexpectedStatus(resp))

	err := New("t", WithRaiseOnUnexpectedStatus(true)).UnexpectedStatus(resp)
	var use *UnexpectedStatusError
	require.ErrorAs(t, err, &use)
	assert.Equal(t, 500, use.StatusCode)
	assert.Equal(t, []byte("boom"), use.Body)
	assert.Contains(t, err.Error(), "500")
}

func TestDo_TimeoutIsNotRetried(t *testing.T) {
	t.Parallel()
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	c := New("t", WithBaseURL(srv.URL), WithTimeout(20*time.Millisecond))
	_, err := c.Do(context.Background(), &Request{Method: http.MethodGet, Path: "/slow"})
	require.Error(t, err)
	assert.True(t, IsTimeout(err))
	assert.Equal(t, int32(1), hits.Load())
}

func TestWithoutRedirects(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/elsewhere", http.StatusFound)
	}))
	defer srv.Close()

	resp, err := New("t", WithBaseURL(srv.URL), WithoutRedirects()).Do(context.Background(), &Request{Method: http.MethodGet, Path: "/"})
	require.NoError(t, err)
	assert.Equal(t, http.StatusFound, resp.StatusCode)
}

func TestDo_DebugLogRedactsCredentials(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer srv.Close()

	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	c := New("t", WithBaseURL(srv.URL), WithLogger(logger), WithHeaders(map[string]string{"Authorization": "Bearer leaked"}))
	_, err := c.Do(context.Background(), &Request{Method: http.MethodGet, Path: "/"})
	require.NoError(t, err)

	assert.NotContains(t, logs.String(), "leaked")
	assert.Contains(t, logs.String(), "<redacted>")
	assert.Contains(t, logs.String(), "status=200")
}

func TestExpandPath(t *testing.T) {
	t.Parallel()
	id := 7
	got, err := ExpandPath("/messages/{id}/reactions/{code}", map[string]any{"id": &id, "code": "a b/c"})
	require.NoError(t, err)
	assert.Equal(t, "/messages/7/reactions/a%20b%2Fc", got)

	_, err = ExpandPath("/messages/{id}", nil)
	assert.Error(t, err)
	_, err = ExpandPath("/messages/{id", map[string]any{"id": 1})
	assert.Error(t, err)
}
