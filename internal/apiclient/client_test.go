package apiclient

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDoSetsJSONDefaults(t *testing.T) {
	var got *http.Request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	c := New(srv.URL+"/", time.Second, nil)
	body, err := c.Get(context.Background(), "/api/products", url.Values{"limit": {"1000"}})
	require.NoError(t, err)

	assert.JSONEq(t, `{"ok":true}`, string(body))
	assert.Equal(t, "/api/products", got.URL.Path)
	assert.Equal(t, "1000", got.URL.Query().Get("limit"))
	assert.Equal(t, "application/json", got.Header.Get("Content-Type"))
	assert.NotEmpty(t, got.Header.Get("X-Request-ID"))
}

func TestSendJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		b, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"status":"completed"}`, string(b))
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second, nil)
	_, err := c.SendJSON(context.Background(), http.MethodPatch, "/api/orders/1/status", map[string]string{"status": "completed"})
	require.NoError(t, err)
}

func TestSendMultipart(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data; boundary="))
		require.NoError(t, r.ParseMultipartForm(1<<20))

		assert.Equal(t, "Oud Wood", r.FormValue("name"))
		assert.Equal(t, "49.99", r.FormValue("price"))

		file, header, err := r.FormFile("image")
		require.NoError(t, err)
		defer file.Close()
		data, _ := io.ReadAll(file)
		assert.Equal(t, "bottle.png", header.Filename)
		assert.Equal(t, "image/png", header.Header.Get("Content-Type"))
		assert.Equal(t, []byte{1, 2, 3}, data)

		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"data":{}}`))
	}))
	defer srv.Close()

	form := &Form{}
	form.Add("name", "Oud Wood")
	form.Add("price", "49.99")
	form.AddFile(File{Field: "image", Filename: "bottle.png", ContentType: "image/png", Data: []byte{1, 2, 3}})

	c := New(srv.URL, time.Second, nil)
	_, err := c.SendMultipart(context.Background(), http.MethodPost, "/api/products", form)
	require.NoError(t, err)
}

func TestErrorResponses(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		message string
	}{
		{"message field", http.StatusBadRequest, `{"message":"Name is required","error":"Bad Request"}`, "Name is required"},
		{"error field", http.StatusNotFound, `{"error":"Product not found"}`, "Product not found"},
		{"nested error", http.StatusConflict, `{"error":{"message":"SKU taken"}}`, "SKU taken"},
		{"empty message falls through", http.StatusBadRequest, `{"message":"","error":"bad"}`, "bad"},
		{"no message", http.StatusInternalServerError, `{"success":false}`, "request failed with status code 500"},
		{"html body", http.StatusBadGateway, `<html>bad gateway</html>`, "request failed with status code 502"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := New(srv.URL, time.Second, nil).Get(context.Background(), "/x", nil)
			require.Error(t, err)

			var apiErr *Error
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.status, apiErr.StatusCode)
			assert.Equal(t, tt.status, StatusCode(err))
			assert.Equal(t, tt.message, ToMessage(err))
		})
	}
}

func TestTransportErrorMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	addr := srv.URL
	srv.Close()

	_, err := New(addr, time.Second, nil).Get(context.Background(), "/api/products", nil)
	require.Error(t, err)

	assert.Equal(t, 0, StatusCode(err))
	assert.Equal(t, err.Error(), ToMessage(err))
	assert.Contains(t, ToMessage(err), "/api/products")
}

func TestTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	_, err := New(srv.URL, 50*time.Millisecond, nil).Get(context.Background(), "/slow", nil)
	require.Error(t, err)
	assert.Contains(t, ToMessage(err), "Client.Timeout")
}

func TestToMessageFallbacks(t *testing.T) {
	assert.Equal(t, FallbackMessage, ToMessage(nil))
	assert.Equal(t, FallbackMessage, ToMessage(errors.New("  ")))
	assert.Equal(t, "boom", ToMessage(errors.New("boom")))

	var nilErr *Error
	assert.Equal(t, FallbackMessage, ToMessage(nilErr))
}

func TestNormalize(t *testing.T) {
	assert.NoError(t, Normalize(nil))

	cause := &Error{StatusCode: 404, Message: "Order not found"}
	err := Normalize(cause)
	assert.Equal(t, "Order not found", err.Error())
	assert.ErrorIs(t, err, cause)

	again := Normalize(err)
	assert.Same(t, err, again)
}

func TestDecodeData(t *testing.T) {
	var out struct {
		Name string `json:"name"`
	}

	require.NoError(t, DecodeData([]byte(`{"success":true,"data":{"name":"wrapped"}}`), &out))
	assert.Equal(t, "wrapped", out.Name)

	require.NoError(t, DecodeData([]byte(`{"name":"bare"}`), &out))
	assert.Equal(t, "bare", out.Name)

	assert.Error(t, DecodeData([]byte(`not json`), &out))
}

func TestDecodeList(t *testing.T) {
	type item struct {
		ID string `json:"id"`
	}

	for _, body := range []string{``, `{}`, `{"data":null}`, `{"data":[]}`, `[]`, `null`} {
		items, err := DecodeList[item]([]byte(body))
		require.NoError(t, err, body)
		assert.NotNil(t, items, body)
		assert.Empty(t, items, body)
	}

	items, err := DecodeList[item]([]byte(`{"data":[{"id":"a"},{"id":"b"}],"total":2}`))
	require.NoError(t, err)
	assert.Equal(t, []item{{ID: "a"}, {ID: "b"}}, items)

	items, err = DecodeList[item]([]byte(`[{"id":"c"}]`))
	require.NoError(t, err)
	assert.Equal(t, []item{{ID: "c"}}, items)

	_, err = DecodeList[item]([]byte(`{"data":"nope"}`))
	assert.Error(t, err)
}
