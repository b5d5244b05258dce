package imagehost

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Upload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "studentmart", r.FormValue("upload_preset"))

		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "notebook.png", header.Filename)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"secure_url":"https://img.example.com/v1/notebook.png","public_id":"notebook"}`))
	}))
	defer srv.Close()

	uploader := NewClient(srv.URL, "studentmart")

	url, err := uploader.Upload(context.Background(), "notebook.png", strings.NewReader("png-bytes"))
	require.NoError(t, err)
	assert.Equal(t, "https://img.example.com/v1/notebook.png", url)
}

func TestClient_Upload_HostError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"invalid preset"}}`, http.StatusBadRequest)
	}))
	defer srv.Close()

	uploader := NewClient(srv.URL, "wrong")

	_, err := uploader.Upload(context.Background(), "x.png", strings.NewReader("png"))
	assert.ErrorIs(t, err, ErrUploadFailed)
}

func TestClient_Upload_MissingURLInResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	uploader := NewClient(srv.URL, "studentmart")

	_, err := uploader.Upload(context.Background(), "x.png", strings.NewReader("png"))
	assert.ErrorIs(t, err, ErrUploadFailed)
}
