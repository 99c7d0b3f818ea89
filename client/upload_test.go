package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUploadFlow(t *testing.T) {
	var presignBody map[string]string
	var putBody string
	var putContentType string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == pathPresign && r.Method == http.MethodPost:
			json.NewDecoder(r.Body).Decode(&presignBody)
			json.NewEncoder(w).Encode(map[string]string{
				"uploadUrl": "http://" + r.Host + "/put-target",
			})
		case r.URL.Path == "/put-target" && r.Method == http.MethodPut:
			putContentType = r.Header.Get("Content-Type")
			b, _ := io.ReadAll(r.Body)
			putBody = string(b)
			w.WriteHeader(http.StatusOK)
		default:
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
	}))
	defer server.Close()

	u := New(server.URL, testHosts()).NewUploader()

	err := u.Upload(context.Background(), UploadFile{
		Name:        "holiday.mp4",
		ContentType: "video/mp4",
		Body:        strings.NewReader("fake video bytes"),
	})
	require.NoError(t, err)

	assert.Equal(t, "original/holiday.mp4", presignBody["filename"])
	assert.Equal(t, "video/mp4", presignBody["contentType"])
	assert.Equal(t, "fake video bytes", putBody)
	assert.Equal(t, "video/mp4", putContentType)
	assert.Empty(t, u.Pending())
}

func TestUploadKeepsExistingPrefix(t *testing.T) {
	var presignBody map[string]string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == pathPresign {
			json.NewDecoder(r.Body).Decode(&presignBody)
			json.NewEncoder(w).Encode(map[string]string{"uploadUrl": "http://" + r.Host + "/put"})
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	u := New(server.URL, testHosts()).NewUploader()

	err := u.Upload(context.Background(), UploadFile{
		Name:        "original/holiday.mp4",
		ContentType: "video/mp4",
		Body:        strings.NewReader("x"),
	})
	require.NoError(t, err)
	assert.Equal(t, "original/holiday.mp4", presignBody["filename"])
}

func TestUploadPresignRejection(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer server.Close()

	u := New(server.URL, testHosts()).NewUploader()

	err := u.Upload(context.Background(), UploadFile{
		Name:        "notes.txt",
		ContentType: "text/plain",
		Body:        strings.NewReader("x"),
	})
	require.ErrorIs(t, err, ErrPresign)
	assert.Empty(t, u.Pending())
}

func TestUploadStorageRejection(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == pathPresign {
			json.NewEncoder(w).Encode(map[string]string{"uploadUrl": "http://" + r.Host + "/put"})
			return
		}
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	u := New(server.URL, testHosts()).NewUploader()

	err := u.Upload(context.Background(), UploadFile{
		Name:        "clip.mp4",
		ContentType: "video/mp4",
		Body:        strings.NewReader("x"),
	})
	require.ErrorIs(t, err, ErrStorageWrite)
}

func TestUploadEmptyPresignURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"uploadUrl": ""})
	}))
	defer server.Close()

	u := New(server.URL, testHosts()).NewUploader()

	err := u.Upload(context.Background(), UploadFile{
		Name:        "clip.mp4",
		ContentType: "video/mp4",
		Body:        strings.NewReader("x"),
	})
	require.ErrorIs(t, err, ErrPresign)
}

func TestPendingCountsDuplicateNames(t *testing.T) {
	arrived := make(chan struct{}, 2)
	release := make(chan struct{})

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == pathPresign {
			arrived <- struct{}{}
			<-release
			json.NewEncoder(w).Encode(map[string]string{"uploadUrl": "http://" + r.Host + "/put"})
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	u := New(server.URL, testHosts()).NewUploader()

	done := make(chan error, 2)
	for range 2 {
		go func() {
			done <- u.Upload(context.Background(), UploadFile{
				Name:        "dup.mp4",
				ContentType: "video/mp4",
				Body:        strings.NewReader("x"),
			})
		}()
	}

	<-arrived
	<-arrived
	assert.Equal(t, []string{"dup.mp4", "dup.mp4"}, u.Pending())

	close(release)
	require.NoError(t, <-done)
	require.NoError(t, <-done)
	assert.Empty(t, u.Pending())
}

func TestUploadAllSettlesIndependently(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == pathPresign {
			var body map[string]string
			json.NewDecoder(r.Body).Decode(&body)

			// The second file never gets a credential
			if strings.Contains(body["filename"], "bad") {
				w.WriteHeader(http.StatusBadRequest)
				return
			}
			json.NewEncoder(w).Encode(map[string]string{"uploadUrl": "http://" + r.Host + "/put"})
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	u := New(server.URL, testHosts()).NewUploader()

	tasks := u.UploadAll(context.Background(), []UploadFile{
		{Name: "good.mp4", ContentType: "video/mp4", Body: strings.NewReader("x")},
		{Name: "bad.mp4", ContentType: "video/mp4", Body: strings.NewReader("x")},
		{Name: "also-good.mp4", ContentType: "video/mp4", Body: strings.NewReader("x")},
	})

	require.Len(t, tasks, 3)
	assert.Equal(t, UploadSucceeded, tasks[0].Status)
	assert.Equal(t, UploadFailed, tasks[1].Status)
	assert.ErrorIs(t, tasks[1].Err, ErrPresign)
	assert.Equal(t, UploadSucceeded, tasks[2].Status)
}
