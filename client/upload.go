package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"

	"cliphaus/video-finder/model"

	"go.uber.org/zap"
)

var (
	ErrPresign      = errors.New("presign request failed")
	ErrStorageWrite = errors.New("storage write failed")
)

// UploadStatus is the settled state of one file's upload task.
type UploadStatus string

const (
	UploadPending   UploadStatus = "pending"
	UploadSucceeded UploadStatus = "success"
	UploadFailed    UploadStatus = "failed"
)

// UploadTask tracks one file through the upload flow. Tasks leave the
// pending set on settlement regardless of outcome; a failed task is
// terminal until the user re-initiates the whole file.
type UploadTask struct {
	Filename string
	Status   UploadStatus
	Err      error
}

// UploadFile is one user-selected file entering the flow.
type UploadFile struct {
	Name        string
	ContentType string
	Body        io.Reader
}

// Uploader coordinates direct-to-storage uploads. Each file first
// trades its name for a short-lived write URL, then PUTs its bytes
// straight at storage; the API never relays file content.
type Uploader struct {
	c *Client

	mu       sync.Mutex
	nextTask int
	pending  map[int]string
}

func (c *Client) NewUploader() *Uploader {
	return &Uploader{
		c:       c,
		pending: make(map[int]string),
	}
}

// Pending returns the filenames currently in flight, driving the
// "N files uploading" indicator. Slots are per task, so two uploads
// of the same name count twice and settle independently.
func (u *Uploader) Pending() []string {
	u.mu.Lock()
	defer u.mu.Unlock()

	names := make([]string, 0, len(u.pending))
	for _, n := range u.pending {
		names = append(names, n)
	}

	return names
}

// Upload runs one file through RequestingCredential -> Uploading and
// settles it. The caller is responsible for refreshing the catalog
// after success; the uploader does not do it implicitly.
func (u *Uploader) Upload(ctx context.Context, f UploadFile) error {
	u.mu.Lock()
	u.nextTask++
	task := u.nextTask
	u.pending[task] = f.Name
	u.mu.Unlock()

	defer func() {
		u.mu.Lock()
		delete(u.pending, task)
		u.mu.Unlock()
	}()

	uploadURL, err := u.requestCredential(ctx, f)
	if err != nil {
		zap.L().Warn("Upload failed", zap.String("file", f.Name), zap.Error(err))
		return err
	}

	if err := u.putObject(ctx, uploadURL, f); err != nil {
		zap.L().Warn("Upload failed", zap.String("file", f.Name), zap.Error(err))
		return err
	}

	zap.L().Info("Upload finished", zap.String("file", f.Name))
	return nil
}

// UploadAll processes files independently; one file's failure never
// aborts the others. The returned tasks are all settled.
func (u *Uploader) UploadAll(ctx context.Context, files []UploadFile) []UploadTask {
	tasks := make([]UploadTask, len(files))

	var wg sync.WaitGroup
	for i, f := range files {
		wg.Add(1)

		go func(i int, f UploadFile) {
			defer wg.Done()

			err := u.Upload(ctx, f)

			tasks[i] = UploadTask{
				Filename: f.Name,
				Status:   UploadSucceeded,
				Err:      err,
			}
			if err != nil {
				tasks[i].Status = UploadFailed
			}
		}(i, f)
	}
	wg.Wait()

	return tasks
}

func (u *Uploader) requestCredential(ctx context.Context, f UploadFile) (string, error) {
	key := f.Name
	if !strings.HasPrefix(key, model.PrefixOriginal) {
		key = model.PrefixOriginal + key
	}

	payload, err := json.Marshal(map[string]string{
		"filename":    key,
		"contentType": f.ContentType,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrPresign, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.c.BaseURL+pathPresign, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrPresign, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := u.c.HTTP.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrPresign, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("%w: status %d", ErrPresign, resp.StatusCode)
	}

	var data struct {
		UploadURL string `json:"uploadUrl"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return "", fmt.Errorf("%w: %v", ErrPresign, err)
	}

	if data.UploadURL == "" {
		return "", fmt.Errorf("%w: response carried no uploadUrl", ErrPresign)
	}

	return data.UploadURL, nil
}

func (u *Uploader) putObject(ctx context.Context, uploadURL string, f UploadFile) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, uploadURL, f.Body)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStorageWrite, err)
	}
	req.Header.Set("Content-Type", f.ContentType)

	resp, err := u.c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStorageWrite, err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: status %d", ErrStorageWrite, resp.StatusCode)
	}

	return nil
}
