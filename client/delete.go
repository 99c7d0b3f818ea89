package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"go.uber.org/zap"
)

// DeleteResult reports how a delete settled. A full success has
// Deleted set; a partial failure leaves Deleted false but lists the
// keys the backend confirmed gone, and the caller must still drop
// those from its local catalog so the view stays consistent with
// storage.
type DeleteResult struct {
	Deleted     bool
	DeletedKeys []string
}

// DeleteEntry asks the backend to remove a storage key. Batch deletes
// can take out dependent artifacts (the thumbnail) while failing on a
// secondary one, so a non-2xx body listing deleted_files is treated
// as partial success rather than error.
func (c *Client) DeleteEntry(ctx context.Context, path string) (*DeleteResult, error) {
	payload, err := json.Marshal(map[string]string{
		"file_key": path,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.BaseURL+pathDeleteFile, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("delete request failed, %w", err)
	}
	defer resp.Body.Close()

	var body struct {
		Error        string   `json:"error"`
		DeletedFiles []string `json:"deleted_files"`
	}
	// A malformed body on an error status shouldn't mask the status
	// itself, so decode failures are tolerated
	json.NewDecoder(resp.Body).Decode(&body)

	if resp.StatusCode >= 200 && resp.StatusCode <= 299 {
		return &DeleteResult{
			Deleted:     true,
			DeletedKeys: body.DeletedFiles,
		}, nil
	}

	if len(body.DeletedFiles) > 0 {
		zap.L().Warn("Delete partially failed",
			zap.String("path", path),
			zap.Strings("deleted", body.DeletedFiles),
			zap.String("error", body.Error),
		)

		return &DeleteResult{
			Deleted:     false,
			DeletedKeys: body.DeletedFiles,
		}, nil
	}

	if body.Error != "" {
		return nil, fmt.Errorf("delete failed: %s", body.Error)
	}

	return nil, fmt.Errorf("delete failed with status %d", resp.StatusCode)
}
