package hdfs

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Client talks to a Hadoop namenode over the WebHDFS REST API. File
// creation is the protocol's two-step dance: PUT to the namenode, follow
// the 307 redirect to a datanode, PUT the payload there.
type Client struct {
	webhdfsURL string
	user       string
	httpClient *http.Client
	log        *zap.Logger
}

func New(namenodeURL string, log *zap.Logger) *Client {
	return &Client{
		webhdfsURL: strings.TrimRight(namenodeURL, "/") + "/webhdfs/v1",
		user:       "root",
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		log: log.Named("hdfs"),
	}
}

// Mkdir creates a directory, parents included.
func (c *Client) Mkdir(ctx context.Context, path string) error {
	url := fmt.Sprintf("%s%s?op=MKDIRS&user.name=%s", c.webhdfsURL, path, c.user)
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, nil)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("mkdir %s: %w", path, err)
	}
	defer drain(resp)
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("mkdir %s: status %d", path, resp.StatusCode)
	}
	return nil
}

// WriteFile creates (or overwrites) a file with the given contents.
func (c *Client) WriteFile(ctx context.Context, path string, data []byte) error {
	url := fmt.Sprintf("%s%s?op=CREATE&overwrite=true&user.name=%s", c.webhdfsURL, path, c.user)
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, nil)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer drain(resp)

	if resp.StatusCode != http.StatusTemporaryRedirect {
		return fmt.Errorf("create %s: expected redirect, got status %d", path, resp.StatusCode)
	}
	location := resp.Header.Get("Location")
	if location == "" {
		return fmt.Errorf("create %s: redirect without location", path)
	}

	upload, err := http.NewRequestWithContext(ctx, http.MethodPut, location, bytes.NewReader(data))
	if err != nil {
		return err
	}
	upload.Header.Set("Content-Type", "application/octet-stream")

	uploadResp, err := c.httpClient.Do(upload)
	if err != nil {
		return fmt.Errorf("upload %s: %w", path, err)
	}
	defer drain(uploadResp)
	if uploadResp.StatusCode != http.StatusCreated && uploadResp.StatusCode != http.StatusOK {
		return fmt.Errorf("upload %s: status %d", path, uploadResp.StatusCode)
	}
	return nil
}

func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
}
