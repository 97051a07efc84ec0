package cloudinary

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	cld "github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// Uploader is the narrow interface handlers depend on for image hosting
type Uploader interface {
	Upload(ctx context.Context, file string) (string, error)
	Destroy(ctx context.Context, publicID string) error
}

// Client hosts images on Cloudinary. Upload failures are not recovered by
// callers; they propagate as request failures.
type Client struct {
	cloudinary *cld.Cloudinary
}

// NewClient creates a Cloudinary client for the given account
func NewClient(cloudName, apiKey, apiSecret string) (*Client, error) {
	c, err := cld.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, err
	}
	c.Config.URL.Secure = true
	return &Client{cloudinary: c}, nil
}

// Upload sends a base64 data URL (or remote URL) to Cloudinary and returns
// the hosted secure URL
func (c *Client) Upload(ctx context.Context, file string) (string, error) {
	resp, err := c.cloudinary.Upload.Upload(ctx, file, uploader.UploadParams{})
	if err != nil {
		return "", err
	}
	// the SDK reports API-level failures in the body, not as an error
	if resp.Error.Message != "" {
		return "", fmt.Errorf("cloudinary upload failed: %s", resp.Error.Message)
	}
	return resp.SecureURL, nil
}

// Destroy removes a previously uploaded image by its public id. A missing
// image is not an error; the post it belonged to is going away regardless.
func (c *Client) Destroy(ctx context.Context, publicID string) error {
	resp, err := c.cloudinary.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID})
	if err != nil {
		return err
	}
	if resp.Result != "ok" && resp.Result != "not found" {
		return fmt.Errorf("cloudinary destroy failed: %s", resp.Result)
	}
	return nil
}

// PublicIDFromURL derives the destroy identifier from a hosted URL, e.g.
// https://res.cloudinary.com/demo/image/upload/v1747252769/cld-sample-5.jpg
// yields cld-sample-5.
func PublicIDFromURL(imageURL string) string {
	_, after, found := strings.Cut(imageURL, "/upload/")
	if !found {
		return ""
	}
	// drop the version prefix when present
	if strings.HasPrefix(after, "v") {
		if idx := strings.Index(after, "/"); idx != -1 {
			if _, err := strconv.Atoi(after[1:idx]); err == nil {
				after = after[idx+1:]
			}
		}
	}
	// drop the file extension
	if idx := strings.LastIndex(after, "."); idx != -1 {
		after = after[:idx]
	}
	return after
}
