package images

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

const fetchTimeout = 15 * time.Second

// Config holds DigitalOcean Spaces credentials for the image mirror.
// Mirroring is optional: an empty bucket disables it.
type Config struct {
	Key    string `toml:"key"`
	Secret string `toml:"secret"`
	Region string `toml:"region"`
	Bucket string `toml:"bucket"`
	Root   string `toml:"root"`
}

func (c Config) Enabled() bool {
	return c.Bucket != ""
}

// SpacesService mirrors recipe images from the catalog CDN into a Spaces
// bucket so the app keeps serving them if the upstream URL goes away.
type SpacesService struct {
	client *s3.Client
	http   *http.Client
	bucket string
	region string
	root   string
}

func NewSpacesService(cfg Config) (*SpacesService, error) {
	resolver := aws.EndpointResolverWithOptionsFunc(func(service, region string, options ...interface{}) (aws.Endpoint, error) {
		return aws.Endpoint{
			URL: fmt.Sprintf("https://%s.digitaloceanspaces.com", region),
		}, nil
	})

	awsCfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithEndpointResolverWithOptions(resolver),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.Key, cfg.Secret, "")),
		config.WithRegion(cfg.Region),
	)
	if err != nil {
		return nil, fmt.Errorf("unable to load Spaces config: %w", err)
	}

	return &SpacesService{
		client: s3.NewFromConfig(awsCfg),
		http:   &http.Client{Timeout: fetchTimeout},
		bucket: cfg.Bucket,
		region: cfg.Region,
		root:   strings.Trim(cfg.Root, "/"),
	}, nil
}

// MirrorRecipeImage downloads the image at srcURL and uploads it to the
// bucket under the recipe id, returning the public Spaces URL.
func (s *SpacesService) MirrorRecipeImage(ctx context.Context, recipeID int64, srcURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srcURL, nil)
	if err != nil {
		return "", fmt.Errorf("building image request: %w", err)
	}

	resp, err := s.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetching image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetching image: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading image body: %w", err)
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "image/jpeg"
	}

	key := s.objectKey(recipeID, srcURL)

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      &s.bucket,
		Key:         &key,
		Body:        bytes.NewReader(body),
		ContentType: &contentType,
		ACL:         "public-read",
	})
	if err != nil {
		return "", fmt.Errorf("uploading image: %w", err)
	}

	return fmt.Sprintf("https://%s.%s.digitaloceanspaces.com/%s", s.bucket, s.region, key), nil
}

func (s *SpacesService) objectKey(recipeID int64, srcURL string) string {
	ext := path.Ext(srcURL)
	if ext == "" || len(ext) > 5 {
		ext = ".jpg"
	}
	key := fmt.Sprintf("recipes/%d%s", recipeID, ext)
	if s.root != "" {
		key = s.root + "/" + key
	}
	return key
}

func (s *SpacesService) Bucket() string {
	return s.bucket
}

func (s *SpacesService) Region() string {
	return s.region
}
