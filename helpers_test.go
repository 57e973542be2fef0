package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/yashikota/minis3"
	"gopkg.in/yaml.v2"
)

var pngBytes = append([]byte("\x89PNG\r\n\x1a\n"), make([]byte, 64)...)

func createTempCatalog(dir string, products []map[string]any) (string, error) {
	file, err := os.CreateTemp(dir, "products*.json")
	if err != nil {
		return "", err
	}

	b, err := json.Marshal(products)
	if err != nil {
		return "", err
	}

	if _, err := file.Write(b); err != nil {
		return "", err
	}

	if err := file.Close(); err != nil {
		return "", err
	}

	return file.Name(), nil
}

func createTempSettings(dir string, settings map[string]any) (string, error) {
	b, err := yaml.Marshal(settings)
	if err != nil {
		return "", err
	}

	name := filepath.Join(dir, "migrate.yaml")
	return name, os.WriteFile(name, b, 0o644)
}

func createTempCredentials(dir string) (string, error) {
	name := filepath.Join(dir, "credentials")
	content := "[default]\naws_access_key_id = AKIDTEST\naws_secret_access_key = secret\n"
	return name, os.WriteFile(name, []byte(content), 0o600)
}

type memObject struct {
	body        []byte
	contentType string
	metadata    map[string]string
}

// memStore is an in-memory objectAPI.
type memStore struct {
	mu      sync.Mutex
	objects map[string]memObject
	heads   int
	puts    int
	// headErr, when set, is consulted on every HeadObject call with the
	// 1-based call number.
	headErr func(call int, key string) error
	putErr  error
}

func newMemStore() *memStore {
	return &memStore{objects: make(map[string]memObject)}
}

func (m *memStore) HeadObject(ctx context.Context, params *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.heads++
	key := aws.ToString(params.Key)
	if m.headErr != nil {
		if err := m.headErr(m.heads, key); err != nil {
			return nil, err
		}
	}

	obj, ok := m.objects[key]
	if !ok {
		return nil, &types.NotFound{}
	}
	return &s3.HeadObjectOutput{
		ContentLength: aws.Int64(int64(len(obj.body))),
		ContentType:   aws.String(obj.contentType),
		Metadata:      obj.metadata,
	}, nil
}

func (m *memStore) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.puts++
	if m.putErr != nil {
		return nil, m.putErr
	}

	body, err := io.ReadAll(params.Body)
	if err != nil {
		return nil, err
	}

	m.objects[aws.ToString(params.Key)] = memObject{
		body:        body,
		contentType: aws.ToString(params.ContentType),
		metadata:    params.Metadata,
	}
	return &s3.PutObjectOutput{}, nil
}

var errBackend = errors.New("backend unavailable")

// sourceCDN serves the given paths and answers 404 for anything else.
type sourceCDN struct {
	*httptest.Server
	mu    sync.Mutex
	hits  map[string]int
	files map[string][]byte
}

func newSourceCDN(t *testing.T, files map[string][]byte) *sourceCDN {
	t.Helper()

	cdn := &sourceCDN{hits: make(map[string]int), files: files}
	cdn.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cdn.mu.Lock()
		cdn.hits[r.URL.Path]++
		cdn.mu.Unlock()

		body, ok := cdn.files[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Write(body)
	}))
	t.Cleanup(cdn.Close)
	return cdn
}

func (c *sourceCDN) url(path string) string {
	return c.URL + path
}

func (c *sourceCDN) hitCount(path string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits[path]
}

func testSettings() *Settings {
	s := defaultSettings()
	s.Bucket = "test-bucket"
	s.Pacing = 0
	s.Timeout = 5 * time.Second
	return s
}

func testMigrator(t *testing.T, store *memStore, s *Settings) *Migrator {
	t.Helper()

	ws, err := newWorkspace()
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(ws.cleanup)

	return newMigrator(newBucket(store, s), newFetcher(s.Timeout), ws, s)
}

func bucketURL(s *Settings, key string) string {
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.Bucket, s.Region, strings.TrimPrefix(key, "/"))
}

// startMinis3 runs an in-memory S3 server holding an empty bucket and returns
// a client for it together with its endpoint.
func startMinis3(t *testing.T, bucket string) (*s3.Client, string) {
	t.Helper()

	server, err := minis3.Run()
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { server.Close() })

	endpoint := "http://" + server.Addr()
	cfg := aws.Config{
		Region:      "us-east-1",
		Credentials: credentials.NewStaticCredentialsProvider("minis3", "minis3", ""),
	}
	client := (&CloudConfig{cfg: cfg}).stablishClientWith(s3Service(cfg, endpoint)).s3

	if _, err := client.CreateBucket(context.Background(), &s3.CreateBucketInput{
		Bucket: aws.String(bucket),
	}); err != nil {
		t.Fatal(err)
	}

	return client, endpoint
}
