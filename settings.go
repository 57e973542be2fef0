package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"time"

	"gopkg.in/yaml.v2"
)

type Settings struct {
	Catalog         string        `yaml:"catalog"`
	CredentialsFile string        `yaml:"credentials_file"`
	Profile         string        `yaml:"profile"`
	Region          string        `yaml:"region"`
	Endpoint        string        `yaml:"endpoint"`
	Bucket          string        `yaml:"bucket"`
	Folder          string        `yaml:"folder"`
	MappingFile     string        `yaml:"mapping_file"`
	SourceTag       string        `yaml:"source_tag"`
	SkipExisting    bool          `yaml:"skip_existing"`
	Timeout         time.Duration `yaml:"timeout"`
	Pacing          time.Duration `yaml:"pacing"`
}

func defaultSettings() *Settings {
	return &Settings{
		Catalog:         "products.json",
		CredentialsFile: "credentials",
		Profile:         "default",
		Region:          "us-east-1",
		Bucket:          "catalog-images",
		Folder:          "images/",
		MappingFile:     "image_url_map.json",
		SourceTag:       "shopify",
		SkipExisting:    true,
		Timeout:         30 * time.Second,
		Pacing:          100 * time.Millisecond,
	}
}

// loadSettings overlays the YAML file at path onto the defaults. A missing
// file is not an error.
func loadSettings(path string) (*Settings, error) {
	s := defaultSettings()

	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			slog.Info("settings", "file", path, "status", "not found, using defaults")
			return s, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(b, s); err != nil {
		return nil, fmt.Errorf("parsing settings %s: %w", path, err)
	}

	return s, nil
}

func (s *Settings) withArgs(args *Args) *Settings {
	override := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}

	override(&s.Catalog, args.catalog)
	override(&s.CredentialsFile, args.credentials)
	override(&s.Profile, args.profile)
	override(&s.Region, args.region)
	override(&s.Endpoint, args.endpoint)
	override(&s.Bucket, args.bucket)
	override(&s.MappingFile, args.output)
	return s
}
