package models

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	RiskArtifact     = "risk_model"
	AssigneeArtifact = "assignee_model"
)

// extensions are tried in order when loading an artifact.
var extensions = []string{".yaml", ".yml", ".json"}

// ArtifactStore reads and writes model artifacts in a directory. Missing
// artifacts fall back to the built-in defaults.
type ArtifactStore struct {
	dataDir string
}

func NewArtifactStore(dataDir string) *ArtifactStore {
	return &ArtifactStore{dataDir: dataDir}
}

type validator interface {
	Validate() error
}

// LoadRiskModel loads the risk artifact, or the default when none exists.
func (s *ArtifactStore) LoadRiskModel() (*RiskModel, string, error) {
	m := &RiskModel{}
	path, err := s.load(RiskArtifact, m)
	if err != nil {
		return nil, "", err
	}
	if path == "" {
		return DefaultRiskModel(), "", nil
	}
	return m, path, nil
}

// LoadAssigneeModel loads the assignee artifact, or the default when none exists.
func (s *ArtifactStore) LoadAssigneeModel() (*AssigneeModel, string, error) {
	m := &AssigneeModel{}
	path, err := s.load(AssigneeArtifact, m)
	if err != nil {
		return nil, "", err
	}
	if path == "" {
		return DefaultAssigneeModel(), "", nil
	}
	return m, path, nil
}

// load decodes the first existing artifact file into out and returns its path.
// An empty path means no artifact was found.
func (s *ArtifactStore) load(name string, out validator) (string, error) {
	for _, ext := range extensions {
		filePath := filepath.Join(s.dataDir, name+ext)
		if _, err := os.Stat(filePath); os.IsNotExist(err) {
			continue
		}

		raw, err := os.ReadFile(filePath)
		if err != nil {
			return "", fmt.Errorf("failed to read model artifact: %w", err)
		}
		if ext == ".json" {
			err = json.Unmarshal(raw, out)
		} else {
			err = yaml.Unmarshal(raw, out)
		}
		if err != nil {
			return "", fmt.Errorf("failed to decode model artifact %s: %w", filePath, err)
		}
		if err := out.Validate(); err != nil {
			return "", fmt.Errorf("invalid model artifact %s: %w", filePath, err)
		}
		return filePath, nil
	}
	return "", nil
}

// Save writes an artifact as JSON or YAML, chosen by format.
func (s *ArtifactStore) Save(name, format string, artifact validator) (string, error) {
	if err := artifact.Validate(); err != nil {
		return "", fmt.Errorf("refusing to save invalid artifact: %w", err)
	}
	if err := os.MkdirAll(s.dataDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create model directory: %w", err)
	}

	var (
		raw []byte
		ext string
		err error
	)
	switch strings.ToLower(format) {
	case "json":
		ext = ".json"
		raw, err = json.MarshalIndent(artifact, "", "  ")
	case "yaml", "yml", "":
		ext = ".yaml"
		raw, err = yaml.Marshal(artifact)
	default:
		return "", fmt.Errorf("unsupported artifact format %q", format)
	}
	if err != nil {
		return "", fmt.Errorf("failed to encode artifact: %w", err)
	}

	filePath := filepath.Join(s.dataDir, name+ext)
	if err := os.WriteFile(filePath, raw, 0644); err != nil {
		return "", fmt.Errorf("failed to write artifact: %w", err)
	}
	return filePath, nil
}

// Bootstrap writes the default artifacts so they can be edited in place.
func (s *ArtifactStore) Bootstrap(format string) ([]string, error) {
	artifacts := map[string]validator{
		RiskArtifact:     DefaultRiskModel(),
		AssigneeArtifact: DefaultAssigneeModel(),
	}
	var written []string
	for _, name := range []string{RiskArtifact, AssigneeArtifact} {
		path, err := s.Save(name, format, artifacts[name])
		if err != nil {
			return written, fmt.Errorf("failed to save %s: %w", name, err)
		}
		written = append(written, path)
	}
	return written, nil
}
