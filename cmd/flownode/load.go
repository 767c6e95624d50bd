package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/flowkit-plugins/docintel/core/item"
	"github.com/flowkit-plugins/docintel/host"
	"github.com/flowkit-plugins/docintel/nodes"
)

// Environment fallbacks for the default node credential, used when no
// credentials file is given.
const (
	envAPIKey  = "DOCINTEL_API_KEY"
	envBaseURL = "DOCINTEL_BASE_URL"

	defaultBaseURL = "https://api.docintel.ai"
)

// loadItems reads input items from a JSONC file. Comments and trailing
// commas are stripped before decoding, so item fixtures can be annotated.
func loadItems(path string) ([]item.Item, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read items file: %w", err)
	}

	var items []item.Item
	if err := json.Unmarshal(jsonc.ToJSON(data), &items); err != nil {
		return nil, fmt.Errorf("failed to parse items file: %w", err)
	}
	return items, nil
}

// loadParams reads the node parameter map from a JSONC file.
func loadParams(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read parameters file: %w", err)
	}

	var params map[string]any
	if err := json.Unmarshal(jsonc.ToJSON(data), &params); err != nil {
		return nil, fmt.Errorf("failed to parse parameters file: %w", err)
	}
	return params, nil
}

// credentialsFile is the YAML shape of the -credentials flag.
type credentialsFile struct {
	Credentials map[string]host.Credential `yaml:"credentials"`
}

// loadCredentials reads named credentials from a YAML file. Without a file,
// the default node credential is built from the environment.
func loadCredentials(path string) (map[string]host.Credential, error) {
	if path == "" {
		apiKey := os.Getenv(envAPIKey)
		if apiKey == "" {
			return nil, fmt.Errorf("no credentials file given and %s is not set", envAPIKey)
		}
		baseURL := os.Getenv(envBaseURL)
		if baseURL == "" {
			baseURL = defaultBaseURL
		}
		return map[string]host.Credential{
			nodes.Credential: {APIKey: apiKey, BaseURL: baseURL},
		}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read credentials file: %w", err)
	}

	var parsed credentialsFile
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse credentials file: %w", err)
	}
	if len(parsed.Credentials) == 0 {
		return nil, fmt.Errorf("credentials file %s defines no credentials", path)
	}

	for name, cred := range parsed.Credentials {
		if cred.BaseURL == "" {
			cred.BaseURL = defaultBaseURL
			parsed.Credentials[name] = cred
		}
	}

	return parsed.Credentials, nil
}
