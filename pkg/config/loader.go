package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/raywall/ddbprobe/envloader"
	"gopkg.in/yaml.v3"
)

// FileEnvVar aponta para um arquivo YAML opcional de configuração.
const FileEnvVar = "PROBE_CONFIG_FILE"

// Load monta a configuração na ordem: defaults, arquivo YAML (se path não
// for vazio), variáveis de ambiente e, por fim, validação.
func Load(path string) (*ProbeConfig, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("falha ao ler configuração %s: %w", path, err)
		}
		// chaves desconhecidas (ex: hash_key) são erro, não ignoradas
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("falha ao interpretar configuração %s: %w", path, err)
		}
	}

	if err := envloader.Load(cfg); err != nil {
		return nil, err
	}

	if err := NewValidator().Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFromEnv usa o arquivo indicado em PROBE_CONFIG_FILE, se houver.
func LoadFromEnv() (*ProbeConfig, error) {
	return Load(os.Getenv(FileEnvVar))
}
