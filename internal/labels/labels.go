// Package labels maintains the known-address table: informational labels for
// holder display, the verified lock-program allowlist and burn sinks. Static
// configuration, not scanner logic.
package labels

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	_ "embed"

	"github.com/cryptoEnthu14/ThunderLaunch-sub000/internal/interfaces"
)

//go:embed labels.yaml
var defaultLabels []byte

// Kind classifies a known address.
type Kind string

const (
	KindDex      Kind = "dex"
	KindLock     Kind = "lock"
	KindBurn     Kind = "burn"
	KindExchange Kind = "exchange"
)

// Entry is one known address.
type Entry struct {
	Address string `yaml:"address"`
	Label   string `yaml:"label"`
	Kind    Kind   `yaml:"kind"`
}

type labelsFile struct {
	Labels []Entry `yaml:"labels"`
}

// Registry answers label and lock-program lookups. Immutable after load,
// safe for concurrent use.
type Registry struct {
	byAddr map[string]Entry
}

var _ interfaces.LockVerifier = (*Registry)(nil)

// Load builds a registry from the embedded defaults, merged with the
// optional YAML file at path. File entries override defaults per address.
func Load(path string) (*Registry, error) {
	reg := &Registry{byAddr: make(map[string]Entry)}
	if err := reg.merge(defaultLabels); err != nil {
		return nil, fmt.Errorf("parse embedded labels: %w", err)
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read labels file %s: %w", path, err)
		}
		if err := reg.merge(data); err != nil {
			return nil, fmt.Errorf("parse labels file %s: %w", path, err)
		}
	}
	return reg, nil
}

// Default returns the registry built from the embedded table only.
func Default() *Registry {
	reg, err := Load("")
	if err != nil {
		// The embedded table is compiled in; failing to parse it is a
		// programming error.
		panic(err)
	}
	return reg
}

func (r *Registry) merge(data []byte) error {
	var file labelsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return err
	}
	for _, e := range file.Labels {
		if e.Address == "" {
			return errors.New("label entry without address")
		}
		switch e.Kind {
		case KindDex, KindLock, KindBurn, KindExchange:
		default:
			return fmt.Errorf("label %s has unknown kind %q", e.Address, e.Kind)
		}
		r.byAddr[e.Address] = e
	}
	return nil
}

// LabelFor returns the informational label for a known address.
func (r *Registry) LabelFor(address string) (string, bool) {
	e, ok := r.byAddr[address]
	if !ok {
		return "", false
	}
	return e.Label, true
}

// IsVerifiedLockProgram reports whether the address is on the lock allowlist.
func (r *Registry) IsVerifiedLockProgram(programAddress string) bool {
	e, ok := r.byAddr[programAddress]
	return ok && e.Kind == KindLock
}

// IsBurnAddress reports whether the address is a recognized burn sink.
func (r *Registry) IsBurnAddress(address string) bool {
	e, ok := r.byAddr[address]
	return ok && e.Kind == KindBurn
}

// Len reports how many addresses are known.
func (r *Registry) Len() int { return len(r.byAddr) }
