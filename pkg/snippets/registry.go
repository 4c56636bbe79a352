package snippets

import (
	"fmt"
	"os"
	"sort"
	"sync"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Registry manages available snippet targets
type Registry struct {
	mu      sync.RWMutex
	targets map[string]*Target
}

// NewRegistry creates a new empty target registry
func NewRegistry() *Registry {
	return &Registry{
		targets: make(map[string]*Target),
	}
}

// Register adds a target to the registry
func (r *Registry) Register(t *Target) error {
	if err := t.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.targets[t.ID]; exists {
		return ErrTargetAlreadyExists
	}

	r.targets[t.ID] = t
	return nil
}

// Get retrieves a target by ID
func (r *Registry) Get(id string) (*Target, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, exists := r.targets[id]
	if !exists {
		return nil, ErrTargetNotFound
	}

	return t, nil
}

// List returns all registered targets ordered by ID
func (r *Registry) List() []*Target {
	r.mu.RLock()
	defer r.mu.RUnlock()

	targets := make([]*Target, 0, len(r.targets))
	for _, t := range r.targets {
		targets = append(targets, t)
	}
	sort.Slice(targets, func(i, j int) bool {
		return targets[i].ID < targets[j].ID
	})

	return targets
}

// ListEnabled returns all enabled targets ordered by ID
func (r *Registry) ListEnabled() []*Target {
	targets := r.List()

	enabled := make([]*Target, 0, len(targets))
	for _, t := range targets {
		if t.Enabled {
			enabled = append(enabled, t)
		}
	}

	return enabled
}

// Count returns the number of registered targets
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.targets)
}

// EnableTarget enables a target by ID
func (r *Registry) EnableTarget(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, exists := r.targets[id]
	if !exists {
		return ErrTargetNotFound
	}

	t.Enabled = true
	return nil
}

// DisableTarget disables a target by ID
func (r *Registry) DisableTarget(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, exists := r.targets[id]
	if !exists {
		return ErrTargetNotFound
	}

	t.Enabled = false
	return nil
}

// targetOverride is one entry of a target definitions file.
type targetOverride struct {
	ID          string  `yaml:"id"`
	DisplayName *string `yaml:"display_name"`
	Enabled     *bool   `yaml:"enabled"`
}

type overridesFile struct {
	Targets []targetOverride `yaml:"targets"`
}

// LoadOverrides applies target metadata overrides from a YAML file on top
// of the registered targets. Renderers stay code-defined; the file can only
// toggle targets and adjust display names. Unknown IDs are skipped with a
// warning so a stale file does not prevent startup.
func (r *Registry) LoadOverrides(path string, log *logrus.Logger) error {
	if log == nil {
		log = logrus.New()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read target overrides: %w", err)
	}

	var file overridesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("failed to parse target overrides: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, o := range file.Targets {
		t, exists := r.targets[o.ID]
		if !exists {
			log.Warnf("Skipping override for unknown snippet target %q", o.ID)
			continue
		}
		if o.DisplayName != nil {
			t.DisplayName = *o.DisplayName
		}
		if o.Enabled != nil {
			t.Enabled = *o.Enabled
		}
		log.Infof("Applied snippet target override: %s", o.ID)
	}

	return nil
}
