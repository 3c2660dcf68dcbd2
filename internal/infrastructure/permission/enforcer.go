package permission

import (
	_ "embed"
	"fmt"
	"sort"
	"sync"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	"github.com/casbin/casbin/v2/persist"
	gormadapter "github.com/casbin/gorm-adapter/v3"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"

	"github.com/parlourcover/parlour/internal/shared/logger"
)

// rbacModel matches a role (or any role it inherits) against resource and
// action. "*" in a policy matches anything.
const rbacModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && (p.obj == "*" || r.obj == p.obj) && (p.act == "*" || r.act == p.act)
`

//go:embed policies.yaml
var defaultPolicies []byte

type policyFile struct {
	Inherits map[string][]string            `yaml:"inherits"`
	Policies map[string]map[string][]string `yaml:"policies"`
}

type Enforcer struct {
	enforcer *casbin.Enforcer
	mu       sync.RWMutex
	logger   logger.Interface
}

// NewEnforcer stores policies in the casbin_rule table through the gorm adapter.
func NewEnforcer(db *gorm.DB, log logger.Interface) (*Enforcer, error) {
	adapter, err := gormadapter.NewAdapterByDB(db)
	if err != nil {
		return nil, fmt.Errorf("failed to create casbin adapter: %w", err)
	}
	return newEnforcer(adapter, log)
}

// NewMemoryEnforcer keeps policies in memory only.
func NewMemoryEnforcer(log logger.Interface) (*Enforcer, error) {
	return newEnforcer(nil, log)
}

func newEnforcer(adapter persist.Adapter, log logger.Interface) (*Enforcer, error) {
	m, err := model.NewModelFromString(rbacModel)
	if err != nil {
		return nil, fmt.Errorf("failed to parse casbin model: %w", err)
	}

	var enforcer *casbin.Enforcer
	if adapter != nil {
		enforcer, err = casbin.NewEnforcer(m, adapter)
	} else {
		enforcer, err = casbin.NewEnforcer(m)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create casbin enforcer: %w", err)
	}

	e := &Enforcer{enforcer: enforcer, logger: log}
	if err := e.Seed(defaultPolicies); err != nil {
		return nil, err
	}
	return e, nil
}

// Seed adds every policy and role link from a YAML document that is not
// stored yet. Existing rules are left untouched.
func (e *Enforcer) Seed(doc []byte) error {
	var pf policyFile
	if err := yaml.Unmarshal(doc, &pf); err != nil {
		return fmt.Errorf("failed to parse policies: %w", err)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	added := 0
	for _, role := range sortedKeys(pf.Policies) {
		resources := pf.Policies[role]
		for _, resource := range sortedKeys(resources) {
			for _, action := range resources[resource] {
				ok, err := e.enforcer.AddPolicy(role, resource, action)
				if err != nil {
					return fmt.Errorf("failed to add policy [%s, %s, %s]: %w", role, resource, action, err)
				}
				if ok {
					added++
				}
			}
		}
	}

	for _, role := range sortedKeys(pf.Inherits) {
		for _, parent := range pf.Inherits[role] {
			if _, err := e.enforcer.AddGroupingPolicy(role, parent); err != nil {
				return fmt.Errorf("failed to add role link %s -> %s: %w", role, parent, err)
			}
		}
	}

	if added > 0 {
		e.logger.Infow("permission policies seeded", "added", added)
	}
	return nil
}

// Enforce reports whether role may perform action on resource.
func (e *Enforcer) Enforce(role, resource, action string) (bool, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	allowed, err := e.enforcer.Enforce(role, resource, action)
	if err != nil {
		e.logger.Errorw("permission check failed", "error", err, "role", role, "resource", resource, "action", action)
		return false, fmt.Errorf("permission check failed: %w", err)
	}
	return allowed, nil
}

func (e *Enforcer) LoadPolicy() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.enforcer.LoadPolicy(); err != nil {
		return fmt.Errorf("failed to reload policy: %w", err)
	}

	e.logger.Info("policy reloaded successfully")
	return nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
