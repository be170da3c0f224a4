// Package featureflags evaluates runtime feature toggles configured through
// the FEATURE_FLAGS setting.
package featureflags

import (
	"hash/fnv"
	"strconv"
	"strings"
)

type ruleKind int

const (
	ruleOff ruleKind = iota
	ruleOn
	rulePercent
)

// rule is a parsed flag value. Percent rules roll a flag out to a stable
// slice of the user base.
type rule struct {
	kind ruleKind
	pct  int
}

// Manager answers flag queries for the lifetime of the process. Flags are
// parsed once from a comma-separated list such as
// "beta_dock=on,new_feed=25%,legacy_browse=off"; entries that do not parse
// are dropped.
type Manager struct {
	rules  map[string]rule
	values map[string]string
}

// NewManager parses raw into a Manager. Flag names are case-insensitive.
func NewManager(raw string) *Manager {
	m := &Manager{
		rules:  make(map[string]rule),
		values: make(map[string]string),
	}

	for _, entry := range strings.Split(raw, ",") {
		name, value, found := strings.Cut(entry, "=")
		if !found {
			continue
		}
		name = canon(name)
		value = canon(value)
		if name == "" || value == "" {
			continue
		}
		r, ok := parseRule(value)
		if !ok {
			continue
		}
		m.rules[name] = r
		m.values[name] = value
	}

	return m
}

func parseRule(value string) (rule, bool) {
	switch value {
	case "on", "true", "1":
		return rule{kind: ruleOn}, true
	case "off", "false", "0":
		return rule{kind: ruleOff}, true
	}
	if pctRaw, found := strings.CutSuffix(value, "%"); found {
		pct, err := strconv.Atoi(strings.TrimSpace(pctRaw))
		if err != nil {
			return rule{}, false
		}
		return rule{kind: rulePercent, pct: pct}, true
	}
	return rule{}, false
}

// Enabled reports whether a flag is on for the given user. Unknown flags are
// off. Percent rollouts bucket each user deterministically so a user keeps
// the same answer across requests; userID 0 (unauthenticated) never falls
// inside a partial rollout.
func (m *Manager) Enabled(name string, userID uint) bool {
	if m == nil {
		return false
	}

	r, ok := m.rules[canon(name)]
	if !ok {
		return false
	}

	switch r.kind {
	case ruleOn:
		return true
	case rulePercent:
		if r.pct <= 0 {
			return false
		}
		if r.pct >= 100 {
			return true
		}
		if userID == 0 {
			return false
		}
		return rolloutBucket(canon(name), userID) < r.pct
	}
	return false
}

// Raw returns a copy of the configured flag values as parsed.
func (m *Manager) Raw() map[string]string {
	out := make(map[string]string, len(m.values))
	for name, value := range m.values {
		out[name] = value
	}
	return out
}

// Snapshot evaluates every configured flag for one user.
func (m *Manager) Snapshot(userID uint) map[string]bool {
	out := make(map[string]bool, len(m.rules))
	for name := range m.rules {
		out[name] = m.Enabled(name, userID)
	}
	return out
}

func canon(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// rolloutBucket maps (flag, user) onto 0..99. The flag name salts the hash
// so distinct flags roll out to distinct user slices.
func rolloutBucket(name string, userID uint) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(name))
	_, _ = h.Write([]byte{'/'})
	_, _ = h.Write(strconv.AppendUint(nil, uint64(userID), 10))
	return int(h.Sum32() % 100)
}
