package solver

import "strconv"

// SpecialisedConfig is the nested {solver-key -> {option-key -> string}}
// mapping each solver reads its own options from, keeping the JSON
// SolverPrescription format uniform across very different solvers. Booleans
// and integers round-trip as "0"/"1" and decimal strings respectively.
type SpecialisedConfig struct {
	values map[string]map[string]string
}

// NewSpecialisedConfig returns an empty, ready-to-use SpecialisedConfig.
func NewSpecialisedConfig() SpecialisedConfig {
	return SpecialisedConfig{values: map[string]map[string]string{}}
}

func (c *SpecialisedConfig) ensure(solverKey string) map[string]string {
	if c.values == nil {
		c.values = map[string]map[string]string{}
	}
	m, ok := c.values[solverKey]
	if !ok {
		m = map[string]string{}
		c.values[solverKey] = m
	}
	return m
}

// AddString stores a raw string option.
func (c *SpecialisedConfig) AddString(solverKey, key, value string) {
	c.ensure(solverKey)[key] = value
}

// AddBool stores a bool option as "0"/"1".
func (c *SpecialisedConfig) AddBool(solverKey, key string, value bool) {
	if value {
		c.ensure(solverKey)[key] = "1"
	} else {
		c.ensure(solverKey)[key] = "0"
	}
}

// AddInt stores an int option in decimal.
func (c *SpecialisedConfig) AddInt(solverKey, key string, value int) {
	c.ensure(solverKey)[key] = strconv.Itoa(value)
}

func (c SpecialisedConfig) lookup(solverKey, key string) (string, bool) {
	if c.values == nil {
		return "", false
	}
	m, ok := c.values[solverKey]
	if !ok {
		return "", false
	}
	v, ok := m[key]
	return v, ok
}

// GetString returns the raw string option or def if absent.
func (c SpecialisedConfig) GetString(solverKey, key, def string) string {
	if v, ok := c.lookup(solverKey, key); ok {
		return v
	}
	return def
}

// GetBool returns the bool option ("0"/"1") or def if absent/malformed.
func (c SpecialisedConfig) GetBool(solverKey, key string, def bool) bool {
	v, ok := c.lookup(solverKey, key)
	if !ok {
		return def
	}
	switch v {
	case "1", "true":
		return true
	case "0", "false":
		return false
	default:
		return def
	}
}

// GetInt returns the int option or def if absent/malformed.
func (c SpecialisedConfig) GetInt(solverKey, key string, def int) int {
	v, ok := c.lookup(solverKey, key)
	if !ok {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
