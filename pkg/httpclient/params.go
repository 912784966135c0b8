package httpclient

import (
	"net/url"
	"sort"
	"strings"
)

// Param is a single query parameter.
type Param struct {
	Key   string
	Value string
}

// Params is an ordered list of query parameters. Repeated keys are allowed
// (GraphHopper's "point", for instance).
type Params []Param

// Add appends a parameter.
func (p *Params) Add(key, value string) {
	*p = append(*p, Param{Key: key, Value: value})
}

// Set replaces every value of key with a single value.
func (p *Params) Set(key, value string) {
	p.Del(key)
	p.Add(key, value)
}

// Del removes every value of key.
func (p *Params) Del(key string) {
	kept := (*p)[:0]
	for _, param := range *p {
		if param.Key != key {
			kept = append(kept, param)
		}
	}
	*p = kept
}

// Get returns the first value of key.
func (p Params) Get(key string) (string, bool) {
	for _, param := range p {
		if param.Key == key {
			return param.Value, true
		}
	}
	return "", false
}

// Len returns the number of parameters.
func (p Params) Len() int {
	return len(p)
}

// Encode returns the URL-encoded query string sorted by key. The sort is
// stable, so repeated keys keep their insertion order and the same Params
// always produce the same URL.
func (p Params) Encode() string {
	if len(p) == 0 {
		return ""
	}

	sorted := make(Params, len(p))
	copy(sorted, p)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Key < sorted[j].Key
	})

	var sb strings.Builder
	for i, param := range sorted {
		if i > 0 {
			sb.WriteByte('&')
		}
		sb.WriteString(url.QueryEscape(param.Key))
		sb.WriteByte('=')
		sb.WriteString(url.QueryEscape(param.Value))
	}
	return sb.String()
}

// Map returns the parameters as a map, joining repeated keys into a slice.
// Used for dry-run output.
func (p Params) Map() map[string][]string {
	m := make(map[string][]string, len(p))
	for _, param := range p {
		m[param.Key] = append(m[param.Key], param.Value)
	}
	return m
}
