// Package adapters maps each supported site family to an extraction
// strategy cascade. Every adapter tries the page's linked data first,
// then its family's card markup, then heading scans, and finally bare
// link discovery, keeping the first strategy that yields class rows.
// Sources no adapter claims fall to the generic adapter.
package adapters

import (
	"strings"

	"classscout/internal/model"
	"classscout/internal/scrape"
)

// Adapter extracts class candidates from one family of sites.
type Adapter interface {
	Name() string
	// Match reports whether the adapter claims a dispatch key, the
	// lower-cased alphanumeric squash of the source name and URL.
	Match(key string) bool
	// Render is the fetch mode the family needs when the source does
	// not say: script-heavy sites want a real browser.
	Render() model.RenderMode
	Extract(page *scrape.Page) []model.Record
}

// Registry dispatches each source to the adapter claiming it.
type Registry struct {
	adapters []Adapter
	generic  Adapter
}

func NewRegistry() *Registry {
	return &Registry{
		adapters: []Adapter{
			newAlphaMinds(),
			newSoccerShots(),
			newMyGym(),
			newHiSawyer(),
			newAquaTots(),
		},
		generic: newGeneric(),
	}
}

// Select returns the adapter for a source, falling back to the generic
// adapter when no family claims it.
func (r *Registry) Select(src model.Source) Adapter {
	key := DispatchKey(src.Name + " " + src.URL)
	for _, a := range r.adapters {
		if a.Match(key) {
			return a
		}
	}
	return r.generic
}

// Generic returns the fallback adapter, which the pipeline also retries
// when a family adapter comes up empty.
func (r *Registry) Generic() Adapter { return r.generic }

// DispatchKey lowercases and strips everything but letters and digits,
// so "SoccerShots of Hudson County" contains both "soccershots" and
// "hudsoncounty".
func DispatchKey(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// site carries the identity every family adapter shares.
type site struct {
	name    string
	aliases []string
	render  model.RenderMode
}

func (s site) Name() string { return s.name }

func (s site) Render() model.RenderMode { return s.render }

func (s site) Match(key string) bool {
	for _, alias := range s.aliases {
		if strings.Contains(key, alias) {
			return true
		}
	}
	return false
}
