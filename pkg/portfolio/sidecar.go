package portfolio

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"k8s.io/klog/v2"
)

// SidecarName is the per-set metadata file.
const SidecarName = "meta.json"

// Sidecar holds the human-editable overrides of a featured set.
// encoding/json writes Captions in key order.
type Sidecar struct {
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Category    string            `json:"category"`
	Date        string            `json:"date"`
	Captions    map[string]string `json:"captions"`
}

// ReadSidecar reads a set's metadata. An absent or unparseable file yields an
// empty Sidecar; a field of the wrong type is dropped on its own.
func ReadSidecar(setDir string) Sidecar {
	p := filepath.Join(setDir, SidecarName)
	bs, err := os.ReadFile(p)
	if err != nil {
		klog.V(1).Infof("no sidecar at %s: %v", p, err)
		return Sidecar{}
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(bs, &fields); err != nil {
		klog.Warningf("ignoring malformed %s: %v", p, err)
		return Sidecar{}
	}

	s := Sidecar{
		Title:       sidecarString(p, fields, "title"),
		Description: sidecarString(p, fields, "description"),
		Category:    sidecarString(p, fields, "category"),
		Date:        sidecarDate(p, fields["date"]),
	}
	if raw, ok := fields["captions"]; ok {
		s.Captions = sidecarCaptions(p, raw)
	}
	return s
}

func sidecarString(p string, fields map[string]json.RawMessage, key string) string {
	raw, ok := fields[key]
	if !ok {
		return ""
	}
	var v string
	if err := json.Unmarshal(raw, &v); err != nil {
		klog.Warningf("ignoring %q in %s: %v", key, p, err)
		return ""
	}
	return v
}

// sidecarDate accepts a date string or epoch milliseconds.
func sidecarDate(p string, raw json.RawMessage) string {
	if raw == nil {
		return ""
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		klog.Warningf("ignoring date in %s: %v", p, err)
		return ""
	}
	switch d := v.(type) {
	case string:
		return d
	case float64:
		return ISODate(time.UnixMilli(int64(d)))
	case nil:
		return ""
	}
	klog.Warningf("ignoring date in %s: unexpected %T", p, v)
	return ""
}

func sidecarCaptions(p string, raw json.RawMessage) map[string]string {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		klog.Warningf("ignoring captions in %s: %v", p, err)
		return nil
	}
	cs := make(map[string]string, len(fields))
	for k, v := range fields {
		var c string
		if err := json.Unmarshal(v, &c); err != nil {
			klog.Warningf("ignoring caption %q in %s: %v", k, p, err)
			continue
		}
		cs[k] = c
	}
	return cs
}

// WriteSidecar writes a set's metadata with two-space indentation.
func WriteSidecar(setDir string, s Sidecar) error {
	if s.Captions == nil {
		s.Captions = map[string]string{}
	}
	bs, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}
	bs = append(bs, '\n')
	return os.WriteFile(filepath.Join(setDir, SidecarName), bs, 0o644)
}

// MergeCaptions adds every default whose key is missing from existing.
// Keys already in existing win and no key is ever removed.
func MergeCaptions(existing map[string]string, defaults map[string]string) map[string]string {
	out := make(map[string]string, len(existing)+len(defaults))
	for k, v := range defaults {
		out[k] = v
	}
	for k, v := range existing {
		out[k] = v
	}
	return out
}

// isoOrNow normalizes a sidecar date, using now when it is absent or unparseable.
func isoOrNow(s string, now time.Time) string {
	if t, ok := ParseDate(s); ok {
		return ISODate(t)
	}
	return ISODate(now)
}

// UpsertSidecar fills in the defaults of a set's metadata while keeping every
// value a human has already set.
func UpsertSidecar(existing Sidecar, setSlug string, category string, imageNames []string, now time.Time) Sidecar {
	defaults := map[string]string{}
	for _, n := range imageNames {
		s := stem(n)
		defaults[s] = TitleCase(s)
	}

	out := Sidecar{
		Title:       existing.Title,
		Description: existing.Description,
		Category:    existing.Category,
		Date:        isoOrNow(existing.Date, now),
		Captions:    MergeCaptions(existing.Captions, defaults),
	}
	if out.Title == "" {
		out.Title = TitleCase(setSlug)
	}
	if out.Category == "" {
		out.Category = TitleCase(category)
	}
	return out
}
