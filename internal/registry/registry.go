// Package registry supplies the known quill template names used by
// completion: the names configured as builtins plus every QUILL name
// observed in the workspace index.
package registry

// Source provides the template names discovered by indexing.
type Source interface {
	QuillNames() ([]string, error)
}

// Registry merges builtin template names with indexed ones. It is a
// synchronous snapshot supplier: callers grab the list up front and
// hand it to the engine, which never calls back out mid-keystroke.
type Registry struct {
	builtin []string
	src     Source
}

// New creates a registry over the given builtins and index source.
// src may be nil, leaving only the builtins.
func New(builtin []string, src Source) *Registry {
	return &Registry{builtin: builtin, src: src}
}

// TemplateNames returns builtins followed by indexed quill names,
// deduplicated, builtins first. Index failures degrade to the builtin
// list: completion keeps working while the index is unavailable.
func (r *Registry) TemplateNames() []string {
	seen := make(map[string]struct{}, len(r.builtin))
	out := make([]string, 0, len(r.builtin))
	for _, n := range r.builtin {
		if _, dup := seen[n]; dup {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	if r.src == nil {
		return out
	}
	indexed, err := r.src.QuillNames()
	if err != nil {
		return out
	}
	for _, n := range indexed {
		if _, dup := seen[n]; dup {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}
