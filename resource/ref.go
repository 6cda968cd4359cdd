package resource

import (
	"path"
	"strings"
)

// Ref identifies a resource inside a Module by its type, name and optional language.
type Ref struct {
	Type string
	Name string
	// Lang is optional, empty means language neutral.
	Lang string
}

func NewRef(typ, name string) Ref {
	return Ref{Type: typ, Name: name}
}

func (r Ref) WithLang(lang string) Ref {
	r.Lang = lang
	return r
}

// IsValid reports whether every part of the reference is a single path element.
func (r Ref) IsValid() bool {
	if r.Type == "" || r.Name == "" {
		return false
	}
	for _, part := range []string{r.Type, r.Name, r.Lang} {
		if part == "." || part == ".." || strings.ContainsAny(part, `/\`) {
			return false
		}
	}
	return true
}

func (r Ref) String() string {
	s := r.Type + "/" + r.Name
	if r.Lang != "" {
		s += "@" + r.Lang
	}
	return s
}

// paths returns candidate locations of the resource relative to the module root,
// the most specific first.
func (r Ref) paths(root string) []string {
	neutral := path.Join(root, r.Type, r.Name)
	if r.Lang == "" {
		return []string{neutral}
	}
	return []string{path.Join(root, r.Type, r.Lang, r.Name), neutral}
}
