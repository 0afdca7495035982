// Package model holds the class and method descriptors extracted from
// source files and consumed by the analyzers.
package model

// ConstructorName is the name of the constructor method.
const ConstructorName = "initialize"

// ClassInfo describes one class definition found in one file. It is built
// once by the extractor and treated as read-only afterwards.
type ClassInfo struct {
	Name      string
	FilePath  string
	LineStart int
	LineEnd   int
	Methods   []*MethodInfo

	// Superclass is empty when the class declares none.
	Superclass string

	Includes    []string
	Extends     []string
	AttrReaders []string
	AttrWriters []string

	// InstanceVariables is the union of the methods' instance variables.
	InstanceVariables []string
}

// LineCount is the number of lines the class spans.
func (c *ClassInfo) LineCount() int {
	return c.LineEnd - c.LineStart + 1
}

// HasSuperclass reports whether the class declares a superclass.
func (c *ClassInfo) HasSuperclass() bool {
	return c.Superclass != ""
}

// PublicMethods returns the public methods other than the constructor.
func (c *ClassInfo) PublicMethods() []*MethodInfo {
	var methods []*MethodInfo
	for _, m := range c.Methods {
		if m.IsPublic() && m.Name != ConstructorName {
			methods = append(methods, m)
		}
	}
	return methods
}

// Method returns the first method with the given name, or nil.
func (c *ClassInfo) Method(name string) *MethodInfo {
	for _, m := range c.Methods {
		if m.Name == name {
			return m
		}
	}
	return nil
}

// Constructor returns the initialize method, or nil.
func (c *ClassInfo) Constructor() *MethodInfo {
	return c.Method(ConstructorName)
}

// MixinCount is the number of included plus extended modules.
func (c *ClassInfo) MixinCount() int {
	return len(c.Includes) + len(c.Extends)
}

// IsDataClass reports whether the class declares attributes and every
// method other than the constructor is named after one of them.
func (c *ClassInfo) IsDataClass() bool {
	attrs := make([]string, 0, len(c.AttrReaders)+len(c.AttrWriters))
	attrs = append(attrs, c.AttrReaders...)
	attrs = append(attrs, c.AttrWriters...)
	if len(attrs) == 0 {
		return false
	}

	for _, m := range c.Methods {
		if m.Name == ConstructorName {
			continue
		}
		if !contains(attrs, m.Name) {
			return false
		}
	}
	return true
}

// WithMethods returns a copy of the class restricted to the given methods.
// The copy shares no slices with c.
func (c *ClassInfo) WithMethods(methods []*MethodInfo) *ClassInfo {
	return &ClassInfo{
		Name:      c.Name,
		FilePath:  c.FilePath,
		LineStart: c.LineStart,
		LineEnd:   c.LineEnd,
		Methods:   append([]*MethodInfo(nil), methods...),
	}
}
