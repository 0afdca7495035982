package model

// Visibility is a method's access level.
type Visibility int

const (
	Public Visibility = iota
	Private
	Protected
)

func (v Visibility) String() string {
	switch v {
	case Public:
		return "public"
	case Private:
		return "private"
	case Protected:
		return "protected"
	default:
		return "unknown"
	}
}

// ParseVisibility maps a visibility keyword to a Visibility.
func ParseVisibility(s string) (Visibility, bool) {
	switch s {
	case "public":
		return Public, true
	case "private":
		return Private, true
	case "protected":
		return Protected, true
	default:
		return Public, false
	}
}

// ParamKind is the declared kind of a method parameter.
type ParamKind int

const (
	ParamRequired ParamKind = iota
	ParamOptional
	ParamRest
	ParamKeywordRequired
	ParamKeywordOptional
	ParamKeywordRest
	ParamBlock
)

func (k ParamKind) String() string {
	switch k {
	case ParamRequired:
		return "required"
	case ParamOptional:
		return "optional"
	case ParamRest:
		return "rest"
	case ParamKeywordRequired:
		return "keyword-required"
	case ParamKeywordOptional:
		return "keyword-optional"
	case ParamKeywordRest:
		return "keyword-rest"
	case ParamBlock:
		return "block"
	default:
		return "unknown"
	}
}

// IsKeyword reports whether the parameter is passed by keyword.
func (k ParamKind) IsKeyword() bool {
	return k == ParamKeywordRequired || k == ParamKeywordOptional || k == ParamKeywordRest
}

// Param is one declared parameter.
type Param struct {
	Kind ParamKind
	Name string
}

// MethodInfo describes one instance method of a class.
type MethodInfo struct {
	Name       string
	Visibility Visibility
	LineStart  int
	LineEnd    int

	// InstanceVariables holds each referenced or assigned instance variable
	// once, in order of first occurrence.
	InstanceVariables []string

	// CalledMethods holds the bare name of every call in the body, one entry
	// per occurrence, without receiver information.
	CalledMethods []string

	// CallSites holds every call in the body with its receiver.
	CallSites []CallSite

	Params     []Param
	Complexity int
	Raises     []string
	CallsSuper bool

	// CaseArms is the number of when-arms under every case expression in
	// the body.
	CaseArms int
}

// IsPublic reports whether the method is public.
func (m *MethodInfo) IsPublic() bool {
	return m.Visibility == Public
}

// IsEmpty reports whether the method spans a single line.
func (m *MethodInfo) IsEmpty() bool {
	return m.LineStart == m.LineEnd
}

// BodyLines is the distance between the def line and the end line.
func (m *MethodInfo) BodyLines() int {
	return m.LineEnd - m.LineStart
}

// UsesInstanceVariable reports whether name is among the method's ivars.
func (m *MethodInfo) UsesInstanceVariable(name string) bool {
	return contains(m.InstanceVariables, name)
}

// SharesInstanceVariables reports whether m and other reference at least one
// common instance variable.
func (m *MethodInfo) SharesInstanceVariables(other *MethodInfo) bool {
	for _, iv := range m.InstanceVariables {
		if other.UsesInstanceVariable(iv) {
			return true
		}
	}
	return false
}

// Calls reports whether the method calls name by bare name.
func (m *MethodInfo) Calls(name string) bool {
	return contains(m.CalledMethods, name)
}

// CountCalls counts bare calls to any of names.
func (m *MethodInfo) CountCalls(names ...string) int {
	count := 0
	for _, called := range m.CalledMethods {
		if contains(names, called) {
			count++
		}
	}
	return count
}

// RaisesType reports whether the method raises the named exception type.
func (m *MethodInfo) RaisesType(name string) bool {
	return contains(m.Raises, name)
}

// HasBlockParam reports whether the method declares a block parameter.
func (m *MethodInfo) HasBlockParam() bool {
	for _, p := range m.Params {
		if p.Kind == ParamBlock {
			return true
		}
	}
	return false
}

// KeywordParamCount counts keyword-style parameters.
func (m *MethodInfo) KeywordParamCount() int {
	count := 0
	for _, p := range m.Params {
		if p.Kind.IsKeyword() {
			count++
		}
	}
	return count
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
