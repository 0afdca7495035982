package reporter

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/pthm/solidscore/internal/config"
	"github.com/pthm/solidscore/internal/model"
	"github.com/pthm/solidscore/internal/ui"
)

// ClassReporter prints the extracted class model, the input the analyzers
// see, to debug heuristics.
type ClassReporter struct {
	w      io.Writer
	json   bool
	styles *ui.Styles
}

// NewClassReporter creates a class model reporter. Only the terminal and
// JSON formats are supported.
func NewClassReporter(format string, w io.Writer, styles *ui.Styles) (*ClassReporter, error) {
	if styles == nil {
		styles = ui.NewStyles(false)
	}
	switch config.NormalizeFormat(format) {
	case config.FormatTerminal:
		return &ClassReporter{w: w, styles: styles}, nil
	case config.FormatJSON:
		return &ClassReporter{w: w, json: true, styles: styles}, nil
	default:
		return nil, fmt.Errorf("class report supports %s and %s, not %q", config.FormatTerminal, config.FormatJSON, format)
	}
}

// ClassJSON is the JSON form of an extracted class.
type ClassJSON struct {
	Name              string       `json:"name"`
	FilePath          string       `json:"file_path"`
	LineStart         int          `json:"line_start"`
	LineEnd           int          `json:"line_end"`
	Superclass        string       `json:"superclass,omitempty"`
	Includes          []string     `json:"includes,omitempty"`
	Extends           []string     `json:"extends,omitempty"`
	AttrReaders       []string     `json:"attr_readers,omitempty"`
	AttrWriters       []string     `json:"attr_writers,omitempty"`
	InstanceVariables []string     `json:"instance_variables,omitempty"`
	DataClass         bool         `json:"data_class"`
	Methods           []MethodJSON `json:"methods"`
}

// MethodJSON is the JSON form of an extracted method.
type MethodJSON struct {
	Name              string   `json:"name"`
	Visibility        string   `json:"visibility"`
	LineStart         int      `json:"line_start"`
	LineEnd           int      `json:"line_end"`
	Complexity        int      `json:"complexity"`
	CaseArms          int      `json:"case_arms,omitempty"`
	Params            []string `json:"params,omitempty"`
	InstanceVariables []string `json:"instance_variables,omitempty"`
	Calls             []string `json:"calls,omitempty"`
	Raises            []string `json:"raises,omitempty"`
	CallsSuper        bool     `json:"calls_super,omitempty"`
}

// Report outputs the classes
func (r *ClassReporter) Report(classes []*model.ClassInfo) error {
	if r.json {
		out := make([]ClassJSON, 0, len(classes))
		for _, ci := range classes {
			out = append(out, classJSON(ci))
		}
		encoder := json.NewEncoder(r.w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(out)
	}

	if len(classes) == 0 {
		_, err := fmt.Fprintln(r.w, EmptyMessage)
		return err
	}

	var sb strings.Builder
	for i, ci := range classes {
		if i > 0 {
			sb.WriteString("\n")
		}
		r.writeClass(&sb, ci)
	}
	_, err := io.WriteString(r.w, sb.String())
	return err
}

func (r *ClassReporter) writeClass(sb *strings.Builder, ci *model.ClassInfo) {
	s := r.styles

	title := ci.Name
	if ci.HasSuperclass() {
		title += " < " + ci.Superclass
	}
	sb.WriteString(s.Render(s.Header, title) + "\n")
	sb.WriteString(s.Render(s.Path, fmt.Sprintf("  %s:%d-%d", ci.FilePath, ci.LineStart, ci.LineEnd)) + "\n")

	writeList(sb, "includes", ci.Includes)
	writeList(sb, "extends", ci.Extends)
	writeList(sb, "attr_readers", ci.AttrReaders)
	writeList(sb, "attr_writers", ci.AttrWriters)
	writeList(sb, "ivars", ci.InstanceVariables)
	if ci.IsDataClass() {
		sb.WriteString("  data class\n")
	}

	for _, m := range ci.Methods {
		fmt.Fprintf(sb, "  %s %s(%s) [%d-%d] complexity=%d",
			s.Render(s.Subheader, m.Visibility.String()), m.Name, strings.Join(paramList(m), ", "),
			m.LineStart, m.LineEnd, m.Complexity)
		if m.CaseArms > 0 {
			fmt.Fprintf(sb, " when=%d", m.CaseArms)
		}
		if m.CallsSuper {
			sb.WriteString(" super")
		}
		sb.WriteString("\n")

		if len(m.InstanceVariables) > 0 {
			fmt.Fprintf(sb, "      ivars: %s\n", strings.Join(m.InstanceVariables, ", "))
		}
		if calls := callList(m); len(calls) > 0 {
			fmt.Fprintf(sb, "      calls: %s\n", strings.Join(calls, ", "))
		}
		if len(m.Raises) > 0 {
			fmt.Fprintf(sb, "      raises: %s\n", strings.Join(m.Raises, ", "))
		}
	}
}

func writeList(sb *strings.Builder, label string, items []string) {
	if len(items) > 0 {
		fmt.Fprintf(sb, "  %s: %s\n", label, strings.Join(items, ", "))
	}
}

func paramList(m *model.MethodInfo) []string {
	params := make([]string, 0, len(m.Params))
	for _, p := range m.Params {
		params = append(params, p.Kind.String()+" "+p.Name)
	}
	return params
}

// callList renders call sites as receiver.method, or method alone when
// there is no receiver.
func callList(m *model.MethodInfo) []string {
	calls := make([]string, 0, len(m.CallSites))
	for _, cs := range m.CallSites {
		if cs.Receiver.Kind == model.ReceiverNone {
			calls = append(calls, cs.Method)
			continue
		}
		calls = append(calls, cs.Receiver.String()+"."+cs.Method)
	}
	return calls
}

func classJSON(ci *model.ClassInfo) ClassJSON {
	out := ClassJSON{
		Name:              ci.Name,
		FilePath:          ci.FilePath,
		LineStart:         ci.LineStart,
		LineEnd:           ci.LineEnd,
		Superclass:        ci.Superclass,
		Includes:          ci.Includes,
		Extends:           ci.Extends,
		AttrReaders:       ci.AttrReaders,
		AttrWriters:       ci.AttrWriters,
		InstanceVariables: ci.InstanceVariables,
		DataClass:         ci.IsDataClass(),
		Methods:           make([]MethodJSON, 0, len(ci.Methods)),
	}
	for _, m := range ci.Methods {
		out.Methods = append(out.Methods, MethodJSON{
			Name:              m.Name,
			Visibility:        m.Visibility.String(),
			LineStart:         m.LineStart,
			LineEnd:           m.LineEnd,
			Complexity:        m.Complexity,
			CaseArms:          m.CaseArms,
			Params:            paramList(m),
			InstanceVariables: m.InstanceVariables,
			Calls:             callList(m),
			Raises:            m.Raises,
			CallsSuper:        m.CallsSuper,
		})
	}
	return out
}
