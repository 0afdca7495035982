package model

import "strings"

// Principle identifies one of the five SOLID principles.
type Principle int

const (
	SRP Principle = iota
	OCP
	LSP
	ISP
	DIP
)

// Principles lists all principles in report order.
var Principles = []Principle{SRP, OCP, LSP, ISP, DIP}

func (p Principle) String() string {
	switch p {
	case SRP:
		return "srp"
	case OCP:
		return "ocp"
	case LSP:
		return "lsp"
	case ISP:
		return "isp"
	case DIP:
		return "dip"
	default:
		return "unknown"
	}
}

// Title returns the principle's full name.
func (p Principle) Title() string {
	switch p {
	case SRP:
		return "Single Responsibility"
	case OCP:
		return "Open/Closed"
	case LSP:
		return "Liskov Substitution"
	case ISP:
		return "Interface Segregation"
	case DIP:
		return "Dependency Inversion"
	default:
		return "Unknown"
	}
}

// ParsePrinciple maps "srp", "SRP", ... to a Principle.
func ParsePrinciple(s string) (Principle, bool) {
	for _, p := range Principles {
		if strings.EqualFold(s, p.String()) {
			return p, true
		}
	}
	return SRP, false
}
