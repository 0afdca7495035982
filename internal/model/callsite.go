package model

// ReceiverKind classifies the receiver of a call.
type ReceiverKind int

const (
	// ReceiverNone is an implicit-self call such as `save`.
	ReceiverNone ReceiverKind = iota
	// ReceiverInstanceVar is a call on an instance variable (`@repo.save`).
	ReceiverInstanceVar
	// ReceiverLocalVar is a call on a local variable (`repo.save`).
	ReceiverLocalVar
	// ReceiverNamedType is a call on a constant (`Repo.new`, `Net::HTTP.get`).
	ReceiverNamedType
	// ReceiverSelf is an explicit self call (`self.save`).
	ReceiverSelf
	// ReceiverChained is a call on the result of another call (`a.b.c`).
	ReceiverChained
	// ReceiverUnknown covers every other receiver expression.
	ReceiverUnknown
)

func (k ReceiverKind) String() string {
	switch k {
	case ReceiverNone:
		return "none"
	case ReceiverInstanceVar:
		return "ivar"
	case ReceiverLocalVar:
		return "lvar"
	case ReceiverNamedType:
		return "const"
	case ReceiverSelf:
		return "self"
	case ReceiverChained:
		return "chained"
	default:
		return "unknown"
	}
}

// Receiver is the receiver of a call site. Name is set for instance
// variables, local variables and named types.
type Receiver struct {
	Kind ReceiverKind
	Name string
}

// Receiver constructors.
var (
	NoReceiver      = Receiver{Kind: ReceiverNone}
	SelfReceiver    = Receiver{Kind: ReceiverSelf}
	ChainedReceiver = Receiver{Kind: ReceiverChained}
	UnknownReceiver = Receiver{Kind: ReceiverUnknown}
)

// InstanceVarReceiver returns an instance variable receiver.
func InstanceVarReceiver(name string) Receiver {
	return Receiver{Kind: ReceiverInstanceVar, Name: name}
}

// LocalVarReceiver returns a local variable receiver.
func LocalVarReceiver(name string) Receiver {
	return Receiver{Kind: ReceiverLocalVar, Name: name}
}

// NamedTypeReceiver returns a constant receiver with its qualified name.
func NamedTypeReceiver(name string) Receiver {
	return Receiver{Kind: ReceiverNamedType, Name: name}
}

func (r Receiver) String() string {
	if r.Name == "" {
		return r.Kind.String()
	}
	return r.Kind.String() + "(" + r.Name + ")"
}

// InstantiationMethod is the construction-style call name.
const InstantiationMethod = "new"

// CallSite is one call expression with its receiver.
type CallSite struct {
	Method   string
	Receiver Receiver
}

// IsInstantiation reports whether the call constructs a named type.
func (c CallSite) IsInstantiation() bool {
	return c.Method == InstantiationMethod && c.Receiver.Kind == ReceiverNamedType
}
