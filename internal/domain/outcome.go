package domain

// OutcomeKind tags the variant held by an Outcome
type OutcomeKind int

const (
	OutcomeLoading OutcomeKind = iota
	OutcomeSuccess
	OutcomeFailure
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeLoading:
		return "loading"
	case OutcomeSuccess:
		return "success"
	case OutcomeFailure:
		return "failure"
	default:
		return "unknown"
	}
}

// Outcome is one step of a fetch attempt.
//
// Loading is non-terminal and may carry interim data; Success and Failure are
// terminal for the attempt that produced them. Consumers switch on Kind and
// must not inspect Message to make control decisions.
type Outcome[T any] struct {
	Kind    OutcomeKind
	Data    T
	Message string

	hasData bool
}

// Loading reports that a fetch has started and has nothing to show yet.
func Loading[T any]() Outcome[T] {
	return Outcome[T]{Kind: OutcomeLoading}
}

// LoadingWith reports an in-progress fetch carrying best-effort interim data.
func LoadingWith[T any](data T) Outcome[T] {
	return Outcome[T]{Kind: OutcomeLoading, Data: data, hasData: true}
}

// Success carries the authoritative result of a fetch.
func Success[T any](data T) Outcome[T] {
	return Outcome[T]{Kind: OutcomeSuccess, Data: data, hasData: true}
}

// Failure carries a human-readable cause.
func Failure[T any](message string) Outcome[T] {
	return Outcome[T]{Kind: OutcomeFailure, Message: message}
}

// HasData reports whether the outcome carries data, which tells Loading()
// apart from LoadingWith of an empty value.
func (o Outcome[T]) HasData() bool {
	return o.hasData
}

// IsTerminal reports whether the outcome ends a fetch attempt
func (o Outcome[T]) IsTerminal() bool {
	return o.Kind == OutcomeSuccess || o.Kind == OutcomeFailure
}
