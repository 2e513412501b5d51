package navigator

import "context"

// DeletePrompt is the question asked before a record is deleted.
const DeletePrompt = "Deseja excluir este registro permanentemente?"

// Confirmer asks the user a yes/no question. It blocks until answered.
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) bool
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(ctx context.Context, prompt string) bool

// Confirm calls f.
func (f ConfirmFunc) Confirm(ctx context.Context, prompt string) bool {
	return f(ctx, prompt)
}

// Answer returns a Confirmer that always gives the same answer.
func Answer(yes bool) Confirmer {
	return ConfirmFunc(func(context.Context, string) bool { return yes })
}
