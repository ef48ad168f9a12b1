package llm

import "context"

// LLM is the interface for a completion-capable language model. Instruction
// is the system register guiding the call; prompt is the user content.
type LLM interface {
	Complete(ctx context.Context, instruction, prompt string) (string, error)
}
