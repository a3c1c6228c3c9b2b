package ai

import "context"

// Responder produces a mentor reply for one user question.
type Responder interface {
	Respond(ctx context.Context, question string) (string, error)
}
