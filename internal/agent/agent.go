// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package agent coordinates scripted conversational roles: a research role
// that proposes PDF URLs for a topic and a download role that fetches them.
// Roles are decoupled from any agent framework: each receives the prior
// messages plus an optional pending function result and returns either the
// next message or a structured function-call request.
package agent

import (
	"context"

	"github.com/pdiddy/pdf-finder/pkg/types"
)

// ChatBackend abstracts the chat-completions API so tests can supply a mock.
type ChatBackend interface {
	Complete(ctx context.Context, messages []types.Message) (string, error)
}

// Turn is one role output. Exactly one field is set: a message to append to
// the transcript, or a function call for the coordinator to execute.
type Turn struct {
	Message *types.Message
	Call    *types.FunctionCall
}

// Role is a conversational participant. Respond produces the role's next
// turn given the transcript so far and, when the coordinator just executed
// a function call on the role's behalf, that call's result.
type Role interface {
	Name() string
	Respond(ctx context.Context, transcript []types.Message, pending *types.FunctionResult) (Turn, error)
}
