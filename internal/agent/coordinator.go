// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package agent

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/pdiddy/pdf-finder/pkg/types"
)

// defaultMaxRounds limits the relay to prevent infinite loops between roles.
const defaultMaxRounds = 3

// Function executes a role's function-call request and returns the textual
// result the role folds back into the conversation.
type Function func(args map[string]string) string

// Coordinator relays messages between roles for a fixed number of rounds.
// It has no decision logic: each round gives every role one visible turn,
// executing any function calls a role requests along the way.
type Coordinator struct {
	roles     []Role
	functions map[string]Function
	maxRounds int
	w         io.Writer
}

// NewCoordinator builds a coordinator over the given roles, in relay order.
// A maxRounds of 0 selects the default (3). Per-turn output goes to w.
func NewCoordinator(roles []Role, maxRounds int, w io.Writer) *Coordinator {
	if maxRounds <= 0 {
		maxRounds = defaultMaxRounds
	}
	return &Coordinator{
		roles:     roles,
		functions: make(map[string]Function),
		maxRounds: maxRounds,
		w:         w,
	}
}

// Register makes fn available to roles under the given function name.
func (c *Coordinator) Register(name string, fn Function) {
	c.functions[name] = fn
}

// Run starts a session for topic and relays messages until the round limit
// is reached or a round passes with no downloads requested. The returned
// session carries the full transcript; the caller attaches download
// outcomes recorded by its registered functions.
func (c *Coordinator) Run(ctx context.Context, topic string) (*types.Session, error) {
	session := &types.Session{
		ID:        uuid.NewString(),
		Topic:     topic,
		StartedAt: time.Now().UTC(),
	}

	opening := types.Message{
		Role: "user",
		Name: "user_proxy",
		Content: fmt.Sprintf(
			"Please find and download PDF files related to the topic: %s. "+
				"Research Agent should find the URLs, and Download Agent should handle the downloads.",
			topic),
	}
	transcript := []types.Message{opening}
	fmt.Fprintf(c.w, "%s:\n%s\n\n", opening.Name, opening.Content)

	for round := 0; round < c.maxRounds; round++ {
		calls := 0
		for _, role := range c.roles {
			msg, n, err := c.takeTurn(ctx, role, transcript)
			if err != nil {
				session.Rounds = round
				session.Messages = transcript
				return session, fmt.Errorf("round %d, role %s: %w", round+1, role.Name(), err)
			}
			calls += n
			transcript = append(transcript, *msg)
			fmt.Fprintf(c.w, "%s:\n%s\n\n", msg.Name, msg.Content)
		}
		session.Rounds = round + 1

		// A round with no function calls means the roles have nothing
		// left to download; further rounds would only repeat themselves.
		if calls == 0 {
			break
		}
	}

	session.Messages = transcript
	return session, nil
}

// takeTurn drives one role until it produces a visible message, executing
// any function calls it requests. It returns the message and the number of
// calls executed.
func (c *Coordinator) takeTurn(ctx context.Context, role Role, transcript []types.Message) (*types.Message, int, error) {
	var pending *types.FunctionResult
	calls := 0
	for {
		if err := ctx.Err(); err != nil {
			return nil, calls, err
		}

		turn, err := role.Respond(ctx, transcript, pending)
		if err != nil {
			return nil, calls, err
		}
		pending = nil

		if turn.Call != nil {
			calls++
			pending = &types.FunctionResult{
				Name:    turn.Call.Name,
				Content: c.execute(turn.Call),
			}
			continue
		}
		if turn.Message == nil {
			return nil, calls, fmt.Errorf("role returned an empty turn")
		}
		return turn.Message, calls, nil
	}
}

func (c *Coordinator) execute(call *types.FunctionCall) string {
	fn, ok := c.functions[call.Name]
	if !ok {
		return fmt.Sprintf("error: unknown function %q", call.Name)
	}
	return fn(call.Args)
}
