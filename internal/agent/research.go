// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package agent

import (
	"context"
	"fmt"

	"github.com/pdiddy/pdf-finder/pkg/types"
)

// researchSystemPrompt instructs the model to act as the research role.
const researchSystemPrompt = `Research Agent: Your role is to search for PDF files related to a given topic.
You will receive a topic and should return a list of PDF URLs related to that topic.
Focus on academic and reliable sources. After finding URLs, pass them to the download agent.
Format your response as a numbered list with title and URL on separate lines.

Important: Only include URLs that are likely to be directly downloadable PDF files.`

// ResearchRole asks a chat backend for candidate PDF URLs. It never
// requests function calls; its whole contribution is text.
type ResearchRole struct {
	backend ChatBackend
}

// NewResearchRole returns a research role backed by the given chat API.
func NewResearchRole(backend ChatBackend) *ResearchRole {
	return &ResearchRole{backend: backend}
}

// Name implements Role.
func (r *ResearchRole) Name() string { return "research_agent" }

// Respond sends the transcript (prefixed with the role's system prompt) to
// the backend and relays the reply as this role's message.
func (r *ResearchRole) Respond(ctx context.Context, transcript []types.Message, _ *types.FunctionResult) (Turn, error) {
	msgs := make([]types.Message, 0, len(transcript)+1)
	msgs = append(msgs, types.Message{Role: "system", Content: researchSystemPrompt})
	msgs = append(msgs, transcript...)

	reply, err := r.backend.Complete(ctx, msgs)
	if err != nil {
		return Turn{}, fmt.Errorf("research backend: %w", err)
	}
	return Turn{Message: &types.Message{
		Role:    "assistant",
		Name:    r.Name(),
		Content: reply,
	}}, nil
}
