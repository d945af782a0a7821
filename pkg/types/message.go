// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Message is one turn of conversation between roles. Role is the speaker's
// conversational role ("system", "user", "assistant"); Name identifies which
// agent produced it when several share a transcript.
type Message struct {
	Role    string `json:"role" yaml:"role"`
	Name    string `json:"name,omitempty" yaml:"name,omitempty"`
	Content string `json:"content" yaml:"content"`
}

// FunctionCall is a structured request from a role to have the coordinator
// execute a named function on its behalf.
type FunctionCall struct {
	// Name identifies the function (e.g. "download_pdf").
	Name string `json:"name" yaml:"name"`

	// Args holds the call arguments by parameter name.
	Args map[string]string `json:"args" yaml:"args"`
}

// FunctionResult carries the outcome of an executed FunctionCall back to the
// role that requested it on its next turn.
type FunctionResult struct {
	// Name is the function that was executed.
	Name string `json:"name" yaml:"name"`

	// Content is the textual result the role should fold into the conversation.
	Content string `json:"content" yaml:"content"`
}
