// Package kernel holds the tiny shared vocabulary every other package in
// this module depends on: typed identifiers for the subjects, agents,
// tools, and sessions the gateway reasons about. It has no dependencies
// of its own.
package kernel

// SubjectID identifies the end user on whose behalf an agent acts.
type SubjectID string

func NewSubjectID(id string) SubjectID { return SubjectID(id) }
func (s SubjectID) String() string     { return string(s) }
func (s SubjectID) IsEmpty() bool      { return string(s) == "" }

// AgentID identifies the calling AI agent/client.
type AgentID string

func NewAgentID(id string) AgentID { return AgentID(id) }
func (a AgentID) String() string   { return string(a) }
func (a AgentID) IsEmpty() bool    { return string(a) == "" }

// ToolID identifies a protected tool/endpoint behind the gateway.
type ToolID string

func NewToolID(id string) ToolID { return ToolID(id) }
func (t ToolID) String() string  { return string(t) }
func (t ToolID) IsEmpty() bool   { return string(t) == "" }

// SessionID is the gateway's opaque, random session identifier (sid).
type SessionID string

func NewSessionID(id string) SessionID { return SessionID(id) }
func (s SessionID) String() string     { return string(s) }
func (s SessionID) IsEmpty() bool      { return string(s) == "" }
