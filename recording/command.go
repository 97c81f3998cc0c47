package recording

import (
	"fmt"

	"github.com/gogpu/batch"
)

// CommandType identifies the type of a command.
type CommandType uint8

const (
	CmdSelect        CommandType = iota // Select a non-indexed batch
	CmdSelectIndexed                    // Select an indexed batch
	CmdDraw                             // Non-indexed draw call
	CmdDrawIndexed                      // Indexed draw call
)

// commandTypeNames maps CommandType values to their string representation.
var commandTypeNames = [...]string{
	CmdSelect:        "Select",
	CmdSelectIndexed: "SelectIndexed",
	CmdDraw:          "Draw",
	CmdDrawIndexed:   "DrawIndexed",
}

// String returns the string representation of a CommandType.
func (c CommandType) String() string {
	if int(c) < len(commandTypeNames) {
		return commandTypeNames[c]
	}
	return "Unknown"
}

// Command is the interface implemented by all command types.
type Command interface {
	// Type returns the CommandType for this command.
	Type() CommandType
}

// BatchRef is a reference to a batch in a BatchPool.
// The zero value is a valid reference to the first batch (if any).
type BatchRef uint32

// InvalidRef is the sentinel value for an invalid reference.
const InvalidRef = ^uint32(0)

// IsValid returns true if the reference is not InvalidRef.
func (r BatchRef) IsValid() bool {
	return uint32(r) != InvalidRef
}

// SelectCommand records a Select or SelectIndexed call.
type SelectCommand struct {
	Batch       BatchRef
	Indexed     bool
	VertexCount int
	IndexCount  int
}

// Type implements Command.
func (c SelectCommand) Type() CommandType {
	if c.Indexed {
		return CmdSelectIndexed
	}
	return CmdSelect
}

// DrawCommand records a Draw or DrawIndexed call. StartIndex and IndexCount
// are zero for non-indexed draws.
type DrawCommand struct {
	Batch       BatchRef
	Indexed     bool
	BaseVertex  int
	VertexCount int
	StartIndex  int
	IndexCount  int
	Topology    batch.Topology
	Context     batch.DrawContext
}

// Type implements Command.
func (c DrawCommand) Type() CommandType {
	if c.Indexed {
		return CmdDrawIndexed
	}
	return CmdDraw
}

// ElementCount returns the number of vertices the draw call walks through:
// IndexCount for indexed draws, VertexCount otherwise.
func (c DrawCommand) ElementCount() int {
	if c.Indexed {
		return c.IndexCount
	}
	return c.VertexCount
}

// String returns a compact description of the draw call.
func (c DrawCommand) String() string {
	if c.Indexed {
		return fmt.Sprintf("DrawIndexed(%s base=%d vertices=%d indices=[%d,%d))",
			c.Topology, c.BaseVertex, c.VertexCount, c.StartIndex, c.StartIndex+c.IndexCount)
	}
	return fmt.Sprintf("Draw(%s vertices=[%d,%d))",
		c.Topology, c.BaseVertex, c.BaseVertex+c.VertexCount)
}
