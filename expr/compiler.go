package expr

import "fmt"

// OpCode names one bytecode instruction of the sandbox VM.
type OpCode int

const (
	OpConst OpCode = iota
	OpLoad
	OpMember
	OpIndex
	OpCall
	OpUnary
	OpBinary
	OpJumpIfFalse // conditional: jump past "then" when condition is false
	OpJump        // conditional: jump past "else" after "then"
)

// Instr is one compiled bytecode instruction.
type Instr struct {
	Op    OpCode
	Value any    // OpConst literal, OpLoad/OpMember identifier name, OpUnary/OpBinary operator
	N     int    // OpCall argument count, OpJump*: absolute index of the target instruction
	Func  string // OpCall function name
}

// Program is a compiled, immutable bytecode form of a parsed expression.
// Safe to share and cache.
type Program struct {
	Instrs []Instr
}

// Compile lowers an AST into stack-based bytecode for the sandbox VM.
func Compile(node Node) (*Program, error) {
	c := &compiler{}
	if err := c.emit(node); err != nil {
		return nil, err
	}
	return &Program{Instrs: c.instrs}, nil
}

type compiler struct {
	instrs []Instr
}

func (c *compiler) emit(node Node) error {
	switch n := node.(type) {
	case LiteralNode:
		c.instrs = append(c.instrs, Instr{Op: OpConst, Value: n.Value})
	case IdentifierNode:
		c.instrs = append(c.instrs, Instr{Op: OpLoad, Value: n.Name})
	case MemberNode:
		if err := c.emit(n.Target); err != nil {
			return err
		}
		c.instrs = append(c.instrs, Instr{Op: OpMember, Value: n.Name})
	case IndexNode:
		if err := c.emit(n.Target); err != nil {
			return err
		}
		if err := c.emit(n.Index); err != nil {
			return err
		}
		c.instrs = append(c.instrs, Instr{Op: OpIndex})
	case CallNode:
		for _, arg := range n.Args {
			if err := c.emit(arg); err != nil {
				return err
			}
		}
		c.instrs = append(c.instrs, Instr{Op: OpCall, Func: n.Func, N: len(n.Args)})
	case UnaryNode:
		if err := c.emit(n.Operand); err != nil {
			return err
		}
		c.instrs = append(c.instrs, Instr{Op: OpUnary, Value: n.Op})
	case BinaryNode:
		if err := c.emit(n.Left); err != nil {
			return err
		}
		if err := c.emit(n.Right); err != nil {
			return err
		}
		c.instrs = append(c.instrs, Instr{Op: OpBinary, Value: n.Op})
	case ConditionalNode:
		if err := c.emit(n.Cond); err != nil {
			return err
		}
		jumpIfFalse := len(c.instrs)
		c.instrs = append(c.instrs, Instr{Op: OpJumpIfFalse})
		if err := c.emit(n.Then); err != nil {
			return err
		}
		jump := len(c.instrs)
		c.instrs = append(c.instrs, Instr{Op: OpJump})
		c.instrs[jumpIfFalse].N = len(c.instrs)
		if err := c.emit(n.Else); err != nil {
			return err
		}
		c.instrs[jump].N = len(c.instrs)
	default:
		return fmt.Errorf("%w: unknown node type %T", ErrParse, node)
	}
	return nil
}
