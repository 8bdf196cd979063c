package expr

import (
	"fmt"
	"time"
)

// Clock supplies the current instant/date to date functions, kept injectable so evaluation stays
// deterministic in tests.
type Clock interface {
	Now() time.Time
	Today() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time   { return time.Now() }
func (systemClock) Today() time.Time { return time.Now() }

// Limits bounds one evaluation's instruction count and stack depth, the
// sandbox's security boundary.
type Limits struct {
	MaxInstructions int
	MaxStackDepth   int
}

func DefaultLimits() Limits {
	return Limits{MaxInstructions: 1_000_000, MaxStackDepth: 128}
}

// Eval runs prog against ctx (the current instance's slot values,
// addressable by identifier/member/index), enforcing limits. Evaluation
// is pure and deterministic except for clock's date functions.
func Eval(prog *Program, ctx map[string]any, clock Clock, limits Limits) (any, error) {
	if clock == nil {
		clock = systemClock{}
	}
	vm := &vm{ctx: ctx, clock: clock, limits: limits}
	return vm.run(prog)
}

type vm struct {
	ctx        map[string]any
	clock      Clock
	limits     Limits
	stack      []any
	instrCount int
}

func (m *vm) push(v any) error {
	m.stack = append(m.stack, v)
	if len(m.stack) > m.limits.MaxStackDepth {
		return fmt.Errorf("%w: stack depth exceeded %d", ErrResourceLimit, m.limits.MaxStackDepth)
	}
	return nil
}

func (m *vm) pop() (any, error) {
	if len(m.stack) == 0 {
		return nil, fmt.Errorf("%w: stack underflow", ErrEvaluation)
	}
	v := m.stack[len(m.stack)-1]
	m.stack = m.stack[:len(m.stack)-1]
	return v, nil
}

func (m *vm) charge() error {
	m.instrCount++
	if m.instrCount > m.limits.MaxInstructions {
		return fmt.Errorf("%w: instruction count exceeded %d", ErrResourceLimit, m.limits.MaxInstructions)
	}
	return nil
}

func (m *vm) run(prog *Program) (any, error) {
	pc := 0
	for pc < len(prog.Instrs) {
		if err := m.charge(); err != nil {
			return nil, err
		}
		instr := prog.Instrs[pc]
		switch instr.Op {
		case OpConst:
			if err := m.push(instr.Value); err != nil {
				return nil, err
			}
			pc++
		case OpLoad:
			name, _ := instr.Value.(string)
			v, ok := m.ctx[name]
			if !ok {
				return nil, fmt.Errorf("%w: unknown identifier %q", ErrEvaluation, name)
			}
			if err := m.push(v); err != nil {
				return nil, err
			}
			pc++
		case OpMember:
			target, err := m.pop()
			if err != nil {
				return nil, err
			}
			obj, ok := target.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("%w: member access on non-object", ErrEvaluation)
			}
			name, _ := instr.Value.(string)
			if err := m.push(obj[name]); err != nil {
				return nil, err
			}
			pc++
		case OpIndex:
			idx, err := m.pop()
			if err != nil {
				return nil, err
			}
			target, err := m.pop()
			if err != nil {
				return nil, err
			}
			v, err := indexValue(target, idx)
			if err != nil {
				return nil, err
			}
			if err := m.push(v); err != nil {
				return nil, err
			}
			pc++
		case OpCall:
			args := make([]any, instr.N)
			for i := instr.N - 1; i >= 0; i-- {
				v, err := m.pop()
				if err != nil {
					return nil, err
				}
				args[i] = v
			}
			result, err := callBuiltin(instr.Func, args, m.clock)
			if err != nil {
				return nil, err
			}
			if err := m.push(result); err != nil {
				return nil, err
			}
			pc++
		case OpUnary:
			operand, err := m.pop()
			if err != nil {
				return nil, err
			}
			result, err := evalUnary(instr.Value.(string), operand)
			if err != nil {
				return nil, err
			}
			if err := m.push(result); err != nil {
				return nil, err
			}
			pc++
		case OpBinary:
			right, err := m.pop()
			if err != nil {
				return nil, err
			}
			left, err := m.pop()
			if err != nil {
				return nil, err
			}
			result, err := evalBinary(instr.Value.(string), left, right)
			if err != nil {
				return nil, err
			}
			if err := m.push(result); err != nil {
				return nil, err
			}
			pc++
		case OpJumpIfFalse:
			cond, err := m.pop()
			if err != nil {
				return nil, err
			}
			if !truthy(cond) {
				pc = instr.N
			} else {
				pc++
			}
		case OpJump:
			pc = instr.N
		default:
			return nil, fmt.Errorf("%w: unknown opcode", ErrEvaluation)
		}
	}
	return m.pop()
}

func indexValue(target, idx any) (any, error) {
	switch t := target.(type) {
	case []any:
		i, ok := toInt(idx)
		if !ok || i < 0 || i >= len(t) {
			return nil, fmt.Errorf("%w: index out of range", ErrEvaluation)
		}
		return t[i], nil
	case map[string]any:
		key, ok := idx.(string)
		if !ok {
			return nil, fmt.Errorf("%w: non-string key on object index", ErrEvaluation)
		}
		return t[key], nil
	default:
		return nil, fmt.Errorf("%w: indexing on non-indexable value", ErrEvaluation)
	}
}

func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case float64:
		return t != 0
	case string:
		return t != ""
	default:
		return true
	}
}

func toInt(v any) (int, bool) {
	switch t := v.(type) {
	case float64:
		return int(t), true
	case int:
		return t, true
	default:
		return 0, false
	}
}
