package circuit

import (
	"fmt"
	"strings"
)

// QASM renders the circuit as OpenQASM 2.0. Every angle argument must be
// bound; a free parameter fails with ErrUnboundParam.
func (c *Circuit) QASM() (string, error) {
	if c == nil {
		return "", ErrNilCircuit
	}

	var sb strings.Builder
	sb.WriteString("OPENQASM 2.0;\n")
	sb.WriteString("include \"qelib1.inc\";\n\n")
	fmt.Fprintf(&sb, "qreg q[%d];\n", c.NumQubits)
	if c.NumClbits > 0 {
		fmt.Fprintf(&sb, "creg c[%d];\n", c.NumClbits)
	}
	sb.WriteString("\n")

	for _, ins := range c.Instrs {
		switch ins.Op {
		case OpBarrier:
			sb.WriteString("barrier q;\n")
		case OpMeasure:
			fmt.Fprintf(&sb, "measure q[%d] -> c[%d];\n", ins.Qubits[0], ins.Clbits[0])
		default:
			if len(ins.Args) > 0 {
				sb.WriteString(ins.Op)
				sb.WriteString("(")
				for i, a := range ins.Args {
					if !a.Bound() {
						return "", fmt.Errorf("%w: %q", ErrUnboundParam, a.ParamName())
					}
					if i > 0 {
						sb.WriteString(", ")
					}
					fmt.Fprintf(&sb, "%g", a.Value())
				}
				sb.WriteString(") ")
			} else {
				sb.WriteString(ins.Op)
				sb.WriteString(" ")
			}
			for i, q := range ins.Qubits {
				if i > 0 {
					sb.WriteString(", ")
				}
				fmt.Fprintf(&sb, "q[%d]", q)
			}
			sb.WriteString(";\n")
		}
	}

	return sb.String(), nil
}
