package compiler

// maxUpvalues matches the CLOSURE instruction's 1-byte up-value index.
const maxUpvalues = 256

// resolveUpvalue implements spec.md §4.2's recursive search: if name is
// a local in the immediately-enclosing compiler, mark it captured and
// record a local-capture up-value; otherwise recurse outward, adding an
// up-value-of-up-value descriptor at each intervening level.
func (c *Compiler) resolveUpvalue(fc *funcCompiler, name string) int {
	if fc.enclosing == nil {
		return -1
	}
	if slot := c.resolveLocal(fc.enclosing, name); slot != -1 {
		fc.enclosing.locals[slot].captured = true
		return c.addUpvalue(fc, slot, true)
	}
	if idx := c.resolveUpvalue(fc.enclosing, name); idx != -1 {
		return c.addUpvalue(fc, idx, false)
	}
	return -1
}

func (c *Compiler) addUpvalue(fc *funcCompiler, index int, isLocal bool) int {
	for i, uv := range fc.upvalues {
		if uv.index == index && uv.isLocal == isLocal {
			return i
		}
	}
	if len(fc.upvalues) >= maxUpvalues {
		c.error("Too many closure variables in function.")
		return 0
	}
	fc.upvalues = append(fc.upvalues, upvalueDesc{index: index, isLocal: isLocal})
	return len(fc.upvalues) - 1
}
