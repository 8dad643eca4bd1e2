package cpu

import (
	"strings"

	gocpu "github.com/beevik/go6502/cpu"
	"github.com/beevik/go6502/disasm"
	"github.com/retroenv/retrogolib/arch/cpu/cpu6502"
)

// CallSize is the length of the JSR instruction, the distance between a call
// site and its return address.
const CallSize = 3

// IsCall returns whether the opcode is the subroutine call instruction.
func IsCall(opcode byte) bool {
	ins := cpu6502.Opcodes[opcode].Instruction
	return ins != nil && ins.Name == cpu6502.JsrName
}

// IsReturn returns whether the opcode is the return from subroutine instruction.
func IsReturn(opcode byte) bool {
	ins := cpu6502.Opcodes[opcode].Instruction
	return ins != nil && ins.Name == cpu6502.RtsName
}

// Disassemble decodes the instruction at the address as seen through the bus.
// It returns the instruction text and the address of the next instruction.
func Disassemble(bus Bus, address uint16) (string, uint16) {
	decoder := gocpu.NewCPU(gocpu.NMOS, newBusMemory(bus))
	text, next := disasm.Disassemble(decoder, address, disasm.ShowInstruction, "", nil)
	return strings.TrimRight(text, " "), next
}
