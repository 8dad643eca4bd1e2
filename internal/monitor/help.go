package monitor

const helpText = `-------------------------------------------------------------
Commands:
 "l":      CPU status + asm listing at current PC.
 <return>: Execute current line.
           JSRs will be executed until RTS.
 "i":      Execute a single instruction.
           (JSRs will be followed.)
 "o":      Execute until end of current subroutine.
 "run":    Execute until breakpoint (BP) or timeout (5s).
 "reset":  Clear RAM, jump to reset vector.
 "irq":    Jump to IRQ vector.
 "nmi":    Jump to NMI vector.
 "m HHHH": Show memory dump from hex address HHHH.
 "w HHHH DD DD DD...": Write hex data DD to address HHHH.
 "bp HHHH": Set breakpoint to hex address HHHH.
-------------------------------------------------------------
Note: Stack is shown decreasing left to right. (Max. 8 bytes.)
      (Right-most byte is current stackpointer+1).
-------------------------------------------------------------
`
