// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package deflist

import (
	"io"

	"github.com/petar-djukic/go-deflist/pkg/types"
)

func (w *Writer) enter() { w.depth++ }

// leave closes one indentation level. Unbalanced calls are a bug in the
// walk and panic.
func (w *Writer) leave() {
	if w.depth == 0 {
		panic("deflist: indentation underflow")
	}
	w.depth--
}

// write writes s, preceded by any pending indentation.
func (w *Writer) write(s string) {
	if s == "" {
		return
	}
	if w.pending {
		w.pending = false
		for range w.depth {
			w.writeRaw(w.opts.IndentChars())
		}
	}
	w.writeRaw(s)
}

func (w *Writer) writeLine() {
	w.writeRaw("\n")
	w.pending = true
}

// writeParts writes display parts. Line breaks inside a declaration re-arm
// the pending indentation.
func (w *Writer) writeParts(parts types.Parts) {
	for _, p := range parts {
		if p.Kind == types.PartLineBreak {
			w.writeLine()
			continue
		}
		w.write(p.Text)
	}
}

// writeRaw writes s unless an earlier write failed.
func (w *Writer) writeRaw(s string) {
	if w.err != nil {
		return
	}
	_, w.err = io.WriteString(w.w, s)
}
