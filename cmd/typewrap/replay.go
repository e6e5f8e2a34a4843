package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/dshills/typewrap/internal/editor"
	"github.com/dshills/typewrap/internal/engine"
)

// replay types every character read from in into a document, the way a
// user at the keyboard would, and writes the resulting text to out. The
// document is the first of files, with the cursor at its end, or an empty
// scratch document. Nothing is saved.
func replay(ed *editor.Editor, files []string, in io.Reader, out io.Writer) error {
	var view engine.ViewID
	if len(files) > 0 {
		v, err := ed.Open(files[0])
		if err != nil {
			return fmt.Errorf("opening %s: %w", files[0], err)
		}
		view = v
		if err := ed.Move(view, endOfDocument); err != nil {
			return err
		}
	} else {
		view = ed.NewScratch("")
	}

	r := bufio.NewReader(in)
	for {
		ch, _, err := r.ReadRune()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("reading input: %w", err)
		}
		switch ch {
		case '\r':
			continue
		case '\n':
			err = ed.InsertNewline(view)
		default:
			err = ed.InsertChar(view, ch)
		}
		if err != nil {
			return err
		}
	}

	doc, err := ed.Document(view)
	if err != nil {
		return err
	}
	_, err = doc.WriteTo(out)
	return err
}

func endOfDocument(doc *engine.Document, _ engine.CharOffset) engine.CharOffset {
	return doc.Len()
}
