package lispy

import (
	"errors"
	"fmt"
	"io"
)

// REPL reads expressions from in until end of input. Before each read the
// prompt is written to diag. Results other than Unspecified are printed to
// out; errors are reported to diag and the loop carries on with the next
// expression. Only I/O errors on in end the loop early.
func (interp *Interpreter) REPL(in io.Reader, out, diag io.Writer) error {
	rdr := NewReader(in, interp.Symbols)
	for {
		fmt.Fprint(diag, interp.prompt)
		form, err := rdr.Read()
		if err != nil {
			var syntaxErr *SyntaxError
			if !errors.As(err, &syntaxErr) {
				return err
			}
			fmt.Fprintln(diag, Report(err))
			continue
		}
		if IsEndOfInput(form) {
			fmt.Fprintln(diag)
			return nil
		}
		result, err := interp.Eval(form, interp.Global)
		if err != nil {
			fmt.Fprintln(diag, Report(err))
			continue
		}
		if !IsUnspecified(result) {
			fmt.Fprintln(out, Repr(result))
		}
	}
}
