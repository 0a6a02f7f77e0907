package twitter

import (
	"context"
	"fmt"
	"io"
	"unicode/utf8"
)

// DryRun prints messages with their length instead of posting them.
type DryRun struct {
	out io.Writer
}

func NewDryRun(out io.Writer) DryRun {
	return DryRun{out: out}
}

func (d DryRun) Post(_ context.Context, text string) error {
	_, err := fmt.Fprintf(d.out, "len(message) = %d\n'%s'\n\n", utf8.RuneCountInString(text), text)
	return err
}
