package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
)

// newKey mints the logical key sent with non-idempotent mutations, so a
// retried request cannot be applied twice.
func newKey() string {
	return uuid.NewString()
}

// pageFooter renders the "showing X-Y of Z" line under a list.
func pageFooter(offset, count, total int) string {
	if total == 0 {
		return "0 results"
	}
	return fmt.Sprintf("showing %d-%d of %d", offset+1, offset+count, total)
}

// reportInput surfaces a local input problem. EOF means the user bailed out
// of a prompt, which is not worth a message.
func reportInput(err error) {
	if err == nil || errors.Is(err, io.EOF) {
		return
	}
	printlnFn("Invalid input:", err.Error())
}
