package notifyrate

import (
	"fmt"
	"os/exec"
	"strings"
)

// MacOSBackend delivers notifications via osascript's "display
// notification", the same mechanism dcosson-h2's macOS notify bridge
// uses. It is a reference Backend implementation; the notification
// delivery backend itself is an external collaborator per spec.md §1.
type MacOSBackend struct{}

func (MacOSBackend) Send(summary, body string) error {
	script := fmt.Sprintf("display notification %s with title %s",
		quoteAppleScript(body), quoteAppleScript(summary))
	cmd := exec.Command("osascript", "-e", script)
	return cmd.Run()
}

var _ Backend = MacOSBackend{}

// quoteAppleScript wraps s in double quotes, escaping any embedded
// quotes or backslashes so it is safe to splice into an AppleScript
// string literal.
func quoteAppleScript(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	return `"` + s + `"`
}
