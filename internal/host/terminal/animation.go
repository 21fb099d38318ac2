package terminal

import (
	"fmt"
	"os"
	"strings"
	"time"

	"golang.org/x/term"
)

// startAnimation on out until the returned function is called. Nothing is drawn if out isn't
// a terminal. The returned function blocks until the line has been cleared.
func startAnimation(out *os.File, msg string) func() {
	fd := int(out.Fd())
	if !term.IsTerminal(fd) {
		return func() {}
	}
	termWidth, _, err := term.GetSize(fd)
	if err != nil || termWidth <= 0 {
		termWidth = 80
	}
	t0 := time.Now()
	ticker := time.NewTicker(time.Second / 60)
	stop := make(chan struct{})
	done := make(chan struct{})
	clearLine := strings.Repeat(" ", termWidth)
	go func() {
		defer close(done)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				cTick := time.Since(t0)
				fmt.Fprintf(out, "\r%v", clearLine)
				fmt.Fprintf(out, "\r%v %v - %v", funimation(cTick), msg, cTick.Truncate(time.Millisecond*100))
			case <-stop:
				fmt.Fprintf(out, "\r%v\r", clearLine)
				return
			}
		}
	}()
	return func() {
		close(stop)
		<-done
	}
}

func funimation(t time.Duration) string {
	images := []string{
		"🕛", "🕧", "🕐", "🕜", "🕑", "🕝", "🕒", "🕞",
		"🕓", "🕟", "🕔", "🕠", "🕕", "🕡", "🕖", "🕢",
		"🕗", "🕣", "🕘", "🕤", "🕙", "🕥", "🕚", "🕦",
	}
	// one full turn every ~second
	return images[int(t.Nanoseconds()/43478260)%len(images)]
}
