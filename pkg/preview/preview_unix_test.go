//go:build unix

package preview_test

import (
	"io"
	"os"
	"strings"
	"testing"

	"github.com/creack/pty"
	"src.maxlang.sh/pkg/must"
	. "src.maxlang.sh/pkg/preview"
	"src.maxlang.sh/pkg/prog"
	"src.maxlang.sh/pkg/testutil"
	"src.maxlang.sh/pkg/ui"
)

func TestProgram_TerminalOutput(t *testing.T) {
	testutil.Set(t, &ui.NoColor, false)
	ptmx, tty, err := pty.Open()
	if err != nil {
		t.Skip("cannot open pty:", err)
	}
	defer ptmx.Close()
	if err := pty.Setsize(ptmx, &pty.Winsize{Rows: 5, Cols: 3}); err != nil {
		t.Skip("cannot set pty size:", err)
	}

	output := make(chan string, 1)
	go func() {
		// Reading the master side fails with EIO once the slave is closed.
		b, _ := io.ReadAll(ptmx)
		output <- string(b)
	}()

	stdin, w := must.Pipe()
	w.Close()
	defer stdin.Close()
	_, stderr := must.Pipe()
	defer stderr.Close()

	exit := prog.Run([3]*os.File{stdin, tty, stderr},
		[]string{"maxlang", "-render-mci", "|14abcdef"}, &Program{})
	tty.Close()
	if exit != 0 {
		t.Fatalf("got exit %d", exit)
	}

	got := <-output
	// The screen takes its width from the terminal, and the line discipline
	// turns \n into \r\n.
	want := "\033[;93;40mabc\033[m\r\n\033[;93;40mdef\033[m\r\n"
	if !strings.Contains(got, want) {
		t.Errorf("got %q, want it to contain %q", got, want)
	}
}
