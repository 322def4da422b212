//go:build aix || darwin || dragonfly || freebsd || linux || netbsd || openbsd || solaris

package main

import (
	"bufio"
	"fmt"
	"os"
	"regexp"
	"strconv"

	"github.com/golang/glog"
	"golang.org/x/crypto/ssh/terminal"
	"golang.org/x/sys/unix"
)

type TermSize struct {
	WSRow, WSCol       uint
	WSXPixel, WSYPixel uint
}

var csiPixelSize = regexp.MustCompile(`\[4;(\d+);(\d+)t`)

// GetTermSize asks the controlling terminal for its size in cells and, where
// known, pixels.
func GetTermSize() (TermSize, error) {
	f, err := os.OpenFile("/dev/tty", unix.O_NOCTTY|unix.O_CLOEXEC|unix.O_NDELAY|unix.O_RDWR, 0666)
	if err != nil {
		return stdinTermSize()
	}
	defer f.Close()

	// https://sw.kovidgoyal.net/kitty/graphics-protocol/#getting-the-window-size
	sz, err := unix.IoctlGetWinsize(int(f.Fd()), unix.TIOCGWINSZ)
	if err != nil {
		return stdinTermSize()
	}
	ts := TermSize{WSRow: uint(sz.Row), WSCol: uint(sz.Col), WSXPixel: uint(sz.Xpixel), WSYPixel: uint(sz.Ypixel)}
	if ts.WSXPixel == 0 && ts.WSYPixel == 0 && os.Getenv("TERM") == "xterm-kitty" {
		if w, h, err := kittyPixelSize(f); err == nil {
			ts.WSXPixel, ts.WSYPixel = w, h
		} else {
			glog.V(2).Infof("no pixel size from kitty: %v", err)
		}
	}
	return ts, nil
}

// kittyPixelSize uses the CSI 14 t query, answered with
// <ESC>[4;<height>;<width>t.
func kittyPixelSize(tty *os.File) (w, h uint, err error) {
	state, err := terminal.MakeRaw(int(tty.Fd()))
	if err != nil {
		return 0, 0, err
	}
	defer terminal.Restore(int(tty.Fd()), state)

	fmt.Printf("\033[14t")
	// TODO: time out when the terminal never answers.
	reader := bufio.NewReader(os.Stdin)
	if b, err := reader.ReadByte(); err != nil || b != 033 {
		return 0, 0, fmt.Errorf("unexpected reply to CSI 14 t")
	}
	s, err := reader.ReadString('t')
	if err != nil {
		return 0, 0, err
	}
	m := csiPixelSize.FindStringSubmatch(s)
	if len(m) != 3 {
		return 0, 0, fmt.Errorf("unparseable reply %q", s)
	}
	height, errH := strconv.Atoi(m[1])
	width, errW := strconv.Atoi(m[2])
	if errH != nil || errW != nil {
		return 0, 0, fmt.Errorf("unparseable reply %q", s)
	}
	return uint(width), uint(height), nil
}

func stdinTermSize() (TermSize, error) {
	w, h, err := terminal.GetSize(0)
	if err != nil {
		return TermSize{}, err
	}
	return TermSize{WSRow: uint(h), WSCol: uint(w)}, nil
}
